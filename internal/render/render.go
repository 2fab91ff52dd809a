// Package render projects stored sections into the view models the public
// site draws. Every function here is pure.
package render

import (
	"strings"

	"emb-site/internal/domain/catalog"
	"emb-site/internal/domain/content"
	"emb-site/internal/domain/site"
)

// Input is everything a section may read besides itself.
type Input struct {
	PageSlug     string
	PageCategory content.Category
	// FormOverride is the raw ?form= query value, if any.
	FormOverride string
	Classes      []catalog.Class
	News         []catalog.NewsItem
}

// Render returns nil for tags it does not draw.
func Render(sec content.Section, in Input) *View {
	v := &View{ID: sec.ID, Type: string(sec.Type)}

	switch b := sec.Body.(type) {
	case *content.Hero:
		v.Hero = hero(b)
	case *content.TextBlock:
		v.TextBlock = textBlock(b)
	case *content.Classes:
		v.Cards = cards(b.Content, b.Settings, in.PageSlug, classCards(in.Classes))
	case *content.News:
		v.Cards = cards(b.Content, b.Settings, in.PageSlug, newsCards(in.News))
	case *content.Contact:
		v.Contact = &ContactView{
			Title:       b.Content.Title,
			Description: b.Content.Description,
			Form:        ResolveForm(in.FormOverride, storedForm(b), in.PageCategory),
		}
	case *content.Donations:
		v.Donations = &DonationsView{
			Title:         b.Content.Title,
			Description:   b.Content.Description,
			ImageURL:      b.Content.ImageURL,
			DefaultAmount: float64(b.Settings.DefaultAmount),
		}
	case *content.Header:
		v.Header = &HeaderView{
			Title:       b.Content.Title,
			Description: b.Content.Description,
			ImageURL:    b.Content.ImageURL,
		}
	case *content.DonationSuccess:
		v.DonationSuccess = &DonationSuccessView{}
	default:
		return nil
	}
	return v
}

// Page renders sections in order, skipping the ones that draw nothing.
func Page(sections []content.Section, in Input) []View {
	out := make([]View, 0, len(sections))
	for _, s := range sections {
		if v := Render(s, in); v != nil {
			out = append(out, *v)
		}
	}
	return out
}

func hero(b *content.Hero) *HeroView {
	v := &HeroView{Slides: []SlideView{}, AutoplaySeconds: b.Settings.AutoplaySeconds}
	for _, sl := range b.Content.Slides {
		if sl.ImageURL == "" {
			continue
		}
		title, desc := b.Content.Title, b.Content.Description
		if sl.Title != "" {
			title = sl.Title
		}
		if sl.Description != "" {
			desc = sl.Description
		}
		buttons := make([]ButtonView, 0, len(sl.Buttons))
		for _, btn := range sl.Buttons {
			buttons = append(buttons, ButtonView{Text: btn.Text, Link: btn.Link, Style: btn.Style})
		}
		v.Slides = append(v.Slides, SlideView{
			ImageURL:    sl.ImageURL,
			Title:       title,
			Description: desc,
			Buttons:     buttons,
		})
	}
	return v
}

func textBlock(b *content.TextBlock) *TextBlockView {
	side := ImageRight
	if b.Settings.Layout == content.LayoutImageLeft {
		side = ImageLeft
	}
	return &TextBlockView{
		Title:       b.Content.Title,
		Description: b.Content.Description,
		ImageURL:    b.Content.ImageURL,
		Image:       side,
	}
}

func cards(c content.CollectionContent, s content.CollectionSettings, pageSlug string, items []Card) *CardsView {
	layout := s.Layout
	if layout == "" {
		layout = content.LayoutGrid
		if pageSlug == content.HomeSlug {
			layout = content.LayoutSlider
		}
	}
	if s.Limit > 0 && len(items) > s.Limit {
		items = items[:s.Limit]
	}
	return &CardsView{
		Title:       c.Title,
		Description: c.Description,
		Layout:      layout,
		Cards:       items,
	}
}

func classCards(classes []catalog.Class) []Card {
	out := make([]Card, 0, len(classes))
	for _, c := range classes {
		out = append(out, Card{
			ID:          c.ID,
			Title:       c.Name,
			Description: c.Description,
			Label:       c.Label,
			ImageURL:    c.ImageURL,
			Slug:        slugOr(c.Slug, c.Name),
			Color:       c.Color,
		})
	}
	return out
}

func newsCards(news []catalog.NewsItem) []Card {
	out := make([]Card, 0, len(news))
	for _, n := range news {
		out = append(out, Card{
			ID:          n.ID,
			Title:       n.Title,
			Description: n.Description,
			Label:       n.Label,
			ImageURL:    n.ImageURL,
			Slug:        slugOr(n.Slug, n.Title),
			Color:       n.Color,
		})
	}
	return out
}

func slugOr(slug, name string) string {
	if strings.TrimSpace(slug) != "" {
		return slug
	}
	return site.MakeSlug(name)
}
