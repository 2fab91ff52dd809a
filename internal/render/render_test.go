package render

import (
	"encoding/json"
	"testing"

	"emb-site/internal/domain/catalog"
	"emb-site/internal/domain/content"
)

func decode(t *testing.T, raw string) content.Section {
	t.Helper()
	var s content.Section
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		t.Fatalf("decode section: %v", err)
	}
	return s
}

func TestHeroSlideOverridesSectionTitle(t *testing.T) {
	sec := decode(t, `{"id":"h","type":"hero","content":{
		"title":"EMB","description":"Escuela",
		"slides":[
			{"image_url":"/a.jpg","title":""},
			{"image_url":"/b.jpg","title":"Concierto","description":"Sábado"}
		]},"settings":{}}`)

	v := Render(sec, Input{})
	if v == nil || v.Hero == nil {
		t.Fatal("expected hero view")
	}
	if got := len(v.Hero.Slides); got != 2 {
		t.Fatalf("slides = %d, want 2", got)
	}
	if v.Hero.Slides[0].Title != "EMB" || v.Hero.Slides[0].Description != "Escuela" {
		t.Fatalf("slide 0 = %+v", v.Hero.Slides[0])
	}
	if v.Hero.Slides[1].Title != "Concierto" || v.Hero.Slides[1].Description != "Sábado" {
		t.Fatalf("slide 1 = %+v", v.Hero.Slides[1])
	}
}

func TestHeroSkipsSlidesWithoutImage(t *testing.T) {
	sec := decode(t, `{"id":"h","type":"hero","content":{"slides":[{"title":"x"},{"image_url":"/b.jpg"}]}}`)
	v := Render(sec, Input{})
	if len(v.Hero.Slides) != 1 || v.Hero.Slides[0].ImageURL != "/b.jpg" {
		t.Fatalf("slides = %+v", v.Hero.Slides)
	}
}

func TestTextBlockImageSide(t *testing.T) {
	cases := map[string]string{
		`{}`:                          ImageRight,
		`{"layout":"image-right"}`:    ImageRight,
		`{"layout":"image-left"}`:     ImageLeft,
		`{"layout":"something-else"}`: ImageRight,
	}
	for settings, want := range cases {
		sec := decode(t, `{"id":"t","type":"texto-bloque","content":{"title":"x"},"settings":`+settings+`}`)
		if got := Render(sec, Input{}).TextBlock.Image; got != want {
			t.Errorf("settings %s: image = %q, want %q", settings, got, want)
		}
	}
}

func TestCollectionLayoutDefaults(t *testing.T) {
	sec := decode(t, `{"id":"c","type":"clases","content":{},"settings":{}}`)

	if got := Render(sec, Input{PageSlug: content.HomeSlug}).Cards.Layout; got != content.LayoutSlider {
		t.Errorf("home layout = %q, want slider", got)
	}
	if got := Render(sec, Input{PageSlug: "clases"}).Cards.Layout; got != content.LayoutGrid {
		t.Errorf("clases layout = %q, want grid", got)
	}

	explicit := decode(t, `{"id":"c","type":"clases","content":{},"settings":{"layout":"grid"}}`)
	if got := Render(explicit, Input{PageSlug: content.HomeSlug}).Cards.Layout; got != content.LayoutGrid {
		t.Errorf("explicit layout = %q, want grid", got)
	}
}

func TestCollectionCardsSynthesiseSlug(t *testing.T) {
	in := Input{
		Classes: []catalog.Class{
			{ID: "1", Name: "Guitarra Eléctrica", Color: "#f00"},
			{ID: "2", Name: "Piano", Slug: "piano-inicial"},
		},
		News: []catalog.NewsItem{{ID: "n1", Title: "Año Nuevo"}},
	}

	cls := Render(decode(t, `{"id":"c","type":"clases"}`), in).Cards.Cards
	if len(cls) != 2 {
		t.Fatalf("cards = %d", len(cls))
	}
	if cls[0].Slug != "guitarra-electrica" || cls[0].Title != "Guitarra Eléctrica" || cls[0].Color != "#f00" {
		t.Errorf("card 0 = %+v", cls[0])
	}
	if cls[1].Slug != "piano-inicial" {
		t.Errorf("stored slug not kept: %+v", cls[1])
	}

	news := Render(decode(t, `{"id":"n","type":"noticias"}`), in).Cards.Cards
	if len(news) != 1 || news[0].Slug != "ano-nuevo" {
		t.Errorf("news cards = %+v", news)
	}
}

func TestCollectionLimit(t *testing.T) {
	in := Input{Classes: []catalog.Class{{ID: "1", Name: "a"}, {ID: "2", Name: "b"}, {ID: "3", Name: "c"}}}
	sec := decode(t, `{"id":"c","type":"clases","settings":{"limit":2}}`)
	if got := len(Render(sec, in).Cards.Cards); got != 2 {
		t.Fatalf("cards = %d, want 2", got)
	}
}

func TestContactFormPrecedence(t *testing.T) {
	sec := decode(t, `{"id":"f","type":"contacto","content":{},"settings":{"form_type":"general"}}`)

	v := Render(sec, Input{FormOverride: "inscripcion", PageCategory: content.CategoryContact})
	if v.Contact.Form != FormClasses {
		t.Fatalf("form = %q, want clases", v.Contact.Form)
	}

	v = Render(sec, Input{PageCategory: content.CategoryClasses})
	if v.Contact.Form != FormGeneral {
		t.Fatalf("stored setting should beat page category, got %q", v.Contact.Form)
	}

	bare := decode(t, `{"id":"f","type":"contacto"}`)
	if got := Render(bare, Input{PageCategory: content.CategoryClasses}).Contact.Form; got != FormClasses {
		t.Fatalf("page category fallback = %q", got)
	}
	if got := Render(bare, Input{FormOverride: "bogus", PageCategory: content.CategoryContact}).Contact.Form; got != FormGeneral {
		t.Fatalf("unrecognised override should fall through, got %q", got)
	}

	fromContent := decode(t, `{"id":"f","type":"contacto","content":{"form_type":"clases"}}`)
	if got := Render(fromContent, Input{PageCategory: content.CategoryContact}).Contact.Form; got != FormClasses {
		t.Fatalf("content form_type = %q", got)
	}
}

func TestDonationsDefaultAmount(t *testing.T) {
	sec := decode(t, `{"id":"d","type":"donaciones","content":{"title":"Doná"},"settings":{"default_amount":"1500"}}`)
	v := Render(sec, Input{})
	if v.Donations.DefaultAmount != 1500 || v.Donations.Title != "Doná" {
		t.Fatalf("donations = %+v", v.Donations)
	}
}

func TestUnknownRendersNothing(t *testing.T) {
	sec := decode(t, `{"id":"x","type":"carousel-3d","content":{"a":1}}`)
	if v := Render(sec, Input{}); v != nil {
		t.Fatalf("expected nil, got %+v", v)
	}

	views := Page([]content.Section{sec, decode(t, `{"id":"ok","type":"donacion-exitosa"}`)}, Input{})
	if len(views) != 1 || views[0].ID != "ok" || views[0].DonationSuccess == nil {
		t.Fatalf("views = %+v", views)
	}
}

func TestEmptyPageRendersEmptyBody(t *testing.T) {
	if views := Page(nil, Input{}); views == nil || len(views) != 0 {
		t.Fatalf("views = %#v", views)
	}
}
