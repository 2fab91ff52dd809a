package content

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type PageStore interface {
	GetBySlug(ctx context.Context, slug string) (*Page, error)
	List(ctx context.Context) ([]Page, error)
	// Save overwrites the whole stored aggregate for p.Slug.
	Save(ctx context.Context, p *Page) error
	Create(ctx context.Context, p *Page) error
}

type SectionStore interface {
	GetMany(ctx context.Context, ids []string) (map[string]Section, error)
}

// Invalidator drops cached renders for route slugs.
type Invalidator interface {
	Invalidate(slugs ...string)
}

// Cleaners sanitise admin-entered text on publish. Text serves fields the
// site shows as plain text (titles); HTML serves fields rendered as markup
// (descriptions). A nil func leaves the field as is.
type Cleaners struct {
	Text func(string) string
	HTML func(string) string
}

func (c Cleaners) withDefaults() Cleaners {
	keep := func(s string) string { return s }
	if c.Text == nil {
		c.Text = keep
	}
	if c.HTML == nil {
		c.HTML = keep
	}
	return c
}

// Service loads and publishes page aggregates.
type Service struct {
	pages    PageStore
	sections SectionStore
	cache    Invalidator
	clean    Cleaners
	log      *zap.Logger
	now      func() time.Time
}

func NewService(pages PageStore, sections SectionStore, cache Invalidator, clean Cleaners, log *zap.Logger) *Service {
	return &Service{
		pages:    pages,
		sections: sections,
		cache:    cache,
		clean:    clean.withDefaults(),
		log:      log,
		now:      time.Now,
	}
}

// Load returns the stored page and its resolved sections.
func (s *Service) Load(ctx context.Context, slug string) (*Page, []Section, error) {
	p, err := s.pages.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}

	globals := map[string]Section{}
	if ids := ReferencedIDs(p.Sections); len(ids) > 0 {
		globals, err = s.sections.GetMany(ctx, ids)
		if err != nil {
			return nil, nil, fmt.Errorf("load referenced sections: %w", err)
		}
	}

	resolved := ResolveSections(p.Sections, globals)
	if dropped := len(p.Sections) - len(resolved); dropped > 0 {
		s.log.Warn("page references missing sections",
			zap.String("slug", slug),
			zap.Int("dropped", dropped))
	}
	return p, resolved, nil
}

func (s *Service) List(ctx context.Context) ([]Page, error) {
	return s.pages.List(ctx)
}

// Publish writes the entire aggregate. Nothing is written when the page does
// not exist yet; pages are created by the seed operation only.
func (s *Service) Publish(ctx context.Context, p *Page) error {
	if _, err := s.pages.GetBySlug(ctx, p.Slug); err != nil {
		return err
	}

	Normalize(p)
	for i := range p.Sections {
		if sec := p.Sections[i].Inline; sec != nil {
			Clean(sec, s.clean)
		}
	}
	p.HeaderTitle = s.clean.Text(p.HeaderTitle)
	p.HeaderDescription = s.clean.HTML(p.HeaderDescription)

	now := s.now().UTC()
	p.LastUpdated = &now

	if err := s.pages.Save(ctx, p); err != nil {
		return fmt.Errorf("publish %s: %w", p.Slug, err)
	}

	if s.cache != nil {
		s.cache.Invalidate(p.Slug, HomeSlug)
	}
	s.log.Info("page published", zap.String("slug", p.Slug), zap.Int("sections", len(p.Sections)))
	return nil
}

// Seed creates p unless a page with the same slug already exists.
func (s *Service) Seed(ctx context.Context, p *Page) (bool, error) {
	if _, err := s.pages.GetBySlug(ctx, p.Slug); err == nil {
		return false, nil
	}
	Normalize(p)
	now := s.now().UTC()
	p.LastUpdated = &now
	if err := s.pages.Create(ctx, p); err != nil {
		return false, err
	}
	return true, nil
}

// Clean passes the free-text fields of a section through c.
func Clean(sec *Section, c Cleaners) {
	c = c.withDefaults()
	switch b := sec.Body.(type) {
	case *Hero:
		b.Content.Title = c.Text(b.Content.Title)
		b.Content.Description = c.HTML(b.Content.Description)
		for i := range b.Content.Slides {
			b.Content.Slides[i].Title = c.Text(b.Content.Slides[i].Title)
			b.Content.Slides[i].Description = c.HTML(b.Content.Slides[i].Description)
		}
	case *TextBlock:
		b.Content.Title = c.Text(b.Content.Title)
		b.Content.Description = c.HTML(b.Content.Description)
	case *Classes:
		b.Content.Title = c.Text(b.Content.Title)
		b.Content.Description = c.HTML(b.Content.Description)
	case *News:
		b.Content.Title = c.Text(b.Content.Title)
		b.Content.Description = c.HTML(b.Content.Description)
	case *Contact:
		b.Content.Title = c.Text(b.Content.Title)
		b.Content.Description = c.HTML(b.Content.Description)
	case *Donations:
		b.Content.Title = c.Text(b.Content.Title)
		b.Content.Description = c.HTML(b.Content.Description)
	case *Header:
		b.Content.Title = c.Text(b.Content.Title)
		b.Content.Description = c.HTML(b.Content.Description)
	}
}
