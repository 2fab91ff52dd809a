package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"emb-site/internal/domain/site"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrNotFound    = errors.New("item not found")
	ErrMissingName = errors.New("name/title is required")
)

// Store is the persistence of one collection. Update applies only the given
// columns.
type Store[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (*T, error)
	GetBySlug(ctx context.Context, slug string) (*T, error)
	Create(ctx context.Context, item *T) error
	Update(ctx context.Context, id string, changes map[string]interface{}) error
	Delete(ctx context.Context, id string) error
}

// Invalidator drops cached page renders; collection edits affect every page
// that lists classes or news.
type Invalidator interface {
	Purge()
}

type Service struct {
	classes Store[Class]
	news    Store[NewsItem]
	cache   Invalidator
	log     *zap.Logger
	now     func() time.Time
}

func NewService(classes Store[Class], news Store[NewsItem], cache Invalidator, log *zap.Logger) *Service {
	return &Service{classes: classes, news: news, cache: cache, log: log, now: time.Now}
}

func (s *Service) Classes(ctx context.Context) ([]Class, error) { return s.classes.List(ctx) }

func (s *Service) News(ctx context.Context) ([]NewsItem, error) { return s.news.List(ctx) }

func (s *Service) ClassBySlug(ctx context.Context, slug string) (*Class, error) {
	return s.classes.GetBySlug(ctx, slug)
}

func (s *Service) NewsBySlug(ctx context.Context, slug string) (*NewsItem, error) {
	return s.news.GetBySlug(ctx, slug)
}

// UpsertClass inserts when in.ID is empty and merges otherwise. The slug is
// always derived from the effective name.
func (s *Service) UpsertClass(ctx context.Context, in ClassInput) (*Class, error) {
	if in.ID == "" {
		name := strings.TrimSpace(deref(in.Name))
		if name == "" {
			return nil, ErrMissingName
		}
		c := Class{
			ID:          uuid.NewString(),
			Name:        name,
			Slug:        site.MakeSlug(name),
			Description: deref(in.Description),
			Label:       deref(in.Label),
			ImageURL:    deref(in.ImageURL),
			Color:       deref(in.Color),
			Teacher:     deref(in.Teacher),
			Instrument:  deref(in.Instrument),
			Schedule:    deref(in.Schedule),
		}
		if in.SortIndex != nil {
			c.SortIndex = *in.SortIndex
		}
		if err := s.classes.Create(ctx, &c); err != nil {
			return nil, err
		}
		s.changed("class created", c.ID)
		return &c, nil
	}

	cur, err := s.classes.Get(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	name := cur.Name
	changes := map[string]interface{}{}
	if in.Name != nil {
		name = strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, ErrMissingName
		}
		changes["name"] = name
	}
	setString(changes, "description", in.Description)
	setString(changes, "label", in.Label)
	setString(changes, "image_url", in.ImageURL)
	setString(changes, "color", in.Color)
	setString(changes, "teacher", in.Teacher)
	setString(changes, "instrument", in.Instrument)
	setString(changes, "schedule", in.Schedule)
	if in.SortIndex != nil {
		changes["sort_index"] = *in.SortIndex
	}
	changes["slug"] = site.MakeSlug(name)
	changes["updated_at"] = s.now()

	if err := s.classes.Update(ctx, in.ID, changes); err != nil {
		return nil, err
	}
	s.changed("class updated", in.ID)
	return s.classes.Get(ctx, in.ID)
}

func (s *Service) UpsertNews(ctx context.Context, in NewsInput) (*NewsItem, error) {
	if in.ID == "" {
		title := strings.TrimSpace(deref(in.Title))
		if title == "" {
			return nil, ErrMissingName
		}
		n := NewsItem{
			ID:          uuid.NewString(),
			Title:       title,
			Slug:        site.MakeSlug(title),
			Description: deref(in.Description),
			Body:        deref(in.Body),
			Label:       deref(in.Label),
			ImageURL:    deref(in.ImageURL),
			Color:       deref(in.Color),
			PublishedAt: in.PublishedAt,
		}
		if n.PublishedAt == nil {
			now := s.now().UTC()
			n.PublishedAt = &now
		}
		if err := s.news.Create(ctx, &n); err != nil {
			return nil, err
		}
		s.changed("news created", n.ID)
		return &n, nil
	}

	cur, err := s.news.Get(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	title := cur.Title
	changes := map[string]interface{}{}
	if in.Title != nil {
		title = strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, ErrMissingName
		}
		changes["title"] = title
	}
	setString(changes, "description", in.Description)
	setString(changes, "body", in.Body)
	setString(changes, "label", in.Label)
	setString(changes, "image_url", in.ImageURL)
	setString(changes, "color", in.Color)
	if in.PublishedAt != nil {
		changes["published_at"] = *in.PublishedAt
	}
	changes["slug"] = site.MakeSlug(title)
	changes["updated_at"] = s.now()

	if err := s.news.Update(ctx, in.ID, changes); err != nil {
		return nil, err
	}
	s.changed("news updated", in.ID)
	return s.news.Get(ctx, in.ID)
}

// DeleteClass is a hard delete; the caller confirms beforehand.
func (s *Service) DeleteClass(ctx context.Context, id string) error {
	if err := s.classes.Delete(ctx, id); err != nil {
		return err
	}
	s.changed("class deleted", id)
	return nil
}

func (s *Service) DeleteNews(ctx context.Context, id string) error {
	if err := s.news.Delete(ctx, id); err != nil {
		return err
	}
	s.changed("news deleted", id)
	return nil
}

func (s *Service) changed(msg, id string) {
	if s.cache != nil {
		s.cache.Purge()
	}
	s.log.Info(msg, zap.String("id", id))
}

func setString(changes map[string]interface{}, col string, v *string) {
	if v != nil {
		changes[col] = *v
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
