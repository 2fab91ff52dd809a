package gallery

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrNotFound       = errors.New("image not found")
	ErrInvalidURL     = errors.New("image url must be http(s)")
	ErrBadPermutation = errors.New("order must list every image exactly once")
)

type Store interface {
	// List returns images sorted by order.
	List(ctx context.Context) ([]Image, error)
	Create(ctx context.Context, img *Image) error
	Delete(ctx context.Context, id string) error
	UpdateCaption(ctx context.Context, id, caption, alt string) error
	// SetOrders writes every given order in one transaction.
	SetOrders(ctx context.Context, orders map[string]int) error
}

type Service struct {
	store Store
	log   *zap.Logger
}

func NewService(store Store, log *zap.Logger) *Service {
	return &Service{store: store, log: log}
}

func (s *Service) List(ctx context.Context) ([]Image, error) { return s.store.List(ctx) }

// Add appends an image at the end of the gallery.
func (s *Service) Add(ctx context.Context, rawURL, caption, alt string) (*Image, error) {
	rawURL = strings.TrimSpace(rawURL)
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, ErrInvalidURL
	}

	imgs, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	img := &Image{
		ID:      uuid.NewString(),
		URL:     rawURL,
		Caption: strings.TrimSpace(caption),
		Alt:     strings.TrimSpace(alt),
		Order:   len(imgs),
	}
	if err := s.store.Create(ctx, img); err != nil {
		return nil, err
	}
	s.log.Info("gallery image added", zap.String("id", img.ID), zap.Int("order", img.Order))
	return img, nil
}

// Delete removes an image and closes the gap it leaves in the order.
func (s *Service) Delete(ctx context.Context, id string) error {
	imgs, err := s.store.List(ctx)
	if err != nil {
		return err
	}
	rest := make([]string, 0, len(imgs))
	found := false
	for _, img := range imgs {
		if img.ID == id {
			found = true
			continue
		}
		rest = append(rest, img.ID)
	}
	if !found {
		return ErrNotFound
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.store.SetOrders(ctx, dense(rest)); err != nil {
		return fmt.Errorf("renumber after delete: %w", err)
	}
	s.log.Info("gallery image deleted", zap.String("id", id))
	return nil
}

// Reorder persists a new visual sequence. ids must be a permutation of the
// current images; the result is order 0..N-1 in the given sequence.
func (s *Service) Reorder(ctx context.Context, ids []string) ([]Image, error) {
	imgs, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(ids) != len(imgs) {
		return nil, ErrBadPermutation
	}
	known := make(map[string]bool, len(imgs))
	for _, img := range imgs {
		known[img.ID] = true
	}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if !known[id] || seen[id] {
			return nil, ErrBadPermutation
		}
		seen[id] = true
	}

	if err := s.store.SetOrders(ctx, dense(ids)); err != nil {
		return nil, err
	}
	return s.store.List(ctx)
}

func (s *Service) Caption(ctx context.Context, id, caption, alt string) error {
	return s.store.UpdateCaption(ctx, id, strings.TrimSpace(caption), strings.TrimSpace(alt))
}

func dense(ids []string) map[string]int {
	out := make(map[string]int, len(ids))
	for i, id := range ids {
		out[id] = i
	}
	return out
}
