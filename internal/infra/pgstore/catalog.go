package pgstore

import (
	"context"
	"errors"

	"emb-site/internal/domain/catalog"

	"gorm.io/gorm"
)

// Collection stores one catalog collection (classes or news).
type Collection[T any] struct {
	db    *gorm.DB
	order string
}

func NewClasses(db *gorm.DB) *Collection[catalog.Class] {
	return &Collection[catalog.Class]{db: db, order: "sort_index ASC, name ASC"}
}

func NewNews(db *gorm.DB) *Collection[catalog.NewsItem] {
	return &Collection[catalog.NewsItem]{db: db, order: "published_at DESC NULLS LAST, created_at DESC"}
}

func (s *Collection[T]) List(ctx context.Context) ([]T, error) {
	var out []T
	if err := s.db.WithContext(ctx).Order(s.order).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Collection[T]) Get(ctx context.Context, id string) (*T, error) {
	return s.first(ctx, "id = ?", id)
}

func (s *Collection[T]) GetBySlug(ctx context.Context, slug string) (*T, error) {
	return s.first(ctx, "slug = ?", slug)
}

func (s *Collection[T]) first(ctx context.Context, query, arg string) (*T, error) {
	var v T
	if err := s.db.WithContext(ctx).Where(query, arg).First(&v).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (s *Collection[T]) Create(ctx context.Context, item *T) error {
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Collection[T]) Update(ctx context.Context, id string, changes map[string]interface{}) error {
	res := s.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(changes)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (s *Collection[T]) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return catalog.ErrNotFound
	}
	return nil
}
