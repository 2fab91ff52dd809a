package pgstore

import (
	"context"
	"errors"

	"emb-site/internal/domain/content"

	"gorm.io/gorm"
)

type Pages struct {
	db *gorm.DB
}

func NewPages(db *gorm.DB) *Pages {
	return &Pages{db: db}
}

func (s *Pages) GetBySlug(ctx context.Context, slug string) (*content.Page, error) {
	var p content.Page
	if err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, content.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *Pages) List(ctx context.Context) ([]content.Page, error) {
	var pages []content.Page
	if err := s.db.WithContext(ctx).Order("slug ASC").Find(&pages).Error; err != nil {
		return nil, err
	}
	return pages, nil
}

// Save replaces every editable column in one statement; the last writer wins.
func (s *Pages) Save(ctx context.Context, p *content.Page) error {
	res := s.db.WithContext(ctx).
		Model(&content.Page{}).
		Where("slug = ?", p.Slug).
		Updates(map[string]interface{}{
			"category":           p.Category,
			"sections":           p.Sections,
			"header_title":       p.HeaderTitle,
			"header_description": p.HeaderDescription,
			"header_image_url":   p.HeaderImageURL,
			"meta_title":         p.MetaTitle,
			"meta_description":   p.MetaDescription,
			"last_updated":       p.LastUpdated,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return content.ErrNotFound
	}
	return nil
}

func (s *Pages) Create(ctx context.Context, p *content.Page) error {
	return s.db.WithContext(ctx).Create(p).Error
}

type Sections struct {
	db *gorm.DB
}

func NewSections(db *gorm.DB) *Sections {
	return &Sections{db: db}
}

// GetMany returns the decodable sections among ids. Rows that fail to decode
// are left out, same as missing ones.
func (s *Sections) GetMany(ctx context.Context, ids []string) (map[string]content.Section, error) {
	var rows []content.GlobalSection
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]content.Section, len(rows))
	for _, r := range rows {
		sec, err := r.Section()
		if err != nil {
			continue
		}
		out[r.ID] = sec
	}
	return out, nil
}
