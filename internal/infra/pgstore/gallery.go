package pgstore

import (
	"context"

	"emb-site/internal/domain/gallery"

	"gorm.io/gorm"
)

type Gallery struct {
	db *gorm.DB
}

func NewGallery(db *gorm.DB) *Gallery {
	return &Gallery{db: db}
}

func (s *Gallery) List(ctx context.Context) ([]gallery.Image, error) {
	var out []gallery.Image
	if err := s.db.WithContext(ctx).Order("sort_order ASC").Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Gallery) Create(ctx context.Context, img *gallery.Image) error {
	return s.db.WithContext(ctx).Create(img).Error
}

func (s *Gallery) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&gallery.Image{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gallery.ErrNotFound
	}
	return nil
}

func (s *Gallery) UpdateCaption(ctx context.Context, id, caption, alt string) error {
	res := s.db.WithContext(ctx).
		Model(&gallery.Image{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"caption": caption, "alt": alt})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gallery.ErrNotFound
	}
	return nil
}

func (s *Gallery) SetOrders(ctx context.Context, orders map[string]int) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for id, o := range orders {
			if err := tx.Model(&gallery.Image{}).Where("id = ?", id).Update("sort_order", o).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
