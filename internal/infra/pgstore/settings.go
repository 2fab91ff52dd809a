package pgstore

import (
	"context"
	"errors"
	"time"

	"emb-site/internal/domain/access"
	"emb-site/internal/domain/settings"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Settings struct {
	db *gorm.DB
}

func NewSettings(db *gorm.DB) *Settings {
	return &Settings{db: db}
}

func (s *Settings) Get(ctx context.Context, key string) (*settings.Document, error) {
	var d settings.Document
	if err := s.db.WithContext(ctx).Where("key = ?", key).First(&d).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, settings.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

// Put replaces the whole document in one upsert.
func (s *Settings) Put(ctx context.Context, key string, data []byte) error {
	doc := settings.Document{Key: key, Data: datatypes.JSON(data), UpdatedAt: time.Now().UTC()}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&doc).Error
}

type Accounts struct {
	db *gorm.DB
}

func NewAccounts(db *gorm.DB) *Accounts {
	return &Accounts{db: db}
}

func (s *Accounts) GetByEmail(ctx context.Context, email string) (*access.AdminAccount, error) {
	var a access.AdminAccount
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, access.ErrAccountNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (s *Accounts) Upsert(ctx context.Context, a *access.AdminAccount) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "password_hash", "updated_at"}),
	}).Create(a).Error
}
