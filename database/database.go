package database

import (
	"emb-site/internal/domain/access"
	"emb-site/internal/domain/catalog"
	"emb-site/internal/domain/content"
	"emb-site/internal/domain/donations"
	"emb-site/internal/domain/gallery"
	"emb-site/internal/domain/settings"
	"emb-site/internal/logger"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

func InitDB(dsn string) {
	if dsn == "" {
		logger.Log.Fatal("DB_URL not set")
	}

	db, err := Open(dsn)
	if err != nil {
		logger.Log.Fatal("failed to connect to database", zap.Error(err))
	}
	DB = db

	if err := Migrate(DB); err != nil {
		logger.Log.Fatal("auto-migrate failed", zap.Error(err))
	}

	logger.Log.Info("database connected and migrated")
}

func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
}

// Migrate creates or updates every table the site uses.
func Migrate(db *gorm.DB) error {
	// gen_random_uuid() for gallery ids
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		return err
	}

	return db.AutoMigrate(
		// content
		&content.Page{},
		&content.GlobalSection{},
		&catalog.Class{},
		&catalog.NewsItem{},
		&gallery.Image{},

		// site documents and access
		&settings.Document{},
		&access.AdminAccount{},

		// payments
		&donations.Donation{},
	)
}
