package main

import (
	"emb-site/config"
	"emb-site/database"
	"emb-site/internal/logger"

	"gorm.io/gorm"
)

// openDB loads the database settings and returns a migrated connection.
func openDB() (*gorm.DB, error) {
	config.LoadDBOnly()
	logger.Init(config.LOG_MODE, config.LOG_LEVEL, config.LOG_DIR)

	db, err := database.Open(config.DB_URL)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
