package database

import (
	"log"

	"github.com/mannyandcelesti/rsvp-api/internal/config"
	"github.com/mannyandcelesti/rsvp-api/internal/models"
	"github.com/mannyandcelesti/rsvp-api/internal/store"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto Migrate: the wedding and baby-shower tables share one model.
	for _, table := range []string{store.WeddingTable, store.BabyShowerTable} {
		if err := db.Table(table).AutoMigrate(&models.RSVP{}); err != nil {
			log.Fatalf("Failed to auto migrate %s: %v", table, err)
		}
	}

	return db
}
