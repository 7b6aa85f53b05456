package services

import (
	"path/filepath"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/steamvault/inventory-tracker/internal/models"
)

// newTestStore returns a PriceStore backed by a throwaway SQLite file.
func newTestStore(t *testing.T) *PriceStore {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.PriceObservation{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return NewPriceStore(db)
}

// seedObservation inserts a single observation with a timestamp the given
// number of days in the past.
func seedObservation(t *testing.T, store *PriceStore, itemName string, price float64, daysAgo int) {
	t.Helper()

	obs := models.PriceObservation{
		ItemName:  itemName,
		Source:    "skinport",
		Price:     price,
		Timestamp: time.Now().UTC().AddDate(0, 0, -daysAgo),
	}
	if err := store.db.Create(&obs).Error; err != nil {
		t.Fatalf("failed to seed observation: %v", err)
	}
}
