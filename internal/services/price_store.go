package services

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/steamvault/inventory-tracker/internal/metrics"
	"github.com/steamvault/inventory-tracker/internal/models"
)

// PriceStore persists price observations. The table is append-only: writes
// insert rows, reads never mutate, and nothing deduplicates or deletes.
type PriceStore struct {
	db *gorm.DB
}

// NewPriceStore creates a price store over the given database handle.
func NewPriceStore(db *gorm.DB) *PriceStore {
	return &PriceStore{db: db}
}

// SaveObservations writes one row per (item, source) pair in the batch, all
// sharing a single UTC timestamp. An empty batch is a logged no-op. Returns
// the number of rows written.
func (s *PriceStore) SaveObservations(batch map[string]map[string]float64) (int, error) {
	now := time.Now().UTC()

	var rows []models.PriceObservation
	for itemName, sources := range batch {
		for source, price := range sources {
			rows = append(rows, models.PriceObservation{
				ItemName:  itemName,
				Source:    source,
				Price:     price,
				Timestamp: now,
			})
		}
	}

	if len(rows) == 0 {
		log.Println("Price store: no price data to save")
		return 0, nil
	}

	if err := s.db.Create(&rows).Error; err != nil {
		return 0, fmt.Errorf("failed to save price observations: %w", err)
	}

	metrics.ObservationsSavedTotal.Add(float64(len(rows)))
	log.Printf("Price store: saved %d price observations", len(rows))
	return len(rows), nil
}

// GetHistory returns all observations for the item recorded within the last
// lookbackDays days, oldest first. Timestamps always come back tagged UTC so
// day-boundary comparisons downstream behave.
func (s *PriceStore) GetHistory(itemName string, lookbackDays int) ([]models.PriceObservation, error) {
	start := time.Now().UTC().AddDate(0, 0, -lookbackDays)

	var history []models.PriceObservation
	err := s.db.
		Where("item_name = ? AND timestamp >= ?", itemName, start).
		Order("timestamp ASC").
		Find(&history).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load price history for %s: %w", itemName, err)
	}

	// SQLite can hand timestamps back without zone info
	for i := range history {
		history[i].Timestamp = history[i].Timestamp.UTC()
	}

	return history, nil
}
