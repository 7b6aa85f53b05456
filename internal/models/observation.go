package models

import "time"

// PriceObservation is one recorded (item, source, price, time) sample.
// Rows are append-only: nothing in the application updates or deletes them,
// and duplicate (item, source, timestamp) rows are allowed.
type PriceObservation struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ItemName  string    `json:"item_name" gorm:"not null;index:idx_item_name"`
	Source    string    `json:"source" gorm:"not null"`
	Price     float64   `json:"price" gorm:"not null"`
	Timestamp time.Time `json:"timestamp" gorm:"not null;index"`
}

// TableName keeps the table name the history queries expect.
func (PriceObservation) TableName() string {
	return "price_observations"
}
