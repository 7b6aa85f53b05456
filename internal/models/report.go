package models

import (
	"fmt"
	"time"
)

// TrackOptions are the per-run options collected from the form or CLI flags.
type TrackOptions struct {
	UseTestData  bool   `json:"use_test_data"`
	Currency     string `json:"currency"`
	TradableOnly bool   `json:"tradable_only"`
	ItemTypeTag  string `json:"item_type_tag"`
}

// ItemReport is the per-item outcome of a tracker run. CurrentPrice is nil
// when the pricing source had no price for the item this cycle.
type ItemReport struct {
	ItemName     string   `json:"item_name"`
	CurrentPrice *float64 `json:"current_price"`
	Trend        string   `json:"trend"`
}

// PriceDisplay formats the current price for presentation, "N/A" when the
// pricing source had none.
func (r ItemReport) PriceDisplay() string {
	if r.CurrentPrice == nil {
		return "N/A"
	}
	return fmt.Sprintf("$%.2f", *r.CurrentPrice)
}

// Report is the result of one full tracker run.
type Report struct {
	RunID       string       `json:"run_id"`
	SteamID     string       `json:"steam_id"`
	GeneratedAt time.Time    `json:"generated_at"`
	Items       []ItemReport `json:"items"`
	TotalItems  int          `json:"total_items"`  // held instances, duplicates included
	UniqueItems int          `json:"unique_items"` // distinct item names
	Warning     string       `json:"warning,omitempty"`
}
