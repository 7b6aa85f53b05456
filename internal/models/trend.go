package models

import "fmt"

// Trend classifies a current price against recent history.
type Trend string

const (
	TrendHigh             Trend = "High"
	TrendLow              Trend = "Low"
	TrendStable           Trend = "Stable"
	TrendInsufficientData Trend = "InsufficientData"
)

// TrendResult is the outcome of a single trend analysis. It is computed per
// call and never persisted.
type TrendResult struct {
	Classification   Trend   `json:"classification"`
	CurrentPrice     float64 `json:"current_price"`
	ReferenceAverage float64 `json:"reference_average"`
}

// Description renders the result as a user-facing sentence.
func (r TrendResult) Description() string {
	price := fmt.Sprintf("$%.2f", r.CurrentPrice)
	avg := fmt.Sprintf("$%.2f", r.ReferenceAverage)

	switch r.Classification {
	case TrendHigh:
		return fmt.Sprintf("High: Current price (%s) is >10%% above 7-day average (%s).", price, avg)
	case TrendLow:
		return fmt.Sprintf("Low: Current price (%s) is >10%% below 7-day average (%s).", price, avg)
	case TrendStable:
		return fmt.Sprintf("Stable: Current price (%s) is within 10%% of 7-day average (%s).", price, avg)
	default:
		return "Not enough data to analyze trend."
	}
}
