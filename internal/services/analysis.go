package services

import (
	"log"
	"time"

	"github.com/steamvault/inventory-tracker/internal/metrics"
	"github.com/steamvault/inventory-tracker/internal/models"
)

// Fixed analysis policy. These are deliberate constants, not configuration.
const (
	historyLookbackDays = 30
	recentWindowDays    = 7
	trendBand           = 0.10
)

// AnalysisService classifies a current price against an item's stored history.
type AnalysisService struct {
	store *PriceStore
}

// NewAnalysisService creates a new analysis service.
func NewAnalysisService(store *PriceStore) *AnalysisService {
	return &AnalysisService{store: store}
}

// Classify compares currentPrice to the item's 7-day average price (falling
// back to the 30-day average when the last week has no observations). Fewer
// than two observations in the 30-day window yields InsufficientData. This
// never fails: a store read error also degrades to InsufficientData.
func (s *AnalysisService) Classify(itemName string, currentPrice float64) models.TrendResult {
	result := models.TrendResult{
		Classification: models.TrendInsufficientData,
		CurrentPrice:   currentPrice,
	}

	history, err := s.store.GetHistory(itemName, historyLookbackDays)
	if err != nil {
		log.Printf("Analysis: failed to load history for %s: %v", itemName, err)
		metrics.TrendClassificationsTotal.WithLabelValues(string(result.Classification)).Inc()
		return result
	}

	if len(history) < 2 {
		metrics.TrendClassificationsTotal.WithLabelValues(string(result.Classification)).Inc()
		return result
	}

	var sum float64
	for _, obs := range history {
		sum += obs.Price
	}
	avg30 := sum / float64(len(history))

	now := time.Now().UTC()
	var recentSum float64
	var recentCount int
	for _, obs := range history {
		// Whole-day difference; history timestamps are already UTC.
		if int(now.Sub(obs.Timestamp).Hours()/24) <= recentWindowDays {
			recentSum += obs.Price
			recentCount++
		}
	}

	avg7 := avg30 // fallback when nothing landed in the recent window
	if recentCount > 0 {
		avg7 = recentSum / float64(recentCount)
	}

	result.ReferenceAverage = avg7
	switch {
	case currentPrice > avg7*(1+trendBand):
		result.Classification = models.TrendHigh
	case currentPrice < avg7*(1-trendBand):
		result.Classification = models.TrendLow
	default:
		result.Classification = models.TrendStable
	}

	metrics.TrendClassificationsTotal.WithLabelValues(string(result.Classification)).Inc()
	return result
}
