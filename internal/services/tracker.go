package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/steamvault/inventory-tracker/internal/metrics"
	"github.com/steamvault/inventory-tracker/internal/models"
)

// analysisSource is the pricing source the trend analysis reads. Additional
// sources could be added to the saved batch without touching analysis.
const analysisSource = "skinport"

// priceUnavailableTrend is reported for items the pricing source had no
// price for this cycle.
const priceUnavailableTrend = "Price not available."

// pricingDegradedWarning is attached to the report when live pricing failed
// and only stored history backs the run.
const pricingDegradedWarning = "Could not fetch any price data. Trends below use previously stored history only."

type inventoryFetcher interface {
	FetchInventory(ctx context.Context, steamID string, opts models.TrackOptions) ([]string, error)
}

type priceFetcher interface {
	FetchPrices(ctx context.Context, itemNames []string, currency string) (map[string]float64, error)
}

type trendClassifier interface {
	Classify(itemName string, currentPrice float64) models.TrendResult
}

// TrackerService sequences inventory fetch, price fetch, persistence, and
// trend analysis into one report. Runs are strictly sequential: no retries,
// no fan-out.
type TrackerService struct {
	inventory inventoryFetcher
	prices    priceFetcher
	store     *PriceStore
	analysis  trendClassifier
}

// NewTrackerService creates a new tracker.
func NewTrackerService(inventory inventoryFetcher, prices priceFetcher, store *PriceStore, analysis trendClassifier) *TrackerService {
	return &TrackerService{
		inventory: inventory,
		prices:    prices,
		store:     store,
		analysis:  analysis,
	}
}

// Run executes one full tracking pass for the account. Inventory failure is
// fatal for the run. Pricing failure degrades it: the report is still built
// from stored history, with a user-visible warning attached. Items are
// reported once each, sorted lexicographically.
func (t *TrackerService) Run(ctx context.Context, steamID string, opts models.TrackOptions) (*models.Report, error) {
	runID := uuid.New().String()
	start := time.Now()
	log.Printf("Tracker run %s: starting for SteamID %s (test mode: %v)", runID, steamID, opts.UseTestData)

	items, err := t.inventory.FetchInventory(ctx, steamID, opts)
	if err != nil {
		metrics.TrackerRunsTotal.WithLabelValues("inventory_failed").Inc()
		log.Printf("Tracker run %s: inventory fetch failed: %v", runID, err)
		return nil, err
	}
	if len(items) == 0 {
		// A private account and a genuinely empty one are indistinguishable
		// upstream; both end the run the same way.
		metrics.TrackerRunsTotal.WithLabelValues("inventory_failed").Inc()
		log.Printf("Tracker run %s: inventory came back empty", runID)
		return nil, fmt.Errorf("%w: no items returned", ErrInventoryUnavailable)
	}

	unique := uniqueSorted(items)
	log.Printf("Tracker run %s: found %d total items (%d unique)", runID, len(items), len(unique))

	currency := opts.Currency
	if currency == "" {
		currency = "USD"
	}

	warning := ""
	prices, err := t.prices.FetchPrices(ctx, unique, currency)
	if err != nil {
		log.Printf("Tracker run %s: price fetch failed, continuing with stored history: %v", runID, err)
		prices = map[string]float64{}
		warning = pricingDegradedWarning
	}

	batch := make(map[string]map[string]float64, len(prices))
	for name, price := range prices {
		batch[name] = map[string]float64{analysisSource: price}
	}
	if _, err := t.store.SaveObservations(batch); err != nil {
		// The run can still produce a report from existing history.
		log.Printf("Tracker run %s: failed to save observations: %v", runID, err)
	}

	report := &models.Report{
		RunID:       runID,
		SteamID:     steamID,
		GeneratedAt: time.Now().UTC(),
		TotalItems:  len(items),
		UniqueItems: len(unique),
		Warning:     warning,
	}

	for _, name := range unique {
		entry := models.ItemReport{ItemName: name, Trend: priceUnavailableTrend}
		if price, ok := prices[name]; ok {
			p := price
			entry.CurrentPrice = &p
			entry.Trend = t.analysis.Classify(name, price).Description()
		}
		report.Items = append(report.Items, entry)
	}

	outcome := "success"
	if warning != "" {
		outcome = "degraded"
	}
	metrics.TrackerRunsTotal.WithLabelValues(outcome).Inc()
	metrics.TrackerRunDuration.Observe(time.Since(start).Seconds())
	metrics.TrackerItemsReported.Set(float64(len(unique)))

	log.Printf("Tracker run %s: complete (%d unique items in %v)", runID, len(unique), time.Since(start).Round(time.Millisecond))
	return report, nil
}

// uniqueSorted deduplicates item names and sorts them lexicographically so
// presentation order is deterministic.
func uniqueSorted(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	unique := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		unique = append(unique, item)
	}
	sort.Strings(unique)
	return unique
}
