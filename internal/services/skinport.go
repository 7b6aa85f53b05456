package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"github.com/steamvault/inventory-tracker/internal/metrics"
)

const (
	skinportBaseURL        = "https://api.skinport.com/v1"
	skinportDefaultTimeout = 10 * time.Second

	// CS2 app id on Steam
	skinportAppID = "730"

	// The catalog endpoint serves the complete item list and Skinport caches
	// responses for ~5 minutes, so we keep a matching short-lived cache per
	// currency instead of re-pulling the whole catalog on back-to-back runs.
	catalogCacheSize = 4
	catalogCacheTTL  = 5 * time.Minute
)

// ErrPricingUnavailable signals that no price data could be obtained this
// cycle. Callers treat it as "try later", not "items have no price".
var ErrPricingUnavailable = errors.New("pricing source unavailable")

// SkinportService fetches suggested item prices from the Skinport catalog
// API. Skinport does not support querying by name: each fetch pulls the full
// catalog and filters client-side.
type SkinportService struct {
	client  *http.Client
	baseURL string
	limiter *rate.Limiter
	catalog *expirable.LRU[string, map[string]float64]
}

// NewSkinportService creates a new Skinport API service.
func NewSkinportService() *SkinportService {
	return &SkinportService{
		client:  &http.Client{Timeout: skinportDefaultTimeout},
		baseURL: skinportBaseURL,
		limiter: rate.NewLimiter(rate.Every(30*time.Second), 1),
		catalog: expirable.NewLRU[string, map[string]float64](catalogCacheSize, nil, catalogCacheTTL),
	}
}

type skinportItem struct {
	MarketHashName string   `json:"market_hash_name"`
	Currency       string   `json:"currency"`
	SuggestedPrice *float64 `json:"suggested_price"`
}

// FetchPrices returns suggested prices for the requested items in the given
// currency. Items absent from the catalog or lacking a price are simply
// omitted from the result. On transport failure or an unparsable response it
// returns ErrPricingUnavailable.
func (s *SkinportService) FetchPrices(ctx context.Context, itemNames []string, currency string) (map[string]float64, error) {
	lookup, err := s.catalogLookup(ctx, currency)
	if err != nil {
		return nil, err
	}

	prices := make(map[string]float64)
	for _, name := range itemNames {
		if price, ok := lookup[name]; ok {
			prices[name] = price
		}
	}

	return prices, nil
}

// catalogLookup returns the name -> suggested price table for a currency,
// from cache when fresh.
func (s *SkinportService) catalogLookup(ctx context.Context, currency string) (map[string]float64, error) {
	if cached, ok := s.catalog.Get(currency); ok {
		metrics.SkinportCatalogCacheHits.Inc()
		return cached, nil
	}
	metrics.SkinportCatalogCacheMisses.Inc()

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPricingUnavailable, err)
	}

	params := url.Values{}
	params.Set("app_id", skinportAppID)
	params.Set("currency", currency)
	reqURL := fmt.Sprintf("%s/items?%s", s.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		metrics.SkinportRequestsTotal.WithLabelValues("failed").Inc()
		log.Printf("Skinport: catalog fetch failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrPricingUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.SkinportRequestsTotal.WithLabelValues("failed").Inc()
		log.Printf("Skinport: catalog fetch returned status %d", resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d", ErrPricingUnavailable, resp.StatusCode)
	}

	var items []skinportItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		metrics.SkinportRequestsTotal.WithLabelValues("failed").Inc()
		log.Printf("Skinport: failed to decode catalog response: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrPricingUnavailable, err)
	}

	metrics.SkinportRequestsTotal.WithLabelValues("success").Inc()
	metrics.SkinportFetchDuration.Observe(time.Since(start).Seconds())

	lookup := make(map[string]float64, len(items))
	for _, item := range items {
		if item.MarketHashName == "" || item.SuggestedPrice == nil {
			continue
		}
		lookup[item.MarketHashName] = *item.SuggestedPrice
	}

	s.catalog.Add(currency, lookup)
	log.Printf("Skinport: loaded catalog with %d priced items (%s)", len(lookup), currency)
	return lookup, nil
}
