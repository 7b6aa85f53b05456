package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

func newTestSkinportService(baseURL string) *SkinportService {
	return &SkinportService{
		client:  &http.Client{Timeout: 2 * time.Second},
		baseURL: baseURL,
		limiter: rate.NewLimiter(rate.Inf, 1),
		catalog: expirable.NewLRU[string, map[string]float64](catalogCacheSize, nil, catalogCacheTTL),
	}
}

const catalogFixture = `[
	{"market_hash_name": "AK-47 | Redline (Field-Tested)", "currency": "USD", "suggested_price": 49.19},
	{"market_hash_name": "AWP | Asiimov (Field-Tested)", "currency": "USD", "suggested_price": 171.13},
	{"market_hash_name": "Unpriced Item", "currency": "USD", "suggested_price": null}
]`

func TestFetchPricesFiltersToRequestedItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("app_id"); got != "730" {
			t.Errorf("Expected app_id=730, got %s", got)
		}
		if got := r.URL.Query().Get("currency"); got != "USD" {
			t.Errorf("Expected currency=USD, got %s", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(catalogFixture))
	}))
	defer server.Close()

	svc := newTestSkinportService(server.URL)

	requested := []string{
		"AK-47 | Redline (Field-Tested)",
		"Unpriced Item",
		"Non-existent Item 123",
	}
	prices, err := svc.FetchPrices(context.Background(), requested, "USD")
	if err != nil {
		t.Fatalf("FetchPrices failed: %v", err)
	}

	if len(prices) != 1 {
		t.Fatalf("Expected 1 priced item, got %d: %v", len(prices), prices)
	}
	if prices["AK-47 | Redline (Field-Tested)"] != 49.19 {
		t.Errorf("Expected price 49.19, got %v", prices["AK-47 | Redline (Field-Tested)"])
	}

	// Null prices and unknown items are omissions, never errors
	if _, ok := prices["Unpriced Item"]; ok {
		t.Error("Item with null suggested_price should be omitted")
	}
	if _, ok := prices["Non-existent Item 123"]; ok {
		t.Error("Item absent from the catalog should be omitted")
	}
}

func TestFetchPricesUnavailableOnServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := newTestSkinportService(server.URL)

	_, err := svc.FetchPrices(context.Background(), []string{"anything"}, "USD")
	if !errors.Is(err, ErrPricingUnavailable) {
		t.Errorf("Expected ErrPricingUnavailable, got %v", err)
	}
}

func TestFetchPricesUnavailableOnMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	svc := newTestSkinportService(server.URL)

	_, err := svc.FetchPrices(context.Background(), []string{"anything"}, "USD")
	if !errors.Is(err, ErrPricingUnavailable) {
		t.Errorf("Expected ErrPricingUnavailable, got %v", err)
	}
}

func TestFetchPricesUsesCatalogCache(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(catalogFixture))
	}))
	defer server.Close()

	svc := newTestSkinportService(server.URL)

	for i := 0; i < 3; i++ {
		if _, err := svc.FetchPrices(context.Background(), []string{"AWP | Asiimov (Field-Tested)"}, "USD"); err != nil {
			t.Fatalf("FetchPrices failed: %v", err)
		}
	}

	if requests != 1 {
		t.Errorf("Expected 1 catalog fetch (cache hit for the rest), got %d", requests)
	}

	// A different currency is a different catalog
	if _, err := svc.FetchPrices(context.Background(), []string{"AWP | Asiimov (Field-Tested)"}, "EUR"); err != nil {
		t.Fatalf("FetchPrices failed: %v", err)
	}
	if requests != 2 {
		t.Errorf("Expected a fresh fetch for a new currency, got %d requests", requests)
	}
}
