package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/steamvault/inventory-tracker/internal/metrics"
	"github.com/steamvault/inventory-tracker/internal/models"
)

const (
	steamBaseURL        = "https://steamcommunity.com"
	steamDefaultTimeout = 10 * time.Second

	// CS2: app 730, context 2
	steamAppID     = "730"
	steamContextID = "2"
)

// ErrInventoryUnavailable covers every way an inventory fetch can come back
// useless: private account, transport failure, malformed response, or an
// account holding no matching items. The upstream API gives callers no way
// to tell these apart, and neither do we.
var ErrInventoryUnavailable = errors.New("could not fetch inventory: it might be private or the SteamID is invalid")

// SteamService fetches a user's CS2 inventory from the Steam Community API.
type SteamService struct {
	client  *http.Client
	baseURL string
	limiter *rate.Limiter
}

// NewSteamService creates a new Steam inventory service.
func NewSteamService() *SteamService {
	return &SteamService{
		client:  &http.Client{Timeout: steamDefaultTimeout},
		baseURL: steamBaseURL,
		limiter: rate.NewLimiter(rate.Every(5*time.Second), 1),
	}
}

type steamInventoryResponse struct {
	Success      int                `json:"success"`
	Assets       []steamAsset       `json:"assets"`
	Descriptions []steamDescription `json:"descriptions"`
	Error        string             `json:"error,omitempty"`
}

type steamAsset struct {
	ClassID    string `json:"classid"`
	InstanceID string `json:"instanceid"`
}

type steamDescription struct {
	ClassID        string     `json:"classid"`
	InstanceID     string     `json:"instanceid"`
	MarketHashName string     `json:"market_hash_name"`
	Tradable       int        `json:"tradable"`
	Tags           []steamTag `json:"tags"`
}

type steamTag struct {
	Category string `json:"category"`
	Name     string `json:"name"`
}

// testInventory is the hardcoded inventory used when test mode is on.
var testInventory = []string{
	"AK-47 | Redline (Field-Tested)",
	"AWP | Asiimov (Field-Tested)",
	"Glock-18 | Water Elemental (Minimal Wear)",
	"USP-S | Kill Confirmed (Field-Tested)",
	"★ Karambit | Doppler (Factory New)",
}

// FetchInventory returns one market_hash_name per held instance in the
// account's CS2 inventory. Stacked duplicates of the same item are expected;
// deduplication happens downstream. TradableOnly drops non-tradable
// instances; ItemTypeTag drops instances whose "Type" tag does not
// case-insensitively contain the given substring (or that have no "Type" tag
// at all). Any transport or parse failure yields ErrInventoryUnavailable.
func (s *SteamService) FetchInventory(ctx context.Context, steamID string, opts models.TrackOptions) ([]string, error) {
	if opts.UseTestData {
		log.Println("Steam: using hardcoded test inventory data")
		return testInventory, nil
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInventoryUnavailable, err)
	}

	reqURL := fmt.Sprintf("%s/inventory/%s/%s/%s", s.baseURL, steamID, steamAppID, steamContextID)

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		metrics.SteamRequestsTotal.WithLabelValues("failed").Inc()
		log.Printf("Steam: inventory fetch failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInventoryUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.SteamRequestsTotal.WithLabelValues("failed").Inc()
		log.Printf("Steam: inventory fetch returned status %d", resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d", ErrInventoryUnavailable, resp.StatusCode)
	}

	var inv steamInventoryResponse
	if err := json.NewDecoder(resp.Body).Decode(&inv); err != nil {
		metrics.SteamRequestsTotal.WithLabelValues("failed").Inc()
		log.Printf("Steam: failed to decode inventory response (inventory may be private): %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInventoryUnavailable, err)
	}

	if inv.Success != 1 || len(inv.Descriptions) == 0 {
		metrics.SteamRequestsTotal.WithLabelValues("failed").Inc()
		log.Printf("Steam: inventory fetch unsuccessful: %s", inv.Error)
		return nil, ErrInventoryUnavailable
	}

	metrics.SteamRequestsTotal.WithLabelValues("success").Inc()
	metrics.SteamFetchDuration.Observe(time.Since(start).Seconds())

	return collectItemNames(inv, opts), nil
}

// collectItemNames joins assets with their descriptions and applies the
// tradability and item-type filters. Assets without a matching description
// or without a market_hash_name are dropped, not an error.
func collectItemNames(inv steamInventoryResponse, opts models.TrackOptions) []string {
	descriptions := make(map[string]steamDescription, len(inv.Descriptions))
	for _, desc := range inv.Descriptions {
		instanceID := desc.InstanceID
		if instanceID == "" {
			instanceID = "0"
		}
		descriptions[desc.ClassID+"_"+instanceID] = desc
	}

	var names []string
	for _, asset := range inv.Assets {
		desc, ok := descriptions[asset.ClassID+"_"+asset.InstanceID]
		if !ok || desc.MarketHashName == "" {
			continue
		}
		if opts.TradableOnly && desc.Tradable != 1 {
			continue
		}
		if opts.ItemTypeTag != "" && !matchesItemType(desc.Tags, opts.ItemTypeTag) {
			continue
		}
		names = append(names, desc.MarketHashName)
	}

	return names
}

// matchesItemType reports whether the description's "Type" tag contains the
// filter substring, case-insensitively. No "Type" tag means no match.
func matchesItemType(tags []steamTag, filter string) bool {
	for _, tag := range tags {
		if tag.Category == "Type" {
			return strings.Contains(strings.ToLower(tag.Name), strings.ToLower(filter))
		}
	}
	return false
}
