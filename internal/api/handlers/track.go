package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/steamvault/inventory-tracker/internal/config"
	"github.com/steamvault/inventory-tracker/internal/models"
	"github.com/steamvault/inventory-tracker/internal/services"
)

// testModeSteamID stands in for a real SteamID when the hardcoded test
// inventory is requested.
const testModeSteamID = "TEST_DATA_MODE"

type TrackHandler struct {
	tracker *services.TrackerService
	cfg     *config.Config
}

func NewTrackHandler(tracker *services.TrackerService, cfg *config.Config) *TrackHandler {
	return &TrackHandler{
		tracker: tracker,
		cfg:     cfg,
	}
}

// ShowForm renders the tracking form, prefilled from configuration defaults.
func (h *TrackHandler) ShowForm(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"steam_id":      h.cfg.SteamID,
		"use_test_data": h.cfg.UseTestInventory,
		"currency":      h.cfg.Currency,
	})
}

// Track receives the form submission, runs the tracker, and renders the
// results page. A missing SteamID with test mode off is a 400; an inventory
// failure renders the results page with a user-facing error instead.
func (h *TrackHandler) Track(c *gin.Context) {
	steamID, opts := requestOptions(c.PostForm, h.cfg)

	if opts.UseTestData {
		steamID = testModeSteamID
	} else if steamID == "" {
		c.HTML(http.StatusBadRequest, "results.html", gin.H{
			"error": "SteamID is required if not using test data.",
		})
		return
	}

	report, err := h.tracker.Run(c.Request.Context(), steamID, opts)
	if err != nil {
		c.HTML(http.StatusOK, "results.html", gin.H{
			"error":    err.Error(),
			"steam_id": steamID,
		})
		return
	}

	c.HTML(http.StatusOK, "results.html", gin.H{
		"report":   report,
		"steam_id": steamID,
	})
}

// TrackJSON is the JSON variant of Track for API consumers.
func (h *TrackHandler) TrackJSON(c *gin.Context) {
	steamID, opts := requestOptions(c.Query, h.cfg)

	if opts.UseTestData {
		steamID = testModeSteamID
	} else if steamID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "steam_id is required if not using test data"})
		return
	}

	report, err := h.tracker.Run(c.Request.Context(), steamID, opts)
	if err != nil {
		if errors.Is(err, services.ErrInventoryUnavailable) {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}

// requestOptions reads the shared form/query parameters. The currency falls
// back to the configured default.
func requestOptions(get func(string) string, cfg *config.Config) (string, models.TrackOptions) {
	currency := strings.TrimSpace(get("currency"))
	if currency == "" {
		currency = cfg.Currency
	}

	return strings.TrimSpace(get("steam_id")), models.TrackOptions{
		UseTestData:  get("use_test_data") == "true",
		Currency:     currency,
		TradableOnly: get("filter_tradable") == "true",
		ItemTypeTag:  strings.TrimSpace(get("item_type")),
	}
}
