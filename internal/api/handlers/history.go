package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/steamvault/inventory-tracker/internal/services"
)

type HistoryHandler struct {
	store *services.PriceStore
}

func NewHistoryHandler(store *services.PriceStore) *HistoryHandler {
	return &HistoryHandler{store: store}
}

// GetItemHistory returns the stored price observations for an item over the
// last N days (default 30).
func (h *HistoryHandler) GetItemHistory(c *gin.Context) {
	itemName := c.Param("name")
	if itemName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item name is required"})
		return
	}

	days := 30
	if daysStr := c.Query("days"); daysStr != "" {
		parsed, err := strconv.Atoi(daysStr)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a positive integer"})
			return
		}
		days = parsed
	}

	history, err := h.store.GetHistory(itemName, days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"item_name":    itemName,
		"days":         days,
		"observations": history,
	})
}
