package main

import (
	"context"
	"fmt"
	"log"

	"github.com/steamvault/inventory-tracker/internal/config"
	"github.com/steamvault/inventory-tracker/internal/database"
	"github.com/steamvault/inventory-tracker/internal/models"
	"github.com/steamvault/inventory-tracker/internal/services"
)

// Standalone tracker run: one pass over the configured account, report on
// stdout. Configuration comes from config.yaml / environment.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	steamID := cfg.SteamID
	if cfg.UseTestInventory {
		steamID = "TEST_DATA_MODE"
	} else if err := cfg.ValidateSteamID(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if err := database.Initialize(cfg.DBPath); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	store := services.NewPriceStore(database.GetDB())
	analysisService := services.NewAnalysisService(store)
	steamService := services.NewSteamService()
	skinportService := services.NewSkinportService()
	trackerService := services.NewTrackerService(steamService, skinportService, store, analysisService)

	report, err := trackerService.Run(context.Background(), steamID, models.TrackOptions{
		UseTestData: cfg.UseTestInventory,
		Currency:    cfg.Currency,
	})
	if err != nil {
		log.Fatalf("Tracker run failed: %v", err)
	}

	printReport(report)
}

func printReport(report *models.Report) {
	fmt.Println("\n--- STANDALONE REPORT ---")
	if report.Warning != "" {
		fmt.Printf("\nWarning: %s\n", report.Warning)
	}
	for _, item := range report.Items {
		fmt.Printf("\n- %s\n", item.ItemName)
		fmt.Printf("  > Current Price: %s\n", item.PriceDisplay())
		fmt.Printf("  > Trend Analysis: %s\n", item.Trend)
	}
	fmt.Println("\n--- Report Complete ---")
}
