package services

import (
	"testing"
	"time"
)

func TestSaveObservationsRoundTrip(t *testing.T) {
	store := newTestStore(t)

	saved, err := store.SaveObservations(map[string]map[string]float64{
		"AK-47 | Redline (Field-Tested)": {"skinport": 49.19},
		"AWP | Asiimov (Field-Tested)":   {"skinport": 171.13},
	})
	if err != nil {
		t.Fatalf("SaveObservations failed: %v", err)
	}
	if saved != 2 {
		t.Errorf("Expected 2 rows saved, got %d", saved)
	}

	history, err := store.GetHistory("AK-47 | Redline (Field-Tested)", 30)
	if err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("Expected 1 observation, got %d", len(history))
	}

	obs := history[0]
	if obs.Source != "skinport" {
		t.Errorf("Expected source skinport, got %s", obs.Source)
	}
	if obs.Price != 49.19 {
		t.Errorf("Expected price 49.19, got %v", obs.Price)
	}
	if obs.Timestamp.Location() != time.UTC {
		t.Errorf("Expected UTC timestamp, got %v", obs.Timestamp.Location())
	}
	if time.Since(obs.Timestamp) > time.Minute {
		t.Errorf("Timestamp should be recent, got %v", obs.Timestamp)
	}
}

func TestSaveObservationsEmptyBatch(t *testing.T) {
	store := newTestStore(t)

	saved, err := store.SaveObservations(map[string]map[string]float64{})
	if err != nil {
		t.Fatalf("Empty batch should not fail: %v", err)
	}
	if saved != 0 {
		t.Errorf("Expected 0 rows saved, got %d", saved)
	}
}

func TestSaveObservationsAllowsDuplicates(t *testing.T) {
	store := newTestStore(t)

	batch := map[string]map[string]float64{"Item A": {"skinport": 10.0}}
	for i := 0; i < 2; i++ {
		if _, err := store.SaveObservations(batch); err != nil {
			t.Fatalf("SaveObservations failed: %v", err)
		}
	}

	history, err := store.GetHistory("Item A", 30)
	if err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}
	if len(history) != 2 {
		t.Errorf("Expected 2 rows (no dedup), got %d", len(history))
	}
}

func TestGetHistoryWindowAndOrder(t *testing.T) {
	store := newTestStore(t)

	seedObservation(t, store, "Item A", 40.0, 40) // outside 30-day window
	seedObservation(t, store, "Item A", 52.5, 5)
	seedObservation(t, store, "Item A", 50.0, 10)
	seedObservation(t, store, "Item B", 99.0, 1) // different item

	history, err := store.GetHistory("Item A", 30)
	if err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}

	if len(history) != 2 {
		t.Fatalf("Expected 2 observations inside the window, got %d", len(history))
	}
	if history[0].Price != 50.0 || history[1].Price != 52.5 {
		t.Errorf("Expected ascending timestamp order [50.0, 52.5], got [%v, %v]",
			history[0].Price, history[1].Price)
	}
}
