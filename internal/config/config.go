// Package config loads runtime configuration from an optional config.yaml
// plus environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const placeholderSteamID = "YOUR_STEAM_ID_HERE"

// Config holds everything the tracker needs at process start. It is built
// once in main and threaded into construction; nothing reads the environment
// after this point.
type Config struct {
	SteamID          string
	UseTestInventory bool
	Currency         string
	DBPath           string
	Port             string
}

// Load reads config.yaml from the working directory if present, then applies
// environment overrides (STEAM_ID, USE_TEST_INVENTORY, CURRENCY, DB_PATH, PORT).
// A missing config file is not an error; a malformed one is.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetDefault("use_test_inventory", false)
	v.SetDefault("currency", "USD")
	v.SetDefault("db_path", "./price_history.db")
	v.SetDefault("port", "8080")

	for key, env := range map[string]string{
		"steam_id":           "STEAM_ID",
		"use_test_inventory": "USE_TEST_INVENTORY",
		"currency":           "CURRENCY",
		"db_path":            "DB_PATH",
		"port":               "PORT",
	} {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return &Config{
		SteamID:          strings.TrimSpace(v.GetString("steam_id")),
		UseTestInventory: v.GetBool("use_test_inventory"),
		Currency:         v.GetString("currency"),
		DBPath:           v.GetString("db_path"),
		Port:             v.GetString("port"),
	}, nil
}

// ValidateSteamID rejects an unset or template SteamID. The web path takes the
// SteamID from the form instead, so only the standalone tracker calls this.
func (c *Config) ValidateSteamID() error {
	if c.SteamID == "" || c.SteamID == placeholderSteamID {
		return fmt.Errorf("SteamID is not configured: set STEAM_ID or steam_id in config.yaml")
	}
	return nil
}
