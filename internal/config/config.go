// Package config provides configuration utilities for the application.
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/88maurosls/asics/internal/store"
)

// LoadStoreConfig loads the classification-store configuration. Precedence:
// 1. Viper configuration (from config file or ASICS_ env vars)
// 2. Direct environment variables (GOOGLE_SHEETS_*)
// 3. Default values
func LoadStoreConfig() (*store.Config, error) {
	config := store.DefaultConfig()

	if v := viper.GetString("store.service_account_path"); v != "" {
		config.ServiceAccountPath = expandPath(v)
	}
	if v := viper.GetString("store.client_id"); v != "" {
		config.ClientID = v
	}
	if v := viper.GetString("store.client_secret"); v != "" {
		config.ClientSecret = v
	}
	if v := viper.GetString("store.refresh_token"); v != "" {
		config.RefreshToken = v
	}
	if v := viper.GetString("store.spreadsheet_id"); v != "" {
		config.SpreadsheetID = v
	}
	if v := viper.GetString("store.sheet_name"); v != "" {
		config.SheetName = v
	}

	if config.ServiceAccountPath == "" {
		if v := os.Getenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH"); v != "" {
			config.ServiceAccountPath = expandPath(v)
		}
	}
	if config.ClientID == "" {
		config.ClientID = os.Getenv("GOOGLE_SHEETS_CLIENT_ID")
	}
	if config.ClientSecret == "" {
		config.ClientSecret = os.Getenv("GOOGLE_SHEETS_CLIENT_SECRET")
	}
	if config.RefreshToken == "" {
		config.RefreshToken = os.Getenv("GOOGLE_SHEETS_REFRESH_TOKEN")
	}
	if config.SpreadsheetID == "" {
		config.SpreadsheetID = os.Getenv("GOOGLE_SHEETS_SPREADSHEET_ID")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// CachePath returns the local classification cache location, defaulting to
// the user config directory.
func CachePath() string {
	if v := viper.GetString("store.cache_path"); v != "" {
		return expandPath(v)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "asics-cache.db"
	}
	return filepath.Join(home, ".config", "asics", "cache.db")
}

// ColorMappingPath returns the static base-color reference file location,
// or "" when none is configured.
func ColorMappingPath() string {
	if v := viper.GetString("colors.mapping_path"); v != "" {
		return expandPath(v)
	}
	return ""
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home + path[1:]
		}
	}
	return os.ExpandEnv(path)
}
