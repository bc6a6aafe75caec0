package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/88maurosls/asics/internal/common"
)

func validOAuthConfig() Config {
	cfg := DefaultConfig()
	cfg.ClientID = "client"
	cfg.ClientSecret = "secret"
	cfg.RefreshToken = "token"
	cfg.SpreadsheetID = "sheet-id"
	return cfg
}

func TestConfigValidate(t *testing.T) {
	cfg := validOAuthConfig()
	require.NoError(t, cfg.Validate())
}

func TestConfigValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{
			name:   "no auth method",
			mutate: func(c *Config) { c.ClientID, c.ClientSecret, c.RefreshToken = "", "", "" },
			want:   common.ErrMissingConfig,
		},
		{
			name:   "both auth methods",
			mutate: func(c *Config) { c.ServiceAccountPath = "/tmp/sa.json" },
			want:   common.ErrInvalidConfig,
		},
		{
			name:   "missing spreadsheet id",
			mutate: func(c *Config) { c.SpreadsheetID = "" },
			want:   common.ErrMissingConfig,
		},
		{
			name:   "missing sheet name",
			mutate: func(c *Config) { c.SheetName = "" },
			want:   common.ErrMissingConfig,
		},
		{
			name:   "zero batch size",
			mutate: func(c *Config) { c.BatchSize = 0 },
			want:   common.ErrInvalidConfig,
		},
		{
			name:   "negative retry attempts",
			mutate: func(c *Config) { c.RetryAttempts = -1 },
			want:   common.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validOAuthConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
