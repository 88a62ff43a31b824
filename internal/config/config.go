package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds everything the service needs to talk to Google. It is loaded
// once at startup; the required credential fields are validated before any
// network activity happens.
type Config struct {
	// SpreadsheetID identifies the inventory spreadsheet.
	SpreadsheetID string `envconfig:"SPREADSHEET_ID"`

	// OAuth client credentials for the Sheets and Apps Script scopes.
	ClientID     string `envconfig:"GOOGLE_CLIENT_ID"`
	ClientSecret string `envconfig:"GOOGLE_CLIENT_SECRET"`
	APIKey       string `envconfig:"GOOGLE_API_KEY"`
	RefreshToken string `envconfig:"GOOGLE_REFRESH_TOKEN"`

	// ScriptID names the Apps Script project whose syncAll() routine pulls
	// fresh marketplace data into the sheet. Optional; when empty the
	// trigger step is skipped and only the local resync runs.
	ScriptID string `envconfig:"SCRIPT_ID"`

	InventorySheet        string `envconfig:"INVENTORY_SHEET" default:"Main Inventory"`
	StorageLocationRange  string `envconfig:"STORAGE_LOCATION_RANGE" default:"Setup!A2:A100"`
	PurchaseLocationRange string `envconfig:"PURCHASE_LOCATION_RANGE" default:"Setup!C2:C15"`

	ListenAddr     string        `envconfig:"LISTEN_ADDR" default:":8080"`
	ResyncInterval time.Duration `envconfig:"RESYNC_INTERVAL" default:"0"`

	// WriteSettleDelay is how long to wait after a burst of cell writes
	// before re-reading, so the backend has applied them all.
	WriteSettleDelay time.Duration `envconfig:"WRITE_SETTLE_DELAY" default:"500ms"`

	// ScriptSettleDelay is how long to wait after a successful Apps Script
	// trigger before re-reading; the external job writes asynchronously.
	ScriptSettleDelay time.Duration `envconfig:"SCRIPT_SETTLE_DELAY" default:"3s"`

	ReadyTimeout time.Duration `envconfig:"READY_TIMEOUT" default:"30s"`
}

// Load reads configuration from the environment and validates the required
// credential fields.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("PROLINK", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the credentials the sync core cannot run without.
func (c *Config) Validate() error {
	var missing []string
	if c.SpreadsheetID == "" {
		missing = append(missing, "PROLINK_SPREADSHEET_ID")
	}
	if c.ClientID == "" {
		missing = append(missing, "PROLINK_GOOGLE_CLIENT_ID")
	}
	if c.APIKey == "" {
		missing = append(missing, "PROLINK_GOOGLE_API_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %v", missing)
	}
	return nil
}
