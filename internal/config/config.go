package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

type Sheet struct {
	SpreadsheetName string `json:"spreadsheet_name"`
	WorksheetName   string `json:"worksheet_name"`
}

type Tracker struct {
	QuoteCurrency     string `json:"quote_currency"`
	PollIntervalSec   int    `json:"poll_interval_sec"`
	PairsRefreshSec   int    `json:"pairs_refresh_sec"`
	RequestTimeoutSec int    `json:"request_timeout_sec"`
	LogLevel          string `json:"log_level"`
}

type Config struct {
	Sheet   Sheet   `json:"sheet"`
	Tracker Tracker `json:"tracker"`

	// GoogleCredsJSON is the service account key material. Env only,
	// never read from the config file.
	GoogleCredsJSON string `json:"-"`
}

func Default() Config {
	return Config{
		Sheet: Sheet{
			SpreadsheetName: "Crypto Papertrader",
			WorksheetName:   "tab",
		},
		Tracker: Tracker{
			QuoteCurrency:     "USD",
			PollIntervalSec:   60,
			PairsRefreshSec:   600,
			RequestTimeoutSec: 15,
			LogLevel:          "INFO",
		},
	}
}

// Load reads JSON config from path. If path is empty or file does not exist,
// it returns defaults. Environment variables override select fields.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		if _, err := os.Stat("config.json"); err == nil {
			path = "config.json"
		}
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err == nil {
			if err := json.Unmarshal(b, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config: %w", err)
			}
		}
	}
	applyEnv(&cfg)
	cfg.Tracker.QuoteCurrency = strings.ToUpper(strings.TrimSpace(cfg.Tracker.QuoteCurrency))
	return cfg, nil
}

// Validate checks the parts that are fatal at startup.
func (c Config) Validate() error {
	if c.GoogleCredsJSON == "" {
		return errors.New("GOOGLE_CREDS_JSON env var is required (service account JSON string)")
	}
	if c.Sheet.SpreadsheetName == "" {
		return errors.New("spreadsheet name cannot be empty")
	}
	if c.Sheet.WorksheetName == "" {
		return errors.New("worksheet name cannot be empty")
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("GOOGLE_CREDS_JSON"); v != "" { cfg.GoogleCredsJSON = v }
	if v := os.Getenv("SPREADSHEET_NAME"); v != "" { cfg.Sheet.SpreadsheetName = v }
	if v := os.Getenv("WORKSHEET_NAME"); v != "" { cfg.Sheet.WorksheetName = v }
	if v := os.Getenv("QUOTE_CCY"); v != "" { cfg.Tracker.QuoteCurrency = v }
	if v := os.Getenv("POLL_INTERVAL_SECS"); v != "" {
		var x int; fmt.Sscanf(v, "%d", &x); if x > 0 { cfg.Tracker.PollIntervalSec = x }
	}
	if v := os.Getenv("ASSET_PAIRS_REFRESH_SECS"); v != "" {
		var x int; fmt.Sscanf(v, "%d", &x); if x > 0 { cfg.Tracker.PairsRefreshSec = x }
	}
	if v := os.Getenv("REQUEST_TIMEOUT"); v != "" {
		var x int; fmt.Sscanf(v, "%d", &x); if x > 0 { cfg.Tracker.RequestTimeoutSec = x }
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" { cfg.Tracker.LogLevel = v }
}
