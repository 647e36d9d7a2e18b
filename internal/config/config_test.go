package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	require.Equal(t, "Crypto Papertrader", cfg.Sheet.SpreadsheetName)
	require.Equal(t, "tab", cfg.Sheet.WorksheetName)
	require.Equal(t, "USD", cfg.Tracker.QuoteCurrency)
	require.Equal(t, 60, cfg.Tracker.PollIntervalSec)
	require.Equal(t, 600, cfg.Tracker.PairsRefreshSec)
	require.Equal(t, 15, cfg.Tracker.RequestTimeoutSec)
	require.Equal(t, "INFO", cfg.Tracker.LogLevel)
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	body := `{"sheet":{"spreadsheet_name":"House Book","worksheet_name":"prices"},"tracker":{"quote_currency":"eur","poll_interval_sec":30}}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	t.Setenv("WORKSHEET_NAME", "live")
	t.Setenv("POLL_INTERVAL_SECS", "5")
	t.Setenv("REQUEST_TIMEOUT", "3")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "House Book", cfg.Sheet.SpreadsheetName)
	// env wins over file
	require.Equal(t, "live", cfg.Sheet.WorksheetName)
	require.Equal(t, 5, cfg.Tracker.PollIntervalSec)
	require.Equal(t, 3, cfg.Tracker.RequestTimeoutSec)
	// quote currency is upper-cased after merging
	require.Equal(t, "EUR", cfg.Tracker.QuoteCurrency)
}

func TestLoad_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{nope"), 0o600))
	_, err := Load(path)
	require.Error(t, err)
}

func TestValidate_RequiresCredential(t *testing.T) {
	cfg := Default()
	require.Error(t, cfg.Validate())

	cfg.GoogleCredsJSON = `{"type":"service_account"}`
	require.NoError(t, cfg.Validate())

	cfg.Sheet.SpreadsheetName = ""
	require.Error(t, cfg.Validate())
}

func TestLoad_InvalidEnvIntsKeepDefaults(t *testing.T) {
	t.Setenv("POLL_INTERVAL_SECS", "soon")
	t.Setenv("ASSET_PAIRS_REFRESH_SECS", "-1")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	require.Equal(t, 60, cfg.Tracker.PollIntervalSec)
	require.Equal(t, 600, cfg.Tracker.PairsRefreshSec)
}
