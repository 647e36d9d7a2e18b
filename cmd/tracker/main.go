package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"cryptotracker/internal/config"
	"cryptotracker/internal/httpx"
	"cryptotracker/internal/kraken"
	"cryptotracker/internal/scheduler"
	"cryptotracker/internal/sheet"
	"cryptotracker/internal/updater"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := newLogger(cfg.Tracker.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("starting crypto price tracker",
		zap.String("spreadsheet", cfg.Sheet.SpreadsheetName),
		zap.String("worksheet", cfg.Sheet.WorksheetName),
		zap.String("quote", cfg.Tracker.QuoteCurrency),
		zap.Int("poll_interval_sec", cfg.Tracker.PollIntervalSec))

	// Auth and spreadsheet lookup are the only fatal steps after startup
	// config checks; everything past this point is recovered per iteration.
	svc, err := sheet.NewService(ctx, []byte(cfg.GoogleCredsJSON))
	if err != nil {
		log.Fatal("sheets auth failed", zap.Error(err))
	}
	ws, err := svc.OpenWorksheet(ctx, cfg.Sheet.SpreadsheetName, cfg.Sheet.WorksheetName)
	if err != nil {
		log.Fatal("open spreadsheet failed", zap.Error(err))
	}

	httpClient := httpx.New(time.Duration(cfg.Tracker.RequestTimeoutSec) * time.Second)
	client := kraken.NewClient(kraken.WithHTTPClient(httpClient))
	pairs := kraken.NewPairsCache(client,
		time.Duration(cfg.Tracker.PairsRefreshSec)*time.Second, log.Named("pairs"))

	up := &updater.Updater{
		Store:  ws,
		Pairs:  pairs,
		Prices: client,
		Quote:  cfg.Tracker.QuoteCurrency,
		Log:    log.Named("updater"),
	}

	sched := &scheduler.Scheduler{
		Interval: time.Duration(cfg.Tracker.PollIntervalSec) * time.Second,
		Job:      up.Run,
		Log:      log.Named("loop"),
	}
	sched.Run(ctx)

	log.Info("shutting down")
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, fmt.Errorf("parse level %q: %w", level, err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}
