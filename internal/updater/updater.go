// Package updater performs one full price-update pass over the worksheet.
package updater

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"cryptotracker/internal/sheet"
)

// Markers written in place of a price.
const (
	NotAvailableMark = "N/A"
	ErrorMark        = "ERR"
)

const (
	inputCol  = 1
	outputCol = 2
	// row 1 is the header
	startRow = 2
)

// Resolver maps a user symbol and quote currency to a provider pair name.
type Resolver interface {
	RefreshIfStale(ctx context.Context) error
	FindPair(rawBase, quote string) (string, bool)
	Ready() bool
}

// Pricer fetches the last trade price for a resolved pair.
type Pricer interface {
	LastPrice(ctx context.Context, pair string) (decimal.Decimal, error)
}

// Updater reads tickers from column A, fetches prices and batch-writes
// them into column B. Per-row failures become markers, never aborts.
type Updater struct {
	Store  sheet.Store
	Pairs  Resolver
	Prices Pricer
	Quote  string
	Log    *zap.Logger
}

// Run performs a single pass: one column read, at most one batch write.
func (u *Updater) Run(ctx context.Context) error {
	col, err := u.Store.ColValues(ctx, inputCol)
	if err != nil {
		return fmt.Errorf("read tickers: %w", err)
	}
	if len(col) <= 1 {
		u.Log.Info("no tickers found (only header or empty)")
		return nil
	}
	inputs := col[1:]

	if err := u.Pairs.RefreshIfStale(ctx); err != nil {
		if !u.Pairs.Ready() {
			return fmt.Errorf("pairs mapping unavailable: %w", err)
		}
		u.Log.Warn("pairs refresh failed, using stale mapping", zap.Error(err))
	}

	cells := make([]sheet.Cell, 0, len(inputs))
	for i, raw := range inputs {
		row := startRow + i
		symbol := strings.TrimSpace(raw)
		if symbol == "" {
			continue
		}
		pair, ok := u.Pairs.FindPair(symbol, u.Quote)
		if !ok {
			u.Log.Warn("no pair for symbol",
				zap.String("symbol", symbol), zap.String("quote", u.Quote), zap.Int("row", row))
			cells = append(cells, sheet.Cell{Row: row, Col: outputCol, Value: NotAvailableMark})
			continue
		}
		price, err := u.Prices.LastPrice(ctx, pair)
		if err != nil {
			u.Log.Error("price fetch failed",
				zap.String("symbol", symbol), zap.String("pair", pair), zap.Int("row", row), zap.Error(err))
			cells = append(cells, sheet.Cell{Row: row, Col: outputCol, Value: ErrorMark})
			continue
		}
		cells = append(cells, sheet.Cell{Row: row, Col: outputCol, Value: price.InexactFloat64()})
	}

	if len(cells) == 0 {
		u.Log.Info("nothing to update")
		return nil
	}
	if err := u.Store.UpdateCells(ctx, cells); err != nil {
		return fmt.Errorf("write prices: %w", err)
	}
	u.Log.Info("updated price cells", zap.Int("count", len(cells)))
	return nil
}
