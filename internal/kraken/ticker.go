package kraken

import (
	"context"
	"fmt"
	"net/url"

	"github.com/shopspring/decimal"
)

// tickerInfo carries the fields we read from a Ticker result entry.
// "c" is [last trade price, lot volume], both strings.
type tickerInfo struct {
	Close []string `json:"c"`
}

// LastPrice requests the ticker for pair and returns the last trade price.
// The result is keyed by Kraken's canonical pair name, which may differ
// from the requested identifier, so the first entry is taken.
func (c *Client) LastPrice(ctx context.Context, pair string) (decimal.Decimal, error) {
	query := url.Values{}
	query.Set("pair", pair)

	var result map[string]tickerInfo
	if err := c.getJSON(ctx, "/Ticker", query, &result); err != nil {
		return decimal.Decimal{}, fmt.Errorf("ticker %s: %w", pair, err)
	}

	for name, info := range result {
		if len(info.Close) == 0 {
			return decimal.Decimal{}, fmt.Errorf("ticker %s: no last trade price for %s", pair, name)
		}
		price, err := decimal.NewFromString(info.Close[0])
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("ticker %s: bad price %q: %w", pair, info.Close[0], err)
		}
		return price, nil
	}
	return decimal.Decimal{}, fmt.Errorf("ticker %s: empty result", pair)
}
