package kraken

import (
	"context"
	"fmt"
)

// PairInfo is the base/quote metadata of one tradable pair.
type PairInfo struct {
	Base  string `json:"base"`
	Quote string `json:"quote"`
}

// AssetPairs retrieves the full catalog of tradable pairs,
// keyed by Kraken's pair name (e.g. "XXBTZUSD").
func (c *Client) AssetPairs(ctx context.Context) (map[string]PairInfo, error) {
	var pairs map[string]PairInfo
	if err := c.getJSON(ctx, "/AssetPairs", nil, &pairs); err != nil {
		return nil, fmt.Errorf("asset pairs: %w", err)
	}
	return pairs, nil
}
