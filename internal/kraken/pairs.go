package kraken

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"cryptotracker/internal/symbols"
)

// Catalog fetches the tradable-pair catalog.
type Catalog interface {
	AssetPairs(ctx context.Context) (map[string]PairInfo, error)
}

type pairKey struct {
	Base  string
	Quote string
}

// PairsCache holds the (base, quote) -> pair name mapping with a TTL.
// It is rebuilt wholesale on refresh; a failed refresh keeps the
// previous mapping untouched. Single caller, no locking.
type PairsCache struct {
	catalog Catalog
	ttl     time.Duration
	log     *zap.Logger
	now     func() time.Time

	byBaseQuote map[pairKey]string
	lastRefresh time.Time
}

func NewPairsCache(catalog Catalog, ttl time.Duration, log *zap.Logger) *PairsCache {
	return &PairsCache{
		catalog: catalog,
		ttl:     ttl,
		log:     log,
		now:     time.Now,
	}
}

// RefreshIfStale refetches the catalog when the cache is empty or older
// than the TTL. On failure the previous mapping stays usable.
func (p *PairsCache) RefreshIfStale(ctx context.Context) error {
	now := p.now()
	if len(p.byBaseQuote) > 0 && now.Sub(p.lastRefresh) < p.ttl {
		return nil
	}
	p.log.Info("refreshing asset pairs mapping")
	pairs, err := p.catalog.AssetPairs(ctx)
	if err != nil {
		return fmt.Errorf("refresh pairs: %w", err)
	}
	mapping := make(map[pairKey]string, len(pairs))
	for name, meta := range pairs {
		// Kraken prefixes crypto bases with X and fiat quotes with Z
		// (XXBT, ZUSD). Strip the markers from both sides; lookups
		// apply the same stripping in their fallback key.
		base := stripXZ(meta.Base)
		quote := stripXZ(meta.Quote)
		if base == "" || quote == "" {
			continue
		}
		mapping[pairKey{base, quote}] = name
	}
	p.byBaseQuote = mapping
	p.lastRefresh = now
	p.log.Info("loaded asset pairs", zap.Int("count", len(mapping)))
	return nil
}

// Ready reports whether at least one refresh has succeeded.
func (p *PairsCache) Ready() bool {
	return len(p.byBaseQuote) > 0
}

// FindPair resolves a user-typed base and a quote currency to Kraken's
// pair name. The catalog stores codes with and without disambiguation
// prefixes inconsistently, so a few key shapes are tried in order.
func (p *PairsCache) FindPair(rawBase, quote string) (string, bool) {
	baseNorm := symbols.Normalize(rawBase)
	quoteNorm := strings.ToUpper(strings.TrimSpace(quote))

	for _, key := range []pairKey{
		{baseNorm, quoteNorm},
		{strings.ReplaceAll(baseNorm, "X", ""), strings.ReplaceAll(quoteNorm, "Z", "")},
		{strings.ToUpper(strings.TrimSpace(rawBase)), quoteNorm},
	} {
		if name, ok := p.byBaseQuote[key]; ok {
			return name, true
		}
	}
	return "", false
}

func stripXZ(s string) string {
	s = strings.ReplaceAll(s, "X", "")
	return strings.ReplaceAll(s, "Z", "")
}
