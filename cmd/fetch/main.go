// One-shot price fetch for sanity-checking aliases and pair resolution
// without touching any spreadsheet.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"cryptotracker/internal/httpx"
	"cryptotracker/internal/kraken"
)

type result struct {
	Symbol string `json:"symbol"`
	Pair   string `json:"pair,omitempty"`
	Price  string `json:"price,omitempty"`
	Status string `json:"status"`
}

func main() {
	var symbolsCSV string
	var quote string
	var timeout int

	flag.StringVar(&symbolsCSV, "symbols", getenv("SYMBOLS", "BTC,ETH"), "comma-separated tickers or asset names")
	flag.StringVar(&quote, "quote", getenv("QUOTE_CCY", "USD"), "quote currency")
	flag.IntVar(&timeout, "timeout", getenvInt("REQUEST_TIMEOUT", 15), "request timeout seconds")
	flag.Parse()

	symbols := splitCSV(symbolsCSV)
	if len(symbols) == 0 {
		log.Fatal("no symbols provided")
	}

	logger := zap.NewNop()
	httpClient := httpx.New(time.Duration(timeout) * time.Second)
	client := kraken.NewClient(kraken.WithHTTPClient(httpClient))
	pairs := kraken.NewPairsCache(client, 10*time.Minute, logger)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeout*(len(symbols)+1))*time.Second)
	defer cancel()

	if err := pairs.RefreshIfStale(ctx); err != nil {
		log.Fatalf("load asset pairs: %v", err)
	}

	out := make([]result, 0, len(symbols))
	for _, sym := range symbols {
		pair, ok := pairs.FindPair(sym, quote)
		if !ok {
			out = append(out, result{Symbol: sym, Status: "no pair"})
			continue
		}
		price, err := client.LastPrice(ctx, pair)
		if err != nil {
			log.Printf("%s (%s): %v", sym, pair, err)
			out = append(out, result{Symbol: sym, Pair: pair, Status: "error"})
			continue
		}
		out = append(out, result{Symbol: sym, Pair: pair, Price: price.String(), Status: "ok"})
	}

	b, _ := json.MarshalIndent(out, "", "  ")
	fmt.Println(string(b))
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" { out = append(out, p) }
	}
	return out
}

func getenv(key, def string) string { if v := os.Getenv(key); v != "" { return v }; return def }
func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		var x int
		_, _ = fmt.Sscanf(v, "%d", &x)
		if x > 0 { return x }
	}
	return def
}
