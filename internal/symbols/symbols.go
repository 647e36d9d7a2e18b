// Package symbols maps user-typed asset names to Kraken base-asset codes.
package symbols

import "strings"

// baseAliases resolves common names and symbols to Kraken's base codes.
// Add house favorites here as needed.
var baseAliases = map[string]string{
	"BTC":          "XBT",
	"XBT":          "XBT",
	"BITCOIN":      "XBT",
	"DOGE":         "XDG",
	"XDG":          "XDG",
	"DOGECOIN":     "XDG",
	"ETH":          "ETH",
	"ETHEREUM":     "ETH",
	"ADA":          "ADA",
	"CARDANO":      "ADA",
	"XRP":          "XRP",
	"RIPPLE":       "XRP",
	"SOL":          "SOL",
	"SOLANA":       "SOL",
	"LTC":          "LTC",
	"LITECOIN":     "LTC",
	"BCH":          "BCH",
	"BITCOIN CASH": "BCH",
}

// Normalize returns the Kraken base code for a raw user string.
// Unknown inputs pass through trimmed and upper-cased, on the assumption
// they already are valid base codes.
func Normalize(raw string) string {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if code, ok := baseAliases[s]; ok {
		return code
	}
	return s
}
