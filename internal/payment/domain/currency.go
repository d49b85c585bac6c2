package domain

import "strings"

// supportedCurrencies is the set of settlement currencies the gateway
// accepts. Codes are stored and served lowercase.
var supportedCurrencies = map[string]struct{}{
	"usd": {},
	"eur": {},
	"gbp": {},
	"jpy": {},
	"aud": {},
	"cad": {},
	"chf": {},
	"sgd": {},
	"idr": {},
	"inr": {},
}

// NormalizeCurrency lowercases the code and reports whether it is
// supported.
func NormalizeCurrency(code string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(code))
	if len(normalized) != 3 {
		return "", false
	}
	_, ok := supportedCurrencies[normalized]
	return normalized, ok
}
