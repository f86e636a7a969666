package splitter

import (
	"math"
	"sort"
	"strings"
)

const (
	DefaultCurrency  = "USD"
	DefaultPrecision = 2
)

// currencyPrecisions maps currency codes to the number of minor unit digits.
// Read-only after init.
var currencyPrecisions = map[string]int{
	// 2 digits
	"USD": 2, "EUR": 2, "GBP": 2, "CAD": 2, "AUD": 2, "NZD": 2, "CHF": 2,
	"CNY": 2, "HKD": 2, "SGD": 2, "INR": 2, "SEK": 2, "NOK": 2, "DKK": 2,
	"PLN": 2, "CZK": 2, "HUF": 2, "BRL": 2, "MXN": 2, "ZAR": 2, "TRY": 2,
	"ILS": 2, "AED": 2, "SAR": 2, "THB": 2, "MYR": 2, "PHP": 2, "IDR": 2,
	"RUB": 2, "EGP": 2, "NGN": 2, "ARS": 2, "COP": 2, "PEN": 2, "TWD": 2,

	// zero decimal
	"JPY": 0, "KRW": 0, "VND": 0, "CLP": 0, "ISK": 0, "PYG": 0, "UGX": 0,
	"XAF": 0, "XOF": 0,

	// 3 digits
	"BHD": 3, "KWD": 3, "OMR": 3, "JOD": 3, "TND": 3, "LYD": 3, "IQD": 3,

	// crypto
	"BTC": 8,
}

// CurrencyPrecision returns the minor unit digits for code, DefaultPrecision
// for unknown codes.
func CurrencyPrecision(code string) int {
	if p, ok := currencyPrecisions[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return p
	}
	return DefaultPrecision
}

// MinimumUnit is the smallest representable increment of code.
func MinimumUnit(code string) float64 {
	return 1 / math.Pow10(CurrencyPrecision(code))
}

// NormalizeCurrency upper-cases code and falls back to DefaultCurrency when empty.
func NormalizeCurrency(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return DefaultCurrency
	}
	return code
}

// IsKnownCurrency reports whether code has an explicit precision entry.
func IsKnownCurrency(code string) bool {
	_, ok := currencyPrecisions[strings.ToUpper(strings.TrimSpace(code))]
	return ok
}

type CurrencyInfo struct {
	Code        string  `json:"code"`
	Precision   int     `json:"precision"`
	MinimumUnit float64 `json:"minimumUnit"`
}

// Currencies lists the precision table sorted by code. The returned slice is a copy.
func Currencies() []CurrencyInfo {
	out := make([]CurrencyInfo, 0, len(currencyPrecisions))
	for code, p := range currencyPrecisions {
		out = append(out, CurrencyInfo{Code: code, Precision: p, MinimumUnit: 1 / math.Pow10(p)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
