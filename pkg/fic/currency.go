package fic

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Currency identifies an ISO 4217 currency (or a crypto code) by its
// uppercase alphabetic code.
type Currency struct {
	code string
}

// NewCurrency returns the currency for the given code. Codes are
// normalized to upper case.
func NewCurrency(code string) Currency {
	return Currency{code: strings.ToUpper(code)}
}

// Code returns the currency code, for example "EUR".
func (c Currency) Code() string {
	return c.code
}

// Equals reports whether both currencies carry the same code.
func (c Currency) Equals(other Currency) bool {
	return c.code == other.code
}

// currencySubunits maps currency codes with a non-default number of
// decimal digits. Anything not listed uses two.
var currencySubunits = map[string]int32{
	"BIF": 0,
	"CLP": 0,
	"DJF": 0,
	"GNF": 0,
	"ISK": 0,
	"JPY": 0,
	"KMF": 0,
	"KRW": 0,
	"PYG": 0,
	"RWF": 0,
	"UGX": 0,
	"VND": 0,
	"VUV": 0,
	"XAF": 0,
	"XOF": 0,
	"XPF": 0,

	"BHD": 3,
	"IQD": 3,
	"JOD": 3,
	"KWD": 3,
	"LYD": 3,
	"OMR": 3,
	"TND": 3,

	"XBT": 8,
	"BTC": 8,
}

// Subunits returns the number of decimal digits for the currency's minor
// unit. Unknown codes fall back to two.
func (c Currency) Subunits() int32 {
	if digits, ok := currencySubunits[c.code]; ok {
		return digits
	}

	return 2
}

// subunitFactor returns 10^Subunits as a decimal.
func (c Currency) subunitFactor() decimal.Decimal {
	return decimal.New(1, c.Subunits())
}
