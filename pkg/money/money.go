package money

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

var currencyCodeRe = regexp.MustCompile(`^[A-Z]{3}$`)

// minorUnitExponents lists ISO 4217 currencies whose minor unit differs from
// the default of two decimal places.
var minorUnitExponents = map[string]int32{
	"BHD": 3,
	"CLP": 0,
	"ISK": 0,
	"JOD": 3,
	"JPY": 0,
	"KRW": 0,
	"KWD": 3,
	"OMR": 3,
	"TND": 3,
	"UGX": 0,
	"VND": 0,
}

const defaultExponent int32 = 2

// Currency is an ISO 4217 currency code together with its minor-unit exponent.
type Currency struct {
	code     string
	exponent int32
}

// NewCurrency creates a Currency after validating the code is exactly 3 uppercase letters.
func NewCurrency(code string) (Currency, error) {
	if !currencyCodeRe.MatchString(code) {
		return Currency{}, fmt.Errorf("invalid currency code %q: must be exactly 3 uppercase letters", code)
	}
	exp, ok := minorUnitExponents[code]
	if !ok {
		exp = defaultExponent
	}
	return Currency{code: code, exponent: exp}, nil
}

// MustCurrency creates a Currency and panics on error. Intended for package-level variable
// initialization only.
func MustCurrency(code string) Currency {
	c, err := NewCurrency(code)
	if err != nil {
		panic(err)
	}
	return c
}

// Code returns the ISO 4217 currency code.
func (c Currency) Code() string {
	return c.code
}

// String returns the currency code.
func (c Currency) String() string {
	return c.code
}

// IsZero reports whether the currency was never initialised.
func (c Currency) IsZero() bool {
	return c.code == ""
}

// Exponent returns the number of fractional digits of the minor unit.
func (c Currency) Exponent() int32 {
	return c.exponent
}

// MinorUnit returns the value of one minor unit, e.g. 0.01 for MDL.
func (c Currency) MinorUnit() decimal.Decimal {
	return decimal.New(1, -c.exponent)
}

// Round rounds an amount to the currency's minor unit, half away from zero.
func (c Currency) Round(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(c.exponent)
}

// Common currencies.
var (
	USD = MustCurrency("USD")
	EUR = MustCurrency("EUR")
	MDL = MustCurrency("MDL")
	JPY = MustCurrency("JPY")
)
