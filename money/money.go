// Package money converts between the integer minor units used on the wire
// and decimal amounts for display.
package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrFractionalMinorUnit = errors.New("money: amount has more precision than the currency allows")

var zeroDecimal = map[string]struct{}{
	"BIF": {}, "CLP": {}, "DJF": {}, "GNF": {}, "ISK": {}, "JPY": {}, "KMF": {}, "KRW": {},
	"MGA": {}, "PYG": {}, "RWF": {}, "UGX": {}, "VND": {}, "VUV": {}, "XAF": {}, "XOF": {}, "XPF": {},
}

// Exponent returns the number of minor-unit digits for a currency code.
func Exponent(currency string) int32 {
	if _, ok := zeroDecimal[strings.ToUpper(currency)]; ok {
		return 0
	}

	return 2 //nolint:mnd
}

func ToDecimal(amount int64, currency string) decimal.Decimal {
	return decimal.New(amount, -Exponent(currency))
}

// FromDecimal converts back to minor units, refusing amounts that would need
// rounding.
func FromDecimal(amount decimal.Decimal, currency string) (int64, error) {
	exp := Exponent(currency)
	scaled := amount.Shift(exp)

	if !scaled.Equal(scaled.Truncate(0)) {
		return 0, fmt.Errorf("%w: %s %s", ErrFractionalMinorUnit, amount.String(), strings.ToUpper(currency))
	}

	return scaled.IntPart(), nil
}

// Format renders "19.99 EUR". An empty currency renders the bare number.
func Format(amount int64, currency string) string {
	value := ToDecimal(amount, currency).StringFixed(Exponent(currency))
	if currency == "" {
		return value
	}

	return value + " " + strings.ToUpper(currency)
}
