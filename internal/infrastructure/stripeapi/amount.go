package stripeapi

import (
	"errors"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrAmountOutOfRange = errors.New("amount does not fit the processor's integer range")

var (
	maxMinorUnits = decimal.NewFromInt(math.MaxInt64)
	minMinorUnits = decimal.NewFromInt(math.MinInt64)
)

var zeroDecimalCurrencies = map[string]bool{
	"bif": true, "clp": true, "djf": true, "gnf": true,
	"jpy": true, "kmf": true, "krw": true, "mga": true,
	"pyg": true, "rwf": true, "ugx": true, "vnd": true,
	"vuv": true, "xaf": true, "xof": true, "xpf": true,
}

func IsZeroDecimal(currency string) bool {
	return zeroDecimalCurrencies[strings.ToLower(currency)]
}

// EncodeAmount converts a major-unit amount to the processor's smallest
// currency unit.
func EncodeAmount(amount decimal.Decimal, currency string) (int64, error) {
	minor := amount.Round(0)
	if !IsZeroDecimal(currency) {
		minor = amount.Mul(decimal.NewFromInt(100)).Round(0)
	}
	if minor.GreaterThan(maxMinorUnits) || minor.LessThan(minMinorUnits) {
		return 0, ErrAmountOutOfRange
	}
	return minor.IntPart(), nil
}

// DisplayAmount formats an amount the way vi-VN does: dot thousands
// separator, comma before the fraction.
func DisplayAmount(amount decimal.Decimal) string {
	s := amount.String()
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, frac, hasFrac := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	out := b.String()
	if hasFrac {
		out += "," + frac
	}
	if neg {
		out = "-" + out
	}
	return out
}
