// Package validator holds the pure pre-flight checks run before any
// payment call is made.
package validator

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/jameshoangcyber/nexuskit-webapp/internal/domain/errors"
)

const (
	MinAmount int64 = 1_000
	MaxAmount int64 = 50_000_000
)

// MaxForeignAmount caps non-VND charges in major units, below the largest
// amount the processor accepts in a single charge.
var MaxForeignAmount = decimal.RequireFromString("999999.99")

const (
	CodeAmountNotPositive  = "AMOUNT_NOT_POSITIVE"
	CodeAmountBelowMinimum = "AMOUNT_BELOW_MINIMUM"
	CodeAmountAboveMaximum = "AMOUNT_ABOVE_MAXIMUM"
	CodeAmountTooLarge     = "AMOUNT_TOO_LARGE"
	CodeInvalidCardNumber  = "INVALID_CARD_NUMBER"
	CodeCardNumberInvalid  = "CARD_NUMBER_INVALID"
	CodeInvalidExpiryMonth = "INVALID_EXPIRY_MONTH"
	CodeExpiredCard        = "EXPIRED_CARD"
	CodeInvalidCVC         = "INVALID_CVC"
)

type Result struct {
	Valid bool
	Code  string
	Error string
}

func ok() Result {
	return Result{Valid: true}
}

func fail(code string) Result {
	return Result{Code: code, Error: apperrors.GetMessage(code, apperrors.DefaultLanguage)}
}

// Localize returns the result message in lang.
func (r Result) Localize(lang string) Result {
	if r.Valid {
		return r
	}
	r.Error = apperrors.GetMessage(r.Code, lang)
	return r
}

// PaymentError converts a failed result into a non-retryable validation error.
func (r Result) PaymentError() *apperrors.PaymentError {
	if r.Valid {
		return nil
	}
	return apperrors.ErrInvalidAmount(r.Code)
}

// ValidateAmount checks a VND amount against the storefront bounds.
func ValidateAmount(amount int64) Result {
	switch {
	case amount <= 0:
		return fail(CodeAmountNotPositive)
	case amount < MinAmount:
		return fail(CodeAmountBelowMinimum)
	case amount > MaxAmount:
		return fail(CodeAmountAboveMaximum)
	}
	return ok()
}

// ValidateCharge applies the storefront bounds to VND charges and a
// processor ceiling to other currencies. Bounds are compared as decimals
// so amounts beyond int64 cannot wrap into range.
func ValidateCharge(amount decimal.Decimal, currency string) Result {
	if !amount.IsPositive() {
		return fail(CodeAmountNotPositive)
	}
	if strings.EqualFold(currency, "vnd") || currency == "" {
		rounded := amount.Round(0)
		switch {
		case rounded.LessThan(decimal.NewFromInt(MinAmount)):
			return fail(CodeAmountBelowMinimum)
		case rounded.GreaterThan(decimal.NewFromInt(MaxAmount)):
			return fail(CodeAmountAboveMaximum)
		}
		return ok()
	}
	if amount.GreaterThan(MaxForeignAmount) {
		return fail(CodeAmountTooLarge)
	}
	return ok()
}

func ValidateCardNumber(number string) Result {
	cleaned := strings.Join(strings.Fields(number), "")
	if len(cleaned) < 13 || len(cleaned) > 19 {
		return fail(CodeInvalidCardNumber)
	}
	for _, r := range cleaned {
		if r < '0' || r > '9' {
			return fail(CodeInvalidCardNumber)
		}
	}
	if !luhn(cleaned) {
		return fail(CodeCardNumberInvalid)
	}
	return ok()
}

func luhn(digits string) bool {
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// ValidateExpiry accepts a card through the last day of its expiry month.
func ValidateExpiry(month, year string, now time.Time) Result {
	m, err := strconv.Atoi(strings.TrimSpace(month))
	if err != nil || m < 1 || m > 12 {
		return fail(CodeInvalidExpiryMonth)
	}
	y, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil {
		return fail(CodeExpiredCard)
	}
	if y < 100 {
		y += 2000
	}
	if y < now.Year() || (y == now.Year() && m < int(now.Month())) {
		return fail(CodeExpiredCard)
	}
	return ok()
}

func ValidateCVC(cvc string) Result {
	if len(cvc) < 3 || len(cvc) > 4 {
		return fail(CodeInvalidCVC)
	}
	for _, r := range cvc {
		if r < '0' || r > '9' {
			return fail(CodeInvalidCVC)
		}
	}
	return ok()
}
