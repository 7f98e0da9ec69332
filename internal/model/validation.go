package model

import (
	"regexp"
	"strconv"
	"time"

	"github.com/alemiherbert/pesa-pay/internal/apperr"
)

var (
	cardNumberRegex  = regexp.MustCompile(`^\d{16}$`)
	expiryMonthRegex = regexp.MustCompile(`^(0[1-9]|1[0-2])$`)
	expiryYearRegex  = regexp.MustCompile(`^\d{4}$`)
	cvvRegex         = regexp.MustCompile(`^\d{3,4}$`)
)

// Validate checks the card fields structurally. First failure wins, in
// the order number, month, year, CVV. The expiry check is whole-year
// only: a card expiring earlier in the current year still passes.
func (c CardDetails) Validate(now time.Time) error {
	if !cardNumberRegex.MatchString(c.CardNumber) {
		return apperr.New(apperr.CodeInvalidRequest, "Card number must be 16 digits")
	}
	if !expiryMonthRegex.MatchString(c.ExpiryMonth) {
		return apperr.New(apperr.CodeInvalidRequest, "Invalid expiry month")
	}
	if !expiryYearRegex.MatchString(c.ExpiryYear) {
		return apperr.New(apperr.CodeInvalidRequest, "Invalid expiry year")
	}
	year, _ := strconv.Atoi(c.ExpiryYear)
	if year < now.Year() {
		return apperr.New(apperr.CodeInvalidRequest, "Invalid expiry year")
	}
	if !cvvRegex.MatchString(c.CVV) {
		return apperr.New(apperr.CodeInvalidRequest, "CVV must be 3 or 4 digits")
	}
	return nil
}

// Validate checks the amount before delegating to the card validator.
func (r PaymentRequest) Validate(now time.Time) error {
	if !r.Amount.IsPositive() {
		return apperr.New(apperr.CodeInvalidRequest, "Amount must be greater than 0")
	}
	if err := r.CardDetails.Validate(now); err != nil {
		return err
	}
	if !r.Currency.Valid() {
		return apperr.New(apperr.CodeInvalidRequest, "Invalid currency")
	}
	return nil
}
