package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentProvider string

type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyUGX Currency = "UGX"
	CurrencyKES Currency = "KES"
)

func (c Currency) Valid() bool {
	switch c {
	case CurrencyUSD, CurrencyUGX, CurrencyKES:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentSucceeded PaymentStatus = "succeeded"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// Payment is the persisted record of a charge. Only Status ever changes
// after creation; the card number itself is never stored, only LastFour.
type Payment struct {
	ID          string            `json:"id"`
	Amount      decimal.Decimal   `json:"amount"`
	Currency    Currency          `json:"currency"`
	Status      PaymentStatus     `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	Description string            `json:"description"`
	Metadata    map[string]string `json:"metadata"`
	LastFour    string            `json:"last_four"`
}

type CardDetails struct {
	CardNumber     string `json:"card_number"`
	ExpiryMonth    string `json:"expiry_month"`
	ExpiryYear     string `json:"expiry_year"`
	CVV            string `json:"cvv"`
	CardholderName string `json:"cardholder_name"`
}

// LastFour returns the non-sensitive suffix retained for display.
func (c CardDetails) LastFour() string {
	if len(c.CardNumber) < 4 {
		return c.CardNumber
	}
	return c.CardNumber[len(c.CardNumber)-4:]
}

type PaymentRequest struct {
	Amount      decimal.Decimal   `json:"amount"`
	Currency    Currency          `json:"currency"`
	Description string            `json:"description"`
	Metadata    map[string]string `json:"metadata"`
	CardDetails CardDetails       `json:"card_details"`
}

type RefundRequest struct {
	Amount *decimal.Decimal `json:"amount"`
}
