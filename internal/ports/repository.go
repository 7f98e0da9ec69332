package ports

import (
	"context"
	"errors"

	"github.com/alemiherbert/pesa-pay/internal/model"
)

var (
	ErrPaymentNotFound = errors.New("payment not found")
	ErrDuplicateID     = errors.New("payment id already exists")
	ErrStatusConflict  = errors.New("payment status conflict")
)

type PaymentRepository interface {
	Create(ctx context.Context, p *model.Payment) error

	// FindByID returns (nil, nil) when no record exists.
	FindByID(ctx context.Context, id string) (*model.Payment, error)

	// List returns payments in insertion order.
	List(ctx context.Context, limit, offset int) ([]model.Payment, error)

	// UpdateStatus transitions a record from one status to another
	// atomically, returning ErrStatusConflict if the record is no
	// longer in the expected state. This is what keeps concurrent
	// refunds of the same payment from both succeeding.
	UpdateStatus(ctx context.Context, id string, from, to model.PaymentStatus) error
}
