package ports

import (
	"context"

	"github.com/alemiherbert/pesa-pay/internal/model"
)

type IAuthorizer interface {
	Name() model.PaymentProvider
	Authorize(ctx context.Context, cardNumber string) (bool, error)
}
