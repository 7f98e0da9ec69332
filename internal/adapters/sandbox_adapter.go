package adapters

import (
	"context"
	"strings"

	"github.com/alemiherbert/pesa-pay/internal/model"
)

// Card numbers with this prefix are approved, everything else is
// declined. Matches the classic 4111 1111 1111 1111 test card.
const approvedPrefix = "4111"

// SandboxAdapter stands in for a real payment network. The verdict is
// decided locally and instantly, with no retries or timeouts.
type SandboxAdapter struct{}

func NewSandboxAdapter() *SandboxAdapter {
	return &SandboxAdapter{}
}

func (s *SandboxAdapter) Name() model.PaymentProvider {
	var ppSandbox model.PaymentProvider = "sandbox"
	return ppSandbox
}

func (s *SandboxAdapter) Authorize(ctx context.Context, cardNumber string) (bool, error) {
	return strings.HasPrefix(cardNumber, approvedPrefix), nil
}
