package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/alemiherbert/pesa-pay/internal/apperr"
	"github.com/alemiherbert/pesa-pay/internal/metrics"
	"github.com/alemiherbert/pesa-pay/internal/model"
	"github.com/alemiherbert/pesa-pay/internal/ports"
)

const (
	DefaultListLimit  = 10
	DefaultListOffset = 0
)

type PaymentService struct {
	repo       ports.PaymentRepository
	authorizer ports.IAuthorizer
	logger     *zap.Logger
}

func NewPaymentService(repo ports.PaymentRepository, authorizer ports.IAuthorizer, logger *zap.Logger) *PaymentService {
	return &PaymentService{repo: repo, authorizer: authorizer, logger: logger}
}

// CreatePayment runs the full charge lifecycle: validate, authorize,
// persist. A declined card short-circuits before any store write, so a
// failed payment is surfaced as an error and never persisted.
func (s *PaymentService) CreatePayment(ctx context.Context, req model.PaymentRequest) (*model.Payment, error) {
	if err := req.Validate(time.Now()); err != nil {
		return nil, err
	}

	approved, err := s.authorizer.Authorize(ctx, req.CardDetails.CardNumber)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "authorization failed", err)
	}
	if !approved {
		metrics.PaymentsDeclined.Inc()
		s.logger.Info("card declined",
			zap.String("provider", string(s.authorizer.Name())),
			zap.String("lastFour", req.CardDetails.LastFour()))
		return nil, apperr.New(apperr.CodeCardDeclined, "Card declined")
	}

	payment := &model.Payment{
		ID:          uuid.NewString(),
		Amount:      req.Amount,
		Currency:    req.Currency,
		Status:      model.PaymentSucceeded,
		CreatedAt:   time.Now().UTC(),
		Description: req.Description,
		Metadata:    req.Metadata,
		LastFour:    req.CardDetails.LastFour(),
	}

	if err := s.repo.Create(ctx, payment); err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to create payment", err)
	}

	metrics.PaymentsCreated.Inc()
	s.logger.Info("payment created",
		zap.String("paymentId", payment.ID),
		zap.String("currency", string(payment.Currency)),
		zap.String("amount", payment.Amount.String()))

	return payment, nil
}

func (s *PaymentService) GetPayment(ctx context.Context, id string) (*model.Payment, error) {
	payment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to find payment", err)
	}
	if payment == nil {
		return nil, apperr.New(apperr.CodeNotFound, "Payment not found")
	}
	return payment, nil
}

// RefundPayment transitions a succeeded payment to refunded. The status
// update is a compare-and-set, so of two racing refunds only one wins.
func (s *PaymentService) RefundPayment(ctx context.Context, id string, amount *decimal.Decimal) (*model.Payment, error) {
	payment, err := s.GetPayment(ctx, id)
	if err != nil {
		return nil, err
	}

	if payment.Status != model.PaymentSucceeded {
		return nil, apperr.New(apperr.CodeNotRefundable, "Payment cannot be refunded")
	}
	if amount != nil && amount.GreaterThan(payment.Amount) {
		return nil, apperr.New(apperr.CodeRefundExceeds, "Refund amount exceeds payment amount")
	}

	err = s.repo.UpdateStatus(ctx, id, model.PaymentSucceeded, model.PaymentRefunded)
	switch {
	case errors.Is(err, ports.ErrPaymentNotFound):
		return nil, apperr.New(apperr.CodeNotFound, "Payment not found")
	case errors.Is(err, ports.ErrStatusConflict):
		// Lost the race to a concurrent refund.
		return nil, apperr.New(apperr.CodeNotRefundable, "Payment cannot be refunded")
	case err != nil:
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to update payment status", err)
	}

	payment.Status = model.PaymentRefunded

	metrics.PaymentsRefunded.Inc()
	s.logger.Info("payment refunded", zap.String("paymentId", payment.ID))

	return payment, nil
}

func (s *PaymentService) ListPayments(ctx context.Context, limit, offset int) ([]model.Payment, error) {
	payments, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to list payments", err)
	}
	return payments, nil
}
