package controller

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/alemiherbert/pesa-pay/internal/apperr"
	"github.com/alemiherbert/pesa-pay/internal/model"
	"github.com/alemiherbert/pesa-pay/internal/service"
	"github.com/alemiherbert/pesa-pay/pkg/utils"
)

type PaymentController struct {
	service *service.PaymentService
	logger  *zap.Logger
}

func NewPaymentController(service *service.PaymentService, logger *zap.Logger) *PaymentController {
	return &PaymentController{service: service, logger: logger}
}

func (c *PaymentController) CreatePayment(w http.ResponseWriter, r *http.Request) {
	// Add payment-specific timeout (5 seconds)
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var req model.PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithDetail(w, http.StatusBadRequest, "Invalid request")
		return
	}

	payment, err := c.service.CreatePayment(ctx, req)
	if err != nil {
		c.respondError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, payment)
}

func (c *PaymentController) GetPayment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	payment, err := c.service.GetPayment(ctx, r.PathValue("id"))
	if err != nil {
		c.respondError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, payment)
}

func (c *PaymentController) RefundPayment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// The refund body is optional; an absent amount means a full refund.
	var req model.RefundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.RespondWithDetail(w, http.StatusBadRequest, "Invalid request")
		return
	}

	payment, err := c.service.RefundPayment(ctx, r.PathValue("id"), req.Amount)
	if err != nil {
		c.respondError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, payment)
}

func (c *PaymentController) ListPayments(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	limit, err := queryInt(r, "limit", service.DefaultListLimit)
	if err != nil {
		utils.RespondWithDetail(w, http.StatusBadRequest, "Invalid limit parameter")
		return
	}
	offset, err := queryInt(r, "offset", service.DefaultListOffset)
	if err != nil {
		utils.RespondWithDetail(w, http.StatusBadRequest, "Invalid offset parameter")
		return
	}

	payments, err := c.service.ListPayments(ctx, limit, offset)
	if err != nil {
		c.respondError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, payments)
}

func (c *PaymentController) GetHealthCheck(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

// respondError maps the domain error taxonomy onto HTTP statuses.
// Unclassified failures are logged and surfaced as a generic 500.
func (c *PaymentController) respondError(w http.ResponseWriter, err error) {
	var status int
	switch apperr.CodeOf(err) {
	case apperr.CodeNotFound:
		status = http.StatusNotFound
	case apperr.CodeInvalidRequest, apperr.CodeInvalidAPIKey, apperr.CodeCardDeclined,
		apperr.CodeNotRefundable, apperr.CodeRefundExceeds:
		status = http.StatusBadRequest
	default:
		c.logger.Error("unexpected error", zap.Error(err))
		status = http.StatusInternalServerError
	}
	utils.RespondWithDetail(w, status, apperr.Detail(err))
}

func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, errors.New("invalid query parameter")
	}
	return value, nil
}
