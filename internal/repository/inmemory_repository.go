package repository

import (
	"context"
	"sync"

	"github.com/alemiherbert/pesa-pay/internal/model"
	"github.com/alemiherbert/pesa-pay/internal/ports"
)

// InMemoryPaymentRepository backs the service when no database is
// configured, and is the store the test suites run against. Insertion
// order is tracked explicitly so List stays deterministic.
type InMemoryPaymentRepository struct {
	mu       sync.RWMutex
	payments map[string]*model.Payment
	order    []string
}

func NewInMemoryPaymentRepository() *InMemoryPaymentRepository {
	return &InMemoryPaymentRepository{
		payments: make(map[string]*model.Payment),
	}
}

func (r *InMemoryPaymentRepository) Create(ctx context.Context, p *model.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.payments[p.ID]; exists {
		return ports.ErrDuplicateID
	}

	stored := *p
	r.payments[p.ID] = &stored
	r.order = append(r.order, p.ID)
	return nil
}

func (r *InMemoryPaymentRepository) FindByID(ctx context.Context, id string) (*model.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.payments[id]
	if !ok {
		return nil, nil
	}
	found := *p
	return &found, nil
}

func (r *InMemoryPaymentRepository) List(ctx context.Context, limit, offset int) ([]model.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	payments := []model.Payment{}
	if offset >= len(r.order) {
		return payments, nil
	}

	end := offset + limit
	if end > len(r.order) {
		end = len(r.order)
	}
	for _, id := range r.order[offset:end] {
		payments = append(payments, *r.payments[id])
	}
	return payments, nil
}

func (r *InMemoryPaymentRepository) UpdateStatus(ctx context.Context, id string, from, to model.PaymentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.payments[id]
	if !ok {
		return ports.ErrPaymentNotFound
	}
	if p.Status != from {
		return ports.ErrStatusConflict
	}
	p.Status = to
	return nil
}
