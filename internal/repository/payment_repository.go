package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/alemiherbert/pesa-pay/internal/model"
	"github.com/alemiherbert/pesa-pay/internal/ports"
)

// Combines all needed interfaces
type Queryable interface {
	Query(context.Context, string, ...any) (pgx.Rows, error)
	QueryRow(context.Context, string, ...any) pgx.Row
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
}

type DB interface {
	Queryable
	Begin(ctx context.Context) (pgx.Tx, error)
}

type PaymentRepository struct {
	db DB
}

func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{db: pool}
}

func (r *PaymentRepository) Create(ctx context.Context, p *model.Payment) error {
	var metadata []byte
	if p.Metadata != nil {
		var err error
		metadata, err = json.Marshal(p.Metadata)
		if err != nil {
			return fmt.Errorf("error encoding metadata: %w", err)
		}
	}

	sql := `
        INSERT INTO payments (id, amount, currency, status, description, metadata, last_four, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(ctx, sql,
		p.ID,
		p.Amount.String(),
		string(p.Currency),
		string(p.Status),
		p.Description,
		metadata,
		p.LastFour,
		p.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ports.ErrDuplicateID
		}
		return fmt.Errorf("error creating payment: %w", err)
	}
	return nil
}

func (r *PaymentRepository) FindByID(ctx context.Context, id string) (*model.Payment, error) {
	sql := `
        SELECT id, amount::text, currency, status, description, metadata, last_four, created_at
        FROM payments WHERE id = $1`

	p, err := scanPayment(r.db.QueryRow(ctx, sql, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error getting payment: %w", err)
	}
	return p, nil
}

func (r *PaymentRepository) List(ctx context.Context, limit, offset int) ([]model.Payment, error) {
	// seq keeps insertion order stable; created_at alone can tie.
	sql := `
        SELECT id, amount::text, currency, status, description, metadata, last_four, created_at
        FROM payments
        ORDER BY seq ASC
        LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, sql, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("error listing payments: %w", err)
	}
	defer rows.Close()

	payments := []model.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning payment: %w", err)
		}
		payments = append(payments, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return payments, nil
}

func (r *PaymentRepository) UpdateStatus(ctx context.Context, id string, from, to model.PaymentStatus) error {
	sql := `UPDATE payments SET status = $1 WHERE id = $2 AND status = $3`

	tag, err := r.db.Exec(ctx, sql, string(to), id, string(from))
	if err != nil {
		return fmt.Errorf("error updating payment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Distinguish a missing record from one the guard rejected.
		existing, err := r.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return ports.ErrPaymentNotFound
		}
		return ports.ErrStatusConflict
	}
	return nil
}

func scanPayment(row pgx.Row) (*model.Payment, error) {
	var (
		p        model.Payment
		amount   string
		metadata []byte
	)
	err := row.Scan(
		&p.ID,
		&amount,
		&p.Currency,
		&p.Status,
		&p.Description,
		&metadata,
		&p.LastFour,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("error parsing amount: %w", err)
	}
	if metadata != nil {
		if err := json.Unmarshal(metadata, &p.Metadata); err != nil {
			return nil, fmt.Errorf("error decoding metadata: %w", err)
		}
	}
	return &p, nil
}
