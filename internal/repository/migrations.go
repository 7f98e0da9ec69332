package repository

import (
	"context"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS payments (
    id          TEXT PRIMARY KEY,
    seq         BIGSERIAL,
    amount      NUMERIC(20,2) NOT NULL,
    currency    TEXT NOT NULL,
    status      TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    metadata    JSONB,
    last_four   TEXT NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_payments_seq ON payments (seq);
`

// Migrate creates the payments table. The schema is a single table, so
// plain DDL replaces a migration tool here.
func (r *PaymentRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("error applying schema: %w", err)
	}
	return nil
}
