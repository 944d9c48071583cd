package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// The UNIQUE constraint on (booking_day, slot_time) is the authority for slot
// exclusivity: the insert attempt itself decides claim races, not a prior
// existence check. Its name is matched when translating unique violations.
const schema = `
CREATE TABLE IF NOT EXISTS bookings (
    id            uuid PRIMARY KEY,
    booking_day   date        NOT NULL,
    slot_time     text        NOT NULL,
    guests        integer     NOT NULL CHECK (guests > 0),
    customer_name text        NOT NULL CHECK (customer_name <> ''),
    contact       text        NOT NULL CHECK (contact <> ''),
    created_at    timestamptz NOT NULL DEFAULT now(),
    updated_at    timestamptz NOT NULL DEFAULT now(),
    CONSTRAINT bookings_day_slot_key UNIQUE (booking_day, slot_time)
);

CREATE INDEX IF NOT EXISTS bookings_day_idx ON bookings (booking_day, slot_time);
`

func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}
