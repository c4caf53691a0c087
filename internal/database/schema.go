package database

import (
	"database/sql"
	"fmt"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS scheduled_payments (
    id BIGSERIAL PRIMARY KEY,
    schedule TEXT NOT NULL CHECK (schedule IN ('DAILY', 'WEEKLY', 'MONTHLY')),
    anchor INTEGER NOT NULL DEFAULT 0,
    amount_pence BIGINT NOT NULL CHECK (amount_pence >= 0),
    sender_id TEXT NOT NULL,
    recipient_id TEXT NOT NULL,
    created_at TIMESTAMPTZ DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS payment_transactions (
    id BIGSERIAL PRIMARY KEY,
    transaction_id TEXT NOT NULL UNIQUE,
    amount_pence BIGINT NOT NULL,
    sender_id TEXT NOT NULL,
    recipient_id TEXT NOT NULL,
    executed_at TIMESTAMPTZ DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_scheduled_payments_schedule ON scheduled_payments(schedule);
CREATE INDEX IF NOT EXISTS idx_payment_transactions_sender ON payment_transactions(sender_id);
`

func InitSchema(db *sql.DB) error {
	_, err := db.Exec(schemaSQL)
	if err != nil {
		return fmt.Errorf("failed to init schema: %w", err)
	}
	return nil
}
