package payments

import (
	"context"
	"database/sql"
	"fmt"
)

// Store reads standing payments from Postgres and records executed
// transactions. It satisfies LedgerStore.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// ScheduledPayments returns every standing payment. Due-date filtering is
// done by the caller so the rule lives in one place.
func (s *Store) ScheduledPayments(ctx context.Context) ([]PaymentRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT schedule, anchor, amount_pence, sender_id, recipient_id
		FROM scheduled_payments
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying scheduled payments: %w", err)
	}
	defer rows.Close()

	var records []PaymentRecord
	for rows.Next() {
		var rec PaymentRecord
		if err := rows.Scan(&rec.Schedule, &rec.Anchor, &rec.AmountPence,
			&rec.SenderID, &rec.RecipientID); err != nil {
			return nil, fmt.Errorf("scanning scheduled payment: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading scheduled payments: %w", err)
	}
	return records, nil
}

// RecordTransaction stores an executed payment for audit. The transaction
// id is unique, so a replayed insert is a conflict no-op rather than a
// duplicate row.
func (s *Store) RecordTransaction(ctx context.Context, txID string, rec PaymentRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO payment_transactions (transaction_id, amount_pence, sender_id, recipient_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (transaction_id) DO NOTHING`,
		txID, rec.AmountPence, rec.SenderID, rec.RecipientID)
	if err != nil {
		return fmt.Errorf("inserting payment transaction: %w", err)
	}
	return nil
}
