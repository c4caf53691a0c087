package payments

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	restate "github.com/restatedev/sdk-go"
)

// LedgerStore is the persistence boundary for standing payments. A nil
// store falls back to the in-memory sample set.
type LedgerStore interface {
	ScheduledPayments(ctx context.Context) ([]PaymentRecord, error)
	RecordTransaction(ctx context.Context, txID string, rec PaymentRecord) error
}

// Ledger is the activity shim for payment lookup and execution. All
// non-determinism (clock, database, transaction ids) stays inside Run
// blocks so the calling workflows replay cleanly.
type Ledger struct {
	Store LedgerStore
}

// FindPaymentsForDay returns the payments due within the window. The due
// set is a pure function of the window, so the lookup is idempotent per
// day: running it twice for the same window returns the same set.
func (l Ledger) FindPaymentsForDay(ctx restate.Context, window Window) ([]PaymentRecord, error) {
	return restate.Run(ctx, func(rc restate.RunContext) ([]PaymentRecord, error) {
		qctx, cancel := context.WithTimeout(rc, 60*time.Second)
		defer cancel()

		var all []PaymentRecord
		var err error
		if l.Store != nil {
			all, err = l.Store.ScheduledPayments(qctx)
			if err != nil {
				return nil, fmt.Errorf("loading scheduled payments: %w", err)
			}
		} else {
			all = SamplePayments(window.Start)
		}

		due := DuePayments(all, window)
		rc.Log().Info("found due payments", "total", len(all), "due", len(due))
		return due, nil
	},
		restate.WithName("find-payments-for-day"),
		restate.WithInitialRetryInterval(500*time.Millisecond),
		restate.WithRetryIntervalFactor(2),
		restate.WithMaxRetryAttempts(5),
		restate.WithMaxRetryDuration(60*time.Second),
	)
}

// SendPayment executes one payment and returns the provider transaction
// id. A zero-amount record is permanently declined: that is the
// non-retryable class, surfaced to the calling workflow without burning
// retries.
func (l Ledger) SendPayment(ctx restate.Context, rec PaymentRecord) (SendPaymentResult, error) {
	return restate.Run(ctx, func(rc restate.RunContext) (SendPaymentResult, error) {
		if rec.AmountPence == 0 {
			return SendPaymentResult{}, restate.TerminalError(
				fmt.Errorf("payment declined: zero amount"), 402)
		}

		// Provider round-trip.
		time.Sleep(100 * time.Millisecond)
		txID := uuid.NewString()

		if l.Store != nil {
			wctx, cancel := context.WithTimeout(rc, 60*time.Second)
			defer cancel()
			if err := l.Store.RecordTransaction(wctx, txID, rec); err != nil {
				return SendPaymentResult{}, fmt.Errorf("recording transaction: %w", err)
			}
		}

		rc.Log().Info("payment sent",
			"transactionId", txID, "amountPence", rec.AmountPence)
		return SendPaymentResult{AmountPence: rec.AmountPence, TransactionID: txID}, nil
	},
		restate.WithName("send-payment"),
		restate.WithInitialRetryInterval(500*time.Millisecond),
		restate.WithRetryIntervalFactor(2),
		restate.WithMaxRetryAttempts(5),
		restate.WithMaxRetryDuration(60*time.Second),
	)
}
