package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	restate "github.com/restatedev/sdk-go"
)

// Activity shims for the order aggregate. Each wraps one side effect in
// restate.Run so the journal gives it exactly-once semantics, with the
// default backoff policy: 500ms initial interval doubling per attempt,
// capped at 5 attempts or 60s elapsed. A terminal error from the provider
// short-circuits the retries.

// PaymentGateway fronts the card payment provider.
type PaymentGateway struct{}

// TakePayment captures the order total. The capture is journaled, so a
// crash after the provider accepted the charge does not charge twice.
func (PaymentGateway) TakePayment(ctx restate.Context, _ restate.Void) (restate.Void, error) {
	chargeID, err := restate.Run(ctx, func(rc restate.RunContext) (string, error) {
		// Provider round-trip. Swap for a real PSP client here.
		time.Sleep(100 * time.Millisecond)
		return fmt.Sprintf("ch_%s", uuid.NewString()), nil
	},
		restate.WithName("take-payment"),
		restate.WithInitialRetryInterval(500*time.Millisecond),
		restate.WithRetryIntervalFactor(2),
		restate.WithMaxRetryAttempts(5),
		restate.WithMaxRetryDuration(60*time.Second),
	)
	if err != nil {
		return restate.Void{}, err
	}

	ctx.Log().Info("payment captured", "chargeId", chargeID)
	return restate.Void{}, nil
}

// RefundPayment reverses a capture after a failed checkout. Callers treat
// it as best-effort.
func (PaymentGateway) RefundPayment(ctx restate.Context, _ restate.Void) (restate.Void, error) {
	refundID, err := restate.Run(ctx, func(rc restate.RunContext) (string, error) {
		time.Sleep(100 * time.Millisecond)
		return fmt.Sprintf("re_%s", uuid.NewString()), nil
	},
		restate.WithName("refund-payment"),
		restate.WithInitialRetryInterval(500*time.Millisecond),
		restate.WithRetryIntervalFactor(2),
		restate.WithMaxRetryAttempts(5),
		restate.WithMaxRetryDuration(60*time.Second),
	)
	if err != nil {
		return restate.Void{}, err
	}

	ctx.Log().Info("payment refunded", "refundId", refundID)
	return restate.Void{}, nil
}

// Notifier sends order updates to the customer.
type Notifier struct{}

// SendOrderUpdate texts/emails the customer the current order status.
func (Notifier) SendOrderUpdate(ctx restate.Context, snapshot State) (restate.Void, error) {
	_, err := restate.Run(ctx, func(rc restate.RunContext) (bool, error) {
		// Message provider round-trip.
		rc.Log().Info("sending order update",
			"email", snapshot.Email, "status", snapshot.Status)
		time.Sleep(50 * time.Millisecond)
		return true, nil
	},
		restate.WithName("send-order-update"),
		restate.WithInitialRetryInterval(500*time.Millisecond),
		restate.WithRetryIntervalFactor(2),
		restate.WithMaxRetryAttempts(5),
		restate.WithMaxRetryDuration(60*time.Second),
	)
	return restate.Void{}, err
}
