package order

import (
	"fmt"

	restate "github.com/restatedev/sdk-go"
)

// Service names as bound by cmd/worker. Call sites go through these
// constants so a renamed handler fails in one place, not at runtime.
const (
	ServiceName     = "Order"
	GatewayService  = "PaymentGateway"
	NotifierService = "Notifier"
)

const stateKeyOrder = "order"

// Order is the per-order aggregate, a Virtual Object keyed by order id.
// Exclusive handlers are the command surface: the runtime delivers them one
// at a time per key, so commands are serialized against in-flight payment
// and notification calls without any locking here. GetStatus is shared and
// may run concurrently with commands.
type Order struct{}

func loadState(ctx restate.ObjectSharedContext) (State, error) {
	st, err := restate.Get[State](ctx, stateKeyOrder)
	if err != nil {
		return State{}, err
	}
	if st.Status == "" {
		st = NewState()
	}
	return st, nil
}

// AddItem puts quantity units of a product into the cart. Only valid before
// checkout.
func (Order) AddItem(ctx restate.ObjectContext, req ItemRequest) (State, error) {
	st, err := loadState(ctx)
	if err != nil {
		return State{}, err
	}

	if req.Quantity == 0 {
		return State{}, restate.TerminalError(fmt.Errorf("quantity must be positive"), 400)
	}
	if st.Status != StatusDefault {
		return State{}, restate.TerminalError(
			fmt.Errorf("cannot modify cart in status %s", st.Status), 409)
	}

	st.AddItem(req.ProductID, req.Quantity)
	restate.Set(ctx, stateKeyOrder, st)

	ctx.Log().Info("item added", "orderId", restate.Key(ctx),
		"productId", req.ProductID, "quantity", req.Quantity)
	return st.Snapshot(), nil
}

// RemoveItem takes quantity units of a product out of the cart, dropping
// the entry when it hits zero. Removing an unknown product is a no-op.
func (Order) RemoveItem(ctx restate.ObjectContext, req ItemRequest) (State, error) {
	st, err := loadState(ctx)
	if err != nil {
		return State{}, err
	}

	if st.Status != StatusDefault {
		return State{}, restate.TerminalError(
			fmt.Errorf("cannot modify cart in status %s", st.Status), 409)
	}

	st.RemoveItem(req.ProductID, req.Quantity)
	restate.Set(ctx, stateKeyOrder, st)

	ctx.Log().Info("item removed", "orderId", restate.Key(ctx),
		"productId", req.ProductID, "quantity", req.Quantity)
	return st.Snapshot(), nil
}

// SetDeliveryDetails records contact email and collection/delivery choice.
// Only valid before checkout.
func (Order) SetDeliveryDetails(ctx restate.ObjectContext, req DeliveryDetails) error {
	st, err := loadState(ctx)
	if err != nil {
		return err
	}

	if st.Status != StatusDefault {
		return restate.TerminalError(
			fmt.Errorf("cannot change delivery details in status %s", st.Status), 409)
	}
	if req.Email == "" {
		return restate.TerminalError(fmt.Errorf("email required"), 400)
	}
	if !req.Collection && req.Address == nil {
		return restate.TerminalError(fmt.Errorf("delivery orders need an address"), 400)
	}

	st.Email = req.Email
	st.Collection = req.Collection
	st.DeliveryAddress = req.Address
	restate.Set(ctx, stateKeyOrder, st)
	return nil
}

// Checkout is fire-and-forget: it is invoked with a send, so failures are
// not reported to the caller and surface only through GetStatus. It charges
// the customer and moves the order to PENDING for the kitchen; if the
// charge fails terminally the order lands in REJECTED and a best-effort
// refund covers any partial capture. The customer is notified of the
// outcome either way.
func (Order) Checkout(ctx restate.ObjectContext, _ restate.Void) error {
	orderID := restate.Key(ctx)
	st, err := loadState(ctx)
	if err != nil {
		return err
	}

	if st.Status != StatusDefault {
		ctx.Log().Warn("checkout ignored", "orderId", orderID, "status", st.Status)
		return nil
	}

	var payErr error
	if len(st.Items) > 0 {
		_, payErr = restate.Service[restate.Void](ctx, GatewayService, "TakePayment").
			Request(restate.Void{})
	}

	next, reason, refund := checkoutOutcome(len(st.Items), payErr)
	st.Status = next
	st.RejectionReason = reason
	restate.Set(ctx, stateKeyOrder, st)

	if refund {
		ctx.Log().Warn("payment failed, rejecting order", "orderId", orderID, "error", payErr)
		// A partial capture may exist, so attempt a refund once; its failure
		// is logged and must not block the terminal state.
		if _, rerr := restate.Service[restate.Void](ctx, GatewayService, "RefundPayment").
			Request(restate.Void{}); rerr != nil {
			ctx.Log().Error("refund failed", "orderId", orderID, "error", rerr)
		}
	}
	if next == StatusPending {
		ctx.Log().Info("payment taken, order pending", "orderId", orderID)
	}

	notify(ctx, st.Snapshot())
	return nil
}

// UpdateStatus is the kitchen-side advance. Illegal transitions are
// rejected with a terminal error and leave the state untouched.
func (Order) UpdateStatus(ctx restate.ObjectContext, req StatusRequest) (State, error) {
	next, err := ParseStatus(req.Status)
	if err != nil {
		return State{}, restate.TerminalError(err, 400)
	}

	st, err := loadState(ctx)
	if err != nil {
		return State{}, err
	}

	if !CanTransition(st.Status, next) {
		return State{}, restate.TerminalError(
			fmt.Errorf("invalid status transition %s -> %s", st.Status, next), 409)
	}

	st.Status = next
	if next == StatusRejected {
		st.RejectionReason = req.Reason
		if st.RejectionReason == "" {
			st.RejectionReason = "rejected by kitchen"
		}
	}
	restate.Set(ctx, stateKeyOrder, st)

	ctx.Log().Info("order status updated", "orderId", restate.Key(ctx), "status", next)

	if next.Terminal() {
		notify(ctx, st.Snapshot())
	}
	return st.Snapshot(), nil
}

// GetStatus returns a read-only snapshot of the order. It never mutates
// state or triggers activity, so it can run concurrently with commands.
func (Order) GetStatus(ctx restate.ObjectSharedContext, _ restate.Void) (State, error) {
	st, err := loadState(ctx)
	if err != nil {
		return State{}, err
	}
	return st.Snapshot(), nil
}

// notify sends the customer an order update. Notifications are best-effort:
// a failure is logged and never fails the command that produced it.
func notify(ctx restate.ObjectContext, snapshot State) {
	if _, err := restate.Service[restate.Void](ctx, NotifierService, "SendOrderUpdate").
		Request(snapshot); err != nil {
		ctx.Log().Error("notification failed", "orderId", restate.Key(ctx), "error", err)
	}
}
