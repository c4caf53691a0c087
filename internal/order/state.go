package order

import (
	"fmt"
	"math"
	"strings"
)

// Status is the lifecycle position of an order.
type Status string

const (
	StatusDefault   Status = "DEFAULT"   // order not paid yet
	StatusPending   Status = "PENDING"   // paid, waiting for the kitchen to accept
	StatusAccepted  Status = "ACCEPTED"  // kitchen accepted, work not started
	StatusPreparing Status = "PREPARING" // kitchen is cooking
	StatusReady     Status = "READY"     // ready for collection / out for delivery
	StatusCompleted Status = "COMPLETED" // handed over
	StatusRejected  Status = "REJECTED"  // kitchen or payment rejected the order
)

// ParseStatus parses a status name case-insensitively.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToUpper(s)) {
	case StatusDefault:
		return StatusDefault, nil
	case StatusPending:
		return StatusPending, nil
	case StatusAccepted:
		return StatusAccepted, nil
	case StatusPreparing:
		return StatusPreparing, nil
	case StatusReady:
		return StatusReady, nil
	case StatusCompleted:
		return StatusCompleted, nil
	case StatusRejected:
		return StatusRejected, nil
	default:
		return "", fmt.Errorf("invalid status: %q", s)
	}
}

func (s Status) String() string {
	return string(s)
}

// Terminal reports whether no further state-changing commands are accepted.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusRejected
}

// CanTransition reports whether a kitchen-side UpdateStatus from one status
// to another is legal. The forward path is PENDING → ACCEPTED → PREPARING →
// READY → COMPLETED; PENDING, ACCEPTED and PREPARING may also branch to
// REJECTED. DEFAULT orders have not been paid and cannot be advanced by the
// kitchen at all.
func CanTransition(from, to Status) bool {
	switch from {
	case StatusPending:
		return to == StatusAccepted || to == StatusRejected
	case StatusAccepted:
		return to == StatusPreparing || to == StatusRejected
	case StatusPreparing:
		return to == StatusReady || to == StatusRejected
	case StatusReady:
		return to == StatusCompleted
	default:
		return false
	}
}

// checkoutOutcome maps the cart contents and the payment result to the
// status Checkout records. An empty cart is rejected before any charge is
// attempted. A failed charge rejects the order with the error text and asks
// for a single refund attempt, since a partial capture may exist. Otherwise
// the order moves to PENDING for the kitchen.
func checkoutOutcome(itemCount int, paymentErr error) (next Status, reason string, refund bool) {
	if itemCount == 0 {
		return StatusRejected, "cart is empty", false
	}
	if paymentErr != nil {
		return StatusRejected, fmt.Sprintf("payment failed: %v", paymentErr), true
	}
	return StatusPending, "", false
}

// Address is a UK-style delivery address.
type Address struct {
	Line1    string `json:"line1"`
	Line2    string `json:"line2,omitempty"`
	Line3    string `json:"line3,omitempty"`
	Town     string `json:"town"`
	County   string `json:"county,omitempty"`
	PostCode string `json:"postCode"`
}

// State is the mutable aggregate for one order. It is owned by exactly one
// Order object instance; handlers hand out copies via Snapshot.
type State struct {
	Status          Status            `json:"status"`
	Collection      bool              `json:"collection"`
	DeliveryAddress *Address          `json:"deliveryAddress,omitempty"`
	Email           string            `json:"email"`
	Items           map[uint32]uint32 `json:"items"`
	RejectionReason string            `json:"rejectionReason,omitempty"`
}

// NewState returns an empty order awaiting checkout.
func NewState() State {
	return State{
		Status: StatusDefault,
		Items:  map[uint32]uint32{},
	}
}

// AddItem adds quantity units of a product to the cart. Quantities for the
// same product accumulate, saturating at math.MaxUint32 rather than
// wrapping.
func (s *State) AddItem(productID, quantity uint32) {
	if quantity == 0 {
		return
	}
	if s.Items == nil {
		s.Items = map[uint32]uint32{}
	}
	current := s.Items[productID]
	if current > math.MaxUint32-quantity {
		s.Items[productID] = math.MaxUint32
		return
	}
	s.Items[productID] = current + quantity
}

// RemoveItem decrements a product's quantity, floored at zero. An entry
// that reaches zero is deleted; removing an unknown product is a no-op.
func (s *State) RemoveItem(productID, quantity uint32) {
	current, ok := s.Items[productID]
	if !ok {
		return
	}
	if quantity >= current {
		delete(s.Items, productID)
		return
	}
	s.Items[productID] = current - quantity
}

// Snapshot returns a read-only copy of the state. Mutating the copy never
// touches the aggregate.
func (s State) Snapshot() State {
	out := s
	out.Items = make(map[uint32]uint32, len(s.Items))
	for id, qty := range s.Items {
		out.Items[id] = qty
	}
	if s.DeliveryAddress != nil {
		addr := *s.DeliveryAddress
		out.DeliveryAddress = &addr
	}
	return out
}
