package order

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_AddRemoveItems(t *testing.T) {
	st := NewState()

	st.AddItem(1, 2)
	st.AddItem(2, 1)
	st.AddItem(1, 1) // same product accumulates

	require.Len(t, st.Items, 2)
	assert.Equal(t, uint32(3), st.Items[1])
	assert.Equal(t, uint32(1), st.Items[2])

	st.RemoveItem(1, 1)
	assert.Equal(t, uint32(2), st.Items[1])
	assert.Equal(t, uint32(1), st.Items[2])

	// Removing more than present drops the entry rather than going negative.
	st.RemoveItem(1, 5)
	_, ok := st.Items[1]
	assert.False(t, ok)
	assert.Equal(t, uint32(1), st.Items[2])
}

func TestState_RemoveUnknownProductIsNoop(t *testing.T) {
	st := NewState()
	st.AddItem(1, 2)

	st.RemoveItem(99, 1)

	assert.Equal(t, map[uint32]uint32{1: 2}, st.Items)
}

func TestState_AddItemSaturates(t *testing.T) {
	st := NewState()

	st.AddItem(1, math.MaxUint32-1)
	st.AddItem(1, 5)

	assert.Equal(t, uint32(math.MaxUint32), st.Items[1])
}

func TestState_NeverHoldsZeroQuantity(t *testing.T) {
	st := NewState()

	ops := []struct {
		add       bool
		productID uint32
		quantity  uint32
	}{
		{true, 1, 3}, {true, 2, 1}, {false, 1, 3},
		{true, 3, 2}, {false, 2, 5}, {false, 3, 1},
		{true, 1, 1}, {false, 1, 1},
	}
	for _, op := range ops {
		if op.add {
			st.AddItem(op.productID, op.quantity)
		} else {
			st.RemoveItem(op.productID, op.quantity)
		}
		for id, qty := range st.Items {
			assert.Positivef(t, int64(qty), "product %d has non-positive quantity", id)
		}
	}
}

func TestState_SnapshotIsIndependent(t *testing.T) {
	st := NewState()
	st.AddItem(1, 2)
	st.Email = "test@example.com"
	st.DeliveryAddress = &Address{Line1: "123 Test St", Town: "Test City", PostCode: "TE1 1ST"}

	snap := st.Snapshot()
	snap.Items[1] = 99
	snap.DeliveryAddress.Town = "Elsewhere"

	assert.Equal(t, uint32(2), st.Items[1])
	assert.Equal(t, "Test City", st.DeliveryAddress.Town)
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    Status
		wantErr bool
	}{
		{"DEFAULT", StatusDefault, false},
		{"PENDING", StatusPending, false},
		{"ACCEPTED", StatusAccepted, false},
		{"PREPARING", StatusPreparing, false},
		{"READY", StatusReady, false},
		{"COMPLETED", StatusCompleted, false},
		{"REJECTED", StatusRejected, false},
		{"pending", StatusPending, false},
		{"Ready", StatusReady, false},
		{"INVALID", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStatus(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, string(tt.want), got.String())
		})
	}
}

func TestCanTransition(t *testing.T) {
	allowed := map[Status][]Status{
		StatusPending:   {StatusAccepted, StatusRejected},
		StatusAccepted:  {StatusPreparing, StatusRejected},
		StatusPreparing: {StatusReady, StatusRejected},
		StatusReady:     {StatusCompleted},
	}
	all := []Status{
		StatusDefault, StatusPending, StatusAccepted, StatusPreparing,
		StatusReady, StatusCompleted, StatusRejected,
	}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, ok := range allowed[from] {
				if ok == to {
					want = true
				}
			}
			assert.Equalf(t, want, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestCheckoutOutcome(t *testing.T) {
	tests := []struct {
		name       string
		itemCount  int
		paymentErr error
		wantNext   Status
		wantRefund bool
	}{
		{"empty cart rejects before charging", 0, nil, StatusRejected, false},
		{"failed charge rejects and refunds once", 2, errors.New("card declined"), StatusRejected, true},
		{"successful charge goes pending", 2, nil, StatusPending, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, reason, refund := checkoutOutcome(tt.itemCount, tt.paymentErr)
			assert.Equal(t, tt.wantNext, next)
			assert.Equal(t, tt.wantRefund, refund)
			if tt.wantNext == StatusRejected {
				assert.True(t, next.Terminal())
				assert.NotEmpty(t, reason)
			} else {
				assert.Empty(t, reason)
			}
		})
	}
}

func TestCheckoutOutcome_RejectionReasonCarriesPaymentError(t *testing.T) {
	next, reason, refund := checkoutOutcome(1, errors.New("card declined"))

	assert.Equal(t, StatusRejected, next)
	assert.True(t, refund)
	assert.Contains(t, reason, "card declined")
}

func TestTerminalStatuses(t *testing.T) {
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusRejected.Terminal())
	assert.False(t, StatusDefault.Terminal())
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusReady.Terminal())
}

func TestState_JSONRoundTrip(t *testing.T) {
	st := State{
		Status:     StatusPending,
		Collection: false,
		DeliveryAddress: &Address{
			Line1:    "123 Test St",
			Town:     "Test City",
			PostCode: "TE1 1ST",
		},
		Email: "test@example.com",
		Items: map[uint32]uint32{1: 2},
	}

	raw, err := json.Marshal(st)
	require.NoError(t, err)

	var got State
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, st, got)
}
