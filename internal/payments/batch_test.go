package payments

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBatch(n int, failing map[int]error) ([]PaymentRecord, []string, []outcome) {
	records := make([]PaymentRecord, n)
	ids := make([]string, n)
	outcomes := make([]outcome, n)
	for i := range records {
		records[i] = PaymentRecord{
			Schedule:    ScheduleDaily,
			AmountPence: uint32(1000 * (i + 1)),
			SenderID:    fmt.Sprintf("sender-%d", i),
			RecipientID: fmt.Sprintf("recipient-%d", i),
		}
		ids[i] = fmt.Sprintf("2026-08-29/payment/%03d", i)
		if err, ok := failing[i]; ok {
			outcomes[i] = outcome{Err: err}
		} else {
			outcomes[i] = outcome{Result: SendPaymentResult{
				AmountPence:   records[i].AmountPence,
				TransactionID: fmt.Sprintf("tx-%d", i),
			}}
		}
	}
	return records, ids, outcomes
}

func TestSummarize_AllSucceed(t *testing.T) {
	window := DayWindow(time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC))
	records, ids, outcomes := testBatch(4, nil)

	report := summarize(window, records, ids, outcomes)

	assert.Equal(t, 4, report.Total)
	assert.Equal(t, 4, report.Succeeded)
	assert.Equal(t, 0, report.Failed)
	assert.Empty(t, report.Failures)
	require.Len(t, report.Results, 4)
	assert.Equal(t, "tx-0", report.Results[0].TransactionID)
}

func TestSummarize_PartialFailure(t *testing.T) {
	// Three due payments where the second exhausts its retries: the batch
	// must report 2 succeeded / 1 failed instead of aborting.
	window := DayWindow(time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC))
	records, ids, outcomes := testBatch(3, map[int]error{
		1: errors.New("payment declined: zero amount"),
	})

	report := summarize(window, records, ids, outcomes)

	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 2, report.Succeeded)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, "2026-08-29/payment/001", report.Failures[0].PaymentID)
	assert.Equal(t, "sender-1", report.Failures[0].SenderID)
	assert.Equal(t, "recipient-1", report.Failures[0].RecipientID)
	assert.Contains(t, report.Failures[0].Reason, "declined")
	require.Len(t, report.Results, 2)
}

func TestSummarize_CountsAddUp(t *testing.T) {
	window := DayWindow(time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC))
	for _, n := range []int{0, 1, 5, 12} {
		for k := 0; k <= n; k++ {
			failing := map[int]error{}
			for i := 0; i < k; i++ {
				failing[i] = errors.New("boom")
			}
			records, ids, outcomes := testBatch(n, failing)

			report := summarize(window, records, ids, outcomes)

			assert.Equal(t, n, report.Total)
			assert.Equal(t, k, report.Failed)
			assert.Equal(t, n-k, report.Succeeded)
			assert.Equal(t, report.Total, report.Succeeded+report.Failed)
			assert.Len(t, report.Failures, k)
			assert.Len(t, report.Results, n-k)
		}
	}
}

func TestBatchPaymentIDsAreStableAndUnique(t *testing.T) {
	_, ids, _ := testBatch(5, nil)

	seen := map[string]bool{}
	for _, id := range ids {
		assert.False(t, seen[id], "duplicate payment id %s", id)
		seen[id] = true
	}

	_, again, _ := testBatch(5, nil)
	assert.Equal(t, ids, again)
}
