package payments

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayWindow(t *testing.T) {
	now := time.Date(2026, 8, 29, 15, 42, 7, 12345, time.UTC)

	window := DayWindow(now)

	assert.Equal(t, time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC), window.Start)
	assert.Equal(t, time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC), window.End)
	assert.Equal(t, 24*time.Hour, window.End.Sub(window.Start))
}

func TestDayWindow_NonUTCInput(t *testing.T) {
	// 23:30 in UTC+2 is 21:30 UTC, still the same UTC day.
	loc := time.FixedZone("UTC+2", 2*60*60)
	now := time.Date(2026, 8, 29, 23, 30, 0, 0, loc)

	window := DayWindow(now)

	assert.Equal(t, time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC), window.Start)
}

func TestISOWeekday(t *testing.T) {
	// 2026-08-24 is a Monday.
	monday := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		assert.Equal(t, uint32(i+1), ISOWeekday(monday.AddDate(0, 0, i)))
	}
}

func TestPaymentRecord_DueOn(t *testing.T) {
	// 2026-08-29 is a Saturday (ISO weekday 6), day of month 29.
	day := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		rec  PaymentRecord
		want bool
	}{
		{"daily always due", PaymentRecord{Schedule: ScheduleDaily}, true},
		{"weekly matching anchor", PaymentRecord{Schedule: ScheduleWeekly, Anchor: 6}, true},
		{"weekly other anchor", PaymentRecord{Schedule: ScheduleWeekly, Anchor: 5}, false},
		{"monthly matching anchor", PaymentRecord{Schedule: ScheduleMonthly, Anchor: 29}, true},
		{"monthly other anchor", PaymentRecord{Schedule: ScheduleMonthly, Anchor: 30}, false},
		{"unknown schedule", PaymentRecord{Schedule: "YEARLY"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rec.DueOn(day))
		})
	}
}

func TestDuePayments_SampleSet(t *testing.T) {
	day := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	window := DayWindow(day)

	due := DuePayments(SamplePayments(window.Start), window)

	// The sample set always yields the daily record plus the weekly and
	// monthly records anchored to today.
	require.Len(t, due, 3)
	kinds := map[Schedule]int{}
	for _, rec := range due {
		kinds[rec.Schedule]++
		assert.True(t, rec.DueOn(window.Start))
	}
	assert.Equal(t, map[Schedule]int{ScheduleDaily: 1, ScheduleWeekly: 1, ScheduleMonthly: 1}, kinds)
}

func TestDuePayments_SameWindowSameSet(t *testing.T) {
	window := DayWindow(time.Date(2026, 2, 28, 12, 0, 0, 0, time.UTC))
	records := SamplePayments(window.Start)

	first := DuePayments(records, window)
	second := DuePayments(records, window)

	assert.Equal(t, first, second)
}
