package payments

import "time"

// Schedule is the recurrence rule of a standing payment.
type Schedule string

const (
	ScheduleDaily   Schedule = "DAILY"
	ScheduleWeekly  Schedule = "WEEKLY"
	ScheduleMonthly Schedule = "MONTHLY"
)

// PaymentRecord is one due payment produced by the ledger lookup. Amounts
// are integer minor units; records are never mutated after creation.
type PaymentRecord struct {
	Schedule Schedule `json:"schedule"`
	// Anchor is ignored for daily payments, the ISO weekday (1=Monday ..
	// 7=Sunday) for weekly and the day of month for monthly.
	Anchor      uint32 `json:"anchor"`
	AmountPence uint32 `json:"amountPence"`
	SenderID    string `json:"senderId"`
	RecipientID string `json:"recipientId"`
}

// SendPaymentResult is the outcome of executing one PaymentRecord. The
// transaction id is generated at execution time and is globally unique.
type SendPaymentResult struct {
	AmountPence   uint32 `json:"amountPence"`
	TransactionID string `json:"transactionId"`
}

// Window is a half-open day window [Start, End).
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// DayWindow returns the UTC day window containing now.
func DayWindow(now time.Time) Window {
	now = now.UTC()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return Window{Start: start, End: start.Add(24 * time.Hour)}
}

// ISOWeekday returns the day of week with Monday=1 .. Sunday=7.
func ISOWeekday(t time.Time) uint32 {
	wd := t.Weekday()
	if wd == time.Sunday {
		return 7
	}
	return uint32(wd)
}

// DueOn reports whether the record falls due on the given day. The rule is
// a pure function of the day, so looking up the same window twice always
// yields the same due set.
func (r PaymentRecord) DueOn(day time.Time) bool {
	switch r.Schedule {
	case ScheduleDaily:
		return true
	case ScheduleWeekly:
		return r.Anchor == ISOWeekday(day)
	case ScheduleMonthly:
		return r.Anchor == uint32(day.Day())
	default:
		return false
	}
}

// DuePayments filters records down to those due within the window.
func DuePayments(records []PaymentRecord, window Window) []PaymentRecord {
	due := make([]PaymentRecord, 0, len(records))
	for _, rec := range records {
		if rec.DueOn(window.Start) {
			due = append(due, rec)
		}
	}
	return due
}
