package payments

import (
	"fmt"
	"time"
)

// SamplePayments is the demo dataset used when no database is configured.
// It spans every schedule kind around the given day so a daily run always
// selects the daily record, exactly one weekly record and exactly one
// monthly record.
func SamplePayments(day time.Time) []PaymentRecord {
	day = day.UTC()
	yesterday := day.AddDate(0, 0, -1)
	tomorrow := day.AddDate(0, 0, 1)

	party := func(n int) string { return fmt.Sprintf("account-%04d", n) }

	return []PaymentRecord{
		{Schedule: ScheduleDaily, AmountPence: 10000,
			SenderID: party(1), RecipientID: party(2)},
		{Schedule: ScheduleWeekly, Anchor: ISOWeekday(yesterday), AmountPence: 10100,
			SenderID: party(3), RecipientID: party(4)},
		{Schedule: ScheduleWeekly, Anchor: ISOWeekday(day), AmountPence: 10200,
			SenderID: party(5), RecipientID: party(6)},
		{Schedule: ScheduleWeekly, Anchor: ISOWeekday(tomorrow), AmountPence: 10300,
			SenderID: party(7), RecipientID: party(8)},
		{Schedule: ScheduleMonthly, Anchor: uint32(yesterday.Day()), AmountPence: 10400,
			SenderID: party(9), RecipientID: party(10)},
		{Schedule: ScheduleMonthly, Anchor: uint32(day.Day()), AmountPence: 10000,
			SenderID: party(11), RecipientID: party(12)},
		{Schedule: ScheduleMonthly, Anchor: uint32(tomorrow.Day()), AmountPence: 10000,
			SenderID: party(13), RecipientID: party(14)},
	}
}
