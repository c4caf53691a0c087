package payments

import (
	"fmt"
	"time"

	restate "github.com/restatedev/sdk-go"
)

// Service names as bound by cmd/worker.
const (
	BatchService     = "PaymentBatch"
	RunService       = "PaymentRun"
	LedgerService    = "Ledger"
	SchedulerService = "BatchScheduler"
)

const stateKeyReport = "report"

// BatchRequest starts a batch run. Day overrides the day window
// ("2006-01-02", UTC); when empty the run resolves today once, through the
// journal, so replays see the same window.
type BatchRequest struct {
	Day string `json:"day,omitempty"`
}

// PaymentFailure describes one sub-orchestration that ended Failed.
type PaymentFailure struct {
	PaymentID   string `json:"paymentId"`
	SenderID    string `json:"senderId"`
	RecipientID string `json:"recipientId"`
	Reason      string `json:"reason"`
}

// BatchReport is the terminal outcome of one batch run. A run with
// failures is still a completed run; callers decide what a non-zero Failed
// count means for them.
type BatchReport struct {
	Window    Window              `json:"window"`
	Total     int                 `json:"total"`
	Succeeded int                 `json:"succeeded"`
	Failed    int                 `json:"failed"`
	Failures  []PaymentFailure    `json:"failures,omitempty"`
	Results   []SendPaymentResult `json:"results,omitempty"`
}

// PaymentBatch drives one day's standing payments: look up what is due,
// fan out one PaymentRun workflow per record, and join on all of them
// before reporting. Keyed by the day so a duplicate trigger for the same
// day attaches to the existing run instead of paying twice.
type PaymentBatch struct{}

func (PaymentBatch) Run(ctx restate.WorkflowContext, req BatchRequest) (BatchReport, error) {
	batchKey := restate.Key(ctx)

	window, err := resolveWindow(ctx, req)
	if err != nil {
		return BatchReport{}, err
	}

	ctx.Log().Info("finding due payments",
		"batch", batchKey, "start", window.Start, "end", window.End)

	records, err := restate.Service[[]PaymentRecord](ctx, LedgerService, "FindPaymentsForDay").
		Request(window)
	if err != nil {
		return BatchReport{}, fmt.Errorf("due payment lookup failed: %w", err)
	}

	ctx.Log().Info("making payments", "batch", batchKey, "count", len(records))

	// Fan-out: one sub-orchestration per record, addressed by a batch-stable
	// id so retriggering the batch cannot start a second run for the same
	// payment.
	ids := make([]string, len(records))
	futs := make([]restate.ResponseFuture[SendPaymentResult], len(records))
	for i, rec := range records {
		ids[i] = fmt.Sprintf("%s/payment/%03d", batchKey, i)
		futs[i] = restate.Workflow[SendPaymentResult](ctx, RunService, ids[i], "Run").
			RequestFuture(rec)
	}

	// Join: every child runs to its own terminal state. A failure is
	// collected, never propagated, so siblings are unaffected.
	outcomes := make([]outcome, len(futs))
	for i, fut := range futs {
		res, err := fut.Response()
		outcomes[i] = outcome{Result: res, Err: err}
	}

	report := summarize(window, records, ids, outcomes)
	restate.Set(ctx, stateKeyReport, report)

	ctx.Log().Info("batch complete", "batch", batchKey,
		"succeeded", report.Succeeded, "failed", report.Failed)
	return report, nil
}

// GetReport returns the stored report once the run has completed.
func (PaymentBatch) GetReport(ctx restate.WorkflowSharedContext, _ restate.Void) (BatchReport, error) {
	report, err := restate.Get[BatchReport](ctx, stateKeyReport)
	if err != nil {
		return BatchReport{}, err
	}
	if report.Window.Start.IsZero() {
		return BatchReport{}, restate.TerminalError(fmt.Errorf("batch has not completed"), 404)
	}
	return report, nil
}

func resolveWindow(ctx restate.WorkflowContext, req BatchRequest) (Window, error) {
	if req.Day != "" {
		day, err := time.ParseInLocation("2006-01-02", req.Day, time.UTC)
		if err != nil {
			return Window{}, restate.TerminalError(fmt.Errorf("invalid day %q: %w", req.Day, err), 400)
		}
		return DayWindow(day), nil
	}
	// Wall-clock read goes through the journal so a replay resolves the
	// same window even across midnight.
	return restate.Run(ctx, func(rc restate.RunContext) (Window, error) {
		return DayWindow(time.Now()), nil
	}, restate.WithName("resolve-day-window"))
}

type outcome struct {
	Result SendPaymentResult
	Err    error
}

// summarize folds per-child outcomes into the batch report.
func summarize(window Window, records []PaymentRecord, ids []string, outcomes []outcome) BatchReport {
	report := BatchReport{Window: window, Total: len(outcomes)}
	for i, out := range outcomes {
		if out.Err != nil {
			report.Failed++
			report.Failures = append(report.Failures, PaymentFailure{
				PaymentID:   ids[i],
				SenderID:    records[i].SenderID,
				RecipientID: records[i].RecipientID,
				Reason:      out.Err.Error(),
			})
			continue
		}
		report.Succeeded++
		report.Results = append(report.Results, out.Result)
	}
	return report
}
