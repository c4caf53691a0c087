package payments

import (
	"time"

	restate "github.com/restatedev/sdk-go"
)

const (
	stateKeyArmed      = "armed"
	stateKeyGeneration = "generation"
)

// TickRequest stamps a tick with the arming cycle that sent it, so ticks
// left in flight by a stopped schedule drop out instead of re-arming.
type TickRequest struct {
	Generation uint64 `json:"generation"`
}

// BatchScheduler fires the daily batch. Temporal-style cron is modelled
// with a delayed self-send: each Tick starts today's batch and re-arms
// itself for the next UTC midnight. Keyed by schedule name so several
// independent schedules can coexist.
type BatchScheduler struct{}

// Start arms the schedule and fires the first tick immediately. Each Start
// opens a new arming cycle; the generation survives Stop so a restarted
// schedule strands any tick still in flight from the previous cycle.
func (BatchScheduler) Start(ctx restate.ObjectContext, _ restate.Void) error {
	armed, err := restate.Get[bool](ctx, stateKeyArmed)
	if err != nil {
		return err
	}
	if armed {
		ctx.Log().Info("scheduler already armed", "schedule", restate.Key(ctx))
		return nil
	}

	gen, err := restate.Get[uint64](ctx, stateKeyGeneration)
	if err != nil {
		return err
	}
	gen++

	restate.Set(ctx, stateKeyGeneration, gen)
	restate.Set(ctx, stateKeyArmed, true)
	restate.ObjectSend(ctx, SchedulerService, restate.Key(ctx), "Tick").
		Send(TickRequest{Generation: gen})

	ctx.Log().Info("scheduler armed", "schedule", restate.Key(ctx), "generation", gen)
	return nil
}

// Tick starts today's batch and schedules the next tick. Ticks from a
// stopped schedule or a previous arming cycle fall through without effect.
func (BatchScheduler) Tick(ctx restate.ObjectContext, req TickRequest) error {
	armed, err := restate.Get[bool](ctx, stateKeyArmed)
	if err != nil {
		return err
	}
	gen, err := restate.Get[uint64](ctx, stateKeyGeneration)
	if err != nil {
		return err
	}
	if !tickCurrent(armed, gen, req.Generation) {
		ctx.Log().Info("stale tick dropped", "schedule", restate.Key(ctx),
			"tickGeneration", req.Generation, "generation", gen)
		return nil
	}

	now, err := restate.Run(ctx, func(rc restate.RunContext) (time.Time, error) {
		return time.Now().UTC(), nil
	}, restate.WithName("tick-clock"))
	if err != nil {
		return err
	}

	day := now.Format("2006-01-02")
	restate.WorkflowSend(ctx, BatchService, day, "Run").Send(BatchRequest{Day: day})

	untilMidnight := DayWindow(now).End.Sub(now)
	restate.ObjectSend(ctx, SchedulerService, restate.Key(ctx), "Tick").
		Send(TickRequest{Generation: req.Generation}, restate.WithDelay(untilMidnight))

	ctx.Log().Info("batch triggered", "schedule", restate.Key(ctx),
		"day", day, "nextTickIn", untilMidnight)
	return nil
}

// Stop disarms the schedule. The generation stays behind so the next Start
// bumps it past any delayed tick still in flight.
func (BatchScheduler) Stop(ctx restate.ObjectContext, _ restate.Void) error {
	restate.Clear(ctx, stateKeyArmed)
	ctx.Log().Info("scheduler stopped", "schedule", restate.Key(ctx))
	return nil
}

// tickCurrent reports whether a tick stamped with gen belongs to the live
// arming cycle.
func tickCurrent(armed bool, current, gen uint64) bool {
	return armed && gen == current
}
