// Package task defines the unit of work the scheduler fans out: one
// planner run against one house, tracked through to exactly one
// published outcome (a score or an error), however it gets there
// (normal completion or timeout).
package task

import (
	"context"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/elektrokombinacija/cleanbot-sim/internal/simulator"
)

// Outcome is the single published result of a Task: either a score or
// an error, never both, never neither once Ended() reports true.
type Outcome struct {
	Score     int
	TimedOut  bool
	Err       error
	Result    simulator.Result
}

// Task couples one (planner name, house name) pair to the simulator
// that will run it and the cancellation/outcome bookkeeping the
// scheduler needs to arbitrate between normal completion and timeout.
type Task struct {
	ID          string
	PlannerName string
	HouseName   string

	Sim    *simulator.Simulator
	Cancel context.CancelFunc

	ended   atomic.Bool
	outcome Outcome
}

// New constructs a Task, stamping it with a fresh ID for log
// correlation across its start/end/timeout events. cancel is the
// CancelFunc for the context the task's simulator will run under; the
// scheduler's timer calls it if it wins the race to end the task.
func New(plannerName, houseName string, sim *simulator.Simulator, cancel context.CancelFunc) *Task {
	return &Task{ID: uuid.NewString(), PlannerName: plannerName, HouseName: houseName, Sim: sim, Cancel: cancel}
}

// TryEnd performs the compare-and-swap that decides whether this
// caller (the worker finishing normally, or the timer firing first) is
// the one that gets to publish outcome. Only the winner's outcome is
// recorded; the loser's argument is discarded.
func (t *Task) TryEnd(outcome Outcome) (won bool) {
	if !t.ended.CompareAndSwap(false, true) {
		return false
	}
	t.outcome = outcome
	return true
}

// Ended reports whether some caller has already won the end-of-task
// race.
func (t *Task) Ended() bool {
	return t.ended.Load()
}

// Outcome returns the published outcome. Calling it before Ended()
// reports true returns the zero Outcome.
func (t *Task) Outcome() Outcome {
	return t.outcome
}
