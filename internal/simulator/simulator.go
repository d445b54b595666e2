// Package simulator drives a single Planner against a single House and
// Battery, tick by tick, enforcing the step budget and translating the
// planner's steps into house/battery mutations. It owns the run-status
// and scoring rules; the scheduler (internal/scheduler) owns everything
// about running many of these concurrently.
package simulator

import (
	"context"
	"fmt"

	"github.com/elektrokombinacija/cleanbot-sim/internal/battery"
	"github.com/elektrokombinacija/cleanbot-sim/internal/geom"
	"github.com/elektrokombinacija/cleanbot-sim/internal/house"
	"github.com/elektrokombinacija/cleanbot-sim/internal/planner"
)

// Status is the terminal classification of a finished or aborted run.
type Status int

const (
	// StatusWorking means the run ended without the planner ever
	// returning Finish and without the battery dying away from the
	// dock: either the context was cancelled mid-run, or the planner
	// exhausted its step budget while still holding charge.
	StatusWorking Status = iota
	// StatusFinished means the agent ended the run parked at the dock.
	StatusFinished
	// StatusDead means the agent's battery ran out away from the dock.
	StatusDead
)

func (s Status) String() string {
	switch s {
	case StatusFinished:
		return "FINISHED"
	case StatusDead:
		return "DEAD"
	default:
		return "WORKING"
	}
}

// Scoring constants.
const (
	DirtFactor       = 300
	DeadPenalty      = 2000
	LyingPenalty     = 3000
	NotInDockPenalty = 1000
	TimeoutPenalty   = 2000
)

// Result is everything a finished (or aborted) run reports: used both
// to build the per-house text artifact and to feed the CSV summary.
type Result struct {
	Steps     []geom.Step
	NumSteps  int
	DirtLeft  int
	Status    Status
	InDock    bool
	Score     int
}

// Simulator couples one Planner to one House/Battery pair for exactly
// one run; it is not reused across simulations.
type Simulator struct {
	planner  planner.Planner
	house    *house.House
	battery  *battery.Battery
	maxSteps int
}

// New constructs a Simulator. maxSteps is also handed to the planner
// via SetMaxSteps; the planner is never told the battery's capacity and
// sees the battery only through BatteryState().
func New(p planner.Planner, h *house.House, bat *battery.Battery, maxSteps int) *Simulator {
	p.SetMaxSteps(maxSteps)
	p.SetWallsSensor(h)
	p.SetDirtSensor(h)
	p.SetBatteryMeter(bat)
	return &Simulator{planner: p, house: h, battery: bat, maxSteps: maxSteps}
}

// Run executes the simulation loop until the planner returns Finish,
// the step budget is exhausted, the battery dies away from the dock,
// or ctx is cancelled. A non-nil error means the planner violated its
// contract (ErrUnreachableDock, ErrInvalidMove) or the battery
// contract was violated (battery.ErrExhausted): these are reported as
// error artifacts upstream, not scored.
func (s *Simulator) Run(ctx context.Context) (Result, error) {
	steps := make([]geom.Step, 0, s.maxSteps)
	numSteps := 0

	for {
		if err := ctx.Err(); err != nil {
			return s.result(steps, numSteps, StatusWorking), nil
		}

		step, err := s.planner.NextStep()
		if err != nil {
			return Result{}, fmt.Errorf("simulator: planner error: %w", err)
		}

		if step == geom.StepFinish {
			steps = append(steps, step)
			status := StatusDead
			if s.house.AtDock() {
				status = StatusFinished
			}
			return s.result(steps, numSteps, status), nil
		}

		if numSteps >= s.maxSteps {
			// The planner returned something other than Finish on the
			// tick where its budget was already spent; the run simply
			// stops here without applying the step. This is only Dead
			// if the battery had already actually run out away from the
			// dock on a prior applied step (which would have returned
			// above); otherwise the agent just ran out of time still
			// holding charge, and scores on its real step count.
			status := StatusWorking
			if !s.house.AtDock() && s.battery.IsExhausted() {
				status = StatusDead
			}
			return s.result(steps, numSteps, status), nil
		}

		if err := s.applyStep(step); err != nil {
			return Result{}, err
		}
		steps = append(steps, step)
		numSteps++

		if !s.house.AtDock() && s.battery.IsExhausted() {
			return s.result(steps, numSteps, StatusDead), nil
		}
	}
}

// applyStep handles the two non-Finish step kinds: Stay and a
// directional move.
func (s *Simulator) applyStep(step geom.Step) error {
	if step == geom.StepStay {
		if s.house.AtDock() {
			s.battery.Charge()
			return nil
		}
		if err := s.battery.Discharge(); err != nil {
			return fmt.Errorf("simulator: %w", err)
		}
		s.house.CleanCurrentPosition()
		return nil
	}

	dir, ok := step.Direction()
	if !ok {
		return fmt.Errorf("simulator: planner returned unrecognized step %v", step)
	}
	if err := s.battery.Discharge(); err != nil {
		return fmt.Errorf("simulator: %w", err)
	}
	if s.house.IsWall(dir) {
		return fmt.Errorf("simulator: %w: %v", planner.ErrInvalidMove, dir)
	}
	s.house.Move(dir)
	return nil
}

func (s *Simulator) result(steps []geom.Step, numSteps int, status Status) Result {
	dirtLeft := s.house.TotalDirtLeft()
	atDock := s.house.AtDock()
	r := Result{
		Steps:    steps,
		NumSteps: numSteps,
		DirtLeft: dirtLeft,
		Status:   status,
		InDock:   atDock,
	}
	r.Score = s.score(r, status, atDock, dirtLeft, numSteps)
	return r
}

// score prices a finished run. Dead/Lying both price in max_steps
// rather than the (shorter) actual step count, since the agent
// forfeited the rest of its budget by failing to return.
func (s *Simulator) score(r Result, status Status, atDock bool, dirtLeft, numSteps int) int {
	lastFinish := len(r.Steps) > 0 && r.Steps[len(r.Steps)-1] == geom.StepFinish

	switch {
	case status == StatusDead && !lastFinish && !atDock:
		return s.maxSteps + dirtLeft*DirtFactor + DeadPenalty
	case lastFinish && !atDock:
		return s.maxSteps + dirtLeft*DirtFactor + LyingPenalty
	case !atDock:
		return numSteps + dirtLeft*DirtFactor + NotInDockPenalty
	default:
		return numSteps + dirtLeft*DirtFactor
	}
}

// TimeoutScore is the scheduler-computed timeout case. It prices the
// house's initial dirt, not whatever dirt was left when the deadline
// fired.
func TimeoutScore(maxSteps, initialDirt int) int {
	return 2*maxSteps + initialDirt*DirtFactor + TimeoutPenalty
}
