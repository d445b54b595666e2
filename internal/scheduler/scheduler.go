// Package scheduler runs a fixed-size pool of simulation tasks
// concurrently, enforcing a per-task wall-clock deadline independent
// of the worker count, and arbitrating exactly once between a task
// finishing normally and its deadline firing first.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/elektrokombinacija/cleanbot-sim/internal/simulator"
	"github.com/elektrokombinacija/cleanbot-sim/internal/task"
)

// Spec is one unit of work: a named planner/house pair already wired
// into a Simulator, plus the house's max step count and initial dirt
// (needed only for the timeout score formula).
type Spec struct {
	PlannerName string
	HouseName   string
	Sim         *simulator.Simulator
	MaxSteps    int
	InitialDirt int
}

// Scheduler runs a batch of Specs with bounded parallelism, one
// goroutine per task throttled by a counting semaphore, with
// per-task deadlines serviced by time.AfterFunc.
type Scheduler struct {
	sem               *semaphore.Weighted
	deadlinePerStepMs int
	logger            *slog.Logger
}

// New constructs a Scheduler with numWorkers concurrent task slots.
// deadlinePerStepMs is the wall-clock budget per allowed simulation
// step (RunConfig.DeadlinePerStepMs); logger must not be nil.
func New(numWorkers int, deadlinePerStepMs int, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		sem:               semaphore.NewWeighted(int64(numWorkers)),
		deadlinePerStepMs: deadlinePerStepMs,
		logger:            logger,
	}
}

// Run executes every Spec to completion (or timeout) and returns one
// task.Outcome per Spec, in the same order as specs. It blocks until
// every task has published an outcome.
func (s *Scheduler) Run(ctx context.Context, specs []Spec) []task.Outcome {
	outcomes := make([]task.Outcome, len(specs))
	var wg sync.WaitGroup
	wg.Add(len(specs))

	for i, spec := range specs {
		if err := s.sem.Acquire(ctx, 1); err != nil {
			// The run context was cancelled before this task could even
			// start; record it as a timeout with no work done.
			outcomes[i] = task.Outcome{TimedOut: true, Score: simulator.TimeoutScore(spec.MaxSteps, spec.InitialDirt)}
			wg.Done()
			continue
		}

		go s.runOne(ctx, spec, &outcomes[i], &wg)
	}

	wg.Wait()
	return outcomes
}

// runOne drives a single task. The latch and semaphore are released by
// whichever side wins the task's end-of-life CAS, not by this
// goroutine returning: a planner that never returns from NextStep
// leaves this goroutine permanently blocked inside runSimulator (a
// synchronous Go goroutine cannot be preempted from outside), but the
// timer path must still be able to unblock Run() and free the permit.
func (s *Scheduler) runOne(ctx context.Context, spec Spec, out *task.Outcome, wg *sync.WaitGroup) {
	taskCtx, cancel := context.WithCancel(ctx)
	t := task.New(spec.PlannerName, spec.HouseName, spec.Sim, cancel)

	finish := func(outcome task.Outcome) {
		if !t.TryEnd(outcome) {
			return
		}
		published := t.Outcome()
		*out = published
		if published.Err != nil {
			s.logger.Error("task failed",
				slog.String("task_id", t.ID),
				slog.String("planner", spec.PlannerName),
				slog.String("house", spec.HouseName),
				slog.String("error", published.Err.Error()))
		} else if published.TimedOut {
			s.logger.Warn("task timed out",
				slog.String("task_id", t.ID),
				slog.String("planner", spec.PlannerName),
				slog.String("house", spec.HouseName))
		} else {
			s.logger.Debug("task finished",
				slog.String("task_id", t.ID),
				slog.String("planner", spec.PlannerName),
				slog.String("house", spec.HouseName),
				slog.Int("score", published.Score))
		}
		wg.Done()
		s.sem.Release(1)
	}

	deadline := time.Duration(spec.MaxSteps*s.deadlinePerStepMs) * time.Millisecond
	timer := time.AfterFunc(deadline, func() {
		finish(task.Outcome{
			TimedOut: true,
			Score:    simulator.TimeoutScore(spec.MaxSteps, spec.InitialDirt),
		})
		cancel()
	})

	s.logger.Debug("task started",
		slog.String("task_id", t.ID),
		slog.String("planner", spec.PlannerName),
		slog.String("house", spec.HouseName))

	result, err := s.runSimulator(taskCtx, spec.Sim)
	timer.Stop()

	outcome := task.Outcome{Err: err, Result: result}
	if err == nil {
		outcome.Score = result.Score
	}
	finish(outcome)
}

// runSimulator runs sim.Run, converting a panic inside it into an
// error outcome instead of crashing the whole batch: a worker fault is
// a fatal programming error, but one task's bug should not take down
// every other task's result.
func (s *Scheduler) runSimulator(ctx context.Context, sim *simulator.Simulator) (result simulator.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("scheduler: task panicked: %v", r)
		}
	}()
	return sim.Run(ctx)
}
