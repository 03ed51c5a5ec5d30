package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/pagemill/pagemill/pkg/logger"
)

// Event is the repository event that triggered a run.
type Event string

const (
	EventPush        Event = "push"
	EventPullRequest Event = "pull_request"
)

// Trigger identifies what started a pipeline run.
type Trigger struct {
	Event  Event
	Branch string
}

// Step is one unit of work in a pipeline. Steps run strictly in
// declaration order; Condition, when set, decides per trigger whether
// the step runs at all.
type Step struct {
	Name      string
	Run       func(ctx context.Context) error
	Condition func(Trigger) bool
}

// StepStatus is the outcome of a single step.
type StepStatus int

const (
	StatusPassed StepStatus = iota
	StatusFailed
	StatusSkipped
)

func (s StepStatus) String() string {
	switch s {
	case StatusPassed:
		return "passed"
	case StatusFailed:
		return "failed"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// StepResult records how one step finished.
type StepResult struct {
	Name     string
	Status   StepStatus
	Err      error
	Duration time.Duration
}

// Result is the outcome of a whole pipeline run.
type Result struct {
	Trigger Trigger
	Steps   []StepResult
	Failed  bool
}

// Succeeded reports whether every non-skipped step passed.
func (r Result) Succeeded() bool {
	return !r.Failed
}

// StepStatusByName returns the recorded status for a named step.
func (r Result) StepStatusByName(name string) (StepStatus, bool) {
	for _, s := range r.Steps {
		if s.Name == name {
			return s.Status, true
		}
	}
	return 0, false
}

// Runner executes pipelines.
type Runner struct {
	logger *logger.Logger
}

func NewRunner(log *logger.Logger) *Runner {
	return &Runner{logger: log}
}

// Run executes the steps in order. The first failing step marks the
// run failed and every later step is recorded as skipped; there are no
// retries. A step whose Condition rejects the trigger is skipped
// without affecting the rest of the run.
func (r *Runner) Run(ctx context.Context, trigger Trigger, steps []Step) Result {
	result := Result{Trigger: trigger}

	for _, step := range steps {
		if result.Failed {
			r.logger.Info("Step %q skipped (earlier step failed)", step.Name)
			result.Steps = append(result.Steps, StepResult{Name: step.Name, Status: StatusSkipped})
			continue
		}

		if step.Condition != nil && !step.Condition(trigger) {
			r.logger.Info("Step %q skipped (condition not met for %s on %s)",
				step.Name, trigger.Event, trigger.Branch)
			result.Steps = append(result.Steps, StepResult{Name: step.Name, Status: StatusSkipped})
			continue
		}

		r.logger.Info("Step %q running", step.Name)
		start := time.Now()
		err := step.Run(ctx)
		elapsed := time.Since(start)

		if err != nil {
			r.logger.Warn("Step %q failed after %s: %v", step.Name, elapsed, err)
			result.Failed = true
			result.Steps = append(result.Steps, StepResult{
				Name:     step.Name,
				Status:   StatusFailed,
				Err:      fmt.Errorf("step %q: %w", step.Name, err),
				Duration: elapsed,
			})
			continue
		}

		r.logger.Info("Step %q passed in %s", step.Name, elapsed)
		result.Steps = append(result.Steps, StepResult{
			Name:     step.Name,
			Status:   StatusPassed,
			Duration: elapsed,
		})
	}

	return result
}
