// Package build runs the ordered install steps of a plan.
package build

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/lizardbyte/shinebrew/internal/plan"
	"github.com/lizardbyte/shinebrew/pkgs/buildsys"
)

// Toolchain runs a single step and reports the process exit status.
type Toolchain interface {
	Run(ctx context.Context, step string, cmd buildsys.Command, env map[string]string) (int, error)
}

// StepError reports the first step that failed. Steps after it never ran and
// nothing already installed is rolled back.
type StepError struct {
	Step       string
	ExitStatus int
	Err        error
}

func (e *StepError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("step %s exited with status %d", e.Step, e.ExitStatus)
	}
	return fmt.Sprintf("step %s exited with status %d: %v", e.Step, e.ExitStatus, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Result describes a completed run.
type Result struct {
	Prefix    string
	Steps     []string
	Artifacts []string
	Elapsed   time.Duration
}

type Executor struct {
	Toolchain Toolchain
	// Progress shows a step progress bar when stderr is a terminal.
	Progress bool
}

// Execute runs steps one at a time with the plan's environment. It stops at
// the first failing step. Cancellation is honored between steps only.
func (e *Executor) Execute(ctx context.Context, p *plan.Plan, steps []Step) (*Result, error) {
	logger := zerolog.Ctx(ctx)
	env := p.Env()
	res := &Result{Prefix: p.Prefix()}
	start := time.Now()
	defer func() { res.Elapsed = time.Since(start) }()

	bar := newProgress(e.Progress, len(steps))
	defer bar.finish()

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("build: stopped before %s: %w", step.Name, err)
		}
		bar.step(step.Name)
		logger.Info().Str("step", step.Name).Msg("starting step")

		status, err := e.Toolchain.Run(ctx, step.Name, step.Cmd, env)
		if err != nil || status != 0 {
			logger.Error().Err(err).Str("step", step.Name).Int("status", status).Msg("step failed")
			return res, &StepError{Step: step.Name, ExitStatus: status, Err: err}
		}
		res.Steps = append(res.Steps, step.Name)
		if step.Artifact != "" {
			res.Artifacts = append(res.Artifacts, step.Artifact)
		}
		bar.done()
	}
	return res, nil
}
