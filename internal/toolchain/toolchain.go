// Package toolchain runs build commands as subprocesses.
package toolchain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"os/exec"
	"slices"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"github.com/lizardbyte/shinebrew/pkgs/buildsys"
)

// Runner executes one command per build step. Commands run to completion:
// the context is only consulted for logging, a running step is never killed.
type Runner struct {
	stdout io.Writer
	stderr io.Writer
	log    io.Writer
	quiet  bool
}

// Opt customizes a Runner.
type Opt func(r *Runner)

// WithOutput sets where subprocess output goes.
func WithOutput(stdout, stderr io.Writer) Opt {
	return func(r *Runner) {
		r.stdout = stdout
		r.stderr = stderr
	}
}

// WithLog copies subprocess output to w as well.
func WithLog(w io.Writer) Opt {
	return func(r *Runner) {
		r.log = w
	}
}

// WithoutNoise silences status lines and subprocess output on the terminal.
// Output still reaches the log set by WithLog.
func WithoutNoise() Opt {
	return func(r *Runner) {
		r.quiet = true
	}
}

func New(opts ...Opt) *Runner {
	r := &Runner{stdout: os.Stdout, stderr: os.Stderr}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes cmd with env layered over the current process environment and
// returns the exit status. A command that could not be started reports -1.
func (r *Runner) Run(ctx context.Context, step string, cmd buildsys.Command, env map[string]string) (status int, err error) {
	logger := zerolog.Ctx(ctx).With().Str("step", step).Logger()

	c := exec.Command(cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	c.Env = MergeEnv(os.Environ(), env)
	c.Stdout, c.Stderr = r.writers()

	start := time.Now()
	if !r.quiet {
		logstep(step, cmd.String())
	}
	logger.Debug().Str("cmd", cmd.String()).Str("dir", cmd.Dir).Msg("running")
	if r.log != nil {
		fmt.Fprintf(r.log, "==> %s: %s\n", step, cmd)
	}

	defer func() {
		elapsed := time.Since(start).Round(time.Millisecond)
		logger.Debug().Int("status", status).Dur("elapsed", elapsed).Msg("finished")
		if r.quiet {
			return
		}
		if err != nil {
			color.Red(" ✘ %s\n\n", elapsed)
			return
		}
		color.Green(" ✔ %s\n\n", elapsed)
	}()

	if err = c.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), fmt.Errorf("%s: %w", cmd.Name, err)
		}
		return -1, fmt.Errorf("%s: %w", cmd.Name, err)
	}
	return 0, nil
}

func (r *Runner) writers() (stdout, stderr io.Writer) {
	if !r.quiet {
		stdout, stderr = r.stdout, r.stderr
	}
	if r.log == nil {
		return stdout, stderr
	}
	if stdout == nil {
		return r.log, r.log
	}
	return io.MultiWriter(stdout, r.log), io.MultiWriter(stderr, r.log)
}

// MergeEnv returns base with vars applied on top. Existing keys are replaced
// in place; new keys are appended in sorted order.
func MergeEnv(base []string, vars map[string]string) []string {
	out := make([]string, 0, len(base)+len(vars))
	seen := make(map[string]bool, len(vars))
	for _, kv := range base {
		k, _, _ := strings.Cut(kv, "=")
		if v, ok := vars[k]; ok {
			if !seen[k] {
				out = append(out, k+"="+v)
				seen[k] = true
			}
			continue
		}
		out = append(out, kv)
	}
	for _, k := range slices.Sorted(maps.Keys(vars)) {
		if !seen[k] {
			out = append(out, k+"="+vars[k])
		}
	}
	return out
}

func logstep(step, text string) {
	fmt.Println(
		color.MagentaString(" ⌘"),
		color.New(color.Bold).Sprint(step),
		color.New(color.FgHiBlack).Sprint(text),
	)
}
