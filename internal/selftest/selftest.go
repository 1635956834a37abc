// Package selftest runs a formula's smoke tests against an installed prefix.
package selftest

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lizardbyte/shinebrew/formula"
	"github.com/lizardbyte/shinebrew/pkgs/buildsys"
)

// Runner executes a command and reports its exit status.
type Runner interface {
	Run(ctx context.Context, step string, cmd buildsys.Command, env map[string]string) (int, error)
}

// Result is the outcome of one test command.
type Result struct {
	Name   string
	Cmd    buildsys.Command
	Status int
	Err    error
}

func (r Result) Passed() bool { return r.Err == nil && r.Status == 0 }

// Report holds every test result in declared order.
type Report struct {
	Results []Result
}

// Passed reports whether every test passed. An empty report passes.
func (r *Report) Passed() bool {
	for _, res := range r.Results {
		if !res.Passed() {
			return false
		}
	}
	return true
}

// Err returns nil when every test passed, otherwise an error naming the
// failed tests.
func (r *Report) Err() error {
	var failed []string
	for _, res := range r.Results {
		if !res.Passed() {
			failed = append(failed, fmt.Sprintf("%s (exit status %d)", res.Name, res.Status))
		}
	}
	if len(failed) == 0 {
		return nil
	}
	return errors.New("self-test failed: " + strings.Join(failed, ", "))
}

// Run executes every test of f from <prefix>/bin. A failing test does not
// stop the ones after it.
func Run(ctx context.Context, r Runner, f *formula.Formula, prefix string) *Report {
	rep := &Report{}
	for _, tc := range f.Tests {
		cmd := buildsys.Command{
			Name: filepath.Join(prefix, "bin", tc.Binary),
			Args: tc.Args,
			Dir:  prefix,
		}
		name := "test-" + tc.Binary
		status, err := r.Run(ctx, name, cmd, nil)
		rep.Results = append(rep.Results, Result{Name: name, Cmd: cmd, Status: status, Err: err})
	}
	return rep
}
