// Package precond checks that options with external requirements can be
// satisfied before anything is built.
package precond

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lizardbyte/shinebrew/formula"
	"github.com/lizardbyte/shinebrew/internal/options"
	"github.com/lizardbyte/shinebrew/internal/registry"
	"github.com/lizardbyte/shinebrew/pkgs/platform"
)

// Failure is one unmet requirement of an enabled option.
type Failure struct {
	Option  string
	Missing string
	Hint    string
}

func (f Failure) String() string {
	return fmt.Sprintf("%s requires %s: %s", f.Option, f.Missing, f.Hint)
}

// FailedError collects every unmet requirement found in one pass.
type FailedError struct {
	Failures []Failure
}

func (e *FailedError) Error() string {
	if len(e.Failures) == 1 {
		return "precondition failed: " + e.Failures[0].String()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d preconditions failed:", len(e.Failures))
	for _, f := range e.Failures {
		b.WriteString("\n  - ")
		b.WriteString(f.String())
	}
	return b.String()
}

// Missing returns the missing libraries in report order.
func (e *FailedError) Missing() []string {
	out := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		out = append(out, f.Missing)
	}
	return out
}

// Validator checks option requirements against an installed-package checker.
type Validator struct {
	installed registry.Checker
}

func New(installed registry.Checker) *Validator {
	return &Validator{installed: installed}
}

// Validate checks every enabled option of f in declared order and returns a
// *FailedError listing all unmet requirements, or nil.
func (v *Validator) Validate(f *formula.Formula, r options.Resolved, p platform.Platform) error {
	if !p.Valid() {
		return errors.New("precond: platform is not set")
	}
	if v.installed == nil {
		return errors.New("precond: no installed-package checker")
	}
	var failures []Failure
	for _, o := range f.Options {
		if !r.Enabled(o.Name) {
			continue
		}
		for _, lib := range o.Requires {
			if v.installed.IsInstalled(lib) {
				continue
			}
			failures = append(failures, Failure{Option: o.Name, Missing: lib, Hint: hint(o, lib)})
		}
	}
	if len(failures) > 0 {
		return &FailedError{Failures: failures}
	}
	return nil
}

func hint(o formula.Option, lib string) string {
	if o.Hint != "" {
		return o.Hint
	}
	return fmt.Sprintf("install %s, or disable this option with --%s", lib, o.WithoutName())
}
