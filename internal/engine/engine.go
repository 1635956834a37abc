// Package engine drives one install run from option resolution to caveats.
package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lizardbyte/shinebrew/formula"
	"github.com/lizardbyte/shinebrew/internal/build"
	"github.com/lizardbyte/shinebrew/internal/catalog"
	"github.com/lizardbyte/shinebrew/internal/caveat"
	"github.com/lizardbyte/shinebrew/internal/env"
	"github.com/lizardbyte/shinebrew/internal/options"
	"github.com/lizardbyte/shinebrew/internal/plan"
	"github.com/lizardbyte/shinebrew/internal/precond"
	"github.com/lizardbyte/shinebrew/internal/registry"
	"github.com/lizardbyte/shinebrew/internal/vcs"
	"github.com/lizardbyte/shinebrew/pkgs/platform"
)

// Stage names reported by StageError.
const (
	StageLookup    = "lookup"
	StageOptions   = "options"
	StageConflicts = "conflicts"
	StageCatalog   = "catalog"
	StagePlan      = "plan"
	StageValidate  = "preconditions"
	StageExecute   = "execute"
	StageRecord    = "record"
)

// StageError names the stage a run failed in. The cause is kept intact for
// errors.As.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string { return e.Stage + ": " + e.Err.Error() }

func (e *StageError) Unwrap() error { return e.Err }

func stageErr(stage string, err error) error {
	return &StageError{Stage: stage, Err: err}
}

// Request is one run's input.
type Request struct {
	Formula  string
	Options  options.Request
	Platform platform.Platform
	// Prefix overrides the Cellar keg under HomebrewPrefix.
	Prefix         string
	HomebrewPrefix string
	Source         string
	// Build overrides the identifiers declared by the formula and read
	// from the source checkout.
	Build formula.BuildInfo
}

// Outcome is everything a run decided and, for installs, did.
type Outcome struct {
	RunID   string
	Formula *formula.Formula
	Options options.Resolved
	Deps    []formula.Dependency
	Plan    *plan.Plan
	Steps   []build.Step
	Result  *build.Result
	Caveats []caveat.Block
}

// Engine wires the collaborators of a run. Toolchain and Registry are only
// needed by Install.
type Engine struct {
	Lookup    func(name string) (*formula.Formula, bool)
	Toolchain build.Toolchain
	Registry  *registry.Registry
	// Installed answers precondition queries. Nil uses the Homebrew opt dir.
	Installed registry.Checker
	// Locator resolves library prefixes. Nil uses Installed when it is also a
	// Locator, otherwise the Homebrew opt dir.
	Locator registry.Locator
	// VCS reads the source revision. Nil skips it.
	VCS      vcs.VCS
	Environ  map[string]string
	Progress bool
}

// Plan resolves and validates req without running any step.
func (e *Engine) Plan(ctx context.Context, req Request) (*Outcome, error) {
	out := &Outcome{RunID: uuid.NewString()}
	logger := zerolog.Ctx(ctx).With().Str("run", out.RunID).Logger()
	ctx = logger.WithContext(ctx)

	f, ok := e.Lookup(req.Formula)
	if !ok {
		return out, stageErr(StageLookup, fmt.Errorf("no formula named %q", req.Formula))
	}
	out.Formula = f
	logger.Info().Str("formula", f.Name).Str("platform", req.Platform.String()).Msg("planning")

	resolved, err := options.Resolve(f.Options, req.Options)
	if err != nil {
		return out, stageErr(StageOptions, err)
	}
	out.Options = resolved

	if e.Registry != nil {
		if err := registry.CheckConflicts(f, e.Registry.Variants(), e.Lookup); err != nil {
			return out, stageErr(StageConflicts, err)
		}
	}

	cat, err := catalog.New(f.Deps)
	if err != nil {
		return out, stageErr(StageCatalog, err)
	}
	out.Deps = cat.DependenciesFor(req.Platform, formula.AnyKind)

	brew := req.HomebrewPrefix
	if brew == "" {
		brew = env.HomebrewPrefix(req.Platform)
	}
	opt := registry.OptDir{Root: brew}
	locator, installed := e.Locator, e.Installed
	if locator == nil {
		// A checker that can also locate what it found answers both.
		if l, ok := installed.(registry.Locator); ok {
			locator = l
		} else {
			locator = opt
		}
	}
	if installed == nil {
		installed = opt
	}

	info := e.buildInfo(ctx, f, req)
	if err := info.Validate(); err != nil {
		return out, stageErr(StagePlan, err)
	}
	prefix := req.Prefix
	if prefix == "" {
		prefix = env.CellarPrefix(brew, f.Name, f.Version)
	}
	p, err := plan.Build(plan.Input{
		Formula:  f,
		Platform: req.Platform,
		Options:  resolved,
		Prefix:   prefix,
		Locator:  locator,
		Environ:  e.Environ,
		Info:     info,
	})
	if err != nil {
		return out, stageErr(StagePlan, err)
	}
	out.Plan = p
	for _, note := range p.Notes() {
		logger.Info().Msg(note)
	}

	if err := precond.New(installed).Validate(f, resolved, req.Platform); err != nil {
		return out, stageErr(StageValidate, err)
	}

	source := req.Source
	if source == "" {
		source = "."
	}
	out.Steps = build.Steps(f, p, source)
	return out, nil
}

// Install plans req, runs every step, records the variant and returns the
// caveats. Nothing runs unless planning succeeds.
func (e *Engine) Install(ctx context.Context, req Request) (*Outcome, error) {
	out, err := e.Plan(ctx, req)
	if err != nil {
		return out, err
	}
	logger := zerolog.Ctx(ctx).With().Str("run", out.RunID).Str("formula", out.Formula.Name).Logger()
	ctx = logger.WithContext(ctx)

	if e.Registry != nil {
		warnReinstall(logger, e.Registry, out)
	}
	if e.Toolchain == nil {
		return out, stageErr(StageExecute, fmt.Errorf("no toolchain"))
	}
	ex := &build.Executor{Toolchain: e.Toolchain, Progress: e.Progress}
	res, err := ex.Execute(ctx, out.Plan, out.Steps)
	out.Result = res
	if err != nil {
		return out, stageErr(StageExecute, err)
	}
	logger.Info().Dur("elapsed", res.Elapsed).Str("prefix", res.Prefix).Msg("installed")

	if e.Registry != nil {
		err := e.Registry.Record(registry.Entry{
			Name:    out.Formula.Name,
			Version: out.Formula.Version,
			Matrix:  out.Plan.Matrix(),
			Prefix:  out.Plan.Prefix(),
		})
		if err != nil {
			return out, stageErr(StageRecord, err)
		}
	}

	out.Caveats = caveat.Report(out.Formula, req.Platform, out.Plan.Prefix())
	return out, nil
}

// buildInfo layers the formula's identifiers, the source checkout and the
// request, later ones winning field by field.
func (e *Engine) buildInfo(ctx context.Context, f *formula.Formula, req Request) formula.BuildInfo {
	info := f.Build
	if e.VCS != nil && req.Source != "" {
		rev, err := e.VCS.Head(ctx, req.Source)
		if err != nil {
			zerolog.Ctx(ctx).Debug().Err(err).Msg("source revision unavailable")
		} else {
			tagged := formula.BuildInfo{Version: rev.Tag}
			if tagged.Validate() != nil {
				tagged.Version = ""
			}
			info = info.Merge(formula.BuildInfo{Branch: rev.Branch, Version: tagged.Version, Commit: rev.Commit})
		}
	}
	return info.Merge(req.Build)
}

// warnReinstall logs when the run replaces a recorded install of the same
// formula.
func warnReinstall(logger zerolog.Logger, reg *registry.Registry, out *Outcome) {
	prev, ok := reg.Get(out.Formula.Name)
	if !ok {
		return
	}
	c := formula.CompareVersions(prev.Version, out.Formula.Version)
	switch {
	case c > 0:
		logger.Warn().Str("installed", prev.Version).Msg("downgrading")
	case c == 0 && prev.Matrix == out.Plan.Matrix():
		logger.Info().Msg("reinstalling the same variant")
	default:
		logger.Info().Str("installed", prev.Version).Str("matrix", prev.Matrix).Msg("replacing installed variant")
	}
}
