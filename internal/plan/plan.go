// Package plan turns a formula, a platform and resolved options into the
// exact CMake definitions and environment of one build.
package plan

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/lizardbyte/shinebrew/formula"
	"github.com/lizardbyte/shinebrew/internal/options"
	"github.com/lizardbyte/shinebrew/internal/registry"
	"github.com/lizardbyte/shinebrew/pkgs/platform"
)

// Input is everything a plan depends on. Environ is a snapshot of the
// variables present before the build; it is read, never modified.
type Input struct {
	Formula  *formula.Formula
	Platform platform.Platform
	Options  options.Resolved
	Prefix   string
	Locator  registry.Locator
	Environ  map[string]string
	Info     formula.BuildInfo
}

// Plan is the frozen result of Build. All accessors return copies.
type Plan struct {
	platform platform.Platform
	prefix   string
	matrix   string
	flags    []formula.Flag
	env      map[string]string
	notes    []string
}

// Build resolves in into a Plan:
//
//  1. the formula's base flags,
//  2. each option's on/off flags in declared order,
//  3. each enabled option's environment deltas, appended to prior values,
//  4. platform flags, which replace any earlier value for the same key.
//
// The same Input always yields an equal Plan.
func Build(in Input) (*Plan, error) {
	if in.Formula == nil {
		return nil, errors.New("plan: no formula")
	}
	if !in.Platform.Valid() {
		return nil, errors.New("plan: platform is not set")
	}
	if in.Prefix == "" {
		return nil, errors.New("plan: empty install prefix")
	}

	p := &Plan{
		platform: in.Platform,
		prefix:   in.Prefix,
		env:      in.Info.Env(),
	}
	m := formula.Matrix{
		Require: map[string][]string{
			"os":   {string(in.Platform.OS)},
			"arch": {in.Platform.Arch},
		},
		Options: in.Options.Matrix(),
	}
	p.matrix = m.String()

	var expandErr error
	expand := func(s string) string {
		return os.Expand(s, func(key string) string {
			switch {
			case key == "prefix":
				return in.Prefix
			case strings.HasPrefix(key, "opt:"):
				if in.Locator == nil {
					expandErr = fmt.Errorf("plan: %q needs a library locator", key)
					return ""
				}
				return in.Locator.Prefix(strings.TrimPrefix(key, "opt:"))
			}
			expandErr = fmt.Errorf("plan: unknown placeholder ${%s}", key)
			return ""
		})
	}

	for _, f := range in.Formula.BaseFlags {
		p.setFlag(formula.Set(f.Key, expand(f.Value)))
	}

	for _, o := range in.Formula.Options {
		on := in.Options.Enabled(o.Name)
		flags, note := o.OffFlags, o.OffNote
		if on {
			flags, note = o.OnFlags, o.OnNote
		}
		for _, f := range flags {
			p.setFlag(formula.Set(f.Key, expand(f.Value)))
		}
		if note != "" {
			p.notes = append(p.notes, note)
		}
		if !on {
			continue
		}
		for _, d := range o.Env {
			if in.Locator == nil {
				return nil, fmt.Errorf("plan: option %s needs a library locator for %s", o.Name, d.Library)
			}
			dir := filepath.Join(in.Locator.Prefix(d.Library), d.Subdir)
			p.appendEnv(d.Key, d.Prefix+dir, d.Mode, in.Environ)
		}
	}

	for _, f := range in.Formula.PlatformFlags[in.Platform.OS] {
		p.setFlag(formula.Set(f.Key, expand(f.Value)))
	}

	if expandErr != nil {
		return nil, expandErr
	}
	return p, nil
}

// setFlag replaces the value of an existing key in place or appends f.
func (p *Plan) setFlag(f formula.Flag) {
	for i := range p.flags {
		if p.flags[i].Key == f.Key {
			p.flags[i].Value = f.Value
			return
		}
	}
	p.flags = append(p.flags, f)
}

// appendEnv adds value after whatever the plan or the prior environment
// already holds for key.
func (p *Plan) appendEnv(key, value string, mode formula.EnvMode, prior map[string]string) {
	cur, ok := p.env[key]
	if !ok {
		cur = prior[key]
	}
	sep := " "
	if mode == formula.AppendPath {
		sep = string(os.PathListSeparator)
	}
	if cur != "" {
		value = cur + sep + value
	}
	p.env[key] = value
}

func (p *Plan) Platform() platform.Platform { return p.platform }

// Prefix is the directory every artifact is installed under.
func (p *Plan) Prefix() string { return p.prefix }

// Matrix is the stable key of this (platform, options) pair.
func (p *Plan) Matrix() string { return p.matrix }

func (p *Plan) Flags() []formula.Flag { return slices.Clone(p.flags) }

// Flag returns the value assigned to key.
func (p *Plan) Flag(key string) (string, bool) {
	for _, f := range p.flags {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// Args renders the flags as cmake definitions in plan order.
func (p *Plan) Args() []string {
	args := make([]string, 0, len(p.flags))
	for _, f := range p.flags {
		args = append(args, f.Arg())
	}
	return args
}

func (p *Plan) Env() map[string]string { return maps.Clone(p.env) }

// EnvKeys returns the environment variable names, sorted.
func (p *Plan) EnvKeys() []string {
	return slices.Sorted(maps.Keys(p.env))
}

// Notes are progress messages describing option decisions.
func (p *Plan) Notes() []string { return slices.Clone(p.notes) }

// Equal compares flags (in order) and the environment mapping by value.
func (p *Plan) Equal(o *Plan) bool {
	if p == nil || o == nil {
		return p == o
	}
	return p.platform == o.platform &&
		p.prefix == o.prefix &&
		slices.Equal(p.flags, o.flags) &&
		maps.Equal(p.env, o.env)
}
