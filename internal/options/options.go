// Package options resolves user-requested build options against a formula's
// declared options.
package options

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/lizardbyte/shinebrew/formula"
)

// Request maps an option spelling (name, with-name or without-name) to an
// explicit value. Absent keys fall back to the declared default.
type Request map[string]bool

// UnknownOptionError reports a requested option the formula does not declare.
type UnknownOptionError struct {
	Name  string
	Known []string
}

func (e *UnknownOptionError) Error() string {
	return fmt.Sprintf("unknown option %q (known: %s)", e.Name, strings.Join(e.Known, ", "))
}

// ConflictError reports two requests that set the same option in opposite
// directions.
type ConflictError struct {
	Option string
	First  string
	Second string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflicting options %q and %q for %s", e.First, e.Second, e.Option)
}

type spelling struct {
	option  string
	negated bool
}

// Resolved is the final value of every declared option. It is read-only.
type Resolved struct {
	names    []string
	values   map[string]bool
	explicit map[string]string
}

// Resolve applies req to decls. Explicit values win over defaults; two
// spellings of one option that disagree fail with *ConflictError; unknown
// spellings fail with *UnknownOptionError.
func Resolve(decls []formula.Option, req Request) (Resolved, error) {
	spellings := make(map[string]spelling, len(decls)*3)
	for _, o := range decls {
		spellings[o.Name] = spelling{option: o.Name}
		spellings[o.WithName()] = spelling{option: o.Name}
		spellings[o.WithoutName()] = spelling{option: o.Name, negated: true}
	}

	r := Resolved{
		names:    make([]string, 0, len(decls)),
		values:   make(map[string]bool, len(decls)),
		explicit: make(map[string]string),
	}

	for _, key := range slices.Sorted(maps.Keys(req)) {
		sp, ok := spellings[key]
		if !ok {
			return Resolved{}, &UnknownOptionError{Name: key, Known: slices.Sorted(maps.Keys(spellings))}
		}
		v := req[key] != sp.negated
		if prev, ok := r.explicit[sp.option]; ok {
			if r.values[sp.option] != v {
				return Resolved{}, &ConflictError{Option: sp.option, First: prev, Second: key}
			}
			continue
		}
		r.values[sp.option] = v
		r.explicit[sp.option] = key
	}

	for _, o := range decls {
		r.names = append(r.names, o.Name)
		if _, ok := r.explicit[o.Name]; !ok {
			r.values[o.Name] = o.Default
		}
	}
	return r, nil
}

// Enabled reports the resolved value of name.
func (r Resolved) Enabled(name string) bool {
	return r.values[name]
}

// Explicit reports whether the user set name rather than taking the default.
func (r Resolved) Explicit(name string) bool {
	_, ok := r.explicit[name]
	return ok
}

// Names returns the option names in declared order.
func (r Resolved) Names() []string {
	return slices.Clone(r.names)
}

// Equal compares resolved values; how a value was spelled is ignored.
func (r Resolved) Equal(o Resolved) bool {
	return slices.Equal(r.names, o.names) && maps.Equal(r.values, o.values)
}

// Matrix returns the option dimension of a formula.Matrix, e.g.
// {"docs": {"docsOFF"}}.
func (r Resolved) Matrix() map[string][]string {
	if len(r.names) == 0 {
		return nil
	}
	m := make(map[string][]string, len(r.names))
	for _, n := range r.names {
		state := "OFF"
		if r.values[n] {
			state = "ON"
		}
		m[n] = []string{n + state}
	}
	return m
}

func (r Resolved) String() string {
	parts := make([]string, 0, len(r.names))
	for _, n := range r.names {
		parts = append(parts, n+"="+strconv.FormatBool(r.values[n]))
	}
	return strings.Join(parts, " ")
}

// ParseArgs builds a Request from command line tokens: "--with-docs",
// "without-static-boost", "docs=false" or "--static-boost=on". The same key
// given twice with different values is a *ConflictError.
func ParseArgs(args []string) (Request, error) {
	req := make(Request, len(args))
	for _, arg := range args {
		key, val, hasVal := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if key == "" {
			return nil, fmt.Errorf("invalid option %q", arg)
		}
		v := true
		if hasVal {
			b, err := parseBool(val)
			if err != nil {
				return nil, fmt.Errorf("option %s: %w", key, err)
			}
			v = b
		}
		if prev, ok := req[key]; ok && prev != v {
			return nil, &ConflictError{Option: key, First: key, Second: key}
		}
		req[key] = v
	}
	return req, nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "yes", "y":
		return true, nil
	case "off", "no", "n":
		return false, nil
	}
	return strconv.ParseBool(s)
}
