package formula

import (
	"maps"
	"slices"
	"strings"
)

// Matrix is the configuration space of a formula. Require holds platform
// dimensions (os, arch); Options holds option states such as "docsOFF".
//
// A combination joins one value per Require key with "-", in key order,
// then appends the options part after "|":
//
//	amd64-linux|docsOFF-static-boostON
type Matrix struct {
	Require map[string][]string
	Options map[string][]string
}

// product expands dims into every combination, keys in sorted order.
func product(dims map[string][]string) []string {
	if len(dims) == 0 {
		return nil
	}
	out := []string{""}
	for i, k := range slices.Sorted(maps.Keys(dims)) {
		next := make([]string, 0, len(out)*len(dims[k]))
		for _, prefix := range out {
			for _, v := range dims[k] {
				if i > 0 {
					v = prefix + "-" + v
				}
				next = append(next, v)
			}
		}
		out = next
	}
	return out
}

// Combinations lists every point of the matrix.
func (m *Matrix) Combinations() []string {
	req, opts := product(m.Require), product(m.Options)
	switch {
	case len(req) == 0:
		return opts
	case len(opts) == 0:
		return req
	}
	out := make([]string, 0, len(req)*len(opts))
	for _, r := range req {
		for _, o := range opts {
			out = append(out, r+"|"+o)
		}
	}
	return out
}

func size(dims map[string][]string) int {
	if len(dims) == 0 {
		return 0
	}
	n := 1
	for _, v := range dims {
		n *= len(v)
	}
	return n
}

// CombinationCount is len(m.Combinations()) without building them.
func (m *Matrix) CombinationCount() int {
	req, opts := size(m.Require), size(m.Options)
	switch {
	case req == 0:
		return opts
	case opts == 0:
		return req
	}
	return req * opts
}

// String joins all combinations with ",". For the matrix of a single run it
// is that run's stable key.
func (m *Matrix) String() string {
	return strings.Join(m.Combinations(), ",")
}
