// Package catalog indexes a formula's dependencies by platform and kind.
package catalog

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/lizardbyte/shinebrew/formula"
	"github.com/lizardbyte/shinebrew/pkgs/platform"
)

// Catalog is an immutable set of dependencies.
type Catalog struct {
	deps []formula.Dependency
}

// New builds a catalog. Every dependency must name itself, declare exactly
// one kind and apply to at least one platform; a name may appear once per kind.
func New(deps []formula.Dependency) (*Catalog, error) {
	seen := make(map[string]formula.Kind, len(deps))
	c := &Catalog{deps: make([]formula.Dependency, 0, len(deps))}
	for _, d := range deps {
		if d.Name == "" {
			return nil, fmt.Errorf("catalog: dependency without a name")
		}
		if len(d.Platforms) == 0 {
			return nil, fmt.Errorf("catalog: dependency %s applies to no platform", d.Name)
		}
		switch d.Kind {
		case formula.Build, formula.Runtime, formula.Recommended:
		default:
			return nil, fmt.Errorf("catalog: dependency %s has invalid kind %d", d.Name, d.Kind)
		}
		if seen[d.Name]&d.Kind != 0 {
			return nil, fmt.Errorf("catalog: dependency %s declared twice as %s", d.Name, d.Kind)
		}
		seen[d.Name] |= d.Kind
		d.Platforms = slices.Clone(d.Platforms)
		c.deps = append(c.deps, d)
	}
	slices.SortStableFunc(c.deps, func(a, b formula.Dependency) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.Kind, b.Kind))
	})
	return c, nil
}

// DependenciesFor returns the dependencies of a kind in kinds that apply to
// p, sorted by name.
func (c *Catalog) DependenciesFor(p platform.Platform, kinds formula.Kind) []formula.Dependency {
	var out []formula.Dependency
	for _, d := range c.deps {
		if d.Kind&kinds != 0 && d.AppliesTo(p.OS) {
			out = append(out, d)
		}
	}
	return out
}

// Names returns the dependency names of deps, preserving order.
func Names(deps []formula.Dependency) []string {
	names := make([]string, 0, len(deps))
	for _, d := range deps {
		names = append(names, d.Name)
	}
	return names
}

// ParseKind accepts "build", "runtime", "recommended" and "all".
func ParseKind(s string) (formula.Kind, error) {
	switch s {
	case "", "all":
		return formula.AnyKind, nil
	case "build":
		return formula.Build, nil
	case "runtime", "run":
		return formula.Runtime, nil
	case "recommended":
		return formula.Recommended, nil
	}
	return 0, fmt.Errorf("unknown dependency kind %q", s)
}
