package registry

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Checker answers whether a library or package is installed.
type Checker interface {
	IsInstalled(name string) bool
}

// CheckerFunc adapts a function to Checker.
type CheckerFunc func(name string) bool

func (f CheckerFunc) IsInstalled(name string) bool { return f(name) }

// Locator maps an installed library to its install prefix.
type Locator interface {
	Prefix(name string) string
}

// OptDir searches a Homebrew-style layout where every installed package is
// linked at <Root>/opt/<name>.
type OptDir struct {
	Root string
}

// Prefix returns <Root>/opt/<name> whether or not it exists.
func (o OptDir) Prefix(name string) string {
	return filepath.Join(o.Root, "opt", name)
}

// IsInstalled reports whether the opt link resolves to a directory.
func (o OptDir) IsInstalled(name string) bool {
	fi, err := os.Stat(o.Prefix(name))
	return err == nil && fi.IsDir()
}

// PkgConfig asks pkg-config whether a module is known. Modules maps a
// package name to its pkg-config module when they differ (icu4c -> icu-uc).
type PkgConfig struct {
	Bin     string
	Modules map[string]string
}

func (p PkgConfig) command(name string, args ...string) *exec.Cmd {
	bin := p.Bin
	if bin == "" {
		bin = "pkg-config"
	}
	mod := name
	if m, ok := p.Modules[name]; ok {
		mod = m
	}
	return exec.Command(bin, append(args, mod)...)
}

// IsInstalled runs "pkg-config --exists". A missing pkg-config binary counts
// as not installed.
func (p PkgConfig) IsInstalled(name string) bool {
	return p.command(name, "--exists").Run() == nil
}

// Prefix returns the module's prefix variable, or "" when pkg-config does
// not know it.
func (p PkgConfig) Prefix(name string) string {
	out, err := p.command(name, "--variable=prefix").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

// Finder detects a library and locates its prefix.
type Finder interface {
	Checker
	Locator
}

type firstFound []Finder

// FirstFound combines finders so the prefix of a library comes from the same
// finder that found it. Finders are tried in order, and one that finds a
// library without a prefix for it is skipped. A library no finder finds is
// located by the first finder.
func FirstFound(finders ...Finder) Finder {
	return firstFound(finders)
}

func (f firstFound) IsInstalled(name string) bool {
	_, ok := f.find(name)
	return ok
}

func (f firstFound) Prefix(name string) string {
	if p, ok := f.find(name); ok {
		return p.Prefix(name)
	}
	if len(f) == 0 || f[0] == nil {
		return ""
	}
	return f[0].Prefix(name)
}

func (f firstFound) find(name string) (Finder, bool) {
	for _, p := range f {
		if p != nil && p.IsInstalled(name) && p.Prefix(name) != "" {
			return p, true
		}
	}
	return nil, false
}
