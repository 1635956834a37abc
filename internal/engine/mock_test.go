package engine

import (
	"context"
	"errors"

	"github.com/lizardbyte/shinebrew/formula"
	"github.com/lizardbyte/shinebrew/internal/vcs"
	"github.com/lizardbyte/shinebrew/pkgs/buildsys"
)

// fakeToolchain records step names and fails those listed in fail.
type fakeToolchain struct {
	steps []string
	env   []map[string]string
	fail  map[string]int
}

func (f *fakeToolchain) Run(_ context.Context, step string, _ buildsys.Command, env map[string]string) (int, error) {
	f.steps = append(f.steps, step)
	f.env = append(f.env, env)
	if status, ok := f.fail[step]; ok {
		return status, errors.New("exit status")
	}
	return 0, nil
}

// installedSet is a precondition checker over a fixed set of names.
type installedSet map[string]bool

func (s installedSet) IsInstalled(name string) bool { return s[name] }

type fakeVCS struct {
	rev vcs.Revision
	err error
}

func (f fakeVCS) Head(context.Context, string) (vcs.Revision, error) { return f.rev, f.err }

func formulaInfo(version string) formula.BuildInfo {
	return formula.BuildInfo{Version: version}
}

// libFinder finds the libraries in found, all under one prefix.
type libFinder struct {
	found  map[string]bool
	prefix string
}

func (p libFinder) IsInstalled(name string) bool { return p.found[name] }

func (p libFinder) Prefix(string) string { return p.prefix }
