// Package vcs reads the revision of a local source checkout. It never
// fetches.
package vcs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrNotRepo is returned when dir is not inside a working tree.
var ErrNotRepo = errors.New("not a git working tree")

// Revision identifies the checked-out source.
type Revision struct {
	Commit string
	// Branch is empty for a detached HEAD.
	Branch string
	// Tag is set when HEAD is exactly at a tag.
	Tag string
}

// VCS defines the interface for version control operations.
type VCS interface {
	// Head returns the revision checked out in dir.
	Head(ctx context.Context, dir string) (Revision, error)
}

// gitVCS implements VCS using git.
type gitVCS struct {
	git string
}

// GitOption configures gitVCS.
type GitOption func(*gitVCS)

// WithGitPath sets a custom git executable path.
func WithGitPath(path string) GitOption {
	return func(g *gitVCS) {
		g.git = path
	}
}

// NewGitVCS creates a new git VCS instance.
func NewGitVCS(opts ...GitOption) VCS {
	g := &gitVCS{git: "git"}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *gitVCS) Head(ctx context.Context, dir string) (Revision, error) {
	inside, err := g.output(ctx, dir, "rev-parse", "--is-inside-work-tree")
	if err != nil || strings.TrimSpace(inside) != "true" {
		return Revision{}, fmt.Errorf("%s: %w", dir, ErrNotRepo)
	}

	commit, err := g.output(ctx, dir, "rev-parse", "HEAD")
	if err != nil {
		return Revision{}, fmt.Errorf("resolve HEAD: %w", err)
	}
	rev := Revision{Commit: strings.TrimSpace(commit)}

	// symbolic-ref fails on a detached HEAD.
	if branch, err := g.output(ctx, dir, "symbolic-ref", "--short", "-q", "HEAD"); err == nil {
		rev.Branch = strings.TrimSpace(branch)
	}
	if tag, err := g.output(ctx, dir, "describe", "--tags", "--exact-match", "HEAD"); err == nil {
		rev.Tag = strings.TrimSpace(tag)
	}
	return rev, nil
}

func (g *gitVCS) output(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, g.git, args...)
	if dir != "" {
		cmd.Dir = dir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("%s", msg)
		}
		return "", err
	}
	return stdout.String(), nil
}
