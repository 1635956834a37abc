package vcs

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not found in PATH")
	}
}

func git(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=test", "GIT_AUTHOR_EMAIL=test@example.com",
		"GIT_COMMITTER_NAME=test", "GIT_COMMITTER_EMAIL=test@example.com",
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v: %v\n%s", args, err, out)
	}
}

func getHeadCommit(t *testing.T, dir string) string {
	t.Helper()
	out, err := exec.Command("git", "-C", dir, "rev-parse", "HEAD").Output()
	if err != nil {
		t.Fatalf("rev-parse: %v", err)
	}
	return string(out[:len(out)-1])
}

func initRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	git(t, dir, "init", "-q", "-b", "master")
	if err := os.WriteFile(filepath.Join(dir, "README"), []byte("x\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	git(t, dir, "add", "README")
	git(t, dir, "commit", "-q", "-m", "init")
	return dir
}

func TestGitVCS_Head(t *testing.T) {
	requireGit(t)
	dir := initRepo(t)

	rev, err := NewGitVCS().Head(context.Background(), dir)
	if err != nil {
		t.Fatalf("Head failed: %v", err)
	}
	if rev.Commit != getHeadCommit(t, dir) {
		t.Errorf("Commit = %q, want %q", rev.Commit, getHeadCommit(t, dir))
	}
	if rev.Branch != "master" {
		t.Errorf("Branch = %q, want master", rev.Branch)
	}
	if rev.Tag != "" {
		t.Errorf("Tag = %q, want empty", rev.Tag)
	}
}

func TestGitVCS_HeadTaggedDetached(t *testing.T) {
	requireGit(t)
	dir := initRepo(t)
	git(t, dir, "tag", "v2025.102.32311")
	git(t, dir, "checkout", "-q", "--detach")

	rev, err := NewGitVCS().Head(context.Background(), dir)
	if err != nil {
		t.Fatalf("Head failed: %v", err)
	}
	if rev.Branch != "" {
		t.Errorf("Branch = %q, want empty for detached HEAD", rev.Branch)
	}
	if rev.Tag != "v2025.102.32311" {
		t.Errorf("Tag = %q", rev.Tag)
	}
}

func TestGitVCS_HeadNotRepo(t *testing.T) {
	requireGit(t)
	_, err := NewGitVCS().Head(context.Background(), t.TempDir())
	if !errors.Is(err, ErrNotRepo) {
		t.Errorf("Head() error = %v, want ErrNotRepo", err)
	}
}

func TestWithGitPath(t *testing.T) {
	_, err := NewGitVCS(WithGitPath("shinebrew-no-such-git")).Head(context.Background(), t.TempDir())
	if !errors.Is(err, ErrNotRepo) {
		t.Errorf("Head() with missing git = %v, want ErrNotRepo", err)
	}
}
