package formula

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// BuildInfo identifies the source being built. It is exported to the
// toolchain as BRANCH, BUILD_VERSION and COMMIT.
type BuildInfo struct {
	Branch  string `yaml:"branch"`
	Version string `yaml:"version"`
	Commit  string `yaml:"commit"`
}

// Validate checks that Version is a semantic version (a leading "v" is
// optional) and Commit looks like a hex object name.
func (b BuildInfo) Validate() error {
	if b.Version != "" {
		if !semver.IsValid(canonical(b.Version)) {
			return fmt.Errorf("build version %q is not a semantic version", b.Version)
		}
	}
	if b.Commit != "" {
		if len(b.Commit) < 7 || len(b.Commit) > 64 {
			return fmt.Errorf("commit %q: unexpected length %d", b.Commit, len(b.Commit))
		}
		for _, r := range b.Commit {
			if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
				return fmt.Errorf("commit %q: not a hex object name", b.Commit)
			}
		}
	}
	return nil
}

// Merge returns b with every non-empty field of o applied on top.
func (b BuildInfo) Merge(o BuildInfo) BuildInfo {
	if o.Branch != "" {
		b.Branch = o.Branch
	}
	if o.Version != "" {
		b.Version = o.Version
	}
	if o.Commit != "" {
		b.Commit = o.Commit
	}
	return b
}

// Env returns the non-empty build identifiers keyed by variable name.
func (b BuildInfo) Env() map[string]string {
	env := make(map[string]string, 3)
	if b.Branch != "" {
		env["BRANCH"] = b.Branch
	}
	if b.Version != "" {
		env["BUILD_VERSION"] = b.Version
	}
	if b.Commit != "" {
		env["COMMIT"] = b.Commit
	}
	return env
}

func canonical(v string) string {
	if !strings.HasPrefix(v, "v") {
		return "v" + v
	}
	return v
}

// CompareVersions compares two formula versions by semantic version
// precedence. A leading "v" is optional. An invalid version sorts before
// every valid one.
func CompareVersions(a, b string) int {
	return semver.Compare(canonical(a), canonical(b))
}
