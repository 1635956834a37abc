package env

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/lizardbyte/shinebrew/pkgs/platform"
)

// WorkDir returns the shinebrew state directory, creating it if needed.
func WorkDir() (string, error) {
	userCacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(userCacheDir, ".shinebrew")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}
	return dir, nil
}

// LogDir is where build logs are written.
func LogDir() (string, error) {
	work, err := WorkDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(work, "logs")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}
	return dir, nil
}

// HomebrewPrefix returns $HOMEBREW_PREFIX, or the default root for p.
func HomebrewPrefix(p platform.Platform) string {
	if v := os.Getenv("HOMEBREW_PREFIX"); v != "" {
		return v
	}
	switch {
	case p.IsLinux():
		return "/home/linuxbrew/.linuxbrew"
	case p.IsIntel():
		return "/usr/local"
	}
	return "/opt/homebrew"
}

// CellarPrefix is the keg a formula version installs into.
func CellarPrefix(root, name, version string) string {
	return filepath.Join(root, "Cellar", name, version)
}

// Snapshot returns the current process environment as a map.
func Snapshot() map[string]string {
	vars := os.Environ()
	m := make(map[string]string, len(vars))
	for _, kv := range vars {
		if k, v, ok := strings.Cut(kv, "="); ok && k != "" {
			m[k] = v
		}
	}
	return m
}
