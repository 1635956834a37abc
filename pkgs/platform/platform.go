// Package platform identifies the operating system and CPU architecture a
// formula is built for.
package platform

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// OS is a supported target operating system.
type OS string

const (
	Linux OS = "linux"
	MacOS OS = "macos"
)

// ErrUnsupported is returned for operating systems outside of Linux and macOS.
var ErrUnsupported = errors.New("unsupported platform")

// ParseOS accepts the canonical names plus the common aliases used by Go
// (darwin) and by users (mac, osx).
func ParseOS(name string) (OS, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "linux":
		return Linux, nil
	case "macos", "darwin", "mac", "osx":
		return MacOS, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupported, name)
}

// Platform is the target of a single run. The zero value is invalid.
type Platform struct {
	OS   OS
	Arch string
}

// New validates os and normalizes arch.
func New(os OS, arch string) (Platform, error) {
	if os != Linux && os != MacOS {
		return Platform{}, fmt.Errorf("%w: %q", ErrUnsupported, os)
	}
	arch = NormalizeArch(arch)
	if arch == "" {
		return Platform{}, fmt.Errorf("platform %s: empty architecture", os)
	}
	return Platform{OS: os, Arch: arch}, nil
}

// Parse is New for untyped input such as CLI flags.
func Parse(osName, arch string) (Platform, error) {
	os, err := ParseOS(osName)
	if err != nil {
		return Platform{}, err
	}
	return New(os, arch)
}

// Current detects the host platform. On Apple silicon running a translated
// (Rosetta) process the native architecture is reported.
func Current() (Platform, error) {
	os, err := ParseOS(runtime.GOOS)
	if err != nil {
		return Platform{}, err
	}
	arch, err := machine()
	if err != nil || arch == "" {
		arch = runtime.GOARCH
	}
	if os == MacOS && translated() {
		arch = "arm64"
	}
	return New(os, arch)
}

// NormalizeArch maps uname and GOARCH spellings onto GOARCH names.
func NormalizeArch(arch string) string {
	switch a := strings.ToLower(strings.TrimSpace(arch)); a {
	case "x86_64", "x86-64", "amd64", "x64":
		return "amd64"
	case "aarch64", "arm64", "armv8":
		return "arm64"
	case "i386", "i686", "x86", "386":
		return "386"
	default:
		return a
	}
}

// Valid reports whether p was built through New.
func (p Platform) Valid() bool {
	return (p.OS == Linux || p.OS == MacOS) && p.Arch != ""
}

func (p Platform) IsLinux() bool { return p.OS == Linux }

func (p Platform) IsMacOS() bool { return p.OS == MacOS }

// IsIntel reports whether the CPU is an x86 family processor.
func (p Platform) IsIntel() bool {
	return p.Arch == "amd64" || p.Arch == "386"
}

func (p Platform) String() string {
	return string(p.OS) + "/" + p.Arch
}
