// Package formula declares how a Sunshine variant is built: its options,
// dependencies, CMake flags, post-install actions and caveats. A Formula is
// plain data; resolution and execution live in the internal packages.
package formula

import (
	"slices"

	"github.com/lizardbyte/shinebrew/pkgs/platform"
)

// Kind classifies a dependency by when it must be present.
type Kind uint8

const (
	Build Kind = 1 << iota
	Runtime
	Recommended
)

// AnyKind matches every dependency kind.
const AnyKind = Build | Runtime | Recommended

func (k Kind) String() string {
	switch k {
	case Build:
		return "build"
	case Runtime:
		return "runtime"
	case Recommended:
		return "recommended"
	}
	return "unknown"
}

// Dependency is a named package required on the listed platforms.
type Dependency struct {
	Name      string
	Kind      Kind
	Platforms []platform.OS
}

// AppliesTo reports whether the dependency is needed on os.
func (d Dependency) AppliesTo(os platform.OS) bool {
	return slices.Contains(d.Platforms, os)
}

// Flag is a single CMake cache assignment.
type Flag struct {
	Key   string
	Value string
}

func On(key string) Flag  { return Flag{Key: key, Value: "ON"} }
func Off(key string) Flag { return Flag{Key: key, Value: "OFF"} }

func Set(key, value string) Flag { return Flag{Key: key, Value: value} }

// Arg renders f as a cmake command line definition.
func (f Flag) Arg() string {
	return "-D" + f.Key + "=" + f.Value
}

// EnvMode selects how an EnvDelta joins an existing value.
type EnvMode uint8

const (
	// AppendFlag joins with a space, as for CXXFLAGS and LDFLAGS.
	AppendFlag EnvMode = iota
	// AppendPath joins with the path list separator, as for LIBRARY_PATH.
	AppendPath
)

// EnvDelta adds Prefix + <library prefix>/Subdir to the variable Key.
type EnvDelta struct {
	Key     string
	Library string
	Subdir  string
	Prefix  string
	Mode    EnvMode
}

// Option is a boolean build toggle. Users spell it as Name, "with-"+Name or
// "without-"+Name.
type Option struct {
	Name    string
	Desc    string
	Default bool

	// Requires lists libraries that must already be installed when the
	// option is enabled.
	Requires []string
	Hint     string

	OnFlags  []Flag
	OffFlags []Flag
	Env      []EnvDelta

	OnNote  string
	OffNote string
}

func (o Option) WithName() string    { return "with-" + o.Name }
func (o Option) WithoutName() string { return "without-" + o.Name }

// FileInstall copies Src (relative to the source tree) to Dest (relative to
// the install prefix) with mode 0755.
type FileInstall struct {
	Name      string
	Src       string
	Dest      string
	Platforms []platform.OS
}

// Sign describes an ad-hoc signature applied to Binary (relative to the
// install prefix).
type Sign struct {
	Binary    string
	OS        platform.OS
	IntelOnly bool
}

// Applies reports whether the signature is required on p.
func (s *Sign) Applies(p platform.Platform) bool {
	if s == nil || p.OS != s.OS {
		return false
	}
	return !s.IntelOnly || p.IsIntel()
}

// TestCmd runs Binary (relative to <prefix>/bin) with Args.
type TestCmd struct {
	Binary string
	Args   []string
}

// AllJobs asks the native build tool to compile without a job limit.
const AllJobs = -1

// Formula is the complete build description of one package variant.
//
// Flag values and caveat text may reference ${prefix} (the install prefix) and
// ${opt:<name>} (the install prefix of an already-installed library).
type Formula struct {
	Name    string
	Desc    string
	Version string
	Head    string

	ConflictsWith []string
	ConflictNote  string

	Options       []Option
	Deps          []Dependency
	BaseFlags     []Flag
	PlatformFlags map[platform.OS][]Flag

	// Jobs is the compile parallelism. Zero leaves it to the native build
	// tool, AllJobs lets it run without a limit.
	Jobs int

	Installs []FileInstall
	Sign     *Sign
	Tests    []TestCmd

	Caveats         string
	PlatformCaveats map[platform.OS]string

	Build BuildInfo
}

// Option returns the declared option called name.
func (f *Formula) Option(name string) (Option, bool) {
	for _, o := range f.Options {
		if o.Name == name {
			return o, true
		}
	}
	return Option{}, false
}

// Conflicts reports whether f declares itself incompatible with other.
func (f *Formula) Conflicts(other string) bool {
	return slices.Contains(f.ConflictsWith, other)
}

// InstallsFor returns the file installs that apply to os, in declared order.
func (f *Formula) InstallsFor(os platform.OS) []FileInstall {
	var out []FileInstall
	for _, in := range f.Installs {
		if len(in.Platforms) == 0 || slices.Contains(in.Platforms, os) {
			out = append(out, in)
		}
	}
	return out
}
