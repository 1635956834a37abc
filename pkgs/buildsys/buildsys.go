package buildsys

import "strings"

// Command is one external toolchain invocation.
type Command struct {
	Name string
	Args []string
	Dir  string
}

func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// BuildSystem captures shared capabilities of build helpers (CMake, Autotools, etc).
// It keeps the common lifecycle; implementations add their own extras.
// Lifecycle methods only describe the commands, running them is up to the caller.
type BuildSystem interface {
	// Basic paths.
	Source(dir string)
	InstallDir(dir string)

	// Lifecycle.
	Configure(args ...string) Command
	Build(args ...string) Command
	Install(args ...string) Command

	// Where artifacts land.
	OutputDir() string
}
