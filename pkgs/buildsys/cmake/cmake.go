// Package cmake describes the cmake configure/build/install workflow.
package cmake

import (
	"path/filepath"
	"strconv"

	"github.com/lizardbyte/shinebrew/pkgs/buildsys"
)

type define struct {
	key   string
	value string
}

// CMake builds cmake command lines with chainable configuration. Definitions
// keep the order they were first defined in.
type CMake struct {
	sourceDir  string
	buildDir   string
	installDir string
	jobs       int
	defines    []define
}

var _ buildsys.BuildSystem = (*CMake)(nil)

// New returns a CMake for sourceDir. The build tree is <sourceDir>/build.
func New(sourceDir string) *CMake {
	return &CMake{
		sourceDir: sourceDir,
		buildDir:  filepath.Join(sourceDir, "build"),
	}
}

func (c *CMake) Source(dir string) {
	c.sourceDir = dir
}

func (c *CMake) InstallDir(dir string) {
	c.installDir = dir
}

// Jobs sets the parallelism passed to "cmake --build". Zero leaves it to the
// native tool, a negative n passes a bare --parallel so the native tool runs
// unbounded.
func (c *CMake) Jobs(n int) *CMake {
	c.jobs = n
	return c
}

// Define adds -D<key>=<value>. Redefining a key replaces its value in place.
func (c *CMake) Define(key, value string) *CMake {
	return c.set(define{key: key, value: value})
}

func (c *CMake) set(d define) *CMake {
	for i := range c.defines {
		if c.defines[i].key == d.key {
			c.defines[i] = d
			return c
		}
	}
	c.defines = append(c.defines, d)
	return c
}

func (c *CMake) defined(key string) bool {
	for _, d := range c.defines {
		if d.key == key {
			return true
		}
	}
	return false
}

// Configure returns "cmake -S <source> -B <build>" with all definitions.
// Extra args are appended at the end.
func (c *CMake) Configure(args ...string) buildsys.Command {
	cmakeArgs := []string{"-S", c.sourceDir, "-B", c.buildDir}
	if c.installDir != "" && !c.defined("CMAKE_INSTALL_PREFIX") {
		c.Define("CMAKE_INSTALL_PREFIX", c.installDir)
	}
	cmakeArgs = append(cmakeArgs, c.definesArgs()...)
	cmakeArgs = append(cmakeArgs, args...)
	return buildsys.Command{Name: "cmake", Args: cmakeArgs, Dir: c.sourceDir}
}

// Build returns "cmake --build <build>".
func (c *CMake) Build(args ...string) buildsys.Command {
	cmdArgs := []string{"--build", c.buildDir}
	switch {
	case c.jobs > 0:
		cmdArgs = append(cmdArgs, "--parallel", strconv.Itoa(c.jobs))
	case c.jobs < 0:
		cmdArgs = append(cmdArgs, "--parallel")
	}
	cmdArgs = append(cmdArgs, args...)
	return buildsys.Command{Name: "cmake", Args: cmdArgs, Dir: c.sourceDir}
}

// Install returns "cmake --install <build>".
func (c *CMake) Install(args ...string) buildsys.Command {
	cmdArgs := []string{"--install", c.buildDir}
	if c.installDir != "" {
		cmdArgs = append(cmdArgs, "--prefix", c.installDir)
	}
	cmdArgs = append(cmdArgs, args...)
	return buildsys.Command{Name: "cmake", Args: cmdArgs, Dir: c.sourceDir}
}

// OutputDir returns the install dir if set, otherwise the build dir.
func (c *CMake) OutputDir() string {
	if c.installDir != "" {
		return c.installDir
	}
	return c.buildDir
}

func (c *CMake) definesArgs() []string {
	if len(c.defines) == 0 {
		return nil
	}
	args := make([]string, 0, len(c.defines))
	for _, d := range c.defines {
		args = append(args, "-D"+d.key+"="+d.value)
	}
	return args
}
