package build

import (
	"path/filepath"

	"github.com/lizardbyte/shinebrew/formula"
	"github.com/lizardbyte/shinebrew/internal/plan"
	"github.com/lizardbyte/shinebrew/pkgs/buildsys"
	"github.com/lizardbyte/shinebrew/pkgs/buildsys/cmake"
)

// Kind classifies a step.
type Kind int

const (
	Configure Kind = iota
	Compile
	Install
	InstallFile
	Codesign
)

func (k Kind) String() string {
	switch k {
	case Configure:
		return "configure"
	case Compile:
		return "compile"
	case Install:
		return "install"
	case InstallFile:
		return "install-file"
	case Codesign:
		return "codesign"
	}
	return "unknown"
}

// Step is one externally executed unit of work.
type Step struct {
	Name string
	Kind Kind
	Cmd  buildsys.Command
	// Artifact is the file the step places under the prefix, if any.
	Artifact string
}

// Steps lists what installing f from sourceDir with p runs, in order:
// configure, compile, install, one install per applicable formula file, and
// a code signature when the platform calls for it.
func Steps(f *formula.Formula, p *plan.Plan, sourceDir string) []Step {
	c := cmake.New(sourceDir).Jobs(f.Jobs)
	for _, flag := range p.Flags() {
		c.Define(flag.Key, flag.Value)
	}

	steps := []Step{
		{Name: Configure.String(), Kind: Configure, Cmd: c.Configure()},
		{Name: Compile.String(), Kind: Compile, Cmd: c.Build()},
		{Name: Install.String(), Kind: Install, Cmd: c.Install()},
	}

	pf := p.Platform()
	for _, in := range f.InstallsFor(pf.OS) {
		dest := filepath.Join(p.Prefix(), in.Dest)
		steps = append(steps, Step{
			Name: "install-" + in.Name,
			Kind: InstallFile,
			Cmd: buildsys.Command{
				Name: "install",
				Args: []string{"-m", "0755", filepath.Join(sourceDir, in.Src), dest},
				Dir:  sourceDir,
			},
			Artifact: dest,
		})
	}

	if f.Sign.Applies(pf) {
		steps = append(steps, Step{
			Name: Codesign.String(),
			Kind: Codesign,
			Cmd: buildsys.Command{
				Name: "codesign",
				Args: []string{"-s", "-", "--force", "--deep", filepath.Join(p.Prefix(), f.Sign.Binary)},
			},
		})
	}
	return steps
}
