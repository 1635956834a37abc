package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lizardbyte/shinebrew/formula"
	"github.com/lizardbyte/shinebrew/internal/config"
	"github.com/lizardbyte/shinebrew/internal/engine"
	"github.com/lizardbyte/shinebrew/internal/env"
	"github.com/lizardbyte/shinebrew/internal/formulas"
	"github.com/lizardbyte/shinebrew/internal/options"
	"github.com/lizardbyte/shinebrew/internal/registry"
	"github.com/lizardbyte/shinebrew/internal/toolchain"
	"github.com/lizardbyte/shinebrew/internal/vcs"
	"github.com/lizardbyte/shinebrew/pkgs/platform"
)

// runFlags are shared by every command that plans a build.
type runFlags struct {
	with    []string
	without []string
	opts    []string
	os      string
	arch    string
	prefix  string
	brew    string
	source  string
}

func (f *runFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringSliceVar(&f.with, "with", nil, "Enable an option (repeatable)")
	fl.StringSliceVar(&f.without, "without", nil, "Disable an option (repeatable)")
	fl.StringArrayVarP(&f.opts, "option", "o", nil, "Set an option as name=bool")
	fl.StringVar(&f.os, "os", "", "Target OS: linux or macos (default host)")
	fl.StringVar(&f.arch, "arch", "", "Target CPU architecture (default host)")
	fl.StringVar(&f.prefix, "prefix", "", "Install prefix (default the Cellar keg)")
	fl.StringVar(&f.brew, "homebrew-prefix", "", "Homebrew root holding installed libraries")
	fl.StringVar(&f.source, "source", "", "Source checkout to build (default current directory)")
}

// tokens returns the option tokens given on the command line, in the form
// options.ParseArgs accepts. Extra positional args are taken as tokens too.
func (f *runFlags) tokens(extra []string) []string {
	var out []string
	for _, n := range f.with {
		out = append(out, "with-"+n)
	}
	for _, n := range f.without {
		out = append(out, "without-"+n)
	}
	out = append(out, f.opts...)
	return append(out, extra...)
}

// request builds an engine request from cfg overridden by the flags. The
// first positional argument names the formula.
func (f *runFlags) request(cfg config.Config, args []string) (engine.Request, error) {
	req := engine.Request{Formula: cfg.Formula, Build: cfg.Build}
	if len(args) > 0 {
		req.Formula = args[0]
		args = args[1:]
	}

	cli, err := options.ParseArgs(f.tokens(args))
	if err != nil {
		return req, err
	}
	req.Options = mergeOptions(cfg.Options, cli)

	req.Platform, err = targetPlatform(first(f.os, cfg.OS), first(f.arch, cfg.Arch))
	if err != nil {
		return req, err
	}
	req.HomebrewPrefix = first(f.brew, cfg.HomebrewPrefix)
	if req.HomebrewPrefix == "" {
		req.HomebrewPrefix = env.HomebrewPrefix(req.Platform)
	}
	req.Prefix = first(f.prefix, cfg.Prefix)

	if src := first(f.source, cfg.Source); src != "" {
		if req.Source, err = filepath.Abs(src); err != nil {
			return req, err
		}
	}
	return req, nil
}

// targetPlatform parses the requested platform, filling blanks from the host.
func targetPlatform(osName, arch string) (platform.Platform, error) {
	if osName == "" || arch == "" {
		host, err := platform.Current()
		if err != nil {
			return platform.Platform{}, fmt.Errorf("detect host platform: %w", err)
		}
		osName = first(osName, string(host.OS))
		arch = first(arch, host.Arch)
	}
	return platform.Parse(osName, arch)
}

// mergeOptions layers command line options over those from the settings
// file. A file entry is dropped when the command line sets the same option
// under any spelling.
func mergeOptions(file map[string]bool, cli options.Request) options.Request {
	out := make(options.Request, len(file)+len(cli))
	set := make(map[string]bool, len(cli))
	for k, v := range cli {
		out[k] = v
		set[optionName(k)] = true
	}
	for k, v := range file {
		if !set[optionName(k)] {
			out[k] = v
		}
	}
	return out
}

func optionName(key string) string {
	if n, ok := strings.CutPrefix(key, "without-"); ok {
		return n
	}
	if n, ok := strings.CutPrefix(key, "with-"); ok {
		return n
	}
	return key
}

func first(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func openRegistry() (*registry.Registry, error) {
	work, err := env.WorkDir()
	if err != nil {
		return nil, err
	}
	return registry.Open(work)
}

// installedPrefix returns req.Prefix when given, else the prefix f was
// recorded at, else its default Cellar prefix.
func installedPrefix(req engine.Request, f *formula.Formula) (string, error) {
	if req.Prefix != "" {
		return req.Prefix, nil
	}
	reg, err := openRegistry()
	if err != nil {
		return "", err
	}
	if entry, ok := reg.Get(f.Name); ok && entry.Prefix != "" {
		return entry.Prefix, nil
	}
	return env.CellarPrefix(req.HomebrewPrefix, f.Name, f.Version), nil
}

// newEngine wires an engine for req. The returned close func flushes the
// build log, if one was opened.
func newEngine(req engine.Request, name string) (*engine.Engine, func() error, error) {
	reg, err := openRegistry()
	if err != nil {
		return nil, nil, err
	}

	closeLog := func() error { return nil }
	opts := []toolchain.Opt{}
	if cfg.Quiet {
		dir, err := env.LogDir()
		if err != nil {
			return nil, nil, err
		}
		name := fmt.Sprintf("%s-%s.log", name, time.Now().Format("20060102-150405"))
		logFile, err := os.Create(filepath.Join(dir, name))
		if err != nil {
			return nil, nil, err
		}
		fmt.Fprintf(os.Stderr, "build log: %s\n", logFile.Name())
		opts = append(opts, toolchain.WithoutNoise(), toolchain.WithLog(logFile))
		closeLog = logFile.Close
	}

	e := &engine.Engine{
		Lookup:    formulas.Lookup,
		Toolchain: toolchain.New(opts...),
		Registry:  reg,
		VCS:       vcs.NewGitVCS(),
		Environ:   env.Snapshot(),
		Progress:  cfg.Quiet,
	}
	if cfg.PkgConfig != "" {
		finder := registry.FirstFound(
			registry.OptDir{Root: req.HomebrewPrefix},
			registry.PkgConfig{
				Bin:     cfg.PkgConfig,
				Modules: map[string]string{"icu4c": "icu-uc"},
			},
		)
		e.Installed, e.Locator = finder, finder
	}
	return e, closeLog, nil
}
