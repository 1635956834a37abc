package internal

import (
	"bytes"
	"maps"
	"slices"
	"strings"
	"testing"

	"github.com/lizardbyte/shinebrew/internal/config"
	"github.com/lizardbyte/shinebrew/internal/engine"
	"github.com/lizardbyte/shinebrew/internal/env"
	"github.com/lizardbyte/shinebrew/internal/formulas"
	"github.com/lizardbyte/shinebrew/internal/options"
	"github.com/lizardbyte/shinebrew/internal/registry"
	"github.com/lizardbyte/shinebrew/pkgs/platform"
)

func TestRunFlagsTokens(t *testing.T) {
	f := runFlags{
		with:    []string{"docs"},
		without: []string{"static-boost"},
		opts:    []string{"cuda=off"},
	}
	got := f.tokens([]string{"extra=true"})
	want := []string{"with-docs", "without-static-boost", "cuda=off", "extra=true"}
	if !slices.Equal(got, want) {
		t.Errorf("tokens() = %v, want %v", got, want)
	}
}

func TestOptionName(t *testing.T) {
	tests := map[string]string{
		"docs":                 "docs",
		"with-docs":            "docs",
		"without-static-boost": "static-boost",
		"static-boost":         "static-boost",
	}
	for in, want := range tests {
		if got := optionName(in); got != want {
			t.Errorf("optionName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMergeOptions(t *testing.T) {
	file := map[string]bool{"docs": false, "static-boost": true}
	cli := options.Request{"with-docs": true}

	got := mergeOptions(file, cli)
	want := options.Request{"with-docs": true, "static-boost": true}
	if !maps.Equal(got, want) {
		t.Errorf("mergeOptions() = %v, want %v", got, want)
	}
}

func TestRequest(t *testing.T) {
	c := config.Default()
	c.Formula = "sunshine-beta"
	c.Options = map[string]bool{"docs": true}
	c.HomebrewPrefix = "/brew"

	f := runFlags{os: "macos", arch: "x86_64", without: []string{"docs"}}
	req, err := f.request(c, nil)
	if err != nil {
		t.Fatalf("request() error = %v", err)
	}
	if req.Formula != "sunshine-beta" {
		t.Errorf("Formula = %q", req.Formula)
	}
	if want := (platform.Platform{OS: platform.MacOS, Arch: "amd64"}); req.Platform != want {
		t.Errorf("Platform = %v, want %v", req.Platform, want)
	}
	if want := (options.Request{"without-docs": true}); !maps.Equal(req.Options, want) {
		t.Errorf("Options = %v, want %v", req.Options, want)
	}
	if req.HomebrewPrefix != "/brew" {
		t.Errorf("HomebrewPrefix = %q", req.HomebrewPrefix)
	}

	req, err = f.request(c, []string{"sunshine", "static-boost=no"})
	if err != nil {
		t.Fatalf("request() error = %v", err)
	}
	if req.Formula != "sunshine" || req.Options["static-boost"] {
		t.Errorf("req = %+v", req)
	}
}

func TestRequestErrors(t *testing.T) {
	c := config.Default()
	if _, err := (&runFlags{os: "windows", arch: "amd64"}).request(c, nil); err == nil {
		t.Error("request() with unsupported OS succeeded")
	}
	if _, err := (&runFlags{os: "linux", arch: "amd64", opts: []string{"docs=maybe"}}).request(c, nil); err == nil {
		t.Error("request() with bad option value succeeded")
	}
}

func TestFirst(t *testing.T) {
	if got := first("", "b", "c"); got != "b" {
		t.Errorf("first() = %q", got)
	}
	if got := first(); got != "" {
		t.Errorf("first() = %q", got)
	}
}

func TestPlanCommand(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{
		"plan", "sunshine-beta",
		"--os", "linux", "--arch", "amd64",
		"--prefix", "/opt/sunshine",
		"--homebrew-prefix", "/brew",
		"--with", "docs",
	})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("plan failed: %v", err)
	}
	text := out.String()
	for _, want := range []string{
		"-DBUILD_DOCS=ON",
		"-DBOOST_USE_STATIC=OFF",
		"-DCUDA_FAIL_ON_MISSING=OFF",
		"-DCMAKE_INSTALL_PREFIX=/opt/sunshine",
		"-DOPENSSL_ROOT_DIR=/brew/opt/openssl",
		"BUILD_VERSION=v2025.102.32311",
		"install-postinst",
		"Building docs: enabled",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("plan output missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "codesign") {
		t.Errorf("linux plan signs:\n%s", text)
	}
}

func TestDepsCommand(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"deps", "sunshine-beta", "--os", "macos", "--arch", "arm64", "--kind", "recommended"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("deps failed: %v", err)
	}
	if got, want := out.String(), "boost (recommended)\nicu4c (recommended)\n"; got != want {
		t.Errorf("deps output = %q, want %q", got, want)
	}
}

func TestCaveatsCommandUsesRecordedPrefix(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	reg, err := openRegistry()
	if err != nil {
		t.Fatal(err)
	}
	if err := reg.Record(registry.Entry{Name: "sunshine-beta", Version: "v2025.102.32311", Prefix: "/custom/sunshine"}); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"caveats", "sunshine-beta", "--os", "linux", "--arch", "amd64", "--homebrew-prefix", "/brew"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("caveats failed: %v", err)
	}
	text := out.String()
	if !strings.Contains(text, "sudo /custom/sunshine/bin/postinst") {
		t.Errorf("caveats ignore the recorded prefix:\n%s", text)
	}
	if strings.Contains(text, "/brew/Cellar") {
		t.Errorf("caveats use the Cellar prefix:\n%s", text)
	}
}

func TestInstalledPrefix(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	f, _ := formulas.Lookup("sunshine")

	got, err := installedPrefix(engine.Request{HomebrewPrefix: "/brew"}, f)
	if err != nil {
		t.Fatal(err)
	}
	if want := env.CellarPrefix("/brew", "sunshine", f.Version); got != want {
		t.Errorf("unrecorded prefix = %q, want %q", got, want)
	}

	got, err = installedPrefix(engine.Request{Prefix: "/explicit", HomebrewPrefix: "/brew"}, f)
	if err != nil || got != "/explicit" {
		t.Errorf("explicit prefix = %q, %v", got, err)
	}
}
