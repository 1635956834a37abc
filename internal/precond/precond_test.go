package precond

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/lizardbyte/shinebrew/formula"
	"github.com/lizardbyte/shinebrew/internal/options"
	"github.com/lizardbyte/shinebrew/internal/registry"
	"github.com/lizardbyte/shinebrew/pkgs/platform"
)

var mac = platform.Platform{OS: platform.MacOS, Arch: "arm64"}

func installed(names ...string) registry.Checker {
	return registry.CheckerFunc(func(name string) bool { return slices.Contains(names, name) })
}

func testFormula() *formula.Formula {
	return &formula.Formula{
		Name: "test",
		Options: []formula.Option{
			{Name: "static-boost", Requires: []string{"icu4c"}, Hint: "install icu4c"},
			{Name: "cuda", Requires: []string{"cuda-toolkit", "nvenc"}},
			{Name: "docs"},
		},
	}
}

func resolve(t *testing.T, f *formula.Formula, req options.Request) options.Resolved {
	t.Helper()
	r, err := options.Resolve(f.Options, req)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	return r
}

func TestValidateDisabledOptionsIgnored(t *testing.T) {
	f := testFormula()
	v := New(installed())
	if err := v.Validate(f, resolve(t, f, nil), mac); err != nil {
		t.Fatalf("Validate with defaults: %v", err)
	}
}

func TestValidateSatisfied(t *testing.T) {
	f := testFormula()
	v := New(installed("icu4c"))
	if err := v.Validate(f, resolve(t, f, options.Request{"with-static-boost": true}), mac); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateReportsAll(t *testing.T) {
	f := testFormula()
	v := New(installed("nvenc"))
	err := v.Validate(f, resolve(t, f, options.Request{"static-boost": true, "cuda": true}), mac)

	var fe *FailedError
	if !errors.As(err, &fe) {
		t.Fatalf("Validate error = %v, want *FailedError", err)
	}
	if got, want := fe.Missing(), []string{"icu4c", "cuda-toolkit"}; !slices.Equal(got, want) {
		t.Errorf("Missing() = %v, want %v", got, want)
	}
	if fe.Failures[0].Hint != "install icu4c" {
		t.Errorf("declared hint not used: %q", fe.Failures[0].Hint)
	}
	if !strings.Contains(fe.Failures[1].Hint, "--without-cuda") {
		t.Errorf("default hint = %q, want mention of --without-cuda", fe.Failures[1].Hint)
	}
	if !strings.Contains(err.Error(), "2 preconditions failed") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestValidateRequiresPlatform(t *testing.T) {
	f := testFormula()
	if err := New(installed()).Validate(f, resolve(t, f, nil), platform.Platform{}); err == nil {
		t.Fatal("Validate with zero platform succeeded")
	}
}
