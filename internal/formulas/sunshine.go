package formulas

import (
	"github.com/lizardbyte/shinebrew/formula"
	"github.com/lizardbyte/shinebrew/pkgs/platform"
)

// Sunshine is the stable variant. It has no options.
func Sunshine() *formula.Formula {
	f := &formula.Formula{
		Name:          "sunshine",
		Desc:          "Self-hosted game stream host for Moonlight",
		Version:       "0.22.1",
		Head:          "nightly",
		ConflictsWith: []string{"sunshine-beta"},
		ConflictNote:  "sunshine and sunshine-beta cannot be installed at the same time",
		BaseFlags:     commonFlags(),
		Jobs:          formula.AllJobs,
		Tests: []formula.TestCmd{
			{Binary: "sunshine", Args: []string{"--version"}},
		},
		Caveats: gettingStarted,
		PlatformCaveats: map[platform.OS]string{
			platform.MacOS: macLimitations,
		},
		Build: formula.BuildInfo{Branch: "master", Version: "0.22.1"},
	}
	f.Deps = append(f.Deps, deps(formula.Build, anywhere, "boost", "cmake", "pkg-config")...)
	f.Deps = append(f.Deps, deps(formula.Runtime, anywhere, "curl", "miniupnpc", "node", "openssl", "opus")...)
	return f
}

// SunshineBeta tracks the pre-release tag and exposes the docs and
// static-boost options.
func SunshineBeta() *formula.Formula {
	f := &formula.Formula{
		Name:          "sunshine-beta",
		Desc:          "Self-hosted game stream host for Moonlight",
		Version:       "2025.102.32311",
		Head:          "master",
		ConflictsWith: []string{"sunshine"},
		ConflictNote:  "sunshine and sunshine-beta cannot be installed at the same time",
		Options: []formula.Option{
			{
				Name:     "docs",
				Desc:     "Enable docs",
				OnFlags:  []formula.Flag{formula.On("BUILD_DOCS")},
				OffFlags: []formula.Flag{formula.Off("BUILD_DOCS")},
				OnNote:   "Building docs: enabled",
				OffNote:  "Building docs: disabled",
			},
			{
				Name:     "static-boost",
				Desc:     "Enable static link of Boost libraries",
				Requires: []string{"icu4c"},
				Hint:     "icu4c must be installed to link against static Boost libraries, either install icu4c or use --without-static-boost instead",
				OnFlags:  []formula.Flag{formula.On("BOOST_USE_STATIC")},
				OffFlags: []formula.Flag{formula.Off("BOOST_USE_STATIC")},
				Env: []formula.EnvDelta{
					{Key: "CXXFLAGS", Library: "icu4c", Subdir: "include", Prefix: "-I", Mode: formula.AppendFlag},
					{Key: "LDFLAGS", Library: "icu4c", Subdir: "lib", Prefix: "-L", Mode: formula.AppendFlag},
					{Key: "LIBRARY_PATH", Library: "icu4c", Subdir: "lib", Mode: formula.AppendPath},
				},
				OnNote:  "Enabled statically linking Boost libraries",
				OffNote: "Disabled statically linking Boost libraries",
			},
		},
		BaseFlags: append(commonFlags(),
			formula.On("HOMEBREW_ALLOW_FETCHCONTENT"),
			formula.Off("SUNSHINE_ENABLE_TRAY"),
			formula.Set("SUNSHINE_PUBLISHER_NAME", "LizardByte"),
			formula.Set("SUNSHINE_PUBLISHER_WEBSITE", "https://app.lizardbyte.dev"),
			formula.Set("SUNSHINE_PUBLISHER_ISSUE_URL", "https://app.lizardbyte.dev/support"),
		),
		PlatformFlags: map[platform.OS][]formula.Flag{
			platform.Linux: {formula.Off("CUDA_FAIL_ON_MISSING")},
		},
		Installs: []formula.FileInstall{
			{Name: "test-binary", Src: "build/tests/test_sunshine", Dest: "bin/test_sunshine"},
			{Name: "postinst", Src: "src_assets/linux/misc/postinst", Dest: "bin/postinst", Platforms: linux},
		},
		Sign: &formula.Sign{Binary: "bin/sunshine", OS: platform.MacOS, IntelOnly: true},
		Tests: []formula.TestCmd{
			{Binary: "sunshine", Args: []string{"--version"}},
			{Binary: "test_sunshine", Args: []string{"--gtest_color=yes"}},
		},
		Caveats: gettingStarted,
		PlatformCaveats: map[platform.OS]string{
			platform.Linux: linuxPostinst,
			platform.MacOS: macLimitations,
		},
		Build: formula.BuildInfo{
			Branch:  "master",
			Version: "v2025.102.32311",
			Commit:  "d50611c79bd8d49b88fa52456c1522b7845300f9",
		},
	}
	f.Deps = append(f.Deps, deps(formula.Build, anywhere, "cmake", "doxygen", "graphviz", "node", "pkg-config")...)
	f.Deps = append(f.Deps, deps(formula.Runtime, anywhere, "curl", "miniupnpc", "openssl", "opus")...)
	f.Deps = append(f.Deps, deps(formula.Recommended, anywhere, "boost", "icu4c")...)
	f.Deps = append(f.Deps, deps(formula.Runtime, linux,
		"avahi", "libcap", "libdrm", "libnotify", "libva", "libx11", "libxcb",
		"libxcursor", "libxfixes", "libxi", "libxinerama", "libxrandr", "libxtst",
		"numactl", "pulseaudio", "systemd", "wayland")...)
	return f
}
