// Package formulas holds the known Sunshine variants.
package formulas

import (
	"slices"

	"github.com/lizardbyte/shinebrew/formula"
	"github.com/lizardbyte/shinebrew/pkgs/platform"
)

var (
	all      = []*formula.Formula{Sunshine(), SunshineBeta()}
	linux    = []platform.OS{platform.Linux}
	anywhere = []platform.OS{platform.Linux, platform.MacOS}
)

// Lookup returns a fresh copy of the formula called name.
func Lookup(name string) (*formula.Formula, bool) {
	switch name {
	case "sunshine":
		return Sunshine(), true
	case "sunshine-beta":
		return SunshineBeta(), true
	}
	return nil, false
}

// Names lists every known formula, sorted.
func Names() []string {
	names := make([]string, 0, len(all))
	for _, f := range all {
		names = append(names, f.Name)
	}
	slices.Sort(names)
	return names
}

func deps(kind formula.Kind, os []platform.OS, names ...string) []formula.Dependency {
	out := make([]formula.Dependency, 0, len(names))
	for _, n := range names {
		out = append(out, formula.Dependency{Name: n, Kind: kind, Platforms: os})
	}
	return out
}

const gettingStarted = `Thanks for installing Sunshine!

To get started, review the documentation at:
  https://docs.lizardbyte.dev/projects/sunshine/en/latest/
`

const linuxPostinst = `ATTENTION: To complete installation, you must run the following command:
` + "`sudo ${prefix}/bin/postinst`" + `
`

const macLimitations = `Sunshine can only access microphones on macOS due to system limitations.
To stream system audio use "Soundflower" or "BlackHole".

Gamepads are not currently supported on macOS.
`

// commonFlags is shared by every variant.
func commonFlags() []formula.Flag {
	return []formula.Flag{
		formula.On("BUILD_WERROR"),
		formula.Set("CMAKE_INSTALL_PREFIX", "${prefix}"),
		formula.Set("CMAKE_BUILD_TYPE", "Release"),
		formula.Set("CMAKE_FIND_FRAMEWORK", "LAST"),
		formula.Off("BUILD_TESTING"),
		formula.Set("OPENSSL_ROOT_DIR", "${opt:openssl}"),
		formula.Set("SUNSHINE_ASSETS_DIR", "sunshine/assets"),
		formula.On("SUNSHINE_BUILD_HOMEBREW"),
	}
}
