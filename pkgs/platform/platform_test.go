package platform

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		os, arch string
		want     Platform
		wantErr  bool
	}{
		{"linux", "x86_64", Platform{OS: Linux, Arch: "amd64"}, false},
		{"darwin", "arm64", Platform{OS: MacOS, Arch: "arm64"}, false},
		{"macOS", "aarch64", Platform{OS: MacOS, Arch: "arm64"}, false},
		{"osx", "amd64", Platform{OS: MacOS, Arch: "amd64"}, false},
		{"windows", "amd64", Platform{}, true},
		{"linux", "", Platform{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.os+"/"+tt.arch, func(t *testing.T) {
			got, err := Parse(tt.os, tt.arch)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q, %q) error = %v, wantErr %v", tt.os, tt.arch, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Parse(%q, %q) = %v, want %v", tt.os, tt.arch, got, tt.want)
			}
		})
	}
}

func TestParseOSUnsupported(t *testing.T) {
	_, err := ParseOS("plan9")
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("ParseOS(plan9) error = %v, want ErrUnsupported", err)
	}
}

func TestZeroPlatformInvalid(t *testing.T) {
	var p Platform
	if p.Valid() {
		t.Fatal("zero Platform reports valid")
	}
	if _, err := New("", "amd64"); err == nil {
		t.Fatal("New with empty OS succeeded")
	}
}

func TestIsIntel(t *testing.T) {
	for arch, want := range map[string]bool{
		"x86_64":  true,
		"i686":    true,
		"arm64":   false,
		"aarch64": false,
	} {
		p, err := New(MacOS, arch)
		if err != nil {
			t.Fatalf("New(macos, %q): %v", arch, err)
		}
		if got := p.IsIntel(); got != want {
			t.Errorf("IsIntel(%q) = %v, want %v", arch, got, want)
		}
	}
}

func TestCurrent(t *testing.T) {
	p, err := Current()
	if errors.Is(err, ErrUnsupported) {
		t.Skip("host is not linux or macos")
	}
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if !p.Valid() {
		t.Errorf("Current() = %v, not valid", p)
	}
}
