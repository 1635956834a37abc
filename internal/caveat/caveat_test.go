package caveat

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lizardbyte/shinebrew/internal/formulas"
	"github.com/lizardbyte/shinebrew/pkgs/platform"
)

func TestReport(t *testing.T) {
	linux := platform.Platform{OS: platform.Linux, Arch: "amd64"}
	mac := platform.Platform{OS: platform.MacOS, Arch: "arm64"}

	tests := []struct {
		name      string
		formula   string
		platform  platform.Platform
		wantNames []string
		contains  []string
		absent    []string
	}{
		{
			name:      "beta linux asks for postinst",
			formula:   "sunshine-beta",
			platform:  linux,
			wantNames: []string{"getting-started", "linux"},
			contains:  []string{"Thanks for installing Sunshine!", "sudo /opt/sunshine/bin/postinst"},
			absent:    []string{"microphones"},
		},
		{
			name:      "beta macos notes audio limits",
			formula:   "sunshine-beta",
			platform:  mac,
			wantNames: []string{"getting-started", "macos"},
			contains:  []string{"microphones", "BlackHole", "Gamepads are not currently supported"},
			absent:    []string{"postinst"},
		},
		{
			name:      "stable linux has only the generic block",
			formula:   "sunshine",
			platform:  linux,
			wantNames: []string{"getting-started"},
			absent:    []string{"postinst", "microphones"},
		},
		{
			name:      "stable macos notes audio limits",
			formula:   "sunshine",
			platform:  mac,
			wantNames: []string{"getting-started", "macos"},
			contains:  []string{"microphones", "Gamepads are not currently supported"},
			absent:    []string{"postinst"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, _ := formulas.Lookup(tt.formula)
			blocks := Report(f, tt.platform, "/opt/sunshine")

			var names []string
			for _, b := range blocks {
				names = append(names, b.Name)
			}
			if strings.Join(names, ",") != strings.Join(tt.wantNames, ",") {
				t.Fatalf("block names = %v, want %v", names, tt.wantNames)
			}
			text := Render(blocks)
			for _, s := range tt.contains {
				if !strings.Contains(text, s) {
					t.Errorf("report missing %q:\n%s", s, text)
				}
			}
			for _, s := range tt.absent {
				if strings.Contains(text, s) {
					t.Errorf("report unexpectedly contains %q:\n%s", s, text)
				}
			}
		})
	}
}

func TestRender(t *testing.T) {
	got := Render([]Block{{Name: "a", Text: "first\n"}, {Name: "b", Text: "second"}})
	if want := "first\n\nsecond\n"; got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
	if got := Render(nil); got != "" {
		t.Errorf("Render(nil) = %q, want empty", got)
	}
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	if err := Print(&buf, nil); err != nil || buf.Len() != 0 {
		t.Fatalf("Print(nil) wrote %q, err %v", buf.String(), err)
	}
	if err := Print(&buf, []Block{{Name: "x", Text: "hello"}}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Caveats") || !strings.HasSuffix(buf.String(), "hello\n") {
		t.Errorf("Print() = %q", buf.String())
	}
}
