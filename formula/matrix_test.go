package formula

import (
	"slices"
	"testing"
)

func TestMatrix(t *testing.T) {
	tests := []struct {
		name   string
		matrix Matrix
		want   []string
	}{
		{
			name: "require only",
			matrix: Matrix{
				Require: map[string][]string{
					"os":   {"linux", "macos"},
					"arch": {"amd64", "arm64"},
				},
			},
			// keys sorted: arch, os
			want: []string{"amd64-linux", "amd64-macos", "arm64-linux", "arm64-macos"},
		},
		{
			name: "require with options",
			matrix: Matrix{
				Require: map[string][]string{
					"os":   {"linux"},
					"arch": {"amd64", "arm64"},
				},
				Options: map[string][]string{
					"docs": {"docsON", "docsOFF"},
				},
			},
			want: []string{
				"amd64-linux|docsON",
				"amd64-linux|docsOFF",
				"arm64-linux|docsON",
				"arm64-linux|docsOFF",
			},
		},
		{
			name: "only options",
			matrix: Matrix{
				Options: map[string][]string{
					"static-boost": {"static-boostON", "static-boostOFF"},
					"docs":         {"docsOFF"},
				},
			},
			want: []string{"docsOFF-static-boostON", "docsOFF-static-boostOFF"},
		},
		{
			name:   "empty matrix",
			matrix: Matrix{},
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.matrix.Combinations()
			if !slices.Equal(got, tt.want) {
				t.Errorf("Matrix.Combinations() = %v, want %v", got, tt.want)
			}
			if n := tt.matrix.CombinationCount(); n != len(tt.want) {
				t.Errorf("Matrix.CombinationCount() = %d, want %d", n, len(tt.want))
			}
		})
	}
}

func TestMatrix_CombinationCountLarge(t *testing.T) {
	m := Matrix{
		Require: map[string][]string{
			"os":   {"linux", "macos"},
			"arch": {"amd64", "arm64", "386"},
		},
		Options: map[string][]string{
			"docs":         {"docsON", "docsOFF"},
			"static-boost": {"static-boostON", "static-boostOFF"},
		},
	}
	if got := m.CombinationCount(); got != 24 {
		t.Errorf("CombinationCount() = %d, want 24", got)
	}
	if got := len(m.Combinations()); got != 24 {
		t.Errorf("len(Combinations()) = %d, want 24", got)
	}
}

func TestMatrix_String(t *testing.T) {
	m := Matrix{
		Require: map[string][]string{
			"os":   {"macos"},
			"arch": {"arm64"},
		},
		Options: map[string][]string{
			"static-boost": {"static-boostOFF"},
			"docs":         {"docsON"},
		},
	}
	if got, want := m.String(), "arm64-macos|docsON-static-boostOFF"; got != want {
		t.Errorf("Matrix.String() = %q, want %q", got, want)
	}
	if m.CombinationCount() != 1 {
		t.Errorf("CombinationCount() = %d, want 1", m.CombinationCount())
	}
}
