// Package registry records which formula variants are installed and searches
// the host for installed libraries.
package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/lizardbyte/shinebrew/formula"
)

// Registry directory layout:
//
//	workDir/
//	  installed.json    # maps formula name -> Entry
const registryFile = "installed.json"

// Entry describes one installed variant.
type Entry struct {
	Name        string    `json:"name"`
	Version     string    `json:"version"`
	Matrix      string    `json:"matrix"`
	Prefix      string    `json:"prefix"`
	InstalledAt time.Time `json:"installed_at"`
}

type registryData struct {
	Installed map[string]*Entry `json:"installed"`
}

// Registry is the on-disk record of installed variants.
type Registry struct {
	path string
	data registryData
}

// Open loads the registry stored in dir. A missing file is an empty registry.
func Open(dir string) (*Registry, error) {
	r := &Registry{
		path: filepath.Join(dir, registryFile),
		data: registryData{Installed: map[string]*Entry{}},
	}
	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return r, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &r.data); err != nil {
		return nil, fmt.Errorf("parse %s: %w", r.path, err)
	}
	if r.data.Installed == nil {
		r.data.Installed = map[string]*Entry{}
	}
	return r, nil
}

// IsInstalled reports whether a variant called name is recorded.
func (r *Registry) IsInstalled(name string) bool {
	_, ok := r.data.Installed[name]
	return ok
}

// Get returns a copy of the entry for name.
func (r *Registry) Get(name string) (Entry, bool) {
	e, ok := r.data.Installed[name]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Variants returns the names of every recorded variant, sorted.
func (r *Registry) Variants() []string {
	return slices.Sorted(maps.Keys(r.data.Installed))
}

// Record stores e, replacing any previous entry for the same name.
func (r *Registry) Record(e Entry) error {
	if e.Name == "" {
		return errors.New("registry: entry without a name")
	}
	if e.InstalledAt.IsZero() {
		e.InstalledAt = time.Now()
	}
	r.data.Installed[e.Name] = &e
	return r.save()
}

// Remove forgets name. Removing an unknown name is not an error.
func (r *Registry) Remove(name string) error {
	if _, ok := r.data.Installed[name]; !ok {
		return nil
	}
	delete(r.data.Installed, name)
	return r.save()
}

func (r *Registry) save() error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(&r.data, "", "  ")
	if err != nil {
		return err
	}
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, r.path)
}

// ConflictError reports an installed variant that cannot coexist with the
// formula being installed.
type ConflictError struct {
	Formula   string
	Installed string
	Reason    string
}

func (e *ConflictError) Error() string {
	msg := fmt.Sprintf("%s conflicts with installed %s", e.Formula, e.Installed)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// CheckConflicts fails when any installed variant conflicts with f. A
// conflict declared on either side counts; lookup resolves installed names
// to their formulas and may return false for formulas no longer known.
func CheckConflicts(f *formula.Formula, installed []string, lookup func(string) (*formula.Formula, bool)) error {
	for _, name := range installed {
		if name == f.Name {
			continue
		}
		if f.Conflicts(name) {
			return &ConflictError{Formula: f.Name, Installed: name, Reason: f.ConflictNote}
		}
		if lookup == nil {
			continue
		}
		if other, ok := lookup(name); ok && other.Conflicts(f.Name) {
			return &ConflictError{Formula: f.Name, Installed: name, Reason: other.ConflictNote}
		}
	}
	return nil
}
