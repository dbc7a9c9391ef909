// Package fixtures loads String method test-vectors from a
// filesystem, real or in-memory, so table-driven tests can swap
// between a checked-in golden directory and an afero.MemMapFs without
// touching the test bodies themselves.
package fixtures

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/afero"
)

// Case is one method test-vector: the method under test, its
// receiver and arguments (already JSON-decoded to Go values: string,
// float64, bool, nil), and the expected result.
type Case struct {
	Method   string        `json:"method"`
	Receiver string        `json:"receiver"`
	Args     []interface{} `json:"args"`
	Want     interface{}   `json:"want"`
}

// Loader reads golden fixture files from an afero.Fs, defaulting to
// the OS filesystem; tests construct a Loader over afero.NewMemMapFs()
// instead to exercise the loader itself without real files on disk.
type Loader struct {
	FS afero.Fs
}

// NewLoader returns a Loader backed by the real filesystem.
func NewLoader() *Loader { return &Loader{FS: afero.NewOsFs()} }

// NewMemLoader returns a Loader backed by an in-memory filesystem,
// pre-populated with the given path → JSON-bytes contents.
func NewMemLoader(files map[string]string) *Loader {
	fs := afero.NewMemMapFs()
	for path, contents := range files {
		if err := afero.WriteFile(fs, path, []byte(contents), 0o644); err != nil {
			panic(fmt.Sprintf("fixtures: seeding %s: %v", path, err))
		}
	}
	return &Loader{FS: fs}
}

// Load decodes a JSON array of Case from path.
func (l *Loader) Load(path string) ([]Case, error) {
	data, err := afero.ReadFile(l.FS, path)
	if err != nil {
		return nil, fmt.Errorf("fixtures: reading %s: %w", path, err)
	}
	var cases []Case
	if err := json.Unmarshal(data, &cases); err != nil {
		return nil, fmt.Errorf("fixtures: decoding %s: %w", path, err)
	}
	return cases, nil
}
