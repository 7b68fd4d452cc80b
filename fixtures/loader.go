package fixtures

import (
	"fmt"
	"os"
	"path/filepath"
)

// Loader reads named files from a fixtures directory.
//
// Names are joined to the directory as given. Callers are responsible for not passing names
// that escape the directory; the Loader does not check.
type Loader struct {
	Dir string
}

func NewLoader(dir string) Loader {
	return Loader{Dir: dir}
}

// Path returns the full path of the named fixture.
func (l Loader) Path(name string) string {
	return filepath.Join(l.Dir, name)
}

// Load returns the full content of the named fixture.
func (l Loader) Load(name string) ([]byte, error) {
	data, err := os.ReadFile(l.Path(name))
	if err != nil {
		return nil, fmt.Errorf("cannot read fixture %q: %w", name, err)
	}
	return data, nil
}

// LoadString is Load returning text.
func (l Loader) LoadString(name string) (string, error) {
	data, err := l.Load(name)
	return string(data), err
}

// Digest returns the Digest of the named fixture's content.
func (l Loader) Digest(name string) (string, error) {
	data, err := l.Load(name)
	if err != nil {
		return "", err
	}
	return Digest(data), nil
}
