// Package paths resolves the locations the harness works with. Everything is relative to a
// single root directory, which by default is the process's working directory: the harness is
// expected to be launched from the top of the service's source checkout.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths relative to the harness root.
const (
	FixturesDir = "tests/img"
	InitSource  = "nginx/app/src/init.lua"
	ErrnoSource = "nginx/app/src/modules/errno.lua"
)

// Paths holds the absolute locations resolved once at startup. It is a plain value and is
// never modified after construction.
type Paths struct {
	Root     string
	Fixtures string
}

// FromWorkingDir resolves Paths using the current working directory as the root.
func FromWorkingDir() (Paths, error) {
	wd, err := os.Getwd()
	if err != nil {
		return Paths{}, fmt.Errorf("cannot determine working directory: %w", err)
	}
	return New(wd)
}

// New resolves Paths using the given directory as the root.
func New(root string) (Paths, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return Paths{}, fmt.Errorf("cannot resolve harness root %q: %w", root, err)
	}
	return Paths{
		Root:     abs,
		Fixtures: filepath.Join(abs, filepath.FromSlash(FixturesDir)),
	}, nil
}

// Join returns the absolute form of a slash-separated path relative to the root.
func (p Paths) Join(rel string) string {
	return filepath.Join(p.Root, filepath.FromSlash(rel))
}

func (p Paths) InitSource() string { return p.Join(InitSource) }

func (p Paths) ErrnoSource() string { return p.Join(ErrnoSource) }
