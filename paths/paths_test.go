package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	root := t.TempDir()
	p, err := New(root)
	require.NoError(t, err)

	assert.Equal(t, root, p.Root)
	assert.Equal(t, filepath.Join(root, "tests", "img"), p.Fixtures)
	assert.Equal(t, filepath.Join(root, "nginx", "app", "src", "init.lua"), p.InitSource())
	assert.Equal(t, filepath.Join(root, "nginx", "app", "src", "modules", "errno.lua"), p.ErrnoSource())
}

func TestNewMakesRelativeRootAbsolute(t *testing.T) {
	p, err := New(".")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(p.Root))
	assert.True(t, filepath.IsAbs(p.Fixtures))
}

func TestFromWorkingDir(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	p, err := FromWorkingDir()
	require.NoError(t, err)
	assert.Equal(t, wd, p.Root)
}
