package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkspaceAdapter_FindLayouts(t *testing.T) {
	root := t.TempDir()
	screens := filepath.Join(root, "screens")
	require.NoError(t, os.MkdirAll(screens, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(screens, "login.layout.yaml"), []byte("kind: layout"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "main.layout.yml"), []byte("kind: layout"), 0644))
	// Plain yaml files are not layouts.
	require.NoError(t, os.WriteFile(filepath.Join(screens, "theme.yaml"), []byte("a: 1"), 0644))

	adapter := NewWorkspaceAdapter()
	paths, err := adapter.FindLayouts(root)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "main.layout.yml"),
		filepath.Join(screens, "login.layout.yaml"),
	}, paths)
}

func TestWorkspaceAdapter_SkipsOutputDirs(t *testing.T) {
	root := t.TempDir()
	for _, dir := range []string{"out", "vendor", ".git", ".cache"} {
		ignored := filepath.Join(root, dir)
		require.NoError(t, os.MkdirAll(ignored, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(ignored, "copy.layout.yaml"), []byte("kind: layout"), 0644))
	}
	real := filepath.Join(root, "src")
	require.NoError(t, os.MkdirAll(real, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(real, "real.layout.yaml"), []byte("kind: layout"), 0644))

	adapter := NewWorkspaceAdapter()
	paths, err := adapter.FindLayouts(root)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Contains(t, paths[0], "real.layout.yaml")
}

func TestWorkspaceAdapter_EmptyRootErrors(t *testing.T) {
	adapter := NewWorkspaceAdapter()
	_, err := adapter.FindLayouts("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "workspace root is empty")
}

func TestWorkspaceAdapter_NonExistentRootErrors(t *testing.T) {
	adapter := NewWorkspaceAdapter()
	_, err := adapter.FindLayouts("/nonexistent/path/that/does/not/exist")
	require.Error(t, err)
}

func TestWorkspaceAdapter_EmptyWorkspaceReturnsNil(t *testing.T) {
	root := t.TempDir()
	adapter := NewWorkspaceAdapter()
	paths, err := adapter.FindLayouts(root)
	require.NoError(t, err)
	assert.Nil(t, paths)
}
