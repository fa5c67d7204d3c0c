package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClean_RemovesExistingTree(t *testing.T) {
	root := filepath.Join(t.TempDir(), "build")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "old", "deep"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(root, "old", "page.html"), []byte("stale"), 0o644))

	m := NewManager(root)
	require.Equal(t, root, m.Path())
	require.NoError(t, m.Clean())

	_, err := os.Stat(root)
	require.True(t, os.IsNotExist(err))
}

func TestPromote_SwapsStagedTree(t *testing.T) {
	base := t.TempDir()
	final := filepath.Join(base, "build")
	staging := filepath.Join(base, "build.staging")
	require.NoError(t, os.MkdirAll(final, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(final, "old.html"), []byte("old"), 0o644))
	require.NoError(t, os.MkdirAll(staging, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(staging, "new.html"), []byte("new"), 0o644))

	m := NewManager(final)
	require.NoError(t, m.Promote(staging))

	got, err := os.ReadFile(filepath.Join(final, "new.html"))
	require.NoError(t, err)
	require.Equal(t, "new", string(got))

	_, err = os.Stat(filepath.Join(final, "old.html"))
	require.True(t, os.IsNotExist(err))
	_, err = os.Stat(staging)
	require.True(t, os.IsNotExist(err))
}

func TestPromote_MissingStaging_KeepsOutput(t *testing.T) {
	base := t.TempDir()
	final := filepath.Join(base, "build")
	require.NoError(t, os.MkdirAll(final, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(final, "old.html"), []byte("old"), 0o644))

	m := NewManager(final)
	require.Error(t, m.Promote(filepath.Join(base, "nope")))

	// The previous output survives a promotion that had nothing to promote.
	_, err := os.Stat(filepath.Join(final, "old.html"))
	require.NoError(t, err)
}

func TestClean_AbsentRootIsFine(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "never-created"))
	require.NoError(t, m.Clean())
	require.NoError(t, m.Clean())
}
