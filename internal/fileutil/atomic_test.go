package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "jobs", "run.txt")

	require.NoError(t, WriteAtomic(path, []byte("set_pot 50\n"), 0o644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "set_pot 50\n", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp file left behind")
	assert.Equal(t, "run.txt", entries[0].Name())
}

func TestWriteAtomicOverwrites(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "run.txt")
	require.NoError(t, WriteAtomic(path, []byte("first"), 0o644))
	require.NoError(t, WriteAtomic(path, []byte("second"), 0o600))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestWriteAtomicFailsOnFileParent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	assert.Error(t, WriteAtomic(filepath.Join(blocker, "run.txt"), []byte("x"), 0o644))
}

func TestRemoveIfExists(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "output_result.json")
	assert.NoError(t, RemoveIfExists(path), "missing file is fine")

	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))
	assert.True(t, Exists(path))
	require.NoError(t, RemoveIfExists(path))
	assert.False(t, Exists(path))
}

func TestAppend(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "outputs", "summary.txt")
	require.NoError(t, Append(path, []byte("one\n")))
	require.NoError(t, Append(path, []byte("two\n")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", string(data))
	assert.False(t, Exists(filepath.Dir(path)), "directories are not regular files")
}
