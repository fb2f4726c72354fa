package exportfs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	boostnotedomain "github.com/sleroq/boostnote-to-obsidian/internal/domain/boostnote"
)

func TestEnsureDirCreatesParentsAndToleratesExisting(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")
	require.NoError(t, EnsureDir(dir))
	require.NoError(t, EnsureDir(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestEnsureDirFailsWhenPathIsAFile(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "taken")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	err := EnsureDir(file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create folder")
}

func TestWriteFileOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.md")
	require.NoError(t, WriteFile(path, []byte("first version, longer")))
	require.NoError(t, WriteFile(path, []byte("second")))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(b))
}

func TestWriteFileFailsForMissingParent(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "missing", "note.md"), []byte("x"))
	require.Error(t, err)
}

func TestApplyExportedFileTimes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.md")
	require.NoError(t, WriteFile(path, []byte("x")))

	created := time.Date(2018, 5, 10, 9, 12, 45, 0, time.UTC)
	updated := time.Date(2019, 1, 2, 3, 4, 5, 0, time.UTC)

	var stamped time.Time
	err := ApplyExportedFileTimes(path, boostnotedomain.Note{CreatedAt: created, UpdatedAt: updated}, func(_ string, c time.Time) error {
		stamped = c
		return nil
	})
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(updated), "mtime %s", info.ModTime())
	assert.True(t, stamped.Equal(created))
}

func TestApplyExportedFileTimesSkipsNotesWithoutDates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.md")
	require.NoError(t, WriteFile(path, []byte("x")))
	before, err := os.Stat(path)
	require.NoError(t, err)

	called := false
	err = ApplyExportedFileTimes(path, boostnotedomain.Note{}, func(string, time.Time) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.False(t, called)

	after, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, before.ModTime(), after.ModTime())
}
