package exportfs

import (
	"fmt"
	"os"
	"time"

	boostnotedomain "github.com/sleroq/boostnote-to-obsidian/internal/domain/boostnote"
)

// EnsureDir creates dir and any missing parents. An existing directory is
// fine; an existing non-directory is an error.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create folder %s: %w", dir, err)
	}
	return nil
}

// WriteFile replaces path with content.
func WriteFile(path string, content []byte) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := out.Write(content); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// ApplyExportedFileTimes stamps path with the note's creation and update
// times. Notes without usable timestamps are left alone.
func ApplyExportedFileTimes(path string, note boostnotedomain.Note, setFileCreationTime func(path string, created time.Time) error) error {
	atime, mtime, ok := boostnotedomain.NoteTimestamps(note)
	if !ok {
		return nil
	}
	if err := os.Chtimes(path, atime, mtime); err != nil {
		return err
	}
	if !note.CreatedAt.IsZero() && setFileCreationTime != nil {
		if err := setFileCreationTime(path, note.CreatedAt); err != nil {
			return err
		}
	}
	return nil
}
