package boostnote

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

var (
	ErrNotObject       = errors.New("note is not an object")
	ErrInvalidSnippets = errors.New("snippets is not a list of objects")
)

var unsafeNameChars = strings.NewReplacer(
	"<", "",
	">", "",
	":", "",
	`"`, "",
	"/", "",
	`\`, "",
	"|", "",
	"?", "",
	"*", "",
	"\n", "",
	"\r", "",
	"\t", "",
)

// Sanitize strips characters that are unsafe in file and folder names and
// trims surrounding whitespace. The result may be empty.
func Sanitize(name string) string {
	return strings.TrimSpace(unsafeNameChars.Replace(name))
}

// SanitizeOr is Sanitize with a fallback for names that end up empty or
// would resolve to the current or parent directory.
func SanitizeOr(name string, fallback string) string {
	out := Sanitize(name)
	if out == "" || out == "." || out == ".." {
		return fallback
	}
	return out
}

// FolderIndex maps Boostnote folder keys to sanitized directory names.
type FolderIndex struct {
	names map[string]string
}

func NewFolderIndex(records []FolderRecord) FolderIndex {
	names := make(map[string]string, len(records))
	for _, rec := range records {
		key := strings.TrimSpace(rec.Key)
		if key == "" {
			continue
		}
		names[key] = SanitizeOr(rec.Name, UncategorizedFolder)
	}
	return FolderIndex{names: names}
}

// Resolve returns the directory name for key, or UncategorizedFolder when the
// key is empty or unknown.
func (idx FolderIndex) Resolve(key string) string {
	if name, ok := idx.names[key]; ok {
		return name
	}
	return UncategorizedFolder
}

func (idx FolderIndex) Len() int {
	return len(idx.names)
}

// NoteTimestamps picks access and modification times for an exported file.
// Access time prefers creation, modification prefers the last update.
func NoteTimestamps(n Note) (time.Time, time.Time, bool) {
	atime := n.CreatedAt
	mtime := n.UpdatedAt
	if mtime.IsZero() {
		mtime = atime
	}
	if atime.IsZero() {
		atime = mtime
	}
	if atime.IsZero() || mtime.IsZero() {
		return time.Time{}, time.Time{}, false
	}
	return atime, mtime, true
}

// ParseTimestamp accepts RFC3339 strings (Boostnote writes ISO dates with
// milliseconds) and unix epochs in seconds or milliseconds.
func ParseTimestamp(value any) (time.Time, bool) {
	toUnixSeconds := func(v int64) int64 {
		if v > 1_000_000_000_000 || v < -1_000_000_000_000 {
			return v / 1000
		}
		return v
	}

	switch t := value.(type) {
	case float64:
		return time.Unix(toUnixSeconds(int64(t)), 0).UTC(), true
	case int:
		return time.Unix(toUnixSeconds(int64(t)), 0).UTC(), true
	case int64:
		return time.Unix(toUnixSeconds(t), 0).UTC(), true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}, false
		}
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return time.Unix(toUnixSeconds(i), 0).UTC(), true
		}
		if tm, err := time.Parse(time.RFC3339Nano, s); err == nil {
			return tm.UTC(), true
		}
		if tm, err := time.Parse("2006-01-02", s); err == nil {
			return tm.UTC(), true
		}
	}

	return time.Time{}, false
}
