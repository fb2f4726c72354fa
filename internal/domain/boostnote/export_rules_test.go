package boostnote

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain name unchanged", in: "Meeting notes", want: "Meeting notes"},
		{name: "strips angle bracket", in: "Wo<rk", want: "Work"},
		{name: "strips every unsafe character", in: `a<b>c:d"e/f\g|h?i*j`, want: "abcdefghij"},
		{name: "strips control whitespace", in: "line\none\rtwo\tthree", want: "lineonetwothree"},
		{name: "trims surrounding spaces", in: "   padded   ", want: "padded"},
		{name: "trims spaces exposed by stripping", in: "\t  ? title *  \n", want: "title"},
		{name: "keeps inner spaces and unicode", in: "日本語 メモ ✓", want: "日本語 メモ ✓"},
		{name: "path traversal loses separators", in: "../../etc/passwd", want: "....etcpasswd"},
		{name: "empty stays empty", in: "", want: ""},
		{name: "only unsafe characters becomes empty", in: `<>:"/\|?*`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.in))
		})
	}
}

func TestSanitizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"", " ", "Wo<rk", " a : b ", "\t\n", "x\n y", ` "quoted" `, "a / b / c", "  ..  ", "\r\n\t?<>",
	}
	for _, in := range inputs {
		once := Sanitize(in)
		assert.Equal(t, once, Sanitize(once), "input %q", in)
		assert.NotContains(t, once, "\n")
		assert.Equal(t, strings.TrimSpace(once), once)
	}
}

func TestSanitizeOrFallsBackForEmptyAndDotSegments(t *testing.T) {
	assert.Equal(t, "Untitled", SanitizeOr("", UntitledTitle))
	assert.Equal(t, "Untitled", SanitizeOr("  ?*  ", UntitledTitle))
	assert.Equal(t, "Untitled", SanitizeOr(".", UntitledTitle))
	assert.Equal(t, "Uncategorized", SanitizeOr("..", UncategorizedFolder))
	assert.Equal(t, "Hello", SanitizeOr(" Hello ", UntitledTitle))
}

func TestFolderIndexResolve(t *testing.T) {
	idx := NewFolderIndex([]FolderRecord{
		{Key: "f1", Name: "Wo<rk"},
		{Key: "f2", Name: ""},
		{Key: "", Name: "No key"},
		{Key: "f3", Name: "First"},
		{Key: "f3", Name: "Second"},
	})

	assert.Equal(t, 3, idx.Len())
	assert.Equal(t, "Work", idx.Resolve("f1"))
	assert.Equal(t, "Uncategorized", idx.Resolve("f2"))
	assert.Equal(t, "Second", idx.Resolve("f3"))
	assert.Equal(t, "Uncategorized", idx.Resolve(""))
	assert.Equal(t, "Uncategorized", idx.Resolve("missing"))
}

func TestZeroFolderIndexResolvesEverythingToUncategorized(t *testing.T) {
	var idx FolderIndex
	assert.Equal(t, "Uncategorized", idx.Resolve("f1"))
}

func TestParseTimestampVariants(t *testing.T) {
	want := time.Date(2019, 3, 4, 5, 6, 7, 0, time.UTC)

	got, ok := ParseTimestamp("2019-03-04T05:06:07.000Z")
	require.True(t, ok)
	assert.True(t, want.Equal(got))

	got, ok = ParseTimestamp(float64(want.Unix()))
	require.True(t, ok)
	assert.True(t, want.Equal(got))

	got, ok = ParseTimestamp(want.UnixMilli())
	require.True(t, ok)
	assert.True(t, want.Equal(got))

	got, ok = ParseTimestamp("2019-03-04")
	require.True(t, ok)
	assert.Equal(t, "2019-03-04", got.Format("2006-01-02"))

	_, ok = ParseTimestamp("yesterday")
	assert.False(t, ok)
	_, ok = ParseTimestamp(nil)
	assert.False(t, ok)
}

func TestNoteTimestampsFallBackToWhicheverIsSet(t *testing.T) {
	created := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	updated := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)

	atime, mtime, ok := NoteTimestamps(Note{CreatedAt: created, UpdatedAt: updated})
	require.True(t, ok)
	assert.Equal(t, created, atime)
	assert.Equal(t, updated, mtime)

	atime, mtime, ok = NoteTimestamps(Note{UpdatedAt: updated})
	require.True(t, ok)
	assert.Equal(t, updated, atime)
	assert.Equal(t, updated, mtime)

	_, _, ok = NoteTimestamps(Note{})
	assert.False(t, ok)
}

func TestNoteTypeFollowsBodyVariant(t *testing.T) {
	assert.Equal(t, TypeMarkdown, Note{Body: MarkdownBody{}}.Type())
	assert.Equal(t, TypeSnippet, Note{Body: SnippetBody{}}.Type())
	assert.Equal(t, "TODO_NOTE", Note{Body: UnknownBody{Type: "TODO_NOTE"}}.Type())
	assert.Equal(t, "", Note{}.Type())
}
