package boostnotejson

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	boostnotedomain "github.com/sleroq/boostnote-to-obsidian/internal/domain/boostnote"
	"github.com/sleroq/boostnote-to-obsidian/internal/infra/cson"
)

const noteExt = ".cson"

// ReadFolderIndex loads boostnote.json. Any error here is fatal for a run.
func ReadFolderIndex(path string) (boostnotedomain.FolderIndex, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return boostnotedomain.FolderIndex{}, fmt.Errorf("read folder index: %w", err)
	}
	var f boostnotedomain.FolderIndexFile
	if err := json.Unmarshal(b, &f); err != nil {
		return boostnotedomain.FolderIndex{}, fmt.Errorf("decode folder index %s: %w", path, err)
	}
	return boostnotedomain.NewFolderIndex(f.Folders), nil
}

// ListNoteFiles returns the names of the .cson files directly inside dir,
// sorted so runs are reproducible.
func ListNoteFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read notes dir: %w", err)
	}
	var out []string
	for _, ent := range entries {
		if ent.IsDir() || !strings.HasSuffix(ent.Name(), noteExt) {
			continue
		}
		out = append(out, ent.Name())
	}
	sort.Strings(out)
	return out, nil
}

// ReadNote decodes one note file. The note key is the file name without
// its extension.
func ReadNote(path string) (boostnotedomain.Note, error) {
	raw, err := cson.ReadFile(path)
	if err != nil {
		return boostnotedomain.Note{}, err
	}
	details, ok := raw.(map[string]any)
	if !ok {
		return boostnotedomain.Note{}, fmt.Errorf("%w: got %s", boostnotedomain.ErrNotObject, describe(raw))
	}
	note, err := decodeNote(details)
	if err != nil {
		return boostnotedomain.Note{}, err
	}
	note.Key = strings.TrimSuffix(filepath.Base(path), noteExt)
	return note, nil
}

func decodeNote(details map[string]any) (boostnotedomain.Note, error) {
	note := boostnotedomain.Note{
		Title:     boostnotedomain.UntitledTitle,
		FolderKey: asString(details["folder"]),
		IsTrashed: asBool(details["isTrashed"]),
		IsStarred: asBool(details["isStarred"]),
		IsPinned:  asBool(details["isPinned"]),
		Tags:      anyToStringSlice(details["tags"]),
	}
	if title, ok := details["title"]; ok {
		note.Title = asString(title)
	}
	note.CreatedAt, _ = boostnotedomain.ParseTimestamp(details["createdAt"])
	note.UpdatedAt, _ = boostnotedomain.ParseTimestamp(details["updatedAt"])

	typeTag := asString(details["type"])
	switch typeTag {
	case boostnotedomain.TypeMarkdown:
		note.Body = boostnotedomain.MarkdownBody{Content: asString(details["content"])}
	case boostnotedomain.TypeSnippet:
		snippets, err := decodeSnippets(details["snippets"])
		if err != nil {
			return boostnotedomain.Note{}, err
		}
		note.Body = boostnotedomain.SnippetBody{
			Description: asString(details["description"]),
			Snippets:    snippets,
		}
	default:
		note.Body = boostnotedomain.UnknownBody{Type: typeTag}
	}
	return note, nil
}

func decodeSnippets(v any) ([]boostnotedomain.SnippetEntry, error) {
	if v == nil {
		return nil, nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: got %s", boostnotedomain.ErrInvalidSnippets, describe(v))
	}
	out := make([]boostnotedomain.SnippetEntry, 0, len(items))
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: entry %d is %s", boostnotedomain.ErrInvalidSnippets, i, describe(item))
		}
		name := boostnotedomain.DefaultSnippetName
		if raw, ok := m["name"]; ok {
			name = asString(raw)
		}
		out = append(out, boostnotedomain.SnippetEntry{
			Name:    name,
			Mode:    asString(m["mode"]),
			Content: asString(m["content"]),
		})
	}
	return out, nil
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "an empty document"
	case []any:
		return "a list"
	case map[string]any:
		return "an object"
	case string:
		return "a string"
	case float64:
		return "a number"
	case bool:
		return "a boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// asBool follows loose truthiness: any non-empty value counts as true except
// the strings false, no, off and 0.
func asBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "", "false", "no", "off", "0":
			return false
		}
		return true
	case float64:
		return t != 0
	case int:
		return t != 0
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return false
	}
}

func anyToStringSlice(v any) []string {
	switch t := v.(type) {
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			s := strings.TrimSpace(asString(item))
			if s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if t == "" {
			return nil
		}
		return []string{t}
	default:
		return nil
	}
}
