package exporter

import (
	"bytes"
	"fmt"
	"strings"
	"time"
	"unicode"

	"gopkg.in/yaml.v3"

	boostnotedomain "github.com/sleroq/boostnote-to-obsidian/internal/domain/boostnote"
)

type noteFrontmatter struct {
	Title        string   `yaml:"title"`
	Tags         []string `yaml:"tags,omitempty"`
	Created      string   `yaml:"created,omitempty"`
	Updated      string   `yaml:"updated,omitempty"`
	Starred      bool     `yaml:"starred,omitempty"`
	Pinned       bool     `yaml:"pinned,omitempty"`
	BoostnoteKey string   `yaml:"boostnote_key,omitempty"`
	Type         string   `yaml:"type,omitempty"`
	Description  string   `yaml:"description,omitempty"`
}

func renderFrontmatter(note boostnotedomain.Note) (string, error) {
	fm := noteFrontmatter{
		Title:        strings.TrimSpace(note.Title),
		Tags:         sanitizeObsidianTags(note.Tags),
		Created:      formatTimestamp(note.CreatedAt),
		Updated:      formatTimestamp(note.UpdatedAt),
		Starred:      note.IsStarred,
		Pinned:       note.IsPinned,
		BoostnoteKey: note.Key,
		Type:         note.Type(),
	}
	if fm.Title == "" {
		fm.Title = boostnotedomain.UntitledTitle
	}
	if snippet, ok := note.Body.(boostnotedomain.SnippetBody); ok {
		fm.Description = strings.TrimSpace(snippet.Description)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(fm); err != nil {
		return "", fmt.Errorf("encode frontmatter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encode frontmatter: %w", err)
	}
	buf.WriteString("---\n\n")
	return buf.String(), nil
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func sanitizeObsidianTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, raw := range tags {
		tag := sanitizeObsidianTag(raw)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// sanitizeObsidianTag keeps letters, digits, '_', '-' and '/' nesting.
// Purely numeric tags get a "y" prefix since Obsidian rejects them.
func sanitizeObsidianTag(raw string) string {
	raw = strings.TrimPrefix(strings.TrimSpace(raw), "#")
	if raw == "" {
		return ""
	}

	parts := strings.Split(raw, "/")
	cleaned := make([]string, 0, len(parts))
	for _, part := range parts {
		if c := sanitizeObsidianTagPart(part); c != "" {
			cleaned = append(cleaned, c)
		}
	}
	if len(cleaned) == 0 {
		return ""
	}

	tag := strings.Join(cleaned, "/")
	for _, r := range tag {
		if r != '/' && !unicode.IsDigit(r) {
			return tag
		}
	}
	return "y" + tag
}

func sanitizeObsidianTagPart(part string) string {
	var b strings.Builder
	lastHyphen := false
	for _, r := range strings.TrimSpace(part) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '_', r == '-':
			b.WriteRune(r)
			lastHyphen = r == '-'
		default:
			if !lastHyphen && b.Len() > 0 {
				b.WriteRune('-')
				lastHyphen = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
