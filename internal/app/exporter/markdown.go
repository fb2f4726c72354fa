package exporter

import (
	"strings"

	boostnotedomain "github.com/sleroq/boostnote-to-obsidian/internal/domain/boostnote"
)

// renderBody produces the Markdown written for a note. Markdown notes are
// copied verbatim; snippet notes become a sequence of fenced code blocks.
func renderBody(note boostnotedomain.Note) string {
	switch body := note.Body.(type) {
	case boostnotedomain.MarkdownBody:
		return body.Content
	case boostnotedomain.SnippetBody:
		return renderSnippets(body.Snippets)
	default:
		return ""
	}
}

func renderSnippets(snippets []boostnotedomain.SnippetEntry) string {
	var b strings.Builder
	headed := len(snippets) > 1
	for _, snippet := range snippets {
		if headed {
			b.WriteString("### ")
			b.WriteString(snippet.Name)
			b.WriteString("\n\n")
		}
		b.WriteString("```\n")
		b.WriteString(snippet.Content)
		b.WriteString("\n```\n\n")
	}
	return b.String()
}
