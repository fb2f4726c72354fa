package boostnote

import "time"

const (
	TypeMarkdown = "MARKDOWN_NOTE"
	TypeSnippet  = "SNIPPET_NOTE"
)

const (
	UntitledTitle       = "Untitled"
	UncategorizedFolder = "Uncategorized"
	DefaultSnippetName  = "Snippet"
)

type FolderRecord struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

type FolderIndexFile struct {
	Folders []FolderRecord `json:"folders"`
}

// Note is one decoded .cson file. Body carries the type-specific payload.
type Note struct {
	Key       string
	Title     string
	FolderKey string
	IsTrashed bool
	IsStarred bool
	IsPinned  bool
	Tags      []string
	CreatedAt time.Time
	UpdatedAt time.Time
	Body      Body
}

// Type returns the raw type tag the note was stored with.
func (n Note) Type() string {
	switch b := n.Body.(type) {
	case MarkdownBody:
		return TypeMarkdown
	case SnippetBody:
		return TypeSnippet
	case UnknownBody:
		return b.Type
	default:
		return ""
	}
}

// Body is implemented by MarkdownBody, SnippetBody and UnknownBody only.
type Body interface {
	isBody()
}

type MarkdownBody struct {
	Content string
}

type SnippetBody struct {
	Description string
	Snippets    []SnippetEntry
}

// UnknownBody is any type tag without a rendering rule, including an absent one.
// It renders as an empty file.
type UnknownBody struct {
	Type string
}

func (MarkdownBody) isBody() {}
func (SnippetBody) isBody()  {}
func (UnknownBody) isBody()  {}

type SnippetEntry struct {
	Name    string
	Mode    string
	Content string
}
