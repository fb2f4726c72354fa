package exporter

import (
	"fmt"
	"io"

	"github.com/sleroq/boostnote-to-obsidian/internal/styles"
)

type Stage string

const (
	StageParse Stage = "parse"
	StageWrite Stage = "write"
)

type WrittenNote struct {
	File   string
	Dest   string
	Title  string
	Folder string
	Type   string
}

type FailedNote struct {
	File  string
	Dest  string // empty for parse failures
	Stage Stage
	Err   error
}

// Overwrite records an output file replaced by a later note in the same run.
type Overwrite struct {
	Dest     string
	Previous string
	Current  string
}

// Report is the outcome of a run. Every listed note file appears in exactly
// one of Written, Skipped or Failed.
type Report struct {
	Total       int
	Written     []WrittenNote
	Skipped     []string
	Failed      []FailedNote
	Overwritten []Overwrite
}

func (r Report) HasErrors() bool {
	return len(r.Failed) > 0
}

// WriteSummary prints the counts and the trashed, overwritten and failed
// listings, followed by the final status line.
func WriteSummary(w io.Writer, r Report) {
	fmt.Fprintf(w, "%s %d written, %d skipped, %d failed\n",
		styles.TitleStyle.Render("Summary:"), len(r.Written), len(r.Skipped), len(r.Failed))

	if len(r.Skipped) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, styles.WarningStyle.Render("Some files marked as trashed were skipped"))
		fmt.Fprintf(w, "%s file(s) were marked as trashed:\n\n", styles.CountStyle.Render(fmt.Sprint(len(r.Skipped))))
		for _, name := range r.Skipped {
			fmt.Fprintf(w, "- %s\n", name)
		}
	}

	if len(r.Overwritten) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, styles.WarningStyle.Render("Some notes share a title and folder"))
		fmt.Fprintf(w, "%s file(s) were overwritten by a later note:\n\n", styles.CountStyle.Render(fmt.Sprint(len(r.Overwritten))))
		for _, o := range r.Overwritten {
			fmt.Fprintf(w, "- %s %s\n", o.Dest, styles.DimStyle.Render(fmt.Sprintf("(%s replaced by %s)", o.Previous, o.Current)))
		}
	}

	if r.HasErrors() {
		fmt.Fprintln(w)
		fmt.Fprintln(w, styles.ErrorStyle.Render("Conversion completed with errors"))
		fmt.Fprintf(w, "%s file(s) failed to convert:\n\n", styles.CountStyle.Render(fmt.Sprint(len(r.Failed))))
		for _, f := range r.Failed {
			fmt.Fprintf(w, "- %s %s\n", f.File, styles.DimStyle.Render(fmt.Sprintf("(%s: %v)", f.Stage, f.Err)))
		}
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, styles.SuccessStyle.Render("Conversion completed successfully! All files processed."))
}
