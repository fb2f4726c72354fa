package exporter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	boostnotedomain "github.com/sleroq/boostnote-to-obsidian/internal/domain/boostnote"
	"github.com/sleroq/boostnote-to-obsidian/internal/infra/boostnotejson"
	"github.com/sleroq/boostnote-to-obsidian/internal/infra/exportfs"
	"github.com/sleroq/boostnote-to-obsidian/internal/logger"
)

type Exporter struct {
	NotesDir        string
	FolderIndexPath string
	OutputDir       string
	Frontmatter     bool
	ApplyTimestamps bool
	ShowProgressBar bool

	// Out receives the per-note progress lines. Defaults to stdout.
	Out io.Writer
	Log *logger.Logger
}

func (e Exporter) Run() (Report, error) {
	if e.NotesDir == "" || e.FolderIndexPath == "" || e.OutputDir == "" {
		return Report{}, fmt.Errorf("notes directory, folder index and output directory are required")
	}

	out := e.Out
	if out == nil {
		out = os.Stdout
	}
	log := e.Log
	if log == nil {
		log = logger.Discard()
	}

	started := time.Now()
	log.RunStarted(e.NotesDir, e.FolderIndexPath, e.OutputDir)

	folders, err := boostnotejson.ReadFolderIndex(e.FolderIndexPath)
	if err != nil {
		return Report{}, err
	}
	log.FoldersLoaded(folders.Len())

	files, err := boostnotejson.ListNoteFiles(e.NotesDir)
	if err != nil {
		return Report{}, err
	}

	if err := exportfs.EnsureDir(e.OutputDir); err != nil {
		return Report{}, fmt.Errorf("create output dir: %w", err)
	}

	report := Report{Total: len(files)}
	fmt.Fprintf(out, "Total notes to process: %d\n\n", report.Total)

	conv := conversion{
		exporter:  e,
		out:       out,
		log:       log,
		folders:   folders,
		report:    &report,
		writtenBy: make(map[string]string, len(files)),
	}

	progressBar := newExportProgressBar(len(files), e.ShowProgressBar)
	defer progressBar.Close()

	for i, name := range files {
		conv.convert(i+1, name)
		progressBar.Advance(name, &report)
	}
	progressBar.Finish(&report)

	log.RunCompleted(len(report.Written), len(report.Skipped), len(report.Failed), time.Since(started))
	return report, nil
}

type conversion struct {
	exporter  Exporter
	out       io.Writer
	log       *logger.Logger
	folders   boostnotedomain.FolderIndex
	report    *Report
	writtenBy map[string]string
}

func (c *conversion) convert(ordinal int, name string) {
	total := c.report.Total
	source := filepath.Join(c.exporter.NotesDir, name)

	note, err := boostnotejson.ReadNote(source)
	if err != nil {
		fmt.Fprintf(c.out, "[%d/%d] Failed to parse %s: %v\n", ordinal, total, name, err)
		c.log.ParseFailed(name, err)
		c.report.Failed = append(c.report.Failed, FailedNote{File: name, Stage: StageParse, Err: err})
		return
	}

	if note.IsTrashed {
		c.log.NoteSkipped(name, "trashed")
		c.report.Skipped = append(c.report.Skipped, name)
		return
	}

	folderName := c.folders.Resolve(note.FolderKey)
	folderPath := filepath.Join(c.exporter.OutputDir, folderName)
	title := boostnotedomain.SanitizeOr(note.Title, boostnotedomain.UntitledTitle)
	dest := filepath.Join(folderPath, title+".md")

	fmt.Fprintf(c.out, "[%d/%d] Writing: %s\n", ordinal, total, dest)
	fmt.Fprintf(c.out, "   - Title : %s\n", title)
	fmt.Fprintf(c.out, "   - Type  : %s\n", typeLabel(note))
	fmt.Fprintf(c.out, "   - Folder: %s\n\n", folderName)

	if err := c.write(note, folderPath, dest); err != nil {
		fmt.Fprintf(c.out, "   !! Failed to write %s: %v\n\n", dest, err)
		c.log.WriteFailed(name, dest, err)
		c.report.Failed = append(c.report.Failed, FailedNote{File: name, Dest: dest, Stage: StageWrite, Err: err})
		return
	}

	key := collisionKey(dest)
	if previous, ok := c.writtenBy[key]; ok {
		c.log.NoteOverwritten(dest, previous, name)
		c.report.Overwritten = append(c.report.Overwritten, Overwrite{Dest: dest, Previous: previous, Current: name})
	}
	c.writtenBy[key] = name

	c.log.NoteWritten(name, dest, note.Type())
	c.report.Written = append(c.report.Written, WrittenNote{
		File:   name,
		Dest:   dest,
		Title:  title,
		Folder: folderName,
		Type:   note.Type(),
	})

	if c.exporter.ApplyTimestamps {
		if err := exportfs.ApplyExportedFileTimes(dest, note, setFileCreationTime); err != nil {
			c.log.TimestampFailed(dest, err)
		}
	}
}

func (c *conversion) write(note boostnotedomain.Note, folderPath, dest string) error {
	if err := exportfs.EnsureDir(folderPath); err != nil {
		return err
	}

	content := renderBody(note)
	if c.exporter.Frontmatter {
		fm, err := renderFrontmatter(note)
		if err != nil {
			return err
		}
		content = fm + content
	}

	if err := exportfs.WriteFile(dest, []byte(content)); err != nil {
		return fmt.Errorf("write note: %w", err)
	}
	return nil
}

func typeLabel(note boostnotedomain.Note) string {
	if t := note.Type(); t != "" {
		return t
	}
	return "(none)"
}

// collisionKey folds case on filesystems that are case-insensitive by default.
func collisionKey(path string) string {
	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" {
		return strings.ToLower(path)
	}
	return path
}
