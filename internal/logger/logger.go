package logger

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps charm/log with the events a conversion run reports.
type Logger struct {
	*log.Logger
}

// New creates a logger writing to w at the given level.
func New(w io.Writer, level log.Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
	})
	return &Logger{Logger: l}
}

// ParseLevel accepts debug, info, warn, error and fatal.
func ParseLevel(s string) (log.Level, error) {
	return log.ParseLevel(s)
}

// Discard returns a logger that discards all output
func Discard() *Logger {
	return New(io.Discard, log.FatalLevel)
}

func (l *Logger) RunStarted(notesDir, folderIndex, outputDir string) {
	l.Info("conversion started",
		"notes_dir", notesDir,
		"folder_index", folderIndex,
		"output_dir", outputDir)
}

func (l *Logger) FoldersLoaded(count int) {
	l.Debug("folder index loaded", "folders", count)
}

func (l *Logger) NoteWritten(source, dest, noteType string) {
	l.Debug("note written",
		"source", source,
		"dest", dest,
		"type", noteType)
}

func (l *Logger) NoteSkipped(source, reason string) {
	l.Debug("note skipped",
		"source", source,
		"reason", reason)
}

func (l *Logger) ParseFailed(source string, err error) {
	l.Error("parse failed",
		"source", source,
		"error", err)
}

func (l *Logger) WriteFailed(source, dest string, err error) {
	l.Error("write failed",
		"source", source,
		"dest", dest,
		"error", err)
}

func (l *Logger) NoteOverwritten(dest, previous, current string) {
	l.Warn("output overwritten by a note with the same title",
		"dest", dest,
		"previous", previous,
		"current", current)
}

func (l *Logger) TimestampFailed(dest string, err error) {
	l.Warn("could not apply note timestamps",
		"dest", dest,
		"error", err)
}

func (l *Logger) RunCompleted(written, skipped, failed int, duration time.Duration) {
	l.Info("conversion completed",
		"written", written,
		"skipped", skipped,
		"failed", failed,
		"duration", duration.Round(time.Millisecond))
}
