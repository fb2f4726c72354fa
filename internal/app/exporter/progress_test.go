package exporter

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressBarShowsRunningTally(t *testing.T) {
	var buf bytes.Buffer
	bar := newProgressBarTo(&buf, 2, true)

	report := Report{Total: 2, Written: []WrittenNote{{File: "a.cson"}}}
	bar.Advance("a.cson", &report)
	assert.Contains(t, buf.String(), "1/2 a.cson (1 written, 0 skipped, 0 failed)")
	assert.True(t, strings.HasPrefix(buf.String(), "\r"))

	report.Failed = append(report.Failed, FailedNote{File: "b.cson", Stage: StageParse, Err: errors.New("boom")})
	bar.Advance("b.cson", &report)
	assert.Contains(t, buf.String(), "2/2 b.cson (1 written, 0 skipped, 1 failed)")

	bar.Finish(&report)
	out := buf.String()
	assert.Contains(t, out, "100% 2/2 done (1 written, 0 skipped, 1 failed)")
	assert.True(t, strings.HasSuffix(out, "\n"))

	bar.Close()
	assert.Equal(t, out, buf.String())
}

func TestProgressBarDisabledWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	bar := newProgressBarTo(&buf, 3, false)

	report := Report{Total: 3}
	bar.Advance("a.cson", &report)
	bar.Finish(&report)
	bar.Close()
	assert.Empty(t, buf.String())
}

func TestProgressBarCloseEndsUnfinishedLine(t *testing.T) {
	var buf bytes.Buffer
	bar := newProgressBarTo(&buf, 0, true)

	report := Report{Skipped: []string{"t.cson"}}
	bar.Advance("t.cson", &report)
	assert.Contains(t, buf.String(), "1/1 t.cson (0 written, 1 skipped, 0 failed)")

	bar.Close()
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))
}
