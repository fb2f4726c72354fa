package exporter

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
)

// exportProgressBar redraws a single stderr line per converted note with the
// running written/skipped/failed tally.
type exportProgressBar struct {
	out             io.Writer
	enabled         bool
	total           int
	current         int
	lastRenderWidth int
	label           string
	bar             progress.Model
}

func newExportProgressBar(total int, show bool) exportProgressBar {
	return newProgressBarTo(os.Stderr, total, show && isTerminal(os.Stderr))
}

func newProgressBarTo(out io.Writer, total int, enabled bool) exportProgressBar {
	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = 36
	if cols, err := strconv.Atoi(strings.TrimSpace(os.Getenv("COLUMNS"))); err == nil && cols > 0 {
		bar.Width = min(max(cols-50, 16), 64)
	}

	return exportProgressBar{
		out:     out,
		enabled: enabled,
		total:   max(total, 1),
		bar:     bar,
	}
}

// Advance moves past file and shows the tally of r so far.
func (p *exportProgressBar) Advance(file string, r *Report) {
	if !p.enabled {
		return
	}
	p.current = min(p.current+1, p.total)
	p.label = file + " " + tallyLabel(r)
	p.render()
}

func (p *exportProgressBar) Finish(r *Report) {
	if !p.enabled {
		return
	}
	p.current = p.total
	p.label = "done " + tallyLabel(r)
	p.render()
	fmt.Fprint(p.out, "\n")
	p.lastRenderWidth = 0
}

func (p *exportProgressBar) Close() {
	if !p.enabled {
		return
	}
	if p.lastRenderWidth > 0 {
		fmt.Fprint(p.out, "\n")
		p.lastRenderWidth = 0
	}
}

func (p *exportProgressBar) render() {
	percent := min(max(float64(p.current)/float64(p.total), 0), 1)
	line := fmt.Sprintf("%s %3.0f%% %d/%d %s", p.bar.ViewAs(percent), percent*100, p.current, p.total, strings.TrimSpace(p.label))
	pad := ""
	if p.lastRenderWidth > len(line) {
		pad = strings.Repeat(" ", p.lastRenderWidth-len(line))
	}
	fmt.Fprintf(p.out, "\r%s%s", line, pad)
	p.lastRenderWidth = len(line)
}

func tallyLabel(r *Report) string {
	return fmt.Sprintf("(%d written, %d skipped, %d failed)", len(r.Written), len(r.Skipped), len(r.Failed))
}

func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	if strings.EqualFold(strings.TrimSpace(os.Getenv("TERM")), "dumb") {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
