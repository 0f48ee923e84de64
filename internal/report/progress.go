package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/muesli/termenv"
)

// Progress draws a single-line progress bar for a batch, redrawn in place.
type Progress struct {
	w   io.Writer
	bar progress.Model
	err error
}

// NewProgress creates a bar of the given width. With color false the bar is
// drawn with plain characters.
func NewProgress(w io.Writer, width int, color bool) *Progress {
	opts := []progress.Option{progress.WithWidth(width)}
	if color {
		opts = append(opts, progress.WithDefaultGradient())
	} else {
		opts = append(opts,
			progress.WithColorProfile(termenv.Ascii),
			progress.WithFillCharacters('#', '-'))
	}
	return &Progress{w: w, bar: progress.New(opts...)}
}

// Line renders the bar for done of total games.
func (p *Progress) Line(done, total int) string {
	frac := 0.0
	if total > 0 {
		frac = float64(done) / float64(total)
	}
	return fmt.Sprintf("%s %d/%d", p.bar.ViewAs(frac), done, total)
}

// Update redraws the bar. It matches simulator.Config.Progress.
func (p *Progress) Update(done, total int) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, "\r%s", p.Line(done, total))
}

// Finish ends the line.
func (p *Progress) Finish() error {
	if p.err != nil {
		return p.err
	}
	_, err := io.WriteString(p.w, "\n")
	return err
}
