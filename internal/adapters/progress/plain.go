package progress

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/trebuchet-org/hdeploy/internal/usecase"
)

// PlainProgress prints one line per progress event. Used when there is no terminal.
type PlainProgress struct {
	out io.Writer
}

// NewPlainProgress creates a line-oriented progress reporter
func NewPlainProgress(out io.Writer) *PlainProgress {
	return &PlainProgress{out: out}
}

// OnProgress prints the event message prefixed with its stage
func (p *PlainProgress) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	if event.Message == "" {
		return
	}
	fmt.Fprintf(p.out, "[%s] %s\n", event.Stage, event.Message)
}

// Info prints an info message
func (p *PlainProgress) Info(message string) {
	color.New(color.FgCyan).Fprintln(p.out, message)
}

// Error prints an error message
func (p *PlainProgress) Error(message string) {
	color.New(color.FgRed).Fprintln(p.out, message)
}

var _ usecase.ProgressSink = (*PlainProgress)(nil)
