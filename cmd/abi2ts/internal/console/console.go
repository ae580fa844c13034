// Package console holds the standard streams of a command and formats
// diagnostics for them, in color when the stream is a terminal.
package console

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Streams are the input and outputs of a command.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Stdio returns the process's standard streams.
func Stdio() Streams {
	return Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func painter(w io.Writer, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if IsTerminal(w) {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// Error writes "error: <err>" to the error stream.
func (s Streams) Error(err error) {
	painter(s.Err, color.FgRed, color.Bold).Fprint(s.Err, "error:")
	fmt.Fprintf(s.Err, " %v\n", err)
}

// Problem writes one indented diagnostic line to the error stream.
func (s Streams) Problem(format string, args ...any) {
	painter(s.Err, color.FgYellow).Fprint(s.Err, "  ✗ ")
	fmt.Fprintf(s.Err, format+"\n", args...)
}

// Success writes a check-marked line to the error stream, keeping the
// output stream free for generated code.
func (s Streams) Success(format string, args ...any) {
	painter(s.Err, color.FgGreen).Fprint(s.Err, "✓ ")
	fmt.Fprintf(s.Err, format+"\n", args...)
}
