package status

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

const (
	successSymbol = "✔"
	failureSymbol = "✖"
)

// Terminal animates a spinner while running when the writer is a TTY and
// falls back to plain lines otherwise
type Terminal struct {
	guard
	out     io.Writer
	spinner *spinner.Spinner
}

// NewTerminal creates a Terminal reporter writing to out
func NewTerminal(out io.Writer) *Terminal {
	t := &Terminal{out: out}
	if isTTY(out) {
		t.spinner = spinner.New(spinner.CharSets[14], 80*time.Millisecond, spinner.WithWriter(out))
	}
	return t
}

func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Start shows message next to the spinner
func (t *Terminal) Start(message string) {
	if !t.start() {
		return
	}
	if t.spinner == nil {
		fmt.Fprintln(t.out, message)
		return
	}
	t.spinner.Suffix = " " + message
	t.spinner.Start()
}

// Succeed stops the spinner and prints message with a success mark
func (t *Terminal) Succeed(message string) {
	if !t.finish(StateSucceeded) {
		return
	}
	t.stop()
	fmt.Fprintf(t.out, "%s %s\n", color.GreenString(successSymbol), message)
}

// Fail stops the spinner and prints label with a failure mark
func (t *Terminal) Fail(label string) {
	if !t.finish(StateFailed) {
		return
	}
	t.stop()
	fmt.Fprintf(t.out, "%s %s\n", color.RedString(failureSymbol), label)
}

// State returns the current state
func (t *Terminal) State() State {
	return t.current()
}

func (t *Terminal) stop() {
	if t.spinner != nil {
		t.spinner.Stop()
	}
}
