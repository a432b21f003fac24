// Package progress shows a spinner while long-running commands work.
// The spinner is only started when stdout is a terminal.
package progress

import (
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"golang.org/x/term"
)

// TerminalCapabilities describes what the attached terminal can display.
type TerminalCapabilities struct {
	IsTTY           bool
	SupportsColor   bool
	SupportsUnicode bool
	Width           int
}

// DetectTerminalCapabilities detects terminal features and returns capabilities.
// Checks: stdout isatty, NO_COLOR env, AGENTSYNC_ASCII env, terminal width.
func DetectTerminalCapabilities() TerminalCapabilities {
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))

	noColor := os.Getenv("NO_COLOR") != ""
	forceASCII := os.Getenv("AGENTSYNC_ASCII") == "1"

	width := 0
	if isTTY {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width = w
		}
	}

	return TerminalCapabilities{
		IsTTY:           isTTY,
		SupportsColor:   isTTY && !noColor,
		SupportsUnicode: isTTY && !forceASCII,
		Width:           width,
	}
}

// SpinnerSet returns the spinner character set index for the capabilities.
// Unicode: braille dots (set 14). ASCII: |/-\ (set 9).
func SpinnerSet(caps TerminalCapabilities) int {
	if caps.SupportsUnicode {
		return 14
	}
	return 9
}

// StartSpinner starts a spinner with message on w and returns the function that
// stops and clears it. Without a terminal nothing is drawn and stop is a no-op.
func StartSpinner(w io.Writer, caps TerminalCapabilities, message string) (stop func()) {
	if !caps.IsTTY {
		return func() {}
	}

	s := spinner.New(spinner.CharSets[SpinnerSet(caps)], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = " " + message
	s.Start()
	return s.Stop
}
