// Package diag implements the decompiler's diagnostics, adapted from gbc's
// pkg/util error/warning printer: same ANSI coloring and terminal-gating
// discipline, but keyed on bytecode offsets instead of source tokens, since
// spec.md §7 defines this tool's error kinds as offset-anchored diagnostics
// with no structured error channel back to a caller.
package diag

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// colorEnabled mirrors gbc's terminal-capability check before emitting ANSI
// escapes (pkg/cli's getTerminalWidth queries the terminal through
// term.GetSize instead, for a different purpose: the help-page width).
func colorEnabled(f *os.File) bool {
	if term.IsTerminal(int(f.Fd())) {
		return true
	}
	return isatty.IsTerminal(f.Fd())
}

const (
	red    = "\x1b[31m"
	yellow = "\x1b[33m"
	reset  = "\x1b[0m"
)

func colorize(f *os.File, color, text string) string {
	if !colorEnabled(f) {
		return text
	}
	return color + text + reset
}

// Errorf prints a fatal diagnostic anchored to a bytecode offset. Fatal
// diagnostics abort the run (spec.md §7); the caller performs the exit.
func Errorf(offset int, format string, args ...any) {
	label := colorize(os.Stderr, red, "error:")
	fmt.Fprintf(os.Stderr, "[%04X] %s %s\n", offset, label, fmt.Sprintf(format, args...))
}

// Warnf prints a non-fatal diagnostic; the caller decides whether to
// continue (e.g. stack underflow without -h, spec.md §7).
func Warnf(offset int, format string, args ...any) {
	label := colorize(os.Stderr, yellow, "warning:")
	fmt.Fprintf(os.Stderr, "[%04X] %s %s\n", offset, label, fmt.Sprintf(format, args...))
}

// Fatal is a sentinel error type carrying the exit code the driver should
// use, mirroring util.Error's os.Exit(1) but returned instead of called
// directly so cmd/descumm controls process exit in one place.
type Fatal struct {
	Code int
	Err  error
}

func (f *Fatal) Error() string { return f.Err.Error() }
func (f *Fatal) Unwrap() error { return f.Err }

// NewFatal wraps err as a Fatal with the given exit code.
func NewFatal(code int, err error) *Fatal { return &Fatal{Code: code, Err: err} }
