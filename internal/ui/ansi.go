package ui

import (
	"fmt"
	"io"
	"os"
)

var (
	reset = "\033[0m"
	bold  = "\033[1m"
	dim   = "\033[2m"

	fgGray    = "\033[90m"
	fgGreen   = "\033[32m"
	fgYellow  = "\033[33m"
	fgBlue    = "\033[34m"
	fgRed     = "\033[31m"
	fgMagenta = "\033[95m"
	fgCyan    = "\033[96m"
	fgGold    = "\033[93m"
)

var (
	forceColor   bool
	disableColor bool
)

// SetColorForcing overrides TTY detection. disable wins over force.
func SetColorForcing(force, disable bool) {
	forceColor = force
	disableColor = disable
}

func isTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

func colorOn() bool {
	if disableColor || current.NoColor {
		return false
	}
	return forceColor || isTTY()
}

// C wraps s in color when writing to a terminal.
func C(color, s string) string {
	if color == "" || !colorOn() {
		return s
	}
	return color + s + reset
}

// Dim renders s faint.
func Dim(s string) string { return C(dim, s) }

// FolderLabel renders a folder name behind the theme's folder glyph.
func FolderLabel(name string) string {
	return C(current.Accent, current.Folder) + " " + name
}

// OK reports a completed command.
func OK(w io.Writer, msg string) { fmt.Fprintln(w, C(current.Success, current.SymOK+" "+msg)) }

// Fail reports a failed command.
func Fail(w io.Writer, msg string) { fmt.Fprintln(w, C(current.Error, current.SymFail+" "+msg)) }

// Hint prints a muted follow-up line under a failure.
func Hint(w io.Writer, msg string) { fmt.Fprintln(w, C(current.Muted, current.SymHint+" "+msg)) }
