package ui

import (
	"fmt"
	"io"
	"os"
)

var (
	reset = "\033[0m"
	bold  = "\033[1m"

	fgGray   = "\033[90m"
	fgGreen  = "\033[32m"
	fgYellow = "\033[33m"
	fgBlue   = "\033[34m"
	fgRed    = "\033[31m"

	symCheck = "✔"
	symCross = "✖"
	symWarn  = "!"
)

var (
	forceColor   bool
	disableColor bool

	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// SetColorMode applies "auto", "always" or "never".
func SetColorMode(mode string) {
	forceColor = mode == "always"
	disableColor = mode == "never"
}

// SetOutput redirects status lines and panels. Nil keeps the current writer.
func SetOutput(out, errOut io.Writer) {
	if out != nil {
		stdout = out
	}
	if errOut != nil {
		stderr = errOut
	}
}

func isTTY() bool {
	f, ok := stdout.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

func C(color, s string) string {
	if disableColor || color == "" {
		return s
	}
	if forceColor || isTTY() {
		return color + s + reset
	}
	return s
}

func OK(msg string)   { fmt.Fprintln(stdout, C(current.Success, symCheck+" "+msg)) }
func Fail(msg string) { fmt.Fprintln(stderr, C(current.Error, symCross+" "+msg)) }
func Warn(msg string) { fmt.Fprintln(stderr, C(current.Pending, symWarn+" "+msg)) }

// Hint prints a muted follow-up line on stderr.
func Hint(msg string) { fmt.Fprintln(stderr, C(current.Muted, msg)) }

// Println writes a plain line to the output writer.
func Println(s string) { fmt.Fprintln(stdout, s) }
