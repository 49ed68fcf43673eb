// Package output prints styled, user-facing lines for the confgen command.
// Logging goes through log/slog; this package is for results the user asked for.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("green")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("red")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	verboseMode bool
	out         io.Writer = os.Stdout
)

// SetVerbose enables or disables verbose output.
func SetVerbose(v bool) {
	verboseMode = v
}

// SetOutput redirects all output to w and returns the previous writer.
func SetOutput(w io.Writer) io.Writer {
	prev := out
	out = w
	return prev
}

// Success prints a completed operation.
func Success(msg string) {
	fmt.Fprintln(out, successStyle.Render("✓ "+msg))
}

// Error prints a failure that needs user attention.
func Error(msg string) {
	fmt.Fprintln(out, errorStyle.Render("✗ "+msg))
}

// Warn prints a problem that did not stop the run.
func Warn(msg string) {
	fmt.Fprintln(out, warnStyle.Render("! "+msg))
}

// Info prints a status update.
func Info(msg string) {
	fmt.Fprintln(out, infoStyle.Render("• "+msg))
}

// Step prints an indented sub-item.
func Step(msg string) {
	fmt.Fprintln(out, stepStyle.Render("  "+msg))
}

// Verbose prints msg only in verbose mode.
func Verbose(msg string) {
	if verboseMode {
		fmt.Fprintln(out, stepStyle.Render("› "+msg))
	}
}

// Raw writes b unstyled, e.g. generated source in dry-run mode.
func Raw(b []byte) {
	_, _ = out.Write(b)
}
