package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// Stdout and Stderr are the destinations for user output. Tests swap them.
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// UserInfo prints an info message to stdout.
func UserInfo(format string, args ...interface{}) {
	userf(Stdout, infoStyle.Render("ℹ"), format, args...)
}

// UserSuccess prints a success message to stdout.
func UserSuccess(format string, args ...interface{}) {
	userf(Stdout, successStyle.Render("✓"), format, args...)
}

// UserWarning prints a warning message to stderr.
func UserWarning(format string, args ...interface{}) {
	userf(Stderr, warningStyle.Render("⚠"), format, args...)
}

// UserError prints an error message to stderr.
func UserError(format string, args ...interface{}) {
	userf(Stderr, errorStyle.Render("✗"), format, args...)
}

func userf(w io.Writer, glyph string, format string, args ...interface{}) {
	fmt.Fprintf(w, glyph+" "+format+"\n", args...)
}
