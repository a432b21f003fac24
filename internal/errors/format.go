package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// maxListedPaths caps the file list; larger lists end with a "... and N more" line.
const maxListedPaths = 10

type palette struct {
	label    func(a ...interface{}) string
	message  func(a ...interface{}) string
	category func(a ...interface{}) string
	section  func(a ...interface{}) string
	usage    func(a ...interface{}) string
	bullet   func(a ...interface{}) string
	path     func(a ...interface{}) string
}

func plain(a ...interface{}) string { return fmt.Sprint(a...) }

var plainPalette = palette{
	label: plain, message: plain, category: plain, section: plain,
	usage: plain, bullet: plain, path: plain,
}

// colorPalette picks red for errors and yellow for warnings. fatih/color
// disables itself when stdout is not a terminal or NO_COLOR is set.
func colorPalette(warning bool) palette {
	accent := color.FgRed
	if warning {
		accent = color.FgYellow
	}
	return palette{
		label:    color.New(accent, color.Bold).SprintFunc(),
		message:  color.New(accent).SprintFunc(),
		category: color.New(color.Faint).SprintFunc(),
		section:  color.New(color.FgGreen, color.Bold).SprintFunc(),
		usage:    color.New(color.FgCyan).SprintFunc(),
		bullet:   color.New(color.FgGreen).SprintFunc(),
		path:     color.New(color.FgCyan).SprintFunc(),
	}
}

// FormatError formats a CLIError for the terminal, with colors when available.
func FormatError(err *CLIError) string {
	if err == nil {
		return ""
	}
	return formatError(err, colorPalette(err.Warning))
}

// FormatErrorPlain formats a CLIError without colors.
func FormatErrorPlain(err *CLIError) string {
	if err == nil {
		return ""
	}
	return formatError(err, plainPalette)
}

func formatError(err *CLIError, p palette) string {
	var sb strings.Builder

	label := "Error"
	if err.Warning {
		label = "Warning"
	}
	fmt.Fprintf(&sb, "%s [%s]: %s\n", p.label(label), p.category(err.Category.String()), p.message(err.Message))

	if len(err.Paths) > 0 {
		sb.WriteString("\n")
		shown := err.Paths
		if len(shown) > maxListedPaths {
			shown = shown[:maxListedPaths]
		}
		for _, path := range shown {
			fmt.Fprintf(&sb, "    %s\n", p.path(path))
		}
		if hidden := len(err.Paths) - len(shown); hidden > 0 {
			fmt.Fprintf(&sb, "    ... and %d more\n", hidden)
		}
	}

	if err.Usage != "" {
		fmt.Fprintf(&sb, "\nUsage: %s\n", p.usage(err.Usage))
	}

	if len(err.Remediation) > 0 {
		fmt.Fprintf(&sb, "\n%s\n", p.section("To fix this:"))
		for _, step := range err.Remediation {
			fmt.Fprintf(&sb, "  %s %s\n", p.bullet("•"), step)
		}
	}

	return sb.String()
}

// FprintError prints a formatted CLIError to w.
func FprintError(w io.Writer, err *CLIError) {
	if err == nil {
		return
	}
	fmt.Fprint(w, FormatError(err))
}

// FormatSimpleError formats a plain error under the given category.
func FormatSimpleError(err error, category ErrorCategory) string {
	if err == nil {
		return ""
	}
	return FormatError(&CLIError{Category: category, Message: err.Error()})
}
