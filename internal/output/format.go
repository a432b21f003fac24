// Package output provides terminal output formatting utilities for the agentsync CLI.
// It renders detection reports and sync results; it never reads or writes project files.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ariel-frischer/agentsync/internal/detect"
	"github.com/ariel-frischer/agentsync/internal/generate"
	"github.com/ariel-frischer/agentsync/internal/status"
	"github.com/fatih/color"
	"golang.org/x/term"
)

// GetTerminalWidth returns the terminal width, defaulting to 80 if unavailable.
func GetTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// statusColors maps each status to its display color.
var statusColors = map[status.ToolVersionStatus]*color.Color{
	status.UpToDate:      color.New(color.FgGreen),
	status.Stale:         color.New(color.FgYellow),
	status.NotGenerated:  color.New(color.FgCyan),
	status.Ahead:         color.New(color.FgMagenta, color.Bold),
	status.NotConfigured: color.New(color.Faint),
}

// StatusLabel returns the colored, fixed-width label for s.
// Padding is applied before coloring so columns line up with colors enabled.
func StatusLabel(s status.ToolVersionStatus) string {
	label := fmt.Sprintf("%-14s", s)
	if c, ok := statusColors[s]; ok {
		return c.Sprint(label)
	}
	return label
}

// PrintSectionHeader prints a dim separator line with a title, sized to the terminal.
func PrintSectionHeader(out io.Writer, title string) {
	dim := color.New(color.Faint).SprintFunc()
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()

	lineLen := (min(GetTerminalWidth(), 72) - len(title) - 2) / 2
	if lineLen < 3 {
		lineLen = 3
	}
	line := strings.Repeat("─", lineLen)
	fmt.Fprintf(out, "%s %s %s\n", dim(line), cyan(title), dim(line))
}

// PrintStatusReport prints one section per tool. Not-configured tools are
// collapsed to a single line unless verbose is set.
func PrintStatusReport(out io.Writer, report detect.Report, verbose bool) {
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	for _, tool := range report.Tools {
		PrintSectionHeader(out, tool.DisplayName)
		if !tool.Configured && !verbose {
			fmt.Fprintf(out, "  %s %s\n\n", StatusLabel(status.NotConfigured), dim("(no "+tool.ToolID+" directory in project)"))
			continue
		}

		for _, a := range tool.Artifacts {
			version := a.GeneratedVersion
			if version == "" {
				version = "-"
			}
			fmt.Fprintf(out, "  %s %-8s %-12s %s -> %s  %s\n",
				StatusLabel(a.Status()),
				a.Kind,
				bold(a.ID),
				version,
				a.CurrentVersion,
				dim(a.Path),
			)
			if a.Note != "" && verbose {
				fmt.Fprintf(out, "      %s\n", dim(a.Note))
			}
		}
		fmt.Fprintln(out)
	}

	PrintStatusTotals(out, report)
}

// PrintStatusTotals prints the count of artifacts per status, omitting zero counts.
func PrintStatusTotals(out io.Writer, report detect.Report) {
	counts := report.Counts()
	order := []status.ToolVersionStatus{
		status.UpToDate, status.Stale, status.NotGenerated, status.Ahead, status.NotConfigured,
	}

	var parts []string
	for _, s := range order {
		if n := counts[s]; n > 0 {
			parts = append(parts, statusColors[s].Sprintf("%d %s", n, s))
		}
	}
	if len(parts) == 0 {
		fmt.Fprintln(out, "No tools to report.")
		return
	}
	fmt.Fprintf(out, "Total: %s\n", strings.Join(parts, ", "))
}

// PrintSyncSummary prints written and failed files per tool.
func PrintSyncSummary(out io.Writer, result generate.Result) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	if len(result.Tools) == 0 {
		fmt.Fprintf(out, "%s %s\n", green("✓"), "Everything is up to date.")
		return
	}

	for _, tool := range result.Tools {
		for _, path := range tool.Written {
			fmt.Fprintf(out, "%s %s\n", green("✓"), cyan(path))
		}
		for _, f := range tool.Failed {
			fmt.Fprintf(out, "%s %s\n", red("✗"), f.Error())
		}
	}

	failed := len(result.Failures())
	fmt.Fprintf(out, "\nWrote %d file(s)", result.Written())
	if failed > 0 {
		fmt.Fprintf(out, ", %s", red(fmt.Sprintf("%d failed", failed)))
	}
	fmt.Fprintln(out, ".")
}
