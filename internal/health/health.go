// Package health provides environment checks for agentsync. It validates that the
// config file parses, the data directory is writable and the embedded catalog loads,
// and reports which supported tools are installed and configured in the project.
// The report backs the 'agentsync doctor' command.
package health

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/ariel-frischer/agentsync/internal/adapters"
	"github.com/ariel-frischer/agentsync/internal/catalog"
	"github.com/ariel-frischer/agentsync/internal/config"
	"github.com/ariel-frischer/agentsync/internal/detect"
)

// CheckResult represents the result of a single health check
type CheckResult struct {
	Name    string
	Passed  bool
	Message string
}

// ToolCheck reports one tool's presence. It never fails the report.
type ToolCheck struct {
	ToolID      string
	DisplayName string
	// Installed is true when an executable named after the tool is on PATH.
	Installed  bool
	Configured bool
}

// HealthReport contains all health check results
type HealthReport struct {
	Checks     []CheckResult
	ToolChecks []ToolCheck
	Passed     bool
}

// Options selects what the checks look at.
type Options struct {
	ConfigPath  string
	DataDir     string
	ProjectRoot string
	Registry    *adapters.Registry
	// LookPath defaults to exec.LookPath.
	LookPath func(file string) (string, error)
}

// RunHealthChecks runs all health checks and returns a report.
func RunHealthChecks(opts Options) *HealthReport {
	if opts.LookPath == nil {
		opts.LookPath = exec.LookPath
	}

	report := &HealthReport{Passed: true}
	for _, check := range []CheckResult{
		CheckConfigFile(opts.ConfigPath),
		CheckDataDir(opts.DataDir),
		CheckCatalog(),
	} {
		report.Checks = append(report.Checks, check)
		if !check.Passed {
			report.Passed = false
		}
	}

	if opts.Registry != nil {
		report.ToolChecks = CheckTools(opts.Registry, opts.ProjectRoot, opts.LookPath)
	}
	return report
}

// CheckConfigFile validates the YAML syntax of the config file. A missing file passes.
func CheckConfigFile(path string) CheckResult {
	if err := config.ValidateYAMLSyntax(path); err != nil {
		return CheckResult{
			Name:    "Config file",
			Passed:  false,
			Message: err.Error(),
		}
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return CheckResult{
			Name:    "Config file",
			Passed:  true,
			Message: "not found, using defaults",
		}
	}
	return CheckResult{
		Name:    "Config file",
		Passed:  true,
		Message: path,
	}
}

// CheckDataDir verifies the history directory can be created and written to.
func CheckDataDir(dir string) CheckResult {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return CheckResult{
			Name:    "Data directory",
			Passed:  false,
			Message: fmt.Sprintf("cannot create %s: %v", dir, err),
		}
	}
	f, err := os.CreateTemp(dir, ".doctor-*")
	if err != nil {
		return CheckResult{
			Name:    "Data directory",
			Passed:  false,
			Message: fmt.Sprintf("%s is not writable: %v", dir, err),
		}
	}
	f.Close()
	os.Remove(f.Name())

	return CheckResult{
		Name:    "Data directory",
		Passed:  true,
		Message: dir,
	}
}

// CheckCatalog verifies the embedded template catalog loads.
func CheckCatalog() CheckResult {
	cat, err := catalog.Default()
	if err != nil {
		return CheckResult{
			Name:    "Template catalog",
			Passed:  false,
			Message: err.Error(),
		}
	}
	return CheckResult{
		Name:   "Template catalog",
		Passed: true,
		Message: fmt.Sprintf("%d skills, %d commands",
			len(cat.SkillTemplates()), len(cat.CommandTemplates())),
	}
}

// CheckTools reports, per registered tool, whether its CLI is on PATH and whether
// the project contains its directory.
func CheckTools(registry *adapters.Registry, projectRoot string, lookPath func(string) (string, error)) []ToolCheck {
	all := registry.All()
	checks := make([]ToolCheck, 0, len(all))
	for _, a := range all {
		_, lookErr := lookPath(a.ToolID())
		configured := false
		if projectRoot != "" {
			configured, _ = detect.IsConfigured(projectRoot, a)
		}
		checks = append(checks, ToolCheck{
			ToolID:      a.ToolID(),
			DisplayName: a.DisplayName(),
			Installed:   lookErr == nil,
			Configured:  configured,
		})
	}
	return checks
}

// FormatReport formats the health report for console output
func FormatReport(report *HealthReport) string {
	var output string

	for _, check := range report.Checks {
		if check.Passed {
			output += fmt.Sprintf("✓ %s: %s\n", check.Name, check.Message)
		} else {
			output += fmt.Sprintf("✗ %s: %s\n", check.Name, check.Message)
		}
	}

	if len(report.ToolChecks) > 0 {
		output += "\nTools:\n"
		for _, tool := range report.ToolChecks {
			output += FormatToolCheck(tool)
		}
	}

	return output
}

// FormatToolCheck formats a single tool check for console output
func FormatToolCheck(tool ToolCheck) string {
	installed := "not on PATH"
	if tool.Installed {
		installed = "installed"
	}
	configured := "not configured in project"
	if tool.Configured {
		configured = "configured in project"
	}

	mark := "○"
	if tool.Configured {
		mark = "✓"
	}
	return fmt.Sprintf("  %s %s: %s, %s\n", mark, tool.DisplayName, installed, configured)
}
