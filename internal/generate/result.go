package generate

import (
	"errors"
	"fmt"
)

// Failure is one artifact that could not be written.
type Failure struct {
	Target Target
	// Path is relative to the project root; empty when it could not be resolved.
	Path string
	Err  error
}

func (f Failure) Error() string {
	if f.Path == "" {
		return fmt.Sprintf("%s: %v", f.Target, f.Err)
	}
	return fmt.Sprintf("%s (%s): %v", f.Target, f.Path, f.Err)
}

func (f Failure) Unwrap() error { return f.Err }

// ToolResult collects what happened to one tool's targets.
type ToolResult struct {
	ToolID string
	// Written holds project-relative paths in target order.
	Written []string
	Failed  []Failure
}

// FailedPaths returns the paths (or target names) of failed writes.
func (r ToolResult) FailedPaths() []string {
	out := make([]string, len(r.Failed))
	for i, f := range r.Failed {
		out[i] = f.Path
		if out[i] == "" {
			out[i] = f.Target.String()
		}
	}
	return out
}

// Result is the per-tool outcome of a generation run, sorted by tool ID.
type Result struct {
	ProjectRoot string
	Tools       []ToolResult
}

// Written counts written files across all tools.
func (r Result) Written() int {
	n := 0
	for _, t := range r.Tools {
		n += len(t.Written)
	}
	return n
}

// Failures returns every failure across all tools.
func (r Result) Failures() []Failure {
	var out []Failure
	for _, t := range r.Tools {
		out = append(out, t.Failed...)
	}
	return out
}

// Err joins all failures, or returns nil when every write succeeded.
func (r Result) Err() error {
	failures := r.Failures()
	errs := make([]error, len(failures))
	for i, f := range failures {
		errs[i] = f
	}
	return errors.Join(errs...)
}
