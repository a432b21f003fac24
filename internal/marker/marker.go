// Package marker defines the version marker embedded in every generated artifact.
// The marker is the only signal used to decide whether a generated file is stale:
// every adapter format must carry the marker line verbatim somewhere in its output.
package marker

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

var (
	// ErrNotFound is returned when no marker line exists in the text.
	ErrNotFound = errors.New("version marker not found")
	// ErrMalformed matches MalformedError values via errors.Is.
	ErrMalformed = errors.New("malformed version marker")
)

// markerRe matches the marker comment and captures everything up to the closing "-->".
var markerRe = regexp.MustCompile(`<!--\s*generated by agentsync version\b([^>]*?)-->`)

// MalformedError reports a marker line whose version token does not parse.
type MalformedError struct {
	Raw string
	Err error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed version marker %q: %v", e.Raw, e.Err)
}

func (e *MalformedError) Unwrap() error { return e.Err }

// Is reports whether target is ErrMalformed.
func (e *MalformedError) Is(target error) bool { return target == ErrMalformed }

// Format returns the marker line for the given version.
func Format(version string) string {
	return "<!-- generated by agentsync version " + version + " -->"
}

// Embed prefixes body with the marker line followed by a blank line.
// Leading newlines of body are dropped so the output is stable.
func Embed(body, version string) string {
	return Format(version) + "\n\n" + strings.TrimLeft(body, "\r\n")
}

// Extract returns the version recorded by the first marker in text.
func Extract(text string) (string, error) {
	m := markerRe.FindStringSubmatch(text)
	if m == nil {
		return "", ErrNotFound
	}
	raw := strings.TrimSpace(m[1])
	if raw == "" {
		return "", &MalformedError{Raw: raw, Err: errors.New("empty version")}
	}
	if _, err := Parse(raw); err != nil {
		return "", &MalformedError{Raw: raw, Err: err}
	}
	return raw, nil
}

// Parse parses a version marker value. A leading "v" is tolerated and
// partial versions are accepted ("3" == "3.0.0").
func Parse(version string) (*semver.Version, error) {
	return semver.NewVersion(strings.TrimPrefix(strings.TrimSpace(version), "v"))
}

// Compare orders two version markers.
// Returns -1 if a < b, 0 if equal, 1 if a > b.
func Compare(a, b string) (int, error) {
	av, err := Parse(a)
	if err != nil {
		return 0, fmt.Errorf("parsing version %q: %w", a, err)
	}
	bv, err := Parse(b)
	if err != nil {
		return 0, fmt.Errorf("parsing version %q: %w", b, err)
	}
	return av.Compare(bv), nil
}
