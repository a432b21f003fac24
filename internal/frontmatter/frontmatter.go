// Package frontmatter reads and writes the "---" delimited YAML header used by
// markdown skill and command files.
package frontmatter

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const delimiter = "---"

var (
	// ErrMissing is returned when the content does not start with a header.
	ErrMissing = errors.New("frontmatter not found")
	// ErrUnterminated is returned when the closing delimiter is missing.
	ErrUnterminated = errors.New("frontmatter not terminated")
)

// Split separates the YAML header from the body. CRLF line endings are normalized.
func Split(data []byte) (header, body string, err error) {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	if !strings.HasPrefix(text, delimiter+"\n") {
		return "", "", ErrMissing
	}
	rest := text[len(delimiter)+1:]

	if strings.HasPrefix(rest, delimiter+"\n") {
		return "", rest[len(delimiter)+1:], nil
	}

	end := strings.Index(rest, "\n"+delimiter+"\n")
	switch {
	case end >= 0:
		return rest[:end+1], rest[end+len(delimiter)+2:], nil
	case strings.HasSuffix(rest, "\n"+delimiter):
		return rest[:len(rest)-len(delimiter)], "", nil
	default:
		return "", "", ErrUnterminated
	}
}

// Decode splits data and unmarshals the header into v. It returns the body.
func Decode(data []byte, v any) (string, error) {
	header, body, err := Split(data)
	if err != nil {
		return "", err
	}
	if err := yaml.Unmarshal([]byte(header), v); err != nil {
		return "", fmt.Errorf("parsing frontmatter: %w", err)
	}
	return body, nil
}

// Compose joins a YAML header and a body into file text. The body is separated from
// the header by one blank line and the output always ends with a single newline.
func Compose(header, body string) string {
	var b strings.Builder
	b.WriteString(delimiter + "\n")
	b.WriteString(header)
	if header != "" && !strings.HasSuffix(header, "\n") {
		b.WriteString("\n")
	}
	b.WriteString(delimiter + "\n\n")
	b.WriteString(strings.TrimRight(strings.TrimLeft(body, "\n"), "\n"))
	b.WriteString("\n")
	return b.String()
}

// Scalar renders s as a single-line YAML scalar, quoting it only when plain style
// would change its meaning. Line breaks are folded into spaces.
func Scalar(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	out, err := yaml.Marshal(s)
	if err != nil {
		return strconv.Quote(s)
	}
	return strings.TrimRight(string(out), "\n")
}

// FlowList renders items as a YAML flow sequence: [a, b, c].
func FlowList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = Scalar(item)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
