// File: pkg/manifest/manifest.go
package manifest

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// DefaultName is the conventional manifest file name inside the aggregated folder.
const DefaultName = "code_to_aggregate.txt"

// CommentMarker starts a full-line or inline comment.
const CommentMarker = "//"

// Entry is one path expression read from a manifest.
type Entry struct {
	LineNo int      // Line number in the manifest (1-based).
	Expr   string   // Expression with comments and surrounding whitespace removed.
	Paths  []string // Brace-expanded relative paths, in expansion order.
}

// Manifest is a parsed inclusion list.
type Manifest struct {
	Path    string  // Source file, empty when parsed from memory.
	Entries []Entry // Path entries in file order.
}

// Paths returns every expanded path of every entry, in manifest order.
func (m *Manifest) Paths() []string {
	var out []string
	for _, e := range m.Entries {
		out = append(out, e.Paths...)
	}
	return out
}

// Parse reads manifest lines from r, skipping blanks and comments.
func Parse(r io.Reader) (*Manifest, error) {
	m := &Manifest{}
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for s.Scan() {
		lineNo++
		expr, ok := parseLine(s.Text())
		if !ok {
			continue
		}
		m.Entries = append(m.Entries, Entry{
			LineNo: lineNo,
			Expr:   expr,
			Paths:  Expand(expr),
		})
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("scan manifest: %w", err)
	}
	return m, nil
}

// ParseString parses a manifest held in memory.
func ParseString(src string) (*Manifest, error) {
	return Parse(strings.NewReader(src))
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrManifestNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrManifestUnreadable, path, err)
	}
	defer f.Close()

	m, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrManifestUnreadable, path, err)
	}
	m.Path = path
	return m, nil
}

// parseLine strips comments and whitespace. ok is false for lines with no path.
func parseLine(raw string) (string, bool) {
	line := strings.TrimSpace(raw)
	if line == "" || strings.HasPrefix(line, CommentMarker) {
		return "", false
	}
	if i := strings.Index(line, CommentMarker); i >= 0 {
		line = strings.TrimSpace(line[:i])
	}
	return line, line != ""
}
