// File: pkg/manifest/brace.go
package manifest

import "strings"

// maxBraceGroups bounds the number of brace groups expanded along one expansion chain.
const maxBraceGroups = 64

// Expand returns the concrete paths denoted by a path expression.
//
// A group `X{A,B}Y` yields XAY and XBY, and `X:{A,B}` is shorthand for `X/{A,B}`.
// Alternatives are split on commas outside nested braces and trimmed. Groups
// nest to any depth. An expression whose braces do not balance is returned
// as a literal. Results are trimmed, lose their leading slash, have repeated
// slashes collapsed, and are de-duplicated in expansion order.
func Expand(expr string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, p := range expand(expr, 0) {
		p = cleanExpanded(p)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

func expand(expr string, depth int) []string {
	open, closing, ok := findGroup(expr)
	if !ok || depth >= maxBraceGroups {
		return []string{expr}
	}

	prefix := expr[:open]
	if strings.HasSuffix(prefix, ":") {
		prefix = strings.TrimSuffix(prefix, ":") + "/"
	}
	suffix := expr[closing+1:]

	var out []string
	for _, alt := range splitAlternatives(expr[open+1 : closing]) {
		out = append(out, expand(prefix+strings.TrimSpace(alt)+suffix, depth+1)...)
	}
	return out
}

// findGroup locates the first '{' and its matching '}'.
// ok is false when there is no '{' or it is never closed.
func findGroup(expr string) (open, closing int, ok bool) {
	open = strings.IndexByte(expr, '{')
	if open < 0 {
		return 0, 0, false
	}
	depth := 0
	for i := open; i < len(expr); i++ {
		switch expr[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return open, i, true
			}
		}
	}
	return 0, 0, false
}

// splitAlternatives splits a group body on commas at nesting depth zero.
func splitAlternatives(body string) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '{':
			depth++
		case '}':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, body[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, body[start:])
}

func cleanExpanded(p string) string {
	p = strings.TrimSpace(p)
	for strings.Contains(p, "//") {
		p = strings.ReplaceAll(p, "//", "/")
	}
	return strings.TrimLeft(p, "/")
}
