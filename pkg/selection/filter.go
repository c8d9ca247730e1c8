// File: pkg/selection/filter.go
package selection

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Default filter values.
var (
	DefaultExtensions    = []string{".json", ".rs", ".py", ".cu", ".md", ".toml"}
	DefaultReservedNames = []string{"Dockerfile"}
	DefaultExcludeDirs   = []string{"target"}
)

// Filter decides which files are selected and which directories are pruned.
type Filter struct {
	Extensions    []string // Allowed extensions including the dot, matched case-insensitively.
	ReservedNames []string // File names selected regardless of extension, matched case-insensitively.
	ExcludeDirs   []string // Directory names or glob patterns whose subtrees are skipped.
}

// DefaultFilter returns the filter used when no configuration overrides it.
func DefaultFilter() Filter {
	return Filter{
		Extensions:    append([]string(nil), DefaultExtensions...),
		ReservedNames: append([]string(nil), DefaultReservedNames...),
		ExcludeDirs:   append([]string(nil), DefaultExcludeDirs...),
	}
}

// AllowsFile reports whether a file with the given base name is selected.
func (f Filter) AllowsFile(name string) bool {
	for _, reserved := range f.ReservedNames {
		if strings.EqualFold(name, reserved) {
			return true
		}
	}
	ext := fileExt(name)
	if ext == "" {
		return false
	}
	for _, allowed := range f.Extensions {
		if strings.EqualFold(ext, allowed) {
			return true
		}
	}
	return false
}

// ExcludesDir reports whether a single directory name is excluded.
func (f Filter) ExcludesDir(name string) bool {
	for _, pattern := range f.ExcludeDirs {
		if pattern == name {
			return true
		}
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}

// excludesPath reports whether any directory segment of a root-relative path is excluded.
func (f Filter) excludesPath(rel string) bool {
	for _, seg := range strings.Split(filepath.ToSlash(rel), "/") {
		if seg == "" || seg == "." {
			continue
		}
		if f.ExcludesDir(seg) {
			return true
		}
	}
	return false
}

// fileExt returns the extension of name, ignoring leading dots so that
// ".gitignore" has no extension.
func fileExt(name string) string {
	trimmed := strings.TrimLeft(name, ".")
	if trimmed == "" {
		return ""
	}
	return filepath.Ext(trimmed)
}
