// File: pkg/selection/resolver.go
package selection

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"codeagg/pkg/manifest"

	"go.uber.org/zap"
)

// SkipReason explains why a path was left out of the result.
type SkipReason string

const (
	SkipOutsideRoot SkipReason = "outside-root"
	SkipMissing     SkipReason = "missing"
	SkipExcludedDir SkipReason = "excluded-dir"
	SkipFiltered    SkipReason = "filtered"
	SkipDuplicate   SkipReason = "duplicate"
	SkipUnreadable  SkipReason = "unreadable"
	SkipSymlinkDir  SkipReason = "symlink-dir"
)

// Skip describes a path that was not selected.
type Skip struct {
	Path   string     // Absolute path, or the raw manifest path when it could not be joined.
	Reason SkipReason // Why the path was skipped.
	LineNo int        // Manifest line that produced the path, 0 during tree walks.
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithSkipHook registers fn to receive every skip event.
func WithSkipHook(fn func(Skip)) Option {
	return func(r *Resolver) {
		r.onSkip = fn
	}
}

// Resolver turns a root directory and an optional manifest into an ordered,
// de-duplicated list of absolute file paths under that root.
// A Resolver holds no per-run state and may be reused.
type Resolver struct {
	filter Filter
	logger *zap.Logger
	onSkip func(Skip)
}

// NewResolver creates a Resolver applying filter.
func NewResolver(filter Filter, logger *zap.Logger, opts ...Option) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Resolver{filter: filter, logger: logger}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ResolveFolder resolves root using the manifest named manifestName inside it.
// When no such file exists the whole tree is walked.
func (r *Resolver) ResolveFolder(root, manifestName string) ([]string, error) {
	absRoot, _, err := prepareRoot(root)
	if err != nil {
		return nil, err
	}

	m, err := r.loadManifest(filepath.Join(absRoot, manifestName))
	if err != nil {
		return nil, err
	}
	return r.Resolve(absRoot, m)
}

// Resolve selects files under root. A nil manifest walks the whole tree;
// otherwise only the manifest's paths are considered, in manifest order.
func (r *Resolver) Resolve(root string, m *manifest.Manifest) ([]string, error) {
	absRoot, realRoot, err := prepareRoot(root)
	if err != nil {
		r.logger.Error("Failed to prepare root directory", zap.String("root", root), zap.Error(err))
		return nil, err
	}

	run := &resolution{
		Resolver: r,
		root:     absRoot,
		realRoot: realRoot,
		seen:     make(map[string]bool),
	}

	if m == nil {
		r.logger.Debug("No manifest, walking whole tree", zap.String("root", absRoot))
		run.walk(absRoot)
	} else {
		r.logger.Debug("Resolving manifest entries",
			zap.String("root", absRoot),
			zap.String("manifest", m.Path),
			zap.Int("entryCount", len(m.Entries)))
		for _, e := range m.Entries {
			for _, p := range e.Paths {
				run.addEntry(p, e.LineNo)
			}
		}
	}

	r.logger.Debug("Resolved files", zap.String("root", absRoot), zap.Int("fileCount", len(run.files)))
	return run.files, nil
}

// loadManifest returns nil when path is absent or is not a regular file.
func (r *Resolver) loadManifest(path string) (*manifest.Manifest, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.logger.Debug("Manifest not present", zap.String("manifest", path))
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %s: %v", manifest.ErrManifestUnreadable, path, err)
	}
	if !info.Mode().IsRegular() {
		r.logger.Debug("Manifest path is not a regular file, ignoring", zap.String("manifest", path))
		return nil, nil
	}
	return manifest.Load(path)
}

func (r *Resolver) skip(s Skip) {
	r.logger.Debug("Skipping path",
		zap.String("path", s.Path),
		zap.String("reason", string(s.Reason)),
		zap.Int("lineNo", s.LineNo))
	if r.onSkip != nil {
		r.onSkip(s)
	}
}

// resolution is the state of a single Resolve call.
type resolution struct {
	*Resolver
	root     string
	realRoot string
	seen     map[string]bool
	files    []string
}

// addEntry handles one expanded manifest path.
func (run *resolution) addEntry(p string, lineNo int) {
	cand := strings.TrimRight(p, "/"+string(filepath.Separator))
	if cand == "" {
		cand = "."
	}
	abs := filepath.Join(run.root, filepath.FromSlash(cand))

	if !within(run.root, abs) {
		run.skip(Skip{Path: p, Reason: SkipOutsideRoot, LineNo: lineNo})
		return
	}

	target, err := filepath.EvalSymlinks(abs)
	if err != nil {
		reason := SkipUnreadable
		if errors.Is(err, fs.ErrNotExist) {
			reason = SkipMissing
		}
		run.skip(Skip{Path: abs, Reason: reason, LineNo: lineNo})
		return
	}
	if !within(run.realRoot, target) {
		run.skip(Skip{Path: abs, Reason: SkipOutsideRoot, LineNo: lineNo})
		return
	}

	info, err := os.Stat(abs)
	if err != nil {
		run.skip(Skip{Path: abs, Reason: SkipUnreadable, LineNo: lineNo})
		return
	}

	rel, _ := filepath.Rel(run.root, abs)
	switch {
	case info.IsDir():
		if run.filter.excludesPath(rel) {
			run.skip(Skip{Path: abs, Reason: SkipExcludedDir, LineNo: lineNo})
			return
		}
		run.walk(abs)
	case info.Mode().IsRegular():
		if run.filter.excludesPath(filepath.Dir(rel)) {
			run.skip(Skip{Path: abs, Reason: SkipExcludedDir, LineNo: lineNo})
			return
		}
		if !run.filter.AllowsFile(filepath.Base(abs)) {
			run.skip(Skip{Path: abs, Reason: SkipFiltered, LineNo: lineNo})
			return
		}
		run.add(abs)
	default:
		run.skip(Skip{Path: abs, Reason: SkipFiltered, LineNo: lineNo})
	}
}

// walk visits dir depth-first: its files in name order, then its subdirectories in name order.
func (run *resolution) walk(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		run.logger.Warn("Failed to read directory", zap.String("directory", dir), zap.Error(err))
		run.skip(Skip{Path: dir, Reason: SkipUnreadable})
		return
	}

	var subdirs []string
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		switch {
		case entry.IsDir():
			if run.filter.ExcludesDir(entry.Name()) {
				run.skip(Skip{Path: path, Reason: SkipExcludedDir})
				continue
			}
			subdirs = append(subdirs, path)
		case entry.Type()&fs.ModeSymlink != 0:
			run.addLink(path)
		case entry.Type().IsRegular():
			if !run.filter.AllowsFile(entry.Name()) {
				run.skip(Skip{Path: path, Reason: SkipFiltered})
				continue
			}
			run.add(path)
		}
	}

	for _, sub := range subdirs {
		run.walk(sub)
	}
}

// addLink selects a symlinked file found while walking if it points inside the root.
// Symlinked directories are not descended.
func (run *resolution) addLink(path string) {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		run.skip(Skip{Path: path, Reason: SkipMissing})
		return
	}
	if !within(run.realRoot, target) {
		run.skip(Skip{Path: path, Reason: SkipOutsideRoot})
		return
	}
	info, err := os.Stat(path)
	if err != nil {
		run.skip(Skip{Path: path, Reason: SkipUnreadable})
		return
	}
	if info.IsDir() {
		run.skip(Skip{Path: path, Reason: SkipSymlinkDir})
		return
	}
	if !info.Mode().IsRegular() || !run.filter.AllowsFile(filepath.Base(path)) {
		run.skip(Skip{Path: path, Reason: SkipFiltered})
		return
	}
	run.add(path)
}

func (run *resolution) add(path string) {
	key := filepath.Clean(path)
	if run.seen[key] {
		run.skip(Skip{Path: key, Reason: SkipDuplicate})
		return
	}
	run.seen[key] = true
	run.files = append(run.files, key)
}

// prepareRoot returns the absolute root and its symlink-resolved form.
func prepareRoot(root string) (string, string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", "", fmt.Errorf("failed to get absolute path: %w", err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", "", fmt.Errorf("%w: %s", ErrRootNotFound, absRoot)
		}
		return "", "", fmt.Errorf("failed to stat root %s: %w", absRoot, err)
	}
	if !info.IsDir() {
		return "", "", fmt.Errorf("%w: %s", ErrRootNotDir, absRoot)
	}
	realRoot, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		return "", "", fmt.Errorf("failed to resolve root symlinks: %w", err)
	}
	return absRoot, realRoot, nil
}

// within reports whether path equals root or lies beneath it. Both must be clean and absolute.
func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
