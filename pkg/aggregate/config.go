// File: pkg/aggregate/config.go
package aggregate

import (
	"io"

	"codeagg/pkg/clipboard"
	"codeagg/pkg/selection"
)

// Arguments holds the configuration options for one aggregation run.
type Arguments struct {
	Directory    string           // Root folder whose files are aggregated.
	ManifestName string           // Manifest file name looked up inside Directory.
	Filter       selection.Filter // Extension, reserved-name and excluded-directory filter.
	Output       string           // Optional destination file for the aggregated text.
	Stdout       bool             // Write the aggregated text to Env.Stdout.
	Clipboard    bool             // Copy the aggregated text to the clipboard.
	Verbose      bool             // Report skipped manifest entries at info level.
}

// Env carries the collaborators a run writes to.
type Env struct {
	Stdout    io.Writer        // Receives the aggregated text when Arguments.Stdout is set.
	Status    io.Writer        // Receives human-readable status lines.
	Clipboard clipboard.Writer // Clipboard sink.
}

// FileContent represents the rendered block of a single file.
type FileContent struct {
	Path    string // Slash-separated path relative to the root.
	Content string // Header line, file text and trailing blank line.
}
