package manifest

import "errors"

var (
	// ErrManifestNotFound indicates the manifest file does not exist.
	ErrManifestNotFound = errors.New("manifest file not found")

	// ErrManifestUnreadable indicates the manifest exists but could not be read.
	ErrManifestUnreadable = errors.New("manifest file unreadable")
)
