package selection

import "errors"

var (
	// ErrRootNotFound indicates the root directory does not exist.
	ErrRootNotFound = errors.New("root directory not found")

	// ErrRootNotDir indicates the root path is not a directory.
	ErrRootNotDir = errors.New("root path is not a directory")
)
