// File: pkg/aggregate/helpers.go
package aggregate

import (
	"io"
	"os"

	"github.com/fatih/color"
	"go.uber.org/zap"
)

// ensureDirectory ensures a directory exists, creating it if necessary.
func ensureDirectory(path string, logger *zap.Logger) error {
	if err := os.MkdirAll(path, os.ModePerm); err != nil {
		logger.Error("Failed to create directory", zap.String("path", path), zap.Error(err))
		return err
	}
	logger.Debug("Ensured directory exists", zap.String("path", path))
	return nil
}

// writeToFile writes data to a file and logs the operation.
func writeToFile(path string, data []byte, perm os.FileMode, logger *zap.Logger) error {
	if err := os.WriteFile(path, data, perm); err != nil {
		logger.Error("Failed to write file", zap.String("path", path), zap.Error(err))
		return err
	}
	logger.Debug("Successfully wrote file", zap.String("path", path))
	return nil
}

func printSuccess(w io.Writer, format string, a ...interface{}) {
	if w == nil {
		return
	}
	_, _ = color.New(color.FgGreen).Fprintf(w, format+"\n", a...)
}

func printWarning(w io.Writer, format string, a ...interface{}) {
	if w == nil {
		return
	}
	_, _ = color.New(color.FgYellow).Fprintf(w, format+"\n", a...)
}
