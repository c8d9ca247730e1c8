package aggregate

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/text/encoding/unicode"
)

// ProcessSingleFile reads a file and renders it as `// <rel>` followed by its text and a blank line.
func ProcessSingleFile(filePath, rootDir string, logger *zap.Logger) (FileContent, error) {
	logger.Debug("Processing file",
		zap.String("filePath", filePath),
		zap.String("rootDir", rootDir))

	relativePath, relErr := filepath.Rel(rootDir, filePath)
	if relErr != nil {
		logger.Warn("Unable to determine relative path, using absolute path",
			zap.String("filePath", filePath),
			zap.String("rootDir", rootDir),
			zap.Error(relErr))
		relativePath = filePath
	}
	relativePath = filepath.ToSlash(relativePath)

	text, err := ReadText(filePath)
	if err != nil {
		logger.Error("Failed to read file", zap.String("filePath", filePath), zap.Error(err))
		return FileContent{}, fmt.Errorf("error reading file %s: %w", filePath, err)
	}

	logger.Debug("Successfully read file content",
		zap.String("filePath", filePath),
		zap.Int("contentSizeBytes", len(text)))

	return FileContent{
		Path:    relativePath,
		Content: fmt.Sprintf("// %s\n%s\n\n", relativePath, text),
	}, nil
}

// ReadText reads a file as UTF-8. Invalid byte sequences are replaced with U+FFFD
// rather than failing the read.
func ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if utf8.Valid(data) {
		return string(data), nil
	}
	decoded, err := unicode.UTF8.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", path, err)
	}
	return string(decoded), nil
}
