package aggregate

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"codeagg/pkg/clipboard"
	"codeagg/pkg/selection"

	"go.uber.org/zap"
)

// Run resolves the files of args.Directory, concatenates them, and delivers
// the result to the requested sinks.
func Run(args *Arguments, env Env, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	startTime := time.Now()
	logger.Info("Starting aggregation", zap.String("directory", args.Directory))

	rootDir, err := filepath.Abs(args.Directory)
	if err != nil {
		logger.Error("Failed to resolve directory path", zap.Error(err))
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	var opts []selection.Option
	if args.Verbose {
		opts = append(opts, selection.WithSkipHook(func(s selection.Skip) {
			logger.Info("Skipped path",
				zap.String("path", s.Path),
				zap.String("reason", string(s.Reason)),
				zap.Int("lineNo", s.LineNo))
		}))
	}
	resolver := selection.NewResolver(args.Filter, logger, opts...)

	files, err := resolver.ResolveFolder(rootDir, args.ManifestName)
	if err != nil {
		logger.Error("Failed to resolve files", zap.Error(err))
		return fmt.Errorf("failed to resolve files: %w", err)
	}
	if len(files) == 0 {
		logger.Warn("No files selected for aggregation", zap.String("directory", rootDir))
	}

	aggregated, err := Render(rootDir, files, logger)
	if err != nil {
		return fmt.Errorf("failed to render files: %w", err)
	}

	if err := deliver(args, env, aggregated, logger); err != nil {
		return err
	}

	logger.Info("Aggregation completed",
		zap.Int("totalFiles", len(files)),
		zap.Int("totalBytes", len(aggregated)),
		zap.Duration("elapsed", time.Since(startTime)))
	return nil
}

// Render concatenates the rendered blocks of files in order.
// Files that cannot be read are logged and left out.
func Render(rootDir string, files []string, logger *zap.Logger) (string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var b strings.Builder
	for _, file := range files {
		content, err := ProcessSingleFile(file, rootDir, logger)
		if err != nil {
			logger.Warn("Skipping unreadable file", zap.String("filePath", file), zap.Error(err))
			continue
		}
		b.WriteString(content.Content)
	}
	return b.String(), nil
}

// deliver writes the aggregated text to each requested sink.
func deliver(args *Arguments, env Env, aggregated string, logger *zap.Logger) error {
	if args.Output != "" {
		if err := ensureDirectory(filepath.Dir(args.Output), logger); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		if err := writeToFile(args.Output, []byte(aggregated), 0644, logger); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		printSuccess(env.Status, "Aggregated code written to %s", args.Output)
	}

	if args.Stdout && env.Stdout != nil {
		if _, err := fmt.Fprint(env.Stdout, aggregated); err != nil {
			return fmt.Errorf("failed to write to stdout: %w", err)
		}
	}

	if args.Clipboard && env.Clipboard != nil {
		if err := env.Clipboard.WriteAll(aggregated); err != nil {
			if errors.Is(err, clipboard.ErrUnavailable) {
				logger.Warn("Clipboard unavailable", zap.Error(err))
				printWarning(env.Status, "Clipboard unavailable (install xclip, xsel or wl-clipboard to enable it); use --stdout or --output instead.")
				return nil
			}
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		printSuccess(env.Status, "Aggregated code copied to clipboard!")
	}
	return nil
}
