package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lex00/privategw-go/internal/config"
	"github.com/lex00/privategw-go/internal/discover"
	"github.com/lex00/privategw-go/internal/lint"
	"github.com/lex00/privategw-go/internal/logging"
	"github.com/lex00/privategw-go/internal/template"
)

// newWatchCmd creates the "watch" subcommand for auto-rebuilding on file changes.
func newWatchCmd() *cobra.Command {
	var (
		lintOnly     bool
		debounce     time.Duration
		outputFormat string
		outputFile   string
		logLevel     string
		logFormat    string
	)

	cmd := &cobra.Command{
		Use:   "watch [paths...]",
		Short: "Auto-rebuild on stack file changes",
		Long: `Watch monitors stack files for changes and automatically rebuilds.

The watch command:
- Monitors the search paths for stack file changes
- Runs lint and rebuilds on each change (findings never block the build)
- Debounces rapid changes to avoid excessive rebuilds

Each rebuild carries a ULID in its log lines so one burst of changes can be
followed across stacks.

Examples:
    privategw watch ./stacks/...
    privategw watch ./stacks/... --lint-only
    privategw watch ./stacks/... --debounce 1s
    privategw watch stack.yaml -o template.json`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(args, watchOptions{
				lintOnly:     lintOnly,
				debounce:     debounce,
				outputFormat: outputFormat,
				outputFile:   outputFile,
				logLevel:     logLevel,
				logFormat:    logFormat,
			})
		},
	}

	cmd.Flags().BoolVar(&lintOnly, "lint-only", false, "Only run lint, skip build")
	cmd.Flags().DurationVar(&debounce, "debounce", 500*time.Millisecond, "Debounce duration for rapid changes")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "Output format for build: json or yaml")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file for build (default: none)")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, or error")
	cmd.Flags().StringVar(&logFormat, "log-format", "console", "Log format: console or json")

	return cmd
}

type watchOptions struct {
	lintOnly     bool
	debounce     time.Duration
	outputFormat string
	outputFile   string
	logLevel     string
	logFormat    string
}

// runWatch monitors stack files and runs lint/build on changes.
func runWatch(paths []string, opts watchOptions) error {
	logger, err := logging.New(logging.Options{Level: opts.logLevel, Format: opts.logFormat})
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	// An output file can only ever hold one stack's template
	if opts.outputFile != "" {
		discovered, err := discover.Discover(discover.Options{Paths: paths})
		if err != nil {
			return fmt.Errorf("failed to resolve paths: %w", err)
		}
		if len(discovered.Stacks) > 1 {
			return fmt.Errorf("found %d stack files (%s); --output watches exactly one",
				len(discovered.Stacks), strings.Join(discovered.Stacks, ", "))
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() {
		_ = watcher.Close()
	}()

	dirs, err := watchDirs(paths)
	if err != nil {
		return fmt.Errorf("failed to resolve paths: %w", err)
	}

	for _, dir := range dirs {
		if err := addDirRecursive(watcher, dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		logger.Info("watching", zap.String("dir", dir))
	}

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Initial build
	rebuildStacks(paths, opts, logger)

	// Debounce timer
	var debounceTimer *time.Timer
	rebuildChan := make(chan struct{}, 1)

	logger.Info("watching for changes")

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			// Only stack files trigger a rebuild
			if !discover.IsStackFile(event.Name) {
				continue
			}

			// Only process write/create events
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			// Debounce: reset timer on each change
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(opts.debounce, func() {
				select {
				case rebuildChan <- struct{}{}:
				default:
				}
			})

		case <-rebuildChan:
			logger.Info("change detected")
			rebuildStacks(paths, opts, logger)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", zap.Error(err))

		case <-sigChan:
			logger.Info("stopping watch")
			return nil
		}
	}
}

// watchDirs converts search paths to the directories to monitor.
func watchDirs(paths []string) ([]string, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	var dirs []string
	seen := make(map[string]bool)

	for _, path := range paths {
		path = strings.TrimSuffix(path, "/...")
		if path == "..." {
			path = "."
		}

		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, err
		}

		// A stack file given directly means watching its directory
		if info, err := os.Stat(absPath); err == nil && !info.IsDir() {
			absPath = filepath.Dir(absPath)
		}

		if !seen[absPath] {
			seen[absPath] = true
			dirs = append(dirs, absPath)
		}
	}

	return dirs, nil
}

// addDirRecursive adds a directory and all subdirectories to the watcher.
func addDirRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			name := filepath.Base(path)
			// Skip hidden and underscore directories
			if path != dir && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
				return filepath.SkipDir
			}
			if name == "vendor" || name == "node_modules" {
				return filepath.SkipDir
			}
			return watcher.Add(path)
		}
		return nil
	})
}

// rebuildStacks runs lint and build over every discovered stack, tagging the
// pass with one rebuild id.
func rebuildStacks(paths []string, opts watchOptions, logger *zap.Logger) {
	log := logger.With(zap.String("rebuild_id", ulid.Make().String()))

	discovered, err := discover.Discover(discover.Options{Paths: paths})
	if err != nil {
		log.Error("discovery failed", zap.Error(err))
		return
	}
	for _, e := range discovered.Errors {
		log.Warn("discovery warning", zap.Error(e))
	}
	if len(discovered.Stacks) == 0 {
		log.Warn("no stack files found")
		return
	}

	for _, path := range discovered.Stacks {
		rebuildStack(path, opts, log)
	}
}

// rebuildStack lints and rebuilds one stack file.
func rebuildStack(path string, opts watchOptions, logger *zap.Logger) {
	log := logger.With(zap.String("stack", path))

	stack, err := config.Load(path)
	if err != nil {
		log.Error("load failed", zap.Error(err))
		return
	}

	lintResult := lint.LintStack(stack, lint.Options{})
	for _, issue := range lintResult.Issues {
		log.Warn("lint issue",
			zap.String("rule", issue.Rule),
			zap.String("severity", string(issue.Severity)),
			zap.String("message", issue.Message))
	}
	if lintResult.Success {
		log.Info("lint passed")
	}

	if opts.lintOnly {
		return
	}

	gw, err := stack.Gateway()
	if err != nil {
		log.Error("build failed", zap.Error(err))
		return
	}
	tmpl, err := template.FromGateway(gw)
	if err != nil {
		log.Error("build failed", zap.Error(err))
		return
	}
	if stack.Description != "" {
		tmpl.Description = stack.Description
	}

	var data []byte
	switch opts.outputFormat {
	case "json":
		data, err = template.ToJSON(tmpl)
	case "yaml":
		data, err = template.ToYAML(tmpl)
	default:
		log.Error("unknown format", zap.String("format", opts.outputFormat))
		return
	}
	if err != nil {
		log.Error("render failed", zap.Error(err))
		return
	}

	if opts.outputFile == "" {
		log.Info("build successful", zap.Int("resources", len(tmpl.Resources)))
		return
	}

	if err := os.WriteFile(opts.outputFile, data, 0644); err != nil {
		log.Error("write failed", zap.Error(err))
		return
	}
	log.Info("build successful",
		zap.String("output", opts.outputFile),
		zap.Int("resources", len(tmpl.Resources)))
}
