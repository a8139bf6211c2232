// Package setup turns the parsed configuration into walker inputs
package setup

import (
	"context"
	"fmt"
	"io"

	"github.com/bethropolis/source-map/internal/ignore"
	"github.com/bethropolis/source-map/internal/utils"
	"github.com/bethropolis/source-map/internal/walker"
)

// InfoLogger wraps the Info method for status updates
type InfoLogger func(format string, args ...interface{})

// WalkerConfig holds all parameters needed to configure a directory walker
type WalkerConfig struct {
	RootDir       string
	RuleFile      string
	ExtraRules    []string
	SkipGitDir    bool
	Concurrent    bool
	MaxWorkers    int
	MaxFileSizeMB int64
	ShowProgress  bool
	ProgressOut   io.Writer
	Context       context.Context
	Logger        utils.Logger
}

// ConfigureWalker loads the ignore rules and builds the walker options
func ConfigureWalker(cfg WalkerConfig, infoLog InfoLogger) (*ignore.PatternSet, []walker.Option) {
	logger := utils.OrNoop(cfg.Logger)

	if len(cfg.ExtraRules) > 0 {
		infoLog("Using extra ignore patterns: %v", cfg.ExtraRules)
	}

	patterns := ignore.NewFromConfig(ignore.Config{
		RootDir:    cfg.RootDir,
		RuleFile:   cfg.RuleFile,
		ExtraRules: cfg.ExtraRules,
		Logger:     logger,
	})
	infoLog("Loaded %d ignore rules.", patterns.Len())

	walkOptions := []walker.Option{
		walker.WithLogger(logger),
		walker.WithConcurrency(cfg.Concurrent),
		walker.WithMaxWorkers(cfg.MaxWorkers),
		walker.WithSkipGitDir(cfg.SkipGitDir),
	}

	if cfg.ShowProgress && cfg.ProgressOut != nil {
		walkOptions = append(walkOptions, walker.WithProgress(progressPrinter(cfg.ProgressOut)))
	}

	if cfg.MaxFileSizeMB > 0 {
		walkOptions = append(walkOptions, walker.WithMaxFileSize(cfg.MaxFileSizeMB*1024*1024))
		infoLog("Skipping files larger than %d MB.", cfg.MaxFileSizeMB)
	}

	if cfg.Context != nil {
		walkOptions = append(walkOptions, walker.WithContext(cfg.Context))
	}

	return patterns, walkOptions
}

// progressPrinter overwrites a single status line on out
func progressPrinter(out io.Writer) walker.ProgressCallback {
	return func(stats walker.ProgressStats) {
		var statusLine string
		if stats.CurrentFilePath != "" {
			path := stats.CurrentFilePath
			if len(path) > 40 {
				path = "..." + path[len(path)-37:]
			}
			statusLine = fmt.Sprintf("\rReading: %-40s", path)
		} else {
			statusLine = fmt.Sprintf("\rScanning... | Files: %d/%d | Dirs: %d",
				stats.EmittedFiles,
				stats.TotalFiles,
				stats.TotalDirs)
		}
		fmt.Fprint(out, statusLine)
	}
}
