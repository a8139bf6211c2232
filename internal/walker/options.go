package walker

import (
	"context"

	"github.com/bethropolis/source-map/internal/utils"
)

// WalkOptions configures the behavior of the Walk function
type WalkOptions struct {
	Logger      utils.Logger
	Concurrent  bool
	MaxWorkers  int
	MaxFileSize int64
	Context     context.Context
	SkipGitDir  bool
	ProgressFn  ProgressCallback
}

// ProgressCallback receives progress updates. Calls never overlap, and none
// happen after Walk returns.
type ProgressCallback func(stats ProgressStats)

// ProgressStats holds statistics about the walk progress
type ProgressStats struct {
	TotalFiles      int64  // Regular files seen
	EmittedFiles    int64  // Files handed to the WalkFunc
	SkippedFiles    int64  // Files skipped for any reason
	TotalDirs       int64  // Directories seen
	SkippedDirs     int64  // Directories pruned or unreadable
	CurrentFilePath string // Relative path of the file being read
}

func defaultOptions() WalkOptions {
	return WalkOptions{
		Logger:      &utils.NoopLogger{},
		Concurrent:  false,
		MaxWorkers:  10,
		MaxFileSize: 0, // No limit
		Context:     context.Background(),
	}
}

// Option is a functional option for configuring WalkOptions
type Option func(*WalkOptions)

// WithLogger sets a custom logger for the walker
func WithLogger(logger utils.Logger) Option {
	return func(opts *WalkOptions) {
		if logger != nil {
			opts.Logger = logger
		}
	}
}

// WithConcurrency reads file contents on a worker pool. Emission order is
// unchanged.
func WithConcurrency(enabled bool) Option {
	return func(opts *WalkOptions) {
		opts.Concurrent = enabled
	}
}

// WithMaxWorkers sets the maximum number of concurrent workers
func WithMaxWorkers(workers int) Option {
	return func(opts *WalkOptions) {
		if workers > 0 {
			opts.MaxWorkers = workers
		}
	}
}

// WithMaxFileSize skips files larger than maxBytes (0 = no limit)
func WithMaxFileSize(maxBytes int64) Option {
	return func(opts *WalkOptions) {
		opts.MaxFileSize = maxBytes
	}
}

// WithContext sets the context for cancellation
func WithContext(ctx context.Context) Option {
	return func(opts *WalkOptions) {
		if ctx != nil {
			opts.Context = ctx
		}
	}
}

// WithSkipGitDir prunes every directory named .git
func WithSkipGitDir(enabled bool) Option {
	return func(opts *WalkOptions) {
		opts.SkipGitDir = enabled
	}
}

// WithProgress adds a progress callback function
func WithProgress(fn ProgressCallback) Option {
	return func(o *WalkOptions) {
		o.ProgressFn = fn
	}
}
