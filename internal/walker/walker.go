// Package walker handles directory traversal and file selection
package walker

import (
	"context"
	"errors"
	"iter"
	"os"
	"path"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bethropolis/source-map/internal/ignore"
	"github.com/bethropolis/source-map/internal/profile"
)

type stats struct {
	totalFiles   atomic.Int64
	emittedFiles atomic.Int64
	skippedFiles atomic.Int64
	totalDirs    atomic.Int64
	skippedDirs  atomic.Int64
}

func (s *stats) snapshot() ProgressStats {
	return ProgressStats{
		TotalFiles:   s.totalFiles.Load(),
		EmittedFiles: s.emittedFiles.Load(),
		SkippedFiles: s.skippedFiles.Load(),
		TotalDirs:    s.totalDirs.Load(),
		SkippedDirs:  s.skippedDirs.Load(),
	}
}

// walker carries the read-only state shared by every recursive call
type walker struct {
	root       string
	patterns   *ignore.PatternSet
	filter     Filter
	outputName string
	options    WalkOptions
	tracker    *SkippedTracker
	stats      *stats

	// serializes ProgressFn calls from the ticker and the readers
	progressMu sync.Mutex
}

// selectFunc is called for every file that passed all checks
type selectFunc func(absPath, relativePath string) error

// Walk traverses rootDir depth-first, directories before their contents and
// siblings in name order. Entries excluded by patterns are pruned; of the
// remaining regular files, those named outputName are skipped and the rest
// are handed to walkFn when filter allows them. Paths passed to walkFn are
// relative to rootDir and slash separated.
//
// Unreadable directories and files are skipped and reported in the returned
// items, never as an error. The error is non-nil only when walkFn fails or
// the context is done.
func Walk(rootDir string, patterns *ignore.PatternSet, filter Filter, outputName string, walkFn WalkFunc, opts ...Option) ([]SkippedItem, error) {
	startTime := time.Now()

	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	w := &walker{
		root:       rootDir,
		patterns:   patterns,
		filter:     filter,
		outputName: outputName,
		options:    options,
		tracker:    NewSkippedTracker(64),
		stats:      &stats{},
	}

	if options.ProgressFn != nil {
		progressDone := make(chan struct{})
		tickerExited := make(chan struct{})
		defer func() {
			close(progressDone)
			<-tickerExited
		}()

		go func() {
			defer close(tickerExited)
			ticker := time.NewTicker(300 * time.Millisecond)
			defer ticker.Stop()

			for {
				select {
				case <-progressDone:
					return
				case <-ticker.C:
					w.reportProgress(w.stats.snapshot())
				}
			}
		}()
	}

	options.Logger.Debug("walker.Walk started. Root: %s, Concurrent: %v, Workers: %d",
		rootDir, options.Concurrent, options.MaxWorkers)

	var err error
	if options.Concurrent {
		err = w.runConcurrent(walkFn)
	} else {
		err = w.runSequential(walkFn)
	}

	options.Logger.Debug("walker.Walk finished in %s: %+v", time.Since(startTime), w.stats.snapshot())
	return w.tracker.Items(), err
}

var errStopped = errors.New("walker: stopped by consumer")

// Seq is the lazy form of Walk. Breaking out of the range loop stops the
// traversal.
func Seq(rootDir string, patterns *ignore.PatternSet, filter Filter, outputName string, opts ...Option) iter.Seq2[string, []byte] {
	return func(yield func(string, []byte) bool) {
		_, _ = Walk(rootDir, patterns, filter, outputName, func(relativePath string, content []byte) error {
			if !yield(relativePath, content) {
				return errStopped
			}
			return nil
		}, opts...)
	}
}

func (w *walker) runSequential(walkFn WalkFunc) error {
	return w.traverse(w.options.Context, func(absPath, relativePath string) error {
		content, ok := w.readFile(absPath, relativePath)
		if !ok {
			return nil
		}
		w.stats.emittedFiles.Add(1)
		return walkFn(relativePath, content)
	})
}

// traverse walks the whole tree calling sel for every selected file
func (w *walker) traverse(ctx context.Context, sel selectFunc) error {
	rootInfo, err := os.Stat(w.root)
	if err != nil || !rootInfo.IsDir() {
		w.options.Logger.Warn("walker: cannot open root %q: %v", w.root, err)
		w.tracker.Track(".", ReasonSkippedOpenError, true)
		return nil
	}
	return w.visitDir(ctx, w.root, "", []os.FileInfo{rootInfo}, sel)
}

// visitDir handles the children of one directory. ancestors holds the
// FileInfo of every directory on the current path, used to stop symlink
// loops.
func (w *walker) visitDir(ctx context.Context, absDir, relDir string, ancestors []os.FileInfo, sel selectFunc) error {
	entries, err := os.ReadDir(absDir)
	if err != nil {
		w.options.Logger.Warn("walker: cannot read directory %q: %v", displayPath(relDir), err)
		w.tracker.Track(displayPath(relDir), ReasonSkippedOpenError, true)
		w.stats.skippedDirs.Add(1)
		// os.ReadDir still returns the entries it managed to read
		if len(entries) == 0 {
			return nil
		}
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		absPath := filepath.Join(absDir, entry.Name())
		relativePath := path.Join(relDir, entry.Name())

		// Follow symlinks: the target decides whether this is a directory
		info, err := os.Stat(absPath)
		if err != nil {
			w.options.Logger.Debug("walker: stat failed for %q: %v", relativePath, err)
			w.tracker.Track(relativePath, ReasonSkippedStatError, false)
			w.stats.skippedFiles.Add(1)
			continue
		}
		isDir := info.IsDir()

		if isDir {
			if err := w.visitSubdir(ctx, absPath, relativePath, info, ancestors, sel); err != nil {
				return err
			}
			continue
		}

		if err := w.visitFile(absPath, relativePath, info, sel); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) visitSubdir(ctx context.Context, absPath, relativePath string, info os.FileInfo, ancestors []os.FileInfo, sel selectFunc) error {
	w.stats.totalDirs.Add(1)

	if w.options.SkipGitDir && info.Name() == ".git" {
		w.options.Logger.Debug("walker: pruning .git directory %q", relativePath)
		w.tracker.Track(relativePath, ReasonIgnoredGitDir, true)
		w.stats.skippedDirs.Add(1)
		return nil
	}

	if w.patterns.Matches(relativePath, true) {
		w.options.Logger.Debug("walker: pruned %q by ignore rules", relativePath)
		w.tracker.Track(relativePath, ReasonIgnoredRule, true)
		w.stats.skippedDirs.Add(1)
		return nil
	}

	for _, a := range ancestors {
		if os.SameFile(a, info) {
			w.options.Logger.Warn("walker: %q loops back to an ancestor, not descending", relativePath)
			w.tracker.Track(relativePath, ReasonSkippedCycle, true)
			w.stats.skippedDirs.Add(1)
			return nil
		}
	}

	w.options.Logger.Debug("walker: descending into %q", relativePath)
	return w.visitDir(ctx, absPath, relativePath, append(ancestors[:len(ancestors):len(ancestors)], info), sel)
}

func (w *walker) visitFile(absPath, relativePath string, info os.FileInfo, sel selectFunc) error {
	w.stats.totalFiles.Add(1)

	skip := func(reason SkippedReason) error {
		w.tracker.Track(relativePath, reason, false)
		w.stats.skippedFiles.Add(1)
		return nil
	}

	if w.patterns.Matches(relativePath, false) {
		w.options.Logger.Debug("walker: %q excluded by ignore rules", relativePath)
		return skip(ReasonIgnoredRule)
	}

	basename := info.Name()
	if basename == w.outputName {
		w.options.Logger.Debug("walker: %q is the output artifact", relativePath)
		return skip(ReasonOutputArtifact)
	}

	if w.filter == nil || !w.filter.IsAllowed(basename, profile.Extension(basename)) {
		return skip(ReasonDeniedProfile)
	}

	if !info.Mode().IsRegular() {
		w.options.Logger.Debug("walker: %q is not a regular file", relativePath)
		return skip(ReasonSkippedNotRegular)
	}

	if w.options.MaxFileSize > 0 && info.Size() > w.options.MaxFileSize {
		w.options.Logger.Debug("walker: %q exceeds size limit (%d > %d bytes)",
			relativePath, info.Size(), w.options.MaxFileSize)
		return skip(ReasonSkippedSizeLimit)
	}

	w.options.Logger.Debug("walker: %q selected", relativePath)
	return sel(absPath, relativePath)
}

func (w *walker) reportProgress(stats ProgressStats) {
	if w.options.ProgressFn == nil {
		return
	}
	w.progressMu.Lock()
	defer w.progressMu.Unlock()
	w.options.ProgressFn(stats)
}

func displayPath(relativePath string) string {
	if relativePath == "" {
		return "."
	}
	return relativePath
}
