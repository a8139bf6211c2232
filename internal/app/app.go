// Package app wires configuration, profile, ignore rules, walker and
// printer into one export run.
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bethropolis/source-map/internal/config"
	"github.com/bethropolis/source-map/internal/logger"
	"github.com/bethropolis/source-map/internal/printer"
	"github.com/bethropolis/source-map/internal/profile"
	"github.com/bethropolis/source-map/internal/setup"
	"github.com/bethropolis/source-map/internal/summary"
	"github.com/bethropolis/source-map/internal/tree"
	"github.com/bethropolis/source-map/internal/walker"
	"github.com/fatih/color"
)

// App encapsulates one export run
type App struct {
	cfg *config.Config
	log *logger.Logger

	// Stdout receives -version output, Stderr progress and skipped listings
	Stdout io.Writer
	Stderr io.Writer
}

// New creates a new App instance
func New(cfg *config.Config) (*App, error) {
	color.NoColor = !cfg.UseColors

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	return &App{
		cfg:    cfg,
		log:    logger.New(os.Stderr, cfg.UseColors).WithLevel(level),
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}, nil
}

// Logger returns the application logger
func (a *App) Logger() *logger.Logger {
	return a.log
}

// WithLogger replaces the application logger
func (a *App) WithLogger(l *logger.Logger) *App {
	a.log = l
	return a
}

// Run performs the export
func (a *App) Run(ctx context.Context) error {
	startTime := time.Now()

	if a.cfg.ShowVersion {
		fmt.Fprintf(a.Stdout, "source-map version %s\n", a.cfg.Version)
		return nil
	}

	if a.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.Timeout)
		defer cancel()
	}

	a.log.Debug("Language profile: %s", a.cfg.Language)
	a.log.Debug("Directory: %s", a.cfg.RootDir)
	a.log.Debug("Output: %s (format %s)", a.cfg.OutputFile, a.cfg.Format)
	a.log.Debug("Concurrent mode: %v (workers: %d)", a.cfg.Concurrent, a.cfg.MaxWorkers)

	if err := checkRootDir(a.cfg.RootDir); err != nil {
		return err
	}

	format, err := printer.ParseFormat(a.cfg.Format)
	if err != nil {
		return err
	}

	var searchDirs []string
	if a.cfg.ProfileDir != "" {
		searchDirs = append(searchDirs, a.cfg.ProfileDir)
	}
	prof, err := profile.Load(a.cfg.Language, a.log.Named("profile"), searchDirs...)
	if err != nil {
		return err
	}
	a.log.Debug("Profile %q: %d allowed extensions, %d allowed filenames, %d allowed dotfiles",
		prof.LanguageName, prof.AllowedExtensions.Len(), prof.AllowedFilenames.Len(), prof.AllowedDotfiles.Len())

	out, err := os.Create(a.cfg.OutputFile)
	if err != nil {
		return fmt.Errorf("could not open output file '%s': %w", a.cfg.OutputFile, err)
	}
	buffered := bufio.NewWriter(out)

	skipped, count, runErr := a.export(ctx, buffered, prof, format)
	if err := buffered.Flush(); err != nil && runErr == nil {
		runErr = fmt.Errorf("writing %s: %w", a.cfg.OutputFile, err)
	}
	if err := out.Close(); err != nil && runErr == nil {
		runErr = fmt.Errorf("closing %s: %w", a.cfg.OutputFile, err)
	}
	if runErr != nil {
		return runErr
	}

	if a.cfg.ShowProgress {
		fmt.Fprintln(a.Stderr)
	}
	summary.DisplayResults(a.log, a.cfg.OutputFile, count, time.Since(startTime))
	for reason, n := range summary.CountByReason(skipped) {
		a.log.Debug("Skipped %d: %s", n, reason)
	}
	if a.cfg.ShowSkipped {
		summary.DisplaySkippedItems(a.log, skipped, a.Stderr)
	}
	return nil
}

// export writes the document: title, directory listing, file contents
func (a *App) export(ctx context.Context, w io.Writer, prof *profile.Profile, format printer.Format) ([]walker.SkippedItem, int64, error) {
	p := printer.New(w).WithFormat(format)
	outputName := filepath.Base(a.cfg.OutputFile)

	if err := p.Title(prof.LanguageName); err != nil {
		return nil, 0, err
	}

	if err := p.Section("Directory Tree"); err != nil {
		return nil, 0, err
	}
	var listing strings.Builder
	err := tree.Render(&listing, a.cfg.RootDir, tree.Options{
		Exclude:      []string{outputName, ".git"},
		UseGitignore: true,
		Logger:       a.log.Named("tree"),
	})
	if err != nil {
		return nil, 0, err
	}
	if err := p.Listing(listing.String()); err != nil {
		return nil, 0, err
	}

	if err := p.Section("File Contents"); err != nil {
		return nil, 0, err
	}

	patterns, walkOptions := setup.ConfigureWalker(setup.WalkerConfig{
		RootDir:       a.cfg.RootDir,
		RuleFile:      a.cfg.IgnoreFile,
		ExtraRules:    a.cfg.ExtraIgnoreRules(),
		SkipGitDir:    a.cfg.IgnoreGit,
		Concurrent:    a.cfg.Concurrent,
		MaxWorkers:    a.cfg.MaxWorkers,
		MaxFileSizeMB: a.cfg.MaxFileSizeMB,
		ShowProgress:  a.cfg.ShowProgress,
		ProgressOut:   a.Stderr,
		Context:       ctx,
		Logger:        a.log.Named("walker"),
	}, a.log.Info)

	a.log.Info("Scanning directory: %s", a.cfg.RootDir)
	skipped, err := walker.Walk(a.cfg.RootDir, patterns, prof, outputName,
		func(relativePath string, content []byte) error {
			return p.PrintFile(relativePath, prof.SyntaxTag(filepath.Base(relativePath)), content)
		}, walkOptions...)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return skipped, p.GetCount(), fmt.Errorf("timeout of %v reached: %w", a.cfg.Timeout, err)
		}
		return skipped, p.GetCount(), err
	}

	if err := p.Finalize(); err != nil {
		return skipped, p.GetCount(), err
	}
	return skipped, p.GetCount(), nil
}

func checkRootDir(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("root directory '%s' not found", root)
		}
		return fmt.Errorf("could not access root directory '%s': %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("specified path '%s' is not a directory", root)
	}
	return nil
}
