// Package config parses the command line
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
)

// Version is the release version reported by -version
const Version = "1.0.0"

const (
	DefaultTargetDir  = "."
	DefaultOutputFile = "output.md"
)

// ErrUsage is returned when the positional arguments are missing
var ErrUsage = errors.New("config: missing language profile argument")

// Config holds all application configuration settings
type Config struct {
	// Positional arguments
	Language   string
	RootDir    string
	OutputFile string

	// Logging settings
	Verbose   bool
	Quiet     bool
	LogLevel  string
	NoColor   bool
	UseColors bool

	// Processing settings
	Concurrent    bool
	MaxWorkers    int
	MaxFileSizeMB int64
	ShowProgress  bool
	Timeout       time.Duration
	ShowSkipped   bool

	// Filtering settings
	IgnoreGit    bool
	IgnoreFile   string
	CustomIgnore string
	ProfileDir   string

	// Output format
	Format string

	ShowVersion bool
	Version     string
}

// New parses os.Args, printing usage and exiting on error
func New() *Config {
	cfg, err := Parse(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Parse reads flags and the positional arguments
// <language_profile> [target_directory] [output_file].
func Parse(args []string, usageOut io.Writer) (*Config, error) {
	c := &Config{Version: Version}

	fs := flag.NewFlagSet("source-map", flag.ContinueOnError)
	fs.SetOutput(usageOut)
	fs.Usage = func() {
		fmt.Fprintf(usageOut, "Usage: source-map [flags] <language_profile> [target_directory] [output_file]\n\nFlags:\n")
		fs.PrintDefaults()
	}

	fs.BoolVar(&c.Verbose, "verbose", false, "Enable verbose logging (same as -log-level debug)")
	fs.BoolVar(&c.Quiet, "quiet", false, "Suppress INFO messages (only show WARN, ERROR)")
	fs.StringVar(&c.LogLevel, "log-level", "", "Set the logging level (debug, info, warn, error, none)")
	fs.BoolVar(&c.NoColor, "no-color", false, "Disable color output")
	fs.BoolVar(&c.Concurrent, "concurrent", false, "Read file contents concurrently")
	fs.IntVar(&c.MaxWorkers, "workers", runtime.NumCPU(), "Max number of concurrent readers")
	fs.Int64Var(&c.MaxFileSizeMB, "max-size", 0, "Skip files larger than this many MB (0 = no limit)")
	fs.BoolVar(&c.ShowProgress, "progress", false, "Show progress information")
	fs.DurationVar(&c.Timeout, "timeout", 0, "Maximum execution time (e.g., '30s', '5m')")
	fs.BoolVar(&c.ShowSkipped, "show-skipped", false, "List skipped files/directories and reasons at the end")
	fs.BoolVar(&c.IgnoreGit, "git", true, "Skip .git directories")
	fs.StringVar(&c.IgnoreFile, "ignore-file", ".gitignore", "Name of the rule file read from the target directory")
	fs.StringVar(&c.CustomIgnore, "ignore", "", "Extra ignore patterns (comma-separated), applied after the rule file")
	fs.StringVar(&c.ProfileDir, "profile-dir", "", "Directory searched first for <language_profile>.ini/.yaml")
	fs.StringVar(&c.Format, "format", "markdown", "Output format (markdown, json)")
	fs.BoolVar(&c.ShowVersion, "version", false, "Show version information")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if c.ShowVersion {
		return c, nil
	}

	rest := fs.Args()
	if len(rest) < 1 {
		fs.Usage()
		return nil, ErrUsage
	}
	if len(rest) > 3 {
		return nil, fmt.Errorf("config: unexpected arguments: %s", strings.Join(rest[3:], " "))
	}

	c.Language = rest[0]
	c.RootDir = DefaultTargetDir
	c.OutputFile = DefaultOutputFile
	if len(rest) > 1 {
		c.RootDir = rest[1]
	}
	if len(rest) > 2 {
		c.OutputFile = rest[2]
	}

	if c.LogLevel == "" {
		switch {
		case c.Verbose:
			c.LogLevel = "debug"
		case c.Quiet:
			c.LogLevel = "warn"
		default:
			c.LogLevel = "info"
		}
	}

	c.UseColors = !c.NoColor && isatty.IsTerminal(os.Stderr.Fd())
	return c, nil
}

// ExtraIgnoreRules splits CustomIgnore into trimmed, non-empty patterns
func (c *Config) ExtraIgnoreRules() []string {
	var rules []string
	for _, p := range strings.Split(c.CustomIgnore, ",") {
		if p = strings.TrimSpace(p); p != "" {
			rules = append(rules, p)
		}
	}
	return rules
}
