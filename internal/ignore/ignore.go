// Package ignore implements the gitignore-style exclusion rules applied to
// the content scan.
//
// Only a single rule file from the scan root is considered. Rules are
// evaluated in file order and the last matching rule decides, which is what
// makes "!pattern" re-inclusion work. Globs support '*', '?' and '[...]';
// '*' never crosses a '/' boundary.
package ignore

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bethropolis/source-map/internal/utils"
	"github.com/gobwas/glob"
)

// New compiles rule lines into a PatternSet. Blank lines and lines starting
// with '#' are skipped. A pattern that fails to compile is skipped and
// reported to the logger; it never fails the whole set.
func New(lines []string, logger utils.Logger) *PatternSet {
	if logger == nil {
		logger = &utils.NoopLogger{}
	}

	ps := &PatternSet{
		patterns: make([]Pattern, 0, len(lines)),
		logger:   logger,
	}

	for i, line := range lines {
		p, ok, err := parseLine(line)
		if err != nil {
			logger.Warn("ignore: skipping rule %d %q: %v", i+1, line, err)
			continue
		}
		if ok {
			ps.patterns = append(ps.patterns, p)
		}
	}

	logger.Debug("ignore.New: compiled %d of %d rule lines", len(ps.patterns), len(lines))
	return ps
}

// Load reads the rule file at the root of rootDir and compiles it. A missing
// or unreadable rule file yields an empty set.
func Load(rootDir string, opts ...Option) *PatternSet {
	o := loadOptions{
		ruleFile: DefaultRuleFile,
		logger:   &utils.NoopLogger{},
	}
	for _, opt := range opts {
		opt(&o)
	}

	rulePath := filepath.Join(rootDir, o.ruleFile)
	lines, err := readLines(rulePath)
	if err != nil {
		o.logger.Debug("ignore.Load: no rules loaded from %s: %v", rulePath, err)
	} else {
		o.logger.Debug("ignore.Load: read %d lines from %s", len(lines), rulePath)
	}

	return New(append(lines, o.extraRules...), o.logger)
}

// NewFromConfig loads a PatternSet from a Config struct
func NewFromConfig(cfg Config) *PatternSet {
	options := []Option{
		WithRuleFile(cfg.RuleFile),
		WithExtraRules(cfg.ExtraRules),
	}
	if cfg.Logger != nil {
		options = append(options, WithLogger(cfg.Logger))
	}
	return Load(cfg.RootDir, options...)
}

// Len returns the number of compiled patterns
func (ps *PatternSet) Len() int {
	if ps == nil {
		return 0
	}
	return len(ps.patterns)
}

// Patterns returns a copy of the compiled patterns in evaluation order
func (ps *PatternSet) Patterns() []Pattern {
	if ps == nil {
		return nil
	}
	out := make([]Pattern, len(ps.patterns))
	copy(out, ps.patterns)
	return out
}

// parseLine turns one rule file line into a Pattern. ok is false for lines
// that carry no rule.
func parseLine(line string) (p Pattern, ok bool, err error) {
	line = strings.TrimRight(line, "\r\n")
	if line == "" || strings.HasPrefix(line, "#") {
		return Pattern{}, false, nil
	}

	if strings.HasPrefix(line, "!") {
		p.Negation = true
		line = line[1:]
	}
	if strings.HasSuffix(line, "/") {
		p.DirOnly = true
		line = strings.TrimSuffix(line, "/")
	}
	if line == "" {
		return Pattern{}, false, nil
	}

	g, err := glob.Compile(fnmatchSyntax(line), '/')
	if err != nil {
		return Pattern{}, false, fmt.Errorf("invalid glob: %w", err)
	}

	p.Source = line
	p.glob = g
	return p, true, nil
}

// fnmatchSyntax rewrites a rule so gobwas/glob reads it with fnmatch
// meaning: braces are literal and a run of '*' is a single '*', so no
// wildcard crosses a '/'. Escapes and bracket expressions are copied as is.
func fnmatchSyntax(pattern string) string {
	var b strings.Builder
	b.Grow(len(pattern) + 4)

	inRange := false
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch {
		case c == '\\' && i+1 < len(pattern):
			b.WriteByte(c)
			i++
			b.WriteByte(pattern[i])
		case inRange:
			b.WriteByte(c)
			if c == ']' {
				inRange = false
			}
		case c == '[':
			inRange = true
			b.WriteByte(c)
		case c == '{' || c == '}':
			b.WriteByte('\\')
			b.WriteByte(c)
		case c == '*':
			b.WriteByte(c)
			for i+1 < len(pattern) && pattern[i+1] == '*' {
				i++
			}
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("ignore: reading %s: %w", path, err)
	}
	return lines, nil
}
