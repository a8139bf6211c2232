// Package tree renders the directory listing section of the document.
//
// Unlike the content scan, the listing honours every .gitignore in the
// repository (nested files included), the way `tree --gitignore` does.
package tree

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bethropolis/source-map/internal/utils"
	gitignore "github.com/denormal/go-gitignore"
)

const indentWidth = 4

// Options configures Render
type Options struct {
	// Exclude lists basenames never shown, at any depth
	Exclude []string

	// UseGitignore filters entries through the repository's ignore files
	UseGitignore bool

	Logger utils.Logger
}

type renderer struct {
	out     io.Writer
	exclude map[string]struct{}
	ignore  gitignore.GitIgnore
	logger  utils.Logger
	err     error
}

// Render writes the listing of root: the root line followed by one
// "|-- name" line per entry, indented four spaces per level, siblings in
// name order. Hidden entries are shown. Unreadable directories are listed
// but not expanded.
func Render(out io.Writer, root string, opts Options) error {
	r := &renderer{
		out:     out,
		exclude: make(map[string]struct{}, len(opts.Exclude)),
		logger:  utils.OrNoop(opts.Logger),
	}
	for _, name := range opts.Exclude {
		if name != "" {
			r.exclude[name] = struct{}{}
		}
	}

	if opts.UseGitignore {
		r.ignore = loadRepository(root, r.logger)
	}

	r.printf("%s\n", root)
	r.walk(root, "", 0)
	return r.err
}

// Lines is a convenience wrapper returning the rendered listing as lines
func Lines(root string, opts Options) ([]string, error) {
	var b strings.Builder
	if err := Render(&b, root, opts); err != nil {
		return nil, err
	}
	return strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n"), nil
}

func loadRepository(root string, logger utils.Logger) gitignore.GitIgnore {
	abs, err := filepath.Abs(root)
	if err != nil {
		logger.Warn("tree: cannot resolve %q: %v", root, err)
		return nil
	}

	repo, err := gitignore.NewRepository(abs)
	if err != nil {
		logger.Warn("tree: error loading ignore files from %q: %v", abs, err)
		if repo == nil {
			return nil
		}
	}
	return repo
}

func (r *renderer) walk(absDir, relDir string, depth int) {
	if r.err != nil {
		return
	}

	entries, err := os.ReadDir(absDir)
	if err != nil {
		r.logger.Debug("tree: cannot read %q: %v", absDir, err)
		return
	}

	indent := strings.Repeat(" ", depth*indentWidth)
	for _, entry := range entries {
		name := entry.Name()
		if _, skip := r.exclude[name]; skip {
			continue
		}

		absPath := filepath.Join(absDir, name)
		relativePath := path.Join(relDir, name)

		info, statErr := os.Stat(absPath)
		isDir := statErr == nil && info.IsDir()

		if r.ignored(relativePath, isDir) {
			continue
		}

		r.printf("%s|-- %s\n", indent, name)
		if isDir && entry.Type()&os.ModeSymlink == 0 {
			r.walk(absPath, relativePath, depth+1)
		}
	}
}

func (r *renderer) ignored(relativePath string, isDir bool) (ignored bool) {
	if r.ignore == nil {
		return false
	}

	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("tree: gitignore matcher panicked on %q: %v", relativePath, rec)
			ignored = false
		}
	}()

	m := r.ignore.Relative(relativePath, isDir)
	return m != nil && m.Ignore()
}

func (r *renderer) printf(format string, args ...interface{}) {
	if r.err != nil {
		return
	}
	if _, err := fmt.Fprintf(r.out, format, args...); err != nil {
		r.err = fmt.Errorf("tree: write: %w", err)
	}
}
