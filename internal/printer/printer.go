// Package printer materializes the output document
package printer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
)

// ErrClosed is returned by writes after Finalize
var ErrClosed = errors.New("printer: document already finalized")

// Format selects the document encoding
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// ParseFormat validates a format name
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case FormatMarkdown, "md", "":
		return FormatMarkdown, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", fmt.Errorf("printer: unknown format %q", name)
}

// Printer receives document events in order and writes the document
type Printer struct {
	output    io.Writer
	format    Format
	count     atomic.Int64
	finalized bool

	// JSON mode buffers the whole document until Finalize
	doc jsonDocument
	err error
}

// JSONFile is a file entry in JSON output
type JSONFile struct {
	Path    string `json:"path"`
	Tag     string `json:"tag"`
	Content string `json:"content"`
}

type jsonDocument struct {
	Language string     `json:"language"`
	Tree     string     `json:"tree"`
	Files    []JSONFile `json:"files"`
}

// New creates a Markdown printer writing to w
func New(w io.Writer) *Printer {
	return &Printer{
		output: w,
		format: FormatMarkdown,
		doc:    jsonDocument{Files: []JSONFile{}},
	}
}

// WithFormat sets the output format
func (p *Printer) WithFormat(format Format) *Printer {
	p.format = format
	return p
}

// Title writes the top level heading
func (p *Printer) Title(text string) error {
	if p.format == FormatJSON {
		p.doc.Language = text
		return p.check()
	}
	return p.Header(1, text)
}

// Section starts a second level section
func (p *Printer) Section(text string) error {
	if p.format == FormatJSON {
		return p.check()
	}
	return p.Header(2, text)
}

// Header writes a heading of the given level
func (p *Printer) Header(level int, text string) error {
	if p.format == FormatJSON {
		return p.check()
	}
	if level < 1 {
		level = 1
	}
	return p.write("%s %s\n\n", strings.Repeat("#", level), text)
}

// CodeBlock writes a fenced block tagged with tag
func (p *Printer) CodeBlock(tag string, content []byte) error {
	if p.format == FormatJSON {
		return p.check()
	}
	return p.write("```%s\n%s\n```\n\n", tag, content)
}

// Raw writes text verbatim. It is dropped in JSON mode.
func (p *Printer) Raw(text string) error {
	if p.format == FormatJSON {
		return p.check()
	}
	return p.write("%s", text)
}

// Listing writes the directory listing as an unlabelled fenced block
func (p *Printer) Listing(text string) error {
	if p.format == FormatJSON {
		if err := p.check(); err != nil {
			return err
		}
		p.doc.Tree = text
		return nil
	}
	if text != "" && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	return p.Raw("```\n" + text + "```\n\n")
}

// PrintFile writes one file entry: a third level heading with its path and
// a code block with its content.
func (p *Printer) PrintFile(relativePath, tag string, content []byte) error {
	p.count.Add(1)

	if p.format == FormatJSON {
		if err := p.check(); err != nil {
			return err
		}
		p.doc.Files = append(p.doc.Files, JSONFile{
			Path:    relativePath,
			Tag:     tag,
			Content: string(content),
		})
		return nil
	}

	if err := p.Header(3, relativePath); err != nil {
		return err
	}
	return p.CodeBlock(tag, content)
}

// Finalize completes the document. For JSON this is when it is written.
func (p *Printer) Finalize() error {
	if err := p.check(); err != nil {
		return err
	}
	p.finalized = true

	if p.format != FormatJSON {
		return nil
	}

	enc := json.NewEncoder(p.output)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p.doc); err != nil {
		return fmt.Errorf("printer: encoding json: %w", err)
	}
	return nil
}

// GetCount returns the number of files printed
func (p *Printer) GetCount() int64 {
	return p.count.Load()
}

func (p *Printer) check() error {
	if p.finalized {
		return ErrClosed
	}
	return p.err
}

func (p *Printer) write(format string, args ...interface{}) error {
	if err := p.check(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(p.output, format, args...); err != nil {
		p.err = fmt.Errorf("printer: write: %w", err)
	}
	return p.err
}
