package printer

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestMarkdownDocument(t *testing.T) {
	var b strings.Builder
	p := New(&b)

	steps := []func() error{
		func() error { return p.Title("C") },
		func() error { return p.Section("Directory Tree") },
		func() error { return p.Listing(".\n|-- main.c") },
		func() error { return p.Section("File Contents") },
		func() error { return p.PrintFile("main.c", "c", []byte("int main;")) },
		p.Finalize,
	}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}

	want := "# C\n\n" +
		"## Directory Tree\n\n" +
		"```\n.\n|-- main.c\n```\n\n" +
		"## File Contents\n\n" +
		"### main.c\n\n" +
		"```c\nint main;\n```\n\n"
	if b.String() != want {
		t.Fatalf("got:\n%q\nwant:\n%q", b.String(), want)
	}
	if p.GetCount() != 1 {
		t.Fatalf("expected count 1, got %d", p.GetCount())
	}
}

func TestContentWithPercentSignsIsVerbatim(t *testing.T) {
	var b strings.Builder
	p := New(&b)
	if err := p.CodeBlock("c", []byte(`printf("%d%s");`)); err != nil {
		t.Fatalf("CodeBlock: %v", err)
	}
	if !strings.Contains(b.String(), `printf("%d%s");`) {
		t.Fatalf("content was altered: %q", b.String())
	}
}

func TestJSONDocument(t *testing.T) {
	var b strings.Builder
	p := New(&b).WithFormat(FormatJSON)

	_ = p.Title("Go")
	_ = p.Section("Directory Tree")
	_ = p.Listing(".\n|-- main.go\n")
	_ = p.PrintFile("main.go", "go", []byte("package main"))
	if b.Len() != 0 {
		t.Fatalf("json output must be written on Finalize only")
	}
	if err := p.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	var doc struct {
		Language string     `json:"language"`
		Tree     string     `json:"tree"`
		Files    []JSONFile `json:"files"`
	}
	if err := json.Unmarshal([]byte(b.String()), &doc); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if doc.Language != "Go" || doc.Tree != ".\n|-- main.go\n" {
		t.Fatalf("unexpected document: %+v", doc)
	}
	if len(doc.Files) != 1 || doc.Files[0].Content != "package main" || doc.Files[0].Tag != "go" {
		t.Fatalf("unexpected files: %+v", doc.Files)
	}
}

func TestWritesAfterFinalizeFail(t *testing.T) {
	var b strings.Builder
	p := New(&b)
	if err := p.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if err := p.Raw("late"); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatMarkdown, "md": FormatMarkdown, "JSON": FormatJSON} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("html"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}
