package tree

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func makeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
	return root
}

func TestRenderLayout(t *testing.T) {
	root := makeTree(t, map[string]string{
		"main.c":         "",
		".clang-format":  "",
		"src/util.c":     "",
		"src/lib/deep.h": "",
		"output.md":      "",
	})

	lines, err := Lines(root, Options{Exclude: []string{"output.md"}})
	if err != nil {
		t.Fatalf("Lines: %v", err)
	}

	want := []string{
		root,
		"|-- .clang-format",
		"|-- main.c",
		"|-- src",
		"    |-- lib",
		"        |-- deep.h",
		"    |-- util.c",
	}
	if !reflect.DeepEqual(lines, want) {
		t.Fatalf("got:\n%v\nwant:\n%v", lines, want)
	}
}

func TestRenderExcludesAtAnyDepth(t *testing.T) {
	root := makeTree(t, map[string]string{
		".git/HEAD":     "",
		"sub/.git/HEAD": "",
		"sub/keep.c":    "",
		"sub/output.md": "",
	})

	lines, err := Lines(root, Options{Exclude: []string{".git", "output.md"}})
	if err != nil {
		t.Fatalf("Lines: %v", err)
	}

	want := []string{root, "|-- sub", "    |-- keep.c"}
	if !reflect.DeepEqual(lines, want) {
		t.Fatalf("got %v, want %v", lines, want)
	}
}

func TestRenderHonoursGitignore(t *testing.T) {
	root := makeTree(t, map[string]string{
		".gitignore": "*.log\n",
		"debug.log":  "",
		"main.c":     "",
	})

	lines, err := Lines(root, Options{UseGitignore: true})
	if err != nil {
		t.Fatalf("Lines: %v", err)
	}

	want := []string{root, "|-- .gitignore", "|-- main.c"}
	if !reflect.DeepEqual(lines, want) {
		t.Fatalf("got %v, want %v", lines, want)
	}
}

func TestRenderMissingRoot(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "gone")
	lines, err := Lines(missing, Options{})
	if err != nil {
		t.Fatalf("Lines: %v", err)
	}
	if len(lines) != 1 || lines[0] != missing {
		t.Fatalf("expected only the root line, got %v", lines)
	}
}
