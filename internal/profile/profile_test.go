package profile

import "testing"

func TestIsAllowedPrecedence(t *testing.T) {
	p := New("C", Lists{
		AllowedExtensions: []string{"c", "h"},
		AllowedDotfiles:   []string{".clang-format", ".env"},
		AllowedFilenames:  []string{"Makefile", "secret.key"},
		IgnoredExtensions: []string{"o", "key"},
		IgnoredFilenames:  []string{"main.c", "Makefile"},
	}, nil)

	tests := []struct {
		name string
		want bool
	}{
		{"main.c", false},         // ignored filename beats allowed extension
		{"util.c", true},          // allowed extension
		{"util.h", true},          // allowed extension
		{"util.o", false},         // ignored extension
		{"Makefile", false},       // ignored filename beats allowed filename
		{"secret.key", false},     // ignored extension beats allowed filename
		{".clang-format", true},   // allowed dotfile
		{".gitignore", false},     // dotfile not listed
		{"README.md", false},      // default deny
		{"CMakeLists.txt", false}, // default deny
	}

	for _, tt := range tests {
		if got := p.IsAllowed(tt.name, Extension(tt.name)); got != tt.want {
			t.Errorf("IsAllowed(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestIgnoreBeatsAllow(t *testing.T) {
	p := New("", Lists{
		IgnoredFilenames:  []string{"main.c"},
		AllowedExtensions: []string{"c"},
	}, nil)
	if p.IsAllowed("main.c", "c") {
		t.Fatalf("ignored filename must win over allowed extension")
	}
}

func TestDefaultDeny(t *testing.T) {
	p := New("", Lists{}, nil)
	if p.IsAllowed("anything.go", "go") {
		t.Fatalf("empty profile should deny everything")
	}

	var nilProfile *Profile
	if nilProfile.IsAllowed("a.c", "c") {
		t.Fatalf("nil profile should deny everything")
	}
}

func TestDotfileListOnlyAppliesToDotfiles(t *testing.T) {
	p := New("", Lists{AllowedDotfiles: []string{"env"}}, nil)
	if p.IsAllowed("env", "") {
		t.Fatalf("allowed_dotfiles must only admit names starting with '.'")
	}
}

func TestMembershipIsCaseSensitive(t *testing.T) {
	p := New("", Lists{AllowedExtensions: []string{"c"}}, nil)
	if p.IsAllowed("MAIN.C", "C") {
		t.Fatalf("extension match must be case sensitive")
	}
}

func TestExtension(t *testing.T) {
	tests := map[string]string{
		"main.c":     "c",
		"a.tar.gz":   "gz",
		"Makefile":   "",
		".bashrc":    "",
		".env.local": "local",
		"trailing.":  "",
		"":           "",
	}
	for name, want := range tests {
		if got := Extension(name); got != want {
			t.Errorf("Extension(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestSyntaxTag(t *testing.T) {
	p := New("C", Lists{}, map[string]string{
		"c":        "c",
		"h":        "c",
		"Makefile": "makefile",
	})

	tests := map[string]string{
		"main.c":   "c",
		"util.h":   "c",
		"Makefile": "makefile",
		"build.sh": "sh",
		"LICENSE":  "txt",
	}
	for name, want := range tests {
		if got := p.SyntaxTag(name); got != want {
			t.Errorf("SyntaxTag(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestDefaultLanguageName(t *testing.T) {
	if got := New("", Lists{}, nil).LanguageName; got != DefaultLanguageName {
		t.Fatalf("expected %q, got %q", DefaultLanguageName, got)
	}
}
