package profile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bethropolis/source-map/internal/utils"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// DefaultLanguageName is used when a profile does not name its language
const DefaultLanguageName = "Project"

// DefaultSearchDirs lists where profiles are looked up, in order. A leading
// "~" is expanded to the user's home directory.
var DefaultSearchDirs = []string{
	"./config",
	"~/.config/source-map",
	"/usr/local/share/source-map/config",
}

var extensions = []string{".ini", ".yaml", ".yml"}

// Load finds and parses the profile called name. extraDirs are searched
// before DefaultSearchDirs.
func Load(name string, logger utils.Logger, extraDirs ...string) (*Profile, error) {
	logger = utils.OrNoop(logger)

	if name == "" || strings.ContainsAny(name, `/\`) {
		return nil, fmt.Errorf("profile: invalid profile name %q", name)
	}

	dirs := append(append([]string{}, extraDirs...), DefaultSearchDirs...)
	for _, dir := range dirs {
		base, err := expandHome(dir)
		if err != nil {
			logger.Debug("profile.Load: skipping search dir %q: %v", dir, err)
			continue
		}
		for _, ext := range extensions {
			path := filepath.Join(base, name+ext)
			p, err := LoadFile(path)
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			if err != nil {
				return nil, err
			}
			logger.Debug("profile.Load: using %s", path)
			return p, nil
		}
	}

	return nil, fmt.Errorf("%w: %q (searched %s)", ErrProfileNotFound, name, strings.Join(dirs, ", "))
}

// LoadFile parses a single profile file; the format is picked by extension.
func LoadFile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return ParseINI(data)
	}
}

// ParseINI reads the [Core], [Filters] and [Markdown] sections
func ParseINI(data []byte) (*Profile, error) {
	f, err := ini.LoadSources(ini.LoadOptions{
		SkipUnrecognizableLines: true,
		IgnoreInlineComment:     true,
		KeyValueDelimiters:      "=",
		AllowShadows:            true,
	}, data)
	if err != nil {
		return nil, fmt.Errorf("profile: parsing ini: %w", err)
	}

	filters := f.Section("Filters")
	lists := Lists{
		AllowedExtensions: splitList(firstValue(filters, "allowed_extensions")),
		AllowedDotfiles:   splitList(firstValue(filters, "allowed_dotfiles")),
		AllowedFilenames:  splitList(firstValue(filters, "allowed_filenames")),
		IgnoredExtensions: splitList(firstValue(filters, "ignored_extensions")),
		IgnoredFilenames:  splitList(firstValue(filters, "ignored_filenames")),
	}

	name := firstValue(f.Section("Core"), "language_name")
	syntax := parseSyntaxMap(firstValue(f.Section("Markdown"), "syntax_map"))

	return New(name, lists, syntax), nil
}

// firstValue returns the first value given to key; a repeated key does not
// override an earlier one.
func firstValue(section *ini.Section, key string) string {
	if !section.HasKey(key) {
		return ""
	}
	values := section.Key(key).ValueWithShadows()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

type yamlProfile struct {
	LanguageName string `yaml:"language_name"`
	Filters      struct {
		AllowedExtensions []string `yaml:"allowed_extensions"`
		AllowedDotfiles   []string `yaml:"allowed_dotfiles"`
		AllowedFilenames  []string `yaml:"allowed_filenames"`
		IgnoredExtensions []string `yaml:"ignored_extensions"`
		IgnoredFilenames  []string `yaml:"ignored_filenames"`
	} `yaml:"filters"`
	SyntaxMap map[string]string `yaml:"syntax_map"`
}

// ParseYAML reads a profile written as YAML
func ParseYAML(data []byte) (*Profile, error) {
	var y yamlProfile
	if err := yaml.Unmarshal(data, &y); err != nil {
		return nil, fmt.Errorf("profile: parsing yaml: %w", err)
	}

	lists := Lists{
		AllowedExtensions: y.Filters.AllowedExtensions,
		AllowedDotfiles:   y.Filters.AllowedDotfiles,
		AllowedFilenames:  y.Filters.AllowedFilenames,
		IgnoredExtensions: y.Filters.IgnoredExtensions,
		IgnoredFilenames:  y.Filters.IgnoredFilenames,
	}
	return New(y.LanguageName, lists, y.SyntaxMap), nil
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// parseSyntaxMap reads "key:tag" pairs; entries without a colon are dropped
// and the first mapping for a key is kept.
func parseSyntaxMap(value string) map[string]string {
	m := map[string]string{}
	for _, entry := range splitList(value) {
		key, tag, ok := strings.Cut(entry, ":")
		if !ok {
			continue
		}
		key, tag = strings.TrimSpace(key), strings.TrimSpace(tag)
		if _, seen := m[key]; !seen && key != "" {
			m[key] = tag
		}
	}
	return m
}

func expandHome(dir string) (string, error) {
	if dir != "~" && !strings.HasPrefix(dir, "~/") {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(dir, "~")), nil
}
