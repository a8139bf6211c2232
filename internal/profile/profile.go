// Package profile holds language profiles: the allow/deny lists that decide
// whose content ends up in the document, and the syntax tags used to fence it.
package profile

import "strings"

// Profile is a loaded language profile. Membership tests are exact and case
// sensitive.
type Profile struct {
	LanguageName string

	AllowedExtensions set
	AllowedDotfiles   set
	AllowedFilenames  set
	IgnoredExtensions set
	IgnoredFilenames  set

	// SyntaxMap maps a filename or an extension to a code fence tag
	SyntaxMap map[string]string
}

// Lists is the plain form of the five lookup sets
type Lists struct {
	AllowedExtensions []string
	AllowedDotfiles   []string
	AllowedFilenames  []string
	IgnoredExtensions []string
	IgnoredFilenames  []string
}

type set map[string]struct{}

func newSet(items []string) set {
	s := make(set, len(items))
	for _, item := range items {
		s[item] = struct{}{}
	}
	return s
}

func (s set) has(item string) bool {
	_, ok := s[item]
	return ok
}

// Len returns the number of entries
func (s set) Len() int {
	return len(s)
}

// New builds a Profile from its lists
func New(languageName string, lists Lists, syntaxMap map[string]string) *Profile {
	if languageName == "" {
		languageName = DefaultLanguageName
	}
	if syntaxMap == nil {
		syntaxMap = map[string]string{}
	}
	return &Profile{
		LanguageName:      languageName,
		AllowedExtensions: newSet(lists.AllowedExtensions),
		AllowedDotfiles:   newSet(lists.AllowedDotfiles),
		AllowedFilenames:  newSet(lists.AllowedFilenames),
		IgnoredExtensions: newSet(lists.IgnoredExtensions),
		IgnoredFilenames:  newSet(lists.IgnoredFilenames),
		SyntaxMap:         syntaxMap,
	}
}

// IsAllowed decides whether a file's content is wanted. Ignore lists are
// checked before allow lists, and anything not listed is denied.
func (p *Profile) IsAllowed(basename, extension string) bool {
	if p == nil {
		return false
	}

	switch {
	case p.IgnoredFilenames.has(basename):
		return false
	case p.IgnoredExtensions.has(extension):
		return false
	case strings.HasPrefix(basename, ".") && p.AllowedDotfiles.has(basename):
		return true
	case p.AllowedFilenames.has(basename):
		return true
	case p.AllowedExtensions.has(extension):
		return true
	}
	return false
}

// SyntaxTag returns the fence tag for basename: a mapping for the full name
// wins over one for the extension, then the extension itself, then "txt".
func (p *Profile) SyntaxTag(basename string) string {
	ext := Extension(basename)
	if p != nil {
		if tag, ok := p.SyntaxMap[basename]; ok {
			return tag
		}
		if ext != "" {
			if tag, ok := p.SyntaxMap[ext]; ok {
				return tag
			}
		}
	}
	if ext != "" {
		return ext
	}
	return "txt"
}

// Extension returns the part of basename after its last '.'. A name without
// a dot, or whose only dot is the leading one, has no extension.
func Extension(basename string) string {
	i := strings.LastIndexByte(basename, '.')
	if i <= 0 {
		return ""
	}
	return basename[i+1:]
}
