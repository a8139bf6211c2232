package ignore

import "strings"

// Matches reports whether path is excluded by the set. Every pattern is
// consulted in order and the last one that matches decides; there is no
// early exit.
func (ps *PatternSet) Matches(path string, isDir bool) bool {
	if ps == nil || len(ps.patterns) == 0 {
		return false
	}

	normalized := strings.TrimPrefix(path, "./")

	ignored := false
	for _, p := range ps.patterns {
		if p.DirOnly && !isDir {
			continue
		}
		if p.glob.Match(normalized) {
			ignored = !p.Negation
		}
	}

	if ignored {
		ps.logger.Debug("ignore.Matches: %q excluded (isDir: %v)", normalized, isDir)
	}
	return ignored
}
