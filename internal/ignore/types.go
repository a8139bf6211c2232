package ignore

import (
	"github.com/bethropolis/source-map/internal/utils"
	"github.com/gobwas/glob"
)

// DefaultRuleFile is the rule file looked up at the scan root
const DefaultRuleFile = ".gitignore"

// Pattern is a single compiled ignore rule
type Pattern struct {
	// Source is the glob as written in the rule file, without the '!' prefix
	// and the trailing '/'
	Source string

	// Negation re-includes a path instead of excluding it
	Negation bool

	// DirOnly restricts the rule to directory paths
	DirOnly bool

	glob glob.Glob
}

// PatternSet is an ordered list of ignore rules. Order matters: a later
// matching rule overrides every earlier one.
type PatternSet struct {
	patterns []Pattern
	logger   utils.Logger
}

// Config holds configuration options for loading a PatternSet
type Config struct {
	RootDir    string
	RuleFile   string
	ExtraRules []string
	Logger     utils.Logger
}
