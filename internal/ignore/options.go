package ignore

import "github.com/bethropolis/source-map/internal/utils"

type loadOptions struct {
	ruleFile   string
	extraRules []string
	logger     utils.Logger
}

// Option configures Load
type Option func(*loadOptions)

// WithRuleFile changes the name of the rule file read from the root
func WithRuleFile(name string) Option {
	return func(o *loadOptions) {
		if name != "" {
			o.ruleFile = name
		}
	}
}

// WithExtraRules appends rules after the ones read from the rule file, so
// they take precedence over it.
func WithExtraRules(lines []string) Option {
	return func(o *loadOptions) {
		o.extraRules = append(o.extraRules, lines...)
	}
}

func WithLogger(logger utils.Logger) Option {
	return func(o *loadOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}
