package names

import (
	"fmt"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/praetorian-inc/rangeexpr/pkg/types"
)

// matchTimeout bounds a single pattern evaluation against one name.
const matchTimeout = time.Second

// FilterConfig specifies include and exclude patterns for name selection.
type FilterConfig struct {
	Include []string // Regex patterns - only matching names selected
	Exclude []string // Regex patterns - matching names dropped
}

// ParsePatterns splits a comma-separated string into individual patterns.
// Patterns are trimmed of whitespace.
func ParsePatterns(patterns string) []string {
	if patterns == "" {
		return []string{}
	}

	parts := strings.Split(patterns, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// Select returns the ascending 0-based positions of all names in src that
// pass the filter. Include is applied first, then exclude; an empty include
// list selects every name. Patterns use Perl/.NET syntax (lookarounds are
// allowed).
func Select(src types.NameSource, config FilterConfig) ([]int, error) {
	includes, err := compileAll(config.Include)
	if err != nil {
		return nil, err
	}
	excludes, err := compileAll(config.Exclude)
	if err != nil {
		return nil, err
	}

	result := make([]int, 0)
	if src == nil {
		return result, nil
	}

	for i := 0; i < src.Count(); i++ {
		name := src.NameAt(i)

		if len(includes) > 0 {
			ok, err := matchesAny(name, includes)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
		}

		if len(excludes) > 0 {
			ok, err := matchesAny(name, excludes)
			if err != nil {
				return nil, err
			}
			if ok {
				continue
			}
		}

		result = append(result, i)
	}

	return result, nil
}

// =============================================================================
// HELPERS
// =============================================================================

func compileAll(patterns []string) ([]*regexp2.Regexp, error) {
	var out []*regexp2.Regexp
	for _, pattern := range patterns {
		re, err := regexp2.Compile(pattern, regexp2.None)
		if err != nil {
			return nil, fmt.Errorf("invalid regex pattern %q: %w", pattern, err)
		}
		re.MatchTimeout = matchTimeout
		out = append(out, re)
	}
	return out, nil
}

func matchesAny(name string, regexes []*regexp2.Regexp) (bool, error) {
	for _, re := range regexes {
		ok, err := re.MatchString(name)
		if err != nil {
			return false, fmt.Errorf("matching %q against %q: %w", name, re.String(), err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
