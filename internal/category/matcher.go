package category

import (
	"fmt"
	"regexp"

	"github.com/GustavoCaso/expensetrace/internal/config"
)

type matcher struct {
	re       *regexp.Regexp
	category string
}

// Matcher picks a category for an expense description. Rules are tried in
// order and patterns ignore case.
type Matcher struct {
	matchers []matcher
}

func NewMatcher(categories []config.Category) (*Matcher, error) {
	matchers := make([]matcher, len(categories))

	for i, category := range categories {
		re, err := regexp.Compile("(?i)" + category.Pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern for category %s: %w", category.Name, err)
		}
		matchers[i] = matcher{
			re:       re,
			category: category.Name,
		}
	}

	return &Matcher{
		matchers: matchers,
	}, nil
}

// Match returns the category of the first matching rule, or "".
func (c Matcher) Match(s string) string {
	for _, matcher := range c.matchers {
		if matcher.re.MatchString(s) {
			return matcher.category
		}
	}

	return ""
}
