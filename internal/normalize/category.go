package normalize

import "strings"

// UncategorizedCategory is the fallback when nothing matches.
const UncategorizedCategory = "Uncategorized"

// CategoryInferencer derives a spending category from a merchant name when
// the input record did not supply one.
type CategoryInferencer struct {
	rules []CategoryRule
}

// NewCategoryInferencer creates an inferencer over the default rule table.
func NewCategoryInferencer() *CategoryInferencer {
	return NewCategoryInferencerWithRules(DefaultCategoryRules())
}

// NewCategoryInferencerWithRules creates an inferencer over a custom
// ordered rule table.
func NewCategoryInferencerWithRules(rules []CategoryRule) *CategoryInferencer {
	return &CategoryInferencer{rules: rules}
}

// Infer returns the category for a merchant. A non-empty supplied category
// is passed through trimmed and never overridden. Otherwise the first rule
// with a keyword contained in the lowercased merchant name wins; the output
// is never empty.
func (c *CategoryInferencer) Infer(merchant, supplied string) string {
	if trimmed := strings.TrimSpace(supplied); trimmed != "" {
		return trimmed
	}

	name := strings.ToLower(merchant)
	for _, rule := range c.rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(name, keyword) {
				return rule.Category
			}
		}
	}

	return UncategorizedCategory
}
