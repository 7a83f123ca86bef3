package normalize

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/agext/levenshtein"
)

// UnknownMerchant is the canonical identity for empty merchant fields.
const UnknownMerchant = "Unknown Merchant"

// DefaultFuzzyCutoff is the minimum similarity score (0-100) a fuzzy match
// must reach to be accepted.
const DefaultFuzzyCutoff = 75.0

var (
	// Structured account references: one letter from {C, M} followed by
	// 8-10 digits. These denote ledger accounts, not business names, and
	// must never be cleaned, cased or fuzzy-matched.
	accountIDRe = regexp.MustCompile(`^[CM]\d{8,10}$`)

	// Processor-appended reference codes, e.g. "UBER *TRIP" or "STORE #4512".
	refCodeRe    = regexp.MustCompile(`\*[A-Za-z0-9.]+|#\d+`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// MerchantMapping maps a lowercase name fragment to a canonical display
// name. Mappings are evaluated in order; the first matching fragment wins.
type MerchantMapping struct {
	Fragment  string
	Canonical string
}

// MerchantResolver maps free-form merchant text to a canonical identity.
// It holds only immutable tables, so resolution is deterministic and safe
// to share across goroutines.
type MerchantResolver struct {
	mappings    []MerchantMapping
	fuzzyCutoff float64
}

// NewMerchantResolver creates a resolver over the default curated table.
func NewMerchantResolver() *MerchantResolver {
	return NewMerchantResolverWithTable(DefaultMerchantMappings(), DefaultFuzzyCutoff)
}

// NewMerchantResolverWithTable creates a resolver over a custom ordered
// table and fuzzy acceptance cutoff.
func NewMerchantResolverWithTable(mappings []MerchantMapping, fuzzyCutoff float64) *MerchantResolver {
	return &MerchantResolver{mappings: mappings, fuzzyCutoff: fuzzyCutoff}
}

// Resolve returns the canonical identity for raw merchant text. Resolution
// always succeeds: empty input becomes UnknownMerchant, account IDs pass
// through verbatim, known merchants map to their display name (exact
// fragment match first, then fuzzy), and everything else falls back to a
// title-cased cleanup of the input.
func (r *MerchantResolver) Resolve(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return UnknownMerchant
	}

	if accountIDRe.MatchString(trimmed) {
		return trimmed
	}

	cleaned := r.clean(trimmed)
	if cleaned == "" {
		return UnknownMerchant
	}

	for _, m := range r.mappings {
		if strings.Contains(cleaned, m.Fragment) {
			return m.Canonical
		}
	}

	if canonical, ok := r.fuzzyMatch(cleaned); ok {
		return canonical
	}

	return titleCase(cleaned)
}

func (r *MerchantResolver) clean(s string) string {
	s = strings.ToLower(s)
	s = refCodeRe.ReplaceAllString(s, "")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// fuzzyMatch scores the cleaned text against every fragment with a
// token-order-insensitive similarity and accepts the best score when it
// reaches the cutoff. Ties keep the earlier table entry.
func (r *MerchantResolver) fuzzyMatch(cleaned string) (string, bool) {
	best := ""
	bestScore := 0.0

	for _, m := range r.mappings {
		score := tokenSortRatio(cleaned, m.Fragment)
		if score > bestScore {
			bestScore = score
			best = m.Canonical
		}
	}

	if bestScore >= r.fuzzyCutoff {
		return best, true
	}
	return "", false
}

// tokenSortRatio compares two strings after sorting their whitespace
// tokens, returning a similarity score in [0, 100].
func tokenSortRatio(a, b string) float64 {
	return levenshtein.Similarity(sortTokens(a), sortTokens(b), nil) * 100
}

func sortTokens(s string) string {
	tokens := strings.Fields(strings.ToLower(s))
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
