// Package normalize turns raw transaction fields into canonical values.
// Resolvers consult only immutable lookup tables, so a single instance is
// safe to share across worker goroutines.
package normalize

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/mahiyapatil/smart-financial-parser/internal/common"
)

// Sanity window for parsed years. Anything outside is treated as a misparse
// (two-digit year confusion, corrupted token) and rejected.
const (
	minSaneYear = 2000
	maxSaneYear = 2030
)

var ordinalSuffixRe = regexp.MustCompile(`(?i)(\d{1,2})(st|nd|rd|th)\b`)

// DateResolver parses free-form date strings into canonical timestamps.
type DateResolver struct {
	minYear int
	maxYear int
}

// NewDateResolver creates a resolver with the default sanity window.
func NewDateResolver() *DateResolver {
	return &DateResolver{minYear: minSaneYear, maxYear: maxSaneYear}
}

// Resolve parses raw into a timestamp. It never panics; failures come back
// as common.ErrEmptyValue, common.ErrUnparseableDate or
// common.ErrYearOutOfRange and the record is simply unresolved.
func (r *DateResolver) Resolve(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, common.ErrEmptyValue
	}

	// "Jan 17th, 2023" -> "Jan 17, 2023"
	cleaned := ordinalSuffixRe.ReplaceAllString(trimmed, "$1")

	t, err := r.parse(cleaned)
	if err != nil {
		slog.Debug("date parse failed", "value", raw, "error", err)
		return time.Time{}, fmt.Errorf("%w: %q", common.ErrUnparseableDate, raw)
	}

	if t.Year() < r.minYear || t.Year() > r.maxYear {
		return time.Time{}, fmt.Errorf("%w: %d", common.ErrYearOutOfRange, t.Year())
	}

	return t, nil
}

// parse tries the whole token first, then windows of adjacent fields so a
// date embedded in surrounding noise still resolves.
func (r *DateResolver) parse(s string) (time.Time, error) {
	t, err := dateparse.ParseAny(s)
	if err == nil {
		return t, nil
	}

	fields := strings.Fields(s)
	if len(fields) <= 1 {
		return time.Time{}, err
	}

	for width := 3; width >= 1; width-- {
		for start := 0; start+width <= len(fields); start++ {
			candidate := strings.Join(fields[start:start+width], " ")
			candidate = strings.Trim(candidate, ".,;:")
			if candidate == "" {
				continue
			}
			if t, werr := dateparse.ParseAny(candidate); werr == nil {
				return t, nil
			}
		}
	}

	return time.Time{}, err
}
