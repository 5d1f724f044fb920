// Package canon maps raw term labels from statistical output to
// identifier-safe names and display labels. All functions are pure.
package canon

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/simone-mordue/papaja/domain/core"
)

const (
	interceptRaw   = "(Intercept)"
	interceptName  = "intercept"
	interceptLabel = "Intercept"

	// Interaction separators: identifier-safe token and typographic symbol.
	idJoin    = "_x_"
	labelJoin = " × " // multiplication sign

	scaleWrapper = "scale("
)

// Canonicalize turns an ordered sequence of raw term labels into
// identifier-safe names and display labels of the same length and order.
//
// Identifier names are lowercase, underscore-joined tokens; the intercept
// sentinel maps to "intercept" and interaction colons map to "_x_". When
// standardized is set, a scale(...) wrapper is stripped from identifiers and
// marked as z(...) in labels. Duplicate names are disambiguated with a
// positional suffix, preserving first-seen order.
func Canonicalize(rawTerms []string, standardized bool) (names, labels []string, err error) {
	if len(rawTerms) == 0 {
		return nil, nil, core.NewInvalidTermError("term list is empty")
	}

	names = make([]string, 0, len(rawTerms))
	labels = make([]string, 0, len(rawTerms))
	occurrences := make(map[string]int, len(rawTerms))
	taken := make(map[string]bool, len(rawTerms))

	for i, raw := range rawTerms {
		if strings.TrimSpace(raw) == "" {
			return nil, nil, core.NewInvalidTermError(fmt.Sprintf("term at position %d is blank", i))
		}

		name, label := canonicalizeOne(raw, standardized)

		occurrences[name]++
		if n := occurrences[name]; n > 1 || taken[name] {
			for {
				candidate := fmt.Sprintf("%s_%d", name, n)
				if !taken[candidate] {
					name = candidate
					break
				}
				n++
			}
		}
		taken[name] = true

		names = append(names, name)
		labels = append(labels, label)
	}

	return names, labels, nil
}

// canonicalizeOne maps a single raw term, splitting interactions on ":".
func canonicalizeOne(raw string, standardized bool) (name, label string) {
	parts := strings.Split(raw, ":")
	idParts := make([]string, 0, len(parts))
	labelParts := make([]string, 0, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == interceptRaw {
			idParts = append(idParts, interceptName)
			labelParts = append(labelParts, interceptLabel)
			continue
		}

		display := part
		if standardized {
			if inner, ok := stripScale(part); ok {
				part = inner
				display = "z(" + inner + ")"
			}
		}

		idParts = append(idParts, sanitize(part))
		labelParts = append(labelParts, display)
	}

	return strings.Join(idParts, idJoin), strings.Join(labelParts, labelJoin)
}

// stripScale removes a scale(...) transformation wrapper.
func stripScale(s string) (inner string, ok bool) {
	if !strings.HasPrefix(s, scaleWrapper) || !strings.HasSuffix(s, ")") {
		return s, false
	}
	inner = strings.TrimSpace(s[len(scaleWrapper) : len(s)-1])
	if inner == "" {
		return s, false
	}
	return inner, true
}

// sanitize lowercases s and collapses every non-alphanumeric run into a
// single underscore, yielding an identifier-safe token.
func sanitize(s string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLower(r) || unicode.IsDigit(r) {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}
	out := b.String()
	if out == "" {
		return "term"
	}
	if unicode.IsDigit(rune(out[0])) {
		out = "x" + out
	}
	return out
}
