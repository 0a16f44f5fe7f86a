package dataprocessing

import (
	"strings"
)

// OtherBrand is the label returned when no heuristic produces a usable
// brand for an account name.
const OtherBrand = "Other"

// knownBrandTokens is the ordered token list scanned case-insensitively
// against account names; the first match wins. Generic corporate suffixes
// sit at the end so a concrete brand earlier in the name takes priority.
// The list is data, not code, so classification stays independently
// testable and easy to extend.
var knownBrandTokens = []string{
	"Acme",
	"Globex",
	"Initech",
	"Umbrella",
	"Stark",
	"Wayne",
	"Pinnacle",
	"Summit",
	"Vertex",
	"Apex",
	"Horizon",
	"Cascade",
	"Meridian",
	"Sterling",
	// Generic corporate suffixes: matched last, and when preceded by text
	// the preceding text is taken as the brand instead.
	"Industries",
	"Holdings",
	"Enterprises",
	"Solutions",
	"Partners",
	"Group",
	"Corp",
	"Inc",
	"LLC",
	"Ltd",
	"Co",
}

// genericSuffixes is the subset of knownBrandTokens that names a corporate
// form rather than a brand.
var genericSuffixes = map[string]bool{
	"industries":  true,
	"holdings":    true,
	"enterprises": true,
	"solutions":   true,
	"partners":    true,
	"group":       true,
	"corp":        true,
	"inc":         true,
	"llc":         true,
	"ltd":         true,
	"co":          true,
}

// commonArticles are first words too generic to serve as a fallback brand.
var commonArticles = map[string]bool{
	"the": true,
	"a":   true,
	"an":  true,
	"of":  true,
	"and": true,
}

// ExtractBrand maps an account display name to a single brand label.
//
// It scans knownBrandTokens case-insensitively in order. On the first
// match: if the token is a generic corporate suffix and non-empty text
// precedes it, the preceding text (trimmed, trailing comma stripped) is the
// brand; otherwise the token itself is returned verbatim. With no token
// match, the first whitespace/comma-delimited word is used when it is
// longer than two characters and not a common article; otherwise the
// result is OtherBrand.
//
// This is a heuristic, not a guarantee: ambiguous names are expected to
// sometimes misclassify.
func ExtractBrand(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return OtherBrand
	}
	lower := strings.ToLower(trimmed)

	for _, token := range knownBrandTokens {
		idx := indexOfWord(lower, strings.ToLower(token))
		if idx < 0 {
			continue
		}
		if genericSuffixes[strings.ToLower(token)] {
			prefix := strings.TrimSpace(trimmed[:idx])
			prefix = strings.TrimSuffix(prefix, ",")
			prefix = strings.TrimSpace(prefix)
			if prefix != "" {
				return prefix
			}
		}
		return token
	}

	first := firstWord(trimmed)
	if len(first) > 2 && !commonArticles[strings.ToLower(first)] {
		return first
	}
	return OtherBrand
}

// indexOfWord finds token in s as a whole word (bounded by non-letters), so
// "Co" does not match inside "Columbus". Both arguments must already be
// lowercased.
func indexOfWord(s, token string) int {
	for from := 0; from < len(s); {
		idx := strings.Index(s[from:], token)
		if idx < 0 {
			return -1
		}
		idx += from
		end := idx + len(token)
		startOK := idx == 0 || !isLetter(s[idx-1])
		endOK := end == len(s) || !isLetter(s[end])
		if startOK && endOK {
			return idx
		}
		from = idx + 1
	}
	return -1
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// firstWord returns the first whitespace/comma-delimited word of s.
func firstWord(s string) string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '\t' || r == ','
	})
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
