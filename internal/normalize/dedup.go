package normalize

import (
	"regexp"
	"slices"
	"strings"

	domain "github.com/donaldgifford/deal-aggregator/pkg/types"
)

const (
	fingerprintTokens   = 5
	fingerprintMinToken = 3
)

var (
	// 13in, 13-inch, 13 inches, 13" and 13.3" all fold to a single token.
	inchUnit       = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*-?\s*(?:inches|inch|in\b|"|”|″)`)
	nonAlphanumRun = regexp.MustCompile(`[^\p{L}\p{N}]+`)
)

// Fingerprint derives the duplicate-detection key for a title: the first
// five tokens longer than two characters, sorted and space-joined.
func Fingerprint(title string) string {
	s := strings.ToLower(title)
	s = inchUnit.ReplaceAllStringFunc(s, func(m string) string {
		num := inchUnit.FindStringSubmatch(m)[1]
		return strings.ReplaceAll(num, ".", "") + "in"
	})
	s = nonAlphanumRun.ReplaceAllString(s, " ")

	tokens := make([]string, 0, fingerprintTokens)
	for _, tok := range strings.Fields(s) {
		if len([]rune(tok)) < fingerprintMinToken {
			continue
		}
		tokens = append(tokens, tok)
		if len(tokens) == fingerprintTokens {
			break
		}
	}

	slices.Sort(tokens)
	return strings.Join(tokens, " ")
}

// DeduplicateDeals keeps one deal per fingerprint. A later deal replaces an
// earlier one only when strictly cheaper, and takes the earlier one's
// position. Running it twice gives the same result as running it once.
// Titles with no usable tokens have an empty fingerprint and are never
// merged.
func DeduplicateDeals(deals []domain.NormalizedDeal) []domain.NormalizedDeal {
	out := make([]domain.NormalizedDeal, 0, len(deals))
	index := make(map[string]int, len(deals))

	for i := range deals {
		fp := Fingerprint(deals[i].Title)
		if fp == "" {
			out = append(out, deals[i])
			continue
		}
		if pos, seen := index[fp]; seen {
			if deals[i].CurrentPrice < out[pos].CurrentPrice {
				out[pos] = deals[i]
			}
			continue
		}
		index[fp] = len(out)
		out = append(out, deals[i])
	}

	return out
}
