package compatibility

import (
	"strings"
)

// AnswerSimilarity compares two decoded JSON answer values on a [0,1] scale.
// The encoding is explicit and reproducible: numbers compare by normalized
// distance, booleans by equality, and free text by token overlap. Mismatched
// types score zero.
func AnswerSimilarity(a, b interface{}) float64 {
	switch av := a.(type) {
	case float64:
		bv, ok := toFloat(b)
		if !ok {
			return 0
		}
		return numericSimilarity(av, bv)
	case bool:
		bv, ok := b.(bool)
		if !ok {
			return 0
		}
		if av == bv {
			return 1
		}
		return 0
	case string:
		bv, ok := b.(string)
		if !ok {
			return 0
		}
		if strings.EqualFold(strings.TrimSpace(av), strings.TrimSpace(bv)) {
			return 1
		}
		return TokenOverlap(av, bv)
	default:
		return 0
	}
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

// numericSimilarity maps the absolute difference onto [0,1], scaling by the
// larger magnitude so rating-style answers on any range compare sensibly.
func numericSimilarity(a, b float64) float64 {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	scale := a
	if scale < 0 {
		scale = -scale
	}
	if abs := absOf(b); abs > scale {
		scale = abs
	}
	if scale < 1 {
		scale = 1
	}
	sim := 1 - diff/scale
	if sim < 0 {
		return 0
	}
	return sim
}

func absOf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// TokenOverlap computes the Jaccard coefficient over lowercased whitespace
// tokens. Two empty texts count as identical.
func TokenOverlap(a, b string) float64 {
	tokensA := tokenSet(a)
	tokensB := tokenSet(b)

	if len(tokensA) == 0 && len(tokensB) == 0 {
		return 1
	}
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0
	}

	intersection := 0
	for token := range tokensA {
		if _, ok := tokensB[token]; ok {
			intersection++
		}
	}
	union := len(tokensA) + len(tokensB) - intersection
	return float64(intersection) / float64(union)
}

func tokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, token := range strings.Fields(strings.ToLower(text)) {
		set[token] = struct{}{}
	}
	return set
}
