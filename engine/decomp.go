package engine

import (
	"strings"

	"github.com/lorelime/eliza/script"
)

// matchKeyword tries each of the keyword's decomposition rules in declared
// order and returns the first that admits an alignment, with its captured
// fragments.
func matchKeyword(tokens []string, kw *script.Keyword) (*script.Rule, []string, bool) {
	for _, rule := range kw.Rules {
		if frags, ok := matchPattern(tokens, rule.Pattern); ok {
			return rule, frags, true
		}
	}
	return nil, nil, false
}

// matchPattern aligns the full token sequence against a pattern. Wildcards
// expand shortest-first, left to right, so the leftmost viable alignment
// always wins and matching stays deterministic. Captured wildcard segments
// are returned space-joined, in pattern order; a wildcard may capture the
// empty string.
func matchPattern(tokens []string, pattern []script.PatToken) ([]string, bool) {
	frags := make([]string, 0, 2)
	if !matchFrom(tokens, pattern, &frags) {
		return nil, false
	}
	return frags, true
}

func matchFrom(tokens []string, pattern []script.PatToken, frags *[]string) bool {
	if len(pattern) == 0 {
		return len(tokens) == 0
	}

	head := pattern[0]
	if head.Kind == script.Wildcard {
		for n := 0; n <= len(tokens); n++ {
			*frags = append(*frags, strings.Join(tokens[:n], " "))
			if matchFrom(tokens[n:], pattern[1:], frags) {
				return true
			}
			*frags = (*frags)[:len(*frags)-1]
		}
		return false
	}

	if len(tokens) == 0 || !head.Matches(tokens[0]) {
		return false
	}
	return matchFrom(tokens[1:], pattern[1:], frags)
}
