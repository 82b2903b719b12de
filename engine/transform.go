package engine

import (
	"strings"

	"github.com/lorelime/eliza/script"
)

const strippedPunct = `.,!?;:"'()`

// normalize lowercases the raw input, trims sentence punctuation from each
// token and applies the pre table, so "I'm sad!" becomes [i am sad].
func normalize(input string, pre []script.Subst) []string {
	fields := strings.Fields(strings.ToLower(input))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, strippedPunct)
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return applyTable(tokens, pre)
}

// applyTable performs whole-word substitution over a token sequence. For
// each token the first matching table entry wins; a replacement may expand
// into several words. The input slice is left untouched.
func applyTable(tokens []string, table []script.Subst) []string {
	if len(table) == 0 {
		return tokens
	}
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if rep, ok := lookupSubst(table, tok); ok {
			out = append(out, rep...)
		} else {
			out = append(out, tok)
		}
	}
	return out
}

func lookupSubst(table []script.Subst, tok string) ([]string, bool) {
	for _, s := range table {
		if s.From == tok {
			return s.To, true
		}
	}
	return nil, false
}

// reflect applies the post table to a captured fragment so first and second
// person read correctly once the fragment is embedded in a template:
// "i am happy" becomes "you are happy".
func (s *Session) reflect(frag string) string {
	if frag == "" {
		return ""
	}
	return strings.Join(applyTable(strings.Fields(frag), s.script.Post), " ")
}
