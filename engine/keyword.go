package engine

import (
	"sort"

	"github.com/lorelime/eliza/script"
)

type candidate struct {
	kw  *script.Keyword
	pos int
}

// candidates returns the keywords triggered by the input tokens, highest
// rank first, ties broken by earliest occurrence in the input. Link words
// resolve to their canonical keyword in a single hop; a word that is itself
// a keyword resolves to itself.
func (s *Session) candidates(tokens []string) []*script.Keyword {
	var cands []candidate
	seen := make(map[*script.Keyword]struct{})
	for i, tok := range tokens {
		word := tok
		if target, ok := s.script.Links[tok]; ok {
			word = target
		}
		kw, ok := s.script.Keyword(word)
		if !ok {
			continue
		}
		if _, dup := seen[kw]; dup {
			continue
		}
		seen[kw] = struct{}{}
		cands = append(cands, candidate{kw: kw, pos: i})
	}

	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].kw.Rank != cands[j].kw.Rank {
			return cands[i].kw.Rank > cands[j].kw.Rank
		}
		return cands[i].pos < cands[j].pos
	})

	out := make([]*script.Keyword, len(cands))
	for i, c := range cands {
		out[i] = c.kw
	}
	return out
}
