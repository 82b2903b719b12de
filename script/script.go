// Package script defines the conversation script model: ranked keywords
// with decomposition and reassembly rules, link-word redirection, synonym
// groups, pre/post substitution tables and the reserved memory mechanism.
// A Script is immutable after loading and safe to share between sessions.
package script

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// TokenKind discriminates the pattern token variants.
type TokenKind int

const (
	Literal TokenKind = iota
	Synonym
	Wildcard
)

// PatToken is one element of a decomposition pattern: a literal word, a
// synonym group reference or a wildcard segment.
type PatToken struct {
	Kind  TokenKind
	Word  string // literal word, lowercased
	Group string // synonym group key

	members map[string]struct{}
}

// Matches reports whether a literal or synonym token accepts word.
// Wildcard tokens never match a single word; they are handled by the
// alignment routine.
func (t PatToken) Matches(word string) bool {
	switch t.Kind {
	case Literal:
		return t.Word == word
	case Synonym:
		_, ok := t.members[word]
		return ok
	}
	return false
}

// Rule pairs a decomposition pattern with its reassembly templates.
// Templates reference captured wildcard segments as {0}, {1}, ... in
// pattern order.
type Rule struct {
	Pattern   []PatToken
	Templates []string
}

// Wildcards returns the number of fragments the pattern captures.
func (r *Rule) Wildcards() int {
	n := 0
	for _, t := range r.Pattern {
		if t.Kind == Wildcard {
			n++
		}
	}
	return n
}

// Keyword is a trigger word with a priority rank and an ordered rule set.
type Keyword struct {
	Word  string
	Rank  int
	Rules []*Rule
}

// Memory describes the reserved memory pseudo-keyword: when Trigger occurs
// in a turn, Rules build a sentence for the session's memory queue; Recall
// templates wrap a remembered sentence ({0}) when it is played back.
type Memory struct {
	Trigger  string
	Capacity int
	Rules    []*Rule
	Recall   []string
}

// Subst is a single whole-word substitution. To may expand one word into
// several, e.g. "i'm" into "i am".
type Subst struct {
	From string
	To   []string
}

// Script is a fully validated conversation script.
type Script struct {
	Name     string
	Greeting string
	Farewell string
	Quit     []string
	Pre      []Subst
	Post     []Subst
	Synonyms map[string][]string
	Links    map[string]string
	Keywords []*Keyword
	Memory   Memory
	Defaults []string

	byWord map[string]*Keyword
}

// Keyword looks up a keyword by its (lowercased) word.
func (s *Script) Keyword(word string) (*Keyword, bool) {
	kw, ok := s.byWord[word]
	return kw, ok
}

var (
	ErrNoKeywords = errors.New("script has no keywords")

	placeholderRe = regexp.MustCompile(`\{(\d+)\}`)
)

// ParsePattern compiles a pattern source string into tokens. The syntax is
// space-separated: "*" is a wildcard, "@group" references a synonym group,
// anything else is a literal word. The group key itself counts as a member
// of its group.
func ParsePattern(src string, synonyms map[string][]string) ([]PatToken, error) {
	fields := strings.Fields(strings.ToLower(src))
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty pattern %q", src)
	}
	pattern := make([]PatToken, 0, len(fields))
	for _, f := range fields {
		switch {
		case f == "*":
			pattern = append(pattern, PatToken{Kind: Wildcard})
		case strings.HasPrefix(f, "@"):
			key := f[1:]
			words, ok := synonyms[key]
			if !ok {
				return nil, fmt.Errorf("pattern %q references unknown synonym group @%s", src, key)
			}
			members := make(map[string]struct{}, len(words)+1)
			members[key] = struct{}{}
			for _, w := range words {
				members[strings.ToLower(w)] = struct{}{}
			}
			pattern = append(pattern, PatToken{Kind: Synonym, Group: key, members: members})
		default:
			pattern = append(pattern, PatToken{Kind: Literal, Word: f})
		}
	}
	return pattern, nil
}

// Validate checks the structural invariants the engine relies on. It is
// called by Parse; an invalid script is rejected before any turn runs.
func (s *Script) Validate() error {
	if len(s.Keywords) == 0 {
		return ErrNoKeywords
	}
	if s.Farewell == "" {
		return errors.New("script has no farewell")
	}
	if len(s.Defaults) == 0 {
		return errors.New("script has no default responses")
	}

	words := make([]string, 0, len(s.Keywords))
	byWord := make(map[string]*Keyword, len(s.Keywords))
	for _, kw := range s.Keywords {
		word := strings.ToLower(kw.Word)
		if word == "" {
			return errors.New("keyword with empty word")
		}
		if kw.Rank < 0 {
			return fmt.Errorf("keyword %q has negative rank %d", kw.Word, kw.Rank)
		}
		if _, dup := byWord[word]; dup {
			return fmt.Errorf("duplicate keyword %q", word)
		}
		if err := validateRules(word, kw.Rules); err != nil {
			return err
		}
		byWord[word] = kw
		words = append(words, word)
	}
	s.byWord = byWord

	for alias, target := range s.Links {
		alias, target = strings.ToLower(alias), strings.ToLower(target)
		if _, ok := byWord[alias]; ok {
			return fmt.Errorf("link source %q is itself a keyword", alias)
		}
		if _, chained := s.Links[target]; chained {
			return fmt.Errorf("link %q -> %q targets another link; chained redirection is not allowed", alias, target)
		}
		if _, ok := byWord[target]; !ok {
			return fmt.Errorf("link %q targets unknown keyword %q%s", alias, target, didYouMean(target, words))
		}
	}

	if s.Memory.Trigger != "" {
		if len(s.Memory.Rules) == 0 {
			return fmt.Errorf("memory trigger %q has no rules", s.Memory.Trigger)
		}
		if err := validateRules("memory", s.Memory.Rules); err != nil {
			return err
		}
		if len(s.Memory.Recall) == 0 {
			return errors.New("memory has no recall templates")
		}
		for _, tmpl := range s.Memory.Recall {
			if err := checkPlaceholders(tmpl, 1); err != nil {
				return fmt.Errorf("memory recall template: %w", err)
			}
		}
		if s.Memory.Capacity <= 0 {
			return fmt.Errorf("memory capacity must be positive, got %d", s.Memory.Capacity)
		}
	}
	return nil
}

func validateRules(owner string, rules []*Rule) error {
	if len(rules) == 0 {
		return fmt.Errorf("keyword %q has no decomposition rules", owner)
	}
	for i, rule := range rules {
		if len(rule.Pattern) == 0 {
			return fmt.Errorf("keyword %q rule %d has an empty pattern", owner, i)
		}
		if len(rule.Templates) == 0 {
			return fmt.Errorf("keyword %q rule %d has no reassembly templates", owner, i)
		}
		wildcards := rule.Wildcards()
		for _, tmpl := range rule.Templates {
			if err := checkPlaceholders(tmpl, wildcards); err != nil {
				return fmt.Errorf("keyword %q rule %d: %w", owner, i, err)
			}
		}
	}
	return nil
}

func checkPlaceholders(tmpl string, wildcards int) error {
	for _, m := range placeholderRe.FindAllStringSubmatch(tmpl, -1) {
		idx, err := strconv.Atoi(m[1])
		if err != nil {
			return fmt.Errorf("template %q: bad placeholder %q", tmpl, m[0])
		}
		if idx >= wildcards {
			return fmt.Errorf("template %q references fragment %d, but the pattern only captures %d", tmpl, idx, wildcards)
		}
	}
	return nil
}

// didYouMean suggests the closest keyword for a mistyped link target.
func didYouMean(target string, words []string) string {
	matches := fuzzy.RankFindNormalizedFold(target, words)
	if len(matches) == 0 {
		return ""
	}
	sort.Sort(matches)
	return fmt.Sprintf(" (did you mean %q?)", matches[0].Target)
}
