package engine

import (
	"reflect"
	"strings"
	"testing"

	"github.com/lorelime/eliza/script"
)

var testSynonyms = map[string][]string{
	"belief": {"believe", "think"},
}

func mustPattern(t *testing.T, src string) []script.PatToken {
	t.Helper()
	pattern, err := script.ParsePattern(src, testSynonyms)
	if err != nil {
		t.Fatalf("ParsePattern(%q) unexpected error: %v", src, err)
	}
	return pattern
}

func TestMatchPattern(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		pattern   string
		tokens    string
		wantFrags []string
		wantOK    bool
	}{
		{
			name:      "wildcards around literals",
			pattern:   "* i am *",
			tokens:    "i am sad",
			wantFrags: []string{"", "sad"},
			wantOK:    true,
		},
		{
			name:      "both wildcards capture",
			pattern:   "* i am *",
			tokens:    "well i am very sad",
			wantFrags: []string{"well", "very sad"},
			wantOK:    true,
		},
		{
			name:      "leftmost anchor wins on repeats",
			pattern:   "* a *",
			tokens:    "x a y a z",
			wantFrags: []string{"x", "y a z"},
			wantOK:    true,
		},
		{
			name:      "single wildcard swallows everything",
			pattern:   "*",
			tokens:    "anything at all",
			wantFrags: []string{"anything at all"},
			wantOK:    true,
		},
		{
			name:      "single wildcard matches nothing at all",
			pattern:   "*",
			tokens:    "",
			wantFrags: []string{""},
			wantOK:    true,
		},
		{
			name:      "synonym group member",
			pattern:   "* i @belief *",
			tokens:    "i believe life is hard",
			wantFrags: []string{"", "life is hard"},
			wantOK:    true,
		},
		{
			name:      "synonym group key is a member",
			pattern:   "* i @belief *",
			tokens:    "i belief something",
			wantFrags: []string{"", "something"},
			wantOK:    true,
		},
		{
			name:    "literal pattern must consume the full input",
			pattern: "hello",
			tokens:  "hello there",
			wantOK:  false,
		},
		{
			name:      "literal-only exact match captures nothing",
			pattern:   "hello",
			tokens:    "hello",
			wantFrags: []string{},
			wantOK:    true,
		},
		{
			name:    "anchor absent",
			pattern: "* i am *",
			tokens:  "you are sad",
			wantOK:  false,
		},
		{
			name:    "anchors out of order",
			pattern: "* i am *",
			tokens:  "am i sad",
			wantOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			pattern := mustPattern(t, tt.pattern)
			tokens := strings.Fields(tt.tokens)

			frags, ok := matchPattern(tokens, pattern)
			if ok != tt.wantOK {
				t.Fatalf("matchPattern() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if !reflect.DeepEqual(frags, tt.wantFrags) {
				t.Errorf("matchPattern() frags = %q, want %q", frags, tt.wantFrags)
			}
		})
	}
}

func TestMatchKeywordRuleOrder(t *testing.T) {
	t.Parallel()

	kw := &script.Keyword{
		Word: "remember",
		Rules: []*script.Rule{
			{Pattern: mustPattern(t, "* do you remember *"), Templates: []string{"Did you think I would forget {1}?"}},
			{Pattern: mustPattern(t, "* i remember *"), Templates: []string{"Do you often think of {1}?"}},
			{Pattern: mustPattern(t, "*"), Templates: []string{"Why do you bring up remembering?"}},
		},
	}

	tests := []struct {
		name     string
		tokens   string
		wantRule int
	}{
		{"most specific rule first", "do you remember your promise", 0},
		{"second rule on miss", "i remember the sea", 1},
		{"catch-all last", "remembering is hard", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rule, _, ok := matchKeyword(strings.Fields(tt.tokens), kw)
			if !ok {
				t.Fatal("matchKeyword() found no rule")
			}
			if rule != kw.Rules[tt.wantRule] {
				t.Errorf("matchKeyword() selected rule %q, want rule index %d",
					rule.Templates[0], tt.wantRule)
			}
		})
	}
}
