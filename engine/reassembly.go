package engine

import (
	"fmt"
	"strings"

	"github.com/lorelime/eliza/script"
)

// nextTemplate returns the rule's current reassembly template and advances
// the per-session round-robin cursor, so no template repeats until every
// other template of the rule has been used once. The first use of a rule
// starts at template 0, or at a random offset when the session carries an
// RNG.
func (s *Session) nextTemplate(rule *script.Rule) string {
	cur, ok := s.cursors[rule]
	if !ok && s.rand != nil {
		cur = s.rand.Intn(len(rule.Templates))
	}
	tmpl := rule.Templates[cur]
	s.cursors[rule] = (cur + 1) % len(rule.Templates)
	return tmpl
}

// assemble fills the rule's next template with the post-transformed
// fragments. Only fragment text is reflected; the template's fixed text is
// never touched, so phrases like "tell me" survive.
func (s *Session) assemble(rule *script.Rule, frags []string) string {
	out := s.nextTemplate(rule)
	for i, frag := range frags {
		out = strings.ReplaceAll(out, fmt.Sprintf("{%d}", i), s.reflect(frag))
	}
	return out
}

// nextDefault cycles through the script's content-free acknowledgments
// with the same round-robin discipline as reassembly templates.
func (s *Session) nextDefault() string {
	d := s.script.Defaults[s.defaultCursor]
	s.defaultCursor = (s.defaultCursor + 1) % len(s.script.Defaults)
	return d
}
