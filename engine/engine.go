// Package engine generates conversational replies by matching normalized
// input against a script's ranked keywords, decomposing the matched text
// into fragments and reassembling them into cycled reply templates. Each
// Session owns all per-conversation state; the Script it reads is immutable
// and may be shared between any number of sessions.
package engine

import (
	"strings"

	"github.com/cloudflare/ahocorasick"
	"github.com/lorelime/eliza/script"
)

// RNG is the source of randomness for first-use reassembly offsets.
// *rand.Rand satisfies it.
type RNG interface {
	Intn(int) int
}

// Options configure a Session.
type Options struct {
	// Rand randomizes the first-use template offset of each rule. When nil
	// every rule starts at its first template, which keeps replies fully
	// deterministic.
	Rand RNG
	// MemoryCapacity overrides the script's memory queue capacity when
	// positive.
	MemoryCapacity int
}

// Session holds the mutable state of one conversation: reassembly cursors,
// the memory queue and the terminated flag. It must not be shared between
// conversations.
type Session struct {
	script *script.Script
	rand   RNG

	cursors       map[*script.Rule]int
	defaultCursor int
	recallCursor  int

	memory      *memoryQueue
	quitMatcher *ahocorasick.Matcher
	done        bool
}

// NewSession creates a session for a validated script.
func NewSession(s *script.Script, opts Options) *Session {
	capacity := s.Memory.Capacity
	if opts.MemoryCapacity > 0 {
		capacity = opts.MemoryCapacity
	}
	if capacity <= 0 {
		capacity = 4
	}

	// Patterns are space-padded so the matcher only hits whole tokens:
	// "bye" must not fire inside "goodbye".
	patterns := make([]string, 0, len(s.Quit))
	for _, q := range s.Quit {
		patterns = append(patterns, " "+q+" ")
	}

	return &Session{
		script:      s,
		rand:        opts.Rand,
		cursors:     make(map[*script.Rule]int),
		memory:      newMemoryQueue(capacity),
		quitMatcher: ahocorasick.NewStringMatcher(patterns),
	}
}

// Done reports whether a quit word has terminated the session.
func (s *Session) Done() bool {
	return s.done
}

// Respond processes one user turn and returns the reply together with a
// flag signalling the end of the conversation. After a quit turn the
// session stays terminated and keeps returning the farewell.
func (s *Session) Respond(input string) (string, bool) {
	if s.done {
		return s.script.Farewell, true
	}

	tokens := normalize(input, s.script.Pre)
	if s.isQuit(tokens) {
		s.done = true
		return s.script.Farewell, true
	}

	reply := s.respond(tokens)
	s.maybeRecord(tokens)
	return finish(reply), false
}

// respond walks the fallback chain: keyword candidates in rank order, then
// memory recall, then a cycled default acknowledgment.
func (s *Session) respond(tokens []string) string {
	for _, kw := range s.candidates(tokens) {
		rule, frags, ok := matchKeyword(tokens, kw)
		if !ok {
			continue
		}
		return s.assemble(rule, frags)
	}
	if sentence, ok := s.memory.recall(); ok {
		return s.fillRecall(sentence)
	}
	return s.nextDefault()
}

func (s *Session) isQuit(tokens []string) bool {
	if len(tokens) == 0 {
		return false
	}
	padded := " " + strings.Join(tokens, " ") + " "
	return s.quitMatcher.Contains([]byte(padded))
}

// finish tidies the assembled reply: collapse whitespace left by empty
// fragments and capitalize the first letter.
func finish(reply string) string {
	reply = strings.Join(strings.Fields(reply), " ")
	for _, p := range []string{".", ",", "?", "!"} {
		reply = strings.ReplaceAll(reply, " "+p, p)
	}
	if reply == "" {
		return reply
	}
	return strings.ToUpper(reply[:1]) + reply[1:]
}
