package engine

import (
	"slices"
	"strings"
)

// memoryQueue is a bounded FIFO of remembered sentences, oldest first.
type memoryQueue struct {
	entries  []string
	capacity int
}

func newMemoryQueue(capacity int) *memoryQueue {
	return &memoryQueue{capacity: capacity}
}

func (q *memoryQueue) push(sentence string) {
	sentence = strings.TrimSpace(sentence)
	if sentence == "" {
		return
	}
	q.entries = append(q.entries, sentence)
	if len(q.entries) > q.capacity {
		q.entries = q.entries[len(q.entries)-q.capacity:]
	}
}

// recall pops the oldest remembered sentence; remembered content is
// consumed on use.
func (q *memoryQueue) recall() (string, bool) {
	if len(q.entries) == 0 {
		return "", false
	}
	sentence := q.entries[0]
	q.entries = q.entries[1:]
	return sentence, true
}

func (q *memoryQueue) len() int {
	return len(q.entries)
}

// maybeRecord stores a reflected sentence for later recall when the turn
// mentions the memory trigger word. It runs after response selection, so a
// recall can never return the sentence recorded on the same turn.
func (s *Session) maybeRecord(tokens []string) {
	trigger := s.script.Memory.Trigger
	if trigger == "" || !slices.Contains(tokens, trigger) {
		return
	}
	for _, rule := range s.script.Memory.Rules {
		frags, ok := matchPattern(tokens, rule.Pattern)
		if !ok {
			continue
		}
		s.memory.push(s.assemble(rule, frags))
		return
	}
}

// fillRecall wraps a remembered sentence in the next recall template.
func (s *Session) fillRecall(sentence string) string {
	tmpl := s.script.Memory.Recall[s.recallCursor]
	s.recallCursor = (s.recallCursor + 1) % len(s.script.Memory.Recall)
	return strings.ReplaceAll(tmpl, "{0}", sentence)
}
