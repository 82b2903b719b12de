package script

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

//go:embed doctor.json
var doctorJSON []byte

const defaultMemoryCapacity = 4

type ruleJSON struct {
	Pattern   string   `json:"pattern"`
	Templates []string `json:"templates"`
}

type keywordJSON struct {
	Word  string     `json:"word"`
	Rank  int        `json:"rank"`
	Rules []ruleJSON `json:"rules"`
}

type memoryJSON struct {
	Trigger  string     `json:"trigger"`
	Capacity int        `json:"capacity"`
	Rules    []ruleJSON `json:"rules"`
	Recall   []string   `json:"recall"`
}

type scriptJSON struct {
	Name     string              `json:"name"`
	Greeting string              `json:"greeting"`
	Farewell string              `json:"farewell"`
	Quit     []string            `json:"quit"`
	Pre      [][]string          `json:"pre"`
	Post     [][]string          `json:"post"`
	Synonyms map[string][]string `json:"synonyms"`
	Links    map[string]string   `json:"links"`
	Keywords []keywordJSON       `json:"keywords"`
	Memory   *memoryJSON         `json:"memory"`
	Defaults []string            `json:"defaults"`
}

// Load reads and validates a script file.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid script %s: %w", path, err)
	}
	slog.Debug("loaded script",
		slog.String("path", path),
		slog.String("name", s.Name),
		slog.Int("keywords", len(s.Keywords)),
	)
	return s, nil
}

// Default returns the built-in doctor script.
func Default() (*Script, error) {
	return Parse(doctorJSON)
}

// Parse decodes a JSON script, compiles its patterns and validates it.
func Parse(data []byte) (*Script, error) {
	var raw scriptJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode script: %w", err)
	}

	s := &Script{
		Name:     raw.Name,
		Greeting: raw.Greeting,
		Farewell: raw.Farewell,
		Quit:     lowerAll(raw.Quit),
		Synonyms: lowerGroups(raw.Synonyms),
		Links:    lowerLinks(raw.Links),
		Defaults: raw.Defaults,
	}

	var err error
	if s.Pre, err = parseTable(raw.Pre); err != nil {
		return nil, fmt.Errorf("pre table: %w", err)
	}
	if s.Post, err = parseTable(raw.Post); err != nil {
		return nil, fmt.Errorf("post table: %w", err)
	}

	for _, kw := range raw.Keywords {
		rules, err := parseRules(kw.Rules, s.Synonyms)
		if err != nil {
			return nil, fmt.Errorf("keyword %q: %w", kw.Word, err)
		}
		s.Keywords = append(s.Keywords, &Keyword{
			Word:  strings.ToLower(kw.Word),
			Rank:  kw.Rank,
			Rules: rules,
		})
	}

	if raw.Memory != nil {
		rules, err := parseRules(raw.Memory.Rules, s.Synonyms)
		if err != nil {
			return nil, fmt.Errorf("memory rules: %w", err)
		}
		capacity := raw.Memory.Capacity
		if capacity == 0 {
			capacity = defaultMemoryCapacity
		}
		s.Memory = Memory{
			Trigger:  strings.ToLower(raw.Memory.Trigger),
			Capacity: capacity,
			Rules:    rules,
			Recall:   raw.Memory.Recall,
		}
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func parseRules(raw []ruleJSON, synonyms map[string][]string) ([]*Rule, error) {
	rules := make([]*Rule, 0, len(raw))
	for _, r := range raw {
		pattern, err := ParsePattern(r.Pattern, synonyms)
		if err != nil {
			return nil, err
		}
		rules = append(rules, &Rule{Pattern: pattern, Templates: r.Templates})
	}
	return rules, nil
}

func parseTable(raw [][]string) ([]Subst, error) {
	table := make([]Subst, 0, len(raw))
	for _, pair := range raw {
		if len(pair) != 2 || pair[0] == "" || pair[1] == "" {
			return nil, fmt.Errorf("entry %v is not a [from, to] pair", pair)
		}
		table = append(table, Subst{
			From: strings.ToLower(pair[0]),
			To:   strings.Fields(strings.ToLower(pair[1])),
		})
	}
	return table, nil
}

func lowerAll(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = strings.ToLower(w)
	}
	return out
}

func lowerGroups(groups map[string][]string) map[string][]string {
	out := make(map[string][]string, len(groups))
	for key, words := range groups {
		out[strings.ToLower(key)] = lowerAll(words)
	}
	return out
}

func lowerLinks(links map[string]string) map[string]string {
	out := make(map[string]string, len(links))
	for alias, target := range links {
		out[strings.ToLower(alias)] = strings.ToLower(target)
	}
	return out
}
