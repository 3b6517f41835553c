// Package engine wraps the two pattern-matching engines under measurement
// behind a common capability interface. The harness never inspects match
// content, only presence or count, which keeps the probes interchangeable.
package engine

import (
	"fmt"
	"regexp"

	"github.com/dlclark/regexp2"
)

// Op selects which primitive operation a probe performs.
type Op int

const (
	// OpSearch looks for the pattern anywhere in the text.
	OpSearch Op = iota
	// OpMatchAt tests the pattern anchored at the start of the text.
	OpMatchAt
	// OpFindAll counts all non-overlapping matches in the text.
	OpFindAll
)

// Matcher is a compiled pattern. Only presence (Search, MatchAt) and count
// (FindAll) are observable.
type Matcher interface {
	Search(text string) bool
	MatchAt(text string) bool
	FindAll(text string) int
}

// Engine compiles patterns into matchers.
type Engine interface {
	Name() string
	Compile(pattern string) (Matcher, error)
}

// ByName looks up a registered engine identifier.
func ByName(name string) (Engine, error) {
	switch name {
	case "go-regexp":
		return GoEngine{}, nil
	case "regexp2":
		return Regexp2Engine{}, nil
	}
	return nil, fmt.Errorf("unknown engine: %s (expected: go-regexp | regexp2)", name)
}

// Names lists the registered engine identifiers.
func Names() []string { return []string{"go-regexp", "regexp2"} }

// GoEngine is the baseline: the standard library RE2-based regexp package.
type GoEngine struct{}

func (GoEngine) Name() string { return "go-regexp" }

func (GoEngine) Compile(pattern string) (Matcher, error) {
	rx, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("go-regexp: compile %q: %w", pattern, err)
	}
	anchored, err := regexp.Compile("^(?:" + pattern + ")")
	if err != nil {
		return nil, fmt.Errorf("go-regexp: compile anchored %q: %w", pattern, err)
	}
	return goMatcher{rx: rx, anchored: anchored}, nil
}

type goMatcher struct {
	rx       *regexp.Regexp
	anchored *regexp.Regexp
}

func (m goMatcher) Search(text string) bool  { return m.rx.MatchString(text) }
func (m goMatcher) MatchAt(text string) bool { return m.anchored.MatchString(text) }
func (m goMatcher) FindAll(text string) int {
	return len(m.rx.FindAllStringIndex(text, -1))
}

// Regexp2Engine is the candidate: the backtracking regexp2 engine.
type Regexp2Engine struct{}

func (Regexp2Engine) Name() string { return "regexp2" }

func (Regexp2Engine) Compile(pattern string) (Matcher, error) {
	rx, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("regexp2: compile %q: %w", pattern, err)
	}
	anchored, err := regexp2.Compile(`\A(?:`+pattern+`)`, regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("regexp2: compile anchored %q: %w", pattern, err)
	}
	return re2Matcher{rx: rx, anchored: anchored}, nil
}

type re2Matcher struct {
	rx       *regexp2.Regexp
	anchored *regexp2.Regexp
}

// regexp2 match calls only error when a match timeout is configured; the
// probes never set one, so a failed call reads as no match.
func (m re2Matcher) Search(text string) bool {
	ok, err := m.rx.MatchString(text)
	return err == nil && ok
}

func (m re2Matcher) MatchAt(text string) bool {
	ok, err := m.anchored.MatchString(text)
	return err == nil && ok
}

func (m re2Matcher) FindAll(text string) int {
	count := 0
	match, err := m.rx.FindStringMatch(text)
	for err == nil && match != nil {
		count++
		match, err = m.rx.FindNextMatch(match)
	}
	return count
}

// Probe binds a compiled matcher to one operation and text. Run performs
// the requested number of primitive operations as a single timed unit.
type Probe struct {
	matcher Matcher
	op      Op
	text    string
}

// NewProbe builds a probe for one benchmark case.
func NewProbe(m Matcher, op Op, text string) *Probe {
	return &Probe{matcher: m, op: op, text: text}
}

// Run executes iterations primitive operations and returns the total
// observed match count.
func (p *Probe) Run(iterations int) (int, error) {
	hits := 0
	for i := 0; i < iterations; i++ {
		switch p.op {
		case OpSearch:
			if p.matcher.Search(p.text) {
				hits++
			}
		case OpMatchAt:
			if p.matcher.MatchAt(p.text) {
				hits++
			}
		case OpFindAll:
			hits += p.matcher.FindAll(p.text)
		}
	}
	return hits, nil
}
