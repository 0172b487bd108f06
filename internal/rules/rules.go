// Package rules defines rewrite rules for string-based formal systems.
//
// A Rule owns one or two Matchers. A Matcher enumerates every site where it can
// rewrite a string and applies itself at one of them. Matchers are pure values:
// they hold their own find function and never look anything up in a shared table.
package rules

import (
	"fmt"
	"strings"
)

// Direction tags which way a rule is applied.
type Direction string

const (
	Forward  Direction = "forward"
	Backward Direction = "backward"
)

// ParseDirection accepts "forward", "backward" and "reverse" (an alias of backward).
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "forward", "":
		return Forward, nil
	case "backward", "reverse":
		return Backward, nil
	}
	return "", fmt.Errorf("unknown direction %q", s)
}

// Opposite returns the other direction.
func (d Direction) Opposite() Direction {
	if d == Backward {
		return Forward
	}
	return Backward
}

// Match is one candidate application site.
type Match struct {
	Start       int    `yaml:"start"`
	End         int    `yaml:"end"`
	Replacement string `yaml:"replacement"`
	Preview     string `yaml:"preview"` // the whole string after applying this match
}

// FindFunc enumerates the matches of a pattern in s, in scan order.
type FindFunc func(s string) []Match

// Applier is the capability shared by every matcher.
type Applier interface {
	FindApplications(s string) []Match
	Transform(s string, index int) string
}

// Matcher is a single direction of a rule.
type Matcher struct {
	Name        string
	Description string
	find        FindFunc
}

// NewMatcher wraps a find function.
func NewMatcher(name, description string, find FindFunc) Matcher {
	return Matcher{Name: name, Description: description, find: find}
}

// FindApplications returns every site where the matcher applies. It never
// returns an error; no site means an empty result.
func (m Matcher) FindApplications(s string) []Match {
	if m.find == nil {
		return nil
	}
	return m.find(s)
}

// Transform applies the match at index. An index outside the current match list
// leaves s unchanged.
func (m Matcher) Transform(s string, index int) string {
	matches := m.FindApplications(s)
	if index < 0 || index >= len(matches) {
		return s
	}
	return matches[index].Preview
}

// Kind distinguishes unidirectional from bidirectional rules.
type Kind int

const (
	Unidirectional Kind = iota
	Bidirectional
)

func (k Kind) String() string {
	if k == Bidirectional {
		return "bidirectional"
	}
	return "unidirectional"
}

// Resolver is what the chain engine needs from a rule.
type Resolver interface {
	Resolve(d Direction) (Applier, bool)
}

// Rule is a named transformation with one or two directions. Rules are built
// once and shared read-only.
type Rule struct {
	ID          string
	Name        string
	Description string

	kind     Kind
	only     Direction // role of a unidirectional rule
	forward  Matcher
	backward Matcher
}

// NewUnidirectional builds a rule used only in the given role.
func NewUnidirectional(id, name, description string, d Direction, m Matcher) *Rule {
	r := &Rule{ID: id, Name: name, Description: description, kind: Unidirectional, only: d}
	if d == Backward {
		r.backward = m
	} else {
		r.only = Forward
		r.forward = m
	}
	return r
}

// NewBidirectional builds a rule with independent forward and backward matchers.
// The two are not required to be inverses of each other.
func NewBidirectional(id, name, description string, forward, backward Matcher) *Rule {
	return &Rule{
		ID:          id,
		Name:        name,
		Description: description,
		kind:        Bidirectional,
		forward:     forward,
		backward:    backward,
	}
}

// Kind reports the rule variant.
func (r *Rule) Kind() Kind { return r.kind }

// Role returns the direction of a unidirectional rule.
func (r *Rule) Role() Direction { return r.only }

// Supports reports whether the rule may be offered in direction d.
func (r *Rule) Supports(d Direction) bool {
	if r.kind == Bidirectional {
		return true
	}
	return r.only == d
}

// Matcher returns the matcher for d, or the single matcher of a unidirectional
// rule regardless of d.
func (r *Rule) Matcher(d Direction) Matcher {
	if r.kind == Unidirectional {
		d = r.only
	}
	if d == Backward {
		return r.backward
	}
	return r.forward
}

// Resolve implements Resolver.
func (r *Rule) Resolve(d Direction) (Applier, bool) {
	if r == nil {
		return nil, false
	}
	return r.Matcher(d), true
}

func (r *Rule) String() string {
	return r.Name
}
