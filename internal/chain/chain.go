// Package chain replays ordered rule applications over a start string.
//
// Every chain value is the result of one full replay. Mutations never patch an
// existing chain; they build the new application list and replay it from the
// start string, so ValidUpTo is always consistent with the list after any edit.
package chain

import (
	"github.com/tatianab/miu-game/internal/rules"
)

// Application is one step of a chain.
type Application struct {
	Rule      *rules.Rule
	Position  int
	Direction rules.Direction
}

// State summarises a chain.
type State int

const (
	Unstarted State = iota
	Valid
	PartiallyInvalid
)

func (s State) String() string {
	switch s {
	case Unstarted:
		return "unstarted"
	case Valid:
		return "valid"
	default:
		return "partially-invalid"
	}
}

// Chain is the replay of Rules from IntermediateStrings[0].
//
// len(IntermediateStrings) == ValidUpTo+1 and CurrentString is its last element.
// Rules at index >= ValidUpTo are kept but did not contribute a string.
type Chain struct {
	Rules               []Application
	CurrentString       string
	IntermediateStrings []string
	ValidUpTo           int
}

// Compute replays apps from start. The first application that leaves the string
// unchanged stops the replay; it and everything after it are invalid.
func Compute(start string, apps []Application) Chain {
	owned := make([]Application, len(apps))
	copy(owned, apps)

	intermediate := []string{start}
	current := start
	validUpTo := len(owned)

	for i, app := range owned {
		next := current
		if m, ok := app.resolve(); ok {
			next = m.Transform(current, app.Position)
		}
		if next == current {
			validUpTo = i
			break
		}
		current = next
		intermediate = append(intermediate, current)
	}

	return Chain{
		Rules:               owned,
		CurrentString:       current,
		IntermediateStrings: intermediate,
		ValidUpTo:           validUpTo,
	}
}

func (a Application) resolve() (rules.Applier, bool) {
	if a.Rule == nil {
		return nil, false
	}
	return a.Rule.Resolve(a.Direction)
}

// New returns an empty chain anchored at start.
func New(start string) Chain {
	return Compute(start, nil)
}

// Start is the string the chain was replayed from.
func (c Chain) Start() string {
	if len(c.IntermediateStrings) == 0 {
		return ""
	}
	return c.IntermediateStrings[0]
}

// State reports where the chain is in its lifecycle.
func (c Chain) State() State {
	switch {
	case len(c.Rules) == 0:
		return Unstarted
	case c.ValidUpTo == len(c.Rules):
		return Valid
	default:
		return PartiallyInvalid
	}
}

// CanExtend reports whether the chain has no invalid suffix.
func (c Chain) CanExtend() bool {
	return c.ValidUpTo >= len(c.Rules)
}

// IsValid reports whether step i contributed a string.
func (c Chain) IsValid(i int) bool {
	return i >= 0 && i < c.ValidUpTo
}

// Applications returns the matches available to step i, queried against the
// string the step was applied to. Steps past the first invalid one have no
// input string and return nil.
func (c Chain) Applications(i int) []rules.Match {
	if i < 0 || i >= len(c.Rules) || i >= len(c.IntermediateStrings) {
		return nil
	}
	m, ok := c.Rules[i].resolve()
	if !ok {
		return nil
	}
	return m.FindApplications(c.IntermediateStrings[i])
}

// Contains reports whether s is one of the chain's intermediate strings.
func (c Chain) Contains(s string) bool {
	for _, x := range c.IntermediateStrings {
		if x == s {
			return true
		}
	}
	return false
}

// Append adds one application and replays the whole chain.
func Append(c Chain, rule *rules.Rule, position int, direction rules.Direction) Chain {
	apps := make([]Application, 0, len(c.Rules)+1)
	apps = append(apps, c.Rules...)
	apps = append(apps, Application{Rule: rule, Position: position, Direction: direction})
	return Compute(c.Start(), apps)
}

// Delete removes the application at index and replays from the start string.
// Removing a blocking step can make later steps valid again. An out-of-range
// index replays the list unchanged.
func Delete(c Chain, index int) Chain {
	if index < 0 || index >= len(c.Rules) {
		return Compute(c.Start(), c.Rules)
	}
	apps := make([]Application, 0, len(c.Rules)-1)
	apps = append(apps, c.Rules[:index]...)
	apps = append(apps, c.Rules[index+1:]...)
	return Compute(c.Start(), apps)
}

// Reposition changes the chosen site of the application at index and replays.
func Reposition(c Chain, index, position int) Chain {
	apps := make([]Application, len(c.Rules))
	copy(apps, c.Rules)
	if index >= 0 && index < len(apps) {
		apps[index].Position = position
	}
	return Compute(c.Start(), apps)
}
