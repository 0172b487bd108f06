package chain

import (
	"github.com/tatianab/miu-game/internal/rules"
)

// Bidirectional pairs a chain grown forward from the start string with one grown
// backward from the target string.
type Bidirectional struct {
	Forward Chain
	Reverse Chain

	// MeetingPoint is only meaningful when Met is true.
	MeetingPoint string
	Met          bool
}

// ComputeBidirectional replays both chains and scans for a meeting point.
func ComputeBidirectional(start, target string, forwardApps, reverseApps []Application) Bidirectional {
	b := Bidirectional{
		Forward: Compute(start, forwardApps),
		Reverse: Compute(target, reverseApps),
	}
	return Rescan(b)
}

// FindMeetingPoint returns the first forward intermediate string that also
// appears in the reverse chain. Forward is the outer loop and reverse the inner
// one, so ties go to the earliest forward index, then the earliest reverse index.
func FindMeetingPoint(forward, reverse Chain) (string, bool) {
	for _, f := range forward.IntermediateStrings {
		for _, r := range reverse.IntermediateStrings {
			if f == r {
				return f, true
			}
		}
	}
	return "", false
}

// Rescan returns b with its meeting point recomputed.
func Rescan(b Bidirectional) Bidirectional {
	b.MeetingPoint, b.Met = FindMeetingPoint(b.Forward, b.Reverse)
	return b
}

// Side returns the chain grown in direction d.
func (b Bidirectional) Side(d rules.Direction) Chain {
	if d == rules.Backward {
		return b.Reverse
	}
	return b.Forward
}

// AppendBidirectional appends to the chain selected by direction and leaves the
// other one untouched. The meeting point is cleared; callers Rescan.
func AppendBidirectional(b Bidirectional, rule *rules.Rule, position int, direction rules.Direction) Bidirectional {
	return b.replace(direction, func(c Chain) Chain {
		return Append(c, rule, position, direction)
	})
}

// DeleteBidirectional deletes step index from the chain selected by direction.
// The meeting point is cleared; callers Rescan.
func DeleteBidirectional(b Bidirectional, index int, direction rules.Direction) Bidirectional {
	return b.replace(direction, func(c Chain) Chain {
		return Delete(c, index)
	})
}

// RepositionBidirectional changes the site of step index in the chain selected by
// direction. The meeting point is cleared; callers Rescan.
func RepositionBidirectional(b Bidirectional, index, position int, direction rules.Direction) Bidirectional {
	return b.replace(direction, func(c Chain) Chain {
		return Reposition(c, index, position)
	})
}

func (b Bidirectional) replace(direction rules.Direction, fn func(Chain) Chain) Bidirectional {
	out := Bidirectional{Forward: b.Forward, Reverse: b.Reverse}
	if direction == rules.Backward {
		out.Reverse = fn(b.Reverse)
	} else {
		out.Forward = fn(b.Forward)
	}
	return out
}
