package chain

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tatianab/miu-game/internal/rules"
)

func TestComputeBidirectional_Meets(t *testing.T) {
	b := ComputeBidirectional("MI", "MIU", []Application{fwd(ruleI, 0)}, []Application{bwd(ruleI, 0)})

	if !b.Met || b.MeetingPoint != "MI" {
		t.Errorf("meeting point = %q (met=%v), want MI", b.MeetingPoint, b.Met)
	}
	if !b.Forward.Contains("MI") || !b.Reverse.Contains("MI") {
		t.Error("meeting point must be in both chains")
	}
}

func TestComputeBidirectional_NoMeeting(t *testing.T) {
	b := ComputeBidirectional("MI", "MUI", []Application{fwd(ruleII, 0)}, []Application{bwd(ruleIII, 0)})
	if b.Met {
		t.Errorf("unexpected meeting point %q", b.MeetingPoint)
	}
	if diff := cmp.Diff([]string{"MUI", "MIIII"}, b.Reverse.IntermediateStrings); diff != "" {
		t.Errorf("reverse IntermediateStrings mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeBidirectional_EmptyChainsMeetOnlyWhenEqual(t *testing.T) {
	if b := ComputeBidirectional("MI", "MI", nil, nil); !b.Met || b.MeetingPoint != "MI" {
		t.Errorf("identical start and target should meet immediately, got %+v", b)
	}
	if b := ComputeBidirectional("MI", "MIU", nil, nil); b.Met {
		t.Errorf("empty chains on different strings should not meet, got %q", b.MeetingPoint)
	}
}

func TestFindMeetingPoint_TieBreak(t *testing.T) {
	// Forward: MI, MII, MIIII. Reverse: MIIII, MII. Both MII and MIIII are shared;
	// the earliest forward index wins.
	f := Compute("MI", []Application{fwd(ruleII, 0), fwd(ruleII, 0)})
	r := Compute("MIIII", []Application{bwd(ruleII, 0)})

	got, ok := FindMeetingPoint(f, r)
	if !ok || got != "MII" {
		t.Errorf("FindMeetingPoint = %q/%v, want MII", got, ok)
	}
}

func TestAppendBidirectional(t *testing.T) {
	b := ComputeBidirectional("MI", "MIU", nil, nil)

	b = AppendBidirectional(b, ruleI, 0, rules.Backward)
	if b.Met {
		t.Error("mutations must clear the meeting point")
	}
	if b.Reverse.CurrentString != "MI" || b.Reverse.Rules[0].Direction != rules.Backward {
		t.Errorf("reverse chain = %+v", b.Reverse)
	}
	if len(b.Forward.Rules) != 0 {
		t.Error("forward chain must be untouched")
	}

	b = Rescan(b)
	if !b.Met || b.MeetingPoint != "MI" {
		t.Errorf("after rescan meeting point = %q/%v, want MI", b.MeetingPoint, b.Met)
	}
}

func TestDeleteBidirectional(t *testing.T) {
	b := ComputeBidirectional("MI", "MIU", []Application{fwd(ruleI, 0)}, []Application{bwd(ruleI, 0)})
	before := b.Reverse

	b = DeleteBidirectional(b, 0, rules.Forward)
	if len(b.Forward.Rules) != 0 || b.Forward.CurrentString != "MI" {
		t.Errorf("forward chain after delete = %+v", b.Forward)
	}
	if b.Met {
		t.Error("mutations must clear the meeting point")
	}
	if diff := cmp.Diff(before.IntermediateStrings, b.Reverse.IntermediateStrings); diff != "" {
		t.Errorf("reverse chain changed:\n%s", diff)
	}
	if b = Rescan(b); !b.Met {
		t.Error("MI is still on both sides after the delete")
	}
}

func TestRepositionBidirectional(t *testing.T) {
	// Reverse from MUU: U -> III at site 0 gives MIIIU, at site 1 gives MUIII.
	b := ComputeBidirectional("MI", "MUU", nil, []Application{bwd(ruleIII, 0)})
	if b.Reverse.CurrentString != "MIIIU" {
		t.Fatalf("setup: reverse current = %q", b.Reverse.CurrentString)
	}

	b = RepositionBidirectional(b, 0, 1, rules.Backward)
	if b.Reverse.CurrentString != "MUIII" {
		t.Errorf("reverse current = %q, want MUIII", b.Reverse.CurrentString)
	}
	if b.Side(rules.Backward).CurrentString != b.Reverse.CurrentString {
		t.Error("Side(Backward) should return the reverse chain")
	}
}

func TestMeetInTheMiddle(t *testing.T) {
	// MI -> MII -> MIIII forward; MUI -> MIIII backward via U -> III.
	b := ComputeBidirectional("MI", "MUI",
		[]Application{fwd(ruleII, 0), fwd(ruleII, 0)},
		[]Application{bwd(ruleIII, 0)},
	)
	if !b.Met || b.MeetingPoint != "MIIII" {
		t.Errorf("meeting point = %q/%v, want MIIII", b.MeetingPoint, b.Met)
	}
}
