package rules

// MIU returns Hofstadter's four rules, each with a forward and a backward
// direction. The backward directions are written by hand and are not derived
// from the forward ones.
func MIU() []*Rule {
	return []*Rule{
		NewBidirectional("rule1", "Rule I", "Add or remove U after I",
			NewMatcher("Add U", "Add U to any string ending in I", AppendAfterSuffix("I", "U")),
			NewMatcher("Remove U", "Remove U that follows I", ReplaceOverlapping("IU", "I")),
		),
		NewBidirectional("rule2", "Rule II", "Double or halve the string after M",
			NewMatcher("Double", "Double everything after M", DoubleAfterPrefix("M")),
			NewMatcher("Halve", "If the part after M is doubled, remove half", HalveAfterPrefix("M")),
		),
		NewBidirectional("rule3", "Rule III", "Replace III with U or U with III",
			NewMatcher("III → U", "Replace III with U", ReplaceOverlapping("III", "U")),
			NewMatcher("U → III", "Replace U with III", ReplaceOverlapping("U", "III")),
		),
		NewBidirectional("rule4", "Rule IV", "Remove or insert UU",
			NewMatcher("Remove UU", "Remove UU", ReplaceNonOverlapping("UU", "")),
			NewMatcher("Insert UU", "Insert UU anywhere (except before M)", InsertAnywhere("UU", "M")),
		),
	}
}

// MIUForward returns the classic forward-only rule set.
func MIUForward() []*Rule {
	return []*Rule{
		NewUnidirectional("rule1", "Rule I", "Add U to any string ending in I", Forward,
			NewMatcher("Add U", "Add U to any string ending in I", AppendAfterSuffix("I", "U"))),
		NewUnidirectional("rule2", "Rule II", "Double everything after M (MI → MII, MII → MIIII)", Forward,
			NewMatcher("Double", "Double everything after M", DoubleAfterPrefix("M"))),
		NewUnidirectional("rule3", "Rule III", "Replace III with U", Forward,
			NewMatcher("III → U", "Replace III with U", ReplaceOverlapping("III", "U"))),
		NewUnidirectional("rule4", "Rule IV", "Remove UU", Forward,
			NewMatcher("Remove UU", "Remove UU", ReplaceNonOverlapping("UU", ""))),
	}
}
