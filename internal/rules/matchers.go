package rules

import (
	"fmt"
	"strings"
)

// AppendAfterSuffix matches once when s ends with suffix and appends add.
func AppendAfterSuffix(suffix, add string) FindFunc {
	return func(s string) []Match {
		if suffix == "" || !strings.HasSuffix(s, suffix) {
			return nil
		}
		return []Match{{
			Start:       len(s) - len(suffix),
			End:         len(s),
			Replacement: suffix + add,
			Preview:     s + add,
		}}
	}
}

// ReplaceOverlapping matches every occurrence of pattern. The scan advances one
// byte after each match, so overlapping runs yield one match per offset.
func ReplaceOverlapping(pattern, replacement string) FindFunc {
	return func(s string) []Match {
		if pattern == "" {
			return nil
		}
		var out []Match
		for i := 0; i+len(pattern) <= len(s); i++ {
			if s[i:i+len(pattern)] != pattern {
				continue
			}
			out = append(out, Match{
				Start:       i,
				End:         i + len(pattern),
				Replacement: replacement,
				Preview:     s[:i] + replacement + s[i+len(pattern):],
			})
		}
		return out
	}
}

// ReplaceNonOverlapping matches occurrences of pattern found by a left-to-right
// scan that resumes after the end of each match.
func ReplaceNonOverlapping(pattern, replacement string) FindFunc {
	return func(s string) []Match {
		if pattern == "" {
			return nil
		}
		var out []Match
		for from := 0; from <= len(s); {
			j := strings.Index(s[from:], pattern)
			if j < 0 {
				break
			}
			i := from + j
			out = append(out, Match{
				Start:       i,
				End:         i + len(pattern),
				Replacement: replacement,
				Preview:     s[:i] + replacement + s[i+len(pattern):],
			})
			from = i + len(pattern)
		}
		return out
	}
}

// DoubleAfterPrefix matches once when s starts with prefix and duplicates the rest.
func DoubleAfterPrefix(prefix string) FindFunc {
	return func(s string) []Match {
		if prefix == "" || !strings.HasPrefix(s, prefix) {
			return nil
		}
		rest := s[len(prefix):]
		return []Match{{
			Start:       len(prefix),
			End:         len(s),
			Replacement: rest + rest,
			Preview:     prefix + rest + rest,
		}}
	}
}

// HalveAfterPrefix matches once when the part after prefix is two identical halves.
func HalveAfterPrefix(prefix string) FindFunc {
	return func(s string) []Match {
		if prefix == "" || !strings.HasPrefix(s, prefix) {
			return nil
		}
		rest := s[len(prefix):]
		if len(rest)%2 != 0 {
			return nil
		}
		half := rest[:len(rest)/2]
		if half != rest[len(rest)/2:] {
			return nil
		}
		return []Match{{
			Start:       len(prefix),
			End:         len(s),
			Replacement: half,
			Preview:     prefix + half,
		}}
	}
}

// InsertAnywhere matches every insertion index from 0 to len(s). Index 0 is
// skipped when s already starts with prefix; an empty prefix never skips.
func InsertAnywhere(insert, prefix string) FindFunc {
	return func(s string) []Match {
		if insert == "" {
			return nil
		}
		out := make([]Match, 0, len(s)+1)
		for i := 0; i <= len(s); i++ {
			if i == 0 && prefix != "" && strings.HasPrefix(s, prefix) {
				continue
			}
			out = append(out, Match{
				Start:       i,
				End:         i,
				Replacement: insert,
				Preview:     s[:i] + insert + s[i:],
			})
		}
		return out
	}
}

// Matcher kinds accepted by Build.
const (
	KindAppendAfterSuffix     = "append-after-suffix"
	KindReplaceOverlapping    = "replace-overlapping"
	KindReplaceNonOverlapping = "replace-non-overlapping"
	KindDoubleAfterPrefix     = "double-after-prefix"
	KindHalveAfterPrefix      = "halve-after-prefix"
	KindInsertAnywhere        = "insert-anywhere"
)

// Spec describes a matcher as data.
type Spec struct {
	Kind        string `yaml:"kind" validate:"required,oneof=append-after-suffix replace-overlapping replace-non-overlapping double-after-prefix halve-after-prefix insert-anywhere"`
	Name        string `yaml:"name" validate:"required"`
	Description string `yaml:"description"`
	Pattern     string `yaml:"pattern"`
	Replacement string `yaml:"replacement"`
	Prefix      string `yaml:"prefix"`
}

// Build turns a spec into a matcher.
func Build(spec Spec) (Matcher, error) {
	var (
		find     FindFunc
		required = spec.Pattern
		field    = "pattern"
	)
	switch spec.Kind {
	case KindAppendAfterSuffix:
		find = AppendAfterSuffix(spec.Pattern, spec.Replacement)
	case KindReplaceOverlapping:
		find = ReplaceOverlapping(spec.Pattern, spec.Replacement)
	case KindReplaceNonOverlapping:
		find = ReplaceNonOverlapping(spec.Pattern, spec.Replacement)
	case KindDoubleAfterPrefix:
		find = DoubleAfterPrefix(spec.Prefix)
		required, field = spec.Prefix, "prefix"
	case KindHalveAfterPrefix:
		find = HalveAfterPrefix(spec.Prefix)
		required, field = spec.Prefix, "prefix"
	case KindInsertAnywhere:
		find = InsertAnywhere(spec.Replacement, spec.Prefix)
		required, field = spec.Replacement, "replacement"
	default:
		return Matcher{}, fmt.Errorf("unknown matcher kind %q", spec.Kind)
	}
	if required == "" {
		return Matcher{}, fmt.Errorf("matcher %q (%s): %s is required", spec.Name, spec.Kind, field)
	}
	return NewMatcher(spec.Name, spec.Description, find), nil
}
