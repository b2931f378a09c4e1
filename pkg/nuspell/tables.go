package nuspell

import (
	"strings"
	"unicode/utf8"
)

// BreakTable holds the three ordered groups of break markers (spec §3):
// start-anchored ("^x" -> "x"), end-anchored ("x$" -> "x") and middle ("x").
type BreakTable struct {
	Start  []string
	End    []string
	Middle []string
}

// StartMatches returns, for each start-anchored marker that prefixes word,
// the remainder of word after stripping the marker.
func (bt BreakTable) StartMatches(word string) []string {
	var out []string
	for _, m := range bt.Start {
		if m != "" && strings.HasPrefix(word, m) && len(word) > len(m) {
			out = append(out, word[len(m):])
		}
	}
	return out
}

// EndMatches returns, for each end-anchored marker that suffixes word, the
// remainder of word after stripping the marker.
func (bt BreakTable) EndMatches(word string) []string {
	var out []string
	for _, m := range bt.End {
		if m != "" && strings.HasSuffix(word, m) && len(word) > len(m) {
			out = append(out, word[:len(word)-len(m)])
		}
	}
	return out
}

// MiddlePair is one (left, right) split produced by a middle break marker.
type MiddlePair struct {
	Left, Right string
}

// MiddleSplits returns every (left, right) split of word at an occurrence of
// a middle break marker.
func (bt BreakTable) MiddleSplits(word string) []MiddlePair {
	var out []MiddlePair
	for _, m := range bt.Middle {
		if m == "" {
			continue
		}
		start := 0
		for {
			idx := strings.Index(word[start:], m)
			if idx < 0 {
				break
			}
			pos := start + idx
			if pos > 0 && pos+len(m) < len(word) {
				out = append(out, MiddlePair{Left: word[:pos], Right: word[pos+len(m):]})
			}
			start = pos + len(m)
			if start >= len(word) {
				break
			}
		}
	}
	return out
}

// Replacement is one rewrite rule from a REP/ICONV/OCONV table entry.
type Replacement struct {
	Pattern string
	Out     string
}

// ReplacementTable holds the four ordered groups spec §3 names: whole-word,
// start-word, end-word and any-place. Used both for suggestion generation
// (spec §4.9 strategy 2) and as the input/output substring replacer (spec
// §4.8 step 1 and the ICONV/OCONV supplement in SPEC_FULL.md).
type ReplacementTable struct {
	Whole []Replacement
	Start []Replacement
	End   []Replacement
	Any   []Replacement
}

// Apply returns every distinct candidate obtainable by applying exactly one
// replacement rule to word, in table order, skipping results equal to word.
func (rt ReplacementTable) Apply(word string) []string {
	var out []string
	seen := map[string]bool{word: true}
	add := func(s string) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, r := range rt.Whole {
		if word == r.Pattern {
			add(r.Out)
		}
	}
	for _, r := range rt.Start {
		if r.Pattern != "" && strings.HasPrefix(word, r.Pattern) {
			add(r.Out + word[len(r.Pattern):])
		}
	}
	for _, r := range rt.End {
		if r.Pattern != "" && strings.HasSuffix(word, r.Pattern) {
			add(word[:len(word)-len(r.Pattern)] + r.Out)
		}
	}
	for _, r := range rt.Any {
		if r.Pattern == "" {
			continue
		}
		start := 0
		for {
			idx := strings.Index(word[start:], r.Pattern)
			if idx < 0 {
				break
			}
			pos := start + idx
			add(word[:pos] + r.Out + word[pos+len(r.Pattern):])
			start = pos + len(r.Pattern)
			if start > len(word) {
				break
			}
		}
	}
	return out
}

// ReplaceSubstr applies an input/output conversion table (ICONV/OCONV) as a
// single deterministic substring rewrite pass over s: every Any-group
// pattern found is replaced left to right, longest pattern first at a given
// position. An empty table is the identity, satisfying the round-trip
// property in spec §8.
func ReplaceSubstr(table ReplacementTable, s string) string {
	if len(table.Any) == 0 {
		return s
	}
	var b strings.Builder
	i := 0
	for i < len(s) {
		matched := false
		var best Replacement
		bestLen := -1
		for _, r := range table.Any {
			if r.Pattern == "" {
				continue
			}
			if strings.HasPrefix(s[i:], r.Pattern) && len(r.Pattern) > bestLen {
				best = r
				bestLen = len(r.Pattern)
				matched = true
			}
		}
		if matched {
			b.WriteString(best.Out)
			i += bestLen
		} else {
			_, size := utf8.DecodeRuneInString(s[i:])
			b.WriteString(s[i : i+size])
			i += size
		}
	}
	return b.String()
}

// MapGroup is a set of interchangeable characters/strings used by the
// Suggestor's character-map strategy (spec §4.9 strategy 3).
type MapGroup []string

// CompoundPattern forbids a specific two-stem boundary (spec §3, §4.6
// compound_patterns). Replacement is parsed and stored but not applied:
// the Compound Checker only rejects matching boundaries and does not
// rewrite them.
type CompoundPattern struct {
	LeftSuffix    string
	RightPrefix   string
	Replacement   string
	FirstFlag     Flag
	SecondFlag    Flag
	UnaffixedOnly bool
}

// Matches reports whether the boundary between left and right is forbidden
// by this pattern. leftUnaffixed/rightUnaffixed report whether the
// respective part was matched with zero affixes stripped (needed for the
// unaffixed_only qualifier).
func (p CompoundPattern) Matches(left, right string, leftFlags, rightFlags FlagSet, leftUnaffixed, rightUnaffixed bool) bool {
	if p.LeftSuffix != "" && !strings.HasSuffix(left, p.LeftSuffix) {
		return false
	}
	if p.RightPrefix != "" && !strings.HasPrefix(right, p.RightPrefix) {
		return false
	}
	if p.FirstFlag != NoFlag && !leftFlags.Contains(p.FirstFlag) {
		return false
	}
	if p.SecondFlag != NoFlag && !rightFlags.Contains(p.SecondFlag) {
		return false
	}
	if p.UnaffixedOnly && !(leftUnaffixed && rightUnaffixed) {
		return false
	}
	return true
}
