package nuspell

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Casing classifies a word's letter-case pattern (spec §4.8, GLOSSARY).
type Casing int

const (
	Small Casing = iota
	InitCapital
	AllCapital
	Camel
	Pascal
)

var (
	lowerCaser = cases.Lower(language.Und)
	titleCaser = cases.Title(language.Und)
	upperCaser = cases.Upper(language.Und)
)

// classifyCasing implements the Unicode-aware classification of spec §4.8,
// deciding letter case per rune with the standard library's
// unicode.IsUpper/unicode.IsLower.
func classifyCasing(word string) Casing {
	runes := []rune(word)
	var upper, lower int
	firstUpper := false
	hasInternalUpperAfterLower := false
	sawLower := false
	for i, r := range runes {
		switch {
		case unicode.IsUpper(r):
			upper++
			if i == 0 {
				firstUpper = true
			}
			if sawLower {
				hasInternalUpperAfterLower = true
			}
		case unicode.IsLower(r):
			lower++
			sawLower = true
		}
	}
	switch {
	case upper == 0:
		return Small
	case lower == 0:
		return AllCapital
	case firstUpper && hasInternalUpperAfterLower:
		return Pascal
	case !firstUpper && hasInternalUpperAfterLower:
		return Camel
	case firstUpper:
		return InitCapital
	default:
		return Small
	}
}

// checkCasingStrategy dispatches to the casing strategy spec §4.8 names for
// word's classification, returning true as soon as one accepts it.
func (d *Dictionary) checkCasingStrategy(word string) bool {
	switch classifyCasing(word) {
	case Small, Camel, Pascal:
		_, ok := d.checkCompoundOrAffix(word)
		return ok
	case AllCapital:
		return d.checkAllCapital(word)
	case InitCapital:
		return d.checkInitCapital(word)
	default:
		_, ok := d.checkCompoundOrAffix(word)
		return ok
	}
}

func (d *Dictionary) checkAllCapital(word string) bool {
	if _, ok := d.checkCompoundOrAffix(word); ok {
		return true
	}
	if d.checkApostrophePatterns(word) {
		return true
	}
	if d.CheckSharps {
		for _, candidate := range sharpsCombinations(word, 5) {
			if _, ok := d.checkCompoundOrAffix(candidate); ok {
				return true
			}
		}
	}
	lowered := lowerCaser.String(word)
	if r, ok := d.checkCompoundOrAffix(lowered); ok {
		if r.Found && d.KeepCaseFlag != NoFlag && r.Entry.Flags.Contains(d.KeepCaseFlag) {
			return d.CheckSharps && strings.Contains(word, "SS")
		}
		return true
	}
	titled := titleCaser.String(lowered)
	if r, ok := d.checkCompoundOrAffix(titled); ok {
		if r.Found && d.KeepCaseFlag != NoFlag && r.Entry.Flags.Contains(d.KeepCaseFlag) {
			return d.CheckSharps && strings.Contains(word, "SS")
		}
		return true
	}
	return false
}

func (d *Dictionary) checkInitCapital(word string) bool {
	if r, ok := d.checkCompoundOrAffix(word); ok {
		if r.Found && r.Entry.Flags.Contains(HiddenHomonymFlag) {
			return false
		}
		return true
	}
	lowered := lowerCaser.String(word)
	r, ok := d.checkCompoundOrAffix(lowered)
	if !ok {
		return false
	}
	if r.Found && d.KeepCaseFlag != NoFlag && r.Entry.Flags.Contains(d.KeepCaseFlag) {
		return d.CheckSharps && strings.Contains(word, "Ss")
	}
	return true
}

// checkApostrophePatterns tries the leading-apostrophe forms common in
// Romance languages (e.g. "L'ARBRE" keeping the all-caps word minus the
// elided vowel) by retrying with everything up to and including the first
// apostrophe left untouched and the remainder folded.
func (d *Dictionary) checkApostrophePatterns(word string) bool {
	idx := strings.IndexRune(word, '\'')
	if idx < 0 || idx == len(word)-1 {
		return false
	}
	candidate := word[:idx+1] + lowerCaser.String(word[idx+1:])
	_, ok := d.checkCompoundOrAffix(candidate)
	return ok
}

// sharpsCombinations enumerates every way to replace some of the first
// maxReplacements "SS" occurrences with "ß" (the others stay "SS"), per the
// German checksharps rule (spec §4.8). The unchanged word is not included.
func sharpsCombinations(word string, maxReplacements int) []string {
	positions := findAll(word, "SS")
	if len(positions) == 0 {
		return nil
	}
	if len(positions) > maxReplacements {
		positions = positions[:maxReplacements]
	}
	var out []string
	n := len(positions)
	for mask := 1; mask < (1 << n); mask++ {
		var b strings.Builder
		last := 0
		for i, pos := range positions {
			b.WriteString(word[last:pos])
			if mask&(1<<i) != 0 {
				b.WriteString("ß")
			} else {
				b.WriteString("SS")
			}
			last = pos + 2
		}
		b.WriteString(word[last:])
		out = append(out, b.String())
	}
	return out
}

func findAll(s, sub string) []int {
	var out []int
	start := 0
	for {
		idx := strings.Index(s[start:], sub)
		if idx < 0 {
			return out
		}
		out = append(out, start+idx)
		start += idx + len(sub)
	}
}

// foldLower is the Unicode-aware lowercase fold. Nothing calls it: the
// casing strategies use lowerCaser directly and pkg/suggest keeps its own
// casers.
func foldLower(s string) string { return lowerCaser.String(s) }

// foldUpper is the Unicode-aware uppercase fold. Nothing calls it:
// pkg/suggest does its own upper-casing for spec §4.9 strategies 1 and 13.
func foldUpper(s string) string { return upperCaser.String(s) }
