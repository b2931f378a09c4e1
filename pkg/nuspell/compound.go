package nuspell

import "unicode"

const defaultCompoundMinLength = 3

func (d *Dictionary) effectiveCompoundMinLength() int {
	if d.CompoundMinLength > 0 {
		return d.CompoundMinLength
	}
	return defaultCompoundMinLength
}

// checkCompound recursively decomposes word at every position and validates
// each part via the Affix Stripper (spec §4.6).
func (d *Dictionary) checkCompound(word string) bool {
	if !d.compoundingActive() {
		return false
	}
	return d.compoundSplit(word, 1, nil)
}

type compoundPart struct {
	text      string
	flags     FlagSet
	unaffixed bool
}

// compoundSplit tries every cut of remaining into (left, right), validating
// left as the next compound part and either accepting right as the final
// part or recursing on it. parts holds every part accepted so far, used for
// the duplicate/rep boundary checks and the rule-based flag sequence.
func (d *Dictionary) compoundSplit(remaining string, partIndex int, parts []compoundPart) bool {
	min := d.effectiveCompoundMinLength()
	runes := []rune(remaining)
	if len(runes) < 2*min {
		return false
	}
	beginMode := AtCompoundMiddle
	if partIndex == 1 {
		beginMode = AtCompoundBegin
	}
	maxDepth := len(runes)/min + 1
	if partIndex > maxDepth {
		return false
	}
	for cut := min; cut <= len(runes)-min; cut++ {
		left := string(runes[:cut])
		right := string(runes[cut:])

		leftFlags, leftOK, leftUnaffixed := d.validateCompoundPart(left, beginMode)
		if !leftOK {
			continue
		}
		leftPart := compoundPart{text: left, flags: leftFlags, unaffixed: leftUnaffixed}
		if !d.checkBoundary(parts, leftPart) {
			continue
		}
		newParts := append(append([]compoundPart(nil), parts...), leftPart)

		if d.CompoundMaxWordCount > 0 && compoundCount(newParts) > d.CompoundMaxWordCount {
			continue
		}

		if rightFlags, rightOK, rightUnaffixed := d.validateCompoundPart(right, AtCompoundEnd); rightOK {
			rightPart := compoundPart{text: right, flags: rightFlags, unaffixed: rightUnaffixed}
			if d.checkBoundary(newParts, rightPart) {
				finalParts := append(append([]compoundPart(nil), newParts...), rightPart)
				if d.acceptCompoundSequence(finalParts) {
					return true
				}
			}
		}

		if d.compoundSplit(right, partIndex+1, newParts) {
			return true
		}
	}
	return false
}

func compoundCount(parts []compoundPart) int { return len(parts) }

// validateCompoundPart implements spec §4.6's per-part validation: direct
// Word Index lookup carrying compound_flag or the mode-specific flag, else
// single-affix or commutative prefix+suffix stripping with mode propagated.
func (d *Dictionary) validateCompoundPart(word string, mode AffixingMode) (FlagSet, bool, bool) {
	if len([]rune(word)) < d.effectiveCompoundMinLength() {
		return FlagSet{}, false, false
	}
	if r := d.tryNoAffix(word, mode); r.Found {
		return r.Entry.Flags, true, true
	}
	if r := d.trySuffix(word, mode); r.Found && d.entryUsableAtCompoundMode(r.Entry, mode) {
		return r.Entry.Flags, true, false
	}
	if r := d.tryPrefix(word, mode); r.Found && d.entryUsableAtCompoundMode(r.Entry, mode) {
		return r.Entry.Flags, true, false
	}
	if r := d.tryPrefixThenSuffix(word, mode); r.Found && d.entryUsableAtCompoundMode(r.Entry, mode) {
		return r.Entry.Flags, true, false
	}
	if r := d.trySuffixThenPrefix(word, mode); r.Found && d.entryUsableAtCompoundMode(r.Entry, mode) {
		return r.Entry.Flags, true, false
	}
	return FlagSet{}, false, false
}

// checkBoundary applies every configured boundary check (spec §4.6) at the
// junction between the last accepted part and candidate.
func (d *Dictionary) checkBoundary(parts []compoundPart, candidate compoundPart) bool {
	if len(parts) == 0 {
		return true
	}
	prev := parts[len(parts)-1]

	if d.CheckCompoundDup && prev.text == candidate.text {
		return false
	}
	if d.CheckCompoundCase && boundaryHasUppercase(prev.text, candidate.text) {
		return false
	}
	if d.CheckCompoundTriple && tripleAtBoundary(prev.text, candidate.text) && !d.SimplifiedTriple {
		return false
	}
	if d.CheckCompoundRep && d.compoundRepSimilar(prev.text, candidate.text) {
		return false
	}
	if d.CompoundForceUpFlag != NoFlag && candidate.flags.Contains(d.CompoundForceUpFlag) {
		if classifyCasing(prev.text+candidate.text) == Small || classifyCasing(prev.text+candidate.text) == Camel {
			return false
		}
	}
	for _, p := range d.CompoundPatterns {
		if p.Matches(prev.text, candidate.text, prev.flags, candidate.flags, prev.unaffixed, candidate.unaffixed) {
			return false
		}
	}
	if d.CompoundSyllableMax > 0 {
		if countVowels(prev.text+candidate.text, d.CompoundSyllableVowels) > d.CompoundSyllableMax {
			return false
		}
	}
	return true
}

func boundaryHasUppercase(left, right string) bool {
	if left == "" || right == "" {
		return false
	}
	l := []rune(left)
	r := []rune(right)
	return isUpperRune(l[len(l)-1]) || isUpperRune(r[0])
}

func isUpperRune(r rune) bool { return unicode.IsUpper(r) }

func tripleAtBoundary(left, right string) bool {
	if left == "" || right == "" {
		return false
	}
	l := []rune(left)
	r := []rune(right)
	last := l[len(l)-1]
	if len(l) >= 2 && l[len(l)-2] == last && len(r) >= 1 && r[0] == last {
		return true
	}
	if len(r) >= 2 && r[0] == r[1] && last == r[0] {
		return true
	}
	return false
}

func (d *Dictionary) compoundRepSimilar(left, right string) bool {
	for _, cand := range d.Replacements.Apply(left + right) {
		if cand == left+right {
			continue
		}
		if _, ok := d.checkCompoundOrAffix(cand); ok {
			return true
		}
	}
	return false
}

func countVowels(s, vowels string) int {
	if vowels == "" {
		vowels = "aeiouAEIOU"
	}
	set := make(map[rune]bool, len(vowels))
	for _, r := range vowels {
		set[r] = true
	}
	n := 0
	for _, r := range s {
		if set[r] {
			n++
		}
	}
	return n
}

// acceptCompoundSequence applies the whole-sequence checks that need every
// part: CompoundMaxWordCount (augmented by compound_root_flag occurrences)
// and, when rule-based compounding is active, the simplified-regex match
// against the flag-set sequence (spec §4.6 part B, §4.7).
func (d *Dictionary) acceptCompoundSequence(parts []compoundPart) bool {
	if d.CompoundMaxWordCount > 0 {
		n := len(parts)
		if d.CompoundRootFlag != NoFlag {
			for _, p := range parts {
				if p.flags.Contains(d.CompoundRootFlag) {
					n++
				}
			}
		}
		if n > d.CompoundMaxWordCount {
			return false
		}
	}
	if !d.CompoundRules.Empty() {
		seq := make([]FlagSet, len(parts))
		for i, p := range parts {
			seq[i] = p.flags
		}
		return d.CompoundRules.MatchAny(seq)
	}
	return true
}
