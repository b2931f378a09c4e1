package nuspell

import (
	"strings"
	"unicode/utf8"
)

// MaxInputLength is the hard cap (spec §5) on input length, in code units,
// after encoding conversion. Longer inputs are rejected as misspelled
// without invoking the engine.
const MaxInputLength = 180

// Dictionary is the immutable, concurrency-safe result of loading an affix
// specification and a word list (spec §3 Lifecycle, §5). Construction lives
// in package parse; this type only exposes the query API (spec §6).
type Dictionary struct {
	Words    *WordDict
	Prefixes *AffixIndex
	Suffixes *AffixIndex

	Break            BreakTable
	Replacements     ReplacementTable
	InputConv        ReplacementTable
	OutputConv       ReplacementTable
	Similarity       []MapGroup
	Phonetic         PhoneticTable
	CompoundRules    CompoundRuleTable
	CompoundPatterns []CompoundPattern

	IgnoredChars string
	TryChars     string
	Keyboard     string // KEY layout, rows separated by '|'

	ComplexPrefixes bool
	CheckSharps     bool
	ForbidWarn      bool

	NeedAffixFlag     Flag
	CircumfixFlag     Flag
	ForbiddenWordFlag Flag
	WarnFlag          Flag
	NoSuggestFlag     Flag
	SubstandardFlag   Flag
	KeepCaseFlag      Flag

	CompoundFlag        Flag
	CompoundBeginFlag   Flag
	CompoundMiddleFlag  Flag
	CompoundLastFlag    Flag
	CompoundRootFlag    Flag
	CompoundForceUpFlag Flag
	CompoundPermitFlag  Flag
	CompoundOnlyInFlag  Flag

	CompoundMinLength    int
	CompoundMaxWordCount int // 0 means unbounded

	CheckCompoundTriple bool
	SimplifiedTriple    bool
	CheckCompoundCase   bool
	CheckCompoundDup    bool
	CheckCompoundRep    bool

	CompoundSyllableMax    int // 0 disables the Hungarian syllable check
	CompoundSyllableVowels string
	CompoundSyllableFlag   Flag

	MaxNgramSuggestions    int // MAXNGRAMSUGS, default 4
	MaxDiff                int // MAXDIFF; 0 when unset, which turns the OnlyMaxDiff gate off
	OnlyMaxDiff            bool
	NoSplitSuggestions     bool
	MaxCompoundSuggestions int
}

// Spell reports whether word is spelled correctly (spec §4.8).
func (d *Dictionary) Spell(word string) bool {
	if utf8.RuneCountInString(word) > MaxInputLength {
		return false
	}
	word = ReplaceSubstr(d.InputConv, word)

	abbreviation := false
	dotCount := 0
	for len(word) > 0 && word[len(word)-1] == '.' {
		abbreviation = true
		dotCount++
		word = word[:len(word)-1]
	}

	if isNumeric(word) {
		return true
	}

	word = eraseChars(word, d.IgnoredChars)

	if d.spellBreak(word, 0) {
		return true
	}
	if abbreviation {
		return d.spellBreak(word+strings.Repeat(".", dotCount), 0)
	}
	return false
}

// isNumeric accepts digit sequences optionally grouped by ',', '.', '-'
// (spec §4.8 step 3).
func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	sawDigit := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			sawDigit = true
		case r == ',' || r == '.' || r == '-':
		default:
			return false
		}
	}
	return sawDigit
}

func eraseChars(s, chars string) string {
	if chars == "" {
		return s
	}
	skip := make(map[rune]bool, len(chars))
	for _, r := range chars {
		skip[r] = true
	}
	var b []rune
	for _, r := range s {
		if !skip[r] {
			b = append(b, r)
		}
	}
	return string(b)
}

const maxBreakDepth = 9

// spellBreak classifies casing and dispatches to the matching casing
// strategy; on failure it recursively tries every break-marker split, up to
// maxBreakDepth (spec §4.8, §8 "break-pattern recursion terminates within
// depth 9").
func (d *Dictionary) spellBreak(s string, depth int) bool {
	if s == "" {
		return true
	}
	if d.checkCasingStrategy(s) {
		return true
	}
	if depth >= maxBreakDepth {
		return false
	}
	for _, rest := range d.Break.StartMatches(s) {
		if d.spellBreak(rest, depth+1) {
			return true
		}
	}
	for _, rest := range d.Break.EndMatches(s) {
		if d.spellBreak(rest, depth+1) {
			return true
		}
	}
	for _, pair := range d.Break.MiddleSplits(s) {
		if d.spellBreak(pair.Left, depth+1) && d.spellBreak(pair.Right, depth+1) {
			return true
		}
	}
	return false
}

// checkCompoundOrAffix is the shared "does this single segment spell" test
// used by every casing strategy: try the Affix Stripper at FullWord, then
// fall back to the Compound Checker.
func (d *Dictionary) checkCompoundOrAffix(word string) (StripResult, bool) {
	if r := d.checkWord(word, FullWord); r.Found && d.acceptStem(r.Entry) {
		return r, true
	}
	if d.compoundingActive() {
		if ok := d.checkCompound(word); ok {
			return StripResult{}, true
		}
	}
	return StripResult{}, false
}

// AcceptSuggestion reports whether word may be returned as a suggestion
// candidate (spec §4.9): it must pass checkCompoundOrAffix as given (the
// check the SMALL casing strategy uses, with no case folding and no
// break-pattern splitting), and its matched stem (when the match was a direct Word Index
// hit rather than a compound) must not carry nosuggest_flag or
// substandard_flag, the two suggestion-only exclusions SPEC_FULL.md adds
// alongside forbiddenword_flag/warn_flag (already enforced by acceptStem).
func (d *Dictionary) AcceptSuggestion(word string) bool {
	r, ok := d.checkCompoundOrAffix(word)
	if !ok {
		return false
	}
	if r.Found {
		if d.NoSuggestFlag != NoFlag && r.Entry.Flags.Contains(d.NoSuggestFlag) {
			return false
		}
		if d.SubstandardFlag != NoFlag && r.Entry.Flags.Contains(d.SubstandardFlag) {
			return false
		}
	}
	return true
}

func (d *Dictionary) compoundingActive() bool {
	return d.CompoundFlag != NoFlag || d.CompoundBeginFlag != NoFlag ||
		d.CompoundMiddleFlag != NoFlag || d.CompoundLastFlag != NoFlag ||
		!d.CompoundRules.Empty()
}

// acceptStem applies the forbidden/warn verdict rules (spec §4.8 tail):
// forbiddenword_flag always means misspelled; warn_flag means misspelled
// only when ForbidWarn is configured.
func (d *Dictionary) acceptStem(e *DictEntry) bool {
	if e == nil {
		return false
	}
	if d.ForbiddenWordFlag != NoFlag && e.Flags.Contains(d.ForbiddenWordFlag) {
		return false
	}
	if d.ForbidWarn && d.WarnFlag != NoFlag && e.Flags.Contains(d.WarnFlag) {
		return false
	}
	return true
}
