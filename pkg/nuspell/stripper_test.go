package nuspell

import "testing"

// mustCond compiles a condition pattern, failing the test on error.
func mustCond(t *testing.T, pattern string) *Condition {
	t.Helper()
	c, err := CompileCondition(pattern)
	if err != nil {
		t.Fatalf("CompileCondition(%q): %v", pattern, err)
	}
	return c
}

// baseDict builds a Dictionary with a "kind" stem carrying flags A (prefix
// "un") and B (suffix "ness"), wired for the chained-affix tests below.
func baseDict(t *testing.T, prefix, suffix *AffixEntry) *Dictionary {
	t.Helper()
	words := NewWordDict()
	words.Insert("kind", NewFlagSet(Flag('A'), Flag('B')))

	var prefixes, suffixes []*AffixEntry
	if prefix != nil {
		prefixes = append(prefixes, prefix)
	}
	if suffix != nil {
		suffixes = append(suffixes, suffix)
	}
	return &Dictionary{
		Words:    words,
		Prefixes: NewAffixIndex(prefixes, false),
		Suffixes: NewAffixIndex(suffixes, true),
	}
}

func TestTryPrefixThenSuffixMatches(t *testing.T) {
	prefix := &AffixEntry{
		Kind: Prefix, Flag: Flag('A'), CrossProduct: true,
		Appending: "un", Condition: mustCond(t, "."),
	}
	suffix := &AffixEntry{
		Kind: Suffix, Flag: Flag('B'), CrossProduct: true,
		Appending: "ness", Condition: mustCond(t, "."),
	}
	d := baseDict(t, prefix, suffix)

	r := d.tryPrefixThenSuffix("unkindness", FullWord)
	if !r.Found || r.Entry.Stem != "kind" {
		t.Fatalf("tryPrefixThenSuffix(unkindness) = %+v, want match on stem kind", r)
	}
	if r.Prefix != prefix || r.Suffix != suffix {
		t.Errorf("tryPrefixThenSuffix did not record both consumed affixes: %+v", r)
	}
}

func TestTrySuffixThenPrefixMatches(t *testing.T) {
	prefix := &AffixEntry{
		Kind: Prefix, Flag: Flag('A'), CrossProduct: true,
		Appending: "un", Condition: mustCond(t, "."),
	}
	suffix := &AffixEntry{
		Kind: Suffix, Flag: Flag('B'), CrossProduct: true,
		Appending: "ness", Condition: mustCond(t, "."),
	}
	d := baseDict(t, prefix, suffix)

	r := d.trySuffixThenPrefix("unkindness", FullWord)
	if !r.Found || r.Entry.Stem != "kind" {
		t.Fatalf("trySuffixThenPrefix(unkindness) = %+v, want match on stem kind", r)
	}
}

// TestChainedAffixRespectsNeedAffixFlag verifies that a NEEDAFFIX-flagged
// affix is rejected in every multi-affix chain, not only the single-affix
// patterns (outer validity must hold for every affix attempted).
func TestChainedAffixRespectsNeedAffixFlag(t *testing.T) {
	prefix := &AffixEntry{
		Kind: Prefix, Flag: Flag('A'), CrossProduct: true,
		Appending: "un", Condition: mustCond(t, "."),
		NeedAffixFlag: true,
	}
	suffix := &AffixEntry{
		Kind: Suffix, Flag: Flag('B'), CrossProduct: true,
		Appending: "ness", Condition: mustCond(t, "."),
	}
	d := baseDict(t, prefix, suffix)

	if r := d.tryPrefixThenSuffix("unkindness", FullWord); r.Found {
		t.Errorf("tryPrefixThenSuffix matched despite prefix carrying NeedAffixFlag: %+v", r)
	}
	if r := d.trySuffixThenPrefix("unkindness", FullWord); r.Found {
		t.Errorf("trySuffixThenPrefix matched despite prefix carrying NeedAffixFlag: %+v", r)
	}
}

// TestChainedAffixRespectsCompoundOnlyIn verifies that compound-position
// gating applies to every affix in a chain, in FullWord mode as well as
// compound modes.
func TestChainedAffixRespectsCompoundOnlyIn(t *testing.T) {
	prefix := &AffixEntry{
		Kind: Prefix, Flag: Flag('A'), CrossProduct: true,
		Appending: "un", Condition: mustCond(t, "."),
		CompoundOnlyInFlag: true,
	}
	suffix := &AffixEntry{
		Kind: Suffix, Flag: Flag('B'), CrossProduct: true,
		Appending: "ness", Condition: mustCond(t, "."),
	}
	d := baseDict(t, prefix, suffix)

	if r := d.tryPrefixThenSuffix("unkindness", FullWord); r.Found {
		t.Errorf("tryPrefixThenSuffix matched a compound-only-in prefix at FullWord: %+v", r)
	}
	if r := d.tryPrefixThenSuffix("unkindness", AtCompoundBegin); !r.Found {
		t.Errorf("tryPrefixThenSuffix rejected a compound-only-in prefix at AtCompoundBegin")
	}
}

// TestChainedCrossKindCircumfixMustAgree verifies the circumfix rule (spec
// §4.5) for the cross-kind chains (prefix+suffix), not just same-kind
// chains: a lone circumfix partner fails, matched circumfix flags succeed.
func TestChainedCrossKindCircumfixMustAgree(t *testing.T) {
	circumfixPrefix := &AffixEntry{
		Kind: Prefix, Flag: Flag('A'), CrossProduct: true,
		Appending: "un", Condition: mustCond(t, "."),
		CircumfixFlag: true,
	}
	plainSuffix := &AffixEntry{
		Kind: Suffix, Flag: Flag('B'), CrossProduct: true,
		Appending: "ness", Condition: mustCond(t, "."),
	}
	d := baseDict(t, circumfixPrefix, plainSuffix)
	if r := d.tryPrefixThenSuffix("unkindness", FullWord); r.Found {
		t.Errorf("tryPrefixThenSuffix matched with mismatched circumfix flags: %+v", r)
	}

	circumfixSuffix := &AffixEntry{
		Kind: Suffix, Flag: Flag('B'), CrossProduct: true,
		Appending: "ness", Condition: mustCond(t, "."),
		CircumfixFlag: true,
	}
	d2 := baseDict(t, circumfixPrefix, circumfixSuffix)
	if r := d2.tryPrefixThenSuffix("unkindness", FullWord); !r.Found {
		t.Errorf("tryPrefixThenSuffix rejected a matched circumfix pair")
	}
}

// TestTrySuffixThenSuffixChains covers pattern "sfx+sfx": the outer suffix's
// flag must appear in the inner suffix's continuation set.
func TestTrySuffixThenSuffixChains(t *testing.T) {
	words := NewWordDict()
	words.Insert("act", NewFlagSet(Flag('I')))

	inner := &AffixEntry{
		Kind: Suffix, Flag: Flag('I'), Appending: "ive",
		Condition: mustCond(t, "."), ContinuationFlags: NewFlagSet(Flag('L')),
	}
	outer := &AffixEntry{
		Kind: Suffix, Flag: Flag('L'), Appending: "ly",
		Condition: mustCond(t, "."),
	}
	d := &Dictionary{
		Words:    words,
		Prefixes: NewAffixIndex(nil, false),
		Suffixes: NewAffixIndex([]*AffixEntry{inner, outer}, true),
	}

	r := d.trySuffixThenSuffix("actively", FullWord)
	if !r.Found || r.Entry.Stem != "act" {
		t.Fatalf("trySuffixThenSuffix(actively) = %+v, want match on stem act", r)
	}
	if r.Suffix != outer || r.Suffix2 != inner {
		t.Errorf("trySuffixThenSuffix did not record outer/inner suffixes: %+v", r)
	}
}

// TestTrySuffixThenSuffixRejectsWithoutContinuation verifies the outer
// suffix is rejected when its flag is absent from the inner suffix's
// continuation set.
func TestTrySuffixThenSuffixRejectsWithoutContinuation(t *testing.T) {
	words := NewWordDict()
	words.Insert("act", NewFlagSet(Flag('I')))

	inner := &AffixEntry{
		Kind: Suffix, Flag: Flag('I'), Appending: "ive",
		Condition: mustCond(t, "."),
	}
	outer := &AffixEntry{
		Kind: Suffix, Flag: Flag('L'), Appending: "ly",
		Condition: mustCond(t, "."),
	}
	d := &Dictionary{
		Words:    words,
		Prefixes: NewAffixIndex(nil, false),
		Suffixes: NewAffixIndex([]*AffixEntry{inner, outer}, true),
	}

	if r := d.trySuffixThenSuffix("actively", FullWord); r.Found {
		t.Errorf("trySuffixThenSuffix matched despite missing continuation flag: %+v", r)
	}
}
