package nuspell

import "testing"

// plainDict builds a Dictionary with a small word list and no affixes, for
// exercising Spell's top-level dot/abbreviation handling directly.
func plainDict(words ...string) *Dictionary {
	wd := NewWordDict()
	for _, w := range words {
		wd.Insert(w, FlagSet{})
	}
	return &Dictionary{
		Words:    wd,
		Prefixes: NewAffixIndex(nil, false),
		Suffixes: NewAffixIndex(nil, true),
	}
}

func TestSpellStripsAllTrailingDots(t *testing.T) {
	d := plainDict("etc")

	if !d.Spell("etc..") {
		t.Errorf(`Spell("etc..") = false, want true (abbreviation with two trailing dots)`)
	}
	if !d.Spell("etc.") {
		t.Errorf(`Spell("etc.") = false, want true`)
	}
	if !d.Spell("etc") {
		t.Errorf(`Spell("etc") = false, want true`)
	}
}

func TestSpellRejectsUnknownWordWithDots(t *testing.T) {
	d := plainDict("etc")

	if d.Spell("bogus...") {
		t.Errorf(`Spell("bogus...") = true, want false`)
	}
}

func TestSpellAcceptsNumeric(t *testing.T) {
	d := plainDict()

	if !d.Spell("1,234.56") {
		t.Errorf(`Spell("1,234.56") = false, want true`)
	}
	if !d.Spell("12-34") {
		t.Errorf(`Spell("12-34") = false, want true`)
	}
}
