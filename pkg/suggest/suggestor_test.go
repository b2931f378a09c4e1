package suggest

import (
	"testing"

	"github.com/bsiegert/nuspell/pkg/nuspell"
)

// newTestDictionary builds a tiny in-memory dictionary directly against the
// pkg/nuspell types, standing in for pkg/parse's affix/dic file loader.
func newTestDictionary(words ...string) *nuspell.Dictionary {
	wd := nuspell.NewWordDict()
	for _, w := range words {
		wd.Insert(w, nuspell.FlagSet{})
	}
	return &nuspell.Dictionary{
		Words:    wd,
		Prefixes: nuspell.NewAffixIndex(nil, false),
		Suffixes: nuspell.NewAffixIndex(nil, true),
		TryChars: "abcdefghijklmnopqrstuvwxyz",
	}
}

func TestSuggestAdjacentSwapFindsCorrection(t *testing.T) {
	dict := newTestDictionary("hello", "world")
	sug := New(dict, DefaultOptions())

	got := sug.Suggest("ehllo")
	found := false
	for _, cand := range got {
		if cand == "hello" {
			found = true
		}
	}
	if !found {
		t.Fatalf("Suggest(%q) = %v, want to contain %q", "ehllo", got, "hello")
	}
}

func TestSuggestExtraCharRemoval(t *testing.T) {
	dict := newTestDictionary("cat")
	sug := New(dict, DefaultOptions())

	got := sug.Suggest("caat")
	found := false
	for _, cand := range got {
		if cand == "cat" {
			found = true
		}
	}
	if !found {
		t.Fatalf("Suggest(%q) = %v, want to contain %q", "caat", got, "cat")
	}
}

func TestSuggestNoDuplicates(t *testing.T) {
	dict := newTestDictionary("aa", "ab", "ba")
	sug := New(dict, DefaultOptions())

	got := sug.Suggest("aba")
	seen := map[string]bool{}
	for _, cand := range got {
		if seen[cand] {
			t.Fatalf("Suggest(%q) returned duplicate candidate %q in %v", "aba", cand, got)
		}
		seen[cand] = true
	}
}

func TestSuggestEveryResultSpells(t *testing.T) {
	dict := newTestDictionary("trust", "rust", "trusty")
	sug := New(dict, DefaultOptions())

	for _, cand := range sug.Suggest("trsut") {
		if !dict.Spell(cand) {
			t.Errorf("Suggest returned %q, which does not pass Spell", cand)
		}
	}
}

func TestSuggestEmptyDictionaryReturnsNoCandidates(t *testing.T) {
	dict := newTestDictionary()
	sug := New(dict, DefaultOptions())

	got := sug.Suggest("anything")
	if len(got) != 0 {
		t.Fatalf("Suggest on empty dictionary = %v, want empty", got)
	}
}

func TestSuggestRespectsMaxSuggestions(t *testing.T) {
	dict := newTestDictionary("cat", "bat", "rat", "hat", "mat", "sat")
	opts := DefaultOptions()
	opts.MaxSuggestions = 2

	sug := New(dict, opts)
	got := sug.Suggest("xat")
	if len(got) > 2 {
		t.Fatalf("Suggest with MaxSuggestions=2 returned %d candidates: %v", len(got), got)
	}
}

func TestNgramFallbackRespectsMaxNgramSuggestions(t *testing.T) {
	dict := newTestDictionary("completely", "different", "lexicon")
	opts := DefaultOptions()
	opts.MaxNgramSuggestions = 2

	sug := New(dict, opts)
	got := sug.Suggest("zzzzzzzzzz")
	if len(got) > 2 {
		t.Fatalf("ngram fallback returned %d candidates, want <= MaxNgramSuggestions (2): %v", len(got), got)
	}
}
