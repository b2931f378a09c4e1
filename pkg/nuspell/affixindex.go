package nuspell

import (
	"errors"

	"github.com/tchap/go-patricia/v2/patricia"
)

// AffixIndex enumerates affix entries whose Appending string is a prefix (or,
// for a suffix index, a reversed-prefix) of a query word, shortest first.
// Conceptually a trie over the Appending strings (spec §4.3); backed here by
// a github.com/tchap/go-patricia radix trie, the same structure the teacher
// repo uses for its word completion trie.
type AffixIndex struct {
	trie          *patricia.Trie
	zeroLength    []*AffixEntry
	continuations FlagSet
	reversed      bool
}

var errStopVisit = errors.New("nuspell: stop affix index visit")

// NewAffixIndex builds an index over entries. reversed selects the suffix
// variant: keys are stored and queried reversed, so "Appending is a suffix
// of word" becomes "reversed(Appending) is a prefix of reversed(word)".
func NewAffixIndex(entries []*AffixEntry, reversed bool) *AffixIndex {
	idx := &AffixIndex{trie: patricia.NewTrie(), reversed: reversed}
	for _, e := range entries {
		idx.insert(e)
	}
	return idx
}

func (idx *AffixIndex) insert(e *AffixEntry) {
	idx.continuations = idx.continuations.UnionWith(e.ContinuationFlags)
	key := e.Appending
	if idx.reversed {
		key = reverseString(key)
	}
	if key == "" {
		idx.zeroLength = append(idx.zeroLength, e)
		return
	}
	var list []*AffixEntry
	if item := idx.trie.Get(patricia.Prefix(key)); item != nil {
		list = item.([]*AffixEntry)
	}
	list = append(list, e)
	idx.trie.Set(patricia.Prefix(key), list)
}

// All returns every entry held by the index, in no particular order. Used by
// the compiled-dictionary cache to flatten an index back into a rule list.
func (idx *AffixIndex) All() []*AffixEntry {
	entries := append([]*AffixEntry(nil), idx.zeroLength...)
	_ = idx.trie.Visit(func(_ patricia.Prefix, item patricia.Item) error {
		entries = append(entries, item.([]*AffixEntry)...)
		return nil
	})
	return entries
}

// HasContinuationFlag reports whether any entry's ContinuationFlags contains
// f; used as a fast rejection test before attempting a deep strip.
func (idx *AffixIndex) HasContinuationFlag(f Flag) bool {
	return idx.continuations.Contains(f)
}

// IteratePrefixes calls fn for each entry whose Appending is a prefix of
// word, in non-decreasing |Appending| order (zero-length entries first).
// Iteration stops as soon as fn returns false.
func (idx *AffixIndex) IteratePrefixes(word string, fn func(*AffixEntry) bool) {
	for _, e := range idx.zeroLength {
		if !fn(e) {
			return
		}
	}
	key := word
	if idx.reversed {
		key = reverseString(key)
	}
	_ = idx.trie.VisitPrefixes(patricia.Prefix(key), func(_ patricia.Prefix, item patricia.Item) error {
		for _, e := range item.([]*AffixEntry) {
			if !fn(e) {
				return errStopVisit
			}
		}
		return nil
	})
}

func reverseString(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}
