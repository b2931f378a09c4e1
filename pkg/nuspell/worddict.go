package nuspell

import "github.com/tchap/go-patricia/v2/patricia"

// DictEntry is a single (stem, flag set) pair from the word list. Multiple
// entries may share a stem (homonyms).
type DictEntry struct {
	Stem  string
	Flags FlagSet
}

// WordDict is a hash multiset of dictionary stems keyed on the stem string,
// with stable equal-range iteration (spec §4.4). Implemented over a
// patricia trie rather than a literal hash table: insertion order within a
// bucket is preserved by appending to the per-key entry slice, giving the
// deterministic first-match iteration the spec requires without needing a
// separate chaining scheme.
type WordDict struct {
	trie *patricia.Trie
	size int
}

// NewWordDict creates an empty word index.
func NewWordDict() *WordDict {
	return &WordDict{trie: patricia.NewTrie()}
}

// Insert adds a (stem, flags) entry and returns it.
func (wd *WordDict) Insert(stem string, flags FlagSet) *DictEntry {
	entry := &DictEntry{Stem: stem, Flags: flags}
	var list []*DictEntry
	if item := wd.trie.Get(patricia.Prefix(stem)); item != nil {
		list = item.([]*DictEntry)
	}
	list = append(list, entry)
	wd.trie.Set(patricia.Prefix(stem), list)
	wd.size++
	return entry
}

// EqualRange returns all entries sharing stem, in insertion order, or nil if
// none exist.
func (wd *WordDict) EqualRange(stem string) []*DictEntry {
	item := wd.trie.Get(patricia.Prefix(stem))
	if item == nil {
		return nil
	}
	return item.([]*DictEntry)
}

// Size returns the total number of entries (including homonyms) in the
// index.
func (wd *WordDict) Size() int { return wd.size }

// Walk visits every (stem, entries) pair in the index, in trie order. Used
// by the Suggestor's n-gram fallback strategy to scan the whole word list.
func (wd *WordDict) Walk(fn func(stem string, entries []*DictEntry) bool) {
	_ = wd.trie.Visit(func(p patricia.Prefix, item patricia.Item) error {
		if !fn(string(p), item.([]*DictEntry)) {
			return errStopVisit
		}
		return nil
	})
}
