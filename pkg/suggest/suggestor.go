// Package suggest implements the Suggestor (spec §4.9): it produces a
// ranked-by-discovery list of correction candidates for a misspelled word by
// running a fixed battery of perturbation strategies over a scratch copy and
// validating every candidate through the affix/compound engine in
// pkg/nuspell.
package suggest

import (
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/bsiegert/nuspell/pkg/nuspell"
)

var (
	lowerCaser = cases.Lower(language.Und)
	upperCaser = cases.Upper(language.Und)
)

// Options tunes the Suggestor independently of the dictionary's own affix
// data; pkg/config's [suggest] section fills this in, falling back to the
// dictionary's own try_chars/keyboard_closeness when the override is empty.
type Options struct {
	MaxSuggestions      int
	TryChars            string
	Keyboard            string
	EnableNgramFallback bool
	MaxNgramSuggestions int
}

// DefaultOptions mirrors the affix file's own settings: empty overrides mean
// "use whatever the dictionary declares."
func DefaultOptions() Options {
	return Options{EnableNgramFallback: true}
}

// Suggestor runs the perturbation battery against one immutable Dictionary.
type Suggestor struct {
	dict *nuspell.Dictionary
	opts Options
}

// New builds a Suggestor for dict. A zero Options falls back to the
// dictionary's own try_chars/keyboard_closeness and leaves the n-gram
// fallback off (EnableNgramFallback is false); when the fallback is on, a
// zero MaxNgramSuggestions uses the dictionary's MAXNGRAMSUGS, or 4 when
// the affix file does not set it.
func New(dict *nuspell.Dictionary, opts Options) *Suggestor {
	return &Suggestor{dict: dict, opts: opts}
}

func (s *Suggestor) tryChars() string {
	if s.opts.TryChars != "" {
		return s.opts.TryChars
	}
	return s.dict.TryChars
}

func (s *Suggestor) keyboard() string {
	if s.opts.Keyboard != "" {
		return s.opts.Keyboard
	}
	return s.dict.Keyboard
}

func (s *Suggestor) maxNgram() int {
	if s.opts.MaxNgramSuggestions > 0 {
		return s.opts.MaxNgramSuggestions
	}
	if s.dict.MaxNgramSuggestions > 0 {
		return s.dict.MaxNgramSuggestions
	}
	return 4
}

// collector appends accepted, deduplicated candidates in discovery order
// (spec §4.9: "the suggestor does not rank; ordering is the order of
// discovery").
type collector struct {
	dict *nuspell.Dictionary
	seen map[string]bool
	out  []string
}

func newCollector(dict *nuspell.Dictionary) *collector {
	return &collector{dict: dict, seen: map[string]bool{}}
}

func (c *collector) add(word string) {
	if word == "" || c.seen[word] {
		return
	}
	if !c.dict.AcceptSuggestion(word) {
		return
	}
	c.seen[word] = true
	c.out = append(c.out, word)
}

// addMultiWord accepts a space-separated candidate only when every part
// spells correctly on its own (spec §4.9 strategy 2's multi-word carve-out
// and strategy 12's two-word split).
func (c *collector) addMultiWord(word string) {
	if word == "" || c.seen[word] {
		return
	}
	parts := strings.Fields(word)
	if len(parts) < 2 {
		c.add(word)
		return
	}
	for _, p := range parts {
		if !c.dict.AcceptSuggestion(p) {
			return
		}
	}
	c.seen[word] = true
	c.out = append(c.out, word)
}

// Suggest produces correction candidates for word (spec §4.9). It never
// fails: a word for which nothing matches, or one longer than
// nuspell.MaxInputLength runes, returns an empty slice.
func (s *Suggestor) Suggest(word string) []string {
	if utf8.RuneCountInString(word) > nuspell.MaxInputLength {
		return nil
	}
	c := newCollector(s.dict)

	c.add(upperCaser.String(word))
	s.replacementTable(word, c)
	s.similarityMap(word, c)
	s.adjacentSwap(word, c)
	s.distantSwap(word, c)
	s.keyboardNeighbor(word, c)
	s.extraCharRemoval(word, c)
	s.forgottenCharInsertion(word, c)
	s.charMovement(word, c)
	s.badCharReplacement(word, c)
	s.doubledBlockSimplification(word, c)
	s.twoWordSplit(word, c)
	s.phoneticReplacement(word, c)

	if s.opts.EnableNgramFallback && len(c.out) == 0 {
		s.ngramFallback(word, c)
	}

	max := s.opts.MaxSuggestions
	if max > 0 && len(c.out) > max {
		return c.out[:max]
	}
	return c.out
}

// replacementTable is strategy 2: apply the REP table once, accepting
// multi-word results when every half spells.
func (s *Suggestor) replacementTable(word string, c *collector) {
	for _, cand := range s.dict.Replacements.Apply(word) {
		c.addMultiWord(cand)
	}
}

const maxSimilarityCandidates = 2048

// similarityMap is strategy 3: recursively substitute characters within
// their MAP-table equivalence class, bounded to avoid combinatorial blowup
// on long words with many overlapping groups.
func (s *Suggestor) similarityMap(word string, c *collector) {
	if len(s.dict.Similarity) == 0 {
		return
	}
	count := 0
	var rec func(prefix, rest string)
	rec = func(prefix, rest string) {
		if count >= maxSimilarityCandidates {
			return
		}
		if rest == "" {
			c.add(prefix)
			count++
			return
		}
		for _, group := range s.dict.Similarity {
			for _, elem := range group {
				if elem == "" || !strings.HasPrefix(rest, elem) {
					continue
				}
				for _, alt := range group {
					if alt == elem {
						continue
					}
					rec(prefix+alt, rest[len(elem):])
					if count >= maxSimilarityCandidates {
						return
					}
				}
			}
		}
		r, size := utf8.DecodeRuneInString(rest)
		rec(prefix+string(r), rest[size:])
	}
	rec("", word)
}

// adjacentSwap is strategy 4: swap every adjacent pair, plus the fixed extra
// pair swaps the original reserves for 4 and 5 letter words (positions
// (0,2) and (1,3) on a 4-letter word; additionally (0,3) on a 5-letter
// word).
func (s *Suggestor) adjacentSwap(word string, c *collector) {
	runes := []rune(word)
	n := len(runes)
	for i := 0; i+1 < n; i++ {
		c.add(swapped(runes, i, i+1))
	}
	switch n {
	case 4:
		c.add(swapped(runes, 0, 2))
		c.add(swapped(runes, 1, 3))
	case 5:
		c.add(swapped(runes, 0, 2))
		c.add(swapped(runes, 1, 3))
		c.add(swapped(runes, 0, 3))
	}
}

// distantSwap is strategy 5: every non-adjacent pair, for words of at least
// 3 letters.
func (s *Suggestor) distantSwap(word string, c *collector) {
	runes := []rune(word)
	n := len(runes)
	if n < 3 {
		return
	}
	for i := 0; i < n; i++ {
		for j := i + 2; j < n; j++ {
			c.add(swapped(runes, i, j))
		}
	}
}

func swapped(runes []rune, i, j int) string {
	out := append([]rune(nil), runes...)
	out[i], out[j] = out[j], out[i]
	return string(out)
}

// keyboardNeighbor is strategy 6: replace each position with its row
// neighbor on the configured keyboard layout (rows separated by '|'),
// trying both the neighbor's own case and the opposite case of the
// replaced position.
func (s *Suggestor) keyboardNeighbor(word string, c *collector) {
	layout := s.keyboard()
	if layout == "" {
		return
	}
	rows := strings.Split(layout, "|")
	runes := []rune(word)
	for i, r := range runes {
		for _, row := range rows {
			rowRunes := []rune(row)
			pos := indexRuneFold(rowRunes, r)
			if pos < 0 {
				continue
			}
			for _, delta := range [2]int{-1, 1} {
				np := pos + delta
				if np < 0 || np >= len(rowRunes) {
					continue
				}
				neighbor := rowRunes[np]
				c.add(replacedAt(runes, i, neighbor))
				c.add(replacedAt(runes, i, toggleCase(neighbor)))
			}
		}
	}
}

func indexRuneFold(runes []rune, r rune) int {
	lr := []rune(lowerCaser.String(string(r)))
	target := lr[0]
	for i, c := range runes {
		if []rune(lowerCaser.String(string(c)))[0] == target {
			return i
		}
	}
	return -1
}

func toggleCase(r rune) rune {
	lower := []rune(lowerCaser.String(string(r)))[0]
	if lower == r {
		return []rune(upperCaser.String(string(r)))[0]
	}
	return lower
}

func replacedAt(runes []rune, i int, r rune) string {
	out := append([]rune(nil), runes...)
	out[i] = r
	return string(out)
}

// extraCharRemoval is strategy 7: drop one character at a time.
func (s *Suggestor) extraCharRemoval(word string, c *collector) {
	runes := []rune(word)
	for i := range runes {
		out := append([]rune(nil), runes[:i]...)
		out = append(out, runes[i+1:]...)
		c.add(string(out))
	}
}

// forgottenCharInsertion is strategy 8: insert every try_chars character at
// every position, including past the end.
func (s *Suggestor) forgottenCharInsertion(word string, c *collector) {
	tryChars := s.tryChars()
	if tryChars == "" {
		return
	}
	runes := []rune(word)
	for i := 0; i <= len(runes); i++ {
		for _, ch := range tryChars {
			out := append([]rune(nil), runes[:i]...)
			out = append(out, ch)
			out = append(out, runes[i:]...)
			c.add(string(out))
		}
	}
}

// charMovement is strategy 9: rotate the character at i across the rest of
// the word, both rightward and leftward.
func (s *Suggestor) charMovement(word string, c *collector) {
	runes := []rune(word)
	n := len(runes)
	for i := 0; i < n; i++ {
		ch := runes[i]
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			out := append([]rune(nil), runes[:i]...)
			out = append(out, runes[i+1:]...)
			moved := append([]rune(nil), out[:j]...)
			moved = append(moved, ch)
			moved = append(moved, out[j:]...)
			c.add(string(moved))
		}
	}
}

// badCharReplacement is strategy 10: substitute every try_chars character
// at every position.
func (s *Suggestor) badCharReplacement(word string, c *collector) {
	tryChars := s.tryChars()
	if tryChars == "" {
		return
	}
	runes := []rune(word)
	for i := range runes {
		for _, ch := range tryChars {
			c.add(replacedAt(runes, i, ch))
		}
	}
}

// doubledBlockSimplification is strategy 11: collapse a doubled two-character
// block (ABABA -> ABA) by dropping one repetition wherever the block
// immediately repeats.
func (s *Suggestor) doubledBlockSimplification(word string, c *collector) {
	runes := []rune(word)
	for i := 0; i+3 < len(runes); i++ {
		if runes[i] == runes[i+2] && runes[i+1] == runes[i+3] {
			out := append([]rune(nil), runes[:i+2]...)
			out = append(out, runes[i+4:]...)
			c.add(string(out))
		}
	}
}

// twoWordSplit is strategy 12: split at every position, with and without an
// inserted hyphen, keeping the split only when both halves spell.
func (s *Suggestor) twoWordSplit(word string, c *collector) {
	runes := []rune(word)
	for i := 1; i < len(runes); i++ {
		left := string(runes[:i])
		right := string(runes[i:])
		if s.dict.AcceptSuggestion(left) && s.dict.AcceptSuggestion(right) {
			c.addMultiWord(left + " " + right)
			if hyphenated := left + "-" + right; !c.seen[hyphenated] {
				c.seen[hyphenated] = true
				c.out = append(c.out, hyphenated)
			}
		}
	}
}

// phoneticReplacement is strategy 13: run the phonetic table over an
// upper-cased copy and offer the lower-cased result.
func (s *Suggestor) phoneticReplacement(word string, c *collector) {
	if len(s.dict.Phonetic.Rules) == 0 {
		return
	}
	upper := upperCaser.String(word)
	replaced := s.dict.Phonetic.Apply(upper)
	c.add(lowerCaser.String(replaced))
}

type ngramCandidate struct {
	stem  string
	score int
}

// ngramFallback is the SPEC_FULL.md 14th strategy: when every perturbation
// above failed to produce a single accepted candidate, scan the whole word
// list for the stems with the most shared bigrams, offering up to the
// configured MAXNGRAMSUGS closest stems. Guarded by MaxDiff/OnlyMaxDiff so a
// dictionary tuned for nearby-only suggestions doesn't surface distant
// noise.
func (s *Suggestor) ngramFallback(word string, c *collector) {
	target := bigramSet(lowerCaser.String(word))
	if len(target) == 0 {
		return
	}
	var candidates []ngramCandidate
	s.dict.Words.Walk(func(stem string, entries []*nuspell.DictEntry) bool {
		score := bigramOverlap(target, bigramSet(lowerCaser.String(stem)))
		if score > 0 {
			candidates = append(candidates, ngramCandidate{stem: stem, score: score})
		}
		return true
	})
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	max := s.maxNgram()
	diff := s.dict.MaxDiff
	added := 0
	for _, cand := range candidates {
		if added >= max {
			return
		}
		if s.dict.OnlyMaxDiff && diff > 0 && editDistance(word, cand.stem) > diff {
			continue
		}
		c.add(cand.stem)
		added++
	}
}

func bigramSet(s string) map[string]int {
	runes := []rune(s)
	m := make(map[string]int, len(runes))
	for i := 0; i+1 < len(runes); i++ {
		m[string(runes[i:i+2])]++
	}
	return m
}

func bigramOverlap(a, b map[string]int) int {
	n := 0
	for k, av := range a {
		if bv, ok := b[k]; ok {
			if av < bv {
				n += av
			} else {
				n += bv
			}
		}
	}
	return n
}

// editDistance is a plain Levenshtein distance over runes, used only to
// gate the n-gram fallback's OnlyMaxDiff gate against MAXDIFF.
func editDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := cur[j-1] + 1
			sub := prev[j-1] + cost
			best := del
			if ins < best {
				best = ins
			}
			if sub < best {
				best = sub
			}
			cur[j] = best
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}
