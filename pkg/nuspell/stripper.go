package nuspell

// StripResult is the outcome of an Affix Stripper attempt: either "no
// match" (Found == false) or a match referencing the stem entry and the
// affixes consumed to reach it (spec §9: "a tagged variant, not a null
// pointer").
type StripResult struct {
	Found  bool
	Entry  *DictEntry
	Prefix *AffixEntry // outermost prefix consumed, if any
	Prefix2 *AffixEntry // second (chained) prefix, if any
	Suffix *AffixEntry // outermost suffix consumed, if any
	Suffix2 *AffixEntry // second (chained) suffix, if any
}

// Flags returns the union of flags carried by the matched stem; downstream
// compound checks inspect Prefix/Suffix directly for affix-level flags.
func (r StripResult) Flags() FlagSet {
	if !r.Found {
		return FlagSet{}
	}
	return r.Entry.Flags
}

// checkWord tries every legal sequence of 0-2 prefixes and 0-2 suffixes
// (spec §4.5, patterns 1-8) to find a stem admitting word under mode.
func (d *Dictionary) checkWord(word string, mode AffixingMode) StripResult {
	if r := d.tryNoAffix(word, mode); r.Found {
		return r
	}
	if d.ComplexPrefixes {
		return d.checkWordPrefixHeavy(word, mode)
	}
	return d.checkWordSuffixHeavy(word, mode)
}

// tryNoAffix looks the word up directly in the Word Index: pattern 0,
// shared by every mode.
func (d *Dictionary) tryNoAffix(word string, mode AffixingMode) StripResult {
	for _, e := range d.Words.EqualRange(word) {
		if !d.entryUsableUnaffixed(e, mode) {
			continue
		}
		return StripResult{Found: true, Entry: e}
	}
	return StripResult{}
}

func (d *Dictionary) entryUsableUnaffixed(e *DictEntry, mode AffixingMode) bool {
	if e.Flags.Contains(HiddenHomonymFlag) {
		return false
	}
	if d.NeedAffixFlag != NoFlag && e.Flags.Contains(d.NeedAffixFlag) {
		return false
	}
	if mode != FullWord {
		return d.entryUsableAtCompoundMode(e, mode)
	}
	return true
}

func (d *Dictionary) entryUsableAtCompoundMode(e *DictEntry, mode AffixingMode) bool {
	if d.CompoundFlag != NoFlag && e.Flags.Contains(d.CompoundFlag) {
		return true
	}
	switch mode {
	case AtCompoundBegin:
		return d.CompoundBeginFlag != NoFlag && e.Flags.Contains(d.CompoundBeginFlag)
	case AtCompoundMiddle:
		return d.CompoundMiddleFlag != NoFlag && e.Flags.Contains(d.CompoundMiddleFlag)
	case AtCompoundEnd:
		return d.CompoundLastFlag != NoFlag && e.Flags.Contains(d.CompoundLastFlag)
	}
	return false
}

// checkWordSuffixHeavy tries, in order: sfx; pfx; pfx+sfx; sfx+pfx;
// sfx+sfx; pfx+pfx; and the one three-affix combination sfx+pfx+sfx. The
// three-affix forms pfx+sfx+sfx and sfx+sfx+pfx are not tried.
func (d *Dictionary) checkWordSuffixHeavy(word string, mode AffixingMode) StripResult {
	if r := d.trySuffix(word, mode); r.Found {
		return r
	}
	if r := d.tryPrefix(word, mode); r.Found {
		return r
	}
	if r := d.tryPrefixThenSuffix(word, mode); r.Found {
		return r
	}
	if r := d.trySuffixThenPrefix(word, mode); r.Found {
		return r
	}
	if r := d.trySuffixThenSuffix(word, mode); r.Found {
		return r
	}
	if r := d.tryPrefixThenPrefix(word, mode); r.Found {
		return r
	}
	if r := d.trySuffixPrefixSuffix(word, mode); r.Found {
		return r
	}
	return StripResult{}
}

// checkWordPrefixHeavy, selected when ComplexPrefixes is set (spec §4.5),
// tries the same patterns as checkWordSuffixHeavy with each prefix step
// ahead of its suffix counterpart. Its three-affix step is the same
// sfx+pfx+sfx; no prefix-heavy three-affix form is tried.
func (d *Dictionary) checkWordPrefixHeavy(word string, mode AffixingMode) StripResult {
	if r := d.tryPrefix(word, mode); r.Found {
		return r
	}
	if r := d.trySuffix(word, mode); r.Found {
		return r
	}
	if r := d.trySuffixThenPrefix(word, mode); r.Found {
		return r
	}
	if r := d.tryPrefixThenSuffix(word, mode); r.Found {
		return r
	}
	if r := d.tryPrefixThenPrefix(word, mode); r.Found {
		return r
	}
	if r := d.trySuffixThenSuffix(word, mode); r.Found {
		return r
	}
	if r := d.trySuffixPrefixSuffix(word, mode); r.Found {
		return r
	}
	return StripResult{}
}

// trySuffix tries pattern "sfx" (a single suffix, no complementary prefix).
func (d *Dictionary) trySuffix(word string, mode AffixingMode) StripResult {
	var result StripResult
	d.Suffixes.IteratePrefixes(word, func(a *AffixEntry) bool {
		stem, ok := d.applyOuterValid(a, word, mode)
		if !ok {
			return true
		}
		for _, e := range d.Words.EqualRange(stem) {
			if !d.crossCheck(e, nil, a, mode) {
				continue
			}
			result = StripResult{Found: true, Entry: e, Suffix: a}
			return false
		}
		return true
	})
	return result
}

// tryPrefix tries pattern "pfx" (a single prefix, no complementary suffix).
func (d *Dictionary) tryPrefix(word string, mode AffixingMode) StripResult {
	var result StripResult
	d.Prefixes.IteratePrefixes(word, func(a *AffixEntry) bool {
		stem, ok := d.applyOuterValid(a, word, mode)
		if !ok {
			return true
		}
		for _, e := range d.Words.EqualRange(stem) {
			if !d.crossCheck(e, nil, a, mode) {
				continue
			}
			result = StripResult{Found: true, Entry: e, Prefix: a}
			return false
		}
		return true
	})
	return result
}

// tryPrefixThenSuffix tries pattern "pfx + sfx": prefix applied first (the
// stem-facing side), suffix applied outside; both sides must allow cross
// product, or commutatively "sfx then pfx" as pattern 5.
func (d *Dictionary) tryPrefixThenSuffix(word string, mode AffixingMode) StripResult {
	var result StripResult
	d.Prefixes.IteratePrefixes(word, func(p *AffixEntry) bool {
		if !p.CrossProduct {
			return true
		}
		inner, ok := d.applyOuterValid(p, word, mode)
		if !ok {
			return true
		}
		d.Suffixes.IteratePrefixes(inner, func(s *AffixEntry) bool {
			if !s.CrossProduct {
				return true
			}
			stem, ok := d.applyOuterValid(s, inner, mode)
			if !ok {
				return true
			}
			if !d.circumfixAgree(p, s) {
				return true
			}
			for _, e := range d.Words.EqualRange(stem) {
				if !d.crossCheck(e, p, s, mode) {
					continue
				}
				result = StripResult{Found: true, Entry: e, Prefix: p, Suffix: s}
				return false
			}
			return true
		})
		return !result.Found
	})
	return result
}

// trySuffixThenPrefix tries pattern "sfx + pfx": suffix applied first,
// prefix applied outside.
func (d *Dictionary) trySuffixThenPrefix(word string, mode AffixingMode) StripResult {
	var result StripResult
	d.Suffixes.IteratePrefixes(word, func(s *AffixEntry) bool {
		if !s.CrossProduct {
			return true
		}
		inner, ok := d.applyOuterValid(s, word, mode)
		if !ok {
			return true
		}
		d.Prefixes.IteratePrefixes(inner, func(p *AffixEntry) bool {
			if !p.CrossProduct {
				return true
			}
			stem, ok := d.applyOuterValid(p, inner, mode)
			if !ok {
				return true
			}
			if !d.circumfixAgree(s, p) {
				return true
			}
			for _, e := range d.Words.EqualRange(stem) {
				if !d.crossCheck(e, p, s, mode) {
					continue
				}
				result = StripResult{Found: true, Entry: e, Prefix: p, Suffix: s}
				return false
			}
			return true
		})
		return !result.Found
	})
	return result
}

// trySuffixThenSuffix tries pattern "sfx + sfx": chained suffixes, outer's
// flag must be in the inner affix's continuation set.
func (d *Dictionary) trySuffixThenSuffix(word string, mode AffixingMode) StripResult {
	var result StripResult
	d.Suffixes.IteratePrefixes(word, func(outer *AffixEntry) bool {
		mid, ok := d.applyOuterValid(outer, word, mode)
		if !ok {
			return true
		}
		d.Suffixes.IteratePrefixes(mid, func(inner *AffixEntry) bool {
			if inner == outer {
				return true
			}
			if !inner.ContinuationFlags.Contains(outer.Flag) {
				return true
			}
			stem, ok := d.applyOuterValid(inner, mid, mode)
			if !ok {
				return true
			}
			if !d.circumfixAgree(inner, outer) {
				return true
			}
			for _, e := range d.Words.EqualRange(stem) {
				if !d.crossCheckChained(e, inner, outer, mode) {
					continue
				}
				result = StripResult{Found: true, Entry: e, Suffix: outer, Suffix2: inner}
				return false
			}
			return true
		})
		return !result.Found
	})
	return result
}

// tryPrefixThenPrefix tries pattern "pfx + pfx": chained prefixes.
func (d *Dictionary) tryPrefixThenPrefix(word string, mode AffixingMode) StripResult {
	var result StripResult
	d.Prefixes.IteratePrefixes(word, func(outer *AffixEntry) bool {
		mid, ok := d.applyOuterValid(outer, word, mode)
		if !ok {
			return true
		}
		d.Prefixes.IteratePrefixes(mid, func(inner *AffixEntry) bool {
			if inner == outer {
				return true
			}
			if !inner.ContinuationFlags.Contains(outer.Flag) {
				return true
			}
			stem, ok := d.applyOuterValid(inner, mid, mode)
			if !ok {
				return true
			}
			if !d.circumfixAgree(inner, outer) {
				return true
			}
			for _, e := range d.Words.EqualRange(stem) {
				if !d.crossCheckChained(e, inner, outer, mode) {
					continue
				}
				result = StripResult{Found: true, Entry: e, Prefix: outer, Prefix2: inner}
				return false
			}
			return true
		})
		return !result.Found
	})
	return result
}

// trySuffixPrefixSuffix tries the three-affix combinations named in spec
// §4.5 pattern 8 that are not disabled by the "slow and unused" open
// question (§9.2): sfx+pfx+sfx, and its mirror pfx+sfx+pfx is intentionally
// NOT attempted, preserving the original disablement.
func (d *Dictionary) trySuffixPrefixSuffix(word string, mode AffixingMode) StripResult {
	var result StripResult
	d.Suffixes.IteratePrefixes(word, func(outerSfx *AffixEntry) bool {
		if !outerSfx.CrossProduct {
			return true
		}
		afterOuter, ok := d.applyOuterValid(outerSfx, word, mode)
		if !ok {
			return true
		}
		d.Prefixes.IteratePrefixes(afterOuter, func(p *AffixEntry) bool {
			if !p.CrossProduct {
				return true
			}
			afterP, ok := d.applyOuterValid(p, afterOuter, mode)
			if !ok {
				return true
			}
			d.Suffixes.IteratePrefixes(afterP, func(innerSfx *AffixEntry) bool {
				if innerSfx == outerSfx {
					return true
				}
				if !innerSfx.ContinuationFlags.Contains(outerSfx.Flag) {
					return true
				}
				stem, ok := d.applyOuterValid(innerSfx, afterP, mode)
				if !ok {
					return true
				}
				if !d.circumfixAgree(innerSfx, outerSfx) {
					return true
				}
				for _, e := range d.Words.EqualRange(stem) {
					if !d.crossCheckChained(e, innerSfx, outerSfx, mode) {
						continue
					}
					if !e.Flags.Contains(p.Flag) && !innerSfx.ContinuationFlags.Contains(p.Flag) {
						continue
					}
					result = StripResult{Found: true, Entry: e, Suffix: outerSfx, Suffix2: innerSfx, Prefix: p}
					return false
				}
				return true
			})
			return !result.Found
		})
		return !result.Found
	})
	return result
}

// applyOuterValid checks outer validity (spec §4.5 step 1) and, if it
// holds, applies the affix and checks its condition (steps 2-3), returning
// the candidate stem.
func (d *Dictionary) applyOuterValid(a *AffixEntry, word string, mode AffixingMode) (string, bool) {
	if !d.affixAllowedAt(a, mode) {
		return "", false
	}
	stem, ok := a.apply(word)
	if !ok {
		return "", false
	}
	if !a.matchCondition(stem) {
		return "", false
	}
	return stem, true
}

// affixAllowedAt implements the per-affix outer-validity flag checks (spec
// §4.5 step 1): need_affix_flag is forbidden at any position, and compound
// position flags gate full-word vs compound contexts.
func (d *Dictionary) affixAllowedAt(a *AffixEntry, mode AffixingMode) bool {
	if a.NeedAffixFlag {
		return false
	}
	if mode == FullWord {
		return !a.CompoundOnlyInFlag
	}
	if a.CompoundOnlyInFlag {
		return true
	}
	if d.CompoundPermitFlag != NoFlag {
		return a.CompoundPermitFlag
	}
	return true
}

// crossCheck validates a leaf-level match against a single consumed affix:
// flag agreement, forbidden-word, hidden-homonym and need-affix rules (spec
// §4.5 step 4).
func (d *Dictionary) crossCheck(e *DictEntry, other, used *AffixEntry, mode AffixingMode) bool {
	if e.Flags.Contains(HiddenHomonymFlag) {
		return false
	}
	if !e.Flags.Contains(used.Flag) {
		return false
	}
	if d.ForbiddenWordFlag != NoFlag && e.Flags.Contains(d.ForbiddenWordFlag) {
		return false
	}
	if used.CircumfixFlag && other == nil {
		// A lone circumfix affix with no chained partner is invalid.
		return false
	}
	return true
}

// crossCheckChained validates a match reached via two chained affixes of
// the same kind: the outer's flag must be satisfiable via the stem or the
// inner affix's continuation set. Circumfix parity is not checked here;
// the callers check it with circumfixAgree.
func (d *Dictionary) crossCheckChained(e *DictEntry, inner, outer *AffixEntry, mode AffixingMode) bool {
	if e.Flags.Contains(HiddenHomonymFlag) {
		return false
	}
	if !e.Flags.Contains(inner.Flag) {
		return false
	}
	if !e.Flags.Contains(outer.Flag) && !inner.ContinuationFlags.Contains(outer.Flag) {
		return false
	}
	if d.ForbiddenWordFlag != NoFlag && e.Flags.Contains(d.ForbiddenWordFlag) {
		return false
	}
	return true
}

// circumfixAgree implements the circumfix rule (spec §4.5): when two
// affixes are chained and either carries circumfix_flag, both must.
func (d *Dictionary) circumfixAgree(inner, outer *AffixEntry) bool {
	if inner.CircumfixFlag || outer.CircumfixFlag {
		return inner.CircumfixFlag && outer.CircumfixFlag
	}
	return true
}

