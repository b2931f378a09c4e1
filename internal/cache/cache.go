// Package cache stores a compiled Dictionary's word list and affix rules as
// a msgpack-encoded snapshot, so a repeat load against an unchanged .aff/.dic
// pair can skip re-parsing the word list (spec §6 Construction), which is
// normally by far the largest input file. Modeled on the teacher's
// dict_*.bin chunk cache (pkg/dictionary/loader.go): a flat, versioned
// on-disk record keyed off the source files' size and modification time,
// rebuilt from scratch whenever either changes.
package cache

import (
	"fmt"
	"os"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/bsiegert/nuspell/internal/logger"
	"github.com/bsiegert/nuspell/pkg/nuspell"
)

var log = logger.Default("cache")

// schemaVersion guards against loading a snapshot written by an
// incompatible build; bump whenever WordRecord/AffixRecord's shape changes.
const schemaVersion = 1

// WordRecord is one (stem, flags) pair from the word list.
type WordRecord struct {
	Stem  string   `msgpack:"s"`
	Flags []uint16 `msgpack:"f"`
}

// AffixRecord is one PFX or SFX rule, with the Condition carried as its
// source pattern so it can be recompiled on load.
type AffixRecord struct {
	Suffix             bool     `msgpack:"x"`
	Flag               uint16   `msgpack:"fl"`
	CrossProduct       bool     `msgpack:"cp"`
	Stripping          string   `msgpack:"st"`
	Appending          string   `msgpack:"ap"`
	ContinuationFlags  []uint16 `msgpack:"cf"`
	ConditionPattern   string   `msgpack:"co"`
	NeedAffixFlag      bool     `msgpack:"na"`
	CircumfixFlag      bool     `msgpack:"ci"`
	CompoundPermitFlag bool     `msgpack:"pp"`
	CompoundOnlyInFlag bool     `msgpack:"oi"`
}

// Snapshot is the on-disk cache record for one compiled dictionary's word
// list and affix rules.
type Snapshot struct {
	SchemaVersion int           `msgpack:"v"`
	SourceKey     string        `msgpack:"k"`
	Words         []WordRecord  `msgpack:"w"`
	Prefixes      []AffixRecord `msgpack:"p"`
	Suffixes      []AffixRecord `msgpack:"x"`
}

// KeyFor builds a cache key from the size and modification time of the two
// source files. Any change to either file invalidates the cache.
func KeyFor(affPath, dicPath string) (string, error) {
	affInfo, err := os.Stat(affPath)
	if err != nil {
		return "", err
	}
	dicInfo, err := os.Stat(dicPath)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:%d:%d|%s:%d:%d",
		affPath, affInfo.Size(), affInfo.ModTime().UnixNano(),
		dicPath, dicInfo.Size(), dicInfo.ModTime().UnixNano()), nil
}

// BuildSnapshot flattens a Dictionary's word list and affix rules into a
// Snapshot ready for encoding.
func BuildSnapshot(key string, dict *nuspell.Dictionary) *Snapshot {
	snap := &Snapshot{SchemaVersion: schemaVersion, SourceKey: key}

	dict.Words.Walk(func(stem string, entries []*nuspell.DictEntry) bool {
		for _, e := range entries {
			snap.Words = append(snap.Words, WordRecord{
				Stem:  e.Stem,
				Flags: flagsToUint16(e.Flags),
			})
		}
		return true
	})

	for _, e := range dict.Prefixes.All() {
		snap.Prefixes = append(snap.Prefixes, affixToRecord(e))
	}
	for _, e := range dict.Suffixes.All() {
		snap.Suffixes = append(snap.Suffixes, affixToRecord(e))
	}
	return snap
}

// Apply rebuilds dict.Words, dict.Prefixes and dict.Suffixes from the
// snapshot, replacing whatever those fields held before.
func Apply(dict *nuspell.Dictionary, snap *Snapshot) error {
	words := nuspell.NewWordDict()
	for _, wr := range snap.Words {
		words.Insert(wr.Stem, nuspell.NewFlagSet(uint16ToFlags(wr.Flags)...))
	}

	prefixes := make([]*nuspell.AffixEntry, 0, len(snap.Prefixes))
	for _, ar := range snap.Prefixes {
		e, err := recordToAffix(ar)
		if err != nil {
			return err
		}
		prefixes = append(prefixes, e)
	}
	suffixes := make([]*nuspell.AffixEntry, 0, len(snap.Suffixes))
	for _, ar := range snap.Suffixes {
		e, err := recordToAffix(ar)
		if err != nil {
			return err
		}
		suffixes = append(suffixes, e)
	}

	dict.Words = words
	dict.Prefixes = nuspell.NewAffixIndex(prefixes, false)
	dict.Suffixes = nuspell.NewAffixIndex(suffixes, true)
	return nil
}

// Load reads and decodes a snapshot from path. A missing file or a schema
// mismatch is reported as a cache miss (ok == false), not an error.
func Load(path, wantKey string) (snap *Snapshot, ok bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	snap = &Snapshot{}
	if err := msgpack.Unmarshal(data, snap); err != nil {
		log.Warnf("cache file %s is corrupt, ignoring: %v", path, err)
		return nil, false, nil
	}
	if snap.SchemaVersion != schemaVersion || snap.SourceKey != wantKey {
		log.Debugf("cache miss at %s: schema/key mismatch", path)
		return nil, false, nil
	}
	return snap, true, nil
}

// Save encodes a snapshot and writes it to path, creating or truncating the
// file.
func Save(path string, snap *Snapshot) error {
	data, err := msgpack.Marshal(snap)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}
	log.Debugf("wrote cache snapshot to %s: %d words, %d prefixes, %d suffixes",
		path, len(snap.Words), len(snap.Prefixes), len(snap.Suffixes))
	return nil
}

func flagsToUint16(fs nuspell.FlagSet) []uint16 {
	flags := fs.Slice()
	out := make([]uint16, len(flags))
	for i, f := range flags {
		out[i] = uint16(f)
	}
	return out
}

func uint16ToFlags(vals []uint16) []nuspell.Flag {
	out := make([]nuspell.Flag, len(vals))
	for i, v := range vals {
		out[i] = nuspell.Flag(v)
	}
	return out
}

func affixToRecord(e *nuspell.AffixEntry) AffixRecord {
	return AffixRecord{
		Suffix:             e.Kind == nuspell.Suffix,
		Flag:               uint16(e.Flag),
		CrossProduct:       e.CrossProduct,
		Stripping:          e.Stripping,
		Appending:          e.Appending,
		ContinuationFlags:  flagsToUint16(e.ContinuationFlags),
		ConditionPattern:   e.ConditionPattern,
		NeedAffixFlag:      e.NeedAffixFlag,
		CircumfixFlag:      e.CircumfixFlag,
		CompoundPermitFlag: e.CompoundPermitFlag,
		CompoundOnlyInFlag: e.CompoundOnlyInFlag,
	}
}

func recordToAffix(ar AffixRecord) (*nuspell.AffixEntry, error) {
	cond, err := nuspell.CompileCondition(ar.ConditionPattern)
	if err != nil {
		return nil, fmt.Errorf("%w: recompiling cached condition %q: %v", nuspell.ErrBadCondition, ar.ConditionPattern, err)
	}
	kind := nuspell.Prefix
	if ar.Suffix {
		kind = nuspell.Suffix
	}
	return &nuspell.AffixEntry{
		Kind:               kind,
		Flag:               nuspell.Flag(ar.Flag),
		CrossProduct:       ar.CrossProduct,
		Stripping:          ar.Stripping,
		Appending:          ar.Appending,
		ContinuationFlags:  nuspell.NewFlagSet(uint16ToFlags(ar.ContinuationFlags)...),
		Condition:          cond,
		ConditionPattern:   ar.ConditionPattern,
		NeedAffixFlag:      ar.NeedAffixFlag,
		CircumfixFlag:      ar.CircumfixFlag,
		CompoundPermitFlag: ar.CompoundPermitFlag,
		CompoundOnlyInFlag: ar.CompoundOnlyInFlag,
	}, nil
}
