package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bsiegert/nuspell/pkg/nuspell"
)

func buildTestDictionary() *nuspell.Dictionary {
	words := nuspell.NewWordDict()
	words.Insert("work", nuspell.NewFlagSet(nuspell.Flag('A')))
	words.Insert("house", nuspell.FlagSet{})

	cond, _ := nuspell.CompileCondition("")
	prefix := &nuspell.AffixEntry{
		Kind:             nuspell.Prefix,
		Flag:             nuspell.Flag('A'),
		CrossProduct:     true,
		Appending:        "re",
		Condition:        cond,
		ConditionPattern: "",
	}
	return &nuspell.Dictionary{
		Words:    words,
		Prefixes: nuspell.NewAffixIndex([]*nuspell.AffixEntry{prefix}, false),
		Suffixes: nuspell.NewAffixIndex(nil, true),
	}
}

func TestBuildAndApplySnapshotRoundTrip(t *testing.T) {
	dict := buildTestDictionary()
	snap := BuildSnapshot("testkey", dict)

	if len(snap.Words) != 2 {
		t.Fatalf("snapshot has %d words, want 2", len(snap.Words))
	}
	if len(snap.Prefixes) != 1 {
		t.Fatalf("snapshot has %d prefixes, want 1", len(snap.Prefixes))
	}

	fresh := &nuspell.Dictionary{}
	if err := Apply(fresh, snap); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if fresh.Words.Size() != 2 {
		t.Errorf("applied dictionary has %d words, want 2", fresh.Words.Size())
	}
	entries := fresh.Words.EqualRange("work")
	if len(entries) != 1 || !entries[0].Flags.Contains(nuspell.Flag('A')) {
		t.Errorf("EqualRange(work) = %+v, want one entry with flag A", entries)
	}

	var foundPrefix bool
	fresh.Prefixes.IteratePrefixes("rework", func(e *nuspell.AffixEntry) bool {
		if e.Appending == "re" {
			foundPrefix = true
		}
		return true
	})
	if !foundPrefix {
		t.Error("rebuilt Prefixes index does not contain the 're' prefix rule")
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	dict := buildTestDictionary()
	snap := BuildSnapshot("somekey", dict)

	dir := t.TempDir()
	path := filepath.Join(dir, "test.nscache")
	if err := Save(path, snap); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, ok, err := Load(path, "somekey")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !ok {
		t.Fatal("Load reported a cache miss for a freshly written snapshot")
	}
	if len(loaded.Words) != len(snap.Words) {
		t.Errorf("loaded %d words, want %d", len(loaded.Words), len(snap.Words))
	}
}

func TestLoadMissesOnKeyMismatch(t *testing.T) {
	dict := buildTestDictionary()
	snap := BuildSnapshot("keyA", dict)

	dir := t.TempDir()
	path := filepath.Join(dir, "test.nscache")
	if err := Save(path, snap); err != nil {
		t.Fatalf("Save: %v", err)
	}

	_, ok, err := Load(path, "keyB")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ok {
		t.Error("Load reported a hit despite a mismatched source key")
	}
}

func TestLoadMissesOnMissingFile(t *testing.T) {
	dir := t.TempDir()
	_, ok, err := Load(filepath.Join(dir, "nonexistent.nscache"), "k")
	if err != nil {
		t.Fatalf("Load on missing file returned error: %v", err)
	}
	if ok {
		t.Error("Load reported a hit for a nonexistent file")
	}
}

func TestKeyForChangesWithFileContent(t *testing.T) {
	dir := t.TempDir()
	affPath := filepath.Join(dir, "d.aff")
	dicPath := filepath.Join(dir, "d.dic")
	if err := os.WriteFile(affPath, []byte("SET UTF-8\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dicPath, []byte("1\nwork\n"), 0644); err != nil {
		t.Fatal(err)
	}

	key1, err := KeyFor(affPath, dicPath)
	if err != nil {
		t.Fatalf("KeyFor: %v", err)
	}

	if err := os.WriteFile(dicPath, []byte("2\nwork\nhouse\n"), 0644); err != nil {
		t.Fatal(err)
	}
	key2, err := KeyFor(affPath, dicPath)
	if err != nil {
		t.Fatalf("KeyFor: %v", err)
	}
	if key1 == key2 {
		t.Error("KeyFor returned the same key after the dic file changed size")
	}
}
