package parse

import (
	"strings"
	"testing"
)

const testAff = `SET UTF-8
TRY esianrtolcdugmphbyfvkwzESIANRTOLCDUGMPHBYFVKWZ'
REP 1
REP teh the
PFX A Y 1
PFX A 0 re .
SFX B Y 1
SFX B 0 s .
COMPOUNDMIN 3
COMPOUNDFLAG C
`

const testDic = `4
work/AC
play/BC
house
car/C
`

func TestLoadFromStreamsBasicSpell(t *testing.T) {
	dict, err := LoadFromStreams(strings.NewReader(testAff), strings.NewReader(testDic))
	if err != nil {
		t.Fatalf("LoadFromStreams: %v", err)
	}

	tests := []struct {
		word string
		want bool
	}{
		{"work", true},
		{"rework", true},  // PFX A
		{"plays", true},   // SFX B
		{"house", true},   // no affix, direct stem
		{"zzzz", false},   // not in the dictionary
		{"carwork", true}, // car (compound-flagged via C) + work (compound-flagged via C)
	}
	for _, tt := range tests {
		if got := dict.Spell(tt.word); got != tt.want {
			t.Errorf("Spell(%q) = %v, want %v", tt.word, got, tt.want)
		}
	}
}

func TestLoadFromStreamsReplacementTable(t *testing.T) {
	dict, err := LoadFromStreams(strings.NewReader(testAff), strings.NewReader(testDic))
	if err != nil {
		t.Fatalf("LoadFromStreams: %v", err)
	}
	if len(dict.Replacements.Any) != 1 {
		t.Fatalf("Replacements.Any = %v, want 1 entry", dict.Replacements.Any)
	}
	if dict.Replacements.Any[0].Pattern != "teh" || dict.Replacements.Any[0].Out != "the" {
		t.Errorf("Replacements.Any[0] = %+v, want teh->the", dict.Replacements.Any[0])
	}
}

func TestLoadFromStreamsRejectsUnsupportedEncoding(t *testing.T) {
	aff := "SET ISO8859-1\n"
	_, err := LoadFromStreams(strings.NewReader(aff), strings.NewReader(testDic))
	if err == nil {
		t.Fatal("LoadFromStreams with SET ISO8859-1 = nil error, want ErrUnsupportedEncoding")
	}
}

func TestLoadFromPathMissingFile(t *testing.T) {
	_, err := LoadFromPath("/nonexistent/path/to/dictionary")
	if err == nil {
		t.Fatal("LoadFromPath on missing files = nil error, want load error")
	}
}
