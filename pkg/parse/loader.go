package parse

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bsiegert/nuspell/internal/cache"
	"github.com/bsiegert/nuspell/internal/logger"
	"github.com/bsiegert/nuspell/pkg/nuspell"
)

var log = logger.Default("parse")

// LoadFromPath loads an affix/word-list pair given a base path without
// extension, appending ".aff" and ".dic" (spec §6).
func LoadFromPath(basePath string) (*nuspell.Dictionary, error) {
	affFile, err := os.Open(basePath + ".aff")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", nuspell.ErrMalformedAffix, err)
	}
	defer affFile.Close()

	dicFile, err := os.Open(basePath + ".dic")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", nuspell.ErrMalformedDic, err)
	}
	defer dicFile.Close()

	return LoadFromStreams(affFile, dicFile)
}

// LoadFromPathCached behaves like LoadFromPath, but keeps a msgpack snapshot
// of the word list and affix rules under cacheDir (internal/cache), keyed by
// the size and modification time of both source files. A hit skips
// re-parsing the word list, which for a real dictionary dwarfs the affix
// file in size; a miss parses normally and writes a fresh snapshot.
func LoadFromPathCached(basePath, cacheDir string) (*nuspell.Dictionary, error) {
	affPath, dicPath := basePath+".aff", basePath+".dic"

	affFile, err := os.Open(affPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", nuspell.ErrMalformedAffix, err)
	}
	defer affFile.Close()

	ar, err := parseAff(affFile)
	if err != nil {
		return nil, err
	}

	key, keyErr := cache.KeyFor(affPath, dicPath)
	cachePath := filepath.Join(cacheDir, filepath.Base(basePath)+".nscache")

	if keyErr == nil {
		if snap, ok, loadErr := cache.Load(cachePath, key); loadErr == nil && ok {
			if err := cache.Apply(ar.dict, snap); err == nil {
				log.Debugf("loaded dictionary from cache %s: %d words, %d prefix rules, %d suffix rules",
					cachePath, ar.dict.Words.Size(), len(snap.Prefixes), len(snap.Suffixes))
				return ar.dict, nil
			}
			log.Warnf("cache snapshot %s failed to apply, reparsing: %v", cachePath, err)
		} else if loadErr != nil {
			log.Warnf("cache read at %s failed, reparsing: %v", cachePath, loadErr)
		}
	}

	dicFile, err := os.Open(dicPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", nuspell.ErrMalformedDic, err)
	}
	defer dicFile.Close()

	words, err := parseDic(dicFile, ar.mode, ar.flagAliases)
	if err != nil {
		return nil, err
	}
	ar.dict.Words = words
	ar.dict.Prefixes = nuspell.NewAffixIndex(ar.prefixes, false)
	ar.dict.Suffixes = nuspell.NewAffixIndex(ar.suffixes, true)

	if keyErr == nil {
		snap := cache.BuildSnapshot(key, ar.dict)
		if err := cache.Save(cachePath, snap); err != nil {
			log.Warnf("failed to write cache snapshot to %s: %v", cachePath, err)
		}
	}

	log.Debugf("loaded dictionary: %d stems, %d prefix rules, %d suffix rules",
		words.Size(), len(ar.prefixes), len(ar.suffixes))
	return ar.dict, nil
}

// LoadFromStreams loads an affix/word-list pair from in-memory readers
// (spec §6). Malformed input returns a load error and no Dictionary.
func LoadFromStreams(aff, dic io.Reader) (*nuspell.Dictionary, error) {
	ar, err := parseAff(aff)
	if err != nil {
		return nil, err
	}

	words, err := parseDic(dic, ar.mode, ar.flagAliases)
	if err != nil {
		return nil, err
	}

	ar.dict.Words = words
	ar.dict.Prefixes = nuspell.NewAffixIndex(ar.prefixes, false)
	ar.dict.Suffixes = nuspell.NewAffixIndex(ar.suffixes, true)

	log.Debugf("loaded dictionary: %d stems, %d prefix rules, %d suffix rules",
		words.Size(), len(ar.prefixes), len(ar.suffixes))
	return ar.dict, nil
}
