package parse

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bsiegert/nuspell/pkg/nuspell"
)

// parseDic reads a word-list file into a WordDict. The conventional first
// line (an approximate entry count) is skipped when present; morphological
// fields after the stem/flags token are accepted and ignored, per spec §6.
func parseDic(r io.Reader, mode flagMode, aliases map[int]nuspell.FlagSet) (*nuspell.WordDict, error) {
	wd := nuspell.NewWordDict()
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	first := true
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if first {
			first = false
			if _, err := strconv.Atoi(line); err == nil {
				continue
			}
		}
		stem, flags := parseDicLine(line, mode, aliases)
		if stem == "" {
			continue
		}
		wd.Insert(stem, flags)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", nuspell.ErrMalformedDic, err)
	}
	return wd, nil
}

// parseDicLine splits one "stem/flags morphological..." row. The flags
// token after '/' is an AF-table alias index when an alias table was
// declared and the token parses as one of its indices, else a literal
// flag string decoded per mode.
func parseDicLine(line string, mode flagMode, aliases map[int]nuspell.FlagSet) (string, nuspell.FlagSet) {
	head := strings.Fields(line)[0]
	stem := head
	var flags nuspell.FlagSet
	if idx := strings.IndexByte(head, '/'); idx >= 0 {
		stem = head[:idx]
		flags = resolveFlags(head[idx+1:], mode, aliases)
	}
	return stem, flags
}

func resolveFlags(flagPart string, mode flagMode, aliases map[int]nuspell.FlagSet) nuspell.FlagSet {
	if len(aliases) > 0 {
		if n, err := strconv.Atoi(strings.TrimSpace(flagPart)); err == nil {
			if fs, ok := aliases[n]; ok {
				return fs
			}
		}
	}
	return nuspell.NewFlagSet(parseFlags(flagPart, mode)...)
}
