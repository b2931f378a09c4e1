// Package parse builds a nuspell.Dictionary from the textual affix (.aff)
// and word-list (.dic) file formats (spec §6 Construction).
package parse

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bsiegert/nuspell/pkg/nuspell"
)

// flagMode selects how flag tokens are decoded from affix/dic text, set by
// the affix file's own FLAG directive (default: one UTF-8 rune per flag).
type flagMode int

const (
	flagShort flagMode = iota
	flagLong
	flagNum
)

// affResult is the intermediate state accumulated while parsing the affix
// file: the Dictionary's scalar/table fields, plus the raw prefix/suffix
// rule lists the Affix Index is built from once the dic file has also been
// read.
type affResult struct {
	dict        *nuspell.Dictionary
	mode        flagMode
	prefixes    []*nuspell.AffixEntry
	suffixes    []*nuspell.AffixEntry
	flagAliases map[int]nuspell.FlagSet
}

// parseAff reads an affix specification into an affResult. Directive order
// matters for one thing only: NEEDAFFIX/CIRCUMFIX/COMPOUNDPERMITFLAG/
// ONLYINCOMPOUND must precede any PFX/SFX table that should have those
// flags resolved against it, matching the Hunspell convention of declaring
// general options before the affix tables (spec §6 grammar note).
func parseAff(r io.Reader) (*affResult, error) {
	lines, err := readLines(r, nuspell.ErrMalformedAffix)
	if err != nil {
		return nil, err
	}

	res := &affResult{dict: &nuspell.Dictionary{}, flagAliases: map[int]nuspell.FlagSet{}}

	i := 0
	for i < len(lines) {
		fields := strings.Fields(lines[i])
		if len(fields) == 0 {
			i++
			continue
		}
		kw := fields[0]
		var err error
		i, err = res.applyDirective(kw, fields, lines, i)
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

// applyDirective handles one directive starting at lines[i] (already split
// into fields) and returns the index of the next unconsumed line.
func (res *affResult) applyDirective(kw string, fields, lines []string, i int) (int, error) {
	d := res.dict
	mode := res.mode

	switch kw {
	case "FLAG":
		if len(fields) < 2 {
			return i + 1, nil
		}
		switch fields[1] {
		case "long":
			res.mode = flagLong
		case "num":
			res.mode = flagNum
		default:
			res.mode = flagShort
		}
		return i + 1, nil

	case "SET":
		if len(fields) >= 2 && !strings.EqualFold(fields[1], "UTF-8") {
			return i, fmt.Errorf("%w: SET %s", nuspell.ErrUnsupportedEncoding, fields[1])
		}
		return i + 1, nil

	case "TRY":
		if len(fields) >= 2 {
			d.TryChars = fields[1]
		}
		return i + 1, nil

	case "KEY":
		if len(fields) >= 2 {
			d.Keyboard = fields[1]
		}
		return i + 1, nil

	case "IGNORE":
		if len(fields) >= 2 {
			d.IgnoredChars = fields[1]
		}
		return i + 1, nil

	case "COMPLEXPREFIXES":
		d.ComplexPrefixes = true
		return i + 1, nil
	case "CHECKSHARPS":
		d.CheckSharps = true
		return i + 1, nil
	case "FORBIDWARN":
		d.ForbidWarn = true
		return i + 1, nil
	case "CHECKCOMPOUNDTRIPLE":
		d.CheckCompoundTriple = true
		return i + 1, nil
	case "SIMPLIFIEDTRIPLE":
		d.SimplifiedTriple = true
		return i + 1, nil
	case "CHECKCOMPOUNDCASE":
		d.CheckCompoundCase = true
		return i + 1, nil
	case "CHECKCOMPOUNDDUP":
		d.CheckCompoundDup = true
		return i + 1, nil
	case "CHECKCOMPOUNDREP":
		d.CheckCompoundRep = true
		return i + 1, nil
	case "ONLYMAXDIFF":
		d.OnlyMaxDiff = true
		return i + 1, nil
	case "NOSPLITSUGS":
		d.NoSplitSuggestions = true
		return i + 1, nil

	case "COMPOUNDMIN":
		d.CompoundMinLength = atoiField(fields, 1)
		return i + 1, nil
	case "COMPOUNDWORDMAX":
		d.CompoundMaxWordCount = atoiField(fields, 1)
		return i + 1, nil
	case "MAXNGRAMSUGS":
		d.MaxNgramSuggestions = atoiField(fields, 1)
		return i + 1, nil
	case "MAXDIFF":
		d.MaxDiff = atoiField(fields, 1)
		return i + 1, nil
	case "MAXCPDSUGS":
		d.MaxCompoundSuggestions = atoiField(fields, 1)
		return i + 1, nil
	case "COMPOUNDSYLLABLE":
		if len(fields) >= 3 {
			d.CompoundSyllableMax = atoiField(fields, 1)
			d.CompoundSyllableVowels = fields[2]
		}
		return i + 1, nil

	case "NEEDAFFIX", "PSEUDOROOT":
		d.NeedAffixFlag = firstFlag(fields, mode)
		return i + 1, nil
	case "CIRCUMFIX":
		d.CircumfixFlag = firstFlag(fields, mode)
		return i + 1, nil
	case "FORBIDDENWORD":
		d.ForbiddenWordFlag = firstFlag(fields, mode)
		return i + 1, nil
	case "WARN":
		d.WarnFlag = firstFlag(fields, mode)
		return i + 1, nil
	case "NOSUGGEST":
		d.NoSuggestFlag = firstFlag(fields, mode)
		return i + 1, nil
	case "SUBSTANDARD":
		d.SubstandardFlag = firstFlag(fields, mode)
		return i + 1, nil
	case "KEEPCASE":
		d.KeepCaseFlag = firstFlag(fields, mode)
		return i + 1, nil
	case "COMPOUNDFLAG":
		d.CompoundFlag = firstFlag(fields, mode)
		return i + 1, nil
	case "COMPOUNDBEGIN":
		d.CompoundBeginFlag = firstFlag(fields, mode)
		return i + 1, nil
	case "COMPOUNDMIDDLE":
		d.CompoundMiddleFlag = firstFlag(fields, mode)
		return i + 1, nil
	case "COMPOUNDLAST", "COMPOUNDEND":
		d.CompoundLastFlag = firstFlag(fields, mode)
		return i + 1, nil
	case "COMPOUNDROOT":
		d.CompoundRootFlag = firstFlag(fields, mode)
		return i + 1, nil
	case "COMPOUNDPERMITFLAG":
		d.CompoundPermitFlag = firstFlag(fields, mode)
		return i + 1, nil
	case "ONLYINCOMPOUND":
		d.CompoundOnlyInFlag = firstFlag(fields, mode)
		return i + 1, nil
	case "FORCEUCASE":
		d.CompoundForceUpFlag = firstFlag(fields, mode)
		return i + 1, nil
	case "SYLLABLENUM":
		d.CompoundSyllableFlag = firstFlag(fields, mode)
		return i + 1, nil

	case "BREAK":
		n := atoiField(fields, 1)
		i++
		for k := 0; k < n && i < len(lines); k++ {
			bf := strings.Fields(lines[i])
			if len(bf) >= 2 {
				classifyBreakMarker(&d.Break, bf[1])
			}
			i++
		}
		return i, nil

	case "REP":
		n := atoiField(fields, 1)
		i++
		for k := 0; k < n && i < len(lines); k++ {
			rf := strings.Fields(lines[i])
			if len(rf) >= 3 {
				addReplacement(&d.Replacements, rf[1], rf[2])
			}
			i++
		}
		return i, nil

	case "ICONV":
		n := atoiField(fields, 1)
		i++
		for k := 0; k < n && i < len(lines); k++ {
			rf := strings.Fields(lines[i])
			if len(rf) >= 3 {
				addReplacement(&d.InputConv, rf[1], rf[2])
			}
			i++
		}
		return i, nil

	case "OCONV":
		n := atoiField(fields, 1)
		i++
		for k := 0; k < n && i < len(lines); k++ {
			rf := strings.Fields(lines[i])
			if len(rf) >= 3 {
				addReplacement(&d.OutputConv, rf[1], rf[2])
			}
			i++
		}
		return i, nil

	case "MAP":
		n := atoiField(fields, 1)
		i++
		for k := 0; k < n && i < len(lines); k++ {
			mf := strings.Fields(lines[i])
			if len(mf) >= 2 {
				d.Similarity = append(d.Similarity, nuspell.MapGroup(parseMapGroup(mf[1])))
			}
			i++
		}
		return i, nil

	case "PHONE":
		n := atoiField(fields, 1)
		i++
		for k := 0; k < n && i < len(lines); k++ {
			pf := strings.Fields(lines[i])
			if len(pf) >= 3 {
				repl := pf[2]
				if repl == "_" {
					repl = ""
				}
				d.Phonetic.Rules = append(d.Phonetic.Rules, nuspell.ParsePhoneticRule(pf[1], repl))
			}
			i++
		}
		return i, nil

	case "AF":
		n := atoiField(fields, 1)
		i++
		idx := 1
		for k := 0; k < n && i < len(lines); k++ {
			af := strings.Fields(lines[i])
			if len(af) >= 2 {
				res.flagAliases[idx] = nuspell.NewFlagSet(parseFlags(af[1], mode)...)
			}
			idx++
			i++
		}
		return i, nil

	case "COMPOUNDRULE":
		n := atoiField(fields, 1)
		i++
		for k := 0; k < n && i < len(lines); k++ {
			cf := strings.Fields(lines[i])
			if len(cf) >= 2 {
				flags, ops := parseCompoundRulePattern(cf[1], mode)
				d.CompoundRules.Rules = append(d.CompoundRules.Rules, nuspell.ParseCompoundRule(flags, ops))
			}
			i++
		}
		return i, nil

	case "CHECKCOMPOUNDPATTERN":
		n := atoiField(fields, 1)
		i++
		for k := 0; k < n && i < len(lines); k++ {
			cf := strings.Fields(lines[i])
			if len(cf) >= 3 {
				d.CompoundPatterns = append(d.CompoundPatterns, parseCompoundPattern(cf, mode))
			}
			i++
		}
		return i, nil

	case "PFX", "SFX":
		if len(fields) < 4 {
			return i + 1, nil
		}
		flag := firstFlag(fields, mode)
		crossProduct := fields[2] == "Y"
		n, _ := strconv.Atoi(fields[3])
		i++
		for k := 0; k < n && i < len(lines); k++ {
			ef := strings.Fields(lines[i])
			entry, err := parseAffixEntry(kw, flag, crossProduct, ef, mode, d)
			if err != nil {
				return i, err
			}
			if entry != nil {
				if kw == "PFX" {
					res.prefixes = append(res.prefixes, entry)
				} else {
					res.suffixes = append(res.suffixes, entry)
				}
			}
			i++
		}
		return i, nil

	default:
		return i + 1, nil
	}
}

func atoiField(fields []string, idx int) int {
	if idx >= len(fields) {
		return 0
	}
	n, _ := strconv.Atoi(fields[idx])
	return n
}

func firstFlag(fields []string, mode flagMode) nuspell.Flag {
	if len(fields) < 2 {
		return nuspell.NoFlag
	}
	fs := parseFlags(fields[1], mode)
	if len(fs) == 0 {
		return nuspell.NoFlag
	}
	return fs[0]
}

// parseFlags decodes a flag token (comma list for num mode, two-rune pairs
// for long mode, one rune per flag otherwise).
func parseFlags(s string, mode flagMode) []nuspell.Flag {
	switch mode {
	case flagNum:
		var out []nuspell.Flag
		for _, part := range strings.Split(s, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			n, err := strconv.Atoi(part)
			if err != nil {
				continue
			}
			out = append(out, nuspell.Flag(n))
		}
		return out
	case flagLong:
		runes := []rune(s)
		var out []nuspell.Flag
		for i := 0; i+1 < len(runes); i += 2 {
			out = append(out, packLongFlag(runes[i], runes[i+1]))
		}
		return out
	default:
		var out []nuspell.Flag
		for _, r := range s {
			out = append(out, nuspell.Flag(r))
		}
		return out
	}
}

func packLongFlag(a, b rune) nuspell.Flag {
	return nuspell.Flag(uint16(byte(a))<<8 | uint16(byte(b)))
}

// parseCompoundRulePattern splits a COMPOUNDRULE pattern into its flag
// atoms and trailing '?'/'*' operators. In short mode every rune is its own
// atom; long/num mode require each atom to be parenthesized, since those
// flag encodings aren't self-delimiting.
func parseCompoundRulePattern(pattern string, mode flagMode) ([]nuspell.Flag, []byte) {
	var flags []nuspell.Flag
	var ops []byte
	runes := []rune(pattern)

	if mode == flagShort {
		for i := 0; i < len(runes); i++ {
			flags = append(flags, nuspell.Flag(runes[i]))
			op := byte(0)
			if i+1 < len(runes) && (runes[i+1] == '?' || runes[i+1] == '*') {
				op = byte(runes[i+1])
				i++
			}
			ops = append(ops, op)
		}
		return flags, ops
	}

	i := 0
	for i < len(runes) {
		if runes[i] != '(' {
			i++
			continue
		}
		j := i + 1
		for j < len(runes) && runes[j] != ')' {
			j++
		}
		group := string(runes[i+1 : j])
		if fs := parseFlags(group, mode); len(fs) > 0 {
			flags = append(flags, fs[0])
		}
		k := j + 1
		op := byte(0)
		if k < len(runes) && (runes[k] == '?' || runes[k] == '*') {
			op = byte(runes[k])
			k++
		}
		ops = append(ops, op)
		i = k
	}
	return flags, ops
}

// parseMapGroup splits a MAP group string into its alternatives: bare runes
// are single-character alternatives, "(...)" groups one multi-character
// alternative.
func parseMapGroup(s string) []string {
	var out []string
	runes := []rune(s)
	for i := 0; i < len(runes); {
		if runes[i] == '(' {
			j := i + 1
			for j < len(runes) && runes[j] != ')' {
				j++
			}
			out = append(out, string(runes[i+1:j]))
			i = j + 1
			continue
		}
		out = append(out, string(runes[i]))
		i++
	}
	return out
}

// parseCompoundPattern parses a CHECKCOMPOUNDPATTERN row: left[/flag]
// right[/flag] [replacement].
func parseCompoundPattern(fields []string, mode flagMode) nuspell.CompoundPattern {
	p := nuspell.CompoundPattern{}
	left, right := fields[1], fields[2]
	if idx := strings.IndexByte(left, '/'); idx >= 0 {
		p.LeftSuffix, p.FirstFlag = left[:idx], firstFlagToken(left[idx+1:], mode)
	} else {
		p.LeftSuffix = left
	}
	if idx := strings.IndexByte(right, '/'); idx >= 0 {
		p.RightPrefix, p.SecondFlag = right[:idx], firstFlagToken(right[idx+1:], mode)
	} else {
		p.RightPrefix = right
	}
	if p.LeftSuffix == "0" {
		p.LeftSuffix = ""
	}
	if p.RightPrefix == "0" {
		p.RightPrefix = ""
	}
	if len(fields) >= 4 {
		p.Replacement = fields[3]
	}
	return p
}

func firstFlagToken(s string, mode flagMode) nuspell.Flag {
	fs := parseFlags(s, mode)
	if len(fs) == 0 {
		return nuspell.NoFlag
	}
	return fs[0]
}

// classifyBreakMarker files one BREAK entry into the start/end/middle group
// its anchor implies (spec §3: "^x" -> x start-anchored, "x$" -> x
// end-anchored, else middle).
func classifyBreakMarker(bt *nuspell.BreakTable, marker string) {
	switch {
	case strings.HasPrefix(marker, "^"):
		bt.Start = append(bt.Start, marker[1:])
	case strings.HasSuffix(marker, "$"):
		bt.End = append(bt.End, marker[:len(marker)-1])
	default:
		bt.Middle = append(bt.Middle, marker)
	}
}

// addReplacement files a REP/ICONV/OCONV row into a table's any-place
// group; "_" stands for a literal space in both pattern and replacement.
func addReplacement(rt *nuspell.ReplacementTable, pattern, out string) {
	pattern = strings.ReplaceAll(pattern, "_", " ")
	out = strings.ReplaceAll(out, "_", " ")
	rt.Any = append(rt.Any, nuspell.Replacement{Pattern: pattern, Out: out})
}

// parseAffixEntry parses one PFX/SFX table row: flag stripping affix[/flags]
// condition.
func parseAffixEntry(kw string, flag nuspell.Flag, crossProduct bool, fields []string, mode flagMode, dict *nuspell.Dictionary) (*nuspell.AffixEntry, error) {
	if len(fields) < 5 {
		return nil, fmt.Errorf("%w: short affix entry %q", nuspell.ErrMalformedAffix, strings.Join(fields, " "))
	}
	stripping := fields[2]
	if stripping == "0" {
		stripping = ""
	}
	affixField := fields[3]
	appending := affixField
	var contFlags nuspell.FlagSet
	if idx := strings.IndexByte(affixField, '/'); idx >= 0 {
		appending = affixField[:idx]
		contFlags = nuspell.NewFlagSet(parseFlags(affixField[idx+1:], mode)...)
	}
	if appending == "0" {
		appending = ""
	}
	condStr := fields[4]
	if condStr == "0" {
		condStr = ""
	}
	cond, err := nuspell.CompileCondition(condStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", nuspell.ErrBadCondition, err)
	}

	kind := nuspell.Suffix
	if kw == "PFX" {
		kind = nuspell.Prefix
	}

	return &nuspell.AffixEntry{
		Kind:               kind,
		Flag:               flag,
		CrossProduct:       crossProduct,
		Stripping:          stripping,
		Appending:          appending,
		ContinuationFlags:  contFlags,
		Condition:          cond,
		ConditionPattern:   condStr,
		NeedAffixFlag:      dict.NeedAffixFlag != nuspell.NoFlag && contFlags.Contains(dict.NeedAffixFlag),
		CircumfixFlag:      dict.CircumfixFlag != nuspell.NoFlag && contFlags.Contains(dict.CircumfixFlag),
		CompoundPermitFlag: dict.CompoundPermitFlag != nuspell.NoFlag && contFlags.Contains(dict.CompoundPermitFlag),
		CompoundOnlyInFlag: dict.CompoundOnlyInFlag != nuspell.NoFlag && contFlags.Contains(dict.CompoundOnlyInFlag),
	}, nil
}

// readLines strips comments and blank lines, returning the remainder as a
// flat slice so table directives can look ahead by a known count.
func readLines(r io.Reader, loadErr error) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", loadErr, err)
	}
	return lines, nil
}
