package nuspell

// ruleOp is the operator following a compound-rule atom.
type ruleOp int

const (
	opOne ruleOp = iota // exactly one (no suffix)
	opOpt             // '?' zero or one
	opStar            // '*' zero or more
)

type ruleAtom struct {
	flag Flag
	op   ruleOp
}

// CompoundRule is a simplified regex over flag atoms (spec §4.7), used to
// validate the sequence of flag sets produced while recursively splitting a
// word during rule-based compounding.
type CompoundRule struct {
	atoms []ruleAtom
}

// ParseCompoundRule parses a COMPOUNDRULE pattern string where each
// character is a flag atom optionally followed by '?' or '*'. Numeric and
// long flag syntaxes are handled by the caller, which passes already-split
// flags; this constructor takes pre-split (flag, opChar) pairs.
func ParseCompoundRule(flags []Flag, ops []byte) CompoundRule {
	cr := CompoundRule{atoms: make([]ruleAtom, len(flags))}
	for i, f := range flags {
		op := opOne
		if i < len(ops) {
			switch ops[i] {
			case '?':
				op = opOpt
			case '*':
				op = opStar
			}
		}
		cr.atoms[i] = ruleAtom{flag: f, op: op}
	}
	return cr
}

type ruleState struct {
	dataPos, patternPos int
}

// Match reports whether the sequence of flag sets data matches the rule,
// where a pattern atom matches a data element iff the element's flag set
// contains the atom's flag. Implemented as a nondeterministic traversal
// over an explicit worklist, per spec §4.7.
func (cr CompoundRule) Match(data []FlagSet) bool {
	seen := map[ruleState]bool{}
	work := []ruleState{{0, 0}}
	for len(work) > 0 {
		st := work[len(work)-1]
		work = work[:len(work)-1]
		if seen[st] {
			continue
		}
		seen[st] = true
		if st.dataPos == len(data) && st.patternPos == len(cr.atoms) {
			return true
		}
		if st.patternPos >= len(cr.atoms) {
			continue
		}
		atom := cr.atoms[st.patternPos]
		switch atom.op {
		case opOne:
			if st.dataPos < len(data) && data[st.dataPos].Contains(atom.flag) {
				work = append(work, ruleState{st.dataPos + 1, st.patternPos + 1})
			}
		case opOpt:
			work = append(work, ruleState{st.dataPos, st.patternPos + 1})
			if st.dataPos < len(data) && data[st.dataPos].Contains(atom.flag) {
				work = append(work, ruleState{st.dataPos + 1, st.patternPos + 1})
			}
		case opStar:
			work = append(work, ruleState{st.dataPos, st.patternPos + 1})
			if st.dataPos < len(data) && data[st.dataPos].Contains(atom.flag) {
				work = append(work, ruleState{st.dataPos + 1, st.patternPos})
			}
		}
	}
	return false
}

// CompoundRuleTable is the ordered set of COMPOUNDRULE patterns; a split
// sequence is accepted if it matches at least one rule.
type CompoundRuleTable struct {
	Rules []CompoundRule
}

// MatchAny reports whether data matches any rule in the table.
func (t CompoundRuleTable) MatchAny(data []FlagSet) bool {
	for _, r := range t.Rules {
		if r.Match(data) {
			return true
		}
	}
	return false
}

// Empty reports whether the table has no rules (rule-based compounding is
// inactive).
func (t CompoundRuleTable) Empty() bool { return len(t.Rules) == 0 }
