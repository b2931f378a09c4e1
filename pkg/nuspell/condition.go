package nuspell

import (
	"fmt"
	"strings"
)

// spanKind identifies the kind of a single Condition span.
type spanKind int

const (
	spanLiteral spanKind = iota
	spanDot
	spanAnyOf
	spanNoneOf
)

type span struct {
	kind    spanKind
	literal string       // spanLiteral
	set     map[rune]bool // spanAnyOf / spanNoneOf
}

// Condition is a compiled restricted pattern: a fixed-width sequence of
// literal runs, '.', '[...]' and '[^...]' character classes, with no
// quantifiers. It is evaluated against a prefix or a suffix of a word.
type Condition struct {
	spans []span
	width int
}

// emptyCondition is a zero-width Condition that matches every word, the
// same as CompileCondition("") returns. A "." pattern does not produce it:
// "." compiles to a width-1 DOT span.
var emptyCondition = &Condition{}

// CompileCondition parses a restricted regex pattern into a Condition.
// Malformed patterns (unbalanced brackets, empty class) are rejected here,
// never at match time.
func CompileCondition(pattern string) (*Condition, error) {
	c := &Condition{}
	runes := []rune(pattern)
	i := 0
	var lit strings.Builder
	flushLiteral := func() {
		if lit.Len() > 0 {
			s := lit.String()
			c.spans = append(c.spans, span{kind: spanLiteral, literal: s})
			c.width += len([]rune(s))
			lit.Reset()
		}
	}
	for i < len(runes) {
		r := runes[i]
		switch r {
		case '.':
			flushLiteral()
			c.spans = append(c.spans, span{kind: spanDot})
			c.width++
			i++
		case '[':
			flushLiteral()
			j := i + 1
			negate := false
			if j < len(runes) && runes[j] == '^' {
				negate = true
				j++
			}
			start := j
			for j < len(runes) && runes[j] != ']' {
				j++
			}
			if j >= len(runes) {
				return nil, fmt.Errorf("%w: unbalanced bracket in condition %q", ErrBadCondition, pattern)
			}
			class := runes[start:j]
			if len(class) == 0 {
				return nil, fmt.Errorf("%w: empty character class in condition %q", ErrBadCondition, pattern)
			}
			set := make(map[rune]bool, len(class))
			for _, cr := range class {
				set[cr] = true
			}
			kind := spanAnyOf
			if negate {
				kind = spanNoneOf
			}
			c.spans = append(c.spans, span{kind: kind, set: set})
			c.width++
			i = j + 1
		default:
			lit.WriteRune(r)
			i++
		}
	}
	flushLiteral()
	return c, nil
}

// MatchPrefix reports whether the condition matches the prefix of word with
// length equal to the condition's fixed width.
func (c *Condition) MatchPrefix(word string) bool {
	if c == nil || c.width == 0 {
		return true
	}
	runes := []rune(word)
	if len(runes) < c.width {
		return false
	}
	pos := 0
	for _, sp := range c.spans {
		switch sp.kind {
		case spanLiteral:
			l := []rune(sp.literal)
			for k, lr := range l {
				if runes[pos+k] != lr {
					return false
				}
			}
			pos += len(l)
		case spanDot:
			pos++
		case spanAnyOf:
			if !sp.set[runes[pos]] {
				return false
			}
			pos++
		case spanNoneOf:
			if sp.set[runes[pos]] {
				return false
			}
			pos++
		}
	}
	return pos == c.width
}

// MatchSuffix reports whether the condition matches the suffix of word with
// length equal to the condition's fixed width.
func (c *Condition) MatchSuffix(word string) bool {
	if c == nil || c.width == 0 {
		return true
	}
	runes := []rune(word)
	if len(runes) < c.width {
		return false
	}
	return c.MatchPrefix(string(runes[len(runes)-c.width:]))
}
