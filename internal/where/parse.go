// Copyright (C) 2020 Markus L. Noga
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package where

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

var ErrSyntax = errors.New("predicate syntax error")

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokNumber
	tokString
	tokOp
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

func tokenize(s string) ([]token, error) {
	var toks []token
	rs := []rune(s)
	for i := 0; i < len(rs); {
		r := rs[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '(':
			toks = append(toks, token{tokLParen, "(", i})
			i++
		case r == ')':
			toks = append(toks, token{tokRParen, ")", i})
			i++
		case r == '<' || r == '>' || r == '=' || r == '!':
			start := i
			i++
			if i < len(rs) && rs[i] == '=' {
				i++
			}
			text := string(rs[start:i])
			if text == "=" {
				text = "=="
			} else if text == "!" {
				return nil, fmt.Errorf("%w: unexpected '!' at %d", ErrSyntax, start)
			}
			toks = append(toks, token{tokOp, text, start})
		case r == '"' || r == '\'':
			start := i
			i++
			for i < len(rs) && rs[i] != r {
				i++
			}
			if i >= len(rs) {
				return nil, fmt.Errorf("%w: unterminated string at %d", ErrSyntax, start)
			}
			toks = append(toks, token{tokString, string(rs[start+1 : i]), start})
			i++
		case unicode.IsDigit(r) || r == '.' || r == '-' || r == '+':
			start := i
			i++
			for i < len(rs) {
				c := rs[i]
				if unicode.IsDigit(c) || c == '.' || c == 'e' || c == 'E' ||
					((c == '-' || c == '+') && (rs[i-1] == 'e' || rs[i-1] == 'E')) {
					i++
					continue
				}
				break
			}
			toks = append(toks, token{tokNumber, string(rs[start:i]), start})
		case unicode.IsLetter(r) || r == '_':
			start := i
			for i < len(rs) && (unicode.IsLetter(rs[i]) || unicode.IsDigit(rs[i]) || rs[i] == '_' || rs[i] == '-') {
				i++
			}
			toks = append(toks, token{tokIdent, string(rs[start:i]), start})
		default:
			return nil, fmt.Errorf("%w: unexpected '%c' at %d", ErrSyntax, r, i)
		}
	}
	return append(toks, token{tokEOF, "", len(rs)}), nil
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) keyword(kw string) bool {
	t := p.peek()
	if t.kind == tokIdent && strings.EqualFold(t.text, kw) {
		p.pos++
		return true
	}
	return false
}

// Parses a textual predicate such as
//
//	magnitude < 4 and (bv >= 0.5 or name == "Sirius")
//
// Supported fields are magnitude, bv, ra, dec, hip and name. Operators are
// < <= > >= == != and the keywords and, or, not. A single = means ==
func Parse(s string) (Predicate, error) {
	toks, err := tokenize(s)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	if p.peek().kind == tokEOF {
		return nil, fmt.Errorf("%w: empty predicate", ErrSyntax)
	}
	pred, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, fmt.Errorf("%w: unexpected '%s' at %d", ErrSyntax, t.text, t.pos)
	}
	return pred, nil
}

// Parses each of the given textual predicates
func ParseAll(ss []string) ([]Predicate, error) {
	ps := make([]Predicate, 0, len(ss))
	for _, s := range ss {
		p, err := Parse(s)
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", s, err)
		}
		ps = append(ps, p)
	}
	return ps, nil
}

func (p *parser) parseOr() (Predicate, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	operands := []Predicate{left}
	for p.keyword("or") {
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		operands = append(operands, right)
	}
	if len(operands) == 1 {
		return left, nil
	}
	return NewOr(operands...), nil
}

func (p *parser) parseAnd() (Predicate, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	operands := []Predicate{left}
	for p.keyword("and") {
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		operands = append(operands, right)
	}
	if len(operands) == 1 {
		return left, nil
	}
	return NewAnd(operands...), nil
}

func (p *parser) parseUnary() (Predicate, error) {
	if p.keyword("not") {
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return NewNot(inner), nil
	}
	if p.peek().kind == tokLParen {
		p.next()
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if t := p.next(); t.kind != tokRParen {
			return nil, fmt.Errorf("%w: expected ')' at %d", ErrSyntax, t.pos)
		}
		return inner, nil
	}
	return p.parseComparison()
}

func (p *parser) parseComparison() (Predicate, error) {
	ft := p.next()
	if ft.kind != tokIdent {
		return nil, fmt.Errorf("%w: expected field at %d", ErrSyntax, ft.pos)
	}
	field, err := parseField(ft.text)
	if err != nil {
		return nil, err
	}
	ot := p.next()
	if ot.kind != tokOp {
		return nil, fmt.Errorf("%w: expected operator after %s at %d", ErrSyntax, field, ot.pos)
	}
	op := Op(ot.text)
	vt := p.next()
	if field == Name {
		if vt.kind != tokString && vt.kind != tokIdent {
			return nil, fmt.Errorf("%w: expected name at %d", ErrSyntax, vt.pos)
		}
		if op != Equal && op != NotEqual {
			return nil, fmt.Errorf("%w: %q on strings", ErrUnknownOperator, string(op))
		}
		return NewCompareText(field, op, vt.text), nil
	}
	if vt.kind != tokNumber {
		return nil, fmt.Errorf("%w: expected number at %d", ErrSyntax, vt.pos)
	}
	v, err := strconv.ParseFloat(vt.text, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad number %q at %d", ErrSyntax, vt.text, vt.pos)
	}
	return NewCompare(field, op, v), nil
}
