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

// Package where implements predicates for selecting stars to plot
package where

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mlnoga/starchart/internal/star"
)

var (
	ErrMissingAttribute = errors.New("star lacks attribute")
	ErrUnknownField     = errors.New("unknown field")
	ErrUnknownOperator  = errors.New("unknown operator")
)

// A boolean condition on a star. Evaluate must not modify the star.
type Predicate interface {
	Evaluate(s star.Star) (bool, error)
}

// Returns true iff all predicates hold. An empty list always holds.
// Evaluation stops at the first false predicate or error
func All(preds []Predicate, s star.Star) (bool, error) {
	for i, p := range preds {
		ok, err := p.Evaluate(s)
		if err != nil {
			return false, fmt.Errorf("predicate %d (%v): %w", i, p, err)
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// A star attribute which predicates can refer to
type Field string

const (
	Magnitude Field = "magnitude"
	BV        Field = "bv"
	RA        Field = "ra"
	Dec       Field = "dec"
	HIP       Field = "hip"
	Name      Field = "name"
)

// Returns the numeric value of the field on the given star
func (f Field) Number(s star.Star) (float64, error) {
	switch f {
	case Magnitude:
		return s.Magnitude, nil
	case BV:
		if !s.HasBV {
			return 0, fmt.Errorf("%w: %s on %v", ErrMissingAttribute, f, s)
		}
		return s.BV, nil
	case RA:
		return s.RA, nil
	case Dec:
		return s.Dec, nil
	case HIP:
		if !s.HasHIP {
			return 0, fmt.Errorf("%w: %s on %v", ErrMissingAttribute, f, s)
		}
		return float64(s.HIP), nil
	case Name:
		return 0, fmt.Errorf("%w: %s is not numeric", ErrUnknownField, f)
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownField, string(f))
	}
}

func parseField(s string) (Field, error) {
	f := Field(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case Magnitude, BV, RA, Dec, HIP, Name:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
}

// A comparison operator
type Op string

const (
	Less         Op = "<"
	LessEqual    Op = "<="
	Greater      Op = ">"
	GreaterEqual Op = ">="
	Equal        Op = "=="
	NotEqual     Op = "!="
)

func (op Op) compareNumbers(a, b float64) (bool, error) {
	switch op {
	case Less:
		return a < b, nil
	case LessEqual:
		return a <= b, nil
	case Greater:
		return a > b, nil
	case GreaterEqual:
		return a >= b, nil
	case Equal:
		return a == b, nil
	case NotEqual:
		return a != b, nil
	}
	return false, fmt.Errorf("%w: %q", ErrUnknownOperator, string(op))
}

func (op Op) compareStrings(a, b string) (bool, error) {
	switch op {
	case Equal:
		return a == b, nil
	case NotEqual:
		return a != b, nil
	}
	return false, fmt.Errorf("%w: %q on strings", ErrUnknownOperator, string(op))
}

// Compares a star field with a constant, e.g. magnitude <= 4.5.
// The name field compares with Text, all others with Value
type Compare struct {
	PredicateBase
	Field Field   `json:"field"`
	Op    Op      `json:"op"`
	Value float64 `json:"value"`
	Text  string  `json:"text,omitempty"`
}

func init() { SetFactory(func() Predicate { return &Compare{PredicateBase: PredicateBase{Type: "compare"}} }) }

func NewCompare(field Field, op Op, value float64) *Compare {
	return &Compare{PredicateBase: PredicateBase{Type: "compare"}, Field: field, Op: op, Value: value}
}

func NewCompareText(field Field, op Op, text string) *Compare {
	return &Compare{PredicateBase: PredicateBase{Type: "compare"}, Field: field, Op: op, Text: text}
}

// Checks that the field is known and the operator applies to it
func (c *Compare) Validate() error {
	switch c.Field {
	case Magnitude, BV, RA, Dec, HIP:
		if _, err := c.Op.compareNumbers(0, 0); err != nil {
			return err
		}
	case Name:
		if _, err := c.Op.compareStrings("", ""); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, string(c.Field))
	}
	return nil
}

func (c *Compare) Evaluate(s star.Star) (bool, error) {
	if c.Field == Name {
		return c.Op.compareStrings(s.Name, c.Text)
	}
	v, err := c.Field.Number(s)
	if err != nil {
		return false, err
	}
	return c.Op.compareNumbers(v, c.Value)
}

func (c *Compare) String() string {
	if c.Field == Name {
		return fmt.Sprintf("%s %s %q", c.Field, c.Op, c.Text)
	}
	return fmt.Sprintf("%s %s %g", c.Field, c.Op, c.Value)
}

// Holds iff all operands hold
type And struct {
	PredicateBase
	Operands []Predicate `json:"operands"`
}

func init() { SetFactory(func() Predicate { return &And{PredicateBase: PredicateBase{Type: "and"}} }) }

func NewAnd(ps ...Predicate) *And {
	return &And{PredicateBase: PredicateBase{Type: "and"}, Operands: ps}
}

func (a *And) Evaluate(s star.Star) (bool, error) {
	return All(a.Operands, s)
}

func (a *And) String() string { return join(a.Operands, " and ") }

// Holds iff at least one operand holds. An empty Or never holds
type Or struct {
	PredicateBase
	Operands []Predicate `json:"operands"`
}

func init() { SetFactory(func() Predicate { return &Or{PredicateBase: PredicateBase{Type: "or"}} }) }

func NewOr(ps ...Predicate) *Or {
	return &Or{PredicateBase: PredicateBase{Type: "or"}, Operands: ps}
}

func (o *Or) Evaluate(s star.Star) (bool, error) {
	for _, p := range o.Operands {
		ok, err := p.Evaluate(s)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func (o *Or) String() string { return join(o.Operands, " or ") }

// Negates its operand
type Not struct {
	PredicateBase
	Operand Predicate `json:"operand"`
}

func init() { SetFactory(func() Predicate { return &Not{PredicateBase: PredicateBase{Type: "not"}} }) }

func NewNot(p Predicate) *Not {
	return &Not{PredicateBase: PredicateBase{Type: "not"}, Operand: p}
}

func (n *Not) Evaluate(s star.Star) (bool, error) {
	ok, err := n.Operand.Evaluate(s)
	return !ok && err == nil, err
}

func (n *Not) String() string { return fmt.Sprintf("not (%v)", n.Operand) }

// Adapter to use an ordinary function as predicate. Not serializable
type Func func(s star.Star) (bool, error)

func (f Func) Evaluate(s star.Star) (bool, error) { return f(s) }

func (f Func) String() string { return "func" }

func join(ps []Predicate, sep string) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = fmt.Sprintf("(%v)", p)
	}
	return strings.Join(parts, sep)
}
