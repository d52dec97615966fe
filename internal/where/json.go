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
	"encoding/json"
	"fmt"
)

// Base type for serializable predicates, carrying type information for JSON decoding
type PredicateBase struct {
	Type string `json:"type"`
}

func (p *PredicateBase) GetType() string { return p.Type }

type typed interface {
	GetType() string
}

// Factory method for predicate types. For JSON deserializing
type Factory func() Predicate

// Mapping from predicate type strings to factory method for the type
var factories = map[string]Factory{}

// Returns the predicate factory for a given type string, or nil
func GetFactory(t string) Factory {
	return factories[t]
}

// Registers a predicate type, identified via an exemplar generator
func SetFactory(f Factory) {
	p, ok := f().(typed)
	if !ok {
		panic("error: registering predicate without type information")
	}
	t := p.GetType()
	if GetFactory(t) != nil {
		panic(fmt.Sprintf("error: re-registering predicate key %s\n", t))
	}
	factories[t] = f
}

// Decodes a single polymorphic predicate from JSON
func Decode(raw []byte) (Predicate, error) {
	var base PredicateBase
	if err := json.Unmarshal(raw, &base); err != nil {
		return nil, err
	}
	factory := GetFactory(base.Type)
	if factory == nil {
		return nil, fmt.Errorf("unknown predicate type '%s' in raw JSON message '%s'", base.Type, string(raw))
	}
	p := factory()
	if err := json.Unmarshal(raw, p); err != nil {
		return nil, err
	}
	return p, nil
}

func decodeAll(raws []json.RawMessage) ([]Predicate, error) {
	if raws == nil {
		return nil, nil
	}
	ps := make([]Predicate, len(raws))
	for i, raw := range raws {
		p, err := Decode(raw)
		if err != nil {
			return nil, err
		}
		ps[i] = p
	}
	return ps, nil
}

// A list of predicates which all must hold, decodable from a JSON array
// of polymorphic predicates
type List []Predicate

func (l *List) UnmarshalJSON(b []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(b, &raws); err != nil {
		return err
	}
	ps, err := decodeAll(raws)
	if err != nil {
		return err
	}
	*l = ps
	return nil
}

func (c *Compare) UnmarshalJSON(b []byte) error {
	type plain Compare
	var raw plain
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	cmp := Compare(raw)
	if err := cmp.Validate(); err != nil {
		return err
	}
	*c = cmp
	return nil
}

func (a *And) UnmarshalJSON(b []byte) error {
	var raw struct {
		PredicateBase
		Operands []json.RawMessage `json:"operands"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	ps, err := decodeAll(raw.Operands)
	if err != nil {
		return err
	}
	a.PredicateBase, a.Operands = raw.PredicateBase, ps
	return nil
}

func (o *Or) UnmarshalJSON(b []byte) error {
	var raw struct {
		PredicateBase
		Operands []json.RawMessage `json:"operands"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	ps, err := decodeAll(raw.Operands)
	if err != nil {
		return err
	}
	o.PredicateBase, o.Operands = raw.PredicateBase, ps
	return nil
}

func (n *Not) UnmarshalJSON(b []byte) error {
	var raw struct {
		PredicateBase
		Operand json.RawMessage `json:"operand"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if len(raw.Operand) == 0 {
		return fmt.Errorf("not predicate without operand")
	}
	p, err := Decode(raw.Operand)
	if err != nil {
		return err
	}
	n.PredicateBase, n.Operand = raw.PredicateBase, p
	return nil
}
