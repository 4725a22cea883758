// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package rewrite

import (
	"slices"
	"strings"
)

// Term is an immutable ordered sequence of symbols. Terms are value types;
// the underlying symbol array is never mutated after construction.
type Term struct {
	symbols []Symbol
}

// NewTerm constructs a term from the given symbols.
func NewTerm(symbols ...Symbol) Term {
	return Term{symbols}
}

// Len returns the number of symbols in this term.
func (p Term) Len() uint {
	return uint(len(p.symbols))
}

// Get returns the ith symbol of this term.
func (p Term) Get(i uint) Symbol {
	return p.symbols[i]
}

// Symbols returns the symbols of this term. The returned slice must not be
// mutated.
func (p Term) Symbols() []Symbol {
	return p.symbols
}

// ContainsUnresolvedSymbols determines whether any symbol of this term
// (including symbols nested inside substitutions) is an unresolved name.
func (p Term) ContainsUnresolvedSymbols() bool {
	for _, s := range p.symbols {
		if s.IsUnresolved() {
			return true
		}
	}
	//
	return false
}

// Equals determines whether two terms hold identical symbol sequences.
func (p Term) Equals(o Term) bool {
	if len(p.symbols) != len(o.symbols) {
		return false
	}
	//
	for i := range p.symbols {
		if !p.symbols[i].Equal(o.symbols[i]) {
			return false
		}
	}
	//
	return true
}

// Subterm returns the symbols in positions [start, end) as a new term.
func (p Term) Subterm(start uint, end uint) Term {
	return NewTerm(slices.Clone(p.symbols[start:end])...)
}

// Compare implements the shortlex order on terms: a longer term is always
// greater; terms of equal length compare symbol-by-symbol.
func (p Term) Compare(o Term) int {
	if len(p.symbols) != len(o.symbols) {
		if len(p.symbols) < len(o.symbols) {
			return -1
		}
		//
		return 1
	}
	//
	for i := range p.symbols {
		if c := p.symbols[i].Compare(o.symbols[i]); c != 0 {
			return c
		}
	}
	//
	return 0
}

func (p Term) String() string {
	var builder strings.Builder
	//
	for i, s := range p.symbols {
		if i != 0 {
			builder.WriteString(".")
		}
		//
		builder.WriteString(s.String())
	}
	//
	return builder.String()
}

// MutableTerm is a working buffer of symbols used by the path evaluator.
// Unlike Term, a mutable term may be updated in place.
type MutableTerm struct {
	symbols []Symbol
}

// NewMutableTerm constructs a mutable term holding a copy of the given
// term's symbols.
func NewMutableTerm(term Term) *MutableTerm {
	return &MutableTerm{slices.Clone(term.symbols)}
}

// EmptyMutableTerm constructs an empty mutable term.
func EmptyMutableTerm() *MutableTerm {
	return &MutableTerm{}
}

// Len returns the number of symbols in this term.
func (p *MutableTerm) Len() uint {
	return uint(len(p.symbols))
}

// Get returns the ith symbol of this term.
func (p *MutableTerm) Get(i uint) Symbol {
	return p.symbols[i]
}

// Symbols returns the symbols of this term. The returned slice aliases the
// term and must not be mutated.
func (p *MutableTerm) Symbols() []Symbol {
	return p.symbols
}

// Set updates the ith symbol of this term.
func (p *MutableTerm) Set(i uint, symbol Symbol) {
	p.symbols[i] = symbol
}

// Append adds a symbol at the end of this term.
func (p *MutableTerm) Append(symbol Symbol) {
	p.symbols = append(p.symbols, symbol)
}

// Truncate drops all symbols from position n onwards.
func (p *MutableTerm) Truncate(n uint) {
	p.symbols = p.symbols[:n]
}

// Replace substitutes the symbols in positions [start, end) with the symbols
// of the given term.
func (p *MutableTerm) Replace(start uint, end uint, term Term) {
	var symbols = make([]Symbol, 0, uint(len(p.symbols))-(end-start)+term.Len())
	//
	symbols = append(symbols, p.symbols[:start]...)
	symbols = append(symbols, term.symbols...)
	symbols = append(symbols, p.symbols[end:]...)
	//
	p.symbols = symbols
}

// Subterm returns the symbols in positions [start, end) as an immutable term.
func (p *MutableTerm) Subterm(start uint, end uint) Term {
	return NewTerm(slices.Clone(p.symbols[start:end])...)
}

// Freeze converts this mutable term into an immutable term, copying its
// symbols.
func (p *MutableTerm) Freeze() Term {
	return NewTerm(slices.Clone(p.symbols)...)
}

// Clone creates a true copy of this mutable term.
func (p *MutableTerm) Clone() *MutableTerm {
	return &MutableTerm{slices.Clone(p.symbols)}
}

// Equals determines whether two mutable terms hold identical symbol
// sequences.
func (p *MutableTerm) Equals(o *MutableTerm) bool {
	if len(p.symbols) != len(o.symbols) {
		return false
	}
	//
	for i := range p.symbols {
		if !p.symbols[i].Equal(o.symbols[i]) {
			return false
		}
	}
	//
	return true
}

func (p *MutableTerm) String() string {
	return p.Freeze().String()
}
