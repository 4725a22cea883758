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
	"fmt"
	"strings"
)

// SymbolKind identifies the variant of a symbol. Symbols form the alphabet
// over which terms are written; the kind determines both the payload a symbol
// carries and its precedence in the linear order on symbols.
type SymbolKind uint8

const (
	// GenericParam is a top-level generic parameter, written τ_name. Terms
	// describing a generic signature begin with one of these.
	GenericParam SymbolKind = iota
	// AssociatedType is a resolved associated type [P:name] belonging to the
	// protocol P.
	AssociatedType
	// Protocol is a protocol symbol [P]. A term T ending in [P] asserts that
	// T conforms to P.
	Protocol
	// ConcreteType is a concrete type symbol [concrete: C], possibly carrying
	// substitution terms for the generic arguments of C.
	ConcreteType
	// ConcreteConformance is a fused symbol [concrete: C : P] recording that
	// the concrete type C conforms to P.
	ConcreteConformance
	// Superclass is a superclass constraint symbol [superclass: C], possibly
	// carrying substitution terms.
	Superclass
	// Name is an unresolved identifier. These only appear in rules lowered
	// directly from source; completion resolves them away. Name symbols rank
	// last so that unresolved terms compare largest, making their rules the
	// first candidates for elimination.
	Name
)

func (k SymbolKind) String() string {
	switch k {
	case GenericParam:
		return "generic-param"
	case AssociatedType:
		return "associated-type"
	case Protocol:
		return "protocol"
	case ConcreteType:
		return "concrete-type"
	case ConcreteConformance:
		return "concrete-conformance"
	case Superclass:
		return "superclass"
	case Name:
		return "name"
	}
	//
	panic(fmt.Sprintf("unknown symbol kind %d", k))
}

// Symbol is an atom of a term. Symbols are immutable values; the payload
// fields used depend on the kind. A superclass, concrete type or concrete
// conformance symbol additionally carries the substitution terms for any
// generic arguments of the type it names.
type Symbol struct {
	kind SymbolKind
	// Identifier for generic params, associated types, names and concrete
	// type names.
	name string
	// Protocol for protocol, associated type and concrete conformance
	// symbols.
	proto string
	// Substitution terms for superclass, concrete type and concrete
	// conformance symbols.
	substitutions []Term
}

// NewGenericParamSymbol constructs a generic parameter symbol.
func NewGenericParamSymbol(name string) Symbol {
	return Symbol{kind: GenericParam, name: name}
}

// NewAssociatedTypeSymbol constructs an associated type symbol [proto:name].
func NewAssociatedTypeSymbol(proto string, name string) Symbol {
	return Symbol{kind: AssociatedType, name: name, proto: proto}
}

// NewProtocolSymbol constructs a protocol symbol [proto].
func NewProtocolSymbol(proto string) Symbol {
	return Symbol{kind: Protocol, proto: proto}
}

// NewNameSymbol constructs an unresolved name symbol.
func NewNameSymbol(name string) Symbol {
	return Symbol{kind: Name, name: name}
}

// NewConcreteTypeSymbol constructs a concrete type symbol with zero or more
// substitution terms.
func NewConcreteTypeSymbol(name string, substitutions ...Term) Symbol {
	return Symbol{kind: ConcreteType, name: name, substitutions: substitutions}
}

// NewSuperclassSymbol constructs a superclass symbol with zero or more
// substitution terms.
func NewSuperclassSymbol(name string, substitutions ...Term) Symbol {
	return Symbol{kind: Superclass, name: name, substitutions: substitutions}
}

// NewConcreteConformanceSymbol constructs a concrete conformance symbol
// [concrete: name : proto].
func NewConcreteConformanceSymbol(name string, proto string, substitutions ...Term) Symbol {
	return Symbol{kind: ConcreteConformance, name: name, proto: proto, substitutions: substitutions}
}

// GetKind returns the kind of this symbol.
func (p Symbol) GetKind() SymbolKind {
	return p.kind
}

// GetName returns the identifier payload of this symbol.
func (p Symbol) GetName() string {
	return p.name
}

// GetProtocols returns the protocols this symbol belongs to. For the symbol
// kinds which carry a protocol this is always a sequence of length one.
func (p Symbol) GetProtocols() []string {
	switch p.kind {
	case Protocol, AssociatedType, ConcreteConformance:
		return []string{p.proto}
	}
	//
	panic(fmt.Sprintf("%s symbol has no protocol", p.kind))
}

// GetSubstitutions returns the substitution terms carried by a superclass,
// concrete type or concrete conformance symbol.
func (p Symbol) GetSubstitutions() []Term {
	return p.substitutions
}

// WithSubstitutions returns a copy of this symbol carrying the given
// substitution terms in place of its current ones.
func (p Symbol) WithSubstitutions(substitutions []Term) Symbol {
	p.substitutions = substitutions
	return p
}

// HasSubstitutions determines whether this symbol is of a kind which can
// carry substitution terms.
func (p Symbol) HasSubstitutions() bool {
	switch p.kind {
	case ConcreteType, ConcreteConformance, Superclass:
		return true
	}
	//
	return false
}

// IsUnresolved determines whether this symbol, or any symbol within its
// substitutions, is an unresolved name.
func (p Symbol) IsUnresolved() bool {
	if p.kind == Name {
		return true
	}
	//
	for _, t := range p.substitutions {
		if t.ContainsUnresolvedSymbols() {
			return true
		}
	}
	//
	return false
}

// Equal determines whether two symbols are identical.
func (p Symbol) Equal(o Symbol) bool {
	if p.kind != o.kind || p.name != o.name || p.proto != o.proto {
		return false
	}
	//
	if len(p.substitutions) != len(o.substitutions) {
		return false
	}
	//
	for i := range p.substitutions {
		if !p.substitutions[i].Equals(o.substitutions[i]) {
			return false
		}
	}
	//
	return true
}

// Compare implements the linear order on symbols: first by kind precedence,
// then by protocol, then by name, and finally by recursive comparison of
// substitution terms.
func (p Symbol) Compare(o Symbol) int {
	if p.kind != o.kind {
		if p.kind < o.kind {
			return -1
		}
		//
		return 1
	}
	//
	if c := strings.Compare(p.proto, o.proto); c != 0 {
		return c
	}
	//
	if c := strings.Compare(p.name, o.name); c != 0 {
		return c
	}
	//
	if len(p.substitutions) != len(o.substitutions) {
		if len(p.substitutions) < len(o.substitutions) {
			return -1
		}
		//
		return 1
	}
	//
	for i := range p.substitutions {
		if c := p.substitutions[i].Compare(o.substitutions[i]); c != 0 {
			return c
		}
	}
	//
	return 0
}

func (p Symbol) String() string {
	switch p.kind {
	case GenericParam:
		return fmt.Sprintf("τ_%s", p.name)
	case AssociatedType:
		return fmt.Sprintf("[%s:%s]", p.proto, p.name)
	case Protocol:
		return fmt.Sprintf("[%s]", p.proto)
	case Name:
		return p.name
	case ConcreteType:
		return fmt.Sprintf("[concrete: %s%s]", p.name, substitutionsString(p.substitutions))
	case ConcreteConformance:
		return fmt.Sprintf("[concrete: %s%s : %s]", p.name, substitutionsString(p.substitutions), p.proto)
	case Superclass:
		return fmt.Sprintf("[superclass: %s%s]", p.name, substitutionsString(p.substitutions))
	}
	//
	panic(fmt.Sprintf("unknown symbol kind %d", p.kind))
}

func substitutionsString(substitutions []Term) string {
	if len(substitutions) == 0 {
		return ""
	}
	//
	var builder strings.Builder
	//
	builder.WriteString("<")
	//
	for i, t := range substitutions {
		if i != 0 {
			builder.WriteString(", ")
		}
		//
		builder.WriteString(t.String())
	}
	//
	builder.WriteString(">")
	//
	return builder.String()
}
