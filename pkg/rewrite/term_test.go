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
	"testing"

	"github.com/consensys/go-rewrite/pkg/util/assert"
)

func Test_Symbol_Order_01(t *testing.T) {
	// Kind precedence: generic param < associated type < protocol < concrete
	// < conformance < superclass < name.
	checkLess(t, gparam("z"), assoc("A", "A"))
	checkLess(t, assoc("Z", "Z"), proto("A"))
	checkLess(t, proto("Z"), NewConcreteTypeSymbol("A"))
	checkLess(t, NewConcreteTypeSymbol("Z"), NewConcreteConformanceSymbol("A", "A"))
	checkLess(t, NewConcreteConformanceSymbol("Z", "Z"), NewSuperclassSymbol("A"))
	checkLess(t, NewSuperclassSymbol("Z"), unresolved("a"))
}

func Test_Symbol_Order_02(t *testing.T) {
	// Within a kind, protocol then name decide.
	checkLess(t, assoc("P", "A"), assoc("P", "B"))
	checkLess(t, assoc("P", "Z"), assoc("Q", "A"))
	checkLess(t, gparam("x"), gparam("y"))
}

func Test_Symbol_Order_03(t *testing.T) {
	// Substitutions break remaining ties.
	var (
		x = term(gparam("x"))
		y = term(gparam("y"))
	)
	//
	checkLess(t, NewConcreteTypeSymbol("Box"), NewConcreteTypeSymbol("Box", x))
	checkLess(t, NewConcreteTypeSymbol("Box", x), NewConcreteTypeSymbol("Box", y))
	//
	assert.Equal(t, 0, NewConcreteTypeSymbol("Box", x).Compare(NewConcreteTypeSymbol("Box", x)))
}

func Test_Symbol_Protocols_01(t *testing.T) {
	assert.Equal(t, []string{"P"}, proto("P").GetProtocols())
	assert.Equal(t, []string{"P"}, assoc("P", "X").GetProtocols())
	assert.Equal(t, []string{"Q"}, NewConcreteConformanceSymbol("Int", "Q").GetProtocols())
	//
	assert.Panics(t, func() {
		gparam("x").GetProtocols()
	})
}

func Test_Symbol_String_01(t *testing.T) {
	assert.Equal(t, "τ_x", gparam("x").String())
	assert.Equal(t, "[P]", proto("P").String())
	assert.Equal(t, "[P:X]", assoc("P", "X").String())
	assert.Equal(t, "n", unresolved("n").String())
	assert.Equal(t, "[concrete: Int]", NewConcreteTypeSymbol("Int").String())
	assert.Equal(t, "[concrete: Int : Q]", NewConcreteConformanceSymbol("Int", "Q").String())
	assert.Equal(t, "[superclass: Base]", NewSuperclassSymbol("Base").String())
	assert.Equal(t, "[concrete: Box<τ_x>]",
		NewConcreteTypeSymbol("Box", term(gparam("x"))).String())
}

func Test_Term_Order_01(t *testing.T) {
	var (
		a = assoc("P", "A")
		b = assoc("P", "B")
	)
	// Shortlex: longer terms are always greater.
	assert.True(t, term(b).Compare(term(a, a)) < 0)
	assert.True(t, term(a, a).Compare(term(b)) > 0)
	// Equal length compares pointwise.
	assert.True(t, term(a, b).Compare(term(b, a)) < 0)
	assert.Equal(t, 0, term(a, b).Compare(term(a, b)))
}

func Test_Term_Unresolved_01(t *testing.T) {
	assert.False(t, term(gparam("x"), proto("P")).ContainsUnresolvedSymbols())
	assert.True(t, term(gparam("x"), unresolved("n")).ContainsUnresolvedSymbols())
	// Names nested inside substitutions count as unresolved.
	nested := NewConcreteTypeSymbol("Box", term(unresolved("n")))
	assert.True(t, term(gparam("x"), nested).ContainsUnresolvedSymbols())
}

func Test_MutableTerm_01(t *testing.T) {
	var (
		a = assoc("P", "A")
		b = assoc("P", "B")
		c = assoc("P", "C")
	)
	//
	mut := NewMutableTerm(term(a, b, c))
	//
	assert.Equal(t, uint(3), mut.Len())
	assert.True(t, mut.Get(1).Equal(b))
	// Replacing an infix.
	mut.Replace(1, 3, term(a))
	assert.True(t, mut.Freeze().Equals(term(a, a)))
	// Replacement by a longer term.
	mut.Replace(0, 1, term(c, c))
	assert.True(t, mut.Freeze().Equals(term(c, c, a)))
	// Subterm extraction.
	assert.True(t, mut.Subterm(1, 3).Equals(term(c, a)))
}

func checkLess(t *testing.T, lhs Symbol, rhs Symbol) {
	if lhs.Compare(rhs) >= 0 {
		t.Errorf("expected %s < %s", lhs.String(), rhs.String())
	}
	//
	if rhs.Compare(lhs) <= 0 {
		t.Errorf("expected %s > %s", rhs.String(), lhs.String())
	}
}

func Test_MutableTerm_02(t *testing.T) {
	var (
		a   = assoc("P", "A")
		mut = NewMutableTerm(term(a))
	)
	// Mutating a clone leaves the original untouched.
	clone := mut.Clone()
	clone.Append(a)
	//
	assert.Equal(t, uint(1), mut.Len())
	assert.Equal(t, uint(2), clone.Len())
	assert.False(t, mut.Equals(clone))
}
