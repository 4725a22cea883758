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

// Shorthand constructors used throughout the tests.

func gparam(name string) Symbol {
	return NewGenericParamSymbol(name)
}

func assoc(proto string, name string) Symbol {
	return NewAssociatedTypeSymbol(proto, name)
}

func proto(name string) Symbol {
	return NewProtocolSymbol(name)
}

func unresolved(name string) Symbol {
	return NewNameSymbol(name)
}

func term(symbols ...Symbol) Term {
	return NewTerm(symbols...)
}

func rawRule(system *RewriteSystem, lhs Term, rhs Term) uint {
	return system.AddRawRule(NewRule(lhs, rhs))
}

func newSystem() *RewriteSystem {
	system := NewRewriteSystem(NewContext())
	system.SetRecordLoops(true)
	//
	return system
}

// threeRuleSystem builds the standard witnessing-loop fixture: three rules
//
//	r0: [P:C].[P:B] => [P:C]
//	r1: [P:C]       => [P:A]
//	r2: [P:C].[P:B] => [P:A]
//
// together with the loop at [P:C].[P:B] applying r2, then r1 backwards, then
// r0 backwards. Every rule appears exactly once in empty context.
func threeRuleSystem() *RewriteSystem {
	var (
		system = newSystem()
		a      = assoc("P", "A")
		b      = assoc("P", "B")
		c      = assoc("P", "C")
	)
	//
	rawRule(system, term(c, b), term(c))
	rawRule(system, term(c), term(a))
	rawRule(system, term(c, b), term(a))
	//
	var path Path
	//
	path.Add(NewRuleStep(0, 0, 2, false))
	path.Add(NewRuleStep(0, 0, 1, true))
	path.Add(NewRuleStep(0, 0, 0, true))
	//
	system.RecordLoop(term(c, b), path)
	system.MarkComplete()
	//
	return system
}

// conformanceSystem builds a fixture in which two protocol conformance rules
// are connected by a loop:
//
//	r0: [P:C].[Q] => [P:C]     (conformance)
//	r1: [P:A].[Q] => [P:A]     (conformance)
//	r2: [P:C]     => [P:A]
//
// The loop at [P:C].[Q] applies r0, then r2, then r1 backwards, then r2
// backwards in context. Rules r0 and r1 appear once in empty context; r2
// appears twice.
func conformanceSystem() *RewriteSystem {
	var (
		system = newSystem()
		a      = assoc("P", "A")
		c      = assoc("P", "C")
		q      = proto("Q")
	)
	//
	rawRule(system, term(c, q), term(c))
	rawRule(system, term(a, q), term(a))
	rawRule(system, term(c), term(a))
	//
	var path Path
	//
	path.Add(NewRuleStep(0, 0, 0, false))
	path.Add(NewRuleStep(0, 0, 2, false))
	path.Add(NewRuleStep(0, 0, 1, true))
	path.Add(NewRuleStep(0, 1, 2, true))
	//
	system.RecordLoop(term(c, q), path)
	system.MarkComplete()
	//
	return system
}
