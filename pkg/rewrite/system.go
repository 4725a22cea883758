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

	"github.com/consensys/go-rewrite/pkg/util/collection/bit"
)

// ConcreteTypeWitnessEntry records the symbols involved in a concrete type
// (or same type) witness, referenced by index from witness steps.
type ConcreteTypeWitnessEntry struct {
	// ConcreteConformance symbol [concrete: C : P].
	ConcreteConformance Symbol
	// AssocType symbol [P:X].
	AssocType Symbol
	// ConcreteType symbol [concrete: C.X] witnessing X in C : P.
	ConcreteType Symbol
}

// GeneratingConformances computes, for a complete rewrite system, the set of
// conformance rules which are redundant modulo the generating conformances.
// The algorithm itself lives with the completion procedure; minimization
// only consumes its output.
type GeneratingConformances func(system *RewriteSystem, redundantConformances *bit.Set)

// RewriteSystem holds the rules and loops of a confluent rewrite system, and
// implements minimization of the rule set via homotopy reduction. Rules and
// loops are appended once, before minimization, and never removed; deletion
// is a flag flip and all identifiers remain stable.
type RewriteSystem struct {
	// Context parameterizing the term order and debug output.
	ctx *Context

	// The rules added so far, including rules from our client as well as
	// rules introduced by the completion procedure.
	rules []Rule

	// A prefix trie over rule left hand sides to optimize lookup during
	// simplification.
	trie *Trie

	// Homotopy generators for this rewrite system: the rewrite loops which
	// rewrite a term back to itself. Completion records these while
	// resolving critical pairs.
	loops []Loop

	// Witness table referenced by ConcreteTypeWitness/SameTypeWitness steps.
	witnesses  []ConcreteTypeWitnessEntry
	witnessIDs map[string]uint

	// Callback computing the redundant-conformance set for pass three of
	// minimization. When nil, pass three runs with an empty set.
	generatingConformances GeneratingConformances

	// Whether loops are recorded as rules are added.
	recordLoops bool

	// Whether the confluent completion has been computed.
	complete bool

	// Whether the rewrite system has been minimized.
	minimized bool
}

// NewRewriteSystem constructs an empty rewrite system over the given context.
func NewRewriteSystem(ctx *Context) *RewriteSystem {
	return &RewriteSystem{
		ctx:        ctx,
		trie:       NewTrie(),
		witnessIDs: make(map[string]uint),
	}
}

// GetContext returns the rewrite context of this system.
func (p *RewriteSystem) GetContext() *Context {
	return p.ctx
}

// SetRecordLoops enables (or disables) recording of rewrite loops.
func (p *RewriteSystem) SetRecordLoops(record bool) {
	p.recordLoops = record
}

// SetGeneratingConformances installs the callback used during minimization
// to obtain the set of redundant conformance rules.
func (p *RewriteSystem) SetGeneratingConformances(fn GeneratingConformances) {
	p.generatingConformances = fn
}

// MarkComplete records that the confluent completion has been computed. Only
// a complete system can be minimized.
func (p *RewriteSystem) MarkComplete() {
	p.complete = true
}

// IsMinimized reports whether minimization has run.
func (p *RewriteSystem) IsMinimized() bool {
	return p.minimized
}

// RuleCount returns the number of rules in this system.
func (p *RewriteSystem) RuleCount() uint {
	return uint(len(p.rules))
}

// GetRule returns the rule with the given identifier.
func (p *RewriteSystem) GetRule(ruleID uint) *Rule {
	if ruleID >= uint(len(p.rules)) {
		panic(fmt.Sprintf("unknown rule %d", ruleID))
	}
	//
	return &p.rules[ruleID]
}

// Rules returns all rules of this system, indexed by identifier. The
// returned slice must not be appended to.
func (p *RewriteSystem) Rules() []Rule {
	return p.rules
}

// AddRule simplifies both sides of a candidate rule against the existing
// rules, orients the result so the left hand side is greater, and appends it.
// Returns false (without adding anything) when both sides reduce to the same
// term.
func (p *RewriteSystem) AddRule(lhs *MutableTerm, rhs *MutableTerm) bool {
	p.Simplify(lhs, nil)
	p.Simplify(rhs, nil)
	//
	var (
		flhs = lhs.Freeze()
		frhs = rhs.Freeze()
		c    = p.ctx.CompareTerms(flhs, frhs)
	)
	//
	if c == 0 {
		return false
	}
	//
	if c < 0 {
		flhs, frhs = frhs, flhs
	}
	//
	p.appendRule(NewRule(flhs, frhs))
	//
	return true
}

// AddPermanentRule adds a rule carrying the permanent flag. Permanent rules
// are re-added on every rebuild and never deleted by minimization.
func (p *RewriteSystem) AddPermanentRule(lhs *MutableTerm, rhs *MutableTerm) bool {
	if !p.AddRule(lhs, rhs) {
		return false
	}
	//
	p.rules[len(p.rules)-1].MarkPermanent()
	//
	return true
}

// AddExplicitRule adds a rule carrying the explicit flag, recording that the
// requirement was written by the user.
func (p *RewriteSystem) AddExplicitRule(lhs *MutableTerm, rhs *MutableTerm) bool {
	if !p.AddRule(lhs, rhs) {
		return false
	}
	//
	p.rules[len(p.rules)-1].MarkExplicit()
	//
	return true
}

// AddRawRule appends a rule exactly as given, without simplification or
// orientation checks beyond the order invariant. This is the entry point
// used when replaying a system produced by an external completion run.
func (p *RewriteSystem) AddRawRule(rule Rule) uint {
	if p.ctx.CompareTerms(rule.GetLHS(), rule.GetRHS()) <= 0 {
		panic(fmt.Sprintf("rule %s violates the term order", rule.String()))
	}
	//
	return p.appendRule(rule)
}

func (p *RewriteSystem) appendRule(rule Rule) uint {
	var ruleID = uint(len(p.rules))
	//
	p.rules = append(p.rules, rule)
	p.trie.Insert(rule.GetLHS(), ruleID)
	//
	return ruleID
}

// RecordLoop appends a rewrite loop, provided loop recording is enabled.
func (p *RewriteSystem) RecordLoop(basepoint Term, path Path) {
	if !p.recordLoops {
		return
	}
	//
	p.loops = append(p.loops, NewLoop(basepoint, path))
}

// Loops returns all loops of this system, indexed by identifier.
func (p *RewriteSystem) Loops() []Loop {
	return p.loops
}

// RecordConcreteTypeWitness interns a witness entry, returning its index.
func (p *RewriteSystem) RecordConcreteTypeWitness(witness ConcreteTypeWitnessEntry) uint {
	key := witness.ConcreteConformance.String() + "|" + witness.AssocType.String() +
		"|" + witness.ConcreteType.String()
	//
	if id, ok := p.witnessIDs[key]; ok {
		return id
	}
	//
	id := uint(len(p.witnesses))
	p.witnesses = append(p.witnesses, witness)
	p.witnessIDs[key] = id
	//
	return id
}

// GetConcreteTypeWitness returns the witness entry with the given index.
func (p *RewriteSystem) GetConcreteTypeWitness(witnessID uint) ConcreteTypeWitnessEntry {
	if witnessID >= uint(len(p.witnesses)) {
		panic(fmt.Sprintf("unknown witness %d", witnessID))
	}
	//
	return p.witnesses[witnessID]
}

func (p *RewriteSystem) String() string {
	var builder strings.Builder
	//
	builder.WriteString("rewrite system {\n")
	//
	for i := range p.rules {
		builder.WriteString(fmt.Sprintf("  (#%d) %s%s\n", i, p.rules[i].String(),
			flagsString(&p.rules[i])))
	}
	//
	for i := range p.loops {
		builder.WriteString(fmt.Sprintf("  loop %d: %s\n", i, p.loops[i].String()))
	}
	//
	builder.WriteString("}")
	//
	return builder.String()
}

func flagsString(rule *Rule) string {
	var flags []string
	//
	if rule.IsPermanent() {
		flags = append(flags, "permanent")
	}
	//
	if rule.IsExplicit() {
		flags = append(flags, "explicit")
	}
	//
	if rule.IsSimplified() {
		flags = append(flags, "simplified")
	}
	//
	if rule.IsRedundant() {
		flags = append(flags, "redundant")
	}
	//
	if rule.IsConflicting() {
		flags = append(flags, "conflicting")
	}
	//
	if len(flags) == 0 {
		return ""
	}
	//
	return " [" + strings.Join(flags, ",") + "]"
}
