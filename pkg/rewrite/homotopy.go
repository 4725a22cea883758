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

// This file implements the algorithm for computing a minimal set of rules
// from a confluent rewrite system. A minimal set of rules is:
//
// 1) Large enough that computing the confluent completion produces the
//    original rewrite system;
//
// 2) Small enough that no further rules can be deleted without changing the
//    resulting confluent rewrite system.
//
// Redundant rules are detected by analyzing the set of rewrite loops computed
// by the completion procedure. If a rule appears exactly once in a loop and
// without context, the loop witnesses a redundancy: the rule is equivalent to
// travelling around the loop in the other direction. The rule and the loop
// can then be deleted, after replacing any occurrence of the rule in the
// remaining loops with the alternate definition obtained by splitting the
// witnessing loop. Iterating this process eventually produces a minimal rule
// set.
//
// Rules for introducing associated type symbols are marked permanent; they
// are re-added whenever a rewrite system is rebuilt from a minimal signature,
// so instead of deleting them it is better to leave them in place in case
// that allows other rules to be deleted instead.
//
// For a conformance rule to be redundant, a stronger condition is needed than
// appearing once in a loop without context: the rule must also not be a
// generating conformance. That set is computed by a separate algorithm whose
// output is consumed here.

package rewrite

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/consensys/go-rewrite/pkg/util/collection/bit"
)

// PropagateExplicitBits propagates the explicit flag through loops: if a loop
// contains an explicit rule in empty context, every other rule appearing once
// in empty context within the same loop becomes explicit too.
//
// When minimizing we prefer to eliminate non-explicit rules, as a heuristic
// to keep minimized requirements in the protocol where they were originally
// written. However, requirements are usually written in a non-canonical form;
// completion connects the original rule to its canonical form via a loop in
// which both appear in empty context, and the explicit bit must follow that
// connection to the canonical representative.
func (p *RewriteSystem) PropagateExplicitBits() {
	for i := range p.loops {
		rulesInEmptyContext := p.loops[i].FindRulesAppearingOnceInEmptyContext(p)
		//
		sawExplicitRule := false
		//
		for _, ruleID := range rulesInEmptyContext {
			if p.GetRule(ruleID).IsExplicit() {
				sawExplicitRule = true
			}
		}
		//
		if sawExplicitRule {
			for _, ruleID := range rulesInEmptyContext {
				rule := p.GetRule(ruleID)
				//
				if !rule.IsPermanent() && !rule.IsExplicit() {
					rule.MarkExplicit()
				}
			}
		}
	}
}

// isCandidateForDeletion checks whether a rule may be deleted in the current
// pass of the minimization algorithm.
func (p *RewriteSystem) isCandidateForDeletion(ruleID uint, redundantConformances *bit.Set) bool {
	rule := p.GetRule(ruleID)
	// A rule marked redundant should already have been replaced with a
	// rewrite path in all loops.
	if rule.IsRedundant() {
		panic(fmt.Sprintf("redundant rule %d still appears in a loop", ruleID))
	}
	// Permanent rules are not worth eliminating since they are re-added
	// every time; better to find other candidates in the same loop.
	if rule.IsPermanent() {
		return false
	}
	// Rules involving unresolved name symbols are derived from an associated
	// type introduction rule together with a conformance rule. They are
	// eliminated in the first pass.
	if rule.GetLHS().ContainsUnresolvedSymbols() {
		return true
	}
	// Conformance rules are eliminated via the generating conformances
	// algorithm. The first pass skips them; the final pass eliminates any
	// conformance rule which is redundant according to both homotopy
	// reduction and generating conformances.
	if rule.IsAnyConformanceRule() {
		if redundantConformances == nil {
			return false
		}
		//
		if !redundantConformances.Contains(ruleID) {
			return false
		}
	}
	//
	return true
}

// findRuleToDelete scans all loops for rules appearing once in empty context
// and selects the least canonical candidate. On success the witnessing loop
// is split at the rule and marked deleted, the rule is marked redundant, and
// the replacement path is returned together with the rule id.
func (p *RewriteSystem) findRuleToDelete(redundantConformances *bit.Set) (uint, Path, bool) {
	type candidate struct {
		loopID uint
		ruleID uint
	}
	//
	var candidates []candidate
	//
	for loopID := range p.loops {
		loop := &p.loops[loopID]
		//
		if loop.IsDeleted() {
			continue
		}
		//
		rules := loop.FindRulesAppearingOnceInEmptyContext(p)
		// A loop yielding nothing can never witness a redundancy again.
		if len(rules) == 0 {
			loop.MarkDeleted()
			continue
		}
		//
		for _, ruleID := range rules {
			candidates = append(candidates, candidate{uint(loopID), ruleID})
		}
	}
	//
	var (
		found    candidate
		foundAny = false
	)
	//
	for _, pair := range candidates {
		if !p.isCandidateForDeletion(pair.ruleID, redundantConformances) {
			continue
		}
		//
		if !foundAny {
			found, foundAny = pair, true
			continue
		}
		// Prefer to delete less canonical rules. Ties keep the first pair
		// seen, making the choice deterministic.
		if p.GetRule(pair.ruleID).Compare(p.GetRule(found.ruleID), p.ctx) > 0 {
			found = pair
		}
	}
	//
	if !foundAny {
		return 0, Path{}, false
	}
	//
	loop := &p.loops[found.loopID]
	replacementPath := loop.Path.SplitCycleAtRule(found.ruleID)
	//
	loop.MarkDeleted()
	p.GetRule(found.ruleID).MarkRedundant()
	//
	return found.ruleID, replacementPath, true
}

// deleteRule replaces all occurrences of a redundant rule, in every remaining
// loop, with the replacement path obtained from the witnessing loop.
func (p *RewriteSystem) deleteRule(ruleID uint, replacementPath Path) {
	if p.ctx.Debugging(DebugHomotopyReduction) {
		log.Debugf("* deleting rule %s (#%d)", p.GetRule(ruleID).String(), ruleID)
		log.Debugf("* replacement path: %s", replacementPath.String())
	}
	//
	for loopID := range p.loops {
		loop := &p.loops[loopID]
		//
		if loop.IsDeleted() {
			continue
		}
		//
		if !loop.Path.ReplaceRuleWithPath(ruleID, replacementPath) {
			continue
		}
		//
		if p.ctx.Debugging(DebugHomotopyReduction) {
			log.Debugf("** updated loop %d: %s", loopID, loop.String())
		}
	}
}

// performHomotopyReduction deletes rules until the current pass admits no
// further candidates. Each iteration strictly increases the number of
// redundant rules, which is bounded by the rule count, hence termination.
func (p *RewriteSystem) performHomotopyReduction(redundantConformances *bit.Set) {
	for {
		ruleID, replacementPath, ok := p.findRuleToDelete(redundantConformances)
		//
		if !ok {
			return
		}
		//
		p.deleteRule(ruleID, replacementPath)
	}
}

// Minimize uses the loops to delete redundant rewrite rules via a series of
// Tietze transformations, rewriting the remaining loops as each rule is
// deleted. Redundant rules have their redundant flag set; no
// rule or loop is removed from storage.
func (p *RewriteSystem) Minimize() {
	if !p.complete {
		panic("cannot minimize an incomplete rewrite system")
	}
	//
	if p.minimized {
		panic("rewrite system already minimized")
	}
	//
	p.minimized = true
	// Check invariants before homotopy reduction.
	p.verifyLoops()
	//
	p.PropagateExplicitBits()
	// First pass: eliminate all redundant rules that are not conformance
	// rules.
	p.performHomotopyReduction(nil)
	// Now find a minimal set of generating conformances.
	var redundantConformances bit.Set
	//
	if p.generatingConformances != nil {
		p.generatingConformances(p, &redundantConformances)
	}
	// Final pass: eliminate all redundant conformance rules.
	p.performHomotopyReduction(&redundantConformances)
	// Check invariants after homotopy reduction.
	p.verifyLoops()
	p.verifyRedundantConformances(&redundantConformances)
	p.verifyMinimizedRules()
}

// HadError reports logical failure after minimization: in a conformance-valid
// rewrite system, any rule with unresolved symbols should have been
// simplified by another rule, and no rule should conflict.
func (p *RewriteSystem) HadError() bool {
	if !p.complete || !p.minimized {
		panic("rewrite system must be complete and minimized")
	}
	//
	for i := range p.rules {
		rule := &p.rules[i]
		//
		if rule.IsPermanent() {
			continue
		}
		//
		if rule.IsConflicting() {
			return true
		}
		//
		if !rule.IsRedundant() && rule.ContainsUnresolvedSymbols() {
			return true
		}
	}
	//
	return false
}

// GetMinimizedProtocolRules collects all non-permanent, non-redundant,
// non-conflicting, fully resolved rules whose domain is one of the given
// protocols; that is, the first symbol of the left hand side is a protocol or
// associated type symbol whose protocol is in protos. These rules form the
// requirement signatures of the protocols.
func (p *RewriteSystem) GetMinimizedProtocolRules(protos []string) map[string][]uint {
	if !p.minimized {
		panic("rewrite system not minimized")
	}
	//
	rules := make(map[string][]uint)
	//
	for ruleID := range p.rules {
		rule := &p.rules[ruleID]
		//
		if rule.IsPermanent() || rule.IsRedundant() || rule.IsConflicting() ||
			rule.ContainsUnresolvedSymbols() {
			continue
		}
		//
		head := rule.GetLHS().Get(0)
		//
		if head.GetKind() != Protocol && head.GetKind() != AssociatedType {
			continue
		}
		//
		domain := head.GetProtocols()
		//
		if len(domain) != 1 {
			panic(fmt.Sprintf("expected a single protocol, found %d", len(domain)))
		}
		//
		for _, proto := range protos {
			if proto == domain[0] {
				rules[proto] = append(rules[proto], uint(ruleID))
				break
			}
		}
	}
	//
	return rules
}

// GetMinimizedGenericSignatureRules collects all non-permanent,
// non-redundant, non-conflicting, fully resolved rules whose left hand side
// begins with a generic parameter symbol. These rules form the top-level
// generic signature of this rewrite system.
func (p *RewriteSystem) GetMinimizedGenericSignatureRules() []uint {
	if !p.minimized {
		panic("rewrite system not minimized")
	}
	//
	var rules []uint
	//
	for ruleID := range p.rules {
		rule := &p.rules[ruleID]
		//
		if rule.IsPermanent() || rule.IsRedundant() || rule.IsConflicting() ||
			rule.ContainsUnresolvedSymbols() {
			continue
		}
		//
		if rule.GetLHS().Get(0).GetKind() != GenericParam {
			continue
		}
		//
		rules = append(rules, uint(ruleID))
	}
	//
	return rules
}

// verifyLoops checks that each loop begins and ends at its basepoint with
// nothing left over on the evaluator stacks.
func (p *RewriteSystem) verifyLoops() {
	for i := range p.loops {
		var (
			loop      = &p.loops[i]
			evaluator = NewEvaluator(loop.Basepoint)
		)
		//
		evaluator.ApplyPath(loop.Path, p)
		//
		if !evaluator.GetCurrentTerm().Freeze().Equals(loop.Basepoint) {
			panic(fmt.Sprintf("not a loop: %s", loop.String()))
		}
		//
		if evaluator.IsInContext() {
			panic(fmt.Sprintf("leftover terms on evaluator stack: %s", evaluator.String()))
		}
	}
}

// verifyRedundantConformances checks that homotopy reduction eliminated every
// conformance the generating conformances algorithm reported as redundant.
func (p *RewriteSystem) verifyRedundantConformances(redundantConformances *bit.Set) {
	redundantConformances.Iter(func(ruleID uint) {
		rule := p.GetRule(ruleID)
		//
		if rule.IsPermanent() {
			panic(fmt.Sprintf("permanent rule %d cannot be redundant", ruleID))
		}
		//
		if rule.IsIdentityConformanceRule() {
			panic(fmt.Sprintf("identity conformance %d cannot be redundant", ruleID))
		}
		//
		if !rule.IsAnyConformanceRule() {
			panic(fmt.Sprintf("redundant conformance %d is not a conformance rule", ruleID))
		}
		//
		if !rule.IsRedundant() {
			panic(fmt.Sprintf("homotopy reduction did not eliminate redundant conformance (#%d) %s",
				ruleID, rule.String()))
		}
	})
}

// verifyMinimizedRules checks the flag invariants after minimization:
// permanent rules can be simplified but never redundant, and simplified rules
// must be redundant unless they are protocol conformance rules, which are
// kept in their original protocol definition for compatibility with the
// previous minimization algorithm.
func (p *RewriteSystem) verifyMinimizedRules() {
	for ruleID := range p.rules {
		rule := &p.rules[ruleID]
		//
		if rule.IsPermanent() {
			if rule.IsRedundant() {
				panic(fmt.Sprintf("permanent rule is redundant: %s", rule.String()))
			}
			//
			continue
		}
		//
		_, isProtocolConformance := rule.IsProtocolConformanceRule()
		//
		if rule.IsSimplified() && !rule.IsRedundant() && !isProtocolConformance {
			panic(fmt.Sprintf("simplified rule is not redundant: %s", rule.String()))
		}
	}
}
