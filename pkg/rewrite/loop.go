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
	"sort"
)

// Loop is a closed rewrite path: applying Path starting from Basepoint yields
// Basepoint again, leaving the evaluator's stacks empty. Loops witness
// identities among rewrite rules; homotopy reduction consumes them to detect
// redundant rules.
type Loop struct {
	// Basepoint is the term the loop starts and ends at.
	Basepoint Term
	// Path is the closed path itself.
	Path Path
	// deleted marks a loop which can no longer witness a redundancy.
	deleted bool
}

// NewLoop constructs a loop at the given basepoint.
func NewLoop(basepoint Term, path Path) Loop {
	return Loop{Basepoint: basepoint, Path: path}
}

// IsDeleted reports whether this loop has been deleted.
func (p *Loop) IsDeleted() bool {
	return p.deleted
}

// MarkDeleted flags this loop as deleted, which may happen at most once.
func (p *Loop) MarkDeleted() {
	if p.deleted {
		panic("loop already deleted")
	}
	//
	p.deleted = true
}

// FindRulesAppearingOnceInEmptyContext returns the identifiers of rules which
// are applied exactly once in this loop, with zero offsets, at a point where
// the evaluator holds nothing but the term being rewritten. Such a rule is
// redundant: the loop witnesses that it equals travelling the rest of the
// loop the other way. The result is in ascending rule order.
func (p *Loop) FindRulesAppearingOnceInEmptyContext(system *RewriteSystem) []uint {
	var (
		// Rules appearing in empty context (possibly more than once).
		rulesInEmptyContext = make(map[uint]bool)
		// The number of times each rule appears (with or without context).
		ruleMultiplicity = make(map[uint]uint)
		//
		evaluator = NewEvaluator(p.Basepoint)
	)
	//
	for _, step := range p.Path.Steps() {
		if step.Kind == StepApplyRule {
			if !step.IsInContext() && !evaluator.IsInContext() {
				rulesInEmptyContext[step.Arg] = true
			}
			//
			ruleMultiplicity[step.Arg]++
		}
		//
		evaluator.Apply(step, system)
	}
	// Collect all rules seen exactly once in empty context.
	var result []uint
	//
	for ruleID := range rulesInEmptyContext {
		if ruleMultiplicity[ruleID] == 1 {
			result = append(result, ruleID)
		}
	}
	// Impose a deterministic order, since map iteration has none.
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	//
	return result
}

func (p *Loop) String() string {
	return fmt.Sprintf("%s: %s", p.Basepoint.String(), p.Path.String())
}
