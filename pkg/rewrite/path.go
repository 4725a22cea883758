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

// Path records a sequence of zero or more rewrite steps applied to a term.
// Paths are value-like; cloning is cheap and no path shares steps with
// another.
type Path struct {
	steps []Step
}

// NewPath constructs a path from the given steps.
func NewPath(steps ...Step) Path {
	return Path{steps}
}

// IsEmpty checks whether this path contains any steps.
func (p *Path) IsEmpty() bool {
	return len(p.steps) == 0
}

// Len returns the number of steps in this path.
func (p *Path) Len() uint {
	return uint(len(p.steps))
}

// Steps returns the steps of this path, in order. The returned slice must
// not be mutated.
func (p *Path) Steps() []Step {
	return p.steps
}

// Add appends a step to this path.
func (p *Path) Add(step Step) {
	p.steps = append(p.steps, step)
}

// AppendPath appends all steps of another path to this path (horizontal
// composition).
func (p *Path) AppendPath(other Path) {
	p.steps = append(p.steps, other.steps...)
}

// Clone creates a true copy of this path.
func (p *Path) Clone() Path {
	return Path{slices.Clone(p.steps)}
}

// Invert reverses this path in place: the step order is reversed and every
// step has its direction flipped.
func (p *Path) Invert() {
	slices.Reverse(p.steps)
	//
	for i := range p.steps {
		p.steps[i].Invert()
	}
}

// SplitCycleAtRule takes a cycle containing exactly one application of the
// given rule in empty context, and returns a new definition for that rule:
// the path obtained by deleting the rule from the cycle. The returned path
// rewrites the rule's left hand side to its right hand side.
func (p *Path) SplitCycleAtRule(ruleID uint) Path {
	// A cycle is a path from the basepoint back to the basepoint. Somewhere
	// in this path, an application of ruleID appears in empty context. Split
	// the cycle there: basepointToLhs runs from the basepoint up to the
	// rule's left hand side, rhsToBasepoint from the right hand side back.
	// Since the rule appears exactly once, neither part mentions it.
	var (
		basepointToLhs  Path
		rhsToBasepoint  Path
		sawRule         bool
		ruleWasInverted bool
	)
	//
	for _, step := range p.steps {
		if step.Kind == StepApplyRule && step.Arg == ruleID {
			if sawRule {
				panic("rule appears more than once")
			}
			//
			if step.IsInContext() {
				panic("rule appears in context")
			}
			//
			ruleWasInverted = step.Inverse
			sawRule = true
			//
			continue
		}
		//
		if sawRule {
			rhsToBasepoint.Add(step)
		} else {
			basepointToLhs.Add(step)
		}
	}
	// Build a path from the rule's lhs to the rule's rhs via the basepoint.
	result := rhsToBasepoint
	result.AppendPath(basepointToLhs)
	// We want a path from the lhs to the rhs, so invert unless the rewrite
	// step itself was inverted.
	if !ruleWasInverted {
		result.Invert()
	}
	//
	return result
}

// ReplaceRuleWithPath replaces every rewrite step involving the given rule
// with the replacement path (or its inverse, if the step was inverted),
// re-contextualized at each occurrence. Returns true if any steps were
// replaced; false means the rule did not appear in this path.
func (p *Path) ReplaceRuleWithPath(ruleID uint, path Path) bool {
	var foundAny = false
	//
	for _, step := range p.steps {
		if step.Kind == StepApplyRule && step.Arg == ruleID {
			foundAny = true
			break
		}
	}
	//
	if !foundAny {
		return false
	}
	//
	var newSteps []Step
	//
	for _, step := range p.steps {
		if step.Kind != StepApplyRule || step.Arg != ruleID {
			newSteps = append(newSteps, step)
			continue
		}
		// Keep track of StepDecompose/Compose pairs. Any steps in between do not
		// need to be re-contextualized, since they operate on new terms that
		// were pushed on the stack by the Compose operation.
		var decomposeCount = 0
		//
		adjustStep := func(newStep Step) {
			inverse := newStep.Inverse != step.Inverse
			//
			if newStep.Kind == StepDecompose && inverse {
				if decomposeCount == 0 {
					panic("unbalanced decompose")
				}
				//
				decomposeCount--
			}
			//
			if decomposeCount == 0 {
				newStep.StartOffset += step.StartOffset
				newStep.EndOffset += step.EndOffset
			}
			//
			newStep.Inverse = inverse
			newSteps = append(newSteps, newStep)
			//
			if newStep.Kind == StepDecompose && !inverse {
				decomposeCount++
			}
		}
		//
		if step.Inverse {
			for i := len(path.steps) - 1; i >= 0; i-- {
				adjustStep(path.steps[i])
			}
		} else {
			for _, newStep := range path.steps {
				adjustStep(newStep)
			}
		}
	}
	//
	p.steps = newSteps
	//
	return true
}

func (p *Path) String() string {
	var builder strings.Builder
	//
	builder.WriteString("[")
	//
	for i, step := range p.steps {
		if i != 0 {
			builder.WriteString(" ")
		}
		//
		builder.WriteString(step.String())
	}
	//
	builder.WriteString("]")
	//
	return builder.String()
}

// ContainsRule checks whether this path applies the given rule anywhere.
func (p *Path) ContainsRule(ruleID uint) bool {
	for _, step := range p.steps {
		if step.Kind == StepApplyRule && step.Arg == ruleID {
			return true
		}
	}
	//
	return false
}

// RuleCount returns the number of times the given rule is applied in this
// path, in either direction.
func (p *Path) RuleCount(ruleID uint) uint {
	var count = uint(0)
	//
	for _, step := range p.steps {
		if step.Kind == StepApplyRule && step.Arg == ruleID {
			count++
		}
	}
	//
	return count
}
