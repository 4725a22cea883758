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
)

// StepKind identifies the variant of a rewrite step.
type StepKind uint8

const (
	// StepApplyRule applies a rewrite rule to the term at the top of the
	// primary stack. Formally this is a whiskered, oriented rewrite rule:
	// given a rule (X => Y) and the term A.X.B, application at start offset
	// |A| and end offset |B| yields A.Y.B.
	StepApplyRule StepKind = iota

	// StepAdjustConcreteType prepends (or, inverted, strips) a prefix of the
	// current term to each substitution of the trailing superclass or
	// concrete type symbol. The Arg field holds the prefix length.
	StepAdjustConcreteType

	// StepShift moves the top of the primary stack to the secondary stack, or
	// back again when inverted.
	StepShift

	// StepDecompose pushes the substitutions of the trailing superclass or
	// concrete type symbol onto the primary stack. Inverted, it pops them
	// back into the symbol. The Arg field holds the substitution count.
	StepDecompose

	// StepConcreteConformance fuses a trailing [concrete: C].[P] symbol pair into
	// a single [concrete: C : P] symbol, or splits it when inverted.
	StepConcreteConformance

	// StepSuperclassConformance fuses a trailing [superclass: C].[P] symbol pair
	// into a single [concrete: C : P] symbol, or splits it when inverted.
	StepSuperclassConformance

	// StepConcreteTypeWitness eliminates (introduces, when inverted) the concrete
	// type symbol for a type witness. The Arg field holds the index of the
	// witness recorded in the rewrite system.
	StepConcreteTypeWitness

	// StepSameTypeWitness eliminates (introduces, when inverted) the associated
	// type symbol of a same-type witness. The Arg field holds the index of
	// the witness recorded in the rewrite system.
	StepSameTypeWitness
)

func (k StepKind) String() string {
	switch k {
	case StepApplyRule:
		return "rule"
	case StepAdjustConcreteType:
		return "adjust"
	case StepShift:
		return "shift"
	case StepDecompose:
		return "decompose"
	case StepConcreteConformance:
		return "concrete-conformance"
	case StepSuperclassConformance:
		return "superclass-conformance"
	case StepConcreteTypeWitness:
		return "concrete-type-witness"
	case StepSameTypeWitness:
		return "same-type-witness"
	}
	//
	panic(fmt.Sprintf("unknown step kind %d", k))
}

// Step records a single evaluation step in a rewrite path.
type Step struct {
	// Kind of this step.
	Kind StepKind
	// StartOffset is the size of the left whisker, i.e. the position within
	// the current term where the step applies. In A.(X => Y).B this is |A|.
	StartOffset uint
	// EndOffset is the size of the right whisker, i.e. the length of the
	// remaining suffix. In A.(X => Y).B this is |B|.
	EndOffset uint
	// Arg holds the rule index for StepApplyRule, the prefix length for
	// StepAdjustConcreteType, the substitution count for StepDecompose, and the
	// witness index for the witness kinds.
	Arg uint
	// Inverse indicates the step runs right-to-left: a rule application step
	// replaces an occurrence of the rule's right hand side with its left hand
	// side, and the stack-manipulation kinds undo their forward action.
	Inverse bool
}

// NewRuleStep constructs a rule application step for the given rule.
func NewRuleStep(startOffset uint, endOffset uint, ruleID uint, inverse bool) Step {
	return Step{StepApplyRule, startOffset, endOffset, ruleID, inverse}
}

// NewAdjustmentStep constructs an adjustment step for a prefix of the
// given length.
func NewAdjustmentStep(prefixLen uint, endOffset uint, inverse bool) Step {
	return Step{StepAdjustConcreteType, 0, endOffset, prefixLen, inverse}
}

// NewShiftStep constructs a shift step.
func NewShiftStep(inverse bool) Step {
	return Step{StepShift, 0, 0, 0, inverse}
}

// NewDecomposeStep constructs a decompose step for the given number of
// substitutions.
func NewDecomposeStep(numSubstitutions uint, inverse bool) Step {
	return Step{StepDecompose, 0, 0, numSubstitutions, inverse}
}

// NewConcreteConformanceStep constructs a concrete conformance step.
func NewConcreteConformanceStep(inverse bool) Step {
	return Step{StepConcreteConformance, 0, 0, 0, inverse}
}

// NewSuperclassConformanceStep constructs a superclass conformance step.
func NewSuperclassConformanceStep(inverse bool) Step {
	return Step{StepSuperclassConformance, 0, 0, 0, inverse}
}

// NewConcreteTypeWitnessStep constructs a concrete type witness step for the
// witness with the given index.
func NewConcreteTypeWitnessStep(witnessID uint, inverse bool) Step {
	return Step{StepConcreteTypeWitness, 0, 0, witnessID, inverse}
}

// NewSameTypeWitnessStep constructs a same type witness step for the witness
// with the given index.
func NewSameTypeWitnessStep(witnessID uint, inverse bool) Step {
	return Step{StepSameTypeWitness, 0, 0, witnessID, inverse}
}

// IsInContext determines whether this step applies to a proper infix of the
// current term, rather than the whole term.
func (p Step) IsInContext() bool {
	return p.StartOffset > 0 || p.EndOffset > 0
}

// Invert flips the direction of this step.
func (p *Step) Invert() {
	p.Inverse = !p.Inverse
}

// Inverted returns a copy of this step running in the opposite direction.
func (p Step) Inverted() Step {
	p.Inverse = !p.Inverse
	return p
}

func (p Step) String() string {
	var inverse string
	//
	if p.Inverse {
		inverse = "!"
	}
	//
	switch p.Kind {
	case StepApplyRule:
		return fmt.Sprintf("%s(rule %d @%d,%d)", inverse, p.Arg, p.StartOffset, p.EndOffset)
	case StepAdjustConcreteType:
		return fmt.Sprintf("%s(adjust %d)", inverse, p.Arg)
	case StepShift:
		return fmt.Sprintf("%s(shift)", inverse)
	case StepDecompose:
		return fmt.Sprintf("%s(decompose %d)", inverse, p.Arg)
	case StepConcreteConformance, StepSuperclassConformance:
		return fmt.Sprintf("%s(%s)", inverse, p.Kind)
	case StepConcreteTypeWitness, StepSameTypeWitness:
		return fmt.Sprintf("%s(%s %d)", inverse, p.Kind, p.Arg)
	}
	//
	panic(fmt.Sprintf("unknown step kind %d", p.Kind))
}
