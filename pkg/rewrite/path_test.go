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

func Test_Path_Invert_01(t *testing.T) {
	path := NewPath(
		NewRuleStep(1, 2, 7, false),
		NewShiftStep(false),
		NewDecomposeStep(2, true))
	//
	path.Invert()
	//
	steps := path.Steps()
	//
	assert.Equal(t, StepDecompose, steps[0].Kind)
	assert.False(t, steps[0].Inverse)
	assert.Equal(t, StepShift, steps[1].Kind)
	assert.True(t, steps[1].Inverse)
	assert.Equal(t, StepApplyRule, steps[2].Kind)
	assert.True(t, steps[2].Inverse)
	assert.Equal(t, uint(1), steps[2].StartOffset)
	assert.Equal(t, uint(2), steps[2].EndOffset)
}

// Inverting twice restores the original path.
func Test_Path_Invert_02(t *testing.T) {
	path := NewPath(
		NewRuleStep(0, 1, 3, true),
		NewConcreteConformanceStep(false))
	//
	clone := path.Clone()
	//
	path.Invert()
	path.Invert()
	//
	assert.Equal(t, clone.String(), path.String())
}

// Splitting a cycle at a non-inverted rule occurrence inverts the remainder
// of the loop.
func Test_Path_Split_01(t *testing.T) {
	// [r0 r1 !r2] with r1 the split point.
	path := NewPath(
		NewRuleStep(0, 0, 0, false),
		NewRuleStep(0, 0, 1, false),
		NewRuleStep(0, 0, 2, true))
	//
	replacement := path.SplitCycleAtRule(1)
	// after=[!r2], before=[r0]; result inverted = [!r0 r2].
	steps := replacement.Steps()
	//
	assert.Equal(t, 2, len(steps))
	assert.Equal(t, uint(0), steps[0].Arg)
	assert.True(t, steps[0].Inverse)
	assert.Equal(t, uint(2), steps[1].Arg)
	assert.False(t, steps[1].Inverse)
	assert.False(t, replacement.ContainsRule(1))
}

// Splitting a cycle at an inverted rule occurrence keeps the remainder as
// is.
func Test_Path_Split_02(t *testing.T) {
	path := NewPath(
		NewRuleStep(0, 0, 0, false),
		NewRuleStep(0, 0, 1, true),
		NewRuleStep(0, 0, 2, true))
	//
	replacement := path.SplitCycleAtRule(1)
	// after=[!r2], before=[r0]; no inversion.
	steps := replacement.Steps()
	//
	assert.Equal(t, 2, len(steps))
	assert.Equal(t, uint(2), steps[0].Arg)
	assert.True(t, steps[0].Inverse)
	assert.Equal(t, uint(0), steps[1].Arg)
	assert.False(t, steps[1].Inverse)
}

func Test_Path_Split_03(t *testing.T) {
	// Splitting at a rule appearing twice is a programmer error.
	path := NewPath(
		NewRuleStep(0, 0, 1, false),
		NewRuleStep(0, 0, 1, true))
	//
	assert.Panics(t, func() {
		path.SplitCycleAtRule(1)
	})
}

func Test_Path_Split_04(t *testing.T) {
	// Splitting at a rule occurring in context is a programmer error.
	path := NewPath(NewRuleStep(1, 0, 1, false))
	//
	assert.Panics(t, func() {
		path.SplitCycleAtRule(1)
	})
}

// An occurrence with offsets has the outer context added onto every
// replacement step; the inverse flag of the occurrence is folded in.
func Test_Path_Replace_01(t *testing.T) {
	var (
		path        = NewPath(NewRuleStep(2, 3, 9, false))
		replacement = NewPath(NewRuleStep(0, 0, 4, false))
	)
	//
	changed := path.ReplaceRuleWithPath(9, replacement)
	//
	assert.True(t, changed)
	//
	steps := path.Steps()
	//
	assert.Equal(t, 1, len(steps))
	assert.Equal(t, uint(4), steps[0].Arg)
	assert.Equal(t, uint(2), steps[0].StartOffset)
	assert.Equal(t, uint(3), steps[0].EndOffset)
	assert.False(t, steps[0].Inverse)
}

// An inverted occurrence iterates the replacement backwards with every step
// direction flipped.
func Test_Path_Replace_02(t *testing.T) {
	var (
		path        = NewPath(NewRuleStep(2, 3, 9, true))
		replacement = NewPath(
			NewRuleStep(0, 0, 4, false),
			NewRuleStep(0, 0, 5, true))
	)
	//
	changed := path.ReplaceRuleWithPath(9, replacement)
	//
	assert.True(t, changed)
	//
	steps := path.Steps()
	//
	assert.Equal(t, 2, len(steps))
	// Reversed order, inverted direction.
	assert.Equal(t, uint(5), steps[0].Arg)
	assert.False(t, steps[0].Inverse)
	assert.Equal(t, uint(4), steps[1].Arg)
	assert.True(t, steps[1].Inverse)
	// Context still added.
	assert.Equal(t, uint(2), steps[0].StartOffset)
	assert.Equal(t, uint(3), steps[0].EndOffset)
}

// Steps bracketed by a StepDecompose/Compose pair operate on terms pushed onto
// the evaluator stack, hence are not re-contextualized.
func Test_Path_Replace_03(t *testing.T) {
	var (
		path        = NewPath(NewRuleStep(5, 5, 9, false))
		replacement = NewPath(
			NewDecomposeStep(2, false),
			NewRuleStep(0, 0, 4, false),
			NewDecomposeStep(2, true))
	)
	//
	changed := path.ReplaceRuleWithPath(9, replacement)
	//
	assert.True(t, changed)
	//
	steps := path.Steps()
	//
	assert.Equal(t, 3, len(steps))
	// Opening decompose picks up the outer context.
	assert.Equal(t, StepDecompose, steps[0].Kind)
	assert.Equal(t, uint(5), steps[0].StartOffset)
	assert.Equal(t, uint(5), steps[0].EndOffset)
	// The bracketed rule application does not.
	assert.Equal(t, StepApplyRule, steps[1].Kind)
	assert.Equal(t, uint(0), steps[1].StartOffset)
	assert.Equal(t, uint(0), steps[1].EndOffset)
	// Closing compose picks it up again.
	assert.Equal(t, StepDecompose, steps[2].Kind)
	assert.True(t, steps[2].Inverse)
	assert.Equal(t, uint(5), steps[2].StartOffset)
	assert.Equal(t, uint(5), steps[2].EndOffset)
}

// Replacement leaves surrounding steps untouched and reports when the rule
// does not occur at all.
func Test_Path_Replace_04(t *testing.T) {
	var (
		path = NewPath(
			NewShiftStep(false),
			NewRuleStep(0, 0, 1, false),
			NewShiftStep(true))
		replacement = NewPath(NewRuleStep(0, 0, 2, false))
	)
	//
	assert.True(t, path.ReplaceRuleWithPath(1, replacement))
	assert.Equal(t, uint(3), path.Len())
	assert.Equal(t, StepShift, path.Steps()[0].Kind)
	assert.Equal(t, uint(2), path.Steps()[1].Arg)
	// Second application finds nothing; the path is unchanged.
	before := path.String()
	//
	assert.False(t, path.ReplaceRuleWithPath(1, replacement))
	assert.Equal(t, before, path.String())
}

func Test_Path_Append_01(t *testing.T) {
	var first, second Path
	//
	first.Add(NewShiftStep(false))
	second.Add(NewShiftStep(true))
	second.Add(NewRuleStep(0, 0, 1, false))
	//
	first.AppendPath(second)
	//
	assert.Equal(t, uint(3), first.Len())
	assert.Equal(t, uint(1), first.RuleCount(1))
	assert.True(t, first.ContainsRule(1))
	assert.False(t, first.ContainsRule(2))
}
