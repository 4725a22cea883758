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

	"github.com/consensys/go-rewrite/pkg/util/collection/stack"
)

// Evaluator is a two-stack interpreter for rewrite paths.
//
//   - StepApplyRule and StepAdjustConcreteType manipulate the term at the top
//     of the primary stack.
//
//   - StepShift moves a term from the primary to the secondary stack (or back,
//     when inverted).
//
//   - StepDecompose splits off the substitutions of a superclass or concrete type
//     symbol at the top of the primary stack (or reassembles the symbol from
//     them, when inverted).
//
// The evaluator is "in context" while it is in the middle of rewriting
// concrete substitutions, that is, while either stack holds anything beyond
// the single term being rewritten.
type Evaluator struct {
	primary   *stack.Stack[*MutableTerm]
	secondary *stack.Stack[*MutableTerm]
}

// NewEvaluator constructs an evaluator whose current term is a copy of the
// given basepoint.
func NewEvaluator(basepoint Term) *Evaluator {
	var primary = stack.NewStack[*MutableTerm]()
	//
	primary.Push(NewMutableTerm(basepoint))
	//
	return &Evaluator{primary, stack.NewStack[*MutableTerm]()}
}

// GetCurrentTerm returns the term at the top of the primary stack.
func (p *Evaluator) GetCurrentTerm() *MutableTerm {
	if p.primary.IsEmpty() {
		panic("no current term")
	}
	//
	return p.primary.Top()
}

// IsInContext determines whether the evaluator is in the middle of rewriting
// concrete substitutions.
func (p *Evaluator) IsInContext() bool {
	return p.primary.Len() > 1 || p.secondary.Len() > 0
}

// Apply executes a single step against the given rewrite system.
func (p *Evaluator) Apply(step Step, system *RewriteSystem) {
	switch step.Kind {
	case StepApplyRule:
		p.applyRewriteRule(step, system)
	case StepAdjustConcreteType:
		p.applyAdjustment(step)
	case StepShift:
		p.applyShift(step)
	case StepDecompose:
		p.applyDecompose(step)
	case StepConcreteConformance, StepSuperclassConformance:
		p.applyConformance(step)
	case StepConcreteTypeWitness:
		p.applyConcreteTypeWitness(step, system)
	case StepSameTypeWitness:
		p.applySameTypeWitness(step, system)
	default:
		panic(fmt.Sprintf("unknown step kind %d", step.Kind))
	}
}

// ApplyPath executes every step of a path in order.
func (p *Evaluator) ApplyPath(path Path, system *RewriteSystem) {
	for _, step := range path.Steps() {
		p.Apply(step, system)
	}
}

// applyRewriteRule rewrites the infix of the current term at the step's
// offsets, which must match one side of the rule exactly.
func (p *Evaluator) applyRewriteRule(step Step, system *RewriteSystem) {
	var (
		term     = p.GetCurrentTerm()
		rule     = system.GetRule(step.Arg)
		from, to = rule.GetLHS(), rule.GetRHS()
	)
	//
	if step.Inverse {
		from, to = to, from
	}
	//
	if step.StartOffset+from.Len()+step.EndOffset != term.Len() {
		panic(fmt.Sprintf("misapplied rule %s at %d,%d on %s",
			rule.String(), step.StartOffset, step.EndOffset, term.String()))
	}
	//
	end := term.Len() - step.EndOffset
	//
	if !term.Subterm(step.StartOffset, end).Equals(from) {
		panic(fmt.Sprintf("term %s does not contain %s at offset %d",
			term.String(), from.String(), step.StartOffset))
	}
	//
	term.Replace(step.StartOffset, end, to)
}

// applyAdjustment prepends (or strips, when inverted) a prefix of the current
// term to each substitution of its trailing symbol.
func (p *Evaluator) applyAdjustment(step Step) {
	var (
		term   = p.GetCurrentTerm()
		last   = p.trailingSymbol("adjustment")
		prefix = term.Subterm(0, step.Arg)
		subs   = last.GetSubstitutions()
		newSub = make([]Term, len(subs))
	)
	//
	for i, sub := range subs {
		if !step.Inverse {
			symbols := make([]Symbol, 0, prefix.Len()+sub.Len())
			symbols = append(symbols, prefix.Symbols()...)
			symbols = append(symbols, sub.Symbols()...)
			newSub[i] = NewTerm(symbols...)
		} else {
			if sub.Len() < prefix.Len() || !sub.Subterm(0, prefix.Len()).Equals(prefix) {
				panic(fmt.Sprintf("substitution %s does not begin with %s", sub.String(), prefix.String()))
			}
			//
			newSub[i] = sub.Subterm(prefix.Len(), sub.Len())
		}
	}
	//
	term.Set(term.Len()-1, last.WithSubstitutions(newSub))
}

// applyShift moves the current term between the two stacks.
func (p *Evaluator) applyShift(step Step) {
	if !step.Inverse {
		p.secondary.Push(p.primary.Pop())
	} else {
		if p.secondary.IsEmpty() {
			panic("shift with empty secondary stack")
		}
		//
		p.primary.Push(p.secondary.Pop())
	}
}

// applyDecompose pushes the substitutions of the trailing symbol onto the
// primary stack, or pops them back into the symbol when inverted.
func (p *Evaluator) applyDecompose(step Step) {
	if !step.Inverse {
		last := p.trailingSymbol("decompose")
		subs := last.GetSubstitutions()
		//
		if uint(len(subs)) != step.Arg {
			panic(fmt.Sprintf("expected %d substitutions, found %d", step.Arg, len(subs)))
		}
		//
		for _, sub := range subs {
			p.primary.Push(NewMutableTerm(sub))
		}
	} else {
		// Pop the substitutions back off the stack; they were pushed in
		// order, so they come off in reverse.
		subs := make([]Term, step.Arg)
		//
		for i := int(step.Arg) - 1; i >= 0; i-- {
			subs[i] = p.primary.Pop().Freeze()
		}
		//
		term := p.GetCurrentTerm()
		last := p.trailingSymbol("decompose")
		//
		if uint(len(last.GetSubstitutions())) != step.Arg {
			panic(fmt.Sprintf("expected %d substitutions, found %d", step.Arg, len(last.GetSubstitutions())))
		}
		//
		term.Set(term.Len()-1, last.WithSubstitutions(subs))
	}
}

// applyConformance fuses the trailing concrete-type (or superclass) and
// protocol symbol pair into a concrete conformance symbol, or splits the pair
// apart when inverted.
func (p *Evaluator) applyConformance(step Step) {
	var (
		term = p.GetCurrentTerm()
		kind = ConcreteType
	)
	//
	if step.Kind == StepSuperclassConformance {
		kind = Superclass
	}
	//
	if !step.Inverse {
		if term.Len() < 2 {
			panic("conformance on short term")
		}
		//
		var (
			concrete = term.Get(term.Len() - 2)
			proto    = term.Get(term.Len() - 1)
		)
		//
		if concrete.GetKind() != kind || proto.GetKind() != Protocol {
			panic(fmt.Sprintf("cannot fuse %s and %s", concrete.String(), proto.String()))
		}
		//
		fused := NewConcreteConformanceSymbol(concrete.GetName(), proto.GetProtocols()[0],
			concrete.GetSubstitutions()...)
		//
		term.Truncate(term.Len() - 2)
		term.Append(fused)
	} else {
		last := p.trailingSymbol("conformance")
		//
		if last.GetKind() != ConcreteConformance {
			panic(fmt.Sprintf("cannot split %s", last.String()))
		}
		//
		var unfused Symbol
		//
		if kind == ConcreteType {
			unfused = NewConcreteTypeSymbol(last.GetName(), last.GetSubstitutions()...)
		} else {
			unfused = NewSuperclassSymbol(last.GetName(), last.GetSubstitutions()...)
		}
		//
		term.Set(term.Len()-1, unfused)
		term.Append(NewProtocolSymbol(last.GetProtocols()[0]))
	}
}

// applyConcreteTypeWitness eliminates (introduces, when inverted) the
// concrete type symbol of the witness identified by the step.
func (p *Evaluator) applyConcreteTypeWitness(step Step, system *RewriteSystem) {
	var (
		term    = p.GetCurrentTerm()
		witness = system.GetConcreteTypeWitness(step.Arg)
	)
	//
	if !step.Inverse {
		last := p.trailingSymbol("witness")
		//
		if !last.Equal(witness.ConcreteType) {
			panic(fmt.Sprintf("expected witness type %s, found %s",
				witness.ConcreteType.String(), last.String()))
		}
		//
		term.Truncate(term.Len() - 1)
	} else {
		term.Append(witness.ConcreteType)
	}
}

// applySameTypeWitness eliminates (introduces, when inverted) the associated
// type symbol of the witness identified by the step.
func (p *Evaluator) applySameTypeWitness(step Step, system *RewriteSystem) {
	var (
		term    = p.GetCurrentTerm()
		witness = system.GetConcreteTypeWitness(step.Arg)
	)
	//
	if !step.Inverse {
		last := p.trailingSymbol("witness")
		//
		if !last.Equal(witness.AssocType) {
			panic(fmt.Sprintf("expected associated type %s, found %s",
				witness.AssocType.String(), last.String()))
		}
		//
		term.Truncate(term.Len() - 1)
	} else {
		term.Append(witness.AssocType)
	}
}

// trailingSymbol returns the last symbol of the current term, which must be
// non-empty.
func (p *Evaluator) trailingSymbol(op string) Symbol {
	term := p.GetCurrentTerm()
	//
	if term.Len() == 0 {
		panic(fmt.Sprintf("%s on empty term", op))
	}
	//
	return term.Get(term.Len() - 1)
}

func (p *Evaluator) String() string {
	var primary, secondary []string
	//
	for _, t := range p.primary.Items() {
		primary = append(primary, t.String())
	}
	//
	for _, t := range p.secondary.Items() {
		secondary = append(secondary, t.String())
	}
	//
	return fmt.Sprintf("A=%v B=%v", primary, secondary)
}
