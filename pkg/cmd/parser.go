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
package cmd

import (
	"fmt"
	"strconv"

	"github.com/consensys/go-rewrite/pkg/rewrite"
	"github.com/consensys/go-rewrite/pkg/util/collection/bit"
	"github.com/consensys/go-rewrite/pkg/util/source/sexp"
)

// ParseRewriteSystem parses a rewrite system description. The expected form
// is a sequence of declarations:
//
//	(rule (lhs SYMBOL...) (rhs SYMBOL...) FLAG...)
//	(loop (basepoint SYMBOL...) (steps STEP...))
//	(redundant-conformances ID...)
//
// where FLAG is one of permanent, explicit, simplified or conflicting, and
// SYMBOL is one of:
//
//	(param NAME) (assoc PROTO NAME) (proto PROTO) (name NAME)
//	(concrete NAME SUBST...) (superclass NAME SUBST...)
//	(conformance NAME PROTO SUBST...)
//
// with each SUBST of the form (sub SYMBOL...). STEP is one of:
//
//	(rule ID START END [inv])  (adjust LEN END [inv])  (shift [inv])
//	(decompose N [inv])        (concrete-conformance [inv])
//	(superclass-conformance [inv])
//	(concrete-type-witness ID [inv])  (same-type-witness ID [inv])
func ParseRewriteSystem(text string) (*rewrite.RewriteSystem, error) {
	terms, err := sexp.ParseAll(text)
	//
	if err != nil {
		return nil, err
	}
	//
	var (
		system                = rewrite.NewRewriteSystem(rewrite.NewContext())
		redundantConformances bit.Set
	)
	//
	system.SetRecordLoops(true)
	//
	for _, term := range terms {
		list := term.AsList()
		//
		if list == nil || list.Len() == 0 {
			return nil, fmt.Errorf("malformed declaration %s", term.String())
		}
		//
		switch {
		case list.MatchSymbols("rule"):
			if err := parseRuleDecl(system, list); err != nil {
				return nil, err
			}
		case list.MatchSymbols("loop"):
			if err := parseLoopDecl(system, list); err != nil {
				return nil, err
			}
		case list.MatchSymbols("redundant-conformances"):
			for _, e := range list.Elements[1:] {
				id, err := parseUint(e)
				if err != nil {
					return nil, err
				}
				//
				redundantConformances.Insert(id)
			}
		default:
			return nil, fmt.Errorf("unknown declaration %s", list.String())
		}
	}
	// The description is the output of a completed run.
	system.MarkComplete()
	system.SetGeneratingConformances(
		func(_ *rewrite.RewriteSystem, set *bit.Set) {
			redundantConformances.Iter(func(id uint) { set.Insert(id) })
		})
	//
	return system, nil
}

func parseRuleDecl(system *rewrite.RewriteSystem, list *sexp.List) (err error) {
	if list.Len() < 3 {
		return fmt.Errorf("malformed rule %s", list.String())
	}
	//
	var lhs, rhs rewrite.Term
	//
	if lhs, err = parseTaggedTerm(list.Get(1), "lhs"); err != nil {
		return err
	}
	//
	if rhs, err = parseTaggedTerm(list.Get(2), "rhs"); err != nil {
		return err
	}
	//
	if system.GetContext().CompareTerms(lhs, rhs) <= 0 {
		return fmt.Errorf("rule %s => %s violates the term order", lhs.String(), rhs.String())
	}
	//
	ruleID := system.AddRawRule(rewrite.NewRule(lhs, rhs))
	rule := system.GetRule(ruleID)
	//
	for _, e := range list.Elements[3:] {
		flag := e.AsSymbol()
		//
		if flag == nil {
			return fmt.Errorf("malformed rule flag %s", e.String())
		}
		//
		switch flag.Value {
		case "permanent":
			rule.MarkPermanent()
		case "explicit":
			rule.MarkExplicit()
		case "simplified":
			rule.MarkSimplified()
		case "conflicting":
			rule.MarkConflicting()
		default:
			return fmt.Errorf("unknown rule flag %s", flag.Value)
		}
	}
	//
	return nil
}

func parseLoopDecl(system *rewrite.RewriteSystem, list *sexp.List) error {
	if list.Len() != 3 {
		return fmt.Errorf("malformed loop %s", list.String())
	}
	//
	basepoint, err := parseTaggedTerm(list.Get(1), "basepoint")
	//
	if err != nil {
		return err
	}
	//
	steps := list.Get(2).AsList()
	//
	if steps == nil || !steps.MatchSymbols("steps") {
		return fmt.Errorf("malformed loop steps %s", list.Get(2).String())
	}
	//
	var path rewrite.Path
	//
	for _, e := range steps.Elements[1:] {
		step, err := parseStep(e)
		//
		if err != nil {
			return err
		}
		//
		path.Add(step)
	}
	//
	system.RecordLoop(basepoint, path)
	//
	return nil
}

// parseTaggedTerm parses a list of the form (tag SYMBOL...) into a term.
func parseTaggedTerm(s sexp.SExp, tag string) (rewrite.Term, error) {
	list := s.AsList()
	//
	if list == nil || !list.MatchSymbols(tag) {
		return rewrite.Term{}, fmt.Errorf("expected (%s ...), found %s", tag, s.String())
	}
	//
	var symbols []rewrite.Symbol
	//
	for _, e := range list.Elements[1:] {
		symbol, err := parseSymbol(e)
		//
		if err != nil {
			return rewrite.Term{}, err
		}
		//
		symbols = append(symbols, symbol)
	}
	//
	return rewrite.NewTerm(symbols...), nil
}

func parseSymbol(s sexp.SExp) (rewrite.Symbol, error) {
	var none rewrite.Symbol
	//
	list := s.AsList()
	//
	if list == nil || list.Len() < 1 || list.Get(0).AsSymbol() == nil {
		return none, fmt.Errorf("malformed symbol %s", s.String())
	}
	//
	var (
		kind  = list.Get(0).AsSymbol().Value
		arity = list.Len() - 1
	)
	//
	atom := func(i int) string {
		if sym := list.Get(i).AsSymbol(); sym != nil {
			return sym.Value
		}
		//
		return ""
	}
	//
	switch kind {
	case "param":
		if arity != 1 {
			return none, fmt.Errorf("malformed generic parameter %s", s.String())
		}
		//
		return rewrite.NewGenericParamSymbol(atom(1)), nil
	case "assoc":
		if arity != 2 {
			return none, fmt.Errorf("malformed associated type %s", s.String())
		}
		//
		return rewrite.NewAssociatedTypeSymbol(atom(1), atom(2)), nil
	case "proto":
		if arity != 1 {
			return none, fmt.Errorf("malformed protocol %s", s.String())
		}
		//
		return rewrite.NewProtocolSymbol(atom(1)), nil
	case "name":
		if arity != 1 {
			return none, fmt.Errorf("malformed name %s", s.String())
		}
		//
		return rewrite.NewNameSymbol(atom(1)), nil
	case "concrete", "superclass":
		if arity < 1 {
			return none, fmt.Errorf("malformed %s symbol %s", kind, s.String())
		}
		//
		subs, err := parseSubstitutions(list, 2)
		if err != nil {
			return none, err
		}
		//
		if kind == "concrete" {
			return rewrite.NewConcreteTypeSymbol(atom(1), subs...), nil
		}
		//
		return rewrite.NewSuperclassSymbol(atom(1), subs...), nil
	case "conformance":
		if arity < 2 {
			return none, fmt.Errorf("malformed conformance symbol %s", s.String())
		}
		//
		subs, err := parseSubstitutions(list, 3)
		if err != nil {
			return none, err
		}
		//
		return rewrite.NewConcreteConformanceSymbol(atom(1), atom(2), subs...), nil
	}
	//
	return none, fmt.Errorf("unknown symbol kind %s", kind)
}

func parseSubstitutions(list *sexp.List, from int) ([]rewrite.Term, error) {
	var subs []rewrite.Term
	//
	for i := from; i < list.Len(); i++ {
		sub, err := parseTaggedTerm(list.Get(i), "sub")
		//
		if err != nil {
			return nil, err
		}
		//
		subs = append(subs, sub)
	}
	//
	return subs, nil
}

func parseStep(s sexp.SExp) (rewrite.Step, error) {
	var none rewrite.Step
	//
	list := s.AsList()
	//
	if list == nil || list.Len() < 1 || list.Get(0).AsSymbol() == nil {
		return none, fmt.Errorf("malformed step %s", s.String())
	}
	//
	var (
		kind = list.Get(0).AsSymbol().Value
		args []uint
		inv  = false
	)
	// Everything after the kind is a number, except a trailing "inv".
	for i := 1; i < list.Len(); i++ {
		if sym := list.Get(i).AsSymbol(); sym != nil && sym.Value == "inv" {
			if i+1 != list.Len() {
				return none, fmt.Errorf("misplaced inv in %s", s.String())
			}
			//
			inv = true
			//
			break
		}
		//
		n, err := parseUint(list.Get(i))
		if err != nil {
			return none, err
		}
		//
		args = append(args, n)
	}
	//
	expect := func(n int) error {
		if len(args) != n {
			return fmt.Errorf("step %s expects %d arguments, found %d", kind, n, len(args))
		}
		//
		return nil
	}
	//
	switch kind {
	case "rule":
		if err := expect(3); err != nil {
			return none, err
		}
		//
		return rewrite.NewRuleStep(args[1], args[2], args[0], inv), nil
	case "adjust":
		if err := expect(2); err != nil {
			return none, err
		}
		//
		return rewrite.NewAdjustmentStep(args[0], args[1], inv), nil
	case "shift":
		if err := expect(0); err != nil {
			return none, err
		}
		//
		return rewrite.NewShiftStep(inv), nil
	case "decompose":
		if err := expect(1); err != nil {
			return none, err
		}
		//
		return rewrite.NewDecomposeStep(args[0], inv), nil
	case "concrete-conformance":
		if err := expect(0); err != nil {
			return none, err
		}
		//
		return rewrite.NewConcreteConformanceStep(inv), nil
	case "superclass-conformance":
		if err := expect(0); err != nil {
			return none, err
		}
		//
		return rewrite.NewSuperclassConformanceStep(inv), nil
	case "concrete-type-witness":
		if err := expect(1); err != nil {
			return none, err
		}
		//
		return rewrite.NewConcreteTypeWitnessStep(args[0], inv), nil
	case "same-type-witness":
		if err := expect(1); err != nil {
			return none, err
		}
		//
		return rewrite.NewSameTypeWitnessStep(args[0], inv), nil
	}
	//
	return none, fmt.Errorf("unknown step kind %s", kind)
}

func parseUint(s sexp.SExp) (uint, error) {
	sym := s.AsSymbol()
	//
	if sym == nil {
		return 0, fmt.Errorf("expected a number, found %s", s.String())
	}
	//
	n, err := strconv.ParseUint(sym.Value, 10, 32)
	//
	if err != nil {
		return 0, fmt.Errorf("expected a number, found %s", sym.Value)
	}
	//
	return uint(n), nil
}
