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

// Simplify rewrites the given term to normal form against the non-simplified
// rules of this system, returning true if anything changed. When a path is
// supplied, a step is recorded for every rewrite performed, so that applying
// the resulting path to the original term yields the simplified term.
func (p *RewriteSystem) Simplify(term *MutableTerm, path *Path) bool {
	var changed = false
	//
	for {
		var progress = false
		// Find the leftmost position where some rule's left hand side
		// matches.
		for start := uint(0); start < term.Len(); start++ {
			ruleID, ok := p.trie.SearchShortestPrefix(term.Symbols()[start:])
			if !ok {
				continue
			}
			//
			rule := p.GetRule(ruleID)
			// Simplified rules no longer participate in rewriting.
			if rule.IsSimplified() {
				continue
			}
			//
			var (
				lhs = rule.GetLHS()
				end = start + lhs.Len()
			)
			//
			if path != nil {
				path.Add(NewRuleStep(start, term.Len()-end, ruleID, false))
			}
			//
			term.Replace(start, end, rule.GetRHS())
			//
			progress = true
			changed = true
			//
			break
		}
		//
		if !progress {
			return changed
		}
	}
}
