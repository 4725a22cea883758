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

// DebugFlag selects a category of diagnostic output.
type DebugFlag uint

const (
	// DebugHomotopyReduction traces each rule deleted by homotopy reduction,
	// together with its replacement path and every loop updated as a result.
	DebugHomotopyReduction DebugFlag = 1 << iota
)

// Context holds the debug options shared by a family of rewrite systems and
// parameterizes the linear order used for candidate scoring. A context must
// not be shared between concurrently-running minimizations.
type Context struct {
	debug DebugFlag
}

// NewContext constructs a fresh rewrite context.
func NewContext() *Context {
	return &Context{}
}

// EnableDebug switches on the given categories of diagnostic output.
func (p *Context) EnableDebug(flags DebugFlag) {
	p.debug |= flags
}

// Debugging checks whether the given debug category is enabled.
func (p *Context) Debugging(flag DebugFlag) bool {
	return p.debug&flag != 0
}

// CompareTerms implements the linear order on terms used throughout
// minimization. Presently this is the shortlex order defined by the term
// model itself.
func (p *Context) CompareTerms(lhs Term, rhs Term) int {
	return lhs.Compare(rhs)
}
