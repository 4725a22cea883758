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
	"os"
	"sort"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/consensys/go-rewrite/pkg/rewrite"
)

// minimizeCmd runs homotopy reduction over a rewrite system description and
// reports the minimal rule set.
var minimizeCmd = &cobra.Command{
	Use:   "minimize [flags] rewrite_system_file",
	Short: "Minimize the rule set of a confluent rewrite system",
	Long: `Minimize reads a confluent rewrite system (rules plus rewrite loops)
and deletes redundant rules via homotopy reduction, reporting the minimal
generic-signature and per-protocol rule sets.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd)
		//
		system := readRewriteSystemFile(args[0])
		//
		if GetFlag(cmd, "debug-homotopy-reduction") {
			system.GetContext().EnableDebug(rewrite.DebugHomotopyReduction)
			log.SetLevel(log.DebugLevel)
		}
		//
		system.Minimize()
		//
		if system.HadError() {
			log.Errorf("rewrite system is invalid (conflicting or unresolved requirements remain)")
			os.Exit(1)
		}
		// Report the top-level generic signature rules.
		fmt.Println("generic signature rules:")
		//
		for _, ruleID := range system.GetMinimizedGenericSignatureRules() {
			fmt.Printf("  (#%d) %s\n", ruleID, system.GetRule(ruleID).String())
		}
		// Report requirement signatures of all protocols mentioned by rules.
		var (
			protos        = collectProtocols(system)
			protocolRules = system.GetMinimizedProtocolRules(protos)
		)
		//
		for _, proto := range protos {
			fmt.Printf("protocol %s rules:\n", proto)
			//
			for _, ruleID := range protocolRules[proto] {
				fmt.Printf("  (#%d) %s\n", ruleID, system.GetRule(ruleID).String())
			}
		}
	},
}

// collectProtocols returns, in a deterministic order, every protocol which
// appears at the head of some rule's left hand side.
func collectProtocols(system *rewrite.RewriteSystem) []string {
	var (
		seen   = make(map[string]bool)
		protos []string
	)
	//
	for i := range system.Rules() {
		lhs := system.GetRule(uint(i)).GetLHS()
		//
		if lhs.Len() == 0 {
			continue
		}
		//
		switch head := lhs.Get(0); head.GetKind() {
		case rewrite.Protocol, rewrite.AssociatedType:
			proto := head.GetProtocols()[0]
			//
			if !seen[proto] {
				seen[proto] = true
				protos = append(protos, proto)
			}
		}
	}
	//
	sort.Strings(protos)
	//
	return protos
}

func init() {
	rootCmd.AddCommand(minimizeCmd)
}
