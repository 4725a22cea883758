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

	"github.com/spf13/cobra"

	"github.com/consensys/go-rewrite/pkg/rewrite"
)

// debugCmd dumps a rewrite system description and traces the evaluation of
// each loop, for troubleshooting malformed inputs.
var debugCmd = &cobra.Command{
	Use:   "debug [flags] rewrite_system_file",
	Short: "Dump a rewrite system and evaluate its loops",
	Long: `Debug reads a rewrite system description, prints its rules and loops,
and steps the path evaluator through every loop, reporting the term reached
after each step.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd)
		//
		system := readRewriteSystemFile(args[0])
		//
		fmt.Println(system.String())
		//
		for loopID, loop := range system.Loops() {
			fmt.Printf("loop %d at %s:\n", loopID, loop.Basepoint.String())
			//
			evaluator := rewrite.NewEvaluator(loop.Basepoint)
			//
			for _, step := range loop.Path.Steps() {
				evaluator.Apply(step, system)
				fmt.Printf("  %-24s => %s\n", step.String(), evaluator.GetCurrentTerm().String())
			}
			//
			if !evaluator.GetCurrentTerm().Freeze().Equals(loop.Basepoint) {
				fmt.Printf("  ERROR: loop does not return to its basepoint\n")
			} else if evaluator.IsInContext() {
				fmt.Printf("  ERROR: leftover terms on evaluator stack\n")
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(debugCmd)
}
