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
	"encoding/json"
	"fmt"
	"os"

	"github.com/consensys/go-eeprog/pkg/bus"
	"github.com/consensys/go-eeprog/pkg/util/termio"
	"github.com/spf13/cobra"
)

var pinsCmd = &cobra.Command{
	Use:   "pins [flags]",
	Short: "Show the pin mapping in use.",
	Long: `Show the pin mapping in use, i.e. which physical line carries each
	address bit, data bit and control signal.`,
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd)
		//
		mapping := readMapping(cmd)
		//
		if err := mapping.Validate(); err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		if GetFlag(cmd, "json") {
			bytes, err := json.MarshalIndent(mapping, "", "  ")
			if err != nil {
				fmt.Println(err)
				os.Exit(2)
			}
			//
			fmt.Println(string(bytes))
		} else {
			printMapping(mapping, termio.IsTerminal(os.Stdout))
		}
	},
}

// Print one row per physical line, giving the signal it carries.  Control lines
// are highlighted.
func printMapping(mapping bus.Mapping, ansiEscapes bool) {
	var (
		lines = mapping.Lines()
		table = termio.NewTablePrinter(2, uint(len(lines)))
		bold  = termio.BoldAnsiEscape().Build()
	)
	//
	for i, line := range lines {
		role := mapping.Role(line)
		table.SetRow(uint(i), role, line)
		//
		if len(role) == 2 && role[1] == 'E' {
			table.SetEscape(0, uint(i), bold)
		}
	}
	//
	table.AnsiEscapes(ansiEscapes)
	table.Print(os.Stdout)
	fmt.Printf("capacity: %d bytes\n", mapping.Capacity())
}

func init() {
	rootCmd.AddCommand(pinsCmd)
	pinsCmd.Flags().Bool("json", false, "print mapping as JSON (suitable for --pins)")
}
