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
	"strconv"

	"github.com/consensys/go-qec/pkg/util/termio"
	"github.com/spf13/cobra"
)

var paramsCmd = &cobra.Command{
	Use:   "params [flags]",
	Short: "print the noise parameters of a setup.",
	Long: `Print the entries of a setup, after binding its free parameters,
	followed by its free parameters and their bindings.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 0 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		var (
			s       = getSetup(cmd, GetString(cmd, "model"))
			entries = s.Entries()
			free    = s.FreeParameters()
			tp      = termio.NewTablePrinter(3, uint(1+len(entries)))
			title   = termio.BoldAnsiEscape()
		)
		//
		fmt.Printf("Setup %s", s.Name)
		//
		if s.Description != "" {
			fmt.Printf(" (%s)", s.Description)
		}
		//
		fmt.Println()
		fmt.Println()
		//
		tp.SetRow(0, "Scope", "Parameter", "Value")
		//
		for col := range uint(3) {
			tp.SetEscape(col, 0, title)
		}
		//
		for i, e := range entries {
			tp.SetRow(uint(i+1), e.Scope.String(), e.Parameter, e.Value.String())
		}
		//
		tp.SetMaxWidths(GetUint(cmd, "textwidth") / 3)
		tp.AnsiEscapes(termio.IsTerminal())
		//
		if err := tp.Print(os.Stdout); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		//
		if len(free) > 0 {
			fmt.Println()
		}
		//
		for _, name := range free {
			value := "unbound"
			//
			if v, ok := s.Binding(name); ok {
				value = strconv.FormatFloat(v, 'g', -1, 64)
			}
			//
			fmt.Printf("{%s} = %s\n", name, value)
		}
	},
}

func init() {
	rootCmd.AddCommand(paramsCmd)
	addModelFlags(paramsCmd)
	paramsCmd.Flags().Uint("textwidth", termio.Width(), "maximum width of the table")
}
