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
	"strings"

	"github.com/consensys/go-qec/pkg/experiment"
	"github.com/consensys/go-qec/pkg/layout"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var memoryCmd = &cobra.Command{
	Use:   "memory [flags]",
	Short: "build the circuit of a memory experiment.",
	Long: `Build the noisy circuit of a memory experiment on a single
	code block: a logical reset, a number of QEC cycles and a logical
	measurement, all in the same basis.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 0 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		var (
			rounds   = GetUint(cmd, "rounds")
			basis    = strings.ToUpper(GetString(cmd, "basis"))
			dataInit = GetString(cmd, "data-init")
			l        = getLayout(cmd, layout.DefaultOptions())
			model    = getModel(cmd, l.Indices(), l.Coords())
		)
		//
		log.Debugf("memory experiment on %s over %d rounds in the %s basis", l.Name(), rounds, basis)
		//
		build, err := experiment.MemoryExperiment(model, l, rounds, basis, getPolicy(cmd), dataInit)
		if err != nil {
			log.Error(err)
			os.Exit(1)
		}
		//
		writeBuild(cmd, build)
	},
}

func init() {
	rootCmd.AddCommand(memoryCmd)
	addModelFlags(memoryCmd)
	addLayoutFlags(memoryCmd)
	addDetectorFlags(memoryCmd)
	memoryCmd.Flags().Uint("rounds", 3, "number of QEC cycles")
	memoryCmd.Flags().String("basis", "Z", "basis of the logical reset and measurement (Z or X)")
	memoryCmd.Flags().String("data-init", "", "initial state of the data qubits as a bit string")
}
