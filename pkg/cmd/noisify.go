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

	"github.com/consensys/go-qec/pkg/circuit"
	"github.com/consensys/go-qec/pkg/layout"
	"github.com/consensys/go-qec/pkg/noise"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var noisifyCmd = &cobra.Command{
	Use:   "noisify [flags] circuit_file",
	Short: "add noise to an existing physical circuit.",
	Long: `Add the noise of a given model to a noiseless physical circuit,
	given in the simulator's text format.  Qubit labels are taken from a
	layout file when given, otherwise qubit i is labelled Qi.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		var (
			c      = readCircuitFile(args[0])
			inds   map[string]uint
			coords map[string][]float64
			model  noise.Model
		)
		//
		if file := flagOrEnv(cmd, "layout", "QEC_LAYOUT"); file != "" {
			l, err := layout.Load(file)
			if err != nil {
				fmt.Println(err)
				os.Exit(2)
			}
			//
			inds, coords = l.Indices(), l.Coords()
		} else {
			inds = qubitLabels(c)
			coords = qubitCoords(c)
		}
		//
		model = getModel(cmd, inds, coords)
		//
		noisy, err := noise.AddNoise(model, c)
		if err != nil {
			log.Errorf("%s: %s", args[0], err)
			os.Exit(1)
		}
		//
		log.Debugf("added noise to %d instructions, giving %d", c.Len(), noisy.Len())
		//
		writeCircuit(cmd, fmt.Sprintf("# model %s (setup %s)\n", model.Name(), model.Setup().Name), noisy)
	},
}

// Label every qubit index used by a circuit as Qi.
func qubitLabels(c *circuit.Circuit) map[string]uint {
	inds := make(map[string]uint)
	//
	for _, insn := range c.Instructions() {
		if insn.Family() == circuit.ANNOTATION {
			continue
		}
		//
		for _, t := range insn.Targets {
			if !t.IsRec() {
				inds[fmt.Sprintf("Q%d", t.Value())] = uint(t.Value())
			}
		}
	}
	//
	return inds
}

func init() {
	rootCmd.AddCommand(noisifyCmd)
	addModelFlags(noisifyCmd)
	noisifyCmd.Flags().String("layout", "", "layout file (.yaml) labelling the qubits [$QEC_LAYOUT]")
	noisifyCmd.Flags().StringP("output", "o", "", "write circuit to file (instead of stdout)")
}

// Read the coordinates given by the QUBIT_COORDS annotations of a circuit,
// using the labels of qubitLabels.
func qubitCoords(c *circuit.Circuit) map[string][]float64 {
	coords := make(map[string][]float64)
	//
	for _, insn := range c.Instructions() {
		if insn.Name == circuit.QUBIT_COORDS {
			for _, t := range insn.Targets {
				coords[fmt.Sprintf("Q%d", t.Value())] = insn.Args
			}
		}
	}
	//
	return coords
}
