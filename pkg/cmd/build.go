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
	"maps"
	"os"

	"github.com/consensys/go-qec/pkg/circuit"
	"github.com/consensys/go-qec/pkg/experiment"
	"github.com/consensys/go-qec/pkg/layout"
	"github.com/consensys/go-qec/pkg/schedule"
	"github.com/davecgh/go-spew/spew"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] logical_circuit",
	Short: "build the physical circuit of a logical circuit.",
	Long: `Build the noisy physical circuit implementing a logical circuit,
	given in the simulator's text format.  Each logical qubit k is
	encoded in its own rotated surface code, with logical label Lk,
	and each TICK of the logical circuit stands for a number of QEC
	cycles over all blocks.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		var (
			logical = readCircuitFile(args[0])
			rounds  = GetUint(cmd, "rounds")
			layouts = blockLayouts(cmd, numLogicals(logical.Instructions()))
		)
		//
		inds, err := layout.Merge(layouts...)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		coords := make(map[string][]float64)
		//
		for _, l := range layouts {
			maps.Copy(coords, l.Coords())
		}
		//
		build, err := experiment.NewBuild(getModel(cmd, inds, coords), layouts, getPolicy(cmd))
		if err != nil {
			log.Error(err)
			os.Exit(1)
		}
		//
		sched, err := schedule.FromCircuit(logical, build.Logicals(), schedule.DefaultGates())
		if err != nil {
			fmt.Printf("%s: %s\n", args[0], err)
			os.Exit(2)
		}
		//
		sched = withCycles(sched, rounds)
		log.Debug(spew.Sdump(sched))
		//
		if err := build.Run(sched); err != nil {
			log.Error(err)
			os.Exit(1)
		}
		//
		writeBuild(cmd, build)
	},
}

// Generate one code block per logical qubit, side by side.
func blockLayouts(cmd *cobra.Command, n uint) []*layout.Layout {
	var (
		d       = GetUint(cmd, "distance")
		layouts = make([]*layout.Layout, n)
		// Qubits per block
		size = 2*d*d - 1
		// Ancillas per stabilizer type
		ancs = (d*d - 1) / 2
	)
	//
	for k := range n {
		opts := layout.DefaultOptions()
		opts.Logical = fmt.Sprintf("L%d", k)
		opts.LogicalIndex = k
		opts.Origin = [2]float64{float64(1 + k*(2*d+2)), 1}
		opts.FirstData = 1 + k*d*d
		opts.FirstX = 1 + k*ancs
		opts.FirstZ = 1 + k*ancs
		opts.FirstIndex = k * size
		//
		l, err := layout.RotatedSurfaceCode(d, d, opts)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		layouts[k] = l
	}
	//
	return layouts
}

// Determine the number of logical qubits used by a logical circuit, which is
// one more than the largest qubit target.
func numLogicals(insns []circuit.Instruction) uint {
	var n uint
	//
	for _, insn := range insns {
		for _, t := range insn.Targets {
			if !t.IsRec() {
				n = max(n, uint(t.Value())+1)
			}
		}
	}
	//
	return max(n, 1)
}

// Repeat every QEC cycle of a schedule a given number of times.
func withCycles(s *schedule.Schedule, rounds uint) *schedule.Schedule {
	r := &schedule.Schedule{Qubits: s.Qubits}
	//
	for _, layer := range s.Layers {
		if !layer.IsQEC() {
			r.Layers = append(r.Layers, layer)
			continue
		}
		//
		for range rounds {
			r.Layers = append(r.Layers, layer)
		}
	}
	//
	return r
}

func init() {
	rootCmd.AddCommand(buildCmd)
	addModelFlags(buildCmd)
	buildCmd.Flags().Uint("distance", 3, "distance of the rotated surface codes")
	addDetectorFlags(buildCmd)
	buildCmd.Flags().Uint("rounds", 1, "number of QEC cycles per logical TICK")
}
