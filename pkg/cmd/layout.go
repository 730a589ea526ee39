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

	"github.com/consensys/go-qec/pkg/layout"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var layoutCmd = &cobra.Command{
	Use:   "layout [flags]",
	Short: "generate a code layout.",
	Long: `Generate the layout of a rotated surface code (or of a repetition
	code) and write it as YAML.  Written layouts can be edited and then
	given to other commands with --layout.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 0 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		var (
			l   *layout.Layout
			err error
			d   = GetUint(cmd, "distance")
			dx  = GetUint(cmd, "dx")
			dz  = GetUint(cmd, "dz")
		)
		//
		if dx == 0 {
			dx = d
		}
		//
		if dz == 0 {
			dz = d
		}
		//
		opts := layout.DefaultOptions()
		opts.Logical = GetString(cmd, "logical")
		//
		switch rep := strings.ToLower(GetString(cmd, "repetition")); rep {
		case "":
			l, err = layout.RotatedSurfaceCode(dx, dz, opts)
		case "x":
			l, err = layout.RepetitionCode(d, layout.X_TYPE, opts)
		case "z":
			l, err = layout.RepetitionCode(d, layout.Z_TYPE, opts)
		default:
			err = fmt.Errorf("invalid repetition code type %q (expected x or z)", rep)
		}
		//
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		log.Debugf("generated %s with %d qubits", l.Name(), len(l.Qubits()))
		//
		if filename := GetString(cmd, "output"); filename != "" {
			err = l.Save(filename)
		} else {
			err = l.Write(os.Stdout)
		}
		//
		if err != nil {
			log.Error(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(layoutCmd)
	layoutCmd.Flags().Uint("distance", 3, "code distance")
	layoutCmd.Flags().Uint("dx", 0, "X distance of a rotated surface code (defaults to --distance)")
	layoutCmd.Flags().Uint("dz", 0, "Z distance of a rotated surface code (defaults to --distance)")
	layoutCmd.Flags().String("repetition", "", "generate a repetition code of type x or z instead")
	layoutCmd.Flags().String("logical", "L0", "label of the logical qubit")
	layoutCmd.Flags().StringP("output", "o", "", "write layout to file (instead of stdout)")
}
