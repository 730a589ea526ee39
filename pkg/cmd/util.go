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
	"path"
	"slices"
	"strconv"
	"strings"

	"github.com/consensys/go-qec/pkg/circuit"
	"github.com/consensys/go-qec/pkg/detector"
	"github.com/consensys/go-qec/pkg/experiment"
	"github.com/consensys/go-qec/pkg/layout"
	"github.com/consensys/go-qec/pkg/noise"
	"github.com/consensys/go-qec/pkg/setup"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// GetFlag gets an expected flag, or exits if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetString gets an expected string flag, or exits if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetStringArray gets an expected string array flag, or exits if an error
// arises.
func GetStringArray(cmd *cobra.Command, flag string) []string {
	r, err := cmd.Flags().GetStringArray(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetUint gets an expected unsigned integer flag, or exits if an error arises.
func GetUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetFloat gets an expected floating point flag, or exits if an error arises.
func GetFloat(cmd *cobra.Command, flag string) float64 {
	r, err := cmd.Flags().GetFloat64(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Add the flags used to construct a noise model.
func addModelFlags(cmd *cobra.Command) {
	cmd.Flags().String("model", "circuit-noise", fmt.Sprintf("noise model (%s)", strings.Join(noise.Names(), ", ")))
	cmd.Flags().String("setup", "", "setup file (.yaml) or built-in setup name [$QEC_SETUP]")
	cmd.Flags().Float64("prob", 0.001, "physical error probability bound to {prob} [$QEC_PROB]")
	cmd.Flags().StringArray("bind", nil, "bind another free parameter (e.g. --bind bias=10)")
}

// Add the flags used to construct code layouts.
func addLayoutFlags(cmd *cobra.Command) {
	cmd.Flags().String("layout", "", "layout file (.yaml) [$QEC_LAYOUT]")
	cmd.Flags().Uint("distance", 3, "distance of generated rotated surface codes")
}

// Add the flags used to configure detectors.
func addDetectorFlags(cmd *cobra.Command) {
	cmd.Flags().String("frame", string(detector.FRAME_FIRST), "frame of stabilizer generators (1, r, r-1 or t)")
	cmd.Flags().Bool("no-anc-reset", false, "do not reset ancillas at the start of each QEC cycle")
	cmd.Flags().Bool("omit-first", false, "omit the detectors of the first QEC round")
	cmd.Flags().StringP("output", "o", "", "write circuit to file (instead of stdout)")
}

// Look up a flag, falling back on an environment variable when the flag was
// not given explicitly.
func flagOrEnv(cmd *cobra.Command, flag string, env string) string {
	if value := os.Getenv(env); value != "" && !cmd.Flags().Changed(flag) {
		return value
	}
	//
	return GetString(cmd, flag)
}

// Construct the setup for a given model, binding its free parameters.
func getSetup(cmd *cobra.Command, model string) *setup.Setup {
	var (
		s      *setup.Setup
		err    error
		source = flagOrEnv(cmd, "setup", "QEC_SETUP")
	)
	//
	switch ext := path.Ext(source); {
	case source == "":
		s, err = noise.DefaultSetup(model)
	case ext == ".yaml" || ext == ".yml":
		s, err = setup.Load(source)
	default:
		s, err = setup.Builtin(source)
	}
	//
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	prob := GetFloat(cmd, "prob")
	//
	if env := os.Getenv("QEC_PROB"); env != "" && !cmd.Flags().Changed("prob") {
		if prob, err = strconv.ParseFloat(env, 64); err != nil {
			fmt.Printf("invalid QEC_PROB %q\n", env)
			os.Exit(2)
		}
	}
	//
	if slices.Contains(s.FreeParameters(), "prob") {
		err = s.BindFreeParameter("prob", prob)
	}
	//
	for _, binding := range GetStringArray(cmd, "bind") {
		if err != nil {
			break
		}
		//
		err = bindParameter(s, binding)
	}
	//
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return s
}

// Bind a free parameter given as "name=value".
func bindParameter(s *setup.Setup, binding string) error {
	name, text, ok := strings.Cut(binding, "=")
	if !ok {
		return fmt.Errorf("invalid binding %q (expected name=value)", binding)
	}
	//
	value, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return fmt.Errorf("invalid binding %q: %w", binding, err)
	}
	//
	return s.BindFreeParameter(strings.TrimSpace(name), value)
}

// Construct the requested noise model over some qubits, whose coordinates may
// be nil.
func getModel(cmd *cobra.Command, inds map[string]uint, coords map[string][]float64) noise.Model {
	name := GetString(cmd, "model")
	model, err := noise.Builtin(name, getSetup(cmd, name), inds, coords)
	//
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	log.Debugf("using noise model %s with setup %q", model.Name(), model.Setup().Name)
	//
	return model
}

// Read the layout file given, or generate a rotated surface code.
func getLayout(cmd *cobra.Command, opts layout.Options) *layout.Layout {
	var (
		l   *layout.Layout
		err error
	)
	//
	if file := flagOrEnv(cmd, "layout", "QEC_LAYOUT"); file != "" {
		l, err = layout.Load(file)
	} else {
		d := GetUint(cmd, "distance")
		l, err = layout.RotatedSurfaceCode(d, d, opts)
	}
	//
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return l
}

// Construct the detector policy requested.
func getPolicy(cmd *cobra.Command) detector.Policy {
	frame, err := detector.ParseFrame(GetString(cmd, "frame"))
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	policy := detector.Policy{Frame: frame, AncillaReset: !GetFlag(cmd, "no-anc-reset"),
		FirstRound: detector.DETERMINISTIC}
	//
	if GetFlag(cmd, "omit-first") {
		policy.FirstRound = detector.OMIT
	}
	//
	return policy
}

// Read a circuit file in the simulator's text format.
func readCircuitFile(filename string) *circuit.Circuit {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	c, err := circuit.Parse(string(bytes))
	if err != nil {
		fmt.Printf("%s: %s\n", filename, err)
		os.Exit(2)
	}
	//
	return c
}

// Finish a build and write out its circuit.
func writeBuild(cmd *cobra.Command, build *experiment.Build) {
	c, err := build.Finish()
	if err != nil {
		log.Error(err)
		os.Exit(1)
	}
	//
	log.Debugf("built %d instructions, %d measurements, %d detectors", c.Len(), c.NumMeasurements(),
		c.NumDetectors())
	//
	writeCircuit(cmd, build.Header(), c)
}

// Write a circuit, preceded by a header, to the output file (if any) or to
// stdout.
func writeCircuit(cmd *cobra.Command, header string, c *circuit.Circuit) {
	out := os.Stdout
	//
	if filename := GetString(cmd, "output"); filename != "" {
		file, err := os.Create(filename)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		defer file.Close()
		//
		out = file
	}
	//
	if _, err := fmt.Fprint(out, header); err != nil {
		log.Error(err)
		os.Exit(1)
	} else if _, err := c.WriteTo(out); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
