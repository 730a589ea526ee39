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
package setup

import (
	"fmt"
	"slices"
	"strings"
)

// builtin captures a setup which comes with the library.
type builtin struct {
	name        string
	description string
	entries     map[string]Value
}

var builtins = map[string]builtin{
	"circuit-noise": {
		"Circuit-level noise setup",
		"Setup for a circuit-level noise model that can be used for any code and distance.",
		map[string]Value{
			"sq_error_prob":     MustFree("{prob}"),
			"tq_error_prob":     MustFree("{prob}"),
			"meas_error_prob":   MustFree("{prob}"),
			"reset_error_prob":  MustFree("{prob}"),
			"idle_error_prob":   MustFree("{prob}"),
			"assign_error_flag": Flag(false),
			"assign_error_prob": MustFree("{prob}"),
		},
	},
	"sd6": {
		"SD6 noise setup",
		"Setup for a SD6 noise model that can be used for any code and distance.",
		map[string]Value{
			"sq_error_prob":     MustFree("{prob}"),
			"tq_error_prob":     MustFree("{prob}"),
			"meas_error_prob":   MustFree("{prob}"),
			"reset_error_prob":  MustFree("{prob}"),
			"idle_error_prob":   MustFree("{prob}"),
			"assign_error_flag": Flag(false),
			"assign_error_prob": MustFree("{prob}"),
		},
	},
	"si1000": {
		"SI1000 noise setup",
		"Setup for the SI1000 noise model that can be used for any code and distance.",
		map[string]Value{
			"sq_error_prob":                       MustFree("{prob} / 10"),
			"tq_error_prob":                       MustFree("{prob}"),
			"meas_error_prob":                     MustFree("{prob} * 5"),
			"reset_error_prob":                    MustFree("{prob} * 2"),
			"idle_error_prob":                     MustFree("{prob} / 10"),
			"extra_idle_meas_or_reset_error_prob": MustFree("{prob} * 2"),
			"assign_error_flag":                   Flag(false),
			"assign_error_prob":                   Number(0),
		},
	},
	"extended-si1000": {
		"Extended SI1000 noise setup",
		"Setup for the extended SI1000 noise model, where measurements flip their outcome and depolarise the measured qubit.",
		map[string]Value{
			"sq_error_prob":                       MustFree("{prob} / 10"),
			"tq_error_prob":                       MustFree("{prob}"),
			"meas_error_prob":                     MustFree("{prob} * 2"),
			"reset_error_prob":                    MustFree("{prob} * 2"),
			"idle_error_prob":                     MustFree("{prob} / 10"),
			"extra_idle_meas_or_reset_error_prob": MustFree("{prob} * 2"),
			"assign_error_flag":                   Flag(true),
			"assign_error_prob":                   MustFree("{prob} * 5"),
		},
	},
	"nlr": {
		"NLR noise setup",
		"Setup for the SI1000 noise model with stronger noise on long-range CZ gates.",
		map[string]Value{
			"sq_error_prob":                       MustFree("{prob} / 10"),
			"tq_error_prob":                       MustFree("{prob}"),
			"long_range_tq_error_prob":            MustFree("{prob} * 5"),
			"long_coupler_distance":               Number(1.5),
			"meas_error_prob":                     MustFree("{prob} * 5"),
			"reset_error_prob":                    MustFree("{prob} * 2"),
			"idle_error_prob":                     MustFree("{prob} / 10"),
			"extra_idle_meas_or_reset_error_prob": MustFree("{prob} * 2"),
			"assign_error_flag":                   Flag(false),
			"assign_error_prob":                   Number(0),
		},
	},
	"uniform-depolarizing": {
		"Uniform depolarizing noise setup",
		"Setup for a depolarizing noise model with the same probability for every operation.",
		map[string]Value{
			"sq_error_prob":     MustFree("{prob}"),
			"tq_error_prob":     MustFree("{prob}"),
			"meas_error_prob":   MustFree("{prob}"),
			"reset_error_prob":  MustFree("{prob}"),
			"idle_error_prob":   MustFree("{prob}"),
			"assign_error_flag": Flag(false),
			"assign_error_prob": MustFree("{prob}"),
		},
	},
	"biased-circuit-noise": {
		"Biased circuit-level noise setup",
		"Setup for a circuit-level noise model where Pauli errors containing Z are more likely.",
		map[string]Value{
			"sq_error_prob":     MustFree("{prob}"),
			"tq_error_prob":     MustFree("{prob}"),
			"meas_error_prob":   MustFree("{prob}"),
			"reset_error_prob":  MustFree("{prob}"),
			"idle_error_prob":   MustFree("{prob}"),
			"assign_error_flag": Flag(false),
			"assign_error_prob": MustFree("{prob}"),
			"biased_pauli":      Text("Z"),
			"biased_factor":     MustFree("{bias}"),
		},
	},
	"phenomenological": {
		"Phenomenological noise setup",
		"Setup for data qubit errors at the start of each QEC cycle plus measurement errors.",
		map[string]Value{
			"idle_error_prob":   MustFree("{prob}"),
			"meas_error_prob":   MustFree("{prob}"),
			"assign_error_flag": Flag(false),
			"assign_error_prob": Number(0),
		},
	},
	"inc-res-meas": {
		"Incoming, reset and measurement noise setup",
		"Setup for data qubit errors at the start of each QEC cycle plus reset and measurement errors.",
		map[string]Value{
			"idle_error_prob":   MustFree("{prob}"),
			"meas_error_prob":   MustFree("{prob}"),
			"reset_error_prob":  MustFree("{prob}"),
			"assign_error_flag": Flag(false),
			"assign_error_prob": Number(0),
		},
	},
	"incoming-noise": {
		"Incoming noise setup",
		"Setup for data qubit errors at the start of each QEC cycle.",
		map[string]Value{
			"idle_error_prob": MustFree("{prob}"),
		},
	},
	"measurement-noise": {
		"Measurement noise setup",
		"Setup for errors on measurements only.",
		map[string]Value{
			"meas_error_prob":   MustFree("{prob}"),
			"assign_error_flag": Flag(false),
			"assign_error_prob": Number(0),
		},
	},
	"noiseless": {
		"Noiseless setup",
		"Setup without any noise.",
		map[string]Value{},
	},
}

// BuiltinNames returns the names of all built-in setups, in sorted order.
func BuiltinNames() []string {
	var names []string
	//
	for name := range builtins {
		names = append(names, name)
	}
	//
	slices.Sort(names)
	//
	return names
}

// Builtin constructs a fresh copy of a built-in setup.  Names are matched
// case-insensitively, with underscores treated as dashes.
func Builtin(name string) (*Setup, error) {
	key := strings.ReplaceAll(strings.ToLower(name), "_", "-")
	b, ok := builtins[key]
	//
	if !ok {
		return nil, fmt.Errorf("unknown setup %q (expected one of %s)", name, strings.Join(BuiltinNames(), ", "))
	}
	//
	setup := NewSetup(b.name)
	setup.Description = b.description
	//
	for param, value := range b.entries {
		if err := setup.Set(Global(), param, value); err != nil {
			// built-in entries are always valid
			panic(err)
		}
	}
	//
	return setup, nil
}

// CircuitNoise returns the standard circuit-level noise setup, with free
// parameter "prob".
func CircuitNoise() *Setup { return mustBuiltin("circuit-noise") }

// SD6 returns the SD6 noise setup, with free parameter "prob".
func SD6() *Setup { return mustBuiltin("sd6") }

// SI1000 returns the SI1000 noise setup, with free parameter "prob".
func SI1000() *Setup { return mustBuiltin("si1000") }

// ExtendedSI1000 returns the extended SI1000 noise setup, with free parameter
// "prob".
func ExtendedSI1000() *Setup { return mustBuiltin("extended-si1000") }

// NLR returns the NLR noise setup, with free parameter "prob".  CZ gates
// between qubits further apart than 1.5 use the long-range error rate.
func NLR() *Setup { return mustBuiltin("nlr") }

// UniformDepolarizing returns the uniform depolarizing setup, with free
// parameter "prob".
func UniformDepolarizing() *Setup { return mustBuiltin("uniform-depolarizing") }

// BiasedCircuitNoise returns the biased circuit-level noise setup, with free
// parameters "prob" and "bias".
func BiasedCircuitNoise() *Setup { return mustBuiltin("biased-circuit-noise") }

// Phenomenological returns the phenomenological noise setup, with free
// parameter "prob".
func Phenomenological() *Setup { return mustBuiltin("phenomenological") }

// IncResMeas returns the setup with incoming, reset and measurement noise,
// with free parameter "prob".
func IncResMeas() *Setup { return mustBuiltin("inc-res-meas") }

// IncomingNoise returns the incoming noise setup, with free parameter "prob".
func IncomingNoise() *Setup { return mustBuiltin("incoming-noise") }

// MeasurementNoise returns the measurement noise setup, with free parameter
// "prob".
func MeasurementNoise() *Setup { return mustBuiltin("measurement-noise") }

// Noiseless returns an empty setup.
func Noiseless() *Setup { return mustBuiltin("noiseless") }

func mustBuiltin(name string) *Setup {
	setup, err := Builtin(name)
	if err != nil {
		panic(err)
	}
	//
	return setup
}
