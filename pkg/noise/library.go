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
package noise

import (
	"fmt"
	"slices"
	"strings"

	"github.com/consensys/go-qec/pkg/setup"
)

// constructor builds a model from a setup, a mapping of qubits to simulator
// indices, and the coordinates of those qubits (which may be nil).
type constructor func(*setup.Setup, map[string]uint, map[string][]float64) Model

var models = map[string]constructor{
	"circuit-noise": func(s *setup.Setup, inds map[string]uint, _ map[string][]float64) Model {
		return NewCircuitNoise(s, inds)
	},
	"sd6": func(s *setup.Setup, inds map[string]uint, _ map[string][]float64) Model {
		return NewSD6(s, inds)
	},
	"si1000": func(s *setup.Setup, inds map[string]uint, _ map[string][]float64) Model {
		return NewSI1000(s, inds)
	},
	"extended-si1000": func(s *setup.Setup, inds map[string]uint, _ map[string][]float64) Model {
		return NewExtendedSI1000(s, inds)
	},
	"nlr": func(s *setup.Setup, inds map[string]uint, coords map[string][]float64) Model {
		return NewNLR(s, inds, coords)
	},
	"movable-qubits-circuit-noise": func(s *setup.Setup, inds map[string]uint, _ map[string][]float64) Model {
		return NewMovableQubitsCircuitNoise(s, inds)
	},
	"uniform-depolarizing": func(s *setup.Setup, inds map[string]uint, _ map[string][]float64) Model {
		return NewUniformDepolarizing(s, inds)
	},
	"biased-circuit-noise": func(s *setup.Setup, inds map[string]uint, _ map[string][]float64) Model {
		return NewBiasedCircuitNoise(s, inds)
	},
	"phenomenological": func(s *setup.Setup, inds map[string]uint, _ map[string][]float64) Model {
		return NewPhenomenological(s, inds)
	},
	"phenomenological-depol": func(s *setup.Setup, inds map[string]uint, _ map[string][]float64) Model {
		return NewPhenomenologicalDepol(s, inds)
	},
	"inc-res-meas": func(s *setup.Setup, inds map[string]uint, _ map[string][]float64) Model {
		return NewIncResMeas(s, inds)
	},
	"incoming-noise": func(s *setup.Setup, inds map[string]uint, _ map[string][]float64) Model {
		return NewIncomingNoise(s, inds)
	},
	"incoming-depol-noise": func(s *setup.Setup, inds map[string]uint, _ map[string][]float64) Model {
		return NewIncomingDepolNoise(s, inds)
	},
	"measurement-noise": func(s *setup.Setup, inds map[string]uint, _ map[string][]float64) Model {
		return NewMeasurementNoise(s, inds)
	},
	"noiseless": func(s *setup.Setup, inds map[string]uint, _ map[string][]float64) Model {
		return NewNoiseless(s, inds)
	},
	"t1t2": func(s *setup.Setup, inds map[string]uint, _ map[string][]float64) Model {
		return NewT1T2(s, inds)
	},
}

// Models sharing the built-in setup of another model.
var setups = map[string]string{
	"movable-qubits-circuit-noise": "circuit-noise",
	"phenomenological-depol":       "phenomenological",
	"incoming-depol-noise":         "incoming-noise",
}

// Names returns the names of all models in the library.
func Names() []string {
	names := make([]string, 0, len(models))
	//
	for name := range models {
		names = append(names, name)
	}
	//
	slices.Sort(names)
	//
	return names
}

// Builtin constructs a model of the library by name (e.g. "si1000" or
// "SI1000").  Coordinates are only used by models which depend on the distance
// between qubits (i.e. nlr), and may otherwise be nil.
func Builtin(name string, s *setup.Setup, inds map[string]uint, coords map[string][]float64) (Model, error) {
	if fn, ok := models[normalise(name)]; ok {
		return fn(s, inds, coords), nil
	}
	//
	return nil, fmt.Errorf("unknown noise model %q (expected one of %s)", name, strings.Join(Names(), ", "))
}

// DefaultSetup returns the built-in setup which goes with a model of the
// library.  There is no default setup for t1t2, since it requires gate
// durations.
func DefaultSetup(name string) (*setup.Setup, error) {
	key := normalise(name)
	//
	if key == "t1t2" {
		return nil, fmt.Errorf("noise model t1t2 has no default setup")
	} else if shared, ok := setups[key]; ok {
		key = shared
	}
	//
	return setup.Builtin(key)
}

func normalise(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), "_", "-")
}
