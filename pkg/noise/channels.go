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
	"math"
	"strings"

	"github.com/consensys/go-qec/pkg/setup"
)

// Channel determines the kind of noise instruction attached to an operation.
type Channel uint8

// NO_NOISE attaches nothing.
const NO_NOISE Channel = 0

// DEPOLARIZING attaches DEPOLARIZE1 (or DEPOLARIZE2 for two-qubit gates).
const DEPOLARIZING Channel = 1

// FLIP attaches X_ERROR, or Z_ERROR for operations in the X basis.  This is
// the classical flip of a reset or measurement outcome.
const FLIP Channel = 2

// BIASED attaches PAULI_CHANNEL_1 (or PAULI_CHANNEL_2) where Pauli errors
// containing the biased Pauli are more likely by the biased factor.
const BIASED Channel = 3

// PAULI_FLIPS attaches X_ERROR followed by Z_ERROR with the same rate.
const PAULI_FLIPS Channel = 4

// DEPOLARIZING_EACH attaches DEPOLARIZE1 to every qubit, including both
// qubits of a two-qubit gate.
const DEPOLARIZING_EACH Channel = 5

// Parameter names
const (
	sqErrorProb        = "sq_error_prob"
	tqErrorProb        = "tq_error_prob"
	longRangeErrorProb = "long_range_tq_error_prob"
	longCouplerDist    = "long_coupler_distance"
	measErrorProb      = "meas_error_prob"
	resetErrorProb     = "reset_error_prob"
	idleErrorProb      = "idle_error_prob"
	extraIdleErrorProb = "extra_idle_meas_or_reset_error_prob"
	assignErrorFlag    = "assign_error_flag"
	assignErrorProb    = "assign_error_prob"
	biasedPauli        = "biased_pauli"
	biasedFactor       = "biased_factor"
	relaxationTime     = "T1"
	dephasingTime      = "T2"
	symmetricNoise     = "symmetric_noise"
)

var paulis = []string{"I", "X", "Y", "Z"}

// BiasedPrefactors returns the relative weight of each non-identity Pauli
// operator on n qubits (in lexicographic order over I,X,Y,Z), where operators
// containing the biased Pauli are favoured by the biased factor.  The
// prefactors sum to one.
func BiasedPrefactors(pauli string, factor float64, n uint) []float64 {
	var (
		operators = []string{""}
		biased    = 0
	)
	//
	for range n {
		var next []string
		//
		for _, op := range operators {
			for _, p := range paulis {
				next = append(next, op+p)
			}
		}
		//
		operators = next
	}
	// Drop identity
	operators = operators[1:]
	//
	for _, op := range operators {
		if strings.Contains(op, pauli) {
			biased++
		}
	}
	//
	nonbias := 1 / (float64(biased)*(factor-1) + float64(len(operators)))
	prefactors := make([]float64, len(operators))
	//
	for i, op := range operators {
		if strings.Contains(op, pauli) {
			prefactors[i] = factor * nonbias
		} else {
			prefactors[i] = nonbias
		}
	}
	//
	return prefactors
}

// IdleErrorProbs returns the X, Y and Z error probabilities of a qubit idling
// for a given duration, obtained from the Pauli twirl of amplitude and phase
// damping with relaxation time T1 and dephasing time T2.
func IdleErrorProbs(t1 float64, t2 float64, duration float64) (float64, float64, float64) {
	relax := 1 - math.Exp(-duration/t1)
	deph := 1 - math.Exp(-duration/t2)
	xy := 0.25 * relax
	//
	return xy, xy, 0.5*deph - 0.25*relax
}

// Add the noise of a given channel to a grouping, for each scope of an
// operation.
func addNoise(g *grouping, s *setup.Setup, channel Channel, param string, basis string, units []unit) error {
	if channel == NO_NOISE {
		return nil
	}
	// PAULI_FLIPS emits all X errors before all Z errors
	var zs *grouping
	//
	if channel == PAULI_FLIPS {
		zs = newGrouping()
	}
	//
	for _, u := range units {
		rate, err := s.Resolve(u.scope, param)
		if err != nil {
			return err
		}
		//
		switch channel {
		case DEPOLARIZING:
			if len(u.targets) == 2 {
				g.add("DEPOLARIZE2", []float64{rate}, u.targets...)
			} else {
				g.add("DEPOLARIZE1", []float64{rate}, u.targets...)
			}
		case DEPOLARIZING_EACH:
			g.add("DEPOLARIZE1", []float64{rate}, u.targets...)
		case FLIP:
			if basis == "X" {
				g.add("Z_ERROR", []float64{rate}, u.targets...)
			} else {
				g.add("X_ERROR", []float64{rate}, u.targets...)
			}
		case PAULI_FLIPS:
			g.add("X_ERROR", []float64{rate}, u.targets...)
			zs.add("Z_ERROR", []float64{rate}, u.targets...)
		case BIASED:
			args, err := biasedArgs(s, u, rate)
			if err != nil {
				return err
			}
			//
			if len(u.targets) == 2 {
				g.add("PAULI_CHANNEL_2", args, u.targets...)
			} else {
				g.add("PAULI_CHANNEL_1", args, u.targets...)
			}
		}
	}
	//
	if zs != nil {
		g.insns = append(g.insns, zs.insns...)
	}
	//
	return nil
}

func biasedArgs(s *setup.Setup, u unit, rate float64) ([]float64, error) {
	pauli, err := s.ResolveText(u.scope, biasedPauli)
	if err != nil {
		return nil, err
	} else if pauli != "X" && pauli != "Y" && pauli != "Z" {
		return nil, setup.NewConfigError(biasedPauli, "expected X, Y or Z for %s, found %q", u.scope, pauli)
	}
	//
	factor, err := s.Resolve(u.scope, biasedFactor)
	if err != nil {
		return nil, err
	}
	//
	args := BiasedPrefactors(pauli, factor, uint(len(u.targets)))
	//
	for i := range args {
		args[i] *= rate
	}
	//
	return args, nil
}
