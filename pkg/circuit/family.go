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
package circuit

// Family groups instructions by the way they act on qubits, which determines
// both their arity and the noise attached to them.
type Family uint8

// UNKNOWN is the family of any instruction name not listed below.
const UNKNOWN Family = 0

// RESET covers single-qubit resets (R, RX, RY, RZ).
const RESET Family = 1

// SINGLE_QUBIT_GATE covers single-qubit Clifford gates, including the identity.
const SINGLE_QUBIT_GATE Family = 2

// TWO_QUBIT_GATE covers two-qubit Clifford gates, whose targets are taken in
// pairs.
const TWO_QUBIT_GATE Family = 3

// MEASUREMENT covers single-qubit measurements, each target of which adds one
// entry to the measurement record.
const MEASUREMENT Family = 4

// NOISE covers stochastic noise channels.
const NOISE Family = 5

// ANNOTATION covers instructions which have no effect on the simulated state
// (TICK, DETECTOR, OBSERVABLE_INCLUDE, etc).
const ANNOTATION Family = 6

// TICK marks a scheduling boundary between layers of operations.
const TICK = "TICK"

// DETECTOR declares a parity of measurement results which is deterministic
// in the absence of noise.
const DETECTOR = "DETECTOR"

// OBSERVABLE_INCLUDE adds measurement results to a logical observable.
const OBSERVABLE_INCLUDE = "OBSERVABLE_INCLUDE"

// QUBIT_COORDS annotates a qubit with its coordinates.
const QUBIT_COORDS = "QUBIT_COORDS"

var families = map[string]Family{
	// resets
	"R": RESET, "RX": RESET, "RY": RESET, "RZ": RESET,
	// single-qubit gates
	"I": SINGLE_QUBIT_GATE, "X": SINGLE_QUBIT_GATE, "Y": SINGLE_QUBIT_GATE, "Z": SINGLE_QUBIT_GATE,
	"H": SINGLE_QUBIT_GATE, "H_XY": SINGLE_QUBIT_GATE, "H_YZ": SINGLE_QUBIT_GATE,
	"S": SINGLE_QUBIT_GATE, "S_DAG": SINGLE_QUBIT_GATE,
	"SQRT_X": SINGLE_QUBIT_GATE, "SQRT_X_DAG": SINGLE_QUBIT_GATE,
	"SQRT_Y": SINGLE_QUBIT_GATE, "SQRT_Y_DAG": SINGLE_QUBIT_GATE,
	"C_XYZ": SINGLE_QUBIT_GATE, "C_ZYX": SINGLE_QUBIT_GATE,
	// two-qubit gates
	"CX": TWO_QUBIT_GATE, "CNOT": TWO_QUBIT_GATE, "CY": TWO_QUBIT_GATE, "CZ": TWO_QUBIT_GATE,
	"SWAP": TWO_QUBIT_GATE, "ISWAP": TWO_QUBIT_GATE, "ISWAP_DAG": TWO_QUBIT_GATE,
	"CXSWAP": TWO_QUBIT_GATE, "SWAPCX": TWO_QUBIT_GATE,
	"SQRT_XX": TWO_QUBIT_GATE, "SQRT_YY": TWO_QUBIT_GATE, "SQRT_ZZ": TWO_QUBIT_GATE,
	// measurements
	"M": MEASUREMENT, "MX": MEASUREMENT, "MY": MEASUREMENT, "MZ": MEASUREMENT,
	// noise channels
	"DEPOLARIZE1": NOISE, "DEPOLARIZE2": NOISE, "X_ERROR": NOISE, "Y_ERROR": NOISE, "Z_ERROR": NOISE,
	"PAULI_CHANNEL_1": NOISE, "PAULI_CHANNEL_2": NOISE, "E": NOISE, "ELSE_CORRELATED_ERROR": NOISE,
	// annotations
	TICK: ANNOTATION, DETECTOR: ANNOTATION, OBSERVABLE_INCLUDE: ANNOTATION, QUBIT_COORDS: ANNOTATION,
	"SHIFT_COORDS": ANNOTATION,
}

// FamilyOf returns the family of a given instruction name, or UNKNOWN.
func FamilyOf(name string) Family {
	return families[name]
}

// Basis returns the Pauli basis ("X", "Y" or "Z") in which a reset or
// measurement instruction operates.  For example, "MX" operates in the X basis
// whilst "M" and "R" operate in the Z basis.
func Basis(name string) string {
	switch name {
	case "RX", "MX":
		return "X"
	case "RY", "MY":
		return "Y"
	default:
		return "Z"
	}
}

func (f Family) String() string {
	switch f {
	case RESET:
		return "reset"
	case SINGLE_QUBIT_GATE:
		return "single-qubit gate"
	case TWO_QUBIT_GATE:
		return "two-qubit gate"
	case MEASUREMENT:
		return "measurement"
	case NOISE:
		return "noise channel"
	case ANNOTATION:
		return "annotation"
	default:
		return "unknown"
	}
}
