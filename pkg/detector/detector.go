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
package detector

import (
	"fmt"
	"strings"

	"github.com/consensys/go-qec/pkg/circuit"
)

// Measurement identifies a recorded measurement outcome.
type Measurement struct {
	Qubit string
	// QEC round in which the measurement happened
	Round uint
	// Absolute position in the measurement record
	Handle uint
}

// Detector is a set of measurements whose outcomes XOR to zero in the absence
// of noise.  A detector without measurements is trivially satisfied; such
// detectors are emitted for inactive stabilizers so that detector coordinates
// do not depend on which stabilizers are active.
type Detector struct {
	Stabilizer string
	Round      uint
	Coords     []float64
	// Measurements, with pairs of identical references cancelled out
	Measurements []Measurement
}

// Instruction returns the DETECTOR annotation for this detector, given the
// total number of measurements in the circuit so far.
func (p Detector) Instruction(total uint) circuit.Instruction {
	targets := make([]circuit.Target, len(p.Measurements))
	//
	for i, m := range p.Measurements {
		targets[i] = circuit.Rec(int(m.Handle) - int(total))
	}
	//
	return circuit.NewInstruction(circuit.DETECTOR, targets, p.Coords...)
}

// Handles returns the absolute measurement handles of this detector.
func (p Detector) Handles() []uint {
	handles := make([]uint, len(p.Measurements))
	//
	for i, m := range p.Measurements {
		handles[i] = m.Handle
	}
	//
	return handles
}

func (p Detector) String() string {
	var builder strings.Builder
	//
	builder.WriteString(fmt.Sprintf("%s@%d{", p.Stabilizer, p.Round))
	//
	for i, m := range p.Measurements {
		if i != 0 {
			builder.WriteString(",")
		}
		//
		builder.WriteString(fmt.Sprintf("%s:%d", m.Qubit, m.Handle))
	}
	//
	builder.WriteString("}")
	//
	return builder.String()
}
