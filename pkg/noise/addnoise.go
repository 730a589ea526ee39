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

	"github.com/consensys/go-qec/pkg/circuit"
)

// measurement of a given qubit, identified by its position amongst all
// measurements of that qubit.
type measurement struct {
	qubit   string
	ordinal int
}

// AddNoise rewrites a noiseless circuit by passing each of its operations
// through a model.  Each TICK of the given circuit ends a layer of the model,
// and annotations are copied with their measurement record targets remapped
// (since the model may reorder measurements within an instruction).  The given
// circuit must not contain any noise channel.
func AddNoise(m Model, c *circuit.Circuit) (*circuit.Circuit, error) {
	var (
		st    = m.NewCircuit()
		meass []measurement
	)
	//
	for i, insn := range c.Instructions() {
		var err error
		//
		switch insn.Family() {
		case circuit.NOISE:
			return nil, &NoisyInputError{i, insn.Name}
		case circuit.ANNOTATION:
			if insn.Name == circuit.TICK {
				err = m.Tick(st)
			} else {
				err = annotate(st, insn, meass)
			}
		case circuit.UNKNOWN:
			return nil, &UnsupportedOperationError{m.Name(), insn.Name}
		default:
			var qubits []string
			//
			if qubits, err = labels(m, insn); err != nil {
				return nil, err
			}
			//
			if insn.Family() == circuit.MEASUREMENT {
				for _, q := range qubits {
					meass = append(meass, measurement{q, len(st.Measurements(q))})
				}
			}
			//
			err = Apply(m, st, insn.Name, qubits...)
		}
		//
		if err != nil {
			return nil, err
		}
	}
	// Flush noise attached to the final layer boundary
	if err := m.Tick(st); err != nil {
		return nil, err
	}
	//
	return st.Circuit(), nil
}

// Determine the qubit labels targeted by an operation.
func labels(m Model, insn circuit.Instruction) ([]string, error) {
	qubits := make([]string, len(insn.Targets))
	//
	for i, t := range insn.Targets {
		if t.IsRec() {
			return nil, &UnsupportedOperationError{m.Name(), fmt.Sprintf("%s (classically controlled)", insn.Name)}
		}
		//
		q, ok := m.Label(uint(t.Value()))
		//
		if !ok {
			return nil, &UnknownQubitError{t.String()}
		}
		//
		qubits[i] = q
	}
	//
	return qubits, nil
}

// Copy an annotation into a state, remapping its measurement record targets.
func annotate(st *State, insn circuit.Instruction, meass []measurement) error {
	targets := make([]circuit.Target, len(insn.Targets))
	//
	for i, t := range insn.Targets {
		if !t.IsRec() {
			targets[i] = t
			continue
		}
		//
		index := len(meass) + t.Value()
		//
		if index < 0 {
			return &MeasurementIndexError{insn.Name, t.Value(), len(meass)}
		}
		//
		handle := st.Measurements(meass[index].qubit)[meass[index].ordinal]
		targets[i] = st.RecTarget(handle)
	}
	//
	st.Annotate(circuit.NewInstruction(insn.Name, targets, insn.Args...))
	//
	return nil
}
