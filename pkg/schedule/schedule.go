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
package schedule

import (
	"fmt"
	"slices"
	"strings"

	"github.com/consensys/go-qec/pkg/circuit"
)

// Kind classifies logical operations.
type Kind uint8

// RESET initialises logical qubits.
const RESET Kind = 0

// UNITARY applies a logical gate.
const UNITARY Kind = 1

// MEASUREMENT measures logical qubits.
const MEASUREMENT Kind = 2

// IDLE leaves logical qubits untouched for one layer.
const IDLE Kind = 3

// QEC_CYCLE performs one round of stabilizer measurements.
const QEC_CYCLE Kind = 4

func (k Kind) String() string {
	switch k {
	case RESET:
		return "reset"
	case UNITARY:
		return "unitary"
	case MEASUREMENT:
		return "measurement"
	case IDLE:
		return "idle"
	case QEC_CYCLE:
		return "qec_cycle"
	}
	//
	return "unknown"
}

// Operation is a logical operation on one or more logical qubits.  Resets,
// single-qubit unitaries, measurements and idles act independently on each of
// their qubits, whilst a two-qubit unitary acts on exactly two qubits (control
// first).
type Operation struct {
	Kind   Kind
	Name   string
	Qubits []string
}

func (p Operation) String() string {
	return fmt.Sprintf("%s %s", p.Name, strings.Join(p.Qubits, " "))
}

// Layer is a set of logical operations executed in the same time slice.
type Layer struct {
	Operations []Operation
}

// NewLayer constructs a layer from some operations.
func NewLayer(ops ...Operation) Layer {
	return Layer{ops}
}

// QECLayer constructs a layer containing a single QEC cycle over some logical
// qubits (or all of them, when none are given).
func QECLayer(qubits ...string) Layer {
	return Layer{[]Operation{{QEC_CYCLE, circuit.TICK, qubits}}}
}

// IsQEC checks whether this layer holds a QEC cycle.
func (p Layer) IsQEC() bool {
	return len(p.Operations) > 0 && p.Operations[0].Kind == QEC_CYCLE
}

func (p Layer) String() string {
	ops := make([]string, len(p.Operations))
	//
	for i, op := range p.Operations {
		ops[i] = op.String()
	}
	//
	return strings.Join(ops, "; ")
}

// Schedule is a sequence of layers over a fixed set of logical qubits.
type Schedule struct {
	Qubits []string
	Layers []Layer
}

// DefaultGates returns the logical operations understood by FromCircuit.
// TICK always denotes a QEC cycle.
func DefaultGates() map[string]Kind {
	return map[string]Kind{
		"R": RESET, "RZ": RESET, "RX": RESET,
		"X": UNITARY, "Z": UNITARY, "CX": UNITARY, "CNOT": UNITARY,
		"I": IDLE,
		"M": MEASUREMENT, "MZ": MEASUREMENT, "MX": MEASUREMENT,
		circuit.TICK: QEC_CYCLE,
	}
}

// FromCircuit converts an unencoded logical circuit into a schedule, where
// qubit i of the circuit is the i-th logical qubit given.  Each TICK is a QEC
// cycle on all logical qubits, and the operations between two ticks form one
// layer, except that an operation on a logical qubit which already has one in
// the current layer starts a new layer.  Two-qubit gates give one operation per
// pair of targets.  Since circuits do not mention idling, logical qubits
// without an operation in a layer are given an explicit idle.
func FromCircuit(c *circuit.Circuit, logicals []string, gates map[string]Kind) (*Schedule, error) {
	var (
		schedule = &Schedule{Qubits: slices.Clone(logicals)}
		current  []Operation
		busy     = make(map[string]bool)
	)
	//
	flush := func() {
		if len(current) > 0 {
			schedule.Layers = append(schedule.Layers, fill(current, logicals))
			current = nil
			busy = make(map[string]bool)
		}
	}
	//
	for i, insn := range c.Instructions() {
		kind, ok := gates[insn.Name]
		arity := 1
		//
		if !ok {
			return nil, &UnsupportedOperationError{i, insn.Name}
		} else if kind == QEC_CYCLE {
			flush()
			schedule.Layers = append(schedule.Layers, QECLayer(logicals...))
			//
			continue
		} else if circuit.FamilyOf(insn.Name) == circuit.TWO_QUBIT_GATE {
			arity = 2
		}
		//
		if len(insn.Targets)%arity != 0 {
			return nil, &UnpairedTargetError{i, insn.Name}
		}
		//
		for j := 0; j < len(insn.Targets); j += arity {
			qubits := make([]string, arity)
			//
			for k, t := range insn.Targets[j : j+arity] {
				if t.IsRec() || t.Value() >= len(logicals) {
					return nil, &UnknownQubitError{uint(len(schedule.Layers)), t.String()}
				}
				//
				qubits[k] = logicals[t.Value()]
			}
			//
			if slices.ContainsFunc(qubits, func(q string) bool { return busy[q] }) {
				flush()
			}
			//
			for _, q := range qubits {
				busy[q] = true
			}
			//
			current = append(current, Operation{kind, insn.Name, qubits})
		}
	}
	//
	flush()
	//
	return schedule, nil
}

// Add explicit idles for logical qubits without any operation.
func fill(ops []Operation, logicals []string) Layer {
	for _, q := range logicals {
		used := slices.ContainsFunc(ops, func(op Operation) bool {
			return slices.Contains(op.Qubits, q)
		})
		//
		if !used {
			ops = append(ops, Operation{IDLE, "I", []string{q}})
		}
	}
	//
	return Layer{ops}
}
