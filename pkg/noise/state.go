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
	"github.com/consensys/go-qec/pkg/circuit"
)

// MeasurementSink is notified of every measurement emitted into a state.  A
// detector tracker is the typical sink.
type MeasurementSink interface {
	RecordMeasurement(qubit string, round uint, handle uint) error
}

// State is the per-circuit state of a build: the circuit buffer being written,
// the measurement record, and any pending noise which a model attaches to
// layer boundaries.  A state is created by Model.NewCircuit() and is never
// reused, hence nothing carries over from one circuit to the next.
type State struct {
	circuit *circuit.Circuit
	// Current layer
	layer uint
	// Set when a TICK must be emitted before the next operation
	pendingTick bool
	// Family of the last operation on each qubit
	lastOp map[string]circuit.Family
	// Absolute measurement handles, by qubit
	measurements map[string][]uint
	// Total number of measurements
	total uint
	sinks []MeasurementSink
	// Round attached to measurements
	round uint
	// Time spent by each qubit in the current layer (T1/T2)
	durations map[string]float64
	// Qubits measured or reset in the current layer (SI1000)
	measOrReset map[string]bool
}

func newState() *State {
	return &State{
		circuit:      circuit.NewCircuit(),
		pendingTick:  true,
		lastOp:       make(map[string]circuit.Family),
		measurements: make(map[string][]uint),
		durations:    make(map[string]float64),
		measOrReset:  make(map[string]bool),
	}
}

// Circuit returns the circuit written so far.
func (st *State) Circuit() *circuit.Circuit {
	return st.circuit
}

// Layer returns the index of the current layer, which is incremented at
// every tick.
func (st *State) Layer() uint {
	return st.layer
}

// Round returns the QEC round attached to measurements.
func (st *State) Round() uint {
	return st.round
}

// SetRound sets the QEC round attached to subsequent measurements.
func (st *State) SetRound(round uint) {
	st.round = round
}

// Attach a sink to be notified of all subsequent measurements.
func (st *State) Attach(sink MeasurementSink) {
	st.sinks = append(st.sinks, sink)
}

// LastOperation returns the family of the last operation applied to a given
// qubit, or UNKNOWN if none was.
func (st *State) LastOperation(qubit string) circuit.Family {
	return st.lastOp[qubit]
}

// NumMeasurements returns the total number of measurements so far.
func (st *State) NumMeasurements() uint {
	return st.total
}

// Measurements returns the absolute handles of all measurements of a given
// qubit.
func (st *State) Measurements(qubit string) []uint {
	return st.measurements[qubit]
}

// MeasTarget returns the record target for a measurement of a given qubit,
// where rel is relative to that qubit's own measurements (i.e. -1 is its most
// recent measurement, -2 the one before, etc).
func (st *State) MeasTarget(qubit string, rel int) (circuit.Target, error) {
	handles := st.measurements[qubit]
	//
	if rel >= 0 || -rel > len(handles) {
		return circuit.Target{}, &MeasurementIndexError{qubit, rel, len(handles)}
	}
	//
	return st.RecTarget(handles[len(handles)+rel]), nil
}

// RecTarget returns the record target for a given absolute measurement handle.
func (st *State) RecTarget(handle uint) circuit.Target {
	return circuit.Rec(int(handle) - int(st.total))
}

// Annotate appends an annotation (e.g. DETECTOR) to the circuit.  This does
// not start a new layer.
func (st *State) Annotate(insn circuit.Instruction) {
	st.circuit.AppendInstruction(insn)
}

// Start an operation on some qubits, emitting the TICK which ends the previous
// layer (if pending).
func (st *State) begin(family circuit.Family, qubits []string) {
	if st.pendingTick {
		st.circuit.Append(circuit.TICK, nil)
		st.pendingTick = false
	}
	//
	for _, q := range qubits {
		st.lastOp[q] = family
	}
}

func (st *State) emit(insns ...circuit.Instruction) {
	for _, insn := range insns {
		st.circuit.AppendInstruction(insn)
	}
}

// Record the measurements of an instruction just emitted, notifying all sinks.
func (st *State) record(qubits []string) error {
	for _, q := range qubits {
		handle := st.total
		st.measurements[q] = append(st.measurements[q], handle)
		st.total++
		//
		for _, sink := range st.sinks {
			if err := sink.RecordMeasurement(q, st.round, handle); err != nil {
				return err
			}
		}
	}
	//
	return nil
}

// End the current layer.
func (st *State) tick() {
	if !st.pendingTick {
		st.layer++
		st.pendingTick = true
	}
	//
	clear(st.durations)
	clear(st.measOrReset)
}
