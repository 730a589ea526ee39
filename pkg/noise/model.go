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

	"github.com/consensys/go-qec/pkg/circuit"
	"github.com/consensys/go-qec/pkg/setup"
)

// Model emits the physical instructions of each operation together with the
// noise attached to it.  Each operation emits exactly one ideal instruction
// covering all given qubits, preceded (measurements) or followed (everything
// else) by at most one noise instruction per distinct error rate.  When the
// setup is uniform, there is exactly one such noise instruction.  Measurements
// are split into one ideal instruction per distinct assignment error
// probability, and some models attach their noise after the measurement.
// Qubits not named in a call are never touched.
//
// Operations are grouped into layers, which are ended by Tick().  The TICK
// marking a boundary is emitted lazily before the first instruction of the
// next layer, whilst noise attached to the boundary itself (e.g. idling up to
// the slowest qubit) is emitted when the layer ends.
//
// A model only reads its setup, hence it can be shared by any number of
// builds.  All per-circuit state lives in the State returned by NewCircuit().
type Model interface {
	// Name of this model
	Name() string
	// Setup used to resolve error rates
	Setup() *setup.Setup
	// Qubits known to this model, ordered by simulator index
	Qubits() []string
	// Index returns the simulator index of a given qubit
	Index(qubit string) (uint, bool)
	// Label returns the qubit with a given simulator index
	Label(index uint) (string, bool)
	// NewCircuit returns a fresh state for building a new circuit
	NewCircuit() *State
	// Tick ends the current layer
	Tick(st *State) error
	// Reset some qubits (e.g. R, RX)
	Reset(st *State, op string, qubits ...string) error
	// SingleQubitGate applies a single-qubit gate (e.g. H, X) to some qubits
	SingleQubitGate(st *State, op string, qubits ...string) error
	// TwoQubitGate applies a two-qubit gate (e.g. CX, CZ) to pairs of qubits
	TwoQubitGate(st *State, op string, qubits ...string) error
	// Measure some qubits (e.g. M, MX)
	Measure(st *State, op string, qubits ...string) error
	// Idle some qubits for one operation
	Idle(st *State, qubits ...string) error
	// IncomingNoise applies the noise affecting data qubits at the start of a
	// QEC cycle (only for phenomenological models)
	IncomingNoise(st *State, qubits ...string) error
}

// Apply dispatches an operation to the model method for its family.  The
// identity "I" is treated as idling.
func Apply(m Model, st *State, op string, qubits ...string) error {
	if op == "I" {
		return m.Idle(st, qubits...)
	}
	//
	switch circuit.FamilyOf(op) {
	case circuit.RESET:
		return m.Reset(st, op, qubits...)
	case circuit.SINGLE_QUBIT_GATE:
		return m.SingleQubitGate(st, op, qubits...)
	case circuit.TWO_QUBIT_GATE:
		return m.TwoQubitGate(st, op, qubits...)
	case circuit.MEASUREMENT:
		return m.Measure(st, op, qubits...)
	}
	//
	return &UnsupportedOperationError{m.Name(), op}
}

// QubitCoords emits a QUBIT_COORDS annotation for each qubit with known
// coordinates, ordered by simulator index.
func QubitCoords(m Model, st *State, coords map[string][]float64) error {
	for _, q := range m.Qubits() {
		if c, ok := coords[q]; ok {
			ind, _ := m.Index(q)
			st.Annotate(circuit.NewInstruction(circuit.QUBIT_COORDS, circuit.Qubits(ind), c...))
		}
	}
	//
	for q := range coords {
		if !slices.Contains(m.Qubits(), q) {
			return &UnknownQubitError{q}
		}
	}
	//
	return nil
}

// ============================================================================
// Base model
// ============================================================================

// base captures what is common to all models: a setup, and a mapping from
// qubit labels to simulator indices.
type base struct {
	name   string
	setup  *setup.Setup
	inds   map[string]uint
	labels map[uint]string
	qubits []string
}

func newBase(name string, s *setup.Setup, inds map[string]uint) base {
	qubits := make([]string, 0, len(inds))
	labels := make(map[uint]string, len(inds))
	//
	for q, ind := range inds {
		qubits = append(qubits, q)
		labels[ind] = q
	}
	//
	slices.SortFunc(qubits, func(a, b string) int { return int(inds[a]) - int(inds[b]) })
	//
	return base{name, s, inds, labels, qubits}
}

// Index returns the simulator index of a given qubit.
func (p *base) Index(qubit string) (uint, bool) {
	ind, ok := p.inds[qubit]
	return ind, ok
}

// Label returns the qubit with a given simulator index.
func (p *base) Label(index uint) (string, bool) {
	label, ok := p.labels[index]
	return label, ok
}

// Name returns the name of this model.
func (p *base) Name() string {
	return p.name
}

// Setup returns the setup of this model.
func (p *base) Setup() *setup.Setup {
	return p.setup
}

// Qubits returns the qubits of this model, ordered by simulator index.
func (p *base) Qubits() []string {
	return p.qubits
}

// NewCircuit returns a fresh state.
func (p *base) NewCircuit() *State {
	return newState()
}

// Check the family and qubits of an operation, returning its targets.
func (p *base) check(op string, family circuit.Family, qubits []string) ([]circuit.Target, error) {
	if circuit.FamilyOf(op) != family {
		return nil, &UnsupportedOperationError{p.name, op}
	} else if len(qubits) == 0 {
		return nil, &InvalidArityError{op, qubits, "no qubits given"}
	} else if family == circuit.TWO_QUBIT_GATE && len(qubits)%2 != 0 {
		return nil, &InvalidArityError{op, qubits, "expected an even number of qubits"}
	}
	//
	targets := make([]circuit.Target, len(qubits))
	//
	for i, q := range qubits {
		ind, ok := p.inds[q]
		//
		if !ok {
			return nil, &UnknownQubitError{q}
		} else if slices.Contains(qubits[:i], q) {
			return nil, &InvalidArityError{op, qubits, fmt.Sprintf("qubit %s given more than once", q)}
		}
		//
		targets[i] = circuit.Qubit(ind)
	}
	//
	return targets, nil
}

// unit is the smallest part of an operation which is parameterised
// independently: a single qubit, or a pair of qubits for two-qubit gates.
type unit struct {
	scope   setup.Scope
	targets []circuit.Target
}

// Split an operation into its units.
func units(family circuit.Family, qubits []string, targets []circuit.Target) []unit {
	var result []unit
	//
	if family == circuit.TWO_QUBIT_GATE {
		for i := 0; i+1 < len(qubits); i += 2 {
			result = append(result, unit{setup.OnPair(qubits[i], qubits[i+1]), targets[i : i+2]})
		}
	} else {
		for i, q := range qubits {
			result = append(result, unit{setup.OnQubit(q), targets[i : i+1]})
		}
	}
	//
	return result
}

// ============================================================================
// Grouping
// ============================================================================

// grouping collects instructions with identical names and arguments, merging
// their targets.  Instructions are kept in order of first appearance.
type grouping struct {
	index map[string]int
	insns []circuit.Instruction
}

func newGrouping() *grouping {
	return &grouping{index: make(map[string]int)}
}

func (g *grouping) add(name string, args []float64, targets ...circuit.Target) {
	var key strings.Builder
	//
	key.WriteString(name)
	//
	for _, arg := range args {
		key.WriteString(" ")
		key.WriteString(circuit.FormatArg(arg))
	}
	//
	if i, ok := g.index[key.String()]; ok {
		g.insns[i].Targets = append(g.insns[i].Targets, targets...)
	} else {
		g.index[key.String()] = len(g.insns)
		g.insns = append(g.insns, circuit.NewInstruction(name, slices.Clone(targets), args...))
	}
}
