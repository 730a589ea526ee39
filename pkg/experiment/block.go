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
package experiment

import (
	"fmt"
	"slices"

	"github.com/consensys/go-qec/pkg/circuit"
	"github.com/consensys/go-qec/pkg/detector"
	"github.com/consensys/go-qec/pkg/layout"
	"github.com/consensys/go-qec/pkg/noise"
)

// op is a physical operation within a step.
type op struct {
	name   string
	qubits []string
}

// step is one physical layer of a block.  Qubits of the block without any
// operation in a step idle.
type step struct {
	// Apply incoming noise to the data qubits first
	incoming bool
	ops      []op
}

// program is the physical implementation of a logical operation on one
// block.
type program struct {
	steps []step
	// Called once all steps have been emitted
	finish func(st *noise.State) error
}

// block is a code block encoding a single logical qubit.  The detector
// tracker is shared by all blocks of a build.
type block struct {
	logical string
	layout  *layout.Layout
	tracker *detector.Tracker
	// Two-qubit gate used by QEC cycles (CX or CZ)
	entangler string
	qubits    []string
	data      []string
	ancs      []string
	xancs     []string
	zancs     []string
	// Data support of each stabilizer
	support map[string][]string
	// Data qubits excited by the next reset
	excited map[string]bool
	// QEC cycles left before stabilizers of the other type become
	// deterministic
	warmup uint
}

func newBlock(l *layout.Layout, tracker *detector.Tracker, entangler string) (*block, error) {
	logicals := l.Logicals()
	//
	if len(logicals) != 1 {
		return nil, &UnsupportedLayoutError{l.Name(), fmt.Sprintf("expected one logical qubit, found %d", len(logicals))}
	}
	//
	ancs := l.AncQubits()
	support := make(map[string][]string, len(ancs))
	//
	for _, a := range ancs {
		support[a] = l.Support(a)
	}
	//
	return &block{
		logical:   logicals[0].Label,
		layout:    l,
		tracker:   tracker,
		entangler: entangler,
		qubits:    l.Qubits(),
		data:      l.DataQubits(),
		ancs:      ancs,
		xancs:     l.Select(layout.ANCILLA, layout.X_TYPE),
		zancs:     l.Select(layout.ANCILLA, layout.Z_TYPE),
		support:   support,
		excited:   make(map[string]bool),
	}, nil
}

// Set the data qubits to be excited by the next reset, from a bit string over
// the data qubits (ordered by simulator index).
func (b *block) initData(bits string) error {
	if len(bits) != len(b.data) {
		return &InvalidDataInitError{b.logical, bits, len(b.data)}
	}
	//
	excited := make(map[string]bool)
	//
	for i, c := range bits {
		switch c {
		case '0':
		case '1':
			excited[b.data[i]] = true
		default:
			return &InvalidDataInitError{b.logical, bits, len(b.data)}
		}
	}
	//
	b.excited = excited
	//
	return nil
}

// Emit one step of this block, given the qubits which any block operates on
// in the same step.  Transversal gates between blocks operate on qubits of
// other blocks, hence these must not idle.
func (b *block) apply(m noise.Model, st *noise.State, s step, busy map[string]bool) error {
	if s.incoming {
		if err := m.IncomingNoise(st, b.data...); err != nil {
			return err
		}
	}
	//
	for _, o := range s.ops {
		if len(o.qubits) == 0 {
			continue
		} else if err := noise.Apply(m, st, o.name, o.qubits...); err != nil {
			return err
		}
	}
	//
	var idle []string
	//
	for _, q := range b.qubits {
		if !busy[q] {
			idle = append(idle, q)
		}
	}
	//
	if len(idle) == 0 {
		return nil
	}
	//
	return m.Idle(st, idle...)
}

// ============================================================================
// Logical operations
// ============================================================================

// Reset all qubits of the block, excite the requested data qubits and, for
// the X basis, rotate the data qubits.  Stabilizers of the other type have
// random outcomes in the first round (or first two rounds, when ancillas are
// not reset), hence their detectors are deactivated until then.
func (b *block) reset(basis string) program {
	var (
		excited []string
		steps   = []step{{ops: []op{{"R", b.qubits}}}}
	)
	//
	for _, q := range b.data {
		if b.excited[q] {
			excited = append(excited, q)
		}
	}
	//
	steps = append(steps, step{ops: []op{{"X", excited}}})
	//
	if basis == "X" {
		steps = append(steps, step{ops: []op{{"H", b.data}}})
	}
	//
	return program{steps, func(*noise.State) error {
		b.tracker.Reset(b.qubits...)
		clear(b.excited)
		//
		if b.warmup = 1; !b.tracker.Policy().AncillaReset {
			b.warmup = 2
		}
		//
		if basis == "X" {
			return b.tracker.Deactivate(b.zancs...)
		}
		//
		return b.tracker.Deactivate(b.xancs...)
	}}
}

// Apply a logical Pauli transversally along the support of its operator.
func (b *block) pauli(name string) (program, error) {
	switch name {
	case "X":
		return program{[]step{{ops: []op{{"X", b.layout.LogX(b.logical)}}}}, nil}, nil
	case "Z":
		return program{[]step{{ops: []op{{"Z", b.layout.LogZ(b.logical)}}}}, nil}, nil
	}
	//
	return program{}, &UnsupportedOperationError{b.logical, name}
}

// Apply a logical CX transversally, with this block as control.  Data qubits
// are paired by position, and so are ancillas: the X-type stabilizers of the
// control and the Z-type stabilizers of the target now measure their product
// with their partner's stabilizer.  Without native CX, the target's data
// qubits are rotated around CZ gates.
func (b *block) cnot(target *block) (program, error) {
	pairs, err := pairing(b, target)
	if err != nil {
		return program{}, err
	}
	//
	var gates []string
	//
	for _, d := range b.data {
		gates = append(gates, d, pairs[d])
	}
	//
	steps := []step{{ops: []op{{"CX", gates}}}}
	//
	if b.entangler == "CZ" {
		rotation := step{ops: []op{{"H", target.data}}}
		steps = []step{rotation, {ops: []op{{"CZ", gates}}}, rotation}
	}
	//
	products := make(map[string][]string)
	//
	for _, a := range b.xancs {
		products[a] = []string{a, pairs[a]}
	}
	//
	for _, a := range b.zancs {
		products[pairs[a]] = []string{pairs[a], a}
	}
	//
	return program{steps, func(*noise.State) error {
		unitary, err := b.tracker.Transformation(products)
		if err != nil {
			return err
		}
		//
		return b.tracker.Update(unitary)
	}}, nil
}

// Measure all data qubits, closing the detectors of the stabilizers which can
// be reconstructed from them, and include the logical operator in a given
// observable.
func (b *block) measure(basis string, observable func() uint) program {
	var (
		steps []step
		stabs = b.zancs
		logop = b.layout.LogZ(b.logical)
	)
	//
	if basis == "X" {
		steps = append(steps, step{ops: []op{{"H", b.data}}})
		stabs = b.xancs
		logop = b.layout.LogX(b.logical)
	}
	//
	steps = append(steps, step{ops: []op{{"M", b.data}}})
	//
	return program{steps, func(st *noise.State) error {
		dets, err := b.tracker.CloseFromData(b.support, stabs)
		if err != nil {
			return err
		}
		//
		annotate(st, dets)
		//
		targets := make([]circuit.Target, len(logop))
		//
		for i, q := range logop {
			if targets[i], err = st.MeasTarget(q, -1); err != nil {
				return err
			}
		}
		//
		st.Annotate(circuit.NewInstruction(circuit.OBSERVABLE_INCLUDE, targets, float64(observable())))
		//
		return nil
	}}
}

// One QEC cycle, closing the detectors of all stabilizers.  Ancillas are reset
// first when the closing policy expects so.
func (b *block) cycle() program {
	var steps []step
	//
	if b.tracker.Policy().AncillaReset {
		steps = append(steps, step{ops: []op{{"R", b.ancs}}})
	}
	//
	if b.entangler == "CZ" {
		steps = append(steps, b.czSteps()...)
	} else {
		steps = append(steps, b.cxSteps()...)
	}
	// Incoming noise hits the data qubits at the start of the cycle
	steps[0].incoming = true
	//
	return program{steps, func(st *noise.State) error {
		dets, err := b.tracker.CloseRound(b.ancs...)
		if err != nil {
			return err
		}
		//
		annotate(st, dets)
		//
		if b.warmup > 0 {
			if b.warmup--; b.warmup == 0 {
				return b.tracker.Activate(b.ancs...)
			}
		}
		//
		return nil
	}}
}

// Syndrome extraction with CX gates, where X-type ancillas control and Z-type
// ancillas are targeted.
func (b *block) cxSteps() []step {
	steps := []step{{ops: []op{{"H", b.xancs}}}}
	//
	for k := range 4 {
		var pairs []string
		//
		for _, a := range b.xancs {
			if d, ok := b.neighbor(a, layout.X_TYPE, k); ok {
				pairs = append(pairs, a, d)
			}
		}
		//
		for _, a := range b.zancs {
			if d, ok := b.neighbor(a, layout.Z_TYPE, k); ok {
				pairs = append(pairs, d, a)
			}
		}
		//
		steps = append(steps, step{ops: []op{{"CX", pairs}}})
	}
	//
	return append(steps, step{ops: []op{{"H", b.xancs}}}, step{ops: []op{{"M", b.ancs}}})
}

// Syndrome extraction with CZ gates.  Data qubits are rotated half way
// through, such that they interact with X-type ancillas in the X basis and
// with Z-type ancillas in the Z basis.
func (b *block) czSteps() []step {
	var (
		rotated = make(map[string]bool)
		order   = b.layout.InteractionOrder(layout.X_TYPE)
	)
	//
	for _, a := range b.ancs {
		rotated[a] = true
	}
	//
	for _, k := range []int{0, len(order) - 1} {
		for _, a := range b.xancs {
			if d, ok := b.neighbor(a, layout.X_TYPE, k); ok {
				rotated[d] = true
			}
		}
	}
	//
	rotation := step{ops: []op{{"H", b.filter(rotated)}}}
	hadamard := step{ops: []op{{"H", b.data}}}
	//
	return []step{
		rotation,
		b.czStep(0), hadamard, b.czStep(1), b.czStep(2), hadamard, b.czStep(3),
		rotation,
		{ops: []op{{"M", b.ancs}}},
	}
}

func (b *block) czStep(k int) step {
	var pairs []string
	//
	for _, a := range b.xancs {
		if d, ok := b.neighbor(a, layout.X_TYPE, k); ok {
			pairs = append(pairs, a, d)
		}
	}
	//
	for _, a := range b.zancs {
		if d, ok := b.neighbor(a, layout.Z_TYPE, k); ok {
			pairs = append(pairs, a, d)
		}
	}
	//
	return step{ops: []op{{"CZ", pairs}}}
}

// Neighbour of an ancilla in the k-th direction of its interaction order.
func (b *block) neighbor(anc string, stab layout.StabType, k int) (string, bool) {
	order := b.layout.InteractionOrder(stab)
	//
	if k < 0 || k >= len(order) {
		return "", false
	}
	//
	return b.layout.Neighbor(anc, order[k])
}

// Pair the qubits of two blocks of the same shape, where one block is a
// translation of the other.  Qubits are matched in the order of their
// coordinates, and must agree in role and stabilizer type.
func pairing(from *block, to *block) (map[string]string, error) {
	var (
		src   = from.byCoords()
		dst   = to.byCoords()
		pairs = make(map[string]string, len(src))
		shift []float64
	)
	//
	if len(src) != len(dst) || len(from.data) != len(to.data) {
		return nil, &IncompatibleBlocksError{from.logical, to.logical, "different number of qubits"}
	}
	//
	for k := range src {
		a, _ := from.layout.Qubit(src[k])
		b, _ := to.layout.Qubit(dst[k])
		//
		if a.Role != b.Role || a.StabType != b.StabType || len(a.Coords) != len(b.Coords) {
			return nil, &IncompatibleBlocksError{from.logical, to.logical,
				fmt.Sprintf("qubits %s and %s do not match", a.Label, b.Label)}
		}
		//
		delta := make([]float64, len(a.Coords))
		//
		for i := range delta {
			delta[i] = b.Coords[i] - a.Coords[i]
		}
		//
		if shift == nil {
			shift = delta
		} else if !slices.Equal(shift, delta) {
			return nil, &IncompatibleBlocksError{from.logical, to.logical, "blocks are not translations of each other"}
		}
		//
		pairs[a.Label] = b.Label
	}
	//
	return pairs, nil
}

// Qubits of the block ordered by coordinates, and then by simulator index.
func (b *block) byCoords() []string {
	qubits := slices.Clone(b.qubits)
	//
	slices.SortStableFunc(qubits, func(x, y string) int {
		qx, _ := b.layout.Qubit(x)
		qy, _ := b.layout.Qubit(y)
		//
		return slices.Compare(qx.Coords, qy.Coords)
	})
	//
	return qubits
}

// Qubits of the block in a given set, ordered by simulator index.
func (b *block) filter(set map[string]bool) []string {
	return slices.DeleteFunc(slices.Clone(b.qubits), func(q string) bool { return !set[q] })
}
