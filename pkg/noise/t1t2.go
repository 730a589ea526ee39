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
	"slices"

	"github.com/consensys/go-qec/pkg/circuit"
	"github.com/consensys/go-qec/pkg/setup"
)

// T1T2 is a coherence-limited noise model.  Every operation makes its qubits
// idle for the duration of the operation (taken from the gate duration table
// of the setup), and the end of each layer makes every qubit idle until the
// slowest qubit of the layer has finished.  Idling for a given duration
// attaches the Pauli twirl of amplitude and phase damping, as determined by
// the T1 and T2 times of the qubit.
//
// When symmetric_noise is set, half the idling of an operation is attached
// before it and half after it.  Otherwise, it is all attached after.
type T1T2 struct {
	base
}

// NewT1T2 constructs a coherence-limited noise model.
func NewT1T2(s *setup.Setup, inds map[string]uint) *T1T2 {
	return &T1T2{newBase("t1t2", s, inds)}
}

// Tick ends the current layer, making every qubit idle until the slowest one
// has finished.  Idling noise is ordered by increasing duration.
func (p *T1T2) Tick(st *State) error {
	var (
		longest float64
		idles   []string
	)
	//
	for _, q := range p.qubits {
		longest = max(longest, st.durations[q])
	}
	//
	for _, q := range p.qubits {
		if st.durations[q] != longest {
			idles = append(idles, q)
		}
	}
	//
	slices.SortStableFunc(idles, func(a, b string) int {
		da, db := longest-st.durations[a], longest-st.durations[b]
		//
		switch {
		case da < db:
			return -1
		case da > db:
			return 1
		default:
			return 0
		}
	})
	//
	var noise []circuit.Instruction
	//
	for _, q := range idles {
		insns, err := p.idling([]string{q}, longest-st.durations[q])
		if err != nil {
			return err
		}
		//
		noise = append(noise, insns...)
	}
	//
	st.emit(noise...)
	st.tick()
	//
	return nil
}

// Reset some qubits.
func (p *T1T2) Reset(st *State, op string, qubits ...string) error {
	return p.operation(st, op, circuit.RESET, qubits)
}

// SingleQubitGate applies a single-qubit gate.
func (p *T1T2) SingleQubitGate(st *State, op string, qubits ...string) error {
	return p.operation(st, op, circuit.SINGLE_QUBIT_GATE, qubits)
}

// TwoQubitGate applies a two-qubit gate to consecutive pairs of qubits.
func (p *T1T2) TwoQubitGate(st *State, op string, qubits ...string) error {
	return p.operation(st, op, circuit.TWO_QUBIT_GATE, qubits)
}

// Measure some qubits.
func (p *T1T2) Measure(st *State, op string, qubits ...string) error {
	return p.operation(st, op, circuit.MEASUREMENT, qubits)
}

// Idle some qubits.  No noise is attached here, since idling qubits are caught
// up with the rest of the layer at the next tick.
func (p *T1T2) Idle(st *State, qubits ...string) error {
	targets, err := p.check("I", circuit.SINGLE_QUBIT_GATE, qubits)
	if err != nil {
		return err
	}
	//
	st.begin(circuit.SINGLE_QUBIT_GATE, qubits)
	st.emit(circuit.NewInstruction("I", targets))
	//
	return nil
}

// IncomingNoise does nothing for this model.
func (p *T1T2) IncomingNoise(st *State, qubits ...string) error {
	_, err := p.check("I", circuit.SINGLE_QUBIT_GATE, qubits)
	return err
}

func (p *T1T2) operation(st *State, op string, family circuit.Family, qubits []string) error {
	targets, err := p.check(op, family, qubits)
	if err != nil {
		return err
	}
	//
	duration, err := p.setup.GateDuration(op)
	if err != nil {
		return err
	}
	//
	symmetric, err := p.symmetric(qubits)
	if err != nil {
		return err
	}
	//
	var before, after []circuit.Instruction
	//
	if symmetric {
		if before, err = p.idling(qubits, duration/2); err != nil {
			return err
		}
		//
		after = before
	} else if after, err = p.idling(qubits, duration); err != nil {
		return err
	}
	//
	var ideal []circuit.Instruction
	//
	if family == circuit.MEASUREMENT {
		if ideal, err = measurements(p.setup, op, qubits, targets); err != nil {
			return err
		}
	} else {
		ideal = []circuit.Instruction{circuit.NewInstruction(op, targets)}
	}
	//
	st.begin(family, qubits)
	st.emit(before...)
	//
	for _, insn := range ideal {
		st.emit(insn)
		//
		if family == circuit.MEASUREMENT {
			if err := st.record(p.owners(insn.Targets)); err != nil {
				return err
			}
		}
	}
	//
	st.emit(after...)
	//
	for _, q := range qubits {
		st.durations[q] += duration
	}
	//
	return nil
}

// Determine whether idling is split around an operation, which must be the
// same for all of its qubits.
func (p *T1T2) symmetric(qubits []string) (bool, error) {
	var result bool
	//
	for i, q := range qubits {
		var flag bool
		//
		if scope := setup.OnQubit(q); p.setup.Has(scope, symmetricNoise) {
			var err error
			//
			if flag, err = p.setup.ResolveFlag(scope, symmetricNoise); err != nil {
				return false, err
			}
		}
		//
		if i > 0 && flag != result {
			return false, setup.NewConfigError(symmetricNoise, "differs between qubits %v", qubits)
		}
		//
		result = flag
	}
	//
	return result, nil
}

// Construct the noise of some qubits idling for a given duration.
func (p *T1T2) idling(qubits []string, duration float64) ([]circuit.Instruction, error) {
	if duration == 0 {
		return nil, nil
	}
	//
	g := newGrouping()
	//
	for _, q := range qubits {
		scope := setup.OnQubit(q)
		//
		t1, err := p.setup.Resolve(scope, relaxationTime)
		if err != nil {
			return nil, err
		}
		//
		t2, err := p.setup.Resolve(scope, dephasingTime)
		if err != nil {
			return nil, err
		} else if t1 <= 0 || t2 <= 0 {
			return nil, setup.NewConfigError(relaxationTime, "T1 and T2 must be positive for %s", scope)
		} else if t2 > 2*t1 {
			return nil, setup.NewConfigError(dephasingTime, "T2 must not exceed 2*T1 for %s", scope)
		}
		//
		px, py, pz := IdleErrorProbs(t1, t2, duration)
		g.add("PAULI_CHANNEL_1", []float64{px, py, pz}, circuit.Qubit(p.inds[q]))
	}
	//
	return g.insns, nil
}
