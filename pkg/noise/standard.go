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

	"github.com/consensys/go-qec/pkg/circuit"
	"github.com/consensys/go-qec/pkg/setup"
)

// Channels determines which noise channel a standard model attaches to each
// family of operations.
type Channels struct {
	Gate1    Channel
	Gate2    Channel
	Measure  Channel
	Reset    Channel
	Idle     Channel
	Incoming Channel
	// Swap replaces Gate2 for SWAP gates, unless it is NO_NOISE.
	Swap Channel
	// PostMeasure attaches measurement noise after the measurement rather
	// than before it.
	PostMeasure bool
	// LongRange uses long_range_tq_error_prob for CZ gates between qubits
	// further apart than long_coupler_distance.  This requires coordinates.
	LongRange bool
	// ExtraIdle adds depolarising noise at the end of every layer containing
	// a measurement or reset, on all qubits which were neither measured nor
	// reset in that layer.
	ExtraIdle bool
	// Native lists the supported resets, measurements and two-qubit gates.
	// All single-qubit gates are always supported.  When nil, everything is
	// supported.
	Native []string
}

// Standard is a noise model whose noise is determined by a fixed choice of
// channel per family of operations, with rates resolved from its setup.  All
// models except T1T2 are standard models.
type Standard struct {
	base
	channels Channels
	native   map[string]bool
	coords   map[string][]float64
}

// NewStandard constructs a standard model from a setup, a mapping of qubits
// to simulator indices, and a choice of channels.
func NewStandard(name string, s *setup.Setup, inds map[string]uint, channels Channels) *Standard {
	var native map[string]bool
	//
	if channels.Native != nil {
		native = make(map[string]bool)
		//
		for _, op := range channels.Native {
			native[op] = true
		}
	}
	//
	return &Standard{newBase(name, s, inds), channels, native, nil}
}

// NewCircuitNoise constructs a circuit-level noise model where every
// operation is followed by depolarising noise, and measurements and resets
// are flipped.
func NewCircuitNoise(s *setup.Setup, inds map[string]uint) *Standard {
	return NewStandard("circuit-noise", s, inds, Channels{
		Gate1: DEPOLARIZING, Gate2: DEPOLARIZING, Measure: FLIP, Reset: FLIP, Idle: DEPOLARIZING,
	})
}

// NewSD6 constructs the SD6 model, which is circuit-level noise over the
// native gates CX, M and R.
func NewSD6(s *setup.Setup, inds map[string]uint) *Standard {
	return NewStandard("sd6", s, inds, Channels{
		Gate1: DEPOLARIZING, Gate2: DEPOLARIZING, Measure: FLIP, Reset: FLIP, Idle: DEPOLARIZING,
		Native: []string{"CX", "CNOT", "M", "MZ", "R", "RZ"},
	})
}

// NewSI1000 constructs the superconducting-inspired SI1000 model, over the
// native gates CZ, M and R, with extra idling noise during measurements and
// resets.
func NewSI1000(s *setup.Setup, inds map[string]uint) *Standard {
	return NewStandard("si1000", s, inds, Channels{
		Gate1: DEPOLARIZING, Gate2: DEPOLARIZING, Measure: FLIP, Reset: FLIP, Idle: DEPOLARIZING,
		ExtraIdle: true,
		Native:    []string{"CZ", "M", "MZ", "R", "RZ"},
	})
}

// NewExtendedSI1000 constructs a variant of SI1000 which also supports ISWAP,
// and where measurements are followed by depolarising noise on the measured
// qubits (rather than preceded by a flip).  The classical flip of the outcome
// is carried by the assignment error of the measurement.
func NewExtendedSI1000(s *setup.Setup, inds map[string]uint) *Standard {
	return NewStandard("extended-si1000", s, inds, Channels{
		Gate1: DEPOLARIZING, Gate2: DEPOLARIZING, Measure: DEPOLARIZING, Reset: FLIP, Idle: DEPOLARIZING,
		PostMeasure: true, ExtraIdle: true,
		Native: []string{"CZ", "ISWAP", "M", "MZ", "R", "RZ"},
	})
}

// NewNLR constructs the SI1000 model with non-local (long-range) couplers.  A
// CZ gate between qubits whose distance exceeds long_coupler_distance has
// error rate long_range_tq_error_prob instead of tq_error_prob.
func NewNLR(s *setup.Setup, inds map[string]uint, coords map[string][]float64) *Standard {
	p := NewStandard("nlr", s, inds, Channels{
		Gate1: DEPOLARIZING, Gate2: DEPOLARIZING, Measure: FLIP, Reset: FLIP, Idle: DEPOLARIZING,
		ExtraIdle: true, LongRange: true,
		Native: []string{"CZ", "M", "MZ", "R", "RZ"},
	})
	p.coords = coords
	//
	return p
}

// NewMovableQubitsCircuitNoise constructs circuit-level noise for hardware
// which moves qubits around.  A SWAP moves two qubits past each other, hence
// each of them is depolarised independently.
func NewMovableQubitsCircuitNoise(s *setup.Setup, inds map[string]uint) *Standard {
	return NewStandard("movable-qubits-circuit-noise", s, inds, Channels{
		Gate1: DEPOLARIZING, Gate2: DEPOLARIZING, Measure: FLIP, Reset: FLIP, Idle: DEPOLARIZING,
		Swap: DEPOLARIZING_EACH,
	})
}

// NewUniformDepolarizing constructs a model where every operation, including
// measurements and resets, is followed by depolarising noise.
func NewUniformDepolarizing(s *setup.Setup, inds map[string]uint) *Standard {
	return NewStandard("uniform-depolarizing", s, inds, Channels{
		Gate1: DEPOLARIZING, Gate2: DEPOLARIZING, Measure: DEPOLARIZING, Reset: FLIP, Idle: DEPOLARIZING,
		Native: []string{"CX", "CNOT", "CXSWAP", "M", "MZ", "MX", "R", "RZ", "RX"},
	})
}

// NewBiasedCircuitNoise constructs a circuit-level model whose gate and idling
// noise is biased towards a given Pauli.
func NewBiasedCircuitNoise(s *setup.Setup, inds map[string]uint) *Standard {
	return NewStandard("biased-circuit-noise", s, inds, Channels{
		Gate1: BIASED, Gate2: BIASED, Measure: FLIP, Reset: FLIP, Idle: BIASED,
	})
}

// NewPhenomenological constructs a model with incoming noise on data qubits
// and measurement errors only.
func NewPhenomenological(s *setup.Setup, inds map[string]uint) *Standard {
	return NewStandard("phenomenological", s, inds, Channels{Measure: FLIP, Incoming: PAULI_FLIPS})
}

// NewPhenomenologicalDepol constructs a phenomenological model whose incoming
// and measurement noise is depolarising.
func NewPhenomenologicalDepol(s *setup.Setup, inds map[string]uint) *Standard {
	return NewStandard("phenomenological-depol", s, inds, Channels{Measure: DEPOLARIZING, Incoming: DEPOLARIZING})
}

// NewIncResMeas constructs a phenomenological model which also flips resets.
func NewIncResMeas(s *setup.Setup, inds map[string]uint) *Standard {
	return NewStandard("inc-res-meas", s, inds, Channels{Measure: FLIP, Reset: FLIP, Incoming: PAULI_FLIPS})
}

// NewIncomingDepolNoise constructs a model with depolarising incoming noise on
// data qubits only.
func NewIncomingDepolNoise(s *setup.Setup, inds map[string]uint) *Standard {
	return NewStandard("incoming-depol-noise", s, inds, Channels{Incoming: DEPOLARIZING})
}

// NewIncomingNoise constructs a model with incoming noise on data qubits only.
func NewIncomingNoise(s *setup.Setup, inds map[string]uint) *Standard {
	return NewStandard("incoming-noise", s, inds, Channels{Incoming: PAULI_FLIPS})
}

// NewMeasurementNoise constructs a model with measurement errors only.
func NewMeasurementNoise(s *setup.Setup, inds map[string]uint) *Standard {
	return NewStandard("measurement-noise", s, inds, Channels{Measure: FLIP})
}

// NewNoiseless constructs a model without any noise.
func NewNoiseless(s *setup.Setup, inds map[string]uint) *Standard {
	return NewStandard("noiseless", s, inds, Channels{})
}

// Channels returns the channels of this model.
func (p *Standard) Channels() Channels {
	return p.channels
}

// Tick ends the current layer.
func (p *Standard) Tick(st *State) error {
	if p.channels.ExtraIdle && len(st.measOrReset) > 0 {
		var (
			g     = newGrouping()
			idles []unit
		)
		//
		for _, q := range p.qubits {
			if !st.measOrReset[q] {
				idles = append(idles, unit{setup.OnQubit(q), circuit.Qubits(p.inds[q])})
			}
		}
		//
		if err := addNoise(g, p.setup, DEPOLARIZING, extraIdleErrorProb, "Z", idles); err != nil {
			return err
		}
		//
		st.emit(g.insns...)
	}
	//
	st.tick()
	//
	return nil
}

// Reset some qubits, followed by their reset noise.
func (p *Standard) Reset(st *State, op string, qubits ...string) error {
	noise, targets, err := p.prepare(op, circuit.RESET, p.channels.Reset, resetErrorProb, qubits)
	if err != nil {
		return err
	}
	//
	st.begin(circuit.RESET, qubits)
	st.emit(circuit.NewInstruction(op, targets))
	st.emit(noise...)
	p.markMeasOrReset(st, qubits)
	//
	return nil
}

// SingleQubitGate applies a single-qubit gate, followed by its noise.
func (p *Standard) SingleQubitGate(st *State, op string, qubits ...string) error {
	noise, targets, err := p.prepare(op, circuit.SINGLE_QUBIT_GATE, p.channels.Gate1, sqErrorProb, qubits)
	if err != nil {
		return err
	}
	//
	st.begin(circuit.SINGLE_QUBIT_GATE, qubits)
	st.emit(circuit.NewInstruction(op, targets))
	st.emit(noise...)
	//
	return nil
}

// TwoQubitGate applies a two-qubit gate to consecutive pairs of qubits,
// followed by its noise.
func (p *Standard) TwoQubitGate(st *State, op string, qubits ...string) error {
	channel := p.channels.Gate2
	//
	if op == "SWAP" && p.channels.Swap != NO_NOISE {
		channel = p.channels.Swap
	}
	//
	noise, targets, err := p.prepare(op, circuit.TWO_QUBIT_GATE, channel, tqErrorProb, qubits)
	if err != nil {
		return err
	}
	//
	st.begin(circuit.TWO_QUBIT_GATE, qubits)
	st.emit(circuit.NewInstruction(op, targets))
	st.emit(noise...)
	//
	return nil
}

// Measure some qubits.  Measurement noise precedes the measurement itself,
// unless the model attaches it afterwards (see Channels.PostMeasure).  When
// assign_error_flag is set for a qubit, its measurement carries the
// assignment error probability as argument.
func (p *Standard) Measure(st *State, op string, qubits ...string) error {
	noise, targets, err := p.prepare(op, circuit.MEASUREMENT, p.channels.Measure, measErrorProb, qubits)
	if err != nil {
		return err
	}
	//
	ideal, err := measurements(p.setup, op, qubits, targets)
	if err != nil {
		return err
	}
	//
	st.begin(circuit.MEASUREMENT, qubits)
	//
	if !p.channels.PostMeasure {
		st.emit(noise...)
	}
	//
	for _, insn := range ideal {
		st.emit(insn)
		// Record in the order of the measurement record
		if err := st.record(p.owners(insn.Targets)); err != nil {
			return err
		}
	}
	//
	if p.channels.PostMeasure {
		st.emit(noise...)
	}
	//
	p.markMeasOrReset(st, qubits)
	//
	return nil
}

// Idle some qubits, followed by their idling noise.
func (p *Standard) Idle(st *State, qubits ...string) error {
	noise, targets, err := p.prepare("I", circuit.SINGLE_QUBIT_GATE, p.channels.Idle, idleErrorProb, qubits)
	if err != nil {
		return err
	}
	//
	st.begin(circuit.SINGLE_QUBIT_GATE, qubits)
	st.emit(circuit.NewInstruction("I", targets))
	st.emit(noise...)
	//
	return nil
}

// IncomingNoise applies the noise affecting data qubits at the start of a QEC
// cycle.  Nothing is emitted (not even the pending TICK) when this model has
// no incoming noise.
func (p *Standard) IncomingNoise(st *State, qubits ...string) error {
	noise, _, err := p.prepare("I", circuit.SINGLE_QUBIT_GATE, p.channels.Incoming, idleErrorProb, qubits)
	if err != nil {
		return err
	} else if len(noise) > 0 {
		st.begin(circuit.NOISE, nil)
		st.emit(noise...)
	}
	//
	return nil
}

// Check an operation and compute its noise, without emitting anything.  Hence,
// a failing operation leaves the state untouched.
func (p *Standard) prepare(op string, family circuit.Family, channel Channel, param string,
	qubits []string) ([]circuit.Instruction, []circuit.Target, error) {
	targets, err := p.check(op, family, qubits)
	if err != nil {
		return nil, nil, err
	} else if family != circuit.SINGLE_QUBIT_GATE && p.native != nil && !p.native[op] {
		return nil, nil, &UnsupportedOperationError{p.name, op}
	}
	//
	var (
		g    = newGrouping()
		sets = units(family, qubits, targets)
	)
	//
	if op == "CZ" && p.channels.LongRange {
		for _, u := range sets {
			long, err := p.longRange(u)
			if err != nil {
				return nil, nil, err
			} else if long {
				err = addNoise(g, p.setup, channel, longRangeErrorProb, circuit.Basis(op), []unit{u})
			} else {
				err = addNoise(g, p.setup, channel, param, circuit.Basis(op), []unit{u})
			}
			//
			if err != nil {
				return nil, nil, err
			}
		}
	} else if err := addNoise(g, p.setup, channel, param, circuit.Basis(op), sets); err != nil {
		return nil, nil, err
	}
	//
	return g.insns, targets, nil
}

// Check whether the qubits of a two-qubit unit are further apart than the
// long coupler distance.
func (p *Standard) longRange(u unit) (bool, error) {
	var dist float64
	//
	limit, err := p.setup.Resolve(setup.Global(), longCouplerDist)
	if err != nil {
		return false, err
	}
	//
	first, second := p.labels[uint(u.targets[0].Value())], p.labels[uint(u.targets[1].Value())]
	a, b := p.coords[first], p.coords[second]
	//
	if a == nil {
		return false, &MissingCoordinatesError{p.name, first}
	} else if b == nil {
		return false, &MissingCoordinatesError{p.name, second}
	}
	//
	for i := range min(len(a), len(b)) {
		dist += (a[i] - b[i]) * (a[i] - b[i])
	}
	//
	return math.Sqrt(dist) > limit, nil
}

func (p *Standard) markMeasOrReset(st *State, qubits []string) {
	if p.channels.ExtraIdle {
		for _, q := range qubits {
			st.measOrReset[q] = true
		}
	}
}

// Determine the qubits targeted by an instruction.
func (p *base) owners(targets []circuit.Target) []string {
	qubits := make([]string, len(targets))
	//
	for i, t := range targets {
		qubits[i] = p.labels[uint(t.Value())]
	}
	//
	return qubits
}

// Construct the ideal measurement instructions, grouped by assignment error
// probability.
func measurements(s *setup.Setup, op string, qubits []string, targets []circuit.Target) ([]circuit.Instruction, error) {
	g := newGrouping()
	//
	for i, q := range qubits {
		scope := setup.OnQubit(q)
		//
		var args []float64
		//
		if s.Has(scope, assignErrorFlag) {
			flag, err := s.ResolveFlag(scope, assignErrorFlag)
			if err != nil {
				return nil, err
			} else if flag {
				prob, err := s.Resolve(scope, assignErrorProb)
				if err != nil {
					return nil, err
				}
				//
				args = []float64{prob}
			}
		}
		//
		g.add(op, args, targets[i])
	}
	//
	return g.insns, nil
}
