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
	"slices"

	"github.com/consensys/go-qec/pkg/util/gf2"
)

// Tracker maintains the measurement history of one or more code blocks, and
// derives the detectors closed by each QEC round and by data qubit
// measurements.  Each stabilizer is identified by the ancilla which measures
// it.
//
// Stabilizer generators start as the identity (i.e. each ancilla measures
// its own stabilizer) and are transformed by logical gates through Update().
// Transversal gates between blocks mix the generators of different blocks,
// hence all blocks of a build share one tracker.  The generators in effect
// at each round are remembered, such that a round can be closed at any point
// after all of its measurements were recorded.
//
// A tracker belongs to a single build, and nothing carries over from one
// build to the next.  Within a build, Reset() starts a new epoch for the
// stabilizers of a code block which has been logically reset.
type Tracker struct {
	stabs  []string
	index  map[string]uint
	policy Policy
	coords map[string][]float64
	active map[string]bool
	// All measurements, by qubit
	history map[string][]Measurement
	// Start of the current epoch in the history of each qubit
	since map[string]int
	// Number of rounds closed for each stabilizer in the current epoch
	closed map[string]uint
	// Generators of the first round, and current generators
	first gf2.Matrix
	curr  gf2.Matrix
	// Generators in effect at each round of the current epoch, by stabilizer
	gens map[string][]gf2.Matrix
	// Number of upcoming detectors of each stabilizer which are emitted
	// without measurements, since its measured generator changed
	unsettled map[string]uint
	// Time coordinate of the first round of the current epoch of each
	// stabilizer, and one past the latest time coordinate given to a detector
	offset  map[string]uint
	horizon uint
}

// NewTracker constructs a tracker for a given set of stabilizers (ordered by
// their detector ids).  Coordinates are optional but, when given, each
// stabilizer must have coordinates of the same dimension.  All stabilizers
// start active.
func NewTracker(stabs []string, policy Policy, coords map[string][]float64) (*Tracker, error) {
	if _, err := ParseFrame(string(policy.Frame)); err != nil {
		return nil, err
	}
	//
	index := make(map[string]uint, len(stabs))
	active := make(map[string]bool, len(stabs))
	//
	for i, s := range stabs {
		if _, ok := index[s]; ok {
			return nil, &InvalidTrackerError{fmt.Sprintf("stabilizer %s given more than once", s)}
		}
		//
		index[s] = uint(i)
		active[s] = true
	}
	//
	if coords == nil {
		coords = make(map[string][]float64)
		//
		for _, s := range stabs {
			coords[s] = nil
		}
	}
	//
	for i, s := range stabs {
		if c, ok := coords[s]; !ok {
			return nil, &InvalidTrackerError{fmt.Sprintf("missing coordinates for stabilizer %s", s)}
		} else if len(c) != len(coords[stabs[0]]) {
			return nil, &InvalidTrackerError{fmt.Sprintf("coordinates of %s and %s differ in dimension", stabs[0], stabs[i])}
		}
	}
	//
	identity := gf2.Identity(uint(len(stabs)))
	//
	return &Tracker{
		stabs:     slices.Clone(stabs),
		index:     index,
		policy:    policy,
		coords:    coords,
		active:    active,
		history:   make(map[string][]Measurement),
		since:     make(map[string]int),
		closed:    make(map[string]uint),
		first:     identity,
		curr:      identity.Clone(),
		gens:      make(map[string][]gf2.Matrix),
		unsettled: make(map[string]uint),
		offset:    make(map[string]uint),
	}, nil
}

// Stabilizers returns the stabilizers of this tracker, ordered by id.
func (p *Tracker) Stabilizers() []string {
	return p.stabs
}

// Policy returns the closing policy of this tracker.
func (p *Tracker) Policy() Policy {
	return p.policy
}

// Generators returns the current stabilizer generators, where row i holds
// the stabilizer measured by the i-th ancilla in terms of the generators of
// the first round.
func (p *Tracker) Generators() gf2.Matrix {
	return p.curr.Clone()
}

// NumRounds returns the largest number of QEC rounds measured by any
// stabilizer since its last reset.
func (p *Tracker) NumRounds() uint {
	var n int
	//
	for _, gens := range p.gens {
		n = max(n, len(gens))
	}
	//
	return uint(n)
}

// History returns all measurements of a given qubit.
func (p *Tracker) History(qubit string) []Measurement {
	return p.history[qubit]
}

// IsActive checks whether a given stabilizer is active.
func (p *Tracker) IsActive(stab string) bool {
	return p.active[stab]
}

// Activate some stabilizers, such that their detectors refer to
// measurements again.
func (p *Tracker) Activate(stabs ...string) error {
	return p.setActive(stabs, true)
}

// Deactivate some stabilizers, such that their detectors are emitted without
// measurements (e.g. since their outcomes are not deterministic).
func (p *Tracker) Deactivate(stabs ...string) error {
	return p.setActive(stabs, false)
}

// RecordMeasurement appends a measurement to the history.  Rounds must be
// strictly increasing for each qubit.
func (p *Tracker) RecordMeasurement(qubit string, round uint, handle uint) error {
	history := p.history[qubit]
	//
	if n := len(history); n > 0 && history[n-1].Round >= round {
		return &RoundOrderError{qubit, round, history[n-1].Round}
	}
	//
	p.history[qubit] = append(history, Measurement{qubit, round, handle})
	// Remember the generators measured in a new round
	if _, ok := p.index[qubit]; ok && p.measured(qubit) > uint(len(p.gens[qubit])) {
		p.gens[qubit] = append(p.gens[qubit], p.curr.Clone())
	}
	//
	return nil
}

// Update the stabilizer generators with the transformation induced by a
// logical gate, where entry (i,j) is set when the new generator measured by
// the i-th ancilla includes the old generator measured by the j-th ancilla.
// The transformation must be invertible.
func (p *Tracker) Update(unitary gf2.Matrix) error {
	n := uint(len(p.stabs))
	//
	if unitary.Rows() != n || unitary.Cols() != n {
		return &InvalidTrackerError{fmt.Sprintf("expected %dx%d transformation, found %dx%d", n, n,
			unitary.Rows(), unitary.Cols())}
	} else if !unitary.IsInvertible() {
		return &InvalidTrackerError{"transformation of stabilizer generators is not invertible"}
	}
	// Each ancilla is compared with itself in the time frame, which breaks
	// down when the ancilla measures a different stabilizer.
	if p.policy.Frame == FRAME_TIME {
		for i, s := range p.stabs {
			if !unitary.Row(uint(i)).Equal(gf2.UnitVector(n, uint(i))) {
				p.unsettle(s)
			}
		}
	}
	//
	p.curr = unitary.Mul(p.curr)
	//
	return nil
}

// Transformation constructs the transformation of Update() from the
// products measured after a logical gate: the new generator measured by each
// ancilla given is the product of the old generators measured by the
// ancillas listed, whilst other ancillas are unaffected.
func (p *Tracker) Transformation(products map[string][]string) (gf2.Matrix, error) {
	unitary := gf2.Identity(uint(len(p.stabs)))
	//
	for stab, factors := range products {
		i, ok := p.index[stab]
		if !ok {
			return gf2.Matrix{}, &UnknownStabilizerError{stab}
		}
		//
		row := gf2.NewVector(uint(len(p.stabs)))
		//
		for _, f := range factors {
			j, ok := p.index[f]
			if !ok {
				return gf2.Matrix{}, &UnknownStabilizerError{f}
			}
			//
			row.Flip(j)
		}
		//
		unitary.SetRow(i, row)
	}
	//
	return unitary, nil
}

// Reset starts a new epoch for some qubits (or for all qubits when none are
// given), as happens after a logical reset of a code block: the reset
// stabilizers measure their own generator again, and their next round is a
// first round again.  Measurements of earlier epochs are never referred to
// again.  Time coordinates of detectors keep increasing across epochs.
//
// Generators of other blocks which were entangled with a reset stabilizer
// are restored to their own, and their next detector is emitted without
// measurements.
func (p *Tracker) Reset(qubits ...string) {
	if len(qubits) == 0 {
		qubits = slices.Clone(p.stabs)
		//
		for q := range p.history {
			qubits = append(qubits, q)
		}
	}
	//
	var reset []uint
	//
	for _, q := range qubits {
		p.since[q] = len(p.history[q])
		//
		if i, ok := p.index[q]; ok && !slices.Contains(reset, i) {
			reset = append(reset, i)
		}
	}
	//
	var (
		n    = uint(len(p.stabs))
		next = p.curr.Clone()
	)
	//
	for _, i := range p.component(reset) {
		unit := gf2.UnitVector(n, i)
		//
		if !slices.Contains(reset, i) && !p.curr.Row(i).Equal(unit) && p.policy.Frame != FRAME_TIME {
			p.unsettle(p.stabs[i])
		}
		//
		next.SetRow(i, unit)
	}
	//
	for _, i := range reset {
		s := p.stabs[i]
		p.closed[s] = 0
		p.gens[s] = nil
		p.offset[s] = p.horizon
		p.unsettled[s] = 0
	}
	//
	p.curr = next
}

// CloseDetectorsFor closes every round of a given stabilizer whose ancilla
// measurement has been recorded, but which has not been closed yet.  This
// returns nothing when no such round exists.
func (p *Tracker) CloseDetectorsFor(stab string) ([]Detector, error) {
	i, ok := p.index[stab]
	//
	if !ok {
		return nil, &UnknownStabilizerError{stab}
	}
	//
	var detectors []Detector
	//
	for p.closed[stab] < p.measured(stab) {
		round := p.closed[stab] + 1
		p.closed[stab] = round
		//
		if round == 1 && p.policy.FirstRound == OMIT {
			continue
		}
		//
		det, err := p.closeRound(i, round)
		if err != nil {
			return nil, err
		}
		//
		detectors = append(detectors, det)
	}
	//
	return detectors, nil
}

// CloseRound closes the pending rounds of some stabilizers (or of all
// stabilizers when none are given), returning detectors ordered by round
// and then by stabilizer id.
func (p *Tracker) CloseRound(stabs ...string) ([]Detector, error) {
	if len(stabs) == 0 {
		stabs = p.stabs
	}
	//
	var detectors []Detector
	//
	for _, s := range stabs {
		dets, err := p.CloseDetectorsFor(s)
		if err != nil {
			return nil, err
		}
		//
		detectors = append(detectors, dets...)
	}
	//
	p.sort(detectors)
	//
	return detectors, nil
}

// CloseFromData closes the detectors of the reconstructable stabilizers after
// a measurement of all data qubits, given the data support of each
// stabilizer.  The most recent ancilla outcome of each stabilizer is replaced
// by the parity of the data qubits in its support.
func (p *Tracker) CloseFromData(support map[string][]string, reconstructable []string) ([]Detector, error) {
	var detectors []Detector
	//
	for _, s := range reconstructable {
		i, ok := p.index[s]
		//
		if !ok {
			return nil, &UnknownStabilizerError{s}
		}
		//
		var (
			gens  = p.gens[s]
			n     = uint(len(gens)) + 1
			prev  = p.first
			terms []term
		)
		//
		if len(gens) > 0 {
			prev = gens[len(gens)-1]
		}
		//
		if p.settle(s) {
			var latest []Measurement
			//
			for _, q := range support[s] {
				if m, err := p.lastMeasurement(q, n); err == nil {
					latest = append(latest, m)
				}
			}
			//
			det := p.detector(s, n, latest)
			det.Measurements = nil
			detectors = append(detectors, det)
			//
			continue
		}
		//
		switch p.policy.Frame {
		case FRAME_TIME:
			terms = timeDataTerms(i, n, p.policy.AncillaReset)
		default:
			terms = frameTerms(p.curr, prev, p.basis(p.curr, prev), i, n, true, p.policy.AncillaReset)
		}
		//
		var meass []Measurement
		//
		for _, t := range terms {
			if t.rel != -1 {
				m, err := p.alignedMeasurement(i, t.stab, uint(int(n)+t.rel+1))
				if err != nil {
					return nil, err
				}
				//
				meass = append(meass, m)
				//
				continue
			}
			//
			data, ok := support[p.stabs[t.stab]]
			//
			if !ok {
				return nil, &InvalidTrackerError{fmt.Sprintf("missing data support for %s", p.stabs[t.stab])}
			}
			//
			for _, q := range data {
				m, err := p.lastMeasurement(q, n)
				if err != nil {
					return nil, err
				}
				//
				meass = append(meass, m)
			}
		}
		//
		detectors = append(detectors, p.detector(s, n, meass))
	}
	//
	p.sort(detectors)
	//
	return detectors, nil
}

// Close a given round (from 1) of the i-th stabilizer.
func (p *Tracker) closeRound(i uint, round uint) (Detector, error) {
	var (
		stab  = p.stabs[i]
		curr  = p.gens[stab][round-1]
		prev  = p.first
		terms []term
	)
	//
	if round > 1 {
		prev = p.gens[stab][round-2]
	}
	//
	if p.settle(stab) {
		m, err := p.roundMeasurement(i, round)
		if err != nil {
			return Detector{}, err
		}
		//
		det := p.detector(stab, round, []Measurement{m})
		det.Measurements = nil
		//
		return det, nil
	}
	//
	switch p.policy.Frame {
	case FRAME_TIME:
		terms = timeTerms(i, round, p.policy.AncillaReset)
	default:
		reset := p.policy.AncillaReset
		terms = frameTerms(curr, prev, p.basis(curr, prev), i, round, reset, reset)
	}
	//
	meass := make([]Measurement, len(terms))
	//
	for k, t := range terms {
		m, err := p.alignedMeasurement(i, t.stab, uint(int(round)+t.rel+1))
		if err != nil {
			return Detector{}, err
		}
		//
		meass[k] = m
	}
	//
	return p.detector(stab, round, meass), nil
}

// Construct the detector of a stabilizer for a given round (from 1) of the
// current epoch.
func (p *Tracker) detector(stab string, round uint, meass []Measurement) Detector {
	var latest uint
	//
	for _, m := range meass {
		latest = max(latest, m.Round)
	}
	//
	step := p.offset[stab] + round - 1
	p.horizon = max(p.horizon, step+1)
	coords := append(slices.Clone(p.coords[stab]), float64(step))
	//
	if !p.active[stab] {
		meass = nil
	}
	//
	return Detector{stab, latest, coords, cancel(meass)}
}

func (p *Tracker) basis(curr gf2.Matrix, prev gf2.Matrix) gf2.Matrix {
	switch p.policy.Frame {
	case FRAME_CURRENT:
		return curr
	case FRAME_PREVIOUS:
		return prev
	default:
		return p.first
	}
}

// Number of measurements of a qubit in the current epoch.
func (p *Tracker) measured(qubit string) uint {
	return uint(len(p.history[qubit]) - p.since[qubit])
}

// Measurement of the i-th stabilizer in a given round (from 1) of the current
// epoch.
func (p *Tracker) roundMeasurement(i uint, round uint) (Measurement, error) {
	stab := p.stabs[i]
	//
	if round == 0 || round > p.measured(stab) {
		return Measurement{}, &MissingMeasurementError{stab, round}
	}
	//
	return p.history[stab][p.since[stab]+int(round)-1], nil
}

// Measurement of the j-th stabilizer in the same QEC cycle as the given round
// (from 1) of the i-th stabilizer.  Stabilizers of different blocks may have
// been reset at different times, hence rounds are matched by the round of
// the measurements themselves.
func (p *Tracker) alignedMeasurement(i uint, j uint, round uint) (Measurement, error) {
	m, err := p.roundMeasurement(i, round)
	//
	if err != nil || i == j {
		return m, err
	}
	//
	stab := p.stabs[j]
	history := p.history[stab]
	//
	for k := len(history) - 1; k >= p.since[stab]; k-- {
		if history[k].Round == m.Round {
			return history[k], nil
		}
	}
	//
	return Measurement{}, &MissingMeasurementError{stab, round}
}

// Most recent measurement of a qubit in the current epoch.
func (p *Tracker) lastMeasurement(qubit string, round uint) (Measurement, error) {
	if p.measured(qubit) == 0 {
		return Measurement{}, &MissingMeasurementError{qubit, round}
	}
	//
	history := p.history[qubit]
	//
	return history[len(history)-1], nil
}

// Mark a stabilizer whose measured generator changed, such that its next
// detectors (two without ancilla reset) are emitted without measurements.
func (p *Tracker) unsettle(stab string) {
	if p.policy.AncillaReset {
		p.unsettled[stab] = 1
	} else {
		p.unsettled[stab] = 2
	}
}

// Check whether the next detector of a stabilizer is unsettled, consuming it.
func (p *Tracker) settle(stab string) bool {
	if p.unsettled[stab] == 0 {
		return false
	}
	//
	p.unsettled[stab]--
	//
	return true
}

// Stabilizers connected to some given stabilizers through the current
// generators, including those given.
func (p *Tracker) component(start []uint) []uint {
	var (
		n     = uint(len(p.stabs))
		seen  = make(map[uint]bool)
		queue = slices.Clone(start)
	)
	//
	for _, i := range start {
		seen[i] = true
	}
	//
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		//
		for j := range n {
			if !seen[j] && (p.curr.Get(i, j) || p.curr.Get(j, i)) {
				seen[j] = true
				queue = append(queue, j)
			}
		}
	}
	//
	result := make([]uint, 0, len(seen))
	//
	for i := range n {
		if seen[i] {
			result = append(result, i)
		}
	}
	//
	return result
}

func (p *Tracker) setActive(stabs []string, active bool) error {
	for _, s := range stabs {
		if _, ok := p.index[s]; !ok {
			return &UnknownStabilizerError{s}
		}
	}
	//
	for _, s := range stabs {
		p.active[s] = active
	}
	//
	return nil
}

func (p *Tracker) sort(detectors []Detector) {
	slices.SortStableFunc(detectors, func(a, b Detector) int {
		if a.Round != b.Round {
			return int(a.Round) - int(b.Round)
		}
		//
		return int(p.index[a.Stabilizer]) - int(p.index[b.Stabilizer])
	})
}

// Cancel out pairs of identical measurements, since outcomes are XORed.
// Survivors keep the order of their first occurrence.
func cancel(meass []Measurement) []Measurement {
	counts := make(map[uint]uint)
	//
	for _, m := range meass {
		counts[m.Handle]++
	}
	//
	var result []Measurement
	//
	for _, m := range meass {
		if counts[m.Handle]%2 == 1 {
			result = append(result, m)
			counts[m.Handle] = 0
		}
	}
	//
	return result
}
