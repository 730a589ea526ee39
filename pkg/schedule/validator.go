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
	"slices"

	"github.com/consensys/go-qec/pkg/circuit"
)

// Validator checks the structure of a schedule, one layer at a time:
//
// (1) every logical qubit has exactly one operation in each layer which is
// not a QEC cycle;
//
// (2) no logical qubit is measured after being reset without a QEC cycle in
// between;
//
// (3) the physical instructions of each layer start with a TICK.
//
// The first two are checked by Append(), and the last by Mark().  A failed
// layer leaves the validator unchanged.
type Validator struct {
	qubits []string
	known  map[string]bool
	// Number of layers appended so far
	layers uint
	// Layer in which each logical qubit was reset, for qubits without a QEC
	// cycle since
	resets map[string]uint
}

// NewValidator constructs a validator for a given set of logical qubits.
func NewValidator(qubits []string) *Validator {
	known := make(map[string]bool, len(qubits))
	//
	for _, q := range qubits {
		known[q] = true
	}
	//
	return &Validator{slices.Clone(qubits), known, 0, make(map[string]uint)}
}

// NumLayers returns the number of layers accepted so far.
func (p *Validator) NumLayers() uint {
	return p.layers
}

// Append checks the next layer of the schedule and, if valid, accepts it.
func (p *Validator) Append(layer Layer) error {
	index := p.layers
	// Count operations on each qubit
	counts := make(map[string]uint)
	//
	for _, op := range layer.Operations {
		if (op.Kind == QEC_CYCLE) != layer.IsQEC() {
			return &MixedLayerError{index}
		}
		//
		for _, q := range op.Qubits {
			if !p.known[q] {
				return &UnknownQubitError{index, q}
			}
			//
			counts[q]++
		}
	}
	//
	if layer.IsQEC() {
		p.acceptQEC(layer, counts)
		return nil
	}
	//
	var missing, duplicated []string
	//
	for _, q := range p.qubits {
		if counts[q] == 0 {
			missing = append(missing, q)
		} else if counts[q] > 1 {
			duplicated = append(duplicated, q)
		}
	}
	//
	if len(missing) > 0 || len(duplicated) > 0 {
		return &IncompleteLayerError{index, missing, duplicated}
	}
	//
	for _, op := range layer.Operations {
		for _, q := range op.Qubits {
			if reset, ok := p.resets[q]; ok && op.Kind == MEASUREMENT {
				return &InvalidAdjacencyError{index, q, reset}
			}
		}
	}
	//
	for _, op := range layer.Operations {
		for _, q := range op.Qubits {
			switch op.Kind {
			case RESET:
				p.resets[q] = index
			case MEASUREMENT:
				delete(p.resets, q)
			}
		}
	}
	//
	p.layers++
	//
	return nil
}

// Mark checks whether the physical instructions of a given layer start with a
// TICK.
func (p *Validator) Mark(layer uint, startsWithTick bool) error {
	if !startsWithTick {
		return &MissingTickError{layer}
	}
	//
	return nil
}

// Validate checks a complete schedule.  When a circuit is given, starts holds
// the index of the first physical instruction of each layer in that circuit.
func Validate(s *Schedule, c *circuit.Circuit, starts []int) error {
	v := NewValidator(s.Qubits)
	//
	for _, layer := range s.Layers {
		if err := v.Append(layer); err != nil {
			return err
		}
	}
	//
	if c == nil {
		return nil
	} else if len(starts) != len(s.Layers) {
		return &LayerStartsError{uint(len(s.Layers)), uint(len(starts))}
	}
	//
	for i, start := range starts {
		tick := start < c.Len() && c.At(start).Name == circuit.TICK
		//
		if err := v.Mark(uint(i), tick); err != nil {
			return err
		}
	}
	//
	return nil
}

func (p *Validator) acceptQEC(layer Layer, counts map[string]uint) {
	for _, op := range layer.Operations {
		// An empty cycle covers all qubits
		if len(op.Qubits) == 0 {
			clear(p.resets)
		}
	}
	//
	for q := range counts {
		delete(p.resets, q)
	}
	//
	p.layers++
}
