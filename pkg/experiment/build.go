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
	"maps"
	"slices"
	"strings"

	"github.com/consensys/go-qec/pkg/circuit"
	"github.com/consensys/go-qec/pkg/detector"
	"github.com/consensys/go-qec/pkg/layout"
	"github.com/consensys/go-qec/pkg/noise"
	"github.com/consensys/go-qec/pkg/schedule"
	"github.com/consensys/go-qec/pkg/util"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Build is the arena in which one physical circuit is constructed from a
// schedule of logical operations.  It owns the circuit state, the detector
// tracker of all code blocks and a structure validator, none of which
// outlive the build.  Models and layouts are only read, hence they can be shared
// between builds.
type Build struct {
	id      uuid.UUID
	model   noise.Model
	state   *noise.State
	tracker *detector.Tracker
	blocks  []*block
	// Maps logical qubits to their code blocks
	owner     map[string]*block
	validator *schedule.Validator
	// Layers applied so far, and the start of each in the circuit
	layers []schedule.Layer
	starts []int
	round  uint
	// Number of observables so far
	observables uint
	stats       *util.PerfStats
	// Set when emitting a layer failed half way
	err error
}

// NewBuild constructs a build over some code blocks, each encoding one
// logical qubit.  The model must know every qubit of every layout.
func NewBuild(model noise.Model, layouts []*layout.Layout, policy detector.Policy) (*Build, error) {
	if len(layouts) == 0 {
		return nil, errors.New("no layouts given")
	} else if _, err := layout.Merge(layouts...); err != nil {
		return nil, err
	}
	//
	var (
		stats     = util.NewPerfStats()
		state     = model.NewCircuit()
		entangler = nativeEntangler(model)
		owner     = make(map[string]*block)
		coords    = make(map[string][]float64)
		stabs     []string
		blocks    []*block
		logicals  []string
	)
	//
	for _, l := range layouts {
		for _, q := range l.Qubits() {
			if _, ok := model.Index(q); !ok {
				return nil, &noise.UnknownQubitError{Qubit: q}
			}
		}
		//
		maps.Copy(coords, l.Coords())
		stabs = append(stabs, l.AncQubits()...)
	}
	// Detector ids follow the order of the layouts
	tracker, err := detector.NewTracker(stabs, policy, subset(coords, stabs))
	if err != nil {
		return nil, err
	}
	//
	for _, l := range layouts {
		b, err := newBlock(l, tracker, entangler)
		if err != nil {
			return nil, err
		} else if _, ok := owner[b.logical]; ok {
			return nil, &UnsupportedLayoutError{l.Name(), fmt.Sprintf("logical qubit %s encoded twice", b.logical)}
		}
		//
		owner[b.logical] = b
		blocks = append(blocks, b)
		logicals = append(logicals, b.logical)
	}
	//
	state.Attach(tracker)
	//
	if err := noise.QubitCoords(model, state, coords); err != nil {
		return nil, err
	}
	//
	log.Debugf("new build over %s using %s (%s gates)", strings.Join(logicals, ","), model.Name(), entangler)
	//
	return &Build{
		id:        uuid.New(),
		model:     model,
		state:     state,
		tracker:   tracker,
		blocks:    blocks,
		owner:     owner,
		validator: schedule.NewValidator(logicals),
		stats:     stats,
	}, nil
}

// ID returns the unique identifier of this build.
func (p *Build) ID() uuid.UUID {
	return p.id
}

// Logicals returns the logical qubits of this build, in the order of their
// layouts.
func (p *Build) Logicals() []string {
	logicals := make([]string, len(p.blocks))
	//
	for i, b := range p.blocks {
		logicals[i] = b.logical
	}
	//
	return logicals
}

// Tracker returns the detector tracker of the code block encoding a given
// logical qubit, which is shared by all code blocks of this build.
func (p *Build) Tracker(logical string) (*detector.Tracker, bool) {
	if _, ok := p.owner[logical]; ok {
		return p.tracker, true
	}
	//
	return nil, false
}

// InitData sets the data qubits to be excited by the next reset of a given
// logical qubit, as a bit string over its data qubits (ordered by simulator
// index).
func (p *Build) InitData(logical string, bits string) error {
	b, ok := p.owner[logical]
	if !ok {
		return &schedule.UnknownQubitError{Layer: p.validator.NumLayers(), Qubit: logical}
	}
	//
	return b.initData(bits)
}

// Circuit returns the circuit built so far.
func (p *Build) Circuit() *circuit.Circuit {
	return p.state.Circuit()
}

// Starts returns the index of the first physical instruction of each layer
// applied so far.
func (p *Build) Starts() []int {
	return p.starts
}

// Header returns the comment lines identifying this build, which precede the
// circuit in text form.
func (p *Build) Header() string {
	return fmt.Sprintf("# go-qec build %s\n# model %s (setup %s)\n", p.id, p.model.Name(), p.model.Setup().Name)
}

// Run applies every layer of a schedule, in order.
func (p *Build) Run(s *schedule.Schedule) error {
	for _, layer := range s.Layers {
		if err := p.Apply(layer); err != nil {
			return err
		}
	}
	//
	return nil
}

// Apply a layer of logical operations.  The layer is first validated, such
// that an invalid layer leaves the build unchanged.  Otherwise, the physical
// steps of all code blocks are emitted side by side, padding shorter blocks
// with idling, and the layer's detectors and observables are annotated last.
// A build in which emitting a layer failed cannot be used any further.
func (p *Build) Apply(layer schedule.Layer) error {
	if p.err != nil {
		return p.err
	} else if err := p.validator.Append(layer); err != nil {
		return err
	}
	//
	var (
		index = p.validator.NumLayers() - 1
		start = p.state.Circuit().Len()
	)
	//
	log.Debugf("layer %d: %s", index, layer.String())
	//
	if err := p.emit(layer); err != nil {
		p.err = errors.Wrapf(err, "layer %d", index)
		return p.err
	}
	//
	p.layers = append(p.layers, layer)
	p.starts = append(p.starts, start)
	p.round++
	p.state.SetRound(p.round)
	//
	tick := start < p.state.Circuit().Len() && p.state.Circuit().At(start).Name == circuit.TICK
	//
	return p.validator.Mark(index, tick)
}

// Finish completes this build, checking the structure of the whole circuit
// once more, and returns it.
func (p *Build) Finish() (*circuit.Circuit, error) {
	if p.err != nil {
		return nil, p.err
	}
	//
	s := &schedule.Schedule{Qubits: p.Logicals(), Layers: p.layers}
	//
	if err := schedule.Validate(s, p.state.Circuit(), p.starts); err != nil {
		return nil, err
	}
	//
	p.stats.Log(fmt.Sprintf("Build %s", p.id))
	//
	return p.state.Circuit(), nil
}

func (p *Build) emit(layer schedule.Layer) error {
	programs, err := p.plan(layer)
	if err != nil {
		return err
	}
	//
	var depth int
	//
	for _, prog := range programs {
		depth = max(depth, len(prog.steps))
	}
	//
	for k := range depth {
		var (
			steps = make([]step, len(p.blocks))
			busy  = make(map[string]bool)
		)
		// Idle once a block is done
		for i := range p.blocks {
			if k < len(programs[i].steps) {
				steps[i] = programs[i].steps[k]
			}
			//
			for _, o := range steps[i].ops {
				for _, q := range o.qubits {
					busy[q] = true
				}
			}
		}
		//
		for i, b := range p.blocks {
			if err := b.apply(p.model, p.state, steps[i], busy); err != nil {
				return err
			}
		}
		//
		if err := p.model.Tick(p.state); err != nil {
			return err
		}
	}
	//
	for _, prog := range programs {
		if prog.finish == nil {
			continue
		} else if err := prog.finish(p.state); err != nil {
			return err
		}
	}
	//
	return nil
}

// Determine the program of each code block for a given layer.
func (p *Build) plan(layer schedule.Layer) ([]program, error) {
	programs := make([]program, len(p.blocks))
	//
	if layer.IsQEC() {
		for i, b := range p.blocks {
			if cycles(layer, b.logical) {
				programs[i] = b.cycle()
			}
		}
		//
		return programs, nil
	}
	//
	for i, b := range p.blocks {
		o := operation(layer, b.logical)
		// Only CSS bases are supported
		if (o.Kind == schedule.RESET || o.Kind == schedule.MEASUREMENT) && circuit.Basis(o.Name) == "Y" {
			return nil, &UnsupportedOperationError{b.logical, o.Name}
		}
		//
		switch o.Kind {
		case schedule.RESET:
			programs[i] = b.reset(circuit.Basis(o.Name))
		case schedule.UNITARY:
			prog, err := p.unitary(o, b)
			if err != nil {
				return nil, err
			}
			//
			programs[i] = prog
		case schedule.MEASUREMENT:
			programs[i] = b.measure(circuit.Basis(o.Name), p.observable)
		case schedule.IDLE:
			programs[i] = program{steps: []step{{}}}
		default:
			return nil, &UnsupportedOperationError{b.logical, o.Name}
		}
	}
	//
	return programs, nil
}

// Program of a logical unitary on a given block.  The control of a two-qubit
// gate carries the transversal gates of both blocks, whilst the target only
// idles.
func (p *Build) unitary(o schedule.Operation, b *block) (program, error) {
	if len(o.Qubits) < 2 {
		return b.pauli(o.Name)
	} else if o.Name != "CX" && o.Name != "CNOT" {
		return program{}, &UnsupportedOperationError{strings.Join(o.Qubits, ","), o.Name}
	} else if o.Qubits[1] == b.logical {
		return program{steps: []step{{}}}, nil
	}
	//
	return b.cnot(p.owner[o.Qubits[1]])
}

// Allocate the next observable index.
func (p *Build) observable() uint {
	index := p.observables
	p.observables++
	//
	return index
}

// Operation of a (validated) layer on a given logical qubit.
func operation(layer schedule.Layer, logical string) schedule.Operation {
	for _, o := range layer.Operations {
		if slices.Contains(o.Qubits, logical) {
			return o
		}
	}
	// Unreachable for validated layers
	panic(fmt.Sprintf("no operation on %s", logical))
}

// Check whether a QEC layer cycles a given logical qubit.
func cycles(layer schedule.Layer, logical string) bool {
	for _, o := range layer.Operations {
		if len(o.Qubits) == 0 || slices.Contains(o.Qubits, logical) {
			return true
		}
	}
	//
	return false
}

// Annotate the detectors of a round.
func annotate(st *noise.State, dets []detector.Detector) {
	for _, det := range dets {
		st.Annotate(det.Instruction(st.NumMeasurements()))
	}
}

// Coordinates of some qubits only.
func subset(coords map[string][]float64, qubits []string) map[string][]float64 {
	result := make(map[string][]float64, len(qubits))
	//
	for _, q := range qubits {
		result[q] = coords[q]
	}
	//
	return result
}

// Determine the two-qubit gate used for syndrome extraction.  CX is used
// unless the model is restricted to native gates which include CZ but not CX.
func nativeEntangler(model noise.Model) string {
	if std, ok := model.(*noise.Standard); ok {
		native := std.Channels().Native
		//
		if native != nil && !slices.Contains(native, "CX") && slices.Contains(native, "CZ") {
			return "CZ"
		}
	}
	//
	return "CX"
}
