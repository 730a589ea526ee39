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
package layout

import (
	"fmt"
	"slices"
	"strings"
)

// Role of a physical qubit within a code.
type Role string

// DATA qubits hold the encoded logical information.
const DATA Role = "data"

// ANCILLA qubits are measured to extract stabilizer outcomes.
const ANCILLA Role = "anc"

// StabType identifies the Pauli type of the stabilizer measured by an ancilla.
type StabType string

// NO_STAB is the stabilizer type of data qubits.
const NO_STAB StabType = ""

// X_TYPE stabilizers are products of Pauli X.
const X_TYPE StabType = "x_type"

// Z_TYPE stabilizers are products of Pauli Z.
const Z_TYPE StabType = "z_type"

// Direction identifies a (diagonal) neighbour on the square grid.
type Direction string

// NORTH_EAST neighbour
const NORTH_EAST Direction = "north_east"

// NORTH_WEST neighbour
const NORTH_WEST Direction = "north_west"

// SOUTH_EAST neighbour
const SOUTH_EAST Direction = "south_east"

// SOUTH_WEST neighbour
const SOUTH_WEST Direction = "south_west"

// DIRECTIONS lists all directions in a fixed order.
var DIRECTIONS = []Direction{NORTH_EAST, NORTH_WEST, SOUTH_EAST, SOUTH_WEST}

// Qubit describes a physical qubit of a layout.
type Qubit struct {
	// Label of this qubit (e.g. "D1" or "X2")
	Label string
	// Role of this qubit
	Role Role
	// Coordinates of this qubit
	Coords []float64
	// Stabilizer type (ancillas only)
	StabType StabType
	// Index of this qubit in the simulator
	Index uint
	// Neighbours of this qubit, by direction
	Neighbors map[Direction]string
}

// Logical describes a logical qubit encoded by a layout.
type Logical struct {
	Label string
	// Data qubits supporting the logical X operator
	LogX []string
	// Data qubits supporting the logical Z operator
	LogZ []string
	// Index of this logical qubit
	Index uint
}

// Layout describes the qubits of a code, their connectivity and the logical
// operators they encode.  A layout is immutable once constructed, and can be
// shared between any number of builds.
type Layout struct {
	name        string
	code        string
	description string
	distanceX   uint
	distanceZ   uint
	order       map[StabType][]Direction
	logicals    []Logical
	qubits      []Qubit
	// Maps qubit labels to their position in qubits
	index map[string]int
}

// New constructs a layout from its components, checking that it is well
// formed.  Qubits are ordered by simulator index and logical qubits by their
// index.
func New(name string, code string, description string, distanceX uint, distanceZ uint,
	order map[StabType][]Direction, logicals []Logical, qubits []Qubit) (*Layout, error) {
	//
	qubits = slices.Clone(qubits)
	logicals = slices.Clone(logicals)
	//
	slices.SortStableFunc(qubits, func(a, b Qubit) int { return int(a.Index) - int(b.Index) })
	slices.SortStableFunc(logicals, func(a, b Logical) int { return int(a.Index) - int(b.Index) })
	//
	l := &Layout{name, code, description, distanceX, distanceZ, order, logicals, qubits,
		make(map[string]int)}
	//
	for i, q := range qubits {
		if _, ok := l.index[q.Label]; ok {
			return nil, &InvalidLayoutError{name, fmt.Sprintf("duplicate qubit %s", q.Label)}
		}
		//
		l.index[q.Label] = i
	}
	//
	if err := l.validate(); err != nil {
		return nil, err
	}
	//
	return l, nil
}

// Name returns the name of this layout.
func (l *Layout) Name() string {
	return l.name
}

// Code returns the name of the code this layout implements.
func (l *Layout) Code() string {
	return l.code
}

// Description returns the description of this layout.
func (l *Layout) Description() string {
	return l.description
}

// Distance returns the X and Z distances of this layout.
func (l *Layout) Distance() (uint, uint) {
	return l.distanceX, l.distanceZ
}

// InteractionOrder returns the order in which ancillas of a given stabilizer
// type interact with their neighbouring data qubits.
func (l *Layout) InteractionOrder(stab StabType) []Direction {
	return l.order[stab]
}

// Has checks whether a given qubit is part of this layout.
func (l *Layout) Has(label string) bool {
	_, ok := l.index[label]
	return ok
}

// Qubit returns the description of a given qubit.
func (l *Layout) Qubit(label string) (Qubit, bool) {
	if i, ok := l.index[label]; ok {
		return l.qubits[i], true
	}
	//
	return Qubit{}, false
}

// Qubits returns the labels of all qubits, ordered by simulator index.
func (l *Layout) Qubits() []string {
	return l.Select("", NO_STAB)
}

// DataQubits returns the labels of all data qubits, ordered by simulator
// index.
func (l *Layout) DataQubits() []string {
	return l.Select(DATA, NO_STAB)
}

// AncQubits returns the labels of all ancilla qubits, ordered by simulator
// index.
func (l *Layout) AncQubits() []string {
	return l.Select(ANCILLA, NO_STAB)
}

// Select returns the labels of qubits matching a given role and stabilizer
// type, ordered by simulator index.  An empty role or stabilizer type matches
// any.
func (l *Layout) Select(role Role, stab StabType) []string {
	var labels []string
	//
	for _, q := range l.qubits {
		if (role == "" || q.Role == role) && (stab == NO_STAB || q.StabType == stab) {
			labels = append(labels, q.Label)
		}
	}
	//
	return labels
}

// Index returns the simulator index of a given qubit.
func (l *Layout) Index(label string) (uint, bool) {
	q, ok := l.Qubit(label)
	return q.Index, ok
}

// Indices returns the simulator index of every qubit.
func (l *Layout) Indices() map[string]uint {
	inds := make(map[string]uint, len(l.qubits))
	//
	for _, q := range l.qubits {
		inds[q.Label] = q.Index
	}
	//
	return inds
}

// Coords returns the coordinates of every qubit.
func (l *Layout) Coords() map[string][]float64 {
	coords := make(map[string][]float64, len(l.qubits))
	//
	for _, q := range l.qubits {
		coords[q.Label] = q.Coords
	}
	//
	return coords
}

// Neighbor returns the neighbour of a qubit in a given direction (if any).
func (l *Layout) Neighbor(label string, dir Direction) (string, bool) {
	q, ok := l.Qubit(label)
	if !ok {
		return "", false
	}
	//
	n, ok := q.Neighbors[dir]
	//
	return n, ok && n != ""
}

// Support returns the data qubits neighbouring a given ancilla, which form the
// support of its stabilizer.
func (l *Layout) Support(anc string) []string {
	var support []string
	//
	for _, dir := range DIRECTIONS {
		if n, ok := l.Neighbor(anc, dir); ok {
			support = append(support, n)
		}
	}
	//
	return support
}

// Logicals returns the logical qubits encoded by this layout, ordered by
// index.
func (l *Layout) Logicals() []Logical {
	return l.logicals
}

// LogX returns the support of the logical X operator of a given logical qubit.
func (l *Layout) LogX(logical string) []string {
	if i := l.logical(logical); i >= 0 {
		return l.logicals[i].LogX
	}
	//
	return nil
}

// LogZ returns the support of the logical Z operator of a given logical qubit.
func (l *Layout) LogZ(logical string) []string {
	if i := l.logical(logical); i >= 0 {
		return l.logicals[i].LogZ
	}
	//
	return nil
}

func (l *Layout) String() string {
	var builder strings.Builder
	//
	builder.WriteString(l.name)
	builder.WriteString(" {")
	//
	for i, q := range l.qubits {
		if i != 0 {
			builder.WriteString(",")
		}
		//
		builder.WriteString(q.Label)
	}
	//
	builder.WriteString("}")
	//
	return builder.String()
}

func (l *Layout) logical(label string) int {
	return slices.IndexFunc(l.logicals, func(lq Logical) bool { return lq.Label == label })
}

// Check the layout is well-formed: indices are unique, ancillas have a
// stabilizer type, neighbours exist, and logical operators are supported on
// data qubits.
func (l *Layout) validate() error {
	inds := make(map[uint]string)
	//
	for _, q := range l.qubits {
		if other, ok := inds[q.Index]; ok {
			return l.errorf("qubits %s and %s share index %d", other, q.Label, q.Index)
		}
		//
		inds[q.Index] = q.Label
		//
		switch q.Role {
		case DATA:
			if q.StabType != NO_STAB {
				return l.errorf("data qubit %s has stabilizer type %s", q.Label, q.StabType)
			}
		case ANCILLA:
			if q.StabType != X_TYPE && q.StabType != Z_TYPE {
				return l.errorf("ancilla %s has invalid stabilizer type %q", q.Label, q.StabType)
			}
		default:
			return l.errorf("qubit %s has unknown role %q", q.Label, q.Role)
		}
		//
		for dir, n := range q.Neighbors {
			if !slices.Contains(DIRECTIONS, dir) {
				return l.errorf("qubit %s has unknown direction %q", q.Label, dir)
			} else if n != "" && !l.Has(n) {
				return l.errorf("qubit %s has unknown neighbour %s", q.Label, n)
			}
		}
	}
	//
	for _, lq := range l.logicals {
		for _, q := range slices.Concat(lq.LogX, lq.LogZ) {
			if qubit, ok := l.Qubit(q); !ok || qubit.Role != DATA {
				return l.errorf("logical %s is supported on %s, which is not a data qubit", lq.Label, q)
			}
		}
	}
	//
	for stab, order := range l.order {
		for _, dir := range order {
			if !slices.Contains(DIRECTIONS, dir) {
				return l.errorf("interaction order for %s has unknown direction %q", stab, dir)
			}
		}
	}
	//
	return nil
}

func (l *Layout) errorf(format string, args ...any) error {
	return &InvalidLayoutError{l.name, fmt.Sprintf(format, args...)}
}

// InvalidLayoutError signals a malformed layout.
type InvalidLayoutError struct {
	Layout  string
	Message string
}

func (e *InvalidLayoutError) Error() string {
	return fmt.Sprintf("invalid layout %q: %s", e.Layout, e.Message)
}
