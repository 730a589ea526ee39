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
)

// Options controls the labels, indices and placement of generated layouts,
// such that several layouts can be combined in one experiment.
type Options struct {
	// Label of the logical qubit
	Logical string
	// Index of the logical qubit
	LogicalIndex uint
	// Coordinates of the south-west data qubit
	Origin [2]float64
	// Numeric suffix of the first data, X-type and Z-type qubits
	FirstData, FirstX, FirstZ uint
	// Simulator index of the first qubit
	FirstIndex uint
	// Interaction order of each stabilizer type (defaults if nil)
	InteractionOrder map[StabType][]Direction
}

// DefaultOptions returns the options used for a single logical qubit "L0".
func DefaultOptions() Options {
	return Options{
		Logical:   "L0",
		Origin:    [2]float64{1, 1},
		FirstData: 1,
		FirstX:    1,
		FirstZ:    1,
	}
}

// DefaultInteractionOrder returns the interaction order used for rotated
// surface codes, which avoids hook errors aligned with the logical operators.
func DefaultInteractionOrder() map[StabType][]Direction {
	return map[StabType][]Direction{
		X_TYPE: {NORTH_EAST, NORTH_WEST, SOUTH_EAST, SOUTH_WEST},
		Z_TYPE: {NORTH_EAST, SOUTH_EAST, NORTH_WEST, SOUTH_WEST},
	}
}

// RotatedSurfaceCode generates a rotated surface code with distances dx and dz.
// Data qubits sit at odd (column, row) positions of a (2dx+1)x(2dz+1) grid and
// ancillas at even positions.  Data qubits are numbered column by column,
// starting from the south-west corner.
func RotatedSurfaceCode(dx uint, dz uint, opts Options) (*Layout, error) {
	if dx == 0 || dz == 0 {
		return nil, &InvalidLayoutError{"rotated surface code", fmt.Sprintf("invalid distances %d, %d", dx, dz)}
	}
	//
	var (
		name      = fmt.Sprintf("Rotated dx-%d dz-%d surface code layout.", dx, dz)
		colSize   = int(2*dx + 1)
		rowSize   = int(2*dz + 1)
		qubits    []Qubit
		neighbors = make(map[string]map[Direction]string)
		ind       = opts.FirstIndex
		order     = opts.InteractionOrder
	)
	//
	if order == nil {
		order = DefaultInteractionOrder()
	}
	//
	dataLabel := func(col, row int) string {
		return fmt.Sprintf("D%d", int(opts.FirstData)+(col/2)*int(dz)+row/2)
	}
	//
	addQubit := func(label string, role Role, stab StabType, col, row int) {
		coords := []float64{float64(col) + opts.Origin[0] - 1, float64(row) + opts.Origin[1] - 1}
		qubits = append(qubits, Qubit{label, role, coords, stab, ind, nil})
		ind++
	}
	// Connect an ancilla to its neighbouring data qubits
	connect := func(anc string, col, row int) {
		for _, dc := range []int{1, -1} {
			for _, dr := range []int{1, -1} {
				c, r := col+dc, row+dr
				//
				if c < 0 || c >= colSize || r < 0 || r >= rowSize {
					continue
				}
				//
				data := dataLabel(c, r)
				setNeighbor(neighbors, anc, shiftDirection(dc, dr), data)
				setNeighbor(neighbors, data, shiftDirection(-dc, -dr), anc)
			}
		}
	}
	//
	for col := 1; col < colSize; col += 2 {
		for row := 1; row < rowSize; row += 2 {
			addQubit(dataLabel(col, row), DATA, NO_STAB, col, row)
		}
	}
	//
	xIndex := opts.FirstX
	//
	for col := 0; col < colSize; col += 2 {
		for row := 2 + col%4; row < rowSize-1; row += 4 {
			anc := fmt.Sprintf("X%d", xIndex)
			addQubit(anc, ANCILLA, X_TYPE, col, row)
			connect(anc, col, row)
			xIndex++
		}
	}
	//
	zIndex := opts.FirstZ
	//
	for col := 2; col < colSize-1; col += 2 {
		for row := col % 4; row < rowSize; row += 4 {
			anc := fmt.Sprintf("Z%d", zIndex)
			addQubit(anc, ANCILLA, Z_TYPE, col, row)
			connect(anc, col, row)
			zIndex++
		}
	}
	//
	for i := range qubits {
		qubits[i].Neighbors = neighbors[qubits[i].Label]
	}
	//
	logical := Logical{Label: opts.Logical, Index: opts.LogicalIndex}
	//
	for i := range dz {
		logical.LogZ = append(logical.LogZ, fmt.Sprintf("D%d", opts.FirstData+i))
	}
	//
	for i := range dx {
		logical.LogX = append(logical.LogX, fmt.Sprintf("D%d", opts.FirstData+i*dz))
	}
	//
	return New(name, "rotated_surface_code", "", dx, dz, order, []Logical{logical}, qubits)
}

// RepetitionCode generates a repetition code of a given distance, as a
// degenerate rotated surface code.  An x_type repetition code protects against
// Z errors, whilst a z_type repetition code protects against X errors.
func RepetitionCode(distance uint, stab StabType, opts Options) (*Layout, error) {
	switch stab {
	case X_TYPE:
		return RotatedSurfaceCode(1, distance, opts)
	case Z_TYPE:
		return RotatedSurfaceCode(distance, 1, opts)
	}
	//
	return nil, &InvalidLayoutError{"repetition code", fmt.Sprintf("invalid stabilizer type %q", stab)}
}

func shiftDirection(colShift int, rowShift int) Direction {
	switch {
	case rowShift > 0 && colShift > 0:
		return NORTH_EAST
	case rowShift > 0:
		return NORTH_WEST
	case colShift > 0:
		return SOUTH_EAST
	default:
		return SOUTH_WEST
	}
}

func setNeighbor(neighbors map[string]map[Direction]string, qubit string, dir Direction, neighbor string) {
	if _, ok := neighbors[qubit]; !ok {
		neighbors[qubit] = make(map[Direction]string)
	}
	//
	neighbors[qubit][dir] = neighbor
}
