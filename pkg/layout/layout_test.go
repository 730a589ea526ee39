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
	"bytes"
	"strings"
	"testing"

	"github.com/consensys/go-qec/pkg/util/assert"
)

func Test_Layout_00(t *testing.T) {
	l := check_RotatedSurfaceCode(t, 3, 3)
	//
	assert.Equal(t, []string{"D1", "D2", "D3", "D4", "D5", "D6", "D7", "D8", "D9"}, l.DataQubits())
	assert.Equal(t, []string{"X1", "X2", "X3", "X4"}, l.Select(ANCILLA, X_TYPE))
	assert.Equal(t, []string{"Z1", "Z2", "Z3", "Z4"}, l.Select(ANCILLA, Z_TYPE))
	assert.Equal(t, 17, len(l.Qubits()))
	//
	dx, dz := l.Distance()
	assert.Equal(t, uint(3), dx)
	assert.Equal(t, uint(3), dz)
}

func Test_Layout_01(t *testing.T) {
	l := check_RotatedSurfaceCode(t, 3, 3)
	// boundary X stabilizer has weight two
	assert.Equal(t, []string{"D2", "D1"}, l.Support("X1"))
	assert.Equal(t, []string{"D5", "D2", "D4", "D1"}, l.Support("Z1"))
	//
	n, ok := l.Neighbor("D1", NORTH_WEST)
	assert.True(t, ok)
	assert.Equal(t, "X1", n)
	n, ok = l.Neighbor("D1", NORTH_EAST)
	assert.True(t, ok)
	assert.Equal(t, "Z1", n)
	_, ok = l.Neighbor("X1", SOUTH_WEST)
	assert.False(t, ok)
	//
	assert.Equal(t, []float64{1, 1}, l.Coords()["D1"])
	assert.Equal(t, []float64{0, 2}, l.Coords()["X1"])
	assert.Equal(t, uint(0), l.Indices()["D1"])
	assert.Equal(t, uint(9), l.Indices()["X1"])
}

func Test_Layout_02(t *testing.T) {
	l := check_RotatedSurfaceCode(t, 3, 3)
	//
	assert.Equal(t, []string{"D1", "D2", "D3"}, l.LogZ("L0"))
	assert.Equal(t, []string{"D1", "D4", "D7"}, l.LogX("L0"))
	assert.Equal(t, 1, len(l.Logicals()))
	assert.True(t, l.LogX("L1") == nil)
	// Every stabilizer commutes with both logical operators
	for _, anc := range l.AncQubits() {
		q, _ := l.Qubit(anc)
		support := l.Support(anc)
		//
		if q.StabType == X_TYPE {
			assert.Equal(t, 0, check_Overlap(support, l.LogZ("L0"))%2, "%s anticommutes with logical Z", anc)
		} else {
			assert.Equal(t, 0, check_Overlap(support, l.LogX("L0"))%2, "%s anticommutes with logical X", anc)
		}
	}
}

func Test_Layout_03(t *testing.T) {
	l := check_RotatedSurfaceCode(t, 3, 5)
	//
	assert.Equal(t, 15, len(l.DataQubits()))
	assert.Equal(t, 14, len(l.AncQubits()))
	assert.Equal(t, 5, len(l.LogZ("L0")))
	assert.Equal(t, 3, len(l.LogX("L0")))
}

func Test_Layout_04(t *testing.T) {
	l, err := RepetitionCode(3, X_TYPE, DefaultOptions())
	assert.NoError(t, err)
	assert.Equal(t, []string{"D1", "D2", "D3"}, l.DataQubits())
	assert.Equal(t, []string{"X1", "X2"}, l.AncQubits())
	assert.Equal(t, []string{"D1"}, l.LogX("L0"))
	//
	l, err = RepetitionCode(4, Z_TYPE, DefaultOptions())
	assert.NoError(t, err)
	assert.Equal(t, 3, len(l.Select(ANCILLA, Z_TYPE)))
	assert.Equal(t, 0, len(l.Select(ANCILLA, X_TYPE)))
	//
	_, err = RepetitionCode(3, NO_STAB, DefaultOptions())
	//
	var lerr *InvalidLayoutError
	//
	assert.ErrorAs(t, err, &lerr)
}

func Test_Layout_05(t *testing.T) {
	opts := DefaultOptions()
	opts.Logical = "L1"
	opts.LogicalIndex = 1
	opts.FirstData, opts.FirstX, opts.FirstZ = 10, 5, 5
	opts.FirstIndex = 17
	opts.Origin = [2]float64{10, 1}
	//
	l0 := check_RotatedSurfaceCode(t, 3, 3)
	l1, err := RotatedSurfaceCode(3, 3, opts)
	assert.NoError(t, err)
	//
	assert.Equal(t, []string{"D10", "D11", "D12"}, l1.LogZ("L1"))
	assert.Equal(t, []float64{10, 1}, l1.Coords()["D10"])
	//
	inds, err := Merge(l0, l1)
	assert.NoError(t, err)
	assert.Equal(t, 34, len(inds))
	assert.Equal(t, uint(17), inds["D10"])
	//
	var lerr *InvalidLayoutError
	//
	_, err = Merge(l0, l0)
	assert.ErrorAs(t, err, &lerr)
}

func Test_Layout_06(t *testing.T) {
	l := check_RotatedSurfaceCode(t, 3, 3)
	//
	var buf bytes.Buffer
	//
	assert.NoError(t, l.Write(&buf))
	//
	r, err := Read(&buf)
	assert.NoError(t, err)
	assert.Equal(t, l.Qubits(), r.Qubits())
	assert.Equal(t, l.Indices(), r.Indices())
	assert.Equal(t, l.Coords(), r.Coords())
	assert.Equal(t, l.LogX("L0"), r.LogX("L0"))
	assert.Equal(t, l.InteractionOrder(Z_TYPE), r.InteractionOrder(Z_TYPE))
	//
	for _, anc := range l.AncQubits() {
		assert.Equal(t, l.Support(anc), r.Support(anc))
	}
}

func Test_Layout_07(t *testing.T) {
	text := `
name: broken
code: test
layout:
  - qubit: D1
    role: data
    coords: [0, 0]
    stab_type: null
    ind: 0
    neighbors:
      north_east: X9
`
	var lerr *InvalidLayoutError
	//
	_, err := Read(strings.NewReader(text))
	assert.ErrorAs(t, err, &lerr)
	//
	text = `
name: broken
code: test
layout:
  - qubit: X1
    role: anc
    coords: [0, 0]
    ind: 0
`
	_, err = Read(strings.NewReader(text))
	assert.ErrorAs(t, err, &lerr)
}

func check_RotatedSurfaceCode(t *testing.T, dx uint, dz uint) *Layout {
	t.Helper()
	//
	l, err := RotatedSurfaceCode(dx, dz, DefaultOptions())
	assert.NoError(t, err)
	//
	return l
}

func check_Overlap(lhs []string, rhs []string) int {
	count := 0
	//
	for _, l := range lhs {
		for _, r := range rhs {
			if l == r {
				count++
			}
		}
	}
	//
	return count
}
