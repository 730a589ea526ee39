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
package gf2

import (
	"math/rand"
	"testing"

	"github.com/consensys/go-qec/pkg/util/assert"
)

func Test_Vector_00(t *testing.T) {
	v := NewVector(70)
	v.Set(0, true)
	v.Set(65, true)
	v.Flip(3)
	//
	assert.Equal(t, []uint{0, 3, 65}, v.Ones())
	assert.Equal(t, uint(3), v.Count())
	assert.True(t, v.Get(65))
	assert.False(t, v.Get(64))
}

func Test_Vector_01(t *testing.T) {
	v := UnitVector(4, 1)
	w := UnitVector(4, 2)
	v.Xor(w)
	//
	assert.Equal(t, "0110", v.String())
	assert.True(t, v.Dot(w))
	v.Xor(w)
	assert.False(t, v.Dot(w))
	v.Xor(v.Clone())
	assert.True(t, v.IsZero())
}

func Test_Matrix_00(t *testing.T) {
	m := check_FromBits(t, [][]int{{1, 1}, {0, 1}})
	// [[1,1],[0,1]] is its own inverse over GF(2)
	inv, ok := m.Inverse()
	assert.True(t, ok)
	assert.True(t, inv.Equal(m))
	assert.True(t, m.Mul(m).Equal(Identity(2)))
}

func Test_Matrix_01(t *testing.T) {
	m := check_FromBits(t, [][]int{{1, 1}, {1, 1}})
	_, ok := m.Inverse()
	assert.False(t, ok)
	assert.False(t, m.IsInvertible())
}

func Test_Matrix_02(t *testing.T) {
	_, err := FromBits([][]int{{1, 2}})
	assert.True(t, err != nil)
	_, err = FromBits([][]int{{1, 0}, {1}})
	assert.True(t, err != nil)
}

func Test_Matrix_03(t *testing.T) {
	m := check_FromBits(t, [][]int{{1, 0, 1}, {0, 1, 1}})
	v := UnitVector(2, 0)
	v.Set(1, true)
	//
	assert.Equal(t, "110", VecMul(v, m).String())
	assert.Equal(t, "[101 011]", m.String())
}

func Test_Matrix_04(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	// Random invertible matrices: M * M^-1 == I
	for n := uint(1); n < 40; n++ {
		m := check_RandomInvertible(rng, n)
		inv, ok := m.Inverse()
		assert.True(t, ok)
		assert.True(t, m.Mul(inv).Equal(Identity(n)))
		assert.True(t, inv.Mul(m).Equal(Identity(n)))
	}
}

// ===================================================================
// Test Helpers
// ===================================================================

func check_FromBits(t *testing.T, data [][]int) Matrix {
	m, err := FromBits(data)
	if err != nil {
		t.Fatal(err)
	}
	//
	return m
}

// Construct an invertible matrix by applying random row additions to the
// identity.
func check_RandomInvertible(rng *rand.Rand, n uint) Matrix {
	m := Identity(n)
	//
	for k := 0; k < int(4*n); k++ {
		i, j := uint(rng.Intn(int(n))), uint(rng.Intn(int(n)))
		if i != j {
			row := m.Row(i)
			row.Xor(m.Row(j))
			m.SetRow(i, row)
		}
	}
	//
	return m
}
