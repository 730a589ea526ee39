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
	"fmt"
	"strings"
)

// Matrix is a dense matrix over GF(2), stored as a list of row vectors.
type Matrix struct {
	rows []Vector
	cols uint
}

// NewMatrix constructs a zero matrix with the given dimensions.
func NewMatrix(rows uint, cols uint) Matrix {
	m := Matrix{make([]Vector, rows), cols}
	for i := range m.rows {
		m.rows[i] = NewVector(cols)
	}
	//
	return m
}

// Identity constructs the n x n identity matrix.
func Identity(n uint) Matrix {
	m := Matrix{make([]Vector, n), n}
	for i := range m.rows {
		m.rows[i] = UnitVector(n, uint(i))
	}
	//
	return m
}

// FromBits constructs a matrix from rows of zeros and ones.  All rows must
// have the same length and every entry must be 0 or 1.
func FromBits(data [][]int) (Matrix, error) {
	var cols uint
	//
	if len(data) > 0 {
		cols = uint(len(data[0]))
	}
	//
	m := NewMatrix(uint(len(data)), cols)
	//
	for i, row := range data {
		if uint(len(row)) != cols {
			return Matrix{}, fmt.Errorf("row %d has %d entries (expected %d)", i, len(row), cols)
		}
		//
		for j, bit := range row {
			switch bit {
			case 0:
			case 1:
				m.rows[i].Set(uint(j), true)
			default:
				return Matrix{}, fmt.Errorf("entry (%d,%d) is %d, not a bit", i, j, bit)
			}
		}
	}
	//
	return m, nil
}

// Rows returns the number of rows.
func (m Matrix) Rows() uint {
	return uint(len(m.rows))
}

// Cols returns the number of columns.
func (m Matrix) Cols() uint {
	return m.cols
}

// Row returns a copy of the ith row.
func (m Matrix) Row(i uint) Vector {
	return m.rows[i].Clone()
}

// SetRow replaces the ith row.
func (m *Matrix) SetRow(i uint, row Vector) {
	if row.Len() != m.cols {
		panic("gf2: row length mismatch")
	}
	//
	m.rows[i] = row.Clone()
}

// Get returns entry (i,j).
func (m Matrix) Get(i uint, j uint) bool {
	return m.rows[i].Get(j)
}

// Set entry (i,j).
func (m *Matrix) Set(i uint, j uint, v bool) {
	m.rows[i].Set(j, v)
}

// Clone creates a true copy of this matrix.
func (m Matrix) Clone() Matrix {
	rows := make([]Vector, len(m.rows))
	for i, r := range m.rows {
		rows[i] = r.Clone()
	}
	//
	return Matrix{rows, m.cols}
}

// Equal checks whether two matrices have the same shape and entries.
func (m Matrix) Equal(other Matrix) bool {
	if m.cols != other.cols || len(m.rows) != len(other.rows) {
		return false
	}
	//
	for i := range m.rows {
		if !m.rows[i].Equal(other.rows[i]) {
			return false
		}
	}
	//
	return true
}

// Mul computes the product m * other.  Row i of the result is the sum of the
// rows of other selected by the non-zero entries of row i of m.
func (m Matrix) Mul(other Matrix) Matrix {
	if m.cols != other.Rows() {
		panic("gf2: dimension mismatch")
	}
	//
	result := NewMatrix(m.Rows(), other.cols)
	for i, row := range m.rows {
		result.rows[i] = VecMul(row, other)
	}
	//
	return result
}

// VecMul computes the row vector product v * m.
func VecMul(v Vector, m Matrix) Vector {
	if v.Len() != m.Rows() {
		panic("gf2: dimension mismatch")
	}
	//
	result := NewVector(m.cols)
	for _, j := range v.Ones() {
		result.Xor(m.rows[j])
	}
	//
	return result
}

// Inverse computes the inverse of a square matrix using Gauss-Jordan
// elimination.  The second return is false when the matrix is singular.
func (m Matrix) Inverse() (Matrix, bool) {
	n := m.Rows()
	if n != m.cols {
		return Matrix{}, false
	}
	//
	work := m.Clone()
	inv := Identity(n)
	//
	for col := uint(0); col < n; col++ {
		// Find pivot
		pivot := col
		for pivot < n && !work.rows[pivot].Get(col) {
			pivot++
		}
		//
		if pivot == n {
			return Matrix{}, false
		}
		// Move pivot into place
		work.rows[col], work.rows[pivot] = work.rows[pivot], work.rows[col]
		inv.rows[col], inv.rows[pivot] = inv.rows[pivot], inv.rows[col]
		// Eliminate column everywhere else
		for r := uint(0); r < n; r++ {
			if r != col && work.rows[r].Get(col) {
				work.rows[r].Xor(work.rows[col])
				inv.rows[r].Xor(inv.rows[col])
			}
		}
	}
	//
	return inv, true
}

// IsInvertible checks whether the matrix is square and non-singular.
func (m Matrix) IsInvertible() bool {
	_, ok := m.Inverse()
	return ok
}

func (m Matrix) String() string {
	var builder strings.Builder
	//
	builder.WriteString("[")
	//
	for i, r := range m.rows {
		if i != 0 {
			builder.WriteString(" ")
		}
		//
		builder.WriteString(r.String())
	}
	//
	builder.WriteString("]")
	//
	return builder.String()
}
