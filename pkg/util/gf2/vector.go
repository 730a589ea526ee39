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
	"math/bits"
	"slices"
	"strings"
)

// Vector is a fixed-length row vector over GF(2).  Bits are packed into 64-bit
// words, with bit i stored in word i/64.
type Vector struct {
	words []uint64
	size  uint
}

// NewVector constructs a zero vector of the given length.
func NewVector(size uint) Vector {
	return Vector{make([]uint64, (size+63)/64), size}
}

// UnitVector constructs the vector of a given length whose only non-zero
// entry is at position i.
func UnitVector(size uint, i uint) Vector {
	v := NewVector(size)
	v.Set(i, true)
	//
	return v
}

// Len returns the number of entries in this vector.
func (p Vector) Len() uint {
	return p.size
}

// Clone creates a true copy of this vector which ensures no aliasing between
// this vector and the result.
func (p Vector) Clone() Vector {
	return Vector{slices.Clone(p.words), p.size}
}

// Get returns the entry at position i.
func (p Vector) Get(i uint) bool {
	p.checkIndex(i)
	//
	return p.words[i/64]&(uint64(1)<<(i%64)) != 0
}

// Set the entry at position i.
func (p *Vector) Set(i uint, v bool) {
	p.checkIndex(i)
	//
	mask := uint64(1) << (i % 64)
	if v {
		p.words[i/64] |= mask
	} else {
		p.words[i/64] &= ^mask
	}
}

// Flip the entry at position i.
func (p *Vector) Flip(i uint) {
	p.checkIndex(i)
	p.words[i/64] ^= uint64(1) << (i % 64)
}

// Xor adds (mod 2) another vector of the same length into this one.
func (p *Vector) Xor(other Vector) {
	if p.size != other.size {
		panic("gf2: vector length mismatch")
	}
	//
	for w := range p.words {
		p.words[w] ^= other.words[w]
	}
}

// Dot returns the inner product (mod 2) of two vectors of the same length.
func (p Vector) Dot(other Vector) bool {
	if p.size != other.size {
		panic("gf2: vector length mismatch")
	}
	//
	count := 0
	for w := range p.words {
		count += bits.OnesCount64(p.words[w] & other.words[w])
	}
	//
	return count%2 == 1
}

// Count returns the number of non-zero entries.
func (p Vector) Count() uint {
	count := 0
	for _, w := range p.words {
		count += bits.OnesCount64(w)
	}
	//
	return uint(count)
}

// IsZero checks whether every entry is zero.
func (p Vector) IsZero() bool {
	for _, w := range p.words {
		if w != 0 {
			return false
		}
	}
	//
	return true
}

// Ones returns the positions of the non-zero entries in increasing order.
func (p Vector) Ones() []uint {
	var ones []uint
	//
	for w, word := range p.words {
		for word != 0 {
			bit := uint(bits.TrailingZeros64(word))
			ones = append(ones, uint(w)*64+bit)
			word &= word - 1
		}
	}
	//
	return ones
}

// Equal checks whether two vectors have the same length and entries.
func (p Vector) Equal(other Vector) bool {
	return p.size == other.size && slices.Equal(p.words, other.words)
}

// String renders the vector as a string of zeros and ones, first entry first.
func (p Vector) String() string {
	var builder strings.Builder
	//
	for i := uint(0); i < p.size; i++ {
		if p.Get(i) {
			builder.WriteByte('1')
		} else {
			builder.WriteByte('0')
		}
	}
	//
	return builder.String()
}

func (p Vector) checkIndex(i uint) {
	if i >= p.size {
		panic("gf2: index out of bounds")
	}
}
