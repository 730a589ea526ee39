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
	"math/rand"

	"github.com/consensys/go-qec/pkg/circuit"
	. "github.com/smartystreets/goconvey/convey"
)

// Number of noiseless shots compared by check_Deterministic.
const shots = 6

// Simulate a circuit without its noise channels over several shots, checking
// that every detector is satisfied and that every observable takes the same
// value in each shot.
func check_Deterministic(c *circuit.Circuit) {
	var first map[uint]bool
	//
	for seed := range int64(shots) {
		dets, obs, err := simulate(c, seed)
		So(err, ShouldBeNil)
		//
		for _, d := range dets {
			So(d, ShouldBeFalse)
		}
		//
		if first == nil {
			first = obs
		}
		//
		So(obs, ShouldResemble, first)
	}
}

// Simulate a circuit with a stabilizer tableau, returning the parity of each
// detector and of each observable.  Noise channels are ignored.
func simulate(c *circuit.Circuit, seed int64) ([]bool, map[uint]bool, error) {
	var (
		tab  = newTableau(numQubits(c), rand.New(rand.NewSource(seed)))
		rec  []bool
		dets []bool
		obs  = make(map[uint]bool)
	)
	//
	parity := func(targets []circuit.Target) (bool, error) {
		var p bool
		//
		for _, t := range targets {
			k := len(rec) + t.Value()
			//
			if !t.IsRec() || k < 0 {
				return false, fmt.Errorf("invalid record target %s", t)
			}
			//
			p = p != rec[k]
		}
		//
		return p, nil
	}
	//
	for _, insn := range c.Instructions() {
		var qs []int
		//
		for _, t := range insn.Targets {
			qs = append(qs, t.Value())
		}
		//
		switch insn.Name {
		case circuit.DETECTOR:
			p, err := parity(insn.Targets)
			if err != nil {
				return nil, nil, err
			}
			//
			dets = append(dets, p)
		case circuit.OBSERVABLE_INCLUDE:
			p, err := parity(insn.Targets)
			if err != nil {
				return nil, nil, err
			}
			//
			obs[uint(insn.Args[0])] = obs[uint(insn.Args[0])] != p
		case "R", "RZ":
			for _, q := range qs {
				tab.reset(q)
			}
		case "RX":
			for _, q := range qs {
				tab.reset(q)
				tab.h(q)
			}
		case "M", "MZ":
			for _, q := range qs {
				rec = append(rec, tab.measure(q))
			}
		case "MX":
			for _, q := range qs {
				tab.h(q)
				rec = append(rec, tab.measure(q))
				tab.h(q)
			}
		case "H":
			for _, q := range qs {
				tab.h(q)
			}
		case "X", "Y", "Z":
			for _, q := range qs {
				tab.pauli(insn.Name, q)
			}
		case "CX", "CNOT":
			for k := 0; k+1 < len(qs); k += 2 {
				tab.cx(qs[k], qs[k+1])
			}
		case "CZ":
			for k := 0; k+1 < len(qs); k += 2 {
				tab.h(qs[k+1])
				tab.cx(qs[k], qs[k+1])
				tab.h(qs[k+1])
			}
		case "I", circuit.TICK, circuit.QUBIT_COORDS, "SHIFT_COORDS":
		default:
			if insn.Family() != circuit.NOISE {
				return nil, nil, fmt.Errorf("cannot simulate %s", insn.Name)
			}
		}
	}
	//
	return dets, obs, nil
}

// Number of qubits addressed by a circuit.
func numQubits(c *circuit.Circuit) int {
	var n int
	//
	for _, insn := range c.Instructions() {
		if insn.Family() == circuit.ANNOTATION {
			continue
		}
		//
		for _, t := range insn.Targets {
			if !t.IsRec() {
				n = max(n, t.Value()+1)
			}
		}
	}
	//
	return n
}

// tableau is a stabilizer tableau over n qubits: rows [0,n) hold the
// destabilizers, rows [n,2n) the stabilizers and row 2n is scratch space.
type tableau struct {
	n    int
	x, z [][]bool
	// Set when the row's sign is negative
	r   []bool
	rng *rand.Rand
}

func newTableau(n int, rng *rand.Rand) *tableau {
	t := &tableau{n: n, x: make([][]bool, 2*n+1), z: make([][]bool, 2*n+1), r: make([]bool, 2*n+1), rng: rng}
	//
	for i := range 2*n + 1 {
		t.x[i] = make([]bool, n)
		t.z[i] = make([]bool, n)
	}
	//
	for i := range n {
		t.x[i][i] = true
		t.z[n+i][i] = true
	}
	//
	return t
}

func (t *tableau) h(a int) {
	for i := range 2 * t.n {
		t.r[i] = t.r[i] != (t.x[i][a] && t.z[i][a])
		t.x[i][a], t.z[i][a] = t.z[i][a], t.x[i][a]
	}
}

func (t *tableau) cx(a int, b int) {
	for i := range 2 * t.n {
		t.r[i] = t.r[i] != (t.x[i][a] && t.z[i][b] && t.x[i][b] == t.z[i][a])
		t.x[i][b] = t.x[i][b] != t.x[i][a]
		t.z[i][a] = t.z[i][a] != t.z[i][b]
	}
}

// Apply a Pauli gate, which flips the sign of every row anticommuting with it.
func (t *tableau) pauli(name string, a int) {
	for i := range 2 * t.n {
		var flip bool
		//
		switch name {
		case "X":
			flip = t.z[i][a]
		case "Z":
			flip = t.x[i][a]
		default:
			flip = t.x[i][a] != t.z[i][a]
		}
		//
		t.r[i] = t.r[i] != flip
	}
}

func (t *tableau) reset(a int) {
	if t.measure(a) {
		t.pauli("X", a)
	}
}

// Measure a qubit in the Z basis.
func (t *tableau) measure(a int) bool {
	n := t.n
	//
	for p := n; p < 2*n; p++ {
		if !t.x[p][a] {
			continue
		}
		// Random outcome
		for i := range 2 * n {
			if i != p && t.x[i][a] {
				t.rowsum(i, p)
			}
		}
		//
		copy(t.x[p-n], t.x[p])
		copy(t.z[p-n], t.z[p])
		t.r[p-n] = t.r[p]
		//
		clear(t.x[p])
		clear(t.z[p])
		t.z[p][a] = true
		t.r[p] = t.rng.Intn(2) == 1
		//
		return t.r[p]
	}
	// Deterministic outcome, accumulated in the scratch row
	clear(t.x[2*n])
	clear(t.z[2*n])
	t.r[2*n] = false
	//
	for i := range n {
		if t.x[i][a] {
			t.rowsum(2*n, i+n)
		}
	}
	//
	return t.r[2*n]
}

// Multiply row h by row i.
func (t *tableau) rowsum(h int, i int) {
	sum := 2*bit(t.r[h]) + 2*bit(t.r[i])
	//
	for j := range t.n {
		sum += phase(t.x[i][j], t.z[i][j], t.x[h][j], t.z[h][j])
	}
	//
	t.r[h] = ((sum%4)+4)%4 == 2
	//
	for j := range t.n {
		t.x[h][j] = t.x[h][j] != t.x[i][j]
		t.z[h][j] = t.z[h][j] != t.z[i][j]
	}
}

// Exponent of i picked up when multiplying two single-qubit Paulis.
func phase(x1, z1, x2, z2 bool) int {
	switch {
	case !x1 && !z1:
		return 0
	case x1 && z1:
		return bit(z2) - bit(x2)
	case x1:
		return bit(z2) * (2*bit(x2) - 1)
	default:
		return bit(x2) * (1 - 2*bit(z2))
	}
}

func bit(b bool) int {
	if b {
		return 1
	}
	//
	return 0
}
