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
package circuit

import (
	"io"
	"strings"
)

// Circuit is an append-only buffer of instructions in the order they should
// be executed by the simulator.  The buffer keeps a running count of the
// measurements it contains so that record offsets can be computed as it is
// built.
type Circuit struct {
	instructions    []Instruction
	numMeasurements uint
}

// NewCircuit constructs an empty circuit.
func NewCircuit() *Circuit {
	return &Circuit{}
}

// Append a new instruction to the end of this circuit.
func (p *Circuit) Append(name string, targets []Target, args ...float64) {
	p.AppendInstruction(Instruction{name, targets, args})
}

// AppendInstruction appends a given instruction to the end of this circuit.
func (p *Circuit) AppendInstruction(insn Instruction) {
	p.instructions = append(p.instructions, insn)
	p.numMeasurements += insn.NumMeasurements()
}

// Extend appends all instructions of another circuit onto this circuit.
func (p *Circuit) Extend(other *Circuit) {
	for _, insn := range other.instructions {
		p.AppendInstruction(insn)
	}
}

// Len returns the number of instructions in this circuit.
func (p *Circuit) Len() int {
	return len(p.instructions)
}

// At returns the ith instruction of this circuit.
func (p *Circuit) At(i int) Instruction {
	return p.instructions[i]
}

// Instructions returns the instructions of this circuit.  The returned slice
// must not be modified.
func (p *Circuit) Instructions() []Instruction {
	return p.instructions
}

// NumMeasurements returns the number of measurement results recorded by this
// circuit.
func (p *Circuit) NumMeasurements() uint {
	return p.numMeasurements
}

// Count returns the number of instructions with the given name.
func (p *Circuit) Count(name string) uint {
	count := uint(0)
	//
	for _, insn := range p.instructions {
		if insn.Name == name {
			count++
		}
	}
	//
	return count
}

// NumTicks returns the number of TICK instructions in this circuit.
func (p *Circuit) NumTicks() uint {
	return p.Count(TICK)
}

// NumDetectors returns the number of DETECTOR instructions in this circuit.
func (p *Circuit) NumDetectors() uint {
	return p.Count(DETECTOR)
}

// WriteTo writes this circuit in the simulator's text format, one instruction
// per line.
func (p *Circuit) WriteTo(out io.Writer) (int64, error) {
	n, err := io.WriteString(out, p.String())
	return int64(n), err
}

func (p *Circuit) String() string {
	var builder strings.Builder
	//
	for _, insn := range p.instructions {
		builder.WriteString(insn.String())
		builder.WriteString("\n")
	}
	//
	return builder.String()
}
