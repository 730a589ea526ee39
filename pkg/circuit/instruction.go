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
	"fmt"
	"strconv"
	"strings"
)

// Target identifies what an instruction acts upon.  This is either a qubit
// index, or a (negative) offset into the measurement record.
type Target struct {
	value int
	rec   bool
}

// Qubit constructs a target for the qubit with the given simulator index.
func Qubit(index uint) Target {
	return Target{int(index), false}
}

// Rec constructs a measurement record target.  The offset must be negative,
// with -1 referring to the most recent measurement.
func Rec(offset int) Target {
	if offset >= 0 {
		panic(fmt.Sprintf("invalid measurement record offset %d", offset))
	}
	//
	return Target{offset, true}
}

// IsRec checks whether this target refers to the measurement record.
func (t Target) IsRec() bool {
	return t.rec
}

// Value returns either the qubit index or the record offset, depending on the
// kind of target.
func (t Target) Value() int {
	return t.value
}

func (t Target) String() string {
	if t.rec {
		return fmt.Sprintf("rec[%d]", t.value)
	}
	//
	return strconv.Itoa(t.value)
}

// Qubits is a convenience function for constructing a list of qubit targets.
func Qubits(indices ...uint) []Target {
	targets := make([]Target, len(indices))
	for i, index := range indices {
		targets[i] = Qubit(index)
	}
	//
	return targets
}

// Instruction is a single line of a circuit: a gate, noise channel or
// annotation name with its (optional) parenthesised arguments and targets.
type Instruction struct {
	Name    string
	Targets []Target
	Args    []float64
}

// NewInstruction constructs a new instruction.
func NewInstruction(name string, targets []Target, args ...float64) Instruction {
	return Instruction{name, targets, args}
}

// Family returns the family of this instruction.
func (p Instruction) Family() Family {
	return FamilyOf(p.Name)
}

// NumMeasurements returns the number of measurement results this instruction
// adds to the record.
func (p Instruction) NumMeasurements() uint {
	if FamilyOf(p.Name) == MEASUREMENT {
		return uint(len(p.Targets))
	}
	//
	return 0
}

// Equal checks whether two instructions are identical.
func (p Instruction) Equal(other Instruction) bool {
	if p.Name != other.Name || len(p.Targets) != len(other.Targets) || len(p.Args) != len(other.Args) {
		return false
	}
	//
	for i := range p.Targets {
		if p.Targets[i] != other.Targets[i] {
			return false
		}
	}
	//
	for i := range p.Args {
		if p.Args[i] != other.Args[i] {
			return false
		}
	}
	//
	return true
}

func (p Instruction) String() string {
	var builder strings.Builder
	//
	builder.WriteString(p.Name)
	//
	if len(p.Args) > 0 {
		builder.WriteString("(")
		//
		for i, arg := range p.Args {
			if i != 0 {
				builder.WriteString(", ")
			}
			//
			builder.WriteString(FormatArg(arg))
		}
		//
		builder.WriteString(")")
	}
	//
	for _, t := range p.Targets {
		builder.WriteString(" ")
		builder.WriteString(t.String())
	}
	//
	return builder.String()
}

// FormatArg formats an instruction argument using the shortest representation
// which reads back as the same value.
func FormatArg(arg float64) string {
	return strconv.FormatFloat(arg, 'g', -1, 64)
}
