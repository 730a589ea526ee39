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

// SyntaxError is returned when circuit text is malformed.  It identifies the
// offending line.
type SyntaxError struct {
	// Line number (starting from 1).
	Line uint
	// Text of the offending line.
	Text string
	// Message describing the problem.
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s (%q)", e.Line, e.Message, e.Text)
}

// Parse a circuit from the simulator's text format.  Comments (starting with
// '#') and blank lines are ignored.  Only flat circuits are supported, hence
// REPEAT blocks are rejected, as are Pauli product targets.
func Parse(text string) (*Circuit, error) {
	circuit := NewCircuit()
	//
	for i, line := range strings.Split(text, "\n") {
		// Strip comments
		if index := strings.IndexByte(line, '#'); index >= 0 {
			line = line[:index]
		}
		//
		line = strings.TrimSpace(line)
		//
		if line == "" {
			continue
		}
		//
		insn, msg := parseInstruction(line)
		//
		if msg != "" {
			return nil, &SyntaxError{uint(i + 1), line, msg}
		}
		//
		circuit.AppendInstruction(insn)
	}
	//
	return circuit, nil
}

func parseInstruction(line string) (Instruction, string) {
	var (
		insn   Instruction
		fields []string
	)
	// Split off arguments (if any)
	if open := strings.IndexByte(line, '('); open >= 0 {
		end := strings.IndexByte(line, ')')
		if end < open {
			return insn, "unbalanced parentheses"
		}
		//
		insn.Name = strings.ToUpper(strings.TrimSpace(line[:open]))
		//
		for _, arg := range strings.Split(line[open+1:end], ",") {
			value, err := strconv.ParseFloat(strings.TrimSpace(arg), 64)
			if err != nil {
				return insn, fmt.Sprintf("invalid argument %q", strings.TrimSpace(arg))
			}
			//
			insn.Args = append(insn.Args, value)
		}
		//
		fields = strings.Fields(line[end+1:])
	} else {
		fields = strings.Fields(line)
		insn.Name = strings.ToUpper(fields[0])
		fields = fields[1:]
	}
	//
	if insn.Name == "REPEAT" || strings.HasSuffix(line, "{") || line == "}" {
		return insn, "repeat blocks are not supported"
	} else if insn.Name == "" {
		return insn, "missing instruction name"
	}
	//
	for _, field := range fields {
		target, ok := parseTarget(field)
		if !ok {
			return insn, fmt.Sprintf("invalid target %q", field)
		}
		//
		insn.Targets = append(insn.Targets, target)
	}
	//
	return insn, ""
}

func parseTarget(field string) (Target, bool) {
	if strings.HasPrefix(field, "rec[") && strings.HasSuffix(field, "]") {
		offset, err := strconv.Atoi(field[4 : len(field)-1])
		if err != nil || offset >= 0 {
			return Target{}, false
		}
		//
		return Rec(offset), true
	}
	//
	index, err := strconv.ParseUint(field, 10, 32)
	if err != nil {
		return Target{}, false
	}
	//
	return Qubit(uint(index)), true
}
