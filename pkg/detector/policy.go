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
package detector

import (
	"fmt"

	"github.com/consensys/go-qec/pkg/util/gf2"
)

// Frame determines the basis of stabilizer generators in which detectors are
// expressed, which matters once logical gates have transformed the
// generators.
type Frame string

// FRAME_FIRST expresses detectors in the generators of the first round.
const FRAME_FIRST Frame = "1"

// FRAME_CURRENT expresses detectors in the generators of the round being
// closed.
const FRAME_CURRENT Frame = "r"

// FRAME_PREVIOUS expresses detectors in the generators of the round before
// the one being closed.
const FRAME_PREVIOUS Frame = "r-1"

// FRAME_TIME compares each ancilla with itself in the previous round,
// irrespective of how generators have been transformed.
const FRAME_TIME Frame = "t"

// ParseFrame parses a detector frame.
func ParseFrame(text string) (Frame, error) {
	switch frame := Frame(text); frame {
	case FRAME_FIRST, FRAME_CURRENT, FRAME_PREVIOUS, FRAME_TIME:
		return frame, nil
	}
	//
	return "", &InvalidTrackerError{fmt.Sprintf("unknown detector frame %q (expected 1, r, r-1 or t)", text)}
}

// FirstRound determines what happens to the detectors of the first round
// after a reset.
type FirstRound uint8

// DETERMINISTIC compares first-round outcomes against the (deterministic)
// outcome of the reset.
const DETERMINISTIC FirstRound = 0

// OMIT skips first-round detectors altogether.
const OMIT FirstRound = 1

// Policy determines how detectors are closed.
type Policy struct {
	Frame Frame
	// Whether ancillas are reset in every QEC round
	AncillaReset bool
	FirstRound   FirstRound
}

// DefaultPolicy returns the policy used by default: first-round frame,
// ancillas reset every round and deterministic first-round detectors.
func DefaultPolicy() Policy {
	return Policy{FRAME_FIRST, true, DETERMINISTIC}
}

// term refers to the measurement of a stabilizer (by index) relative to the
// round being closed: -1 is the round itself, -2 the one before, etc.
type term struct {
	stab uint
	rel  int
}

// Determine the terms of the detector of the i-th stabilizer, where n is the
// number of the round being closed (from 1).  The detector compares the
// i-th generator of the given basis in both rounds, which is expanded over
// the ancillas through the inverse of the generators measured in each round.
func frameTerms(curr gf2.Matrix, prev gf2.Matrix, basis gf2.Matrix, i uint, n uint, resetCurr bool,
	resetPrev bool) []term {
	currInv, ok := curr.Inverse()
	prevInv, ok2 := prev.Inverse()
	// Generators are only ever transformed by invertible matrices
	if !ok || !ok2 {
		panic("singular stabilizer generators")
	}
	//
	var (
		c     = gf2.VecMul(basis.Row(i), currInv).Ones()
		p     = gf2.VecMul(basis.Row(i), prevInv).Ones()
		terms []term
	)
	//
	terms = appendTerms(terms, c, -1)
	//
	if n >= 2 {
		terms = appendTerms(terms, p, -2)
	}
	//
	if !resetCurr && n >= 2 {
		terms = appendTerms(terms, c, -2)
	}
	//
	if !resetPrev && n >= 3 {
		terms = appendTerms(terms, p, -3)
	}
	//
	return terms
}

// Determine the terms of the i-th stabilizer in the time frame, when closing
// a round of ancilla measurements.
func timeTerms(i uint, n uint, reset bool) []term {
	terms := []term{{i, -1}}
	//
	if reset && n >= 2 {
		terms = append(terms, term{i, -2})
	} else if !reset && n >= 3 {
		terms = append(terms, term{i, -3})
	}
	//
	return terms
}

// Determine the terms of the i-th stabilizer in the time frame, when closing
// with data qubit measurements.
func timeDataTerms(i uint, n uint, reset bool) []term {
	terms := []term{{i, -1}}
	//
	if n > 1 {
		terms = append(terms, term{i, -2})
	}
	//
	if !reset && n > 2 {
		terms = append(terms, term{i, -3})
	}
	//
	return terms
}

func appendTerms(terms []term, stabs []uint, rel int) []term {
	for _, s := range stabs {
		terms = append(terms, term{s, rel})
	}
	//
	return terms
}
