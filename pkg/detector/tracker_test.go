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
	"testing"

	"github.com/consensys/go-qec/pkg/util/assert"
	"github.com/consensys/go-qec/pkg/util/gf2"
)

var twoStabs = []string{"X1", "Z1"}

var swap = [][]int{{0, 1}, {1, 0}}

func Test_Tracker_00(t *testing.T) {
	tr := check_Tracker(t, twoStabs, DefaultPolicy())
	//
	dets, err := tr.CloseDetectorsFor("X1")
	assert.NoError(t, err)
	assert.Equal(t, 0, len(dets))
	//
	var serr *UnknownStabilizerError
	//
	_, err = tr.CloseDetectorsFor("X9")
	assert.ErrorAs(t, err, &serr)
}

func Test_Tracker_01(t *testing.T) {
	coords := map[string][]float64{"X1": {0, 2}, "Z1": {2, 0}}
	tr, err := NewTracker(twoStabs, DefaultPolicy(), coords)
	assert.NoError(t, err)
	//
	check_Record(t, tr, 1, 0, "X1", "Z1")
	dets := check_CloseRound(t, tr, [][]uint{{0}, {1}})
	assert.Equal(t, []float64{0, 2, 0}, dets[0].Coords)
	assert.Equal(t, "DETECTOR(0, 2, 0) rec[-2]", dets[0].Instruction(2).String())
	//
	check_Record(t, tr, 2, 2, "X1", "Z1")
	dets = check_CloseRound(t, tr, [][]uint{{2, 0}, {3, 1}})
	assert.Equal(t, "DETECTOR(2, 0, 1) rec[-1] rec[-3]", dets[1].Instruction(4).String())
	assert.Equal(t, uint(2), dets[1].Round)
}

func Test_Tracker_02(t *testing.T) {
	expected := map[Frame][][]uint{
		FRAME_FIRST:    {{3, 0}, {2, 1}},
		FRAME_CURRENT:  {{2, 1}, {3, 0}},
		FRAME_PREVIOUS: {{3, 0}, {2, 1}},
		FRAME_TIME:     {{2, 0}, {3, 1}},
	}
	//
	for frame, handles := range expected {
		tr := check_Tracker(t, twoStabs, Policy{frame, true, DETERMINISTIC})
		//
		check_Record(t, tr, 1, 0, "X1", "Z1")
		check_CloseRound(t, tr, [][]uint{{0}, {1}})
		assert.NoError(t, tr.Update(check_Matrix(t, swap)))
		check_Record(t, tr, 2, 2, "X1", "Z1")
		check_CloseRound(t, tr, handles)
	}
}

func Test_Tracker_03(t *testing.T) {
	for _, frame := range []Frame{FRAME_FIRST, FRAME_TIME} {
		tr := check_Tracker(t, []string{"X1"}, Policy{frame, false, DETERMINISTIC})
		//
		check_Record(t, tr, 1, 0, "X1")
		check_CloseRound(t, tr, [][]uint{{0}})
		check_Record(t, tr, 2, 1, "X1")
		check_CloseRound(t, tr, [][]uint{{1}})
		check_Record(t, tr, 3, 2, "X1")
		check_CloseRound(t, tr, [][]uint{{2, 0}})
	}
}

func Test_Tracker_04(t *testing.T) {
	var (
		stabs   = []string{"Z1", "Z2"}
		support = map[string][]string{"Z1": {"D1", "D2"}, "Z2": {"D2", "D3"}}
		tr      = check_Tracker(t, stabs, DefaultPolicy())
	)
	//
	check_Record(t, tr, 1, 0, "Z1", "Z2")
	check_CloseRound(t, tr, [][]uint{{0}, {1}})
	check_Record(t, tr, 2, 2, "D1", "D2", "D3")
	//
	dets, err := tr.CloseFromData(support, stabs)
	assert.NoError(t, err)
	check_Handles(t, dets, [][]uint{{2, 3, 0}, {3, 4, 1}})
	assert.Equal(t, []float64{1}, dets[0].Coords)
	// Without any QEC round, the data parity is compared against the reset
	tr = check_Tracker(t, stabs, DefaultPolicy())
	check_Record(t, tr, 1, 0, "D1", "D2", "D3")
	//
	dets, err = tr.CloseFromData(support, []string{"Z2"})
	assert.NoError(t, err)
	check_Handles(t, dets, [][]uint{{1, 2}})
	//
	var merr *MissingMeasurementError
	//
	tr = check_Tracker(t, stabs, DefaultPolicy())
	_, err = tr.CloseFromData(support, stabs)
	assert.ErrorAs(t, err, &merr)
}

func Test_Tracker_05(t *testing.T) {
	tr := check_Tracker(t, twoStabs, DefaultPolicy())
	assert.NoError(t, tr.Deactivate("Z1"))
	assert.False(t, tr.IsActive("Z1"))
	//
	check_Record(t, tr, 1, 0, "X1", "Z1")
	dets := check_CloseRound(t, tr, [][]uint{{0}, {}})
	assert.Equal(t, "DETECTOR(0)", dets[1].Instruction(2).String())
	//
	assert.NoError(t, tr.Activate("Z1"))
	check_Record(t, tr, 2, 2, "X1", "Z1")
	check_CloseRound(t, tr, [][]uint{{2, 0}, {3, 1}})
	//
	var (
		rerr *RoundOrderError
		terr *InvalidTrackerError
		serr *UnknownStabilizerError
	)
	//
	assert.ErrorAs(t, tr.RecordMeasurement("X1", 2, 4), &rerr)
	assert.ErrorAs(t, tr.Update(check_Matrix(t, [][]int{{1, 1}, {1, 1}})), &terr)
	assert.ErrorAs(t, tr.Update(gf2.Identity(3)), &terr)
	assert.ErrorAs(t, tr.Deactivate("X1", "X2"), &serr)
	// Nothing was deactivated
	assert.True(t, tr.IsActive("X1"))
}

func Test_Tracker_06(t *testing.T) {
	tr := check_Tracker(t, twoStabs, DefaultPolicy())
	//
	check_Record(t, tr, 1, 0, "X1", "Z1")
	check_CloseRound(t, tr, [][]uint{{0}, {1}})
	assert.NoError(t, tr.Update(check_Matrix(t, swap)))
	tr.Reset()
	assert.True(t, tr.Generators().Equal(gf2.Identity(2)))
	assert.Equal(t, uint(0), tr.NumRounds())
	// The next round is a first round again
	check_Record(t, tr, 2, 2, "X1", "Z1")
	check_CloseRound(t, tr, [][]uint{{2}, {3}})
}

func Test_Tracker_07(t *testing.T) {
	var terr *InvalidTrackerError
	//
	_, err := NewTracker([]string{"X1", "X1"}, DefaultPolicy(), nil)
	assert.ErrorAs(t, err, &terr)
	_, err = NewTracker(twoStabs, Policy{"r+1", true, DETERMINISTIC}, nil)
	assert.ErrorAs(t, err, &terr)
	_, err = NewTracker(twoStabs, DefaultPolicy(), map[string][]float64{"X1": {0, 2}, "Z1": {2}})
	assert.ErrorAs(t, err, &terr)
	_, err = NewTracker(twoStabs, DefaultPolicy(), map[string][]float64{"X1": {0, 2}})
	assert.ErrorAs(t, err, &terr)
	//
	frame, err := ParseFrame("r-1")
	assert.NoError(t, err)
	assert.Equal(t, FRAME_PREVIOUS, frame)
}

func Test_Tracker_08(t *testing.T) {
	tr := check_Tracker(t, twoStabs, Policy{FRAME_FIRST, true, OMIT})
	//
	check_Record(t, tr, 1, 0, "X1", "Z1")
	check_Record(t, tr, 2, 2, "X1", "Z1")
	check_Record(t, tr, 3, 4, "X1", "Z1")
	// Both pending rounds of X1 are closed at once, skipping the first
	dets, err := tr.CloseDetectorsFor("X1")
	assert.NoError(t, err)
	check_Handles(t, dets, [][]uint{{2, 0}, {4, 2}})
	//
	dets, err = tr.CloseRound()
	assert.NoError(t, err)
	check_Handles(t, dets, [][]uint{{3, 1}, {5, 3}})
	assert.Equal(t, "Z1", dets[0].Stabilizer)
}

func Test_Tracker_09(t *testing.T) {
	build := func() []Detector {
		tr := check_Tracker(t, twoStabs, Policy{FRAME_CURRENT, false, DETERMINISTIC})
		//
		var dets []Detector
		//
		for r := uint(1); r <= 4; r++ {
			check_Record(t, tr, r, 2*(r-1), "Z1", "X1")
			//
			if r == 2 {
				assert.NoError(t, tr.Update(check_Matrix(t, [][]int{{1, 1}, {0, 1}})))
			}
			//
			round, err := tr.CloseRound("Z1", "X1")
			assert.NoError(t, err)
			//
			dets = append(dets, round...)
		}
		//
		return dets
	}
	// Identical builds yield identical detectors, ordered by round and id
	first, second := build(), build()
	assert.Equal(t, first, second)
	assert.Equal(t, 8, len(first))
	//
	for i, det := range first {
		assert.Equal(t, uint(i/2+1), det.Round)
		assert.Equal(t, twoStabs[i%2], det.Stabilizer)
	}
}

func Test_Tracker_10(t *testing.T) {
	var (
		stabs   = []string{"Z1"}
		support = map[string][]string{"Z1": {"D1", "D2"}}
		seen    = make(map[float64]bool)
	)
	//
	tr, err := NewTracker(stabs, DefaultPolicy(), map[string][]float64{"Z1": {1, 1}})
	assert.NoError(t, err)
	//
	check := func(dets []Detector, expected ...float64) {
		t.Helper()
		assert.Equal(t, len(expected), len(dets))
		//
		for i, det := range dets {
			step := det.Coords[len(det.Coords)-1]
			assert.Equal(t, expected[i], step)
			assert.False(t, seen[step], "time %v given twice", step)
			seen[step] = true
		}
	}
	// Two rounds, a logical reset, two more rounds and a data measurement
	check_Record(t, tr, 1, 0, "Z1")
	check(check_CloseRound(t, tr, [][]uint{{0}}), 0)
	check_Record(t, tr, 2, 1, "Z1")
	check(check_CloseRound(t, tr, [][]uint{{1, 0}}), 1)
	tr.Reset()
	check_Record(t, tr, 3, 2, "Z1")
	check(check_CloseRound(t, tr, [][]uint{{2}}), 2)
	check_Record(t, tr, 4, 3, "Z1")
	check(check_CloseRound(t, tr, [][]uint{{3, 2}}), 3)
	check_Record(t, tr, 5, 4, "D1", "D2")
	//
	dets, err := tr.CloseFromData(support, stabs)
	assert.NoError(t, err)
	check(dets, 4)
	// The data detector counts as a round of its epoch
	tr.Reset()
	check_Record(t, tr, 6, 6, "Z1")
	check(check_CloseRound(t, tr, [][]uint{{6}}), 5)
	assert.Equal(t, uint(1), tr.NumRounds())
}

func Test_Tracker_11(t *testing.T) {
	var (
		stabs = []string{"X1", "Z1", "X5", "Z5"}
		tr    = check_Tracker(t, stabs, DefaultPolicy())
	)
	//
	check_Record(t, tr, 1, 0, stabs...)
	check_CloseRound(t, tr, [][]uint{{0}, {1}, {2}, {3}})
	// A transversal CX from the first block to the second
	unitary, err := tr.Transformation(map[string][]string{"X1": {"X1", "X5"}, "Z5": {"Z5", "Z1"}})
	assert.NoError(t, err)
	assert.NoError(t, tr.Update(unitary))
	check_Record(t, tr, 2, 4, stabs...)
	check_CloseRound(t, tr, [][]uint{{4, 6, 0}, {5, 1}, {6, 2}, {5, 7, 3}})
	// Resetting the first block disentangles Z5, whose next detector is skipped
	tr.Reset("X1", "Z1", "D1")
	assert.True(t, tr.Generators().Equal(gf2.Identity(4)))
	check_Record(t, tr, 3, 8, stabs...)
	dets := check_CloseRound(t, tr, [][]uint{{8}, {9}, {10, 6}, {}})
	assert.Equal(t, "Z5", dets[3].Stabilizer)
	assert.Equal(t, uint(3), dets[3].Round)
	// Time coordinates of the reset block continue from the latest round
	assert.Equal(t, []float64{2}, dets[0].Coords)
	assert.Equal(t, []float64{2}, dets[2].Coords)
	//
	check_Record(t, tr, 4, 12, stabs...)
	check_CloseRound(t, tr, [][]uint{{12, 8}, {13, 9}, {14, 10}, {15, 11}})
	assert.Equal(t, uint(4), tr.NumRounds())
	//
	var serr *UnknownStabilizerError
	//
	_, err = tr.Transformation(map[string][]string{"X1": {"X9"}})
	assert.ErrorAs(t, err, &serr)
}

func Test_Tracker_12(t *testing.T) {
	tr := check_Tracker(t, twoStabs, Policy{FRAME_TIME, true, DETERMINISTIC})
	//
	check_Record(t, tr, 1, 0, "X1", "Z1")
	check_CloseRound(t, tr, [][]uint{{0}, {1}})
	assert.NoError(t, tr.Update(check_Matrix(t, swap)))
	// Both ancillas now measure a different stabilizer
	check_Record(t, tr, 2, 2, "X1", "Z1")
	check_CloseRound(t, tr, [][]uint{{}, {}})
	check_Record(t, tr, 3, 4, "X1", "Z1")
	check_CloseRound(t, tr, [][]uint{{4, 2}, {5, 3}})
}

func Test_Tracker_13(t *testing.T) {
	var (
		stabs    = []string{"A", "B", "C"}
		unitary  = [][]int{{1, 1, 0}, {0, 1, 1}, {0, 0, 1}}
		expected = map[Frame][][]uint{
			FRAME_FIRST:   {{3, 4, 5, 0}, {4, 5, 1}, {5, 2}},
			FRAME_CURRENT: {{3, 0, 1}, {4, 1, 2}, {5, 2}},
		}
	)
	//
	for frame, handles := range expected {
		tr := check_Tracker(t, stabs, Policy{frame, true, DETERMINISTIC})
		//
		check_Record(t, tr, 1, 0, stabs...)
		check_CloseRound(t, tr, [][]uint{{0}, {1}, {2}})
		assert.NoError(t, tr.Update(check_Matrix(t, unitary)))
		check_Record(t, tr, 2, 3, stabs...)
		check_CloseRound(t, tr, handles)
	}
}

func check_Tracker(t *testing.T, stabs []string, policy Policy) *Tracker {
	t.Helper()
	//
	tr, err := NewTracker(stabs, policy, nil)
	assert.NoError(t, err)
	//
	return tr
}

func check_Matrix(t *testing.T, bits [][]int) gf2.Matrix {
	t.Helper()
	//
	m, err := gf2.FromBits(bits)
	assert.NoError(t, err)
	//
	return m
}

// Record one measurement of each qubit in a given round, with consecutive
// handles.
func check_Record(t *testing.T, tr *Tracker, round uint, handle uint, qubits ...string) {
	t.Helper()
	//
	for i, q := range qubits {
		assert.NoError(t, tr.RecordMeasurement(q, round, handle+uint(i)))
	}
}

func check_CloseRound(t *testing.T, tr *Tracker, expected [][]uint) []Detector {
	t.Helper()
	//
	dets, err := tr.CloseRound()
	assert.NoError(t, err)
	check_Handles(t, dets, expected)
	//
	return dets
}

func check_Handles(t *testing.T, dets []Detector, expected [][]uint) {
	t.Helper()
	//
	assert.Equal(t, len(expected), len(dets))
	//
	for i, det := range dets {
		assert.Equal(t, len(expected[i]), len(det.Handles()), "detector %d", i)
		//
		for j, h := range det.Handles() {
			assert.Equal(t, expected[i][j], h, "detector %d", i)
		}
	}
}
