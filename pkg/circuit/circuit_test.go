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
	"testing"

	"github.com/consensys/go-qec/pkg/util/assert"
)

func Test_Circuit_00(t *testing.T) {
	c := NewCircuit()
	c.Append("R", Qubits(0, 1))
	c.Append("X_ERROR", Qubits(0, 1), 0.001)
	c.Append(TICK, nil)
	c.Append("M", Qubits(1, 0), 0.01)
	c.Append(DETECTOR, []Target{Rec(-1), Rec(-2)}, 1, 2.5, 0)
	//
	expected := "R 0 1\nX_ERROR(0.001) 0 1\nTICK\nM(0.01) 1 0\nDETECTOR(1, 2.5, 0) rec[-1] rec[-2]\n"
	//
	assert.Equal(t, expected, c.String())
	assert.Equal(t, uint(2), c.NumMeasurements())
	assert.Equal(t, uint(1), c.NumTicks())
	assert.Equal(t, uint(1), c.NumDetectors())
}

func Test_Circuit_01(t *testing.T) {
	check_RoundTrip(t, "R 0 1 2\nTICK\nCX 0 1\nDEPOLARIZE2(1e-05) 0 1\nMX 2\nOBSERVABLE_INCLUDE(0) rec[-1]\n")
}

func Test_Circuit_02(t *testing.T) {
	check_RoundTrip(t, "PAULI_CHANNEL_1(0.1, 0.2, 0.30000000000000004) 4\nQUBIT_COORDS(1, 1) 0\n")
}

func Test_Circuit_03(t *testing.T) {
	c, err := Parse("# comment\n  r 0\n\nTICK # boundary\nM 0 1\n")
	assert.NoError(t, err)
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, "R", c.At(0).Name)
	assert.Equal(t, uint(2), c.NumMeasurements())
}

func Test_Circuit_04(t *testing.T) {
	var serr *SyntaxError
	//
	_, err := Parse("R 0\nCX 0 a\n")
	assert.ErrorAs(t, err, &serr)
	assert.Equal(t, uint(2), serr.Line)
	//
	_, err = Parse("REPEAT 10 {\nTICK\n}\n")
	assert.ErrorAs(t, err, &serr)
	//
	_, err = Parse("DETECTOR rec[1]\n")
	assert.ErrorAs(t, err, &serr)
	//
	_, err = Parse("X_ERROR(abc) 0\n")
	assert.ErrorAs(t, err, &serr)
}

func Test_Circuit_05(t *testing.T) {
	a := NewCircuit()
	a.Append("M", Qubits(0))
	b := NewCircuit()
	b.Append("MZ", Qubits(1, 2))
	a.Extend(b)
	//
	assert.Equal(t, uint(3), a.NumMeasurements())
	assert.True(t, a.At(1).Equal(NewInstruction("MZ", Qubits(1, 2))))
	assert.False(t, a.At(0).Equal(a.At(1)))
}

func Test_Family_00(t *testing.T) {
	assert.Equal(t, RESET, FamilyOf("RX"))
	assert.Equal(t, TWO_QUBIT_GATE, FamilyOf("CZ"))
	assert.Equal(t, MEASUREMENT, FamilyOf("MZ"))
	assert.Equal(t, NOISE, FamilyOf("DEPOLARIZE1"))
	assert.Equal(t, UNKNOWN, FamilyOf("MPP"))
	assert.Equal(t, "X", Basis("MX"))
	assert.Equal(t, "Z", Basis("R"))
}

// ===================================================================
// Test Helpers
// ===================================================================

func check_RoundTrip(t *testing.T, text string) {
	c, err := Parse(text)
	if err != nil {
		t.Fatal(err)
	}
	//
	assert.Equal(t, text, c.String())
}
