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
package noise

import (
	"testing"

	"github.com/consensys/go-qec/pkg/circuit"
	"github.com/consensys/go-qec/pkg/setup"
	"github.com/consensys/go-qec/pkg/util/assert"
)

var twoQubits = map[string]uint{"D1": 0, "D2": 1}

func Test_Noise_00(t *testing.T) {
	m := NewCircuitNoise(check_Bind(t, setup.CircuitNoise(), 0.001), twoQubits)
	st := m.NewCircuit()
	//
	assert.NoError(t, m.Reset(st, "R", "D1", "D2"))
	assert.NoError(t, m.Tick(st))
	assert.NoError(t, m.SingleQubitGate(st, "H", "D1"))
	assert.NoError(t, m.Tick(st))
	assert.NoError(t, m.TwoQubitGate(st, "CX", "D1", "D2"))
	assert.NoError(t, m.Tick(st))
	assert.NoError(t, m.Measure(st, "M", "D2", "D1"))
	//
	expected := "TICK\nR 0 1\nX_ERROR(0.001) 0 1\n" +
		"TICK\nH 0\nDEPOLARIZE1(0.001) 0\n" +
		"TICK\nCX 0 1\nDEPOLARIZE2(0.001) 0 1\n" +
		"TICK\nX_ERROR(0.001) 1 0\nM 1 0\n"
	//
	assert.Equal(t, expected, st.Circuit().String())
	assert.Equal(t, uint(3), st.Layer())
	assert.Equal(t, circuit.MEASUREMENT, st.LastOperation("D1"))
	//
	check_MeasTarget(t, st, "D1", -1, -1)
	check_MeasTarget(t, st, "D2", -1, -2)
}

func Test_Noise_01(t *testing.T) {
	s := check_Bind(t, setup.CircuitNoise(), 0.001)
	assert.NoError(t, s.Set(setup.OnQubit("D1"), "sq_error_prob", setup.Number(0.01)))
	//
	m := NewCircuitNoise(s, twoQubits)
	st := m.NewCircuit()
	//
	assert.NoError(t, m.SingleQubitGate(st, "H", "D1", "D2"))
	assert.NoError(t, m.Idle(st, "D1"))
	// Measurements in the X basis are flipped by Z errors
	assert.NoError(t, m.Measure(st, "MX", "D2"))
	//
	expected := "TICK\nH 0 1\nDEPOLARIZE1(0.01) 0\nDEPOLARIZE1(0.001) 1\nI 0\nDEPOLARIZE1(0.001) 0\nZ_ERROR(0.001) 1\nMX 1\n"
	//
	assert.Equal(t, expected, st.Circuit().String())
}

func Test_Noise_02(t *testing.T) {
	var (
		m       = NewCircuitNoise(check_Bind(t, setup.CircuitNoise(), 0.001), twoQubits)
		st      = m.NewCircuit()
		aerr    *InvalidArityError
		qerr    *UnknownQubitError
		operr   *UnsupportedOperationError
		unbound *setup.UnboundParameterError
	)
	//
	assert.ErrorAs(t, m.TwoQubitGate(st, "CX", "D1"), &aerr)
	assert.ErrorAs(t, m.SingleQubitGate(st, "H"), &aerr)
	assert.ErrorAs(t, m.SingleQubitGate(st, "H", "D1", "D1"), &aerr)
	assert.ErrorAs(t, m.Reset(st, "R", "D3"), &qerr)
	assert.ErrorAs(t, m.Reset(st, "CX", "D1"), &operr)
	assert.ErrorAs(t, Apply(m, st, "FOO", "D1"), &operr)
	//
	m = NewCircuitNoise(setup.CircuitNoise(), twoQubits)
	assert.ErrorAs(t, m.Reset(st, "R", "D1"), &unbound)
	assert.Equal(t, "prob", unbound.Name)
	// Failed operations emit nothing
	assert.Equal(t, 0, st.Circuit().Len())
}

func Test_Noise_03(t *testing.T) {
	var (
		operr *UnsupportedOperationError
		inds  = map[string]uint{"D1": 0, "D2": 1, "X1": 2}
		m     = NewSI1000(check_Bind(t, setup.SI1000(), 0.001), inds)
		st    = m.NewCircuit()
	)
	//
	assert.NoError(t, m.Reset(st, "R", "X1"))
	assert.NoError(t, m.Tick(st))
	assert.NoError(t, m.TwoQubitGate(st, "CZ", "D1", "X1"))
	assert.NoError(t, m.Tick(st))
	assert.NoError(t, m.Measure(st, "M", "X1"))
	assert.NoError(t, m.Tick(st))
	//
	expected := "TICK\nR 2\nX_ERROR(0.002) 2\nDEPOLARIZE1(0.002) 0 1\n" +
		"TICK\nCZ 0 2\nDEPOLARIZE2(0.001) 0 2\n" +
		"TICK\nX_ERROR(0.005) 2\nM 2\nDEPOLARIZE1(0.002) 0 1\n"
	//
	assert.Equal(t, expected, st.Circuit().String())
	assert.ErrorAs(t, m.TwoQubitGate(st, "CX", "D1", "X1"), &operr)
	assert.ErrorAs(t, m.Measure(st, "MX", "X1"), &operr)
	// Single-qubit gates are always native
	assert.NoError(t, m.SingleQubitGate(st, "SQRT_X", "D1"))
}

func Test_Noise_04(t *testing.T) {
	assert.Equal(t, []float64{0.25, 0.25, 0.5}, BiasedPrefactors("Z", 2, 1))
	//
	prefactors := BiasedPrefactors("X", 10, 2)
	assert.Equal(t, 15, len(prefactors))
	//
	total := 0.0
	for _, p := range prefactors {
		total += p
	}
	//
	assert.InDelta(t, 1.0, total, 1e-12)
	// IX is biased, IY is not
	assert.InDelta(t, 10*prefactors[1], prefactors[0], 1e-12)
}

func Test_Noise_05(t *testing.T) {
	s := check_Bind(t, setup.BiasedCircuitNoise(), 0.01)
	assert.NoError(t, s.BindFreeParameter("bias", 2))
	//
	m := NewBiasedCircuitNoise(s, twoQubits)
	st := m.NewCircuit()
	//
	assert.NoError(t, m.SingleQubitGate(st, "X", "D1"))
	assert.NoError(t, m.Measure(st, "M", "D1"))
	//
	expected := "TICK\nX 0\nPAULI_CHANNEL_1(0.0025, 0.0025, 0.005) 0\nX_ERROR(0.01) 0\nM 0\n"
	assert.Equal(t, expected, st.Circuit().String())
	//
	var cerr *setup.ConfigError
	//
	assert.NoError(t, s.Set(setup.OnQubit("D2"), "biased_pauli", setup.Text("W")))
	assert.ErrorAs(t, m.Idle(st, "D2"), &cerr)
}

func Test_Noise_06(t *testing.T) {
	s := setup.NewSetup("coherence")
	assert.NoError(t, s.Set(setup.Global(), "T1", setup.Number(10)))
	assert.NoError(t, s.Set(setup.Global(), "T2", setup.Number(15)))
	assert.NoError(t, s.SetGateDuration("H", 1))
	//
	m := NewT1T2(s, twoQubits)
	st := m.NewCircuit()
	//
	assert.NoError(t, m.SingleQubitGate(st, "H", "D1"))
	assert.NoError(t, m.Tick(st))
	//
	px, py, pz := IdleErrorProbs(10, 15, 1)
	noise := circuit.NewInstruction("PAULI_CHANNEL_1", nil, px, py, pz).String()
	expected := "TICK\nH 0\n" + noise + " 0\n" + noise + " 1\n"
	//
	assert.Equal(t, expected, st.Circuit().String())
	// Durations are cleared by the tick
	assert.NoError(t, m.Tick(st))
	assert.Equal(t, expected, st.Circuit().String())
	//
	var (
		merr *setup.MissingParameterError
		cerr *setup.ConfigError
	)
	//
	assert.ErrorAs(t, m.SingleQubitGate(st, "X", "D1"), &merr)
	assert.NoError(t, s.Set(setup.OnQubit("D2"), "T2", setup.Number(25)))
	assert.ErrorAs(t, m.SingleQubitGate(st, "H", "D2"), &cerr)
	// T2 = 2*T1 is the limit of pure relaxation
	assert.NoError(t, s.Set(setup.OnQubit("D2"), "T2", setup.Number(20)))
	assert.NoError(t, m.SingleQubitGate(st, "H", "D2"))
	//
	px, py, pz = IdleErrorProbs(10, 20, 1)
	assert.Equal(t, px, py)
	assert.True(t, pz >= 0)
}

func Test_Noise_07(t *testing.T) {
	px, py, pz := IdleErrorProbs(10, 10, 0)
	assert.Equal(t, 0.0, px+py+pz)
	//
	px, py, pz = IdleErrorProbs(20, 30, 5)
	assert.Equal(t, px, py)
	assert.True(t, pz > 0)
	assert.InDelta(t, 0.25*(1-0.7788007830714049), px, 1e-12)
}

func Test_Noise_08(t *testing.T) {
	s := check_Bind(t, setup.CircuitNoise(), 0.001)
	assert.NoError(t, s.Set(setup.OnQubit("D1"), "assign_error_flag", setup.Flag(true)))
	assert.NoError(t, s.Set(setup.OnQubit("D1"), "assign_error_prob", setup.Number(0.02)))
	//
	m := NewMeasurementNoise(s, twoQubits)
	st := m.NewCircuit()
	//
	assert.NoError(t, m.Measure(st, "M", "D2", "D1"))
	assert.Equal(t, "TICK\nX_ERROR(0.001) 1 0\nM 1\nM(0.02) 0\n", st.Circuit().String())
	check_MeasTarget(t, st, "D2", -1, -2)
	check_MeasTarget(t, st, "D1", -1, -1)
	//
	var merr *MeasurementIndexError
	//
	_, err := st.MeasTarget("D1", -2)
	assert.ErrorAs(t, err, &merr)
}

func Test_Noise_09(t *testing.T) {
	m := NewPhenomenological(check_Bind(t, setup.Phenomenological(), 0.01), twoQubits)
	st := m.NewCircuit()
	//
	assert.NoError(t, m.IncomingNoise(st, "D1", "D2"))
	assert.NoError(t, m.TwoQubitGate(st, "CX", "D1", "D2"))
	assert.NoError(t, m.Idle(st, "D1"))
	//
	expected := "TICK\nX_ERROR(0.01) 0 1\nZ_ERROR(0.01) 0 1\nCX 0 1\nI 0\n"
	assert.Equal(t, expected, st.Circuit().String())
	// Noiseless incoming noise does not even start a layer
	n := NewNoiseless(setup.Noiseless(), twoQubits)
	st = n.NewCircuit()
	assert.NoError(t, n.IncomingNoise(st, "D1"))
	assert.Equal(t, 0, st.Circuit().Len())
}

func Test_Noise_10(t *testing.T) {
	input, err := circuit.Parse("R 0 1 2\nTICK\nM 0 1 2\nDETECTOR(1, 0) rec[-1]\nOBSERVABLE_INCLUDE(0) rec[-2]\n")
	assert.NoError(t, err)
	//
	inds := map[string]uint{"D1": 0, "D2": 1, "D3": 2}
	s := check_Bind(t, setup.CircuitNoise(), 0.001)
	assert.NoError(t, s.Set(setup.OnQubit("D1"), "assign_error_flag", setup.Flag(true)))
	assert.NoError(t, s.Set(setup.OnQubit("D3"), "assign_error_flag", setup.Flag(true)))
	// D3 is measured before D2
	output, err := AddNoise(NewCircuitNoise(s, inds), input)
	assert.NoError(t, err)
	//
	expected := "TICK\nR 0 1 2\nX_ERROR(0.001) 0 1 2\n" +
		"TICK\nX_ERROR(0.001) 0 1 2\nM(0.001) 0 2\nM 1\n" +
		"DETECTOR(1, 0) rec[-2]\nOBSERVABLE_INCLUDE(0) rec[-1]\n"
	//
	assert.Equal(t, expected, output.String())
}

func Test_Noise_11(t *testing.T) {
	var (
		nerr  *NoisyInputError
		qerr  *UnknownQubitError
		operr *UnsupportedOperationError
		m     = NewNoiseless(setup.Noiseless(), twoQubits)
	)
	//
	input, _ := circuit.Parse("R 0\nX_ERROR(0.1) 0\n")
	_, err := AddNoise(m, input)
	assert.ErrorAs(t, err, &nerr)
	assert.Equal(t, 1, nerr.Index)
	//
	input, _ = circuit.Parse("R 5\n")
	_, err = AddNoise(m, input)
	assert.ErrorAs(t, err, &qerr)
	//
	input, _ = circuit.Parse("M 0\nCX rec[-1] 1\n")
	_, err = AddNoise(m, input)
	assert.ErrorAs(t, err, &operr)
}

func Test_Noise_12(t *testing.T) {
	for _, name := range Names() {
		s := setup.NewSetup(name)
		//
		if name != "t1t2" {
			var err error
			//
			s, err = DefaultSetup(name)
			assert.NoError(t, err)
		}
		//
		m, err := Builtin(name, s, twoQubits, nil)
		assert.NoError(t, err)
		assert.Equal(t, name, m.Name())
		assert.Equal(t, []string{"D1", "D2"}, m.Qubits())
	}
	//
	_, err := Builtin("SI_1000", setup.SI1000(), twoQubits, nil)
	assert.Error(t, err)
	_, err = DefaultSetup("t1t2")
	assert.Error(t, err)
	//
	m, err := Builtin("Circuit_Noise", setup.CircuitNoise(), twoQubits, nil)
	assert.NoError(t, err)
	assert.Equal(t, "circuit-noise", m.Name())
}

func Test_Noise_13(t *testing.T) {
	m := NewNoiseless(setup.Noiseless(), map[string]uint{"X1": 2, "D1": 0})
	st := m.NewCircuit()
	//
	assert.NoError(t, QubitCoords(m, st, map[string][]float64{"X1": {0, 2}, "D1": {1, 1}}))
	assert.Equal(t, "QUBIT_COORDS(1, 1) 0\nQUBIT_COORDS(0, 2) 2\n", st.Circuit().String())
	//
	var qerr *UnknownQubitError
	//
	assert.ErrorAs(t, QubitCoords(m, st, map[string][]float64{"Z1": {0, 0}}), &qerr)
}

func Test_Noise_14(t *testing.T) {
	var (
		operr *UnsupportedOperationError
		inds  = map[string]uint{"D1": 0, "D2": 1, "X1": 2}
		m     = NewExtendedSI1000(check_Bind(t, setup.ExtendedSI1000(), 0.001), inds)
		st    = m.NewCircuit()
	)
	//
	assert.NoError(t, m.Reset(st, "R", "X1"))
	assert.NoError(t, m.Tick(st))
	assert.NoError(t, m.TwoQubitGate(st, "ISWAP", "D1", "D2"))
	assert.NoError(t, m.Tick(st))
	assert.NoError(t, m.Measure(st, "M", "X1"))
	assert.NoError(t, m.Tick(st))
	// Measurement flips are assignment errors, followed by depolarising noise
	expected := "TICK\nR 2\nX_ERROR(0.002) 2\nDEPOLARIZE1(0.002) 0 1\n" +
		"TICK\nISWAP 0 1\nDEPOLARIZE2(0.001) 0 1\n" +
		"TICK\nM(0.005) 2\nDEPOLARIZE1(0.002) 2\nDEPOLARIZE1(0.002) 0 1\n"
	//
	assert.Equal(t, expected, st.Circuit().String())
	check_MeasTarget(t, st, "X1", -1, -1)
	assert.ErrorAs(t, m.TwoQubitGate(st, "CX", "D1", "X1"), &operr)
}

func Test_Noise_15(t *testing.T) {
	var (
		inds   = map[string]uint{"D1": 0, "D2": 1, "X1": 2, "X2": 3}
		coords = map[string][]float64{"D1": {1, 1}, "X1": {2, 2}, "D2": {3, 3}, "X2": {7, 3}}
		s      = check_Bind(t, setup.NLR(), 0.001)
		m      = NewNLR(s, inds, coords)
		st     = m.NewCircuit()
	)
	// D2 and X2 are 4 apart, beyond the long coupler distance
	assert.NoError(t, m.TwoQubitGate(st, "CZ", "D1", "X1", "D2", "X2"))
	//
	expected := "TICK\nCZ 0 2 1 3\nDEPOLARIZE2(0.001) 0 2\nDEPOLARIZE2(0.005) 1 3\n"
	assert.Equal(t, expected, st.Circuit().String())
	// Raising the distance makes every coupler short
	assert.NoError(t, s.Set(setup.Global(), "long_coupler_distance", setup.Number(5)))
	assert.NoError(t, m.Tick(st))
	assert.NoError(t, m.TwoQubitGate(st, "CZ", "D2", "X2"))
	assert.Equal(t, expected+"TICK\nCZ 1 3\nDEPOLARIZE2(0.001) 1 3\n", st.Circuit().String())
	//
	var cerr *MissingCoordinatesError
	//
	m = NewNLR(s, inds, map[string][]float64{"D1": {1, 1}})
	assert.ErrorAs(t, m.TwoQubitGate(m.NewCircuit(), "CZ", "D1", "X1"), &cerr)
	assert.Equal(t, "X1", cerr.Qubit)
	// Models without long-range couplers ignore coordinates
	m2, err := Builtin("si1000", s, inds, nil)
	assert.NoError(t, err)
	assert.NoError(t, m2.TwoQubitGate(m2.NewCircuit(), "CZ", "D2", "X2"))
}

func Test_Noise_16(t *testing.T) {
	m := NewMovableQubitsCircuitNoise(check_Bind(t, setup.CircuitNoise(), 0.001), twoQubits)
	st := m.NewCircuit()
	//
	assert.NoError(t, m.TwoQubitGate(st, "SWAP", "D1", "D2"))
	assert.NoError(t, m.Tick(st))
	assert.NoError(t, m.TwoQubitGate(st, "CX", "D1", "D2"))
	//
	expected := "TICK\nSWAP 0 1\nDEPOLARIZE1(0.001) 0 1\nTICK\nCX 0 1\nDEPOLARIZE2(0.001) 0 1\n"
	assert.Equal(t, expected, st.Circuit().String())
}

func Test_Noise_17(t *testing.T) {
	m := NewPhenomenologicalDepol(check_Bind(t, setup.Phenomenological(), 0.01), twoQubits)
	st := m.NewCircuit()
	//
	assert.NoError(t, m.IncomingNoise(st, "D1", "D2"))
	assert.NoError(t, m.Measure(st, "M", "D1"))
	assert.Equal(t, "TICK\nDEPOLARIZE1(0.01) 0 1\nDEPOLARIZE1(0.01) 0\nM 0\n", st.Circuit().String())
	//
	m = NewIncResMeas(check_Bind(t, setup.IncResMeas(), 0.01), twoQubits)
	st = m.NewCircuit()
	//
	assert.NoError(t, m.IncomingNoise(st, "D1"))
	assert.NoError(t, m.Reset(st, "RX", "D2"))
	assert.Equal(t, "TICK\nX_ERROR(0.01) 0\nZ_ERROR(0.01) 0\nRX 1\nZ_ERROR(0.01) 1\n", st.Circuit().String())
	//
	m = NewIncomingDepolNoise(check_Bind(t, setup.IncomingNoise(), 0.01), twoQubits)
	st = m.NewCircuit()
	//
	assert.NoError(t, m.IncomingNoise(st, "D2"))
	assert.NoError(t, m.Reset(st, "R", "D2"))
	assert.Equal(t, "TICK\nDEPOLARIZE1(0.01) 1\nR 1\n", st.Circuit().String())
}

func check_Bind(t *testing.T, s *setup.Setup, prob float64) *setup.Setup {
	t.Helper()
	//
	assert.NoError(t, s.BindFreeParameter("prob", prob))
	//
	return s
}

func check_MeasTarget(t *testing.T, st *State, qubit string, rel int, expected int) {
	t.Helper()
	//
	target, err := st.MeasTarget(qubit, rel)
	assert.NoError(t, err)
	assert.Equal(t, circuit.Rec(expected), target)
}
