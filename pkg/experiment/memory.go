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

	"github.com/consensys/go-qec/pkg/detector"
	"github.com/consensys/go-qec/pkg/layout"
	"github.com/consensys/go-qec/pkg/noise"
	"github.com/consensys/go-qec/pkg/schedule"
)

// MemorySchedule returns the schedule of a memory experiment on one logical
// qubit: a reset, some QEC cycles and a measurement, all in a given basis.
func MemorySchedule(logical string, rounds uint, basis string) (*schedule.Schedule, error) {
	var reset, measure string
	//
	switch basis {
	case "Z":
		reset, measure = "R", "M"
	case "X":
		reset, measure = "RX", "MX"
	default:
		return nil, fmt.Errorf("invalid basis %q for memory experiment", basis)
	}
	//
	s := &schedule.Schedule{Qubits: []string{logical}}
	s.Layers = append(s.Layers, schedule.NewLayer(schedule.Operation{
		Kind: schedule.RESET, Name: reset, Qubits: []string{logical}}))
	//
	for range rounds {
		s.Layers = append(s.Layers, schedule.QECLayer(logical))
	}
	//
	s.Layers = append(s.Layers, schedule.NewLayer(schedule.Operation{
		Kind: schedule.MEASUREMENT, Name: measure, Qubits: []string{logical}}))
	//
	return s, nil
}

// MemoryExperiment builds the circuit of a memory experiment over a single
// code block.  The data qubits are optionally initialised from a bit string
// (empty for all zeros).
func MemoryExperiment(model noise.Model, l *layout.Layout, rounds uint, basis string, policy detector.Policy,
	dataInit string) (*Build, error) {
	//
	build, err := NewBuild(model, []*layout.Layout{l}, policy)
	if err != nil {
		return nil, err
	}
	//
	logical := build.Logicals()[0]
	//
	s, err := MemorySchedule(logical, rounds, basis)
	if err != nil {
		return nil, err
	}
	//
	if dataInit != "" {
		if err := build.InitData(logical, dataInit); err != nil {
			return nil, err
		}
	}
	//
	if err := build.Run(s); err != nil {
		return nil, err
	}
	//
	return build, nil
}
