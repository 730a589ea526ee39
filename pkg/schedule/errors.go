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
package schedule

import (
	"fmt"
	"strings"
)

// IncompleteLayerError signals a layer of logical operations in which some
// logical qubits have no operation, or more than one.
type IncompleteLayerError struct {
	Layer      uint
	Missing    []string
	Duplicated []string
}

func (e *IncompleteLayerError) Error() string {
	var parts []string
	//
	if len(e.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("no operation on %s", strings.Join(e.Missing, ",")))
	}
	//
	if len(e.Duplicated) > 0 {
		parts = append(parts, fmt.Sprintf("several operations on %s", strings.Join(e.Duplicated, ",")))
	}
	//
	return fmt.Sprintf("incomplete layer %d (%s)", e.Layer, strings.Join(parts, "; "))
}

// InvalidAdjacencyError signals a logical qubit which is measured after being
// reset, without any QEC cycle in between.
type InvalidAdjacencyError struct {
	Layer uint
	Qubit string
	// Layer of the reset
	Reset uint
}

func (e *InvalidAdjacencyError) Error() string {
	return fmt.Sprintf("qubit %s measured in layer %d without a QEC cycle since its reset in layer %d",
		e.Qubit, e.Layer, e.Reset)
}

// MissingTickError signals a layer whose physical instructions do not start
// with a TICK.
type MissingTickError struct {
	Layer uint
}

func (e *MissingTickError) Error() string {
	return fmt.Sprintf("layer %d does not start with TICK", e.Layer)
}

// LayerStartsError signals that the start of each layer in a physical circuit
// was not given for every layer of a schedule.
type LayerStartsError struct {
	Layers uint
	Starts uint
}

func (e *LayerStartsError) Error() string {
	return fmt.Sprintf("expected start of %d layers, found %d", e.Layers, e.Starts)
}

// MixedLayerError signals a layer which mixes QEC cycles with other logical
// operations.
type MixedLayerError struct {
	Layer uint
}

func (e *MixedLayerError) Error() string {
	return fmt.Sprintf("layer %d mixes QEC cycles with other operations", e.Layer)
}

// UnknownQubitError signals an operation on a logical qubit which is not part
// of the schedule.
type UnknownQubitError struct {
	Layer uint
	Qubit string
}

func (e *UnknownQubitError) Error() string {
	return fmt.Sprintf("unknown logical qubit %s in layer %d", e.Qubit, e.Layer)
}

// UnpairedTargetError signals a two-qubit logical gate with an odd number of
// targets.
type UnpairedTargetError struct {
	// Index of the instruction in the logical circuit
	Index int
	Name  string
}

func (e *UnpairedTargetError) Error() string {
	return fmt.Sprintf("odd number of targets for %s at instruction %d", e.Name, e.Index)
}

// UnsupportedOperationError signals a logical operation which cannot be
// scheduled.
type UnsupportedOperationError struct {
	// Index of the instruction in the logical circuit
	Index int
	Name  string
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("unsupported logical operation %s at instruction %d", e.Name, e.Index)
}
