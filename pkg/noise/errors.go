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
	"fmt"
	"strings"
)

// InvalidArityError signals that an operation was called with a set of qubits
// which does not match its family: no qubits at all, an odd number of qubits
// for a two-qubit gate, or the same qubit more than once.
type InvalidArityError struct {
	Operation string
	Qubits    []string
	Message   string
}

func (e *InvalidArityError) Error() string {
	return fmt.Sprintf("invalid qubits for %s [%s]: %s", e.Operation, strings.Join(e.Qubits, ","), e.Message)
}

// UnknownQubitError signals an operation on a qubit which the model does not
// know about.
type UnknownQubitError struct {
	Qubit string
}

func (e *UnknownQubitError) Error() string {
	return fmt.Sprintf("unknown qubit %s", e.Qubit)
}

// UnsupportedOperationError signals an operation which is either unknown, of
// the wrong family for the method it was passed to, or outside the native gate
// set of a model.
type UnsupportedOperationError struct {
	Model     string
	Operation string
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("operation %s is not supported by the %s model", e.Operation, e.Model)
}

// MeasurementIndexError signals an access to a measurement of a qubit which
// has not (yet) happened.
type MeasurementIndexError struct {
	Qubit string
	// Relative (negative) index requested
	Index int
	// Number of measurements of the qubit
	Count int
}

func (e *MeasurementIndexError) Error() string {
	return fmt.Sprintf("qubit %s has only %d measurements, but %d was accessed", e.Qubit, e.Count, e.Index)
}

// NoisyInputError signals that a circuit given to AddNoise already contains
// noise channels.
type NoisyInputError struct {
	// Index of the offending instruction
	Index int
	// Name of the noise channel
	Name string
}

func (e *NoisyInputError) Error() string {
	return fmt.Sprintf("input circuit must be noiseless, found %s at instruction %d", e.Name, e.Index)
}

// MissingCoordinatesError signals that a model which depends on the distance
// between qubits was asked about a qubit without coordinates.
type MissingCoordinatesError struct {
	Model string
	Qubit string
}

func (e *MissingCoordinatesError) Error() string {
	return fmt.Sprintf("the %s model requires coordinates for qubit %s", e.Model, e.Qubit)
}
