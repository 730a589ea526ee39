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

import "fmt"

// UnknownStabilizerError signals a stabilizer which the tracker does not
// know about.
type UnknownStabilizerError struct {
	Stabilizer string
}

func (e *UnknownStabilizerError) Error() string {
	return fmt.Sprintf("unknown stabilizer %s", e.Stabilizer)
}

// MissingMeasurementError signals that a detector refers to a measurement
// which has not been recorded.  The round is counted from the last reset of
// the tracker, starting from 1.
type MissingMeasurementError struct {
	Qubit string
	Round uint
}

func (e *MissingMeasurementError) Error() string {
	return fmt.Sprintf("missing measurement of %s in round %d", e.Qubit, e.Round)
}

// RoundOrderError signals a measurement recorded for a round which is not
// after the last round recorded for the same qubit.
type RoundOrderError struct {
	Qubit string
	Round uint
	Last  uint
}

func (e *RoundOrderError) Error() string {
	return fmt.Sprintf("measurement of %s in round %d follows round %d", e.Qubit, e.Round, e.Last)
}

// InvalidTrackerError signals an inconsistent tracker construction or an
// invalid stabilizer transformation.
type InvalidTrackerError struct {
	Message string
}

func (e *InvalidTrackerError) Error() string {
	return e.Message
}
