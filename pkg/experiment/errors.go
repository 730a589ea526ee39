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

import "fmt"

// UnsupportedLayoutError signals a layout which cannot be used as a code block
// of a build.
type UnsupportedLayoutError struct {
	Layout  string
	Message string
}

func (e *UnsupportedLayoutError) Error() string {
	return fmt.Sprintf("unsupported layout %q: %s", e.Layout, e.Message)
}

// UnsupportedOperationError signals a logical operation for which no
// physical implementation exists.
type UnsupportedOperationError struct {
	Logical   string
	Operation string
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("unsupported logical operation %s on %s", e.Operation, e.Logical)
}

// InvalidDataInitError signals an initial data state which does not match the
// data qubits of a code block.
type InvalidDataInitError struct {
	Logical string
	Init    string
	// Number of data qubits
	Expected int
}

func (e *InvalidDataInitError) Error() string {
	return fmt.Sprintf("invalid data initialisation %q for %s (expected %d bits)", e.Init, e.Logical, e.Expected)
}

// IncompatibleBlocksError signals two code blocks between which no
// transversal gate can be applied.
type IncompatibleBlocksError struct {
	Control string
	Target  string
	Message string
}

func (e *IncompatibleBlocksError) Error() string {
	return fmt.Sprintf("no transversal gate from %s to %s: %s", e.Control, e.Target, e.Message)
}
