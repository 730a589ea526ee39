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
package setup

import (
	"fmt"
)

// ConfigError signals a malformed configuration: an entry of the wrong shape,
// a parameter declared in a scope it cannot have, a syntax error in a free
// parameter expression, or inconsistent units.
type ConfigError struct {
	// Parameter concerned (if any)
	Parameter string
	// Description of the problem
	Message string
}

// NewConfigError constructs a new configuration error.
func NewConfigError(parameter string, format string, args ...any) *ConfigError {
	return &ConfigError{parameter, fmt.Sprintf(format, args...)}
}

func (e *ConfigError) Error() string {
	if e.Parameter == "" {
		return fmt.Sprintf("invalid configuration: %s", e.Message)
	}
	//
	return fmt.Sprintf("invalid configuration for %s: %s", e.Parameter, e.Message)
}

// MissingParameterError signals that no entry (local or global) exists for a
// parameter requested in a given scope.
type MissingParameterError struct {
	Parameter string
	Scope     Scope
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("parameter %s is not defined for %s", e.Parameter, e.Scope)
}

// UnboundParameterError signals that a parameter resolved to an expression
// over a free parameter which has not been bound to a value.
type UnboundParameterError struct {
	Parameter string
	Scope     Scope
	// Name of the unbound free parameter
	Name string
}

func (e *UnboundParameterError) Error() string {
	return fmt.Sprintf("parameter %s for %s depends on unbound free parameter %q", e.Parameter, e.Scope, e.Name)
}

// RebindConflictError signals an attempt to bind a free parameter to a value
// different from the one it is already bound to.
type RebindConflictError struct {
	Name     string
	Current  float64
	Proposed float64
}

func (e *RebindConflictError) Error() string {
	return fmt.Sprintf("free parameter %q is already bound to %g (cannot rebind to %g)", e.Name, e.Current, e.Proposed)
}
