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

const (
	globalScope uint8 = iota
	qubitScope
	pairScope
)

// Scope identifies where a parameter entry applies: everywhere (global), to
// a single qubit, or to an (unordered) pair of qubits.  Scopes are comparable
// and can be used as map keys.
type Scope struct {
	kind   uint8
	first  string
	second string
}

// Global returns the global scope.
func Global() Scope {
	return Scope{globalScope, "", ""}
}

// OnQubit returns the scope of a single qubit.
func OnQubit(qubit string) Scope {
	return Scope{qubitScope, qubit, ""}
}

// OnPair returns the scope of a pair of qubits.  Pairs are unordered, hence
// OnPair(a,b) == OnPair(b,a).
func OnPair(first string, second string) Scope {
	if second < first {
		first, second = second, first
	}
	//
	return Scope{pairScope, first, second}
}

// IsGlobal checks whether this is the global scope.
func (s Scope) IsGlobal() bool {
	return s.kind == globalScope
}

// IsQubit checks whether this is a single-qubit scope.
func (s Scope) IsQubit() bool {
	return s.kind == qubitScope
}

// IsPair checks whether this is a qubit pair scope.
func (s Scope) IsPair() bool {
	return s.kind == pairScope
}

// Qubits returns the qubits of this scope (none for the global scope).
func (s Scope) Qubits() []string {
	switch s.kind {
	case qubitScope:
		return []string{s.first}
	case pairScope:
		return []string{s.first, s.second}
	default:
		return nil
	}
}

func (s Scope) String() string {
	switch s.kind {
	case qubitScope:
		return fmt.Sprintf("qubit %s", s.first)
	case pairScope:
		return fmt.Sprintf("qubits (%s, %s)", s.first, s.second)
	default:
		return "all qubits"
	}
}

// ParamScope determines which scopes a given parameter may be declared in.
type ParamScope uint8

// ANY_SCOPE permits a parameter in any scope.
const ANY_SCOPE ParamScope = 0

// SINGLE_QUBIT permits a parameter globally or on single qubits.
const SINGLE_QUBIT ParamScope = 1

// QUBIT_PAIR permits a parameter globally or on qubit pairs.
const QUBIT_PAIR ParamScope = 2

// GLOBAL_ONLY permits a parameter only in the global scope.
const GLOBAL_ONLY ParamScope = 3

// ParamType determines the type of values a parameter may hold.
type ParamType uint8

// NUMERIC parameters hold numbers or free parameter expressions.
const NUMERIC ParamType = 0

// BOOLEAN parameters hold flags, though numbers (0 or 1) are accepted.
const BOOLEAN ParamType = 1

// TEXTUAL parameters hold strings.
const TEXTUAL ParamType = 2

// ParamKind captures the constraints on a known parameter.
type ParamKind struct {
	Scope ParamScope
	Type  ParamType
}

// Known parameters.  Parameters not listed here are permitted in any scope
// and may hold numbers or expressions.
var kinds = map[string]ParamKind{
	"sq_error_prob":                       {SINGLE_QUBIT, NUMERIC},
	"meas_error_prob":                     {SINGLE_QUBIT, NUMERIC},
	"reset_error_prob":                    {SINGLE_QUBIT, NUMERIC},
	"idle_error_prob":                     {SINGLE_QUBIT, NUMERIC},
	"assign_error_prob":                   {SINGLE_QUBIT, NUMERIC},
	"assign_error_flag":                   {SINGLE_QUBIT, BOOLEAN},
	"extra_idle_meas_or_reset_error_prob": {SINGLE_QUBIT, NUMERIC},
	"T1":                                  {SINGLE_QUBIT, NUMERIC},
	"T2":                                  {SINGLE_QUBIT, NUMERIC},
	"symmetric_noise":                     {SINGLE_QUBIT, BOOLEAN},
	"tq_error_prob":                       {QUBIT_PAIR, NUMERIC},
	"long_range_tq_error_prob":            {QUBIT_PAIR, NUMERIC},
	"long_coupler_distance":               {GLOBAL_ONLY, NUMERIC},
	"biased_pauli":                        {ANY_SCOPE, TEXTUAL},
	"biased_factor":                       {ANY_SCOPE, NUMERIC},
}

// KindOf returns the constraints on a given parameter.
func KindOf(parameter string) ParamKind {
	if kind, ok := kinds[parameter]; ok {
		return kind
	}
	//
	return ParamKind{ANY_SCOPE, NUMERIC}
}

// Permits checks whether a parameter of this kind may be declared in the given
// scope.
func (k ParamKind) Permits(scope Scope) bool {
	switch k.Scope {
	case SINGLE_QUBIT:
		return !scope.IsPair()
	case QUBIT_PAIR:
		return !scope.IsQubit()
	case GLOBAL_ONLY:
		return scope.IsGlobal()
	default:
		return true
	}
}
