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
	"strconv"
)

const (
	numberValue uint8 = iota
	flagValue
	textValue
	exprValue
)

// Value is the value of a parameter entry: a number, a flag, a piece of text
// (e.g. the biased Pauli) or an expression over free parameters.
type Value struct {
	kind   uint8
	number float64
	flag   bool
	text   string
	expr   *Expr
}

// Number constructs a numeric value.
func Number(value float64) Value {
	return Value{kind: numberValue, number: value}
}

// Flag constructs a boolean value.
func Flag(value bool) Value {
	return Value{kind: flagValue, flag: value}
}

// Text constructs a textual value.
func Text(value string) Value {
	return Value{kind: textValue, text: value}
}

// Free constructs a value from an expression over free parameters, such as
// "{prob}" or "{prob} * 5".
func Free(expr string) (Value, error) {
	e, err := ParseExpr(expr)
	if err != nil {
		return Value{}, err
	}
	//
	return Value{kind: exprValue, expr: e}, nil
}

// MustFree is like Free, but panics if the expression is malformed.  This is
// intended for built-in setups.
func MustFree(expr string) Value {
	v, err := Free(expr)
	if err != nil {
		panic(err)
	}
	//
	return v
}

// IsText checks whether this is a textual value.
func (v Value) IsText() bool {
	return v.kind == textValue
}

// IsFree checks whether this value depends on free parameters.
func (v Value) IsFree() bool {
	return v.kind == exprValue && len(v.expr.Names()) > 0
}

// FreeNames returns the free parameters this value depends upon.
func (v Value) FreeNames() []string {
	if v.kind == exprValue {
		return v.expr.Names()
	}
	//
	return nil
}

func (v Value) String() string {
	switch v.kind {
	case numberValue:
		return strconv.FormatFloat(v.number, 'g', -1, 64)
	case flagValue:
		return strconv.FormatBool(v.flag)
	case textValue:
		return v.text
	default:
		return v.expr.String()
	}
}
