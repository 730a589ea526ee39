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
	"testing"

	"github.com/consensys/go-qec/pkg/util/assert"
)

var bindings = map[string]float64{"prob": 0.001, "bias": 10, "p": 0.5}

func Test_Expr_00(t *testing.T) {
	check_Expr(t, "1", 1)
	check_Expr(t, "0.25", 0.25)
	check_Expr(t, ".5", 0.5)
	check_Expr(t, "1e-3", 0.001)
	check_Expr(t, "2.5E2", 250)
}

func Test_Expr_01(t *testing.T) {
	check_Expr(t, "{prob}", 0.001)
	check_Expr(t, "prob", 0.001)
	check_Expr(t, "{prob} / 10", 0.0001)
	check_Expr(t, "{prob} * 5", 0.005)
	check_Expr(t, "{prob}*{bias}", 0.01)
}

func Test_Expr_02(t *testing.T) {
	check_Expr(t, "1 + 2 * 3", 7)
	check_Expr(t, "(1 + 2) * 3", 9)
	check_Expr(t, "10 - 4 - 3", 3)
	check_Expr(t, "8 / 4 / 2", 1)
	check_Expr(t, "-p + 1", 0.5)
	check_Expr(t, "--p", 0.5)
	check_Expr(t, "1 - -1", 2)
}

func Test_Expr_03(t *testing.T) {
	e, err := ParseExpr("{prob} + bias * {prob} + p")
	assert.NoError(t, err)
	assert.Equal(t, []string{"bias", "p", "prob"}, e.Names())
	assert.Equal(t, "{prob} + bias * {prob} + p", e.String())
}

func Test_Expr_04(t *testing.T) {
	check_InvalidExpr(t, "")
	check_InvalidExpr(t, "{prob")
	check_InvalidExpr(t, "{}")
	check_InvalidExpr(t, "{1}")
	check_InvalidExpr(t, "1 +")
	check_InvalidExpr(t, "(1 + 2")
	check_InvalidExpr(t, "1 2")
	check_InvalidExpr(t, "prob % 2")
	check_InvalidExpr(t, ".")
}

func Test_Expr_05(t *testing.T) {
	e, err := ParseExpr("{prob} * {missing}")
	assert.NoError(t, err)
	//
	_, err = e.Eval(bindings)
	//
	var unbound *unboundError
	//
	assert.ErrorAs(t, err, &unbound)
	assert.Equal(t, "missing", unbound.name)
	//
	e, err = ParseExpr("1 / (p - 0.5)")
	assert.NoError(t, err)
	//
	_, err = e.Eval(bindings)
	assert.Equal(t, errDivisionByZero, err)
}

func check_Expr(t *testing.T, text string, expected float64) {
	t.Helper()
	//
	e, err := ParseExpr(text)
	assert.NoError(t, err)
	//
	actual, err := e.Eval(bindings)
	assert.NoError(t, err)
	assert.InDelta(t, expected, actual, 1e-12, "evaluating %q", text)
}

func check_InvalidExpr(t *testing.T, text string) {
	t.Helper()
	//
	var cerr *ConfigError
	//
	_, err := ParseExpr(text)
	assert.ErrorAs(t, err, &cerr)
}
