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
package assert

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

// Equal errors if actual is not equal to expected.  Integers of differing
// types are compared by value.
func Equal(t *testing.T, expected, actual any, msg ...any) {
	t.Helper()
	//
	if reflect.DeepEqual(expected, actual) || intEqual(expected, actual) {
		return
	}
	//
	t.Errorf("expected: %v, actual: %v", expected, actual)
	fail(t, msg)
}

// InDelta errors if actual differs from expected by more than delta.
func InDelta(t *testing.T, expected, actual, delta float64, msg ...any) {
	t.Helper()
	//
	if math.Abs(expected-actual) <= delta {
		return
	}
	//
	t.Errorf("expected: %g, actual: %g (delta %g)", expected, actual, delta)
	fail(t, msg)
}

// True errors if condition is false.
func True(t *testing.T, condition bool, msg ...any) {
	t.Helper()
	//
	if condition {
		return
	}
	//
	t.Errorf("condition is false")
	fail(t, msg)
}

// False errors if condition is true.
func False(t *testing.T, condition bool, msg ...any) {
	t.Helper()
	//
	if !condition {
		return
	}
	//
	t.Errorf("condition is true")
	fail(t, msg)
}

// NoError errors if err is not nil.
func NoError(t *testing.T, err error) {
	t.Helper()
	//
	if err != nil {
		t.Errorf("unexpected error: %v", err)
		t.FailNow()
	}
}

// Error errors if err is nil.
func Error(t *testing.T, err error) {
	t.Helper()
	//
	if err == nil {
		t.Errorf("expected error, got nil")
		t.FailNow()
	}
}

// ErrorAs errors unless err (or something it wraps) has the type of target,
// in which case target is assigned.  The target must be a non-nil pointer
// to an error type.
func ErrorAs(t *testing.T, err error, target any) {
	t.Helper()
	//
	if err == nil {
		t.Errorf("expected error of type %T, got nil", target)
		t.FailNow()
	} else if !errors.As(err, target) {
		t.Errorf("expected error of type %T, got %T (%v)", target, err, err)
		t.FailNow()
	}
}

func fail(t *testing.T, msg []any) {
	t.Helper()
	//
	if len(msg) != 0 {
		t.Errorf(msg[0].(string), msg[1:]...)
	}
	//
	t.FailNow()
}

// intEqual returns whether expected and actual are both integers and whether
// they are equal if that is the case.
func intEqual(expected, actual any) bool {
	a, aInt64 := asInt64(expected)
	b, bInt64 := asInt64(actual)
	//
	if aInt64 != bInt64 {
		return false
	} else if aInt64 {
		return a == b
	}
	//
	x, aUint64 := expected.(uint64)
	y, bUint64 := actual.(uint64)
	//
	return aUint64 && bUint64 && x == y
}

// asInt64 tries to convert x to an int64 and specifies if the conversion was
// successful.
func asInt64(x any) (int64, bool) {
	if y, ok := x.(uint64); ok && y > math.MaxInt64 {
		return 0, false
	}
	//
	switch x := x.(type) {
	case int:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case uint:
		return int64(x), true
	case uint32:
		return int64(x), true
	case uint64:
		return int64(x), true
	}
	//
	return 0, false
}
