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
	"cmp"
	"errors"
	"maps"
	"slices"
)

// Setup is a store of noise parameters.  Each entry is either global, or local
// to a qubit or qubit pair, and resolution always prefers a local entry over a
// global one.  Entries may be expressions over free parameters, which are
// declared when the entry is set and must be bound before the entry can be
// resolved.
//
// A setup is mutated only while it is being configured.  Once configured, it
// can be shared (read-only) between any number of circuit builds; parameter
// sweeps should Clone() the setup for each point.
type Setup struct {
	// Name of this setup
	Name string
	// Description of this setup
	Description string
	// Unit for gate durations (optional)
	DurationUnit string
	// Unit for T1 and T2 (optional)
	TimeUnit string
	// Entries, indexed by scope then by parameter name
	entries map[Scope]map[string]Value
	// Free parameters, mapped to their binding (if bound).
	free map[string]*float64
	// Gate durations
	durations map[string]float64
}

// Entry is a single parameter entry of a setup.
type Entry struct {
	Scope     Scope
	Parameter string
	Value     Value
}

// NewSetup constructs an empty setup with a given name.
func NewSetup(name string) *Setup {
	return &Setup{
		Name:      name,
		entries:   make(map[Scope]map[string]Value),
		free:      make(map[string]*float64),
		durations: make(map[string]float64),
	}
}

// Set a parameter in a given scope.  This fails with a ConfigError if the
// parameter is not permitted in that scope (e.g. a single-qubit parameter on a
// qubit pair), or its value has the wrong type.  Free parameters used by the
// value are declared (unbound) if not already.
func (p *Setup) Set(scope Scope, parameter string, value Value) error {
	kind := KindOf(parameter)
	//
	if !kind.Permits(scope) {
		return NewConfigError(parameter, "cannot be set for %s", scope)
	} else if kind.Type == TEXTUAL && !value.IsText() {
		return NewConfigError(parameter, "expected text, found %q", value)
	} else if kind.Type != TEXTUAL && value.IsText() {
		return NewConfigError(parameter, "expected number, found %q", value)
	}
	//
	for _, name := range value.FreeNames() {
		if _, ok := p.free[name]; !ok {
			p.free[name] = nil
		}
	}
	//
	if _, ok := p.entries[scope]; !ok {
		p.entries[scope] = make(map[string]Value)
	}
	//
	p.entries[scope][parameter] = value
	//
	return nil
}

// Has checks whether a parameter can be found in a given scope, either
// locally or globally.
func (p *Setup) Has(scope Scope, parameter string) bool {
	_, ok := p.lookup(scope, parameter)
	return ok
}

// Resolve a parameter to a number in a given scope.  A local entry for the
// exact scope takes precedence over a global entry.  Flags resolve to 0 or 1.
// This fails with MissingParameterError if there is no entry, and with
// UnboundParameterError if the entry depends on an unbound free parameter.
func (p *Setup) Resolve(scope Scope, parameter string) (float64, error) {
	value, ok := p.lookup(scope, parameter)
	//
	if !ok {
		return 0, &MissingParameterError{parameter, scope}
	}
	//
	switch value.kind {
	case numberValue:
		return value.number, nil
	case flagValue:
		if value.flag {
			return 1, nil
		}
		//
		return 0, nil
	case textValue:
		return 0, NewConfigError(parameter, "expected number for %s, found %q", scope, value.text)
	}
	//
	result, err := value.expr.Eval(p.bindings())
	//
	var unbound *unboundError
	//
	if errors.As(err, &unbound) {
		return 0, &UnboundParameterError{parameter, scope, unbound.name}
	} else if err != nil {
		return 0, NewConfigError(parameter, "%s for %s (%s)", err.Error(), scope, value.expr)
	}
	//
	return result, nil
}

// ResolveFlag resolves a parameter to a boolean in a given scope.  Numeric
// entries are true when non-zero.
func (p *Setup) ResolveFlag(scope Scope, parameter string) (bool, error) {
	if value, ok := p.lookup(scope, parameter); ok && value.kind == flagValue {
		return value.flag, nil
	}
	//
	number, err := p.Resolve(scope, parameter)
	//
	return number != 0, err
}

// ResolveText resolves a textual parameter in a given scope.
func (p *Setup) ResolveText(scope Scope, parameter string) (string, error) {
	value, ok := p.lookup(scope, parameter)
	//
	if !ok {
		return "", &MissingParameterError{parameter, scope}
	} else if !value.IsText() {
		return "", NewConfigError(parameter, "expected text for %s, found %q", scope, value)
	}
	//
	return value.text, nil
}

// BindFreeParameter binds a free parameter to a value.  Binding a parameter
// to the value it already has does nothing, whilst binding it to a different
// value fails with RebindConflictError.  Binding a parameter which no entry
// uses fails with ConfigError.
func (p *Setup) BindFreeParameter(name string, value float64) error {
	binding, ok := p.free[name]
	//
	if !ok {
		return NewConfigError(name, "not a free parameter of setup %q", p.Name)
	} else if binding != nil && *binding != value {
		return &RebindConflictError{name, *binding, value}
	}
	//
	p.free[name] = &value
	//
	return nil
}

// OverrideFreeParameter binds a free parameter to a value, replacing any
// existing binding.
func (p *Setup) OverrideFreeParameter(name string, value float64) error {
	if _, ok := p.free[name]; !ok {
		return NewConfigError(name, "not a free parameter of setup %q", p.Name)
	}
	//
	p.free[name] = &value
	//
	return nil
}

// FreeParameters returns the names of all declared free parameters, in
// sorted order.
func (p *Setup) FreeParameters() []string {
	return slices.Sorted(maps.Keys(p.free))
}

// Binding returns the value a free parameter is bound to, if any.
func (p *Setup) Binding(name string) (float64, bool) {
	if binding := p.free[name]; binding != nil {
		return *binding, true
	}
	//
	return 0, false
}

// Uniform checks whether this setup has only global entries, in which case
// every qubit (and pair) resolves parameters identically.
func (p *Setup) Uniform() bool {
	for scope := range p.entries {
		if !scope.IsGlobal() {
			return false
		}
	}
	//
	return true
}

// SetGateDuration sets the duration of a given operation (e.g. "CZ").
func (p *Setup) SetGateDuration(op string, duration float64) error {
	if duration < 0 {
		return NewConfigError(op, "negative gate duration %g", duration)
	}
	//
	p.durations[op] = duration
	//
	return nil
}

// GateDuration returns the duration of a given operation, failing with
// MissingParameterError when no duration was declared.
func (p *Setup) GateDuration(op string) (float64, error) {
	if duration, ok := p.durations[op]; ok {
		return duration, nil
	}
	//
	return 0, &MissingParameterError{op + " duration", Global()}
}

// Entries returns all entries of this setup, ordered by scope (global first)
// then parameter name.
func (p *Setup) Entries() []Entry {
	var entries []Entry
	//
	for scope, params := range p.entries {
		for name, value := range params {
			entries = append(entries, Entry{scope, name, value})
		}
	}
	//
	slices.SortFunc(entries, func(a, b Entry) int {
		if c := cmp.Compare(a.Scope.kind, b.Scope.kind); c != 0 {
			return c
		} else if c := cmp.Compare(a.Scope.first, b.Scope.first); c != 0 {
			return c
		} else if c := cmp.Compare(a.Scope.second, b.Scope.second); c != 0 {
			return c
		}
		//
		return cmp.Compare(a.Parameter, b.Parameter)
	})
	//
	return entries
}

// Clone returns an independent copy of this setup, including its bindings.
func (p *Setup) Clone() *Setup {
	clone := *p
	clone.entries = make(map[Scope]map[string]Value, len(p.entries))
	clone.free = make(map[string]*float64, len(p.free))
	clone.durations = maps.Clone(p.durations)
	//
	for scope, params := range p.entries {
		clone.entries[scope] = maps.Clone(params)
	}
	//
	for name, binding := range p.free {
		if binding != nil {
			value := *binding
			clone.free[name] = &value
		} else {
			clone.free[name] = nil
		}
	}
	//
	return &clone
}

func (p *Setup) lookup(scope Scope, parameter string) (Value, bool) {
	if !scope.IsGlobal() {
		if value, ok := p.entries[scope][parameter]; ok {
			return value, true
		}
	}
	//
	value, ok := p.entries[Global()][parameter]
	//
	return value, ok
}

func (p *Setup) bindings() map[string]float64 {
	bindings := make(map[string]float64)
	//
	for name, binding := range p.free {
		if binding != nil {
			bindings[name] = *binding
		}
	}
	//
	return bindings
}
