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
	"io"
	"maps"
	"os"
	"slices"
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// configFile is the on-disk representation of a setup.  Entries are kept as
// raw nodes, since their shape (and the types of their values) depends upon
// the parameters they declare.
type configFile struct {
	Name          string             `yaml:"name"`
	Description   string             `yaml:"description,omitempty"`
	DurationUnit  string             `yaml:"duration_unit,omitempty"`
	TimeUnit      string             `yaml:"time_unit,omitempty"`
	GateDurations map[string]float64 `yaml:"gate_durations,omitempty"`
	Setup         []yaml.Node        `yaml:"setup"`
}

// Load reads a setup from a YAML file.
func Load(path string) (*Setup, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "loading setup %s", path)
	}
	//
	defer f.Close()
	//
	s, err := Read(f)
	//
	return s, errors.Wrapf(err, "loading setup %s", path)
}

// Read a setup from a YAML stream.  An entry holding a "qubit" key is local to
// that qubit, an entry holding a "qubits" key (a list of two labels) is local
// to that pair, and all other entries are global.  For example:
//
//	name: example
//	setup:
//	  - sq_error_prob: "{prob}"
//	    tq_error_prob: 0.01
//	  - qubit: D1
//	    sq_error_prob: 0.02
func Read(r io.Reader) (*Setup, error) {
	var file configFile
	//
	if err := yaml.NewDecoder(r).Decode(&file); err != nil && err != io.EOF {
		return nil, NewConfigError("", "%s", err.Error())
	}
	//
	if file.DurationUnit != "" && file.TimeUnit != "" && file.DurationUnit != file.TimeUnit {
		return nil, NewConfigError("", "duration_unit (%s) differs from time_unit (%s)", file.DurationUnit,
			file.TimeUnit)
	}
	//
	setup := NewSetup(file.Name)
	setup.Description = file.Description
	setup.DurationUnit = file.DurationUnit
	setup.TimeUnit = file.TimeUnit
	//
	for op, duration := range file.GateDurations {
		if err := setup.SetGateDuration(op, duration); err != nil {
			return nil, err
		}
	}
	//
	for i := range file.Setup {
		if err := readEntry(setup, i, &file.Setup[i]); err != nil {
			return nil, err
		}
	}
	//
	return setup, nil
}

func readEntry(setup *Setup, index int, node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return NewConfigError("", "setup entry %d is not a mapping", index)
	}
	// Determine scope first, since it can appear anywhere in the entry.
	scope := Global()
	//
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		//
		switch key.Value {
		case "qubit":
			if val.Kind != yaml.ScalarNode || !scope.IsGlobal() {
				return NewConfigError("qubit", "setup entry %d has malformed scope", index)
			}
			//
			scope = OnQubit(val.Value)
		case "qubits":
			if val.Kind != yaml.SequenceNode || len(val.Content) != 2 || !scope.IsGlobal() {
				return NewConfigError("qubits", "setup entry %d must name exactly two qubits", index)
			}
			//
			scope = OnPair(val.Content[0].Value, val.Content[1].Value)
		}
	}
	//
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		//
		if key.Value == "qubit" || key.Value == "qubits" {
			continue
		}
		//
		value, err := readValue(key.Value, index, val)
		if err != nil {
			return err
		} else if err = setup.Set(scope, key.Value, value); err != nil {
			return errors.Wrapf(err, "setup entry %d", index)
		}
	}
	//
	return nil
}

func readValue(parameter string, index int, node *yaml.Node) (Value, error) {
	if node.Kind != yaml.ScalarNode {
		return Value{}, NewConfigError(parameter, "setup entry %d has non-scalar value", index)
	}
	//
	switch node.ShortTag() {
	case "!!int", "!!float":
		var number float64
		if err := node.Decode(&number); err != nil {
			return Value{}, NewConfigError(parameter, "setup entry %d has invalid number %q", index, node.Value)
		}
		//
		return Number(number), nil
	case "!!bool":
		var flag bool
		if err := node.Decode(&flag); err != nil {
			return Value{}, NewConfigError(parameter, "setup entry %d has invalid flag %q", index, node.Value)
		}
		//
		return Flag(flag), nil
	case "!!str":
		if KindOf(parameter).Type == TEXTUAL {
			return Text(node.Value), nil
		}
		//
		value, err := Free(node.Value)
		if err != nil {
			return Value{}, errors.Wrapf(err, "setup entry %d", index)
		}
		//
		return value, nil
	}
	//
	return Value{}, NewConfigError(parameter, "setup entry %d has unsupported value %q", index, node.Value)
}

// Write this setup as YAML, such that reading it back yields an equivalent
// setup.  Entries are grouped by scope, with the global entry first.
func (p *Setup) Write(w io.Writer) error {
	var (
		root    yaml.Node
		entries yaml.Node
		current *yaml.Node
		scope   Scope
	)
	//
	root.Kind = yaml.MappingNode
	entries.Kind = yaml.SequenceNode
	//
	appendPair(&root, "name", scalar("!!str", p.Name))
	//
	if p.Description != "" {
		appendPair(&root, "description", scalar("!!str", p.Description))
	}
	//
	if p.DurationUnit != "" {
		appendPair(&root, "duration_unit", scalar("!!str", p.DurationUnit))
	}
	//
	if p.TimeUnit != "" {
		appendPair(&root, "time_unit", scalar("!!str", p.TimeUnit))
	}
	//
	if len(p.durations) > 0 {
		durations := &yaml.Node{Kind: yaml.MappingNode}
		//
		for _, op := range slices.Sorted(maps.Keys(p.durations)) {
			appendPair(durations, op, scalar("!!float", formatNumber(p.durations[op])))
		}
		//
		appendPair(&root, "gate_durations", durations)
	}
	//
	for _, e := range p.Entries() {
		if current == nil || e.Scope != scope {
			scope = e.Scope
			current = &yaml.Node{Kind: yaml.MappingNode}
			entries.Content = append(entries.Content, current)
			//
			if scope.IsQubit() {
				appendPair(current, "qubit", scalar("!!str", scope.first))
			} else if scope.IsPair() {
				pair := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
				pair.Content = []*yaml.Node{scalar("!!str", scope.first), scalar("!!str", scope.second)}
				appendPair(current, "qubits", pair)
			}
		}
		//
		appendPair(current, e.Parameter, valueNode(e.Value))
	}
	//
	appendPair(&root, "setup", &entries)
	//
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	//
	if err := enc.Encode(&root); err != nil {
		return errors.Wrap(err, "writing setup")
	}
	//
	return enc.Close()
}

func valueNode(v Value) *yaml.Node {
	switch v.kind {
	case numberValue:
		return scalar("!!float", formatNumber(v.number))
	case flagValue:
		return scalar("!!bool", strconv.FormatBool(v.flag))
	case textValue:
		return scalar("!!str", v.text)
	default:
		node := scalar("!!str", v.expr.String())
		node.Style = yaml.DoubleQuotedStyle
		//
		return node
	}
}

func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'g', -1, 64)
}

func scalar(tag string, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func appendPair(mapping *yaml.Node, key string, value *yaml.Node) {
	mapping.Content = append(mapping.Content, scalar("!!str", key), value)
}
