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
package layout

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type layoutFile struct {
	Name             string                   `yaml:"name"`
	Code             string                   `yaml:"code"`
	Description      string                   `yaml:"description"`
	Distance         uint                     `yaml:"distance,omitempty"`
	DistanceX        uint                     `yaml:"distance_x,omitempty"`
	DistanceZ        uint                     `yaml:"distance_z,omitempty"`
	InteractionOrder map[StabType][]Direction `yaml:"interaction_order,omitempty"`
	LogicalQubits    map[string]logicalFile   `yaml:"logical_qubits"`
	Layout           []qubitFile              `yaml:"layout"`
}

type logicalFile struct {
	LogX  []string `yaml:"log_x"`
	LogZ  []string `yaml:"log_z"`
	Index uint     `yaml:"ind"`
}

type qubitFile struct {
	Qubit     string                `yaml:"qubit"`
	Role      Role                  `yaml:"role"`
	Coords    []float64             `yaml:"coords,flow"`
	StabType  *StabType             `yaml:"stab_type"`
	Index     uint                  `yaml:"ind"`
	Neighbors map[Direction]*string `yaml:"neighbors"`
}

// Load reads a layout from a YAML file.
func Load(path string) (*Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "loading layout %s", path)
	}
	//
	defer f.Close()
	//
	l, err := Read(f)
	//
	return l, errors.Wrapf(err, "loading layout %s", path)
}

// Read a layout from a YAML stream.
func Read(r io.Reader) (*Layout, error) {
	var (
		file     layoutFile
		qubits   []Qubit
		logicals []Logical
	)
	// Unknown fields (e.g. frequency groups) are ignored
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, errors.Wrap(err, "decoding layout")
	}
	//
	for _, q := range file.Layout {
		qubit := Qubit{q.Qubit, q.Role, q.Coords, NO_STAB, q.Index, make(map[Direction]string)}
		//
		if q.StabType != nil {
			qubit.StabType = *q.StabType
		}
		//
		for dir, n := range q.Neighbors {
			if n != nil {
				qubit.Neighbors[dir] = *n
			}
		}
		//
		qubits = append(qubits, qubit)
	}
	//
	for label, lq := range file.LogicalQubits {
		logicals = append(logicals, Logical{label, lq.LogX, lq.LogZ, lq.Index})
	}
	//
	dx, dz := file.DistanceX, file.DistanceZ
	//
	if dx == 0 {
		dx = file.Distance
	}
	//
	if dz == 0 {
		dz = file.Distance
	}
	//
	return New(file.Name, file.Code, file.Description, dx, dz, file.InteractionOrder, logicals, qubits)
}

// Write this layout as YAML, such that reading it back yields an equivalent
// layout.  Missing neighbours are written as null.
func (l *Layout) Write(w io.Writer) error {
	file := layoutFile{
		Name:             l.name,
		Code:             l.code,
		Description:      l.description,
		DistanceX:        l.distanceX,
		DistanceZ:        l.distanceZ,
		InteractionOrder: l.order,
		LogicalQubits:    make(map[string]logicalFile),
	}
	//
	if l.distanceX == l.distanceZ {
		file.Distance = l.distanceX
	}
	//
	for _, lq := range l.logicals {
		file.LogicalQubits[lq.Label] = logicalFile{lq.LogX, lq.LogZ, lq.Index}
	}
	//
	for _, q := range l.qubits {
		entry := qubitFile{q.Label, q.Role, q.Coords, nil, q.Index, make(map[Direction]*string)}
		//
		if q.StabType != NO_STAB {
			stab := q.StabType
			entry.StabType = &stab
		}
		//
		for _, dir := range DIRECTIONS {
			if n, ok := q.Neighbors[dir]; ok && n != "" {
				entry.Neighbors[dir] = &n
			} else {
				entry.Neighbors[dir] = nil
			}
		}
		//
		file.Layout = append(file.Layout, entry)
	}
	//
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	//
	if err := enc.Encode(&file); err != nil {
		return errors.Wrap(err, "writing layout")
	}
	//
	return enc.Close()
}

// Save writes this layout to a YAML file.
func (l *Layout) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "saving layout %s", path)
	}
	//
	if err = l.Write(f); err != nil {
		f.Close()
		return err
	}
	//
	return f.Close()
}

// Merge combines the qubits of several layouts, failing if any labels or
// simulator indices clash.
func Merge(layouts ...*Layout) (map[string]uint, error) {
	var (
		inds  = make(map[string]uint)
		owner = make(map[uint]string)
	)
	//
	for _, l := range layouts {
		for _, q := range l.qubits {
			if _, ok := inds[q.Label]; ok {
				return nil, &InvalidLayoutError{l.name, "qubit " + q.Label + " appears in several layouts"}
			} else if other, ok := owner[q.Index]; ok {
				return nil, &InvalidLayoutError{l.name, "qubits " + other + " and " + q.Label + " share an index"}
			}
			//
			inds[q.Label] = q.Index
			owner[q.Index] = q.Label
		}
	}
	//
	return inds, nil
}
