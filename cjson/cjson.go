/*
 * cjson.go, part of goxtb.
 *
 *
 * Copyright 2024 Raul Mera <rmeraa{at}academicosdotutadotcl
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

package cjson

import (
	"encoding/json"
	"fmt"
	"strings"

	chem "github.com/rmera/goxtb"
)

//The format stores coordinates as a flat array strided by 3 and elements as
//atomic numbers strided by 1. Spin is stored as a multiplicity, i.e. the
//number of unpaired electrons plus one.

type atomsSection struct {
	Coords struct {
		ThreeD []float64 `json:"3d"`
	} `json:"coords"`
	Elements struct {
		Number []int `json:"number"`
	} `json:"elements"`
}

type propertiesSection struct {
	TotalCharge           *int `json:"totalCharge,omitempty"`
	TotalSpinMultiplicity *int `json:"totalSpinMultiplicity,omitempty"`
}

// Document is a parsed chemical-JSON document. The geometry-bearing fields
// are interpreted; all other top-level members are kept as raw JSON and
// written back verbatim by Marshal.
type Document struct {
	geometry *chem.Geometry
	extra    map[string]json.RawMessage //everything we don't interpret
	props    map[string]json.RawMessage //uninterpreted members of "properties"
}

// Parse decodes a chemical-JSON document. Charge and spin multiplicity are
// read from the properties section if present, and default to 0 and 1
// otherwise. Malformed documents yield a goxtb.FormatError where the
// structure is wrong chemically (mismatched strides, unknown element) and a
// plain error where the JSON itself does not decode.
func Parse(data []byte) (*Document, error) {
	errid := "cjson.Parse"
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	rawAtoms, ok := top["atoms"]
	if !ok {
		return nil, chem.NewFormatError("", 0, "document has no atoms section")
	}
	var atoms atomsSection
	if err := json.Unmarshal(rawAtoms, &atoms); err != nil {
		return nil, fmt.Errorf("%s: atoms section: %w", errid, err)
	}
	if len(atoms.Coords.ThreeD) != 3*len(atoms.Elements.Number) {
		return nil, chem.NewFormatError("", 0, fmt.Sprintf(
			"coordinate array has %d values for %d elements",
			len(atoms.Coords.ThreeD), len(atoms.Elements.Number)))
	}
	charge := 0
	spin := 0
	props := make(map[string]json.RawMessage)
	if rawProps, ok := top["properties"]; ok {
		var p propertiesSection
		if err := json.Unmarshal(rawProps, &p); err != nil {
			return nil, fmt.Errorf("%s: properties section: %w", errid, err)
		}
		if p.TotalCharge != nil {
			charge = *p.TotalCharge
		}
		if p.TotalSpinMultiplicity != nil {
			if *p.TotalSpinMultiplicity < 1 {
				return nil, chem.NewFormatError("", 0, fmt.Sprintf(
					"spin multiplicity must be at least 1, got %d", *p.TotalSpinMultiplicity))
			}
			spin = *p.TotalSpinMultiplicity - 1
		}
		if err := json.Unmarshal(rawProps, &props); err != nil {
			return nil, fmt.Errorf("%s: properties section: %w", errid, err)
		}
		delete(props, "totalCharge")
		delete(props, "totalSpinMultiplicity")
	}
	list := make([]chem.Atom, 0, len(atoms.Elements.Number))
	for i, z := range atoms.Elements.Number {
		symbol, ok := chem.ElementSymbol(z)
		if !ok {
			return nil, chem.NewFormatError("", 0, fmt.Sprintf("atomic number %d out of supported range", z))
		}
		list = append(list, chem.Atom{
			Symbol: symbol,
			X:      atoms.Coords.ThreeD[3*i],
			Y:      atoms.Coords.ThreeD[3*i+1],
			Z:      atoms.Coords.ThreeD[3*i+2],
		})
	}
	g, err := chem.NewGeometry(list, charge, spin)
	if err != nil {
		return nil, err
	}
	delete(top, "atoms")
	delete(top, "properties")
	return &Document{geometry: g, extra: top, props: props}, nil
}

// ParseGeometry is a shortcut for Parse when only the geometry is wanted.
func ParseGeometry(data []byte) (*chem.Geometry, error) {
	doc, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return doc.geometry, nil
}

// New wraps a geometry in a fresh Document with no extra content.
func New(g *chem.Geometry) *Document {
	return &Document{geometry: g}
}

// Geometry returns the geometry held by the document.
func (d *Document) Geometry() *chem.Geometry { return d.geometry }

// WithGeometry returns a copy of the document holding the given geometry,
// for returning results into a consumer's document without losing whatever
// else they stored in it.
func (d *Document) WithGeometry(g *chem.Geometry) *Document {
	return &Document{geometry: g, extra: d.extra, props: d.props}
}

// Marshal serializes the document. If indent is positive the output is
// pretty-printed with that many spaces per level, otherwise it is compact.
// Charge and spin multiplicity are always written, so they round-trip.
func (d *Document) Marshal(indent int) ([]byte, error) {
	errid := "cjson.Document.Marshal"
	g := d.geometry
	var atoms atomsSection
	atoms.Coords.ThreeD = make([]float64, 0, 3*g.Len())
	atoms.Elements.Number = make([]int, 0, g.Len())
	for _, a := range g.Atoms() {
		z, _ := chem.AtomicNumber(a.Symbol) //a Geometry only holds valid symbols
		atoms.Elements.Number = append(atoms.Elements.Number, z)
		atoms.Coords.ThreeD = append(atoms.Coords.ThreeD, a.X, a.Y, a.Z)
	}
	top := make(map[string]interface{}, len(d.extra)+3)
	for k, v := range d.extra {
		top[k] = v
	}
	if _, ok := top["chemicalJson"]; !ok {
		top["chemicalJson"] = 1
	}
	top["atoms"] = atoms
	props := make(map[string]interface{}, len(d.props)+2)
	for k, v := range d.props {
		props[k] = v
	}
	props["totalCharge"] = g.Charge()
	props["totalSpinMultiplicity"] = g.Spin() + 1
	top["properties"] = props
	var data []byte
	var err error
	if indent > 0 {
		data, err = json.MarshalIndent(top, "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(top)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errid, err)
	}
	return data, nil
}
