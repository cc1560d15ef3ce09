/*
 * cjson_test.go, part of goxtb.
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
	"strings"
	"testing"

	chem "github.com/rmera/goxtb"
	"gonum.org/v1/gonum/floats"
)

const methanolCJSON = `{
  "chemicalJson": 1,
  "name": "methanol",
  "atoms": {
    "coords": {
      "3d": [-0.748, 0.015, 0.024, 0.558, 0.42, -0.278, -1.293, -0.202, -0.901, -1.263, 0.754, 0.6, -0.699, -0.934, 0.588, 0.716, 1.404, 0.137]
    },
    "elements": {
      "number": [6, 8, 1, 1, 1, 1]
    }
  },
  "bonds": {
    "connections": {"index": [0, 1, 0, 2, 0, 3, 0, 4, 1, 5]},
    "order": [1, 1, 1, 1, 1]
  },
  "properties": {
    "totalCharge": -1,
    "totalSpinMultiplicity": 2
  }
}`

func TestParse(Te *testing.T) {
	doc, err := Parse([]byte(methanolCJSON))
	if err != nil {
		Te.Fatal(err)
	}
	g := doc.Geometry()
	if g.Len() != 6 {
		Te.Fatalf("expected 6 atoms, got %d", g.Len())
	}
	if g.Atom(1).Symbol != "O" {
		Te.Errorf("wrong second atom: %v", g.Atom(1))
	}
	if g.Charge() != -1 {
		Te.Errorf("wrong charge: %d", g.Charge())
	}
	//multiplicity 2 means one unpaired electron
	if g.Spin() != 1 {
		Te.Errorf("wrong spin: %d", g.Spin())
	}
	if g.Atom(0).X != -0.748 || g.Atom(5).Z != 0.137 {
		Te.Errorf("coordinates misread: %v %v", g.Atom(0), g.Atom(5))
	}
}

func TestRoundTrip(Te *testing.T) {
	doc, err := Parse([]byte(methanolCJSON))
	if err != nil {
		Te.Fatal(err)
	}
	out, err := doc.Marshal(2)
	if err != nil {
		Te.Fatal(err)
	}
	doc2, err := Parse(out)
	if err != nil {
		Te.Fatal(err)
	}
	g, g2 := doc.Geometry(), doc2.Geometry()
	if g.Charge() != g2.Charge() || g.Spin() != g2.Spin() {
		Te.Errorf("charge/spin did not round-trip: %d/%d vs %d/%d",
			g.Charge(), g.Spin(), g2.Charge(), g2.Spin())
	}
	c1 := g.Coords().RawMatrix().Data
	c2 := g2.Coords().RawMatrix().Data
	if !floats.EqualApprox(c1, c2, 1e-10) {
		Te.Error("coordinates did not round-trip")
	}
	//bonds were not interpreted but must come through untouched
	var top map[string]json.RawMessage
	if err := json.Unmarshal(out, &top); err != nil {
		Te.Fatal(err)
	}
	if _, ok := top["bonds"]; !ok {
		Te.Error("bonds section was dropped on reserialization")
	}
	if !strings.Contains(string(out), "\n") {
		Te.Error("indented output requested but got a single line")
	}
}

func TestParseErrors(Te *testing.T) {
	stride := `{"atoms": {"coords": {"3d": [0.0, 0.0]}, "elements": {"number": [1]}}}`
	if _, err := Parse([]byte(stride)); err == nil {
		Te.Error("mismatched strides should not parse")
	} else if _, ok := err.(chem.FormatError); !ok {
		Te.Errorf("expected FormatError, got %T", err)
	}
	badz := `{"atoms": {"coords": {"3d": [0.0, 0.0, 0.0]}, "elements": {"number": [120]}}}`
	if _, err := Parse([]byte(badz)); err == nil {
		Te.Error("atomic number past Rn should not parse")
	}
}

func TestNewDocument(Te *testing.T) {
	g, err := chem.NewGeometry([]chem.Atom{{Symbol: "O"}, {Symbol: "H", X: 0.9}}, 0, 0)
	if err != nil {
		Te.Fatal(err)
	}
	out, err := New(g).Marshal(0)
	if err != nil {
		Te.Fatal(err)
	}
	g2, err := ParseGeometry(out)
	if err != nil {
		Te.Fatal(err)
	}
	if !g.Equal(g2, 1e-10) {
		Te.Error("fresh document did not round-trip")
	}
}
