/*
 * geometry.go, part of goxtb.
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
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

package goxtb

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Atom is a chemical element at a position in 3D space. Coordinates are
// in Å. Atoms are plain values; equality is structural.
type Atom struct {
	Symbol  string
	X, Y, Z float64
}

// Geometry is an ordered set of atoms plus the net charge and the number of
// unpaired electrons of the system. The order of the atoms is chemically
// significant (connectivity is implied by it in the exchange formats) and is
// preserved by every operation in this library. A Geometry is immutable
// after construction: transformations return new values.
type Geometry struct {
	atoms   []Atom
	charge  int
	spin    int //number of unpaired electrons, not multiplicity
	comment string
}

// NewGeometry builds a Geometry from the given atoms, net charge and number
// of unpaired electrons. It returns an error if no atoms are given, if spin
// is negative, or if any element symbol is not in the supported range of the
// periodic table.
func NewGeometry(atoms []Atom, charge, spin int) (*Geometry, error) {
	errid := "NewGeometry"
	if len(atoms) == 0 {
		return nil, fmt.Errorf("%s: a geometry needs at least one atom", errid)
	}
	if spin < 0 {
		return nil, fmt.Errorf("%s: the number of unpaired electrons can't be negative: %d", errid, spin)
	}
	g := &Geometry{atoms: make([]Atom, len(atoms)), charge: charge, spin: spin}
	for i, a := range atoms {
		if _, ok := AtomicNumber(a.Symbol); !ok {
			return nil, formatErrorf("", 0, "unknown element symbol %q in atom %d", a.Symbol, i+1)
		}
		g.atoms[i] = a
	}
	return g, nil
}

// Len returns the number of atoms in the geometry.
func (g *Geometry) Len() int { return len(g.atoms) }

// Atom returns the (i+1)-th atom. Panics if out of range.
func (g *Geometry) Atom(i int) Atom { return g.atoms[i] }

// Atoms returns a copy of the atoms slice.
func (g *Geometry) Atoms() []Atom {
	ret := make([]Atom, len(g.atoms))
	copy(ret, g.atoms)
	return ret
}

// Charge returns the net charge.
func (g *Geometry) Charge() int { return g.charge }

// Spin returns the number of unpaired electrons. Note that this is the
// multiplicity minus one.
func (g *Geometry) Spin() int { return g.spin }

// Comment returns the free-text comment the geometry was read with, if any.
func (g *Geometry) Comment() string { return g.comment }

// WithChargeSpin returns a copy of the geometry with the given net charge
// and number of unpaired electrons. It is used to supply the information the
// XYZ format can't encode. Negative spin returns an error.
func (g *Geometry) WithChargeSpin(charge, spin int) (*Geometry, error) {
	if spin < 0 {
		return nil, fmt.Errorf("WithChargeSpin: the number of unpaired electrons can't be negative: %d", spin)
	}
	ng := *g
	ng.charge = charge
	ng.spin = spin
	return &ng, nil
}

// withComment returns a copy with the comment set. Unexported: the comment
// is an artifact of the exchange formats, not part of the chemical data.
func (g *Geometry) withComment(comment string) *Geometry {
	ng := *g
	ng.comment = comment
	return &ng
}

// Coords returns the Cartesian coordinates as a new dense len x 3 matrix,
// one row vector per atom, in Å.
func (g *Geometry) Coords() *mat.Dense {
	data := make([]float64, 0, 3*len(g.atoms))
	for _, a := range g.atoms {
		data = append(data, a.X, a.Y, a.Z)
	}
	return mat.NewDense(len(g.atoms), 3, data)
}

// Equal reports whether g and o have the same atoms, in the same order,
// with coordinates agreeing within epsilon, and the same charge and spin.
func (g *Geometry) Equal(o *Geometry, epsilon float64) bool {
	if o == nil || g.Len() != o.Len() || g.charge != o.charge || g.spin != o.spin {
		return false
	}
	abs := func(x float64) float64 {
		if x < 0 {
			return -x
		}
		return x
	}
	for i, a := range g.atoms {
		b := o.atoms[i]
		if a.Symbol != b.Symbol {
			return false
		}
		if abs(a.X-b.X) > epsilon || abs(a.Y-b.Y) > epsilon || abs(a.Z-b.Z) > epsilon {
			return false
		}
	}
	return true
}

// Conformer is a geometry tagged with an energy, the way multi-structure
// engine outputs report them. The energy unit is whatever the producing
// engine used (hartree for CREST ensemble files).
type Conformer struct {
	Geometry *Geometry
	Energy   float64
}

// Ensemble is an ordered set of conformers, conventionally sorted by
// ascending energy with the best (lowest-energy) structure first.
type Ensemble []Conformer

// NewEnsemble pairs each geometry with the energy encoded in its comment
// line, as CREST writes its multi-structure files. A comment that does not
// parse as a number yields a FormatError.
func NewEnsemble(geoms []*Geometry) (Ensemble, error) {
	if len(geoms) == 0 {
		return nil, fmt.Errorf("NewEnsemble: no geometries given")
	}
	ens := make(Ensemble, 0, len(geoms))
	for i, g := range geoms {
		var e float64
		if _, err := fmt.Sscanf(g.Comment(), "%f", &e); err != nil {
			return nil, formatErrorf("", 0, "structure %d: comment %q is not an energy", i+1, g.Comment())
		}
		ens = append(ens, Conformer{Geometry: g, Energy: e})
	}
	return ens, nil
}

// Best returns the lowest-energy member of the ensemble.
func (e Ensemble) Best() Conformer {
	best := e[0]
	for _, c := range e[1:] {
		if c.Energy < best.Energy {
			best = c
		}
	}
	return best
}

// Sorted reports whether the ensemble is ordered by non-decreasing energy.
func (e Ensemble) Sorted() bool {
	return sort.SliceIsSorted(e, func(i, j int) bool { return e[i].Energy < e[j].Energy })
}

// Sort returns a copy of the ensemble ordered by non-decreasing energy.
// The engines write their files already sorted, but we don't rely on that.
func (e Ensemble) Sort() Ensemble {
	ret := make(Ensemble, len(e))
	copy(ret, e)
	sort.SliceStable(ret, func(i, j int) bool { return ret[i].Energy < ret[j].Energy })
	return ret
}
