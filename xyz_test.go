/*
 * xyz_test.go, part of goxtb.
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

package goxtb

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
)

const waterXYZ = `3
water, gas phase
O         0.00000        0.00000        0.11779
H         0.00000        0.75545       -0.47116
H         0.00000       -0.75545       -0.47116
`

func TestXYZParse(Te *testing.T) {
	mol, err := XYZParse(waterXYZ)
	if err != nil {
		Te.Fatal(err)
	}
	if mol.Len() != 3 {
		Te.Errorf("expected 3 atoms, got %d", mol.Len())
	}
	if mol.Atom(0).Symbol != "O" || mol.Atom(1).Symbol != "H" {
		Te.Errorf("wrong symbols: %v", mol.Atoms())
	}
	if mol.Atom(1).Y != 0.75545 {
		Te.Errorf("wrong coordinate: %v", mol.Atom(1))
	}
	if mol.Charge() != 0 || mol.Spin() != 0 {
		Te.Errorf("charge/spin should default to 0/0, got %d/%d", mol.Charge(), mol.Spin())
	}
	if mol.Comment() != "water, gas phase" {
		Te.Errorf("comment not retained: %q", mol.Comment())
	}
}

func TestXYZRoundTrip(Te *testing.T) {
	mol, err := XYZParse(waterXYZ)
	if err != nil {
		Te.Fatal(err)
	}
	mol2, err := XYZParse(XYZString(mol, ""))
	if err != nil {
		Te.Fatal(err)
	}
	if !mol.Equal(mol2, 1e-6) {
		Te.Errorf("round trip changed the geometry:\n%s\n%s", XYZString(mol, ""), XYZString(mol2, ""))
	}
}

func TestXYZCountMismatch(Te *testing.T) {
	//every way the header can disagree with the data lines
	bad := []string{
		"4\ncomment\nO 0.0 0.0 0.0\nH 0.0 0.0 1.0\nH 0.0 1.0 0.0\n",  //too few lines
		"2\ncomment\nO 0.0 0.0 0.0\nH 0.0 0.0 1.0\nH 0.0 1.0 0.0\n",  //too many lines (single mode)
		"1\ncomment\nO 0.0 0.0 0.0\nnot-an-atom-count\n",             //trailing garbage
	}
	for i, text := range bad {
		_, err := XYZParse(text)
		if err == nil {
			Te.Errorf("case %d: expected an error, got none", i)
			continue
		}
		if _, ok := err.(FormatError); !ok {
			Te.Errorf("case %d: expected FormatError, got %T: %v", i, err, err)
		}
	}
}

func TestXYZBadContents(Te *testing.T) {
	if _, err := XYZParse("1\nc\nXx 0.0 0.0 0.0\n"); err == nil {
		Te.Error("unknown element symbol should not parse")
	}
	if _, err := XYZParse("1\nc\nO zero 0.0 0.0\n"); err == nil {
		Te.Error("non-numeric coordinate should not parse")
	}
}

func TestXYZParseMulti(Te *testing.T) {
	text := `3
-5.07054707
O  0.0 0.0 0.1
H  0.0 0.7 -0.4
H  0.0 -0.7 -0.4
3
-5.06823190
O  0.0 0.0 0.2
H  0.0 0.7 -0.5
H  0.0 -0.7 -0.5
`
	geoms, err := XYZParseMulti(text)
	if err != nil {
		Te.Fatal(err)
	}
	if len(geoms) != 2 {
		Te.Fatalf("expected 2 structures, got %d", len(geoms))
	}
	ens, err := NewEnsemble(geoms)
	if err != nil {
		Te.Fatal(err)
	}
	if !ens.Sorted() {
		Te.Error("ensemble should be sorted by energy")
	}
	if ens.Best().Energy != -5.07054707 {
		Te.Errorf("wrong best energy: %f", ens.Best().Energy)
	}
}

func TestXYZChargeOverride(Te *testing.T) {
	mol, err := XYZParse(waterXYZ)
	if err != nil {
		Te.Fatal(err)
	}
	anion, err := mol.WithChargeSpin(-1, 1)
	if err != nil {
		Te.Fatal(err)
	}
	if anion.Charge() != -1 || anion.Spin() != 1 {
		Te.Errorf("charge/spin override not applied: %d/%d", anion.Charge(), anion.Spin())
	}
	//the override survives reserialization of the coordinates
	again, err := XYZParse(XYZString(anion, ""))
	if err != nil {
		Te.Fatal(err)
	}
	if !anion.Equal(again.mustWithChargeSpin(-1, 1), 1e-6) {
		Te.Error("geometry changed through serialization")
	}
}

func (g *Geometry) mustWithChargeSpin(charge, spin int) *Geometry {
	ng, err := g.WithChargeSpin(charge, spin)
	if err != nil {
		panic(err)
	}
	return ng
}

func TestXYZGzip(Te *testing.T) {
	dir := Te.TempDir()
	name := filepath.Join(dir, "conformers.xyz.gz")
	f, err := os.Create(name)
	if err != nil {
		Te.Fatal(err)
	}
	w := gzip.NewWriter(f)
	if _, err := w.Write([]byte(waterXYZ + waterXYZ)); err != nil {
		Te.Fatal(err)
	}
	w.Close()
	f.Close()
	geoms, err := XYZReadMulti(name)
	if err != nil {
		Te.Fatal(err)
	}
	if len(geoms) != 2 {
		Te.Errorf("expected 2 structures from gzipped file, got %d", len(geoms))
	}
}

func TestXYZWrite(Te *testing.T) {
	mol, err := XYZParse(waterXYZ)
	if err != nil {
		Te.Fatal(err)
	}
	name := filepath.Join(Te.TempDir(), "out.xyz")
	if err := XYZWrite(name, mol, "rewritten"); err != nil {
		Te.Fatal(err)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		Te.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "3\nrewritten\n") {
		Te.Errorf("unexpected header: %q", string(data)[:20])
	}
}
