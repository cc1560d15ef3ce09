/*
 * parse_test.go, part of goxtb.
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

package calc

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func writeFixture(Te *testing.T, name, content string) string {
	path := filepath.Join(Te.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		Te.Fatal(err)
	}
	return path
}

const energyOutput = `      ...
          :: total energy             -5.070544323569 Eh    ::
          :: gradient norm             0.000458233859 Eh/a0 ::
      ...
           -------------------------------------------------
          | TOTAL ENERGY               -5.070544323569 Eh   |
          | GRADIENT NORM               0.000458233859 Eh/α |
           -------------------------------------------------
`

func TestParseEnergy(Te *testing.T) {
	path := writeFixture(Te, "output.out", energyOutput)
	e, found, err := parseEnergy(path)
	if err != nil {
		Te.Fatal(err)
	}
	if !found {
		Te.Fatal("energy line not found")
	}
	if math.Abs(e-(-5.070544323569)) > 1e-12 {
		Te.Errorf("wrong energy: %v", e)
	}
}

func TestParseEnergyAbsent(Te *testing.T) {
	path := writeFixture(Te, "output.out", "no energy in here\n")
	_, found, err := parseEnergy(path)
	if err != nil {
		Te.Fatal(err)
	}
	if found {
		Te.Error("found an energy where there is none")
	}
}

//A trimmed g98.out for a bent triatomic with an imaginary lowest mode, in
//the Gaussian 98 layout xtb writes: blocks of up to three modes, each with
//its property rows and per-atom displacement columns.
const g98Output = ` Entering Gaussian System
 ...
 Frequencies, reduced masses (AMU), force constants (mDyne/A) and normal coordinates:
                     1                      2                      3
                     a                      a                      a
 Frequencies --  -816.7912                70.0622              1538.7340
 Red. masses --    12.1423                 1.0936                 2.1459
 Frc consts  --     0.0000                 0.0000                 0.0000
 IR Inten    --    82.3361                 5.1014               161.1644
 Raman Activ --     0.0000                 0.0000                 0.0000
 Depolar     --     0.0000                 0.0000                 0.0000
 Atom AN      X      Y      Z        X      Y      Z        X      Y      Z
   1   8     0.00   0.00   0.07     0.00   0.00   0.05    -0.04   0.00   0.00
   2   1     0.43  -0.32  -0.55     0.01   0.58  -0.38     0.58   0.31   0.00
   3   1    -0.43   0.32  -0.55    -0.01  -0.58  -0.38     0.58  -0.31   0.00
                     4
                     a
 Frequencies --  3653.9382
 Red. masses --     1.0491
 Frc consts  --     0.0000
 IR Inten    --     7.5866
 Raman Activ --     0.0000
 Depolar     --     0.0000
 Atom AN      X      Y      Z
   1   8     0.00   0.05   0.00
   2   1     0.58  -0.40   0.00
   3   1    -0.58  -0.40   0.00
 Normal termination of Gaussian 98.
`

func TestParseG98Frequencies(Te *testing.T) {
	path := writeFixture(Te, "g98.out", g98Output)
	freqs, err := parseG98Frequencies(path)
	if err != nil {
		Te.Fatal(err)
	}
	if len(freqs) != 4 {
		Te.Fatalf("expected 4 modes, got %d", len(freqs))
	}
	if freqs[0].Mode != 1 || freqs[0].Wavenumber != -816.7912 {
		Te.Errorf("imaginary mode mangled: %+v", freqs[0])
	}
	if freqs[1].Wavenumber != 70.0622 {
		Te.Errorf("wrong second mode: %+v", freqs[1])
	}
	if freqs[3].Mode != 4 || freqs[3].Wavenumber != 3653.9382 {
		Te.Errorf("single-column block mangled: %+v", freqs[3])
	}
	for i, f := range freqs {
		if f.Mode != i+1 {
			Te.Fatalf("modes out of order at %d: %+v", i, f)
		}
		if f.Symmetry != "a" {
			Te.Errorf("mode %d symmetry: %q", f.Mode, f.Symmetry)
		}
		if len(f.Displacements) != 3 {
			Te.Fatalf("mode %d has %d displacement vectors, want 3", f.Mode, len(f.Displacements))
		}
		if f.Raman == nil {
			Te.Errorf("mode %d missing Raman activity", f.Mode)
		}
	}
	if freqs[0].ReducedMass != 12.1423 || freqs[0].IRIntensity != 82.3361 {
		Te.Errorf("mode 1 properties mangled: %+v", freqs[0])
	}
	//the second column of mode 2's second atom
	if v := freqs[1].Displacements[1]; v != [3]float64{0.01, 0.58, -0.38} {
		Te.Errorf("mode 2 displacements mangled: %v", v)
	}
}

func TestParseG98Truncated(Te *testing.T) {
	path := writeFixture(Te, "g98.out", "nothing useful\n")
	if _, err := parseG98Frequencies(path); err == nil {
		Te.Error("expected an error for a file with no frequency table")
	}
}

const orbitalsOutput = `
         * Orbital Energies and Occupations

         #    Occupation            Energy/Eh            Energy/eV
      -------------------------------------------------------------
         1        2.0000           -0.7817342             -21.2721
       ...           ...                  ...                  ...
         3        2.0000           -0.6135727             -16.6962
         4        2.0000           -0.5177364             -14.0883 (HOMO)
         5                         -0.2323396              -6.3223 (LUMO)
       ...                                ...                  ...
         8                          0.2115949               5.7578
      -------------------------------------------------------------
                  HL-Gap            0.2853968 Eh            7.7660 eV
`

func TestParseOrbitals(Te *testing.T) {
	path := writeFixture(Te, "output.out", orbitalsOutput)
	orbs, err := parseOrbitals(path)
	if err != nil {
		Te.Fatal(err)
	}
	if len(orbs) != 5 {
		Te.Fatalf("expected 5 orbitals, got %d", len(orbs))
	}
	if orbs[0].Number != 1 || orbs[0].Occupation != 2.0 || orbs[0].Energy != -0.7817342 {
		Te.Errorf("first orbital mangled: %+v", orbs[0])
	}
	homo := orbs[2]
	if homo.Number != 4 || !homo.HOMO || homo.EnergyEV != -14.0883 {
		Te.Errorf("HOMO mangled: %+v", homo)
	}
	lumo := orbs[3]
	if lumo.Number != 5 || !lumo.LUMO || lumo.Occupation != 0 || lumo.Energy != -0.2323396 {
		Te.Errorf("LUMO mangled: %+v", lumo)
	}
	if orbs[4].Number != 8 || orbs[4].Occupation != 0 {
		Te.Errorf("virtual orbital mangled: %+v", orbs[4])
	}
}

func TestParseOrbitalsAbsent(Te *testing.T) {
	path := writeFixture(Te, "output.out", energyOutput)
	orbs, err := parseOrbitals(path)
	if err != nil {
		Te.Fatal(err)
	}
	if orbs != nil {
		Te.Errorf("expected no orbitals, got %v", orbs)
	}
}

func TestParseCharges(Te *testing.T) {
	path := writeFixture(Te, "charges", " -0.5600965\n  0.2800482\n  0.2800483\n")
	charges, err := parseCharges(path)
	if err != nil {
		Te.Fatal(err)
	}
	if len(charges) != 3 || charges[0] != -0.5600965 {
		Te.Errorf("charges mangled: %v", charges)
	}
	path = writeFixture(Te, "badcharges", "0.1\nnot-a-number\n")
	if _, err = parseCharges(path); err == nil {
		Te.Error("expected an error for a malformed charges file")
	}
}
