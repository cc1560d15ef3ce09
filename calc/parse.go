/*
 * parse.go, part of goxtb.
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
	"bufio"
	"os"
	"strconv"
	"strings"
)

// Frequency is one vibrational mode from a frequencies calculation. A
// negative Wavenumber marks an imaginary mode, which is the signal the
// reoptimization logic acts on, so the sign is preserved exactly as
// printed. Raman is nil when the file carries no Raman activity column.
type Frequency struct {
	Mode          int //1-based
	Symmetry      string
	Wavenumber    float64 //cm**-1, negative for imaginary modes
	ReducedMass   float64 //AMU
	IRIntensity   float64 //km/mol
	Raman         *float64
	Displacements [][3]float64 //one xyz vector per atom
}

// Orbital is one row of the molecular orbital table xtb prints. Energies
// are given in both Hartree and eV, as printed. Virtual orbitals have zero
// occupation.
type Orbital struct {
	Number     int
	Occupation float64
	Energy     float64 //Hartree
	EnergyEV   float64
	HOMO       bool
	LUMO       bool
}

//readLines slurps a whole output file. These files are modest in size
//(a few MB at worst) so holding them in memory is fine.
func readLines(filename string) ([]string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 1024*64), 1024*1024*4)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}

//parseEnergy finds the last "TOTAL ENERGY" line in the captured stdout and
//returns the last parseable float on it. The second return is false when
//no such line exists, which is normal for runtypes that do not report a
//final energy.
func parseEnergy(filename string) (float64, bool, error) {
	lines, err := readLines(filename)
	if err != nil {
		return 0, false, err
	}
	last := ""
	for _, l := range lines {
		if strings.Contains(l, "TOTAL ENERGY") {
			last = l
		}
	}
	if last == "" {
		return 0, false, nil
	}
	energy := 0.0
	found := false
	for _, field := range strings.Fields(last) {
		if v, err := strconv.ParseFloat(field, 64); err == nil {
			energy = v
			found = true
		}
	}
	if !found {
		return 0, false, &OutputParseError{File: filename, Field: "energy",
			Message: "no numeric value on the TOTAL ENERGY line"}
	}
	return energy, true, nil
}

//parseG98Frequencies reads the Gaussian 98 style vibrational analysis file
//(g98.out) xtb writes after a hess or ohess run. Modes come in blocks of up
//to three columns; the per-atom displacement vectors follow each block.
func parseG98Frequencies(filename string) ([]Frequency, error) {
	perr := func(msg string) error {
		return &OutputParseError{File: filename, Field: "frequencies", Message: msg}
	}
	lines, err := readLines(filename)
	if err != nil {
		return nil, err
	}
	start := -1
	for i, l := range lines {
		if strings.Contains(l, "normal coordinates:") {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return nil, perr("no frequency table found")
	}
	var freqs []Frequency
	i := start
	for i < len(lines) {
		//skip anything that is not a mode-number header line
		modes, ok := intFields(lines[i])
		if !ok || len(modes) == 0 {
			i++
			continue
		}
		if i+7 >= len(lines) {
			return nil, perr("truncated frequency block")
		}
		symms := strings.Fields(lines[i+1])
		wavenumbers, err := rowValues(lines[i+2], "Frequencies", len(modes))
		if err != nil {
			return nil, perr(err.Error())
		}
		masses, err := rowValues(lines[i+3], "Red. masses", len(modes))
		if err != nil {
			return nil, perr(err.Error())
		}
		//force constants on lines[i+4] are not kept, xtb writes zeroes
		intens, err := rowValues(lines[i+5], "IR Inten", len(modes))
		if err != nil {
			return nil, perr(err.Error())
		}
		var raman []float64
		next := i + 6
		if strings.Contains(lines[next], "Raman Activ") {
			raman, err = rowValues(lines[next], "Raman Activ", len(modes))
			if err != nil {
				return nil, perr(err.Error())
			}
			next++
		}
		if next < len(lines) && strings.Contains(lines[next], "Depolar") {
			next++
		}
		//the "Atom AN  X Y Z ..." header
		if next < len(lines) && strings.Contains(lines[next], "Atom") {
			next++
		}
		displacements := make([][][3]float64, len(modes))
		for next < len(lines) {
			fields := strings.Fields(lines[next])
			if len(fields) != 2+3*len(modes) {
				break
			}
			vals, ok := floatFields(fields[2:])
			if !ok {
				break
			}
			for m := 0; m < len(modes); m++ {
				displacements[m] = append(displacements[m],
					[3]float64{vals[3*m], vals[3*m+1], vals[3*m+2]})
			}
			next++
		}
		for m, mode := range modes {
			f := Frequency{
				Mode:          mode,
				Wavenumber:    wavenumbers[m],
				ReducedMass:   masses[m],
				IRIntensity:   intens[m],
				Displacements: displacements[m],
			}
			if m < len(symms) {
				f.Symmetry = symms[m]
			}
			if raman != nil {
				r := raman[m]
				f.Raman = &r
			}
			freqs = append(freqs, f)
		}
		i = next
	}
	if len(freqs) == 0 {
		return nil, perr("frequency table contained no modes")
	}
	return freqs, nil
}

//rowValues extracts the numeric columns of a "Label --  v1 v2 v3" row.
func rowValues(line, label string, want int) ([]float64, error) {
	if !strings.Contains(line, label) {
		return nil, &rowError{label: label}
	}
	parts := strings.SplitN(line, "--", 2)
	if len(parts) != 2 {
		return nil, &rowError{label: label}
	}
	vals, ok := floatFields(strings.Fields(parts[1]))
	if !ok || len(vals) < want {
		return nil, &rowError{label: label}
	}
	return vals[:want], nil
}

type rowError struct{ label string }

func (e *rowError) Error() string {
	return "malformed " + e.label + " row"
}

func intFields(line string) ([]int, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 || len(fields) > 3 {
		return nil, false
	}
	ints := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, false
		}
		ints[i] = v
	}
	return ints, true
}

func floatFields(fields []string) ([]float64, bool) {
	vals := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, false
		}
		vals[i] = v
	}
	return vals, true
}

//parseOrbitals reads the last "Orbital Energies and Occupations" table in
//the captured stdout. Rows elided by xtb ("...") are skipped; virtual
//orbitals, printed without an occupation column, get occupation zero.
//Absence of the table is not an error, as not all runtypes print it.
func parseOrbitals(filename string) ([]Orbital, error) {
	perr := func(msg string) error {
		return &OutputParseError{File: filename, Field: "orbitals", Message: msg}
	}
	lines, err := readLines(filename)
	if err != nil {
		return nil, err
	}
	start := -1
	for i, l := range lines {
		if strings.Contains(l, "Orbital Energies and Occupations") {
			start = i
		}
	}
	if start < 0 {
		return nil, nil
	}
	var orbitals []Orbital
	dashes := 0
	for i := start + 1; i < len(lines); i++ {
		l := strings.TrimSpace(lines[i])
		if strings.HasPrefix(l, "---") {
			dashes++
			if dashes == 2 {
				break
			}
			continue
		}
		fields := strings.Fields(l)
		if len(fields) == 0 || fields[0] == "..." || fields[0] == "#" {
			continue
		}
		number, err := strconv.Atoi(fields[0])
		if err != nil {
			continue
		}
		orb := Orbital{Number: number}
		marker := ""
		if last := fields[len(fields)-1]; strings.HasPrefix(last, "(") {
			marker = last
			fields = fields[:len(fields)-1]
		}
		vals, ok := floatFields(fields[1:])
		if !ok {
			return nil, perr("malformed orbital row: " + l)
		}
		switch len(vals) {
		case 3:
			orb.Occupation, orb.Energy, orb.EnergyEV = vals[0], vals[1], vals[2]
		case 2:
			orb.Energy, orb.EnergyEV = vals[0], vals[1]
		default:
			return nil, perr("malformed orbital row: " + l)
		}
		orb.HOMO = strings.Contains(marker, "HOMO")
		orb.LUMO = strings.Contains(marker, "LUMO")
		orbitals = append(orbitals, orb)
	}
	if len(orbitals) == 0 {
		return nil, perr("orbital table contained no rows")
	}
	return orbitals, nil
}

//parseCharges reads the plain "charges" file xtb writes, one Mulliken
//partial charge per line, in atom order.
func parseCharges(filename string) ([]float64, error) {
	lines, err := readLines(filename)
	if err != nil {
		return nil, err
	}
	var charges []float64
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		v, err := strconv.ParseFloat(l, 64)
		if err != nil {
			return nil, &OutputParseError{File: filename, Field: "charges",
				Message: "non-numeric line: " + l}
		}
		charges = append(charges, v)
	}
	return charges, nil
}
