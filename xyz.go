/*
 * xyz.go, part of goxtb.
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

//The XYZ format: first line is the atom count, second a free-text comment,
//then one "symbol x y z" line per atom. Multi-structure files are just that
//block repeated. Charge and spin are not part of the format and default to
//0/0 on reading.

package goxtb

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// XYZParse parses a single-structure XYZ from text. Charge and spin of the
// returned geometry are 0; use WithChargeSpin to supply them. A mismatch
// between the declared atom count and the data lines, an unknown element,
// or a non-numeric coordinate yield a FormatError.
func XYZParse(text string) (*Geometry, error) {
	geoms, err := parseXYZBlocks(strings.NewReader(text), "", false)
	if err != nil {
		return nil, err
	}
	return geoms[0], nil
}

// XYZParseMulti parses a concatenation of XYZ blocks, one per structure,
// each self-delimited by its atom-count header. A single-structure file
// yields a one-element slice.
func XYZParseMulti(text string) ([]*Geometry, error) {
	return parseXYZBlocks(strings.NewReader(text), "", true)
}

// XYZRead reads a single-structure XYZ file. Files with a .gz suffix are
// decompressed transparently; CREST ensembles are often shipped that way.
func XYZRead(filename string) (*Geometry, error) {
	r, closer, err := openMaybeGzip(filename)
	if err != nil {
		return nil, err
	}
	defer closer()
	geoms, err := parseXYZBlocks(r, filename, false)
	if err != nil {
		return nil, err
	}
	return geoms[0], nil
}

// XYZReadMulti reads a possibly multi-structure XYZ file, transparently
// decompressing .gz files.
func XYZReadMulti(filename string) ([]*Geometry, error) {
	r, closer, err := openMaybeGzip(filename)
	if err != nil {
		return nil, err
	}
	defer closer()
	return parseXYZBlocks(r, filename, true)
}

// XYZString serializes the geometry as a single XYZ block. If comment is
// empty the geometry's own comment is used, falling back to a fixed tag, so
// serialization is deterministic.
func XYZString(g *Geometry, comment string) string {
	if comment == "" {
		comment = g.Comment()
	}
	if comment == "" {
		comment = "xyz prepared by goxtb"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d\n%s\n", g.Len(), comment)
	for _, a := range g.atoms {
		fmt.Fprintf(&b, "%-5s %14.5f %14.5f %14.5f\n", a.Symbol, a.X, a.Y, a.Z)
	}
	return b.String()
}

// XYZWrite writes the geometry to an XYZ file, overwriting it if present.
func XYZWrite(filename string, g *Geometry, comment string) error {
	errid := "XYZWrite"
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("%s: %w", errid, err)
	}
	defer f.Close()
	if _, err := f.WriteString(XYZString(g, comment)); err != nil {
		return fmt.Errorf("%s: %w", errid, err)
	}
	return nil
}

func openMaybeGzip(filename string) (io.Reader, func(), error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, nil, err
	}
	if !strings.HasSuffix(filename, ".gz") {
		return f, func() { f.Close() }, nil
	}
	gz, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("openMaybeGzip: %s: %w", filename, err)
	}
	return gz, func() { gz.Close(); f.Close() }, nil
}

//The actual parser. If multi is false, anything but blank lines after the
//first block is an error.
func parseXYZBlocks(r io.Reader, filename string, multi bool) ([]*Geometry, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024) //conformer files get big
	var geoms []*Geometry
	lineno := 0
	nextLine := func() (string, bool) {
		if !scanner.Scan() {
			return "", false
		}
		lineno++
		return scanner.Text(), true
	}
	for {
		//skip blank lines between blocks, stop cleanly on EOF
		var header string
		var ok bool
		for {
			header, ok = nextLine()
			if !ok {
				if err := scanner.Err(); err != nil {
					return nil, fmt.Errorf("parseXYZBlocks: %w", err)
				}
				if len(geoms) == 0 {
					return nil, formatErrorf(filename, lineno, "no atom-count header found")
				}
				return geoms, nil
			}
			if strings.TrimSpace(header) != "" {
				break
			}
		}
		if !multi && len(geoms) > 0 {
			return nil, formatErrorf(filename, lineno, "trailing content after a single-structure XYZ block: %q", header)
		}
		natoms, err := strconv.Atoi(strings.TrimSpace(header))
		if err != nil || natoms <= 0 {
			return nil, formatErrorf(filename, lineno, "expected an atom count, got %q", header)
		}
		comment, ok := nextLine()
		if !ok {
			return nil, formatErrorf(filename, lineno, "file ends before the comment line")
		}
		atoms := make([]Atom, 0, natoms)
		for i := 0; i < natoms; i++ {
			line, ok := nextLine()
			if !ok {
				return nil, formatErrorf(filename, lineno, "header declares %d atoms but only %d data lines follow", natoms, i)
			}
			fields := strings.Fields(line)
			if len(fields) < 4 {
				return nil, formatErrorf(filename, lineno, "atom line needs 4 fields, got %d: %q", len(fields), line)
			}
			a := Atom{Symbol: fields[0]}
			if _, ok := AtomicNumber(a.Symbol); !ok {
				return nil, formatErrorf(filename, lineno, "unknown element symbol %q", a.Symbol)
			}
			coords := [3]float64{}
			for j := 0; j < 3; j++ {
				coords[j], err = strconv.ParseFloat(fields[j+1], 64)
				if err != nil {
					return nil, formatErrorf(filename, lineno, "coordinate %q is not a number", fields[j+1])
				}
			}
			a.X, a.Y, a.Z = coords[0], coords[1], coords[2]
			atoms = append(atoms, a)
		}
		g, err := NewGeometry(atoms, 0, 0)
		if err != nil {
			return nil, err
		}
		geoms = append(geoms, g.withComment(strings.TrimSpace(comment)))
	}
}
