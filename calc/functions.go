/*
 * functions.go, part of goxtb.
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
	"fmt"

	chem "github.com/rmera/goxtb"
)

//The functions in this file are one-call wrappers: they build the
//calculation, run it to completion and hand back just the result a caller
//usually wants. For the full result surface (partial charges, exit codes,
//parse errors) build the Calculation through its constructor instead.

// Energy computes and returns the single-point energy of the geometry, in
// Hartree.
func Energy(g *chem.Geometry, o *Options, s *Settings) (float64, error) {
	c, err := NewSinglePoint(g, o, s)
	if err != nil {
		return 0, fmt.Errorf("Energy: %w", err)
	}
	if err = c.Run(); err != nil {
		return 0, fmt.Errorf("Energy: %w", err)
	}
	e, err := c.Energy()
	if err != nil {
		return 0, fmt.Errorf("Energy: %w", err)
	}
	return e, nil
}

// Optimize returns the geometry optimized to the requested convergence
// level.
func Optimize(g *chem.Geometry, o *Options, s *Settings) (*chem.Geometry, error) {
	c, err := NewOptimization(g, o, s)
	if err != nil {
		return nil, fmt.Errorf("Optimize: %w", err)
	}
	if err = c.Run(); err != nil {
		return nil, fmt.Errorf("Optimize: %w", err)
	}
	opt, err := c.OutputGeometry()
	if err != nil {
		return nil, fmt.Errorf("Optimize: %w", err)
	}
	return opt, nil
}

// Frequencies computes the vibrational modes of the geometry as given,
// without optimizing it first.
func Frequencies(g *chem.Geometry, o *Options, s *Settings) ([]Frequency, error) {
	c, err := NewFrequencies(g, o, s)
	if err != nil {
		return nil, fmt.Errorf("Frequencies: %w", err)
	}
	if err = c.Run(); err != nil {
		return nil, fmt.Errorf("Frequencies: %w", err)
	}
	freqs, err := c.Frequencies()
	if err != nil {
		return nil, fmt.Errorf("Frequencies: %w", err)
	}
	return freqs, nil
}

// Orbitals computes the molecular orbital table for the geometry.
func Orbitals(g *chem.Geometry, o *Options, s *Settings) ([]Orbital, error) {
	c, err := NewOrbitals(g, o, s)
	if err != nil {
		return nil, fmt.Errorf("Orbitals: %w", err)
	}
	if err = c.Run(); err != nil {
		return nil, fmt.Errorf("Orbitals: %w", err)
	}
	orbs, err := c.Orbitals()
	if err != nil {
		return nil, fmt.Errorf("Orbitals: %w", err)
	}
	return orbs, nil
}

// Molden computes the orbitals and returns the path of the written
// molden.input file, for visualization by external tools.
func Molden(g *chem.Geometry, o *Options, s *Settings) (string, error) {
	c, err := NewOrbitals(g, o, s)
	if err != nil {
		return "", fmt.Errorf("Molden: %w", err)
	}
	if err = c.Run(); err != nil {
		return "", fmt.Errorf("Molden: %w", err)
	}
	path, err := c.MoldenPath()
	if err != nil {
		return "", fmt.Errorf("Molden: %w", err)
	}
	return path, nil
}

// Conformers samples the conformational space of the geometry and returns
// the resulting ensemble, ordered by ascending energy.
func Conformers(g *chem.Geometry, o *Options, s *Settings) (chem.Ensemble, error) {
	c, err := NewConformerSearch(g, o, s)
	if err != nil {
		return nil, fmt.Errorf("Conformers: %w", err)
	}
	return runEnsemble(c, "Conformers")
}

// Tautomerize screens for tautomers of the geometry.
func Tautomerize(g *chem.Geometry, o *Options, s *Settings) (chem.Ensemble, error) {
	c, err := NewTautomerize(g, o, s)
	if err != nil {
		return nil, fmt.Errorf("Tautomerize: %w", err)
	}
	return runEnsemble(c, "Tautomerize")
}

// Protonate screens the protonation sites of the geometry. The returned
// structures carry a charge one higher than the input.
func Protonate(g *chem.Geometry, o *Options, s *Settings) (chem.Ensemble, error) {
	c, err := NewProtonate(g, o, s)
	if err != nil {
		return nil, fmt.Errorf("Protonate: %w", err)
	}
	return runEnsemble(c, "Protonate")
}

// Deprotonate screens the deprotonation sites of the geometry. The returned
// structures carry a charge one lower than the input.
func Deprotonate(g *chem.Geometry, o *Options, s *Settings) (chem.Ensemble, error) {
	c, err := NewDeprotonate(g, o, s)
	if err != nil {
		return nil, fmt.Errorf("Deprotonate: %w", err)
	}
	return runEnsemble(c, "Deprotonate")
}

// Solvate grows a cluster of nSolvent solvent molecules around the solute
// and returns the resulting cluster geometry.
func Solvate(solute, solvent *chem.Geometry, nSolvent int, o *Options, s *Settings) (*chem.Geometry, error) {
	c, err := NewSolvate(solute, solvent, nSolvent, o, s)
	if err != nil {
		return nil, fmt.Errorf("Solvate: %w", err)
	}
	if err = c.Run(); err != nil {
		return nil, fmt.Errorf("Solvate: %w", err)
	}
	cluster, err := c.OutputGeometry()
	if err != nil {
		return nil, fmt.Errorf("Solvate: %w", err)
	}
	return cluster, nil
}

func runEnsemble(c *Calculation, errid string) (chem.Ensemble, error) {
	if err := c.Run(); err != nil {
		return nil, fmt.Errorf(errid+": %w", err)
	}
	ensemble, err := c.Conformers()
	if err != nil {
		return nil, fmt.Errorf(errid+": %w", err)
	}
	return ensemble, nil
}
