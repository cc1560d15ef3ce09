/*
 * optfreq.go, part of goxtb.
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
	"log"
	"os"
	"path/filepath"

	chem "github.com/rmera/goxtb"
)

// OptFreqResult is what the iterative optimization-plus-frequencies search
// returns. Converged is false when the cycle bound was reached while the
// lowest mode was still imaginary; the geometry and frequencies of the last
// cycle are returned regardless, for the caller to judge.
type OptFreqResult struct {
	Geometry    *chem.Geometry
	Frequencies []Frequency
	Energy      float64
	Converged   bool
	Cycles      int
	Last        *Calculation //the final cycle, with its full result surface
}

// OptFreq optimizes the geometry and computes its vibrational frequencies,
// reoptimizing whenever the structure turns out to be a saddle point. When
// the lowest mode is imaginary and the engine wrote its distorted-geometry
// restart file (xtbhess.xyz), that structure seeds the next cycle. The
// number of reoptimizations is bounded by the settings' MaxReopt; hitting
// the bound is reported through the Converged flag, not as an error, since
// the partial result is still chemically meaningful.
func OptFreq(g *chem.Geometry, o *Options, s *Settings) (*OptFreqResult, error) {
	const errid = "OptFreq: "
	if s == nil {
		s = DefaultSettings()
	}
	input := g
	var c *Calculation
	var err error
	for cycle := 0; ; cycle++ {
		c, err = NewOptFreq(input, o, s)
		if err != nil {
			return nil, fmt.Errorf(errid+"%w", err)
		}
		if err = c.Run(); err != nil {
			return nil, fmt.Errorf(errid+"cycle %d: %w", cycle+1, err)
		}
		freqs, err := c.Frequencies()
		if err != nil {
			return nil, fmt.Errorf(errid+"cycle %d: %w", cycle+1, err)
		}
		result := &OptFreqResult{
			Frequencies: freqs,
			Cycles:      cycle + 1,
			Last:        c,
		}
		if geom, err := c.OutputGeometry(); err == nil {
			result.Geometry = geom
		} else {
			result.Geometry = input
		}
		if e, err := c.Energy(); err == nil {
			result.Energy = e
		}
		//the modes are ordered, so only the first can be the most negative
		if freqs[0].Wavenumber >= 0 {
			result.Converged = true
			return result, nil
		}
		//the restart geometry must be read now: the next cycle empties the
		//run directory before launching
		hessPath := filepath.Join(c.dir, "xtbhess.xyz")
		if _, err := os.Stat(hessPath); err != nil {
			//no distorted geometry to restart from, nothing more to try
			return result, nil
		}
		if cycle+1 > s.MaxReopt {
			log.Printf("goxtb: lowest mode still imaginary (%.2f cm**-1) after %d reoptimizations, giving up",
				freqs[0].Wavenumber, s.MaxReopt)
			return result, nil
		}
		distorted, err := chem.XYZRead(hessPath)
		if err != nil {
			return nil, fmt.Errorf(errid+"cycle %d: %w", cycle+1, err)
		}
		input, err = distorted.WithChargeSpin(g.Charge(), g.Spin())
		if err != nil {
			return nil, fmt.Errorf(errid+"cycle %d: %w", cycle+1, err)
		}
		log.Printf("goxtb: imaginary mode %.2f cm**-1, reoptimizing from distorted geometry (cycle %d)",
			freqs[0].Wavenumber, cycle+2)
	}
}
