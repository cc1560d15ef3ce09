/*
 * ir.go, part of goxtb.
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

//Package spectra renders spectra from calculation results. For now that
//means IR spectra from a vibrational frequency table: a stick spectrum of
//the mode intensities plus a Lorentzian-broadened envelope.
package spectra

import (
	"fmt"

	"github.com/rmera/goxtb/calc"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

//DefaultFWHM is the default full width at half maximum for the Lorentzian
//broadening, in cm**-1.
const DefaultFWHM = 30.0

const envelopePoints = 2000

//realModes filters out imaginary modes, which have no place in a spectrum
//of an actual minimum.
func realModes(freqs []calc.Frequency) []calc.Frequency {
	kept := make([]calc.Frequency, 0, len(freqs))
	for _, f := range freqs {
		if f.Wavenumber >= 0 {
			kept = append(kept, f)
		}
	}
	return kept
}

// Envelope evaluates the Lorentzian-broadened IR envelope of the given
// modes on a regular grid of points from zero to a bit past the highest
// frequency. Imaginary modes are excluded. fwhm is the full width at half
// maximum in cm**-1; zero or negative means DefaultFWHM.
func Envelope(freqs []calc.Frequency, fwhm float64, points int) (x, y []float64, err error) {
	const errid = "Envelope: "
	modes := realModes(freqs)
	if len(modes) == 0 {
		return nil, nil, fmt.Errorf(errid + "no real modes to broaden")
	}
	if fwhm <= 0 {
		fwhm = DefaultFWHM
	}
	if points <= 1 {
		points = envelopePoints
	}
	max := 0.0
	for _, m := range modes {
		if m.Wavenumber > max {
			max = m.Wavenumber
		}
	}
	x = floats.Span(make([]float64, points), 0, max+4*fwhm)
	y = make([]float64, points)
	gamma := fwhm / 2
	for _, m := range modes {
		for i, xi := range x {
			d := xi - m.Wavenumber
			y[i] += m.IRIntensity * gamma * gamma / (d*d + gamma*gamma)
		}
	}
	return x, y, nil
}

// PlotIR renders the modes as an IR spectrum and saves it to filename, the
// format given by the extension (png, svg, pdf...). The plot follows the
// spectroscopic convention: wavenumber decreasing left to right,
// transmittance-style inverted intensity axis. fwhm as in Envelope.
func PlotIR(freqs []calc.Frequency, fwhm float64, filename string) error {
	const errid = "PlotIR: "
	x, y, err := Envelope(freqs, fwhm, envelopePoints)
	if err != nil {
		return fmt.Errorf(errid+"%w", err)
	}
	p := plot.New()
	p.Title.Text = "IR spectrum"
	p.Title.Padding = 3 * vg.Millimeter
	p.X.Label.Text = "wavenumber (cm**-1)"
	p.Y.Label.Text = "intensity (km/mol)"
	p.Add(plotter.NewGrid())
	//sticks first, so the envelope draws on top of them
	for _, m := range realModes(freqs) {
		stick := plotter.XYs{{X: m.Wavenumber, Y: 0}, {X: m.Wavenumber, Y: m.IRIntensity}}
		l, err := plotter.NewLine(stick)
		if err != nil {
			return fmt.Errorf(errid+"%w", err)
		}
		l.Width = vg.Points(0.5)
		p.Add(l)
	}
	env := make(plotter.XYs, len(x))
	for i := range x {
		env[i] = plotter.XY{X: x[i], Y: y[i]}
	}
	l, err := plotter.NewLine(env)
	if err != nil {
		return fmt.Errorf(errid+"%w", err)
	}
	l.Width = vg.Points(1.5)
	p.Add(l)
	//spectroscopists read spectra right to left
	p.X.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}
	if err := p.Save(20*vg.Centimeter, 12*vg.Centimeter, filename); err != nil {
		return fmt.Errorf(errid+"%w", err)
	}
	return nil
}
