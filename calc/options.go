/*
 * options.go, part of goxtb.
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
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

//OptLevels are the geometry convergence thresholds xtb and crest accept,
//from loosest to tightest.
var OptLevels = []string{"crude", "sloppy", "loose", "lax", "normal",
	"tight", "vtight", "extreme"}

func optLevelKeys() []interface{} {
	keys := make([]interface{}, len(OptLevels))
	for i, v := range OptLevels {
		keys[i] = v
	}
	return keys
}

//The implicit solvents both engines know, for the ALPB model.
var solvents = []string{
	"acetone", "acetonitrile", "aniline", "benzaldehyde", "benzene",
	"ch2cl2", "chcl3", "cs2", "dioxane", "dmf", "dmso", "ether",
	"ethylacetate", "furane", "hexadecane", "hexane", "methanol",
	"nitromethane", "octanol", "woctanol", "phenol", "toluene", "thf",
	"water",
}

func solventKeys() []interface{} {
	//"none" is not a solvent but it is a valid value: it forces gas phase
	//even when the settings name a default solvent
	keys := make([]interface{}, 0, len(solvents)+1)
	keys = append(keys, "none")
	for _, v := range solvents {
		keys = append(keys, v)
	}
	return keys
}

// Options collects the per-calculation knobs that turn into command-line
// flags. Typed fields cover the common cases; anything an engine accepts
// beyond them goes into Flags (validated against the engine's known flags)
// or, as a last resort, into Extra, which is passed through verbatim and
// never validated.
//
// Charge and Spin, when non-nil, override the values carried by the input
// geometry. Zero-valued fields are filled from the Settings defaults when
// the calculation is built.
type Options struct {
	Charge   *int
	Spin     *int //number of unpaired electrons, i.e. multiplicity-1
	Method   *int //GFN parametrization: 0, 1 or 2
	GFNFF    bool //use the force field instead of a GFN Hamiltonian
	Solvent  string //a solvent name, or "none" to force gas phase over the settings default
	NProc    int
	OptLevel string //convergence level for the opt-family runtypes
	EWin     float64 //conformer energy window in kcal/mol, crest only
	Flags    map[string]string //flag name -> value, "" for bare flags
	Extra    []string          //raw tokens appended after all flags
}

// Validate checks the option values against the closed sets the given
// program accepts. Unknown Flags entries yield an UnsupportedOptionError;
// Extra tokens are deliberately not inspected.
func (o *Options) Validate(p Program) error {
	err := validation.ValidateStruct(o,
		validation.Field(&o.Solvent, validation.In(solventKeys()...)),
		validation.Field(&o.NProc, validation.Min(0)),
		validation.Field(&o.OptLevel, validation.In(optLevelKeys()...)),
		validation.Field(&o.EWin, validation.Min(0.0)),
	)
	if err != nil {
		return err
	}
	if o.Method != nil && (*o.Method < 0 || *o.Method > 2) {
		return &UnsupportedOptionError{Option: "method", Program: p.Name}
	}
	if o.Spin != nil && *o.Spin < 0 {
		return &UnsupportedOptionError{Option: "uhf", Program: p.Name}
	}
	for flag := range o.Flags {
		if !p.supportsFlag(flag) {
			return &UnsupportedOptionError{Option: flag, Program: p.Name}
		}
	}
	return nil
}

//clone returns a copy that can be defaulted and augmented without the
//caller's Options ever observing the changes. A nil receiver clones to an
//all-defaults value.
func (o *Options) clone() *Options {
	if o == nil {
		return &Options{}
	}
	no := *o
	if o.Flags != nil {
		no.Flags = make(map[string]string, len(o.Flags))
		for k, v := range o.Flags {
			no.Flags[k] = v
		}
	}
	no.Extra = append([]string(nil), o.Extra...)
	return &no
}

// ApplyDefaults fills zero-valued fields from the settings, leaving
// explicit values untouched.
func (o *Options) ApplyDefaults(s *Settings) {
	if o.Method == nil && !o.GFNFF {
		m := s.Method
		o.Method = &m
	}
	if o.Solvent == "" {
		o.Solvent = s.Solvent
	}
	if o.NProc == 0 {
		o.NProc = s.NProc
	}
	if o.OptLevel == "" {
		o.OptLevel = s.OptLevel
	}
	if o.EWin == 0 {
		o.EWin = s.EWin
	}
}
