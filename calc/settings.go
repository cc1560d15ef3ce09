/*
 * settings.go, part of goxtb.
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
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Settings holds the user-level defaults read from a configuration file:
// which binaries to use, where scratch calculations run, and the method,
// solvation and convergence defaults applied when an Options field is left
// at its zero value.
type Settings struct {
	XTBBin   string  `json:"xtb_bin,omitempty"`
	CRESTBin string  `json:"crest_bin,omitempty"`
	CalcsDir string  `json:"calcs_dir,omitempty"`
	Method   int     `json:"method"`
	Solvent  string  `json:"solvent,omitempty"`
	NProc    int     `json:"n_proc"`
	OptLevel string  `json:"opt_lvl"`
	EWin     float64 `json:"ewin"`
	MaxReopt int     `json:"max_reopt,omitempty"`
}

// DefaultSettings returns the defaults used when no configuration file is
// present: GFN2-xTB, normal optimization threshold, a 6 kcal/mol conformer
// energy window and half the logical CPUs.
func DefaultSettings() *Settings {
	nproc := runtime.NumCPU() / 2
	if nproc < 1 {
		nproc = 1
	}
	return &Settings{
		XTBBin:   "xtb",
		CRESTBin: "crest",
		CalcsDir: filepath.Join(os.TempDir(), "goxtb"),
		Method:   2,
		NProc:    nproc,
		OptLevel: "normal",
		EWin:     6.0,
		MaxReopt: 5,
	}
}

// ReadSettings decodes a JSON configuration file into a Settings value.
// Fields absent from the file keep the defaults, so a partial file overrides
// only what it names. The result is validated before being returned.
func ReadSettings(filename string) (*Settings, error) {
	const errid = "ReadSettings: "
	s := DefaultSettings()
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf(errid+"%w", err)
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err = dec.Decode(s); err != nil {
		return nil, fmt.Errorf(errid+"failed to decode %s: %w", filename, err)
	}
	if err = s.Validate(); err != nil {
		return nil, fmt.Errorf(errid+"invalid settings in %s: %w", filename, err)
	}
	return s, nil
}

// Validate checks the numeric ranges and the optimization level keyword.
func (s *Settings) Validate() error {
	return validation.ValidateStruct(s,
		validation.Field(&s.Method, validation.Min(0), validation.Max(2)),
		validation.Field(&s.NProc, validation.Required, validation.Min(1)),
		validation.Field(&s.OptLevel, validation.Required, validation.In(optLevelKeys()...)),
		validation.Field(&s.EWin, validation.Min(0.0)),
		validation.Field(&s.MaxReopt, validation.Min(0)),
	)
}

// XTB returns the xtb Program configured by these settings.
func (s *Settings) XTB() Program {
	return Program{Name: XTB, Path: s.XTBBin}
}

// CREST returns the crest Program configured by these settings.
func (s *Settings) CREST() Program {
	return Program{Name: CREST, Path: s.CRESTBin}
}
