/*
 * program.go, part of goxtb.
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

import "fmt"

//The two supported engine variants.
const (
	XTB   = "xtb"
	CREST = "crest"
)

// Program is a named external engine plus the resolved path to its
// executable. This library never searches for binaries: path resolution
// (config overrides, managed binary directories, PATH) is the embedding
// application's business, and the path given here is used as is.
type Program struct {
	Name string //XTB or CREST
	Path string
}

// NewProgram builds a Program, checking that the name is one of the two
// supported engines. An empty path defaults to the bare program name, to be
// resolved through PATH by the operating system at launch time.
func NewProgram(name, path string) (Program, error) {
	if name != XTB && name != CREST {
		return Program{}, fmt.Errorf("NewProgram: unknown program %q, must be %q or %q", name, XTB, CREST)
	}
	if path == "" {
		path = name
	}
	return Program{Name: name, Path: path}, nil
}

//The run modes each engine accepts, as listed by its own --help. An empty
//runtype is always valid and means the engine's default (a single point for
//xtb, an iMTD-GC conformer search for crest).
var runtypes = map[string][]string{
	XTB: {
		"scc", "grad", "vip", "vea", "vipea", "vomega", "vfukui", "dipro",
		"esp", "stm", "opt", "metaopt", "path", "modef", "hess", "ohess",
		"metadyn", "siman",
	},
	CREST: {
		"sp", "opt", "ancopt", "v1", "v2", "v2i", "v3", "v4", "entropy",
		"protonate", "deprotonate", "tautomerize", "cregen", "qcg", "msreact",
	},
}

//Named option flags each engine accepts, beyond the ones the typed Options
//fields render. Anything else must go through the Options.Extra escape
//hatch.
var knownFlags = map[string]map[string]bool{
	XTB: {
		"chrg": true, "uhf": true, "gfn": true, "gfnff": true, "spinpol": true,
		"acc": true, "iterations": true, "cycles": true, "alpb": true,
		"gbsa": true, "input": true, "namespace": true, "molden": true,
		"pop": true, "dipole": true, "json": true, "copy": true,
		"norestart": true, "parallel": true, "restart": true, "vparam": true,
		"etemp": true,
	},
	CREST: {
		"chrg": true, "uhf": true, "gfn1": true, "gfn2": true, "gfnff": true,
		"alpb": true, "gbsa": true, "ewin": true, "rthr": true, "ethr": true,
		"bthr": true, "temp": true, "trange": true, "nsolv": true,
		"grow": true, "xnam": true, "optlev": true, "quick": true,
		"squick": true, "mquick": true, "prop": true, "cinp": true,
		"nocross": true, "tnmd": true, "mdlen": true, "nci": true,
	},
}

// SupportsRuntype reports whether the runtype is in the closed set the
// program variant accepts. The empty runtype (engine default) is always
// supported.
func (p Program) SupportsRuntype(runtype string) bool {
	if runtype == "" {
		return true
	}
	for _, rt := range runtypes[p.Name] {
		if rt == runtype {
			return true
		}
	}
	return false
}

func (p Program) supportsFlag(flag string) bool {
	return knownFlags[p.Name][flag]
}
