/*
 * command.go, part of goxtb.
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
	"sort"
	"strconv"
	"strings"
)

//InputFileName is the fixed name the input geometry is written to inside
//the run directory, and the name the command references.
const InputFileName = "input.xyz"

// BuildArgs renders the full argument list for an invocation: global flags
// first, then the runtype flag and its positional arguments, then the
// remaining option flags, then any Extra tokens verbatim, then the "--"
// separator and the input file name. It performs no I/O and is
// deterministic: identical inputs always produce the identical token
// sequence. The executable path itself is not included.
//
// charge and spin are the values resolved for the run (geometry values,
// unless overridden by the Options); they are always rendered, except when
// the caller preempts them through Flags.
func BuildArgs(p Program, runtype string, runtypeArgs []string, o *Options, charge, spin int) []string {
	args := make([]string, 0, 16)
	//global flags
	if o.NProc > 0 {
		if p.Name == CREST {
			args = append(args, "-T", strconv.Itoa(o.NProc))
		} else {
			args = append(args, "-P", strconv.Itoa(o.NProc))
		}
	}
	//runtype
	if runtype != "" {
		args = append(args, "--"+runtype)
		args = append(args, runtypeArgs...)
	}
	//method flags differ between the engines: xtb takes the GFN level as a
	//flag argument, crest bakes it into the flag name itself.
	if o.GFNFF {
		args = append(args, "--gfnff")
	} else if o.Method != nil {
		if p.Name == CREST {
			args = append(args, fmt.Sprintf("--gfn%d", *o.Method))
		} else {
			args = append(args, "--gfn", strconv.Itoa(*o.Method))
		}
	}
	if o.Solvent != "" && o.Solvent != "none" {
		args = append(args, "--alpb", o.Solvent)
	}
	if _, ok := o.Flags["chrg"]; !ok {
		args = append(args, "--chrg", strconv.Itoa(charge))
	}
	if _, ok := o.Flags["uhf"]; !ok {
		args = append(args, "--uhf", strconv.Itoa(spin))
	}
	if p.Name == CREST && o.EWin > 0 {
		if _, ok := o.Flags["ewin"]; !ok {
			args = append(args, "--ewin", strconv.FormatFloat(o.EWin, 'g', -1, 64))
		}
	}
	//remaining named flags, in sorted order so the sequence is reproducible
	names := make([]string, 0, len(o.Flags))
	for name := range o.Flags {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		args = append(args, "--"+name)
		if v := o.Flags[name]; v != "" {
			args = append(args, v)
		}
	}
	args = append(args, o.Extra...)
	args = append(args, "--", InputFileName)
	return args
}

// CommandLine renders the invocation as a single shell-style string for
// previewing or logging, without running anything.
func CommandLine(p Program, runtype string, runtypeArgs []string, o *Options, charge, spin int) string {
	args := BuildArgs(p, runtype, runtypeArgs, o, charge, spin)
	return p.Path + " " + strings.Join(args, " ")
}
