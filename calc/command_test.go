/*
 * command_test.go, part of goxtb.
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
	"errors"
	"reflect"
	"strings"
	"testing"

	chem "github.com/rmera/goxtb"
)

func testGeometry(Te *testing.T) *chem.Geometry {
	g, err := chem.XYZParse("3\nwater\nO 0.0 0.0 0.117\nH 0.0 0.757 -0.467\nH 0.0 -0.757 -0.467\n")
	if err != nil {
		Te.Fatal(err)
	}
	return g
}

func TestBuildArgsXTB(Te *testing.T) {
	method := 2
	o := &Options{
		Method:  &method,
		Solvent: "water",
		NProc:   4,
		Flags:   map[string]string{"molden": "", "acc": "0.5"},
	}
	xtb := Program{Name: XTB, Path: "xtb"}
	args := BuildArgs(xtb, "opt", []string{"tight"}, o, 0, 0)
	want := []string{"-P", "4", "--opt", "tight", "--gfn", "2",
		"--alpb", "water", "--chrg", "0", "--uhf", "0",
		"--acc", "0.5", "--molden", "--", InputFileName}
	if !reflect.DeepEqual(args, want) {
		Te.Errorf("got  %v\nwant %v", args, want)
	}
}

func TestBuildArgsCREST(Te *testing.T) {
	method := 2
	o := &Options{
		Method: &method,
		NProc:  2,
		EWin:   6,
		Flags:  map[string]string{"xnam": "xtb"},
	}
	crest := Program{Name: CREST, Path: "crest"}
	args := BuildArgs(crest, "v3", nil, o, -1, 0)
	want := []string{"-T", "2", "--v3", "--gfn2", "--chrg", "-1",
		"--uhf", "0", "--ewin", "6", "--xnam", "xtb", "--", InputFileName}
	if !reflect.DeepEqual(args, want) {
		Te.Errorf("got  %v\nwant %v", args, want)
	}
}

func TestBuildArgsDeterminism(Te *testing.T) {
	//several map entries, so any iteration-order dependence would show up
	o := &Options{
		NProc: 4,
		Flags: map[string]string{"acc": "0.2", "molden": "", "etemp": "300",
			"iterations": "100", "pop": ""},
	}
	xtb := Program{Name: XTB, Path: "xtb"}
	first := BuildArgs(xtb, "hess", nil, o, 0, 1)
	for i := 0; i < 20; i++ {
		if again := BuildArgs(xtb, "hess", nil, o, 0, 1); !reflect.DeepEqual(first, again) {
			Te.Fatalf("argument sequence not deterministic:\n%v\n%v", first, again)
		}
	}
}

func TestUnsupportedOption(Te *testing.T) {
	o := &Options{Flags: map[string]string{"frobnicate": "1"}}
	xtb := Program{Name: XTB, Path: "xtb"}
	err := o.Validate(xtb)
	var uerr *UnsupportedOptionError
	if !errors.As(err, &uerr) {
		Te.Fatalf("expected UnsupportedOptionError, got %v", err)
	}
	if uerr.Option != "frobnicate" {
		Te.Errorf("wrong option reported: %q", uerr.Option)
	}
	//ewin is a crest flag, xtb must reject it
	o = &Options{Flags: map[string]string{"ewin": "4"}}
	if err = o.Validate(xtb); !errors.As(err, &uerr) {
		Te.Errorf("expected UnsupportedOptionError for ewin on xtb, got %v", err)
	}
	crest := Program{Name: CREST, Path: "crest"}
	if err = o.Validate(crest); err != nil {
		Te.Errorf("ewin should be accepted by crest: %v", err)
	}
}

func TestExtraEscapeHatch(Te *testing.T) {
	//Extra tokens bypass validation and land right before the separator
	o := &Options{Extra: []string{"--cma", "--vparam", "custom.txt"}}
	xtb := Program{Name: XTB, Path: "xtb"}
	if err := o.Validate(xtb); err != nil {
		Te.Fatal(err)
	}
	args := BuildArgs(xtb, "", nil, o, 0, 0)
	n := len(args)
	if args[n-2] != "--" || args[n-1] != InputFileName {
		Te.Fatalf("separator and input not at the end: %v", args)
	}
	if !reflect.DeepEqual(args[n-5:n-2], o.Extra) {
		Te.Errorf("extra tokens misplaced: %v", args)
	}
}

func TestSolventNone(Te *testing.T) {
	//"none" must validate and override a configured default back to gas
	//phase, so no --alpb token may appear
	g := testGeometry(Te)
	s := DefaultSettings()
	s.Solvent = "water"
	c, err := NewSinglePoint(g, &Options{Solvent: "none"}, s)
	if err != nil {
		Te.Fatal(err)
	}
	for _, tok := range c.Args() {
		if tok == "--alpb" {
			Te.Fatalf("gas phase was requested, but got: %v", c.Args())
		}
	}
	//and without the override the default does apply
	c, err = NewSinglePoint(g, nil, s)
	if err != nil {
		Te.Fatal(err)
	}
	if !strings.Contains(c.CommandLine(), "--alpb water") {
		Te.Errorf("configured solvent not applied: %s", c.CommandLine())
	}
}

func TestOptLevelOnDirectRuntype(Te *testing.T) {
	//the level reaches the command even without the NewOptimization
	//constructor, as the positional argument of the opt-family runtype
	g := testGeometry(Te)
	s := DefaultSettings()
	c, err := NewCalculation(s.XTB(), "opt", nil, g, &Options{OptLevel: "tight"}, s, "")
	if err != nil {
		Te.Fatal(err)
	}
	if !strings.Contains(c.CommandLine(), "--opt tight") {
		Te.Errorf("OptLevel ignored: %s", c.CommandLine())
	}
	//an explicit positional argument wins over the option
	c, err = NewCalculation(s.XTB(), "opt", []string{"crude"}, g, &Options{OptLevel: "tight"}, s, "")
	if err != nil {
		Te.Fatal(err)
	}
	if !strings.Contains(c.CommandLine(), "--opt crude") {
		Te.Errorf("explicit runtype argument overridden: %s", c.CommandLine())
	}
}

func TestUnsupportedRuntype(Te *testing.T) {
	g := testGeometry(Te)
	s := DefaultSettings()
	_, err := NewCalculation(s.XTB(), "tautomerize", nil, g, nil, s, "")
	var uerr *UnsupportedOptionError
	if !errors.As(err, &uerr) {
		Te.Fatalf("expected UnsupportedOptionError for crest runtype on xtb, got %v", err)
	}
}

func TestCommandLinePreview(Te *testing.T) {
	g := testGeometry(Te)
	s := DefaultSettings()
	s.NProc = 2
	c, err := NewOptimization(g, nil, s)
	if err != nil {
		Te.Fatal(err)
	}
	line := c.CommandLine()
	for _, want := range []string{"xtb", "--opt normal", "--chrg 0", "-- " + InputFileName} {
		if !strings.Contains(line, want) {
			Te.Errorf("command line %q missing %q", line, want)
		}
	}
	if c.Status() != Configured {
		Te.Errorf("previewing must not change the status, got %v", c.Status())
	}
}
