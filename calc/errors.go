/*
 * errors.go, part of goxtb.
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

//All the error types here implement the goxtb.Error interface.

// UnsupportedOptionError reports an option name outside the closed set the
// target program understands. It is raised at build time, before any process
// is launched. The Options.Extra escape hatch is exempt from this check.
type UnsupportedOptionError struct {
	Option  string
	Program string
	deco    []string
}

func (err UnsupportedOptionError) Error() string {
	return fmt.Sprintf("calc: option %q is not recognized by %s; use Options.Extra to pass it unvalidated", err.Option, err.Program)
}

func (err UnsupportedOptionError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// ConcurrentRunError reports a second Run on a Calculation whose previous
// run has not finished. A Calculation runs at most one process at a time.
type ConcurrentRunError struct {
	Dir  string
	deco []string
}

func (err ConcurrentRunError) Error() string {
	return fmt.Sprintf("calc: a calculation is already running in %s", err.Dir)
}

func (err ConcurrentRunError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// LaunchError reports that the engine process could not be started at all,
// typically because the executable is missing or not executable. It is
// fatal: the Calculation transitions to Failed.
type LaunchError struct {
	Path string
	Err  error
	deco []string
}

func (err LaunchError) Error() string {
	return fmt.Sprintf("calc: couldn't launch %s: %v", err.Path, err.Err)
}

func (err LaunchError) Unwrap() error { return err.Err }

func (err LaunchError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// OutputParseError reports an output file that exists but is structurally
// malformed. A missing output file is never an error by itself; it just
// leaves the corresponding result field unpopulated, which the checked
// accessors report.
type OutputParseError struct {
	File    string
	Field   string //which result the file was being decoded into
	Message string
	deco    []string
}

func (err OutputParseError) Error() string {
	return fmt.Sprintf("calc: decoding %s from %s: %s", err.Field, err.File, err.Message)
}

func (err OutputParseError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}
