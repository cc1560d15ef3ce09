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

package goxtb

import "fmt"

// Error is the interface implemented by all errors produced in this library.
// The Decorate method allows adding and retrieving information from the error
// as it is passed up the stack, without changing its type or wrapping it
// around something else. If passed an empty string it just returns the
// current decoration slice.
type Error interface {
	Error() string
	Decorate(string) []string
}

// FormatError reports malformed input in one of the exchange formats
// (XYZ or chemical JSON). The zero value of line means the line is unknown
// or not applicable.
type FormatError struct {
	message  string
	filename string //empty if parsing from a string or reader
	line     int
	deco     []string
}

func (err FormatError) Error() string {
	if err.filename == "" && err.line == 0 {
		return fmt.Sprintf("goxtb/format: %s", err.message)
	}
	if err.filename == "" {
		return fmt.Sprintf("goxtb/format: line %d: %s", err.line, err.message)
	}
	return fmt.Sprintf("goxtb/format: %s, line %d: %s", err.filename, err.line, err.message)
}

func (err FormatError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// FileName returns the name of the offending file, or an empty string
// if the input did not come from a file.
func (err FormatError) FileName() string { return err.filename }

// Line returns the 1-based line number where parsing failed, or 0.
func (err FormatError) Line() int { return err.line }

// NewFormatError builds a FormatError for a problem found in the named file
// at the given line. Both filename and line may be zero-valued when unknown.
// It is exported for the subpackages that parse exchange formats of their own.
func NewFormatError(filename string, line int, message string) FormatError {
	return FormatError{message: message, filename: filename, line: line}
}

func formatErrorf(filename string, line int, format string, args ...interface{}) FormatError {
	return FormatError{message: fmt.Sprintf(format, args...), filename: filename, line: line}
}
