/*
 * doc.go, part of goxtb.
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

// Package calc builds, runs and interprets calculations with the xtb and
// CREST semi-empirical quantum chemistry programs.
//
// The Calculation type owns one invocation of one of the programs: it
// renders the command line from a typed option model, runs the engine in a
// dedicated directory seeded with the input geometry, and decodes whatever
// output files the run produced into energies, geometries, frequency tables,
// orbital tables and conformer ensembles. Runtype constructors
// (NewOptimization, NewConformerSearch, ...) preconfigure a Calculation for
// each supported kind of run, and a function API (Energy, Optimize,
// Conformers, ...) wraps the whole construct-run-extract cycle for callers
// that only want the headline result.
//
// These calculations can legitimately run for hours. Run blocks the calling
// goroutine without any implicit timeout; embedders that need a deadline
// should run the calculation off their main goroutine and use Kill, which
// terminates the whole process group of the engine.
package calc
