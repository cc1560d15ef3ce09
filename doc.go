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
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

// Package goxtb provides the molecular geometry model shared by the rest of
// the library: atoms, geometries, conformer ensembles and the XYZ exchange
// format used to talk to the xtb and CREST programs.
//
// The calc subpackage builds and runs the actual calculations, the cjson
// subpackage speaks the chemical-JSON format used by Avogadro-like consumers,
// and the spectra subpackage renders IR spectra from calculated frequencies.
//
// In order to do anything useful with this library you need the xtb and/or
// CREST programs, which must be obtained from Prof. Stefan Grimme's group.
// Please cite the xtb references if you use them.
package goxtb
