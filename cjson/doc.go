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

// Package cjson reads and writes molecular geometries in the chemical-JSON
// format spoken by Avogadro and similar consumers. Only the parts of the
// format this library needs are interpreted (coordinates, elements, charge
// and spin multiplicity); everything else in a parsed document is carried
// through untouched on reserialization, so a consumer's bonds or computed
// properties are not clobbered.
package cjson
