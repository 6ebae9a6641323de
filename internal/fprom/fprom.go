/*
 * p2patch - FPROM constant lookup table
 *
 * Copyright 2026, p2patch contributors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package fprom models the 512-entry floating point constant ROM that the
// cipher and integrity check words are keyed off of. Unlike the original C
// implementation, which reserved the value 0x13371337 as a sentinel for "not
// present", this table tracks presence explicitly so that any 32-bit value
// is a legitimate entry.
package fprom

// Size is the number of addressable FPROM entries.
const Size = 512

// indexMask truncates an address to the low 9 bits, per spec: all FPROM
// lookups use only the low 9 bits of the index.
const indexMask = Size - 1

// Table is a sparse 512-entry table of 32-bit constants.
type Table struct {
	present [Size]bool
	values  [Size]uint32
}

// New returns the table shipped with this program, built from the known
// subset of FPROM entries in data.go.
func New() *Table {
	return FromMap(defaultEntries)
}

// FromMap builds a table from an explicit address/value set. Addresses are
// masked to 9 bits, same as Set.
func FromMap(entries map[uint32]uint32) *Table {
	t := &Table{}
	for addr, value := range entries {
		t.Set(addr, value)
	}
	return t
}

// Set marks addr present with the given value.
func (t *Table) Set(addr, value uint32) {
	t.present[addr&indexMask] = true
	t.values[addr&indexMask] = value
}

// Exists reports whether entry addr&0x1FF is present.
func (t *Table) Exists(addr uint32) bool {
	return t.present[addr&indexMask]
}

// Get returns the value at addr&0x1FF. The caller must have already checked
// Exists; Get panics on a missing entry rather than silently returning zero,
// since a caller ignoring that precondition is an implementation bug, not a
// recoverable condition.
func (t *Table) Get(addr uint32) uint32 {
	idx := addr & indexMask
	if !t.present[idx] {
		panic("fprom: Get on absent entry")
	}
	return t.values[idx]
}
