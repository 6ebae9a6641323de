/*
 * p2patch - Key derivation
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

// Package keyderive turns a processor signature, a key seed and the FPROM
// table into the (iv, key) pair the chained cipher is initialized with.
package keyderive

import (
	"github.com/pbosch/p2patch/internal/cpukey"
	"github.com/pbosch/p2patch/internal/fprom"
	"github.com/pbosch/p2patch/internal/patcherr"
	"github.com/pbosch/p2patch/internal/rotate"
)

// keyIndexMask constrains the key index to one of 16 positions within any
// 0x100 window of the FPROM, reducing the subset of the table a valid
// derivation relies on.
const keyIndexMask = 0x9C

// steppingMask isolates the stepping bits of a processor signature, used to
// specialize the family base key to a particular revision.
const steppingMask = 0xF

// Result is the (iv, key) pair derived for one processor signature and seed.
type Result struct {
	IV  uint32
	Key uint32
}

// Derive computes the IV and key for procSig and seed against table. It
// returns patcherr.UnknownCPU if the signature isn't recognized, and
// patcherr.MissingFPROM if the key index it resolves to isn't present.
func Derive(procSig, seed uint32, table *fprom.Table) (Result, error) {
	base, err := cpukey.Base(procSig)
	if err != nil {
		return Result{}, err
	}

	iv := rotate.Left(base, uint(procSig&steppingMask))
	iv += 6 + seed

	keyIdx := iv & keyIndexMask
	if !table.Exists(keyIdx) {
		return Result{}, &patcherr.MissingFPROM{Index: keyIdx}
	}

	return Result{IV: iv, Key: table.Get(keyIdx)}, nil
}
