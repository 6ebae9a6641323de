/*
 * p2patch - CPU base key table
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

// Package cpukey maps the low 12 bits of a Pentium II processor signature to
// the 32-bit base key used by key derivation.
package cpukey

import "github.com/pbosch/p2patch/internal/patcherr"

// Base keys, one per recognized CPU family/revision group.
const (
	deschutesA  = 0x3b021ce0
	deschutesB  = 0x17ae63a2
	mobileA     = 0x33c949f6
	mobileB     = 0x2eba562a
	katmaiA     = 0x2d753ea0
	katmaiB     = 0x72b97882
	katmaiC     = 0x7bd10552
	coppermineA = 0x3942095e
	coppermineB = 0x28121d58
	coppermineC = 0x2cb473c4
	baniasA     = 0x1c514c40
	cascadesA   = 0x6b8a374e
	cascadesB   = 0x44d5346c
	mendocinoA  = 0x4ef83ad6
)

// Base returns the base key for procSig's low 12 bits, or UnknownCPU if the
// signature is not one of the recognized groups.
//
// Coppermine B0 (0x683), Cascades B0 (0x6a4), Dothan (0x6d0..0x6d8) and the
// Timna/partial-success Banias family are deliberately not recognized: the
// original tool carries dead or commented-out cases for them with no working
// key, and guessing one here would be worse than reporting UnknownCPU.
func Base(procSig uint32) (uint32, error) {
	switch procSig & 0xFFF {
	case 0x650, 0x651:
		return deschutesA, nil
	case 0x652, 0x653:
		return deschutesB, nil
	case 0x660, 0x66A, 0x66D:
		return mobileA, nil
	case 0x665:
		return mobileB, nil
	case 0x670, 0x671:
		return katmaiA, nil
	case 0x672:
		return katmaiB, nil
	case 0x673:
		return katmaiC, nil
	case 0x680, 0x681:
		return coppermineA, nil
	case 0x686:
		return coppermineB, nil
	case 0x68a:
		return coppermineC, nil
	case 0x694, 0x695:
		return baniasA, nil
	case 0x6a0, 0x6a1:
		return cascadesA, nil
	case 0x6b0, 0x6b1:
		return cascadesB, nil
	case 0x6b4:
		return mendocinoA, nil
	default:
		return 0, &patcherr.UnknownCPU{ProcSig: procSig}
	}
}
