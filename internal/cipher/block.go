/*
 * p2patch - Galois LFSR block function
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

// Package cipher implements the block function and chained stream mode the
// patch body is encrypted under: a 37-round Galois LFSR wrapped in a
// CBC-like chain that mixes in the previous ciphertext word.
package cipher

import "github.com/pbosch/p2patch/internal/rotate"

// rounds is the number of LFSR clocks the block function runs.
const rounds = 37

// block runs the 37-round Galois LFSR over plain using key as the feedback
// polynomial, and XORs the result with the original plaintext. The key is
// folded in only when the post-rotation top bit is set; every step is plain
// 32-bit modular arithmetic, no sign extension.
func block(plain, key uint32) uint32 {
	lfsr := plain
	for i := 0; i < rounds; i++ {
		lfsr = rotate.Right(lfsr, 1)
		if lfsr&0x80000000 != 0 {
			lfsr ^= key
		}
	}
	return lfsr ^ plain
}
