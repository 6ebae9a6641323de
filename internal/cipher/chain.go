/*
 * p2patch - Chained stream cipher
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

package cipher

// Cipher holds the running state of one encode or decode pass: the fixed
// key, the last ciphertext word processed, and the LFSR feedback state. It
// is a plain value type rather than a package-level global so that a fresh
// instance can be created per patch body and safely discarded afterwards;
// the original C implementation kept this in static globals, an accident of
// its style rather than a requirement of the algorithm.
type Cipher struct {
	key       uint32
	lastCWord uint32
	state     uint32
}

// New returns a cipher initialized with the given key and initialization
// vector. lastCWord starts equal to key, state starts equal to iv.
func New(key, iv uint32) *Cipher {
	return &Cipher{key: key, lastCWord: key, state: iv}
}

// State returns the current LFSR feedback word. Integrity check words are
// indexed off this value, sampled before the word that uses it is
// encrypted or decrypted.
func (c *Cipher) State() uint32 {
	return c.state
}

// Encrypt advances the cipher by one word and returns its ciphertext.
func (c *Cipher) Encrypt(plain uint32) uint32 {
	subkey := block(c.state, c.key)
	c.state = plain ^ c.lastCWord
	ct := subkey ^ c.state
	c.lastCWord = ct
	return ct
}

// Decrypt advances the cipher by one word and returns its plaintext. A
// Decrypt call undoes the corresponding Encrypt call only when fed the same
// (key, iv) pair and the same word order; the cipher is neither
// parallelizable nor re-entrant.
func (c *Cipher) Decrypt(ct uint32) uint32 {
	newState := block(c.state, c.key) ^ ct
	plain := newState ^ c.lastCWord
	c.lastCWord = ct
	c.state = newState
	return plain
}
