/*
 * p2patch - Integrity check word wrapper
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

// Package integrity generates and verifies the FPROM-indexed check words
// interspersed through a patch body. The index used for a given check word
// is the cipher's current state, not its position in the body, so the
// wrapper must run before the check word itself is encrypted or decrypted.
package integrity

import (
	"github.com/pbosch/p2patch/internal/cipher"
	"github.com/pbosch/p2patch/internal/fprom"
	"github.com/pbosch/p2patch/internal/patcherr"
)

// indexMask selects the integrity index from the cipher state.
const indexMask = 0xFF

// Outcome classifies the result of verifying a decrypted check word.
type Outcome int

const (
	// OutcomeOK means the decrypted word matched the expected FPROM constant.
	OutcomeOK Outcome = iota
	// OutcomeUnknownFPROM means the table has no entry at the derived index;
	// this is non-fatal and likely means our table, not the patch, is
	// incomplete.
	OutcomeUnknownFPROM
	// OutcomeMismatch means the table has an entry but it disagrees with the
	// decrypted word; this is fatal and indicates corruption.
	OutcomeMismatch
)

// DecryptResult is the outcome of verifying one decrypted check word.
type DecryptResult struct {
	Outcome  Outcome
	Index    uint32
	Got      uint32
	Expected uint32
}

// EncryptICV generates and encrypts a check word from c's current state. It
// returns patcherr.MissingFPROM if the table has no entry at the derived
// index, since encryption cannot produce a valid check word without one.
func EncryptICV(c *cipher.Cipher, table *fprom.Table) (uint32, error) {
	idx := c.State() & indexMask
	if !table.Exists(idx) {
		return 0, &patcherr.MissingFPROM{Index: idx}
	}
	return c.Encrypt(table.Get(idx)), nil
}

// DecryptICV decrypts ctICV and classifies the result against c's current
// state, exactly as EncryptICV derived it during encoding.
func DecryptICV(c *cipher.Cipher, table *fprom.Table, ctICV uint32) DecryptResult {
	idx := c.State() & indexMask
	pt := c.Decrypt(ctICV)

	if !table.Exists(idx) {
		return DecryptResult{Outcome: OutcomeUnknownFPROM, Index: idx, Got: pt}
	}

	expected := table.Get(idx)
	if pt != expected {
		return DecryptResult{Outcome: OutcomeMismatch, Index: idx, Got: pt, Expected: expected}
	}

	return DecryptResult{Outcome: OutcomeOK, Index: idx, Got: pt, Expected: expected}
}
