/*
 * p2patch - Patch body codec
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

// Package patchbody orchestrates the chained cipher and the integrity
// wrapper over the fixed layout of a microcode patch body, and implements
// the seed-search strategy that tolerates an incomplete FPROM table on
// encryption.
package patchbody

import (
	"errors"
	"log/slog"

	"github.com/pbosch/p2patch/internal/cipher"
	"github.com/pbosch/p2patch/internal/fprom"
	"github.com/pbosch/p2patch/internal/integrity"
	"github.com/pbosch/p2patch/internal/keyderive"
	"github.com/pbosch/p2patch/internal/patcherr"
)

// MSRAMWordCount is the number of 32-bit MSRAM words a patch body carries.
const MSRAMWordCount = 168

// CROpCount is the number of control-register operations a patch body
// carries.
const CROpCount = 16

// MaxSeedAttempts bounds the seed-search loop in Encode. The original tool
// looped unboundedly; this is the finite budget the redesign calls for.
const MaxSeedAttempts = 1 << 20

// CROp is a single control-register write: address, mask and value.
type CROp struct {
	Address uint32
	Mask    uint32
	Value   uint32
}

// Plain is a decrypted patch body: MSRAM contents and control-register ops,
// with no key seed or integrity words.
type Plain struct {
	MSRAM [MSRAMWordCount]uint32
	CROps [CROpCount]CROp
}

// EncryptedCROp is a control-register op as it appears inside an encrypted
// body, with its trailing integrity check word.
type EncryptedCROp struct {
	Address   uint32
	Mask      uint32
	Value     uint32
	Integrity uint32
}

// Encrypted is an encrypted patch body: the key seed, MSRAM contents and
// its integrity word, and the control-register ops with theirs.
type Encrypted struct {
	KeySeed        uint32
	MSRAM          [MSRAMWordCount]uint32
	MSRAMIntegrity uint32
	CROps          [CROpCount]EncryptedCROp
}

// Decode decrypts an encrypted patch body for the given processor
// signature. Key derivation failure is fatal. An unknown FPROM index
// encountered while verifying an integrity word is logged and decoding
// continues; a mismatched integrity word is fatal.
func Decode(procSig uint32, in *Encrypted, table *fprom.Table, log *slog.Logger) (*Plain, error) {
	res, err := keyderive.Derive(procSig, in.KeySeed, table)
	if err != nil {
		return nil, err
	}

	out := &Plain{}
	c := cipher.New(res.Key, res.IV)

	for i := range in.MSRAM {
		out.MSRAM[i] = c.Decrypt(in.MSRAM[i])
	}

	if err := checkICV(c, table, in.MSRAMIntegrity, log, "msram"); err != nil {
		return nil, err
	}

	for i := range in.CROps {
		out.CROps[i].Address = c.Decrypt(in.CROps[i].Address)
		out.CROps[i].Mask = c.Decrypt(in.CROps[i].Mask)
		out.CROps[i].Value = c.Decrypt(in.CROps[i].Value)

		if err := checkICV(c, table, in.CROps[i].Integrity, log, "cr_op"); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// checkICV verifies one integrity word and translates its outcome into the
// decode policy: fatal on mismatch, a log line and nil error on an unknown
// FPROM index.
func checkICV(c *cipher.Cipher, table *fprom.Table, ctICV uint32, log *slog.Logger, what string) error {
	result := integrity.DecryptICV(c, table, ctICV)
	switch result.Outcome {
	case integrity.OutcomeMismatch:
		return &patcherr.IntegrityMismatch{Index: result.Index, Got: result.Got, Expected: result.Expected}
	case integrity.OutcomeUnknownFPROM:
		if log != nil {
			log.Warn("integrity check uses unknown FPROM entry",
				"section", what, "index", result.Index, "value", result.Got)
		}
	}
	return nil
}

// Encode encrypts a plaintext patch body for procSig, starting at seed and
// advancing through seeds until every FPROM lookup the encode needs
// succeeds, or MaxSeedAttempts is exhausted.
func Encode(procSig, seed uint32, in *Plain, table *fprom.Table, log *slog.Logger) (*Encrypted, error) {
	start := seed
	for attempt := 0; attempt < MaxSeedAttempts; attempt++ {
		out, err := tryEncode(procSig, seed, in, table)
		if err == nil {
			if seed != start && log != nil {
				log.Info("seed search converged", "start_seed", start, "seed", seed, "attempts", attempt+1)
			}
			return out, nil
		}

		var missing *patcherr.MissingFPROM
		if errors.As(err, &missing) {
			if log != nil {
				log.Debug("seed search retry: missing FPROM entry", "seed", seed, "index", missing.Index)
			}
			seed++
			continue
		}

		// UnknownCPU or anything else not recoverable by retrying.
		return nil, err
	}

	return nil, &patcherr.SeedSearchExhausted{Start: start, Tried: MaxSeedAttempts}
}

// tryEncode performs a single encode attempt at a fixed seed, short
// circuiting on the first missing FPROM entry.
func tryEncode(procSig, seed uint32, in *Plain, table *fprom.Table) (*Encrypted, error) {
	res, err := keyderive.Derive(procSig, seed, table)
	if err != nil {
		return nil, err
	}

	out := &Encrypted{KeySeed: seed}
	c := cipher.New(res.Key, res.IV)

	for i := range in.MSRAM {
		out.MSRAM[i] = c.Encrypt(in.MSRAM[i])
	}

	icv, err := integrity.EncryptICV(c, table)
	if err != nil {
		return nil, err
	}
	out.MSRAMIntegrity = icv

	for i := range in.CROps {
		out.CROps[i].Address = c.Encrypt(in.CROps[i].Address)
		out.CROps[i].Mask = c.Encrypt(in.CROps[i].Mask)
		out.CROps[i].Value = c.Encrypt(in.CROps[i].Value)

		icv, err := integrity.EncryptICV(c, table)
		if err != nil {
			return nil, err
		}
		out.CROps[i].Integrity = icv
	}

	return out, nil
}
