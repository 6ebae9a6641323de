/*
 * p2patch - Error taxonomy
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

// Package patcherr defines the typed error conditions the patch cipher,
// codec and file layers can raise.
package patcherr

import "fmt"

// UnknownCPU reports a processor signature not present in the base-key table.
type UnknownCPU struct {
	ProcSig uint32
}

func (e *UnknownCPU) Error() string {
	return fmt.Sprintf("unknown processor signature %03X", e.ProcSig&0xFFF)
}

// MissingFPROM reports a required FPROM entry that is not present in the
// table. Callers of key derivation treat this as fatal; callers of the
// encrypt seed-search loop treat it as a retry signal.
type MissingFPROM struct {
	Index uint32
}

func (e *MissingFPROM) Error() string {
	return fmt.Sprintf("FPROM[0x%02X] is not present in this table", e.Index)
}

// IntegrityMismatch reports a decrypted integrity check word that does not
// match the expected FPROM constant.
type IntegrityMismatch struct {
	Index    uint32
	Got      uint32
	Expected uint32
}

func (e *IntegrityMismatch) Error() string {
	return fmt.Sprintf("integrity check at FPROM[0x%02X] failed: got 0x%08X expected 0x%08X",
		e.Index, e.Got, e.Expected)
}

// MalformedFile reports a patch file that does not conform to the fixed
// binary layout (wrong size, truncated read).
type MalformedFile struct {
	Reason string
}

func (e *MalformedFile) Error() string {
	return "malformed patch file: " + e.Reason
}

// MalformedConfig reports an unparseable plaintext config or MSRAM hex file.
type MalformedConfig struct {
	Line   int
	Reason string
}

func (e *MalformedConfig) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed config at line %d: %s", e.Line, e.Reason)
	}
	return "malformed config: " + e.Reason
}

// SeedSearchExhausted reports that encryption tried its full retry budget
// without finding a seed for which every FPROM lookup succeeded.
type SeedSearchExhausted struct {
	Start uint32
	Tried int
}

func (e *SeedSearchExhausted) Error() string {
	return fmt.Sprintf("seed search exhausted after %d attempts starting at seed 0x%08X", e.Tried, e.Start)
}
