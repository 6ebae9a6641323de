/*
 * p2patch - Dump-mode console formatting
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

// Package patchdump formats a decrypted patch header and body for the
// CLI's dump mode.
package patchdump

import (
	"fmt"
	"io"
	"strings"

	"github.com/pbosch/p2patch/internal/patchbody"
	"github.com/pbosch/p2patch/internal/patchfile"
	hexfmt "github.com/pbosch/p2patch/util/hex"
)

// msramGroupSize is the number of words printed per MSRAM line, matching
// the original's group width.
const msramGroupSize = 8

// Header writes hdr's fields to w, one per line.
func Header(w io.Writer, hdr *patchfile.Header) {
	fmt.Fprintf(w, "Header version:  %08X\n", hdr.HeaderVer)
	fmt.Fprintf(w, "Update revision: %08X\n", hdr.UpdateRev)
	fmt.Fprintf(w, "Date:            %08X\n", hdr.DateBCD)
	fmt.Fprintf(w, "Processor sign.: %08X\n", hdr.ProcSig)
	fmt.Fprintf(w, "Checksum:        %08X\n", hdr.Checksum)
	fmt.Fprintf(w, "Loader revision: %08X\n", hdr.LoaderVer)
	fmt.Fprintf(w, "Processor flags: %08X\n", hdr.ProcFlags)
	fmt.Fprintf(w, "Data size:       %08X\n", hdr.DataSize)
	fmt.Fprintf(w, "Total size:      %08X\n", hdr.TotalSize)
}

// Body writes body's MSRAM groups (plus a bitwise-OR accumulator across
// all groups) and its cr_ops to w.
func Body(w io.Writer, body *patchbody.Plain) {
	fmt.Fprintln(w, "MSRAM:")

	var grpOr [msramGroupSize]uint32
	for i := 0; i*msramGroupSize < len(body.MSRAM); i++ {
		group := body.MSRAM[i*msramGroupSize : i*msramGroupSize+msramGroupSize]

		var line strings.Builder
		hexfmt.FormatWord(&line, group)
		fmt.Fprintf(w, "\t%04X: %s\n", i*msramGroupSize, strings.TrimRight(line.String(), " "))

		for j, word := range group {
			grpOr[j] |= word
		}
	}

	var orLine strings.Builder
	hexfmt.FormatWord(&orLine, grpOr[:])
	fmt.Fprintf(w, "\n\tOR  : %s\n", strings.TrimRight(orLine.String(), " "))

	fmt.Fprintln(w, "Control register ops:")
	for _, op := range body.CROps {
		fmt.Fprintf(w, "\tAddr: %08X  Mask: %08X  Value: %08X\n", op.Address, op.Mask, op.Value)
	}
}
