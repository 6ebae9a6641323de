/*
 * p2patch - MSRAM hex file codec
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

package patchconfig

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pbosch/p2patch/internal/patchbody"
	"github.com/pbosch/p2patch/internal/patcherr"
)

// msramBaseAddress is the first legal line address, MSRAM_BASE_ADDRESS
// expressed as MSRAM_BASE_ADDRESS*8 per spec.md §4.J.
const msramBaseAddress = 0x7D58

// msramGroupWords is both the number of 32-bit words one hex line encodes
// and the address stride between consecutive lines: the line address is
// not a byte offset into the data, it advances by 8 per line regardless of
// the fact that each line's payload is also 8 words wide (see
// original_source/filefmt.c's write_msram_file/read_msram_file, where the
// printed address is `base + i*8` and the word index recovered from it is
// `(addr/8 - MSRAM_BASE_ADDRESS) * 8`, i.e. numerically equal to addr-base).
const msramGroupWords = 8

// ParseMSRAMHex reads the companion MSRAM hex file: lines of the form
// "AAAA: W0 W1 W2 W3 W4 W5 W6 W7", with the address stepping by 8 per line
// starting at msramBaseAddress. Misaligned or out-of-range addresses are
// fatal.
func ParseMSRAMHex(r io.Reader) ([patchbody.MSRAMWordCount]uint32, error) {
	var words [patchbody.MSRAMWordCount]uint32

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || text[0] == '#' {
			continue
		}

		addrField, rest, ok := strings.Cut(text, ":")
		if !ok {
			return words, &patcherr.MalformedConfig{Line: lineNo, Reason: "missing ':' in MSRAM line"}
		}

		addr, err := strconv.ParseUint(strings.TrimSpace(addrField), 16, 32)
		if err != nil {
			return words, &patcherr.MalformedConfig{Line: lineNo, Reason: "invalid MSRAM line address"}
		}
		if addr < msramBaseAddress {
			return words, &patcherr.MalformedConfig{Line: lineNo, Reason: "MSRAM address below base"}
		}
		offset := addr - msramBaseAddress
		if offset%msramGroupWords != 0 {
			return words, &patcherr.MalformedConfig{Line: lineNo, Reason: "misaligned MSRAM address"}
		}
		wordIdx := int(offset)
		if wordIdx+msramGroupWords > len(words) {
			return words, &patcherr.MalformedConfig{Line: lineNo, Reason: "MSRAM address out of range"}
		}

		fields := strings.Fields(rest)
		if len(fields) != msramGroupWords {
			return words, &patcherr.MalformedConfig{Line: lineNo, Reason: fmt.Sprintf("expected %d words, got %d", msramGroupWords, len(fields))}
		}
		for i, f := range fields {
			v, err := strconv.ParseUint(f, 16, 32)
			if err != nil {
				return words, &patcherr.MalformedConfig{Line: lineNo, Reason: "invalid MSRAM word " + f}
			}
			words[wordIdx+i] = uint32(v)
		}
	}
	if err := scanner.Err(); err != nil {
		return words, &patcherr.MalformedConfig{Reason: err.Error()}
	}

	return words, nil
}

// WriteMSRAMHex writes words out in the same 8-word-per-line format
// ParseMSRAMHex reads, starting at msramBaseAddress.
func WriteMSRAMHex(w io.Writer, words [patchbody.MSRAMWordCount]uint32) error {
	bw := bufio.NewWriter(w)
	for base := 0; base < len(words); base += msramGroupWords {
		addr := msramBaseAddress + uint32(base)
		if _, err := fmt.Fprintf(bw, "%04X:", addr); err != nil {
			return err
		}
		for i := 0; i < msramGroupWords; i++ {
			if _, err := fmt.Fprintf(bw, " %08X", words[base+i]); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(bw); err != nil {
			return err
		}
	}
	return bw.Flush()
}
