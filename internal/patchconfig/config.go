/*
 * p2patch - Plaintext config directive parser
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

// Package patchconfig reads the plaintext directive file that describes a
// patch header, its key seed, its cr_ops and the path to its companion
// MSRAM hex file, and reads and writes the MSRAM hex file itself.
package patchconfig

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pbosch/p2patch/internal/patchbody"
	"github.com/pbosch/p2patch/internal/patchfile"
	"github.com/pbosch/p2patch/internal/patcherr"
)

// maxCROps is the most cr_ops a config may declare.
const maxCROps = patchbody.CROpCount

// creqAddressMask is the set of bits a write_creg address may use.
const creqAddressMask = 0x1FF

// Config is the parsed contents of a directive file. Header fields default
// to zero when their directive is absent.
type Config struct {
	Header    patchfile.Header
	KeySeed   uint32
	MSRAMFile string
	CROps     []patchbody.CROp
}

// line tracks position within a single directive line, mirroring the
// teacher's tokenizer: an index into the line plus the helpers to skip
// whitespace and detect end of line.
type line struct {
	text string
	pos  int
}

func (l *line) skipSpace() {
	for l.pos < len(l.text) && (l.text[l.pos] == ' ' || l.text[l.pos] == '\t') {
		l.pos++
	}
}

func (l *line) isEOL() bool {
	return l.pos >= len(l.text)
}

func (l *line) nextToken() string {
	l.skipSpace()
	start := l.pos
	for !l.isEOL() && l.text[l.pos] != ' ' && l.text[l.pos] != '\t' {
		l.pos++
	}
	return l.text[start:l.pos]
}

// ParseConfig reads directive lines from r. Blank lines and lines whose
// first non-space character is '#' are ignored.
func ParseConfig(r io.Reader) (*Config, error) {
	cfg := &Config{}
	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		l := &line{text: strings.TrimSpace(scanner.Text())}
		if l.text == "" || l.text[0] == '#' {
			continue
		}

		directive := l.nextToken()
		if err := cfg.applyDirective(directive, l, lineNo); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &patcherr.MalformedConfig{Reason: err.Error()}
	}

	return cfg, nil
}

// headerFields binds a directive name to the Header field it sets.
var headerFields = map[string]func(*patchfile.Header, uint32){
	"header_ver": func(h *patchfile.Header, v uint32) { h.HeaderVer = v },
	"update_rev": func(h *patchfile.Header, v uint32) { h.UpdateRev = v },
	"date_bcd":   func(h *patchfile.Header, v uint32) { h.DateBCD = v },
	"proc_sig":   func(h *patchfile.Header, v uint32) { h.ProcSig = v },
	"checksum":   func(h *patchfile.Header, v uint32) { h.Checksum = v },
	"loader_rev": func(h *patchfile.Header, v uint32) { h.LoaderVer = v },
	"proc_flags": func(h *patchfile.Header, v uint32) { h.ProcFlags = v },
	"data_size":  func(h *patchfile.Header, v uint32) { h.DataSize = v },
	"total_size": func(h *patchfile.Header, v uint32) { h.TotalSize = v },
}

func (c *Config) applyDirective(directive string, l *line, lineNo int) error {
	if setter, ok := headerFields[directive]; ok {
		val, err := parseU32(l.nextToken(), lineNo)
		if err != nil {
			return err
		}
		setter(&c.Header, val)
		return nil
	}

	switch directive {
	case "key_seed":
		val, err := parseU32(l.nextToken(), lineNo)
		if err != nil {
			return err
		}
		c.KeySeed = val
		return nil

	case "msram_file":
		l.skipSpace()
		if l.isEOL() {
			return &patcherr.MalformedConfig{Line: lineNo, Reason: "msram_file requires a path"}
		}
		c.MSRAMFile = l.text[l.pos:]
		return nil

	case "write_creg":
		if len(c.CROps) >= maxCROps {
			return &patcherr.MalformedConfig{Line: lineNo, Reason: "too many write_creg directives"}
		}
		addr, err := parseU32(l.nextToken(), lineNo)
		if err != nil {
			return err
		}
		mask, err := parseU32(l.nextToken(), lineNo)
		if err != nil {
			return err
		}
		value, err := parseU32(l.nextToken(), lineNo)
		if err != nil {
			return err
		}
		if addr & ^uint32(creqAddressMask) != 0 {
			return &patcherr.MalformedConfig{Line: lineNo, Reason: "write_creg address out of range"}
		}
		c.CROps = append(c.CROps, patchbody.CROp{Address: addr, Mask: mask, Value: value})
		return nil

	default:
		return &patcherr.MalformedConfig{Line: lineNo, Reason: "unknown directive " + directive}
	}
}

// parseU32 accepts hex (0x prefix), octal (leading 0) or decimal, matching
// the permissive strtol-style numeric parsing the directive file uses.
func parseU32(tok string, lineNo int) (uint32, error) {
	if tok == "" {
		return 0, &patcherr.MalformedConfig{Line: lineNo, Reason: "missing numeric argument"}
	}
	v, err := strconv.ParseUint(tok, 0, 32)
	if err != nil {
		return 0, &patcherr.MalformedConfig{Line: lineNo, Reason: "invalid number " + tok}
	}
	return uint32(v), nil
}

// LoadPlain loads the config at path and its companion MSRAM hex file
// (resolved relative to the config's directory) into a full plaintext
// patch body.
func LoadPlain(path string) (*Config, *patchbody.Plain, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	cfg, err := ParseConfig(f)
	if err != nil {
		return nil, nil, err
	}
	if cfg.MSRAMFile == "" {
		return nil, nil, &patcherr.MalformedConfig{Reason: "msram_file directive is required"}
	}

	msramPath := cfg.MSRAMFile
	if !filepath.IsAbs(msramPath) {
		msramPath = filepath.Join(filepath.Dir(path), msramPath)
	}
	mf, err := os.Open(msramPath)
	if err != nil {
		return nil, nil, err
	}
	defer mf.Close()

	msram, err := ParseMSRAMHex(mf)
	if err != nil {
		return nil, nil, err
	}

	plain := &patchbody.Plain{MSRAM: msram}
	copy(plain.CROps[:], cfg.CROps)

	return cfg, plain, nil
}
