/*
 * p2patch - Command line driver
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

package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	getopt "github.com/pborman/getopt/v2"

	"github.com/pbosch/p2patch/internal/fprom"
	"github.com/pbosch/p2patch/internal/patchbody"
	"github.com/pbosch/p2patch/internal/patchconfig"
	"github.com/pbosch/p2patch/internal/patchdump"
	"github.com/pbosch/p2patch/internal/patchfile"
	logwrap "github.com/pbosch/p2patch/util/logger"
)

var log *slog.Logger

func main() {
	optHelp := getopt.BoolLong("help", 'h', "print this message and exit")
	optExtract := getopt.BoolLong("extract", 'e', "extract a patch to a configuration and MSRAM hex file")
	optCreate := getopt.BoolLong("create", 'c', "create a patch from a configuration and MSRAM hex file")
	optDump := getopt.BoolLong("dump", 'd', "dump the patch contents to the console")
	optPatchPath := getopt.StringLong("patch", 'p', "", "path of the patch file to create or decrypt")
	optConfigPath := getopt.StringLong("config", 'i', "", "path of the config file to use or extract")
	getopt.Parse()

	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelDebug)
	log = slog.New(logwrap.NewHandler(nil, &slog.HandlerOptions{Level: programLevel}, false))

	switch {
	case *optHelp:
		getopt.Usage()
		os.Exit(0)

	case *optCreate && !*optExtract:
		if err := createPatch(*optConfigPath, *optPatchPath, *optDump); err != nil {
			fail(err)
		}

	case *optDump || *optExtract:
		if *optCreate {
			fail(fmt.Errorf("invalid combination of modes: -c with -e"))
		}
		if err := loadAndMaybeExtract(*optPatchPath, *optConfigPath, *optDump, *optExtract); err != nil {
			fail(err)
		}

	default:
		getopt.Usage()
		fail(fmt.Errorf("no mode specified"))
	}
}

func fail(err error) {
	log.Error(err.Error())
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

// stem returns the base name of path with its extension (everything from
// the first '.') removed, matching the original's basename+strtok split.
func stem(path string) string {
	base := filepath.Base(path)
	if i := strings.IndexByte(base, '.'); i >= 0 {
		return base[:i]
	}
	return base
}

func createPatch(configPath, patchPath string, dump bool) error {
	if configPath == "" {
		return fmt.Errorf("missing config path")
	}

	cfg, plain, err := patchconfig.LoadPlain(configPath)
	if err != nil {
		return err
	}

	if patchPath == "" {
		patchPath = stem(configPath) + ".dat"
	}

	table := fprom.New()
	enc, err := patchbody.Encode(cfg.Header.ProcSig, cfg.KeySeed, plain, table, log)
	if err != nil {
		return err
	}

	out := &patchfile.File{Header: cfg.Header, Body: *enc}
	raw, err := out.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(patchPath, raw, 0o644); err != nil {
		return err
	}

	if dump {
		patchdump.Header(os.Stdout, &out.Header)
		fmt.Printf("Key seed: %08X\n", enc.KeySeed)
		patchdump.Body(os.Stdout, plain)
	}

	return nil
}

func loadAndMaybeExtract(patchPath, configPath string, dump, extract bool) error {
	if patchPath == "" {
		return fmt.Errorf("missing patch path")
	}

	raw, err := os.ReadFile(patchPath)
	if err != nil {
		return err
	}
	pf, err := patchfile.Parse(raw)
	if err != nil {
		return err
	}

	table := fprom.New()
	plain, err := patchbody.Decode(pf.Header.ProcSig, &pf.Body, table, log)
	if err != nil {
		return err
	}

	if dump {
		patchdump.Header(os.Stdout, &pf.Header)
		fmt.Printf("Key seed: %08X\n", pf.Body.KeySeed)
		patchdump.Body(os.Stdout, plain)
	}

	if extract {
		name := stem(patchPath)
		if configPath == "" {
			configPath = name + ".txt"
		}
		msramPath := name + ".hex"

		if err := writeConfig(configPath, &pf.Header, pf.Body.KeySeed, msramPath, plain); err != nil {
			return err
		}

		mf, err := os.Create(msramPath)
		if err != nil {
			return err
		}
		defer mf.Close()
		if err := patchconfig.WriteMSRAMHex(mf, plain.MSRAM); err != nil {
			return err
		}
	}

	return nil
}

func writeConfig(path string, hdr *patchfile.Header, keySeed uint32, msramPath string, plain *patchbody.Plain) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprintf(f, "header_ver 0x%08X\n", hdr.HeaderVer)
	fmt.Fprintf(f, "update_rev 0x%08X\n", hdr.UpdateRev)
	fmt.Fprintf(f, "date_bcd 0x%08X\n", hdr.DateBCD)
	fmt.Fprintf(f, "proc_sig 0x%08X\n", hdr.ProcSig)
	fmt.Fprintf(f, "checksum 0x%08X\n", hdr.Checksum)
	fmt.Fprintf(f, "loader_rev 0x%08X\n", hdr.LoaderVer)
	fmt.Fprintf(f, "proc_flags 0x%08X\n", hdr.ProcFlags)
	fmt.Fprintf(f, "data_size 0x%08X\n", hdr.DataSize)
	fmt.Fprintf(f, "total_size 0x%08X\n", hdr.TotalSize)
	fmt.Fprintf(f, "key_seed 0x%08X\n", keySeed)
	fmt.Fprintf(f, "msram_file %s\n", filepath.Base(msramPath))
	for _, op := range plain.CROps {
		fmt.Fprintf(f, "write_creg 0x%X 0x%08X 0x%08X\n", op.Address, op.Mask, op.Value)
	}

	return nil
}
