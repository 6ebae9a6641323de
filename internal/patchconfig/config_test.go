package patchconfig

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pbosch/p2patch/internal/patcherr"
)

func TestParseConfigHeaderFieldsAndCROps(t *testing.T) {
	src := `
# a comment line, ignored
header_ver 1
update_rev 0x2
date_bcd 20260731
proc_sig 0x650
checksum 0xCAFEBABE
loader_rev 4
proc_flags 0
data_size 100
total_size 200
key_seed 0x7
msram_file patch.hex
write_creg 0x100 0xFFFFFFFF 0xAA
write_creg 0x1FF 0x1 0x2
`
	cfg, err := ParseConfig(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseConfig returned error: %v", err)
	}

	if cfg.Header.HeaderVer != 1 || cfg.Header.UpdateRev != 2 || cfg.Header.ProcSig != 0x650 {
		t.Fatalf("header fields not set: %+v", cfg.Header)
	}
	if cfg.Header.Checksum != 0xCAFEBABE || cfg.Header.LoaderVer != 4 {
		t.Fatalf("header fields not set: %+v", cfg.Header)
	}
	if cfg.KeySeed != 7 {
		t.Errorf("KeySeed = %d, want 7", cfg.KeySeed)
	}
	if cfg.MSRAMFile != "patch.hex" {
		t.Errorf("MSRAMFile = %q, want patch.hex", cfg.MSRAMFile)
	}
	if len(cfg.CROps) != 2 {
		t.Fatalf("CROps = %+v, want 2 entries", cfg.CROps)
	}
	if cfg.CROps[0].Address != 0x100 || cfg.CROps[0].Value != 0xAA {
		t.Errorf("CROps[0] = %+v", cfg.CROps[0])
	}
}

func TestParseConfigUnknownDirective(t *testing.T) {
	_, err := ParseConfig(strings.NewReader("bogus_directive 1\n"))
	var mc *patcherr.MalformedConfig
	if !errors.As(err, &mc) {
		t.Fatalf("error = %v (%T), want MalformedConfig", err, err)
	}
}

func TestParseConfigWriteCregOutOfRangeAddress(t *testing.T) {
	_, err := ParseConfig(strings.NewReader("write_creg 0x200 0x1 0x1\n"))
	var mc *patcherr.MalformedConfig
	if !errors.As(err, &mc) {
		t.Fatalf("error = %v (%T), want MalformedConfig", err, err)
	}
}

func TestParseConfigTooManyCROps(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 17; i++ {
		b.WriteString("write_creg 0x1 0x1 0x1\n")
	}
	_, err := ParseConfig(strings.NewReader(b.String()))
	var mc *patcherr.MalformedConfig
	if !errors.As(err, &mc) {
		t.Fatalf("error = %v (%T), want MalformedConfig", err, err)
	}
}

func TestLoadPlainResolvesMSRAMFileRelativeToConfigDir(t *testing.T) {
	dir := t.TempDir()

	msramPath := filepath.Join(dir, "patch.hex")
	var words [168]uint32
	for i := range words {
		words[i] = uint32(i)
	}
	mf, err := os.Create(msramPath)
	if err != nil {
		t.Fatalf("creating MSRAM file: %v", err)
	}
	if err := WriteMSRAMHex(mf, words); err != nil {
		t.Fatalf("WriteMSRAMHex: %v", err)
	}
	mf.Close()

	cfgPath := filepath.Join(dir, "patch.cfg")
	cfgSrc := "proc_sig 0x650\nkey_seed 0\nmsram_file patch.hex\nwrite_creg 0x100 0x1 0x2\n"
	if err := os.WriteFile(cfgPath, []byte(cfgSrc), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, plain, err := LoadPlain(cfgPath)
	if err != nil {
		t.Fatalf("LoadPlain returned error: %v", err)
	}
	if cfg.Header.ProcSig != 0x650 {
		t.Errorf("ProcSig = %#x, want 0x650", cfg.Header.ProcSig)
	}
	if plain.MSRAM != words {
		t.Fatalf("MSRAM mismatch:\n got  %v\n want %v", plain.MSRAM, words)
	}
	if plain.CROps[0].Address != 0x100 {
		t.Errorf("CROps[0].Address = %#x, want 0x100", plain.CROps[0].Address)
	}
}
