package patchconfig

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/pbosch/p2patch/internal/patcherr"
)

func testMSRAMWords() [168]uint32 {
	var words [168]uint32
	for i := range words {
		words[i] = 0x11110000 + uint32(i)
	}
	return words
}

func TestMSRAMHexRoundTrip(t *testing.T) {
	words := testMSRAMWords()

	var buf bytes.Buffer
	if err := WriteMSRAMHex(&buf, words); err != nil {
		t.Fatalf("WriteMSRAMHex returned error: %v", err)
	}

	got, err := ParseMSRAMHex(&buf)
	if err != nil {
		t.Fatalf("ParseMSRAMHex returned error: %v", err)
	}
	if got != words {
		t.Fatalf("round trip mismatch:\n got  %v\n want %v", got, words)
	}
}

func TestParseMSRAMHexFirstLineAddress(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteMSRAMHex(&buf, testMSRAMWords()); err != nil {
		t.Fatalf("WriteMSRAMHex returned error: %v", err)
	}
	firstLine := strings.SplitN(buf.String(), "\n", 2)[0]
	if !strings.HasPrefix(firstLine, "7D58:") {
		t.Errorf("first line = %q, want prefix 7D58:", firstLine)
	}
}

func TestParseMSRAMHexMisalignedAddress(t *testing.T) {
	src := "7D59: 1 2 3 4 5 6 7 8\n"
	_, err := ParseMSRAMHex(strings.NewReader(src))
	var mc *patcherr.MalformedConfig
	if !errors.As(err, &mc) {
		t.Fatalf("error = %v (%T), want MalformedConfig", err, err)
	}
}

func TestParseMSRAMHexBelowBase(t *testing.T) {
	src := "0000: 1 2 3 4 5 6 7 8\n"
	_, err := ParseMSRAMHex(strings.NewReader(src))
	var mc *patcherr.MalformedConfig
	if !errors.As(err, &mc) {
		t.Fatalf("error = %v (%T), want MalformedConfig", err, err)
	}
}

func TestParseMSRAMHexOutOfRange(t *testing.T) {
	// 168 words span exactly 21 lines (indices 0..20), the address stepping
	// by 8 per line; 0x7E00 is 21 groups past base, one group past the end.
	src := "7E00: 1 2 3 4 5 6 7 8\n"
	_, err := ParseMSRAMHex(strings.NewReader(src))
	var mc *patcherr.MalformedConfig
	if !errors.As(err, &mc) {
		t.Fatalf("error = %v (%T), want MalformedConfig", err, err)
	}
}

// The address field steps by 8 per line, not by the 32-byte span of each
// line's data payload: per spec.md §4.J and original_source/filefmt.c, the
// second line's address is base+8, not base+32.
func TestParseMSRAMHexAddressStepsByEight(t *testing.T) {
	src := "7D58: 1 2 3 4 5 6 7 8\n7D60: 9 A B C D E F 10\n"
	got, err := ParseMSRAMHex(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseMSRAMHex returned error: %v", err)
	}
	want := [8]uint32{9, 0xA, 0xB, 0xC, 0xD, 0xE, 0xF, 0x10}
	if [8]uint32(got[8:16]) != want {
		t.Fatalf("second group = %v, want %v", got[8:16], want)
	}
}

func TestParseMSRAMHexWrongWordCount(t *testing.T) {
	src := "7D58: 1 2 3\n"
	_, err := ParseMSRAMHex(strings.NewReader(src))
	var mc *patcherr.MalformedConfig
	if !errors.As(err, &mc) {
		t.Fatalf("error = %v (%T), want MalformedConfig", err, err)
	}
}
