package patchbody

import (
	"errors"
	"testing"

	"github.com/pbosch/p2patch/internal/fprom"
	"github.com/pbosch/p2patch/internal/patcherr"
)

// testPlain returns a deterministic plaintext body of the full MSRAM and
// cr_op size, distinct enough per word that a transposition or truncation
// bug would show up as a mismatch rather than a coincidental pass.
func testPlain() *Plain {
	p := &Plain{}
	for i := range p.MSRAM {
		p.MSRAM[i] = 0xA5A50000 + uint32(i)
	}
	for i := range p.CROps {
		p.CROps[i] = CROp{
			Address: 0x100 + uint32(i),
			Mask:    0xFFFF0000 | uint32(i),
			Value:   0xDEAD0000 | uint32(i),
		}
	}
	return p
}

// roundTripTable carries exactly the FPROM entries a seed-0 encode of
// testPlain() for proc_sig 0x650 touches: the key index plus the 17 check
// word indices the cipher's running state visits along the way.
func roundTripTable() *fprom.Table {
	return fprom.FromMap(map[uint32]uint32{
		0x84: 0xF7697FB9,
		0xC8: 0xC735DF5E,
		0x34: 0x70D3DA1F,
		0xB4: 0x1DE9EA66,
		0x46: 0x01EAF614,
		0x7D: 0x17346B45,
		0x22: 0xE935B870,
		0x74: 0xF149F542,
		0x60: 0xF073EED1,
		0xE4: 0xCE97B5BD,
		0x38: 0x950CDDD9,
		0xD4: 0x08F0EBD4,
		0xCB: 0xABEB9592,
		0x8E: 0xB16E2D5C,
		0x6F: 0x157CF9C6,
		0x28: 0x19322FED,
		0x37: 0xC4381836,
		0xBD: 0x5AC96628,
	})
}

const roundTripProcSig = 0x650

func TestEncodeDecodeRoundTrip(t *testing.T) {
	table := roundTripTable()
	plain := testPlain()

	enc, err := Encode(roundTripProcSig, 0, plain, table, nil)
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	if enc.KeySeed != 0 {
		t.Fatalf("Encode used seed %d, want 0 (table has no missing entries)", enc.KeySeed)
	}

	dec, err := Decode(roundTripProcSig, enc, table, nil)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}

	if *dec != *plain {
		t.Fatalf("round trip mismatch:\n got  %+v\n want %+v", dec, plain)
	}
}

// Encoding the same plaintext against the same table and starting seed must
// always produce the same ciphertext: nothing in the codec consults outside
// state.
func TestEncodeDeterministic(t *testing.T) {
	table := roundTripTable()
	plain := testPlain()

	a, err := Encode(roundTripProcSig, 0, plain, table, nil)
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	b, err := Encode(roundTripProcSig, 0, plain, table, nil)
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	if *a != *b {
		t.Fatalf("Encode was not deterministic:\n a %+v\n b %+v", a, b)
	}
}

// seedSearchTable is missing the key index that seeds 0 and 1 both resolve
// to (0x84), forcing Encode to advance the seed until it reaches 2, whose
// key index (0x88) and every check word index the rest of the attempt
// touches are present.
func seedSearchTable() *fprom.Table {
	return fprom.FromMap(map[uint32]uint32{
		0x88: 0x676B1B69,
		0x12: 0x61790134,
		0xED: 0x333824FE,
		0x0F: 0x9974D75B,
		0x3B: 0x2DC5FD3D,
		0x64: 0x3AF27F80,
		0xD2: 0x3F9931EE,
		0x32: 0x221C4E00,
		0xCB: 0xC28753F8,
		0x5F: 0x162A01DE,
		0x86: 0x404B6EAF,
		0x1C: 0xBAA1C6F1,
		0x7C: 0x6210B784,
		0x4D: 0x87E355B2,
		0x08: 0xAF2ED9DD,
		0x37: 0xB35331CE,
		0xD6: 0x89E3995A,
	})
}

func TestEncodeSeedSearchAdvancesPastMissingKeyIndex(t *testing.T) {
	table := seedSearchTable()
	plain := testPlain()

	enc, err := Encode(roundTripProcSig, 0, plain, table, nil)
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	if enc.KeySeed != 2 {
		t.Fatalf("Encode converged on seed %d, want 2", enc.KeySeed)
	}

	dec, err := Decode(roundTripProcSig, enc, table, nil)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if *dec != *plain {
		t.Fatalf("round trip mismatch after seed search:\n got  %+v\n want %+v", dec, plain)
	}
}

// A table with no entries at all can never satisfy a key index, so every
// seed in the budget fails and Encode must report exhaustion rather than
// loop forever.
func TestEncodeSeedSearchExhausted(t *testing.T) {
	table := fprom.FromMap(nil)
	plain := testPlain()

	_, err := Encode(roundTripProcSig, 0, plain, table, nil)
	var exhausted *patcherr.SeedSearchExhausted
	if !errors.As(err, &exhausted) {
		t.Fatalf("Encode error = %v (%T), want SeedSearchExhausted", err, err)
	}
}

// A bit flip in the MSRAM integrity word must be fatal, not silently
// accepted: it is the signal that the body was corrupted or forged.
func TestDecodeMSRAMIntegrityMismatchIsFatal(t *testing.T) {
	table := roundTripTable()
	plain := testPlain()

	enc, err := Encode(roundTripProcSig, 0, plain, table, nil)
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	enc.MSRAMIntegrity ^= 1

	_, err = Decode(roundTripProcSig, enc, table, nil)
	var mismatch *patcherr.IntegrityMismatch
	if !errors.As(err, &mismatch) {
		t.Fatalf("Decode error = %v (%T), want IntegrityMismatch", err, err)
	}
}

// A bit flip in a cr_op's integrity word is equally fatal.
func TestDecodeCROpIntegrityMismatchIsFatal(t *testing.T) {
	table := roundTripTable()
	plain := testPlain()

	enc, err := Encode(roundTripProcSig, 0, plain, table, nil)
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	enc.CROps[3].Integrity ^= 1

	_, err = Decode(roundTripProcSig, enc, table, nil)
	var mismatch *patcherr.IntegrityMismatch
	if !errors.As(err, &mismatch) {
		t.Fatalf("Decode error = %v (%T), want IntegrityMismatch", err, err)
	}
}

// Decoding against an incomplete table is non-fatal at the integrity check:
// it is logged and decoding proceeds, recovering the same plaintext.
func TestDecodeUnknownFPROMContinuesDecoding(t *testing.T) {
	encodeTable := roundTripTable()
	plain := testPlain()

	enc, err := Encode(roundTripProcSig, 0, plain, encodeTable, nil)
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}

	decodeTable := fprom.FromMap(map[uint32]uint32{0x84: 0xF7697FB9})
	dec, err := Decode(roundTripProcSig, enc, decodeTable, nil)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if *dec != *plain {
		t.Fatalf("round trip mismatch with sparse decode table:\n got  %+v\n want %+v", dec, plain)
	}
}

func TestDecodeUnknownCPU(t *testing.T) {
	_, err := Decode(0x6D0, &Encrypted{}, fprom.New(), nil)
	var uc *patcherr.UnknownCPU
	if !errors.As(err, &uc) {
		t.Errorf("Decode error = %v (%T), want UnknownCPU", err, err)
	}
}
