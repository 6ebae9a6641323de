package cpukey

import (
	"errors"
	"testing"

	"github.com/pbosch/p2patch/internal/patcherr"
)

func TestBaseRecognized(t *testing.T) {
	cases := []struct {
		sig  uint32
		want uint32
	}{
		{0x650, deschutesA},
		{0x651, deschutesA},
		{0x652, deschutesB},
		{0x653, deschutesB},
		{0x660, mobileA},
		{0x66A, mobileA},
		{0x66D, mobileA},
		{0x665, mobileB},
		{0x670, katmaiA},
		{0x671, katmaiA},
		{0x672, katmaiB},
		{0x673, katmaiC},
		{0x680, coppermineA},
		{0x681, coppermineA},
		{0x686, coppermineB},
		{0x68a, coppermineC},
		{0x694, baniasA},
		{0x695, baniasA},
		{0x6a0, cascadesA},
		{0x6a1, cascadesA},
		{0x6b0, cascadesB},
		{0x6b1, cascadesB},
		{0x6b4, mendocinoA},
	}
	for _, c := range cases {
		got, err := Base(c.sig)
		if err != nil {
			t.Errorf("Base(0x%03X) returned error: %v", c.sig, err)
			continue
		}
		if got != c.want {
			t.Errorf("Base(0x%03X) = 0x%08X, want 0x%08X", c.sig, got, c.want)
		}
	}
}

// Only the low 12 bits participate; unrelated high bits (e.g. a model/family
// nibble carried along in a real CPUID value) must not change the result.
func TestBaseIgnoresHighBits(t *testing.T) {
	got, err := Base(0x000F0652)
	if err != nil {
		t.Fatalf("Base returned error: %v", err)
	}
	if got != deschutesB {
		t.Errorf("Base(0x000F0652) = 0x%08X, want 0x%08X", got, deschutesB)
	}
}

func TestBaseUnknown(t *testing.T) {
	unknown := []uint32{0x683, 0x6a4, 0x6d0, 0x6d8, 0x000, 0xFFF}
	for _, sig := range unknown {
		_, err := Base(sig)
		if err == nil {
			t.Errorf("Base(0x%03X) = nil error, want UnknownCPU", sig)
			continue
		}
		var uc *patcherr.UnknownCPU
		if !errors.As(err, &uc) {
			t.Errorf("Base(0x%03X) error = %T, want *patcherr.UnknownCPU", sig, err)
		}
	}
}
