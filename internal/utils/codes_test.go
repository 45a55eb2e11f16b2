package utils

import (
	"strings"
	"testing"
)

func TestGenerateInviteCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := GenerateInviteCode()
		if err != nil {
			t.Fatalf("GenerateInviteCode failed: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("expected a 6-char code, got %q", code)
		}
		if strings.ContainsAny(code, "0OIl") {
			t.Errorf("code %q contains an ambiguous character", code)
		}
		seen[code] = true
	}
	if len(seen) < 95 {
		t.Errorf("expected near-unique codes, got %d distinct of 100", len(seen))
	}
}

func TestGenerateQRToken(t *testing.T) {
	a := GenerateQRToken()
	b := GenerateQRToken()
	if a == "" || a == b {
		t.Errorf("expected distinct non-empty tokens, got %q and %q", a, b)
	}
}

func TestGenerateTrackingNumber(t *testing.T) {
	for i := 0; i < 20; i++ {
		tracking, err := GenerateTrackingNumber()
		if err != nil {
			t.Fatalf("GenerateTrackingNumber failed: %v", err)
		}
		if !strings.HasPrefix(tracking, "TRK-") || len(tracking) != 8 {
			t.Errorf("unexpected tracking number format: %q", tracking)
		}
	}
}
