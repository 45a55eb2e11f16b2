package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
	"github.com/mr-tron/base58"
)

// GenerateInviteCode returns a 6-character invite code. Base58 keeps the codes
// free of ambiguous characters (0/O, I/l) since users type them by hand.
func GenerateInviteCode() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	code := base58.Encode(buf)
	if len(code) < 6 {
		return "", fmt.Errorf("short invite code from %d random bytes", len(buf))
	}

	return code[:6], nil
}

// GenerateQRToken returns the unique token embedded in an order's delivery QR code.
func GenerateQRToken() string {
	return uuid.NewString()
}

// GenerateTrackingNumber returns a display tracking number like TRK-4821.
func GenerateTrackingNumber() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("TRK-%d", n.Int64()+1000), nil
}
