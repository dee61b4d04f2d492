package crypto

import (
	"crypto/rand"
	"fmt"
)

// MinSecretBytes is the smallest accepted amount of entropy (256 bits).
const MinSecretBytes = 32

// ErrShortSecret is returned when a caller asks for less than MinSecretBytes.
var ErrShortSecret = fmt.Errorf("secret must carry at least %d random bytes", MinSecretBytes)

// GenerateSecret draws n bytes from crypto/rand and returns them as an
// unpadded base64url token, which is safe to embed in a shell assignment.
func GenerateSecret(n int) ([]byte, error) {
	if n < MinSecretBytes {
		return nil, ErrShortSecret
	}
	raw := make([]byte, n)
	defer Wipe(raw)

	if _, err := rand.Read(raw); err != nil {
		return nil, fmt.Errorf("read random: %w", err)
	}
	return encodeToken(raw), nil
}
