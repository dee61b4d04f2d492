package crypto

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Fingerprint returns a short hex fingerprint of a credential.
//
// It hashes with BLAKE2b-256 and truncates to 10 bytes (20 hex chars), which
// identifies a key file without revealing the secret.
func Fingerprint(secret []byte) string {
	sum := blake2b.Sum256(secret)
	return hex.EncodeToString(sum[:10])
}
