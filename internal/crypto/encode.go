package crypto

import "encoding/base64"

// encodeToken returns unpadded base64url so tokens contain only [A-Za-z0-9_-].
func encodeToken(b []byte) []byte {
	out := make([]byte, base64.RawURLEncoding.EncodedLen(len(b)))
	base64.RawURLEncoding.Encode(out, b)
	return out
}
