// Package crypto exposes the minimal primitives used by geas.
//
// Contents
//
//   - Credential generation from crypto/rand (GenerateSecret)
//   - Short credential fingerprints for display (Fingerprint)
//   - Best-effort memory wiping for sensitive byte slices (Wipe)
//
// # Notes
//
// Secrets are returned as byte slices so callers can Wipe them once the key
// file is written and any export line has been printed.
package crypto
