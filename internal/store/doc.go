// Package store provides file-based persistence for geas identities.
//
// It contains concrete implementations of the domain storage interfaces:
//   - LedgerFileStore: the YAML identity ledger under <root>/config, rewritten
//     in full through a temp file on every change and guarded by an
//     exclusive flock for check-then-append sequences.
//   - VaultFileStore: one owner-only (0600) <name>.key file per identity.
//
// Key files are linked into place from a fully written temp file, so a
// credential is either complete or absent, and never overwritten.
package store
