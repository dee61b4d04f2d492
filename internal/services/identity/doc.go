// Package identity registers humans and agents against the governance
// directory.
//
// Registration keeps the ledger and the vault in step: the name is checked
// under an exclusive ledger lock, the credential is written first, and the
// ledger entry last. If the ledger write fails the fresh key file is removed;
// if that also fails the caller gets a *domain.OrphanedCredentialError naming
// the file to clean up.
//
// The vault may be shared by several governance directories. A key file that
// another directory registered is reported as in use, never as an orphan.
package identity
