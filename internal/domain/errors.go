package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned for a malformed name or an unknown role.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDuplicateIdentity is returned when the name is already in the ledger.
	ErrDuplicateIdentity = errors.New("identity already exists")

	// ErrNotInitialized is returned when the governance directory is missing.
	ErrNotInitialized = errors.New("GEAS is not initialized")

	// ErrAlreadyInitialized is returned by init when the governance directory exists.
	ErrAlreadyInitialized = errors.New("GEAS is already initialized")

	// ErrVaultDirMissing is returned when the key directory has not been created.
	ErrVaultDirMissing = errors.New("vault directory missing")

	// ErrVaultWrite wraps I/O failures while writing a credential.
	ErrVaultWrite = errors.New("vault write failed")

	// ErrCredentialExists is returned when a key file for the name is already present.
	ErrCredentialExists = errors.New("credential already exists")

	// ErrCredentialInUse is returned when the key file for the name belongs to
	// another governance directory sharing the vault.
	ErrCredentialInUse = errors.New("credential in use by another governance directory")

	// ErrStoreCorrupt is returned when the ledger document cannot be parsed.
	ErrStoreCorrupt = errors.New("identity ledger is corrupt")

	// ErrStoreWrite wraps I/O failures while rewriting the ledger.
	ErrStoreWrite = errors.New("identity ledger write failed")

	// ErrOrphanedCredential marks a key file that has no ledger entry.
	ErrOrphanedCredential = errors.New("orphaned credential")
)

// OrphanedCredentialError reports a key file left behind by a failed
// registration. The operator must remove KeyPath before retrying.
type OrphanedCredentialError struct {
	Name    Name
	KeyPath string
	Err     error
}

func (e *OrphanedCredentialError) Error() string {
	msg := fmt.Sprintf("orphaned credential for %q at %s", e.Name, e.KeyPath)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg + " (remove the key file before registering this name again)"
}

// Unwrap lets errors.Is match both ErrOrphanedCredential and the cause.
func (e *OrphanedCredentialError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrOrphanedCredential}
	}
	return []error{ErrOrphanedCredential, e.Err}
}
