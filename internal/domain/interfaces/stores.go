package interfaces

import domaintypes "geas/internal/domain/types"

// LedgerStore owns the authoritative list of identities.
type LedgerStore interface {
	// Initialized fails with domain.ErrNotInitialized when the governance
	// directory has not been created.
	Initialized() error
	Load() (map[domaintypes.Name]domaintypes.Identity, error)
	Exists(name domaintypes.Name) (bool, error)
	Append(id domaintypes.Identity) error
	List() ([]domaintypes.Identity, error)
	// Lock takes an exclusive lock over the ledger for a check-then-append
	// sequence and returns the function that releases it.
	Lock() (unlock func() error, err error)
}

// CredentialVault owns the raw secret bytes, one file per identity.
type CredentialVault interface {
	// Ready fails with domain.ErrVaultDirMissing when the vault directory is absent.
	Ready() error
	Generate() ([]byte, error)
	// Store writes secret for name and returns the key file path. It never
	// overwrites an existing credential.
	Store(name domaintypes.Name, secret []byte) (string, error)
	Exists(name domaintypes.Name) (bool, error)
	Remove(name domaintypes.Name) error
	// Owner returns the governance directory recorded for name's key file
	// and whether it is the caller's own. Unrecorded keys count as the caller's.
	Owner(name domaintypes.Name) (owner string, mine bool, err error)
	Fingerprint(name domaintypes.Name) (domaintypes.Fingerprint, error)
	List() ([]domaintypes.Name, error)
	// Exposed lists key files whose permissions allow group or other access.
	Exposed() ([]domaintypes.Name, error)
	Path(name domaintypes.Name) string
}
