package store

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"geas/internal/crypto"
	"geas/internal/domain"
)

const (
	keySuffix   = ".key"
	ownerSuffix = ".owner"
	keyMode     = os.FileMode(0o600)
)

// VaultFileStore keeps one owner-only <name>.key file per identity in dir.
// Several governance directories may share dir; each key has a <name>.owner
// sidecar holding the absolute governance directory that registered it.
type VaultFileStore struct {
	dir         string
	owner       string
	secretBytes int
	mu          sync.Mutex
}

// NewVaultFileStore returns a VaultFileStore rooted at dir that generates
// secrets of secretBytes random bytes. Keys it stores are recorded as
// belonging to the governance directory owner; an empty owner records none.
func NewVaultFileStore(dir, owner string, secretBytes int) *VaultFileStore {
	if secretBytes < crypto.MinSecretBytes {
		secretBytes = crypto.MinSecretBytes
	}
	if owner != "" {
		if abs, err := filepath.Abs(owner); err == nil {
			owner = abs
		} else {
			owner = filepath.Clean(owner)
		}
	}
	return &VaultFileStore{dir: dir, owner: owner, secretBytes: secretBytes}
}

// Dir returns the vault directory.
func (s *VaultFileStore) Dir() string { return s.dir }

// Path returns the key file path for name.
func (s *VaultFileStore) Path(name domain.Name) string {
	return filepath.Join(s.dir, name.String()+keySuffix)
}

func (s *VaultFileStore) ownerPath(name domain.Name) string {
	return filepath.Join(s.dir, name.String()+ownerSuffix)
}

// Ready checks that the vault directory has been created.
func (s *VaultFileStore) Ready() error {
	info, err := os.Stat(s.dir)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", domain.ErrVaultDirMissing, s.dir)
	}
	if err != nil {
		return fmt.Errorf("stat vault: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", domain.ErrVaultDirMissing, s.dir)
	}
	return nil
}

// Create makes the vault directory with mode 0700. An existing directory is
// tightened to 0700.
func (s *VaultFileStore) Create() error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("create vault: %w", err)
	}
	if err := os.Chmod(s.dir, 0o700); err != nil {
		return fmt.Errorf("create vault: %w", err)
	}
	return nil
}

// Generate returns fresh secret material.
func (s *VaultFileStore) Generate() ([]byte, error) {
	return crypto.GenerateSecret(s.secretBytes)
}

// Store writes secret to <dir>/<name>.key with mode 0600. An existing key
// file is never replaced.
func (s *VaultFileStore) Store(name domain.Name, secret []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !name.Valid() {
		return "", fmt.Errorf("%w: invalid identity name %q", domain.ErrInvalidInput, name)
	}
	if len(secret) == 0 {
		return "", fmt.Errorf("%w: empty secret", domain.ErrInvalidInput)
	}
	if err := s.Ready(); err != nil {
		return "", err
	}

	data := make([]byte, 0, len(secret)+1)
	data = append(append(data, secret...), '\n')
	defer crypto.Wipe(data)

	path := s.Path(name)
	if err := writeFileExclusive(path, data, keyMode); err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("%w: %s", domain.ErrCredentialExists, path)
		}
		return "", fmt.Errorf("%w: %w", domain.ErrVaultWrite, err)
	}

	if s.owner != "" {
		if err := writeFile(s.ownerPath(name), []byte(s.owner+"\n"), keyMode); err != nil {
			err = fmt.Errorf("%w: record owner: %w", domain.ErrVaultWrite, err)
			if rmErr := os.Remove(path); rmErr != nil {
				return "", &domain.OrphanedCredentialError{Name: name, KeyPath: path, Err: errors.Join(err, rmErr)}
			}
			return "", err
		}
	}

	logrus.WithFields(logrus.Fields{"name": name, "path": path}).Debugln("Credential stored")
	return path, nil
}

// Exists reports whether a key file for name is present.
func (s *VaultFileStore) Exists(name domain.Name) (bool, error) {
	_, err := os.Lstat(s.Path(name))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("stat credential %q: %w", name, err)
	}
}

// Remove deletes the key file for name and its owner record. Missing files
// are not an error.
func (s *VaultFileStore) Remove(name domain.Name) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.Path(name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %w", domain.ErrVaultWrite, err)
	}
	if err := os.Remove(s.ownerPath(name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		logrus.WithError(err).WithField("name", name).Warnln("Failed to remove credential owner record")
	}
	return nil
}

// Owner returns the governance directory recorded for name's key file and
// whether it is this vault's owner. A key with no owner record, or a vault
// with no owner, counts as its own.
func (s *VaultFileStore) Owner(name domain.Name) (string, bool, error) {
	b, err := readFile(s.ownerPath(name))
	if err != nil {
		return "", false, fmt.Errorf("read credential owner %q: %w", name, err)
	}
	owner := strings.TrimSpace(string(b))
	mine := owner == "" || s.owner == "" || owner == s.owner
	return owner, mine, nil
}

// Fingerprint hashes the stored credential without returning it.
func (s *VaultFileStore) Fingerprint(name domain.Name) (domain.Fingerprint, error) {
	b, err := os.ReadFile(s.Path(name))
	if err != nil {
		return "", fmt.Errorf("read credential %q: %w", name, err)
	}
	defer crypto.Wipe(b)

	return domain.Fingerprint(crypto.Fingerprint(bytes.TrimRight(b, "\r\n"))), nil
}

// List returns the names of all key files, sorted.
func (s *VaultFileStore) List() ([]domain.Name, error) {
	if err := s.Ready(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list vault: %w", err)
	}

	var names []domain.Name
	for _, e := range entries {
		if !e.Type().IsRegular() || !strings.HasSuffix(e.Name(), keySuffix) {
			continue
		}
		name := domain.Name(strings.TrimSuffix(e.Name(), keySuffix))
		if name.Valid() {
			names = append(names, name)
		}
	}
	return names, nil
}

// Exposed returns the names whose key files grant group or other access.
func (s *VaultFileStore) Exposed() ([]domain.Name, error) {
	names, err := s.List()
	if err != nil {
		return nil, err
	}
	var exposed []domain.Name
	for _, name := range names {
		info, err := os.Lstat(s.Path(name))
		if err != nil {
			return nil, fmt.Errorf("stat credential %q: %w", name, err)
		}
		if info.Mode().Perm()&0o077 != 0 {
			exposed = append(exposed, name)
		}
	}
	return exposed, nil
}

// Compile-time assertion that VaultFileStore implements domain.CredentialVault.
var _ domain.CredentialVault = (*VaultFileStore)(nil)
