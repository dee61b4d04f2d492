package identity

import (
	"errors"
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"

	"geas/internal/crypto"
	"geas/internal/domain"
)

// Service is the identity registrar over a ledger and a credential vault.
type Service struct {
	ledger domain.LedgerStore
	vault  domain.CredentialVault
}

// New returns an identity service backed by the given stores.
func New(ledger domain.LedgerStore, vault domain.CredentialVault) *Service {
	return &Service{ledger: ledger, vault: vault}
}

// ParseProfile builds the role variant from CLI-style input. Persona and
// model are discarded for humans.
func ParseProfile(role, persona, model string) (domain.Profile, error) {
	r, ok := domain.ParseRole(role)
	if !ok {
		return nil, fmt.Errorf("%w: role must be %q or %q, got %q",
			domain.ErrInvalidInput, domain.RoleHuman, domain.RoleAgent, role)
	}
	if r == domain.RoleHuman {
		if persona != "" || model != "" {
			logrus.Warnln("Persona and model apply to agents only; ignoring them for a human identity")
		}
		return domain.Human{}, nil
	}
	return domain.Agent{Persona: persona, Model: model}, nil
}

// Add registers name with profile. Either both the key file and the ledger
// entry exist afterwards, or an error is returned.
func (s *Service) Add(name domain.Name, profile domain.Profile) (domain.Registration, error) {
	if !name.Valid() {
		return domain.Registration{}, fmt.Errorf(
			"%w: name %q must be 1-%d letters, digits, '-' or '_' and start with a letter or digit",
			domain.ErrInvalidInput, name, domain.MaxNameLength)
	}
	if profile == nil {
		return domain.Registration{}, fmt.Errorf("%w: role is required", domain.ErrInvalidInput)
	}
	if err := s.ledger.Initialized(); err != nil {
		return domain.Registration{}, err
	}
	if err := s.vault.Ready(); err != nil {
		return domain.Registration{}, err
	}

	unlock, err := s.ledger.Lock()
	if err != nil {
		return domain.Registration{}, err
	}
	defer func() {
		if err := unlock(); err != nil {
			logrus.WithError(err).Warnln("Failed to release ledger lock")
		}
	}()

	exists, err := s.ledger.Exists(name)
	if err != nil {
		return domain.Registration{}, err
	}
	if exists {
		return domain.Registration{}, fmt.Errorf("%w: %q", domain.ErrDuplicateIdentity, name)
	}
	if err := s.checkExportVar(name); err != nil {
		return domain.Registration{}, err
	}

	// A key without a ledger entry is either another governance directory's
	// credential or left over from an earlier failure. Never overwrite it.
	present, err := s.vault.Exists(name)
	if err != nil {
		return domain.Registration{}, err
	}
	if present {
		owner, mine, err := s.vault.Owner(name)
		if err != nil {
			return domain.Registration{}, err
		}
		if !mine {
			return domain.Registration{}, fmt.Errorf("%w: %q is registered by %s", domain.ErrCredentialInUse, name, owner)
		}
		return domain.Registration{}, &domain.OrphanedCredentialError{Name: name, KeyPath: s.vault.Path(name)}
	}

	secret, err := s.vault.Generate()
	if err != nil {
		return domain.Registration{}, fmt.Errorf("generate credential: %w", err)
	}
	defer crypto.Wipe(secret)

	keyPath, err := s.vault.Store(name, secret)
	if err != nil {
		return domain.Registration{}, err
	}

	id := domain.Identity{Name: name, Profile: profile}
	if err := s.ledger.Append(id); err != nil {
		return domain.Registration{}, s.rollback(name, keyPath, err)
	}

	reg := domain.Registration{
		Identity:    id,
		KeyPath:     keyPath,
		Fingerprint: domain.Fingerprint(crypto.Fingerprint(secret)),
	}
	if profile.Role() == domain.RoleAgent {
		reg.Export = name.ExportVar() + "=" + string(secret)
	}

	logrus.WithFields(logrus.Fields{
		"name":        name,
		"role":        profile.Role(),
		"fingerprint": reg.Fingerprint,
	}).Infoln("Identity registered")
	return reg, nil
}

// checkExportVar rejects a name whose environment variable is already taken
// by another identity, such as "a-b" next to "a_b" or "Bot" next to "bot".
func (s *Service) checkExportVar(name domain.Name) error {
	ids, err := s.ledger.List()
	if err != nil {
		return err
	}
	v := name.ExportVar()
	for _, id := range ids {
		if id.Name.ExportVar() == v {
			return fmt.Errorf("%w: %q exports the same variable %s as %q", domain.ErrDuplicateIdentity, name, v, id.Name)
		}
	}
	return nil
}

// rollback removes the key written for a registration whose ledger append
// failed.
func (s *Service) rollback(name domain.Name, keyPath string, cause error) error {
	if err := s.vault.Remove(name); err != nil {
		logrus.WithError(err).WithField("path", keyPath).Errorln("Could not remove credential after ledger failure")
		return &domain.OrphanedCredentialError{
			Name:    name,
			KeyPath: keyPath,
			Err:     errors.Join(cause, err),
		}
	}
	logrus.WithField("name", name).Warnln("Ledger write failed; credential removed")
	return fmt.Errorf("register %q: %w", name, cause)
}

// List returns registered identities in ledger order.
func (s *Service) List() ([]domain.Identity, error) {
	if err := s.ledger.Initialized(); err != nil {
		return nil, err
	}
	return s.ledger.List()
}

// Verify compares ledger and vault.
func (s *Service) Verify() (domain.Reconciliation, error) {
	ids, err := s.List()
	if err != nil {
		return domain.Reconciliation{}, err
	}
	keys, err := s.vault.List()
	if err != nil {
		return domain.Reconciliation{}, err
	}
	exposed, err := s.vault.Exposed()
	if err != nil {
		return domain.Reconciliation{}, err
	}

	registered := make(map[domain.Name]bool, len(ids))
	for _, id := range ids {
		registered[id.Name] = true
	}
	stored := make(map[domain.Name]bool, len(keys))
	for _, k := range keys {
		stored[k] = true
	}

	var rec domain.Reconciliation
	foreign := make(map[domain.Name]bool)
	for _, k := range keys {
		if registered[k] {
			continue
		}
		_, mine, err := s.vault.Owner(k)
		if err != nil {
			return domain.Reconciliation{}, err
		}
		if mine {
			rec.Orphaned = append(rec.Orphaned, k)
		} else {
			foreign[k] = true
			rec.Foreign = append(rec.Foreign, k)
		}
	}
	for _, id := range ids {
		if !stored[id.Name] {
			rec.Unbacked = append(rec.Unbacked, id.Name)
		}
	}
	for _, k := range exposed {
		if !foreign[k] {
			rec.Exposed = append(rec.Exposed, k)
		}
	}
	slices.Sort(rec.Orphaned)
	slices.Sort(rec.Unbacked)
	return rec, nil
}

// Fingerprint returns the fingerprint of name's stored credential.
func (s *Service) Fingerprint(name domain.Name) (domain.Fingerprint, error) {
	return s.vault.Fingerprint(name)
}

// Compile-time assertion that Service implements domain.IdentityService.
var _ domain.IdentityService = (*Service)(nil)
