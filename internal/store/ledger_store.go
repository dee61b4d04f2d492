package store

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"geas/internal/domain"
)

const (
	configDir      = "config"
	ledgerFilename = "identities.yaml"
	ledgerLockName = ".identities.lock"

	ledgerHeader = "# GEAS identity ledger. Managed by `geas identity add`.\n" +
		"# Secrets are not stored here; each identity's key lives in the vault.\n"
)

// ledgerRecord is the on-disk shape of one identity.
type ledgerRecord struct {
	Role    string `yaml:"role"`
	Persona string `yaml:"persona,omitempty"`
	Model   string `yaml:"model,omitempty"`
}

// LedgerFileStore persists identities as a YAML mapping of name to record in
// <root>/config/identities.yaml. Entry order is insertion order.
type LedgerFileStore struct {
	root string
	mu   sync.Mutex
}

// NewLedgerFileStore returns a LedgerFileStore for the governance directory root.
func NewLedgerFileStore(root string) *LedgerFileStore {
	return &LedgerFileStore{root: root}
}

// Path returns the ledger document path.
func (s *LedgerFileStore) Path() string {
	return filepath.Join(s.root, configDir, ledgerFilename)
}

// Initialized checks that the governance config directory exists.
func (s *LedgerFileStore) Initialized() error {
	dir := filepath.Join(s.root, configDir)
	info, err := os.Stat(dir)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s not found", domain.ErrNotInitialized, s.root)
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", domain.ErrNotInitialized, dir)
	}
	return nil
}

// Create writes an empty ledger. It fails if one is already present.
func (s *LedgerFileStore) Create() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.Initialized(); err != nil {
		return err
	}
	b, err := encodeLedger(nil)
	if err != nil {
		return err
	}
	if err := writeFileExclusive(s.Path(), b, 0o644); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStoreWrite, err)
	}
	return nil
}

// Load returns every identity keyed by name. A missing document is an empty ledger.
func (s *LedgerFileStore) Load() (map[domain.Name]domain.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.read()
	if err != nil {
		return nil, err
	}
	out := make(map[domain.Name]domain.Identity, len(ids))
	for _, id := range ids {
		out[id.Name] = id
	}
	return out, nil
}

// Exists reports whether name is in the ledger.
func (s *LedgerFileStore) Exists(name domain.Name) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.read()
	if err != nil {
		return false, err
	}
	return indexOf(ids, name) >= 0, nil
}

// Append adds id and rewrites the whole document through a temp file.
func (s *LedgerFileStore) Append(id domain.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !id.Name.Valid() {
		return fmt.Errorf("%w: invalid identity name %q", domain.ErrInvalidInput, id.Name)
	}
	if err := s.Initialized(); err != nil {
		return err
	}
	ids, err := s.read()
	if err != nil {
		return err
	}
	if indexOf(ids, id.Name) >= 0 {
		return fmt.Errorf("%w: %q", domain.ErrDuplicateIdentity, id.Name)
	}

	b, err := encodeLedger(append(ids, id))
	if err != nil {
		return err
	}
	if err := writeFile(s.Path(), b, 0o644); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStoreWrite, err)
	}

	logrus.WithFields(logrus.Fields{
		"name":    id.Name,
		"role":    id.Role(),
		"entries": len(ids) + 1,
	}).Debugln("Ledger rewritten")
	return nil
}

// List returns identities in insertion order.
func (s *LedgerFileStore) List() ([]domain.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.read()
}

// Lock takes an exclusive lock on the ledger across processes.
func (s *LedgerFileStore) Lock() (func() error, error) {
	if err := s.Initialized(); err != nil {
		return nil, err
	}
	unlock, err := lockFile(filepath.Join(s.root, configDir, ledgerLockName))
	if err != nil {
		return nil, fmt.Errorf("lock ledger: %w", err)
	}
	return unlock, nil
}

func (s *LedgerFileStore) read() ([]domain.Identity, error) {
	b, err := readFile(s.Path())
	if err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}
	if b == nil {
		return nil, nil
	}
	return decodeLedger(b)
}

func decodeLedger(b []byte) ([]domain.Identity, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreCorrupt, err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}
	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode && root.ShortTag() == "!!null" {
		return nil, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top level must map names to identities (line %d)", domain.ErrStoreCorrupt, root.Line)
	}

	ids := make([]domain.Identity, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		name := domain.Name(key.Value)
		if key.Kind != yaml.ScalarNode || !name.Valid() {
			return nil, fmt.Errorf("%w: invalid identity name %q (line %d)", domain.ErrStoreCorrupt, key.Value, key.Line)
		}
		if indexOf(ids, name) >= 0 {
			return nil, fmt.Errorf("%w: duplicate identity %q (line %d)", domain.ErrStoreCorrupt, name, key.Line)
		}

		var rec ledgerRecord
		if err := value.Decode(&rec); err != nil {
			return nil, fmt.Errorf("%w: identity %q: %v", domain.ErrStoreCorrupt, name, err)
		}
		id, err := rec.identity(name)
		if err != nil {
			return nil, fmt.Errorf("%w: identity %q: %v", domain.ErrStoreCorrupt, name, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func encodeLedger(ids []domain.Identity) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, id := range ids {
		var value yaml.Node
		if err := value.Encode(recordOf(id)); err != nil {
			return nil, fmt.Errorf("encode identity %q: %w", id.Name, err)
		}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: id.Name.String()},
			&value,
		)
	}

	var buf bytes.Buffer
	buf.WriteString(ledgerHeader)
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, fmt.Errorf("encode ledger: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode ledger: %w", err)
	}
	return buf.Bytes(), nil
}

func recordOf(id domain.Identity) ledgerRecord {
	return ledgerRecord{
		Role:    id.Role().String(),
		Persona: id.Persona(),
		Model:   id.Model(),
	}
}

// identity converts a record back into the role variant. Persona and model
// found on a human record are dropped.
func (r ledgerRecord) identity(name domain.Name) (domain.Identity, error) {
	switch domain.Role(r.Role) {
	case domain.RoleHuman:
		if r.Persona != "" || r.Model != "" {
			logrus.WithField("name", name).Warnln("Ignoring persona/model on human identity")
		}
		return domain.Identity{Name: name, Profile: domain.Human{}}, nil
	case domain.RoleAgent:
		return domain.Identity{Name: name, Profile: domain.Agent{Persona: r.Persona, Model: r.Model}}, nil
	default:
		return domain.Identity{}, fmt.Errorf("unknown role %q", r.Role)
	}
}

func indexOf(ids []domain.Identity, name domain.Name) int {
	for i, id := range ids {
		if id.Name == name {
			return i
		}
	}
	return -1
}

// Compile-time assertion that LedgerFileStore implements domain.LedgerStore.
var _ domain.LedgerStore = (*LedgerFileStore)(nil)
