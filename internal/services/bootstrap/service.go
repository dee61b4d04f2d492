package bootstrap

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"geas/internal/domain"
)

// LedgerCreator writes the initial empty identity ledger.
type LedgerCreator interface {
	Create() error
	Path() string
}

// VaultCreator creates the owner-only key directory.
type VaultCreator interface {
	Create() error
	Dir() string
}

// Result lists what Init created.
type Result struct {
	Root     string
	VaultDir string
	Created  []string
}

// Service initializes governance directories.
type Service struct {
	root   string
	ledger LedgerCreator
	vault  VaultCreator
}

// New returns a bootstrap service for the governance directory root.
func New(root string, ledger LedgerCreator, vault VaultCreator) *Service {
	return &Service{root: root, ledger: ledger, vault: vault}
}

// Init scaffolds the governance directory. It refuses to touch an existing
// one, and removes what it created if any step fails.
func (s *Service) Init() (res Result, err error) {
	if _, err := os.Stat(s.root); err == nil {
		return Result{}, fmt.Errorf("%w: %s exists", domain.ErrAlreadyInitialized, s.root)
	} else if !errors.Is(err, os.ErrNotExist) {
		return Result{}, fmt.Errorf("stat %s: %w", s.root, err)
	}

	defer func() {
		if err != nil {
			if rmErr := os.RemoveAll(s.root); rmErr != nil {
				logrus.WithError(rmErr).WithField("root", s.root).Errorln("Failed to clean up partial initialization")
			}
		}
	}()

	for _, dir := range []string{"config", "bolts", "archive"} {
		if err := os.MkdirAll(filepath.Join(s.root, dir), 0o755); err != nil {
			return Result{}, fmt.Errorf("create %s: %w", dir, err)
		}
	}

	created := make([]string, 0, 4)
	for _, tmpl := range []struct{ name, body string }{
		{"agents.yaml", defaultAgentsYAML},
		{"models.yaml", defaultModelsYAML},
	} {
		path := filepath.Join(s.root, "config", tmpl.name)
		if err := writeTemplate(path, tmpl.body); err != nil {
			return Result{}, err
		}
		created = append(created, path)
	}

	if err := s.ledger.Create(); err != nil {
		return Result{}, err
	}
	created = append(created, s.ledger.Path())

	if err := s.vault.Create(); err != nil {
		return Result{}, err
	}

	manifesto := filepath.Join(filepath.Dir(s.root), manifestoFilename)
	if err := os.WriteFile(manifesto, []byte(manifestoContent), 0o644); err != nil {
		return Result{}, fmt.Errorf("write manifesto: %w", err)
	}
	created = append(created, manifesto)

	logrus.WithFields(logrus.Fields{
		"root":  s.root,
		"vault": s.vault.Dir(),
	}).Infoln("Governance directory initialized")

	return Result{Root: s.root, VaultDir: s.vault.Dir(), Created: created}, nil
}

// writeTemplate checks that body is valid YAML before writing it.
func writeTemplate(path, body string) error {
	var probe yaml.Node
	if err := yaml.Unmarshal([]byte(body), &probe); err != nil {
		return fmt.Errorf("template %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
