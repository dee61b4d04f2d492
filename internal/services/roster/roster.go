package roster

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"geas/internal/domain"
)

const agentsFile = "agents.yaml"

// Agent is one roster entry.
type Agent struct {
	Name      string `yaml:"-"`
	Role      string `yaml:"role"`
	Goal      string `yaml:"goal"`
	Backstory string `yaml:"backstory"`
}

type document struct {
	Agents map[string]Agent `yaml:"agents"`
}

// Service loads the roster of the governance directory root.
type Service struct {
	root string
}

// New returns a roster service for root.
func New(root string) *Service { return &Service{root: root} }

// Agents returns the roster sorted by name.
func (s *Service) Agents() ([]Agent, error) {
	if _, err := os.Stat(s.root); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s not found", domain.ErrNotInitialized, s.root)
	}

	path := filepath.Join(s.root, "config", agentsFile)
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s is missing", domain.ErrNotInitialized, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}

	var doc document
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrStoreCorrupt, agentsFile, err)
	}

	out := make([]Agent, 0, len(doc.Agents))
	for name, a := range doc.Agents {
		a.Name = name
		out = append(out, a)
	}
	slices.SortFunc(out, func(a, b Agent) int { return strings.Compare(a.Name, b.Name) })
	return out, nil
}
