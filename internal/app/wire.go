package app

import (
	"geas/internal/services/bootstrap"
	"geas/internal/services/identity"
	"geas/internal/services/roster"
	"geas/internal/store"
)

// Wire bundles all stores and services for the CLI.
type Wire struct {
	Ledger     *store.LedgerFileStore
	Vault      *store.VaultFileStore
	Identities *identity.Service
	Bootstrap  *bootstrap.Service
	Roster     *roster.Service
}

// NewWire constructs the dependency graph from cfg. Nothing touches the
// filesystem until a service method runs.
func NewWire(cfg Config) *Wire {
	ledger := store.NewLedgerFileStore(cfg.Root)
	vault := store.NewVaultFileStore(cfg.KeysDir, cfg.Root, cfg.Vault.SecretBytes)

	return &Wire{
		Ledger:     ledger,
		Vault:      vault,
		Identities: identity.New(ledger, vault),
		Bootstrap:  bootstrap.New(cfg.Root, ledger, vault),
		Roster:     roster.New(cfg.Root),
	}
}
