package domain

import (
	interfaces "geas/internal/domain/interfaces"
	types "geas/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	Name           = types.Name
	Fingerprint    = types.Fingerprint
	Role           = types.Role
	Profile        = types.Profile
	Human          = types.Human
	Agent          = types.Agent
	Identity       = types.Identity
	Registration   = types.Registration
	Reconciliation = types.Reconciliation
)

// Role values and name limits re-exported for callers that only import domain.
const (
	RoleHuman     = types.RoleHuman
	RoleAgent     = types.RoleAgent
	MaxNameLength = types.MaxNameLength
)

// ParseRole maps s onto a known role.
func ParseRole(s string) (Role, bool) { return types.ParseRole(s) }

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	LedgerStore     = interfaces.LedgerStore
	CredentialVault = interfaces.CredentialVault
	IdentityService = interfaces.IdentityService
)
