package interfaces

import domaintypes "geas/internal/domain/types"

// IdentityService registers and inspects identities.
type IdentityService interface {
	Add(name domaintypes.Name, profile domaintypes.Profile) (domaintypes.Registration, error)
	List() ([]domaintypes.Identity, error)
	Verify() (domaintypes.Reconciliation, error)
}
