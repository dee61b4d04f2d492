package types

// Profile is the role-specific part of an identity. It is sealed: the only
// implementations are Human and Agent, so persona and model can only ever be
// attached to an agent.
type Profile interface {
	Role() Role
	isProfile()
}

// Human is a person operating the project. It carries no model metadata.
type Human struct{}

// Role implements Profile.
func (Human) Role() Role { return RoleHuman }

func (Human) isProfile() {}

// Agent is an automated principal backed by a model.
type Agent struct {
	Persona string
	Model   string
}

// Role implements Profile.
func (Agent) Role() Role { return RoleAgent }

func (Agent) isProfile() {}

// Identity is a registered principal. Its credential lives in the vault under
// the same Name.
type Identity struct {
	Name    Name
	Profile Profile
}

// Role returns the identity's role, defaulting to human for a nil profile.
func (id Identity) Role() Role {
	if id.Profile == nil {
		return RoleHuman
	}
	return id.Profile.Role()
}

// Persona returns the agent persona, or "" for humans.
func (id Identity) Persona() string {
	if a, ok := id.Profile.(Agent); ok {
		return a.Persona
	}
	return ""
}

// Model returns the backing model, or "" for humans.
func (id Identity) Model() string {
	if a, ok := id.Profile.(Agent); ok {
		return a.Model
	}
	return ""
}

// Registration is the outcome of a successful add.
type Registration struct {
	Identity    Identity
	KeyPath     string
	Fingerprint Fingerprint

	// Export is the "GEAS_KEY_<NAME>=<secret>" assignment. It is only set for
	// agents; a human's secret is never echoed.
	Export string
}

// Reconciliation lists the ways ledger and vault disagree.
type Reconciliation struct {
	// Orphaned are key files with no ledger entry.
	Orphaned []Name
	// Unbacked are ledger entries with no key file.
	Unbacked []Name
	// Exposed are key files readable by group or other.
	Exposed []Name
	// Foreign are key files registered by another governance directory
	// sharing the vault. They do not make the result inconsistent.
	Foreign []Name
}

// Consistent reports whether ledger and vault describe the same identities
// and every key file is owner-only.
func (r Reconciliation) Consistent() bool {
	return len(r.Orphaned) == 0 && len(r.Unbacked) == 0 && len(r.Exposed) == 0
}
