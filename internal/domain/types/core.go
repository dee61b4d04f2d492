package types

import (
	"regexp"
	"strings"
)

const (
	// MaxNameLength bounds identity names so key file names stay portable.
	MaxNameLength = 64

	// ExportPrefix is prepended to the upper-cased name to form the shell variable
	// an agent reads its credential from.
	ExportPrefix = "GEAS_KEY_"
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// Name is the case-sensitive key of an identity across ledger and vault.
type Name string

// String returns the string form of the name.
func (n Name) String() string { return string(n) }

// Valid reports whether n is usable as a ledger key, a key file name and a
// shell variable suffix.
func (n Name) Valid() bool {
	return len(n) > 0 && len(n) <= MaxNameLength && namePattern.MatchString(string(n))
}

// ExportVar returns the environment variable carrying this identity's secret,
// e.g. GEAS_KEY_BOT for "bot".
func (n Name) ExportVar() string {
	return ExportPrefix + strings.ToUpper(strings.ReplaceAll(string(n), "-", "_"))
}

// Fingerprint is a short, non-secret identifier for a stored credential.
type Fingerprint string

// String returns the string form of the fingerprint.
func (f Fingerprint) String() string { return string(f) }

// Role is the kind of principal an identity represents.
type Role string

const (
	RoleHuman Role = "human"
	RoleAgent Role = "agent"
)

// String returns the string form of the role.
func (r Role) String() string { return string(r) }

// ParseRole maps s onto a known role.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleHuman:
		return RoleHuman, true
	case RoleAgent:
		return RoleAgent, true
	}
	return "", false
}
