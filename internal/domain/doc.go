// Package domain defines the identity model, the ledger and vault contracts,
// and the error taxonomy shared across geas.
// It contains plain types and contracts (interfaces) only.
package domain
