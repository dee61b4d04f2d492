// Package bootstrap scaffolds a governance directory: config templates,
// working directories, an empty identity ledger, the project manifesto and
// the owner-only key vault.
package bootstrap
