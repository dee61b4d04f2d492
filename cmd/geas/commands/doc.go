// Package commands defines the geas CLI and wires dependencies for subcommands.
//
// Commands
//
//   - init            Create the governance directory and key vault
//   - identity add    Register a human or agent and generate its key
//   - identity list   Show registered identities
//   - identity verify Report key files and ledger entries that disagree
//   - agents          Show the agents roster
//
// # Implementation
//
// The root command loads configuration and builds the dependency graph
// (stores and services) before any subcommand runs. Every failure is printed
// once by Execute and turns into exit code 1 in main.
package commands
