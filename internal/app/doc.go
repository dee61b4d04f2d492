// Package app loads configuration and wires application dependencies for
// the CLI.
//
// It reads settings from flags, GEAS_* environment variables, an optional
// .env file and an optional geas.yaml, configures logging, and builds the
// concrete stores and services exposed via the Wire struct.
package app
