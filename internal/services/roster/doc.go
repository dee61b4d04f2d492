// Package roster reads the agents roster from config/agents.yaml.
package roster
