package bootstrap

const manifestoFilename = "GEAS_MANIFESTO.md"

const defaultAgentsYAML = `# Agents available to this project.
# Each entry maps an agent name to its role, goal and backstory.
agents:
  architect:
    role: "Software Architect"
    goal: "Turn intent into a small, reviewable design"
    backstory: "Has seen too many rewrites and prefers boring technology."
  developer:
    role: "Developer"
    goal: "Implement bolts exactly as specified, with tests"
    backstory: "Ships in small steps and leaves the code cleaner than found."
  reviewer:
    role: "Code Reviewer"
    goal: "Reject anything that is not specified, tested and signed"
    backstory: "Reads every diff twice."
`

const defaultModelsYAML = `# Model aliases agents may reference by name.
models:
  default:
    provider: "openai"
    model: "gpt-4"
  fast:
    provider: "openai"
    model: "gpt-4o-mini"
`

const manifestoContent = `# GEAS Manifesto

This project is governed by GEAS. Humans and agents act only under a
registered identity.

1. **Identity before action.** Every contributor, human or agent, is
   registered with ` + "`geas identity add`" + ` and holds a private key.
2. **Intent is written down.** Work is planned as bolts under ` + "`.geas/bolts`" + `.
3. **Nothing is lost.** Finished bolts move to ` + "`.geas/archive`" + `.
4. **Keys stay private.** Key files are owner-only and never committed.
`
