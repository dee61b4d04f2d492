package types_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"geas/internal/domain/types"
)

func TestName_Valid(t *testing.T) {
	for _, n := range []string{"alice", "Bot", "bot-1", "a_b", "9lives"} {
		assert.True(t, types.Name(n).Valid(), n)
	}
	for _, n := range []string{"", "-lead", "_x", "a/b", "../a", "a.b", "sp ace", strings.Repeat("a", types.MaxNameLength+1)} {
		assert.False(t, types.Name(n).Valid(), n)
	}
}

func TestName_ExportVar(t *testing.T) {
	assert.Equal(t, "GEAS_KEY_BOT", types.Name("bot").ExportVar())
	assert.Equal(t, "GEAS_KEY_REVIEW_BOT_2", types.Name("review-bot_2").ExportVar())
}

func TestIdentity_RoleAccessors(t *testing.T) {
	human := types.Identity{Name: "alice", Profile: types.Human{}}
	agent := types.Identity{Name: "bot", Profile: types.Agent{Persona: "Dev", Model: "gpt-4"}}

	assert.Equal(t, types.RoleHuman, human.Role())
	assert.Empty(t, human.Persona())
	assert.Empty(t, human.Model())

	assert.Equal(t, types.RoleAgent, agent.Role())
	assert.Equal(t, "Dev", agent.Persona())
	assert.Equal(t, "gpt-4", agent.Model())
}

func TestParseRole(t *testing.T) {
	r, ok := types.ParseRole("agent")
	assert.True(t, ok)
	assert.Equal(t, types.RoleAgent, r)

	_, ok = types.ParseRole("Agent")
	assert.False(t, ok)
}
