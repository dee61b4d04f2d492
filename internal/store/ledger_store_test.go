package store_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geas/internal/domain"
	"geas/internal/store"
)

// newGovernance creates <tmp>/.geas/config and returns the .geas root.
func newGovernance(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), ".geas")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "config"), 0o755))
	return root
}

func writeLedger(t *testing.T, root, body string) {
	t.Helper()
	path := filepath.Join(root, "config", "identities.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestLedger_LoadMissingIsEmpty(t *testing.T) {
	ledger := store.NewLedgerFileStore(newGovernance(t))

	ids, err := ledger.Load()
	require.NoError(t, err)
	assert.Empty(t, ids)

	ok, err := ledger.Exists("alice")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLedger_RoundTrip(t *testing.T) {
	root := newGovernance(t)
	ledger := store.NewLedgerFileStore(root)

	alice := domain.Identity{Name: "alice", Profile: domain.Human{}}
	bot := domain.Identity{Name: "bot", Profile: domain.Agent{Persona: "Dev", Model: "gpt-4"}}
	require.NoError(t, ledger.Append(alice))
	require.NoError(t, ledger.Append(bot))

	// A fresh handle must see exactly what was written.
	reloaded, err := store.NewLedgerFileStore(root).Load()
	require.NoError(t, err)
	require.Len(t, reloaded, 2)
	assert.Equal(t, alice, reloaded["alice"])
	assert.Equal(t, bot, reloaded["bot"])
}

func TestLedger_DocumentShape(t *testing.T) {
	root := newGovernance(t)
	ledger := store.NewLedgerFileStore(root)

	require.NoError(t, ledger.Append(domain.Identity{Name: "alice", Profile: domain.Human{}}))
	require.NoError(t, ledger.Append(domain.Identity{Name: "bot", Profile: domain.Agent{Persona: "Dev", Model: "gpt-4"}}))

	b, err := os.ReadFile(ledger.Path())
	require.NoError(t, err)
	assert.Contains(t, string(b), "alice:\n  role: human\n")
	assert.Contains(t, string(b), "bot:\n  role: agent\n  persona: Dev\n  model: gpt-4\n")
}

func TestLedger_ListKeepsInsertionOrder(t *testing.T) {
	ledger := store.NewLedgerFileStore(newGovernance(t))
	for _, n := range []domain.Name{"zed", "alice", "mike"} {
		require.NoError(t, ledger.Append(domain.Identity{Name: n, Profile: domain.Human{}}))
	}

	first, err := ledger.List()
	require.NoError(t, err)
	second, err := ledger.List()
	require.NoError(t, err)

	require.Len(t, first, 3)
	assert.Equal(t, []domain.Name{"zed", "alice", "mike"}, names(first))
	assert.Equal(t, first, second)
}

func TestLedger_AppendDuplicateLeavesDocument(t *testing.T) {
	ledger := store.NewLedgerFileStore(newGovernance(t))
	require.NoError(t, ledger.Append(domain.Identity{Name: "bob", Profile: domain.Human{}}))

	before, err := os.ReadFile(ledger.Path())
	require.NoError(t, err)

	err = ledger.Append(domain.Identity{Name: "bob", Profile: domain.Agent{Model: "gpt-4"}})
	assert.ErrorIs(t, err, domain.ErrDuplicateIdentity)

	after, err := os.ReadFile(ledger.Path())
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestLedger_NamesThatLookLikeScalars(t *testing.T) {
	root := newGovernance(t)
	ledger := store.NewLedgerFileStore(root)
	for _, n := range []domain.Name{"true", "null", "123"} {
		require.NoError(t, ledger.Append(domain.Identity{Name: n, Profile: domain.Human{}}))
	}

	ids, err := store.NewLedgerFileStore(root).List()
	require.NoError(t, err)
	assert.Equal(t, []domain.Name{"true", "null", "123"}, names(ids))
}

func TestLedger_HumanPersonaIsDropped(t *testing.T) {
	root := newGovernance(t)
	writeLedger(t, root, "carol:\n  role: human\n  persona: Ops\n  model: gpt-4\n")

	ids, err := store.NewLedgerFileStore(root).Load()
	require.NoError(t, err)
	assert.Equal(t, domain.Identity{Name: "carol", Profile: domain.Human{}}, ids["carol"])
}

func TestLedger_EmptyDocuments(t *testing.T) {
	for name, body := range map[string]string{
		"blank":        "",
		"comment only": "# nothing yet\n",
		"empty map":    "{}\n",
		"null":         "null\n",
	} {
		t.Run(name, func(t *testing.T) {
			root := newGovernance(t)
			writeLedger(t, root, body)

			ids, err := store.NewLedgerFileStore(root).List()
			require.NoError(t, err)
			assert.Empty(t, ids)
		})
	}
}

func TestLedger_Corrupt(t *testing.T) {
	for name, body := range map[string]string{
		"not yaml":      "alice: [\n",
		"top-level seq": "- alice\n- bob\n",
		"unknown role":  "alice:\n  role: robot\n",
		"missing role":  "alice: {}\n",
		"scalar record": "alice: human\n",
		"bad name":      "\"../etc\":\n  role: human\n",
		"duplicate":     "alice:\n  role: human\nalice:\n  role: agent\n",
	} {
		t.Run(name, func(t *testing.T) {
			root := newGovernance(t)
			writeLedger(t, root, body)

			_, err := store.NewLedgerFileStore(root).Load()
			assert.ErrorIs(t, err, domain.ErrStoreCorrupt)
		})
	}
}

func TestLedger_NotInitialized(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, ".geas")
	ledger := store.NewLedgerFileStore(root)

	assert.ErrorIs(t, ledger.Initialized(), domain.ErrNotInitialized)
	assert.ErrorIs(t, ledger.Append(domain.Identity{Name: "alice", Profile: domain.Human{}}), domain.ErrNotInitialized)
	_, err := ledger.Lock()
	assert.ErrorIs(t, err, domain.ErrNotInitialized)

	_, err = os.Stat(root)
	assert.True(t, os.IsNotExist(err), "no directories may be created")
}

func TestLedger_WriteFailureKeepsPriorState(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}
	root := newGovernance(t)
	ledger := store.NewLedgerFileStore(root)
	require.NoError(t, ledger.Append(domain.Identity{Name: "alice", Profile: domain.Human{}}))
	before, err := os.ReadFile(ledger.Path())
	require.NoError(t, err)

	configDir := filepath.Join(root, "config")
	require.NoError(t, os.Chmod(configDir, 0o500))
	t.Cleanup(func() { _ = os.Chmod(configDir, 0o755) })

	err = ledger.Append(domain.Identity{Name: "bob", Profile: domain.Human{}})
	assert.ErrorIs(t, err, domain.ErrStoreWrite)

	after, err := os.ReadFile(ledger.Path())
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestLedger_Create(t *testing.T) {
	ledger := store.NewLedgerFileStore(newGovernance(t))
	require.NoError(t, ledger.Create())

	ids, err := ledger.List()
	require.NoError(t, err)
	assert.Empty(t, ids)

	assert.ErrorIs(t, ledger.Create(), domain.ErrStoreWrite)
}

func TestLedger_LockReleases(t *testing.T) {
	ledger := store.NewLedgerFileStore(newGovernance(t))

	for i := 0; i < 2; i++ {
		unlock, err := ledger.Lock()
		require.NoError(t, err)
		require.NoError(t, unlock())
	}
}

func names(ids []domain.Identity) []domain.Name {
	out := make([]domain.Name, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.Name)
	}
	return out
}
