//go:build unix

package store_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"geas/internal/store"
)

func TestLedger_LockExcludesSecondHolder(t *testing.T) {
	root := newGovernance(t)
	first := store.NewLedgerFileStore(root)
	second := store.NewLedgerFileStore(root)

	unlock, err := first.Lock()
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		release, err := second.Lock()
		if err == nil {
			err = release()
		}
		done <- err
	}()

	select {
	case <-done:
		t.Fatal("second Lock returned while the first holder still had it")
	case <-time.After(200 * time.Millisecond):
	}

	require.NoError(t, unlock())

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("second Lock did not return after the first was released")
	}
}
