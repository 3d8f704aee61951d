package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vytor/wordflash/internal/store"
)

// NewTestStore creates a store backed by a temp file that is removed when
// the test finishes.
func NewTestStore(t *testing.T) *store.Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "wordflash-test.db")
	st, err := store.Open(path)
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, st.Close())
	})
	return st
}
