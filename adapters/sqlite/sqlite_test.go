package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sorenlabs/soren/core"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "soren.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_AccountsRoundTrip(t *testing.T) {
	s := openStore(t)

	// A fresh store reads as an empty collection.
	accounts, err := s.ListAccounts()
	require.NoError(t, err)
	require.Empty(t, accounts)
	require.NotNil(t, accounts)

	saved := []core.Account{
		{ID: "id-1", Name: "Alice", Email: "alice@example.com", Password: "hashed", Provider: "direct"},
		{ID: "google_123", Name: "Bob", Email: "bob@example.com", Provider: "google", ProviderSubject: "123"},
	}
	require.NoError(t, s.SaveAccounts(saved))

	accounts, err = s.ListAccounts()
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	require.Equal(t, "alice@example.com", accounts[0].Email)
	require.Equal(t, "google", accounts[1].Provider)

	// Save replaces the whole collection, not appends.
	require.NoError(t, s.SaveAccounts(saved[:1]))
	accounts, err = s.ListAccounts()
	require.NoError(t, err)
	require.Len(t, accounts, 1)
}

func TestStore_SessionRoundTrip(t *testing.T) {
	s := openStore(t)

	session, err := s.ActiveSession()
	require.NoError(t, err)
	require.Nil(t, session)

	require.NoError(t, s.SetActiveSession(&core.Session{
		UserID: "id-1", Name: "Alice", Email: "alice@example.com", Provider: "direct",
	}))

	session, err = s.ActiveSession()
	require.NoError(t, err)
	require.NotNil(t, session)
	require.Equal(t, "alice@example.com", session.Email)

	require.NoError(t, s.SetActiveSession(nil))
	session, err = s.ActiveSession()
	require.NoError(t, err)
	require.Nil(t, session)
}

func TestStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "soren.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.SaveAccounts([]core.Account{{ID: "id-1", Email: "alice@example.com"}}))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	accounts, err := s.ListAccounts()
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	require.Equal(t, "alice@example.com", accounts[0].Email)
}
