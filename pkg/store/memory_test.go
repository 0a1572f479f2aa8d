package store

import (
	"testing"

	"github.com/sorenlabs/soren/core"
)

// Requirement: accounts come back in insertion order and the stored slice is
// isolated from caller mutation.
func TestMemory_Accounts(t *testing.T) {
	m := NewMemory()

	initial, err := m.ListAccounts()
	if err != nil {
		t.Fatalf("ListAccounts() error = %v", err)
	}
	if len(initial) != 0 {
		t.Fatalf("fresh store should be empty, got %d accounts", len(initial))
	}

	accounts := []core.Account{
		{ID: "1", Email: "first@example.com"},
		{ID: "2", Email: "second@example.com"},
	}
	if err := m.SaveAccounts(accounts); err != nil {
		t.Fatalf("SaveAccounts() error = %v", err)
	}

	// Mutating the caller's slice must not leak into the store.
	accounts[0].Email = "mutated@example.com"

	got, err := m.ListAccounts()
	if err != nil {
		t.Fatalf("ListAccounts() error = %v", err)
	}
	if len(got) != 2 || got[0].Email != "first@example.com" || got[1].ID != "2" {
		t.Errorf("ListAccounts() = %+v, want original two accounts in order", got)
	}
}

// Requirement: the active session round-trips, clears with nil, and is copied
// on both write and read.
func TestMemory_ActiveSession(t *testing.T) {
	m := NewMemory()

	if s, err := m.ActiveSession(); err != nil || s != nil {
		t.Fatalf("ActiveSession() on fresh store = (%v, %v), want (nil, nil)", s, err)
	}

	session := &core.Session{UserID: "u1", Email: "alice@example.com"}
	if err := m.SetActiveSession(session); err != nil {
		t.Fatalf("SetActiveSession() error = %v", err)
	}
	session.Email = "mutated@example.com"

	got, err := m.ActiveSession()
	if err != nil {
		t.Fatalf("ActiveSession() error = %v", err)
	}
	if got == nil || got.Email != "alice@example.com" {
		t.Errorf("ActiveSession() = %+v, want copy of original session", got)
	}

	if err := m.SetActiveSession(nil); err != nil {
		t.Fatalf("SetActiveSession(nil) error = %v", err)
	}
	if s, _ := m.ActiveSession(); s != nil {
		t.Errorf("ActiveSession() after clear = %+v, want nil", s)
	}
}
