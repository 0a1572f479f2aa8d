// Package sqlite persists accounts and the active session in a local SQLite
// file, using the same two-key JSON layout as the PostgreSQL store. It suits
// single-node deployments with no database server around.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/sorenlabs/soren/core"
)

const (
	keyAccounts = "registeredUsers"
	keySession  = "currentUser"
)

const schema = `CREATE TABLE IF NOT EXISTS soren_kv (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

type Store struct {
	db *sql.DB
}

var _ core.AccountStore = (*Store)(nil)

// Open opens (or creates) the database at path and ensures the schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ListAccounts() ([]core.Account, error) {
	raw, ok, err := s.get(keyAccounts)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []core.Account{}, nil
	}

	var accounts []core.Account
	if err := json.Unmarshal(raw, &accounts); err != nil {
		return nil, err
	}
	if accounts == nil {
		accounts = []core.Account{}
	}
	return accounts, nil
}

func (s *Store) SaveAccounts(accounts []core.Account) error {
	if accounts == nil {
		accounts = []core.Account{}
	}
	raw, err := json.Marshal(accounts)
	if err != nil {
		return err
	}
	return s.set(keyAccounts, raw)
}

func (s *Store) ActiveSession() (*core.Session, error) {
	raw, ok, err := s.get(keySession)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	session := &core.Session{}
	if err := json.Unmarshal(raw, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *Store) SetActiveSession(session *core.Session) error {
	if session == nil {
		_, err := s.db.Exec(`DELETE FROM soren_kv WHERE key = ?`, keySession)
		return err
	}

	raw, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.set(keySession, raw)
}

func (s *Store) get(key string) ([]byte, bool, error) {
	var raw []byte
	err := s.db.QueryRow(`SELECT value FROM soren_kv WHERE key = ?`, key).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return raw, true, nil
}

func (s *Store) set(key string, value []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO soren_kv (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}
