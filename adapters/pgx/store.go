package pgx

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/sorenlabs/soren/core"
)

const (
	selectValue = `SELECT value FROM soren_kv WHERE key = $1`
	upsertValue = `INSERT INTO soren_kv (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`
	deleteValue = `DELETE FROM soren_kv WHERE key = $1`
)

func (s *Store) ListAccounts() ([]core.Account, error) {
	ctx := context.Background()

	var raw []byte
	err := s.pool.QueryRow(ctx, selectValue, keyAccounts).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []core.Account{}, nil
		}
		return nil, err
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
	ctx := context.Background()

	if accounts == nil {
		accounts = []core.Account{}
	}
	raw, err := json.Marshal(accounts)
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx, upsertValue, keyAccounts, raw)
	return err
}

func (s *Store) ActiveSession() (*core.Session, error) {
	ctx := context.Background()

	var raw []byte
	err := s.pool.QueryRow(ctx, selectValue, keySession).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	session := &core.Session{}
	if err := json.Unmarshal(raw, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *Store) SetActiveSession(session *core.Session) error {
	ctx := context.Background()

	if session == nil {
		_, err := s.pool.Exec(ctx, deleteValue, keySession)
		return err
	}

	raw, err := json.Marshal(session)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, upsertValue, keySession, raw)
	return err
}
