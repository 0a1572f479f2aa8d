package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/sorenlabs/soren/core"
	"github.com/sorenlabs/soren/pkg/crypto"
)

const minPasswordLength = 8

// SessionService exposes sign-up, sign-in, federated login and sign-out on
// top of an injected account store. It owns no state of its own: the store
// holds both the account list and the single active session.
type SessionService struct {
	store     core.AccountStore
	passwords crypto.PasswordHandler
	verifiers map[string]core.IdentityVerifier
	log       *zap.Logger
}

func NewSessionService(store core.AccountStore, passwords crypto.PasswordHandler, verifiers map[string]core.IdentityVerifier, log *zap.Logger) *SessionService {
	if log == nil {
		log = zap.NewNop()
	}
	return &SessionService{
		store:     store,
		passwords: passwords,
		verifiers: verifiers,
		log:       log,
	}
}

// SignUp registers a direct-path account and activates its session. It fails
// with core.ErrDuplicateAccount when a direct account with the same email
// already exists; federated accounts with that email do not conflict.
func (s *SessionService) SignUp(name, email, password string) (*core.Session, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)

	switch {
	case name == "":
		return nil, core.ErrNameRequired
	case email == "":
		return nil, core.ErrEmailRequired
	case password == "":
		return nil, core.ErrPasswordRequired
	case len(password) < minPasswordLength:
		return nil, core.ErrPasswordTooShort
	}

	accounts, err := s.store.ListAccounts()
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	for _, a := range accounts {
		if a.Direct() && a.Email == email {
			return nil, core.ErrDuplicateAccount
		}
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("failed to generate account id: %w", err)
	}

	account := core.Account{
		ID:        id.String(),
		Name:      name,
		Email:     email,
		Password:  hash,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.store.SaveAccounts(append(accounts, account)); err != nil {
		return nil, fmt.Errorf("failed to save accounts: %w", err)
	}

	session := sessionFor(account)
	if err := s.store.SetActiveSession(&session); err != nil {
		return nil, fmt.Errorf("failed to activate session: %w", err)
	}

	s.log.Info("account created", zap.String("email", email))
	return &session, nil
}

// SignIn authenticates a direct-path account and activates its session.
func (s *SessionService) SignIn(email, password string) (*core.Session, error) {
	email = normalizeEmail(email)

	accounts, err := s.store.ListAccounts()
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	var account *core.Account
	for i := range accounts {
		if accounts[i].Direct() && accounts[i].Email == email {
			account = &accounts[i]
			break
		}
	}
	if account == nil {
		return nil, core.ErrAccountNotFound
	}

	ok, err := s.passwords.Verify(password, account.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		return nil, core.ErrInvalidCredential
	}

	session := sessionFor(*account)
	if err := s.store.SetActiveSession(&session); err != nil {
		return nil, fmt.Errorf("failed to activate session: %w", err)
	}

	s.log.Info("signed in", zap.String("email", email))
	return &session, nil
}

// SignInWithProvider verifies a federated identity token, registers the
// (email, provider) account on first sight, and activates the session. A
// federated account may coexist with a direct account of the same email.
func (s *SessionService) SignInWithProvider(provider, token string) (*core.Session, error) {
	verifier, ok := s.verifiers[provider]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrUnknownProvider, provider)
	}

	assertion, err := verifier.Verify(token)
	if err != nil {
		return nil, err
	}

	accounts, err := s.store.ListAccounts()
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	var account *core.Account
	for i := range accounts {
		if accounts[i].Provider == assertion.Provider && accounts[i].Email == assertion.Email {
			account = &accounts[i]
			break
		}
	}

	if account == nil {
		id := assertion.Subject
		if id == "" {
			v4, err := uuid.NewV4()
			if err != nil {
				return nil, fmt.Errorf("failed to generate account id: %w", err)
			}
			id = v4.String()
		}
		created := core.Account{
			ID:              id,
			Name:            assertion.Name,
			Email:           assertion.Email,
			Picture:         assertion.Picture,
			Provider:        assertion.Provider,
			ProviderSubject: assertion.Subject,
			CreatedAt:       time.Now().UTC(),
		}
		if err := s.store.SaveAccounts(append(accounts, created)); err != nil {
			return nil, fmt.Errorf("failed to save accounts: %w", err)
		}
		account = &created
		s.log.Info("federated account registered",
			zap.String("provider", assertion.Provider),
			zap.String("email", assertion.Email),
		)
	}

	session := sessionFor(*account)
	if err := s.store.SetActiveSession(&session); err != nil {
		return nil, fmt.Errorf("failed to activate session: %w", err)
	}
	return &session, nil
}

// SignOut clears the active session. It is idempotent: signing out with no
// active session succeeds.
func (s *SessionService) SignOut() error {
	if err := s.store.SetActiveSession(nil); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// Current returns the active session, or nil when signed out.
func (s *SessionService) Current() (*core.Session, error) {
	return s.store.ActiveSession()
}

// sessionFor strips the secret from an account. The session carries provider
// metadata but never the password hash.
func sessionFor(a core.Account) core.Session {
	return core.Session{
		UserID:    a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Picture:   a.Picture,
		Provider:  a.Provider,
		CreatedAt: a.CreatedAt,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
