// Package soren wires the document-to-video client core together: account
// and session bookkeeping, the upload/generation state machine, and the Q&A
// flow against the generation backend.
package soren

import (
	"go.uber.org/zap"

	"github.com/sorenlabs/soren/backend"
	"github.com/sorenlabs/soren/core"
	"github.com/sorenlabs/soren/identity"
	"github.com/sorenlabs/soren/pkg/crypto"
	"github.com/sorenlabs/soren/services"
)

// interfaces
type (
	AccountStore       = core.AccountStore
	DocumentRouter     = core.DocumentRouter
	GenerationStrategy = core.GenerationStrategy
	IdentityVerifier   = core.IdentityVerifier

	PasswordHandler = crypto.PasswordHandler
)

// structs
type (
	Config = core.Config
	Mode   = core.Mode

	Account           = core.Account
	Session           = core.Session
	IdentityAssertion = core.IdentityAssertion
	GenerationJob     = core.GenerationJob
	FileUpload        = core.FileUpload
	DocumentRoute     = core.DocumentRoute
	QAExchange        = core.QAExchange
	Answer            = core.Answer
)

const (
	ModeSimulated = core.ModeSimulated
	ModeDelegated = core.ModeDelegated

	DefaultGenerationTimeout = core.DefaultGenerationTimeout
)

// Constructors & helpers (convenience re-exports)
var (
	NewArgon2     = crypto.NewArgon2
	DefaultRouter = services.DefaultRouter
)

var (
	ErrDuplicateAccount  = core.ErrDuplicateAccount
	ErrAccountNotFound   = core.ErrAccountNotFound
	ErrInvalidCredential = core.ErrInvalidCredential
	ErrMalformedToken    = core.ErrMalformedToken
	ErrUnknownProvider   = core.ErrUnknownProvider
)

var (
	ErrNameRequired     = core.ErrNameRequired
	ErrEmailRequired    = core.ErrEmailRequired
	ErrPasswordRequired = core.ErrPasswordRequired
	ErrPasswordTooShort = core.ErrPasswordTooShort
)

var (
	ErrUnsupportedFileType = core.ErrUnsupportedFileType
	ErrUploadRejected      = core.ErrUploadRejected
	ErrNoActiveVideo       = core.ErrNoActiveVideo
	ErrContextUnavailable  = core.ErrContextUnavailable
	ErrAnswerFailed        = core.ErrAnswerFailed
	ErrBackendUnreachable  = core.ErrBackendUnreachable
)

var (
	ErrStoreRequired   = core.ErrStoreRequired
	ErrBackendRequired = core.ErrBackendRequired
	ErrUnknownMode     = core.ErrUnknownMode
	ErrUnknownStore    = core.ErrUnknownStore
)

// App is a fully wired application core.
type App struct {
	Sessions   *services.SessionService
	Generation *services.GenerationFlow
	QA         *services.QAFlow
	Backend    *backend.Client
}

func New(config Config) (*App, error) {
	if config.Store == nil {
		return nil, ErrStoreRequired
	}
	if config.BackendURL == "" {
		return nil, ErrBackendRequired
	}

	// Set Defaults

	mode := config.Mode
	if mode == "" {
		mode = ModeSimulated
	}

	router := config.Router
	if router == nil {
		router = DefaultRouter()
	}

	passwords := config.Passwords
	if passwords == nil {
		passwords = NewArgon2()
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	verifiers := config.Verifiers
	if verifiers == nil {
		verifiers = map[string]IdentityVerifier{
			"google": identity.Google{},
			"apple":  identity.Apple{},
		}
	}

	client := backend.New(config.BackendURL)

	strategy := config.Strategy
	if strategy == nil {
		switch mode {
		case ModeSimulated:
			strategy = &services.SimulatedStrategy{}
		case ModeDelegated:
			strategy = &services.DelegatedStrategy{Client: client}
		default:
			return nil, ErrUnknownMode
		}
	}

	generation := services.NewGenerationFlow(strategy, router, config.GenerationTimeout, logger)

	return &App{
		Sessions:   services.NewSessionService(config.Store, passwords, verifiers, logger),
		Generation: generation,
		QA:         services.NewQAFlow(generation, router, client, logger),
		Backend:    client,
	}, nil
}
