package core

import (
	"time"

	"go.uber.org/zap"

	"github.com/sorenlabs/soren/pkg/crypto"
)

// Mode selects the generation execution strategy. It is wiring-time
// configuration, not a runtime toggle.
type Mode string

const (
	// ModeSimulated advances through fixed stages with no network call.
	ModeSimulated Mode = "simulated"
	// ModeDelegated uploads the document to the backend service.
	ModeDelegated Mode = "delegated"
)

// Config wires a Soren application together.
type Config struct {
	// Store holds registered accounts and the active session.
	Store AccountStore

	// BackendURL is the base URL of the generation backend, e.g.
	// "http://localhost:5001". Required: the Q&A flow always talks to the
	// backend, even when generation is simulated.
	BackendURL string

	// Mode selects the generation strategy. Defaults to ModeSimulated.
	Mode Mode

	// Optional config
	Router            DocumentRouter
	Strategy          GenerationStrategy // overrides Mode when set
	Verifiers         map[string]IdentityVerifier
	Passwords         crypto.PasswordHandler
	GenerationTimeout time.Duration
	Logger            *zap.Logger
}

// DefaultGenerationTimeout bounds a generation run so a lost backend response
// cannot leave the flow stuck in loading.
const DefaultGenerationTimeout = 5 * time.Minute
