package core

import "context"

// Ports define interfaces for external dependencies

// ============================================
// STORAGE PORT
// ============================================

// AccountStore wraps the durable key-value storage holding registered
// accounts and the active session. Accounts are kept in insertion order and
// written back as a whole: SaveAccounts overwrites the collection in a single
// key write, so it is atomic from the caller's perspective. No transactional
// guarantee exists across the account and session keys.
type AccountStore interface {
	// ListAccounts returns all registered accounts in insertion order.
	// An empty store yields an empty slice, not an error.
	ListAccounts() ([]Account, error)

	// SaveAccounts replaces the stored account collection.
	SaveAccounts(accounts []Account) error

	// ActiveSession returns the current session, or nil when absent.
	ActiveSession() (*Session, error)

	// SetActiveSession replaces the current session; nil clears it.
	SetActiveSession(session *Session) error
}

// ============================================
// GENERATION PORTS
// ============================================

// ProgressFunc reports a generation stage label and completion percentage.
type ProgressFunc func(stage string, percent int)

// GenerationStrategy turns an uploaded document into a video. Implementations
// must either return a playable result or an error; there is no partial
// outcome. The context bounds the whole run.
type GenerationStrategy interface {
	Generate(ctx context.Context, upload FileUpload, route DocumentRoute, progress ProgressFunc) (*GenerationResult, error)
}

// DocumentRouter selects the generated artifacts and Q&A context for an
// uploaded document. The default implementation matches a filename keyword;
// it stands in for real server-side classification and stays pluggable.
type DocumentRouter interface {
	Route(fileName string) DocumentRoute
}

// ============================================
// BACKEND PORTS
// ============================================

// Uploader delegates generation to the backend service.
type Uploader interface {
	Upload(ctx context.Context, upload FileUpload) (*GenerationResult, error)
}

// DoubtClient resolves document context and answers questions through the
// backend service.
type DoubtClient interface {
	FetchContext(ctx context.Context, req ContextRequest) (*DocumentContext, error)
	AskDoubt(ctx context.Context, req DoubtRequest) (*Answer, error)
}

// ============================================
// IDENTITY PORT
// ============================================

// IdentityVerifier is the provider boundary that turns a federated identity
// token into an IdentityAssertion. It fails with ErrMalformedToken when the
// token payload cannot be decoded.
type IdentityVerifier interface {
	Verify(token string) (*IdentityAssertion, error)
}
