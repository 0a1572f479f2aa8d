package identity

import (
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/sorenlabs/soren/core"
)

// Apple is a placeholder until the Sign in with Apple JS flow is wired up:
// it ignores the token and asserts a fixed demo identity.
type Apple struct{}

var _ core.IdentityVerifier = Apple{}

func (Apple) Verify(string) (*core.IdentityAssertion, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("failed to generate subject: %w", err)
	}
	return &core.IdentityAssertion{
		Provider: "apple",
		Subject:  "apple_" + id.String(),
		Email:    "user@icloud.com",
		Name:     "Apple User",
	}, nil
}
