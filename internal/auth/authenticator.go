// Package auth handles operator sign-in: credential checks and session tokens.
package auth

import (
	"context"

	"github.com/mmynk/aquaflow/internal/models"
)

// Authenticator verifies operator credentials. Password login is the only
// implementation today; the interface keeps services independent of it.
type Authenticator interface {
	// Register creates an operator account and returns it.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate returns the operator whose credential matches.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks the credential before anything is stored.
	ValidateCredential(credential string) error
}
