package command

import (
	"context"
	"strings"

	"github.com/roomie-hub/roomie-hub/internal/domain/profile"
	"github.com/roomie-hub/roomie-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// AUTHENTICATE COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// AuthenticateCommand verifies account credentials.
type AuthenticateCommand struct {
	Email    string
	Password string
}

// Validate checks the inputs are present.
func (c AuthenticateCommand) Validate() error {
	if strings.TrimSpace(c.Email) == "" || c.Password == "" {
		return shared.NewDomainError("command", "Authenticate", shared.ErrInvalidInput, "email and password are required")
	}
	return nil
}

// AuthenticateResult reports the verified account. Token issuance is the
// interface layer's concern.
type AuthenticateResult struct {
	ProfileID string `json:"profile_id"`
	Name      string `json:"name"`
}

// AuthenticateHandler verifies credentials.
type AuthenticateHandler struct {
	profiles profile.Repository
	hasher   Hasher
}

// NewAuthenticateHandler creates the handler.
func NewAuthenticateHandler(profiles profile.Repository, hasher Hasher) *AuthenticateHandler {
	return &AuthenticateHandler{profiles: profiles, hasher: hasher}
}

// Handle checks the credentials. Unknown email and wrong password return
// the same error so the response does not leak which one failed.
func (h *AuthenticateHandler) Handle(ctx context.Context, cmd AuthenticateCommand) (*AuthenticateResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(cmd.Email))
	p, err := h.profiles.GetByEmail(ctx, email)
	if err != nil {
		return nil, invalidCredentials()
	}
	if !p.IsActive {
		return nil, profile.ErrProfileNotActive
	}
	if err := h.hasher.Compare(p.PasswordHash, cmd.Password); err != nil {
		return nil, invalidCredentials()
	}

	return &AuthenticateResult{ProfileID: p.ID.String(), Name: p.Name}, nil
}

func invalidCredentials() error {
	return shared.NewDomainError("command", "Authenticate", shared.ErrUnauthorized, "invalid credentials")
}
