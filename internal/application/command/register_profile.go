// Package command contains write operations (CQRS - Commands).
package command

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/roomie-hub/roomie-hub/internal/domain/profile"
	"github.com/roomie-hub/roomie-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// REGISTER PROFILE COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// Hasher hashes account passwords. The domain never sees plaintext; the
// bcrypt implementation lives in infrastructure.
type Hasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// MinPasswordLen is the minimum accepted password length.
const MinPasswordLen = 6

// RegisterProfileCommand carries the registration input.
type RegisterProfileCommand struct {
	Email    string
	Password string
	Name     string
	Age      int
	Gender   profile.Gender
	Bio      string
	Avatar   string
	Location profile.Location

	// Preferences is optional; defaults apply when nil.
	Preferences *profile.Preferences

	// RoomDetails is optional.
	RoomDetails *profile.RoomDetails
}

// Validate checks the account-level fields. Profile-level validation
// happens in the domain constructor.
func (c RegisterProfileCommand) Validate() error {
	if _, err := mail.ParseAddress(strings.TrimSpace(c.Email)); err != nil {
		return shared.NewDomainError("command", "RegisterProfile", shared.ErrInvalidInput, "invalid email address")
	}
	if len(c.Password) < MinPasswordLen {
		return shared.NewDomainError("command", "RegisterProfile", shared.ErrInvalidInput, "password too short")
	}
	return nil
}

// RegisterProfileResult reports the created profile.
type RegisterProfileResult struct {
	ProfileID string    `json:"profile_id"`
	CreatedAt time.Time `json:"created_at"`
}

// RegisterProfileHandler handles registrations.
type RegisterProfileHandler struct {
	profiles profile.Repository
	hasher   Hasher
	events   shared.EventBus
}

// NewRegisterProfileHandler creates the handler. events may be nil.
func NewRegisterProfileHandler(profiles profile.Repository, hasher Hasher, events shared.EventBus) *RegisterProfileHandler {
	return &RegisterProfileHandler{profiles: profiles, hasher: hasher, events: events}
}

// Handle registers a new profile.
func (h *RegisterProfileHandler) Handle(ctx context.Context, cmd RegisterProfileCommand) (*RegisterProfileResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	hash, err := h.hasher.Hash(cmd.Password)
	if err != nil {
		return nil, shared.WrapError("command", "RegisterProfile", shared.ErrExternalService, "password hashing failed", err)
	}

	p, err := profile.NewProfile(profile.NewProfileParams{
		ID:           uuid.NewString(),
		Email:        cmd.Email,
		PasswordHash: hash,
		Name:         cmd.Name,
		Age:          cmd.Age,
		Gender:       cmd.Gender,
		Bio:          cmd.Bio,
		Avatar:       cmd.Avatar,
		Location:     cmd.Location,
		Preferences:  cmd.Preferences,
		RoomDetails:  cmd.RoomDetails,
	})
	if err != nil {
		return nil, err
	}

	if err := h.profiles.Create(ctx, p); err != nil {
		return nil, err
	}

	if h.events != nil {
		_ = h.events.Publish(profile.NewProfileRegisteredEvent(p))
	}

	return &RegisterProfileResult{
		ProfileID: p.ID.String(),
		CreatedAt: p.CreatedAt,
	}, nil
}
