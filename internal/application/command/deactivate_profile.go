package command

import (
	"context"
	"time"

	"github.com/roomie-hub/roomie-hub/internal/domain/profile"
	"github.com/roomie-hub/roomie-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// DEACTIVATE PROFILE COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// DeactivateProfileCommand soft-deletes a profile. Data is kept; the
// profile just stops appearing anywhere. Reactivate reverses it.
type DeactivateProfileCommand struct {
	ProfileID  string
	Reactivate bool
}

// Validate checks identification.
func (c DeactivateProfileCommand) Validate() error {
	if c.ProfileID == "" {
		return profile.ErrInvalidProfileID
	}
	return nil
}

// DeactivateProfileResult reports the new state.
type DeactivateProfileResult struct {
	ProfileID string    `json:"profile_id"`
	IsActive  bool      `json:"is_active"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DeactivateProfileHandler handles soft deletes.
type DeactivateProfileHandler struct {
	profiles profile.Repository
	events   shared.EventBus
}

// NewDeactivateProfileHandler creates the handler. events may be nil.
func NewDeactivateProfileHandler(profiles profile.Repository, events shared.EventBus) *DeactivateProfileHandler {
	return &DeactivateProfileHandler{profiles: profiles, events: events}
}

// Handle flips the active flag.
func (h *DeactivateProfileHandler) Handle(ctx context.Context, cmd DeactivateProfileCommand) (*DeactivateProfileResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	p, err := h.profiles.GetByID(ctx, shared.ProfileID(cmd.ProfileID))
	if err != nil {
		return nil, err
	}

	if cmd.Reactivate {
		p.Reactivate()
	} else {
		p.Deactivate()
	}

	if err := h.profiles.Update(ctx, p); err != nil {
		return nil, err
	}

	if h.events != nil && !cmd.Reactivate {
		_ = h.events.Publish(profile.NewProfileDeactivatedEvent(p.ID))
	}

	return &DeactivateProfileResult{
		ProfileID: p.ID.String(),
		IsActive:  p.IsActive,
		UpdatedAt: p.UpdatedAt,
	}, nil
}
