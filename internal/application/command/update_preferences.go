package command

import (
	"context"
	"time"

	"github.com/roomie-hub/roomie-hub/internal/domain/profile"
	"github.com/roomie-hub/roomie-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// UPDATE PREFERENCES COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// UpdatePreferencesCommand replaces the profile's matching preferences.
// The sub-object is replaced wholesale: partial preference edits are the
// client's concern, the stored state is always a complete set.
type UpdatePreferencesCommand struct {
	ProfileID   string
	Preferences profile.Preferences
}

// Validate checks identification; preference values are validated by the
// domain on apply.
func (c UpdatePreferencesCommand) Validate() error {
	if c.ProfileID == "" {
		return profile.ErrInvalidProfileID
	}
	return nil
}

// UpdatePreferencesResult reports the applied update.
type UpdatePreferencesResult struct {
	ProfileID   string              `json:"profile_id"`
	Preferences profile.Preferences `json:"preferences"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// UpdatePreferencesHandler handles preference updates.
type UpdatePreferencesHandler struct {
	profiles profile.Repository
	events   shared.EventBus
}

// NewUpdatePreferencesHandler creates the handler. events may be nil.
func NewUpdatePreferencesHandler(profiles profile.Repository, events shared.EventBus) *UpdatePreferencesHandler {
	return &UpdatePreferencesHandler{profiles: profiles, events: events}
}

// Handle applies the new preferences.
func (h *UpdatePreferencesHandler) Handle(ctx context.Context, cmd UpdatePreferencesCommand) (*UpdatePreferencesResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	p, err := h.profiles.GetByID(ctx, shared.ProfileID(cmd.ProfileID))
	if err != nil {
		return nil, err
	}

	prefs := cmd.Preferences
	if err := p.Apply(profile.Update{Preferences: &prefs}); err != nil {
		return nil, err
	}

	if err := h.profiles.Update(ctx, p); err != nil {
		return nil, err
	}

	if h.events != nil {
		_ = h.events.Publish(profile.NewPreferencesUpdatedEvent(p.ID))
	}

	return &UpdatePreferencesResult{
		ProfileID:   p.ID.String(),
		Preferences: *p.Preferences,
		UpdatedAt:   p.UpdatedAt,
	}, nil
}
