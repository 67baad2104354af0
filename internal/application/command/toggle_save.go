package command

import (
	"context"

	"github.com/roomie-hub/roomie-hub/internal/domain/profile"
	"github.com/roomie-hub/roomie-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// TOGGLE SAVE COMMAND
//
// Bookmarks or unbookmarks a profile: saving an already-saved profile
// removes the bookmark. The saved set lives on the saver's side only, so
// a later deactivation of the target needs no cleanup here.
// ══════════════════════════════════════════════════════════════════════════════

// ToggleSaveCommand carries the toggle input.
type ToggleSaveCommand struct {
	// OwnerID is the user flipping the bookmark.
	OwnerID string

	// TargetID is the profile being bookmarked.
	TargetID string
}

// Validate checks both identifications and rejects self-saves early.
func (c ToggleSaveCommand) Validate() error {
	if c.OwnerID == "" || c.TargetID == "" {
		return profile.ErrInvalidProfileID
	}
	if c.OwnerID == c.TargetID {
		return profile.ErrSelfSave
	}
	return nil
}

// ToggleSaveResult reports the new bookmark state.
type ToggleSaveResult struct {
	TargetID string `json:"target_id"`
	Saved    bool   `json:"saved"`
}

// ToggleSaveHandler handles bookmark toggles.
type ToggleSaveHandler struct {
	profiles profile.Repository
	events   shared.EventBus
}

// NewToggleSaveHandler creates the handler. events may be nil.
func NewToggleSaveHandler(profiles profile.Repository, events shared.EventBus) *ToggleSaveHandler {
	return &ToggleSaveHandler{profiles: profiles, events: events}
}

// Handle flips the bookmark.
func (h *ToggleSaveHandler) Handle(ctx context.Context, cmd ToggleSaveCommand) (*ToggleSaveResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	owner, err := h.profiles.GetByID(ctx, shared.ProfileID(cmd.OwnerID))
	if err != nil {
		return nil, err
	}

	target, err := h.profiles.GetByID(ctx, shared.ProfileID(cmd.TargetID))
	if err != nil {
		return nil, err
	}
	if !target.IsActive {
		return nil, profile.ErrProfileNotActive
	}

	saved := !owner.HasSaved(target.ID)
	if saved {
		if err := owner.Save(target.ID); err != nil {
			return nil, err
		}
		err = h.profiles.AddSaved(ctx, owner.ID, target.ID)
	} else {
		owner.Unsave(target.ID)
		err = h.profiles.RemoveSaved(ctx, owner.ID, target.ID)
	}
	if err != nil {
		return nil, err
	}

	if h.events != nil {
		_ = h.events.Publish(profile.NewProfileSavedEvent(target.ID, owner.ID, saved))
	}

	return &ToggleSaveResult{TargetID: target.ID.String(), Saved: saved}, nil
}
