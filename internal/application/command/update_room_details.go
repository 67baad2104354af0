package command

import (
	"context"
	"time"

	"github.com/roomie-hub/roomie-hub/internal/domain/profile"
	"github.com/roomie-hub/roomie-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// UPDATE ROOM DETAILS COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// UpdateRoomDetailsCommand replaces the profile's room listing. A Remove
// flag clears the listing entirely.
type UpdateRoomDetailsCommand struct {
	ProfileID   string
	RoomDetails profile.RoomDetails
	Remove      bool
}

// Validate checks identification; room values are validated by the domain
// on apply.
func (c UpdateRoomDetailsCommand) Validate() error {
	if c.ProfileID == "" {
		return profile.ErrInvalidProfileID
	}
	return nil
}

// UpdateRoomDetailsResult reports the applied update.
type UpdateRoomDetailsResult struct {
	ProfileID   string               `json:"profile_id"`
	RoomDetails *profile.RoomDetails `json:"room_details,omitempty"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// UpdateRoomDetailsHandler handles room listing updates.
type UpdateRoomDetailsHandler struct {
	profiles profile.Repository
	events   shared.EventBus
}

// NewUpdateRoomDetailsHandler creates the handler. events may be nil.
func NewUpdateRoomDetailsHandler(profiles profile.Repository, events shared.EventBus) *UpdateRoomDetailsHandler {
	return &UpdateRoomDetailsHandler{profiles: profiles, events: events}
}

// Handle applies the room listing change.
func (h *UpdateRoomDetailsHandler) Handle(ctx context.Context, cmd UpdateRoomDetailsCommand) (*UpdateRoomDetailsResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	p, err := h.profiles.GetByID(ctx, shared.ProfileID(cmd.ProfileID))
	if err != nil {
		return nil, err
	}

	if cmd.Remove {
		p.RoomDetails = nil
		p.UpdatedAt = time.Now().UTC()
	} else {
		details := cmd.RoomDetails
		if err := p.Apply(profile.Update{RoomDetails: &details}); err != nil {
			return nil, err
		}
	}

	if err := h.profiles.Update(ctx, p); err != nil {
		return nil, err
	}

	if h.events != nil {
		_ = h.events.Publish(profile.NewRoomDetailsUpdatedEvent(p.ID))
	}

	return &UpdateRoomDetailsResult{
		ProfileID:   p.ID.String(),
		RoomDetails: p.RoomDetails,
		UpdatedAt:   p.UpdatedAt,
	}, nil
}
