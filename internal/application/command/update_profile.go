package command

import (
	"context"
	"time"

	"github.com/roomie-hub/roomie-hub/internal/domain/profile"
	"github.com/roomie-hub/roomie-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// UPDATE PROFILE COMMAND
//
// Field-level partial update: only set fields change, everything else
// stays. Preferences and room details have dedicated commands so their
// events stay distinguishable; this command covers the demographic fields.
// ══════════════════════════════════════════════════════════════════════════════

// UpdateProfileCommand carries a partial profile update.
type UpdateProfileCommand struct {
	ProfileID string

	Name     *string
	Age      *int
	Bio      *string
	Avatar   *string
	Location *profile.Location
}

// Validate checks the required identification.
func (c UpdateProfileCommand) Validate() error {
	if c.ProfileID == "" {
		return profile.ErrInvalidProfileID
	}
	return nil
}

// IsEmpty reports whether no field was supplied.
func (c UpdateProfileCommand) IsEmpty() bool {
	return c.Name == nil && c.Age == nil && c.Bio == nil && c.Avatar == nil && c.Location == nil
}

// UpdateProfileResult reports the applied update.
type UpdateProfileResult struct {
	ProfileID     string    `json:"profile_id"`
	ChangedFields []string  `json:"changed_fields"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// UpdateProfileHandler handles profile updates.
type UpdateProfileHandler struct {
	profiles profile.Repository
	events   shared.EventBus
}

// NewUpdateProfileHandler creates the handler. events may be nil.
func NewUpdateProfileHandler(profiles profile.Repository, events shared.EventBus) *UpdateProfileHandler {
	return &UpdateProfileHandler{profiles: profiles, events: events}
}

// Handle applies the update.
func (h *UpdateProfileHandler) Handle(ctx context.Context, cmd UpdateProfileCommand) (*UpdateProfileResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if cmd.IsEmpty() {
		return nil, shared.NewDomainError("command", "UpdateProfile", shared.ErrInvalidInput, "no fields to update")
	}

	p, err := h.profiles.GetByID(ctx, shared.ProfileID(cmd.ProfileID))
	if err != nil {
		return nil, err
	}

	update := profile.Update{
		Name:     cmd.Name,
		Age:      cmd.Age,
		Bio:      cmd.Bio,
		Avatar:   cmd.Avatar,
		Location: cmd.Location,
	}
	if err := p.Apply(update); err != nil {
		return nil, err
	}

	if err := h.profiles.Update(ctx, p); err != nil {
		return nil, err
	}

	changed := changedFields(cmd)
	if h.events != nil {
		_ = h.events.Publish(profile.NewProfileUpdatedEvent(p.ID, changed...))
	}

	return &UpdateProfileResult{
		ProfileID:     p.ID.String(),
		ChangedFields: changed,
		UpdatedAt:     p.UpdatedAt,
	}, nil
}

func changedFields(cmd UpdateProfileCommand) []string {
	fields := make([]string, 0, 5)
	if cmd.Name != nil {
		fields = append(fields, "name")
	}
	if cmd.Age != nil {
		fields = append(fields, "age")
	}
	if cmd.Bio != nil {
		fields = append(fields, "bio")
	}
	if cmd.Avatar != nil {
		fields = append(fields, "avatar")
	}
	if cmd.Location != nil {
		fields = append(fields, "location")
	}
	return fields
}
