package profile

import (
	"github.com/roomie-hub/roomie-hub/internal/domain/shared"
)

// ProfileRegisteredEvent is emitted when a new profile is created.
type ProfileRegisteredEvent struct {
	shared.BaseEvent
	Name  string `json:"name"`
	City  string `json:"city"`
	State string `json:"state"`
}

// Payload implements shared.Event.
func (e ProfileRegisteredEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"name":  e.Name,
		"city":  e.City,
		"state": e.State,
	}
}

// NewProfileRegisteredEvent creates a new ProfileRegisteredEvent.
func NewProfileRegisteredEvent(p *Profile) ProfileRegisteredEvent {
	return ProfileRegisteredEvent{
		BaseEvent: shared.NewBaseEvent(shared.EventProfileRegistered, p.ID.String()),
		Name:      p.Name,
		City:      p.Location.City,
		State:     p.Location.State,
	}
}

// ProfileUpdatedEvent is emitted after any profile mutation.
type ProfileUpdatedEvent struct {
	shared.BaseEvent
	Fields []string `json:"fields"`
}

// Payload implements shared.Event.
func (e ProfileUpdatedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{"fields": e.Fields}
}

// NewProfileUpdatedEvent creates a new ProfileUpdatedEvent listing the
// field groups that changed.
func NewProfileUpdatedEvent(id shared.ProfileID, fields ...string) ProfileUpdatedEvent {
	return ProfileUpdatedEvent{
		BaseEvent: shared.NewBaseEvent(shared.EventProfileUpdated, id.String()),
		Fields:    fields,
	}
}

// NewPreferencesUpdatedEvent creates the preferences-changed event.
func NewPreferencesUpdatedEvent(id shared.ProfileID) ProfileUpdatedEvent {
	return ProfileUpdatedEvent{
		BaseEvent: shared.NewBaseEvent(shared.EventPreferencesUpdated, id.String()),
		Fields:    []string{"preferences"},
	}
}

// NewRoomDetailsUpdatedEvent creates the room-details-changed event.
func NewRoomDetailsUpdatedEvent(id shared.ProfileID) ProfileUpdatedEvent {
	return ProfileUpdatedEvent{
		BaseEvent: shared.NewBaseEvent(shared.EventRoomDetailsUpdated, id.String()),
		Fields:    []string{"room_details"},
	}
}

// ProfileDeactivatedEvent is emitted on soft delete.
type ProfileDeactivatedEvent struct {
	shared.BaseEvent
}

// Payload implements shared.Event.
func (e ProfileDeactivatedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{}
}

// NewProfileDeactivatedEvent creates a new ProfileDeactivatedEvent.
func NewProfileDeactivatedEvent(id shared.ProfileID) ProfileDeactivatedEvent {
	return ProfileDeactivatedEvent{
		BaseEvent: shared.NewBaseEvent(shared.EventProfileDeactivated, id.String()),
	}
}

// ProfileViewedEvent is emitted when someone opens a profile. The view
// counter increment itself is fire and forget; this event feeds the
// realtime notification relay.
type ProfileViewedEvent struct {
	shared.BaseEvent
	ViewerID string `json:"viewer_id,omitempty"`
}

// Payload implements shared.Event.
func (e ProfileViewedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{"viewer_id": e.ViewerID}
}

// NewProfileViewedEvent creates a new ProfileViewedEvent. viewerID is empty
// for anonymous views.
func NewProfileViewedEvent(id shared.ProfileID, viewerID shared.ProfileID) ProfileViewedEvent {
	return ProfileViewedEvent{
		BaseEvent: shared.NewBaseEvent(shared.EventProfileViewed, id.String()),
		ViewerID:  viewerID.String(),
	}
}

// ProfileSavedEvent is emitted when a profile is bookmarked or unbookmarked.
type ProfileSavedEvent struct {
	shared.BaseEvent
	SaverID string `json:"saver_id"`
	Saved   bool   `json:"saved"`
}

// Payload implements shared.Event.
func (e ProfileSavedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"saver_id": e.SaverID,
		"saved":    e.Saved,
	}
}

// NewProfileSavedEvent creates a save/unsave event for the target profile.
func NewProfileSavedEvent(target, saver shared.ProfileID, saved bool) ProfileSavedEvent {
	eventType := shared.EventProfileSaved
	if !saved {
		eventType = shared.EventProfileUnsaved
	}
	return ProfileSavedEvent{
		BaseEvent: shared.NewBaseEvent(eventType, target.String()),
		SaverID:   saver.String(),
		Saved:     saved,
	}
}
