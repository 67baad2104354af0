package command

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roomie-hub/roomie-hub/internal/domain/profile"
	"github.com/roomie-hub/roomie-hub/internal/domain/shared"
	"github.com/roomie-hub/roomie-hub/internal/infrastructure/persistence/memory"
)

// plainHasher is a transparent Hasher for tests.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (plainHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

type recordingBus struct {
	mu     sync.Mutex
	events []shared.Event
}

func (b *recordingBus) Subscribe(shared.EventType, shared.EventHandler) error { return nil }
func (b *recordingBus) SubscribeAll(shared.EventHandler) error                { return nil }
func (b *recordingBus) Close() error                                          { return nil }

func (b *recordingBus) Publish(event shared.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
	return nil
}

func (b *recordingBus) types() []shared.EventType {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]shared.EventType, 0, len(b.events))
	for _, e := range b.events {
		out = append(out, e.EventType())
	}
	return out
}

func registerCmd(email string) RegisterProfileCommand {
	return RegisterProfileCommand{
		Email:    email,
		Password: "hunter22",
		Name:     "Alice",
		Age:      26,
		Gender:   profile.GenderFemale,
		Location: profile.Location{City: "Austin", State: "Texas"},
	}
}

func register(t *testing.T, repo *memory.ProfileRepository, bus shared.EventBus, email string) string {
	t.Helper()
	h := NewRegisterProfileHandler(repo, plainHasher{}, bus)
	res, err := h.Handle(context.Background(), registerCmd(email))
	require.NoError(t, err)
	return res.ProfileID
}

func TestRegisterProfile(t *testing.T) {
	repo := memory.NewProfileRepository()
	bus := &recordingBus{}

	id := register(t, repo, bus, "alice@example.com")

	p, err := repo.GetByID(context.Background(), shared.ProfileID(id))
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", p.Email)
	assert.Equal(t, "hashed:hunter22", p.PasswordHash)
	assert.True(t, p.IsActive)
	require.NotNil(t, p.Preferences)
	assert.Equal(t, profile.DefaultPreferences(), *p.Preferences)
	assert.Equal(t, []shared.EventType{shared.EventProfileRegistered}, bus.types())
}

func TestRegisterProfile_Validation(t *testing.T) {
	h := NewRegisterProfileHandler(memory.NewProfileRepository(), plainHasher{}, nil)

	bad := registerCmd("not-an-email")
	_, err := h.Handle(context.Background(), bad)
	assert.Error(t, err)

	short := registerCmd("ok@example.com")
	short.Password = "abc"
	_, err = h.Handle(context.Background(), short)
	assert.Error(t, err)

	tooYoung := registerCmd("ok@example.com")
	tooYoung.Age = 17
	_, err = h.Handle(context.Background(), tooYoung)
	assert.ErrorIs(t, err, profile.ErrInvalidAge)
}

func TestRegisterProfile_DuplicateEmail(t *testing.T) {
	repo := memory.NewProfileRepository()
	register(t, repo, nil, "alice@example.com")

	h := NewRegisterProfileHandler(repo, plainHasher{}, nil)
	_, err := h.Handle(context.Background(), registerCmd("alice@example.com"))
	assert.ErrorIs(t, err, profile.ErrProfileAlreadyExists)
}

func TestAuthenticate(t *testing.T) {
	repo := memory.NewProfileRepository()
	id := register(t, repo, nil, "alice@example.com")

	h := NewAuthenticateHandler(repo, plainHasher{})

	res, err := h.Handle(context.Background(), AuthenticateCommand{
		Email:    "Alice@Example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)
	assert.Equal(t, id, res.ProfileID)

	// Wrong password and unknown email fail identically.
	_, errPw := h.Handle(context.Background(), AuthenticateCommand{
		Email:    "alice@example.com",
		Password: "wrong",
	})
	_, errEmail := h.Handle(context.Background(), AuthenticateCommand{
		Email:    "nobody@example.com",
		Password: "hunter22",
	})
	require.Error(t, errPw)
	require.Error(t, errEmail)
	assert.Equal(t, errPw.Error(), errEmail.Error())
}

func TestAuthenticate_DeactivatedAccount(t *testing.T) {
	repo := memory.NewProfileRepository()
	id := register(t, repo, nil, "alice@example.com")

	deactivate := NewDeactivateProfileHandler(repo, nil)
	_, err := deactivate.Handle(context.Background(), DeactivateProfileCommand{ProfileID: id})
	require.NoError(t, err)

	h := NewAuthenticateHandler(repo, plainHasher{})
	_, err = h.Handle(context.Background(), AuthenticateCommand{
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	assert.ErrorIs(t, err, profile.ErrProfileNotActive)
}

func TestUpdateProfile_PartialFields(t *testing.T) {
	repo := memory.NewProfileRepository()
	bus := &recordingBus{}
	id := register(t, repo, nil, "alice@example.com")

	h := NewUpdateProfileHandler(repo, bus)
	bio := "Tidy, quiet, early riser."
	res, err := h.Handle(context.Background(), UpdateProfileCommand{
		ProfileID: id,
		Bio:       &bio,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"bio"}, res.ChangedFields)

	p, err := repo.GetByID(context.Background(), shared.ProfileID(id))
	require.NoError(t, err)
	assert.Equal(t, bio, p.Bio)
	assert.Equal(t, "Alice", p.Name)
	assert.Equal(t, []shared.EventType{shared.EventProfileUpdated}, bus.types())
}

func TestUpdateProfile_EmptyUpdateRejected(t *testing.T) {
	repo := memory.NewProfileRepository()
	id := register(t, repo, nil, "alice@example.com")

	h := NewUpdateProfileHandler(repo, nil)
	_, err := h.Handle(context.Background(), UpdateProfileCommand{ProfileID: id})
	assert.Error(t, err)
}

func TestUpdatePreferences(t *testing.T) {
	repo := memory.NewProfileRepository()
	bus := &recordingBus{}
	id := register(t, repo, nil, "alice@example.com")

	prefs := profile.DefaultPreferences()
	prefs.RentRange = profile.RentRange{Min: 800, Max: 1500}
	prefs.SmokingPreference = profile.SmokingAny

	h := NewUpdatePreferencesHandler(repo, bus)
	res, err := h.Handle(context.Background(), UpdatePreferencesCommand{
		ProfileID:   id,
		Preferences: prefs,
	})
	require.NoError(t, err)
	assert.Equal(t, prefs, res.Preferences)
	assert.Equal(t, []shared.EventType{shared.EventPreferencesUpdated}, bus.types())

	// Invalid preference values are rejected before persisting.
	bad := prefs
	bad.RentRange = profile.RentRange{Min: 900, Max: 100}
	_, err = h.Handle(context.Background(), UpdatePreferencesCommand{
		ProfileID:   id,
		Preferences: bad,
	})
	assert.ErrorIs(t, err, profile.ErrInvalidRentRange)
}

func TestUpdateRoomDetails_SetAndRemove(t *testing.T) {
	repo := memory.NewProfileRepository()
	bus := &recordingBus{}
	id := register(t, repo, nil, "alice@example.com")

	h := NewUpdateRoomDetailsHandler(repo, bus)

	res, err := h.Handle(context.Background(), UpdateRoomDetailsCommand{
		ProfileID: id,
		RoomDetails: profile.RoomDetails{
			IsOffering: true,
			Rent:       950,
			RoomType:   profile.RoomPrivate,
		},
	})
	require.NoError(t, err)
	require.NotNil(t, res.RoomDetails)
	assert.Equal(t, 950, res.RoomDetails.Rent)

	res, err = h.Handle(context.Background(), UpdateRoomDetailsCommand{ProfileID: id, Remove: true})
	require.NoError(t, err)
	assert.Nil(t, res.RoomDetails)

	assert.Equal(t, []shared.EventType{
		shared.EventRoomDetailsUpdated,
		shared.EventRoomDetailsUpdated,
	}, bus.types())
}

func TestToggleSave(t *testing.T) {
	repo := memory.NewProfileRepository()
	bus := &recordingBus{}
	owner := register(t, repo, nil, "alice@example.com")
	target := register(t, repo, nil, "bob@example.com")

	h := NewToggleSaveHandler(repo, bus)

	res, err := h.Handle(context.Background(), ToggleSaveCommand{OwnerID: owner, TargetID: target})
	require.NoError(t, err)
	assert.True(t, res.Saved)

	p, err := repo.GetByID(context.Background(), shared.ProfileID(owner))
	require.NoError(t, err)
	assert.True(t, p.HasSaved(shared.ProfileID(target)))

	// Toggling again removes the bookmark.
	res, err = h.Handle(context.Background(), ToggleSaveCommand{OwnerID: owner, TargetID: target})
	require.NoError(t, err)
	assert.False(t, res.Saved)

	p, err = repo.GetByID(context.Background(), shared.ProfileID(owner))
	require.NoError(t, err)
	assert.False(t, p.HasSaved(shared.ProfileID(target)))

	assert.Equal(t, []shared.EventType{
		shared.EventProfileSaved,
		shared.EventProfileUnsaved,
	}, bus.types())
}

func TestToggleSave_SelfRejected(t *testing.T) {
	repo := memory.NewProfileRepository()
	owner := register(t, repo, nil, "alice@example.com")

	h := NewToggleSaveHandler(repo, nil)
	_, err := h.Handle(context.Background(), ToggleSaveCommand{OwnerID: owner, TargetID: owner})
	assert.ErrorIs(t, err, profile.ErrSelfSave)
}

func TestToggleSave_InactiveTargetRejected(t *testing.T) {
	repo := memory.NewProfileRepository()
	owner := register(t, repo, nil, "alice@example.com")
	target := register(t, repo, nil, "bob@example.com")

	deactivate := NewDeactivateProfileHandler(repo, nil)
	_, err := deactivate.Handle(context.Background(), DeactivateProfileCommand{ProfileID: target})
	require.NoError(t, err)

	h := NewToggleSaveHandler(repo, nil)
	_, err = h.Handle(context.Background(), ToggleSaveCommand{OwnerID: owner, TargetID: target})
	assert.ErrorIs(t, err, profile.ErrProfileNotActive)
}

func TestDeactivateAndReactivate(t *testing.T) {
	repo := memory.NewProfileRepository()
	bus := &recordingBus{}
	id := register(t, repo, nil, "alice@example.com")

	h := NewDeactivateProfileHandler(repo, bus)

	res, err := h.Handle(context.Background(), DeactivateProfileCommand{ProfileID: id})
	require.NoError(t, err)
	assert.False(t, res.IsActive)

	res, err = h.Handle(context.Background(), DeactivateProfileCommand{ProfileID: id, Reactivate: true})
	require.NoError(t, err)
	assert.True(t, res.IsActive)

	// Only the deactivation publishes an event.
	assert.Equal(t, []shared.EventType{shared.EventProfileDeactivated}, bus.types())
}
