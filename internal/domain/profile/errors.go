package profile

import (
	"github.com/roomie-hub/roomie-hub/internal/domain/shared"
)

// Profile domain errors.
var (
	ErrProfileNotFound      = shared.NewDomainError("profile", "Find", shared.ErrNotFound, "profile not found")
	ErrProfileAlreadyExists = shared.NewDomainError("profile", "Create", shared.ErrAlreadyExists, "profile already exists")
	ErrProfileNotActive     = shared.NewDomainError("profile", "CheckStatus", shared.ErrInvalidState, "profile is not active")

	ErrInvalidProfileID   = shared.NewDomainError("profile", "Validate", shared.ErrInvalidID, "invalid profile ID")
	ErrInvalidName        = shared.NewDomainError("profile", "Validate", shared.ErrEmptyValue, "name is required")
	ErrInvalidAge         = shared.NewDomainError("profile", "Validate", shared.ErrValueOutOfRange, "age must be between 18 and 65")
	ErrInvalidGender      = shared.NewDomainError("profile", "Validate", shared.ErrInvalidInput, "invalid gender")
	ErrInvalidLocation    = shared.NewDomainError("profile", "Validate", shared.ErrEmptyValue, "city and state are required")
	ErrInvalidRentRange   = shared.NewDomainError("profile", "Validate", shared.ErrValueOutOfRange, "rent range min must not exceed max")
	ErrInvalidPreference  = shared.NewDomainError("profile", "Validate", shared.ErrInvalidInput, "invalid preference value")
	ErrInvalidRoomDetails = shared.NewDomainError("profile", "Validate", shared.ErrInvalidInput, "invalid room details")

	ErrSelfSave = shared.NewDomainError("profile", "Save", shared.ErrInvalidInput, "cannot save your own profile")
)
