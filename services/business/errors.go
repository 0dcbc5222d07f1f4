package business

import "errors"

var (
	// ErrNotFound is returned when the requested business does not exist.
	ErrNotFound = errors.New("business not found")
	// ErrEmailTaken is returned when the owner email already has a listing.
	ErrEmailTaken = errors.New("a business is already registered with this email")
	// ErrInvalidCredentials is returned on a failed sign-in.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidHours is returned when a declared day fails validation.
	ErrInvalidHours = errors.New("hours must be \"HH:MM\" with open before close")
)
