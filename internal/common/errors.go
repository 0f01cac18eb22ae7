package common

import "errors"

var (
	// ErrValidation marks input rejected before any network call.
	ErrValidation = errors.New("validation error")

	// ErrNotLoggedIn is returned by operations that need a stored session.
	ErrNotLoggedIn = errors.New("not logged in")
)
