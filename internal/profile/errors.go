package profile

import "errors"

// ErrProfileNotFound is returned when no search directory holds the profile
var ErrProfileNotFound = errors.New("profile: language profile not found")
