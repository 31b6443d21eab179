package roster

import "errors"

// ErrNotFound indicates that no tenant has the requested ID.
var ErrNotFound = errors.New("tenant not found")

// ErrValidation indicates that tenant input failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates an attempt to add a tenant whose ID is already present.
var ErrDuplicate = errors.New("tenant already exists")
