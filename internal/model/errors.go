package model

import "errors"

// Common errors used across the application
var (
	// Account errors
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameExists     = errors.New("username already exists")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid or expired session")

	// Catalog errors
	ErrGameNotFound       = errors.New("game not found")
	ErrCatalogUnavailable = errors.New("catalog unavailable")

	// Collection errors
	ErrDuplicateItem = errors.New("game already in list")
	ErrItemNotFound  = errors.New("collection item not found")
)
