package model

import "time"

// UserID uniquely identifies a user account
type UserID string

// User is a registered account holder
type User struct {
	ID           UserID    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// Profile is the user-facing view of an account, including the list counts
// computed from storage at fetch time. Counts are never maintained
// incrementally; the backing store is the sole source of truth.
type Profile struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	CollectionCount int    `json:"collection_count"`
	WishlistCount   int    `json:"wishlist_count"`
}

// Session is a server-side bearer session for a user
type Session struct {
	Token     string    `json:"token"`
	UserID    UserID    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
