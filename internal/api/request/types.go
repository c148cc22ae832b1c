package request

// RegisterRequest is the request body for registering an account
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AddCollectionItemRequest is the request body for adding a game to a list
type AddCollectionItemRequest struct {
	BGGID            string   `json:"bgg_id"`
	UserNotes        string   `json:"user_notes"`
	CustomTags       []string `json:"custom_tags"`
	IsWishlist       bool     `json:"is_wishlist"`
	WishlistPriority *int     `json:"wishlist_priority,omitempty"`
}

// UpdateCollectionItemRequest is the request body for editing notes and tags.
// Nil fields are left unchanged.
type UpdateCollectionItemRequest struct {
	UserNotes  *string  `json:"user_notes"`
	CustomTags []string `json:"custom_tags"`
}
