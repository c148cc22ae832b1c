package model

import "time"

// CatalogEntry is a partial game record returned by catalog search.
// Entries are immutable and never persisted.
type CatalogEntry struct {
	BGGID         string `json:"bgg_id"`
	Name          string `json:"name"`
	YearPublished string `json:"year_published,omitempty"`
}

// GameDetail is the full metadata record for one catalog entry.
// Description may contain markup; it is passed through unmodified and any
// stripping is a presentation concern.
type GameDetail struct {
	BGGID          string   `json:"bgg_id"`
	Name           string   `json:"name"`
	YearPublished  string   `json:"year_published,omitempty"`
	Description    string   `json:"description,omitempty"`
	ImageURL       string   `json:"image_url,omitempty"`
	ThumbnailURL   string   `json:"thumbnail_url,omitempty"`
	MinPlayers     int      `json:"min_players"`
	MaxPlayers     int      `json:"max_players"`
	MinPlaytime    int      `json:"min_playtime"`
	MaxPlaytime    int      `json:"max_playtime"`
	MinAge         int      `json:"min_age"`
	BGGRating      *float64 `json:"bgg_rating,omitempty"`
	BGGRatingCount *int     `json:"bgg_rating_count,omitempty"`
	Categories     []string `json:"categories"`
	Mechanics      []string `json:"mechanics,omitempty"`
	Publishers     []string `json:"publishers,omitempty"`
	Designers      []string `json:"designers,omitempty"`
}

// ItemID uniquely identifies a collection item record
type ItemID string

// CollectionItem is one annotated entry in a user's collection or wishlist.
// The pair (Game.BGGID, IsWishlist) is unique per user. CustomTags preserve
// first-insertion order for display.
type CollectionItem struct {
	ID               ItemID     `json:"id"`
	UserID           UserID     `json:"user_id"`
	Game             GameDetail `json:"game"`
	UserNotes        string     `json:"user_notes,omitempty"`
	CustomTags       []string   `json:"custom_tags"`
	IsWishlist       bool       `json:"is_wishlist"`
	WishlistPriority *int       `json:"wishlist_priority,omitempty"`
	DateAdded        time.Time  `json:"date_added"`
}
