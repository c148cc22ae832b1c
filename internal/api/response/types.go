package response

import (
	"time"

	"github.com/JMaramara/boardgame/internal/model"
)

// TokenResponse is the response for authentication endpoints.
// Callers fetch the profile separately once the token is attached.
type TokenResponse struct {
	Token string `json:"token"`
}

// Profile represents the current user's profile in API responses
type Profile struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	CollectionCount int    `json:"collection_count"`
	WishlistCount   int    `json:"wishlist_count"`
}

// ProfileFromModel converts a model.Profile to a response Profile
func ProfileFromModel(p *model.Profile) Profile {
	return Profile{
		Username:        p.Username,
		Email:           p.Email,
		CollectionCount: p.CollectionCount,
		WishlistCount:   p.WishlistCount,
	}
}

// CatalogEntry represents a search result
type CatalogEntry struct {
	BGGID         string `json:"bgg_id"`
	Name          string `json:"name"`
	YearPublished string `json:"year_published,omitempty"`
}

// CatalogEntryFromModel converts a model.CatalogEntry
func CatalogEntryFromModel(e model.CatalogEntry) CatalogEntry {
	return CatalogEntry{
		BGGID:         e.BGGID,
		Name:          e.Name,
		YearPublished: e.YearPublished,
	}
}

// SearchResponse is the response for catalog search
type SearchResponse struct {
	Results []CatalogEntry `json:"results"`
}

// SearchResponseFromModel converts a slice of catalog entries
func SearchResponseFromModel(entries []model.CatalogEntry) SearchResponse {
	results := make([]CatalogEntry, len(entries))
	for i, e := range entries {
		results[i] = CatalogEntryFromModel(e)
	}
	return SearchResponse{Results: results}
}

// GameDetail represents a full game record in API responses
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

// GameDetailFromModel converts a model.GameDetail
func GameDetailFromModel(g *model.GameDetail) GameDetail {
	return GameDetail{
		BGGID:          g.BGGID,
		Name:           g.Name,
		YearPublished:  g.YearPublished,
		Description:    g.Description,
		ImageURL:       g.ImageURL,
		ThumbnailURL:   g.ThumbnailURL,
		MinPlayers:     g.MinPlayers,
		MaxPlayers:     g.MaxPlayers,
		MinPlaytime:    g.MinPlaytime,
		MaxPlaytime:    g.MaxPlaytime,
		MinAge:         g.MinAge,
		BGGRating:      g.BGGRating,
		BGGRatingCount: g.BGGRatingCount,
		Categories:     g.Categories,
		Mechanics:      g.Mechanics,
		Publishers:     g.Publishers,
		Designers:      g.Designers,
	}
}

// CollectionItem represents one annotated list entry
type CollectionItem struct {
	ID               string     `json:"id"`
	Game             GameDetail `json:"game"`
	UserNotes        string     `json:"user_notes,omitempty"`
	CustomTags       []string   `json:"custom_tags"`
	IsWishlist       bool       `json:"is_wishlist"`
	WishlistPriority *int       `json:"wishlist_priority,omitempty"`
	DateAdded        time.Time  `json:"date_added"`
}

// CollectionItemFromModel converts a model.CollectionItem
func CollectionItemFromModel(item *model.CollectionItem) CollectionItem {
	tags := item.CustomTags
	if tags == nil {
		tags = []string{}
	}
	return CollectionItem{
		ID:               string(item.ID),
		Game:             GameDetailFromModel(&item.Game),
		UserNotes:        item.UserNotes,
		CustomTags:       tags,
		IsWishlist:       item.IsWishlist,
		WishlistPriority: item.WishlistPriority,
		DateAdded:        item.DateAdded,
	}
}

// CollectionItemsFromModel converts a slice of collection items
func CollectionItemsFromModel(items []*model.CollectionItem) []CollectionItem {
	out := make([]CollectionItem, len(items))
	for i, item := range items {
		out[i] = CollectionItemFromModel(item)
	}
	return out
}
