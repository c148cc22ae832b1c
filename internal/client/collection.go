package client

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/JMaramara/boardgame/internal/api/request"
	"github.com/JMaramara/boardgame/internal/model"
)

// ErrNotAuthenticated is returned by collection writes attempted without a
// valid session
var ErrNotAuthenticated = errors.New("not authenticated")

// collectionAPI is what the manager needs from the API client
type collectionAPI interface {
	ListCollection(ctx context.Context, isWishlist bool) ([]model.CollectionItem, error)
	AddCollectionItem(ctx context.Context, req request.AddCollectionItemRequest) (*model.CollectionItem, error)
	UpdateCollectionItem(ctx context.Context, itemID model.ItemID, notes *string, tags []string) (*model.CollectionItem, error)
	RemoveCollectionItem(ctx context.Context, itemID model.ItemID) error
}

// CollectionManager is the CRUD surface over the user's two annotated lists.
// The backing store is the sole source of truth: after every successful
// mutation the affected list is re-fetched and the profile counts refreshed,
// never adjusted locally.
type CollectionManager struct {
	api     collectionAPI
	session *SessionStore
	logger  *slog.Logger

	mu    sync.Mutex
	cache map[bool][]model.CollectionItem
}

// NewCollectionManager creates a new collection manager
func NewCollectionManager(api collectionAPI, session *SessionStore, logger *slog.Logger) *CollectionManager {
	return &CollectionManager{
		api:     api,
		session: session,
		logger:  logger,
		cache:   make(map[bool][]model.CollectionItem),
	}
}

// List fetches all items for one list flag, in insertion order. Without an
// authenticated session it returns an empty set and issues no request; that
// is a valid state, not an error, and the caller shows a sign-in prompt.
func (m *CollectionManager) List(ctx context.Context, isWishlist bool) ([]model.CollectionItem, error) {
	if !m.session.Current().Authenticated() {
		return nil, nil
	}

	items, err := m.api.ListCollection(ctx, isWishlist)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.cache[isWishlist] = items
	m.mu.Unlock()
	return items, nil
}

// Cached returns the last fetched snapshot for a list flag without issuing
// a request
func (m *CollectionManager) Cached(isWishlist bool) []model.CollectionItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cache[isWishlist]
}

// Add submits a new item. Notes and tags are set at creation time. Adding a
// game already present in the same list fails with model.ErrDuplicateItem,
// distinguishable from transport failures.
func (m *CollectionManager) Add(ctx context.Context, bggID, notes string, tags []string, isWishlist bool, priority *int) (*model.CollectionItem, error) {
	if !m.session.Current().Authenticated() {
		return nil, ErrNotAuthenticated
	}

	item, err := m.api.AddCollectionItem(ctx, request.AddCollectionItemRequest{
		BGGID:            bggID,
		UserNotes:        notes,
		CustomTags:       tags,
		IsWishlist:       isWishlist,
		WishlistPriority: priority,
	})
	if err != nil {
		return nil, err
	}

	m.refreshAfterMutation(ctx, isWishlist)
	return item, nil
}

// Update replaces the notes and/or tags on an item. Nil leaves a field
// unchanged.
func (m *CollectionManager) Update(ctx context.Context, itemID model.ItemID, notes *string, tags []string) (*model.CollectionItem, error) {
	if !m.session.Current().Authenticated() {
		return nil, ErrNotAuthenticated
	}

	item, err := m.api.UpdateCollectionItem(ctx, itemID, notes, tags)
	if err != nil {
		return nil, err
	}

	// Counts are unchanged by an edit; only the affected list is re-fetched
	if _, err := m.List(ctx, item.IsWishlist); err != nil {
		m.logger.Warn("re-list after update failed", slog.String("error", err.Error()))
	}
	return item, nil
}

// Remove deletes an item. It is idempotent from the caller's perspective:
// removing an id that is already gone reports success with no change, since
// the re-fetched list simply no longer contains it.
func (m *CollectionManager) Remove(ctx context.Context, itemID model.ItemID) error {
	if !m.session.Current().Authenticated() {
		return ErrNotAuthenticated
	}

	isWishlist, known := m.lookupListFlag(itemID)

	err := m.api.RemoveCollectionItem(ctx, itemID)
	if err != nil && !errors.Is(err, model.ErrItemNotFound) {
		return err
	}

	if known {
		m.refreshAfterMutation(ctx, isWishlist)
	} else {
		m.refreshAfterMutation(ctx, false, true)
	}
	return nil
}

// lookupListFlag finds which list an item was last seen in
func (m *CollectionManager) lookupListFlag(itemID model.ItemID) (bool, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for flag, items := range m.cache {
		for _, item := range items {
			if item.ID == itemID {
				return flag, true
			}
		}
	}
	return false, false
}

// refreshAfterMutation re-fetches the affected lists and the profile counts.
// The refreshes are not atomic with the mutation; the store is authoritative
// and a brief window of stale counts is acceptable. Failures are logged, not
// surfaced, as the mutation itself already succeeded.
func (m *CollectionManager) refreshAfterMutation(ctx context.Context, flags ...bool) {
	for _, flag := range flags {
		if _, err := m.List(ctx, flag); err != nil {
			m.logger.Warn("re-list after mutation failed",
				slog.Bool("is_wishlist", flag),
				slog.String("error", err.Error()),
			)
		}
	}
	if err := m.session.RefreshProfile(ctx); err != nil {
		m.logger.Warn("profile refresh after mutation failed", slog.String("error", err.Error()))
	}
}

// Client-local transforms. These are pure and synchronous: the same inputs
// always derive the same output, and no request is issued.

// SortKey selects the ordering for SortItems
type SortKey string

const (
	SortByName   SortKey = "name"
	SortByRating SortKey = "rating"
	SortByYear   SortKey = "year"
)

// SortItems returns a new slice ordered by the given key. Unknown keys
// return the items in their original (insertion) order. The sort is stable,
// so equal keys keep insertion order.
func SortItems(items []model.CollectionItem, key SortKey) []model.CollectionItem {
	sorted := make([]model.CollectionItem, len(items))
	copy(sorted, items)

	switch key {
	case SortByName:
		sort.SliceStable(sorted, func(i, j int) bool {
			return strings.ToLower(sorted[i].Game.Name) < strings.ToLower(sorted[j].Game.Name)
		})
	case SortByRating:
		sort.SliceStable(sorted, func(i, j int) bool {
			return ratingOf(sorted[i]) > ratingOf(sorted[j])
		})
	case SortByYear:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Game.YearPublished < sorted[j].Game.YearPublished
		})
	}
	return sorted
}

func ratingOf(item model.CollectionItem) float64 {
	if item.Game.BGGRating == nil {
		return 0
	}
	return *item.Game.BGGRating
}

// FilterByTag returns the items with at least one tag containing the
// substring, case-insensitively, preserving order
func FilterByTag(items []model.CollectionItem, substring string) []model.CollectionItem {
	substring = strings.ToLower(substring)
	filtered := []model.CollectionItem{}
	for _, item := range items {
		for _, tag := range item.CustomTags {
			if strings.Contains(strings.ToLower(tag), substring) {
				filtered = append(filtered, item)
				break
			}
		}
	}
	return filtered
}

// FilterByName returns the items whose game name contains the substring,
// case-insensitively, preserving order
func FilterByName(items []model.CollectionItem, substring string) []model.CollectionItem {
	substring = strings.ToLower(substring)
	filtered := []model.CollectionItem{}
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Game.Name), substring) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}
