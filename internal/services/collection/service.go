package collection

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/JMaramara/boardgame/internal/dependencies/clock"
	"github.com/JMaramara/boardgame/internal/model"
	"github.com/JMaramara/boardgame/internal/storage"
)

// GameResolver fetches the full metadata record for a catalog entry.
// Satisfied by the catalog service.
type GameResolver interface {
	GameDetail(ctx context.Context, bggID string) (*model.GameDetail, error)
}

// Service manages the user's two annotated lists
type Service struct {
	storage storage.Storage
	games   GameResolver
	clock   clock.Clock
}

// New creates a new collection Service
func New(storage storage.Storage, games GameResolver, clock clock.Clock) *Service {
	return &Service{
		storage: storage,
		games:   games,
		clock:   clock,
	}
}

// List returns all of a user's items for one list flag, in insertion order
func (s *Service) List(ctx context.Context, userID model.UserID, isWishlist bool) ([]*model.CollectionItem, error) {
	return s.storage.ListCollectionItems(ctx, userID, isWishlist)
}

// Add creates a new collection item. The game's full record is fetched from
// the catalog at add time, and (bggID, isWishlist) must not already be
// present in the user's list.
func (s *Service) Add(ctx context.Context, userID model.UserID, bggID, notes string, tags []string, isWishlist bool, priority *int) (*model.CollectionItem, error) {
	detail, err := s.games.GameDetail(ctx, bggID)
	if err != nil {
		return nil, err
	}

	_, err = s.storage.FindCollectionItem(ctx, userID, bggID, isWishlist)
	if err == nil {
		return nil, model.ErrDuplicateItem
	}
	if !errors.Is(err, model.ErrItemNotFound) {
		return nil, err
	}

	item := &model.CollectionItem{
		ID:               model.ItemID(uuid.NewString()),
		UserID:           userID,
		Game:             *detail,
		UserNotes:        notes,
		CustomTags:       normalizeTags(tags),
		IsWishlist:       isWishlist,
		WishlistPriority: priority,
		DateAdded:        s.clock.Now(),
	}

	if err := s.storage.SaveCollectionItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Remove deletes one of the user's items.
// Returns ErrItemNotFound for unknown ids and for items owned by other users.
func (s *Service) Remove(ctx context.Context, userID model.UserID, itemID model.ItemID) error {
	item, err := s.storage.GetCollectionItem(ctx, itemID)
	if err != nil {
		return err
	}
	if item.UserID != userID {
		return model.ErrItemNotFound
	}
	return s.storage.DeleteCollectionItem(ctx, itemID)
}

// Update replaces the notes and/or tags on one of the user's items.
// Nil means leave the field unchanged.
func (s *Service) Update(ctx context.Context, userID model.UserID, itemID model.ItemID, notes *string, tags []string) (*model.CollectionItem, error) {
	item, err := s.storage.GetCollectionItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.UserID != userID {
		return nil, model.ErrItemNotFound
	}

	if notes != nil {
		item.UserNotes = *notes
	}
	if tags != nil {
		item.CustomTags = normalizeTags(tags)
	}

	if err := s.storage.SaveCollectionItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// normalizeTags trims, drops empties and deduplicates while preserving first
// insertion order
func normalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	normalized := []string{}
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		normalized = append(normalized, tag)
	}
	return normalized
}
