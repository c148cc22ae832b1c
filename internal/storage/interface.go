package storage

import (
	"context"
	"time"

	"github.com/JMaramara/boardgame/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// User operations
	SaveUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id model.UserID) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)

	// Session operations
	SaveSession(ctx context.Context, session *model.Session, ttl time.Duration) error
	GetSession(ctx context.Context, token string) (*model.Session, error)
	DeleteSession(ctx context.Context, token string) error

	// Collection operations
	SaveCollectionItem(ctx context.Context, item *model.CollectionItem) error
	GetCollectionItem(ctx context.Context, id model.ItemID) (*model.CollectionItem, error)
	FindCollectionItem(ctx context.Context, userID model.UserID, bggID string, isWishlist bool) (*model.CollectionItem, error)
	ListCollectionItems(ctx context.Context, userID model.UserID, isWishlist bool) ([]*model.CollectionItem, error)
	CountCollectionItems(ctx context.Context, userID model.UserID, isWishlist bool) (int, error)
	DeleteCollectionItem(ctx context.Context, id model.ItemID) error
}
