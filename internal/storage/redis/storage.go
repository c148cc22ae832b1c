package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/JMaramara/boardgame/internal/model"
	"github.com/JMaramara/boardgame/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index updates
	pipe := s.client.Pipeline()
	pipe.Set(ctx, userKey(user.ID), data, 0)
	pipe.Set(ctx, usernameIndexKey(user.Username), string(user.ID), 0)
	pipe.Set(ctx, emailIndexKey(user.Email), string(user.ID), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	data, err := s.client.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	userIDStr, err := s.client.Get(ctx, usernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	return s.GetUser(ctx, model.UserID(userIDStr))
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	userIDStr, err := s.client.Get(ctx, emailIndexKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	return s.GetUser(ctx, model.UserID(userIDStr))
}

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.Session, ttl time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, sessionKey(session.Token), data, ttl).Err()
}

func (s *Storage) GetSession(ctx context.Context, token string) (*model.Session, error) {
	data, err := s.client.Get(ctx, sessionKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrInvalidSession
		}
		return nil, err
	}

	var session model.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *Storage) DeleteSession(ctx context.Context, token string) error {
	return s.client.Del(ctx, sessionKey(token)).Err()
}

// Collection operations

func (s *Storage) SaveCollectionItem(ctx context.Context, item *model.CollectionItem) error {
	data, err := json.Marshal(item)
	if err != nil {
		return err
	}

	exists, err := s.client.Exists(ctx, itemKey(item.ID)).Result()
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + ordered index append
	pipe := s.client.Pipeline()
	pipe.Set(ctx, itemKey(item.ID), data, 0)
	if exists == 0 {
		pipe.RPush(ctx, listIndexKey(item.UserID, item.IsWishlist), string(item.ID))
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetCollectionItem(ctx context.Context, id model.ItemID) (*model.CollectionItem, error) {
	data, err := s.client.Get(ctx, itemKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrItemNotFound
		}
		return nil, err
	}

	var item model.CollectionItem
	if err := json.Unmarshal(data, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Storage) FindCollectionItem(ctx context.Context, userID model.UserID, bggID string, isWishlist bool) (*model.CollectionItem, error) {
	items, err := s.ListCollectionItems(ctx, userID, isWishlist)
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		if item.Game.BGGID == bggID {
			return item, nil
		}
	}
	return nil, model.ErrItemNotFound
}

func (s *Storage) ListCollectionItems(ctx context.Context, userID model.UserID, isWishlist bool) ([]*model.CollectionItem, error) {
	ids, err := s.client.LRange(ctx, listIndexKey(userID, isWishlist), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	items := make([]*model.CollectionItem, 0, len(ids))
	for _, id := range ids {
		item, err := s.GetCollectionItem(ctx, model.ItemID(id))
		if err != nil {
			if errors.Is(err, model.ErrItemNotFound) {
				continue
			}
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *Storage) CountCollectionItems(ctx context.Context, userID model.UserID, isWishlist bool) (int, error) {
	n, err := s.client.LLen(ctx, listIndexKey(userID, isWishlist)).Result()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func (s *Storage) DeleteCollectionItem(ctx context.Context, id model.ItemID) error {
	item, err := s.GetCollectionItem(ctx, id)
	if err != nil {
		return err
	}

	// Use pipeline for atomic delete + index removal
	pipe := s.client.Pipeline()
	pipe.Del(ctx, itemKey(id))
	pipe.LRem(ctx, listIndexKey(item.UserID, item.IsWishlist), 1, string(id))
	_, err = pipe.Exec(ctx)
	return err
}
