package memory

import (
	"context"
	"sync"
	"time"

	"github.com/JMaramara/boardgame/internal/model"
	"github.com/JMaramara/boardgame/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	users         map[model.UserID]*model.User
	usernameIndex map[string]model.UserID
	emailIndex    map[string]model.UserID
	sessions      map[string]*model.Session
	items         map[model.ItemID]*model.CollectionItem
	listOrder     map[listKey][]model.ItemID
}

// listKey identifies one of a user's two lists
type listKey struct {
	userID     model.UserID
	isWishlist bool
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users:         make(map[model.UserID]*model.User),
		usernameIndex: make(map[string]model.UserID),
		emailIndex:    make(map[string]model.UserID),
		sessions:      make(map[string]*model.Session),
		items:         make(map[model.ItemID]*model.CollectionItem),
		listOrder:     make(map[listKey][]model.ItemID),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
	s.usernameIndex[user.Username] = user.ID
	s.emailIndex[user.Email] = user.ID
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.emailIndex[email]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.Session, ttl time.Duration) error {
	// Expiry is carried on the session itself; the TTL hint only matters for
	// backends with native key expiry.
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.Token] = session
	return nil
}

func (s *Storage) GetSession(ctx context.Context, token string) (*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[token]
	if !ok {
		return nil, model.ErrInvalidSession
	}
	return session, nil
}

func (s *Storage) DeleteSession(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

// Collection operations

func (s *Storage) SaveCollectionItem(ctx context.Context, item *model.CollectionItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := listKey{item.UserID, item.IsWishlist}
	if _, exists := s.items[item.ID]; !exists {
		s.listOrder[key] = append(s.listOrder[key], item.ID)
	}
	s.items[item.ID] = item
	return nil
}

func (s *Storage) GetCollectionItem(ctx context.Context, id model.ItemID) (*model.CollectionItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	if !ok {
		return nil, model.ErrItemNotFound
	}
	return item, nil
}

func (s *Storage) FindCollectionItem(ctx context.Context, userID model.UserID, bggID string, isWishlist bool) (*model.CollectionItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.listOrder[listKey{userID, isWishlist}] {
		item, ok := s.items[id]
		if ok && item.Game.BGGID == bggID {
			return item, nil
		}
	}
	return nil, model.ErrItemNotFound
}

func (s *Storage) ListCollectionItems(ctx context.Context, userID model.UserID, isWishlist bool) ([]*model.CollectionItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order := s.listOrder[listKey{userID, isWishlist}]
	items := make([]*model.CollectionItem, 0, len(order))
	for _, id := range order {
		if item, ok := s.items[id]; ok {
			items = append(items, item)
		}
	}
	return items, nil
}

func (s *Storage) CountCollectionItems(ctx context.Context, userID model.UserID, isWishlist bool) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, id := range s.listOrder[listKey{userID, isWishlist}] {
		if _, ok := s.items[id]; ok {
			count++
		}
	}
	return count, nil
}

func (s *Storage) DeleteCollectionItem(ctx context.Context, id model.ItemID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return model.ErrItemNotFound
	}
	delete(s.items, id)

	key := listKey{item.UserID, item.IsWishlist}
	order := s.listOrder[key]
	for i, oid := range order {
		if oid == id {
			s.listOrder[key] = append(order[:i], order[i+1:]...)
			break
		}
	}
	return nil
}
