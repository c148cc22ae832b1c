package account

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/JMaramara/boardgame/internal/dependencies/clock"
	"github.com/JMaramara/boardgame/internal/model"
	"github.com/JMaramara/boardgame/internal/storage"
)

// Service handles registration, login and profile lookups
type Service struct {
	storage storage.Storage
	clock   clock.Clock

	sessionTTL time.Duration
}

// Config holds configuration for the account service
type Config struct {
	// SessionTTL is how long issued bearer tokens stay valid.
	// Tokens are persisted so they survive server restarts; there is no
	// logout endpoint, expiry reaps abandoned sessions.
	SessionTTL time.Duration
}

// DefaultConfig returns default account configuration
func DefaultConfig() Config {
	return Config{
		SessionTTL: 30 * 24 * time.Hour,
	}
}

// New creates a new account Service
func New(storage storage.Storage, clock clock.Clock, cfg Config) *Service {
	if cfg.SessionTTL == 0 {
		cfg.SessionTTL = DefaultConfig().SessionTTL
	}
	return &Service{
		storage:    storage,
		clock:      clock,
		sessionTTL: cfg.SessionTTL,
	}
}

// Register creates a new user account and issues a session.
// Username and email uniqueness is enforced here.
func (s *Service) Register(ctx context.Context, username, email, password string) (*model.Session, error) {
	if _, err := s.storage.GetUserByUsername(ctx, username); err == nil {
		return nil, model.ErrUsernameExists
	} else if !errors.Is(err, model.ErrUserNotFound) {
		return nil, err
	}

	if _, err := s.storage.GetUserByEmail(ctx, email); err == nil {
		return nil, model.ErrEmailExists
	} else if !errors.Is(err, model.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:           model.UserID(uuid.NewString()),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    s.clock.Now(),
	}

	if err := s.storage.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	return s.createSession(ctx, user.ID)
}

// Login authenticates a user and issues a session
func (s *Service) Login(ctx context.Context, username, password string) (*model.Session, error) {
	user, err := s.storage.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	return s.createSession(ctx, user.ID)
}

// ValidateSession checks a bearer token and returns the user it belongs to
func (s *Service) ValidateSession(ctx context.Context, token string) (*model.User, error) {
	session, err := s.storage.GetSession(ctx, token)
	if err != nil {
		return nil, err
	}

	if s.clock.Now().After(session.ExpiresAt) {
		_ = s.storage.DeleteSession(ctx, token)
		return nil, model.ErrInvalidSession
	}

	user, err := s.storage.GetUser(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.ErrInvalidSession
		}
		return nil, err
	}
	return user, nil
}

// Profile returns the profile for a user. The list counts are recomputed from
// storage on every call, never cached or incremented.
func (s *Service) Profile(ctx context.Context, userID model.UserID) (*model.Profile, error) {
	user, err := s.storage.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	owned, err := s.storage.CountCollectionItems(ctx, userID, false)
	if err != nil {
		return nil, err
	}
	wishlist, err := s.storage.CountCollectionItems(ctx, userID, true)
	if err != nil {
		return nil, err
	}

	return &model.Profile{
		Username:        user.Username,
		Email:           user.Email,
		CollectionCount: owned,
		WishlistCount:   wishlist,
	}, nil
}

// createSession issues and persists a new session for a user
func (s *Service) createSession(ctx context.Context, userID model.UserID) (*model.Session, error) {
	now := s.clock.Now()

	session := &model.Session{
		Token:     generateToken(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}

	if err := s.storage.SaveSession(ctx, session, s.sessionTTL); err != nil {
		return nil, err
	}
	return session, nil
}

// generateToken generates a random opaque bearer token
func generateToken() string {
	b := make([]byte, 24)
	_, _ = rand.Read(b)
	return "tok_" + base64.RawURLEncoding.EncodeToString(b)
}
