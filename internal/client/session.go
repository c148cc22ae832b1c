package client

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/JMaramara/boardgame/internal/model"
)

// Status is the session lifecycle state
type Status int

const (
	// StatusInitializing is the state at process start, before the persisted
	// token has been checked
	StatusInitializing Status = iota
	// StatusAnonymous means no session; reads of the user's lists return
	// empty without a request
	StatusAnonymous
	// StatusAuthenticated means a validated token and profile are held
	StatusAuthenticated
	// StatusInvalid means a persisted token failed validation; it is retained
	// only long enough to be erased
	StatusInvalid
)

func (s Status) String() string {
	switch s {
	case StatusInitializing:
		return "initializing"
	case StatusAnonymous:
		return "anonymous"
	case StatusAuthenticated:
		return "authenticated"
	case StatusInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Session is an immutable-per-transition snapshot of the session state.
// User is present iff Status is StatusAuthenticated; Token is present iff
// Status is StatusAuthenticated or StatusInvalid.
type Session struct {
	Status Status
	Token  string
	User   *model.Profile
}

// Authenticated reports whether the session holds a validated token
func (s Session) Authenticated() bool {
	return s.Status == StatusAuthenticated
}

// sessionAPI is what the session store needs from the API client
type sessionAPI interface {
	Login(ctx context.Context, username, password string) (string, error)
	Register(ctx context.Context, username, email, password string) (string, error)
	Profile(ctx context.Context) (*model.Profile, error)
	SetToken(token string)
}

// SessionStore owns the authentication token and current-user profile.
// It is the sole writer of the persisted token slot and of the API client's
// bearer token; both always reflect the current session state.
type SessionStore struct {
	api    sessionAPI
	tokens TokenStore
	logger *slog.Logger

	// mu serializes transitions: no two session mutations are ever in
	// flight concurrently, a login during initialize queues behind it
	mu          sync.Mutex
	initialized bool

	stateMu sync.RWMutex
	current Session
}

// NewSessionStore creates a session store in the Initializing state
func NewSessionStore(api sessionAPI, tokens TokenStore, logger *slog.Logger) *SessionStore {
	return &SessionStore{
		api:     api,
		tokens:  tokens,
		logger:  logger,
		current: Session{Status: StatusInitializing},
	}
}

// Current returns the current session snapshot
func (s *SessionStore) Current() Session {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.current
}

func (s *SessionStore) setCurrent(session Session) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	s.current = session
}

// Initialize settles the session from the persisted token. It runs exactly
// once per process; later calls return immediately. Components issuing
// authenticated requests must wait for it to return.
func (s *SessionStore) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	s.initialized = true

	token, err := s.tokens.Load()
	if err != nil {
		s.logger.Warn("failed to read persisted token", slog.String("error", err.Error()))
		s.setCurrent(Session{Status: StatusAnonymous})
		return nil
	}
	if token == "" {
		s.setCurrent(Session{Status: StatusAnonymous})
		return nil
	}

	s.api.SetToken(token)
	profile, err := s.api.Profile(ctx)
	if err != nil {
		// Whether the stored token is stale or the authority is unreachable,
		// it must not stay attached
		s.logger.Info("persisted token rejected, starting anonymous",
			slog.String("error", err.Error()),
		)
		s.setCurrent(Session{Status: StatusInvalid, Token: token})
		s.detach()
		s.setCurrent(Session{Status: StatusAnonymous})
		return nil
	}

	s.setCurrent(Session{Status: StatusAuthenticated, Token: token, User: profile})
	return nil
}

// Login exchanges credentials for a token and settles Authenticated.
// On failure the session state is left unchanged and a typed error returned.
func (s *SessionStore) Login(ctx context.Context, username, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.establish(ctx, func() (string, error) {
		return s.api.Login(ctx, username, password)
	})
}

// Register creates an account and settles Authenticated, with the same
// contract as Login. Duplicate username or email failures are surfaced
// verbatim as their own conditions.
func (s *SessionStore) Register(ctx context.Context, username, email, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.establish(ctx, func() (string, error) {
		return s.api.Register(ctx, username, email, password)
	})
}

// establish runs a credential exchange and completes the transition to
// Authenticated. Callers hold mu.
func (s *SessionStore) establish(ctx context.Context, exchange func() (string, error)) error {
	token, err := exchange()
	if err != nil {
		return err
	}

	if err := s.tokens.Save(token); err != nil {
		s.logger.Warn("failed to persist token", slog.String("error", err.Error()))
	}
	s.api.SetToken(token)

	profile, err := s.api.Profile(ctx)
	if err != nil {
		// The exchange succeeded but the token cannot be used; roll all the
		// way back rather than leave a half-established session
		s.detach()
		s.setCurrent(Session{Status: StatusAnonymous})
		return err
	}

	s.setCurrent(Session{Status: StatusAuthenticated, Token: token, User: profile})
	return nil
}

// Logout erases the persisted token, detaches it from outgoing requests and
// settles Anonymous. It never fails.
func (s *SessionStore) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.detach()
	s.setCurrent(Session{Status: StatusAnonymous})
}

// RefreshProfile re-fetches the profile with the current token. Any failure
// cascades into a full logout: a stale token must never stay attached. A
// rejected token is resolved silently; other failures are returned after the
// logout so callers can log them.
func (s *SessionStore) RefreshProfile(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.Current()
	if !current.Authenticated() {
		return nil
	}

	profile, err := s.api.Profile(ctx)
	if err != nil {
		s.detach()
		s.setCurrent(Session{Status: StatusAnonymous})
		if errors.Is(err, model.ErrInvalidSession) {
			s.logger.Info("session no longer valid, logged out")
			return nil
		}
		return err
	}

	s.setCurrent(Session{Status: StatusAuthenticated, Token: current.Token, User: profile})
	return nil
}

// detach erases the persisted token and removes it from outgoing requests
func (s *SessionStore) detach() {
	if err := s.tokens.Clear(); err != nil {
		s.logger.Warn("failed to clear persisted token", slog.String("error", err.Error()))
	}
	s.api.SetToken("")
}
