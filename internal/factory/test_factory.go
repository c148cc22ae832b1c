package factory

import (
	"io"
	"log/slog"
	"time"

	"github.com/JMaramara/boardgame/internal/dependencies/mocks"
	"github.com/JMaramara/boardgame/internal/services/account"
	"github.com/JMaramara/boardgame/internal/services/catalog"
	"github.com/JMaramara/boardgame/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// The catalog client points at catalogURL, typically an httptest server
// serving canned BoardGameGeek XML.
func NewTestApp(catalogURL string) *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	catalogCfg := catalog.DefaultConfig()
	catalogCfg.BaseURL = catalogURL

	app := newWithDependencies(store, mockClock, account.DefaultConfig(), catalogCfg, logger)

	return &TestApp{
		App:       app,
		MockClock: mockClock,
	}
}
