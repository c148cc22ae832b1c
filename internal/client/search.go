package client

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/JMaramara/boardgame/internal/model"
)

const (
	// MinQueryLength is the shortest query that triggers a request. The
	// external catalog's full-text search is expensive and low-precision
	// below this.
	MinQueryLength = 2
	// DefaultDebounce is the quiet period after the last keystroke before a
	// query is issued
	DefaultDebounce = 300 * time.Millisecond
)

// searchAPI is what the searcher needs from the API client
type searchAPI interface {
	SearchCatalog(ctx context.Context, query string) ([]model.CatalogEntry, error)
}

// SearcherConfig holds configuration for the searcher
type SearcherConfig struct {
	// Debounce is the quiet period; zero means DefaultDebounce
	Debounce time.Duration
	// OnUpdate, if set, is called with a snapshot after every change to the
	// result set. It runs outside the searcher's lock.
	OnUpdate func([]model.CatalogEntry)
}

// Searcher turns rapid query text changes into rate-limited catalog
// requests. Queries are debounced; each issued request carries a monotonic
// sequence number and a response is applied only if no later-issued query
// has already been applied, so the visible result set always belongs to the
// latest issued query regardless of response arrival order.
type Searcher struct {
	api      searchAPI
	logger   *slog.Logger
	debounce time.Duration
	onUpdate func([]model.CatalogEntry)

	mu          sync.Mutex
	pending     *time.Timer
	lastIssued  uint64
	lastApplied uint64
	results     []model.CatalogEntry
}

// NewSearcher creates a new catalog searcher
func NewSearcher(api searchAPI, cfg SearcherConfig, logger *slog.Logger) *Searcher {
	if cfg.Debounce == 0 {
		cfg.Debounce = DefaultDebounce
	}
	return &Searcher{
		api:      api,
		logger:   logger,
		debounce: cfg.Debounce,
		onUpdate: cfg.OnUpdate,
	}
}

// Search schedules a query for the current text, replacing any query still
// waiting out its quiet period. Queries shorter than MinQueryLength clear
// the result set without issuing a request.
func (s *Searcher) Search(query string) {
	query = strings.TrimSpace(query)

	s.mu.Lock()
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}

	if utf8.RuneCountInString(query) < MinQueryLength {
		// Short queries settle immediately; bump the sequence so a response
		// still in flight for an earlier query cannot resurface
		s.lastIssued++
		s.lastApplied = s.lastIssued
		s.results = nil
		s.mu.Unlock()
		s.notify(nil)
		return
	}

	s.pending = time.AfterFunc(s.debounce, func() {
		s.issue(query)
	})
	s.mu.Unlock()
}

// issue fires one request for the latest query text. In-flight requests for
// superseded queries are not cancelled, only their results discarded.
func (s *Searcher) issue(query string) {
	s.mu.Lock()
	s.lastIssued++
	seq := s.lastIssued
	s.mu.Unlock()

	entries, err := s.api.SearchCatalog(context.Background(), query)

	s.mu.Lock()
	if seq <= s.lastApplied {
		// A later-issued query has already settled; this response is stale
		s.mu.Unlock()
		return
	}
	s.lastApplied = seq

	if err != nil {
		// Never leave a prior query's results showing; clear and log, the
		// failure is not surfaced as a blocking error
		s.logger.Warn("catalog search failed",
			slog.String("query", query),
			slog.String("error", err.Error()),
		)
		s.results = nil
	} else {
		s.results = entries
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snapshot)
}

// Results returns a snapshot of the current ordered result set
func (s *Searcher) Results() []model.CatalogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Searcher) snapshotLocked() []model.CatalogEntry {
	if s.results == nil {
		return nil
	}
	snapshot := make([]model.CatalogEntry, len(s.results))
	copy(snapshot, s.results)
	return snapshot
}

func (s *Searcher) notify(results []model.CatalogEntry) {
	if s.onUpdate != nil {
		s.onUpdate(results)
	}
}
