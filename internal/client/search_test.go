package client

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/JMaramara/boardgame/internal/model"
	"github.com/JMaramara/boardgame/internal/testutil"
)

// stubSearchAPI serves canned results per query and can hold a query's
// response on a gate to simulate out-of-order arrival
type stubSearchAPI struct {
	mu      sync.Mutex
	calls   []string
	results map[string][]model.CatalogEntry
	errs    map[string]error
	gates   map[string]chan struct{}
}

func newStubSearchAPI() *stubSearchAPI {
	return &stubSearchAPI{
		results: make(map[string][]model.CatalogEntry),
		errs:    make(map[string]error),
		gates:   make(map[string]chan struct{}),
	}
}

func (a *stubSearchAPI) SearchCatalog(ctx context.Context, query string) ([]model.CatalogEntry, error) {
	a.mu.Lock()
	a.calls = append(a.calls, query)
	gate := a.gates[query]
	a.mu.Unlock()

	if gate != nil {
		<-gate
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.errs[query]; err != nil {
		return nil, err
	}
	return a.results[query], nil
}

func (a *stubSearchAPI) callCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.calls)
}

func (a *stubSearchAPI) calledWith(query string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, call := range a.calls {
		if call == query {
			return true
		}
	}
	return false
}

type SearcherSuite struct {
	suite.Suite
	api      *stubSearchAPI
	searcher *Searcher
}

func TestSearcherSuite(t *testing.T) {
	suite.Run(t, new(SearcherSuite))
}

func (s *SearcherSuite) SetupTest() {
	s.api = newStubSearchAPI()
	s.api.results["catan"] = []model.CatalogEntry{
		{BGGID: "13", Name: "CATAN", YearPublished: "1995"},
		{BGGID: "27710", Name: "Catan: Cities & Knights", YearPublished: "1998"},
	}
	s.api.results["cat"] = []model.CatalogEntry{
		{BGGID: "158899", Name: "Cat Lady", YearPublished: "2017"},
	}
	s.searcher = NewSearcher(s.api, SearcherConfig{Debounce: 5 * time.Millisecond}, testutil.NopLogger())
}

func (s *SearcherSuite) waitForResults(names ...string) {
	s.Eventually(func() bool {
		results := s.searcher.Results()
		if len(results) != len(names) {
			return false
		}
		for i, name := range names {
			if results[i].Name != name {
				return false
			}
		}
		return true
	}, time.Second, time.Millisecond)
}

func (s *SearcherSuite) TestSearchReturnsOrderedResults() {
	s.searcher.Search("catan")

	s.waitForResults("CATAN", "Catan: Cities & Knights")
	s.Equal(1, s.api.callCount())
}

func (s *SearcherSuite) TestShortQueryClearsWithoutRequest() {
	s.searcher.Search("catan")
	s.waitForResults("CATAN", "Catan: Cities & Knights")

	s.searcher.Search("c")

	s.Empty(s.searcher.Results())
	s.Equal(1, s.api.callCount())
}

func (s *SearcherSuite) TestEmptyQueryClearsWithoutRequest() {
	s.searcher.Search("   ")

	s.Empty(s.searcher.Results())
	s.Equal(0, s.api.callCount())
}

func (s *SearcherSuite) TestRapidTypingIssuesOnlyFinalQuery() {
	s.searcher.Search("ca")
	s.searcher.Search("cat")
	s.searcher.Search("cata")
	s.searcher.Search("catan")

	s.waitForResults("CATAN", "Catan: Cities & Knights")
	s.Equal(1, s.api.callCount())
	s.True(s.api.calledWith("catan"))
}

func (s *SearcherSuite) TestLateResponseForSupersededQueryIsDiscarded() {
	gate := make(chan struct{})
	s.api.mu.Lock()
	s.api.gates["cat"] = gate
	s.api.mu.Unlock()

	// The first query's response is held in flight
	s.searcher.Search("cat")
	s.Eventually(func() bool { return s.api.calledWith("cat") }, time.Second, time.Millisecond)

	// The refined query completes while the first is still pending
	s.searcher.Search("catan")
	s.waitForResults("CATAN", "Catan: Cities & Knights")

	// The stale response must not overwrite the newer results
	close(gate)
	time.Sleep(20 * time.Millisecond)
	s.waitForResults("CATAN", "Catan: Cities & Knights")
}

func (s *SearcherSuite) TestLateResponseAfterClearIsDiscarded() {
	gate := make(chan struct{})
	s.api.mu.Lock()
	s.api.gates["cat"] = gate
	s.api.mu.Unlock()

	s.searcher.Search("cat")
	s.Eventually(func() bool { return s.api.calledWith("cat") }, time.Second, time.Millisecond)

	// Deleting back below the minimum clears the result set
	s.searcher.Search("c")
	s.Empty(s.searcher.Results())

	close(gate)
	time.Sleep(20 * time.Millisecond)
	s.Empty(s.searcher.Results())
}

func (s *SearcherSuite) TestFailureClearsResults() {
	s.searcher.Search("catan")
	s.waitForResults("CATAN", "Catan: Cities & Knights")

	s.api.mu.Lock()
	s.api.errs["wingspan"] = model.ErrCatalogUnavailable
	s.api.mu.Unlock()

	s.searcher.Search("wingspan")

	s.Eventually(func() bool {
		return s.searcher.Results() == nil
	}, time.Second, time.Millisecond)
}

func (s *SearcherSuite) TestOnUpdateReceivesSnapshots() {
	var mu sync.Mutex
	var updates [][]model.CatalogEntry
	s.searcher = NewSearcher(s.api, SearcherConfig{
		Debounce: 5 * time.Millisecond,
		OnUpdate: func(results []model.CatalogEntry) {
			mu.Lock()
			defer mu.Unlock()
			updates = append(updates, results)
		},
	}, testutil.NopLogger())

	s.searcher.Search("cat")
	s.Eventually(func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(updates) == 1 && len(updates[0]) == 1
	}, time.Second, time.Millisecond)

	s.searcher.Search("x")
	s.Eventually(func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(updates) == 2 && updates[1] == nil
	}, time.Second, time.Millisecond)
}
