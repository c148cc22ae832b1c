package client

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/JMaramara/boardgame/internal/api/request"
	"github.com/JMaramara/boardgame/internal/model"
	"github.com/JMaramara/boardgame/internal/testutil"
)

// fakeCollectionAPI records calls and serves scripted lists
type fakeCollectionAPI struct {
	mu sync.Mutex

	lists     map[bool][]model.CollectionItem
	listCalls []bool

	addResult *model.CollectionItem
	addErr    error
	addCalls  []request.AddCollectionItemRequest

	updateResult *model.CollectionItem
	updateErr    error

	removeErr   error
	removeCalls []model.ItemID
}

func newFakeCollectionAPI() *fakeCollectionAPI {
	return &fakeCollectionAPI{lists: make(map[bool][]model.CollectionItem)}
}

func (a *fakeCollectionAPI) ListCollection(ctx context.Context, isWishlist bool) ([]model.CollectionItem, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.listCalls = append(a.listCalls, isWishlist)
	return a.lists[isWishlist], nil
}

func (a *fakeCollectionAPI) AddCollectionItem(ctx context.Context, req request.AddCollectionItemRequest) (*model.CollectionItem, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.addCalls = append(a.addCalls, req)
	if a.addErr != nil {
		return nil, a.addErr
	}
	return a.addResult, nil
}

func (a *fakeCollectionAPI) UpdateCollectionItem(ctx context.Context, itemID model.ItemID, notes *string, tags []string) (*model.CollectionItem, error) {
	if a.updateErr != nil {
		return nil, a.updateErr
	}
	return a.updateResult, nil
}

func (a *fakeCollectionAPI) RemoveCollectionItem(ctx context.Context, itemID model.ItemID) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.removeCalls = append(a.removeCalls, itemID)
	return a.removeErr
}

type CollectionManagerSuite struct {
	suite.Suite
	api        *fakeCollectionAPI
	sessionAPI *fakeSessionAPI
	session    *SessionStore
	manager    *CollectionManager
	ctx        context.Context
}

func TestCollectionManagerSuite(t *testing.T) {
	suite.Run(t, new(CollectionManagerSuite))
}

func (s *CollectionManagerSuite) SetupTest() {
	s.api = newFakeCollectionAPI()
	s.sessionAPI = &fakeSessionAPI{
		profile: &model.Profile{Username: "alice"},
	}
	tokens := NewMemoryTokenStore()
	s.session = NewSessionStore(s.sessionAPI, tokens, testutil.NopLogger())
	s.manager = NewCollectionManager(s.api, s.session, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *CollectionManagerSuite) authenticate() {
	s.sessionAPI.loginToken = "tok_test"
	s.Require().NoError(s.session.Initialize(s.ctx))
	s.Require().NoError(s.session.Login(s.ctx, "alice", "hunter22"))
}

func item(id, bggID, name string, isWishlist bool, tags ...string) model.CollectionItem {
	return model.CollectionItem{
		ID:         model.ItemID(id),
		Game:       model.GameDetail{BGGID: bggID, Name: name},
		CustomTags: tags,
		IsWishlist: isWishlist,
	}
}

// List tests

func (s *CollectionManagerSuite) TestListWhenAnonymousReturnsEmptyWithoutRequest() {
	s.Require().NoError(s.session.Initialize(s.ctx))
	s.api.lists[false] = []model.CollectionItem{item("i1", "13", "CATAN", false)}

	items, err := s.manager.List(s.ctx, false)

	s.NoError(err)
	s.Empty(items)
	s.Empty(s.api.listCalls)
}

func (s *CollectionManagerSuite) TestListFetchesInInsertionOrder() {
	s.authenticate()
	s.api.lists[false] = []model.CollectionItem{
		item("i1", "13", "CATAN", false),
		item("i2", "9209", "Ticket to Ride", false),
	}

	items, err := s.manager.List(s.ctx, false)

	s.Require().NoError(err)
	s.Require().Len(items, 2)
	s.Equal("CATAN", items[0].Game.Name)
	s.Equal("Ticket to Ride", items[1].Game.Name)
	s.Equal(items, s.manager.Cached(false))
}

func (s *CollectionManagerSuite) TestListSeparatesWishlistFromCollection() {
	s.authenticate()
	s.api.lists[false] = []model.CollectionItem{item("i1", "13", "CATAN", false)}
	s.api.lists[true] = []model.CollectionItem{item("i2", "266192", "Wingspan", true)}

	owned, err := s.manager.List(s.ctx, false)
	s.Require().NoError(err)
	wishlist, err := s.manager.List(s.ctx, true)
	s.Require().NoError(err)

	s.Len(owned, 1)
	s.Len(wishlist, 1)
	s.Equal("CATAN", owned[0].Game.Name)
	s.Equal("Wingspan", wishlist[0].Game.Name)
}

// Add tests

func (s *CollectionManagerSuite) TestAddWhenAnonymousIssuesNoRequest() {
	s.Require().NoError(s.session.Initialize(s.ctx))

	_, err := s.manager.Add(s.ctx, "13", "", nil, false, nil)

	s.ErrorIs(err, ErrNotAuthenticated)
	s.Empty(s.api.addCalls)
}

func (s *CollectionManagerSuite) TestAddRefreshesListAndProfile() {
	s.authenticate()
	added := item("i1", "13", "CATAN", false, "strategy")
	s.api.addResult = &added
	s.api.lists[false] = []model.CollectionItem{added}
	profileCallsBefore := s.sessionAPI.profileCalls

	result, err := s.manager.Add(s.ctx, "13", "family favourite", []string{"strategy"}, false, nil)

	s.Require().NoError(err)
	s.Equal("CATAN", result.Game.Name)
	s.Equal([]bool{false}, s.api.listCalls)
	s.Equal(profileCallsBefore+1, s.sessionAPI.profileCalls)
}

func (s *CollectionManagerSuite) TestAddWishlistCarriesPriority() {
	s.authenticate()
	priority := 2
	added := item("i1", "266192", "Wingspan", true)
	s.api.addResult = &added

	_, err := s.manager.Add(s.ctx, "266192", "", nil, true, &priority)

	s.Require().NoError(err)
	s.Require().Len(s.api.addCalls, 1)
	req := s.api.addCalls[0]
	s.True(req.IsWishlist)
	s.Require().NotNil(req.WishlistPriority)
	s.Equal(2, *req.WishlistPriority)
}

func (s *CollectionManagerSuite) TestAddDuplicateIsDistinguishable() {
	s.authenticate()
	s.api.addErr = model.ErrDuplicateItem

	_, err := s.manager.Add(s.ctx, "13", "", nil, false, nil)

	s.ErrorIs(err, model.ErrDuplicateItem)
	s.Empty(s.api.listCalls)
}

// Update tests

func (s *CollectionManagerSuite) TestUpdateReplacesNotes() {
	s.authenticate()
	updated := item("i1", "13", "CATAN", false)
	updated.UserNotes = "lost my copy"
	s.api.updateResult = &updated

	notes := "lost my copy"
	result, err := s.manager.Update(s.ctx, "i1", &notes, nil)

	s.Require().NoError(err)
	s.Equal("lost my copy", result.UserNotes)
	s.Equal([]bool{false}, s.api.listCalls)
}

func (s *CollectionManagerSuite) TestUpdateWhenAnonymousIssuesNoRequest() {
	s.Require().NoError(s.session.Initialize(s.ctx))

	_, err := s.manager.Update(s.ctx, "i1", nil, nil)

	s.ErrorIs(err, ErrNotAuthenticated)
}

// Remove tests

func (s *CollectionManagerSuite) TestRemoveRefreshesCachedList() {
	s.authenticate()
	s.api.lists[true] = []model.CollectionItem{item("i1", "266192", "Wingspan", true)}
	_, err := s.manager.List(s.ctx, true)
	s.Require().NoError(err)

	s.api.lists[true] = nil
	s.Require().NoError(s.manager.Remove(s.ctx, "i1"))

	s.Equal([]model.ItemID{"i1"}, s.api.removeCalls)
	s.Equal([]bool{true, true}, s.api.listCalls)
	s.Empty(s.manager.Cached(true))
}

func (s *CollectionManagerSuite) TestRemoveMissingItemSucceeds() {
	s.authenticate()
	s.api.removeErr = model.ErrItemNotFound

	err := s.manager.Remove(s.ctx, "gone")

	s.NoError(err)
}

func (s *CollectionManagerSuite) TestRemoveWhenAnonymousIssuesNoRequest() {
	s.Require().NoError(s.session.Initialize(s.ctx))

	err := s.manager.Remove(s.ctx, "i1")

	s.ErrorIs(err, ErrNotAuthenticated)
	s.Empty(s.api.removeCalls)
}

func (s *CollectionManagerSuite) TestRemoveTransportFailureSurfaced() {
	s.authenticate()
	s.api.removeErr = model.ErrInvalidSession

	err := s.manager.Remove(s.ctx, "i1")

	s.ErrorIs(err, model.ErrInvalidSession)
}

// Transform tests

func rating(v float64) *float64 { return &v }

func TestSortItems(t *testing.T) {
	items := []model.CollectionItem{
		{ID: "i1", Game: model.GameDetail{Name: "Wingspan", YearPublished: "2019", BGGRating: rating(8.0)}},
		{ID: "i2", Game: model.GameDetail{Name: "catan", YearPublished: "1995", BGGRating: rating(7.1)}},
		{ID: "i3", Game: model.GameDetail{Name: "Azul", YearPublished: "2017"}},
	}

	byName := SortItems(items, SortByName)
	if byName[0].Game.Name != "Azul" || byName[1].Game.Name != "catan" || byName[2].Game.Name != "Wingspan" {
		t.Errorf("unexpected name order: %v, %v, %v", byName[0].Game.Name, byName[1].Game.Name, byName[2].Game.Name)
	}

	byRating := SortItems(items, SortByRating)
	if byRating[0].Game.Name != "Wingspan" || byRating[2].Game.Name != "Azul" {
		t.Errorf("unexpected rating order: %v first, %v last", byRating[0].Game.Name, byRating[2].Game.Name)
	}

	byYear := SortItems(items, SortByYear)
	if byYear[0].Game.Name != "catan" {
		t.Errorf("unexpected year order: %v first", byYear[0].Game.Name)
	}

	// Unknown keys preserve insertion order, and the input is never mutated
	original := SortItems(items, SortKey("unknown"))
	if original[0].ID != "i1" || items[0].ID != "i1" {
		t.Errorf("expected insertion order preserved")
	}
}

func TestFilterByTag(t *testing.T) {
	items := []model.CollectionItem{
		{ID: "i1", Game: model.GameDetail{Name: "CATAN"}, CustomTags: []string{"Strategy", "trading"}},
		{ID: "i2", Game: model.GameDetail{Name: "Azul"}, CustomTags: []string{"abstract"}},
		{ID: "i3", Game: model.GameDetail{Name: "Wingspan"}, CustomTags: []string{"engine-building", "strategy"}},
	}

	matched := FilterByTag(items, "STRAT")
	if len(matched) != 2 || matched[0].ID != "i1" || matched[1].ID != "i3" {
		t.Errorf("expected i1 and i3, got %d items", len(matched))
	}

	if got := FilterByTag(items, "zzz"); len(got) != 0 {
		t.Errorf("expected no matches, got %d", len(got))
	}
}

func TestFilterByName(t *testing.T) {
	items := []model.CollectionItem{
		{ID: "i1", Game: model.GameDetail{Name: "CATAN"}},
		{ID: "i2", Game: model.GameDetail{Name: "Catan: Cities & Knights"}},
		{ID: "i3", Game: model.GameDetail{Name: "Azul"}},
	}

	matched := FilterByName(items, "catan")
	if len(matched) != 2 {
		t.Errorf("expected 2 matches, got %d", len(matched))
	}
}
