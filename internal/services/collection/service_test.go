package collection

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/JMaramara/boardgame/internal/dependencies/mocks"
	"github.com/JMaramara/boardgame/internal/model"
	"github.com/JMaramara/boardgame/internal/storage/memory"
)

// stubResolver serves canned game details keyed by bgg id
type stubResolver struct {
	games map[string]*model.GameDetail
}

func (r *stubResolver) GameDetail(ctx context.Context, bggID string) (*model.GameDetail, error) {
	detail, ok := r.games[bggID]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return detail, nil
}

type ServiceSuite struct {
	suite.Suite
	storage  *memory.Storage
	resolver *stubResolver
	clock    *mocks.MockClock
	service  *Service
	ctx      context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.resolver = &stubResolver{games: map[string]*model.GameDetail{
		"13":   {BGGID: "13", Name: "CATAN", YearPublished: "1995"},
		"9209": {BGGID: "9209", Name: "Ticket to Ride", YearPublished: "2004"},
	}}
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.resolver, s.clock)
	s.ctx = context.Background()
}

// Add tests

func (s *ServiceSuite) TestAddFetchesGameAndStoresItem() {
	item, err := s.service.Add(s.ctx, "user-1", "13", "family favourite", []string{"strategy"}, false, nil)
	s.Require().NoError(err)

	s.NotEmpty(item.ID)
	s.Equal("CATAN", item.Game.Name)
	s.Equal("family favourite", item.UserNotes)
	s.Equal([]string{"strategy"}, item.CustomTags)
	s.False(item.IsWishlist)
	s.Equal(s.clock.Now(), item.DateAdded)

	stored, err := s.storage.GetCollectionItem(s.ctx, item.ID)
	s.Require().NoError(err)
	s.Equal(item.ID, stored.ID)
}

func (s *ServiceSuite) TestAddUnknownGame() {
	_, err := s.service.Add(s.ctx, "user-1", "404404", "", nil, false, nil)
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *ServiceSuite) TestAddDuplicateRejected() {
	_, err := s.service.Add(s.ctx, "user-1", "13", "", nil, false, nil)
	s.Require().NoError(err)

	_, err = s.service.Add(s.ctx, "user-1", "13", "again", nil, false, nil)
	s.ErrorIs(err, model.ErrDuplicateItem)

	items, err := s.service.List(s.ctx, "user-1", false)
	s.Require().NoError(err)
	s.Len(items, 1)
}

func (s *ServiceSuite) TestAddSameGameToBothLists() {
	_, err := s.service.Add(s.ctx, "user-1", "13", "", nil, false, nil)
	s.Require().NoError(err)

	// The uniqueness pair is (game, list flag), so the wishlist copy is fine
	_, err = s.service.Add(s.ctx, "user-1", "13", "", nil, true, nil)
	s.Require().NoError(err)
}

func (s *ServiceSuite) TestAddNormalizesTags() {
	item, err := s.service.Add(s.ctx, "user-1", "13", "", []string{" strategy ", "family", "strategy", ""}, false, nil)
	s.Require().NoError(err)
	s.Equal([]string{"strategy", "family"}, item.CustomTags)
}

func (s *ServiceSuite) TestAddWishlistPriority() {
	priority := 2
	item, err := s.service.Add(s.ctx, "user-1", "13", "", nil, true, &priority)
	s.Require().NoError(err)
	s.Require().NotNil(item.WishlistPriority)
	s.Equal(2, *item.WishlistPriority)
}

// List tests

func (s *ServiceSuite) TestListInsertionOrder() {
	first, _ := s.service.Add(s.ctx, "user-1", "13", "", nil, false, nil)
	second, _ := s.service.Add(s.ctx, "user-1", "9209", "", nil, false, nil)

	items, err := s.service.List(s.ctx, "user-1", false)
	s.Require().NoError(err)
	s.Require().Len(items, 2)
	s.Equal(first.ID, items[0].ID)
	s.Equal(second.ID, items[1].ID)
}

// Remove tests

func (s *ServiceSuite) TestRemoveDeletesItem() {
	item, _ := s.service.Add(s.ctx, "user-1", "13", "", nil, false, nil)

	s.Require().NoError(s.service.Remove(s.ctx, "user-1", item.ID))

	items, err := s.service.List(s.ctx, "user-1", false)
	s.Require().NoError(err)
	s.Empty(items)
}

func (s *ServiceSuite) TestRemoveUnknownItem() {
	err := s.service.Remove(s.ctx, "user-1", "missing")
	s.ErrorIs(err, model.ErrItemNotFound)
}

func (s *ServiceSuite) TestRemoveOtherUsersItem() {
	item, _ := s.service.Add(s.ctx, "user-1", "13", "", nil, false, nil)

	err := s.service.Remove(s.ctx, "user-2", item.ID)
	s.ErrorIs(err, model.ErrItemNotFound)

	// user-1's item is untouched
	items, _ := s.service.List(s.ctx, "user-1", false)
	s.Len(items, 1)
}

// Update tests

func (s *ServiceSuite) TestUpdateNotesOnly() {
	item, _ := s.service.Add(s.ctx, "user-1", "13", "old", []string{"strategy"}, false, nil)

	notes := "new notes"
	updated, err := s.service.Update(s.ctx, "user-1", item.ID, &notes, nil)
	s.Require().NoError(err)
	s.Equal("new notes", updated.UserNotes)
	s.Equal([]string{"strategy"}, updated.CustomTags)
}

func (s *ServiceSuite) TestUpdateTagsOnly() {
	item, _ := s.service.Add(s.ctx, "user-1", "13", "notes", []string{"strategy"}, false, nil)

	updated, err := s.service.Update(s.ctx, "user-1", item.ID, nil, []string{"euro", "euro", "classic"})
	s.Require().NoError(err)
	s.Equal("notes", updated.UserNotes)
	s.Equal([]string{"euro", "classic"}, updated.CustomTags)
}

func (s *ServiceSuite) TestUpdateOtherUsersItem() {
	item, _ := s.service.Add(s.ctx, "user-1", "13", "", nil, false, nil)

	notes := "sneaky"
	_, err := s.service.Update(s.ctx, "user-2", item.ID, &notes, nil)
	s.ErrorIs(err, model.ErrItemNotFound)
}
