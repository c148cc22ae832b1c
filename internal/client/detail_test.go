package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JMaramara/boardgame/internal/model"
)

// stubDetailAPI serves canned game details and counts requests
type stubDetailAPI struct {
	games map[string]*model.GameDetail
	calls int
}

func (a *stubDetailAPI) GameDetail(ctx context.Context, bggID string) (*model.GameDetail, error) {
	a.calls++
	detail, ok := a.games[bggID]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return detail, nil
}

func TestFetchDetailReturnsFullRecord(t *testing.T) {
	r := 7.1
	api := &stubDetailAPI{games: map[string]*model.GameDetail{
		"13": {
			BGGID:       "13",
			Name:        "CATAN",
			Description: "Players try to be the dominant force on the island of Catan&#10;",
			BGGRating:   &r,
			Categories:  []string{"Economic", "Negotiation"},
		},
	}}
	resolver := NewDetailResolver(api)

	detail, err := resolver.FetchDetail(context.Background(), "13")
	require.NoError(t, err)

	assert.Equal(t, "CATAN", detail.Name)
	// The description is passed through untouched, markup and all
	assert.Equal(t, "Players try to be the dominant force on the island of Catan&#10;", detail.Description)
	assert.Equal(t, []string{"Economic", "Negotiation"}, detail.Categories)
}

func TestFetchDetailUnknownEntry(t *testing.T) {
	api := &stubDetailAPI{games: map[string]*model.GameDetail{}}
	resolver := NewDetailResolver(api)

	_, err := resolver.FetchDetail(context.Background(), "999999")
	assert.ErrorIs(t, err, model.ErrGameNotFound)
}

func TestFetchDetailAlwaysRefetches(t *testing.T) {
	api := &stubDetailAPI{games: map[string]*model.GameDetail{
		"13": {BGGID: "13", Name: "CATAN"},
	}}
	resolver := NewDetailResolver(api)

	_, err := resolver.FetchDetail(context.Background(), "13")
	require.NoError(t, err)
	_, err = resolver.FetchDetail(context.Background(), "13")
	require.NoError(t, err)

	assert.Equal(t, 2, api.calls)
}
