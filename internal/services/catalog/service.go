package catalog

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/JMaramara/boardgame/internal/model"
)

// Config holds settings for the BoardGameGeek XML API client
type Config struct {
	// BaseURL is the root of the BGG XML API 2
	BaseURL string
	// Timeout bounds each upstream request
	Timeout time.Duration
	// SearchLimit caps the number of search results returned
	SearchLimit int
}

// DefaultConfig returns sensible defaults for the catalog client
func DefaultConfig() Config {
	return Config{
		BaseURL:     "https://boardgamegeek.com/xmlapi2",
		Timeout:     30 * time.Second,
		SearchLimit: 10,
	}
}

// Service queries the external BoardGameGeek catalog
type Service struct {
	cfg        Config
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates a new catalog Service
func New(cfg Config, logger *slog.Logger) *Service {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultConfig().BaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	if cfg.SearchLimit == 0 {
		cfg.SearchLimit = DefaultConfig().SearchLimit
	}
	return &Service{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

// XML shapes for the BGG API responses

type xmlValue struct {
	Value string `xml:"value,attr"`
}

type xmlName struct {
	Type  string `xml:"type,attr"`
	Value string `xml:"value,attr"`
}

type searchResponse struct {
	XMLName xml.Name     `xml:"items"`
	Items   []searchItem `xml:"item"`
}

type searchItem struct {
	ID            string    `xml:"id,attr"`
	Names         []xmlName `xml:"name"`
	YearPublished xmlValue  `xml:"yearpublished"`
}

type thingResponse struct {
	XMLName xml.Name    `xml:"items"`
	Items   []thingItem `xml:"item"`
}

type thingItem struct {
	ID            string    `xml:"id,attr"`
	Thumbnail     string    `xml:"thumbnail"`
	Image         string    `xml:"image"`
	Names         []xmlName `xml:"name"`
	Description   string    `xml:"description"`
	YearPublished xmlValue  `xml:"yearpublished"`
	MinPlayers    xmlValue  `xml:"minplayers"`
	MaxPlayers    xmlValue  `xml:"maxplayers"`
	MinPlaytime   xmlValue  `xml:"minplaytime"`
	MaxPlaytime   xmlValue  `xml:"maxplaytime"`
	MinAge        xmlValue  `xml:"minage"`
	Links         []xmlName `xml:"link"`
	Statistics    struct {
		Ratings struct {
			UsersRated xmlValue `xml:"usersrated"`
			Average    xmlValue `xml:"average"`
		} `xml:"ratings"`
	} `xml:"statistics"`
}

// Search queries BGG for board games matching the query text.
// Upstream result order is preserved, capped at SearchLimit.
func (s *Service) Search(ctx context.Context, query string) ([]model.CatalogEntry, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("type", "boardgame")

	var resp searchResponse
	if err := s.get(ctx, "/search", params, &resp); err != nil {
		return nil, err
	}

	entries := make([]model.CatalogEntry, 0, len(resp.Items))
	for _, item := range resp.Items {
		if len(entries) >= s.cfg.SearchLimit {
			break
		}
		entries = append(entries, model.CatalogEntry{
			BGGID:         item.ID,
			Name:          primaryName(item.Names),
			YearPublished: item.YearPublished.Value,
		})
	}
	return entries, nil
}

// GameDetail fetches the full record for one catalog entry.
// The description is passed through exactly as the catalog returns it.
func (s *Service) GameDetail(ctx context.Context, bggID string) (*model.GameDetail, error) {
	params := url.Values{}
	params.Set("id", bggID)
	params.Set("stats", "1")

	var resp thingResponse
	if err := s.get(ctx, "/thing", params, &resp); err != nil {
		return nil, err
	}

	if len(resp.Items) == 0 {
		return nil, model.ErrGameNotFound
	}
	item := resp.Items[0]

	detail := &model.GameDetail{
		BGGID:         bggID,
		Name:          primaryName(item.Names),
		YearPublished: item.YearPublished.Value,
		Description:   item.Description,
		ImageURL:      item.Image,
		ThumbnailURL:  item.Thumbnail,
		MinPlayers:    atoi(item.MinPlayers.Value),
		MaxPlayers:    atoi(item.MaxPlayers.Value),
		MinPlaytime:   atoi(item.MinPlaytime.Value),
		MaxPlaytime:   atoi(item.MaxPlaytime.Value),
		MinAge:        atoi(item.MinAge.Value),
		Categories:    linkValues(item.Links, "boardgamecategory"),
		Mechanics:     linkValues(item.Links, "boardgamemechanic"),
		Publishers:    linkValues(item.Links, "boardgamepublisher"),
		Designers:     linkValues(item.Links, "boardgamedesigner"),
	}

	if rating, err := strconv.ParseFloat(item.Statistics.Ratings.Average.Value, 64); err == nil {
		detail.BGGRating = &rating
	}
	if count, err := strconv.Atoi(item.Statistics.Ratings.UsersRated.Value); err == nil {
		detail.BGGRatingCount = &count
	}

	return detail, nil
}

// get performs an upstream request and decodes the XML body.
// Any transport or upstream failure maps to ErrCatalogUnavailable.
func (s *Service) get(ctx context.Context, path string, params url.Values, result any) error {
	reqURL := s.cfg.BaseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Warn("catalog request failed",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("%w: %s", model.ErrCatalogUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		s.logger.Warn("catalog returned error status",
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
		)
		return fmt.Errorf("%w: HTTP %d", model.ErrCatalogUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %s", model.ErrCatalogUnavailable, err)
	}

	if err := xml.Unmarshal(body, result); err != nil {
		return fmt.Errorf("%w: failed to parse response: %s", model.ErrCatalogUnavailable, err)
	}
	return nil
}

// primaryName picks the primary alternate name, falling back to the first
func primaryName(names []xmlName) string {
	for _, n := range names {
		if n.Type == "primary" {
			return n.Value
		}
	}
	if len(names) > 0 {
		return names[0].Value
	}
	return ""
}

// linkValues collects the values of links of one type, in document order
func linkValues(links []xmlName, linkType string) []string {
	values := []string{}
	for _, l := range links {
		if l.Type == linkType {
			values = append(values, l.Value)
		}
	}
	return values
}

// atoi parses an int attribute, treating missing or malformed values as zero
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
