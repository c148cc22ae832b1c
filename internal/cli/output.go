package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/JMaramara/boardgame/internal/model"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case *model.Profile:
		o.printProfile(v)
	case []model.CatalogEntry:
		o.printCatalogEntries(v)
	case *model.GameDetail:
		o.printGameDetail(v)
	case []model.CollectionItem:
		o.printCollectionItems(v)
	case model.CollectionItem:
		o.printCollectionItem(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printProfile(p *model.Profile) {
	fmt.Printf("User: %s <%s>\n", p.Username, p.Email)
	fmt.Printf("Collection: %d games\n", p.CollectionCount)
	fmt.Printf("Wishlist: %d games\n", p.WishlistCount)
}

func (o *Output) printCatalogEntries(entries []model.CatalogEntry) {
	for _, e := range entries {
		year := e.YearPublished
		if year == "" {
			year = "?"
		}
		fmt.Printf("%-8s %s (%s)\n", e.BGGID, e.Name, year)
	}
}

func (o *Output) printGameDetail(g *model.GameDetail) {
	fmt.Printf("%s", g.Name)
	if g.YearPublished != "" {
		fmt.Printf(" (%s)", g.YearPublished)
	}
	fmt.Printf("  [BGG %s]\n", g.BGGID)

	if g.MinPlayers > 0 {
		fmt.Printf("Players: %d-%d\n", g.MinPlayers, g.MaxPlayers)
	}
	if g.MinPlaytime > 0 {
		fmt.Printf("Playtime: %d-%d min\n", g.MinPlaytime, g.MaxPlaytime)
	}
	if g.MinAge > 0 {
		fmt.Printf("Age: %d+\n", g.MinAge)
	}
	if g.BGGRating != nil {
		fmt.Printf("Rating: %.1f", *g.BGGRating)
		if g.BGGRatingCount != nil {
			fmt.Printf(" (%d ratings)", *g.BGGRatingCount)
		}
		fmt.Println()
	}
	if len(g.Categories) > 0 {
		fmt.Printf("Categories: %s\n", strings.Join(g.Categories, ", "))
	}
	if len(g.Mechanics) > 0 {
		fmt.Printf("Mechanics: %s\n", strings.Join(g.Mechanics, ", "))
	}
	if len(g.Designers) > 0 {
		fmt.Printf("Designers: %s\n", strings.Join(g.Designers, ", "))
	}
	if len(g.Publishers) > 0 {
		fmt.Printf("Publishers: %s\n", strings.Join(g.Publishers, ", "))
	}
	if g.Description != "" {
		fmt.Printf("\n%s\n", g.Description)
	}
}

func (o *Output) printCollectionItems(items []model.CollectionItem) {
	if len(items) == 0 {
		fmt.Println("No games")
		return
	}
	for _, item := range items {
		o.printCollectionItem(item)
		fmt.Println()
	}
	fmt.Printf("%d games\n", len(items))
}

func (o *Output) printCollectionItem(item model.CollectionItem) {
	fmt.Printf("%s", item.Game.Name)
	if item.Game.YearPublished != "" {
		fmt.Printf(" (%s)", item.Game.YearPublished)
	}
	fmt.Printf("  [%s]\n", item.ID)

	if item.IsWishlist && item.WishlistPriority != nil {
		fmt.Printf("  Priority: %d\n", *item.WishlistPriority)
	}
	if len(item.CustomTags) > 0 {
		fmt.Printf("  Tags: %s\n", strings.Join(item.CustomTags, ", "))
	}
	if item.UserNotes != "" {
		fmt.Printf("  Notes: %s\n", item.UserNotes)
	}
	if !item.DateAdded.IsZero() {
		fmt.Printf("  Added: %s\n", item.DateAdded.Format("2006-01-02"))
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
