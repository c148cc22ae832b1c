package cli

import (
	"github.com/spf13/cobra"

	"github.com/JMaramara/boardgame/internal/client"
	"github.com/JMaramara/boardgame/internal/model"
)

func newCollectionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collection",
		Short: "Collection and wishlist commands",
	}

	cmd.AddCommand(newCollectionListCmd())
	cmd.AddCommand(newCollectionAddCmd())
	cmd.AddCommand(newCollectionUpdateCmd())
	cmd.AddCommand(newCollectionRemoveCmd())

	return cmd
}

func newCollectionListCmd() *cobra.Command {
	var wishlist bool
	var sortKey, tag, name string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your collection or wishlist",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := collection.List(cmd.Context(), wishlist)
			if err != nil {
				return err
			}

			if !session.Current().Authenticated() {
				out := NewOutput(cfg.Output)
				out.PrintMessage("Not signed in; sign in to see your collection")
				return nil
			}

			// Sorting and filtering happen locally on the fetched list
			if sortKey != "" {
				items = client.SortItems(items, client.SortKey(sortKey))
			}
			if tag != "" {
				items = client.FilterByTag(items, tag)
			}
			if name != "" {
				items = client.FilterByName(items, name)
			}

			out := NewOutput(cfg.Output)
			out.Print(items)
			return nil
		},
	}

	cmd.Flags().BoolVar(&wishlist, "wishlist", false, "List the wishlist instead of the collection")
	cmd.Flags().StringVar(&sortKey, "sort", "", "Sort by: name, rating, year")
	cmd.Flags().StringVar(&tag, "tag", "", "Only items with a matching tag")
	cmd.Flags().StringVar(&name, "name", "", "Only items with a matching game name")

	return cmd
}

func newCollectionAddCmd() *cobra.Command {
	var notes string
	var tags []string
	var wishlist bool
	var priority int

	cmd := &cobra.Command{
		Use:   "add <bgg-id>",
		Short: "Add a game to your collection or wishlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var priorityPtr *int
			if cmd.Flags().Changed("priority") {
				priorityPtr = &priority
			}

			item, err := collection.Add(cmd.Context(), args[0], notes, tags, wishlist, priorityPtr)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(*item)
			return nil
		},
	}

	cmd.Flags().StringVar(&notes, "notes", "", "Personal notes")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "Custom tags (comma separated)")
	cmd.Flags().BoolVar(&wishlist, "wishlist", false, "Add to the wishlist instead of the collection")
	cmd.Flags().IntVar(&priority, "priority", 0, "Wishlist priority (1 highest)")

	return cmd
}

func newCollectionUpdateCmd() *cobra.Command {
	var notes string
	var tags []string

	cmd := &cobra.Command{
		Use:   "update <item-id>",
		Short: "Update the notes or tags on an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Only flags that were set are sent; the rest stay untouched
			var notesPtr *string
			if cmd.Flags().Changed("notes") {
				notesPtr = &notes
			}
			var tagsVal []string
			if cmd.Flags().Changed("tags") {
				tagsVal = tags
			}

			item, err := collection.Update(cmd.Context(), model.ItemID(args[0]), notesPtr, tagsVal)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(*item)
			return nil
		},
	}

	cmd.Flags().StringVar(&notes, "notes", "", "Personal notes")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "Custom tags (comma separated)")

	return cmd
}

func newCollectionRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <item-id>",
		Short: "Remove an item from your lists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := collection.Remove(cmd.Context(), model.ItemID(args[0])); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Removed")
			return nil
		},
	}
}
