package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/TobiSchelling/climatenews/internal/favorites"
	"github.com/TobiSchelling/climatenews/internal/history"
)

// --- history ---

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List and manage analysed articles",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List analysed articles, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp()
		if err != nil {
			return err
		}
		defer app.Close()

		items := app.history.List()
		if len(items) == 0 {
			fmt.Println("No analyses yet.")
			return nil
		}
		printItems(items, app.favorites)
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a stored analysis",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp()
		if err != nil {
			return err
		}
		defer app.Close()

		item, ok := app.history.Get(args[0])
		if !ok {
			if item, ok = findFavorite(app.favorites, args[0]); !ok {
				return fmt.Errorf("no analysis with id %s", args[0])
			}
		}
		printItem(cmd.OutOrStdout(), item)
		return nil
	},
}

var historyRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove an analysis from history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.workspace.DeleteHistory(args[0]); err != nil {
			return err
		}
		fmt.Println("Removed", args[0])
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all analyses from history",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp()
		if err != nil {
			return err
		}
		defer app.Close()

		n := app.history.Len()
		if err := app.workspace.ClearHistory(); err != nil {
			return err
		}
		fmt.Printf("Cleared %d analyses. Favorites are kept.\n", n)
		return nil
	},
}

func init() {
	historyCmd.AddCommand(historyListCmd, historyShowCmd, historyRemoveCmd, historyClearCmd)
}

func printItems(items []history.Item, favs *favorites.Store) {
	for _, item := range items {
		star := " "
		if favs.IsFavorite(item.ID) {
			star = "*"
		}
		fmt.Printf("%s %s  %-63s %s\n", star, item.ID, item.Title, humanize.Time(item.Time()))
	}
}

func findFavorite(favs *favorites.Store, id string) (history.Item, bool) {
	for _, item := range favs.List() {
		if item.ID == id {
			return item, true
		}
	}
	return history.Item{}, false
}

// --- favorites ---

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "List and manage starred analyses",
}

var favoritesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List starred analyses",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp()
		if err != nil {
			return err
		}
		defer app.Close()

		items := app.favorites.List()
		if len(items) == 0 {
			fmt.Println("No favorites yet.")
			return nil
		}
		printItems(items, app.favorites)
		return nil
	},
}

var favoritesAddCmd = &cobra.Command{
	Use:   "add <id>",
	Short: "Star an analysis from history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp()
		if err != nil {
			return err
		}
		defer app.Close()

		item, ok := app.history.Get(args[0])
		if !ok {
			return fmt.Errorf("no analysis with id %s in history", args[0])
		}
		if err := app.favorites.Add(item); err != nil {
			return err
		}
		fmt.Println("Starred", item.Title)
		return nil
	},
}

var favoritesRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Unstar an analysis",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.favorites.Remove(args[0]); err != nil {
			return err
		}
		fmt.Println("Unstarred", args[0])
		return nil
	},
}

func init() {
	favoritesCmd.AddCommand(favoritesListCmd, favoritesAddCmd, favoritesRemoveCmd)
}

// --- favorite tags ---

var tagType string

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List and manage favorite tags",
}

var tagsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List favorite tags by type",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if len(app.favorites.Tags()) == 0 {
			fmt.Println("No favorite tags yet.")
			return nil
		}
		for _, typ := range favorites.TagTypes {
			tags := app.favorites.TagsOfType(typ)
			if len(tags) == 0 {
				continue
			}
			labels := make([]string, len(tags))
			for i, t := range tags {
				labels[i] = t.Label
			}
			fmt.Printf("%s: %s\n", typ, strings.Join(labels, ", "))
		}
		return nil
	},
}

var tagsAddCmd = &cobra.Command{
	Use:   "add <label>",
	Short: "Add a favorite tag",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		typ, err := favorites.ParseTagType(tagType)
		if err != nil {
			return err
		}

		app, err := openApp()
		if err != nil {
			return err
		}
		defer app.Close()

		label := strings.Join(args, " ")
		if err := app.favorites.AddTag(favorites.Tag{Label: label, Type: typ}); err != nil {
			return err
		}
		fmt.Printf("Added %s tag %q\n", typ, label)
		return nil
	},
}

var tagsRemoveCmd = &cobra.Command{
	Use:   "remove <label>",
	Short: "Remove a favorite tag",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		typ, err := favorites.ParseTagType(tagType)
		if err != nil {
			return err
		}

		app, err := openApp()
		if err != nil {
			return err
		}
		defer app.Close()

		label := strings.Join(args, " ")
		if err := app.favorites.RemoveTag(label, typ); err != nil {
			return err
		}
		fmt.Printf("Removed %s tag %q\n", typ, label)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{tagsAddCmd, tagsRemoveCmd} {
		c.Flags().StringVarP(&tagType, "type", "t", string(favorites.TagCategory), "Tag type: concern, category or geographic")
	}
	tagsCmd.AddCommand(tagsListCmd, tagsAddCmd, tagsRemoveCmd)
}
