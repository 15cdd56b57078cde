package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/TobiSchelling/climatenews/internal/collect"
)

var (
	newsTag   string
	newsQuery string
	newsSort  string
)

var newsCmd = &cobra.Command{
	Use:   "news",
	Short: "Fetch and list the latest climate news",
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := collect.ParseSortMode(newsSort)
		if err != nil {
			return err
		}

		app, err := openApp()
		if err != nil {
			return err
		}
		defer app.Close()

		articles, err := app.loader.Refresh(cmd.Context())
		if err != nil {
			return fmt.Errorf("refreshing news: %w", err)
		}

		status := app.loader.Status()
		if status.Outcome == collect.StateFallback {
			fmt.Println("No live sources returned articles; showing samples.")
		}

		articles = collect.Filter(articles, newsTag, newsQuery, mode)
		if len(articles) == 0 {
			fmt.Println("No articles match.")
			return nil
		}

		for _, a := range articles {
			fmt.Printf("%s\n", a.Title)
			fmt.Printf("  %s · %s", a.Source, humanize.Time(a.PublishedAt))
			if len(a.Tags) > 0 {
				fmt.Printf(" · %s", strings.Join(a.Tags, ", "))
			}
			fmt.Printf("\n  %s\n\n", a.URL)
		}
		fmt.Printf("%d articles\n", len(articles))
		return nil
	},
}

func init() {
	newsCmd.Flags().StringVarP(&newsTag, "tag", "t", "", "Only show articles with this tag")
	newsCmd.Flags().StringVarP(&newsQuery, "query", "q", "", "Only show articles mentioning this keyword")
	newsCmd.Flags().StringVarP(&newsSort, "sort", "s", "date", "Sort order when searching: date, relevance or source")
}
