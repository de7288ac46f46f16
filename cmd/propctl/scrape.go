package main

import (
	"errors"
	"fmt"

	"github.com/fortuna/propscope/internal/ingest/board"
	"github.com/fortuna/propscope/internal/store/repository"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape the props board once and publish its lines",
	RunE: func(cmd *cobra.Command, _ []string) error {
		date, err := parseDateFlag(cmd)
		if err != nil {
			return err
		}

		url := viper.GetString("board-url")
		if url == "" {
			return errors.New("no board url; set --url or PROPSCOPE_BOARD_URL")
		}

		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer db.Close()

		client := board.NewClient()
		defer client.Close()

		dryRun, _ := cmd.Flags().GetBool("dry-run")
		if dryRun {
			events, err := board.NewIngester(client, repository.NewPlayerRepository(db), nil, url).FetchLines(rootCtx, date)
			if err != nil {
				return err
			}
			renderEvents(cmd.OutOrStdout(), events)
			return nil
		}

		pub, err := openPublisher()
		if err != nil {
			return err
		}
		defer pub.Close()

		n, err := board.NewIngester(client, repository.NewPlayerRepository(db), pub, url).Ingest(rootCtx, date)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Published %d lines to %s\n", n, viper.GetString("lines-stream"))
		return nil
	},
}

func init() {
	scrapeCmd.Flags().String("date", "", "Line date as YYYY-MM-DD (default today)")
	scrapeCmd.Flags().String("url", "", "Props board URL")
	scrapeCmd.Flags().Bool("dry-run", false, "Print the resolved lines without publishing")
	_ = viper.BindPFlag("board-url", scrapeCmd.Flags().Lookup("url"))
	rootCmd.AddCommand(scrapeCmd)
}
