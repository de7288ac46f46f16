package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/fortuna/propscope/internal/publisher"
	"github.com/fortuna/propscope/internal/seed"
	"github.com/fortuna/propscope/internal/store/repository"
	"github.com/spf13/cobra"
)

var seedLinesCmd = &cobra.Command{
	Use:   "seed-lines",
	Short: "Generate mock lines for every player on a date's slate",
	Long: `seed-lines generates one line per market for every scheduled player.
By default the lines are written straight to the database; with --publish they
go through the line feed so connected clients are notified.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		date, err := parseDateFlag(cmd)
		if err != nil {
			return err
		}

		seedValue, _ := cmd.Flags().GetInt64("seed")
		if seedValue == 0 {
			seedValue = time.Now().UnixNano()
		}

		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer db.Close()

		scheduled, err := repository.NewGameRepository(db).ListScheduledPlayers(rootCtx, date)
		if err != nil {
			return err
		}
		ids := make([]int, 0, len(scheduled))
		for _, p := range scheduled {
			ids = append(ids, p.PlayerID)
		}

		lines := seed.NewGenerator(rand.New(rand.NewSource(seedValue))).Lines(ids, date)

		if publish, _ := cmd.Flags().GetBool("publish"); publish {
			pub, err := openPublisher()
			if err != nil {
				return err
			}
			defer pub.Close()

			events := make([]publisher.LineEvent, len(lines))
			for i, l := range lines {
				events[i] = publisher.NewLineEvent(l)
			}
			if err := pub.PublishLines(rootCtx, events); err != nil {
				return err
			}
		} else {
			repo := repository.NewLineRepository(db)
			for i := range lines {
				if err := repo.Upsert(rootCtx, &lines[i]); err != nil {
					return err
				}
			}
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d lines for %d players on %s\n", len(lines), len(ids), date.Format("2006-01-02"))
		return nil
	},
}

func init() {
	seedLinesCmd.Flags().String("date", "", "Slate date as YYYY-MM-DD (default today)")
	seedLinesCmd.Flags().Bool("publish", false, "Publish to the Redis line feed instead of writing to the database")
	seedLinesCmd.Flags().Int64("seed", 0, "Random seed for reproducible lines (default time based)")
	rootCmd.AddCommand(seedLinesCmd)
}
