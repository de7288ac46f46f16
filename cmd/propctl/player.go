package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/fortuna/propscope/internal/service"
	"github.com/spf13/cobra"
)

var playerCmd = &cobra.Command{
	Use:   "player <id>",
	Short: "Print one player's averages, game log and current lines",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		playerID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid player id %q", args[0])
		}

		date, err := parseDateFlag(cmd)
		if err != nil {
			return err
		}
		games, _ := cmd.Flags().GetInt("games")

		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer db.Close()

		detail, err := newDetailAssembler(service.NewStoreSource(db)).GetPlayerDetail(rootCtx, playerID, date, games)
		if errors.Is(err, service.ErrPlayerNotFound) {
			return fmt.Errorf("no player with id %d", playerID)
		}
		if err != nil {
			return err
		}

		renderDetail(cmd.OutOrStdout(), detail)
		return nil
	},
}

func init() {
	playerCmd.Flags().String("date", "", "As-of date as YYYY-MM-DD (default today)")
	playerCmd.Flags().Int("games", 0, "Number of recent games to list (default game-log-limit, GAME_LOG_LIMIT)")
	rootCmd.AddCommand(playerCmd)
}
