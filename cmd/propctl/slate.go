package main

import (
	"github.com/fortuna/propscope/internal/service"
	"github.com/spf13/cobra"
)

var slateCmd = &cobra.Command{
	Use:   "slate",
	Short: "Print every player with a game on a date, with their lines",
	RunE: func(cmd *cobra.Command, _ []string) error {
		date, err := parseDateFlag(cmd)
		if err != nil {
			return err
		}

		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer db.Close()

		slate, err := service.NewSlateAssembler(service.NewStoreSource(db)).GetSlate(rootCtx, date)
		if err != nil {
			return err
		}

		renderSlate(cmd.OutOrStdout(), slate)
		return nil
	},
}

func init() {
	slateCmd.Flags().String("date", "", "Slate date as YYYY-MM-DD (default today)")
	rootCmd.AddCommand(slateCmd)
}
