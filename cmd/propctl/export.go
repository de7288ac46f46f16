package main

import (
	"fmt"

	"github.com/fortuna/propscope/internal/export"
	"github.com/fortuna/propscope/internal/service"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a date's slate comparisons to a Parquet file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		date, err := parseDateFlag(cmd)
		if err != nil {
			return err
		}
		out, _ := cmd.Flags().GetString("out")

		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer db.Close()

		slate, err := service.NewSlateAssembler(service.NewStoreSource(db)).GetSlate(rootCtx, date)
		if err != nil {
			return err
		}

		n, err := export.WriteSlateFile(slate, out)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d rows to %s\n", n, out)
		return nil
	},
}

func init() {
	exportCmd.Flags().String("date", "", "Slate date as YYYY-MM-DD (default today)")
	exportCmd.Flags().String("out", "", "Output Parquet file")
	_ = exportCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(exportCmd)
}
