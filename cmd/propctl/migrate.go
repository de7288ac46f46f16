package main

import (
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply (or with --down, revert) the database schema",
	RunE: func(cmd *cobra.Command, _ []string) error {
		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer db.Close()

		if down, _ := cmd.Flags().GetBool("down"); down {
			return db.RollbackMigrations()
		}
		if err := db.RunMigrations(); err != nil {
			return err
		}
		if seed, _ := cmd.Flags().GetBool("seed"); seed {
			return db.SeedData()
		}
		return nil
	},
}

func init() {
	migrateCmd.Flags().Bool("down", false, "Revert every migration")
	migrateCmd.Flags().Bool("seed", false, "Load teams and the demo roster after migrating")
	rootCmd.AddCommand(migrateCmd)
}
