package main

import (
	"github.com/fortuna/propscope/internal/mcp"
	"github.com/fortuna/propscope/internal/service"
	"github.com/spf13/cobra"
)

// mcpCmd serves the slate and player queries to AI agents over stdio.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the propscope MCP server",
	Long:  `Launch an MCP server over stdio that exposes get_slate and get_player_detail as tools.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		db, err := openDatabase()
		if err != nil {
			return err
		}
		defer db.Close()

		source := service.NewStoreSource(db)
		return mcp.StartMCPServer(rootCtx, service.NewSlateAssembler(source), newDetailAssembler(source))
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
