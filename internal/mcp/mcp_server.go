// Package mcp exposes slate and player detail queries as Model Context Protocol tools.
package mcp

import (
	"context"
	"time"

	"github.com/fortuna/propscope/internal/service"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// SlateProvider builds the slate for a date
type SlateProvider interface {
	GetSlate(ctx context.Context, date time.Time) (*service.Slate, error)
}

// DetailProvider builds one player's profile
type DetailProvider interface {
	GetPlayerDetail(ctx context.Context, playerID int, asOf time.Time, games int) (*service.PlayerDetail, error)
}

// NewMCPServer configures the tool server without starting it.
func NewMCPServer(slates SlateProvider, details DetailProvider) *server.MCPServer {
	s := server.NewMCPServer(
		"propscope",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		slates:  slates,
		details: details,
		now:     time.Now,
	}

	s.AddTool(mcp.NewTool("get_slate",
		mcp.WithDescription("List every player with a game on a date, with each prop line compared against season and recent averages."),
		mcp.WithString("date", mcp.Description("Slate date as YYYY-MM-DD. Defaults to today (UTC).")),
	), h.handleGetSlate)

	s.AddTool(mcp.NewTool("get_player_detail",
		mcp.WithDescription("Get one player's averages, recent game logs and current lines as of a date."),
		mcp.WithNumber("player_id", mcp.Description("Player id."), mcp.Required()),
		mcp.WithString("date", mcp.Description("As-of date as YYYY-MM-DD. Defaults to today (UTC).")),
		mcp.WithNumber("games", mcp.Description("Number of game logs to return (default 10, max 82).")),
	), h.handleGetPlayerDetail)

	return s
}

// StartMCPServer serves the tools over stdio until the client disconnects.
func StartMCPServer(_ context.Context, slates SlateProvider, details DetailProvider) error {
	return server.ServeStdio(NewMCPServer(slates, details))
}
