package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fortuna/propscope/internal/service"
	"github.com/mark3labs/mcp-go/mcp"
)

type toolHandler struct {
	slates  SlateProvider
	details DetailProvider
	now     func() time.Time
}

func (h *toolHandler) handleGetSlate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := h.parseDate(request.GetString("date", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	slate, err := h.slates.GetSlate(ctx, date)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to build slate: %v", err)), nil
	}

	return jsonResult(slate)
}

func (h *toolHandler) handleGetPlayerDetail(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	playerID := request.GetInt("player_id", 0)
	if playerID <= 0 {
		return mcp.NewToolResultError("player_id must be a positive integer"), nil
	}

	date, err := h.parseDate(request.GetString("date", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	detail, err := h.details.GetPlayerDetail(ctx, playerID, date, request.GetInt("games", 0))
	if errors.Is(err, service.ErrPlayerNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("player %d not found", playerID)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to build player detail: %v", err)), nil
	}

	return jsonResult(detail)
}

func (h *toolHandler) parseDate(s string) (time.Time, error) {
	if s == "" {
		return h.now().UTC(), nil
	}
	d, err := time.Parse(service.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return d, nil
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding result: %w", err)
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
