package mcp_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	mcp_internal "github.com/fortuna/propscope/internal/mcp"
	"github.com/fortuna/propscope/internal/service"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSlates struct{ gotDate time.Time }

func (s *stubSlates) GetSlate(_ context.Context, date time.Time) (*service.Slate, error) {
	s.gotDate = date
	return &service.Slate{Date: date.Format(service.DateLayout), Players: []service.SlateEntry{}}, nil
}

type stubDetails struct{ gotGames int }

func (s *stubDetails) GetPlayerDetail(_ context.Context, id int, asOf time.Time, games int) (*service.PlayerDetail, error) {
	s.gotGames = games
	switch id {
	case 99999:
		return nil, fmt.Errorf("%w: %d", service.ErrPlayerNotFound, id)
	case 500:
		return nil, errors.New("database unavailable")
	}
	return &service.PlayerDetail{
		Player: service.PlayerProfile{PlayerIdentity: service.PlayerIdentity{PlayerID: id, Name: "LeBron James"}},
		AsOf:   asOf.Format(service.DateLayout),
	}, nil
}

func call(t *testing.T, slates *stubSlates, details *stubDetails, tool string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	s := mcp_internal.NewMCPServer(slates, details)
	st := s.GetTool(tool)
	require.NotNil(t, st, "tool %s should exist", tool)

	res, err := st.Handler(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: tool, Arguments: args},
	})
	require.NoError(t, err, "tool failures are reported in the result, not as errors")
	return res
}

func text(res *mcp.CallToolResult) string {
	return res.Content[0].(mcp.TextContent).Text
}

func TestGetSlateTool(t *testing.T) {
	slates := &stubSlates{}
	res := call(t, slates, &stubDetails{}, "get_slate", map[string]any{"date": "2025-01-10"})
	require.False(t, res.IsError)

	var slate service.Slate
	require.NoError(t, json.Unmarshal([]byte(text(res)), &slate))
	assert.Equal(t, "2025-01-10", slate.Date)

	res = call(t, slates, &stubDetails{}, "get_slate", map[string]any{"date": "10/01/2025"})
	assert.True(t, res.IsError)
	assert.Contains(t, text(res), "invalid date")

	res = call(t, slates, &stubDetails{}, "get_slate", map[string]any{})
	require.False(t, res.IsError)
	assert.WithinDuration(t, time.Now().UTC(), slates.gotDate, time.Minute)
}

func TestGetPlayerDetailTool(t *testing.T) {
	tests := []struct {
		name      string
		args      map[string]any
		wantError string
	}{
		{name: "found", args: map[string]any{"player_id": 2544.0, "date": "2025-01-10", "games": 5.0}},
		{name: "unknown player", args: map[string]any{"player_id": 99999.0}, wantError: "player 99999 not found"},
		{name: "missing id", args: map[string]any{}, wantError: "player_id must be a positive integer"},
		{name: "source failure", args: map[string]any{"player_id": 500.0}, wantError: "database unavailable"},
		{name: "bad date", args: map[string]any{"player_id": 2544.0, "date": "yesterday"}, wantError: "invalid date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			details := &stubDetails{}
			res := call(t, &stubSlates{}, details, "get_player_detail", tt.args)
			if tt.wantError != "" {
				assert.True(t, res.IsError)
				assert.Contains(t, text(res), tt.wantError)
				return
			}

			require.False(t, res.IsError)
			var detail service.PlayerDetail
			require.NoError(t, json.Unmarshal([]byte(text(res)), &detail))
			assert.Equal(t, 2544, detail.Player.PlayerID)
			assert.Equal(t, "2025-01-10", detail.AsOf)
			assert.Equal(t, 5, details.gotGames)
		})
	}
}
