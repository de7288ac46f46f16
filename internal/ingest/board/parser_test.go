package board

import (
	"os"
	"strings"
	"testing"

	"github.com/fortuna/propscope/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBoard(t *testing.T) {
	f, err := os.Open("testdata/board.html")
	require.NoError(t, err)
	defer f.Close()

	lines, err := ParseBoard(f)
	require.NoError(t, err)
	require.Len(t, lines, 4)

	assert.Equal(t, Line{PlayerName: "LeBron James", Team: "LAL", Market: metrics.MarketPoints, Value: 27.5, Book: "PrizePicks"}, lines[0])
	assert.Equal(t, metrics.MarketPointsReboundsAssists, lines[1].Market)
	assert.Equal(t, 42.5, lines[1].Value)
	assert.Equal(t, metrics.MarketAssists, lines[2].Market)
	assert.Empty(t, lines[2].Book)
	assert.Equal(t, "Jaylen Smith", lines[3].PlayerName)
}

func TestParseBoard_NoTable(t *testing.T) {
	lines, err := ParseBoard(strings.NewReader(`<html><body><p>Board closed</p></body></html>`))
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestParseMarketLabel(t *testing.T) {
	tests := []struct {
		label string
		want  metrics.Market
		ok    bool
	}{
		{"Points", metrics.MarketPoints, true},
		{"REB", metrics.MarketRebounds, true},
		{"Pts+Reb+Ast", metrics.MarketPointsReboundsAssists, true},
		{"Points Rebounds Assists", metrics.MarketPointsReboundsAssists, true},
		{"PRA", metrics.MarketPointsReboundsAssists, true},
		{"Fantasy Score", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, ok := parseMarketLabel(tt.label)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
