package seed

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/fortuna/propscope/internal/metrics"
	"github.com/fortuna/propscope/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratorLines(t *testing.T) {
	date := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	lines := NewGenerator(rand.New(rand.NewSource(42))).Lines([]int{2544, 201939, 203999}, date)
	require.Len(t, lines, 12)

	for i := 0; i < len(lines); i += 4 {
		player := lines[i : i+4]
		byMarket := map[string]float64{}
		for j, l := range player {
			assert.Equal(t, string(metrics.AllMarkets()[j]), l.Market)
			assert.Equal(t, store.DefaultBook, l.Book)
			assert.Equal(t, date, l.LineDate)
			assert.Equal(t, player[0].PlayerID, l.PlayerID)
			assert.Zero(t, math.Mod(l.LineValue*2, 1), "line %v is not on a half point", l.LineValue)
			byMarket[l.Market] = l.LineValue
		}

		assert.GreaterOrEqual(t, byMarket["points"], 15.0)
		assert.LessOrEqual(t, byMarket["points"], 25.0)
		assert.GreaterOrEqual(t, byMarket["rebounds"], 4.0)
		assert.LessOrEqual(t, byMarket["rebounds"], 10.0)
		assert.GreaterOrEqual(t, byMarket["assists"], 3.0)
		assert.LessOrEqual(t, byMarket["assists"], 8.0)
		assert.Equal(t, byMarket["points"]+byMarket["rebounds"]+byMarket["assists"], byMarket["points_rebounds_assists"])
	}
}

func TestGeneratorDeterministic(t *testing.T) {
	date := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	a := NewGenerator(rand.New(rand.NewSource(7))).Lines([]int{1, 2}, date)
	b := NewGenerator(rand.New(rand.NewSource(7))).Lines([]int{1, 2}, date)
	assert.Equal(t, a, b)

	assert.Empty(t, NewGenerator(rand.New(rand.NewSource(7))).Lines(nil, date))
}
