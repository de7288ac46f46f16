package service_test

import (
	"context"
	"fmt"
	"time"

	"github.com/fortuna/propscope/internal/metrics"
	"github.com/fortuna/propscope/internal/service"
)

// fakeSource is an in-memory DataSource.
type fakeSource struct {
	slate    []service.SlatePlayer
	profiles map[int]service.PlayerProfile
	games    map[int][]metrics.GameStat
	lines    map[int][]metrics.Line
	err      error

	historyCalls []int
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		profiles: map[int]service.PlayerProfile{},
		games:    map[int][]metrics.GameStat{},
		lines:    map[int][]metrics.Line{},
	}
}

func (f *fakeSource) ListSlatePlayers(_ context.Context, _ time.Time) ([]service.SlatePlayer, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.slate, nil
}

func (f *fakeSource) GetPlayer(_ context.Context, id int) (service.PlayerProfile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return service.PlayerProfile{}, fmt.Errorf("%w: %d", service.ErrPlayerNotFound, id)
	}
	return p, nil
}

func (f *fakeSource) GetGameStats(_ context.Context, id int, _ time.Time) ([]metrics.GameStat, error) {
	f.historyCalls = append(f.historyCalls, id)
	return f.games[id], nil
}

func (f *fakeSource) GetLines(_ context.Context, ids []int, date time.Time) (map[int][]metrics.Line, error) {
	out := map[int][]metrics.Line{}
	for _, id := range ids {
		for _, l := range f.lines[id] {
			if metrics.Day(l.Date).Equal(metrics.Day(date)) {
				out[id] = append(out[id], l)
			}
		}
	}
	return out, nil
}

func (f *fakeSource) addPlayer(id int, name, team, opponent string) {
	ident := service.PlayerIdentity{PlayerID: id, Name: name, Team: team, Position: "F"}
	f.profiles[id] = service.PlayerProfile{PlayerIdentity: ident}
	f.slate = append(f.slate, service.SlatePlayer{PlayerIdentity: ident, Opponent: opponent})
}

func ptr(v float64) *float64 { return &v }

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// boxScores builds consecutive-day games ending on end, most recent first.
func boxScores(end string, rows ...[3]float64) []metrics.GameStat {
	last := day(end)
	games := make([]metrics.GameStat, len(rows))
	for i, r := range rows {
		games[i] = metrics.GameStat{
			Date:     last.AddDate(0, 0, -i),
			Opponent: "OPP",
			Minutes:  ptr(34),
			Points:   ptr(r[0]),
			Rebounds: ptr(r[1]),
			Assists:  ptr(r[2]),
		}
	}
	return games
}
