package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/fatih/color"
	"github.com/fortuna/propscope/internal/metrics"
	"github.com/fortuna/propscope/internal/publisher"
	"github.com/fortuna/propscope/internal/service"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

const dash = "-"

var (
	overColor  = color.New(color.FgGreen)
	underColor = color.New(color.FgRed)
	headColor  = color.New(color.Bold)
)

func fmtFloat(v *float64) string {
	if v == nil {
		return dash
	}
	return strconv.FormatFloat(*v, 'f', 1, 64)
}

// fmtDelta colors a line-minus-average delta: positive means the line sits above the average.
func fmtDelta(v *float64) string {
	switch {
	case v == nil:
		return dash
	case *v > 0:
		return overColor.Sprintf("+%.1f ▲", *v)
	case *v < 0:
		return underColor.Sprintf("%.1f ▼", *v)
	default:
		return "0.0"
	}
}

func fmtPct(v *float64) string {
	if v == nil {
		return dash
	}
	return fmt.Sprintf("%+.1f%%", *v)
}

func newTable(w io.Writer, headers []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	return table
}

func comparisonRow(m service.MarketComparison) []string {
	return []string{
		string(m.Market),
		strconv.FormatFloat(m.LineValue, 'f', 1, 64),
		m.Book,
		fmtFloat(m.SeasonAvg),
		fmtFloat(m.Last5Avg),
		fmtFloat(m.Last10Avg),
		fmtDelta(m.DeltaVsSeason),
		fmtDelta(m.DeltaVsLast5),
		fmtPct(m.PctVsLast5),
	}
}

var comparisonHeaders = []string{"Market", "Line", "Book", "Season", "L5", "L10", "Δ Season", "Δ L5", "% L5"}

func renderSlate(w io.Writer, slate *service.Slate) {
	headColor.Fprintf(w, "Slate for %s: %d players\n", slate.Date, len(slate.Players))
	if len(slate.Players) == 0 {
		return
	}

	table := newTable(w, append([]string{"Player", "Team", "Opp"}, comparisonHeaders...))
	var data [][]string
	for _, p := range slate.Players {
		prefix := []string{p.Name, p.Team, p.Opponent}
		if len(p.Markets) == 0 {
			data = append(data, append(prefix, "no lines", dash, dash, dash, dash, dash, dash, dash, dash))
			continue
		}
		for _, m := range p.Markets {
			data = append(data, append(append([]string{}, prefix...), comparisonRow(m)...))
		}
	}
	_ = table.Bulk(data)
	_ = table.Render()
}

func renderDetail(w io.Writer, d *service.PlayerDetail) {
	p := d.Player
	headColor.Fprintf(w, "%s (%s, %s) as of %s\n", p.Name, p.Team, p.Position, d.AsOf)
	fmt.Fprintln(w, p.ImageURL)

	avg := newTable(w, []string{"Market", "Season", "L5", "L10"})
	var avgRows [][]string
	for _, m := range metrics.AllMarkets() {
		key := string(m)
		avgRows = append(avgRows, []string{
			key,
			fmtFloat(d.SeasonAverages[key]),
			fmtFloat(d.RollingAverages["last5_"+key]),
			fmtFloat(d.RollingAverages["last10_"+key]),
		})
	}
	_ = avg.Bulk(avgRows)
	_ = avg.Render()

	if len(d.CurrentLines) > 0 {
		lines := newTable(w, comparisonHeaders)
		var rows [][]string
		for _, m := range d.CurrentLines {
			rows = append(rows, comparisonRow(m))
		}
		_ = lines.Bulk(rows)
		_ = lines.Render()
	}

	logs := newTable(w, []string{"Date", "Opp", "Min", "Pts", "Reb", "Ast", "PRA"})
	var rows [][]string
	for _, g := range d.GameLogs {
		rows = append(rows, []string{
			g.Date, g.Opponent,
			fmtFloat(g.Minutes), fmtFloat(g.Points), fmtFloat(g.Rebounds), fmtFloat(g.Assists),
			fmtFloat(g.PointsReboundsAssists),
		})
	}
	_ = logs.Bulk(rows)
	_ = logs.Render()
}

func renderEvents(w io.Writer, events []publisher.LineEvent) {
	sorted := append([]publisher.LineEvent(nil), events...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].PlayerID < sorted[j].PlayerID })

	table := newTable(w, []string{"Player", "Market", "Line", "Book", "Date"})
	var rows [][]string
	for _, e := range sorted {
		rows = append(rows, []string{
			strconv.Itoa(e.PlayerID), e.Market, strconv.FormatFloat(e.LineValue, 'f', 1, 64), e.Book, e.Date,
		})
	}
	_ = table.Bulk(rows)
	_ = table.Render()
}
