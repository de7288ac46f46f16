package board

import (
	"fmt"
	"io"
	"log"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fortuna/propscope/internal/metrics"
)

// Line is one prop scraped from the board, before the player is resolved
type Line struct {
	PlayerName string
	Team       string
	Market     metrics.Market
	Value      float64
	Book       string
}

// marketLabels maps display labels to markets
var marketLabels = map[string]metrics.Market{
	"pts":           metrics.MarketPoints,
	"rebs":          metrics.MarketRebounds,
	"reb":           metrics.MarketRebounds,
	"asts":          metrics.MarketAssists,
	"ast":           metrics.MarketAssists,
	"pts+rebs+asts": metrics.MarketPointsReboundsAssists,
	"pts+reb+ast":   metrics.MarketPointsReboundsAssists,
}

var numberPattern = regexp.MustCompile(`-?\d+(\.\d+)?`)

// ParseBoard extracts prop lines from a board page. Rows whose market is
// not offered, or whose line is unreadable, are skipped.
func ParseBoard(r io.Reader) ([]Line, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var lines []Line
	skipped := 0

	doc.Find("table.props-board tbody tr").Each(func(i int, row *goquery.Selection) {
		line, ok := parseRow(row)
		if !ok {
			skipped++
			return
		}
		lines = append(lines, line)
	})

	if skipped > 0 {
		log.Printf("  Skipped %d unreadable board rows", skipped)
	}
	return lines, nil
}

func parseRow(row *goquery.Selection) (Line, bool) {
	cell := func(class string) string {
		return strings.TrimSpace(row.Find("td." + class).First().Text())
	}

	name := cell("player")
	if name == "" {
		return Line{}, false
	}

	market, ok := parseMarketLabel(cell("market"))
	if !ok {
		return Line{}, false
	}

	value, ok := parseLineValue(cell("line"))
	if !ok {
		return Line{}, false
	}

	return Line{
		PlayerName: name,
		Team:       strings.ToUpper(cell("team")),
		Market:     market,
		Value:      value,
		Book:       cell("book"),
	}, true
}

func parseMarketLabel(label string) (metrics.Market, bool) {
	norm := strings.ToLower(strings.Join(strings.Fields(label), ""))
	if m, ok := marketLabels[norm]; ok {
		return m, true
	}

	// Full names such as "Points Rebounds Assists".
	m, err := metrics.ParseMarket(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(label)), " ", "_"))
	if err != nil {
		return "", false
	}
	return m, true
}

func parseLineValue(text string) (float64, bool) {
	match := numberPattern.FindString(text)
	if match == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}
