// Package export writes slate comparisons to Parquet for offline analysis.
package export

import (
	"fmt"
	"io"
	"os"

	"github.com/fortuna/propscope/internal/service"
	"github.com/parquet-go/parquet-go"
)

// SlateRow is one book's line for one player on a slate date.
// Pointer fields are optional columns and stay null when the average is absent.
type SlateRow struct {
	Date          string   `parquet:"date,snappy"`
	PlayerID      int64    `parquet:"player_id,snappy"`
	Name          string   `parquet:"name,snappy"`
	Team          string   `parquet:"team,snappy"`
	Opponent      string   `parquet:"opponent,snappy"`
	Market        string   `parquet:"market,snappy"`
	LineValue     float64  `parquet:"line_value,snappy"`
	Book          string   `parquet:"book,snappy"`
	SeasonAvg     *float64 `parquet:"season_avg,optional,snappy"`
	Last5Avg      *float64 `parquet:"last5_avg,optional,snappy"`
	Last10Avg     *float64 `parquet:"last10_avg,optional,snappy"`
	DeltaVsSeason *float64 `parquet:"delta_vs_season,optional,snappy"`
	DeltaVsLast5  *float64 `parquet:"delta_vs_last5,optional,snappy"`
	PctVsSeason   *float64 `parquet:"pct_vs_season,optional,snappy"`
	PctVsLast5    *float64 `parquet:"pct_vs_last5,optional,snappy"`
}

// SlateRows flattens a slate. Players without lines produce no rows.
func SlateRows(slate *service.Slate) []SlateRow {
	var rows []SlateRow
	for _, p := range slate.Players {
		for _, m := range p.Markets {
			rows = append(rows, SlateRow{
				Date:          slate.Date,
				PlayerID:      int64(p.PlayerID),
				Name:          p.Name,
				Team:          p.Team,
				Opponent:      p.Opponent,
				Market:        string(m.Market),
				LineValue:     m.LineValue,
				Book:          m.Book,
				SeasonAvg:     m.SeasonAvg,
				Last5Avg:      m.Last5Avg,
				Last10Avg:     m.Last10Avg,
				DeltaVsSeason: m.DeltaVsSeason,
				DeltaVsLast5:  m.DeltaVsLast5,
				PctVsSeason:   m.PctVsSeason,
				PctVsLast5:    m.PctVsLast5,
			})
		}
	}
	return rows
}

// WriteSlate writes the slate rows to w and returns how many were written
func WriteSlate(w io.Writer, slate *service.Slate) (int, error) {
	rows := SlateRows(slate)

	writer := parquet.NewGenericWriter[SlateRow](w)
	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return 0, fmt.Errorf("failed to write slate rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return 0, fmt.Errorf("failed to finish parquet file: %w", err)
	}
	return len(rows), nil
}

// WriteSlateFile writes the slate to a new Parquet file at outputPath
func WriteSlateFile(slate *service.Slate, outputPath string) (int, error) {
	file, err := os.Create(outputPath)
	if err != nil {
		return 0, fmt.Errorf("failed to create output file: %w", err)
	}

	n, err := WriteSlate(file, slate)
	if cerr := file.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("failed to close output file: %w", cerr)
	}
	return n, err
}
