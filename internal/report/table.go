// Package report prints summary tables to the terminal.
package report

import (
	"fmt"
	"io"

	"github.com/fortuna/halfcourt/internal/stats"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Games renders per-game shooting lines.
func Games(w io.Writer, lines []stats.GameLine) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Game", "Date", "FGM", "FGA", "FG%", "FTM", "FTA", "FT%"})

	for _, l := range lines {
		t.AppendRow(table.Row{
			l.GameID,
			l.Date.Format("2006-01-02"),
			l.FGMade,
			l.FGTaken,
			pct(l.FGPct),
			l.FTMade,
			l.FTTaken,
			pct(l.FTPct),
		})
	}

	t.SetStyle(table.StyleRounded)
	t.Render()
}

// Halves renders per-half shooting lines.
func Halves(w io.Writer, lines []stats.HalfLine) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Game", "Date", "Half", "FGM", "FGA", "FG%", "FTM", "FTA", "FT%"})

	for _, l := range lines {
		t.AppendRow(table.Row{
			l.GameID,
			l.Date.Format("2006-01-02"),
			l.Half,
			l.FGMade,
			l.FGTaken,
			pct(l.FGPct),
			l.FTMade,
			l.FTTaken,
			pct(l.FTPct),
		})
	}

	t.SetStyle(table.StyleRounded)
	t.Render()
}

// Player renders one player's points per half.
func Player(w io.Writer, lines []stats.PlayerHalfLine) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Game", "Date", "Half", "Player", "Points"})

	for _, l := range lines {
		t.AppendRow(table.Row{
			l.GameID,
			l.Date.Format("2006-01-02"),
			l.Half,
			l.Player,
			l.Points,
		})
	}

	t.SetStyle(table.StyleRounded)
	t.Render()
}

func pct(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}
