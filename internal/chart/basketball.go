package chart

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/fortuna/halfcourt/internal/pbp"
	"github.com/fortuna/halfcourt/internal/stats"
)

// ShootingScatter plots field-goal and free-throw percentage per game over
// game dates.
func ShootingScatter(w io.Writer, lines []stats.GameLine) error {
	fg := Series{Label: "FG%"}
	ft := Series{Label: "FT%"}
	for _, l := range lines {
		x := float64(l.Date.Unix())
		fg.Points = append(fg.Points, Point{X: x, Y: l.FGPct})
		ft.Points = append(ft.Points, Point{X: x, Y: l.FTPct})
	}

	opts := Options{
		Title:  "Shooting by game",
		XLabel: "Game date",
		YLabel: "Percentage",
		XTick: func(v float64) string {
			return time.Unix(int64(v), 0).UTC().Format("Jan 2")
		},
		YTick: func(v float64) string {
			return fmt.Sprintf("%.0f%%", v*100)
		},
		YFixed: true,
		YMin:   0,
		YMax:   1,
	}
	return Scatter(w, opts, []Series{fg, ft})
}

// WinProbability plots the home win probability over game time, one line per
// game. Plays without an attached probability are skipped.
func WinProbability(w io.Writer, plays []pbp.Play) error {
	byGame := make(map[string]*Series)
	var order []string
	for _, p := range plays {
		if !p.HasWinProb {
			continue
		}
		s, ok := byGame[p.GameID]
		if !ok {
			label := p.GameID
			if p.HasDate {
				label = p.Date.Format("Jan 2, 2006")
			}
			s = &Series{Label: label}
			byGame[p.GameID] = s
			order = append(order, p.GameID)
		}
		s.Points = append(s.Points, Point{
			X: float64(pbp.GameSecondsElapsed(p.Half, p.SecsRemaining)),
			Y: p.WinProb,
		})
	}

	sort.Strings(order)
	series := make([]Series, 0, len(order))
	for _, gameID := range order {
		s := byGame[gameID]
		sort.Slice(s.Points, func(i, j int) bool { return s.Points[i].X < s.Points[j].X })
		series = append(series, *s)
	}

	opts := Options{
		Title:  "Home win probability",
		XLabel: "Game minute",
		YLabel: "Win probability",
		XTick: func(v float64) string {
			return fmt.Sprintf("%.0f", v/60)
		},
		YTick: func(v float64) string {
			return fmt.Sprintf("%.0f%%", v*100)
		},
		YFixed: true,
		YMin:   0,
		YMax:   1,
	}
	return Line(w, opts, series)
}

// PlayerPoints plots one player's points per half as a scatter over game
// dates.
func PlayerPoints(w io.Writer, lines []stats.PlayerHalfLine) error {
	byHalf := make(map[int]*Series)
	var halves []int
	player := ""
	for _, l := range lines {
		player = l.Player
		s, ok := byHalf[l.Half]
		if !ok {
			s = &Series{Label: halfLabel(l.Half)}
			byHalf[l.Half] = s
			halves = append(halves, l.Half)
		}
		s.Points = append(s.Points, Point{X: float64(l.Date.Unix()), Y: float64(l.Points)})
	}

	sort.Ints(halves)
	series := make([]Series, 0, len(halves))
	for _, h := range halves {
		series = append(series, *byHalf[h])
	}

	opts := Options{
		Title:  fmt.Sprintf("%s points by half", player),
		XLabel: "Game date",
		YLabel: "Points",
		XTick: func(v float64) string {
			return time.Unix(int64(v), 0).UTC().Format("Jan 2")
		},
		YTick: func(v float64) string {
			return fmt.Sprintf("%.0f", v)
		},
	}
	return Scatter(w, opts, series)
}

func halfLabel(half int) string {
	switch half {
	case 1:
		return "1st half"
	case 2:
		return "2nd half"
	default:
		return fmt.Sprintf("OT %d", half-2)
	}
}
