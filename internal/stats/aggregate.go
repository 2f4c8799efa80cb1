// Package stats derives shooting summaries from play-by-play rows.
package stats

import (
	"sort"
	"strings"
	"time"

	"github.com/fortuna/halfcourt/internal/pbp"
)

// GameLine is the shooting summary of one game.
type GameLine struct {
	GameID  string    `json:"game_id"`
	Date    time.Time `json:"date"`
	FGMade  int       `json:"fg_made"`
	FGTaken int       `json:"fg_taken"`
	FTMade  int       `json:"ft_made"`
	FTTaken int       `json:"ft_taken"`
	FGPct   float64   `json:"fg_pct"`
	FTPct   float64   `json:"ft_pct"`
}

// HalfLine is the shooting summary of one half of one game.
type HalfLine struct {
	GameID  string    `json:"game_id"`
	Date    time.Time `json:"date"`
	Half    int       `json:"half"`
	FGMade  int       `json:"fg_made"`
	FGTaken int       `json:"fg_taken"`
	FTMade  int       `json:"ft_made"`
	FTTaken int       `json:"ft_taken"`
	FGPct   float64   `json:"fg_pct"`
	FTPct   float64   `json:"ft_pct"`
}

// PlayerHalfLine is one player's scoring in one half of one game.
type PlayerHalfLine struct {
	GameID string    `json:"game_id"`
	Date   time.Time `json:"date"`
	Half   int       `json:"half"`
	Player string    `json:"player"`
	Points int       `json:"points"`
}

type shootingTotals struct {
	date    time.Time
	fgMade  int
	fgTaken int
	ftMade  int
	ftTaken int
}

func (t *shootingTotals) add(p pbp.Play) {
	t.date = p.Date
	switch {
	case p.Shot.FreeThrow:
		t.ftTaken++
		if p.Shot.Made {
			t.ftMade++
		}
	case p.Shot.Attempt:
		t.fgTaken++
		if p.Shot.Made {
			t.fgMade++
		}
	}
}

// SummarizeGames groups plays by game id and computes shooting lines, ordered
// by game date then game id.
func SummarizeGames(plays []pbp.Play) []GameLine {
	totals := make(map[string]*shootingTotals)
	for _, p := range plays {
		t, ok := totals[p.GameID]
		if !ok {
			t = &shootingTotals{}
			totals[p.GameID] = t
		}
		t.add(p)
	}

	lines := make([]GameLine, 0, len(totals))
	for gameID, t := range totals {
		lines = append(lines, GameLine{
			GameID:  gameID,
			Date:    t.date,
			FGMade:  t.fgMade,
			FGTaken: t.fgTaken,
			FTMade:  t.ftMade,
			FTTaken: t.ftTaken,
			FGPct:   safeDiv(float64(t.fgMade), float64(t.fgTaken)),
			FTPct:   safeDiv(float64(t.ftMade), float64(t.ftTaken)),
		})
	}

	sort.Slice(lines, func(i, j int) bool {
		if !lines[i].Date.Equal(lines[j].Date) {
			return lines[i].Date.Before(lines[j].Date)
		}
		return lines[i].GameID < lines[j].GameID
	})
	return lines
}

type halfKey struct {
	gameID string
	half   int
}

// SummarizeHalves groups plays by game id and half.
func SummarizeHalves(plays []pbp.Play) []HalfLine {
	totals := make(map[halfKey]*shootingTotals)
	for _, p := range plays {
		k := halfKey{gameID: p.GameID, half: p.Half}
		t, ok := totals[k]
		if !ok {
			t = &shootingTotals{}
			totals[k] = t
		}
		t.add(p)
	}

	lines := make([]HalfLine, 0, len(totals))
	for k, t := range totals {
		lines = append(lines, HalfLine{
			GameID:  k.gameID,
			Date:    t.date,
			Half:    k.half,
			FGMade:  t.fgMade,
			FGTaken: t.fgTaken,
			FTMade:  t.ftMade,
			FTTaken: t.ftTaken,
			FGPct:   safeDiv(float64(t.fgMade), float64(t.fgTaken)),
			FTPct:   safeDiv(float64(t.ftMade), float64(t.ftTaken)),
		})
	}

	sort.Slice(lines, func(i, j int) bool {
		a, b := lines[i], lines[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.GameID != b.GameID {
			return a.GameID < b.GameID
		}
		return a.Half < b.Half
	})
	return lines
}

// SummarizePlayer totals one player's points per game half, counted from
// scoring plays credited to the player. Halves where the player never scored
// are absent.
func SummarizePlayer(plays []pbp.Play, player string) []PlayerHalfLine {
	type entry struct {
		date   time.Time
		points int
	}
	totals := make(map[halfKey]*entry)

	for _, p := range plays {
		if !p.ScoringPlay || !strings.EqualFold(p.Shot.Shooter, player) {
			continue
		}
		k := halfKey{gameID: p.GameID, half: p.Half}
		e, ok := totals[k]
		if !ok {
			e = &entry{}
			totals[k] = e
		}
		e.date = p.Date
		e.points += p.ScoreValue
	}

	lines := make([]PlayerHalfLine, 0, len(totals))
	for k, e := range totals {
		lines = append(lines, PlayerHalfLine{
			GameID: k.gameID,
			Date:   e.date,
			Half:   k.half,
			Player: player,
			Points: e.points,
		})
	}

	sort.Slice(lines, func(i, j int) bool {
		a, b := lines[i], lines[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.GameID != b.GameID {
			return a.GameID < b.GameID
		}
		return a.Half < b.Half
	})
	return lines
}

// safeDiv performs division with zero check
func safeDiv(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}
