package pbp

import (
	"fmt"
	"sort"
)

// AttachWinProbability left-joins a game's win-probability series onto its
// plays by play id. Plays without a matching sample keep HasWinProb false.
func AttachWinProbability(plays []Play, points []WinProbPoint) {
	byPlay := make(map[string]WinProbPoint, len(points))
	for _, p := range points {
		byPlay[p.PlayID] = p
	}

	for i := range plays {
		if p, ok := byPlay[plays[i].PlayID]; ok {
			plays[i].WinProb = p.HomeWinPct
			plays[i].HasWinProb = true
		}
	}
}

// AttachDates left-joins game dates onto plays by game id. It returns an error
// naming the first game id with no date, since every downstream summary is
// keyed by date.
func AttachDates(plays []Play, dates []GameDate) error {
	byGame := make(map[string]GameDate, len(dates))
	for _, d := range dates {
		byGame[d.GameID] = d
	}

	for i := range plays {
		d, ok := byGame[plays[i].GameID]
		if !ok {
			return fmt.Errorf("no date for game %s", plays[i].GameID)
		}
		plays[i].Date = d.Date
		plays[i].HasDate = true
	}
	return nil
}

// Sort orders plays by game id, then half, then sequence number, which makes
// repeated runs over the same input produce identical output.
func Sort(plays []Play) {
	sort.Slice(plays, func(i, j int) bool {
		a, b := plays[i], plays[j]
		if a.GameID != b.GameID {
			return a.GameID < b.GameID
		}
		if a.Half != b.Half {
			return a.Half < b.Half
		}
		return a.Sequence < b.Sequence
	})
}
