package espn

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fortuna/halfcourt/internal/pbp"
)

// Plays converts a summary payload into play-by-play rows for one game. The
// win-probability series and the pregame spread are attached here so a game's
// rows leave this package fully populated.
func Plays(summary *Summary, gameID string) ([]pbp.Play, error) {
	if len(summary.Plays) == 0 {
		return nil, fmt.Errorf("summary for game %s has no plays", gameID)
	}

	spread := Spread(summary)

	plays := make([]pbp.Play, 0, len(summary.Plays))
	rowOrder := false
	for _, raw := range summary.Plays {
		seq, err := strconv.Atoi(raw.SequenceNumber)
		if err != nil {
			// Some feeds carry non-numeric sequence numbers. Mixing parsed
			// values with synthesized ones can collide, so the whole game is
			// renumbered by row order below.
			rowOrder = true
		}

		secs, err := parseClock(raw.Clock.DisplayValue)
		if err != nil {
			return nil, fmt.Errorf("game %s play %s: %w", gameID, raw.ID, err)
		}

		plays = append(plays, pbp.Play{
			GameID:        gameID,
			PlayID:        raw.ID,
			Sequence:      seq,
			Half:          raw.Period.Number,
			Clock:         raw.Clock.DisplayValue,
			SecsRemaining: secs,
			Description:   raw.Text,
			HomeScore:     raw.HomeScore,
			AwayScore:     raw.AwayScore,
			ScoreDiff:     raw.HomeScore - raw.AwayScore,
			ScoringPlay:   raw.ScoringPlay,
			ScoreValue:    raw.ScoreValue,
			Spread:        spread,
		})
	}

	if rowOrder {
		for i := range plays {
			plays[i].Sequence = i
		}
	}

	pbp.AttachWinProbability(plays, WinProbPoints(summary))
	pbp.Classify(plays)
	return plays, nil
}

// WinProbPoints extracts the win-probability series from a summary.
func WinProbPoints(summary *Summary) []pbp.WinProbPoint {
	points := make([]pbp.WinProbPoint, 0, len(summary.WinProbability))
	for _, s := range summary.WinProbability {
		points = append(points, pbp.WinProbPoint{
			PlayID:      s.PlayID,
			HomeWinPct:  s.HomeWinPercentage,
			SecondsLeft: s.SecondsLeft,
		})
	}
	return points
}

// Spread returns the first provider's pregame spread, 0 when no line is
// published.
func Spread(summary *Summary) float64 {
	if len(summary.PickCenter) == 0 {
		return 0
	}
	return summary.PickCenter[0].Spread
}

// parseClock converts a display clock ("12:34", or "45.0" under a minute)
// into whole seconds remaining.
func parseClock(display string) (int, error) {
	display = strings.TrimSpace(display)
	if display == "" {
		return 0, nil
	}

	if strings.Contains(display, ":") {
		parts := strings.SplitN(display, ":", 2)
		mins, err := strconv.Atoi(parts[0])
		if err != nil {
			return 0, fmt.Errorf("bad clock %q", display)
		}
		secs, err := strconv.Atoi(parts[1])
		if err != nil {
			return 0, fmt.Errorf("bad clock %q", display)
		}
		return mins*60 + secs, nil
	}

	secs, err := strconv.ParseFloat(display, 64)
	if err != nil {
		return 0, fmt.Errorf("bad clock %q", display)
	}
	return int(math.Ceil(secs)), nil
}

// Long-form date as it appears in game page text, e.g. "January 19, 2019".
var longDatePattern = regexp.MustCompile(`(January|February|March|April|May|June|July|August|September|October|November|December) \d{1,2}, \d{4}`)

// ESPN's data-date timestamps are Zulu, but the calendar day shown on the page
// is Eastern. An evening tip is already past midnight UTC, so taking the UTC
// day would land on the day after the game.
var eastern = func() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		return time.FixedZone("EST", -5*60*60)
	}
	return loc
}()

// ParseGameDate extracts the calendar date from a game page. It prefers the
// machine-readable data-date attribute and falls back to the first long-form
// date in the page text.
func ParseGameDate(gameID, html string) (time.Time, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse game page for %s: %w", gameID, err)
	}

	var found time.Time
	doc.Find("[data-date]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		raw := s.AttrOr("data-date", "")
		t, err := parseAttrDate(raw)
		if err != nil {
			return true
		}
		found = t
		return false
	})
	if !found.IsZero() {
		y, m, d := found.In(eastern).Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}

	if m := longDatePattern.FindString(doc.Text()); m != "" {
		t, err := time.Parse("January 2, 2006", m)
		if err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("no date found on game page for %s", gameID)
}

// parseAttrDate handles the timestamp formats ESPN puts in data-date
// attributes. Seconds are sometimes omitted. Bare dates carry no zone and are
// read as Eastern so the later day conversion leaves them untouched.
func parseAttrDate(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04Z", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, raw, eastern); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("bad data-date %q", raw)
}
