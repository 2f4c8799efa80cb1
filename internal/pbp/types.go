package pbp

import "time"

// Play is one row of a game's play-by-play log.
type Play struct {
	GameID   string `json:"game_id"`
	PlayID   string `json:"play_id"`
	Sequence int    `json:"sequence"`
	Half     int    `json:"half"`

	// Clock is the time remaining in the half as displayed ("12:34").
	Clock         string `json:"clock"`
	SecsRemaining int    `json:"secs_remaining"`

	Description string `json:"description"`
	HomeScore   int    `json:"home_score"`
	AwayScore   int    `json:"away_score"`
	ScoreDiff   int    `json:"score_diff"`

	ScoringPlay bool `json:"scoring_play"`
	ScoreValue  int  `json:"score_value"`

	// WinProb is the home win probability attached from the win-probability
	// series. HasWinProb is false when no entry matched this play.
	WinProb    float64 `json:"win_prob"`
	HasWinProb bool    `json:"has_win_prob"`

	// Spread is the pregame point spread relative to the home team.
	Spread float64 `json:"spread"`

	// Date is attached from the scraped game page.
	Date    time.Time `json:"date"`
	HasDate bool      `json:"has_date"`

	Shot Shot `json:"shot"`
}

// Shot is the classification of a play description as a shot attempt.
type Shot struct {
	Attempt   bool   `json:"attempt"`
	Made      bool   `json:"made"`
	FreeThrow bool   `json:"free_throw"`
	ThreePt   bool   `json:"three_pt"`
	Shooter   string `json:"shooter"`
}

// GameDate maps a game id to its calendar date.
type GameDate struct {
	GameID string    `json:"game_id"`
	Date   time.Time `json:"date"`
}

// WinProbPoint is one sample of the win-probability series for a game.
type WinProbPoint struct {
	PlayID      string  `json:"play_id"`
	HomeWinPct  float64 `json:"home_win_pct"`
	SecondsLeft int     `json:"seconds_left"`
}

const (
	halfSeconds     = 20 * 60
	overtimeSeconds = 5 * 60
)

// PeriodSeconds returns the length of a period in seconds. College halves run
// twenty minutes, overtime periods five.
func PeriodSeconds(half int) int {
	if half <= 2 {
		return halfSeconds
	}
	return overtimeSeconds
}

// GameSecondsElapsed converts a half number and seconds remaining in that half
// into seconds elapsed since tipoff.
func GameSecondsElapsed(half, secsRemaining int) int {
	elapsed := 0
	for h := 1; h < half; h++ {
		elapsed += PeriodSeconds(h)
	}
	return elapsed + PeriodSeconds(half) - secsRemaining
}
