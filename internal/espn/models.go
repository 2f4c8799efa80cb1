package espn

// Summary is the slice of ESPN's game summary response this tool consumes.
// The full payload is much larger; unknown fields are ignored on decode.
type Summary struct {
	Plays          []SummaryPlay     `json:"plays"`
	WinProbability []WinProbSample   `json:"winprobability"`
	PickCenter     []PickCenterEntry `json:"pickcenter"`
	Header         SummaryHeader     `json:"header"`
}

// SummaryPlay is a single play row in the summary payload.
type SummaryPlay struct {
	ID             string `json:"id"`
	SequenceNumber string `json:"sequenceNumber"`
	Text           string `json:"text"`
	Period         struct {
		Number int `json:"number"`
	} `json:"period"`
	Clock struct {
		DisplayValue string `json:"displayValue"`
	} `json:"clock"`
	ScoringPlay bool `json:"scoringPlay"`
	ScoreValue  int  `json:"scoreValue"`
	HomeScore   int  `json:"homeScore"`
	AwayScore   int  `json:"awayScore"`
}

// WinProbSample is one entry of the summary's win-probability series.
type WinProbSample struct {
	PlayID            string  `json:"playId"`
	HomeWinPercentage float64 `json:"homeWinPercentage"`
	TiePercentage     float64 `json:"tiePercentage"`
	SecondsLeft       int     `json:"secondsLeft"`
}

// PickCenterEntry carries the pregame betting line from one provider.
type PickCenterEntry struct {
	Spread    float64 `json:"spread"`
	OverUnder float64 `json:"overUnder"`
	Provider  struct {
		Name string `json:"name"`
	} `json:"provider"`
}

// SummaryHeader identifies the game and its competitors.
type SummaryHeader struct {
	ID           string `json:"id"`
	Competitions []struct {
		ID          string `json:"id"`
		Date        string `json:"date"`
		Competitors []struct {
			HomeAway string `json:"homeAway"`
			Team     struct {
				DisplayName  string `json:"displayName"`
				Abbreviation string `json:"abbreviation"`
			} `json:"team"`
		} `json:"competitors"`
	} `json:"competitions"`
}
