package stats

import (
	"testing"
	"time"

	"github.com/fortuna/halfcourt/internal/pbp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	day1 = time.Date(2019, time.January, 19, 0, 0, 0, 0, time.UTC)
	day2 = time.Date(2019, time.January, 26, 0, 0, 0, 0, time.UTC)
)

func shotPlay(gameID string, date time.Time, half int, shot pbp.Shot, value int) pbp.Play {
	return pbp.Play{
		GameID:      gameID,
		Date:        date,
		HasDate:     true,
		Half:        half,
		Shot:        shot,
		ScoringPlay: value > 0,
		ScoreValue:  value,
	}
}

func samplePlays() []pbp.Play {
	return []pbp.Play{
		shotPlay("g1", day1, 1, pbp.Shot{Attempt: true, Made: true, Shooter: "Kyle Guy", ThreePt: true}, 3),
		shotPlay("g1", day1, 1, pbp.Shot{Attempt: true, Shooter: "Ty Jerome"}, 0),
		shotPlay("g1", day1, 2, pbp.Shot{Attempt: true, Made: true, Shooter: "Kyle Guy"}, 2),
		shotPlay("g1", day1, 2, pbp.Shot{FreeThrow: true, Made: true, Shooter: "Kyle Guy"}, 1),
		shotPlay("g1", day1, 2, pbp.Shot{FreeThrow: true, Shooter: "Jack Salt"}, 0),
		// Non-shot play rows must not count anywhere.
		{GameID: "g1", Date: day1, HasDate: true, Half: 2, Description: "Offensive Rebound by Virginia."},
		shotPlay("g2", day2, 1, pbp.Shot{Attempt: true, Shooter: "Kyle Guy"}, 0),
		shotPlay("g2", day2, 2, pbp.Shot{Attempt: true, Made: true, Shooter: "Kihei Clark"}, 2),
	}
}

func TestSummarizeGames(t *testing.T) {
	lines := SummarizeGames(samplePlays())
	require.Len(t, lines, 2)

	g1 := lines[0]
	assert.Equal(t, "g1", g1.GameID)
	assert.Equal(t, day1, g1.Date)
	assert.Equal(t, 2, g1.FGMade)
	assert.Equal(t, 3, g1.FGTaken)
	assert.Equal(t, 1, g1.FTMade)
	assert.Equal(t, 2, g1.FTTaken)
	assert.InDelta(t, 2.0/3.0, g1.FGPct, 1e-9)
	assert.InDelta(t, 0.5, g1.FTPct, 1e-9)

	g2 := lines[1]
	assert.Equal(t, "g2", g2.GameID)
	assert.Equal(t, 1, g2.FGMade)
	assert.Equal(t, 2, g2.FGTaken)
	// Zero free throw attempts must not divide by zero.
	assert.Equal(t, 0, g2.FTTaken)
	assert.Equal(t, 0.0, g2.FTPct)
}

func TestSummarizeGamesInvariants(t *testing.T) {
	for _, l := range SummarizeGames(samplePlays()) {
		assert.LessOrEqual(t, l.FGMade, l.FGTaken)
		assert.LessOrEqual(t, l.FTMade, l.FTTaken)
		assert.GreaterOrEqual(t, l.FGPct, 0.0)
		assert.LessOrEqual(t, l.FGPct, 1.0)
		assert.GreaterOrEqual(t, l.FTPct, 0.0)
		assert.LessOrEqual(t, l.FTPct, 1.0)
	}
}

func TestSummarizeHalves(t *testing.T) {
	lines := SummarizeHalves(samplePlays())
	require.Len(t, lines, 4)

	assert.Equal(t, "g1", lines[0].GameID)
	assert.Equal(t, 1, lines[0].Half)
	assert.Equal(t, 1, lines[0].FGMade)
	assert.Equal(t, 2, lines[0].FGTaken)

	assert.Equal(t, 2, lines[1].Half)
	assert.Equal(t, 2, lines[1].FTTaken)

	// Ordered by date, game, half.
	assert.Equal(t, "g2", lines[2].GameID)
	assert.Equal(t, 1, lines[2].Half)
	assert.Equal(t, "g2", lines[3].GameID)
	assert.Equal(t, 2, lines[3].Half)
}

func TestSummarizePlayer(t *testing.T) {
	lines := SummarizePlayer(samplePlays(), "Kyle Guy")
	require.Len(t, lines, 2)

	assert.Equal(t, "g1", lines[0].GameID)
	assert.Equal(t, 1, lines[0].Half)
	assert.Equal(t, 3, lines[0].Points)

	assert.Equal(t, 2, lines[1].Half)
	assert.Equal(t, 3, lines[1].Points) // layup plus a free throw

	// Halves with no scoring from the player are absent, not zero rows.
	for _, l := range lines {
		assert.Equal(t, "Kyle Guy", l.Player)
		assert.Positive(t, l.Points)
	}
}

func TestSummarizePlayerUnknown(t *testing.T) {
	assert.Empty(t, SummarizePlayer(samplePlays(), "Nobody"))
}
