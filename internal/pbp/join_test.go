package pbp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttachWinProbability(t *testing.T) {
	plays := []Play{
		{GameID: "g1", PlayID: "p1"},
		{GameID: "g1", PlayID: "p2"},
		{GameID: "g1", PlayID: "p3"},
	}
	points := []WinProbPoint{
		{PlayID: "p1", HomeWinPct: 0.61},
		{PlayID: "p3", HomeWinPct: 0.73},
	}

	AttachWinProbability(plays, points)

	assert.True(t, plays[0].HasWinProb)
	assert.Equal(t, 0.61, plays[0].WinProb)

	// Unmatched play keeps left-join semantics: present, unfilled.
	assert.False(t, plays[1].HasWinProb)
	assert.Zero(t, plays[1].WinProb)

	assert.True(t, plays[2].HasWinProb)
	assert.Equal(t, 0.73, plays[2].WinProb)
}

func TestAttachDates(t *testing.T) {
	day := time.Date(2019, time.January, 19, 0, 0, 0, 0, time.UTC)
	plays := []Play{
		{GameID: "g1"},
		{GameID: "g2"},
		{GameID: "g1"},
	}
	dates := []GameDate{
		{GameID: "g1", Date: day},
		{GameID: "g2", Date: day.AddDate(0, 0, 7)},
	}

	require.NoError(t, AttachDates(plays, dates))

	for _, p := range plays {
		assert.True(t, p.HasDate)
	}
	assert.Equal(t, day, plays[0].Date)
	assert.Equal(t, day.AddDate(0, 0, 7), plays[1].Date)
}

func TestAttachDatesMissingGame(t *testing.T) {
	plays := []Play{{GameID: "g1"}, {GameID: "orphan"}}
	dates := []GameDate{{GameID: "g1", Date: time.Now()}}

	err := AttachDates(plays, dates)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "orphan")
}

func TestSortIsDeterministic(t *testing.T) {
	plays := []Play{
		{GameID: "g2", Half: 1, Sequence: 5},
		{GameID: "g1", Half: 2, Sequence: 1},
		{GameID: "g1", Half: 1, Sequence: 9},
		{GameID: "g1", Half: 1, Sequence: 2},
	}

	Sort(plays)

	assert.Equal(t, "g1", plays[0].GameID)
	assert.Equal(t, 2, plays[0].Sequence)
	assert.Equal(t, 9, plays[1].Sequence)
	assert.Equal(t, 2, plays[2].Half)
	assert.Equal(t, "g2", plays[3].GameID)
}
