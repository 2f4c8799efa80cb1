// Package export writes the joined play-by-play table to a flat CSV file and
// reads it back.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/donghquinn/gopandas"
	"github.com/fortuna/halfcourt/internal/pbp"
)

// PlaysFile is the fixed name of the exported play table inside the output
// directory. The file is overwritten on every run.
const PlaysFile = "plays.csv"

var playColumns = []string{
	"game_id",
	"date",
	"half",
	"play_id",
	"clock",
	"secs_remaining",
	"home_score",
	"away_score",
	"score_diff",
	"win_prob",
	"spread",
	"scoring_play",
	"score_value",
	"fg_attempt",
	"made",
	"free_throw",
	"three_pt",
	"shooter",
	"description",
}

const dateLayout = "2006-01-02"

// WritePlays writes plays to path as CSV. Rows are sorted first so identical
// input always produces identical bytes.
func WritePlays(path string, plays []pbp.Play) error {
	pbp.Sort(plays)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(playColumns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, p := range plays {
		winProb := ""
		if p.HasWinProb {
			winProb = strconv.FormatFloat(p.WinProb, 'f', 4, 64)
		}
		date := ""
		if p.HasDate {
			date = p.Date.Format(dateLayout)
		}

		row := []string{
			p.GameID,
			date,
			strconv.Itoa(p.Half),
			p.PlayID,
			p.Clock,
			strconv.Itoa(p.SecsRemaining),
			strconv.Itoa(p.HomeScore),
			strconv.Itoa(p.AwayScore),
			strconv.Itoa(p.ScoreDiff),
			winProb,
			strconv.FormatFloat(p.Spread, 'f', -1, 64),
			strconv.FormatBool(p.ScoringPlay),
			strconv.Itoa(p.ScoreValue),
			strconv.FormatBool(p.Shot.Attempt),
			strconv.FormatBool(p.Shot.Made),
			strconv.FormatBool(p.Shot.FreeThrow),
			strconv.FormatBool(p.Shot.ThreePt),
			p.Shot.Shooter,
			p.Description,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return nil
}

// ReadPlays reads a previously exported CSV back into play rows.
func ReadPlays(path string) ([]pbp.Play, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s is empty", path)
	}
	if len(records[0]) != len(playColumns) {
		return nil, fmt.Errorf("%s has %d columns, want %d", path, len(records[0]), len(playColumns))
	}

	plays := make([]pbp.Play, 0, len(records)-1)
	for i, rec := range records[1:] {
		p, err := playFromRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", path, i+2, err)
		}
		p.Sequence = i
		plays = append(plays, p)
	}
	return plays, nil
}

func playFromRecord(rec []string) (pbp.Play, error) {
	var p pbp.Play
	var err error

	p.GameID = rec[0]
	if rec[1] != "" {
		p.Date, err = time.Parse(dateLayout, rec[1])
		if err != nil {
			return p, fmt.Errorf("bad date %q", rec[1])
		}
		p.HasDate = true
	}
	if p.Half, err = strconv.Atoi(rec[2]); err != nil {
		return p, fmt.Errorf("bad half %q", rec[2])
	}
	p.PlayID = rec[3]
	p.Clock = rec[4]
	if p.SecsRemaining, err = strconv.Atoi(rec[5]); err != nil {
		return p, fmt.Errorf("bad secs_remaining %q", rec[5])
	}
	if p.HomeScore, err = strconv.Atoi(rec[6]); err != nil {
		return p, fmt.Errorf("bad home_score %q", rec[6])
	}
	if p.AwayScore, err = strconv.Atoi(rec[7]); err != nil {
		return p, fmt.Errorf("bad away_score %q", rec[7])
	}
	if p.ScoreDiff, err = strconv.Atoi(rec[8]); err != nil {
		return p, fmt.Errorf("bad score_diff %q", rec[8])
	}
	if rec[9] != "" {
		if p.WinProb, err = strconv.ParseFloat(rec[9], 64); err != nil {
			return p, fmt.Errorf("bad win_prob %q", rec[9])
		}
		p.HasWinProb = true
	}
	if p.Spread, err = strconv.ParseFloat(rec[10], 64); err != nil {
		return p, fmt.Errorf("bad spread %q", rec[10])
	}
	if p.ScoringPlay, err = strconv.ParseBool(rec[11]); err != nil {
		return p, fmt.Errorf("bad scoring_play %q", rec[11])
	}
	if p.ScoreValue, err = strconv.Atoi(rec[12]); err != nil {
		return p, fmt.Errorf("bad score_value %q", rec[12])
	}
	if p.Shot.Attempt, err = strconv.ParseBool(rec[13]); err != nil {
		return p, fmt.Errorf("bad fg_attempt %q", rec[13])
	}
	if p.Shot.Made, err = strconv.ParseBool(rec[14]); err != nil {
		return p, fmt.Errorf("bad made %q", rec[14])
	}
	if p.Shot.FreeThrow, err = strconv.ParseBool(rec[15]); err != nil {
		return p, fmt.Errorf("bad free_throw %q", rec[15])
	}
	if p.Shot.ThreePt, err = strconv.ParseBool(rec[16]); err != nil {
		return p, fmt.Errorf("bad three_pt %q", rec[16])
	}
	p.Shot.Shooter = rec[17]
	p.Description = rec[18]

	return p, nil
}

// Verify re-reads the exported file as a dataframe and checks that its shape
// and column set match the in-memory table that was just written.
func Verify(path string, plays []pbp.Play) error {
	df, err := gopandas.ReadCSV(path)
	if err != nil {
		return fmt.Errorf("read back %s: %w", path, err)
	}

	rows, cols := df.Shape()
	if rows != len(plays) {
		return fmt.Errorf("%s: %d rows on disk, %d in memory", path, rows, len(plays))
	}
	if cols != len(playColumns) {
		return fmt.Errorf("%s: %d columns on disk, %d in memory", path, cols, len(playColumns))
	}

	got := df.Columns()
	for i, want := range playColumns {
		if got[i] != want {
			return fmt.Errorf("%s: column %d is %q, want %q", path, i, got[i], want)
		}
	}
	return nil
}
