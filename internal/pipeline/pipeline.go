// Package pipeline runs the fetch → join → aggregate → export → plot sequence.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fortuna/halfcourt/internal/chart"
	"github.com/fortuna/halfcourt/internal/config"
	"github.com/fortuna/halfcourt/internal/espn"
	"github.com/fortuna/halfcourt/internal/export"
	"github.com/fortuna/halfcourt/internal/pbp"
	"github.com/fortuna/halfcourt/internal/stats"
	"go.uber.org/zap"
)

// Chart file names inside the output directory.
const (
	ShootingChartFile = "shooting.svg"
	WinProbChartFile  = "win_probability.svg"
	PlayerPointsFile  = "player_points.svg"
)

// Pipeline wires the ESPN client to the table and chart stages.
type Pipeline struct {
	cfg      config.Config
	client   *espn.Client
	headless *espn.HeadlessFetcher
	log      *zap.Logger
}

// Result holds every table the run produced.
type Result struct {
	Plays        []pbp.Play
	Games        []stats.GameLine
	Halves       []stats.HalfLine
	PlayerHalves []stats.PlayerHalfLine
	CSVPath      string
	ChartPaths   []string
}

// New builds a pipeline from configuration.
func New(cfg config.Config, log *zap.Logger) (*Pipeline, error) {
	client := espn.NewClient(espn.Options{
		APIBase:  cfg.APIBase,
		PageBase: cfg.GamePageBase,
		Timeout:  cfg.Timeout,
		Interval: cfg.RequestInterval,
	}, log.Named("espn"))

	p := &Pipeline{cfg: cfg, client: client, log: log}

	if cfg.Headless {
		headless, err := espn.NewHeadlessFetcher(log.Named("headless"))
		if err != nil {
			return nil, fmt.Errorf("start headless browser: %w", err)
		}
		p.headless = headless
		client.Headless = headless
	}

	return p, nil
}

// Close releases the headless browser, if one was started.
func (p *Pipeline) Close() {
	if p.headless != nil {
		p.headless.Close()
	}
}

// Fetch pulls play-by-play and game dates for every configured game and
// returns the joined, sorted play table. Any fetch or parse failure aborts
// the run.
func (p *Pipeline) Fetch(ctx context.Context) ([]pbp.Play, error) {
	var plays []pbp.Play
	var dates []pbp.GameDate

	for _, gameID := range p.cfg.GameIDs {
		summary, err := p.client.FetchSummary(ctx, gameID)
		if err != nil {
			return nil, err
		}

		gamePlays, err := espn.Plays(summary, gameID)
		if err != nil {
			return nil, err
		}
		plays = append(plays, gamePlays...)

		date, err := p.client.FetchGameDate(ctx, gameID)
		if err != nil {
			return nil, err
		}
		dates = append(dates, pbp.GameDate{GameID: gameID, Date: date})

		p.log.Info("fetched game",
			zap.String("game_id", gameID),
			zap.Int("plays", len(gamePlays)),
			zap.String("date", date.Format("2006-01-02")))
	}

	if err := pbp.AttachDates(plays, dates); err != nil {
		return nil, err
	}
	pbp.Sort(plays)
	return plays, nil
}

// Run executes the full pipeline and writes all artifacts.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	plays, err := p.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return p.Process(plays)
}

// Process derives summaries, exports the play table, and renders charts from
// an already fetched play table.
func (p *Pipeline) Process(plays []pbp.Play) (*Result, error) {
	result := &Result{
		Plays:        plays,
		Games:        stats.SummarizeGames(plays),
		Halves:       stats.SummarizeHalves(plays),
		PlayerHalves: stats.SummarizePlayer(plays, p.cfg.Player),
		CSVPath:      p.cfg.PlaysPath(),
	}

	if err := export.WritePlays(result.CSVPath, plays); err != nil {
		return nil, err
	}
	if err := export.Verify(result.CSVPath, plays); err != nil {
		return nil, fmt.Errorf("export verification: %w", err)
	}
	p.log.Info("exported play table", zap.String("path", result.CSVPath), zap.Int("rows", len(plays)))

	charts, err := p.RenderCharts(result)
	if err != nil {
		return nil, err
	}
	result.ChartPaths = charts

	return result, nil
}

// RenderCharts writes every chart into the output directory and returns the
// written paths.
func (p *Pipeline) RenderCharts(result *Result) ([]string, error) {
	if err := os.MkdirAll(p.cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	var paths []string

	renderers := []struct {
		file   string
		empty  bool
		render func(f *os.File) error
	}{
		{ShootingChartFile, len(result.Games) == 0,
			func(f *os.File) error { return chart.ShootingScatter(f, result.Games) }},
		{WinProbChartFile, !hasWinProb(result.Plays),
			func(f *os.File) error { return chart.WinProbability(f, result.Plays) }},
		{PlayerPointsFile, len(result.PlayerHalves) == 0,
			func(f *os.File) error { return chart.PlayerPoints(f, result.PlayerHalves) }},
	}

	for _, r := range renderers {
		if r.empty {
			p.log.Warn("skipping chart, no data", zap.String("file", r.file))
			continue
		}
		path := filepath.Join(p.cfg.OutputDir, r.file)
		f, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("create chart %s: %w", path, err)
		}
		if err := r.render(f); err != nil {
			f.Close()
			return nil, fmt.Errorf("render %s: %w", r.file, err)
		}
		if err := f.Close(); err != nil {
			return nil, fmt.Errorf("close %s: %w", path, err)
		}
		p.log.Info("rendered chart", zap.String("path", path))
		paths = append(paths, path)
	}

	return paths, nil
}

func hasWinProb(plays []pbp.Play) bool {
	for _, p := range plays {
		if p.HasWinProb {
			return true
		}
	}
	return false
}
