package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fortuna/halfcourt/internal/api/rest"
	"github.com/fortuna/halfcourt/internal/api/ws"
	"github.com/fortuna/halfcourt/internal/config"
	"github.com/fortuna/halfcourt/internal/export"
	"github.com/fortuna/halfcourt/internal/pipeline"
	"github.com/fortuna/halfcourt/internal/report"
	"github.com/fortuna/halfcourt/internal/watch"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	verbose bool

	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "halfcourt",
	Short: "halfcourt - college basketball play-by-play charts",
	Long: `halfcourt pulls ESPN men's college basketball play-by-play data for a
fixed list of games, joins scraped game dates onto it, derives per-game and
per-half shooting summaries, exports the play table to CSV, and renders SVG
charts.

Configuration comes from HALFCOURT_* environment variables (game ids, player,
output directory, base URLs).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zapConfig := zap.NewProductionConfig()
		if verbose {
			zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zapConfig.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		cfg, err = config.Load()
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch, join, aggregate, export, and render charts",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := pipeline.New(cfg, logger)
		if err != nil {
			return err
		}
		defer p.Close()

		result, err := p.Run(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Println("\nPer game:")
		report.Games(os.Stdout, result.Games)
		fmt.Println("\nPer half:")
		report.Halves(os.Stdout, result.Halves)
		fmt.Printf("\n%s per half:\n", cfg.Player)
		report.Player(os.Stdout, result.PlayerHalves)

		logger.Info("pipeline complete",
			zap.Int("plays", len(result.Plays)),
			zap.String("csv", result.CSVPath),
			zap.Strings("charts", result.ChartPaths))
		return nil
	},
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch and export the joined play table without charts",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := pipeline.New(cfg, logger)
		if err != nil {
			return err
		}
		defer p.Close()

		plays, err := p.Fetch(cmd.Context())
		if err != nil {
			return err
		}
		if err := export.WritePlays(cfg.PlaysPath(), plays); err != nil {
			return err
		}
		if err := export.Verify(cfg.PlaysPath(), plays); err != nil {
			return fmt.Errorf("export verification: %w", err)
		}

		logger.Info("exported play table", zap.String("path", cfg.PlaysPath()), zap.Int("rows", len(plays)))
		return nil
	},
}

var chartsCmd = &cobra.Command{
	Use:   "charts",
	Short: "Re-render charts from the previously exported play table",
	RunE: func(cmd *cobra.Command, args []string) error {
		plays, err := export.ReadPlays(cfg.PlaysPath())
		if err != nil {
			return fmt.Errorf("no play table at %s, run fetch first: %w", cfg.PlaysPath(), err)
		}

		p, err := pipeline.New(cfg, logger)
		if err != nil {
			return err
		}
		defer p.Close()

		result, err := p.Process(plays)
		if err != nil {
			return err
		}

		logger.Info("charts rendered", zap.Strings("charts", result.ChartPaths))
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve charts and tables over HTTP with live reload",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}

		hub := ws.NewHub(logger.Named("ws"))
		go hub.Run()

		watcher, err := watch.New(cfg.OutputDir, logger.Named("watch"))
		if err != nil {
			return err
		}
		defer watcher.Close()

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		go watcher.Run(ctx, func() {
			logger.Info("output changed, notifying clients", zap.Int("clients", hub.ClientCount()))
			hub.Broadcast([]byte(`{"event":"reload"}`))
		})

		server := rest.NewServer(cfg, hub, logger.Named("rest"))
		errCh := make(chan error, 1)
		go func() {
			errCh <- server.Start()
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return err
		case <-sigCh:
		}

		logger.Info("shutting down")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		return server.Shutdown(shutdownCtx)
	},
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(runCmd, fetchCmd, chartsCmd, serveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
