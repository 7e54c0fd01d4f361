package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/alexshd/framebench/internal/config"
	"github.com/alexshd/framebench/internal/engine"
	"github.com/alexshd/framebench/internal/logging"
	"github.com/alexshd/framebench/internal/metrics"
	"github.com/alexshd/framebench/internal/report"
)

var (
	controllerOverride string
	testLengthOverride string
	rampLengthOverride string
	runsOverride       int
	sceneOverride      string
	metricsAddr        string
	timelineOut        string
	outputFormat       string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the benchmark and print the score",
	Example: `  # Wave mode on the simulated host with defaults
  framebench run

  # Three 10s runs of the particle scene, exporting metrics
  framebench run --scene particles --runs 3 --test-length 10s --metrics-addr :9090

  # Steady-state measurement at a known load
  framebench run --controller fixed --test-length 5s -o json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := applyRunOverrides(cmd, cfg); err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var opts []engine.Option
		if cfg.MetricsAddr != "" {
			rec := metrics.NewRecorder()
			opts = append(opts, engine.WithMetrics(rec))
			serveCtx, cancel := context.WithCancel(ctx)
			defer cancel()
			go func() {
				if err := rec.Serve(serveCtx, cfg.MetricsAddr, logger); err != nil {
					logger.Error("metrics server error", logging.ErrorAttr(err))
				}
			}()
		}
		if cfg.TimelineOut != "" {
			tw, err := report.NewTimelineWriter(cfg.TimelineOut)
			if err != nil {
				return err
			}
			defer tw.Close()
			opts = append(opts, engine.WithTimeline(tw))
		}

		results, runErr := engine.New(cfg, logger, opts...).Run(ctx)
		if results == nil {
			return runErr
		}
		if runErr != nil && errors.Is(runErr, context.Canceled) {
			logger.Warn("benchmark interrupted", "completed_runs", len(results.Runs()))
		}
		if err := report.WriteSummary(cmd.OutOrStdout(), results, outputFormat); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
		return runErr
	},
}

func applyRunOverrides(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if controllerOverride != "" {
		cfg.Controller = controllerOverride
	}
	if testLengthOverride != "" {
		var d config.Duration
		if err := d.Set(testLengthOverride); err != nil {
			return fmt.Errorf("invalid --test-length: %w", err)
		}
		cfg.TestLength = d
	}
	if rampLengthOverride != "" {
		var d config.Duration
		if err := d.Set(rampLengthOverride); err != nil {
			return fmt.Errorf("invalid --ramp-length: %w", err)
		}
		cfg.RampLength = d
	}
	if flags.Changed("runs") {
		cfg.Runs = runsOverride
	}
	if sceneOverride != "" {
		cfg.Scene = sceneOverride
	}
	if metricsAddr != "" {
		cfg.MetricsAddr = metricsAddr
	}
	if timelineOut != "" {
		cfg.TimelineOut = timelineOut
	}
	return nil
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&controllerOverride, "controller", "", "controller: fixed or wave")
	runCmd.Flags().StringVar(&testLengthOverride, "test-length", "", "total run length (e.g. 30s)")
	runCmd.Flags().StringVar(&rampLengthOverride, "ramp-length", "", "length of one ramp sweep (e.g. 5s)")
	runCmd.Flags().IntVar(&runsOverride, "runs", 1, "number of runs to aggregate")
	runCmd.Flags().StringVar(&sceneOverride, "scene", "", "scene: simulated or particles")
	runCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	runCmd.Flags().StringVar(&timelineOut, "timeline-out", "", "write every frame sample as JSON Lines to this file")
	runCmd.Flags().StringVarP(&outputFormat, "output", "o", report.FormatTable, "summary format: table, json or yaml")
}
