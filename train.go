package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/cosimrl/cartpoleql/config"
	"github.com/cosimrl/cartpoleql/discretize"
	"github.com/cosimrl/cartpoleql/environment/cosim/cartpole"
	"github.com/cosimrl/cartpoleql/environment/cosim/native"
	"github.com/cosimrl/cartpoleql/environment/wrappers"
	"github.com/cosimrl/cartpoleql/experiment"
	"github.com/cosimrl/cartpoleql/experiment/trackers"
	"github.com/cosimrl/cartpoleql/logging"
	"github.com/cosimrl/cartpoleql/utils/progressbar"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// TrainCommand runs a batch of training repetitions and prints a
// summary of the episode lengths of each
func TrainCommand() *cobra.Command {
	var (
		metricsAddr string
		noProgress  bool
	)

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train Q-learning agents and summarize episode lengths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if metricsAddr != "" {
				cfg.Metrics.Enabled = true
				cfg.Metrics.Addr = metricsAddr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			var progress io.Writer
			if !noProgress {
				progress = cmd.ErrOrStderr()
			}
			return train(ctx, cfg, cmd.OutOrStdout(), progress)
		},
	}

	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "",
		"serve Prometheus metrics on this address while training")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false,
		"do not display a progress bar")
	return cmd
}

// train runs the configured batch, writing the summary to out and the
// progress bar to progress if it is not nil
func train(ctx context.Context, cfg *config.Config, out,
	progress io.Writer) error {
	log, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	if cfg.File != "" {
		log.WithField("file", cfg.File).Info("using config file")
	}

	envLogConfig := cfg.Logging
	envLogConfig.Level = cfg.Environment.LogLevel
	envLog, err := logging.New(envLogConfig)
	if err != nil {
		return err
	}

	sim, err := native.New(cfg.Environment)
	if err != nil {
		return fmt.Errorf("train: %w", err)
	}
	cp, err := cartpole.NewFromParams(sim, cfg.Environment, envLog)
	if err != nil {
		return fmt.Errorf("train: %w", err)
	}
	defer func() {
		if err := cp.Close(); err != nil {
			log.WithError(err).Warn("could not close environment")
		}
	}()

	env, err := wrappers.NewDiscretized(cp, discretize.NewCartPole())
	if err != nil {
		return fmt.Errorf("train: %w", err)
	}

	var tracked []trackers.Tracker
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		tracked = append(tracked, trackers.NewPrometheus(reg))

		shutdown := serveMetrics(reg, cfg.Metrics, log)
		defer shutdown()
	}

	var bar *progressbar.ManualProgressBar
	if progress != nil {
		total := cfg.Experiment.Episodes * cfg.Experiment.Repetitions
		bar = progressbar.NewManualProgressBarTo(progress, 50, total)
		tracked = append(tracked, trackers.NewProgress(bar))
	}

	agentConfig := cfg.Agent
	agentConfig.Logger = log

	batch, err := experiment.NewBatch(env, agentConfig, cfg.Experiment, log,
		tracked...)
	if err != nil {
		return fmt.Errorf("train: %w", err)
	}

	result, err := batch.Run(ctx)
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return fmt.Errorf("train: %w", err)
	}

	for rep := range result.ExecTimes {
		s := result.Summary(rep)
		fmt.Fprintf(out, "experiment %d: mean %.2f, std %.2f, max %.0f "+
			"(%.3fs)\n", rep, s.Mean, s.Std, s.Max, result.ExecTimes[rep])
	}
	return nil
}

// serveMetrics serves the metrics in reg until the returned function is
// called
func serveMetrics(reg *prometheus.Registry, cfg config.MetricsConfig,
	log logrus.FieldLogger) func() {
	mux := http.NewServeMux()
	mux.Handle(cfg.Path, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.WithField("addr", cfg.Addr).Info("serving metrics")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("metrics server failed")
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.WithError(err).Warn("could not shut down metrics server")
		}
	}
}
