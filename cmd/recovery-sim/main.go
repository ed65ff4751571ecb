// Package main is the entry point for the recovery simulator.
// It only handles configuration and dependency injection.
// NO business logic belongs here.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/MRamiBalles/vitals/internal/domain/health"
	"github.com/MRamiBalles/vitals/internal/engine"
	"github.com/MRamiBalles/vitals/internal/platform/config"
	"github.com/MRamiBalles/vitals/internal/platform/logger"
	"github.com/MRamiBalles/vitals/internal/platform/metrics"
)

type simFlags struct {
	configPath string
	maxHP      int
	damage     int
	amount     int
	intervalMs int
	timeoutMs  int
	logLevel   string
}

func newRootCmd() *cobra.Command {
	var f simFlags

	cmd := &cobra.Command{
		Use:   "recovery-sim",
		Short: "Damage an HP pool and heal it back over time",
		Long: "recovery-sim builds an HP pool, applies the initial damage and runs a timed recovery " +
			"until the pool is full, the timeout expires or the process receives SIGINT/SIGTERM.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Read(f.configPath)
			if err != nil {
				return err
			}
			applyFlags(cmd, &f, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runSimulation(cmd, cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.configPath, "config", "", "key=value config file (VITALS_* keys)")
	flags.IntVar(&f.maxHP, "max", 0, "maximum HP")
	flags.IntVar(&f.damage, "damage", 0, "damage applied before recovery starts")
	flags.IntVar(&f.amount, "amount", 0, "HP restored per tick")
	flags.IntVar(&f.intervalMs, "interval", 0, "milliseconds between ticks")
	flags.IntVar(&f.timeoutMs, "timeout", 0, "cancel the recovery after this many milliseconds (0 = never)")
	flags.StringVar(&f.logLevel, "log-level", "", "zerolog level (debug, info, warn, error)")

	return cmd
}

// applyFlags lets explicitly set flags win over file and environment values.
func applyFlags(cmd *cobra.Command, f *simFlags, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("max") {
		cfg.MaxHP = f.maxHP
	}
	if changed("damage") {
		cfg.InitialDamage = f.damage
	}
	if changed("amount") {
		cfg.AmountPerTick = f.amount
	}
	if changed("interval") {
		cfg.IntervalMs = f.intervalMs
	}
	if changed("timeout") {
		cfg.TimeoutMs = f.timeoutMs
	}
	if changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
}

func runSimulation(cmd *cobra.Command, cfg *config.Config) error {
	appLogger := logger.NewConsole(cmd.ErrOrStderr())
	if err := appLogger.SetLevel(cfg.LogLevel); err != nil {
		appLogger.Warn("Unknown log level " + cfg.LogLevel + ", keeping default")
	}

	hp, err := health.NewPoints(cfg.MaxHP)
	if err != nil {
		return err
	}
	if err := hp.TakeDamage(cfg.InitialDamage); err != nil {
		return err
	}
	appLogger.Event("DAMAGE", "SIM", fmt.Sprintf("took %d, HP now %s", cfg.InitialDamage, hp))

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if timeout := cfg.Timeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	collector := metrics.NewCollector()
	recoverer := engine.NewRecoverer(appLogger, engine.WithMetrics(collector))

	start := time.Now()
	rec, err := recoverer.Start(ctx, hp, cfg.AmountPerTick, cfg.Interval())
	if err != nil {
		return eris.Wrap(err, "failed to start recovery")
	}
	outcome := rec.Wait()

	appLogger.Zerolog().Info().
		Interface("metrics", collector.Snapshot()).
		Msg("recovery metrics")

	fmt.Fprintf(cmd.OutOrStdout(), "outcome=%s hp=%s ticks=%d elapsed=%s\n",
		outcome, hp, rec.Ticks(), time.Since(start).Round(time.Millisecond))
	return nil
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
