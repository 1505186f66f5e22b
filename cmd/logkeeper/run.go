package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/raoulx24/logkeeper/internal/config"
	"github.com/raoulx24/logkeeper/internal/logging"
	"github.com/raoulx24/logkeeper/internal/mailbox"
	"github.com/raoulx24/logkeeper/internal/metrics"
	"github.com/raoulx24/logkeeper/internal/runner"
	"github.com/raoulx24/logkeeper/internal/watcher"
)

var (
	runConfigPath  string
	runSimulate    bool
	runRoots       []string
	runSchedule    string
	runMetricsAddr string
)

// runCmd performs one retention pass, or keeps running on a cron schedule
// when --schedule is given.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute a retention run",
	Long: `Execute one synchronous retention run over the configured roots and
exit. With --schedule, stay resident and trigger a run on the given cron
expression instead; config changes are hot-reloaded in that mode.`,
	Run: runHandler,
}

func init() {
	runCmd.Flags().StringVarP(&runConfigPath, "config", "c", "config.yaml", "path to config file")
	runCmd.Flags().BoolVarP(&runSimulate, "simulate", "n", false, "report what would happen without touching any file")
	runCmd.Flags().StringArrayVar(&runRoots, "root", nil, "override configured roots (repeatable)")
	runCmd.Flags().StringVar(&runSchedule, "schedule", "", "cron expression; empty means run once and exit")
	runCmd.Flags().StringVar(&runMetricsAddr, "metrics-addr", "", "listen address for /metrics in scheduled mode")
}

func runHandler(cmd *cobra.Command, args []string) {
	// optional .env for $(VAR) placeholders in the config file
	_ = godotenv.Load()

	cfg, err := config.Load(runConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	applyFlags(cfg)

	if errs := cfg.Validate(); len(errs) > 0 {
		fmt.Fprintln(os.Stderr, "configuration invalid:")
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "  - %v\n", e)
		}
		os.Exit(1)
	}

	logg, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logg.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logg.Info("shutting down...")
		cancel()
	}()

	run := runner.New(cfg, logg, nil)

	if runSchedule == "" {
		sum, err := run.Run(ctx)
		if err != nil {
			logg.Error("run could not start", "error", err)
			os.Exit(1)
		}
		fmt.Print(sum.Render())
		return
	}

	runScheduled(ctx, cfg, logg, run)
}

// applyFlags lets command-line flags override the config file, matching
// the precedence operators expect.
func applyFlags(cfg *config.Config) {
	if runSimulate {
		cfg.Retention.Simulate = true
	}
	if len(runRoots) > 0 {
		cfg.Retention.Roots = runRoots
	}
	if runSchedule != "" {
		cfg.Daemon.Schedule = runSchedule
	}
	if runMetricsAddr != "" {
		cfg.Daemon.MetricsAddr = runMetricsAddr
	}
}

// runScheduled stays resident: cron triggers runs, the mailbox hands each
// summary to the notifier, and the config file is hot-reloaded on change
// or SIGHUP.
func runScheduled(ctx context.Context, cfg *config.Config, logg *logging.ZapLogger, run *runner.Runner) {
	if cfg.Daemon.MetricsAddr != "" {
		m := metrics.New("logkeeper")
		run.WithMetrics(m)

		mux := http.NewServeMux()
		mux.Handle("/metrics", m.Handler())
		go func() {
			if err := http.ListenAndServe(cfg.Daemon.MetricsAddr, mux); err != nil {
				logg.Error("metrics server failed", "error", err)
			}
		}()
		logg.Info("metrics endpoint up", "addr", cfg.Daemon.MetricsAddr)
	}

	// Notifier: delivery is an external concern, the payload is ours.
	mb := mailbox.New[string]()
	go func() {
		for {
			payload := mb.Take()
			logg.Info("run summary ready for notifier")
			fmt.Print(payload)
		}
	}()

	var running atomic.Bool
	c := cron.New()
	_, err := c.AddFunc(cfg.Daemon.Schedule, func() {
		if !running.CompareAndSwap(false, true) {
			logg.Warn("previous run still in progress, skipping this trigger")
			return
		}
		defer running.Store(false)

		sum, err := run.Run(ctx)
		if err != nil {
			logg.Error("run could not start", "error", err)
			return
		}
		mb.Put(sum.Render())
	})
	if err != nil {
		logg.Error("invalid schedule", "schedule", cfg.Daemon.Schedule, "error", err)
		os.Exit(1)
	}
	c.Start()
	defer c.Stop()

	reload := func() {
		newCfg, err := config.Load(runConfigPath)
		if err != nil {
			logg.Error("config reload failed", "error", err)
			return
		}
		applyFlags(newCfg)
		if errs := newCfg.Validate(); len(errs) > 0 {
			logg.Error("reloaded config invalid, keeping previous", "problems", len(errs))
			return
		}
		run.UpdateConfig(newCfg)
		logg.Info("config reloaded")
	}

	// Hot reload on config file change
	watch := watcher.New(runConfigPath, cfg.Daemon.ConfigReload, logg, reload)
	watch.Prime()
	go func() {
		if err := watch.Start(ctx); err != nil {
			logg.Error("config watcher failed", "error", err)
		}
	}()

	// Hot reload on SIGHUP
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGHUP)
		for range sigCh {
			reload()
		}
	}()

	logg.Info("scheduler started", "schedule", cfg.Daemon.Schedule)
	<-ctx.Done()
	logg.Info("exit complete")
}
