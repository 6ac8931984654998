// Command cyclebench runs a synthetic sticky-backend workload against
// independent Cycle instances and exposes optional pprof/Prometheus endpoints.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	_ "net/http/pprof" // registers /debug/pprof/* on DefaultServeMux
	"os"
	"os/signal"
	"strconv"
	"time"

	pmet "github.com/IvanBrykalov/doublecycle/metrics/prom"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := defaultConfig()
	var cfgPath string

	cmd := &cobra.Command{
		Use:          "cyclebench",
		Short:        "Benchmark round-robin king/queen cycling under client and backend churn",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cfgPath != "" {
				if err := applyConfigFile(cmd.Flags(), cfgPath, &cfg); err != nil {
					return err
				}
			}
			if err := cfg.validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}
			return run(cmd.Context(), cfg)
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfgPath, "config", "", "YAML workload file; flags override its values")
	f.IntVar(&cfg.Clients, "clients", cfg.Clients, "client (king) keyspace size")
	f.IntVar(&cfg.Backends, "backends", cfg.Backends, "backend (queen) keyspace size")
	f.IntVar(&cfg.PerClient, "per-client", cfg.PerClient, "backends assigned to a client on a miss")
	f.IntVar(&cfg.Workers, "workers", cfg.Workers, "number of workers, each with its own Cycle")
	f.DurationVar(&cfg.Duration, "duration", cfg.Duration, "benchmark duration")
	f.IntVar(&cfg.ReadPct, "reads", cfg.ReadPct, "read percentage [0..100]; the rest is churn")
	f.Float64Var(&cfg.ZipfS, "zipf-s", cfg.ZipfS, "Zipf s > 1 (client skew)")
	f.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed")
	f.StringVar(&cfg.HTTPAddr, "http", cfg.HTTPAddr, "serve Prometheus metrics at addr; empty = disabled")
	f.StringVar(&cfg.PprofAddr, "pprof", cfg.PprofAddr, "serve pprof at addr (e.g. :6060); empty = disabled")
	f.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug | info | warn | error")
	return cmd
}

// applyConfigFile loads path over cfg and then re-applies every flag that
// was set explicitly, so the command line wins.
func applyConfigFile(fs *pflag.FlagSet, path string, cfg *Config) error {
	explicit := map[string]string{}
	fs.Visit(func(fl *pflag.Flag) { explicit[fl.Name] = fl.Value.String() })

	if err := loadConfig(path, cfg); err != nil {
		return err
	}
	for name, val := range explicit {
		if err := fs.Set(name, val); err != nil {
			return fmt.Errorf("flag --%s: %w", name, err)
		}
	}
	return nil
}

func run(ctx context.Context, cfg Config) error {
	lvl, _ := cfg.level()
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))

	// ---- pprof server (on DefaultServeMux) ----
	if cfg.PprofAddr != "" {
		go func() {
			log.Info("pprof: serving", "addr", cfg.PprofAddr)
			log.Error("pprof server stopped", "err", http.ListenAndServe(cfg.PprofAddr, nil))
		}()
	}

	// ---- Prometheus metrics ----
	if cfg.HTTPAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		srv := &http.Server{Addr: cfg.HTTPAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			log.Info("metrics: serving", "addr", cfg.HTTPAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("metrics server stopped", "err", err)
			}
		}()
		defer func() { _ = srv.Close() }()
	}

	// ---- Load generation: one Cycle per worker ----
	ctx, cancel := context.WithTimeout(ctx, cfg.Duration)
	defer cancel()

	log.Info("starting", "workers", cfg.Workers, "clients", cfg.Clients,
		"backends", cfg.Backends, "per_client", cfg.PerClient, "seed", cfg.Seed)

	results := make([]result, cfg.Workers)
	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < cfg.Workers; w++ {
		m := pmet.New(nil, "doublecycle", "bench", prometheus.Labels{"worker": strconv.Itoa(w)})
		g.Go(func() error {
			results[w] = runWorker(gctx, w, cfg, m)
			log.Debug("worker done", "worker", w, "ops", results[w].ops)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("workers: %w", err)
	}
	elapsed := time.Since(start)

	// ---- Report ----
	total := merge(results)
	hitRate := 0.0
	if reads := total.hits + total.misses; reads > 0 {
		hitRate = float64(total.hits) / float64(reads) * 100
	}
	lo, hi := spread(total.served)

	fmt.Printf("workers=%d clients=%d backends=%d per-client=%d dur=%v seed=%d\n",
		cfg.Workers, cfg.Clients, cfg.Backends, cfg.PerClient, elapsed, cfg.Seed)
	fmt.Printf("ops=%d (%.0f ops/s)  hits=%d  misses=%d  hit-rate=%.2f%%\n",
		total.ops, float64(total.ops)/elapsed.Seconds(), total.hits, total.misses, hitRate)
	fmt.Printf("drains=%d  leaves=%d  removed-entries=%d  resident=%d\n",
		total.drains, total.leaves, total.removed, total.entries)
	fmt.Printf("served per backend: min=%d max=%d\n", lo, hi)
	return nil
}
