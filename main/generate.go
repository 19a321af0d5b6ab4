package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/yourusername/go-graph-bench/benchmark"
	"github.com/yourusername/go-graph-bench/config"
	"github.com/yourusername/go-graph-bench/datagen"
)

var (
	genFlags    config.GenConfig
	dryRun      bool
	explain     bool
	freshCSV    bool
	metricsAddr string
	topN        int
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a graph and load it into Postgres",
	Long: `Generate the adjacency of every source node and upsert it into the
graph_adjacency table in batches. Flush timings are appended to a CSV file and
the run is recorded in generation_runs.

Examples:
  graphgen generate --distribution pareto --avg-degree 40 --edge-label Clients
  graphgen generate --dry-run --sources 100 --dest-size 1000`,
	RunE: runGenerate,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Generate a graph in memory and print degree statistics",
	RunE:  runStats,
}

func init() {
	for _, cmd := range []*cobra.Command{generateCmd, statsCmd} {
		f := cmd.Flags()
		f.Int64Var(&genFlags.Sources, "sources", 0, "number of source nodes")
		f.Int64Var(&genFlags.DestSize, "dest-size", 0, "size of the destination id space")
		f.Float64Var(&genFlags.AvgDegree, "avg-degree", 0, "average out-degree")
		f.IntVar(&genFlags.MaxDegree, "max-degree", 0, "out-degree cap (pareto)")
		f.StringVar(&genFlags.Distribution, "distribution", "", "uniform or pareto")
		f.StringVar(&genFlags.EdgeLabel, "edge-label", "", "Colleagues, Manager, Clients or ClientColleagues")
		f.Int64Var(&genFlags.Seed, "seed", 0, "random seed (0 picks one from the clock)")
		f.IntVar(&genFlags.StringLength, "string-length", 0, "label length on attributed edges")
	}
	f := generateCmd.Flags()
	f.IntVar(&genFlags.BatchSize, "batch-size", 0, "rows per upsert")
	f.StringVar(&genFlags.ResultsCSV, "results-csv", "", "flush timing CSV path")
	f.BoolVar(&dryRun, "dry-run", false, "write to an in-memory graph instead of Postgres")
	f.BoolVar(&explain, "explain", false, "record EXPLAIN plans for each flush")
	f.BoolVar(&freshCSV, "fresh-csv", false, "truncate the timing CSV before writing")
	f.StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	statsCmd.Flags().IntVar(&topN, "top", 10, "number of most referenced targets to print")
}

// loadGenConfig reads the environment and applies any flags that were set.
func loadGenConfig(cmd *cobra.Command) (config.GenConfig, error) {
	cfg, err := config.LoadGenConfig()
	if err != nil {
		return cfg, err
	}
	f := cmd.Flags()
	if f.Changed("sources") {
		cfg.Sources = genFlags.Sources
	}
	if f.Changed("dest-size") {
		cfg.DestSize = genFlags.DestSize
	}
	if f.Changed("avg-degree") {
		cfg.AvgDegree = genFlags.AvgDegree
	}
	if f.Changed("max-degree") {
		cfg.MaxDegree = genFlags.MaxDegree
	}
	if f.Changed("distribution") {
		cfg.Distribution = genFlags.Distribution
	}
	if f.Changed("edge-label") {
		cfg.EdgeLabel = genFlags.EdgeLabel
	}
	if f.Changed("seed") {
		cfg.Seed = genFlags.Seed
	}
	if f.Changed("string-length") {
		cfg.StringLength = genFlags.StringLength
	}
	if f.Changed("batch-size") {
		cfg.BatchSize = genFlags.BatchSize
	}
	if f.Changed("results-csv") {
		cfg.ResultsCSV = genFlags.ResultsCSV
	}
	if cfg.Seed == 0 {
		cfg.Seed = clockSeed()
	}
	return cfg, cfg.Validate()
}

func clockSeed() int64 {
	return time.Now().UnixNano()
}

func newGenerator(cfg config.GenConfig) (*datagen.Generator, benchmark.RunPlan, error) {
	dist, err := cfg.BuildDistribution()
	if err != nil {
		return nil, benchmark.RunPlan{}, err
	}
	gen, err := datagen.NewGenerator(dist, datagen.Options{Seed: cfg.Seed, StringLength: cfg.StringLength})
	if err != nil {
		return nil, benchmark.RunPlan{}, err
	}
	plan, err := benchmark.NewRunPlan(cfg.EdgeLabel, cfg.Sources, cfg.DestSize)
	return gen, plan, err
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadGenConfig(cmd)
	if err != nil {
		return err
	}
	gen, plan, err := newGenerator(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if metricsAddr != "" {
		srv := &http.Server{Addr: metricsAddr, Handler: promhttp.Handler()}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Str("address", metricsAddr).Msg("metrics server stopped")
			}
		}()
		defer srv.Close()
	}

	log.Info().Int64("seed", cfg.Seed).Msg("configuration loaded")

	if dryRun {
		sink := benchmark.NewMemorySink()
		_, err := benchmark.Run(ctx, gen, sink, plan, log.Logger)
		return err
	}

	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		return err
	}
	db, err := config.ConnectDB(dbCfg)
	if err != nil {
		return err
	}
	if err := config.Migrate(db); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	var opts []benchmark.GormSinkOption
	if explain {
		opts = append(opts, benchmark.WithExplain())
	}
	sink := benchmark.NewGormSink(db, cfg.BatchSize, opts...)
	stats, err := benchmark.Run(ctx, gen, sink, plan, log.Logger)
	if err != nil {
		return err
	}

	rep := benchmark.SummarizeTimings(sink.Timings())
	if err := benchmark.WriteCSV(rep, cfg.ResultsCSV, freshCSV); err != nil {
		log.Warn().Err(err).Str("path", cfg.ResultsCSV).Msg("could not write timing CSV")
	}
	log.Info().
		Int("rows", rep.Records).
		Dur("p50", rep.P50).
		Dur("p99", rep.P99).
		Dur("max", rep.Max).
		Msg("load timings")

	run, err := benchmark.RecordRun(ctx, db, gen.Distribution().Name(), plan.EdgeLabel, cfg.Seed, benchmark.RunParams{
		AvgDegree:    cfg.AvgDegree,
		MaxDegree:    cfg.MaxDegree,
		Sources:      cfg.Sources,
		DestSize:     cfg.DestSize,
		StringLength: cfg.StringLength,
		BatchSize:    cfg.BatchSize,
	}, stats)
	if err != nil {
		return err
	}
	log.Info().Str("run_id", run.ID.String()).Msg("run recorded")
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadGenConfig(cmd)
	if err != nil {
		return err
	}
	gen, plan, err := newGenerator(cfg)
	if err != nil {
		return err
	}

	sink := benchmark.NewMemorySink()
	stats, err := benchmark.Run(cmd.Context(), gen, sink, plan, log.Logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "distribution: %s  seed: %d\n", gen.Distribution().Name(), cfg.Seed)
	fmt.Fprintf(out, "nodes: %d  edges: %d  dropped: %d\n", stats.Nodes, stats.Edges, stats.Dropped)
	fmt.Fprintf(out, "out-degree mean: %.2f  variance: %.2f  max: %d\n", stats.MeanOutDegree, stats.OutDegreeVariance, stats.MaxOutDegree)
	fmt.Fprintf(out, "top %d targets by in-degree:\n", topN)
	for _, tc := range sink.TopTargets(plan.EdgeLabel, topN) {
		fmt.Fprintf(out, "  %d: %d\n", tc.ID, tc.InDegree)
	}
	return nil
}
