package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/layoutforge/qmkevolve/internal/ga"
	"github.com/layoutforge/qmkevolve/internal/layout"
	"github.com/layoutforge/qmkevolve/internal/logging"
	"github.com/layoutforge/qmkevolve/internal/runner"
	"github.com/layoutforge/qmkevolve/pkg/config"
	"github.com/layoutforge/qmkevolve/pkg/display"
	"github.com/layoutforge/qmkevolve/pkg/ingest"
)

func main() {
	cfg := parseFlags()

	if cfg.ConfigFile != "" {
		loaded, err := config.LoadFromFile(cfg.ConfigFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		cfg = loaded
	}

	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nReceived interrupt signal, finishing current generation...")
		cancel()
	}()

	if err := run(ctx, cfg); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}

		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() config.Config {
	cfg := config.Default()

	flag.StringVar(&cfg.CfgPath, "cfg-path", cfg.CfgPath, "Path to the layout/board config file")
	flag.StringVar(&cfg.CorpusPath, "corpus-path", cfg.CorpusPath, "Path to the corpus text file")
	flag.StringVar(&cfg.SeedPath, "seed-path", cfg.SeedPath, "Optional path to a seed layout file")
	flag.StringVar(&cfg.EvalLayout, "eval-layout", cfg.EvalLayout, "Evaluate one layout file and exit")
	flag.StringVar(&cfg.ConfigFile, "config", cfg.ConfigFile, "Optional JSON override file")
	flag.StringVar(&cfg.OutputFile, "output-file", cfg.OutputFile, "Path to write the best layout found as JSON")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "Number of parallel workers (0=auto)")
	flag.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "Enable debug-level logging")
	flag.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "text or json")

	flag.IntVar(&cfg.Constants.PopSize, "pop-size", cfg.Constants.PopSize, "Population size")
	flag.IntVar(&cfg.Constants.Runs, "runs", cfg.Constants.Runs, "Generations to run (0=unlimited with convergence)")
	flag.IntVar(&cfg.Constants.BatchSize, "batch-size", cfg.Constants.BatchSize, "Corpus events sampled per fitness round")
	flag.IntVar(&cfg.Constants.BatchNum, "batch-num", cfg.Constants.BatchNum, "Rounds averaged per fitness call")
	flag.IntVar(&cfg.Constants.MaxPhysPressed, "max-phys-pressed", cfg.Constants.MaxPhysPressed, "Max simultaneously pressed physical keys")
	flag.IntVar(&cfg.Constants.MaxPhysIdle, "max-phys-idle", cfg.Constants.MaxPhysIdle, "Max consecutive physical events without an emitted key event")
	flag.IntVar(&cfg.Constants.MaxModPressed, "max-mod-pressed", cfg.Constants.MaxModPressed, "Max simultaneously pressed modifiers")
	flag.IntVar(&cfg.Constants.MaxPhysModPerLayer, "max-phys-mod-per-layer", cfg.Constants.MaxPhysModPerLayer, "Max mod-bearing positions per layer")
	flag.IntVar(&cfg.Constants.MaxPhysDuplicatePerLayer, "max-phys-duplicate-per-layer", cfg.Constants.MaxPhysDuplicatePerLayer, "Max duplicate key-sets per layer")
	flag.IntVar(&cfg.Constants.StatsInterval, "stats-interval", cfg.Constants.StatsInterval, "Generations between detailed stats/board renders")
	flag.IntVar(&cfg.Constants.ConvergenceStops, "convergence-stops", cfg.Constants.ConvergenceStops, "Stop after N generations with unchanged best fitness (0=disabled)")
	flag.Float64Var(&cfg.Constants.ConvergenceTolerance, "convergence-tolerance", cfg.Constants.ConvergenceTolerance, "Fitness difference tolerance for convergence detection")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "keyboardgen - evolves keyboard layouts against a corpus and a board description\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	return cfg
}

func newLogger(cfg config.Config) logging.Logger {
	if cfg.LogFormat == "json" {
		return logging.NewJSONLines(cfg.Verbose)
	}

	return logging.NewText(cfg.Verbose)
}

func run(ctx context.Context, cfg config.Config) error {
	log := newLogger(cfg)
	r := runner.New(cfg, log)

	if cfg.EvalLayout != "" {
		fitness, err := r.EvalLayout(cfg.EvalLayout)
		if err != nil {
			return err
		}

		fmt.Printf("fitness: %.6f\n", fitness)

		return nil
	}

	boardCfg, err := loadBoardForDisplay(cfg)
	if err != nil {
		return err
	}

	board := display.NewBoard(boardCfg)
	table := display.NewStatsTable()

	start := time.Now()

	res, err := r.Run(ctx, func(generation int, gen ga.EvaluatedGen) {
		table.Add(generation, gen)

		if cfg.Constants.StatsInterval > 0 && generation%cfg.Constants.StatsInterval == 0 {
			best := gen.Best().State
			for i, ly := range best.Layers {
				board.PrintLayer(fmt.Sprintf("generation %d, layer %d", generation, i), ly)
			}
		}
	})
	if err != nil {
		return err
	}

	table.Render()
	display.PrintRunSummary(os.Stdout, res.GenerationsRun, time.Since(start), res.Fitness)

	for i, ly := range res.Layout.Layers {
		board.PrintLayer(fmt.Sprintf("best layout, layer %d", i), ly)
	}

	if cfg.OutputFile != "" {
		if err := runner.WriteResult(cfg.OutputFile, res); err != nil {
			return err
		}

		fmt.Printf("layout saved to: %s\n", cfg.OutputFile)
	}

	return nil
}

func loadBoardForDisplay(cfg config.Config) (layout.LayoutCfg, error) {
	res, err := ingest.ParseLayoutConfig(cfg.CfgPath)
	if err != nil {
		return layout.LayoutCfg{}, err
	}

	return res.Cfg, nil
}
