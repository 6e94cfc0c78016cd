// Package runner wires the ingestion, evaluation, and GA packages together
// into the single optimisation run cmd/keyboardgen drives, following the
// teacher's pkg/runner.Runner shape (load inputs, build evaluator/GA,
// run with a progress callback, save results) generalised onto the layout
// genome.
package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/layoutforge/qmkevolve/internal/ga"
	"github.com/layoutforge/qmkevolve/internal/kc"
	"github.com/layoutforge/qmkevolve/internal/layout"
	"github.com/layoutforge/qmkevolve/internal/layouteval"
	"github.com/layoutforge/qmkevolve/internal/logging"
	"github.com/layoutforge/qmkevolve/pkg/config"
	"github.com/layoutforge/qmkevolve/pkg/ingest"
)

// defaultSeedLayers is the layer count used to seed a random initial
// population when no --seed-path is given: base, shift, and AltGr, matching
// the three-layer model the board's decorative template assumes.
const defaultSeedLayers = 3

// seedMutationRate is the per-key substitution probability used to diversify
// a --seed-path population, matching ga.DefaultCfg's fixed MutationRate
// default; the evolutionary loop itself always uses the per-generation
// adaptive or configured rate instead.
const seedMutationRate = 0.1

// Result is the value cmd/keyboardgen writes to --output-file, matching the
// §6.2 output schema.
type Result struct {
	Layout          layout.Layout
	Fitness         float64
	GenerationsRun  int
}

// Runner owns one optimisation run's inputs and drives it to completion.
type Runner struct {
	Cfg config.Config
	Log logging.Logger
}

// New returns a Runner over cfg, defaulting to a no-op logger.
func New(cfg config.Config, log logging.Logger) *Runner {
	if log == nil {
		log = logging.NoOp{}
	}

	return &Runner{Cfg: cfg, Log: log}
}

// Run ingests the board/corpus/seed files, builds the evaluator and GA
// engine, and drives the generation loop to completion (or cancellation).
func (r *Runner) Run(ctx context.Context, callback ga.StatsCallback) (Result, error) {
	boardCfg, universe, err := r.loadBoard()
	if err != nil {
		return Result{}, err
	}

	corpus, err := ingest.ParseCorpus(r.Cfg.CorpusPath)
	if err != nil {
		return Result{}, errors.Wrap(err, "runner: loading corpus")
	}

	r.Log.Infof("loaded %d physical events from corpus", len(corpus))

	eval := layouteval.New(boardCfg, corpus, r.Cfg.Constants)

	initial, err := r.initialPopulation(boardCfg, universe)
	if err != nil {
		return Result{}, err
	}

	gaCfg := ga.DefaultCfg(r.Cfg.Constants.PopSize)
	gaCfg.Runs = r.Cfg.Constants.Runs
	gaCfg.ConvergenceStops = r.Cfg.Constants.ConvergenceStops
	gaCfg.ConvergenceTolerance = r.Cfg.Constants.ConvergenceTolerance

	workers := r.Cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	run := ga.Runner{Cfg: gaCfg, Eval: eval, Workers: workers}

	start := time.Now()
	best, generations := run.Run(ctx, initial, callback)

	r.Log.Infof("finished after %d generations in %s, best fitness %.6f",
		generations, time.Since(start).Round(time.Millisecond), best.Fitness)

	return Result{Layout: best.State, Fitness: best.Fitness, GenerationsRun: generations}, nil
}

// EvalLayout scores a single pre-built layout file against the configured
// board and corpus, for --eval-layout.
func (r *Runner) EvalLayout(path string) (float64, error) {
	boardCfg, _, err := r.loadBoard()
	if err != nil {
		return 0, err
	}

	corpus, err := ingest.ParseCorpus(r.Cfg.CorpusPath)
	if err != nil {
		return 0, errors.Wrap(err, "runner: loading corpus")
	}

	l, err := ingest.ParseSeedLayout(path)
	if err != nil {
		return 0, errors.Wrap(err, "runner: loading --eval-layout")
	}

	eval := layouteval.New(boardCfg, corpus, r.Cfg.Constants)

	return eval.Fitness(&l), nil
}

func (r *Runner) loadBoard() (layout.LayoutCfg, []kc.KeySet, error) {
	res, err := ingest.ParseLayoutConfig(r.Cfg.CfgPath)
	if err != nil {
		return layout.LayoutCfg{}, nil, errors.Wrap(err, "runner: loading board config")
	}

	r.Log.Infof("loaded board with %d physical positions", res.Cfg.NumPhysical())

	return res.Cfg, res.Universe, nil
}

func (r *Runner) initialPopulation(cfg layout.LayoutCfg, universe []kc.KeySet) ([]layout.Layout, error) {
	if r.Cfg.SeedPath != "" {
		seed, err := ingest.ParseSeedLayout(r.Cfg.SeedPath)
		if err != nil {
			return nil, errors.Wrap(err, "runner: loading seed layout")
		}

		pop := make([]layout.Layout, r.Cfg.Constants.PopSize)
		for i := range pop {
			if i == 0 {
				pop[i] = seed.Clone()

				continue
			}

			pop[i] = layout.Normalise(
				layouteval.Mutate(seed, cfg, r.Cfg.Constants, seedMutationRate), cfg, r.Cfg.Constants)
		}

		return pop, nil
	}

	pop := make([]layout.Layout, r.Cfg.Constants.PopSize)
	for i := range pop {
		pop[i] = layout.Random(cfg, universe, r.Cfg.Constants, defaultSeedLayers)
	}

	return pop, nil
}

// WriteResult writes res to path as JSON, matching the §6.2 schema.
func WriteResult(path string, res Result) error {
	type layerJSON [][]string

	layers := make([]layerJSON, len(res.Layout.Layers))

	for i, ly := range res.Layout.Layers {
		row := make(layerJSON, len(ly.Keys))
		for j, ks := range ly.Keys {
			members := ks.Members()
			tokens := make([]string, len(members))

			for k, m := range members {
				tokens[k] = m.String()
			}

			row[j] = tokens
		}

		layers[i] = row
	}

	doc := map[string]any{
		"layout":          layers,
		"fitness":         res.Fitness,
		"generations_run": res.GenerationsRun,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("runner: marshaling result: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("runner: writing %q: %w", path, err)
	}

	return nil
}
