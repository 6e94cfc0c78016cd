package runner

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/layoutforge/qmkevolve/internal/kc"
	"github.com/layoutforge/qmkevolve/internal/layout"
	"github.com/layoutforge/qmkevolve/internal/logging"
	"github.com/layoutforge/qmkevolve/pkg/config"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func repeat(s string, n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += s
	}

	return out
}

func boardFixture(t *testing.T) string {
	t.Helper()

	return writeTemp(t, "board.txt", "layout\nXX\nkeys\nKC_A KC_B\nfixed\nunigram_cost\n1 1\nbigram_cost\n"+
		repeat("0 ", 80)+"\nrow\n0 0\nhand\n0 0\nfinger\n0 0\n")
}

func corpusFixture(t *testing.T) string {
	t.Helper()

	return writeTemp(t, "corpus.txt", "aabb")
}

// TestWriteResultMatchesOutputSchema pins the §6.2 JSON document shape: a
// layout rendered as a list of layers, each a list of per-position KC token
// lists, plus the fitness and generation count.
func TestWriteResultMatchesOutputSchema(t *testing.T) {
	res := Result{
		Layout: layout.Layout{
			Layers: []layout.Layer{{Keys: []kc.KeySet{kc.NewKeySet(kc.A), kc.NewKeySet(kc.B, kc.Shift)}}},
		},
		Fitness:        1234.5,
		GenerationsRun: 57,
	}

	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, WriteResult(path, res))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc struct {
		Layout         [][][]string `json:"layout"`
		Fitness        float64      `json:"fitness"`
		GenerationsRun int          `json:"generations_run"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))

	require.Equal(t, 1234.5, doc.Fitness)
	require.Equal(t, 57, doc.GenerationsRun)
	require.Len(t, doc.Layout, 1)
	require.Equal(t, []string{"KC_A"}, doc.Layout[0][0])
	require.ElementsMatch(t, []string{"KC_B", "KC_LSHIFT"}, doc.Layout[0][1])
}

func TestInitialPopulationWithoutSeedFillsPopSize(t *testing.T) {
	cfg := config.Default()
	cfg.CfgPath = boardFixture(t)
	cfg.CorpusPath = corpusFixture(t)
	cfg.Constants.PopSize = 4

	r := New(cfg, logging.NoOp{})

	boardCfg, universe, err := r.loadBoard()
	require.NoError(t, err)

	pop, err := r.initialPopulation(boardCfg, universe)
	require.NoError(t, err)
	require.Len(t, pop, 4)

	for _, l := range pop {
		require.Equal(t, boardCfg.NumPhysical(), l.NumPhysical())
	}
}

func TestInitialPopulationWithSeedClonesSeedAsFirstMember(t *testing.T) {
	cfg := config.Default()
	cfg.CfgPath = boardFixture(t)
	cfg.CorpusPath = corpusFixture(t)
	cfg.Constants.PopSize = 3
	cfg.SeedPath = writeTemp(t, "seed.txt", "KC_A KC_B\n")

	r := New(cfg, logging.NoOp{})

	boardCfg, universe, err := r.loadBoard()
	require.NoError(t, err)

	pop, err := r.initialPopulation(boardCfg, universe)
	require.NoError(t, err)
	require.Len(t, pop, 3)
	require.Equal(t, kc.NewKeySet(kc.A), pop[0].Layers[0].Keys[0])
}

func TestEvalLayoutScoresAgainstConfiguredCorpus(t *testing.T) {
	cfg := config.Default()
	cfg.CfgPath = boardFixture(t)
	cfg.CorpusPath = corpusFixture(t)

	r := New(cfg, logging.NoOp{})

	seedPath := writeTemp(t, "seed.txt", "KC_A KC_B\n")

	fitness, err := r.EvalLayout(seedPath)
	require.NoError(t, err)
	require.GreaterOrEqual(t, fitness, 0.0)
}
