package ingest

import (
	"bufio"
	"os"
	"strings"

	"github.com/layoutforge/qmkevolve/internal/kc"
	"github.com/layoutforge/qmkevolve/internal/layout"
	"github.com/pkg/errors"
)

// ParseSeedLayout reads a blank-line-separated set of layer groups, each a
// whitespace-separated list of keycode tokens, into a seed layout. All
// layers must agree on physical position count.
func ParseSeedLayout(path string) (layout.Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return layout.Layout{}, errors.Wrapf(err, "ingest: opening seed layout %q", path)
	}
	defer f.Close()

	var (
		layers  []layout.Layer
		current []kc.KeySet
	)

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()

		if strings.TrimSpace(line) == "" {
			if len(current) > 0 {
				layers = append(layers, layout.Layer{Keys: current})
				current = nil
			}

			continue
		}

		for _, tok := range strings.Fields(line) {
			k, ok := kc.ByName(tok)
			if !ok {
				return layout.Layout{}, errors.Errorf("ingest: seed layout %q: unknown keycode %q", path, tok)
			}

			current = append(current, kc.NewKeySet(k))
		}
	}

	if err := scanner.Err(); err != nil {
		return layout.Layout{}, errors.Wrapf(err, "ingest: reading seed layout %q", path)
	}

	if len(current) > 0 {
		layers = append(layers, layout.Layer{Keys: current})
	}

	if len(layers) == 0 {
		return layout.Layout{}, errors.Errorf("ingest: seed layout %q: no layers found", path)
	}

	n := len(layers[0].Keys)

	for i, l := range layers {
		if len(l.Keys) != n {
			return layout.Layout{}, errors.Errorf(
				"ingest: seed layout %q: layer %d has %d positions, want %d", path, i, len(l.Keys), n)
		}
	}

	return layout.Layout{Layers: layers}, nil
}
