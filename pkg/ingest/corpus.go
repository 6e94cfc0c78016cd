package ingest

import (
	"os"

	"github.com/layoutforge/qmkevolve/internal/firmware"
	"github.com/layoutforge/qmkevolve/internal/kc"
	"github.com/pkg/errors"
)

// ParseCorpus reads a UTF-8 text corpus and maps each rune to the physical
// press/release pair the canonical US reference layout assigns it.
func ParseCorpus(path string) ([]kc.PhysEv, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "ingest: reading corpus %q", path)
	}

	events := make([]kc.PhysEv, 0, len(data)*2)

	for _, r := range string(data) {
		k, ok := kc.ByRune(r)
		if !ok {
			continue
		}

		phys := firmware.PhysForKC(k)
		events = append(events, kc.PhysEv{Phys: phys, Press: true})
		events = append(events, kc.PhysEv{Phys: phys, Press: false})
	}

	return events, nil
}
