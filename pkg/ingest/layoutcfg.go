// Package ingest parses the three file formats the driver consumes: the
// layout/board config, the corpus, and an optional seed layout. Grounded on
// original_source/src/ingest.rs's section-state-machine parser, rebuilt in
// the teacher's pkg/parser error-wrapping idiom.
package ingest

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/layoutforge/qmkevolve/internal/kc"
	"github.com/layoutforge/qmkevolve/internal/layout"
	"github.com/pkg/errors"
)

type section int

const (
	sectionLayout section = iota
	sectionKeys
	sectionFixed
	sectionUnigramCost
	sectionBigramCost
	sectionRow
	sectionHand
	sectionFinger
)

// numBigramCost is the fixed [4][4][5] (prev-finger x cur-finger x row-jump)
// bigram cost table size the layout config's bigram_cost section must supply.
const numBigramCost = 4 * 4 * 5

// freeToken marks a physical position as free (not fixed) in the `fixed`
// section, since the keycode enumeration has no "none" member of its own.
const freeToken = "_"

// LayoutConfigResult is everything ParseLayoutConfig extracts from a board
// config file: the board description (fixed positions in Cfg.Fixed), the
// key universe, and the unigram/bigram cost tables.
type LayoutConfigResult struct {
	Cfg         layout.LayoutCfg
	Universe    []kc.KeySet
	UnigramCost []float64
	BigramCost  [4][4][5]float64
}

// ParseLayoutConfig reads a layout/board config file: a `layout` header
// section holding a decorative template, then whitespace-separated
// `keys`/`fixed`/`unigram_cost`/`bigram_cost`/`row`/`hand`/`finger` sections.
func ParseLayoutConfig(path string) (LayoutConfigResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return LayoutConfigResult{}, errors.Wrapf(err, "ingest: opening layout config %q", path)
	}
	defer f.Close()

	var (
		state       = sectionLayout
		template    strings.Builder
		keys        []kc.KeySet
		fixed       []kc.KeySet
		unigramCost []float64
		bigramCost  [4][4][5]float64
		bigramIdx   int
		row         []int
		hand        []layout.Hand
		finger      []layout.Finger
	)

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()

		if newState, ok := sectionHeader(line); ok {
			state = newState

			continue
		}

		if state == sectionLayout {
			template.WriteString(line)
			template.WriteByte('\n')

			continue
		}

		for _, tok := range strings.Fields(line) {
			var err error

			switch state {
			case sectionKeys:
				var k kc.KC

				k, err = parseKC(tok, path)
				if err == nil {
					keys = append(keys, kc.NewKeySet(k))
				}
			case sectionFixed:
				if tok == freeToken {
					fixed = append(fixed, kc.KeySet{})

					continue
				}

				var k kc.KC

				k, err = parseKC(tok, path)
				if err == nil {
					fixed = append(fixed, kc.NewKeySet(k))
				}
			case sectionUnigramCost:
				var v float64

				v, err = parseFloat(tok, path)
				unigramCost = append(unigramCost, v)
			case sectionBigramCost:
				var v float64

				v, err = parseFloat(tok, path)
				if err == nil {
					bigramCost[bigramIdx/5/4][bigramIdx/5%4][bigramIdx%5] = v
					bigramIdx++
				}
			case sectionRow:
				var v int

				v, err = parseInt(tok, path)
				row = append(row, v)
			case sectionHand:
				var v int

				v, err = parseInt(tok, path)
				hand = append(hand, layout.Hand(v))
			case sectionFinger:
				var v int

				v, err = parseInt(tok, path)
				finger = append(finger, layout.Finger(v))
			}

			if err != nil {
				return LayoutConfigResult{}, err
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return LayoutConfigResult{}, errors.Wrapf(err, "ingest: reading layout config %q", path)
	}

	if bigramIdx != numBigramCost {
		return LayoutConfigResult{}, errors.Errorf(
			"ingest: layout config %q: bigram_cost has %d values, want %d", path, bigramIdx, numBigramCost)
	}

	if len(fixed) > 0 && len(fixed) != len(keys) {
		return LayoutConfigResult{}, errors.Errorf(
			"ingest: layout config %q: fixed has %d values, want %d (one per physical position, %q for free)",
			path, len(fixed), len(keys), freeToken)
	}

	costs := make([]uint64, len(keys))
	for i, u := range unigramCost {
		if i < len(costs) {
			costs[i] = uint64(u)
		}
	}

	cfg := layout.LayoutCfg{
		Cost:     costs,
		Finger:   finger,
		Hand:     hand,
		Row:      row,
		Fixed:    fixed,
		Template: template.String(),
	}

	return LayoutConfigResult{
		Cfg:         cfg,
		Universe:    keys,
		UnigramCost: unigramCost,
		BigramCost:  bigramCost,
	}, nil
}

func sectionHeader(line string) (section, bool) {
	switch {
	case strings.HasPrefix(line, "layout"):
		return sectionLayout, true
	case strings.HasPrefix(line, "keys"):
		return sectionKeys, true
	case strings.HasPrefix(line, "fixed"):
		return sectionFixed, true
	case strings.HasPrefix(line, "unigram_cost"):
		return sectionUnigramCost, true
	case strings.HasPrefix(line, "bigram_cost"):
		return sectionBigramCost, true
	case strings.HasPrefix(line, "row"):
		return sectionRow, true
	case strings.HasPrefix(line, "hand"):
		return sectionHand, true
	case strings.HasPrefix(line, "finger"):
		return sectionFinger, true
	default:
		return 0, false
	}
}

func parseKC(tok, path string) (kc.KC, error) {
	k, ok := kc.ByName(tok)
	if !ok {
		return 0, errors.Errorf("ingest: layout config %q: unknown keycode %q", path, tok)
	}

	return k, nil
}

func parseFloat(tok, path string) (float64, error) {
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "ingest: layout config %q: bad number %q", path, tok)
	}

	return v, nil
}

func parseInt(tok, path string) (int, error) {
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, errors.Wrapf(err, "ingest: layout config %q: bad integer %q", path, tok)
	}

	return v, nil
}
