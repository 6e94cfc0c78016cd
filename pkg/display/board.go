// Package display renders a Layout as a box-drawing board and prints
// per-generation statistics tables, grounded on the teacher's
// pkg/display/keyboard.go box-drawing idiom but rewired onto the
// internal/layout genome and onto a real terminal-rendering stack instead
// of raw ANSI escapes.
package display

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"

	"github.com/layoutforge/qmkevolve/internal/layout"
)

// Board renders Layout values against a fixed LayoutCfg (row grouping,
// per-key cost). The decorative Template is not used.
type Board struct {
	Cfg     layout.LayoutCfg
	Out     io.Writer
	profile termenv.Profile
	tty     bool
}

// NewBoard returns a Board writing to os.Stdout, auto-detecting colour
// support via go-isatty/termenv so redirected output stays plain text.
func NewBoard(cfg layout.LayoutCfg) *Board {
	tty := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

	profile := termenv.Ascii
	if tty {
		profile = termenv.ColorProfile()
	}

	return &Board{Cfg: cfg, Out: os.Stdout, profile: profile, tty: tty}
}

// PrintLayer renders one layer of l as a grid of boxes grouped by row,
// heat-mapped by per-key cost using go-colorful when colour is available.
func (b *Board) PrintLayer(name string, l layout.Layer) {
	fmt.Fprintf(b.Out, "\n%s\n", b.heading(name))

	rows := groupByRow(b.Cfg.Row)
	maxCost := maxUint64(b.Cfg.Cost)

	for _, positions := range rows {
		b.printBorder(len(positions), '┌', '┬', '┐')
		b.printCells(positions, l, maxCost)
		b.printBorder(len(positions), '└', '┴', '┘')
	}
}

func (b *Board) printBorder(n int, left, mid, right rune) {
	fmt.Fprintf(b.Out, "%c", left)

	for i := 0; i < n; i++ {
		fmt.Fprint(b.Out, "─────────")

		if i < n-1 {
			fmt.Fprintf(b.Out, "%c", mid)
		}
	}

	fmt.Fprintf(b.Out, "%c\n", right)
}

func (b *Board) printCells(positions []int, l layout.Layer, maxCost uint64) {
	fmt.Fprint(b.Out, "│")

	for _, pos := range positions {
		label := "    "
		if pos < len(l.Keys) {
			label = l.Keys[pos].String()
		}

		fmt.Fprintf(b.Out, "%s│", b.colorCell(label, costAt(b.Cfg, pos), maxCost))
	}

	fmt.Fprintln(b.Out)
}

// colorCell pads label to a fixed visual width (accounting for wide runes
// via go-runewidth) and, on a colour-capable terminal, tints the cell along
// a cost heat map from go-colorful.
func (b *Board) colorCell(label string, cost, maxCost uint64) string {
	width := runewidth.StringWidth(label)
	pad := 9 - width
	if pad < 0 {
		pad = 0
	}

	padded := fmt.Sprintf(" %s%s", label, spaces(pad-1))

	if !b.tty || maxCost == 0 {
		return padded
	}

	t := float64(cost) / float64(maxCost)
	heat := colorful.Hsv(120*(1-t), 0.6, 0.9) // green (cheap) to red (expensive)

	return termenv.String(padded).Background(b.profile.Color(heat.Hex())).String()
}

func (b *Board) heading(name string) string {
	if !b.tty {
		return name
	}

	return termenv.String(name).Bold().Foreground(b.profile.Color("#5FD7FF")).String()
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}

	out := make([]byte, n)
	for i := range out {
		out[i] = ' '
	}

	return string(out)
}

func groupByRow(rowOf []int) [][]int {
	byRow := map[int][]int{}

	rowIDs := make([]int, 0)
	for pos, row := range rowOf {
		if _, ok := byRow[row]; !ok {
			rowIDs = append(rowIDs, row)
		}

		byRow[row] = append(byRow[row], pos)
	}

	sort.Ints(rowIDs)

	out := make([][]int, len(rowIDs))
	for i, r := range rowIDs {
		out[i] = byRow[r]
	}

	return out
}

func costAt(cfg layout.LayoutCfg, pos int) uint64 {
	if pos < 0 || pos >= len(cfg.Cost) {
		return 0
	}

	return cfg.Cost[pos]
}

func maxUint64(vs []uint64) uint64 {
	var m uint64
	for _, v := range vs {
		if v > m {
			m = v
		}
	}

	return m
}
