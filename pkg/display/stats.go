package display

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	"github.com/layoutforge/qmkevolve/internal/ga"
)

// StatsTable prints one row per generation: best/mean fitness, species
// count, and mean distance, replacing the teacher's ad-hoc fmt.Printf
// stats block with a tablewriter.Table.
type StatsTable struct {
	Out   io.Writer
	table *tablewriter.Table
}

// NewStatsTable returns a StatsTable writing to os.Stdout with its header
// already set.
func NewStatsTable() *StatsTable {
	t := tablewriter.NewWriter(os.Stdout)
	t.SetHeader([]string{"Gen", "Best", "Mean", "Species", "Mean Dist"})
	t.SetAutoWrapText(false)

	return &StatsTable{Out: os.Stdout, table: t}
}

// Add appends one generation's stats as a row.
func (s *StatsTable) Add(generation int, gen ga.EvaluatedGen) {
	s.table.Append([]string{
		humanize.Comma(int64(generation)),
		fmt.Sprintf("%.6f", gen.Best().Fitness),
		fmt.Sprintf("%.6f", gen.MeanFitness()),
		humanize.Comma(int64(gen.NumSpecies())),
		fmt.Sprintf("%.4f", gen.MeanDistance()),
	})
}

// Render flushes the accumulated rows to Out.
func (s *StatsTable) Render() {
	s.table.Render()
}

// PrintRunSummary prints a one-line, human-readable summary of a completed
// run: generations run, wall-clock elapsed, and the best fitness found.
func PrintRunSummary(out io.Writer, generations int, elapsed time.Duration, best float64) {
	fmt.Fprintf(out, "ran %s generations in %s, best fitness %.6f\n",
		humanize.Comma(int64(generations)), elapsed.Round(time.Millisecond), best)
}
