package display

import (
	"bytes"
	"testing"

	"github.com/layoutforge/qmkevolve/internal/kc"
	"github.com/layoutforge/qmkevolve/internal/layout"
)

func TestGroupByRowOrdersByRowID(t *testing.T) {
	rows := groupByRow([]int{1, 0, 1, 0})

	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	if rows[0][0] != 1 || rows[0][1] != 3 {
		t.Fatalf("row 0 positions = %v, want [1 3]", rows[0])
	}
}

func TestPrintLayerDoesNotPanicOnNonTTY(t *testing.T) {
	cfg := layout.LayoutCfg{
		Cost: []uint64{1, 2, 3, 4},
		Row:  []int{0, 0, 1, 1},
	}

	ly := layout.NewLayer(4)
	ly.Keys[0] = kc.NewKeySet(kc.A)

	var buf bytes.Buffer
	b := &Board{Cfg: cfg, Out: &buf, tty: false}
	b.PrintLayer("BASE", ly)

	if buf.Len() == 0 {
		t.Fatalf("PrintLayer wrote nothing")
	}
}

func TestMaxUint64(t *testing.T) {
	if got := maxUint64([]uint64{3, 9, 1}); got != 9 {
		t.Fatalf("maxUint64 = %d, want 9", got)
	}
}
