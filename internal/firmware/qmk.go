package firmware

import "github.com/layoutforge/qmkevolve/internal/layout"

// QmkModel is the firmware state machine for a candidate layout: it is the
// Model the path finder drives while searching for a minimum-cost physical
// event sequence.
type QmkModel = Model

// NewQmk builds a QmkModel bound to l.
func NewQmk(l *layout.Layout, cnst layout.Constants) *QmkModel {
	return New(l, cnst)
}
