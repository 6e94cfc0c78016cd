package layout

import "github.com/layoutforge/qmkevolve/internal/kc"

// LayoutCfg is the immutable description of the physical board: per-key
// typing cost, the finger and hand that strikes each position, a
// decorative template string used only for rendering, and which physical
// positions are permanently fixed.
//
// Fixed is parallel to Cost/Row/Hand/Finger, one entry per physical
// position: an empty KeySet means the position is free for the GA to
// assign; any other KeySet is the value that position must carry on every
// layer, and no GA operator may change it.
type LayoutCfg struct {
	Cost     []uint64
	Finger   []Finger
	Hand     []Hand
	Row      []int
	Fixed    []kc.KeySet
	Template string
}

// NumPhysical returns the number of physical positions described by cfg.
func (cfg LayoutCfg) NumPhysical() int {
	return len(cfg.Cost)
}

// Constants holds every tunable limit consumed by the state machines and
// the GA engine. See SPEC_FULL.md §6.1 for the default values the CLI and
// config package fall back to.
type Constants struct {
	PopSize int
	Runs    int

	BatchSize int
	BatchNum  int

	MaxPhysPressed int
	MaxPhysIdle    int
	MaxModPressed  int

	MaxPhysModPerLayer       int
	MaxPhysDuplicatePerLayer int

	NumRegAssignedWeights []float64
	NumModAssignedWeights []float64
	CrossoverStratWeights []float64
	MutateStratWeights    []float64

	StatsInterval        int
	ConvergenceStops      int
	ConvergenceTolerance float64
}

// EP is the tolerance used by speciation's binary search and by adaptive
// operator-rate clamping.
const EP = 1e-6

// DefaultConstants returns the defaults documented in SPEC_FULL.md §6.1.
func DefaultConstants() Constants {
	return Constants{
		PopSize:                  100,
		Runs:                     100,
		BatchSize:                100,
		BatchNum:                 10,
		MaxPhysPressed:           4,
		MaxPhysIdle:              4,
		MaxModPressed:            1,
		MaxPhysModPerLayer:       20,
		MaxPhysDuplicatePerLayer: 2,
		NumRegAssignedWeights:    []float64{30, 70},
		NumModAssignedWeights:    []float64{70, 4, 4, 2, 2},
		CrossoverStratWeights:    []float64{0, 1, 10},
		MutateStratWeights:       []float64{0, 10, 1, 20},
		StatsInterval:            10,
		ConvergenceStops:         0,
		ConvergenceTolerance:     1e-6,
	}
}
