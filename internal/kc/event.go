package kc

// PhysEv is a press or release of one physical keyboard position.
type PhysEv struct {
	Phys  uint32
	Press bool
}

// KeyEv is a press or release of a logical key set, the canonical output
// of both the firmware and reference state machines.
type KeyEv struct {
	Key   KeySet
	Press bool
}
