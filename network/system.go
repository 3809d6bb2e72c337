package network

// System is a slice-backed PowerSystem snapshot.
type System[B, L any] struct {
	Buses    []B
	Branches []L
}

// NewSystem wraps the given slices without copying them.
func NewSystem[B, L any](buses []B, branches []L) *System[B, L] {
	return &System[B, L]{Buses: buses, Branches: branches}
}

// BusList implements PowerSystem.
func (s *System[B, L]) BusList() []B { return s.Buses }

// EnergizedBranchList implements PowerSystem.
func (s *System[B, L]) EnergizedBranchList() []L { return s.Branches }

// ACSystem is the snapshot shape consumed by the Newton solvers.
type ACSystem = PowerSystem[ACBus, ACBranch]

// DCSystem is the snapshot shape consumed by the DC solver.
type DCSystem = PowerSystem[DCBus, DCBranch]
