package network

// Numbered is anything identified by a bus number.
type Numbered interface {
	Number() int
}

// Endpoints is the from/to identity shared by AC and DC branches.
type Endpoints interface {
	FromBus() int
	ToBus() int
}

// DCBus is the reduced bus contract: number, reference flag, net real power (p.u.).
type DCBus interface {
	Numbered
	IsSlack() bool
	MW() float64
}

// DCBranch connects two buses through a scalar susceptance b′.
type DCBranch interface {
	Endpoints
	BPrime() float64
}

// ACBus is the full bus contract used by the Newton solvers.
// Voltage is the magnitude in p.u., Angle is in radians, MW/Mvar are the specified
// injections in p.u. Solvers overwrite MW/Mvar with the calculated injections on exit.
type ACBus interface {
	DCBus

	Voltage() float64
	SetVoltage(v float64)
	Angle() float64
	SetAngle(theta float64)
	SetMW(p float64)
	Mvar() float64
	SetMvar(q float64)
	Susceptance() float64

	IsGeneration() bool
	IsAVR() bool

	// CheckReactiveLimits reports whether mvar lies within the generator limits.
	// When adjust is true a violating bus may clamp its reactive target and
	// release voltage regulation (IsAVR becomes false).
	CheckReactiveLimits(mvar float64, adjust bool) bool
}

// ACBranch connects two buses through a 2×2 complex admittance block:
// [0][0] self (from), [0][1] mutual from→to, [1][0] mutual to→from, [1][1] self (to).
type ACBranch interface {
	Endpoints
	YBus() [2][2]complex128
}

// PowerSystem is a solve snapshot: ordered buses and already energized branches.
// Duplicate bus numbers are undefined behavior.
type PowerSystem[B, L any] interface {
	BusList() []B
	EnergizedBranchList() []L
}

// FlowRecorder is implemented by DC branches that want their computed flow written back.
type FlowRecorder interface {
	SetFlow(mw float64)
}

// ToleranceFollower is implemented by AC buses whose reactive-limit checks should
// use the solver's converge tolerance. Solvers call FollowTolerance before the first
// iteration.
type ToleranceFollower interface {
	FollowTolerance(tol float64)
}
