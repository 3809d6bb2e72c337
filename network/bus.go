package network

import "math"

// DefaultReactiveTolerance is the slack allowed around generator reactive limits
// when neither GeneratorBus.Tolerance nor a solver tolerance is set.
const DefaultReactiveTolerance = 1e-6

// Node carries the electrical state common to every reference bus.
type Node struct {
	ID    int     // bus number
	V     float64 // voltage magnitude, p.u.
	Theta float64 // voltage angle, rad
	P     float64 // real injection, p.u. (generation positive, load negative)
	Q     float64 // reactive injection, p.u.
	Shunt float64 // shunt susceptance, p.u.
}

func (n *Node) Number() int            { return n.ID }
func (n *Node) Voltage() float64       { return n.V }
func (n *Node) SetVoltage(v float64)   { n.V = v }
func (n *Node) Angle() float64         { return n.Theta }
func (n *Node) SetAngle(theta float64) { n.Theta = theta }
func (n *Node) MW() float64            { return n.P }
func (n *Node) SetMW(p float64)        { n.P = p }
func (n *Node) Mvar() float64          { return n.Q }
func (n *Node) SetMvar(q float64)      { n.Q = q }
func (n *Node) Susceptance() float64   { return n.Shunt }

// LoadBus is a PQ bus: both injections are specified, V and θ float.
type LoadBus struct {
	Node
}

var _ ACBus = (*LoadBus)(nil)

// NewLoadBus returns a flat-start (1 p.u., 0 rad) load bus.
func NewLoadBus(id int, p, q float64) *LoadBus {
	return &LoadBus{Node: Node{ID: id, V: 1, P: p, Q: q}}
}

func (b *LoadBus) IsSlack() bool                          { return false }
func (b *LoadBus) IsGeneration() bool                     { return false }
func (b *LoadBus) IsAVR() bool                            { return false }
func (b *LoadBus) CheckReactiveLimits(float64, bool) bool { return true }

// GeneratorBus is a PV bus regulating its voltage while the reactive output stays
// inside [QMin, QMax]. A violation observed with adjust=true clamps Q to the
// violated limit and releases regulation; from then on the bus behaves as PQ.
type GeneratorBus struct {
	Node
	QMin, QMax float64
	// Tolerance bounds the limit checks. Zero follows the solver's converge
	// tolerance, falling back to DefaultReactiveTolerance.
	Tolerance float64

	followed float64
	released bool
}

var (
	_ ACBus             = (*GeneratorBus)(nil)
	_ ToleranceFollower = (*GeneratorBus)(nil)
)

// NewGeneratorBus returns a regulating generator at voltage setpoint v.
func NewGeneratorBus(id int, p, v, qmin, qmax float64) *GeneratorBus {
	return &GeneratorBus{Node: Node{ID: id, V: v, P: p}, QMin: qmin, QMax: qmax}
}

func (g *GeneratorBus) IsSlack() bool      { return false }
func (g *GeneratorBus) IsGeneration() bool { return true }
func (g *GeneratorBus) IsAVR() bool        { return !g.released }

// Released reports whether the bus hit a limit and stopped regulating.
func (g *GeneratorBus) Released() bool { return g.released }

// FollowTolerance implements ToleranceFollower. It has no effect while Tolerance is set.
func (g *GeneratorBus) FollowTolerance(tol float64) { g.followed = tol }

func (g *GeneratorBus) tolerance() float64 {
	switch {
	case g.Tolerance > 0:
		return g.Tolerance
	case g.followed > 0:
		return g.followed
	}

	return DefaultReactiveTolerance
}

// CheckReactiveLimits implements ACBus.
//
// While regulating: true when mvar ∈ [QMin−tol, QMax+tol]. Otherwise false, and with
// adjust the bus clamps Q and releases regulation.
// Once released: true when mvar matches the clamped target plus the shunt
// injection V²·B within tol.
//
// tol is Tolerance when set, else the tolerance passed to FollowTolerance. The
// solvers pass their converge tolerance, so a looser ConvergeError also loosens
// these checks.
func (g *GeneratorBus) CheckReactiveLimits(mvar float64, adjust bool) bool {
	tol := g.tolerance()
	if g.released {
		return math.Abs(mvar-g.Q-g.V*g.V*g.Shunt) <= tol
	}
	switch {
	case mvar > g.QMax+tol:
		if adjust {
			g.Q = g.QMax
			g.released = true
		}
		return false
	case mvar < g.QMin-tol:
		if adjust {
			g.Q = g.QMin
			g.released = true
		}
		return false
	}

	return true
}

// SlackBus is the reference bus: V and θ are fixed, both injections float.
type SlackBus struct {
	Node
}

var _ ACBus = (*SlackBus)(nil)

// NewSlackBus returns a reference bus at voltage v and angle 0.
func NewSlackBus(id int, v float64) *SlackBus {
	return &SlackBus{Node: Node{ID: id, V: v}}
}

func (s *SlackBus) IsSlack() bool                          { return true }
func (s *SlackBus) IsGeneration() bool                     { return true }
func (s *SlackBus) IsAVR() bool                            { return true }
func (s *SlackBus) CheckReactiveLimits(float64, bool) bool { return true }

// DCNode is a bus that only implements the DC contract.
type DCNode struct {
	ID    int
	Slack bool
	P     float64
}

var _ DCBus = (*DCNode)(nil)

func (n *DCNode) Number() int   { return n.ID }
func (n *DCNode) IsSlack() bool { return n.Slack }
func (n *DCNode) MW() float64   { return n.P }
