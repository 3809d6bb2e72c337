package network

// DefaultBPrime is the b′ given to a DCLine built without an explicit susceptance.
const DefaultBPrime = 0.5

// Line is a π-model transmission branch usable by both AC and DC solvers.
//
//	series admittance   y  = 1 / (R + jX)
//	half charging       bc = j·Charging/2
//	off-nominal tap     t  (0 is read as 1, tap on the from side)
//
//	Y = | (y+bc)/t²   −y/t  |
//	    |   −y/t      y+bc  |
//
// For DC, b′ = 1/X. X must be non-zero.
type Line struct {
	From, To int
	R, X     float64
	Charging float64
	Tap      float64

	flow float64
}

var (
	_ ACBranch     = (*Line)(nil)
	_ DCBranch     = (*Line)(nil)
	_ FlowRecorder = (*Line)(nil)
)

// NewLine returns a nominal-tap line without charging.
func NewLine(from, to int, r, x float64) *Line {
	return &Line{From: from, To: to, R: r, X: x}
}

func (l *Line) FromBus() int { return l.From }
func (l *Line) ToBus() int   { return l.To }

// YBus implements ACBranch.
func (l *Line) YBus() [2][2]complex128 {
	y := 1 / complex(l.R, l.X)
	bc := complex(0, l.Charging/2)
	t := complex(l.Tap, 0)
	if l.Tap == 0 {
		t = 1
	}

	return [2][2]complex128{
		{(y + bc) / (t * t), -y / t},
		{-y / t, y + bc},
	}
}

// BPrime implements DCBranch.
func (l *Line) BPrime() float64 { return 1 / l.X }

// SetFlow implements FlowRecorder.
func (l *Line) SetFlow(mw float64) { l.flow = mw }

// Flow returns the last DC flow written by a solver (from → to positive).
func (l *Line) Flow() float64 { return l.flow }

// Admittance is an AC branch given directly by its 2×2 block.
type Admittance struct {
	From, To int
	Y        [2][2]complex128
}

var _ ACBranch = (*Admittance)(nil)

func (a *Admittance) FromBus() int           { return a.From }
func (a *Admittance) ToBus() int             { return a.To }
func (a *Admittance) YBus() [2][2]complex128 { return a.Y }

// DCLine is a DC branch with an explicit b′ that records its computed flow.
type DCLine struct {
	From, To int
	B        float64

	flow float64
}

var (
	_ DCBranch     = (*DCLine)(nil)
	_ FlowRecorder = (*DCLine)(nil)
)

// NewDCLine returns a DC branch; b == 0 selects DefaultBPrime.
func NewDCLine(from, to int, b float64) *DCLine {
	if b == 0 {
		b = DefaultBPrime
	}

	return &DCLine{From: from, To: to, B: b}
}

func (l *DCLine) FromBus() int       { return l.From }
func (l *DCLine) ToBus() int         { return l.To }
func (l *DCLine) BPrime() float64    { return l.B }
func (l *DCLine) SetFlow(mw float64) { l.flow = mw }

// Flow returns the last DC flow written by a solver.
func (l *DCLine) Flow() float64 { return l.flow }
