package sensitivity

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/katalvlaran/gridflow/matrix"
)

var (
	// ErrShape is returned when the matrix is neither N×N nor 2N×2N for N buses.
	ErrShape = errors.New("sensitivity: jacobian shape does not match bus count")

	// ErrPosition is returned for a bus position outside [0, N).
	ErrPosition = errors.New("sensitivity: bus position out of range")
)

// DefaultPrintPlaces is the rounding used by String.
const DefaultPrintPlaces = 3

// Snapshot is an immutable Jacobian plus the bus numbers in build order.
type Snapshot struct {
	jac   *matrix.Dense
	buses []int
}

// New copies jac and busNumbers into a Snapshot.
//
// Errors:
//   - matrix.ErrNilMatrix for a nil matrix, ErrShape when the order is not N or 2N.
func New(jac *matrix.Dense, busNumbers []int) (*Snapshot, error) {
	if err := matrix.ValidateNotNil(jac); err != nil {
		return nil, fmt.Errorf("sensitivity.New: %w", err)
	}
	n := len(busNumbers)
	r, c := jac.Shape()
	if r != c || n == 0 || (r != n && r != 2*n) {
		return nil, fmt.Errorf("sensitivity.New: %dx%d for %d buses: %w", r, c, n, ErrShape)
	}

	return &Snapshot{
		jac:   jac.Copy(),
		buses: append([]int(nil), busNumbers...),
	}, nil
}

// Full reports whether the snapshot holds the 2N×2N Jacobian.
func (s *Snapshot) Full() bool { return s.jac.Rows() == 2*len(s.buses) }

// Buses returns a copy of the bus numbers in build order.
func (s *Snapshot) Buses() []int { return append([]int(nil), s.buses...) }

// Jacobian returns a copy of the stored matrix.
func (s *Snapshot) Jacobian() *matrix.Dense { return s.jac.Copy() }

func (s *Snapshot) offset() int {
	if s.Full() {
		return len(s.buses)
	}

	return 0
}

// Map returns bus number → quadrant-4 diagonal value.
func (s *Snapshot) Map() map[int]float64 {
	out := make(map[int]float64, len(s.buses))
	off := s.offset()
	for i, num := range s.buses {
		v, _ := s.jac.At(i+off, i+off)
		out[num] = v
	}

	return out
}

// At returns the quadrant-4 diagonal value of the bus at position pos.
func (s *Snapshot) At(pos int) (float64, error) {
	if pos < 0 || pos >= len(s.buses) {
		return 0, fmt.Errorf("sensitivity.At(%d): %w", pos, ErrPosition)
	}
	off := s.offset()

	return s.jac.At(pos+off, pos+off)
}

// Inverse solves Jᵀ·x = v over the whole stored matrix.
// len(v) must equal the matrix order. A singular snapshot matches matrix.ErrSingular.
func (s *Snapshot) Inverse(v []float64) ([]float64, error) {
	f, err := matrix.Factorize(s.jac, matrix.DefaultPivotTolerance)
	if err != nil {
		return nil, fmt.Errorf("sensitivity.Inverse: %w", err)
	}
	x, err := f.SolveTransposed(v)
	if err != nil {
		return nil, fmt.Errorf("sensitivity.Inverse: %w", err)
	}

	return x, nil
}

// String prints the matrix with every entry rounded to DefaultPrintPlaces.
func (s *Snapshot) String() string {
	var b strings.Builder
	scale := math.Pow(10, DefaultPrintPlaces)
	n := s.jac.Rows()
	for i := 0; i < n; i++ {
		row, _ := s.jac.Row(i)
		for j, v := range row {
			if j > 0 {
				b.WriteString("  ")
			}
			b.WriteString(strconv.FormatFloat(math.Round(v*scale)/scale, 'g', -1, 64))
		}
		b.WriteByte('\n')
	}

	return b.String()
}
