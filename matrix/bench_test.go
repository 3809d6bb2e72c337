package matrix_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/gridflow/matrix"
)

func BenchmarkFactorizeSolve(b *testing.B) {
	for _, n := range []int{16, 64, 128} {
		a := diagonallyDominant(b, n)
		rhs := make([]float64, n)
		for i := range rhs {
			rhs[i] = float64(i)
		}
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := matrix.Solve(a, rhs); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
