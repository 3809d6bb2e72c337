package matrix_test

import (
	"fmt"

	"github.com/katalvlaran/gridflow/matrix"
)

// ExampleSolve solves a small system that needs a row swap.
func ExampleSolve() {
	a, _ := matrix.NewDenseFrom([][]float64{
		{0, 1},
		{2, 0},
	})
	x, err := matrix.Solve(a, []float64{3, 4})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(x)
	// Output:
	// [2 3]
}

// ExampleDense_Pin shows the stiffening used for reference buses.
func ExampleDense_Pin() {
	a, _ := matrix.NewDenseFrom([][]float64{
		{2, -1},
		{-1, 2},
	})
	_ = a.Pin(0, 1e10)
	fmt.Print(a)
	// Output:
	// [1e+10, 0]
	// [0, 2]
}
