package core_test

import (
	"fmt"

	"github.com/cwbudde/algo-codec/dsp/core"
)

func ExampleZero() {
	buf := []float64{1, 2, 3, 4}
	core.Zero(buf)
	fmt.Println(buf)

	// Output:
	// [0 0 0 0]
}
