package quant_test

import (
	"fmt"

	"github.com/cwbudde/algo-codec/codec/quant"
)

func ExampleLinearMagnitude() {
	q := quant.LinearMagnitude{Bits: 4, PeakReference: 1}
	code := q.Quantize(0.5)
	fmt.Printf("%d %.3f\n", code, q.Dequantize(code))
	// Output:
	// 8 0.533
}

func ExampleDeltaPhase() {
	q := quant.DeltaPhase{Levels: quant.DefaultPhaseLevels}
	b := q.Quantize(1.0, 0.9)
	fmt.Println(b)
	// Output:
	// 33
}
