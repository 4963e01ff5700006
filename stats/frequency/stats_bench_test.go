package frequency

import (
	"math"
	"strconv"
	"testing"
)

func BenchmarkCalculate(b *testing.B) {
	for _, n := range []int{129, 1025, 8193} {
		mag := make([]float64, n)
		for i := range mag {
			mag[i] = 1 / (1 + math.Abs(float64(i-n/3)))
		}
		b.Run(strconv.Itoa(n), func(b *testing.B) {
			b.ReportAllocs()
			for range b.N {
				Calculate(mag, 48000)
			}
		})
	}
}
