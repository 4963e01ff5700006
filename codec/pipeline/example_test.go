package pipeline_test

import (
	"fmt"

	"github.com/cwbudde/algo-codec/codec/pipeline"
)

func ExampleEncoder() {
	enc, err := pipeline.NewEncoder(pipeline.WithTopK(16))
	if err != nil {
		panic(err)
	}
	data, st, err := enc.EncodeBytes(make([]float64, 44100), 44100)
	if err != nil {
		panic(err)
	}

	res, err := pipeline.NewDecoder().Decode(data)
	if err != nil {
		panic(err)
	}
	fmt.Println(st.Frames, len(res.Samples))

	// Output:
	// 83 44032
}
