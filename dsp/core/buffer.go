package core

// Zero sets all values in buf to 0.
func Zero[T float64 | complex128](buf []T) {
	clear(buf)
}
