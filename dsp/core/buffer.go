package core

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
func EnsureLen[T any](buf []T, n int) []T {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]T, n)
}

// CopyInto copies src into dst and returns the number of copied elements.
func CopyInto[T any](dst, src []T) int {
	n := min(len(dst), len(src))
	copy(dst[:n], src[:n])
	return n
}

// Blocks calls fn for consecutive sub-ranges [start, end) of a length-n
// signal, each at most size long. A non-positive size yields one range.
func Blocks(n, size int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if size <= 0 {
		size = n
	}
	for start := 0; start < n; start += size {
		fn(start, min(start+size, n))
	}
}
