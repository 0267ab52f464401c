// Package endian converts between wire (little-endian) and display (big-endian) byte order.
package endian

// Reverse returns a reversed copy of b. useful for switching endian-ness
func Reverse(b []byte) []byte {
	r := make([]byte, len(b))
	for left, right := 0, len(b)-1; left <= right; left, right = left+1, right-1 {
		r[left], r[right] = b[right], b[left]
	}
	return r
}
