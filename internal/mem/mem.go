// Package mem holds slice plumbing shared by the cipher and its wrappers.
package mem

// SliceForAppend extends in by n bytes and returns both the extended slice
// and the n-byte extension. Writing through the extension fills the appended
// region, and no allocation is made when in already has the capacity, so
// append-style APIs can also fill caller-owned buffers in place.
func SliceForAppend(in []byte, n int) (head, tail []byte) {
	if total := len(in) + n; cap(in) >= total {
		head = in[:total]
	} else {
		head = make([]byte, total)
		copy(head, in)
	}
	tail = head[len(in):]
	return head, tail
}
