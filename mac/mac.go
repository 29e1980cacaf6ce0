// Package mac provides a hash.Hash implementation of the Shannon MAC for callers that want authentication without
// encryption.
//
// The tag for a message equals the tag produced by encrypting the same bytes with the same key and nonce, so a
// receiver may authenticate with this package what a sender protected with the combined encrypt-and-MAC transform.
package mac

import (
	"hash"

	shannon "github.com/teidesu/shannon-es"
)

// New returns a hash.Hash computing a Shannon MAC of size bytes under the given key. A non-nil nonce distinguishes
// messages under the same key; nil leaves the engine in its keyed-but-unnonced state, interoperating with peers that
// stream immediately after keying.
//
// The tag length is not bound into the MAC, so a shorter tag is a prefix of a longer one under the same key, nonce,
// and message.
//
// New panics if size is less than 1.
func New(key, nonce []byte, size int) hash.Hash {
	if size < 1 {
		panic("shannon/mac: size must be at least 1 byte")
	}
	c := shannon.New(key)
	if nonce != nil {
		c.Nonce(nonce)
	}
	return &mac{c: *c, init: *c, size: size}
}

type mac struct {
	c    shannon.Cipher // running MAC state
	init shannon.Cipher // keyed and nonced state restored by Reset
	size int
}

func (m *mac) Write(p []byte) (n int, err error) {
	m.c.MACOnly(p)
	return len(p), nil
}

// Sum finalizes a copy of the state, so the MAC keeps accumulating across Sum calls.
func (m *mac) Sum(b []byte) []byte {
	c := m.c.Clone()
	return c.Finish(b, m.size)
}

func (m *mac) Reset() {
	m.c = m.init.Clone()
}

func (m *mac) Size() int {
	return m.size
}

func (m *mac) BlockSize() int {
	return 4 // the engine's word granule
}

var _ hash.Hash = (*mac)(nil)
