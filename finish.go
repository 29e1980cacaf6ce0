package shannon

import (
	"crypto/subtle"
	"encoding/binary"
	"errors"

	"github.com/teidesu/shannon-es/internal/mem"
)

// ErrInvalidMAC is returned by CheckMAC when the computed tag does not match the expected one.
var ErrInvalidMAC = errors.New("shannon: invalid MAC")

// Finish finalizes the MAC over everything accumulated since the last Key or Nonce call and generates an n-byte tag.
// It appends the tag to dst and returns the resulting slice; Finish(nil, n) allocates, and Finish(buf[:0], len(buf))
// fills a caller-owned buffer in place.
//
// Any pending partial word is treated as if it had been encrypted with zero padding, and the count of pending bits is
// folded into the register, so no input sequence can extend a finished message. Finish is terminal for the current
// message: call Nonce or Key before streaming again.
//
// Finish panics if n is negative.
func (c *Cipher) Finish(dst []byte, n int) []byte {
	if n < 0 {
		panic("shannon: negative MAC length")
	}

	if c.nbuf != 0 {
		c.macFunc(c.mbuf) // register was already cycled for the pending word
	}

	// Mark end of input. Only the feedback register is perturbed, never the CRC lanes, so no plaintext sequence can
	// reproduce this fold.
	c.cycle()
	c.addKey(initKonst ^ uint32(c.nbuf)<<3) //nolint:gosec // nbuf is at most 32
	c.nbuf = 0

	for i := range c.r {
		c.r[i] ^= c.crc[i]
	}
	c.diffuse()

	ret, mac := mem.SliceForAppend(dst, n)
	for len(mac) >= 4 {
		c.cycle()
		binary.LittleEndian.PutUint32(mac, c.sbuf)
		mac = mac[4:]
	}
	if len(mac) > 0 {
		c.cycle()
		for i := range mac {
			mac[i] = byte(c.sbuf >> (8 * i))
		}
	}
	return ret
}

// CheckMAC finalizes a tag of len(expected) bytes and compares it against expected in constant time, returning
// ErrInvalidMAC on mismatch. Like Finish, it is terminal for the current message.
func (c *Cipher) CheckMAC(expected []byte) error {
	actual := c.Finish(nil, len(expected))
	if subtle.ConstantTimeCompare(actual, expected) == 0 {
		return ErrInvalidMAC
	}
	return nil
}
