package shannon

import (
	"crypto/cipher"
	"encoding/binary"
)

// XORKeyStream XORs src with the keystream and writes the result to dst, which must be at least as long as src. Dst
// and src must either be the same slice or not overlap at all. No MAC is accumulated; mixing XORKeyStream with the
// MAC-accumulating transforms mid-word leaves the sub-word state incoherent, so switch transforms only on 4-byte
// boundaries of the total stream.
func (c *Cipher) XORKeyStream(dst, src []byte) {
	if len(dst) < len(src) {
		panic("shannon: output smaller than input")
	}

	// Drain keystream left over from a previous partial word, low byte first.
	for c.nbuf != 0 && len(src) > 0 {
		dst[0] = src[0] ^ byte(c.sbuf)
		c.sbuf >>= 8
		c.nbuf -= 8
		dst, src = dst[1:], src[1:]
	}

	for len(src) >= 4 {
		c.cycle()
		binary.LittleEndian.PutUint32(dst, binary.LittleEndian.Uint32(src)^c.sbuf)
		dst, src = dst[4:], src[4:]
	}

	if len(src) > 0 {
		c.cycle()
		c.nbuf = 32
		for len(src) > 0 {
			dst[0] = src[0] ^ byte(c.sbuf)
			c.sbuf >>= 8
			c.nbuf -= 8
			dst, src = dst[1:], src[1:]
		}
	}
}

// MACOnly accumulates src into the MAC without producing ciphertext, as if it were plaintext being encrypted. Input
// may be split across calls at any boundary.
func (c *Cipher) MACOnly(src []byte) {
	if c.nbuf != 0 {
		for c.nbuf != 0 && len(src) > 0 {
			c.mbuf ^= uint32(src[0]) << (32 - c.nbuf)
			c.nbuf -= 8
			src = src[1:]
		}
		if c.nbuf != 0 { // still mid-word
			return
		}
		c.macFunc(c.mbuf) // register was already cycled for this word
	}

	for len(src) >= 4 {
		c.cycle()
		c.macFunc(binary.LittleEndian.Uint32(src))
		src = src[4:]
	}

	if len(src) > 0 {
		c.cycle()
		c.mbuf = 0
		c.nbuf = 32
		for _, b := range src {
			c.mbuf ^= uint32(b) << (32 - c.nbuf)
			c.nbuf -= 8
		}
	}
}

// Encrypt XORs src with the keystream, writes the ciphertext to dst, and accumulates the plaintext into the MAC. Dst
// must be at least as long as src, and dst and src must either be the same slice or not overlap at all. Input may be
// split across calls at any boundary.
func (c *Cipher) Encrypt(dst, src []byte) {
	if len(dst) < len(src) {
		panic("shannon: output smaller than input")
	}

	if c.nbuf != 0 {
		for c.nbuf != 0 && len(src) > 0 {
			c.mbuf ^= uint32(src[0]) << (32 - c.nbuf)
			dst[0] = src[0] ^ byte(c.sbuf>>(32-c.nbuf))
			c.nbuf -= 8
			dst, src = dst[1:], src[1:]
		}
		if c.nbuf != 0 { // still mid-word
			return
		}
		c.macFunc(c.mbuf) // register was already cycled for this word
	}

	for len(src) >= 4 {
		c.cycle()
		t := binary.LittleEndian.Uint32(src)
		c.macFunc(t)
		binary.LittleEndian.PutUint32(dst, t^c.sbuf)
		dst, src = dst[4:], src[4:]
	}

	if len(src) > 0 {
		c.cycle()
		c.mbuf = 0
		c.nbuf = 32
		for len(src) > 0 {
			c.mbuf ^= uint32(src[0]) << (32 - c.nbuf)
			dst[0] = src[0] ^ byte(c.sbuf>>(32-c.nbuf))
			c.nbuf -= 8
			dst, src = dst[1:], src[1:]
		}
	}
}

// Decrypt XORs src with the keystream, writes the plaintext to dst, and accumulates the recovered plaintext into the
// MAC. Dst must be at least as long as src, and dst and src must either be the same slice or not overlap at all.
// Input may be split across calls at any boundary.
func (c *Cipher) Decrypt(dst, src []byte) {
	if len(dst) < len(src) {
		panic("shannon: output smaller than input")
	}

	if c.nbuf != 0 {
		for c.nbuf != 0 && len(src) > 0 {
			p := src[0] ^ byte(c.sbuf>>(32-c.nbuf))
			c.mbuf ^= uint32(p) << (32 - c.nbuf)
			dst[0] = p
			c.nbuf -= 8
			dst, src = dst[1:], src[1:]
		}
		if c.nbuf != 0 { // still mid-word
			return
		}
		c.macFunc(c.mbuf) // register was already cycled for this word
	}

	for len(src) >= 4 {
		c.cycle()
		t := binary.LittleEndian.Uint32(src) ^ c.sbuf
		c.macFunc(t)
		binary.LittleEndian.PutUint32(dst, t)
		dst, src = dst[4:], src[4:]
	}

	if len(src) > 0 {
		c.cycle()
		c.mbuf = 0
		c.nbuf = 32
		for len(src) > 0 {
			p := src[0] ^ byte(c.sbuf>>(32-c.nbuf))
			c.mbuf ^= uint32(p) << (32 - c.nbuf)
			dst[0] = p
			c.nbuf -= 8
			dst, src = dst[1:], src[1:]
		}
	}
}

var _ cipher.Stream = (*Cipher)(nil)
