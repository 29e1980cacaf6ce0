// Package aead provides Authenticated Encryption with Associated Data (AEAD) over the Shannon cipher's combined
// encrypt-and-MAC mode.
package aead

import (
	"crypto/cipher"
	"errors"
	"math/bits"

	shannon "github.com/teidesu/shannon-es"
	"github.com/teidesu/shannon-es/internal/mem"
)

// TagSize is the number of bytes added to the plaintext by Seal.
const TagSize = 16

// ErrOpen is returned when a ciphertext is inauthentic: modified in transit, or sealed under a different key, nonce,
// or associated data.
var ErrOpen = errors.New("shannon/aead: message authentication failed")

// New returns a cipher.AEAD backed by a Shannon cipher keyed with key. Keys of any length are accepted. nonceSize is
// the length callers will pass to Seal and Open; it must be at least 4 bytes, the engine's word granule.
//
// The key schedule runs once here; each Seal and Open call works on a per-message copy of the keyed state, so the
// returned AEAD may be used for any number of messages.
func New(key []byte, nonceSize int) cipher.AEAD {
	if nonceSize < 4 {
		panic("shannon/aead: nonce size must be at least 4 bytes")
	}
	return &aead{
		keyed:     *shannon.New(key),
		nonceSize: nonceSize,
	}
}

type aead struct {
	keyed     shannon.Cipher
	nonceSize int
}

func (a *aead) NonceSize() int {
	return a.nonceSize
}

func (a *aead) Overhead() int {
	return TagSize
}

// Seal encrypts and authenticates plaintext under the given nonce and associated data, appending the ciphertext and
// a TagSize-byte tag to dst and returning the resulting slice.
//
// To reuse plaintext's storage for the encrypted output, use plaintext[:0] as dst. Otherwise, the remaining capacity
// of dst must not overlap plaintext.
func (a *aead) Seal(dst, nonce, plaintext, additionalData []byte) []byte {
	if len(nonce) != a.nonceSize {
		panic("shannon/aead: invalid nonce size")
	}

	c := a.keyed.Clone()
	c.Nonce(nonce)
	absorb(&c, additionalData)

	ret, out := mem.SliceForAppend(dst, len(plaintext)+TagSize)
	c.Encrypt(out[:len(plaintext)], plaintext)
	c.Finish(out[len(plaintext):len(plaintext)], TagSize)
	return ret
}

// Open decrypts and authenticates a ciphertext produced by Seal (including its trailing tag) under the given nonce
// and associated data, appending the plaintext to dst and returning the resulting slice. If the ciphertext is not
// authentic, it returns ErrOpen.
//
// To reuse ciphertext's storage for the decrypted output, use ciphertext[:0] as dst. Otherwise, the remaining
// capacity of dst must not overlap ciphertext.
//
// WARNING: Open decrypts in place before verifying the tag. If the tag is invalid, the decrypted bytes in dst are
// zeroed, but with in-place decryption the original ciphertext is already gone; keep a copy if it must survive an
// authentication failure.
func (a *aead) Open(dst, nonce, ciphertext, additionalData []byte) ([]byte, error) {
	if len(nonce) != a.nonceSize {
		panic("shannon/aead: invalid nonce size")
	}
	if len(ciphertext) < TagSize {
		return nil, ErrOpen
	}
	tag := ciphertext[len(ciphertext)-TagSize:]
	ciphertext = ciphertext[:len(ciphertext)-TagSize]

	c := a.keyed.Clone()
	c.Nonce(nonce)
	absorb(&c, additionalData)

	ret, plaintext := mem.SliceForAppend(dst, len(ciphertext))
	c.Decrypt(plaintext, ciphertext)
	if err := c.CheckMAC(tag); err != nil {
		clear(plaintext)
		return nil, ErrOpen
	}
	return ret, nil
}

// absorb feeds the associated data through the MAC behind an unambiguous length prefix, so no shifting of bytes
// between the associated data and the plaintext can produce the same tag.
func absorb(c *shannon.Cipher, ad []byte) {
	c.MACOnly(appendLeftEncode(make([]byte, 0, maxEncodeSize), uint64(len(ad))))
	c.MACOnly(ad)
}

// maxEncodeSize is the length, in bytes, of the largest encoded length prefix.
const maxEncodeSize = 9

// appendLeftEncode encodes a value using NIST SP 800-185's left_encode and appends it to b.
func appendLeftEncode(b []byte, value uint64) []byte {
	n := 8 - (bits.LeadingZeros64(value|1) / 8)
	value <<= (8 - n) * 8
	b = append(b, byte(n))
	for i := 0; i < n; i++ {
		b = append(b, byte(value>>56))
		value <<= 8
	}
	return b
}

var _ cipher.AEAD = (*aead)(nil)
