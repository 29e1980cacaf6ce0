// Package shannon implements the Shannon stream cipher and MAC, a word-oriented cipher designed by Gregory Rose,
// Philip Hawkes, Michael Paddon, and Miriam Wiggers de Vries at Qualcomm (see the [Shannon specification]). A single
// 16-word nonlinear feedback shift register produces a pseudorandom keystream and, in parallel, accumulates a
// CRC-based authentication tag over the plaintext it processes, so one pass over a message yields both ciphertext
// and MAC.
//
// The engine exposes four streaming transforms: XORKeyStream (keystream only), MACOnly (authentication only), and the
// combined Encrypt and Decrypt (confidentiality plus authentication over the plaintext). All four accept input at
// arbitrary chunk boundaries; sub-word state carries across calls, so splitting a message over several calls produces
// the same output as a single call over the whole message. Finish folds the accumulated CRC state into the register
// and emits the MAC tag.
//
// Shannon is best known as the transport cipher of the Spotify Connect protocol, as implemented by [librespot]. It
// predates the modern AEAD interface; prefer an AEAD construction for new designs and reach for this package when
// interoperating with peers that already speak Shannon.
//
// [Shannon specification]: https://eprint.iacr.org/2007/044
// [librespot]: https://github.com/librespot-org/librespot
package shannon

import (
	"encoding/binary"
	"math/bits"
)

// A Cipher is an instance of the Shannon engine, holding the feedback register, the CRC accumulator, and the sub-word
// streaming state for one key.
//
// One instance serves any number of messages: Key reinitializes it for an unrelated session, and Nonce restarts the
// keystream and MAC at a fresh initialization vector without resupplying the key. After Finish, call Nonce or Key
// before streaming again.
//
// Cipher instances are not concurrent-safe. The zero value is unkeyed; streaming with it produces a keystream of no
// cryptographic strength rather than an error, matching the reference implementation.
type Cipher struct {
	r     [regWords]uint32 // nonlinear feedback shift register
	crc   [regWords]uint32 // parallel CRC-16 lanes, fed by plaintext words only
	saved [regWords]uint32 // register snapshot taken after keying, restored by Nonce
	konst uint32           // key-dependent feedback constant
	sbuf  uint32           // most recent keystream word
	mbuf  uint32           // partial plaintext word awaiting MAC accumulation
	nbuf  int              // bits of sbuf/mbuf still live, always a multiple of 8
}

// New returns a Cipher keyed with the given key. A nil key is the empty key, which is well defined but worthless;
// keys of any other length are used in full. Equivalent to a Key call on a fresh instance.
func New(key []byte) *Cipher {
	c := new(Cipher)
	c.Key(key)
	return c
}

// Key initializes the cipher with a key of any length, discarding all prior state. The keyed register is also
// snapshotted for later Nonce calls.
func (c *Cipher) Key(key []byte) {
	c.initState()
	c.loadKey(key)
	c.konst = c.r[0]
	c.saved = c.r
	c.nbuf = 0
}

// Nonce sets the initialization vector for the next message, restarting the keystream and MAC from the state
// snapshotted by Key. It may be called any number of times without rekeying; each message under the same key should
// use a distinct nonce.
func (c *Cipher) Nonce(nonce []byte) {
	c.r = c.saved
	c.konst = initKonst
	c.loadKey(nonce)
	c.konst = c.r[0]
	c.nbuf = 0
}

// NonceUint32 sets the initialization vector to the big-endian encoding of n. Interoperable peers use this form for
// sequence-numbered messages; it is exactly Nonce over the 4-byte big-endian encoding, which the word fold then reads
// back little-endian.
func (c *Cipher) NonceUint32(n uint32) {
	var nonce [4]byte
	binary.BigEndian.PutUint32(nonce[:], n)
	c.Nonce(nonce[:])
}

// Clone returns a copy of the receiver with its own independent state.
func (c *Cipher) Clone() Cipher {
	return *c
}

// cycle advances the register one step and leaves the fresh keystream word in sbuf.
func (c *Cipher) cycle() {
	t := sbox1(c.r[12]^c.r[13]^c.konst) ^ bits.RotateLeft32(c.r[0], 1)
	copy(c.r[:], c.r[1:])
	c.r[regWords-1] = t
	t = sbox2(c.r[2] ^ c.r[15])
	c.r[0] ^= t
	c.sbuf = t ^ c.r[8] ^ c.r[12]
}

// crcFunc accumulates a word into the CRC register: 32 parallel CRC-16 lanes over the IBM polynomial
// x^16 + x^15 + x^2 + 1.
func (c *Cipher) crcFunc(w uint32) {
	t := c.crc[0] ^ c.crc[2] ^ c.crc[15] ^ w
	copy(c.crc[:], c.crc[1:])
	c.crc[regWords-1] = t
}

// macFunc accumulates a plaintext word for the MAC, both into the CRC lanes and into the feedback register, where it
// has an immediate nonlinear effect on the following cycles.
func (c *Cipher) macFunc(w uint32) {
	c.crcFunc(w)
	c.r[keyPos] ^= w
}

func (c *Cipher) addKey(k uint32) {
	c.r[keyPos] ^= k
}

// initState resets the register to the known starting point: the first 16 Fibonacci numbers and the initial konst.
func (c *Cipher) initState() {
	c.r[0], c.r[1] = 1, 1
	for i := 2; i < regWords; i++ {
		c.r[i] = c.r[i-1] + c.r[i-2]
	}
	c.konst = initKonst
}

// diffuse runs enough cycles that every register word depends on every word loaded before it.
func (c *Cipher) diffuse() {
	for i := 0; i < fold; i++ {
		c.cycle()
	}
}

// loadKey folds key or nonce material of any length into the register: whole little-endian words first, then a
// zero-padded partial word, then the byte length itself. The pre-diffusion register is snapshotted into the CRC
// register (rewritten by every load) and XORed back afterwards, which makes loading irreversible.
func (c *Cipher) loadKey(material []byte) {
	whole := len(material) &^ 3
	for i := 0; i < whole; i += 4 {
		c.addKey(binary.LittleEndian.Uint32(material[i:]))
		c.cycle()
	}

	if rem := material[whole:]; len(rem) > 0 {
		var xtra [4]byte
		copy(xtra[:], rem)
		c.addKey(binary.LittleEndian.Uint32(xtra[:]))
		c.cycle()
	}

	c.addKey(uint32(len(material))) //nolint:gosec // the cipher folds the length mod 2^32
	c.cycle()

	c.crc = c.r
	c.diffuse()
	for i := range c.r {
		c.r[i] ^= c.crc[i]
	}
}

func sbox1(w uint32) uint32 {
	w ^= bits.RotateLeft32(w, 5) | bits.RotateLeft32(w, 7)
	w ^= bits.RotateLeft32(w, 19) | bits.RotateLeft32(w, 22)
	return w
}

func sbox2(w uint32) uint32 {
	w ^= bits.RotateLeft32(w, 7) | bits.RotateLeft32(w, 22)
	w ^= bits.RotateLeft32(w, 5) | bits.RotateLeft32(w, 19)
	return w
}

const (
	regWords  = 16         // words in the feedback and CRC registers
	keyPos    = 13         // register word where key and MAC material folds in
	initKonst = 0x6996c53a // konst value during loads, before the key-derived value exists

	// fold is how many cycles must follow the last loaded word before every register word depends on all of them.
	// Matching the register length is the conservative choice for these tap positions.
	fold = regWords
)
