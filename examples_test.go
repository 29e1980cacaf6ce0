package shannon_test

import (
	"encoding/hex"
	"fmt"

	shannon "github.com/teidesu/shannon-es"
)

func ExampleCipher_Encrypt() {
	// Key the cipher. Every length is accepted; peers must agree on the bytes.
	key := []byte{0x65, 0x87, 0xd8, 0x8f, 0x6c, 0x32, 0x9d, 0x8a, 0xe4, 0x6b}
	c := shannon.New(key)

	// Encrypt the message in place. The plaintext is simultaneously accumulated into the MAC.
	message := []byte("Hello World")
	c.Encrypt(message, message)
	fmt.Printf("%x\n", message)

	// Finalize a 16-byte tag authenticating everything encrypted since keying.
	tag := c.Finish(nil, 16)
	fmt.Printf("%x\n", tag)

	// Output:
	// 9481e5a95f935ecb6cb524
	// 43238624f3c90c5879f4d3ef83982e4e
}

func ExampleCipher_Decrypt() {
	key := []byte{0x65, 0x87, 0xd8, 0x8f, 0x6c, 0x32, 0x9d, 0x8a, 0xe4, 0x6b}
	ciphertext, _ := hex.DecodeString("9481e5a95f935ecb6cb524")
	tag, _ := hex.DecodeString("43238624f3c90c5879f4d3ef83982e4e")

	// Decrypt in place; the recovered plaintext is accumulated into the MAC.
	c := shannon.New(key)
	c.Decrypt(ciphertext, ciphertext)
	fmt.Printf("%s\n", ciphertext)

	// Verify the sender's tag in constant time.
	if err := c.CheckMAC(tag); err == nil {
		fmt.Println("authentic")
	}

	// Output:
	// Hello World
	// authentic
}

func ExampleCipher_NonceUint32() {
	// One keyed instance carries a whole session: each message gets a fresh sequence-number nonce and its own tag.
	key := []byte{0x65, 0x87, 0xd8, 0x8f, 0x6c, 0x32, 0x9d, 0x8a, 0xe4, 0x6b}
	c := shannon.New(key)

	for seq, message := range [][]byte{[]byte("first message"), []byte("second message")} {
		c.NonceUint32(uint32(seq))
		c.Encrypt(message, message)
		tag := c.Finish(nil, 4)
		fmt.Printf("%x %x\n", message, tag)
	}

	// Output:
	// 3034cde65f79adb2baf65a6602 80759dd2
	// 5fc6d2e6b60cd80eb1c55fb6dc8e 7a647496
}

func ExampleCipher_XORKeyStream() {
	// Keystream only, no MAC accumulation: the cipher.Stream face of the engine.
	c := shannon.New([]byte("my-secret-key"))

	keystream := make([]byte, 12)
	c.XORKeyStream(keystream, keystream)
	fmt.Printf("%x\n", keystream)

	// Output:
	// 61c5e8929d7f64262c1f4e5f
}
