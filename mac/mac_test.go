package mac_test

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/teidesu/shannon-es/mac"
)

var testKey = []byte{0x65, 0x87, 0xd8, 0x8f, 0x6c, 0x32, 0x9d, 0x8a, 0xe4, 0x6b}

func TestMAC_Vector(t *testing.T) {
	// The tag matches the one the engine's combined encrypt-and-MAC transform produces for the same bytes.
	h := mac.New(testKey, nil, 16)
	h.Write([]byte("Hello World"))

	if got, want := hex.EncodeToString(h.Sum(nil)), "43238624f3c90c5879f4d3ef83982e4e"; got != want {
		t.Errorf("Sum() = %s, want = %s", got, want)
	}
}

func TestMAC_Nonce(t *testing.T) {
	h := mac.New(testKey, []byte("session-42"), 16)
	h.Write([]byte("Hello World"))

	if got, want := hex.EncodeToString(h.Sum(nil)), "c8386fefc62f99545226fb2817b87e4d"; got != want {
		t.Errorf("Sum() = %s, want = %s", got, want)
	}

	other := mac.New(testKey, []byte("session-43"), 16)
	other.Write([]byte("Hello World"))
	if bytes.Equal(other.Sum(nil), h.Sum(nil)) {
		t.Error("tags under distinct nonces match")
	}
}

func TestMAC_Sum(t *testing.T) {
	h := mac.New(testKey, nil, 16)
	h.Write([]byte("Hello World"))

	sum := h.Sum(nil)

	// Sum finalizes a copy, so it must not disturb the running state.
	sum2 := h.Sum(nil)
	if !bytes.Equal(sum, sum2) {
		t.Errorf("Sum() = %x, want = %x", sum2, sum)
	}

	// And the MAC keeps accumulating afterwards.
	h.Write([]byte("Hello World"))
	sum3 := h.Sum(nil)
	if bytes.Equal(sum, sum3) {
		t.Error("Sum() should change after Write()")
	}

	// Sum appends to its argument.
	got := h.Sum([]byte("prefix:"))
	if !bytes.HasPrefix(got, []byte("prefix:")) {
		t.Errorf("Sum() = %x, want prefix: prefix", got)
	}
	if !bytes.Equal(got[7:], sum3) {
		t.Errorf("Sum() tag = %x, want = %x", got[7:], sum3)
	}
}

func TestMAC_ChunkedWrites(t *testing.T) {
	h := mac.New(testKey, nil, 16)
	for _, chunk := range []string{"Hel", "l", "o Wor", "ld"} {
		n, err := h.Write([]byte(chunk))
		if err != nil {
			t.Fatal(err)
		}
		if n != len(chunk) {
			t.Errorf("Write() = %d, want = %d", n, len(chunk))
		}
	}

	if got, want := hex.EncodeToString(h.Sum(nil)), "43238624f3c90c5879f4d3ef83982e4e"; got != want {
		t.Errorf("Sum() = %s, want = %s", got, want)
	}
}

func TestMAC_Reset(t *testing.T) {
	h := mac.New(testKey, []byte("iv"), 8)
	h.Write([]byte("data"))
	sum1 := h.Sum(nil)

	h.Reset()
	sumEmpty := h.Sum(nil)

	if bytes.Equal(sum1, sumEmpty) {
		t.Error("Reset() didn't clear the accumulated state")
	}

	h.Write([]byte("data"))
	sum2 := h.Sum(nil)

	if !bytes.Equal(sum1, sum2) {
		t.Errorf("Sum() after Reset+Write = %x, want = %x", sum2, sum1)
	}
}

func TestMAC_Size(t *testing.T) {
	for _, size := range []int{1, 4, 16, 32} {
		h := mac.New(testKey, nil, size)
		if got := h.Size(); got != size {
			t.Errorf("Size() = %d, want = %d", got, size)
		}
		if got := len(h.Sum(nil)); got != size {
			t.Errorf("len(Sum()) = %d, want = %d", got, size)
		}
	}
}

func TestMAC_BlockSize(t *testing.T) {
	h := mac.New(testKey, nil, 16)
	if got := h.BlockSize(); got != 4 {
		t.Errorf("BlockSize() = %d, want = 4", got)
	}
}

func TestMAC_InvalidSize(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("The code did not panic")
		}
	}()

	mac.New(testKey, nil, 0)
}
