// Command shn_seal encrypts and authenticates a single file, writing salt || nonce || ciphertext || tag.
package main

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"flag"
	"io"
	"log/slog"
	"os"

	"github.com/teidesu/shannon-es/aead"
	"golang.org/x/crypto/argon2"
)

const (
	saltSize  = 16
	nonceSize = 16
)

func main() {
	var (
		in         = flag.String("in", "", "the file to seal, or stdin if empty")
		out        = flag.String("out", "", "the output file, or stdout if empty")
		keyHex     = flag.String("key", "", "the key as hex")
		passphrase = flag.String("passphrase", "", "derive the key from a passphrase instead")
		ad         = flag.String("ad", "", "additional data to authenticate but not encrypt")
	)
	flag.Parse()

	log := slog.New(slog.Default().Handler())

	plaintext, err := readInput(*in)
	if err != nil {
		log.Error("error reading input", "err", err)
		os.Exit(1)
	}

	// The salt is only consumed in passphrase mode, but writing one
	// unconditionally keeps the file layout uniform.
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		log.Error("error generating salt", "err", err)
		os.Exit(1)
	}

	key, err := keyMaterial(*keyHex, *passphrase, salt)
	if err != nil {
		log.Error("invalid key material", "err", err)
		os.Exit(1)
	}

	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		log.Error("error generating nonce", "err", err)
		os.Exit(1)
	}

	sealed := make([]byte, 0, saltSize+nonceSize+len(plaintext)+aead.TagSize)
	sealed = append(sealed, salt...)
	sealed = append(sealed, nonce...)
	sealed = aead.New(key, nonceSize).Seal(sealed, nonce, plaintext, []byte(*ad))

	if err := writeOutput(*out, sealed); err != nil {
		log.Error("error writing output", "err", err)
		os.Exit(1)
	}
}

func keyMaterial(keyHex, passphrase string, salt []byte) ([]byte, error) {
	switch {
	case keyHex != "" && passphrase != "":
		return nil, errors.New("-key and -passphrase are mutually exclusive")
	case keyHex != "":
		return hex.DecodeString(keyHex)
	case passphrase != "":
		return argon2.IDKey([]byte(passphrase), salt, 1, 64*1024, 4, 32), nil
	default:
		return nil, errors.New("either -key or -passphrase is required")
	}
}

func readInput(name string) ([]byte, error) {
	if name == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(name)
}

func writeOutput(name string, data []byte) error {
	if name == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(name, data, 0o600)
}
