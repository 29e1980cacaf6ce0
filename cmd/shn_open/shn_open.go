// Command shn_open decrypts and verifies a file produced by shn_seal.
package main

import (
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
		in         = flag.String("in", "", "the file to open, or stdin if empty")
		out        = flag.String("out", "", "the output file, or stdout if empty")
		keyHex     = flag.String("key", "", "the key as hex")
		passphrase = flag.String("passphrase", "", "derive the key from a passphrase instead")
		ad         = flag.String("ad", "", "additional data to authenticate but not decrypt")
	)
	flag.Parse()

	log := slog.New(slog.Default().Handler())

	sealed, err := readInput(*in)
	if err != nil {
		log.Error("error reading input", "err", err)
		os.Exit(1)
	}

	if len(sealed) < saltSize+nonceSize+aead.TagSize {
		log.Error("input too short to be a sealed file", "len", len(sealed))
		os.Exit(1)
	}

	salt, nonce, ciphertext := sealed[:saltSize], sealed[saltSize:saltSize+nonceSize], sealed[saltSize+nonceSize:]

	key, err := keyMaterial(*keyHex, *passphrase, salt)
	if err != nil {
		log.Error("invalid key material", "err", err)
		os.Exit(1)
	}

	plaintext, err := aead.New(key, nonceSize).Open(nil, nonce, ciphertext, []byte(*ad))
	if err != nil {
		log.Error("message authentication failed", "err", err)
		os.Exit(1)
	}

	if err := writeOutput(*out, plaintext); err != nil {
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
