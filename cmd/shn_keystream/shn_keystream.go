// Command shn_keystream writes raw Shannon keystream bytes to stdout, as an interop debugging tap.
package main

import (
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	shannon "github.com/teidesu/shannon-es"
	"golang.org/x/crypto/argon2"
)

func main() {
	var (
		keyHex     = flag.String("key", "", "the key as hex")
		passphrase = flag.String("passphrase", "", "derive the key from a passphrase instead (requires -salt)")
		saltHex    = flag.String("salt", "", "the argon2id salt as hex, required with -passphrase")
		nonceHex   = flag.String("nonce", "", "an optional nonce as hex")
		n          = flag.Int("n", 64, "the number of keystream bytes to write")
	)
	flag.Parse()

	log := slog.New(slog.Default().Handler())

	key, err := keyMaterial(*keyHex, *passphrase, *saltHex)
	if err != nil {
		log.Error("invalid key material", "err", err)
		os.Exit(1)
	}

	c := shannon.New(key)
	if *nonceHex != "" {
		nonce, err := hex.DecodeString(*nonceHex)
		if err != nil {
			log.Error("invalid nonce", "err", err)
			os.Exit(1)
		}
		c.Nonce(nonce)
	}

	buf := make([]byte, 32*1024)
	for remaining := *n; remaining > 0; {
		chunk := buf
		if remaining < len(chunk) {
			chunk = chunk[:remaining]
		}
		clear(chunk)
		c.XORKeyStream(chunk, chunk)
		if _, err := os.Stdout.Write(chunk); err != nil {
			log.Error("error writing keystream", "err", err)
			os.Exit(1)
		}
		remaining -= len(chunk)
	}
}

func keyMaterial(keyHex, passphrase, saltHex string) ([]byte, error) {
	switch {
	case keyHex != "" && passphrase != "":
		return nil, errors.New("-key and -passphrase are mutually exclusive")
	case keyHex != "":
		return hex.DecodeString(keyHex)
	case passphrase != "":
		salt, err := hex.DecodeString(saltHex)
		if err != nil {
			return nil, fmt.Errorf("invalid salt: %w", err)
		}
		if len(salt) == 0 {
			return nil, errors.New("-passphrase requires a non-empty -salt")
		}
		return argon2.IDKey([]byte(passphrase), salt, 1, 64*1024, 4, 32), nil
	default:
		return nil, errors.New("either -key or -passphrase is required")
	}
}
