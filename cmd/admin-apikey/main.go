package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"stable-route.backend/pkg/crypto"
)

// Generates an operator API key and its bcrypt hash. The key goes to the
// operator, the hash goes in ADMIN_API_KEY_HASH; the plaintext is never
// stored anywhere.

type apikeyDeps struct {
	generateKey func() (string, error)
	hashKey     func(string) (string, error)
	out         io.Writer
}

func defaultApikeyDeps() apikeyDeps {
	return apikeyDeps{
		generateKey: crypto.GenerateAPIKey,
		hashKey:     crypto.HashAPIKey,
		out:         os.Stdout,
	}
}

func runAdminAPIKey(args []string, deps apikeyDeps) error {
	fs := flag.NewFlagSet("admin-apikey", flag.ContinueOnError)
	keyFlag := fs.String("key", "", "hash an existing key instead of generating one")
	if err := fs.Parse(args); err != nil {
		return err
	}

	key := *keyFlag
	if key == "" {
		generated, err := deps.generateKey()
		if err != nil {
			return fmt.Errorf("failed to generate api key: %w", err)
		}
		key = generated
	}

	hash, err := deps.hashKey(key)
	if err != nil {
		return fmt.Errorf("failed to hash api key: %w", err)
	}

	_, _ = fmt.Fprintln(deps.out, "Generated admin API key. Store the key safely; only the hash goes in the environment.")
	_, _ = fmt.Fprintf(deps.out, "API_KEY=%s\n", key)
	_, _ = fmt.Fprintf(deps.out, "ADMIN_API_KEY_HASH=%s\n", hash)
	return nil
}

func main() {
	if err := runAdminAPIKey(os.Args[1:], defaultApikeyDeps()); err != nil {
		log.Fatal(err)
	}
}
