package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// keygen prints a random SESSION_SECRET. The optional argument is the number
// of random bytes, 32 by default.
func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	size := 32
	if len(os.Args) > 1 {
		n, err := strconv.Atoi(os.Args[1])
		if err != nil || n < 32 {
			log.Fatal().Str("size", os.Args[1]).Msg("size must be a number of at least 32")
		}
		size = n
	}

	key := make([]byte, size)
	if _, err := rand.Read(key); err != nil {
		log.Fatal().Err(err).Msg("failed to read random bytes")
	}
	fmt.Println(base64.RawURLEncoding.EncodeToString(key))
}
