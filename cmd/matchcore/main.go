// Command matchcore is the demo CLI surface around the library: it
// never implements matching logic itself, only wires internal/book,
// internal/registry, internal/feed, internal/ingest, internal/metrics
// and internal/render together for a human to run.
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})

	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("matchcore exited with an error")
		os.Exit(1)
	}
}
