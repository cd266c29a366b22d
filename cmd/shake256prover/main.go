// Command shake256prover proves, and then immediately checks, a batch of
// SHAKE-256 evaluations over zero-filled dummy messages: generate
// n_messages fixed messages (a single positional argument, default 1),
// prove the batch, verify the result, and log the achieved throughput.
package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/vybium/shake256air/internal/shake256air/config"
	"github.com/vybium/shake256air/internal/shake256air/constants"
	"github.com/vybium/shake256air/pkg/shake256air"
)

func main() {
	configureLogging()

	var friQueries int
	var powBits uint

	root := &cobra.Command{
		Use:   "shake256prover [n_messages]",
		Short: "Prove and verify a batch of fixed-length SHAKE-256 evaluations",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nMessages := 1
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("n_messages must be an integer, got %q", args[0])
				}
				nMessages = n
			}
			return run(nMessages, friQueries, powBits)
		},
	}
	root.Flags().IntVar(&friQueries, "fri-queries", config.DefaultConfig().FRIQueries, "number of driver FRI query openings")
	root.Flags().UintVar(&powBits, "pow-bits", config.DefaultConfig().ProofOfWorkBits, "interaction proof-of-work difficulty, in bits")

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("shake256prover failed")
		os.Exit(1)
	}
}

func run(nMessages, friQueries int, powBits uint) error {
	if nMessages <= 0 {
		return fmt.Errorf("n-messages must be positive, got %d", nMessages)
	}

	cfg := config.DefaultConfig().WithFRIQueries(friQueries).WithProofOfWorkBits(powBits)
	if err := cfg.Validate(); err != nil {
		return err
	}

	messages := make([][]byte, nMessages)
	for i := range messages {
		messages[i] = make([]byte, constants.NBytesInMessage)
	}

	log.Info().Int("n_messages", nMessages).Msg("generating trace and proving")
	start := time.Now()
	proof, err := shake256air.Prove(messages, cfg)
	if err != nil {
		return fmt.Errorf("prove: %w", err)
	}
	proveElapsed := time.Since(start)

	start = time.Now()
	if err := shake256air.Verify(proof, cfg); err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	verifyElapsed := time.Since(start)

	rate := float64(nMessages) / proveElapsed.Seconds()
	log.Info().
		Dur("prove_duration", proveElapsed).
		Dur("verify_duration", verifyElapsed).
		Float64("shake256_per_second", rate).
		Int("shake256_log_size", proof.Claim.Shake256LogSize).
		Msg("proof generated and verified")
	return nil
}

// configureLogging sets up zerolog's console writer and honors RUST_LOG
// as the level filter variable: "debug", "info" (default), "warn", "error".
func configureLogging() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if lvl, err := zerolog.ParseLevel(os.Getenv("RUST_LOG")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
}
