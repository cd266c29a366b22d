// Package config holds the prover/verifier configuration: security
// parameters for the driver's proof-of-work grinding and FRI query count,
// and the Fiat-Shamir transcript's hash family selector.
package config

import "fmt"

// Config is the prover/verifier configuration for one Prove/Verify call.
type Config struct {
	// SecurityBits is the target soundness bound. Validate requires it to
	// be positive; it does not set or adjust FRIQueries, which must be
	// given explicitly.
	SecurityBits int

	// FRIQueries is the number of query openings the driver's low-degree
	// test stand-in draws over the committed trace-column tree (one set
	// for the whole proof, not one per component).
	FRIQueries int

	// ProofOfWorkBits is the number of leading zero bits the channel's
	// grinding nonce must produce before the interaction phase starts.
	ProofOfWorkBits uint

	// HashFunction selects the Fiat-Shamir transcript's hash backend:
	// "blake2s" (default) or "sha3".
	HashFunction string
}

// DefaultConfig returns the configuration used by cmd/shake256prover and by
// tests that don't otherwise care about security/performance tuning.
func DefaultConfig() Config {
	return Config{
		SecurityBits:    96,
		FRIQueries:      32,
		ProofOfWorkBits: 16,
		HashFunction:    "blake2s",
	}
}

// Validate rejects configurations the driver cannot act on.
func (c Config) Validate() error {
	if c.SecurityBits <= 0 {
		return fmt.Errorf("config: security bits must be positive, got %d", c.SecurityBits)
	}
	if c.FRIQueries <= 0 {
		return fmt.Errorf("config: FRI queries must be positive, got %d", c.FRIQueries)
	}
	if c.HashFunction != "blake2s" && c.HashFunction != "sha3" {
		return fmt.Errorf("config: hash function must be 'blake2s' or 'sha3', got %q", c.HashFunction)
	}
	return nil
}

// WithFRIQueries sets the number of FRI query openings.
func (c Config) WithFRIQueries(n int) Config {
	c.FRIQueries = n
	return c
}

// WithProofOfWorkBits sets the grinding difficulty.
func (c Config) WithProofOfWorkBits(bits uint) Config {
	c.ProofOfWorkBits = bits
	return c
}

// WithHashFunction sets the transcript hash backend.
func (c Config) WithHashFunction(name string) Config {
	c.HashFunction = name
	return c
}

// WithSecurityBits sets the target soundness bound.
func (c Config) WithSecurityBits(bits int) Config {
	c.SecurityBits = bits
	return c
}
