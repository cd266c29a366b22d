package config

import "testing"

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
}

func TestValidateRejectsNonPositiveSecurityBits(t *testing.T) {
	c := DefaultConfig().WithSecurityBits(0)
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for zero security bits")
	}
}

func TestValidateRejectsNonPositiveFRIQueries(t *testing.T) {
	c := DefaultConfig().WithFRIQueries(-1)
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for negative FRI queries")
	}
}

func TestValidateRejectsUnknownHashFunction(t *testing.T) {
	c := DefaultConfig().WithHashFunction("md5")
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for unsupported hash function")
	}
}

func TestWithersAreChainable(t *testing.T) {
	c := DefaultConfig().
		WithFRIQueries(64).
		WithProofOfWorkBits(20).
		WithHashFunction("sha3").
		WithSecurityBits(128)
	if err := c.Validate(); err != nil {
		t.Fatalf("chained config should validate, got %v", err)
	}
	if c.FRIQueries != 64 || c.ProofOfWorkBits != 20 || c.HashFunction != "sha3" || c.SecurityBits != 128 {
		t.Fatalf("withers did not apply: %+v", c)
	}
}
