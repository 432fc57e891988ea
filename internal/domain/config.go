// Package domain provides core domain models and business logic for filehash.
// It defines the algorithm selectors, the file hash request builder, the digest value,
// the CLI configuration and domain-level errors.
package domain

import (
	"fmt"
	"runtime"
)

// Output encodings supported for displaying digests.
const (
	EncodingHex    = "hex"
	EncodingBase64 = "base64"
)

// Config represents the entire .filehash.toml configuration.
// Every field is optional; zero values fall back to the built-in defaults.
type Config struct {
	Algorithm Algorithm `toml:"algorithm,omitempty"`
	Encoding  string    `toml:"encoding,omitempty"`
	Jobs      int       `toml:"jobs,omitempty"`
}

// DefaultConfig returns the built-in defaults used when no configuration file exists.
func DefaultConfig() *Config {
	return &Config{
		Algorithm: SHA256,
		Encoding:  EncodingHex,
		Jobs:      runtime.GOMAXPROCS(0),
	}
}

// Validate validates the configuration.
// Unset fields are accepted; set fields must hold supported values.
func (c *Config) Validate() error {
	if c.Algorithm != AlgorithmUnset && !c.Algorithm.Valid() {
		return fmt.Errorf("%w: algorithm %s is not supported", ErrInvalidConfig, c.Algorithm)
	}

	switch c.Encoding {
	case "", EncodingHex, EncodingBase64:
	default:
		return fmt.Errorf("%w: encoding %q must be %q or %q", ErrInvalidConfig, c.Encoding, EncodingHex, EncodingBase64)
	}

	if c.Jobs < 0 {
		return fmt.Errorf("%w: jobs must not be negative, got %d", ErrInvalidConfig, c.Jobs)
	}

	return nil
}

// WithDefaults returns a copy of c with unset fields filled from DefaultConfig.
func (c *Config) WithDefaults() *Config {
	merged := DefaultConfig()
	if c == nil {
		return merged
	}

	if c.Algorithm != AlgorithmUnset {
		merged.Algorithm = c.Algorithm
	}
	if c.Encoding != "" {
		merged.Encoding = c.Encoding
	}
	if c.Jobs > 0 {
		merged.Jobs = c.Jobs
	}

	return merged
}
