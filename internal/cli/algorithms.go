package cli

import (
	"slices"

	"github.com/alecthomas/kong"

	"github.com/mazrean/filehash/internal/adapter"
	"github.com/mazrean/filehash/internal/domain"
	"github.com/mazrean/filehash/internal/port"
)

// AlgorithmsCmd represents the algorithms command
type AlgorithmsCmd struct {
}

// Run executes the algorithms command
func (c *AlgorithmsCmd) Run(ctx *kong.Context) error {
	_, verbose := globalFlags(ctx)

	return c.runWithDeps(NewLogger(verbose), adapter.NewPrimitiveDigestService())
}

// runWithDeps lists the supported algorithms that digestService can compute.
func (c *AlgorithmsCmd) runWithDeps(logger *Logger, digestService port.DigestService) error {
	registered := digestService.Algorithms()
	logger.Verbose("Digest service provides: %v", registered)

	logger.Info("%-12s %6s  %s", "NAME", "BYTES", "TYPE")
	for _, alg := range domain.Algorithms() {
		if !slices.Contains(registered, alg.String()) {
			logger.Verbose("Skipping %s: not provided by the digest service", alg)
			continue
		}

		kind := "cryptographic"
		if !alg.Cryptographic() {
			kind = "non-cryptographic"
		}
		logger.Info("%-12s %6d  %s", alg, alg.Size(), kind)
	}

	return nil
}
