package cli

import (
	"context"
	"errors"

	"github.com/alecthomas/kong"

	"github.com/mazrean/filehash/internal/domain"
)

// InitCmd represents the init command
type InitCmd struct {
	Algorithm string `short:"a" default:"sha256" help:"Default digest algorithm"`
	Encoding  string `short:"e" default:"hex" enum:"hex,base64" help:"Default output encoding (hex, base64)"`
	Jobs      int    `short:"j" help:"Default number of files hashed concurrently (0 uses the CPU count)"`
}

// Run executes the init command
// This method writes a new .filehash.toml configuration file holding the given defaults.
func (c *InitCmd) Run(ctx *kong.Context) error {
	configPath, verbose := globalFlags(ctx)

	return c.run(configPath, verbose)
}

// run is the internal implementation that can be called from tests with custom parameters
func (c *InitCmd) run(configPath string, verbose bool) error {
	logger := NewLogger(verbose)

	return c.runWithLogger(configPath, logger)
}

// runWithLogger executes the init command with a custom logger (for testing)
func (c *InitCmd) runWithLogger(configPath string, logger *Logger) error {
	logger.Info("Initializing %s", configPath)

	alg, err := domain.ParseAlgorithm(c.Algorithm)
	if err != nil {
		logger.Error("%v", err)
		logger.Error("Run 'filehash algorithms' to list supported algorithms")
		return err
	}

	config := &domain.Config{
		Algorithm: alg,
		Encoding:  c.Encoding,
		Jobs:      c.Jobs,
	}
	logger.VerboseFields("Writing configuration", map[string]any{
		"algorithm": alg.String(),
		"encoding":  c.Encoding,
		"jobs":      c.Jobs,
	})

	if err := domain.NewConfigManager(configPath).Initialize(context.Background(), config); err != nil {
		if errors.Is(err, domain.ErrConfigExists) {
			logger.Error("Configuration file already exists at %s", configPath)
			logger.Error("Remove the existing file or use a different path")
			return err
		}

		logger.Error("Failed to create configuration file: %v", err)
		logger.Error("Check file permissions and try again")
		return err
	}

	logger.Info("Successfully initialized %s", configPath)
	logger.Info("  algorithm: %s", alg)
	logger.Info("  encoding:  %s", c.Encoding)

	return nil
}
