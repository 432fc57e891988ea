package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"golang.org/x/sync/errgroup"

	"github.com/mazrean/filehash/internal/adapter"
	"github.com/mazrean/filehash/internal/domain"
)

// HashCmd represents the hash command
type HashCmd struct {
	Files     []string `arg:"" name:"file" help:"Files to hash"`
	Algorithm string   `short:"a" help:"Digest algorithm (see 'filehash algorithms'). Overrides the configuration file"`
	Encoding  string   `short:"e" help:"Output encoding: hex or base64. Overrides the configuration file"`
	Jobs      int      `short:"j" help:"Number of files hashed concurrently. Overrides the configuration file"`
	Tag       bool     `help:"Print BSD-style lines: ALGORITHM (file) = digest"`
}

// hashOptions holds the effective settings after merging flags over the configuration.
type hashOptions struct {
	algorithm domain.Algorithm
	encoding  string
	jobs      int
}

// fileResult is the outcome of hashing one file.
type fileResult struct {
	err     error
	path    string
	digest  domain.Digest
	elapsed time.Duration
}

// Run executes the hash command
func (c *HashCmd) Run(ctx *kong.Context) error {
	configPath, verbose := globalFlags(ctx)

	return c.run(configPath, verbose)
}

// run is the internal implementation that can be called from tests with custom parameters
func (c *HashCmd) run(configPath string, verbose bool) error {
	logger := NewLogger(verbose)

	return c.runWithLogger(configPath, logger)
}

// runWithLogger executes the hash command with a custom logger (for testing)
func (c *HashCmd) runWithLogger(configPath string, logger *Logger) error {
	ctx := context.Background()

	logger.Verbose("Loading configuration from %s", configPath)
	config, err := domain.NewConfigManager(configPath).LoadOrDefault(ctx)
	if err != nil {
		logger.Error("Failed to load configuration: %v", err)
		logger.Error("Fix or remove %s and try again", configPath)
		return err
	}

	opts, err := c.resolveOptions(config)
	if err != nil {
		logger.Error("%v", err)
		if errors.Is(err, domain.ErrUnsupportedAlgorithm) {
			logger.Error("Run 'filehash algorithms' to list supported algorithms")
		}
		return err
	}

	logger.VerboseFields("Hashing files", map[string]any{
		"algorithm": opts.algorithm.String(),
		"encoding":  opts.encoding,
		"jobs":      opts.jobs,
		"files":     len(c.Files),
	})
	if !opts.algorithm.Cryptographic() {
		logger.Verbose("%s is not a cryptographic hash; do not use it to detect tampering", opts.algorithm)
	}

	results := hashFiles(ctx, domain.NewFileHasher(adapter.NewPrimitiveDigestService()), c.Files, opts)

	var errs []error
	for _, result := range results {
		if result.err != nil {
			errs = append(errs, result.err)
			logger.Error("filehash: %s: %v", result.path, result.err)
			if hint := errorHint(result.err); hint != "" {
				logger.Error("  %s", hint)
			}
			continue
		}

		logger.VerboseFields("Hashed file", map[string]any{
			"path":         result.path,
			"digest_bytes": result.digest.Len(),
			"elapsed":      result.elapsed.String(),
		})
		logger.Info("%s", c.formatLine(result, opts))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%d of %d file(s) could not be hashed: %w", len(errs), len(results), errors.Join(errs...))
	}

	return nil
}

// resolveOptions merges command-line flags over the loaded configuration.
func (c *HashCmd) resolveOptions(config *domain.Config) (hashOptions, error) {
	opts := hashOptions{
		algorithm: config.Algorithm,
		encoding:  config.Encoding,
		jobs:      config.Jobs,
	}

	if c.Algorithm != "" {
		alg, err := domain.ParseAlgorithm(c.Algorithm)
		if err != nil {
			return hashOptions{}, err
		}
		opts.algorithm = alg
	}

	if c.Encoding != "" {
		opts.encoding = strings.ToLower(c.Encoding)
	}
	if opts.encoding != domain.EncodingHex && opts.encoding != domain.EncodingBase64 {
		return hashOptions{}, fmt.Errorf("unsupported encoding %q: use %q or %q", opts.encoding, domain.EncodingHex, domain.EncodingBase64)
	}

	if c.Jobs < 0 {
		return hashOptions{}, fmt.Errorf("jobs must not be negative, got %d", c.Jobs)
	}
	if c.Jobs > 0 {
		opts.jobs = c.Jobs
	}
	if opts.jobs < 1 {
		opts.jobs = 1
	}

	return opts, nil
}

// hashFiles hashes every path with its own request, at most opts.jobs at a time.
// Results are returned in the order of paths.
func hashFiles(ctx context.Context, hasher *domain.FileHasher, paths []string, opts hashOptions) []fileResult {
	results := make([]fileResult, len(paths))

	var eg errgroup.Group
	eg.SetLimit(opts.jobs)
	for i, path := range paths {
		eg.Go(func() error {
			start := time.Now()
			digest, err := hasher.HashFile(ctx, path, opts.algorithm)
			results[i] = fileResult{
				path:    path,
				digest:  digest,
				err:     err,
				elapsed: time.Since(start),
			}
			// Per-file failures are reported individually, never cancel siblings.
			return nil
		})
	}
	_ = eg.Wait()

	return results
}

func (c *HashCmd) formatLine(result fileResult, opts hashOptions) string {
	encoded := result.digest.Hex()
	if opts.encoding == domain.EncodingBase64 {
		encoded = result.digest.Base64()
	}

	if c.Tag {
		return fmt.Sprintf("%s (%s) = %s", strings.ToUpper(opts.algorithm.String()), result.path, encoded)
	}

	return fmt.Sprintf("%s  %s", encoded, result.path)
}

// errorHint returns a recommended action for a failed file.
func errorHint(err error) string {
	switch domain.ErrorKind(err) {
	case "not-regular-file":
		return "Directories and special files cannot be hashed"
	case "file-not-found":
		return "Check that the path exists and is readable"
	case "io":
		return "The file could not be read completely; check the device and permissions"
	case "hash":
		return "The digest engine failed; this is unexpected, please report it"
	default:
		return ""
	}
}
