package domain

import "errors"

// Sentinel errors for domain-level error identification.
// Failures are wrapped with context via fmt.Errorf("%w") and matched with errors.Is.
var (
	// ErrFileNotFound indicates that the path does not exist, cannot be opened,
	// or does not refer to a regular file.
	ErrFileNotFound = errors.New("file not found")

	// ErrNotRegularFile indicates that the path exists but is a directory or special file.
	// It is always reported together with ErrFileNotFound.
	ErrNotRegularFile = errors.New("not a regular file")

	// ErrIO indicates that the file was opened but reading its content failed.
	ErrIO = errors.New("failed to read file")

	// ErrHash indicates that the digest engine failed to accept the input or to finalize.
	ErrHash = errors.New("failed to compute digest")

	// ErrAlgorithmUnset indicates a computation attempted without choosing an algorithm.
	ErrAlgorithmUnset = errors.New("digest algorithm not set")

	// ErrUnsupportedAlgorithm indicates an algorithm name or selector outside the supported set.
	ErrUnsupportedAlgorithm = errors.New("unsupported digest algorithm")

	// ErrRequestConsumed indicates a second computation on a single-use request.
	ErrRequestConsumed = errors.New("file hash request already consumed")

	// ErrConfigNotFound indicates that the configuration file was not found.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrConfigExists indicates that a configuration file already exists.
	ErrConfigExists = errors.New("configuration file already exists")

	// ErrInvalidConfig indicates that the configuration has invalid field values.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ErrorKind returns a short stable label for the most specific known failure in err's chain.
// It returns "" for nil and "unknown" for errors outside the taxonomy.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotRegularFile):
		return "not-regular-file"
	case errors.Is(err, ErrFileNotFound):
		return "file-not-found"
	case errors.Is(err, ErrIO):
		return "io"
	case errors.Is(err, ErrHash):
		return "hash"
	case errors.Is(err, ErrAlgorithmUnset):
		return "algorithm-unset"
	case errors.Is(err, ErrUnsupportedAlgorithm):
		return "unsupported-algorithm"
	case errors.Is(err, ErrRequestConsumed):
		return "request-consumed"
	default:
		return "unknown"
	}
}
