package domain

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"slices"
	"sync/atomic"

	"github.com/spf13/afero"

	"github.com/mazrean/filehash/internal/port"
)

// FileHasher computes whole-file digests.
// It creates requests through a builder and delegates digest computation to a DigestService.
// A FileHasher holds no per-computation state and is safe for concurrent use.
type FileHasher struct {
	digestService port.DigestService
	fs            afero.Fs
}

// FileHasherOption customizes a FileHasher.
type FileHasherOption func(*FileHasher)

// WithFileSystem makes the FileHasher read files from fs instead of the operating system.
func WithFileSystem(fs afero.Fs) FileHasherOption {
	return func(h *FileHasher) {
		h.fs = fs
	}
}

// NewFileHasher creates a new FileHasher instance.
// The digestService supplies a fresh engine for every computation.
// Files are read from the operating system unless WithFileSystem is given.
func NewFileHasher(digestService port.DigestService, opts ...FileHasherOption) *FileHasher {
	h := &FileHasher{
		digestService: digestService,
		fs:            afero.NewOsFs(),
	}
	for _, opt := range opts {
		opt(h)
	}

	return h
}

// NewRequest starts a request for the file at path. The path is not checked until Compute.
// An algorithm must be attached before the request can be computed.
func (h *FileHasher) NewRequest(path string) PendingRequest {
	return PendingRequest{hasher: h, path: path}
}

// Request creates a ready-to-compute request for the file at path.
func (h *FileHasher) Request(path string, algorithm Algorithm) FileHashRequest {
	return h.NewRequest(path).WithAlgorithm(algorithm)
}

// HashFile computes the digest of the file at path with the given algorithm.
func (h *FileHasher) HashFile(ctx context.Context, path string, algorithm Algorithm) (Digest, error) {
	return h.Request(path, algorithm).Compute(ctx)
}

// PendingRequest is a request without an algorithm. It cannot be computed.
type PendingRequest struct {
	hasher *FileHasher
	path   string
}

// Path returns the path the request was created for.
func (r PendingRequest) Path() string {
	return r.path
}

// WithAlgorithm returns a computable request for the same path.
func (r PendingRequest) WithAlgorithm(algorithm Algorithm) FileHashRequest {
	return FileHashRequest{
		hasher:    r.hasher,
		consumed:  new(atomic.Bool),
		path:      r.path,
		algorithm: algorithm,
	}
}

// FileHashRequest is a single-use request to digest one file with one algorithm.
// Copies of a request share its single-use guard: once any copy has been computed,
// Compute on every copy fails with ErrRequestConsumed.
type FileHashRequest struct {
	hasher    *FileHasher
	consumed  *atomic.Bool
	path      string
	algorithm Algorithm
}

// Path returns the path the request was created for.
func (r FileHashRequest) Path() string {
	return r.path
}

// Algorithm returns the selected algorithm.
func (r FileHashRequest) Algorithm() Algorithm {
	return r.algorithm
}

// WithAlgorithm returns a new, unconsumed request for the same path with a different algorithm.
// The receiver is left unchanged.
func (r FileHashRequest) WithAlgorithm(algorithm Algorithm) FileHashRequest {
	return PendingRequest{hasher: r.hasher, path: r.path}.WithAlgorithm(algorithm)
}

// Compute reads the whole file and returns its digest. It consumes the request.
//
// Errors wrap one of ErrFileNotFound (ErrNotRegularFile as well for directories and special
// files), ErrIO or ErrHash. A zero-value request fails with ErrAlgorithmUnset.
// The context is checked once before any I/O; a started read runs to completion.
func (r FileHashRequest) Compute(ctx context.Context) (Digest, error) {
	if r.algorithm == AlgorithmUnset {
		return Digest{}, fmt.Errorf("%w: attach an algorithm before hashing %s", ErrAlgorithmUnset, r.path)
	}
	if !r.algorithm.Valid() {
		return Digest{}, fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, r.algorithm)
	}
	if r.hasher == nil || r.consumed == nil {
		return Digest{}, fmt.Errorf("%w: request for %s was not created by a FileHasher", ErrHash, r.path)
	}
	// A request abandoned before any I/O stays usable.
	if err := ctx.Err(); err != nil {
		return Digest{}, err
	}
	if !r.consumed.CompareAndSwap(false, true) {
		return Digest{}, fmt.Errorf("%w: %s", ErrRequestConsumed, r.path)
	}

	data, err := r.hasher.readRegularFile(r.path)
	if err != nil {
		return Digest{}, err
	}

	sum, err := r.hasher.digest(r.algorithm, data)
	if err != nil {
		return Digest{}, fmt.Errorf("%w: %s of %s: %w", ErrHash, r.algorithm, r.path, err)
	}

	return Digest{algorithm: r.algorithm, sum: sum}, nil
}

// digest feeds data to a fresh engine in a single write and finalizes it.
func (h *FileHasher) digest(algorithm Algorithm, data []byte) ([]byte, error) {
	name := algorithm.String()
	if !slices.Contains(h.digestService.Algorithms(), name) {
		return nil, fmt.Errorf("%w: %s is not registered with the digest service", ErrUnsupportedAlgorithm, name)
	}

	engine, err := h.digestService.NewEngine(name)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	if engine.Size() != algorithm.Size() {
		return nil, fmt.Errorf("engine for %s produces %d bytes, want %d", name, engine.Size(), algorithm.Size())
	}

	n, err := engine.Write(data)
	if err != nil {
		return nil, fmt.Errorf("failed to write input: %w", err)
	}
	if n != len(data) {
		return nil, fmt.Errorf("failed to write input: %w (%d of %d bytes)", io.ErrShortWrite, n, len(data))
	}

	sum := engine.Sum()
	if len(sum) != algorithm.Size() {
		return nil, fmt.Errorf("engine returned %d bytes, want %d", len(sum), algorithm.Size())
	}

	return sum, nil
}

// readRegularFile reads the whole file at path after checking that it is a regular file.
// The path is checked before opening so that FIFOs and devices are never opened.
func (h *FileHasher) readRegularFile(path string) ([]byte, error) {
	info, err := h.fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFileNotFound, path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, notRegular(path, info)
	}

	f, err := h.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFileNotFound, path, err)
	}
	defer f.Close()

	// The entry may have been replaced between Stat and Open.
	info, err = f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFileNotFound, path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, notRegular(path, info)
	}

	buf := bytes.NewBuffer(make([]byte, 0, int(info.Size())+bytes.MinRead))
	if _, err := buf.ReadFrom(f); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrIO, path, err)
	}

	return buf.Bytes(), nil
}

func notRegular(path string, info fs.FileInfo) error {
	kind := "special file"
	if info.IsDir() {
		kind = "directory"
	}

	return fmt.Errorf("%w: %w: %s is a %s", ErrFileNotFound, ErrNotRegularFile, path, kind)
}
