package adapter

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"errors"
	"fmt"
	"hash"
	"slices"

	"github.com/cespare/xxhash/v2"
	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"

	"github.com/mazrean/filehash/internal/port"
)

var (
	// ErrUnknownAlgorithm indicates that no primitive is registered under the requested name.
	ErrUnknownAlgorithm = errors.New("unknown digest algorithm")

	// ErrEngineFinalized indicates a write to an engine whose digest was already taken.
	ErrEngineFinalized = errors.New("digest engine already finalized")
)

// Primitive constructs a fresh hash state for one computation.
type Primitive func() (hash.Hash, error)

// PrimitiveDigestService is an implementation of DigestService backed by hash primitive libraries.
// The standard library supplies MD5 and the SHA families, github.com/cespare/xxhash/v2 supplies
// XXH64, golang.org/x/crypto/blake2b supplies BLAKE2b and github.com/zeebo/blake3 supplies BLAKE3.
type PrimitiveDigestService struct {
	primitives map[string]Primitive
}

// Option customizes a PrimitiveDigestService.
type Option func(*PrimitiveDigestService)

// WithPrimitive registers a primitive under name, replacing any existing registration.
func WithPrimitive(name string, primitive Primitive) Option {
	return func(s *PrimitiveDigestService) {
		s.primitives[name] = primitive
	}
}

// NewPrimitiveDigestService creates a new PrimitiveDigestService with the default primitives
// registered, then applies opts.
func NewPrimitiveDigestService(opts ...Option) *PrimitiveDigestService {
	s := &PrimitiveDigestService{
		primitives: map[string]Primitive{
			"md5":         infallible(md5.New),
			"sha1":        infallible(sha1.New),
			"sha256":      infallible(sha256.New),
			"sha512":      infallible(sha512.New),
			"xxhash64":    func() (hash.Hash, error) { return xxhash.New(), nil },
			"blake2b-512": func() (hash.Hash, error) { return blake2b.New512(nil) },
			"blake3":      func() (hash.Hash, error) { return blake3.New(), nil },
		},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// NewEngine returns a fresh engine for the named algorithm.
func (s *PrimitiveDigestService) NewEngine(algorithm string) (port.DigestEngine, error) {
	primitive, ok := s.primitives[algorithm]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algorithm)
	}

	h, err := primitive()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s: %w", algorithm, err)
	}

	return &primitiveEngine{h: h}, nil
}

// Algorithms returns the registered algorithm names in sorted order.
func (s *PrimitiveDigestService) Algorithms() []string {
	names := make([]string, 0, len(s.primitives))
	for name := range s.primitives {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}

func infallible(ctor func() hash.Hash) Primitive {
	return func() (hash.Hash, error) {
		return ctor(), nil
	}
}

// primitiveEngine adapts a hash.Hash to the single-use DigestEngine protocol.
type primitiveEngine struct {
	h   hash.Hash
	sum []byte
}

func (e *primitiveEngine) Write(p []byte) (int, error) {
	if e.sum != nil {
		return 0, ErrEngineFinalized
	}

	return e.h.Write(p)
}

// Sum finalizes the engine. Repeated calls return the same digest.
func (e *primitiveEngine) Sum() []byte {
	if e.sum == nil {
		e.sum = e.h.Sum(nil)
	}

	return slices.Clone(e.sum)
}

func (e *primitiveEngine) Size() int {
	return e.h.Size()
}
