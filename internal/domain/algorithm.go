package domain

import (
	"fmt"
	"strings"
)

// Algorithm selects the digest algorithm applied to a file.
// The zero value is AlgorithmUnset and is never accepted for computation.
type Algorithm int

// Supported algorithms. New selectors must also be registered with the digest service
// under the name returned by String.
const (
	AlgorithmUnset Algorithm = iota
	MD5
	SHA1
	SHA256
	SHA512
	XXHash64
	BLAKE2b512
	BLAKE3
)

type algorithmInfo struct {
	name    string
	size    int
	aliases []string
}

var algorithms = map[Algorithm]algorithmInfo{
	MD5:        {name: "md5", size: 16},
	SHA1:       {name: "sha1", size: 20, aliases: []string{"sha-1"}},
	SHA256:     {name: "sha256", size: 32, aliases: []string{"sha-256"}},
	SHA512:     {name: "sha512", size: 64, aliases: []string{"sha-512"}},
	XXHash64:   {name: "xxhash64", size: 8, aliases: []string{"xxhash", "xxh64"}},
	BLAKE2b512: {name: "blake2b-512", size: 64, aliases: []string{"blake2b", "blake2b512"}},
	BLAKE3:     {name: "blake3", size: 32, aliases: []string{"b3"}},
}

// Algorithms returns every supported algorithm in declaration order.
func Algorithms() []Algorithm {
	return []Algorithm{MD5, SHA1, SHA256, SHA512, XXHash64, BLAKE2b512, BLAKE3}
}

// ParseAlgorithm resolves a canonical name or alias, ignoring case and surrounding space.
func ParseAlgorithm(name string) (Algorithm, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, alg := range Algorithms() {
		info := algorithms[alg]
		if info.name == name {
			return alg, nil
		}
		for _, alias := range info.aliases {
			if alias == name {
				return alg, nil
			}
		}
	}

	return AlgorithmUnset, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, name)
}

// String returns the canonical lowercase name, e.g. "sha256".
func (a Algorithm) String() string {
	if info, ok := algorithms[a]; ok {
		return info.name
	}
	if a == AlgorithmUnset {
		return "unset"
	}

	return fmt.Sprintf("Algorithm(%d)", int(a))
}

// Size returns the digest length in bytes, or 0 for an invalid selector.
func (a Algorithm) Size() int {
	return algorithms[a].size
}

// Valid reports whether a names a supported algorithm.
func (a Algorithm) Valid() bool {
	_, ok := algorithms[a]
	return ok
}

// Cryptographic reports whether the algorithm is a cryptographic hash.
func (a Algorithm) Cryptographic() bool {
	return a.Valid() && a != XXHash64
}

// MarshalText implements encoding.TextMarshaler.
func (a Algorithm) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, a)
	}

	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Algorithm) UnmarshalText(text []byte) error {
	alg, err := ParseAlgorithm(string(text))
	if err != nil {
		return err
	}
	*a = alg

	return nil
}
