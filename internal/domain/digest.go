package domain

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"slices"
)

// Digest is the fixed-length output of a digest algorithm applied to a file.
// It is immutable: accessors never expose the underlying slice.
type Digest struct {
	sum       []byte
	algorithm Algorithm
}

// NewDigest creates a Digest holding a copy of sum.
func NewDigest(algorithm Algorithm, sum []byte) Digest {
	return Digest{algorithm: algorithm, sum: slices.Clone(sum)}
}

// Algorithm returns the algorithm that produced the digest.
func (d Digest) Algorithm() Algorithm {
	return d.algorithm
}

// Bytes returns a copy of the digest in the algorithm's canonical byte order.
func (d Digest) Bytes() []byte {
	return slices.Clone(d.sum)
}

// Len returns the digest length in bytes.
func (d Digest) Len() int {
	return len(d.sum)
}

// Hex returns the lowercase hexadecimal encoding.
func (d Digest) Hex() string {
	return hex.EncodeToString(d.sum)
}

// Base64 returns the standard padded base64 encoding.
func (d Digest) Base64() string {
	return base64.StdEncoding.EncodeToString(d.sum)
}

// String returns "<algorithm>:<hex>".
func (d Digest) String() string {
	return d.algorithm.String() + ":" + d.Hex()
}

// Equal reports whether both digests come from the same algorithm and hold the same bytes.
func (d Digest) Equal(other Digest) bool {
	return d.algorithm == other.algorithm && bytes.Equal(d.sum, other.sum)
}
