package port

// DigestService is the abstraction interface for constructing digest engines.
// Algorithms are addressed by their canonical lowercase name (e.g., "sha256").
type DigestService interface {
	// NewEngine returns a fresh, single-use engine for the named algorithm.
	// Returns an error if the algorithm is not registered.
	NewEngine(algorithm string) (DigestEngine, error)

	// Algorithms returns the names of all registered algorithms in sorted order.
	Algorithms() []string
}

// DigestEngine drives the two-phase digest protocol: accept input, then finalize.
// An engine must not be reused across computations.
type DigestEngine interface {
	// Write feeds bytes into the digest state.
	// Writes after Sum has been called fail.
	Write(p []byte) (int, error)

	// Sum finalizes the digest and returns it in the algorithm's canonical byte order.
	Sum() []byte

	// Size returns the digest length in bytes.
	Size() int
}
