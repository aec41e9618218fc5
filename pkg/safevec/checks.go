//go:build !safevec_unchecked

package safevec

// boundsChecking enables precondition assertions and the iterator shadow
// bounds. Build with -tags safevec_unchecked to compile them out.
const boundsChecking = true
