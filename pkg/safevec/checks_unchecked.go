//go:build safevec_unchecked

package safevec

const boundsChecking = false
