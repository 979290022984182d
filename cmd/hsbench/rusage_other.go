//go:build !unix

package main

// getMaxRSS is unavailable without getrusage; peak RSS is reported as 0.
func getMaxRSS() uint64 { return 0 }
