// Package errors defines all exported error sentinels for the hashset library.
//
// This is the single source of truth for error values. The top-level hashset
// package re-exports them, so errors.Is checks work whichever import callers
// use.
package errors

import "errors"

// Misuse errors
var (
	ErrNilSet        = errors.New("hashset: set can not be nil")
	ErrUninitialized = errors.New("hashset: set has no capacity (never inserted into or closed)")
)

// Operation failures
var (
	ErrTableFull        = errors.New("hashset: no free slot found")
	ErrAllocFailed      = errors.New("hashset: allocation failed")
	ErrCapacityOverflow = errors.New("hashset: capacity overflows int")
)

// Configuration errors
var (
	ErrInvalidCapacity   = errors.New("hashset: initial capacity must be at least 1")
	ErrInvalidLoadFactor = errors.New("hashset: load factor must be in (0, 1]")
	ErrInvalidGrowRate   = errors.New("hashset: grow rate must be at least 2")
	ErrUnknownHash       = errors.New("hashset: unknown hash algorithm")
	ErrNilOption         = errors.New("hashset: option value can not be nil")
)
