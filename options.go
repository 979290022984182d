package hashset

import (
	"fmt"
	"log/slog"

	seterrors "github.com/UPEV1sion/hashset/errors"
)

const (
	// DefaultInitialCapacity is the capacity a set jumps to on its first growth.
	DefaultInitialCapacity = 1024

	// DefaultLoadFactor is the occupancy ratio at which an insert grows the set first.
	DefaultLoadFactor = 0.75

	// DefaultGrowRate is the multiplicative growth factor.
	DefaultGrowRate = 2
)

// Option is a functional option for configuring a Set.
type Option func(*config)

type config struct {
	initialCapacity int
	loadFactor      float64
	growRate        int
	hashAlgorithm   HashAlgorithmID
	hash            HashFunc // overrides hashAlgorithm when set
	equal           EqualFunc
	alloc           Allocator
	logger          *slog.Logger // nil disables logging

	// err records an option that could not be applied (e.g. a nil func),
	// reported by validate.
	err error
}

func defaultConfig() *config {
	return &config{
		initialCapacity: DefaultInitialCapacity,
		loadFactor:      DefaultLoadFactor,
		growRate:        DefaultGrowRate,
		hashAlgorithm:   HashFNV1a,
		hash:            FNV1a,
		equal:           Equal,
		alloc:           heapAllocator{},
	}
}

// WithInitialCapacity sets the capacity used by the first growth of an
// empty set. Default is 1024.
func WithInitialCapacity(n int) Option {
	return func(c *config) {
		c.initialCapacity = n
	}
}

// WithLoadFactor sets the occupancy ratio that triggers growth before an
// insert. Must be in (0, 1]. Default is 0.75.
func WithLoadFactor(f float64) Option {
	return func(c *config) {
		c.loadFactor = f
	}
}

// WithGrowRate sets the multiplicative growth factor. Must be at least 2.
// Default is 2.
func WithGrowRate(r int) Option {
	return func(c *config) {
		c.growRate = r
	}
}

// WithHashAlgorithm selects a built-in hash strategy.
// Default is HashFNV1a.
func WithHashAlgorithm(id HashAlgorithmID) Option {
	return func(c *config) {
		c.hashAlgorithm = id
		c.hash = nil
	}
}

// WithHasher installs a custom hash function, overriding WithHashAlgorithm.
func WithHasher(fn HashFunc) Option {
	return func(c *config) {
		if fn == nil {
			c.err = fmt.Errorf("%w: WithHasher", seterrors.ErrNilOption)
			return
		}
		c.hash = fn
	}
}

// WithEqual installs a custom equality function.
func WithEqual(fn EqualFunc) Option {
	return func(c *config) {
		if fn == nil {
			c.err = fmt.Errorf("%w: WithEqual", seterrors.ErrNilOption)
			return
		}
		c.equal = fn
	}
}

// WithAllocator sets the allocator for item copies and slot arrays.
func WithAllocator(a Allocator) Option {
	return func(c *config) {
		if a == nil {
			c.err = fmt.Errorf("%w: WithAllocator", seterrors.ErrNilOption)
			return
		}
		c.alloc = a
	}
}

// WithLogger enables debug logging of growth events. Sets are silent by default.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// validate checks option values and resolves the hash strategy.
func (c *config) validate() error {
	if c.err != nil {
		return c.err
	}
	if c.initialCapacity < 1 {
		return fmt.Errorf("%w: got %d", seterrors.ErrInvalidCapacity, c.initialCapacity)
	}
	// Written so NaN fails too.
	if !(c.loadFactor > 0 && c.loadFactor <= 1) {
		return fmt.Errorf("%w: got %v", seterrors.ErrInvalidLoadFactor, c.loadFactor)
	}
	if c.growRate < 2 {
		return fmt.Errorf("%w: got %d", seterrors.ErrInvalidGrowRate, c.growRate)
	}
	if c.hash == nil {
		fn, err := newHashFunc(c.hashAlgorithm)
		if err != nil {
			return err
		}
		c.hash = fn
	}
	return nil
}
