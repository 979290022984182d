package hashset

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/spaolacci/murmur3"
	"github.com/zeebo/xxh3"

	seterrors "github.com/UPEV1sion/hashset/errors"
)

// HashFunc maps an item's bytes to a raw 64-bit hash. It must be
// deterministic for the lifetime of a Set: stored hashes are reused during
// growth and relocation without being recomputed.
type HashFunc func(item []byte) uint64

// EqualFunc reports whether a stored item and a probe item are the same
// member. It must agree with the HashFunc: equal items must hash equally.
type EqualFunc func(stored, item []byte) bool

// HashAlgorithmID identifies a built-in hash strategy.
type HashAlgorithmID uint16

const (
	// HashFNV1a is the 64-bit FNV-1a hash. It is the default.
	HashFNV1a HashAlgorithmID = 0

	// HashXXHash is xxHash64 (github.com/cespare/xxhash/v2).
	HashXXHash HashAlgorithmID = 1

	// HashXXH3 is the 64-bit XXH3 variant (github.com/zeebo/xxh3).
	HashXXH3 HashAlgorithmID = 2

	// HashMurmur3 is the low half of MurmurHash3 x64-128 (github.com/spaolacci/murmur3).
	HashMurmur3 HashAlgorithmID = 3
)

// HashAlgorithms lists every built-in algorithm in ID order.
var HashAlgorithms = []HashAlgorithmID{HashFNV1a, HashXXHash, HashXXH3, HashMurmur3}

// String returns the algorithm name.
func (a HashAlgorithmID) String() string {
	switch a {
	case HashFNV1a:
		return "fnv1a"
	case HashXXHash:
		return "xxhash"
	case HashXXH3:
		return "xxh3"
	case HashMurmur3:
		return "murmur3"
	default:
		return "unknown"
	}
}

// ParseHashAlgorithm returns the algorithm with the given name, as printed by
// String. Matching is case insensitive.
func ParseHashAlgorithm(name string) (HashAlgorithmID, error) {
	for _, id := range HashAlgorithms {
		if strings.EqualFold(name, id.String()) {
			return id, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", seterrors.ErrUnknownHash, name)
}

// newHashFunc returns the HashFunc implementing id.
func newHashFunc(id HashAlgorithmID) (HashFunc, error) {
	switch id {
	case HashFNV1a:
		return FNV1a, nil
	case HashXXHash:
		return xxhash.Sum64, nil
	case HashXXH3:
		return xxh3.Hash, nil
	case HashMurmur3:
		return murmur3.Sum64, nil
	}
	return nil, fmt.Errorf("%w: algorithm ID %d", seterrors.ErrUnknownHash, id)
}

const (
	fnvOffsetBasis = 0xcbf29ce484222325
	fnvPrime       = 0x00000100000001b3
)

// FNV1a returns the 64-bit FNV-1a hash of item. It is unseeded and makes no
// attempt to resist deliberately colliding input.
func FNV1a(item []byte) uint64 {
	h := uint64(fnvOffsetBasis)
	for _, b := range item {
		h = (h ^ uint64(b)) * fnvPrime
	}
	return h
}

// Equal reports whether a and b have the same length and the same bytes.
func Equal(stored, item []byte) bool {
	return bytes.Equal(stored, item)
}
