package hashset

import (
	"fmt"

	seterrors "github.com/UPEV1sion/hashset/errors"
	intbits "github.com/UPEV1sion/hashset/internal/bits"
)

// Result is the outcome of an Insert or Remove.
type Result uint8

const (
	// Failure means the operation did not complete; the accompanying error
	// says why. The set is unchanged.
	Failure Result = iota
	// Inserted means the item was copied into the set.
	Inserted
	// AlreadyPresent means an equal item was already a member. Nothing changed.
	AlreadyPresent
	// Removed means the item was a member and has been removed.
	Removed
	// NotFound means the item was not a member.
	NotFound
)

// String returns the result name.
func (r Result) String() string {
	switch r {
	case Failure:
		return "failure"
	case Inserted:
		return "inserted"
	case AlreadyPresent:
		return "already present"
	case Removed:
		return "removed"
	case NotFound:
		return "not found"
	default:
		return "unknown"
	}
}

// Set is a set of byte strings using open addressing with linear probing.
//
// Items are copied on insert, so callers may reuse their buffers. Deletion
// is tombstone-free: removing an item re-places the displaced items that
// follow it, so every member stays reachable from its home slot.
//
// The zero value is an empty set with default configuration. It allocates
// its first slot array on the first Insert; until then Contains, Len and
// Remove report ErrUninitialized.
//
// Thread Safety: a Set is NOT safe for concurrent use. Guard it with a mutex
// or confine it to one goroutine.
type Set struct {
	slots []*Bucket // nil entry = empty slot
	count int
	cfg   *config // nil until first use for zero-value sets
}

// New returns an empty set configured by opts. No memory is allocated until
// the first Insert.
func New(opts ...Option) (*Set, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Set{cfg: cfg}, nil
}

func (s *Set) config() *config {
	if s.cfg == nil {
		s.cfg = defaultConfig()
	}
	return s.cfg
}

// Insert copies item into the set.
//
// It returns Inserted for a new member and AlreadyPresent if an equal item
// is already stored. On Failure the error wraps ErrAllocFailed,
// ErrCapacityOverflow or ErrTableFull and membership is unchanged, though a
// growth that succeeded before the failing step is kept.
func (s *Set) Insert(item []byte) (Result, error) {
	if s == nil {
		return Failure, seterrors.ErrNilSet
	}
	cfg := s.config()

	if float64(s.count) >= float64(len(s.slots))*cfg.loadFactor {
		if err := s.grow(); err != nil {
			return Failure, err
		}
	}

	hash := cfg.hash(item)
	i, found := s.find(hash, item)
	if found {
		return AlreadyPresent, nil
	}
	if i < 0 {
		return Failure, fmt.Errorf("%w: capacity %d, %d items", seterrors.ErrTableFull, len(s.slots), s.count)
	}

	buf, err := cfg.alloc.AllocItem(len(item))
	if err != nil {
		return Failure, fmt.Errorf("%w: item of %d bytes: %w", seterrors.ErrAllocFailed, len(item), err)
	}
	if len(buf) != len(item) {
		cfg.alloc.FreeItem(buf)
		return Failure, fmt.Errorf("%w: allocator returned %d bytes, want %d", seterrors.ErrAllocFailed, len(buf), len(item))
	}
	copy(buf, item)

	s.slots[i] = &Bucket{item: buf, hash: hash}
	s.count++
	return Inserted, nil
}

// Remove deletes item from the set, returning Removed or NotFound.
// It returns ErrUninitialized if the set has no capacity.
func (s *Set) Remove(item []byte) (Result, error) {
	if s == nil {
		return NotFound, seterrors.ErrNilSet
	}
	if len(s.slots) == 0 {
		return NotFound, seterrors.ErrUninitialized
	}

	i, found := s.find(s.cfg.hash(item), item)
	if !found {
		return NotFound, nil
	}

	s.cfg.alloc.FreeItem(s.slots[i].item)
	s.slots[i] = nil
	s.count--
	s.shiftBack(i)
	return Removed, nil
}

// Contains reports whether an item equal to item is a member.
// It returns ErrUninitialized if the set has no capacity.
func (s *Set) Contains(item []byte) (bool, error) {
	if s == nil {
		return false, seterrors.ErrNilSet
	}
	if len(s.slots) == 0 {
		return false, seterrors.ErrUninitialized
	}
	_, found := s.find(s.cfg.hash(item), item)
	return found, nil
}

// Len returns the number of members.
// It returns ErrUninitialized if the set has no capacity.
func (s *Set) Len() (int, error) {
	if s == nil {
		return 0, seterrors.ErrNilSet
	}
	if len(s.slots) == 0 {
		return 0, seterrors.ErrUninitialized
	}
	return s.count, nil
}

// Cap returns the number of slots, 0 if none have been allocated.
func (s *Set) Cap() int {
	if s == nil {
		return 0
	}
	return len(s.slots)
}

// Close releases every item copy and the slot array back to the allocator.
// The set returns to the zero-capacity state and keeps its configuration,
// so it may be reused. Closing a set with no capacity does nothing.
func (s *Set) Close() error {
	if s == nil {
		return seterrors.ErrNilSet
	}
	if len(s.slots) == 0 {
		return nil
	}
	alloc := s.cfg.alloc
	for i, b := range s.slots {
		if b == nil {
			continue
		}
		alloc.FreeItem(b.item)
		s.slots[i] = nil
	}
	alloc.FreeSlots(s.slots)
	s.slots = nil
	s.count = 0
	return nil
}

// find probes from the home slot of hash. It returns the slot holding an
// item equal to item (found=true), else the first empty slot on the probe
// path, else -1 when the probe wrapped all the way around.
// Precondition: len(s.slots) > 0.
func (s *Set) find(hash uint64, item []byte) (int, bool) {
	n := len(s.slots)
	start := intbits.Home(hash, n)
	i := start
	for {
		b := s.slots[i]
		if b == nil {
			return i, false
		}
		if b.hash == hash && s.cfg.equal(b.item, item) {
			return i, true
		}
		i = intbits.Next(i, n)
		if i == start {
			return -1, false
		}
	}
}

// place stores b in the first empty slot at or after its home slot.
// Precondition: slots has at least one empty slot.
func place(slots []*Bucket, b *Bucket) {
	n := len(slots)
	i := intbits.Home(b.hash, n)
	for slots[i] != nil {
		i = intbits.Next(i, n)
	}
	slots[i] = b
}

// shiftBack restores reachability after slot vacated was emptied. Every
// bucket in the occupied run that follows it is lifted out and re-placed
// from its home slot, which moves it into the hole when the hole lies on
// its probe path and leaves it where it was otherwise. The walk ends at the
// first empty slot and never visits more than len(slots)-1 slots.
func (s *Set) shiftBack(vacated int) {
	n := len(s.slots)
	i := intbits.Next(vacated, n)
	for steps := 1; steps < n && s.slots[i] != nil; steps++ {
		b := s.slots[i]
		s.slots[i] = nil
		place(s.slots, b)
		i = intbits.Next(i, n)
	}
}

// grow moves every bucket into a new slot array of
// max(initialCapacity, capacity*growRate) slots. On error the set is
// unchanged.
func (s *Set) grow() error {
	cfg := s.cfg
	oldCap := len(s.slots)
	newCap, ok := intbits.GrowCapacity(oldCap, cfg.initialCapacity, cfg.growRate)
	if !ok {
		return fmt.Errorf("%w: growing %d slots by %d", seterrors.ErrCapacityOverflow, oldCap, cfg.growRate)
	}

	newSlots, err := cfg.alloc.AllocSlots(newCap)
	if err != nil {
		return fmt.Errorf("%w: slot array of %d: %w", seterrors.ErrAllocFailed, newCap, err)
	}
	if len(newSlots) != newCap {
		cfg.alloc.FreeSlots(newSlots)
		return fmt.Errorf("%w: allocator returned %d slots, want %d", seterrors.ErrAllocFailed, len(newSlots), newCap)
	}

	for i, b := range s.slots {
		if b != nil {
			place(newSlots, b)
			s.slots[i] = nil
		}
	}
	if s.slots != nil {
		cfg.alloc.FreeSlots(s.slots)
	}
	s.slots = newSlots

	if cfg.logger != nil {
		cfg.logger.Debug("hashset grew", "from", oldCap, "to", newCap, "items", s.count)
	}
	return nil
}
