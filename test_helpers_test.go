package hashset

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/fnv"
	"math/rand/v2"
	"testing"

	intbits "github.com/UPEV1sion/hashset/internal/bits"
)

// Named seeds for deterministic reproduction.
const (
	testSeed1 = 0x1234567890ABCDEF
	testSeed2 = 0xFEDCBA9876543210
)

// newTestRNG returns a PCG seeded from the test name, so every test gets its
// own reproducible stream.
func newTestRNG(t testing.TB) *rand.Rand {
	t.Helper()
	h := fnv.New128a()
	h.Write([]byte(t.Name()))
	sum := h.Sum(nil)
	s1 := binary.LittleEndian.Uint64(sum[:8])
	s2 := binary.LittleEndian.Uint64(sum[8:])
	return rand.New(rand.NewPCG(testSeed1^s1, testSeed2^s2))
}

// fillFromRNG fills buf with pseudo-random bytes from rng.
func fillFromRNG(rng *rand.Rand, buf []byte) {
	for i := 0; i+8 <= len(buf); i += 8 {
		binary.LittleEndian.PutUint64(buf[i:], rng.Uint64())
	}
	if tail := len(buf) % 8; tail > 0 {
		v := rng.Uint64()
		start := len(buf) - tail
		for j := 0; j < tail; j++ {
			buf[start+j] = byte(v >> (j * 8))
		}
	}
}

// generateRandomKeys creates n deterministic pseudo-random keys of the specified size.
func generateRandomKeys(rng *rand.Rand, n, keySize int) [][]byte {
	keys := make([][]byte, n)
	for i := range keys {
		keys[i] = make([]byte, keySize)
		fillFromRNG(rng, keys[i])
	}
	return keys
}

// sequentialKeys returns n distinct 8-byte little-endian counters.
func sequentialKeys(n int) [][]byte {
	keys := make([][]byte, n)
	for i := range keys {
		keys[i] = binary.LittleEndian.AppendUint64(nil, uint64(i))
	}
	return keys
}

// collidingKeys returns n distinct 8-byte keys that share a home slot in a
// table of the given capacity, along with that slot.
func collidingKeys(n, capacity int, hash HashFunc) ([][]byte, int) {
	home := -1
	var keys [][]byte
	for i := uint64(0); len(keys) < n; i++ {
		k := binary.LittleEndian.AppendUint64(nil, i)
		h := intbits.Home(hash(k), capacity)
		if home < 0 {
			home = h
		}
		if h == home {
			keys = append(keys, k)
		}
	}
	return keys, home
}

// mustInsert inserts key and fails the test unless the result is want.
func mustInsert(t testing.TB, s *Set, key []byte, want Result) {
	t.Helper()
	got, err := s.Insert(key)
	if err != nil {
		t.Fatalf("Insert(%x): %v", key, err)
	}
	if got != want {
		t.Fatalf("Insert(%x) = %v, want %v", key, got, want)
	}
}

// mustContain fails the test unless Contains(key) == want.
func mustContain(t testing.TB, s *Set, key []byte, want bool) {
	t.Helper()
	got, err := s.Contains(key)
	if err != nil {
		t.Fatalf("Contains(%x): %v", key, err)
	}
	if got != want {
		t.Fatalf("Contains(%x) = %v, want %v", key, got, want)
	}
}

// mustLen fails the test unless Len() == want.
func mustLen(t testing.TB, s *Set, want int) {
	t.Helper()
	got, err := s.Len()
	if err != nil {
		t.Fatalf("Len: %v", err)
	}
	if got != want {
		t.Fatalf("Len = %d, want %d", got, want)
	}
}

// checkInvariants walks every slot and verifies count, uniqueness, stored
// hashes and that each bucket is reachable from its home slot without
// crossing an empty slot.
func checkInvariants(t testing.TB, s *Set) {
	t.Helper()
	n := len(s.slots)
	used := 0
	seen := make(map[string]int, s.count)
	for i, b := range s.slots {
		if b == nil {
			continue
		}
		used++
		if prev, dup := seen[string(b.item)]; dup {
			t.Fatalf("invariant failed: slot(%d) duplicates slot(%d): %x\n%s", i, prev, b.item, debugString(s))
		}
		seen[string(b.item)] = i
		if h := s.cfg.hash(b.item); h != b.hash {
			t.Fatalf("invariant failed: slot(%d) stored hash %x, recomputed %x", i, b.hash, h)
		}
		for j := intbits.Home(b.hash, n); j != i; j = intbits.Next(j, n) {
			if s.slots[j] == nil {
				t.Fatalf("invariant failed: slot(%d) %x unreachable, empty slot %d on its probe path\n%s",
					i, b.item, j, debugString(s))
			}
		}
	}
	if used != s.count {
		t.Fatalf("invariant failed: found %d used slots, but count is %d", used, s.count)
	}
}

func debugString(s *Set) string {
	out := fmt.Sprintf("capacity=%d count=%d\n", len(s.slots), s.count)
	for i, b := range s.slots {
		if b == nil {
			continue
		}
		out += fmt.Sprintf("  %d: home=%d %x\n", i, intbits.Home(b.hash, len(s.slots)), b.item)
	}
	return out
}

var errTestOOM = errors.New("test allocator: out of memory")

// countingAllocator tracks outstanding allocations and can be switched to
// fail on demand.
type countingAllocator struct {
	liveItems     int
	liveItemBytes int
	liveSlots     int
	liveSlotLen   int

	failItems bool
	failSlots bool
}

func (a *countingAllocator) AllocItem(size int) ([]byte, error) {
	if a.failItems {
		return nil, errTestOOM
	}
	a.liveItems++
	a.liveItemBytes += size
	return make([]byte, size), nil
}

func (a *countingAllocator) FreeItem(item []byte) {
	a.liveItems--
	a.liveItemBytes -= len(item)
}

func (a *countingAllocator) AllocSlots(n int) ([]*Bucket, error) {
	if a.failSlots {
		return nil, errTestOOM
	}
	a.liveSlots++
	a.liveSlotLen += n
	return make([]*Bucket, n), nil
}

func (a *countingAllocator) FreeSlots(slots []*Bucket) {
	for i, b := range slots {
		if b != nil {
			panic(fmt.Sprintf("FreeSlots: slot %d still references a bucket", i))
		}
	}
	a.liveSlots--
	a.liveSlotLen -= len(slots)
}
