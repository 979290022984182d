package hashset

// Bucket holds one live item: an owned copy of its bytes and the raw hash
// computed when it was inserted. Buckets are created by Insert and only ever
// moved between slots afterwards; the item bytes are never copied again.
type Bucket struct {
	item []byte
	hash uint64
}

// Item returns the stored bytes. The slice is owned by the set and must not
// be modified.
func (b *Bucket) Item() []byte { return b.item }

// Hash returns the raw (pre-modulo) hash of the item.
func (b *Bucket) Hash() uint64 { return b.hash }

// Allocator supplies the memory a Set owns: item payload copies and slot
// arrays. A Set returns every allocation to the Allocator that produced it,
// on Remove, on growth (old slot arrays) and on Close.
//
// Implementations report exhaustion by returning a non-nil error; the Set
// surfaces it as ErrAllocFailed and leaves its contents unchanged.
type Allocator interface {
	// AllocItem returns a byte slice of exactly size bytes.
	AllocItem(size int) ([]byte, error)
	// FreeItem releases a slice obtained from AllocItem.
	FreeItem(item []byte)
	// AllocSlots returns a slot array of exactly n nil slots.
	AllocSlots(n int) ([]*Bucket, error)
	// FreeSlots releases a slot array obtained from AllocSlots. Every slot
	// is nil by then: its buckets have been moved or freed.
	FreeSlots(slots []*Bucket)
}

// heapAllocator allocates from the Go heap and leaves reclamation to the
// garbage collector.
type heapAllocator struct{}

func (heapAllocator) AllocItem(size int) ([]byte, error) { return make([]byte, size), nil }

func (heapAllocator) FreeItem([]byte) {}

func (heapAllocator) AllocSlots(n int) ([]*Bucket, error) { return make([]*Bucket, n), nil }

func (heapAllocator) FreeSlots([]*Bucket) {}
