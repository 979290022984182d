// Package hashset implements an in-memory set of byte strings using open
// addressing with linear probing.
//
// Items are arbitrary byte sequences (encoded structs, strings, numbers) and
// are compared byte for byte. Each insert stores its own copy of the item.
// Deletion is tombstone-free: removing an item re-places the items displaced
// past it, so lookups never have to skip deleted markers.
//
// # Basic Usage
//
//	var s hashset.Set // the zero value is ready to use
//	if _, err := s.Insert([]byte("alpha")); err != nil {
//	    log.Fatal(err)
//	}
//	ok, err := s.Contains([]byte("alpha"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(ok) // true
//	res, _ := s.Remove([]byte("alpha"))
//	fmt.Println(res) // removed
//	_ = s.Close()
//
// Configured sets are built with New:
//
//	s, err := hashset.New(
//	    hashset.WithHashAlgorithm(hashset.HashXXH3),
//	    hashset.WithInitialCapacity(1<<16),
//	    hashset.WithLoadFactor(0.5),
//	)
//
// # Growth
//
// Before an insert, if the number of members has reached
// capacity*loadFactor, the slot array grows to
// max(initialCapacity, capacity*growRate). An empty set jumps straight to
// initialCapacity (1024 by default).
//
// # Errors
//
// Ordinary outcomes (AlreadyPresent, NotFound) are Results, not errors.
// Errors are sentinels from the hashset/errors package: allocation failure
// (ErrAllocFailed), and misuse such as reading a set that has never been
// inserted into (ErrUninitialized) or calling methods on a nil *Set
// (ErrNilSet).
//
// # Package Structure
//
//   - Engine: hashset.go (Set, Insert, Remove, Contains, Len, Close)
//   - Configuration: options.go (Option, With* functions)
//   - Hash strategies: hashfunc.go (HashAlgorithmID, FNV1a, Equal)
//   - Memory: allocator.go (Allocator, Bucket)
//   - Slot arithmetic: internal/bits/
//   - Benchmarks: cmd/hsbench/
package hashset
