package hashset

import (
	"testing"
)

func benchmarkInsertN(b *testing.B, algo HashAlgorithmID, n int) {
	rng := newTestRNG(b)
	keys := generateRandomKeys(rng, n, 16)

	b.ResetTimer()
	b.ReportAllocs()
	for b.Loop() {
		s, err := New(WithHashAlgorithm(algo))
		if err != nil {
			b.Fatal(err)
		}
		for _, k := range keys {
			if _, err := s.Insert(k); err != nil {
				b.Fatal(err)
			}
		}
	}
	b.ReportMetric(float64(n), "keys/op")
}

func BenchmarkInsert1K(b *testing.B)   { benchmarkInsertN(b, HashFNV1a, 1000) }
func BenchmarkInsert10K(b *testing.B)  { benchmarkInsertN(b, HashFNV1a, 10000) }
func BenchmarkInsert100K(b *testing.B) { benchmarkInsertN(b, HashFNV1a, 100000) }

func BenchmarkInsert100KXXH3(b *testing.B)    { benchmarkInsertN(b, HashXXH3, 100000) }
func BenchmarkInsert100KXXHash(b *testing.B)  { benchmarkInsertN(b, HashXXHash, 100000) }
func BenchmarkInsert100KMurmur3(b *testing.B) { benchmarkInsertN(b, HashMurmur3, 100000) }

func benchmarkContainsN(b *testing.B, algo HashAlgorithmID, n int) {
	rng := newTestRNG(b)
	keys := generateRandomKeys(rng, n, 16)
	s, err := New(WithHashAlgorithm(algo))
	if err != nil {
		b.Fatal(err)
	}
	for _, k := range keys {
		if _, err := s.Insert(k); err != nil {
			b.Fatal(err)
		}
	}

	b.ResetTimer()
	b.ReportAllocs()
	i := 0
	for b.Loop() {
		if ok, _ := s.Contains(keys[i%n]); !ok {
			b.Fatalf("key %d missing", i%n)
		}
		i++
	}
}

func BenchmarkContains1K(b *testing.B)   { benchmarkContainsN(b, HashFNV1a, 1000) }
func BenchmarkContains100K(b *testing.B) { benchmarkContainsN(b, HashFNV1a, 100000) }

func BenchmarkContains100KXXH3(b *testing.B) { benchmarkContainsN(b, HashXXH3, 100000) }

// BenchmarkRemoveInsert measures a remove plus re-insert at steady state,
// which exercises the backward shift on every iteration.
func BenchmarkRemoveInsert(b *testing.B) {
	rng := newTestRNG(b)
	const n = 100000
	keys := generateRandomKeys(rng, n, 16)
	var s Set
	for _, k := range keys {
		if _, err := s.Insert(k); err != nil {
			b.Fatal(err)
		}
	}

	b.ResetTimer()
	b.ReportAllocs()
	i := 0
	for b.Loop() {
		k := keys[i%n]
		if res, _ := s.Remove(k); res != Removed {
			b.Fatalf("Remove = %v", res)
		}
		if res, _ := s.Insert(k); res != Inserted {
			b.Fatalf("Insert = %v", res)
		}
		i++
	}
}

func BenchmarkFNV1a(b *testing.B) {
	rng := newTestRNG(b)
	key := make([]byte, 32)
	fillFromRNG(rng, key)

	b.ResetTimer()
	b.ReportAllocs()
	for b.Loop() {
		FNV1a(key)
	}
}
