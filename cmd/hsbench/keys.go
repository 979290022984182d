package main

import (
	"crypto/rand"
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
)

// keySource holds benchmark keys. Keys read from a file are slices of a
// read-only memory mapping, which must outlive every use of keys.
type keySource struct {
	keys [][]byte
	mm   mmap.MMap
}

// generateKeys returns n random keys of size bytes, backed by one buffer.
func generateKeys(n, size int) (*keySource, error) {
	if n <= 0 {
		return nil, fmt.Errorf("--keys must be positive, got %d", n)
	}
	buf := make([]byte, n*size)
	_, _ = rand.Read(buf) // crypto/rand.Read never returns an error
	return &keySource{keys: split(buf, size)}, nil
}

// mapKeys memory-maps path and splits it into records of size bytes.
func mapKeys(path string, size int) (*keySource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open key file: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat key file: %w", err)
	}
	fileSize := stat.Size()
	if fileSize == 0 {
		return nil, fmt.Errorf("key file %s is empty", path)
	}
	if fileSize%int64(size) != 0 {
		return nil, fmt.Errorf("key file size %d is not a multiple of record size %d", fileSize, size)
	}

	fadviseSequential(int(f.Fd()), 0, fileSize)

	// Per POSIX mmap(2), f may be closed once the mapping exists.
	mm, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mmap key file: %w", err)
	}
	return &keySource{keys: split(mm, size), mm: mm}, nil
}

func split(buf []byte, size int) [][]byte {
	keys := make([][]byte, len(buf)/size)
	for i := range keys {
		keys[i] = buf[i*size : (i+1)*size : (i+1)*size]
	}
	return keys
}

// Close unmaps file-backed keys. Generated keys need no cleanup.
func (ks *keySource) Close() error {
	ks.keys = nil
	if ks.mm == nil {
		return nil
	}
	err := ks.mm.Unmap()
	ks.mm = nil
	return err
}
