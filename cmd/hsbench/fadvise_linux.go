//go:build linux

package main

import "golang.org/x/sys/unix"

// fadviseSequential hints to the kernel that the key file will be read
// sequentially. Best-effort: errors are silently ignored.
func fadviseSequential(fd int, offset, length int64) {
	_ = unix.Fadvise(fd, offset, length, unix.FADV_SEQUENTIAL)
}
