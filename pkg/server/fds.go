package server

import "golang.org/x/sys/unix"

// closeFD releases a DMA-BUF plane descriptor owned by a destroyed
// buffer, per spec.md §3's "destroying an entity... closes fds."
func closeFD(fd int) {
	if fd > 0 {
		unix.Close(fd)
	}
}
