//go:build linux

package native

import "golang.org/x/sys/unix"

const supported = true

// CurrentID returns the kernel thread id of the calling thread.
func CurrentID() int {
	return unix.Gettid()
}
