// Package native is the single adapter between spindle and the operating
// system's threads.
//
// Go does not hand out raw thread handles, so a native thread here is a
// goroutine locked to its own OS thread for its whole life. The lock is never
// released: when the entry point returns the runtime terminates the OS thread
// instead of handing it back to the scheduler, which gives detach semantics.
// The OS-specific part is only the thread id lookup, selected by build tags.
package native

import "runtime"

// Entry is the fixed signature every spawned thread starts in. tid is the OS
// thread id, or 0 when the platform has no notion of one.
type Entry func(tid int)

// Start runs entry on a new OS thread and returns immediately.
func Start(entry Entry) {
	go func() {
		runtime.LockOSThread()
		entry(CurrentID())
	}()
}

// Supported reports whether CurrentID returns real thread ids on this platform.
func Supported() bool {
	return supported
}
