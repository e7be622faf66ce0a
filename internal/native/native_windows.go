//go:build windows

package native

import "golang.org/x/sys/windows"

const supported = true

// CurrentID returns the Win32 thread id of the calling thread.
func CurrentID() int {
	return int(windows.GetCurrentThreadId())
}
