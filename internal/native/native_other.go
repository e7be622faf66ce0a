//go:build !linux && !windows

package native

const supported = false

// CurrentID always returns 0: there is no portable thread id outside linux and windows.
func CurrentID() int {
	return 0
}
