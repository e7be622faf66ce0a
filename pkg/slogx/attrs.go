package slogx

import (
	"log/slog"

	"github.com/google/uuid"
)

// Error returns a slog.Attr representing the provided error.
// The attribute key is "error" and the value is the error's message.
//
// Parameters:
//   - err: The error to be converted into a slog.Attr.
//
// Returns:
//   - slog.Attr: An attribute with the key "error" and the error's message as the value.
func Error(err error) slog.Attr {
	return slog.String("error", err.Error())
}

const (
	// KeyLoggerName is the key for the logger name attribute.
	KeyLoggerName = "logger"
	// KeyThreadID is the key for the spindle handle id.
	KeyThreadID = "thread_id"
	// KeyThreadName is the key for the optional, caller supplied thread name.
	KeyThreadName = "thread_name"
	// KeyNativeThread is the key for the OS thread id.
	KeyNativeThread = "native_tid"
)

// LoggerName creates a slog.Attr with the provided logger name.
// The attribute key is defined by KeyLoggerName.
//
// Parameters:
//   - name: The name of the logger.
//
// Returns:
//
//	A slog.Attr containing the logger name.
func LoggerName(name string) slog.Attr {
	return slog.String(KeyLoggerName, name)
}

// ThreadID creates a slog.Attr identifying a spindle thread handle.
// The attribute key is defined by KeyThreadID.
//
// Parameters:
//   - id: The handle's UUID.
//
// Returns:
//   - slog.Attr: An attribute with the string form of the id as the value.
func ThreadID(id uuid.UUID) slog.Attr {
	return slog.String(KeyThreadID, id.String())
}

// ThreadName creates a slog.Attr labelling a record with a thread's name.
// An empty name yields an empty attribute, which slog handlers drop.
//
// Parameters:
//   - name: The caller supplied thread name, possibly empty.
//
// Returns:
//   - slog.Attr: An attribute keyed by KeyThreadName, or the zero slog.Attr.
func ThreadName(name string) slog.Attr {
	if name == "" {
		return slog.Attr{}
	}
	return slog.String(KeyThreadName, name)
}

// NativeThread creates a slog.Attr recording the OS thread id a routine runs on.
//
// Parameters:
//   - tid: The OS thread id, 0 when the platform has none.
//
// Returns:
//   - slog.Attr: An integer attribute keyed by KeyNativeThread.
func NativeThread(tid int) slog.Attr {
	return slog.Int(KeyNativeThread, tid)
}
