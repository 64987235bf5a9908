// Package appendorr drains a live byte stream into a file, rotating the file
// as it grows. Point it at a child process's stdout or stderr pipe and it
// captures everything the process prints, on a single background go routine,
// until the stream ends or you stop it.
//
// Rotation is pluggable. The included `timepolicy`
// and `sizepolicy`
// modules rotate by elapsed wall-clock interval or by accumulated bytes, and
// name archived files with a suffix collectors can sort lexically. The
// `rotation` module maps raw configuration strings to a policy, degrading to
// no rotation when the configuration is malformed: bad rotation settings
// must never prevent log capture.
//
//	https://pkg.go.dev/golift.io/appendorr/timepolicy
//	https://pkg.go.dev/golift.io/appendorr/sizepolicy
//
// The appender never interrupts a blocked read. Stop() is advisory; if the
// producer never writes and never closes the stream, the caller must close
// the underlying stream to unblock the appender. That contract belongs to
// whoever owns the stream, not to this package.
package appendorr
