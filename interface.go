package appendorr

//go:generate mockgen -destination=mocks/policy.go -package=mocks golift.io/appendorr Policy

// Policy decides when the destination file rotates and how archives are named.
// Two working Policies are included with this library, in the timepolicy and
// sizepolicy packages. Use those directly, or bring your own.
//
// A Policy is only ever called from the appender's background go routine, so
// implementations need no locking.
type Policy interface {
	// Rotate reports whether the file must rotate before size more bytes
	// are written to it.
	Rotate(size int64) bool
	// Suffix returns the archive-name suffix for the file about to be
	// rotated. It is called before Reset, so the suffix reflects the slice
	// of data the archive holds.
	Suffix() string
	// Reset clears internal counters after a rotation fires. A rotation
	// that fired for one pending write never fires again for the same write.
	Reset()
	// Wrote records size bytes written to the current file. Called for
	// every completed write, rotating or not.
	Wrote(size int64)
}
