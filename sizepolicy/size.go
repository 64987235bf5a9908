// Package sizepolicy provides a Policy for appendorr that rotates the
// destination file when it would grow past a byte threshold. Archived files
// are named with a zero-padded ordinal suffix: service.log--000001,
// service.log--000002, and so on. Ordinals are monotonic within one appender
// lifetime and sort lexically in creation order.
//
// The ordinal restarts at one when the process restarts. If archives from a
// previous run still exist, a rotation will overwrite the archive with the
// same ordinal. Prune archives between runs, or use timepolicy, when that
// matters.
package sizepolicy

import (
	"errors"
	"fmt"

	"golift.io/appendorr"
)

// ordinalWidth pads ordinals so ten-thousandth archives still sort after the
// first lexically.
const ordinalWidth = 6

// ErrBadSize is returned by New for a non-positive byte threshold.
var ErrBadSize = errors.New("invalid rotation size")

// Policy rotates when the file would exceed a byte threshold.
// Obtain one from New. The zero value is not usable.
type Policy struct {
	max   int64 // threshold, immutable.
	count int64 // bytes written since the last rotation.
	seq   int   // archives cut so far.
}

// New returns a Policy that rotates before any write that would push the
// current file past maxBytes.
func New(maxBytes int64) (*Policy, error) {
	if maxBytes <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadSize, maxBytes)
	}

	return &Policy{max: maxBytes}, nil
}

// Rotate reports whether writing size more bytes would push the current file
// past the threshold.
func (p *Policy) Rotate(size int64) bool {
	return p.count+size > p.max
}

// Suffix returns the ordinal suffix for the next archive. Call before Reset.
func (p *Policy) Suffix() string {
	return fmt.Sprintf("--%0*d", ordinalWidth, p.seq+1)
}

// Reset zeroes the byte counter and claims the next ordinal.
func (p *Policy) Reset() {
	p.count = 0
	p.seq++
}

// Wrote records size bytes written to the current file.
func (p *Policy) Wrote(size int64) {
	p.count += size
}

// Our interface must satify an appendorr.Policy.
var _ appendorr.Policy = (*Policy)(nil)
