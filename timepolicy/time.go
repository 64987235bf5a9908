// Package timepolicy provides a Policy for appendorr that rotates the
// destination file on fixed wall-clock intervals. Archived files carry a
// time-stamp suffix whose precision follows the interval: daily archives get
// a date, hourly archives a date and hour, and so on down to seconds for
// custom intervals. The suffixes sort lexically in chronological order, so
// collector tooling can walk archives with a plain name sort.
//
// Build one from a raw interval specification with New:
//
//	policy, err := timepolicy.New("hourly")
//
// Accepted specifications are "daily", "hourly", "minutely", or a positive
// integer number of seconds.
package timepolicy

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"golift.io/appendorr"
)

// Interval specifications accepted by New.
const (
	Daily    = "daily"
	Hourly   = "hourly"
	Minutely = "minutely"
)

// Suffix layouts, one per interval precision. The leading joiner keeps
// archives grouped next to the live file in directory listings.
const (
	LayoutDaily    = "--2006-01-02"
	LayoutHourly   = "--2006-01-02--15"
	LayoutMinutely = "--2006-01-02--15-04"
	LayoutSeconds  = "--2006-01-02--15-04-05"
)

// ErrBadInterval is returned by New for an unrecognized interval specification.
var ErrBadInterval = errors.New("invalid rotation interval")

// Policy rotates on fixed wall-clock intervals. Obtain one from New.
// The zero value is not usable.
type Policy struct {
	every  time.Duration
	layout string
	next   time.Time
	// Mockable clock. Defaults to time.Now. Setting this is very optional.
	Clock func() time.Time
	// UseUTC formats archive suffixes in UTC instead of local time.
	UseUTC bool
}

// New parses a raw interval specification and returns a Policy whose first
// rollover boundary is the first interval boundary after the current time.
func New(spec string) (*Policy, error) {
	every, layout, err := parse(spec)
	if err != nil {
		return nil, err
	}

	return &Policy{every: every, layout: layout}, nil
}

// parse maps an interval specification to a duration and a suffix layout.
func parse(spec string) (time.Duration, string, error) {
	switch spec {
	case Daily:
		return 24 * time.Hour, LayoutDaily, nil
	case Hourly:
		return time.Hour, LayoutHourly, nil
	case Minutely:
		return time.Minute, LayoutMinutely, nil
	}

	seconds, err := strconv.Atoi(spec)
	if err != nil || seconds <= 0 {
		return 0, "", fmt.Errorf("%w: %q", ErrBadInterval, spec)
	}

	return time.Duration(seconds) * time.Second, LayoutSeconds, nil
}

// Rotate reports whether the current time has reached the rollover boundary.
// The pending write size plays no part in the decision.
func (p *Policy) Rotate(_ int64) bool {
	return !p.now().Before(p.boundary())
}

// Suffix formats the time stamp of the interval the archive covers: one
// interval before the current rollover boundary. Call before Reset.
func (p *Policy) Suffix() string {
	stamp := p.boundary().Add(-p.every)
	if p.UseUTC {
		stamp = stamp.UTC()
	}

	return stamp.Format(p.layout)
}

// Reset advances the rollover boundary past the current time, one whole
// interval at a time. It never moves backward; it skips forward when several
// intervals elapsed while the stream was idle.
func (p *Policy) Reset() {
	now := p.now()
	for !p.boundary().After(now) {
		p.next = p.next.Add(p.every)
	}
}

// boundary returns the active rollover boundary, computing the first one on
// first use: the first interval boundary after the current time.
func (p *Policy) boundary() time.Time {
	if p.next.IsZero() {
		p.next = p.now().Truncate(p.every).Add(p.every)
	}

	return p.next
}

// Wrote satisfies the Policy interface. Byte counts do not matter here.
func (p *Policy) Wrote(_ int64) {}

func (p *Policy) now() time.Time {
	if p.Clock != nil {
		return p.Clock()
	}

	return time.Now()
}

// Our interface must satify an appendorr.Policy.
var _ appendorr.Policy = (*Policy)(nil)
