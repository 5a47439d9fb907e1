package model

import (
	"errors"
	"fmt"
	"math"
)

// ErrEmptyClipWindow is returned when a tag window would produce end <= start.
var ErrEmptyClipWindow = errors.New("clip window is empty")

// ErrNotFinite is returned for NaN or infinite times and deltas.
var ErrNotFinite = errors.New("time is not a finite number")

func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Bound names the clip edge being adjusted.
type Bound string

const (
	BoundStart Bound = "start_sec"
	BoundEnd   Bound = "end_sec"
)

// minSpan is the span a clip collapses to when one bound is pushed past the other.
const minSpan = 1.0

// DeriveBounds computes the clip interval around the tagged instant t.
// start = max(0, t-pre), end = t+post.
func DeriveBounds(t float64, tag TagType) (start, end float64, err error) {
	if !finite(t, tag.PreSec, tag.PostSec) {
		return 0, 0, fmt.Errorf("%w: tag %q at %v", ErrNotFinite, tag.Key, t)
	}
	start = math.Max(0, t-tag.PreSec)
	end = t + tag.PostSec
	if end <= start {
		return 0, 0, fmt.Errorf("%w: tag %q at %.1fs gives %.1f-%.1f", ErrEmptyClipWindow, tag.Key, t, start, end)
	}
	return start, end, nil
}

// AdjustBound moves one bound of the clip by delta, keeping 0 <= start < end.
func (c *Clip) AdjustBound(bound Bound, delta float64) error {
	if !finite(delta) {
		return fmt.Errorf("%w: delta %v", ErrNotFinite, delta)
	}
	switch bound {
	case BoundStart:
		c.StartSec = math.Max(0, c.StartSec+delta)
		if c.StartSec >= c.EndSec {
			c.StartSec = math.Max(0, c.EndSec-minSpan)
		}
	case BoundEnd:
		c.EndSec += delta
		if c.EndSec <= c.StartSec {
			c.EndSec = c.StartSec + minSpan
		}
	default:
		return fmt.Errorf("unknown clip bound %q", bound)
	}
	return nil
}

// ParseBound accepts "start"/"in" and "end"/"out" as well as the field names.
func ParseBound(s string) (Bound, error) {
	switch s {
	case "start", "in", string(BoundStart):
		return BoundStart, nil
	case "end", "out", string(BoundEnd):
		return BoundEnd, nil
	}
	return "", fmt.Errorf("unknown clip bound %q (expected start or end)", s)
}
