// Package timecode parses clip boundaries given as SS, MM:SS or HH:MM:SS.
package timecode

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"ytclip/internal/model"
)

// Each colon-separated component is an unsigned decimal.
var componentRe = regexp.MustCompile(`^(\d+(\.\d*)?|\.\d+)$`)

// Parse converts "SS[.frac]", "MM:SS[.frac]" or "HH:MM:SS[.frac]" into seconds.
// Any other shape fails with model.ErrInvalidFormat.
func Parse(s string) (float64, error) {
	ts := strings.TrimSpace(s)
	parts := strings.Split(ts, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("%w: %q (expected SS, MM:SS or HH:MM:SS)", model.ErrInvalidFormat, s)
	}

	vals := make([]float64, len(parts))
	for i, p := range parts {
		if !componentRe.MatchString(p) {
			return 0, fmt.Errorf("%w: %q (expected SS, MM:SS or HH:MM:SS)", model.ErrInvalidFormat, s)
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q: %v", model.ErrInvalidFormat, s, err)
		}
		vals[i] = v
	}

	switch len(vals) {
	case 1:
		return vals[0], nil
	case 2:
		return vals[0]*60 + vals[1], nil
	default:
		return vals[0]*3600 + vals[1]*60 + vals[2], nil
	}
}

// NewRange builds a TimeRange, failing with model.ErrInvalidRange unless
// 0 <= start < end.
func NewRange(start, end float64) (model.TimeRange, error) {
	if start < 0 || end < 0 || math.IsNaN(start) || math.IsNaN(end) {
		return model.TimeRange{}, fmt.Errorf("%w: bounds must be non-negative (start=%g end=%g)", model.ErrInvalidRange, start, end)
	}
	if end <= start {
		return model.TimeRange{}, fmt.Errorf("%w: end must be greater than start (start=%g end=%g)", model.ErrInvalidRange, start, end)
	}
	return model.TimeRange{Start: start, End: end}, nil
}

// ParseRange parses both bounds and validates them as a range.
func ParseRange(start, end string) (model.TimeRange, error) {
	s, err := Parse(start)
	if err != nil {
		return model.TimeRange{}, fmt.Errorf("start: %w", err)
	}
	e, err := Parse(end)
	if err != nil {
		return model.TimeRange{}, fmt.Errorf("end: %w", err)
	}
	return NewRange(s, e)
}

// Format renders seconds as H:MM:SS.mmm.
func Format(sec float64) string {
	if sec < 0 {
		sec = 0
	}
	ms := int64(math.Round(sec * 1000))
	h := ms / 3_600_000
	ms -= h * 3_600_000
	m := ms / 60_000
	ms -= m * 60_000
	s := ms / 1000
	ms -= s * 1000
	return fmt.Sprintf("%d:%02d:%02d.%03d", h, m, s, ms)
}
