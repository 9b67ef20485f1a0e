package format

import (
	"strconv"

	"github.com/dustin/go-humanize"
)

// HumanizeBytes converts a byte count into a binary-unit string (e.g., "1.5 KiB").
func HumanizeBytes(b int64) string {
	if b < 0 {
		return strconv.FormatInt(b, 10) + " B"
	}
	return humanize.IBytes(uint64(b))
}

// Seconds renders a clip length with millisecond precision, e.g. "7.000s".
func Seconds(sec float64) string {
	return strconv.FormatFloat(sec, 'f', 3, 64) + "s"
}
