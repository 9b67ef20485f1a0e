package encoder

import (
	"strconv"
	"strings"

	"ytclip/internal/progress"
)

// ProgressState accumulates the key=value block ffmpeg writes to
// -progress pipe:1 until the closing progress= marker.
type ProgressState struct {
	OutTimeUs int64
	SpeedStr  string
	TotalSize int64
}

// UpdateFromLine folds a progress line into the state and returns an update
// when a block ends. durationSec is the expected output length.
func (ps *ProgressState) UpdateFromLine(line string, jobID string, durationSec float64) (u progress.Update, ok bool) {
	key, val, found := strings.Cut(line, "=")
	if !found {
		return progress.Update{}, false
	}
	key = strings.TrimSpace(key)
	val = strings.TrimSpace(val)

	switch key {
	case "out_time_us", "out_time_ms":
		// out_time_ms is microseconds as well, despite its name.
		if v, err := strconv.ParseInt(val, 10, 64); err == nil {
			ps.OutTimeUs = v
		}
	case "speed":
		ps.SpeedStr = val
	case "total_size":
		if v, err := strconv.ParseInt(val, 10, 64); err == nil {
			ps.TotalSize = v
		}
	case "progress":
		percent := -1.0
		if durationSec > 0 {
			percent = float64(ps.OutTimeUs) / (durationSec * 1_000_000) * 100.0
			if percent > 100 {
				percent = 100
			}
			if percent < 0 {
				percent = 0
			}
		}
		if val == "end" && durationSec > 0 {
			percent = 100
		}

		var speedPtr *string
		if ps.SpeedStr != "" && ps.SpeedStr != "N/A" {
			s := ps.SpeedStr
			speedPtr = &s
		}
		var bytesPtr *int64
		if ps.TotalSize > 0 {
			b := ps.TotalSize
			bytesPtr = &b
		}
		return progress.Update{
			JobID:   jobID,
			Stage:   progress.StageEncoding,
			Percent: percent,
			Speed:   speedPtr,
			Bytes:   bytesPtr,
			Message: "Encoding",
		}, true
	}
	return progress.Update{}, false
}
