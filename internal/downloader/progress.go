package downloader

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"ytclip/internal/progress"
	"ytclip/internal/timecode"
)

// progressRe matches yt-dlp --newline progress lines such as
// "[download]  45.2% of ~ 10.00MiB at  1.50MiB/s ETA 00:04 (frag 3/9)".
var progressRe = regexp.MustCompile(`^\[download\]\s+([\d.]+)%(?:\s+of\s+~?\s*([\d.]+\s*[KMGTPE]?i?B))?(?:\s+at\s+(\S+))?(?:\s+ETA\s+(\S+))?`)

const (
	destinationPrefix = "[download] Destination:"
	mergerPrefix      = "[Merger]"
)

// ParseProgress turns one line of yt-dlp output into an update. ok is false
// for lines that carry no progress information.
func ParseProgress(line, jobID string) (u progress.Update, ok bool) {
	line = strings.TrimSpace(line)
	u = progress.Update{JobID: jobID, Stage: progress.StageDownloading, Percent: -1}

	switch {
	case strings.HasPrefix(line, destinationPrefix):
		name := strings.TrimSpace(strings.TrimPrefix(line, destinationPrefix))
		u.Percent = 0
		u.Message = "Downloading " + filepath.Base(name)
		return u, true
	case strings.HasPrefix(line, mergerPrefix):
		u.Percent = 100
		u.Message = "Merging formats"
		return u, true
	}

	m := progressRe.FindStringSubmatch(line)
	if m == nil {
		return progress.Update{}, false
	}
	pct, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return progress.Update{}, false
	}
	u.Percent = pct
	u.Message = "Downloading"
	if total, err := humanize.ParseBytes(strings.ReplaceAll(m[2], " ", "")); err == nil && m[2] != "" {
		done := int64(float64(total) * pct / 100)
		u.Bytes = &done
	}
	if m[3] != "" && !strings.HasPrefix(m[3], "Unknown") {
		speed := m[3]
		u.Speed = &speed
	}
	if m[4] != "" {
		if sec, err := timecode.Parse(m[4]); err == nil {
			eta := time.Duration(sec * float64(time.Second))
			u.ETA = &eta
		}
	}
	return u, true
}
