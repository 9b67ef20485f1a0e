package downloader

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SelectDownloadedFile picks the merged media file yt-dlp left in workdir.
// Partial and sidecar files are ignored; playable containers win, mp4 first.
// Names that look like unmerged format fragments are only used when nothing
// else is left, since a title may itself end in ".f2".
func SelectDownloadedFile(workdir string) (string, error) {
	entries, err := os.ReadDir(workdir)
	if err != nil {
		return "", err
	}

	var candidates, fragments []string
	for _, e := range entries {
		if e.IsDir() || isSidecar(e.Name()) {
			continue
		}
		p := filepath.Join(workdir, e.Name())
		if isFragment(e.Name()) {
			fragments = append(fragments, p)
			continue
		}
		candidates = append(candidates, p)
	}
	if len(candidates) == 0 {
		candidates = fragments
	}
	if len(candidates) == 0 {
		return "", errors.New("no output file found")
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		pri := extPriority(filepath.Ext(candidates[i]))
		prj := extPriority(filepath.Ext(candidates[j]))
		if pri == prj {
			return candidates[i] < candidates[j]
		}
		return pri < prj
	})
	return candidates[0], nil
}

func isSidecar(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".part", ".ytdl", ".json", ".temp", ".vtt", ".srt", ".jpg", ".webp", ".png":
		return true
	}
	return false
}

func isFragment(name string) bool {
	// yt-dlp keeps per-format fragments as name.f137.mp4 until the merge finishes.
	base := strings.TrimSuffix(name, filepath.Ext(name))
	if i := strings.LastIndex(base, ".f"); i >= 0 && i < len(base)-2 {
		rest := base[i+2:]
		return strings.Trim(rest, "0123456789") == ""
	}
	return false
}

// extPriority returns a priority score for file extensions (lower = better).
func extPriority(ext string) int {
	switch strings.ToLower(ext) {
	case ".mp4":
		return 0
	case ".mkv":
		return 1
	case ".webm":
		return 2
	case ".mov":
		return 3
	case ".avi":
		return 4
	case ".flv":
		return 5
	default:
		return 100
	}
}
