package deps

import (
	"fmt"
	"os"
	"os/exec"

	"ytclip/internal/model"
)

const (
	YtDlpInstallURL  = "https://github.com/yt-dlp/yt-dlp#installation"
	FFmpegInstallURL = "https://ffmpeg.org/download.html"
)

// DependencyError reports an external tool that could not be located.
type DependencyError struct {
	Name       string
	InstallURL string
	Tried      string
}

func (e *DependencyError) Error() string {
	if e.Tried != "" {
		return fmt.Sprintf("%s not found at %q. Install from: %s", e.Name, e.Tried, e.InstallURL)
	}
	return fmt.Sprintf("%s not found on PATH. Install from: %s", e.Name, e.InstallURL)
}

// Unwrap lets callers match with errors.Is(err, model.ErrMissingDependency).
func (e *DependencyError) Unwrap() error {
	return model.ErrMissingDependency
}

// FindDownloader returns the path to yt-dlp or youtube-dl.
// If customPath is non-empty, it tries that path or looks it up in PATH.
func FindDownloader(customPath string) (string, error) {
	if customPath != "" {
		return findCustom(customPath, "yt-dlp", YtDlpInstallURL)
	}
	if p, err := exec.LookPath("yt-dlp"); err == nil {
		return p, nil
	}
	if p, err := exec.LookPath("youtube-dl"); err == nil {
		return p, nil
	}
	return "", &DependencyError{Name: "yt-dlp", InstallURL: YtDlpInstallURL}
}

// FindFFmpeg returns the path to ffmpeg, honoring an explicit override.
func FindFFmpeg(customPath string) (string, error) {
	if customPath != "" {
		return findCustom(customPath, "ffmpeg", FFmpegInstallURL)
	}
	if p, err := exec.LookPath("ffmpeg"); err == nil {
		return p, nil
	}
	return "", &DependencyError{Name: "ffmpeg", InstallURL: FFmpegInstallURL}
}

func findCustom(path, name, installURL string) (string, error) {
	if fi, err := os.Stat(path); err == nil && !fi.IsDir() {
		return path, nil
	}
	if p, err := exec.LookPath(path); err == nil {
		return p, nil
	}
	return "", &DependencyError{Name: name, InstallURL: installURL, Tried: path}
}
