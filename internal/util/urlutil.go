package util

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

type Platform string

const (
	PlatformYouTube Platform = "youtube"
	PlatformOther   Platform = "other"
)

var shortLinkRe = regexp.MustCompile(`^https?://youtu\.be/([A-Za-z0-9_-]{6,})`)

// DetectPlatform parses a raw URL string and reports whether it targets
// YouTube. Other hosts are accepted as PlatformOther since yt-dlp supports
// many extractors; only unparsable input is an error.
func DetectPlatform(raw string) (Platform, *url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", nil, fmt.Errorf("invalid URL %q: expected an absolute http(s) URL", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", nil, fmt.Errorf("invalid URL %q: unsupported scheme %q", raw, u.Scheme)
	}

	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	switch host {
	case "youtube.com", "m.youtube.com", "music.youtube.com", "youtu.be":
		return PlatformYouTube, u, nil
	default:
		return PlatformOther, u, nil
	}
}

// CanonicalWatchURL rewrites youtu.be short links to the long watch form and
// drops tracking parameters that follow the video id. Anything else is
// returned unchanged. The result is stable under repeated application.
func CanonicalWatchURL(raw string) string {
	if m := shortLinkRe.FindStringSubmatch(raw); m != nil {
		return "https://www.youtube.com/watch?v=" + m[1]
	}
	if strings.Contains(raw, "watch?v=") {
		base, _, _ := strings.Cut(raw, "&")
		return base
	}
	return raw
}
