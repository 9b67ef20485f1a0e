package downloader

// Info mirrors the fields of yt-dlp --dump-json output used for plans and
// output naming.
type Info struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Uploader   string  `json:"uploader"`
	Duration   float64 `json:"duration"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	WebpageURL string  `json:"webpage_url"`
	Extractor  string  `json:"extractor_key"`
}
