package encoder

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"ytclip/internal/model"
)

// speedEpsilon is the tolerance under which a speed is treated as 1.0.
const speedEpsilon = 1e-6

// BuildVideoFilter returns the comma-joined -vf chain shared by every output:
// optional PTS rescale, fps resample, then a lanczos scale to the requested
// width with the height derived from the aspect ratio and rounded to even.
func BuildVideoFilter(p model.RenderParams) string {
	var filters []string
	if !isUnitSpeed(p.Speed) {
		filters = append(filters, "setpts=PTS/"+formatFloat(p.Speed))
	}
	filters = append(filters,
		fmt.Sprintf("fps=%d", p.FPS),
		fmt.Sprintf("scale=%d:trunc(ow/a/2)*2:flags=lanczos", p.Width),
	)
	return strings.Join(filters, ",")
}

// BuildGIFFilter returns a -filter_complex graph that generates a palette
// from the filtered stream and applies it with ordered dithering in one pass.
func BuildGIFFilter(p model.RenderParams) string {
	colors := p.MaxColors
	if colors <= 0 || colors > model.MaxPaletteColors {
		colors = model.MaxPaletteColors
	}
	return BuildVideoFilter(p) +
		",split[a][b];" +
		fmt.Sprintf("[b]palettegen=max_colors=%d[p];", colors) +
		"[a][p]paletteuse=dither=bayer"
}

// OutputDuration is the length of the encoded clip once speed is applied.
func OutputDuration(r model.TimeRange, speed float64) float64 {
	if speed <= 0 || isUnitSpeed(speed) {
		return r.Duration()
	}
	return r.Duration() / speed
}

// ScaledHeight mirrors the scale expression trunc(ow/a/2)*2 for a source of
// srcW x srcH scaled to width. It is used for plans and tests.
func ScaledHeight(width, srcW, srcH int) int {
	if srcW <= 0 || srcH <= 0 || width <= 0 {
		return 0
	}
	aspect := float64(srcW) / float64(srcH)
	return int(math.Trunc(float64(width)/aspect/2)) * 2
}

func isUnitSpeed(s float64) bool {
	return math.Abs(s-1.0) <= speedEpsilon
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
