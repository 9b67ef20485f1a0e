package encoder

import "ytclip/internal/model"

// Preset fixes the CRF for each container and the encoder speed preset.
// Higher quality trades encode time for a smaller quantization step.
type Preset struct {
	MP4CRF  int
	WebMCRF int
	Speed   string
}

// PresetFor maps a quality level to its codec parameters. Unknown levels
// fall back to the high preset.
func PresetFor(q model.Quality) Preset {
	switch q {
	case model.QualityLow:
		return Preset{MP4CRF: 28, WebMCRF: 34, Speed: "faster"}
	case model.QualityMedium:
		return Preset{MP4CRF: 23, WebMCRF: 30, Speed: "medium"}
	default:
		return Preset{MP4CRF: 18, WebMCRF: 28, Speed: "slow"}
	}
}
